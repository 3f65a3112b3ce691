package painter_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/painter"
	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func randomVec(rng *rand.Rand) r3.Vec {
	return r3.Vec{
		X: 20 * (rng.Float64() - 0.5),
		Y: 20 * (rng.Float64() - 0.5),
		Z: 20 * (rng.Float64() - 0.5),
	}
}

func TestVectorProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a, b := randomVec(rng), randomVec(rng)
		if a == (r3.Vec{}) {
			continue
		}
		if got := painter.Magnitude(painter.Unit(a)); math.Abs(got-1) > 1e-9 {
			t.Fatalf("magnitude of unit vector %v = %g, want 1", a, got)
		}
		if painter.Distance(a, b) != painter.Distance(b, a) {
			t.Fatalf("distance not symmetric for %v, %v", a, b)
		}
		if got, want := painter.Cross(a, b), r3.Scale(-1, painter.Cross(b, a)); got != want {
			t.Fatalf("cross product not anti-commutative: %v != %v", got, want)
		}
		if painter.Dot(a, b) != painter.Dot(b, a) {
			t.Fatalf("dot product not commutative for %v, %v", a, b)
		}
	}
}

func TestUnitZeroVector(t *testing.T) {
	u := painter.Unit(r3.Vec{})
	if !math.IsNaN(u.X) || !math.IsNaN(u.Y) || !math.IsNaN(u.Z) {
		t.Errorf("expected NaN components for unit of zero vector, got %v", u)
	}
}

func TestCrossParallel(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := painter.Cross(a, r3.Scale(-2.5, a)); got != (r3.Vec{}) {
		t.Errorf("cross of parallel vectors = %v, want zero", got)
	}
	if got := painter.Cross(a, r3.Vec{}); got != (r3.Vec{}) {
		t.Errorf("cross with zero vector = %v, want zero", got)
	}
}

func TestAxisOnly(t *testing.T) {
	v := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := painter.XOnly(v); got != (r3.Vec{X: 1}) {
		t.Errorf("XOnly(%v) = %v", v, got)
	}
	if got := painter.YOnly(v); got != (r3.Vec{Y: -2}) {
		t.Errorf("YOnly(%v) = %v", v, got)
	}
	if got := painter.ZOnly(v); got != (r3.Vec{Z: 3}) {
		t.Errorf("ZOnly(%v) = %v", v, got)
	}
	sum := r3.Add(painter.XOnly(v), r3.Add(painter.YOnly(v), painter.ZOnly(v)))
	if sum != v {
		t.Errorf("axis components do not add up to %v, got %v", v, sum)
	}
}

func TestPlaneFrom3Points(t *testing.T) {
	for _, test := range []struct {
		points [3]r3.Vec
		want   painter.Plane
	}{
		{
			points: [3]r3.Vec{{}, {X: 1}, {Y: 1}},
			want:   painter.Plane{C: 1},
		},
		{
			points: [3]r3.Vec{{Z: 2}, {X: 1, Z: 2}, {Y: 1, Z: 2}},
			want:   painter.Plane{C: 1, D: 2},
		},
		{
			// Degenerate, collinear.
			points: [3]r3.Vec{{}, {X: 1}, {X: 2}},
			want:   painter.Plane{},
		},
	} {
		got := painter.PlaneFrom3Points(test.points)
		if got != test.want {
			t.Errorf("plane from %v: got %+v, want %+v", test.points, got, test.want)
		}
		if test.want == (painter.Plane{}) {
			continue
		}
		for _, p := range test.points {
			if d := painter.DistanceToPlane(p, got); d > tol {
				t.Errorf("point %v not on plane %+v: distance %g", p, got, d)
			}
		}
	}
}

func TestMultiplierToPlane(t *testing.T) {
	plane := painter.Plane{A: 1, D: 2} // x = 2
	for _, test := range []struct {
		name   string
		ray    painter.Ray
		wantT  float64
		wantOK bool
	}{
		{
			name:   "parallel",
			ray:    painter.Ray{Start: r3.Vec{}, Direction: r3.Vec{Y: 1}},
			wantOK: false,
		},
		{
			name:   "below epsilon",
			ray:    painter.Ray{Start: r3.Vec{}, Direction: r3.Vec{X: 0.5e-3, Y: 1}},
			wantOK: false,
		},
		{
			name:   "start on plane",
			ray:    painter.Ray{Start: r3.Vec{X: 2, Y: 5}, Direction: r3.Vec{X: 1, Z: 3}},
			wantT:  0,
			wantOK: true,
		},
		{
			name:   "end on plane",
			ray:    painter.RayFromTo(r3.Vec{X: 10}, r3.Vec{X: 2, Y: 1}),
			wantT:  1,
			wantOK: true,
		},
		{
			name:   "beyond end",
			ray:    painter.RayFromTo(r3.Vec{X: 10}, r3.Vec{X: 6}),
			wantT:  2,
			wantOK: true,
		},
		{
			name:   "behind start",
			ray:    painter.RayFromTo(r3.Vec{X: 10}, r3.Vec{X: 14}),
			wantT:  -2,
			wantOK: true,
		},
	} {
		got, ok := test.ray.MultiplierToPlane(plane)
		if ok != test.wantOK {
			t.Errorf("%s: got ok=%v, want %v", test.name, ok, test.wantOK)
			continue
		}
		if ok && math.Abs(got-test.wantT) > tol {
			t.Errorf("%s: got t=%g, want %g", test.name, got, test.wantT)
		}
		if ok {
			if d := painter.DistanceToPlane(test.ray.At(got), plane); d > tol {
				t.Errorf("%s: intersection point off plane by %g", test.name, d)
			}
		}
	}
}

func TestMultiplierDegeneratePlane(t *testing.T) {
	plane := painter.PlaneFrom3Points([3]r3.Vec{{X: 1}, {X: 1}, {Y: 3}})
	_, ok := painter.RayFromTo(r3.Vec{X: 10}, r3.Vec{}).MultiplierToPlane(plane)
	if ok {
		t.Error("expected no intersection with degenerate plane")
	}
}

// offPlane returns the true distance from p to plane, accounting for D.
func offPlane(p r3.Vec, plane painter.Plane) float64 {
	n := plane.Normal()
	return math.Abs(painter.Dot(n, p)-plane.D) / painter.Magnitude(n)
}

func TestDistanceAndProjection(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		tri := painter.Triangle{randomVec(rng), randomVec(rng), randomVec(rng)}
		if tri.Degenerate(1e-3) {
			continue
		}
		plane := tri.Plane()
		p := randomVec(rng)
		proj := painter.ProjectOntoPlane(p, plane)
		if d := offPlane(proj, plane); d > 1e-9 {
			t.Fatalf("projected point %v is %g off plane", proj, d)
		}
		// Projection travels along the normal by exactly the signed distance.
		want := offPlane(p, plane)
		if got := painter.Distance(p, proj); math.Abs(got-want) > 1e-9 {
			t.Fatalf("projection distance %g, want %g", got, want)
		}
		if n := painter.Unit(r3.Sub(p, proj)); want > 1e-6 && math.Abs(math.Abs(painter.Dot(n, tri.Normal()))-1) > 1e-6 {
			t.Fatalf("projection not along normal: %v vs %v", n, tri.Normal())
		}
		// Through the origin DistanceToPlane is the true distance.
		origin := painter.Plane{A: plane.A, B: plane.B, C: plane.C}
		if got := painter.DistanceToPlane(p, origin); math.Abs(got-offPlane(p, origin)) > 1e-9 {
			t.Fatalf("distance to origin plane %g, want %g", got, offPlane(p, origin))
		}
	}
}

func TestDistanceToPlane(t *testing.T) {
	for _, test := range []struct {
		p     r3.Vec
		plane painter.Plane
		want  float64
	}{
		{p: r3.Vec{X: 7, Y: 1, Z: 2}, plane: painter.Plane{B: 3, C: 4}, want: 11.0 / 5},
		// D does not take part: |a·x+b·y+c·z| / |(a,b,c)|.
		{p: r3.Vec{}, plane: painter.Plane{A: 1, D: 2}, want: 0},
		{p: r3.Vec{X: 5}, plane: painter.Plane{A: 2, D: 4}, want: 5},
		{p: r3.Vec{X: -1, Y: 2}, plane: painter.Plane{A: 0, B: -2, C: 0, D: 100}, want: 2},
	} {
		if got := painter.DistanceToPlane(test.p, test.plane); math.Abs(got-test.want) > tol {
			t.Errorf("DistanceToPlane(%v, %+v) = %g, want %g", test.p, test.plane, got, test.want)
		}
	}
	if got := painter.DistanceToPlane(r3.Vec{X: 7}, painter.Plane{}); !math.IsNaN(got) {
		t.Errorf("distance to zero-normal plane should be NaN, got %g", got)
	}
}

func TestTriangle(t *testing.T) {
	tri := painter.Triangle{{}, {X: 3}, {Y: 3}}
	if got := tri.Centroid(); !d3.EqualWithin(got, r3.Vec{X: 1, Y: 1}, tol) {
		t.Errorf("centroid got %v", got)
	}
	if got := tri.Normal(); got != (r3.Vec{Z: 1}) {
		t.Errorf("normal got %v", got)
	}
	if tri.Degenerate(tol) {
		t.Error("triangle reported degenerate")
	}
	if !(painter.Triangle{{}, {}, {X: 1}}).Degenerate(tol) {
		t.Error("triangle with repeated vertex not reported degenerate")
	}
	bb := painter.Bounds([]painter.Triangle{tri, {{Z: -1}, {X: -2}, {Y: 5}}})
	if bb.Min != (r3.Vec{X: -2, Z: -1}) || bb.Max != (r3.Vec{X: 3, Y: 5}) {
		t.Errorf("bounds got %+v", bb)
	}
}

func TestCamera(t *testing.T) {
	cam := painter.DefaultCamera()
	if err := cam.Validate(); err != nil {
		t.Fatal(err)
	}
	if d := cam.ViewingDistance(); math.Abs(d-1) > tol {
		t.Errorf("viewing distance for 90 degree FOV got %g, want 1", d)
	}
	vp := cam.ViewingPlane()
	if got := vp.D / vp.A; math.Abs(got-9) > tol {
		t.Errorf("viewing plane at x=%g, want 9", got)
	}
	fwd, right, up := cam.Basis()
	if fwd != (r3.Vec{X: -1}) || right != (r3.Vec{Y: 1}) || up != (r3.Vec{Z: 1}) {
		t.Errorf("unexpected basis fwd=%v right=%v up=%v", fwd, right, up)
	}

	for _, test := range []struct {
		mod  func(*painter.Camera)
		want error
	}{
		{func(c *painter.Camera) { c.Direction = r3.Vec{} }, painter.ErrZeroDirection},
		{func(c *painter.Camera) { c.Up = r3.Vec{X: 2} }, painter.ErrParallelUp},
		{func(c *painter.Camera) { c.FOV = 180 }, painter.ErrFOV},
		{func(c *painter.Camera) { c.FOV = 0 }, painter.ErrFOV},
		{func(c *painter.Camera) { c.Position.Y = math.Inf(1) }, painter.ErrNonFinite},
	} {
		c := painter.DefaultCamera()
		test.mod(&c)
		if err := c.Validate(); err != test.want {
			t.Errorf("got error %v, want %v", err, test.want)
		}
	}
}
