package painter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// IntersectEpsilon is the smallest magnitude of the ray-plane denominator
// for which an intersection is considered determinate.
const IntersectEpsilon = 1e-3

// Ray is a half-line starting at Start and extending along Direction.
// Direction need not be of unit length.
type Ray struct {
	Start     r3.Vec
	Direction r3.Vec
}

// RayFromTo returns the ray starting at start whose direction is end-start,
// so that the multiplier 1 corresponds to end.
func RayFromTo(start, end r3.Vec) Ray {
	return Ray{
		Start:     start,
		Direction: r3.Sub(end, start),
	}
}

// At returns the point Start + t*Direction.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Start, r3.Scale(t, r.Direction))
}

// MultiplierToPlane returns the ray parameter t at which the ray meets
// plane p. ok is false if the ray is parallel to the plane or the plane is
// degenerate, that is, when the magnitude of the denominator is below
// IntersectEpsilon.
func (r Ray) MultiplierToPlane(p Plane) (t float64, ok bool) {
	denominator := p.A*r.Direction.X + p.B*r.Direction.Y + p.C*r.Direction.Z
	if math.Abs(denominator) < IntersectEpsilon {
		return 0, false
	}
	t = (p.D - (p.A*r.Start.X + p.B*r.Start.Y + p.C*r.Start.Z)) / denominator
	return t, true
}
