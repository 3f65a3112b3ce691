package painter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is represented by the implicit equation
//  A*x + B*y + C*z = D
// The vector (A, B, C) is the plane normal and need not be of unit length.
type Plane struct {
	A, B, C, D float64
}

// PlaneFrom3Points returns the plane passing through the three points.
// The normal is (b-a)×(c-a). Collinear or repeated points yield a zero
// normal, for which MultiplierToPlane never reports an intersection.
func PlaneFrom3Points(points [3]r3.Vec) Plane {
	a, b, c := points[0], points[1], points[2]
	u := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	return Plane{
		A: u.X,
		B: u.Y,
		C: u.Z,
		D: r3.Dot(u, a),
	}
}

// Normal returns the (A, B, C) normal vector of the plane.
func (p Plane) Normal() r3.Vec {
	return r3.Vec{X: p.A, Y: p.B, Z: p.C}
}

// signedDistance returns the distance from point to the plane, positive on
// the side the normal points to.
func (p Plane) signedDistance(point r3.Vec) float64 {
	return (p.A*point.X + p.B*point.Y + p.C*point.Z - p.D) / Magnitude(p.Normal())
}

// DistanceToPlane returns |A*x + B*y + C*z| / |(A, B, C)|. D is not taken
// into account so the result is the distance to the plane only when the plane
// passes through the origin. The result is NaN or Inf if the plane normal is
// the zero vector.
func DistanceToPlane(point r3.Vec, plane Plane) float64 {
	return math.Abs(Dot(plane.Normal(), point)) / Magnitude(plane.Normal())
}

// NormalRay returns the ray starting at point heading against the plane normal.
func NormalRay(point r3.Vec, plane Plane) Ray {
	return Ray{
		Start:     point,
		Direction: r3.Scale(-1, plane.Normal()),
	}
}

// ProjectOntoPlane returns the orthogonal projection of point onto plane,
// found by walking from point along the plane normal by the signed distance.
func ProjectOntoPlane(point r3.Vec, plane Plane) r3.Vec {
	ray := NormalRay(point, plane)
	distance := plane.signedDistance(point)
	return r3.Add(ray.Start, r3.Scale(distance, Unit(ray.Direction)))
}
