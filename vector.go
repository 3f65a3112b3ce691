/*
Package painter is the geometry kernel of a pinhole-camera renderer that
orders triangles with a painter's algorithm.

Points and vectors share a single type, gonum's r3.Vec. Whether a value is a
position or a displacement is tracked by convention at the call site.
*/
package painter

import (
	"math"

	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const pi = math.Pi

// Magnitude returns the euclidean norm of v.
func Magnitude(v r3.Vec) float64 { return r3.Norm(v) }

// Unit returns v divided by its magnitude. The zero vector has no
// direction and yields NaN components; callers must not normalize it.
func Unit(v r3.Vec) r3.Vec {
	return Div(v, Magnitude(v))
}

// Distance returns the distance between points p and q.
func Distance(p, q r3.Vec) float64 {
	return Magnitude(r3.Sub(p, q))
}

// Div divides every component of v by s. Division by zero is not checked.
func Div(v r3.Vec, s float64) r3.Vec {
	return r3.Vec{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Cross returns the cross product a×b.
func Cross(a, b r3.Vec) r3.Vec { return r3.Cross(a, b) }

// Dot returns the dot product of a and b.
func Dot(a, b r3.Vec) float64 { return r3.Dot(a, b) }

// XOnly returns v with its Y and Z components set to zero.
func XOnly(v r3.Vec) r3.Vec { return d3.XOnly(v) }

// YOnly returns v with its X and Z components set to zero.
func YOnly(v r3.Vec) r3.Vec { return d3.YOnly(v) }

// ZOnly returns v with its X and Y components set to zero.
func ZOnly(v r3.Vec) r3.Vec { return d3.ZOnly(v) }

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float64) float64 { return degrees * pi / 180 }
