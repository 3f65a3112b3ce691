package painter

import (
	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is an ordered set of three vertices. Order is only significant
// for drawing; intersection math does not depend on it.
type Triangle [3]r3.Vec

// Plane returns the plane containing the triangle.
func (t Triangle) Plane() Plane {
	return PlaneFrom3Points(t)
}

// Normal returns the unit normal of the triangle. It is NaN for degenerate
// triangles.
func (t Triangle) Normal() r3.Vec {
	return Unit(t.Plane().Normal())
}

// Centroid returns the average of the triangle's vertices.
func (t Triangle) Centroid() r3.Vec {
	return Div(r3.Add(t[0], r3.Add(t[1], t[2])), 3)
}

// Degenerate returns true if any two vertices are within tol of each other.
func (t Triangle) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Bounds returns the bounding box of a set of triangles.
// It panics if tris is empty.
func Bounds(tris []Triangle) r3.Box {
	set := make(d3.Set, 0, 3*len(tris))
	for _, t := range tris {
		set = append(set, t[:]...)
	}
	return r3.Box(d3.BoxOf(set))
}
