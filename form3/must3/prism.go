package must3

import (
	"github.com/soypat/painter"
	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrianglesPerPrism is the number of triangles generated for a rectangular prism.
const TrianglesPerPrism = 12

// Prism returns the triangles of the six faces of an axis aligned
// rectangular prism, two per face. corner is the vertex with the lowest
// coordinates and dims the extent along each axis.
//
// Faces are generated in the order back, left, bottom, front, right, top.
// No winding order is guaranteed.
func Prism(corner, dims r3.Vec) []painter.Triangle {
	if d3.LTEZero(dims) {
		panic("dims <= 0")
	}
	if !d3.IsFinite(corner) || !d3.IsFinite(dims) {
		panic("non-finite prism corner or dims")
	}
	var (
		c = corner
		x = d3.XOnly(dims)
		y = d3.YOnly(dims)
		z = d3.ZOnly(dims)
	)
	add := func(vs ...r3.Vec) r3.Vec {
		sum := c
		for _, v := range vs {
			sum = r3.Add(sum, v)
		}
		return sum
	}
	return []painter.Triangle{
		// Back.
		{c, add(y), add(y, z)},
		{c, add(z), add(z, y)},
		// Left.
		{c, add(x), add(x, z)},
		{c, add(z), add(z, x)},
		// Bottom.
		{c, add(x), add(x, y)},
		{c, add(y), add(y, x)},
		// Front.
		{add(x), add(x, y), add(x, y, z)},
		{add(x), add(x, z), add(x, z, y)},
		// Right.
		{add(y), add(y, x), add(y, x, z)},
		{add(y), add(y, z), add(y, z, x)},
		// Top.
		{add(z), add(z, x), add(z, x, y)},
		{add(z), add(z, y), add(z, y, x)},
	}
}
