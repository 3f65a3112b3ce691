// Package scene describes the rendered world as a list of axis aligned boxes.
package scene

import (
	"fmt"

	"github.com/soypat/painter"
	"github.com/soypat/painter/form3"
	"github.com/soypat/painter/form3/must3"
	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis aligned rectangular prism. Corner is the vertex with the
// lowest coordinates.
type Box struct {
	Corner r3.Vec
	Size   r3.Vec
}

// Scene is an ordered declarative description of the world. Triangles are
// generated in box order.
type Scene struct {
	Boxes []Box
}

// Default returns the three box scene rendered by default.
func Default() Scene {
	return Scene{Boxes: []Box{
		{Corner: r3.Vec{X: -7, Y: 2, Z: 3}, Size: r3.Vec{X: 5, Y: 5, Z: 5}},
		{Corner: r3.Vec{X: -7, Y: -5, Z: 3}, Size: r3.Vec{X: 6, Y: 4, Z: 5}},
		{Corner: r3.Vec{X: -7, Y: 5, Z: -3}, Size: r3.Vec{X: 4, Y: 4, Z: 4}},
	}}
}

// Len returns the number of triangles the scene generates.
func (s Scene) Len() int { return must3.TrianglesPerPrism * len(s.Boxes) }

// Triangles builds the flat triangle list of the scene.
func (s Scene) Triangles() ([]painter.Triangle, error) {
	corners := make([]r3.Vec, len(s.Boxes))
	sizes := make([]r3.Vec, len(s.Boxes))
	for i, b := range s.Boxes {
		corners[i], sizes[i] = b.Corner, b.Size
	}
	tris, err := form3.Prisms(corners, sizes)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return tris, nil
}

// Bounds returns the bounding box of all boxes in the scene.
// It panics if the scene is empty.
func (s Scene) Bounds() r3.Box {
	bb := s.Boxes[0].box()
	for _, b := range s.Boxes[1:] {
		bb = bb.Extend(b.box())
	}
	return r3.Box(bb)
}

func (b Box) box() d3.Box {
	return d3.Box{Min: b.Corner, Max: r3.Add(b.Corner, b.Size)}
}
