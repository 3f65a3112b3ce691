package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/painter"
	"github.com/soypat/painter/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Prism returns the twelve triangles of an axis aligned rectangular prism
// with lowest corner at corner and extents dims. dims components must be positive.
func Prism(corner, dims r3.Vec) (t []painter.Triangle, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Prism(corner, dims), err
}

// Prisms returns the triangles of every prism in order. corners and dims
// must be of equal length.
func Prisms(corners, dims []r3.Vec) ([]painter.Triangle, error) {
	if len(corners) != len(dims) {
		return nil, ErrMsg("corners and dims length mismatch")
	}
	tris := make([]painter.Triangle, 0, must3.TrianglesPerPrism*len(corners))
	for i := range corners {
		t, err := Prism(corners[i], dims[i])
		if err != nil {
			return nil, fmt.Errorf("prism %d: %w", i, err)
		}
		tris = append(tris, t...)
	}
	return tris, nil
}
