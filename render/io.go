package render

import (
	"io"

	"github.com/soypat/painter"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like io.ReadAll.
func RenderAll(r Renderer) ([]painter.Triangle, error) {
	var err error
	var nt int
	result := make([]painter.Triangle, 0, 64)
	buf := make([]painter.Triangle, 256)
	for err == nil {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// sliceRenderer streams triangles from a slice.
type sliceRenderer struct {
	buf []painter.Triangle
}

// NewSliceRenderer returns a Renderer that reads tris in order.
func NewSliceRenderer(tris []painter.Triangle) Renderer {
	return &sliceRenderer{buf: tris}
}

func (b *sliceRenderer) ReadTriangles(t []painter.Triangle) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}
