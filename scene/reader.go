package scene

import (
	"io"

	"github.com/soypat/painter"
)

// Reader streams the triangles of a scene. It satisfies render.Renderer.
type Reader struct {
	tris []painter.Triangle
	err  error
}

// NewReader returns a Reader over the triangles of s. Errors building the
// scene are returned by the first call to ReadTriangles.
func NewReader(s Scene) *Reader {
	tris, err := s.Triangles()
	return &Reader{tris: tris, err: err}
}

// ReadTriangles reads up to len(t) triangles into t. It returns io.EOF once
// all triangles have been read.
func (r *Reader) ReadTriangles(t []painter.Triangle) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(r.tris) == 0 {
		return 0, io.EOF
	}
	n := copy(t, r.tris)
	r.tris = r.tris[n:]
	return n, nil
}
