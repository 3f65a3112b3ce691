// Package render turns a triangle scene into frames of colored screen-space
// triangles and paints them onto a raster Surface.
package render

import (
	"github.com/soypat/painter"
)

// Renderer streams triangles. ReadTriangles behaves like io.Reader.Read:
// it returns io.EOF once there are no more triangles to read.
type Renderer interface {
	ReadTriangles(t []painter.Triangle) (int, error)
}
