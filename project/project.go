// Package project maps points in world space onto screen pixels through a
// camera's viewing plane.
package project

import (
	"errors"
	"fmt"
	"image"

	"github.com/soypat/painter"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrScreenSize = errors.New("screen size must be positive")

// Projector projects through a pinhole camera onto a square screen of
// Size by Size pixels. The viewing plane spans [-1, 1] along both screen
// axes, which maps to the full screen.
type Projector struct {
	cam      painter.Camera
	size     int
	half     float64
	distance float64
	forward  r3.Vec
	right    r3.Vec
	up       r3.Vec
}

// New returns a Projector for the camera and screen size in pixels.
func New(cam painter.Camera, size int) (*Projector, error) {
	if err := cam.Validate(); err != nil {
		return nil, fmt.Errorf("projector camera: %w", err)
	}
	if size <= 0 {
		return nil, ErrScreenSize
	}
	p := &Projector{
		cam:      cam,
		size:     size,
		half:     float64(size) / 2,
		distance: cam.ViewingDistance(),
	}
	p.forward, p.right, p.up = cam.Basis()
	return p, nil
}

// Camera returns the projector's camera.
func (p *Projector) Camera() painter.Camera { return p.cam }

// Size returns the screen side length in pixels.
func (p *Projector) Size() int { return p.size }

// Scale returns the factor that takes the vector from the camera to v onto
// the viewing plane. It is undefined (Inf or NaN) for points in the plane
// through the camera perpendicular to the viewing axis.
//
// For a camera looking along -X this is
//  (viewingPlaneX - camera.X) / (v.X - camera.X)
func (p *Projector) Scale(v r3.Vec) float64 {
	toPoint := r3.Sub(v, p.cam.Position)
	return p.distance / r3.Dot(toPoint, p.forward)
}

// OnViewingPlane returns the point where the line from the camera through
// v crosses the viewing plane.
func (p *Projector) OnViewingPlane(v r3.Vec) r3.Vec {
	toPoint := r3.Sub(v, p.cam.Position)
	return r3.Add(p.cam.Position, r3.Scale(p.Scale(v), toPoint))
}

// Point projects v to screen coordinates. Screen X grows to the camera's
// right and screen Y grows downwards, opposite to the camera's up.
// Coordinates are truncated towards zero and are not clipped to the screen.
func (p *Projector) Point(v r3.Vec) image.Point {
	onPlane := r3.Scale(p.Scale(v), r3.Sub(v, p.cam.Position))
	x := p.half + r3.Dot(onPlane, p.right)*p.half
	y := p.half - r3.Dot(onPlane, p.up)*p.half
	return image.Pt(int(x), int(y))
}

// Triangle projects the three vertices of t.
func (p *Projector) Triangle(t painter.Triangle) [3]image.Point {
	return [3]image.Point{p.Point(t[0]), p.Point(t[1]), p.Point(t[2])}
}
