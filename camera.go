package painter

import (
	"errors"
	"math"

	"github.com/soypat/painter/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrZeroDirection = errors.New("camera direction is zero vector")
	ErrParallelUp    = errors.New("camera up vector parallel to direction")
	ErrFOV           = errors.New("camera field of view must be in (0, 180) degrees")
	ErrNonFinite     = errors.New("camera has non-finite component")
)

// Camera is a fixed pinhole camera. The zero value is not usable, see DefaultCamera.
type Camera struct {
	// Position is where the pinhole is located.
	Position r3.Vec
	// Direction is the viewing axis. Need not be of unit length.
	Direction r3.Vec
	// Up is the world direction shown upwards on the screen.
	Up r3.Vec
	// FOV is the full field of view angle in degrees.
	FOV float64
}

// DefaultCamera returns the camera located at (10,0,0) looking towards -X
// with Z upwards and a 90 degree field of view.
func DefaultCamera() Camera {
	return Camera{
		Position:  r3.Vec{X: 10},
		Direction: r3.Vec{X: -1},
		Up:        r3.Vec{Z: 1},
		FOV:       90,
	}
}

// Validate checks the camera can be used to project and sort.
func (c Camera) Validate() error {
	switch {
	case !d3.IsFinite(c.Position) || !d3.IsFinite(c.Direction) || !d3.IsFinite(c.Up):
		return ErrNonFinite
	case c.Direction == (r3.Vec{}):
		return ErrZeroDirection
	case c.FOV <= 0 || c.FOV >= 180 || math.IsNaN(c.FOV):
		return ErrFOV
	case Magnitude(Cross(c.Direction, c.Up)) < 1e-12:
		return ErrParallelUp
	}
	return nil
}

// ViewingDistance returns the distance from the camera to the viewing plane
// such that the plane spans [-1, 1] across the field of view:
//  1 / tan(FOV/2)
func (c Camera) ViewingDistance() float64 {
	return 1 / math.Tan(DegreesToRadians(c.FOV)/2)
}

// ViewingPlane returns the plane perpendicular to the viewing axis located
// ViewingDistance in front of the camera.
func (c Camera) ViewingPlane() Plane {
	n := Unit(c.Direction)
	center := r3.Add(c.Position, r3.Scale(c.ViewingDistance(), n))
	return Plane{A: n.X, B: n.Y, C: n.Z, D: r3.Dot(n, center)}
}

// Basis returns the camera's orthonormal basis: the unit viewing direction,
// the screen right direction (direction×up) and the screen up direction.
func (c Camera) Basis() (forward, right, up r3.Vec) {
	forward = Unit(c.Direction)
	right = Unit(Cross(forward, c.Up))
	up = Cross(right, forward)
	return forward, right, up
}
