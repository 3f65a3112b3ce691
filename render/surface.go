package render

import (
	"errors"
	"image"
	"image/color"
)

// Surface is a raster target the Animator paints on. Drawing calls may be
// buffered until Flush. Coordinates are in pixels with the origin at the top
// left and are not clipped by the caller.
type Surface interface {
	Clear(c color.Color) error
	FillCircle(center image.Point, radius float64, c color.Color) error
	FillTriangle(p0, p1, p2 image.Point, c color.Color) error
	Flush() error
}

// ErrSurface is matched by every SurfaceError.
var ErrSurface = errors.New("render surface failure")

// SurfaceError records a failed Surface operation.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	if e.Err == nil {
		return ErrSurface.Error() + ": " + e.Op
	}
	return ErrSurface.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// Is reports true for ErrSurface so callers need not know the operation.
func (e *SurfaceError) Is(target error) bool { return target == ErrSurface }

func surfaceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SurfaceError{Op: op, Err: err}
}
