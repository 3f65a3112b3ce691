package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/painter"
	"github.com/soypat/painter/render"
)

// Reference renders the triangles of frame with a true depth buffer
// through fauxgl's perspective pipeline, using each item's color. For the
// same camera its image lines up with the painted frame, so the two can be
// compared to spot depth sorting errors.
func Reference(cam painter.Camera, frame render.Frame, size, supersample int, bg color.Color) (image.Image, error) {
	if err := cam.Validate(); err != nil {
		return nil, fmt.Errorf("reference camera: %w", err)
	}
	if size <= 0 {
		return nil, ErrSize
	}
	if supersample < 1 {
		supersample = 1
	}
	const near = 0.05
	far := near
	for _, item := range frame.Items {
		for _, v := range item.Triangle {
			far = math.Max(far, painter.Distance(v, cam.Position))
		}
	}
	far *= 2

	var (
		eye    = fauxgl.V(cam.Position.X, cam.Position.Y, cam.Position.Z)
		center = eye.Add(fauxgl.V(cam.Direction.X, cam.Direction.Y, cam.Direction.Z))
		up     = fauxgl.V(cam.Up.X, cam.Up.Y, cam.Up.Z)
	)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(cam.FOV, 1, near, far)
	ctx := fauxgl.NewContext(size*supersample, size*supersample)
	ctx.Cull = fauxgl.CullNone
	ctx.ClearColorBufferWith(fauxgl.MakeColor(bg))
	ctx.ClearDepthBuffer()
	for _, item := range frame.Items {
		t := item.Triangle
		ctx.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.MakeColor(item.Color))
		ctx.DrawTriangle(fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		))
	}
	img := ctx.Image()
	if supersample > 1 {
		img = resize.Resize(uint(size), uint(size), img, resize.Bilinear)
	}
	return img, nil
}
