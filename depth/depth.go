/*
Package depth orders triangles back to front as seen from a camera so that
drawing them in order emulates a depth buffer (the painter's algorithm).

The ordering is a heuristic. Pairs of triangles that do not overlap along
any ray through the vertices of the inserted triangle are classified as
NoOverlap and do not constrain insertion. The result therefore depends on
input order and is not guaranteed to be correct for arbitrary geometry,
notably for interpenetrating or cyclically overlapping triangles.
*/
package depth

import (
	"github.com/soypat/painter"
)

// Ordering is the relative visibility of one triangle with respect to
// another as seen from the camera.
type Ordering uint8

const (
	// NoOverlap means no vertex of the first triangle could be compared
	// against the plane of the second.
	NoOverlap Ordering = iota
	// InFront means the first triangle occludes the second.
	InFront
	// Behind means the first triangle is hidden by the second.
	Behind
)

func (o Ordering) String() string {
	switch o {
	case NoOverlap:
		return "no overlap"
	case InFront:
		return "in front"
	case Behind:
		return "behind"
	}
	return "unknown ordering"
}

// Order classifies triangle a against the plane of triangle b. A ray is
// cast from the camera through each vertex of a in turn. If the ray meets
// b's plane beyond the vertex a is InFront; if before the vertex a is
// Behind. Vertices whose ray does not determinately intersect the plane,
// or meets it exactly at the vertex, are skipped. If no vertex decides,
// NoOverlap is returned.
func Order(cam painter.Camera, a, b painter.Triangle) Ordering {
	return order(cam, a, b.Plane())
}

func order(cam painter.Camera, a painter.Triangle, plane painter.Plane) Ordering {
	for _, v := range a {
		t, ok := painter.RayFromTo(cam.Position, v).MultiplierToPlane(plane)
		if !ok {
			continue
		}
		// NaN compares false in both branches and is skipped.
		if t > 1 {
			return InFront
		} else if t < 1 {
			return Behind
		}
	}
	return NoOverlap
}

// Sort returns the triangles ordered so that drawing them in sequence
// draws nearer triangles after farther ones. tris is not modified.
//
// Triangles are inserted one at a time in input order before the first
// already sorted triangle they are Behind, or appended if there is none.
// InFront and NoOverlap do not stop the scan.
func Sort(cam painter.Camera, tris []painter.Triangle) []painter.Triangle {
	sorted := make([]painter.Triangle, 0, len(tris))
	planes := make([]painter.Plane, 0, len(tris))
	for _, tri := range tris {
		i := insertionIndex(cam, tri, planes)
		sorted = append(sorted, painter.Triangle{})
		copy(sorted[i+1:], sorted[i:])
		sorted[i] = tri

		planes = append(planes, painter.Plane{})
		copy(planes[i+1:], planes[i:])
		planes[i] = tri.Plane()
	}
	return sorted
}

func insertionIndex(cam painter.Camera, tri painter.Triangle, planes []painter.Plane) int {
	for i, plane := range planes {
		if order(cam, tri, plane) == Behind {
			return i
		}
	}
	return len(planes)
}
