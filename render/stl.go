package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/painter"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
	// stlBufferLen is the number of triangles read from a Renderer per batch.
	stlBufferLen = 1 << 8
)

var ErrEmptySTL = errors.New("STL contains no triangles")

// CreateSTL writes every triangle read from r to a binary STL file at path.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Triangle count is unknown until the Renderer is drained. Leave room for
	// the header and go back to fill it in.
	_, err = file.Seek(stlHeaderSize, io.SeekStart)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	count, err := writeSTLTriangles(bw, r)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEmptySTL
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header := stlHeader{Count: count}
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes the triangles of a scene to w in binary STL format.
func WriteSTL(w io.Writer, model []painter.Triangle) error {
	if len(model) == 0 {
		return ErrEmptySTL
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	_, err := writeSTLTriangles(w, NewSliceRenderer(model))
	return err
}

// ReadSTL reads a binary STL. Triangles whose stored normal disagrees with
// the normal computed from their vertices are kept and reported with an
// error wrapping ErrNormalMismatch.
func ReadSTL(r io.Reader) ([]painter.Triangle, error) {
	return readBinarySTL(bufio.NewReader(r))
}

// writeSTLTriangles drains r into w and returns the number of triangles written.
func writeSTLTriangles(w io.Writer, r Renderer) (count uint32, err error) {
	var (
		tris [stlBufferLen]painter.Triangle
		b    [stlBufferLen * stlTriangleSize]byte
		n    int
	)
	for err == nil {
		n, err = r.ReadTriangles(tris[:])
		if n > len(tris) {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		for i, t := range tris[:n] {
			stlTriangleFrom(t).put(b[i*stlTriangleSize:])
		}
		if _, werr := w.Write(b[:n*stlTriangleSize]); werr != nil {
			return count, werr
		}
		count += uint32(n)
	}
	if err == io.EOF {
		err = nil
	}
	return count, err
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

func readBinarySTL(r io.Reader) (output []painter.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, ErrEmptySTL
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, ErrNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	// header.Count is untrusted input.
	output = make([]painter.Triangle, 0, min(int(header.Count), 1<<16))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, ErrNormalMismatch) {
				return nil, err
			}
			normMismatches++
			readErr = fmt.Errorf("%d triangles: %w", normMismatches, err)
		}
		output = append(output, d.triangle())
	}
	return output, readErr
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func stlTriangleFrom(t painter.Triangle) stlTriangle {
	return stlTriangle{
		Normal:  vecTo3F32(t.Normal()),
		Vertex1: vecTo3F32(t[0]),
		Vertex2: vecTo3F32(t[1]),
		Vertex3: vecTo3F32(t[2]),
	}
}

func (t stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1]
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// attributes ignored.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

// ErrNormalMismatch is reported by ReadSTL for triangles whose stored normal
// is not approximately equal to the normal calculated from their vertices.
var ErrNormalMismatch = errors.New("STL triangle normal does not match vertex winding")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("STL triangle is degenerate")
	}
	calc := vecTo3F32(t.triangle().Normal())
	calcNeg := [3]float32{-calc[0], -calc[1], -calc[2]}
	if !equalWithin3F32(calc, t.Normal, normTol) && !equalWithin3F32(calcNeg, t.Normal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (t stlTriangle) triangle() painter.Triangle {
	return painter.Triangle{
		vecFrom3F32(t.Vertex1),
		vecFrom3F32(t.Vertex2),
		vecFrom3F32(t.Vertex3),
	}
}

func vecFrom3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func vecTo3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
