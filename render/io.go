package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1024)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// triangleBuffer is a Renderer over an in-memory triangle slice.
type triangleBuffer struct {
	buf []ms3.Triangle
}

// ReadTriangles reads from this buffer.
func (b *triangleBuffer) ReadTriangles(t []ms3.Triangle) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// NewTriangleRenderer returns a Renderer that reads back model.
func NewTriangleRenderer(model []ms3.Triangle) Renderer {
	return &triangleBuffer{buf: model}
}
