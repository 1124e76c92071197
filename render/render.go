// Package render extracts triangle meshes from molds with marching cubes and
// writes them out as STL, binary glTF or preview images.
package render

import (
	"github.com/soypat/glgl/math/ms3"
)

// Renderer streams triangles. ReadTriangles fills dst and returns the amount of
// triangles written. It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (n int, err error)
}
