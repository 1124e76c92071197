package render

import (
	"io"
	"math"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
	"github.com/soypat/mold/internal/d3"
)

// Mesh is an indexed triangle mesh. Every three consecutive indices form a triangle.
type Mesh struct {
	Vertices []mold.Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (msh Mesh) TriangleCount() int { return len(msh.Indices) / 3 }

// Triangle returns the positions of the i'th triangle.
func (msh Mesh) Triangle(i int) ms3.Triangle {
	idx := msh.Indices[3*i : 3*i+3]
	return ms3.Triangle{
		msh.Vertices[idx[0]].Position,
		msh.Vertices[idx[1]].Position,
		msh.Vertices[idx[2]].Position,
	}
}

// Triangles expands the mesh into a triangle soup.
func (msh Mesh) Triangles() []ms3.Triangle {
	tris := make([]ms3.Triangle, msh.TriangleCount())
	for i := range tris {
		tris[i] = msh.Triangle(i)
	}
	return tris
}

// Reader returns a Renderer streaming the triangles of the mesh.
func (msh Mesh) Reader() Renderer {
	return &meshReader{mesh: msh}
}

type meshReader struct {
	mesh Mesh
	next int
}

func (r *meshReader) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	nt := r.mesh.TriangleCount()
	for n < len(dst) && r.next < nt {
		dst[n] = r.mesh.Triangle(r.next)
		n++
		r.next++
	}
	if r.next == nt {
		return n, io.EOF
	}
	return n, nil
}

// Bounds returns the axis aligned box enclosing all vertices. It returns the zero box
// for an empty mesh.
func (msh Mesh) Bounds() ms3.Box {
	if len(msh.Vertices) == 0 {
		return ms3.Box{}
	}
	box := ms3.Box{Min: msh.Vertices[0].Position, Max: msh.Vertices[0].Position}
	for _, v := range msh.Vertices[1:] {
		box.Min = ms3.MinElem(box.Min, v.Position)
		box.Max = ms3.MaxElem(box.Max, v.Position)
	}
	return box
}

// MeshStats summarizes the geometry of a mesh.
type MeshStats struct {
	Vertices  int
	Triangles int
	// Area is the total surface area.
	Area float64
	// Volume is the signed enclosed volume. Meshes extracted from molds wind their
	// triangles towards the solid so their volume is negative. Only meaningful for
	// closed meshes.
	Volume float64
	// Degenerate counts triangles with zero area.
	Degenerate int
}

// Stats measures the mesh in double precision.
func (msh Mesh) Stats() MeshStats {
	stats := MeshStats{
		Vertices:  len(msh.Vertices),
		Triangles: msh.TriangleCount(),
	}
	for i := 0; i < stats.Triangles; i++ {
		t := d3.FromMS3Triangle(msh.Triangle(i))
		area := t.Area()
		if area == 0 || math.IsNaN(area) {
			stats.Degenerate++
		}
		stats.Area += area
		stats.Volume += t.SignedVolume()
	}
	return stats
}
