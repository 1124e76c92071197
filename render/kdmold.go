package render

import (
	"errors"
	"math"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
	"github.com/soypat/mold/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ mold.Mold        = (*kdMold)(nil)
	_ kdtree.Interface = kdVertices{}
	_ kdtree.Bounder   = kdVertices{}
)

// NewMeshMold returns a mold approximating the solid enclosed by msh. Its value is
// the distance to the nearest mesh vertex, negative when the point lies behind that
// vertex's surface normal. It can be used to resample or combine previously
// extracted meshes. Vertices with zero normal are ignored.
func NewMeshMold(msh Mesh) (mold.Mold, error) {
	kv := make(kdVertices, 0, len(msh.Vertices))
	for _, v := range msh.Vertices {
		if v.Normal == (ms3.Vec{}) {
			continue
		}
		kv = append(kv, kdVertex{
			pos: d3.FromMS3(v.Position),
			// Extracted normals point into the solid.
			out: r3.Scale(-1, d3.FromMS3(v.Normal)),
		})
	}
	if len(kv) == 0 {
		return nil, errors.New("mesh has no vertices with normals")
	}
	return &kdMold{tree: kdtree.New(kv, true)}, nil
}

type kdMold struct {
	tree *kdtree.Tree
}

// nearest returns the mesh vertex nearest to p.
func (s *kdMold) nearest(p ms3.Vec) kdVertex {
	got, _ := s.tree.Nearest(kdVertex{pos: d3.FromMS3(p)})
	return got.(kdVertex)
}

func (s *kdMold) Value(p ms3.Vec) float32 {
	q := d3.FromMS3(p)
	v := s.nearest(p)
	dir := r3.Sub(q, v.pos)
	return float32(math.Copysign(r3.Norm(dir), r3.Dot(dir, v.out)))
}

func (s *kdMold) Gradient(p ms3.Vec) ms3.Vec {
	out := s.nearest(p).out
	return ms3.Vec{X: float32(out.X), Y: float32(out.Y), Z: float32(out.Z)}
}

func (s *kdMold) Color(ms3.Vec) ms3.Vec { return ms3.Vec{X: 1, Y: 1, Z: 1} }

// Bounds returns the box enclosing the mesh vertices.
func (s *kdMold) Bounds() ms3.Box {
	bb := s.tree.Root.Bounding
	lo, hi := bb.Min.(kdVertex).pos, bb.Max.(kdVertex).pos
	return ms3.Box{
		Min: ms3.Vec{X: float32(lo.X), Y: float32(lo.Y), Z: float32(lo.Z)},
		Max: ms3.Vec{X: float32(hi.X), Y: float32(hi.Y), Z: float32(hi.Z)},
	}
}

type kdVertex struct {
	pos r3.Vec
	out r3.Vec // Unit normal pointing out of the solid.
}

type kdVertices []kdVertex

func (k kdVertices) Index(i int) kdtree.Comparable {
	return k[i]
}

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

func (k kdVertices) Bounds() *kdtree.Bounding {
	set := make(d3.Set, len(k))
	for i := range k {
		set[i] = k[i].pos
	}
	return &kdtree.Bounding{
		Min: kdVertex{pos: set.Min()},
		Max: kdVertex{pos: set.Max()},
	}
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int {
	return 3
}

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(kdVertex).pos))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.pos.X - b.pos.X
	case 1:
		c = a.pos.Y - b.pos.Y
	case 2:
		c = a.pos.Z - b.pos.Z
	}
	return c
}

type kdPlane struct {
	dim      int
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
