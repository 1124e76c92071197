package render

import (
	"errors"
	"io"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
)

// octree streams the iso-surface of a distance field mold as a triangle soup.
// Cubes whose center is farther from the surface than their half diagonal are
// discarded without being subdivided.
type octree struct {
	dc        dc3
	todo      []cube
	unwritten []ms3.Triangle
}

type ivec struct {
	x, y, z int
}

func (a ivec) Add(b ivec) ivec      { return ivec{x: a.x + b.x, y: a.y + b.y, z: a.z + b.z} }
func (a ivec) AddScalar(f int) ivec { return ivec{x: a.x + f, y: a.y + f, z: a.z + f} }

type cube struct {
	ivec     // origin of cube in smallest cube units
	lvl  int // level of cube, side = 1 << lvl
}

// Corner lattice offsets in marching cubes corner order.
var mcCornerOffsets = [8]ivec{
	{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 0, 0}, {0, 0, 0},
}

// NewOctreeRenderer returns a Renderer over the surface of m inside box, sampled
// with cubes of side cubeSize. The sampled region is the smallest power-of-two cube
// grid anchored at box.Min covering box. Pruning requires m.Value to never
// overestimate the distance to the surface, as is the case for signed distance fields.
// Unlike Extract, triangles do not share vertices.
func NewOctreeRenderer(m mold.Mold, box ms3.Box, cubeSize float32) (Renderer, error) {
	if m == nil {
		return nil, errors.New("nil mold")
	} else if !(cubeSize > 0) {
		return nil, errors.New("invalid octree cube size")
	}
	size := box.Size()
	longAxis := math32.Max(size.X, math32.Max(size.Y, size.Z))
	if !(longAxis > 0) {
		return nil, errors.New("empty octree render box")
	}
	levels := int(math32.Ceil(math32.Log2(longAxis / cubeSize)))
	if levels < 1 {
		levels = 1
	} else if levels > 20 {
		return nil, errors.New("octree cube size too small for box")
	}
	hdiag := make([]float32, levels+1)
	for i := range hdiag {
		s := float32(int(1)<<i) * cubeSize
		hdiag[i] = 0.5 * math32.Sqrt(3*s*s)
	}
	return &octree{
		dc: dc3{
			m:          m,
			origin:     box.Min,
			resolution: cubeSize,
			hdiag:      hdiag,
			cache:      make(map[ivec]float32),
		},
		todo: []cube{{lvl: levels}},
	}, nil
}

// ReadTriangles writes triangles rendered from the model into the argument buffer.
func (oc *octree) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	n = copy(dst, oc.unwritten)
	oc.unwritten = oc.unwritten[n:]
	var tmp [marchingCubesMaxTriangles]ms3.Triangle
	for n < len(dst) && len(oc.todo) > 0 {
		// Depth first.
		last := len(oc.todo) - 1
		c := oc.todo[last]
		oc.todo = oc.todo[:last]
		if c.lvl > 0 {
			oc.subdivide(c)
			continue
		}
		nt := oc.march(tmp[:], c.ivec)
		written := copy(dst[n:], tmp[:nt])
		oc.unwritten = append(oc.unwritten, tmp[written:nt]...)
		n += written
	}
	if len(oc.todo) == 0 && len(oc.unwritten) == 0 {
		return n, io.EOF // Done rendering model.
	}
	return n, nil
}

func (oc *octree) subdivide(c cube) {
	lvl := c.lvl - 1
	s := 1 << lvl
	for _, off := range mcCornerOffsets {
		sub := cube{ivec: c.Add(ivec{x: off.x * s, y: off.y * s, z: off.z * s}), lvl: lvl}
		if !oc.dc.IsEmpty(sub) {
			oc.todo = append(oc.todo, sub)
		}
	}
}

// march triangulates the smallest cube at origin o.
func (oc *octree) march(dst []ms3.Triangle, o ivec) int {
	var (
		corners [8]ms3.Vec
		values  [8]float32
	)
	config := 0
	for k, off := range mcCornerOffsets {
		corners[k], values[k] = oc.dc.Evaluate(o.Add(off))
		if values[k] >= 0 {
			config |= 1 << k
		}
	}
	edges := mcTriangleTable[config]
	nt := len(edges) / 3
	for i := 0; i < nt; i++ {
		for j := 0; j < 3; j++ {
			e := edges[3*i+j]
			a, b := mcEdgeCornerA[e], mcEdgeCornerB[e]
			dst[i][j] = edgeCrossing(corners[a], corners[b], values[a], values[b])
		}
	}
	return nt
}

// edgeCrossing interpolates the zero crossing between a and b. The result is
// clamped to the edge and is a when the values give no usable crossing.
func edgeCrossing(a, b ms3.Vec, va, vb float32) ms3.Vec {
	t := va / (va - vb)
	if !(t > 0) {
		// Also catches NaN from equal or NaN values.
		t = 0
	} else if t > 1 {
		t = 1
	}
	return ms3.Add(ms3.Scale(1-t, a), ms3.Scale(t, b))
}

// dc3 implements a 3 dimensional distance cache so that lattice points shared by
// neighboring cubes are evaluated once.
type dc3 struct {
	m          mold.Mold
	cache      map[ivec]float32 // cache of distances
	origin     ms3.Vec          // origin of the overall bounding cube
	resolution float32          // size of smallest octree cube
	hdiag      []float32        // lookup table of cube half diagonals
}

// Evaluate returns the position and field value of lattice point vi.
func (dc *dc3) Evaluate(vi ivec) (ms3.Vec, float32) {
	v := ms3.Add(dc.origin, ms3.Scale(dc.resolution, ms3.Vec{X: float32(vi.x), Y: float32(vi.y), Z: float32(vi.z)}))
	if dist, found := dc.cache[vi]; found {
		return v, dist
	}
	dist := dc.m.Value(v)
	dc.cache[vi] = dist
	return v, dist
}

// IsEmpty returns true if the cube contains no surface.
func (dc *dc3) IsEmpty(c cube) bool {
	if c.lvl == 0 {
		return false // No lattice point at the center.
	}
	// evaluate the mold at the center of the cube
	s := 1 << (c.lvl - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	// compare to the center/corner distance
	return math32.Abs(d) >= dc.hdiag[c.lvl]
}
