package render

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mold"
)

// Resolution is the number of voxels along each axis of an extraction grid.
type Resolution struct {
	X, Y, Z int
}

// Voxels returns the total amount of voxels in the grid.
func (r Resolution) Voxels() int { return r.X * r.Y * r.Z }

// noVertex marks an edge slot whose vertex has not been emitted yet.
const noVertex = ^uint32(0)

// Extract triangulates the zero iso-surface of m inside the box spanning
// offset-radii to offset+radii, split into res voxels. It returns the
// deduplicated surface vertices and a triangle list of indices into them.
//
// Extract panics if a resolution component is smaller than 1 or a radius is not positive.
// Calls are independent of each other and may run concurrently if m is safe for
// concurrent use.
func Extract(offset, radii ms3.Vec, res Resolution, m mold.Mold) ([]mold.Vertex, []uint32) {
	if m == nil {
		panic("nil mold")
	} else if res.X < 1 || res.Y < 1 || res.Z < 1 {
		panic("resolution must be 1 or larger along every axis")
	} else if !(radii.X > 0 && radii.Y > 0 && radii.Z > 0) {
		panic("extraction radii must be positive")
	}
	mc := newMarcher(offset, radii, res, m)
	mc.march()
	return mc.vertices, mc.indices
}

// ExtractBox is a convenience wrapper of Extract over box.
func ExtractBox(box ms3.Box, res Resolution, m mold.Mold) Mesh {
	offset := box.Center()
	radii := ms3.Scale(0.5, box.Size())
	v, idx := Extract(offset, radii, res, m)
	return Mesh{Vertices: v, Indices: idx}
}

// marcher holds the state of a single streaming marching cubes pass. Only two lattice
// planes of field values and edge vertices are live at any time: "done" is the plane
// at the bottom of the current voxel layer, "doing" the plane at its top.
type marcher struct {
	m   mold.Mold
	res Resolution
	// Lattice coordinates along each axis.
	xs, ys, zs []float32
	// stride is the amount of lattice points in a lattice row.
	stride int

	done, doing []float32
	// Edge vertex indices of the x and y edges on the done and doing planes.
	// Slot 2*lattice is the x edge starting at the lattice point, 2*lattice+1 the y edge.
	doneXY, doingXY []uint32
	// zEdges holds the edges crossing the current layer, one per lattice point.
	zEdges []uint32

	vertices []mold.Vertex
	indices  []uint32
}

func newMarcher(offset, radii ms3.Vec, res Resolution, m mold.Mold) *marcher {
	plane := (res.X + 1) * (res.Y + 1)
	mc := &marcher{
		m:       m,
		res:     res,
		xs:      latticeAxis(offset.X, radii.X, res.X),
		ys:      latticeAxis(offset.Y, radii.Y, res.Y),
		zs:      latticeAxis(offset.Z, radii.Z, res.Z),
		stride:  res.X + 1,
		done:    make([]float32, plane),
		doing:   make([]float32, plane),
		doneXY:  make([]uint32, 2*plane),
		doingXY: make([]uint32, 2*plane),
		zEdges:  make([]uint32, plane),
	}
	fill(mc.doneXY, noVertex)
	fill(mc.doingXY, noVertex)
	fill(mc.zEdges, noVertex)
	return mc
}

func latticeAxis(offset, radius float32, n int) []float32 {
	step := 2 * radius / float32(n)
	coords := make([]float32, n+1)
	for i := range coords {
		coords[i] = float32(i)*step - radius + offset
	}
	return coords
}

func (mc *marcher) march() {
	var (
		corners [8]ms3.Vec
		values  [8]float32
	)
	for zi := 0; zi < mc.res.Z; zi++ {
		z0, z1 := mc.zs[zi], mc.zs[zi+1]
		for yi := 0; yi < mc.res.Y; yi++ {
			y0, y1 := mc.ys[yi], mc.ys[yi+1]
			for xi := 0; xi < mc.res.X; xi++ {
				x0, x1 := mc.xs[xi], mc.xs[xi+1]
				corners = [8]ms3.Vec{
					{X: x0, Y: y1, Z: z1},
					{X: x1, Y: y1, Z: z1},
					{X: x1, Y: y1, Z: z0},
					{X: x0, Y: y1, Z: z0},
					{X: x0, Y: y0, Z: z1},
					{X: x1, Y: y0, Z: z1},
					{X: x1, Y: y0, Z: z0},
					{X: x0, Y: y0, Z: z0},
				}
				mc.cornerValues(&values, &corners, xi, yi, zi)
				config := 0
				for k, v := range values {
					if v >= 0 {
						config |= 1 << k
					}
				}
				for _, edge := range mcTriangleTable[config] {
					slot := mc.edgeSlot(edge, xi, yi)
					if *slot == noVertex {
						*slot = mc.emit(edge, &corners, &values)
					}
					mc.indices = append(mc.indices, *slot)
				}
			}
		}
		mc.done, mc.doing = mc.doing, mc.done
		mc.doneXY, mc.doingXY = mc.doingXY, mc.doneXY
		fill(mc.doingXY, noVertex)
		fill(mc.zEdges, noVertex)
	}
}

// cornerValues loads the field values at the voxel corners. A lattice point is sampled
// by the first voxel that touches it in z, y, x traversal order and read back from the
// plane buffers by every later voxel.
func (mc *marcher) cornerValues(dst *[8]float32, corners *[8]ms3.Vec, xi, yi, zi int) {
	lo := yi*mc.stride + xi // lattice point (xi, yi)
	hi := lo + mc.stride    // lattice point (xi, yi+1)
	dst[0] = mc.sample(mc.doing, hi, corners[0], xi > 0)
	dst[1] = mc.sample(mc.doing, hi+1, corners[1], false)
	dst[4] = mc.sample(mc.doing, lo, corners[4], xi > 0 || yi > 0)
	dst[5] = mc.sample(mc.doing, lo+1, corners[5], yi > 0)
	first := zi == 0
	dst[3] = mc.sample(mc.done, hi, corners[3], xi > 0 || !first)
	dst[2] = mc.sample(mc.done, hi+1, corners[2], !first)
	dst[7] = mc.sample(mc.done, lo, corners[7], xi > 0 || yi > 0 || !first)
	dst[6] = mc.sample(mc.done, lo+1, corners[6], yi > 0 || !first)
}

func (mc *marcher) sample(plane []float32, idx int, p ms3.Vec, cached bool) float32 {
	if !cached {
		plane[idx] = mc.m.Value(p)
	}
	return plane[idx]
}

const (
	planeDone = iota
	planeDoing
	planeZ
)

// mcEdgeLattice locates each cube edge relative to the voxel's (xi, yi) lattice point.
// Axis is 0 for x edges and 1 for y edges. Edges on planeZ run along z.
var mcEdgeLattice = [12]struct {
	dx, dy, plane, axis int
}{
	0:  {dx: 0, dy: 1, plane: planeDoing, axis: 0},
	1:  {dx: 1, dy: 1, plane: planeZ},
	2:  {dx: 0, dy: 1, plane: planeDone, axis: 0},
	3:  {dx: 0, dy: 1, plane: planeZ},
	4:  {dx: 0, dy: 0, plane: planeDoing, axis: 0},
	5:  {dx: 1, dy: 0, plane: planeZ},
	6:  {dx: 0, dy: 0, plane: planeDone, axis: 0},
	7:  {dx: 0, dy: 0, plane: planeZ},
	8:  {dx: 0, dy: 0, plane: planeDoing, axis: 1},
	9:  {dx: 1, dy: 0, plane: planeDoing, axis: 1},
	10: {dx: 1, dy: 0, plane: planeDone, axis: 1},
	11: {dx: 0, dy: 0, plane: planeDone, axis: 1},
}

// edgeSlot returns the vertex slot shared by every voxel that contains the edge.
func (mc *marcher) edgeSlot(edge uint8, xi, yi int) *uint32 {
	e := mcEdgeLattice[edge]
	lattice := (yi+e.dy)*mc.stride + xi + e.dx
	switch e.plane {
	case planeDone:
		return &mc.doneXY[2*lattice+e.axis]
	case planeDoing:
		return &mc.doingXY[2*lattice+e.axis]
	}
	return &mc.zEdges[lattice]
}

// emit interpolates the zero crossing along edge and appends the vertex there.
func (mc *marcher) emit(edge uint8, corners *[8]ms3.Vec, values *[8]float32) uint32 {
	a, b := mcEdgeCornerA[edge], mcEdgeCornerB[edge]
	p := edgeCrossing(corners[a], corners[b], values[a], values[b])
	mc.vertices = append(mc.vertices, mold.NewVertex(mc.m, p))
	return uint32(len(mc.vertices) - 1)
}

func fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}
