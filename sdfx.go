package mold

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/glgl/math/ms3"
)

type sdfxMold struct {
	s   sdf.SDF3
	eps float64
}

// FromSDFX adapts a github.com/deadsy/sdfx solid to a Mold. The gradient is computed
// in double precision by central differences with a step proportional to the solid's size.
func FromSDFX(s sdf.SDF3) Mold {
	if s == nil {
		panic("nil sdfx SDF3")
	}
	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	eps := 1e-4 * max(size.X, size.Y, size.Z)
	if eps <= 0 {
		eps = 1e-6
	}
	return &sdfxMold{s: s, eps: eps}
}

// SDFXRegion returns the extraction offset and radii enclosing the bounding box
// of s, enlarged by margin on every side so the surface does not touch the grid boundary.
func SDFXRegion(s sdf.SDF3, margin float32) (offset, radii ms3.Vec) {
	bb := s.BoundingBox()
	lo, hi := vecFrom64(bb.Min), vecFrom64(bb.Max)
	offset = ms3.Scale(0.5, ms3.Add(lo, hi))
	radii = addScalar(margin, ms3.Scale(0.5, ms3.Sub(hi, lo)))
	return offset, radii
}

func (m *sdfxMold) Value(p ms3.Vec) float32 {
	return float32(m.s.Evaluate(vecTo64(p)))
}

func (m *sdfxMold) Gradient(p ms3.Vec) ms3.Vec {
	q := vecTo64(p)
	e := m.eps
	d := func(dx, dy, dz float64) float64 {
		return m.s.Evaluate(v3.Vec{X: q.X + dx, Y: q.Y + dy, Z: q.Z + dz})
	}
	return vecFrom64(v3.Vec{
		X: (d(e, 0, 0) - d(-e, 0, 0)) / (2 * e),
		Y: (d(0, e, 0) - d(0, -e, 0)) / (2 * e),
		Z: (d(0, 0, e) - d(0, 0, -e)) / (2 * e),
	})
}

func (m *sdfxMold) Color(ms3.Vec) ms3.Vec { return white }

func vecTo64(p ms3.Vec) v3.Vec {
	return v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func vecFrom64(p v3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
}
