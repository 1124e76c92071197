package mold

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

type union struct {
	molds []Mold
}

// Union joins molds. The gradient and color at a point are those of the mold with the
// smallest value there. Union panics if called with no arguments.
func Union(molds ...Mold) Mold {
	if len(molds) == 0 {
		panic("need at least one mold for union")
	}
	if len(molds) == 1 {
		return molds[0]
	}
	return &union{molds: molds}
}

func (u *union) nearest(p ms3.Vec) Mold {
	best := u.molds[0]
	v := best.Value(p)
	for _, m := range u.molds[1:] {
		if mv := m.Value(p); mv < v {
			best, v = m, mv
		}
	}
	return best
}

func (u *union) Value(p ms3.Vec) float32 {
	v := u.molds[0].Value(p)
	for _, m := range u.molds[1:] {
		v = math32.Min(v, m.Value(p))
	}
	return v
}

func (u *union) Gradient(p ms3.Vec) ms3.Vec { return u.nearest(p).Gradient(p) }
func (u *union) Color(p ms3.Vec) ms3.Vec    { return u.nearest(p).Color(p) }

type intersection struct {
	a, b Mold
}

// Intersection returns the region contained in both a and b.
func Intersection(a, b Mold) Mold {
	return &intersection{a: a, b: b}
}

func (s *intersection) active(p ms3.Vec) Mold {
	if s.a.Value(p) >= s.b.Value(p) {
		return s.a
	}
	return s.b
}

func (s *intersection) Value(p ms3.Vec) float32 {
	return math32.Max(s.a.Value(p), s.b.Value(p))
}

func (s *intersection) Gradient(p ms3.Vec) ms3.Vec { return s.active(p).Gradient(p) }
func (s *intersection) Color(p ms3.Vec) ms3.Vec    { return s.active(p).Color(p) }

type difference struct {
	a, b Mold
}

// Difference returns a with b carved out of it. Surfaces created by the carving take
// the color of a.
func Difference(a, b Mold) Mold {
	return &difference{a: a, b: b}
}

func (s *difference) Value(p ms3.Vec) float32 {
	return math32.Max(s.a.Value(p), -s.b.Value(p))
}

func (s *difference) Gradient(p ms3.Vec) ms3.Vec {
	if s.a.Value(p) >= -s.b.Value(p) {
		return s.a.Gradient(p)
	}
	return ms3.Scale(-1, s.b.Gradient(p))
}

func (s *difference) Color(p ms3.Vec) ms3.Vec { return s.a.Color(p) }

type smoothUnion struct {
	a, b Mold
	k    float32
}

// SmoothUnion joins a and b blending the seam over a distance of roughly k.
func SmoothUnion(a, b Mold, k float32) Mold {
	if k <= 0 {
		return Union(a, b)
	}
	return &smoothUnion{a: a, b: b, k: k}
}

// mix returns the blend factor h of b relative to a.
func (s *smoothUnion) mix(p ms3.Vec) (va, vb, h float32) {
	va, vb = s.a.Value(p), s.b.Value(p)
	h = clampf(0.5+0.5*(va-vb)/s.k, 0, 1)
	return va, vb, h
}

func (s *smoothUnion) Value(p ms3.Vec) float32 {
	va, vb, h := s.mix(p)
	return mixf(va, vb, h) - s.k*h*(1-h)
}

func (s *smoothUnion) Gradient(p ms3.Vec) ms3.Vec {
	_, _, h := s.mix(p)
	return ms3.Add(ms3.Scale(1-h, s.a.Gradient(p)), ms3.Scale(h, s.b.Gradient(p)))
}

func (s *smoothUnion) Color(p ms3.Vec) ms3.Vec {
	_, _, h := s.mix(p)
	return ms3.Add(ms3.Scale(1-h, s.a.Color(p)), ms3.Scale(h, s.b.Color(p)))
}

type translate struct {
	m Mold
	t ms3.Vec
}

// Translate moves m by t.
func Translate(m Mold, t ms3.Vec) Mold {
	return &translate{m: m, t: t}
}

func (s *translate) Value(p ms3.Vec) float32    { return s.m.Value(ms3.Sub(p, s.t)) }
func (s *translate) Gradient(p ms3.Vec) ms3.Vec { return s.m.Gradient(ms3.Sub(p, s.t)) }
func (s *translate) Color(p ms3.Vec) ms3.Vec    { return s.m.Color(ms3.Sub(p, s.t)) }

type scale struct {
	m      Mold
	factor float32
	inv    float32
}

// Scale uniformly scales m about the origin. Scale panics if factor is not positive.
func Scale(m Mold, factor float32) Mold {
	if factor <= 0 {
		panic("scale factor must be positive")
	}
	return &scale{m: m, factor: factor, inv: 1 / factor}
}

func (s *scale) Value(p ms3.Vec) float32 {
	return s.m.Value(ms3.Scale(s.inv, p)) * s.factor
}

func (s *scale) Gradient(p ms3.Vec) ms3.Vec { return s.m.Gradient(ms3.Scale(s.inv, p)) }
func (s *scale) Color(p ms3.Vec) ms3.Vec    { return s.m.Color(ms3.Scale(s.inv, p)) }

type paint struct {
	Mold
	color ms3.Vec
}

// Paint returns m with a uniform color.
func Paint(m Mold, color ms3.Vec) Mold {
	return &paint{Mold: m, color: color}
}

func (s *paint) Color(ms3.Vec) ms3.Vec { return s.color }

type offset struct {
	Mold
	distance float32
}

// Offset grows m by distance. Negative distances shrink it.
func Offset(m Mold, distance float32) Mold {
	return &offset{Mold: m, distance: distance}
}

func (s *offset) Value(p ms3.Vec) float32 { return s.Mold.Value(p) - s.distance }

type shell struct {
	Mold
	delta float32 // half shell thickness
}

// Shell hollows m leaving a wall of the given thickness centered on its surface.
// Shell panics if thickness is not positive.
func Shell(m Mold, thickness float32) Mold {
	if thickness <= 0 {
		panic("shell thickness must be positive")
	}
	return &shell{Mold: m, delta: thickness / 2}
}

func (s *shell) Value(p ms3.Vec) float32 { return math32.Abs(s.Mold.Value(p)) - s.delta }

func (s *shell) Gradient(p ms3.Vec) ms3.Vec {
	g := s.Mold.Gradient(p)
	if s.Mold.Value(p) < 0 {
		return ms3.Scale(-1, g)
	}
	return g
}

type elongate struct {
	m      Mold
	hp, hn ms3.Vec // positive/negative elongation vector
}

// Elongate stretches m about the origin by h, inserting straight sections
// of length |h| along each axis.
func Elongate(m Mold, h ms3.Vec) Mold {
	h = ms3.AbsElem(h)
	return &elongate{
		m:  m,
		hp: ms3.Scale(0.5, h),
		hn: ms3.Scale(-0.5, h),
	}
}

func (s *elongate) q(p ms3.Vec) ms3.Vec {
	return ms3.Sub(p, ms3.MaxElem(s.hn, ms3.MinElem(p, s.hp)))
}

func (s *elongate) Value(p ms3.Vec) float32    { return s.m.Value(s.q(p)) }
func (s *elongate) Gradient(p ms3.Vec) ms3.Vec { return s.m.Gradient(s.q(p)) }
func (s *elongate) Color(p ms3.Vec) ms3.Vec    { return s.m.Color(s.q(p)) }

func addScalar(f float32, v ms3.Vec) ms3.Vec {
	return ms3.Vec{X: v.X + f, Y: v.Y + f, Z: v.Z + f}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

func mixf(x, y, a float32) float32 {
	return x*(1-a) + y*a
}
