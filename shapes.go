package mold

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// gradEps is the central difference step used by primitives without an analytic gradient.
const gradEps = 1e-3

type sphere struct {
	r float32
}

// NewSphere returns a sphere of radius r centered at the origin.
func NewSphere(r float32) (Mold, error) {
	if r <= 0 {
		return nil, errors.New("zero or negative sphere radius")
	}
	return &sphere{r: r}, nil
}

func (s *sphere) Value(p ms3.Vec) float32 {
	return ms3.Norm(p) - s.r
}

func (s *sphere) Gradient(p ms3.Vec) ms3.Vec {
	if p == (ms3.Vec{}) {
		return ms3.Vec{Z: 1}
	}
	return ms3.Unit(p)
}

func (s *sphere) Color(ms3.Vec) ms3.Vec { return white }

type box struct {
	half  ms3.Vec
	round float32
}

// NewBox returns a box centered at the origin with side lengths x, y, z and
// edges rounded with radius round.
func NewBox(x, y, z, round float32) (Mold, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, errors.New("zero or negative box dimension")
	} else if round < 0 || round > x/2 || round > y/2 || round > z/2 {
		return nil, errors.New("invalid box rounding value")
	}
	return &box{half: ms3.Vec{X: x / 2, Y: y / 2, Z: z / 2}, round: round}, nil
}

func (s *box) Value(p ms3.Vec) float32 {
	q := addScalar(s.round, ms3.Sub(ms3.AbsElem(p), s.half))
	outside := ms3.Norm(ms3.MaxElem(q, ms3.Vec{}))
	inside := math32.Min(math32.Max(q.X, math32.Max(q.Y, q.Z)), 0)
	return outside + inside - s.round
}

func (s *box) Gradient(p ms3.Vec) ms3.Vec {
	return CentralDifference(s.Value, p, gradEps)
}

func (s *box) Color(ms3.Vec) ms3.Vec { return white }

type cylinder struct {
	r     float32
	h     float32
	round float32
}

// NewCylinder returns a cylinder of radius r and height h with its axis along z.
// The rim is rounded with radius rounding.
func NewCylinder(r, h, rounding float32) (Mold, error) {
	if r <= 0 || h <= 0 {
		return nil, errors.New("zero or negative cylinder dimension")
	} else if rounding < 0 || rounding >= r || rounding > h/2 {
		return nil, errors.New("invalid cylinder rounding")
	}
	return &cylinder{r: r, h: h, round: rounding}, nil
}

func (c *cylinder) Value(p ms3.Vec) float32 {
	d1 := math32.Hypot(p.X, p.Y) - c.r + c.round
	d2 := math32.Abs(p.Z) - (c.h/2 - c.round)
	return math32.Min(math32.Max(d1, d2), 0) + math32.Hypot(math32.Max(d1, 0), math32.Max(d2, 0)) - c.round
}

func (c *cylinder) Gradient(p ms3.Vec) ms3.Vec {
	return CentralDifference(c.Value, p, gradEps)
}

func (c *cylinder) Color(ms3.Vec) ms3.Vec { return white }

type torus struct {
	greater float32
	lesser  float32
}

// NewTorus returns a torus lying on the xy plane. greaterRadius is the distance from
// the origin to the center of the tube and ringRadius the radius of the tube.
func NewTorus(greaterRadius, ringRadius float32) (Mold, error) {
	if greaterRadius <= 0 || ringRadius <= 0 {
		return nil, errors.New("zero or negative torus radius")
	} else if ringRadius >= greaterRadius {
		return nil, errors.New("torus ring radius must be smaller than greater radius")
	}
	return &torus{greater: greaterRadius, lesser: ringRadius}, nil
}

func (t *torus) Value(p ms3.Vec) float32 {
	q := math32.Hypot(p.X, p.Y) - t.greater
	return math32.Hypot(q, p.Z) - t.lesser
}

func (t *torus) Gradient(p ms3.Vec) ms3.Vec {
	rho := math32.Hypot(p.X, p.Y)
	q := rho - t.greater
	h := math32.Hypot(q, p.Z)
	if rho == 0 || h == 0 {
		return CentralDifference(t.Value, p, gradEps)
	}
	k := q / (h * rho)
	return ms3.Vec{X: k * p.X, Y: k * p.Y, Z: p.Z / h}
}

func (t *torus) Color(ms3.Vec) ms3.Vec { return white }
