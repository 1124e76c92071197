// Package mold defines scalar fields ("molds") that describe solids and the vertex
// type produced when their iso-surface is extracted by package render.
//
// A mold is negative inside the solid and non-negative outside. The surface sits where
// the value crosses zero. A value of exactly zero counts as outside.
package mold

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Mold is the interface to a 3D scalar field with a gradient and a color.
// Implementations must be pure functions of position: the extractor may evaluate a
// mold from several goroutines when generating disjoint regions.
type Mold interface {
	// Value returns the field at p. It is negative if p is contained in the solid.
	Value(p ms3.Vec) float32
	// Gradient returns the direction of steepest increase of Value at p.
	// It need not be normalized.
	Gradient(p ms3.Vec) ms3.Vec
	// Color returns the tint of the solid at p.
	Color(p ms3.Vec) ms3.Vec
}

// Vertex is a point on an extracted surface.
type Vertex struct {
	Position ms3.Vec
	// Normal is the negated unit gradient at Position.
	Normal ms3.Vec
	// Coords are the u, v texture coordinates derived from the normal's azimuth and z component.
	Coords [2]float32
}

// NewVertex builds the surface vertex at p. A zero gradient yields zero normal and coords.
func NewVertex(m Mold, p ms3.Vec) Vertex {
	g := m.Gradient(p)
	norm := ms3.Norm(g)
	if norm == 0 {
		return Vertex{Position: p}
	}
	n := ms3.Scale(1/norm, g)
	return Vertex{
		Position: p,
		Normal:   ms3.Scale(-1, n),
		Coords:   [2]float32{math32.Atan2(n.Y, n.X) / math32.Pi, n.Z},
	}
}

// DefaultEpsilon is the step used for numeric gradients when none is configured.
const DefaultEpsilon = 0.05

// CentralDifference approximates the gradient of value at p using central differences
// with step eps along each axis.
func CentralDifference(value func(ms3.Vec) float32, p ms3.Vec, eps float32) ms3.Vec {
	inv := 1 / (2 * eps)
	return ms3.Vec{
		X: (value(ms3.Vec{X: p.X + eps, Y: p.Y, Z: p.Z}) - value(ms3.Vec{X: p.X - eps, Y: p.Y, Z: p.Z})) * inv,
		Y: (value(ms3.Vec{X: p.X, Y: p.Y + eps, Z: p.Z}) - value(ms3.Vec{X: p.X, Y: p.Y - eps, Z: p.Z})) * inv,
		Z: (value(ms3.Vec{X: p.X, Y: p.Y, Z: p.Z + eps}) - value(ms3.Vec{X: p.X, Y: p.Y, Z: p.Z - eps})) * inv,
	}
}

var white = ms3.Vec{X: 1, Y: 1, Z: 1}

// Funcs implements Mold with closures. ValueFunc is required.
// A nil GradientFunc is replaced by central differences of ValueFunc with step Epsilon
// (DefaultEpsilon if zero). A nil ColorFunc paints the solid white.
type Funcs struct {
	ValueFunc    func(ms3.Vec) float32
	GradientFunc func(ms3.Vec) ms3.Vec
	ColorFunc    func(ms3.Vec) ms3.Vec
	Epsilon      float32
}

var _ Mold = Funcs{}

func (f Funcs) Value(p ms3.Vec) float32 { return f.ValueFunc(p) }

func (f Funcs) Gradient(p ms3.Vec) ms3.Vec {
	if f.GradientFunc != nil {
		return f.GradientFunc(p)
	}
	eps := f.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	return CentralDifference(f.ValueFunc, p, eps)
}

func (f Funcs) Color(p ms3.Vec) ms3.Vec {
	if f.ColorFunc != nil {
		return f.ColorFunc(p)
	}
	return white
}
