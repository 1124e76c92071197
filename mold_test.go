package mold

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/glgl/math/ms3"
)

func TestNewVertex(t *testing.T) {
	const tol = 1e-6
	s, err := NewSphere(1)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p          ms3.Vec
		wantNormal ms3.Vec
		wantU      float32
		wantV      float32
	}{
		{p: ms3.Vec{X: 1}, wantNormal: ms3.Vec{X: -1}, wantU: 0, wantV: 0},
		{p: ms3.Vec{Y: 2}, wantNormal: ms3.Vec{Y: -1}, wantU: 0.5, wantV: 0},
		{p: ms3.Vec{Z: -1}, wantNormal: ms3.Vec{Z: 1}, wantU: 0, wantV: -1},
		{p: ms3.Vec{X: -3}, wantNormal: ms3.Vec{X: 1}, wantU: 1, wantV: 0},
	} {
		v := NewVertex(s, test.p)
		if v.Position != test.p {
			t.Errorf("position changed: got %v, want %v", v.Position, test.p)
		}
		if !equalElem(v.Normal, test.wantNormal, tol) {
			t.Errorf("normal at %v: got %v, want %v", test.p, v.Normal, test.wantNormal)
		}
		if math32.Abs(v.Coords[0]-test.wantU) > tol || math32.Abs(v.Coords[1]-test.wantV) > tol {
			t.Errorf("coords at %v: got %v, want (%g,%g)", test.p, v.Coords, test.wantU, test.wantV)
		}
	}

	flat := Funcs{
		ValueFunc:    func(ms3.Vec) float32 { return 0 },
		GradientFunc: func(ms3.Vec) ms3.Vec { return ms3.Vec{} },
	}
	p := ms3.Vec{X: 1, Y: 2, Z: 3}
	if got := NewVertex(flat, p); got != (Vertex{Position: p}) {
		t.Errorf("zero gradient vertex: got %+v", got)
	}
}

func TestCentralDifference(t *testing.T) {
	quadratic := func(p ms3.Vec) float32 { return p.X*p.X + 2*p.Y*p.Y + 3*p.Z*p.Z }
	got := CentralDifference(quadratic, ms3.Vec{X: 1, Y: 1, Z: 1}, DefaultEpsilon)
	want := ms3.Vec{X: 2, Y: 4, Z: 6}
	if !equalElem(got, want, 1e-3) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Funcs falls back to central differences.
	f := Funcs{ValueFunc: quadratic}
	if g := f.Gradient(ms3.Vec{X: 1, Y: 1, Z: 1}); !equalElem(g, want, 1e-3) {
		t.Errorf("Funcs gradient: got %v, want %v", g, want)
	}
	if c := f.Color(ms3.Vec{}); c != white {
		t.Errorf("Funcs default color: got %v", c)
	}
}

func TestPrimitiveErrors(t *testing.T) {
	for name, err := range map[string]error{
		"sphere":           second(NewSphere(0)),
		"box":              second(NewBox(1, -1, 1, 0)),
		"box rounding":     second(NewBox(1, 1, 1, 0.6)),
		"cylinder":         second(NewCylinder(0, 1, 0)),
		"cylinder rounded": second(NewCylinder(1, 1, 1)),
		"torus":            second(NewTorus(1, 0)),
		"torus ring":       second(NewTorus(1, 2)),
	} {
		if err == nil {
			t.Errorf("%s: expected error for invalid parameters", name)
		}
	}
}

func second(_ Mold, err error) error { return err }

func TestPrimitiveValues(t *testing.T) {
	const tol = 1e-5
	sphere, _ := NewSphere(1)
	box, _ := NewBox(2, 2, 2, 0)
	cyl, _ := NewCylinder(1, 2, 0)
	torus, _ := NewTorus(1, 0.25)
	for _, test := range []struct {
		name string
		m    Mold
		p    ms3.Vec
		want float32
	}{
		{"sphere center", sphere, ms3.Vec{}, -1},
		{"sphere outside", sphere, ms3.Vec{X: 2}, 1},
		{"box center", box, ms3.Vec{}, -1},
		{"box face", box, ms3.Vec{Y: 1}, 0},
		{"box outside", box, ms3.Vec{X: 2}, 1},
		{"box corner", box, ms3.Vec{X: 2, Y: 2, Z: 1}, math32.Sqrt2},
		{"cylinder center", cyl, ms3.Vec{}, -1},
		{"cylinder side", cyl, ms3.Vec{X: 2}, 1},
		{"cylinder cap", cyl, ms3.Vec{Z: 2}, 1},
		{"torus tube", torus, ms3.Vec{X: 1}, -0.25},
		{"torus hole", torus, ms3.Vec{}, 0.75},
	} {
		got := test.m.Value(test.p)
		if math32.Abs(got-test.want) > tol {
			t.Errorf("%s: got %g, want %g", test.name, got, test.want)
		}
	}
}

func TestPrimitiveGradients(t *testing.T) {
	const tol = 1e-2
	sphere, _ := NewSphere(1)
	box, _ := NewBox(2, 2, 2, 0.1)
	cyl, _ := NewCylinder(1, 2, 0.1)
	torus, _ := NewTorus(1, 0.25)
	for _, test := range []struct {
		name string
		m    Mold
		p    ms3.Vec
		want ms3.Vec
	}{
		{"sphere", sphere, ms3.Vec{X: 3}, ms3.Vec{X: 1}},
		{"sphere origin", sphere, ms3.Vec{}, ms3.Vec{Z: 1}},
		{"box", box, ms3.Vec{Z: 1.5}, ms3.Vec{Z: 1}},
		{"cylinder", cyl, ms3.Vec{Y: -1.5}, ms3.Vec{Y: -1}},
		{"torus outer", torus, ms3.Vec{X: 1.5}, ms3.Vec{X: 1}},
		{"torus inner", torus, ms3.Vec{Y: 0.5}, ms3.Vec{Y: -1}},
		{"torus above", torus, ms3.Vec{X: 1, Z: 1}, ms3.Vec{Z: 1}},
	} {
		got := ms3.Unit(test.m.Gradient(test.p))
		if !equalElem(got, test.want, tol) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestOperations(t *testing.T) {
	const tol = 1e-5
	a, _ := NewSphere(1)
	b := Paint(Translate(a, ms3.Vec{X: 1.5}), ms3.Vec{X: 1})
	red := ms3.Vec{X: 1}

	u := Union(a, b)
	if got := u.Value(ms3.Vec{X: 2}); math32.Abs(got-(-0.5)) > tol {
		t.Errorf("union value: got %g, want -0.5", got)
	}
	if got := u.Color(ms3.Vec{X: 2.5}); got != red {
		t.Errorf("union color follows nearest mold: got %v", got)
	}
	if got := u.Color(ms3.Vec{X: -1}); got != white {
		t.Errorf("union color follows nearest mold: got %v", got)
	}
	if Union(a) != a {
		t.Error("single mold union should return the mold")
	}

	in := Intersection(a, b)
	if got := in.Value(ms3.Vec{X: 0.75}); math32.Abs(got-(-0.25)) > tol {
		t.Errorf("intersection value: got %g, want -0.25", got)
	}
	if got := in.Value(ms3.Vec{}); got < 0 {
		t.Errorf("origin not in intersection: got %g", got)
	}

	d := Difference(a, b)
	if got := d.Value(ms3.Vec{X: 0.75}); got < 0 {
		t.Errorf("carved point inside difference: got %g", got)
	}
	if got := d.Value(ms3.Vec{X: -0.5}); math32.Abs(got-(-0.5)) > tol {
		t.Errorf("difference value: got %g, want -0.5", got)
	}
	// Carved surface gradient points into the removed mold.
	if g := d.Gradient(ms3.Vec{X: 0.6}); g.X <= 0 {
		t.Errorf("difference gradient should point towards +x: got %v", g)
	}
	if got := d.Color(ms3.Vec{X: 0.6}); got != white {
		t.Errorf("difference color: got %v", got)
	}

	su := SmoothUnion(a, b, 0.5)
	for _, p := range []ms3.Vec{{}, {X: 0.75}, {X: 2}, {Y: 3}} {
		if got, want := su.Value(p), u.Value(p); got > want+tol {
			t.Errorf("smooth union above union at %v: got %g, want <= %g", p, got, want)
		}
	}
	if got := su.Value(ms3.Vec{X: -10}); math32.Abs(got-u.Value(ms3.Vec{X: -10})) > tol {
		t.Errorf("smooth union far from seam should match union: got %g", got)
	}

	s := Scale(a, 2)
	if got := s.Value(ms3.Vec{X: 2}); math32.Abs(got) > tol {
		t.Errorf("scaled sphere surface: got %g, want 0", got)
	}
	if got := s.Value(ms3.Vec{X: 4}); math32.Abs(got-2) > tol {
		t.Errorf("scaled sphere distance: got %g, want 2", got)
	}
}

func TestScalePanics(t *testing.T) {
	a, _ := NewSphere(1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero scale factor")
		}
	}()
	Scale(a, 0)
}

func TestNoise(t *testing.T) {
	cfg := DefaultNoiseConfig()
	n1, err := NewNoise(cfg)
	if err != nil {
		t.Fatal(err)
	}
	n2, _ := NewNoise(cfg)
	points := []ms3.Vec{{X: 1, Y: 2, Z: 3}, {X: -4.5, Y: 0.25, Z: 11}, {X: 30, Y: -7, Z: 0.5}}
	for _, p := range points {
		v1, v2 := n1.Value(p), n2.Value(p)
		if v1 != v2 {
			t.Errorf("noise not deterministic at %v: %g != %g", p, v1, v2)
		}
		if math32.IsNaN(v1) || math32.IsInf(v1, 0) {
			t.Errorf("bad noise value at %v: %g", p, v1)
		}
		g := n1.Gradient(p)
		if math32.IsNaN(g.X) || math32.IsNaN(g.Y) || math32.IsNaN(g.Z) {
			t.Errorf("bad noise gradient at %v: %v", p, g)
		}
	}

	bad := cfg
	bad.Octaves = 0
	if _, err := NewNoise(bad); err == nil {
		t.Error("expected error for zero octaves")
	}
	bad = cfg
	bad.Persistence = -1
	if _, err := NewNoise(bad); err == nil {
		t.Error("expected error for negative persistence")
	}
}

func TestFromSDFX(t *testing.T) {
	const tol = 1e-3
	s, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	m := FromSDFX(s)
	if got := m.Value(ms3.Vec{X: 2}); math32.Abs(got-1) > tol {
		t.Errorf("value: got %g, want 1", got)
	}
	if got := m.Value(ms3.Vec{}); got >= 0 {
		t.Errorf("origin should be inside: got %g", got)
	}
	if g := ms3.Unit(m.Gradient(ms3.Vec{X: 2})); !equalElem(g, ms3.Vec{X: 1}, tol) {
		t.Errorf("gradient: got %v, want +x", g)
	}
	offset, radii := SDFXRegion(s, 0.5)
	if !equalElem(offset, ms3.Vec{}, tol) || !equalElem(radii, ms3.Vec{X: 1.5, Y: 1.5, Z: 1.5}, tol) {
		t.Errorf("region: got offset %v radii %v", offset, radii)
	}
}

func TestOffsetShellElongate(t *testing.T) {
	const tol = 1e-5
	a, _ := NewSphere(1)

	grown := Offset(a, 0.5)
	if got := grown.Value(ms3.Vec{X: 1.5}); math32.Abs(got) > tol {
		t.Errorf("offset surface: got %g, want 0", got)
	}

	sh := Shell(a, 0.2)
	for _, test := range []struct {
		p    ms3.Vec
		want float32
	}{
		{ms3.Vec{X: 1}, -0.1},
		{ms3.Vec{}, 0.9},
		{ms3.Vec{Y: 2}, 0.9},
	} {
		if got := sh.Value(test.p); math32.Abs(got-test.want) > tol {
			t.Errorf("shell at %v: got %g, want %g", test.p, got, test.want)
		}
	}
	// Inner wall gradient points towards the hollow center.
	if g := sh.Gradient(ms3.Vec{X: 0.5}); g.X >= 0 {
		t.Errorf("inner shell gradient: got %v", g)
	}

	capsule := Elongate(a, ms3.Vec{Z: -2})
	for _, test := range []struct {
		p    ms3.Vec
		want float32
	}{
		{ms3.Vec{X: 1, Z: 0.7}, 0},
		{ms3.Vec{Z: 2}, 0},
		{ms3.Vec{Z: -3}, 1},
		{ms3.Vec{}, -1},
	} {
		if got := capsule.Value(test.p); math32.Abs(got-test.want) > tol {
			t.Errorf("elongated at %v: got %g, want %g", test.p, got, test.want)
		}
	}
}

func equalElem(a, b ms3.Vec, tol float32) bool {
	d := ms3.AbsElem(ms3.Sub(a, b))
	return d.X <= tol && d.Y <= tol && d.Z <= tol
}
