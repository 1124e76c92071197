package d3

import (
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

type Triangle [3]r3.Vec

// FromMS3Triangle widens a single precision triangle.
func FromMS3Triangle(t ms3.Triangle) Triangle {
	return Triangle{FromMS3(t[0]), FromMS3(t[1]), FromMS3(t[2])}
}

// Normal returns the unnormalized normal following the right hand rule on the vertex order.
func (t Triangle) Normal() r3.Vec {
	return r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
}

// Area returns the surface area of the triangle.
func (t Triangle) Area() float64 {
	return r3.Norm(t.Normal()) / 2
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin. Summed over a closed mesh it yields the enclosed volume,
// positive when the triangles wind counter-clockwise seen from outside.
func (t Triangle) SignedVolume() float64 {
	return r3.Dot(t[0], r3.Cross(t[1], t[2])) / 6
}
