package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	NODETOL = 1.e-12
)

// ToVec lifts a 1, 2 or 3 component coordinate into r3, missing axes are zero
func ToVec(x []float64) (v r3.Vec) {
	switch {
	case len(x) >= 3:
		v.Z = x[2]
		fallthrough
	case len(x) == 2:
		v.Y = x[1]
		fallthrough
	case len(x) == 1:
		v.X = x[0]
	}
	return
}

// TriangleArea is the unsigned area of the triangle a-b-c
func TriangleArea(a, b, c []float64) float64 {
	pa := ToVec(a)
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(ToVec(b), pa), r3.Sub(ToVec(c), pa)))
}

/*
FlatRatio is the radius ratio R/(2r) of a triangle, where R is the
circumradius and r the inradius:

	R/(2r) = l1*l2*l3*s / (8*A^2),  s = (l1+l2+l3)/2

It is exactly 1 for an equilateral triangle and grows without bound as the
triangle collapses onto a line. A triangle with zero area returns +Inf.
*/
func FlatRatio(a, b, c []float64) float64 {
	var (
		pa, pb, pc = ToVec(a), ToVec(b), ToVec(c)
		l1         = r3.Norm(r3.Sub(pb, pa))
		l2         = r3.Norm(r3.Sub(pc, pb))
		l3         = r3.Norm(r3.Sub(pa, pc))
		area       = TriangleArea(a, b, c)
	)
	if area <= NODETOL*NODETOL*(l1*l1+l2*l2+l3*l3) {
		return math.Inf(1)
	}
	s := 0.5 * (l1 + l2 + l3)
	return l1 * l2 * l3 * s / (8 * area * area)
}
