package utils

import (
	"fmt"
	"math"
)

// Point is a position or direction vector in 3-space. Axisymmetric (RZ) and
// spherical (R) models use the leading components and leave the rest zero.
type Point [3]float64

func NewPoint(x, y, z float64) Point { return Point{x, y, z} }

func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point) Scale(a float64) Point {
	return Point{a * p[0], a * p[1], a * p[2]}
}

func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}

func (p Point) NormSq() float64 {
	return p.Dot(p)
}

func (p Point) Norm() float64 {
	return math.Sqrt(p.NormSq())
}

// Unit returns p scaled to unit length along with the original length
func (p Point) Unit() (u Point, norm float64) {
	norm = p.Norm()
	u = p.Scale(1. / norm)
	return
}

// NearestPointOnLine projects p onto the infinite line through a1,a2
func (p Point) NearestPointOnLine(a1, a2 Point) (q Point) {
	var (
		d = a2.Sub(a1)
		t = -(a1.Sub(p).Dot(d)) / d.NormSq()
	)
	q = a1.Add(d.Scale(t))
	return
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p[0], p[1], p[2])
}
