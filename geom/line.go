package geom

import (
	"math"

	"github.com/pkg/errors"
)

// IntersectTwoLines returns the point where the line through a0, a1 crosses the line through b0, b1
func IntersectTwoLines(a0, a1, b0, b1 Point) (Point, error) {
	aVertical := a1.X == a0.X
	bVertical := b1.X == b0.X
	switch {
	case aVertical && bVertical:
		return Point{}, errors.Wrapf(ErrParallelLines, "both lines are vertical at x=%v and x=%v", a0.X, b0.X)
	case aVertical:
		m, c := slopeIntercept(b0, b1)
		return Point{X: a0.X, Y: m*a0.X + c}, nil
	case bVertical:
		m, c := slopeIntercept(a0, a1)
		return Point{X: b0.X, Y: m*b0.X + c}, nil
	}
	m0, c0 := slopeIntercept(a0, a1)
	m1, c1 := slopeIntercept(b0, b1)
	if m0 == m1 || math.Abs(m0-m1) < 1e-12*math.Max(math.Abs(m0), math.Abs(m1)) {
		return Point{}, errors.Wrapf(ErrParallelLines, "slope %v", m0)
	}
	x := (c1 - c0) / (m0 - m1)
	return Point{X: x, Y: m0*x + c0}, nil
}

func slopeIntercept(p0, p1 Point) (m, c float64) {
	m = (p1.Y - p0.Y) / (p1.X - p0.X)
	c = p0.Y - m*p0.X
	return m, c
}
