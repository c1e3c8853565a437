package geom

import (
	"math"

	"github.com/pkg/errors"
)

// TriangleASA solves a plane triangle given angle alpha at A, the side c between A and B
// and angle beta at B. Angles are in radians.
// It returns side b (A-C), angle gamma at C and side a (C-B).
func TriangleASA(alpha, c, beta float64) (b, gamma, a float64, err error) {
	if alpha <= 0.0 {
		return 0, 0, 0, errors.Wrapf(ErrDegenerateTriangle, "angle alpha must be > 0 not %v", alpha)
	}
	if c <= 0.0 {
		return 0, 0, 0, errors.Wrapf(ErrDegenerateTriangle, "side c must be > 0 not %v", c)
	}
	if beta <= 0.0 {
		return 0, 0, 0, errors.Wrapf(ErrDegenerateTriangle, "angle beta must be > 0 not %v", beta)
	}
	gamma = math.Pi - alpha - beta
	factor := c / math.Sin(gamma)
	a = factor * math.Sin(alpha)
	b = factor * math.Sin(beta)
	return b, gamma, a, nil
}

// AspectIntersection finds an unknown point seen from two positions on the X axis.
// d0 and d1 are the positions along the axis in metres, b0 and b1 are bearings (degrees) from those
// positions to the unknown point. The result is the point's distance along the axis and its Y offset.
func AspectIntersection(d0, b0, d1, b1 float64) (d, y float64, err error) {
	b0 = NormalizeDegrees(b0)
	b1 = NormalizeDegrees(b1)
	if d1 < d0 {
		d0, d1 = d1, d0
		b0, b1 = b1, b0
	}
	var alpha, beta float64
	positive := b0 < 180.0
	if positive {
		if b1 < b0 {
			return 0, 0, errors.Wrapf(ErrBearingHalfPlane, "both bearings must be 0-180, not %v <-> %v", b0, b1)
		}
		beta = Radians(b0)
		alpha = Radians(180.0 - b1)
	} else {
		if b1 > b0 {
			return 0, 0, errors.Wrapf(ErrBearingHalfPlane, "both bearings must be 180-360, not %v <-> %v", b0, b1)
		}
		beta = Radians(360.0 - b0)
		alpha = Radians(b1 - 180.0)
	}
	_, _, a, err := TriangleASA(alpha, d1-d0, beta)
	if err != nil {
		return 0, 0, err
	}
	d = d0 + a*math.Cos(beta)
	y = a * math.Sin(beta)
	if !positive {
		y = -y
	}
	return d, y, nil
}
