package geom

import (
	"sort"

	"github.com/pkg/errors"
)

// Interpolate returns linear interpolation of ys at x.
// xs must be sorted ascending. Values outside xs are extrapolated from the first or last segment.
func Interpolate(xs, ys []float64, x float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, errors.Wrapf(ErrLengthMismatch, "x: %d != y: %d", len(xs), len(ys))
	}
	i := sort.SearchFloat64s(xs, x)
	if i == len(xs) {
		if len(xs) < 2 {
			return 0, errors.Wrap(ErrCannotExtrapolate, "overflow")
		}
		n := len(xs)
		slope := (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
		return ys[n-1] + slope*(x-xs[n-1]), nil
	}
	if xs[i] == x {
		return ys[i], nil
	}
	if i == 0 {
		if len(xs) < 2 {
			return 0, errors.Wrap(ErrCannotExtrapolate, "underflow")
		}
		slope := (ys[1] - ys[0]) / (xs[1] - xs[0])
		return ys[0] + slope*(x-xs[0]), nil
	}
	frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + frac*(ys[i]-ys[i-1]), nil
}

// InterpolateBetweenTwoPoints returns the point frac of the way from a to b
func InterpolateBetweenTwoPoints(a, b LatLong, frac float64) LatLong {
	return LatLong{
		Lat:  a.Lat + frac*(b.Lat-a.Lat),
		Long: a.Long + frac*(b.Long-a.Long),
	}
}
