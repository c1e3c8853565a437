package geom

import (
	"math"
)

// A transit line runs from an object p through the observer o.
// The functions below describe where that line crosses the X axis.

// TransitXAxisIntercept returns X where the line p->o crosses the X axis
func TransitXAxisIntercept(p, o Point) float64 {
	return p.X + p.Y*(o.X-p.X)/(p.Y-o.Y)
}

// TransitBearing returns the bearing of the line p->o in degrees, in (-180, 180]
func TransitBearing(p, o Point) float64 {
	return Degrees(math.Atan2(o.Y-p.Y, o.X-p.X))
}

// TransitDistance returns length of p->o
func TransitDistance(p, o Point) float64 {
	return math.Sqrt(math.Pow(o.Y-p.Y, 2) + math.Pow(o.X-p.X, 2))
}

// TransitDistanceToXAxis returns the distance from p to the X axis along the line p->o
func TransitDistanceToXAxis(p, o Point) float64 {
	return TransitDistance(p, o) * p.Y / (p.Y - o.Y)
}

// TransitXAxisError returns the uncertainty of the X axis intercept given the uncertainty
// of the object and observer positions.
func TransitXAxisError(p, o Point, pErr, oErr float64) float64 {
	d := TransitDistance(p, o)
	dx := TransitDistanceToXAxis(p, o)
	return pErr - (pErr-oErr)*dx/d
}

// TransitLinePastObserver returns the point on the line from->to that lies overshoot metres
// further from "from" than the observer does.
func TransitLinePastObserver(from, to, observer Point, overshoot float64) Point {
	d := Distance(from, to)
	if d == 0 {
		return to
	}
	k := (Distance(from, observer) + overshoot) / d
	return Point{
		X: from.X + (to.X-from.X)*k,
		Y: from.Y + (to.Y-from.Y)*k,
	}
}

// TransitPointWithError shifts the line from->to sideways by err metres (positive is to the left
// when looking from "from" to "to"). It returns both shifted ends and the unchanged bearing.
func TransitPointWithError(from, to Point, err float64) (Point, Point, float64) {
	bearing := math.Atan2(to.Y-from.Y, to.X-from.X)
	dx := -err * math.Sin(bearing)
	dy := err * math.Cos(bearing)
	shift := Point{X: dx, Y: dy}
	return from.Add(shift), to.Add(shift), NormalizeDegrees(Degrees(bearing))
}
