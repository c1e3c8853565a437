package geom

import (
	"math"
)

// Point is a position on the local plane in metres.
// X runs along the runway axis, Y is positive to the right of it.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// Add returns p shifted by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p shifted by -q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns euclidean distance between two points on the local plane
func Distance(a, b Point) float64 {
	return euclideanDistance(a, b)
}

// Bearing returns the angle from a to b in degrees [0, 360), measured from +X towards +Y
func Bearing(a, b Point) float64 {
	return NormalizeDegrees(Degrees(math.Atan2(b.Y-a.Y, b.X-a.X)))
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// AngleDifference returns the signed shortest difference a-b in degrees, in (-180, 180]
func AngleDifference(a, b float64) float64 {
	d := NormalizeDegrees(a - b)
	if d > 180.0 {
		d -= 360.0
	}
	return d
}
