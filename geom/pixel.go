package geom

import (
	"image"
	"math"
)

// PixelPoint is a position on a north-up satellite image or a video frame.
// X grows to the right (east), Y grows downwards (south).
type PixelPoint struct {
	X float64
	Y float64
}

func NewPixelPoint(x, y float64) PixelPoint {
	return PixelPoint{
		X: x,
		Y: y,
	}
}

// PixelOffset is a displacement in pixels between two images of the same scene
type PixelOffset struct {
	X float64
	Y float64
}

// Rectangle is a pixel selection box
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// Center returns the middle of the box
func (r Rectangle) Center() PixelPoint {
	return PixelPoint{X: r.X + r.Width/2.0, Y: r.Y + r.Height/2.0}
}

// Diagonal returns length of the box diagonal in pixels
func (r Rectangle) Diagonal() float64 {
	return math.Sqrt(math.Pow(r.Width, 2) + math.Pow(r.Height, 2))
}

// PixelDistance returns distance in metres between two image points at scale metres per pixel
func PixelDistance(a, b PixelPoint, scale float64) float64 {
	north := a.Y - b.Y
	east := b.X - a.X
	return scale * math.Sqrt(north*north+east*east)
}

// PixelBearing returns compass bearing in degrees [0, 360) from a to b on a north-up image
func PixelBearing(a, b PixelPoint) float64 {
	north := a.Y - b.Y
	east := b.X - a.X
	bearing := Degrees(math.Atan2(east, north))
	if bearing < 0 {
		bearing += 360.0
	}
	return bearing
}

// PixelBearingMinMax returns the extreme bearings a->b when both ends may be displaced by ±disp pixels on each axis
func PixelBearingMinMax(a, b PixelPoint, disp float64) (float64, float64) {
	displacements := [2]float64{-disp, disp}
	minBearing, maxBearing := math.Inf(1), math.Inf(-1)
	for _, dxa := range displacements {
		for _, dya := range displacements {
			for _, dxb := range displacements {
				for _, dyb := range displacements {
					bearing := PixelBearing(
						PixelPoint{X: a.X + dxa, Y: a.Y + dya},
						PixelPoint{X: b.X + dxb, Y: b.Y + dyb},
					)
					minBearing = math.Min(minBearing, bearing)
					maxBearing = math.Max(maxBearing, bearing)
				}
			}
		}
	}
	return minBearing, maxBearing
}

// TranslateRotate moves pt into a frame centred on origin and rotated by rotation degrees
func TranslateRotate(pt PixelPoint, rotation float64, origin PixelPoint) PixelPoint {
	cos := math.Cos(Radians(rotation))
	sin := math.Sin(Radians(rotation))
	return PixelPoint{
		X: (origin.Y-pt.Y)*cos - (origin.X-pt.X)*sin,
		Y: -((origin.X-pt.X)*cos + (origin.Y-pt.Y)*sin),
	}
}

// PixelTranslate moves pt by length pixels along a compass bearing
func PixelTranslate(pt PixelPoint, bearing, length float64) PixelPoint {
	return PixelPoint{
		X: pt.X + length*math.Sin(Radians(bearing)),
		Y: pt.Y - length*math.Cos(Radians(bearing)),
	}
}

// PixelMidPoint returns the point halfway between a and b
func PixelMidPoint(a, b PixelPoint) PixelPoint {
	return PixelPoint{X: (a.X + b.X) / 2.0, Y: (a.Y + b.Y) / 2.0}
}

// ImageTransform converts image positions to the local plane.
// Origin is the pixel of the local plane origin, AxisBearing the compass bearing of the X axis
// and Scale the number of metres per pixel.
type ImageTransform struct {
	Origin      PixelPoint
	AxisBearing float64
	Scale       float64
}

// ToLocal returns position of pt on the local plane
func (it ImageTransform) ToLocal(pt PixelPoint) Point {
	dist := PixelDistance(it.Origin, pt, it.Scale)
	angle := Radians(PixelBearing(it.Origin, pt) - it.AxisBearing)
	return Point{
		X: dist * math.Cos(angle),
		Y: dist * math.Sin(angle),
	}
}

// DistanceTolerance returns position uncertainty in metres for a point at distance d from the threshold.
// Before the threshold (d < 0) it grows linearly from 10m to 100m at -2500m.
func DistanceTolerance(d float64) float64 {
	ret := 10.0
	if d < 0 {
		ret += d * (100.0 - ret) / -2500.0
	}
	return ret
}
