package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EarthRadius is the equatorial radius used by all great circle calculations
const EarthRadius = orb.EarthRadius

// LatLong is a geodetic position in degrees
type LatLong struct {
	Lat  float64
	Long float64
}

func NewLatLong(lat, long float64) LatLong {
	return LatLong{
		Lat:  lat,
		Long: long,
	}
}

func (ll LatLong) String() string {
	return fmt.Sprintf("(%.7f, %.7f)", ll.Lat, ll.Long)
}

func (ll LatLong) point() orb.Point {
	return orb.Point{ll.Long, ll.Lat}
}

func latLongFrom(p orb.Point) LatLong {
	return LatLong{Lat: p.Lat(), Long: p.Lon()}
}

// DistanceLatLong returns great circle distance in metres
func DistanceLatLong(a, b LatLong) float64 {
	return geo.DistanceHaversine(a.point(), b.point())
}

// BearingLatLong returns initial great circle bearing from a to b in degrees [0, 360)
func BearingLatLong(a, b LatLong) float64 {
	return NormalizeDegrees(geo.Bearing(a.point(), b.point()))
}

// DestinationLatLong returns the position reached from p after distance metres on the given bearing
func DestinationLatLong(p LatLong, bearing, distance float64) LatLong {
	return latLongFrom(geo.PointAtBearingAndDistance(p.point(), bearing, distance))
}

// MeanBearing returns the average of bearings in degrees. Bearings are assumed to be close to each other.
func MeanBearing(bearings ...float64) float64 {
	if len(bearings) == 0 {
		return 0
	}
	ref := bearings[0]
	sum := 0.0
	for _, b := range bearings {
		sum += AngleDifference(b, ref)
	}
	return NormalizeDegrees(ref + sum/float64(len(bearings)))
}
