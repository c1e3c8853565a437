package geom

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wroge/wgs84"
)

// Projection maps geodetic positions onto a local plane whose origin is a datum point
// and whose X axis has a given compass bearing.
type Projection interface {
	ToXY(ll LatLong) (Point, error)
	ToLatLong(p Point) (LatLong, error)
	Name() string
}

const (
	ProjectionHaversine = "haversine"
	ProjectionUTM       = "utm"
)

// NewProjection creates a projection by name
func NewProjection(name string, datum LatLong, axisBearing float64) (Projection, error) {
	switch name {
	case ProjectionHaversine, "":
		return NewHaversineProjection(datum, axisBearing), nil
	case ProjectionUTM:
		return NewUTMProjection(datum, axisBearing)
	default:
		return nil, errors.Errorf("unknown projection '%s'", name)
	}
}

// HaversineProjection uses great circle distance and bearing from the datum as polar coordinates
type HaversineProjection struct {
	datum       LatLong
	axisBearing float64
}

func NewHaversineProjection(datum LatLong, axisBearing float64) *HaversineProjection {
	return &HaversineProjection{
		datum:       datum,
		axisBearing: axisBearing,
	}
}

func (hp *HaversineProjection) Name() string {
	return ProjectionHaversine
}

func (hp *HaversineProjection) ToXY(ll LatLong) (Point, error) {
	angle := Radians(BearingLatLong(hp.datum, ll) - hp.axisBearing)
	radius := DistanceLatLong(hp.datum, ll)
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}, nil
}

func (hp *HaversineProjection) ToLatLong(p Point) (LatLong, error) {
	bearing := Degrees(math.Atan2(p.Y, p.X)) + hp.axisBearing
	radius := math.Hypot(p.X, p.Y)
	return DestinationLatLong(hp.datum, bearing, radius), nil
}

type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 {
	return s.a
}

func (s spheroid) Fi() float64 {
	return s.fi
}

// UTMProjection uses easting/northing differences in the UTM zone of the datum.
// The axis bearing is taken relative to grid north.
type UTMProjection struct {
	datum       LatLong
	axisBearing float64
	zone        int
	forward     func(a, b, c float64) (a2, b2, c2 float64)
	inverse     func(a, b, c float64) (a2, b2, c2 float64)
	easting     float64
	northing    float64
}

// NewUTMProjection creates a transverse mercator projection for the UTM zone containing datum
func NewUTMProjection(datum LatLong, axisBearing float64) (*UTMProjection, error) {
	if datum.Lat < -80 || datum.Lat > 84 {
		return nil, errors.Errorf("latitude %v is outside of UTM coverage", datum.Lat)
	}
	zone := int(math.Floor((datum.Long+180.0)/6.0)) + 1
	centralMeridian := float64(zone)*6.0 - 183.0
	falseNorthing := 0.0
	code := 32600 + zone
	if datum.Lat < 0 {
		falseNorthing = 10000000.0
		code = 32700 + zone
	}
	utmDatum := wgs84.Datum{
		Spheroid: spheroid{
			a: 6378137, fi: 298.257223563,
		},
		Area: wgs84.AreaFunc(func(lon, lat float64) bool {
			return lon >= centralMeridian-3 && lon <= centralMeridian+3 && lat >= -80 && lat <= 84
		}),
	}
	proj := utmDatum.TransverseMercator(centralMeridian, 0, 0.9996, 500000, falseNorthing)
	epsg := wgs84.EPSG()
	epsg.Add(code, proj)
	up := &UTMProjection{
		datum:       datum,
		axisBearing: axisBearing,
		zone:        zone,
		forward:     wgs84.Transform(wgs84.WGS84().LonLat(), epsg.Code(code)),
		inverse:     wgs84.Transform(epsg.Code(code), wgs84.WGS84().LonLat()),
	}
	up.easting, up.northing, _ = up.forward(datum.Long, datum.Lat, 0)
	if math.IsNaN(up.easting) || math.IsNaN(up.northing) {
		return nil, errors.Errorf("can't project datum %s", datum)
	}
	return up, nil
}

func (up *UTMProjection) Name() string {
	return ProjectionUTM
}

// Zone returns UTM zone number of the datum
func (up *UTMProjection) Zone() int {
	return up.zone
}

func (up *UTMProjection) ToXY(ll LatLong) (Point, error) {
	e, n, _ := up.forward(ll.Long, ll.Lat, 0)
	if math.IsNaN(e) || math.IsNaN(n) {
		return Point{}, errors.Errorf("can't project %s", ll)
	}
	de := e - up.easting
	dn := n - up.northing
	angle := math.Atan2(de, dn) - Radians(up.axisBearing)
	radius := math.Hypot(de, dn)
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}, nil
}

func (up *UTMProjection) ToLatLong(p Point) (LatLong, error) {
	bearing := math.Atan2(p.Y, p.X) + Radians(up.axisBearing)
	radius := math.Hypot(p.X, p.Y)
	lon, lat, _ := up.inverse(up.easting+radius*math.Sin(bearing), up.northing+radius*math.Cos(bearing), 0)
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return LatLong{}, errors.Errorf("can't unproject %v", p)
	}
	return LatLong{Lat: lat, Long: lon}, nil
}
