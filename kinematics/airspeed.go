package kinematics

import (
	"math"
	"time"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/units"
	"github.com/pkg/errors"
)

// metresPerDegree of latitude, one nautical mile per minute of arc
const metresPerDegree = 1852 * 60

// SpeedDirection is a speed with a direction in degrees.
// For ground speed the direction is the track, for wind where it blows from.
type SpeedDirection struct {
	Speed     float64
	Direction float64
}

// AirspeedHeading returns airspeed and heading from ground speed, track and wind
func AirspeedHeading(ground, wind SpeedDirection) SpeedDirection {
	rel := geom.Radians(wind.Direction - ground.Direction)
	head := wind.Speed * math.Cos(rel)
	cross := wind.Speed * math.Sin(rel)
	drift := geom.Degrees(math.Atan2(cross, ground.Speed+head))
	return SpeedDirection{
		Speed:     math.Hypot(ground.Speed+head, cross),
		Direction: ground.Direction + drift,
	}
}

// Fix is a timestamped position, for example from photograph metadata
type Fix struct {
	ID       int
	Time     time.Time
	Position geom.LatLong
	Altitude float64
}

// Leg is the motion between two successive fixes. Speeds are in knots.
type Leg struct {
	FromID   int
	ToID     int
	North    float64
	East     float64
	Distance float64
	Dt       float64
	Ground   SpeedDirection
	Air      SpeedDirection
	// RateOfClimb is 60 * altitude change per second
	RateOfClimb float64
	// RateOfTurn in degrees per second of heading, not defined for the first leg
	RateOfTurn    float64
	HasRateOfTurn bool
}

// TrackFromFixes computes ground and air legs between successive fixes for a constant wind
func TrackFromFixes(fixes []Fix, wind SpeedDirection) ([]Leg, error) {
	if len(fixes) < 2 {
		return nil, errors.Wrapf(ErrInsufficientObservations, "%d fixes", len(fixes))
	}
	ret := make([]Leg, 0, len(fixes)-1)
	for i := 1; i < len(fixes); i++ {
		a, b := fixes[i-1], fixes[i]
		dt := b.Time.Sub(a.Time).Seconds()
		if dt <= 0 {
			return nil, errors.Wrapf(ErrUnsorted, "fix %d is not after fix %d", b.ID, a.ID)
		}
		latMid := (a.Position.Lat + b.Position.Lat) / 2.0
		north := metresPerDegree * (b.Position.Lat - a.Position.Lat)
		east := metresPerDegree * (b.Position.Long - a.Position.Long) * math.Cos(geom.Radians(latMid))
		d := math.Hypot(north, east)
		ground := SpeedDirection{
			Speed:     units.MPSToInternationalKnots(d / dt),
			Direction: geom.Degrees(math.Atan2(east, north)),
		}
		leg := Leg{
			FromID:      a.ID,
			ToID:        b.ID,
			North:       north,
			East:        east,
			Distance:    d,
			Dt:          dt,
			Ground:      ground,
			Air:         AirspeedHeading(ground, wind),
			RateOfClimb: 60 * (b.Altitude - a.Altitude) / dt,
		}
		if len(ret) > 0 {
			leg.RateOfTurn = (leg.Air.Direction - ret[len(ret)-1].Air.Direction) / dt
			leg.HasRateOfTurn = true
		}
		ret = append(ret, leg)
	}
	return ret, nil
}
