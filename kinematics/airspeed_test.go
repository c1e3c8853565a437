package kinematics

import (
	"math"
	"testing"
	"time"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
)

func TestAirspeedHeading(t *testing.T) {
	got := AirspeedHeading(SpeedDirection{Speed: 100, Direction: 0}, SpeedDirection{Speed: 10, Direction: 90})
	if math.Abs(got.Speed-100.4987562112089) > eps || math.Abs(got.Direction-5.710593137499642) > eps {
		t.Errorf("AirspeedHeading = %+v, correct answer: (100.4987562112089, 5.710593137499642)", got)
	}
	calm := AirspeedHeading(SpeedDirection{Speed: 80, Direction: 127}, SpeedDirection{})
	if math.Abs(calm.Speed-80) > eps || math.Abs(calm.Direction-127) > eps {
		t.Errorf("No wind should not change anything: %+v", calm)
	}
}

func TestTrackFromFixes(t *testing.T) {
	base := time.Date(2017, 12, 31, 15, 11, 50, 0, time.UTC)
	fix := func(id int, offset int, lat, long, alt float64) Fix {
		return Fix{ID: id, Time: base.Add(time.Duration(offset) * time.Second), Position: geom.NewLatLong(lat, long), Altitude: alt}
	}
	fixes := []Fix{
		fix(405, 0, -33.599550, 151.215141, 43),
		fix(406, 7, -33.598109, 151.216812, 77),
		fix(407, 17, -33.595871, 151.218732, 140),
		fix(408, 23, -33.594448, 151.219963, 140),
		fix(410, 33, -33.593285, 151.222965, 175),
		fix(412, 39, -33.593329, 151.225653, 175),
	}
	legs, err := TrackFromFixes(fixes, SpeedDirection{Speed: 15, Direction: 25})
	if err != nil {
		t.Error(err)
		return
	}
	if len(legs) != 5 {
		t.Errorf("Expected 5 legs, got %d", len(legs))
		return
	}
	const tolerance = 0.001
	first := legs[0]
	if first.FromID != 405 || first.ToID != 406 || first.HasRateOfTurn {
		t.Errorf("Unexpected first leg %+v", first)
	}
	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"north", first.North, 160.1239},
		{"east", first.East, 154.6602},
		{"distance", first.Distance, 222.6195},
		{"dt", first.Dt, 7},
		{"ground speed", first.Ground.Speed, 61.8197},
		{"track", first.Ground.Direction, 44.0056},
		{"airspeed", first.Air.Speed, 76.1588},
		{"heading", first.Air.Direction, 40.3281},
		{"rate of climb", first.RateOfClimb, 291.4286},
		{"second dt", legs[1].Dt, 10},
		{"second ground speed", legs[1].Ground.Speed, 59.4149},
		{"second track", legs[1].Ground.Direction, 35.5494},
		{"second airspeed", legs[1].Air.Speed, 74.2122},
		{"second heading", legs[1].Air.Direction, 33.4287},
		{"second rate of climb", legs[1].RateOfClimb, 378},
		{"second rate of turn", legs[1].RateOfTurn, -0.68994},
		{"last ground speed", legs[4].Ground.Speed, 80.6219},
		{"last track", legs[4].Ground.Direction, 91.1258},
		{"last airspeed", legs[4].Air.Speed, 87.7713},
		{"last heading", legs[4].Air.Direction, 82.1350},
		{"last rate of turn", legs[4].RateOfTurn, 4.135785},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.expected) > tolerance {
			t.Errorf("%s = %v, correct answer: %v", c.name, c.got, c.expected)
		}
	}
	if !legs[1].HasRateOfTurn {
		t.Error("Second leg should have a rate of turn")
	}
}

func TestTrackFromFixesErrors(t *testing.T) {
	now := time.Now()
	if _, err := TrackFromFixes([]Fix{{ID: 1, Time: now}}, SpeedDirection{}); !errors.Is(err, ErrInsufficientObservations) {
		t.Errorf("Expected ErrInsufficientObservations, got %v", err)
	}
	fixes := []Fix{{ID: 1, Time: now}, {ID: 2, Time: now}}
	if _, err := TrackFromFixes(fixes, SpeedDirection{}); !errors.Is(err, ErrUnsorted) {
		t.Errorf("Expected ErrUnsorted, got %v", err)
	}
}
