package dataset

import (
	"time"

	"github.com/LdDl/trajectory-go/geom"
	kin "github.com/LdDl/trajectory-go/kinematics"
)

// VHNOOWind is the wind during the VH-NOO climb out of Sydney, knots from degrees true
var VHNOOWind = kin.SpeedDirection{Speed: 15, Direction: 25}

// VHNOOFixes are positions from the metadata of photographs taken from VH-NOO.
// Altitudes are in feet.
func VHNOOFixes() []kin.Fix {
	at := func(hour, min, sec int) time.Time {
		return time.Date(2017, 12, 31, hour, min, sec, 0, time.UTC)
	}
	return []kin.Fix{
		{ID: 405, Time: at(15, 11, 50), Position: geom.NewLatLong(-33.599550, 151.215141), Altitude: 43},
		{ID: 406, Time: at(15, 11, 57), Position: geom.NewLatLong(-33.598109, 151.216812), Altitude: 77},
		{ID: 407, Time: at(15, 12, 7), Position: geom.NewLatLong(-33.595871, 151.218732), Altitude: 140},
		{ID: 408, Time: at(15, 12, 13), Position: geom.NewLatLong(-33.594448, 151.219963), Altitude: 140},
		{ID: 410, Time: at(15, 12, 23), Position: geom.NewLatLong(-33.593285, 151.222965), Altitude: 175},
		{ID: 412, Time: at(15, 12, 29), Position: geom.NewLatLong(-33.593329, 151.225653), Altitude: 175},
	}
}
