package dataset

import (
	"sort"

	"github.com/LdDl/trajectory-go/geom"
	kin "github.com/LdDl/trajectory-go/kinematics"
	"github.com/pkg/errors"
)

// ErrUnknownLabel is returned for a position label missing from the Google Earth table
var ErrUnknownLabel = errors.New("unknown Google Earth label")

// googleEarthURLs are satellite positions of landmarks seen in the video
const googleEarthURLs = `
# Tower positions in the open nearest 15 threshold
Tower 1: https://www.google.com/maps/@-23.001859,-47.148885,59m/data=!3m1!1e3?hl=en
Tower 2: https://www.google.com/maps/@-23.002109,-47.148531,59m/data=!3m1!1e3?hl=en
Tower 3: https://www.google.com/maps/@-23.002358,-47.148179,59m/data=!3m1!1e3?hl=en
Tower 4: https://www.google.com/maps/@-23.002612,-47.147815,59m/data=!3m1!1e3?hl=en
Tower 5: https://www.google.com/maps/@-23.002856,-47.147467,59m/data=!3m1!1e3?hl=en
Tower 6: https://www.google.com/maps/@-23.003107,-47.147108,59m/data=!3m1!1e3?hl=en

# Tower positions furthest to the northeast wing of terminal 1
Tower 7: https://www.google.com/maps/@-23.0039523,-47.1506005,59m/data=!3m1!1e3?hl=en
# Adjusted to even tower spacing of 45.6 m
Tower 8: https://www.google.com/maps/@-23.0042123,-47.1502560,59m/data=!3m1!1e3?hl=en
Tower 9: https://www.google.com/maps/@-23.0044700,-47.1499050,59m/data=!3m1!1e3?hl=en
Tower 10: https://www.google.com/maps/@-23.0047257,-47.1495659,59m/data=!3m1!1e3?hl=en
Tower 11: https://www.google.com/maps/@-23.0049800,-47.1492158,59m/data=!3m1!1e3?hl=en
Tower 12: https://www.google.com/maps/@-23.0052343,-47.1488650,59m/data=!3m1!1e3?hl=en

# Tower positions furthest to the southwest wing of terminal 1
Tower 13: https://www.google.com/maps/@-23.005718,-47.151876,59m/data=!3m1!1e3?hl=en
Tower 14: https://www.google.com/maps/@-23.005967,-47.151523,59m/data=!3m1!1e3?hl=en
Tower 15: https://www.google.com/maps/@-23.006215,-47.151173,59m/data=!3m1!1e3?hl=en
Tower 16: https://www.google.com/maps/@-23.006463,-47.150828,59m/data=!3m1!1e3?hl=en
Tower 17: https://www.google.com/maps/@-23.006715,-47.150475,59m/data=!3m1!1e3?hl=en
Tower 18: https://www.google.com/maps/@-23.006960,-47.150124,59m/data=!3m1!1e3?hl=en
Tower 19: https://www.google.com/maps/@-23.007207,-47.149788,59m/data=!3m1!1e3?hl=en

# Runway ends
Threshold 15: https://www.google.com/maps/@-22.9985032,-47.1469772,61m/data=!3m1!1e3?hl=en
End asphalt 15: https://www.google.com/maps/@-23.0163963,-47.1219874,63m/data=!3m1!1e3?hl=en
Threshold 33: https://www.google.com/maps/@-23.015869,-47.1227499,61m/data=!3m1!1e3?hl=en

# Full transit with Tower 1 at 00:02:12, moved 20 m north
Fence Break 1: https://www.google.com/maps/@-23.008422,-47.127443,61m/data=!3m1!1e3?hl=en

# Simultaneous transit with Tower 8 at 00:07:17
Concrete block hut: https://www.google.com/maps/@-23.008705,-47.129063,50m/data=!3m1!1e3

Fedex left: https://www.google.com/maps/@-23.016525,-47.127947,61m/data=!3m1!1e3?hl=en
Fedex right: https://www.google.com/maps/@-23.016425,-47.128094,61m/data=!3m1!1e3?hl=en

# Simultaneous transit at 00:24:26
Trees right of Fedex: https://www.google.com/maps/@-23.016282,-47.128253,104m/data=!3m1!1e3
Factory interior corner: https://www.google.com/maps/@-23.0135093,-47.1203631,50m/data=!3m1!1e3

Control tower base: https://www.google.com/maps/@-23.010773,-47.145509,61m/data=!3m1!1e3?hl=en
# Simultaneous transit with the control tower base at 00:17:22
Embankment inside corner: https://www.google.com/maps/@-23.011606,-47.124922,61m/data=!3m1!1e3?hl=en

Chequer board hut: https://www.google.com/maps/@-23.0137084,-47.1237547,98m/data=!3m1!1e3

# Full transit at 00:26:17
Factory cream stripe: https://www.google.com/maps/@-23.017518,-47.126642,98m/data=!3m1!1e3
ALUGAM-SE Left: https://www.google.com/maps/@-23.012971,-47.117859,98m/data=!3m1!1e3

Factory extreme left: https://www.google.com/maps/@-23.0147028,-47.120441,55m/data=!3m1!1e3

# Simultaneous transit at 00:28:00
Tall radio tower: https://www.google.com/maps/@-23.0210104,-47.1285102,97m/data=!3m1!1e3
Second control tower: https://www.google.com/maps/@-23.0213449,-47.1261314,174m/data=!3m1!1e3
Building corner: https://www.google.com/maps/@-23.015572,-47.120916,97m/data=!3m1!1e3
`

// observerURL is where the observer appears to stand on the satellite view
const observerURL = "Observer: https://www.google.com/maps/@-23.0129344,-47.1164164,94m/data=!3m1!1e3"

const (
	datumLabel   = "Threshold 15"
	threshold33  = "Threshold 33"
	endAsphalt15 = "End asphalt 15"
)

// landmarkTransitTimes are the transits of landmarks that are not lighting towers
var landmarkTransitTimes = map[string]kin.VideoTime{
	"Concrete block hut":      vt(0, 7, 17),
	"Chequer board hut":       vt(0, 23, 8),
	"Control tower base":      vt(0, 17, 21),
	"Trees right of Fedex":    vt(0, 24, 26),
	"Factory interior corner": vt(0, 24, 26),
	"Fedex left":              vt(0, 25, 10),
	"Fedex right":             vt(0, 25, 2),
	"Factory extreme left":    vt(0, 27, 6),
	"Tall radio tower":        vt(0, 28, 0),
	"Second control tower":    vt(0, 29, 2),
}

// towerTransits maps each lighting tower to the transit note it was timed by
var towerTransits = map[string]string{
	"Tower 1":  "Far floodlight number 1.",
	"Tower 2":  "Far floodlight number 2.",
	"Tower 3":  "Far floodlight number 3.",
	"Tower 4":  "Far floodlight number 4.",
	"Tower 5":  "Far floodlight number 5.",
	"Tower 6":  "Far floodlight number 6.",
	"Tower 7":  "Far comms tower number 1.",
	"Tower 8":  "Far comms tower number 2.",
	"Tower 9":  "Far comms tower number 3.",
	"Tower 10": "Far comms tower number 4.",
	"Tower 11": "Far comms tower number 5.",
	"Tower 12": "Far comms tower number 6.",
	"Tower 13": "Far comms tower number 7.",
	"Tower 14": "Far comms tower number 8.",
	"Tower 15": "Far comms tower number 9.",
	"Tower 16": "Far comms tower number 10.",
	"Tower 17": "Far comms tower number 11.",
	"Tower 18": "Far comms tower number 12.",
	"Tower 19": "Far comms tower number 13.",
}

// fullTransitPairs are pairs of landmarks seen exactly in line
var fullTransitPairs = []struct {
	from string
	to   string
	time kin.VideoTime
}{
	{"Tower 1", "Fence Break 1", vt(0, 2, 12)},
	{"Control tower base", "Embankment inside corner", vt(0, 17, 22)},
	{"Trees right of Fedex", "Factory interior corner", vt(0, 24, 26)},
	{"Factory cream stripe", "ALUGAM-SE Left", vt(0, 26, 17)},
	{"Tall radio tower", "Building corner", vt(0, 28, 0)},
}

// towerRows are the rows of lighting towers as interpolated end points and tower counts
var towerRows = []struct {
	first geom.LatLong
	last  geom.LatLong
	count int
}{
	{geom.NewLatLong(-23.001859, -47.148889), geom.NewLatLong(-23.003125, -47.147132), 6},
	{geom.NewLatLong(-23.003361, -47.149942), geom.NewLatLong(-23.005129, -47.147467), 8},
	{geom.NewLatLong(-23.003940, -47.150579), geom.NewLatLong(-23.005186, -47.148830), 6},
	{geom.NewLatLong(-23.005717, -47.151878), geom.NewLatLong(-23.007212, -47.149789), 7},
}

// Site is the airfield in local coordinates: the origin is the runway 15 threshold and the x axis
// runs down the runway, y positive to the right.
type Site struct {
	Projection  geom.Projection
	Datum       geom.LatLong
	AxisBearing float64
	LatLongs    map[string]geom.LatLong
	// Labels in the order of the URL table
	Labels []string
}

// NewSite parses the Google Earth positions and sets up the named projection
func NewSite(projectionName string) (*Site, error) {
	positions, labels, err := geom.ParseGoogleEarthURLs(googleEarthURLs)
	if err != nil {
		return nil, err
	}
	datum, ok := positions[datumLabel]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLabel, "'%s'", datumLabel)
	}
	// Mean of the bearings to the two far runway markers
	axis := geom.MeanBearing(
		geom.BearingLatLong(datum, positions[threshold33]),
		geom.BearingLatLong(datum, positions[endAsphalt15]),
	)
	projection, err := geom.NewProjection(projectionName, datum, axis)
	if err != nil {
		return nil, err
	}
	return &Site{
		Projection:  projection,
		Datum:       datum,
		AxisBearing: axis,
		LatLongs:    positions,
		Labels:      labels,
	}, nil
}

// XY returns the local position of a labelled landmark
func (s *Site) XY(label string) (geom.Point, error) {
	ll, ok := s.LatLongs[label]
	if !ok {
		return geom.Point{}, errors.Wrapf(ErrUnknownLabel, "'%s'", label)
	}
	return s.Projection.ToXY(ll)
}

// Landmarks returns the local position of every labelled landmark
func (s *Site) Landmarks() (map[string]geom.Point, error) {
	ret := make(map[string]geom.Point, len(s.Labels))
	for _, label := range s.Labels {
		xy, err := s.XY(label)
		if err != nil {
			return nil, err
		}
		ret[label] = xy
	}
	return ret, nil
}

// FullTransits returns the pairs of landmarks seen in line as lines in local coordinates
func (s *Site) FullTransits() ([]kin.FullTransitLine, error) {
	ret := make([]kin.FullTransitLine, 0, len(fullTransitPairs))
	for _, pair := range fullTransitPairs {
		from, err := s.XY(pair.from)
		if err != nil {
			return nil, err
		}
		to, err := s.XY(pair.to)
		if err != nil {
			return nil, err
		}
		ret = append(ret, kin.FullTransitLine{
			From: kin.TransitPoint{Label: pair.from, XY: from},
			To:   kin.TransitPoint{Label: pair.to, XY: to},
			Time: pair.time,
		})
	}
	return ret, nil
}

// GoogleEarthObserver is the observer position picked on the satellite view
func (s *Site) GoogleEarthObserver() (geom.Point, error) {
	_, ll, err := geom.ParseGoogleEarthURL(observerURL)
	if err != nil {
		return geom.Point{}, err
	}
	return s.Projection.ToXY(ll)
}

// TowerRows returns each row of lighting towers evenly spaced between its end points
func (s *Site) TowerRows() ([][]geom.Point, error) {
	ret := make([][]geom.Point, 0, len(towerRows))
	for _, row := range towerRows {
		points := make([]geom.Point, 0, row.count)
		for i := 0; i < row.count; i++ {
			ll := geom.InterpolateBetweenTwoPoints(row.first, row.last, float64(i)/float64(row.count-1))
			xy, err := s.Projection.ToXY(ll)
			if err != nil {
				return nil, err
			}
			points = append(points, xy)
		}
		ret = append(ret, points)
	}
	return ret, nil
}

// LandmarkEvents returns the time every landmark was passed, ordered by time then label.
// Lighting towers take the mid point of their transit.
func LandmarkEvents() ([]kin.LandmarkEvent, error) {
	transits := make(map[string]kin.AircraftTransit, len(Transits))
	for _, transit := range Transits {
		transits[transit.Note] = transit
	}
	ret := make([]kin.LandmarkEvent, 0, len(landmarkTransitTimes)+len(towerTransits))
	for label, t := range landmarkTransitTimes {
		ret = append(ret, kin.LandmarkEvent{Time: t.Seconds(), Label: label})
	}
	for label, note := range towerTransits {
		transit, ok := transits[note]
		if !ok {
			return nil, errors.Errorf("no transit '%s' for '%s'", note, label)
		}
		ret = append(ret, kin.LandmarkEvent{Time: transit.Time(), Label: label})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Time != ret[j].Time {
			return ret[i].Time < ret[j].Time
		}
		return ret[i].Label < ret[j].Label
	})
	return ret, nil
}

// Build assembles the full dataset with landmarks projected by the named projection
func Build(projectionName string) (*kin.Dataset, error) {
	site, err := NewSite(projectionName)
	if err != nil {
		return nil, errors.Wrap(err, "can't set up site")
	}
	wingTips, err := WingTips()
	if err != nil {
		return nil, errors.Wrap(err, "can't read wing tips")
	}
	landmarks, err := site.Landmarks()
	if err != nil {
		return nil, errors.Wrap(err, "can't project landmarks")
	}
	fullTransits, err := site.FullTransits()
	if err != nil {
		return nil, errors.Wrap(err, "can't project full transits")
	}
	events, err := LandmarkEvents()
	if err != nil {
		return nil, err
	}
	ds := &kin.Dataset{
		Aircraft:            A340,
		RunwayLength:        RunwayLength,
		EndAsphalt:          EndAsphalt,
		VideoEnd:            VideoEnd,
		Transits:            Transits,
		Aspects:             Aspects,
		WingTips:            wingTips,
		Pitches:             Pitches,
		ApparentLengths:     ApparentLengths,
		ScreenshotWidth:     ScreenshotWidth,
		Landmarks:           landmarks,
		LandmarkLatLongs:    site.LatLongs,
		FullTransits:        fullTransits,
		LandmarkEvents:      events,
		Events:              Events,
		AngleOfViewObserver: geom.NewPoint(2250, -750),
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
