package geom

import (
	"math"
	"testing"
)

var (
	threshold15    = NewLatLong(-22.9985032, -47.1469772)
	endAsphalt15   = NewLatLong(-23.0163963, -47.1219874)
	threshold33    = NewLatLong(-23.015869, -47.1227499)
	latLongEpsilon = 1e-6
)

func TestDistanceLatLong(t *testing.T) {
	cases := []struct {
		a, b     LatLong
		expected float64
	}{
		{threshold15, endAsphalt15, 3244.0671201910636},
		{threshold15, threshold33, 3146.3625099306523},
	}
	for _, c := range cases {
		answer := DistanceLatLong(c.a, c.b)
		if math.Abs(answer-c.expected) > latLongEpsilon {
			t.Errorf("Distance %v -> %v: %v, correct answer: %v", c.a, c.b, answer, c.expected)
		}
	}
}

func TestBearingLatLong(t *testing.T) {
	origin := NewLatLong(-22.0, -48.0)
	cases := []struct {
		to       LatLong
		expected float64
	}{
		{NewLatLong(-21.999999, -48.0), 0.0},
		{NewLatLong(-22.0, -47.999999), 90.0},
		{NewLatLong(-22.000001, -48.0), 180.0},
		{NewLatLong(-22.0, -48.000001), 270.0},
	}
	for _, c := range cases {
		answer := BearingLatLong(origin, c.to)
		if math.Abs(answer-c.expected) > latLongEpsilon {
			t.Errorf("Bearing to %v: %v, correct answer: %v", c.to, answer, c.expected)
		}
	}
	if answer := BearingLatLong(threshold15, endAsphalt15); math.Abs(answer-127.8840333720462) > latLongEpsilon {
		t.Errorf("Runway bearing: %v", answer)
	}
	if answer := BearingLatLong(threshold15, threshold33); math.Abs(answer-127.91369057493286) > latLongEpsilon {
		t.Errorf("Runway bearing: %v", answer)
	}
}

func TestDestinationLatLong(t *testing.T) {
	for _, target := range []LatLong{endAsphalt15, threshold33} {
		d := DistanceLatLong(threshold15, target)
		b := BearingLatLong(threshold15, target)
		answer := DestinationLatLong(threshold15, b, d)
		if math.Abs(answer.Lat-target.Lat) > 1e-9 || math.Abs(answer.Long-target.Long) > 1e-9 {
			t.Errorf("Round trip to %v gave %v", target, answer)
		}
	}
}

func TestHaversineProjection(t *testing.T) {
	cases := []struct {
		axis     float64
		target   LatLong
		expected Point
	}{
		{127.8840333720462, endAsphalt15, NewPoint(3244.0671201910636, 0)},
		{127.91369057493286, threshold33, NewPoint(3146.3625099306523, 0)},
	}
	for _, c := range cases {
		proj := NewHaversineProjection(threshold15, c.axis)
		answer, err := proj.ToXY(c.target)
		if err != nil {
			t.Error(err)
			continue
		}
		if math.Abs(answer.X-c.expected.X) > latLongEpsilon || math.Abs(answer.Y-c.expected.Y) > latLongEpsilon {
			t.Errorf("ToXY(%v): %v, correct answer: %v", c.target, answer, c.expected)
		}
		back, err := proj.ToLatLong(answer)
		if err != nil {
			t.Error(err)
			continue
		}
		if math.Abs(back.Lat-c.target.Lat) > 1e-9 || math.Abs(back.Long-c.target.Long) > 1e-9 {
			t.Errorf("ToLatLong(%v): %v, correct answer: %v", answer, back, c.target)
		}
	}
}

func TestUTMProjection(t *testing.T) {
	proj, err := NewUTMProjection(threshold15, 127.9)
	if err != nil {
		t.Error(err)
		return
	}
	if proj.Zone() != 23 {
		t.Errorf("Zone: %d", proj.Zone())
	}
	answer, err := proj.ToXY(endAsphalt15)
	if err != nil {
		t.Error(err)
		return
	}
	// Ellipsoid and grid scale differ from the sphere by a few metres over the runway
	radius := math.Hypot(answer.X, answer.Y)
	if math.Abs(radius-3244.07) > 10 {
		t.Errorf("UTM radius: %v", radius)
	}
	back, err := proj.ToLatLong(answer)
	if err != nil {
		t.Error(err)
		return
	}
	if math.Abs(back.Lat-endAsphalt15.Lat) > 1e-5 || math.Abs(back.Long-endAsphalt15.Long) > 1e-5 {
		t.Errorf("Round trip: %v, correct answer: %v", back, endAsphalt15)
	}
}

func TestNewProjection(t *testing.T) {
	for _, name := range []string{ProjectionHaversine, ProjectionUTM} {
		proj, err := NewProjection(name, threshold15, 127.9)
		if err != nil {
			t.Error(err)
			continue
		}
		if proj.Name() != name {
			t.Errorf("Name: %s, expected %s", proj.Name(), name)
		}
	}
	if _, err := NewProjection("mercator", threshold15, 0); err == nil {
		t.Error("Expected error for unknown projection")
	}
}

func TestGoogleEarthURL(t *testing.T) {
	cases := []struct {
		line  string
		label string
		ll    LatLong
	}{
		{"Tower 1: https://www.google.com/maps/@-23.0039523,-47.1506005,59m/data=!3m1!1e3?hl=en", "Tower 1", NewLatLong(-23.0039523, -47.1506005)},
		{"Tower 5: https://www.google.com/maps/@-23.00498,-47.1492158,59m/data=!3m1!1e3?hl=en", "Tower 5", NewLatLong(-23.00498, -47.1492158)},
	}
	for _, c := range cases {
		label, ll, err := ParseGoogleEarthURL(c.line)
		if err != nil {
			t.Error(err)
			continue
		}
		if label != c.label || ll != c.ll {
			t.Errorf("Parsed '%s' as %s %v", c.line, label, ll)
		}
	}
	if _, _, err := ParseGoogleEarthURL("Tower 1 -23.0, -47.0"); err == nil {
		t.Error("Expected error")
	}
	url := FormatGoogleEarthURL(NewLatLong(-23.0129344, -47.1164164))
	if url != "https://www.google.com/maps/@-23.0129344,-47.1164164,55m/data=!3m1!1e3" {
		t.Errorf("Formatted URL: %s", url)
	}
	label, ll, err := ParseGoogleEarthURL("Observer: " + url)
	if err != nil || label != "Observer" || ll != NewLatLong(-23.0129344, -47.1164164) {
		t.Errorf("Round trip: %s %v %v", label, ll, err)
	}
}

func TestParseGoogleEarthURLs(t *testing.T) {
	text := `
# Runway
Threshold 15: https://www.google.com/maps/@-22.9985032,-47.1469772,59m/data=!3m1!1e3

Threshold 33: https://www.google.com/maps/@-23.015869,-47.1227499,59m/data=!3m1!1e3
`
	positions, labels, err := ParseGoogleEarthURLs(text)
	if err != nil {
		t.Error(err)
		return
	}
	if len(labels) != 2 || labels[0] != "Threshold 15" || labels[1] != "Threshold 33" {
		t.Errorf("Labels: %v", labels)
	}
	if positions["Threshold 33"] != threshold33 {
		t.Errorf("Threshold 33: %v", positions["Threshold 33"])
	}
	if _, _, err := ParseGoogleEarthURLs("Bad line"); err == nil {
		t.Error("Expected error")
	}
}
