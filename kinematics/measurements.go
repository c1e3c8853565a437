package kinematics

import (
	"math"
	"sort"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
)

// TimedMeasurement is a single observation at a time in seconds from the start of the video
type TimedMeasurement struct {
	Time  float64
	Value float64
	Error float64
	Note  string
}

// Series is a time ordered sequence of measurements
type Series []TimedMeasurement

// Validate returns ErrUnsorted when the series is not in time order
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Time < s[i-1].Time {
			return errors.Wrapf(ErrUnsorted, "t=%v follows t=%v at index %d", s[i].Time, s[i-1].Time, i)
		}
	}
	return nil
}

// Times returns the time column
func (s Series) Times() []float64 {
	ret := make([]float64, len(s))
	for i := range s {
		ret[i] = s[i].Time
	}
	return ret
}

// Values returns the value column
func (s Series) Values() []float64 {
	ret := make([]float64, len(s))
	for i := range s {
		ret[i] = s[i].Value
	}
	return ret
}

// Interpolate linearly interpolates the series at t, extrapolating beyond either end
func (s Series) Interpolate(t float64) (float64, error) {
	return geom.Interpolate(s.Times(), s.Values(), t)
}

// Aircraft holds the reference dimensions in metres
type Aircraft struct {
	Name   string
	Length float64
	Span   float64
}

// AircraftTransit is the passage of the whole fuselage, nose to tail cone, past a fixed object
type AircraftTransit struct {
	From VideoTime
	To   VideoTime
	Note string
}

// Time is the mid point of the transit in seconds
func (at AircraftTransit) Time() float64 {
	return (at.To.Seconds() + at.From.Seconds()) / 2.0
}

// Dt is the duration of the transit in seconds
func (at AircraftTransit) Dt() float64 {
	return at.To.Seconds() - at.From.Seconds()
}

// Start formats the start of the transit as "mm:ss:ff"
func (at AircraftTransit) Start() string {
	return at.From.Timestamp()
}

// AircraftAspect is an aspect measured by lining up two parts of the aircraft, in degrees
type AircraftAspect struct {
	Time  VideoTime
	Angle float64
	Error float64
	Note  string
}

// WingTipAspect is an aspect derived from the pixel separation of the wing tips and of nose to tail.
// Span is positive if the observer is ahead of the lateral axis of the aircraft.
// Length is positive if the observer is to the right of the aircraft axis.
type WingTipAspect struct {
	Time   VideoTime
	Span   float64
	Length float64
	Note   string
}

// NewWingTipAspectFromSelection builds a wing tip aspect from the image name and the tip to tip
// selection box. The selection width is the span and its height the nose to tail length.
func NewWingTipAspectFromSelection(ffmpegName string, selection geom.Rectangle, note string) (WingTipAspect, error) {
	vt, err := VideoTimeFromFFmpegName(ffmpegName)
	if err != nil {
		return WingTipAspect{}, err
	}
	return WingTipAspect{
		Time:   vt,
		Span:   selection.Width,
		Length: selection.Height,
		Note:   note,
	}, nil
}

func wingTipAngle(aircraft Aircraft, span, length float64) float64 {
	return geom.NormalizeDegrees(geom.Degrees(math.Atan2(length/aircraft.Length, span/aircraft.Span)))
}

// Angle returns the aspect in degrees, 0 <= aspect < 360
func (wt WingTipAspect) Angle(aircraft Aircraft) float64 {
	return wingTipAngle(aircraft, wt.Span, wt.Length)
}

// Error returns the worst aspect deviation when span and length are each moved by px pixels.
// Deviations are measured the short way round so aspects near 0/360 stay small.
func (wt WingTipAspect) Error(aircraft Aircraft, px float64) float64 {
	aspect := wt.Angle(aircraft)
	result := 0.0
	for _, d := range [4][2]float64{{px, px}, {-px, -px}, {px, -px}, {-px, px}} {
		other := wingTipAngle(aircraft, wt.Span+d[1], wt.Length+d[0])
		result = math.Max(result, math.Abs(geom.AngleDifference(other, aspect)))
	}
	return result
}

// AircraftPitch is the apparent pitch in degrees, nose up positive
type AircraftPitch struct {
	Time  VideoTime
	Angle float64
	Note  string
}

// ApparentLength is the nose to tail length of the aircraft on a screenshot in pixels
type ApparentLength struct {
	Time   VideoTime
	Pixels float64
}

// TransitPoint is a labelled landmark in local coordinates
type TransitPoint struct {
	Label string
	XY    geom.Point
}

// FullTransitLine is a pair of landmarks seen in line from the observer at Time
type FullTransitLine struct {
	From TransitPoint
	To   TransitPoint
	Time VideoTime
}

// LandmarkEvent is the time that the aircraft passed in front of a landmark
type LandmarkEvent struct {
	Time  float64
	Label string
}

// TimedEvent is a notable moment of the take off.
// When StartOfRoll is set the time is computed from the ground speed fit and Time is ignored.
type TimedEvent struct {
	Label       string
	Time        float64
	StartOfRoll bool
	Note        string
}

// Dataset holds every measurement of a single take off video
type Dataset struct {
	Aircraft     Aircraft
	RunwayLength float64
	// EndAsphalt is when the nose crosses the end of the runway, used as the distance datum
	EndAsphalt VideoTime
	VideoEnd   VideoTime

	Transits        []AircraftTransit
	Aspects         []AircraftAspect
	WingTips        []WingTipAspect
	Pitches         []AircraftPitch
	ApparentLengths []ApparentLength
	// CameraRoll in degrees against time. Empty means no correction.
	CameraRoll Series

	ScreenshotWidth float64

	Landmarks        map[string]geom.Point
	LandmarkLatLongs map[string]geom.LatLong
	FullTransits     []FullTransitLine
	LandmarkEvents   []LandmarkEvent
	Events           []TimedEvent

	// AngleOfViewObserver is the assumed observer position for the camera angle of view estimate
	AngleOfViewObserver geom.Point
}

// Validate checks that every table is time ordered and that landmarks referenced by events exist
func (ds *Dataset) Validate() error {
	if ds.Aircraft.Length <= 0 || ds.Aircraft.Span <= 0 {
		return errors.Errorf("aircraft dimensions must be > 0, got length %v span %v", ds.Aircraft.Length, ds.Aircraft.Span)
	}
	if !ds.EndAsphalt.Before(ds.VideoEnd) {
		return errors.Wrapf(ErrUnsorted, "end of asphalt %s is not before the video end %s", ds.EndAsphalt, ds.VideoEnd)
	}
	checks := []struct {
		name  string
		times []float64
	}{
		{"transits", mapTimes(ds.Transits, func(v AircraftTransit) float64 { return v.Time() })},
		{"aspects", mapTimes(ds.Aspects, func(v AircraftAspect) float64 { return v.Time.Seconds() })},
		{"wing tips", mapTimes(ds.WingTips, func(v WingTipAspect) float64 { return v.Time.Seconds() })},
		{"pitches", mapTimes(ds.Pitches, func(v AircraftPitch) float64 { return v.Time.Seconds() })},
		{"apparent lengths", mapTimes(ds.ApparentLengths, func(v ApparentLength) float64 { return v.Time.Seconds() })},
		{"camera roll", ds.CameraRoll.Times()},
		{"landmark events", mapTimes(ds.LandmarkEvents, func(v LandmarkEvent) float64 { return v.Time })},
	}
	for _, check := range checks {
		if !sort.Float64sAreSorted(check.times) {
			return errors.Wrapf(ErrUnsorted, "%s", check.name)
		}
	}
	for _, event := range ds.LandmarkEvents {
		if _, ok := ds.Landmarks[event.Label]; !ok {
			return errors.Wrapf(ErrUnknownLandmark, "'%s'", event.Label)
		}
	}
	return nil
}

func mapTimes[T any](values []T, fn func(T) float64) []float64 {
	ret := make([]float64, len(values))
	for i := range values {
		ret[i] = fn(values[i])
	}
	return ret
}
