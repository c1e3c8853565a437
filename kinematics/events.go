package kinematics

import (
	"fmt"
	"math"
	"sort"

	"github.com/LdDl/trajectory-go/poly"
	"github.com/pkg/errors"
)

// ValueAndError is a value with an optional +/- error
type ValueAndError struct {
	Value    float64
	Error    float64
	HasError bool
}

func exact(v float64) ValueAndError {
	return ValueAndError{Value: v}
}

func withError(v, err float64) ValueAndError {
	return ValueAndError{Value: v, Error: err, HasError: true}
}

// EventRow is a computed take off event. Speeds are in m/s, distances in metres.
type EventRow struct {
	Label        string
	VideoTime    ValueAndError
	StartTime    ValueAndError
	GroundSpeed  ValueAndError
	Acceleration ValueAndError
	FromStart    ValueAndError
	ToEnd        ValueAndError
	Notes        string
}

func (er EventRow) String() string {
	return fmt.Sprintf("%-18s: t=%5.1f ± %3.1f [%4.1f ± %3.1f] gs=%4.1f ±%3.1f d=%6.1f ± %5.1f d_end=%6.1f ± %5.1f %s",
		er.Label,
		er.VideoTime.Value, er.VideoTime.Error,
		er.StartTime.Value, er.StartTime.Error,
		er.GroundSpeed.Value, er.GroundSpeed.Error,
		er.FromStart.Value, er.FromStart.Error,
		er.ToEnd.Value, er.ToEnd.Error,
		er.Notes,
	)
}

// StartOfRollEstimate is the start of the take off roll and its spread over the corrected fits
func (a *Analysis) StartOfRollEstimate() (ValueAndError, error) {
	fits, err := a.correctedGroundSpeed.All()
	if err != nil {
		return ValueAndError{}, err
	}
	starts := make([]float64, len(fits))
	for i, fit := range fits {
		starts[i], err = StartOfRoll(fit)
		if err != nil {
			return ValueAndError{}, errors.Wrapf(err, "%s", Directions()[i])
		}
	}
	spread := math.Max(math.Abs(starts[1]-starts[0]), math.Abs(starts[1]-starts[2]))
	return withError(starts[1], spread), nil
}

// Events computes the dataset's timed events from the corrected ground speed fits
func (a *Analysis) Events() ([]EventRow, error) {
	models, err := a.MotionModels(Corrected)
	if err != nil {
		return nil, err
	}
	start, err := a.StartOfRollEstimate()
	if err != nil {
		return nil, err
	}
	minModel, midModel, maxModel := models[0], models[1], models[2]
	ret := make([]EventRow, 0, len(a.ds.Events))
	for _, event := range a.ds.Events {
		var t float64
		var tVideo, tStart, gs ValueAndError
		if event.StartOfRoll {
			t = start.Value
			tVideo = start
			tStart = withError(0.0, start.Error)
			gs = exact(midModel.Speed(t))
		} else {
			t = event.Time
			tVideo = exact(t)
			tStart = exact(t - start.Value)
			gs = withError(midModel.Speed(t), a.params.SpeedTolerance)
		}
		d := midModel.DistanceFromRunwayStart(t)
		dErr := math.Max(math.Abs(d-minModel.DistanceFromRunwayStart(t)), math.Abs(d-maxModel.DistanceFromRunwayStart(t)))
		if t >= 0 {
			dErr = a.params.DistanceError
		}
		dErr = math.Max(dErr, a.params.DistanceError)
		ret = append(ret, EventRow{
			Label:        event.Label,
			VideoTime:    tVideo,
			StartTime:    tStart,
			GroundSpeed:  gs,
			Acceleration: withError(midModel.Acceleration(t), a.params.AccelerationError),
			FromStart:    withError(d, dErr),
			ToEnd:        withError(a.ds.RunwayLength-d, dErr),
			Notes:        event.Note,
		})
	}
	a.logger.Info("computed events", "count", len(ret), "start_of_roll", start.Value)
	return ret, nil
}

// EquationsOfMotion are the Mid corrected ground speed fit and its derivative and integral.
// Distance is from the runway start.
type EquationsOfMotion struct {
	Speed        poly.Polynomial
	Acceleration poly.Polynomial
	Distance     poly.Polynomial
}

// EquationsOfMotion returns the equations of the Mid corrected fit
func (a *Analysis) EquationsOfMotion() (EquationsOfMotion, error) {
	fit, err := a.correctedGroundSpeed.Get(Mid)
	if err != nil {
		return EquationsOfMotion{}, err
	}
	return EquationsOfMotion{
		Speed:        fit,
		Acceleration: fit.Derivative(),
		Distance:     fit.Antiderivative().Shift(a.RunwayOffset(fit)),
	}, nil
}

// Strings formats the three equations
func (eom EquationsOfMotion) Strings() []string {
	return []string{
		"Ground speed (m/s): " + eom.Speed.Format("v", "t", "%.3g"),
		"Acceleration (m/s^2): " + eom.Acceleration.Format("a", "t", "%.3g"),
		"Distance (m): " + eom.Distance.Format("d", "t", "%.4g"),
	}
}

// DistancesMinMidMax returns a (t, distance) table per nominal offset fit in Directions() order.
// Each table starts at the fit's start of roll and steps by one second to the extrapolation stop,
// with the video start and the dataset events added. A non zero offsetAt makes distances relative
// to the runway start such that the runway length is reached at offsetAt.
func (a *Analysis) DistancesMinMidMax(offsetAt float64) ([]Table, error) {
	fits, err := a.offsetGroundSpeed.All()
	if err != nil {
		return nil, err
	}
	ret := make([]Table, 0, len(fits))
	for _, fit := range fits {
		offset := 0.0
		if offsetAt != 0.0 {
			offset = a.ds.RunwayLength - fit.IntegralFromZero(offsetAt)
		}
		start, err := StartOfRoll(fit)
		if err != nil {
			return nil, err
		}
		times := make([]float64, 0, int(a.params.ExtrapolationStop-start)+8)
		for t := start; t < a.params.ExtrapolationStop; t++ {
			times = append(times, t)
		}
		for _, special := range a.specialTimes() {
			if !containsFloat(times, special) {
				times = append(times, special)
			}
		}
		sort.Float64s(times)
		table := make(Table, len(times))
		for i, t := range times {
			table[i] = []float64{t, fit.IntegralFromZero(t) + offset}
		}
		ret = append(ret, table)
	}
	return ret, nil
}

func (a *Analysis) specialTimes() []float64 {
	ret := []float64{0.0}
	for _, event := range a.ds.Events {
		if !event.StartOfRoll && event.Time != 0.0 {
			ret = append(ret, event.Time)
		}
	}
	return ret
}

func containsFloat(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
