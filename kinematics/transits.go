package kinematics

import (
	"math"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
)

// TransitDistance is where the line from the observer through a landmark crosses the x axis,
// and so where the aircraft was at Time
type TransitDistance struct {
	Time     float64
	Distance float64
	// Error is the +/- uncertainty of Distance, zero unless computed from an ObserverEstimate
	Error float64
	Label string
}

// TransitSpeed is the mean speed between two successive landmark transits in m/s
type TransitSpeed struct {
	Time  float64
	Dt    float64
	Dx    float64
	Speed float64
	Label string
}

// TransitXAxisDistances returns the x axis intercept of every landmark event for the observer
func (a *Analysis) TransitXAxisDistances(observer geom.Point) ([]TransitDistance, error) {
	ret := make([]TransitDistance, 0, len(a.ds.LandmarkEvents))
	for _, event := range a.ds.LandmarkEvents {
		xy, ok := a.ds.Landmarks[event.Label]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownLandmark, "'%s'", event.Label)
		}
		ret = append(ret, TransitDistance{
			Time:     event.Time,
			Distance: geom.TransitXAxisIntercept(xy, observer),
			Label:    event.Label,
		})
	}
	return ret, nil
}

// TransitXAxisDistancesWithError is TransitXAxisDistances for the mean observer position with
// the error from Params.LandmarkError and the observer spread
func (a *Analysis) TransitXAxisDistancesWithError(observer ObserverEstimate) ([]TransitDistance, error) {
	ret, err := a.TransitXAxisDistances(observer.Point())
	if err != nil {
		return nil, err
	}
	observerError := math.Hypot(observer.X.Spread, observer.Y.Spread)
	for i := range ret {
		xy := a.ds.Landmarks[ret[i].Label]
		ret[i].Error = math.Abs(geom.TransitXAxisError(xy, observer.Point(), a.params.LandmarkError, observerError))
	}
	return ret, nil
}

// TransitSpeeds returns the speeds between successive landmark transits.
// Simultaneous transits have zero speed.
func (a *Analysis) TransitSpeeds(observer geom.Point) ([]TransitSpeed, error) {
	distances, err := a.TransitXAxisDistances(observer)
	if err != nil {
		return nil, err
	}
	if len(distances) < 2 {
		return nil, nil
	}
	ret := make([]TransitSpeed, 0, len(distances)-1)
	for i := 1; i < len(distances); i++ {
		prev, cur := distances[i-1], distances[i]
		ts := TransitSpeed{
			Time:  cur.Time,
			Dt:    cur.Time - prev.Time,
			Dx:    cur.Distance - prev.Distance,
			Label: cur.Label,
		}
		if ts.Dt != 0 {
			ts.Speed = ts.Dx / ts.Dt
		}
		ret = append(ret, ts)
	}
	return ret, nil
}

// FullTransitDistances returns where the aircraft was at each full transit for the observer
func (a *Analysis) FullTransitDistances(observer geom.Point) []TransitDistance {
	ret := make([]TransitDistance, 0, len(a.ds.FullTransits))
	for _, line := range a.ds.FullTransits {
		ret = append(ret, TransitDistance{
			Time:     line.Time.Seconds(),
			Distance: geom.TransitXAxisIntercept(line.From.XY, observer),
			Label:    line.From.Label,
		})
	}
	return ret
}

// TransitSegment is a full transit line drawn from its far landmark to just past the observer
type TransitSegment struct {
	Label string
	From  geom.Point
	To    geom.Point
	// Bearing of the line towards the observer in degrees, (-180, 180]
	Bearing float64
}

// Table returns the segment ends ordered by x
func (ts TransitSegment) Table() Table {
	if ts.To.X < ts.From.X {
		return Table{{ts.To.X, ts.To.Y}, {ts.From.X, ts.From.Y}}
	}
	return Table{{ts.From.X, ts.From.Y}, {ts.To.X, ts.To.Y}}
}

// FullTransitSegments returns every full transit line extended overshoot metres past the observer
func (a *Analysis) FullTransitSegments(observer geom.Point, overshoot float64) []TransitSegment {
	ret := make([]TransitSegment, 0, len(a.ds.FullTransits))
	for _, line := range a.ds.FullTransits {
		ret = append(ret, TransitSegment{
			Label:   line.From.Label + "->" + line.To.Label,
			From:    line.From.XY,
			To:      geom.TransitLinePastObserver(line.From.XY, line.To.XY, observer, overshoot),
			Bearing: geom.TransitBearing(line.From.XY, observer),
		})
	}
	return ret
}

// ShiftFullTransits moves every line sideways by offset metres, positive to the left looking
// from the far landmark towards the near one
func ShiftFullTransits(lines []FullTransitLine, offset float64) []FullTransitLine {
	ret := make([]FullTransitLine, len(lines))
	for i, line := range lines {
		from, to, _ := geom.TransitPointWithError(line.From.XY, line.To.XY, offset)
		ret[i] = line
		ret[i].From.XY = from
		ret[i].To.XY = to
	}
	return ret
}

// ObserverFromShiftedFullTransits is the observer estimate with every full transit moved
// sideways by -LandmarkError and +LandmarkError
func (a *Analysis) ObserverFromShiftedFullTransits() ([2]ObserverEstimate, error) {
	var ret [2]ObserverEstimate
	for i, offset := range [2]float64{-a.params.LandmarkError, a.params.LandmarkError} {
		estimate, err := ObserverFromFullTransits(ShiftFullTransits(a.ds.FullTransits, offset))
		if err != nil {
			return ret, errors.Wrapf(err, "offset %v m", offset)
		}
		ret[i] = estimate
	}
	return ret, nil
}

// TransitSpeedTable converts speeds to a (t, speed) table. toUnits converts m/s to the reported unit.
// Simultaneous transits are left out.
func TransitSpeedTable(speeds []TransitSpeed, toUnits func(float64) float64) Table {
	ret := make(Table, 0, len(speeds))
	for _, s := range speeds {
		if s.Dt == 0 {
			continue
		}
		ret = append(ret, []float64{s.Time, toUnits(s.Speed)})
	}
	return ret
}

// TransitDistanceErrorTable converts distances to a (t, x, x-err, x+err) table
func TransitDistanceErrorTable(distances []TransitDistance) Table {
	ret := make(Table, len(distances))
	for i, d := range distances {
		ret[i] = []float64{d.Time, d.Distance, d.Distance - d.Error, d.Distance + d.Error}
	}
	return ret
}

// TransitDistanceTable converts distances to a two column table of (t, x)
func TransitDistanceTable(distances []TransitDistance) Table {
	ret := make(Table, len(distances))
	for i, d := range distances {
		ret[i] = []float64{d.Time, d.Distance}
	}
	return ret
}
