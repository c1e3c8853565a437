package kinematics

import (
	"math"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/units"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
)

// ObservationRow is a bearing from the aircraft to the observer when the aircraft was Distance
// metres along the x axis
type ObservationRow struct {
	Time         float64
	Distance     float64
	Bearing      float64
	BearingError float64
}

// TimeRange is a half open window [From, To). It is ignored unless From < To.
type TimeRange struct {
	From float64
	To   float64
}

// Contains reports whether t is inside the window. An unset window contains everything.
func (tr TimeRange) Contains(t float64) bool {
	if !(tr.From < tr.To) {
		return true
	}
	return t >= tr.From && t < tr.To
}

// ObserverOptions filter the observations used to triangulate the observer
type ObserverOptions struct {
	// Baseline is the minimum separation along the x axis of a pair of observations
	Baseline float64
	// IgnoreFirstN drops the earliest observations before the time filter
	IgnoreFirstN int
	TimeRange    TimeRange
}

// Triangulation is every observer position found from pairs of observations
type Triangulation struct {
	Points []geom.Point
	// Possible is the number of pairs considered, C(n, 2)
	Possible int
}

// AxisEstimate is a mean and a spread along one axis
type AxisEstimate struct {
	Mean   float64
	Spread float64
}

// ObserverEstimate is the estimated observer position in metres
type ObserverEstimate struct {
	X AxisEstimate
	Y AxisEstimate
}

// Point returns the mean position
func (oe ObserverEstimate) Point() geom.Point {
	return geom.NewPoint(oe.X.Mean, oe.Y.Mean)
}

// Error returns the combined spread of both axes
func (oe ObserverEstimate) Error() float64 {
	return math.Hypot(oe.X.Spread, oe.Y.Spread)
}

func (a *Analysis) observationRows(source Series, dir ErrorDirection) ([]ObservationRow, error) {
	if !dir.Valid() {
		return nil, errors.Wrapf(ErrBadDirection, "%d", int(dir))
	}
	// Distance always comes from the Mid fit; only the bearing carries the error.
	gsFit, err := a.groundSpeed.Get(Mid)
	if err != nil {
		return nil, err
	}
	ret := make([]ObservationRow, 0, len(source))
	for _, m := range source {
		ret = append(ret, ObservationRow{
			Time:         m.Time,
			Distance:     gsFit.IntegralFromZero(m.Time),
			Bearing:      m.Value + dir.Sign()*m.Error,
			BearingError: m.Error,
		})
	}
	return ret, nil
}

// ObserverTimeDistanceBearing returns a row per wing tip aspect
func (a *Analysis) ObserverTimeDistanceBearing(dir ErrorDirection) ([]ObservationRow, error) {
	return a.observationRows(a.WingTipAspects(Mid), dir)
}

// ObserverTimeDistanceBearingFromAspects returns a row per table aspect
func (a *Analysis) ObserverTimeDistanceBearingFromAspects(dir ErrorDirection) ([]ObservationRow, error) {
	return a.observationRows(a.Aspects(Mid), dir)
}

// TriangulateObservers intersects the bearings of every pair of rows separated by more than the baseline.
// The first IgnoreFirstN rows are dropped before the time window is applied.
func TriangulateObservers(rows []ObservationRow, opts ObserverOptions) (Triangulation, error) {
	if opts.IgnoreFirstN < 0 {
		return Triangulation{}, errors.Errorf("ignore first N must be >= 0, got %d", opts.IgnoreFirstN)
	}
	if opts.IgnoreFirstN < len(rows) {
		rows = rows[opts.IgnoreFirstN:]
	} else {
		rows = nil
	}
	selected := make([]ObservationRow, 0, len(rows))
	for _, row := range rows {
		if opts.TimeRange.Contains(row.Time) {
			selected = append(selected, row)
		}
	}
	if len(selected) < 2 {
		return Triangulation{}, errors.Wrapf(ErrInsufficientObservations, "%d observations", len(selected))
	}
	result := Triangulation{
		Points: make([]geom.Point, 0, units.NumKOfN(len(selected), 2)),
	}
	gen := combin.NewCombinationGenerator(len(selected), 2)
	pair := make([]int, 2)
	for gen.Next() {
		gen.Combination(pair)
		r0, r1 := selected[pair[0]], selected[pair[1]]
		result.Possible++
		if math.Abs(r0.Distance-r1.Distance) <= opts.Baseline {
			continue
		}
		x, y, err := geom.AspectIntersection(r0.Distance, r0.Bearing, r1.Distance, r1.Bearing)
		if err != nil {
			return Triangulation{}, errors.Wrapf(err, "t=%.3f and t=%.3f", r0.Time, r1.Time)
		}
		result.Points = append(result.Points, geom.NewPoint(x, y))
	}
	return result, nil
}

// Xs returns the x values of the points
func (tr Triangulation) Xs() []float64 {
	ret := make([]float64, len(tr.Points))
	for i, p := range tr.Points {
		ret[i] = p.X
	}
	return ret
}

// Ys returns the y values of the points
func (tr Triangulation) Ys() []float64 {
	ret := make([]float64, len(tr.Points))
	for i, p := range tr.Points {
		ret[i] = p.Y
	}
	return ret
}

// MeanStd returns the mean and the population standard deviation of each axis
func (tr Triangulation) MeanStd() (ObserverEstimate, error) {
	if len(tr.Points) == 0 {
		return ObserverEstimate{}, errors.Wrap(ErrInsufficientObservations, "no intersections")
	}
	xMean, xStd := stat.PopMeanStdDev(tr.Xs(), nil)
	yMean, yStd := stat.PopMeanStdDev(tr.Ys(), nil)
	return ObserverEstimate{
		X: AxisEstimate{Mean: xMean, Spread: xStd},
		Y: AxisEstimate{Mean: yMean, Spread: yStd},
	}, nil
}

// ObserverPositions triangulates the observer from the wing tip aspects for dir
func (a *Analysis) ObserverPositions(dir ErrorDirection, opts ObserverOptions) (Triangulation, error) {
	rows, err := a.ObserverTimeDistanceBearing(dir)
	if err != nil {
		return Triangulation{}, err
	}
	result, err := TriangulateObservers(rows, opts)
	if err != nil {
		return Triangulation{}, err
	}
	a.logger.Debug("triangulated observer", "direction", dir.String(), "points", len(result.Points), "possible", result.Possible)
	return result, nil
}

// ObserverPositionMeanStd is the Mid observer estimate from the wing tip aspects
func (a *Analysis) ObserverPositionMeanStd(opts ObserverOptions) (ObserverEstimate, error) {
	tr, err := a.ObserverPositions(Mid, opts)
	if err != nil {
		return ObserverEstimate{}, err
	}
	return tr.MeanStd()
}

// TimeDistanceBearingFromFits samples the Mid ground speed and table aspect fits every interval seconds
func (a *Analysis) TimeDistanceBearingFromFits(interval float64) ([]ObservationRow, error) {
	if interval <= 0 {
		return nil, errors.Errorf("interval must be > 0, got %v", interval)
	}
	gsFit, err := a.groundSpeed.Get(Mid)
	if err != nil {
		return nil, err
	}
	aspectFit, err := a.aspect.Get(Mid)
	if err != nil {
		return nil, err
	}
	ret := make([]ObservationRow, 0, int(a.params.MaxVideoTime/interval)+1)
	for i := 0; ; i++ {
		t := float64(i) * interval
		if t > a.params.MaxVideoTime {
			break
		}
		ret = append(ret, ObservationRow{
			Time:         t,
			Distance:     gsFit.IntegralFromZero(t),
			Bearing:      aspectFit.Eval(t),
			BearingError: a.params.AspectError,
		})
	}
	return ret, nil
}

// ObserverFromFits triangulates the observer from the fitted curves
func (a *Analysis) ObserverFromFits(baseline, interval float64) (Triangulation, error) {
	rows, err := a.TimeDistanceBearingFromFits(interval)
	if err != nil {
		return Triangulation{}, err
	}
	return TriangulateObservers(rows, ObserverOptions{Baseline: baseline})
}

// ObserverFromFullTransits intersects every pair of full transit lines.
// The spread of each axis is half the range of the crossings.
func ObserverFromFullTransits(lines []FullTransitLine) (ObserverEstimate, error) {
	if len(lines) < 2 {
		return ObserverEstimate{}, errors.Wrapf(ErrInsufficientObservations, "%d full transits", len(lines))
	}
	xs := make([]float64, 0, units.NumKOfN(len(lines), 2))
	ys := make([]float64, 0, cap(xs))
	gen := combin.NewCombinationGenerator(len(lines), 2)
	pair := make([]int, 2)
	for gen.Next() {
		gen.Combination(pair)
		l0, l1 := lines[pair[0]], lines[pair[1]]
		crossing, err := geom.IntersectTwoLines(l0.From.XY, l0.To.XY, l1.From.XY, l1.To.XY)
		if err != nil {
			return ObserverEstimate{}, errors.Wrapf(err, "'%s' and '%s'", l0.From.Label, l1.From.Label)
		}
		xs = append(xs, crossing.X)
		ys = append(ys, crossing.Y)
	}
	return ObserverEstimate{
		X: AxisEstimate{Mean: stat.Mean(xs, nil), Spread: (floats.Max(xs) - floats.Min(xs)) / 2.0},
		Y: AxisEstimate{Mean: stat.Mean(ys, nil), Spread: (floats.Max(ys) - floats.Min(ys)) / 2.0},
	}, nil
}

// ObserverFromFullTransits is the observer estimate from the dataset's full transits
func (a *Analysis) ObserverFromFullTransits() (ObserverEstimate, error) {
	return ObserverFromFullTransits(a.ds.FullTransits)
}
