package kinematics

import (
	"io"
	"log/slog"

	"github.com/LdDl/trajectory-go/poly"
	"github.com/pkg/errors"
)

// Analysis derives trajectory and observer estimates from a Dataset.
// Fits are computed lazily and cached for the lifetime of the Analysis.
type Analysis struct {
	ds        *Dataset
	params    Params
	evaluator Evaluator
	logger    *slog.Logger
	// wingTips are the selections aspects are computed from, smoothed when Params.SmoothWingTips is set
	wingTips []WingTipAspect

	groundSpeed          *FitSet
	offsetGroundSpeed    *FitSet
	correctedGroundSpeed *FitSet
	aspect               *FitSet
	wingTipAspect        *FitSet
	pitch                *FitSet
}

// NewAnalysis validates the dataset and prepares the fit caches. A nil logger discards output.
func NewAnalysis(ds *Dataset, params Params, logger *slog.Logger) (*Analysis, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid dataset")
	}
	if params.FitDegree < 0 {
		return nil, errors.Errorf("fit degree must be >= 0, got %d", params.FitDegree)
	}
	if params.TimestampError < 0 {
		return nil, errors.Wrapf(ErrNegativeError, "timestamp error %v", params.TimestampError)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Analysis{
		ds:        ds,
		params:    params,
		evaluator: Evaluator{TimeError: params.TimestampError},
		logger:    logger,
		wingTips:  ds.WingTips,
	}
	if params.SmoothWingTips {
		smoothed, err := a.SmoothedWingTips()
		if err != nil {
			return nil, errors.Wrap(err, "can't smooth wing tips")
		}
		a.wingTips = smoothed
		logger.Debug("smoothed wing tips", "selections", len(smoothed))
	}
	a.groundSpeed = NewFitSet("ground speed", a.fitGroundSpeed)
	a.offsetGroundSpeed = NewFitSet("ground speed offset", func(dir ErrorDirection) (poly.Polynomial, error) {
		return a.fitGroundSpeedWithOffset(params.offsetFor(dir))
	})
	a.correctedGroundSpeed = NewFitSet("ground speed corrected", func(dir ErrorDirection) (poly.Polynomial, error) {
		return a.fitGroundSpeedWithOffset(params.SpeedCorrection + dir.Sign()*params.SpeedTolerance)
	})
	a.aspect = NewFitSet("aspect", func(dir ErrorDirection) (poly.Polynomial, error) {
		return a.fitSeries("aspect", a.Aspects(dir), dir)
	})
	a.wingTipAspect = NewFitSet("wing tip aspect", func(dir ErrorDirection) (poly.Polynomial, error) {
		return a.fitSeries("wing tip aspect", a.WingTipAspects(dir), dir)
	})
	a.pitch = NewFitSet("pitch", func(dir ErrorDirection) (poly.Polynomial, error) {
		return a.fitSeries("pitch", a.Pitches(dir), dir)
	})
	return a, nil
}

// Dataset returns the analysed measurements
func (a *Analysis) Dataset() *Dataset {
	return a.ds
}

// Params returns the error terms of the analysis
func (a *Analysis) Params() Params {
	return a.params
}

// Evaluator returns the error hypothesis evaluator used for interpolated signals
func (a *Analysis) Evaluator() Evaluator {
	return a.evaluator
}

func (a *Analysis) fitSeries(name string, s Series, dir ErrorDirection) (poly.Polynomial, error) {
	fit, err := poly.Fit(s.Times(), s.Values(), a.params.FitDegree)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("fitted series", "signal", name, "direction", dir.String(), "degree", fit.Degree(), "samples", len(s))
	return fit, nil
}

// perturb moves a measurement to its worst case time and value for dir
func (a *Analysis) perturb(t, value, err float64, dir ErrorDirection) (float64, float64) {
	switch dir {
	case Min:
		return t - a.params.TimestampError, value - err
	case Max:
		return t + a.params.TimestampError, value + err
	default:
		return t, value
	}
}

// Pitches returns the pitch observations moved to their worst case for dir
func (a *Analysis) Pitches(dir ErrorDirection) Series {
	ret := make(Series, 0, len(a.ds.Pitches))
	for _, p := range a.ds.Pitches {
		t, v := a.perturb(p.Time.Seconds(), p.Angle, a.params.PitchError, dir)
		ret = append(ret, TimedMeasurement{Time: t, Value: v, Error: a.params.PitchError, Note: p.Note})
	}
	return ret
}

// Pitch returns the interpolated pitch in degrees at t with the worst case error for dir
func (a *Analysis) Pitch(t float64, dir ErrorDirection) (float64, error) {
	nominal := a.Pitches(Mid)
	return a.evaluator.Apply(nominal.Interpolate, t, dir, a.params.PitchError)
}

// Aspects returns the table aspects moved to their worst case for dir
func (a *Analysis) Aspects(dir ErrorDirection) Series {
	ret := make(Series, 0, len(a.ds.Aspects))
	for _, asp := range a.ds.Aspects {
		t, v := a.perturb(asp.Time.Seconds(), asp.Angle, asp.Error, dir)
		ret = append(ret, TimedMeasurement{Time: t, Value: v, Error: asp.Error, Note: asp.Note})
	}
	return ret
}

// WingTipAspects returns the wing tip aspects moved to their worst case for dir
func (a *Analysis) WingTipAspects(dir ErrorDirection) Series {
	return a.wingTipSeries(a.wingTips, dir)
}

func (a *Analysis) wingTipSeries(tips []WingTipAspect, dir ErrorDirection) Series {
	ret := make(Series, 0, len(tips))
	for _, wt := range tips {
		angle := wt.Angle(a.ds.Aircraft)
		angleErr := wt.Error(a.ds.Aircraft, a.params.WingTipPixelError)
		t, v := a.perturb(wt.Time.Seconds(), angle, angleErr, dir)
		ret = append(ret, TimedMeasurement{Time: t, Value: v, Error: angleErr, Note: wt.Note})
	}
	return ret
}

// AspectFits are fits to the table aspects
func (a *Analysis) AspectFits() *FitSet {
	return a.aspect
}

// WingTipAspectFits are fits to the wing tip aspects
func (a *Analysis) WingTipAspectFits() *FitSet {
	return a.wingTipAspect
}

// PitchFits are fits to the pitch observations
func (a *Analysis) PitchFits() *FitSet {
	return a.pitch
}

// Reset drops every cached fit so that a changed dataset is picked up
func (a *Analysis) Reset() {
	for _, fs := range []*FitSet{a.groundSpeed, a.offsetGroundSpeed, a.correctedGroundSpeed, a.aspect, a.wingTipAspect, a.pitch} {
		fs.Reset()
	}
}
