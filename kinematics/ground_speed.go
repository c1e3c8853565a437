package kinematics

import (
	"math"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/poly"
	"github.com/pkg/errors"
)

// GroundSpeedRaw returns the ground speed in m/s of a transit of duration dt centred on t.
// The transit error grows as the aspect strays from 90 degrees. Min lengthens dt using the Max aspect
// fit and Max shortens it using the Min aspect fit.
func (a *Analysis) GroundSpeedRaw(t, dt float64, dir ErrorDirection) (float64, error) {
	switch dir {
	case Min, Max:
		fit, err := a.aspect.Get(Flip(dir))
		if err != nil {
			return 0, err
		}
		aspect := fit.Eval(t)
		dt -= dir.Sign() * a.params.TransitError / math.Abs(math.Sin(geom.Radians(aspect)))
	case Mid:
	default:
		return 0, errors.Wrapf(ErrBadDirection, "%d", int(dir))
	}
	pitch, err := a.Pitch(t, dir)
	if err != nil {
		return 0, errors.Wrap(err, "can't get pitch")
	}
	roll, err := a.cameraRollCorrection(t)
	if err != nil {
		return 0, err
	}
	return math.Cos(geom.Radians(pitch)) * roll * a.ds.Aircraft.Length / dt, nil
}

func (a *Analysis) cameraRollCorrection(t float64) (float64, error) {
	if len(a.ds.CameraRoll) == 0 {
		return 1.0, nil
	}
	roll, err := a.ds.CameraRoll.Interpolate(t)
	if err != nil {
		return 0, errors.Wrap(err, "can't get camera roll")
	}
	return math.Cos(geom.Radians(roll)), nil
}

// GroundSpeeds returns the raw ground speed in m/s of every transit for dir
func (a *Analysis) GroundSpeeds(dir ErrorDirection) (Series, error) {
	ret := make(Series, 0, len(a.ds.Transits))
	for _, transit := range a.ds.Transits {
		gs, err := a.GroundSpeedRaw(transit.Time(), transit.Dt(), dir)
		if err != nil {
			return nil, errors.Wrapf(err, "transit '%s'", transit.Note)
		}
		ret = append(ret, TimedMeasurement{Time: transit.Time(), Value: gs, Note: transit.Note})
	}
	return ret, nil
}

func (a *Analysis) fitGroundSpeed(dir ErrorDirection) (poly.Polynomial, error) {
	speeds, err := a.GroundSpeeds(dir)
	if err != nil {
		return nil, err
	}
	return a.fitSeries("ground speed", speeds, dir)
}

func (a *Analysis) fitGroundSpeedWithOffset(offset float64) (poly.Polynomial, error) {
	speeds, err := a.GroundSpeeds(Mid)
	if err != nil {
		return nil, err
	}
	shifted := make(Series, len(speeds))
	for i := range speeds {
		shifted[i] = speeds[i]
		shifted[i].Value += offset
	}
	a.logger.Debug("fitting ground speed with offset", "offset", offset)
	return a.fitSeries("ground speed", shifted, Mid)
}

// GroundSpeedFits are fits to the raw ground speeds recomputed with each direction's errors
func (a *Analysis) GroundSpeedFits() *FitSet {
	return a.groundSpeed
}

// OffsetGroundSpeedFits are fits to the Mid raw ground speeds shifted by Params.GroundSpeedOffsets
func (a *Analysis) OffsetGroundSpeedFits() *FitSet {
	return a.offsetGroundSpeed
}

// CorrectedGroundSpeedFits are fits to the Mid raw ground speeds plus the speed correction
// and -/0/+ the speed tolerance
func (a *Analysis) CorrectedGroundSpeedFits() *FitSet {
	return a.correctedGroundSpeed
}

// Fits returns the ground speed fits built with strategy
func (a *Analysis) Fits(strategy FitStrategy) (*FitSet, error) {
	switch strategy {
	case PerturbedObservations:
		return a.groundSpeed, nil
	case NominalOffset:
		return a.offsetGroundSpeed, nil
	case Corrected:
		return a.correctedGroundSpeed, nil
	default:
		return nil, errors.Errorf("unknown fit strategy %d", int(strategy))
	}
}

// MotionModel is a ground speed fit plus the distance from the runway start at t=0.
// HasStart is false when the fit never reaches zero before the video starts.
type MotionModel struct {
	Fit      poly.Polynomial
	Offset   float64
	Start    float64
	HasStart bool
}

// Speed in m/s at t
func (m MotionModel) Speed(t float64) float64 {
	return m.Fit.Eval(t)
}

// Acceleration in m/s^2 at t
func (m MotionModel) Acceleration(t float64) float64 {
	return m.Fit.Derivative().Eval(t)
}

// Distance travelled between t0 and t1 in metres
func (m MotionModel) Distance(t0, t1 float64) float64 {
	return m.Fit.Integrate(t0, t1)
}

// DistanceFromRunwayStart in metres at t
func (m MotionModel) DistanceFromRunwayStart(t float64) float64 {
	return m.Offset + m.Fit.IntegralFromZero(t)
}

// StartOfRoll returns the time the fitted ground speed was zero, the largest real root before t=0
func StartOfRoll(fit poly.Polynomial) (float64, error) {
	roots, err := fit.RealRoots()
	if err != nil {
		return 0, errors.Wrap(err, "can't find roots")
	}
	start := math.Inf(-1)
	for _, root := range roots {
		if root < 0 && root > start {
			start = root
		}
	}
	if math.IsInf(start, -1) {
		return 0, ErrNoStartOfRoll
	}
	return start, nil
}

// RunwayOffset is the distance from the runway start at t=0 such that the fit reaches the end
// of the runway at the end of asphalt time
func (a *Analysis) RunwayOffset(fit poly.Polynomial) float64 {
	return a.ds.RunwayLength - fit.Integrate(0, a.ds.EndAsphalt.Seconds())
}

// MotionModels returns a model per direction in Directions() order
func (a *Analysis) MotionModels(strategy FitStrategy) ([]MotionModel, error) {
	fs, err := a.Fits(strategy)
	if err != nil {
		return nil, err
	}
	fits, err := fs.All()
	if err != nil {
		return nil, err
	}
	ret := make([]MotionModel, len(fits))
	for i, fit := range fits {
		ret[i] = MotionModel{Fit: fit, Offset: a.RunwayOffset(fit)}
		start, err := StartOfRoll(fit)
		switch {
		case err == nil:
			ret[i].Start = start
			ret[i].HasStart = true
		case errors.Is(err, ErrNoStartOfRoll):
			a.logger.Debug("no start of roll", "strategy", strategy.String(), "direction", Directions()[i].String())
		default:
			return nil, errors.Wrapf(err, "%s %s", strategy, Directions()[i])
		}
	}
	return ret, nil
}

// RawAccelerations returns rows of (t, accel, t-err, t+err, accel min, accel max) from finite
// differences of successive raw ground speeds. toUnits converts m/s to the reported speed unit.
// Transits sharing a mid point are skipped.
func (a *Analysis) RawAccelerations(toUnits func(float64) float64) (Table, error) {
	speeds := make([]Series, 0, 3)
	for _, dir := range Directions() {
		s, err := a.GroundSpeeds(dir)
		if err != nil {
			return nil, err
		}
		speeds = append(speeds, s)
	}
	minS, midS, maxS := speeds[0], speeds[1], speeds[2]
	ret := make(Table, 0, len(midS))
	for i := 1; i < len(midS); i++ {
		t := midS[i].Time
		dt := t - midS[i-1].Time
		if dt == 0 {
			continue
		}
		ret = append(ret, []float64{
			t,
			(toUnits(midS[i].Value) - toUnits(midS[i-1].Value)) / dt,
			t - a.params.TimestampError,
			t + a.params.TimestampError,
			(toUnits(minS[i].Value) - toUnits(minS[i-1].Value)) / dt,
			(toUnits(maxS[i].Value) - toUnits(maxS[i-1].Value)) / dt,
		})
	}
	return ret, nil
}
