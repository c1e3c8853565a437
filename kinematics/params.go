package kinematics

import "github.com/LdDl/trajectory-go/units"

// Params are the error terms and estimator settings of an analysis
type Params struct {
	// TimestampError is the +/- uncertainty of any timestamp in seconds
	TimestampError float64
	// TransitError is the +/- uncertainty of a transit duration at 90 degrees aspect, in seconds
	TransitError float64
	// PitchError in degrees
	PitchError float64
	// AspectError of table aspects in degrees
	AspectError float64
	// WingTipPixelError is added to span and length of wing tip selections
	WingTipPixelError float64
	// ApparentLengthPixelError of screenshot lengths
	ApparentLengthPixelError float64
	// SmoothWingTips runs the wing tip selections through a Kalman filter before computing aspects
	SmoothWingTips bool
	// LandmarkError is the position error of Google Earth landmarks in metres
	LandmarkError float64

	// GroundSpeedOffsets are added to the nominal ground speeds for Min, Mid, Max in m/s
	GroundSpeedOffsets [3]float64
	// SpeedCorrection is added to every nominal ground speed of the corrected fits in m/s
	SpeedCorrection float64
	// SpeedTolerance is the +/- band of the corrected fits in m/s
	SpeedTolerance float64
	// AccelerationError reported against every event in m/s^2
	AccelerationError float64
	// DistanceError is the minimum distance error reported against every event in metres
	DistanceError float64

	FitDegree int
	// FitInterval is the time step used when sampling fits in seconds
	FitInterval float64
	// MaxVideoTime is the last whole second used when sampling fits
	MaxVideoTime float64
	// ExtrapolationStop is the time that extrapolated distance tables end at
	ExtrapolationStop float64

	Observer ObserverOptions
}

// DefaultParams returns the error terms used for the A340 take off
func DefaultParams() Params {
	const fps = FramesPerSecond
	return Params{
		TimestampError:           5.0 / fps,
		TransitError:             1.0 / fps,
		PitchError:               1.0,
		AspectError:              5.0,
		WingTipPixelError:        18,
		ApparentLengthPixelError: 10,
		LandmarkError:            10,
		GroundSpeedOffsets: [3]float64{
			units.KnotsToMPS(-10.0),
			0.0,
			units.KnotsToMPS(10.0),
		},
		SpeedCorrection:   units.KnotsToMPS(5.0),
		SpeedTolerance:    units.KnotsToMPS(5.0),
		AccelerationError: 0.17 / 2,
		DistanceError:     25.0,
		FitDegree:         3,
		FitInterval:       1.0,
		MaxVideoTime:      36,
		ExtrapolationStop: 40,
		Observer: ObserverOptions{
			Baseline:     1250.0,
			IgnoreFirstN: 5,
		},
	}
}

// offsetFor returns the nominal ground speed offset of a direction
func (p Params) offsetFor(dir ErrorDirection) float64 {
	return p.GroundSpeedOffsets[int(dir)+1]
}
