// Package units provides speed unit conversions used throughout the analysis
package units

import (
	"gonum.org/v1/gonum/stat/combin"
)

// Unit constants
const (
	MPS  = "mps"
	KT   = "kt"
	KMPH = "kmph"
	MPH  = "mph"
	FPM  = "fpm"
)

const (
	// FeetPerNauticalMile is the British Admiralty nautical mile used by the runway analysis
	FeetPerNauticalMile = 6080.0
	// MetresPerFoot is the international foot
	MetresPerFoot = 0.3048
	// MetresPerNauticalMile is the international nautical mile
	MetresPerNauticalMile = 1852.0
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, KT, KMPH, MPH, FPM}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, kt, kmph, mph, fpm"
}

// MPSToKnots converts metres per second to knots
func MPSToKnots(v float64) float64 {
	return 3600.0 * v / MetresPerFoot / FeetPerNauticalMile
}

// KnotsToMPS converts knots to metres per second
func KnotsToMPS(v float64) float64 {
	return v * FeetPerNauticalMile * MetresPerFoot / 3600.0
}

// MPSToInternationalKnots converts metres per second to knots of 1852m nautical mile
func MPSToInternationalKnots(v float64) float64 {
	return v * 3600.0 / MetresPerNauticalMile
}

// InternationalKnotsToMPS converts knots of 1852m nautical mile to metres per second
func InternationalKnotsToMPS(v float64) float64 {
	return v * MetresPerNauticalMile / 3600.0
}

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedMPS
	case KT:
		return MPSToKnots(speedMPS)
	case KMPH:
		return speedMPS * 3.6
	case MPH:
		return speedMPS * 2.2369362920544
	case FPM:
		return speedMPS * 60.0 / MetresPerFoot
	default:
		return speedMPS
	}
}

// ConvertToMPS converts a speed in the given units to metres per second
func ConvertToMPS(speed float64, fromUnits string) float64 {
	switch fromUnits {
	case MPS:
		return speed
	case KT:
		return KnotsToMPS(speed)
	case KMPH:
		return speed / 3.6
	case MPH:
		return speed / 2.2369362920544
	case FPM:
		return speed * MetresPerFoot / 60.0
	default:
		return speed
	}
}

// NumKOfN returns number of combinations of k elements out of n. It is zero when k > n.
func NumKOfN(n, k int) int {
	if k > n || k < 0 || n < 0 {
		return 0
	}
	return combin.Binomial(n, k)
}
