package kinematics

import (
	"math"

	"github.com/pkg/errors"
)

// Evaluator applies the worst case time and measurement error to a function of time.
// TimeError is the uncertainty of every timestamp in seconds.
type Evaluator struct {
	TimeError float64
}

// Apply returns g(t) for Mid. For Max it is the larger of g(t-dt) and g(t+dt) plus err,
// for Min the smaller of the two minus err.
func (e Evaluator) Apply(g func(float64) (float64, error), t float64, dir ErrorDirection, err float64) (float64, error) {
	if dir == Mid {
		return g(t)
	}
	if !dir.Valid() {
		return 0, errors.Wrapf(ErrBadDirection, "%d", int(dir))
	}
	if err < 0 {
		return 0, errors.Wrapf(ErrNegativeError, "got %v", err)
	}
	before, gErr := g(t - e.TimeError)
	if gErr != nil {
		return 0, gErr
	}
	after, gErr := g(t + e.TimeError)
	if gErr != nil {
		return 0, gErr
	}
	if dir == Max {
		return math.Max(before, after) + err, nil
	}
	return math.Min(before, after) - err, nil
}
