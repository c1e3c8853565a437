package kinematics

import "github.com/pkg/errors"

var (
	// ErrInvalidVideoTime is returned for minutes, seconds or frames out of range
	ErrInvalidVideoTime = errors.New("invalid video time")
	// ErrNegativeError is returned when a measurement error term is negative
	ErrNegativeError = errors.New("error term must be >= 0")
	// ErrUnsorted is returned when a series is not in time order
	ErrUnsorted = errors.New("series is not time ordered")
	// ErrInsufficientObservations is returned when there are not enough observations to triangulate
	ErrInsufficientObservations = errors.New("insufficient observations")
	// ErrUnknownLandmark is returned when a label has no known position
	ErrUnknownLandmark = errors.New("unknown landmark")
	// ErrNoStartOfRoll is returned when the ground speed fit has no root before the video starts
	ErrNoStartOfRoll = errors.New("no start of take off roll before t=0")
	// ErrBadDirection is returned for an ErrorDirection outside of Min, Mid, Max
	ErrBadDirection = errors.New("bad error direction")
)
