package geom

import "github.com/pkg/errors"

var (
	// ErrDegenerateTriangle is returned when a triangle can't be solved from the given angles and side
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrBearingHalfPlane is returned when two bearings to the same point are not in a consistent half-plane
	ErrBearingHalfPlane = errors.New("bearings are not in a consistent half-plane")
	// ErrParallelLines is returned when two lines never intersect
	ErrParallelLines = errors.New("lines are parallel")
	// ErrLengthMismatch is returned when paired slices have different lengths
	ErrLengthMismatch = errors.New("lengths of x and y differ")
	// ErrCannotExtrapolate is returned when there are not enough samples to extrapolate from
	ErrCannotExtrapolate = errors.New("can't extrapolate from less than two samples")
	// ErrBadGoogleEarthURL is returned when a line does not look like "label: <google maps url>"
	ErrBadGoogleEarthURL = errors.New("can't parse Google Earth URL")
	// ErrUnknownTile is returned when no offset is known between two satellite tiles
	ErrUnknownTile = errors.New("unknown tile pair")
)
