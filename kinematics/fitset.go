package kinematics

import (
	"fmt"

	"github.com/LdDl/trajectory-go/poly"
	"github.com/pkg/errors"
)

// FitStrategy selects how the Min and Max ground speed fits are built
type FitStrategy int

const (
	// PerturbedObservations fits each direction to the raw values recomputed with that direction's errors
	PerturbedObservations FitStrategy = iota
	// NominalOffset fits the Mid raw values shifted by a fixed speed offset per direction
	NominalOffset
	// Corrected is NominalOffset around a constant speed correction
	Corrected
)

func (s FitStrategy) String() string {
	switch s {
	case PerturbedObservations:
		return "perturbed"
	case NominalOffset:
		return "offset"
	case Corrected:
		return "corrected"
	default:
		return fmt.Sprintf("FitStrategy(%d)", int(s))
	}
}

// FitBuilder computes the fit of one direction
type FitBuilder func(dir ErrorDirection) (poly.Polynomial, error)

// FitSet memoises one polynomial fit per ErrorDirection.
// Not safe for concurrent use.
type FitSet struct {
	name  string
	build FitBuilder
	fits  map[ErrorDirection]poly.Polynomial
}

// NewFitSet returns an empty cache around build
func NewFitSet(name string, build FitBuilder) *FitSet {
	return &FitSet{
		name:  name,
		build: build,
		fits:  make(map[ErrorDirection]poly.Polynomial, 3),
	}
}

// Name of the fitted signal
func (fs *FitSet) Name() string {
	return fs.name
}

// Get returns the fit for dir, computing it on first use
func (fs *FitSet) Get(dir ErrorDirection) (poly.Polynomial, error) {
	if !dir.Valid() {
		return nil, errors.Wrapf(ErrBadDirection, "%d", int(dir))
	}
	if fit, ok := fs.fits[dir]; ok {
		return fit, nil
	}
	fit, err := fs.build(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fit %s %s", fs.name, dir)
	}
	fs.fits[dir] = fit
	return fit, nil
}

// All returns the fits in Directions() order
func (fs *FitSet) All() ([]poly.Polynomial, error) {
	ret := make([]poly.Polynomial, 0, 3)
	for _, dir := range Directions() {
		fit, err := fs.Get(dir)
		if err != nil {
			return nil, err
		}
		ret = append(ret, fit)
	}
	return ret, nil
}

// Reset drops every cached fit
func (fs *FitSet) Reset() {
	fs.fits = make(map[ErrorDirection]poly.Polynomial, 3)
}
