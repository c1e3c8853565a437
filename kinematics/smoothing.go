package kinematics

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/LdDl/trajectory-go/geom"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SelectionTrack follows the (span, length) pixel selection of the wing tips from frame to frame.
// Measurements are smoothed by a 2D Kalman filter.
type SelectionTrack struct {
	id            uuid.UUID
	current       geom.PixelPoint
	predictedNext geom.PixelPoint
	track         []geom.PixelPoint
	maxTrackLen   int
	tracker       *kalman_filter.Kalman2D
}

// NewSelectionTrack starts a track at the first selection. dt is the time between selections.
func NewSelectionTrack(first WingTipAspect, dt float64) *SelectionTrack {
	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(first.Span, first.Length))
	st := SelectionTrack{
		id:            uuid.New(),
		current:       geom.NewPixelPoint(first.Span, first.Length),
		predictedNext: geom.PixelPoint{},
		track:         make([]geom.PixelPoint, 0, 64),
		maxTrackLen:   1024,
		tracker:       kf,
	}
	st.track = append(st.track, st.current)
	return &st
}

// ID returns the track identifier
func (st *SelectionTrack) ID() uuid.UUID {
	return st.id
}

// PredictNext runs the prediction step and returns the expected next (span, length)
func (st *SelectionTrack) PredictNext() geom.PixelPoint {
	st.tracker.Predict()
	stateX, stateY := st.tracker.GetState()
	st.predictedNext = geom.NewPixelPoint(stateX, stateY)
	return st.predictedNext
}

// Update corrects the filter with a new selection
func (st *SelectionTrack) Update(tip WingTipAspect) error {
	err := st.tracker.Update(tip.Span, tip.Length)
	if err != nil {
		return errors.Wrap(err, "Can't update selection tracker")
	}
	stateX, stateY := st.tracker.GetState()
	st.current = geom.NewPixelPoint(stateX, stateY)
	st.track = append(st.track, st.current)
	if len(st.track) > st.maxTrackLen {
		st.track = st.track[1:]
	}
	return nil
}

// State returns the current smoothed (span, length)
func (st *SelectionTrack) State() geom.PixelPoint {
	return st.current
}

// Track returns every smoothed (span, length) so far
func (st *SelectionTrack) Track() []geom.PixelPoint {
	return st.track
}

// SmoothWingTips returns a copy of tips with span and length replaced by the Kalman smoothed values.
// The first selection is kept as is.
func SmoothWingTips(tips []WingTipAspect, dt float64) ([]WingTipAspect, error) {
	if len(tips) == 0 {
		return nil, nil
	}
	st := NewSelectionTrack(tips[0], dt)
	ret := make([]WingTipAspect, len(tips))
	ret[0] = tips[0]
	for i := 1; i < len(tips); i++ {
		st.PredictNext()
		if err := st.Update(tips[i]); err != nil {
			return nil, errors.Wrapf(err, "selection %d", i)
		}
		ret[i] = tips[i]
		ret[i].Span = st.State().X
		ret[i].Length = st.State().Y
	}
	return ret, nil
}

// SmoothedWingTips runs the dataset's wing tip selections through SmoothWingTips.
// The filter step is the mean time between selections.
func (a *Analysis) SmoothedWingTips() ([]WingTipAspect, error) {
	tips := a.ds.WingTips
	if len(tips) < 2 {
		return tips, nil
	}
	dt := (tips[len(tips)-1].Time.Seconds() - tips[0].Time.Seconds()) / float64(len(tips)-1)
	if dt <= 0 {
		return nil, errors.Wrapf(ErrUnsorted, "wing tips span %v s", dt*float64(len(tips)-1))
	}
	return SmoothWingTips(tips, dt)
}

// SmoothedWingTipAspects returns the Mid aspects of the smoothed wing tip selections,
// whichever selections the analysis itself uses
func (a *Analysis) SmoothedWingTipAspects() (Series, error) {
	tips, err := a.SmoothedWingTips()
	if err != nil {
		return nil, err
	}
	return a.wingTipSeries(tips, Mid), nil
}
