package kinematics

import (
	"math"
	"testing"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowsFor returns exact bearings to observer from positions along the x axis
func rowsFor(observer geom.Point, distances ...float64) []ObservationRow {
	ret := make([]ObservationRow, len(distances))
	for i, d := range distances {
		ret[i] = ObservationRow{
			Time:     float64(i),
			Distance: d,
			Bearing:  geom.NormalizeDegrees(geom.Degrees(math.Atan2(observer.Y, observer.X-d))),
		}
	}
	return ret
}

func TestTriangulateObserversAllPairs(t *testing.T) {
	for _, observer := range []geom.Point{geom.NewPoint(500, 200), geom.NewPoint(1500, -750)} {
		rows := rowsFor(observer, 0, 100, 250, 400, 700, 1100, 1600, 2000)
		tr, err := TriangulateObservers(rows, ObserverOptions{})
		require.NoError(t, err)
		n := len(rows)
		assert.Equal(t, n*(n-1)/2, tr.Possible)
		assert.Len(t, tr.Points, n*(n-1)/2)
		est, err := tr.MeanStd()
		require.NoError(t, err)
		assert.InDelta(t, observer.X, est.X.Mean, 1e-6)
		assert.InDelta(t, observer.Y, est.Y.Mean, 1e-6)
		assert.InDelta(t, 0.0, est.X.Spread, 1e-6)
		assert.InDelta(t, 0.0, est.Error(), 1e-6)
	}
}

func TestTriangulateObserversFilters(t *testing.T) {
	observer := geom.NewPoint(500, 200)
	rows := rowsFor(observer, 0, 100, 200, 300, 400, 500, 600)

	tr, err := TriangulateObservers(rows, ObserverOptions{Baseline: 250})
	require.NoError(t, err)
	assert.Equal(t, 21, tr.Possible)
	// Only pairs at least 300 m apart remain
	assert.Len(t, tr.Points, 10)

	tr, err = TriangulateObservers(rows, ObserverOptions{IgnoreFirstN: 2})
	require.NoError(t, err)
	assert.Equal(t, 10, tr.Possible)

	// Window keeps t >= 1 and t < 4 after dropping the first row
	tr, err = TriangulateObservers(rows, ObserverOptions{IgnoreFirstN: 1, TimeRange: TimeRange{From: 1, To: 4}})
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Possible)

	// An inverted window is ignored
	tr, err = TriangulateObservers(rows, ObserverOptions{TimeRange: TimeRange{From: 4, To: 1}})
	require.NoError(t, err)
	assert.Equal(t, 21, tr.Possible)

	_, err = TriangulateObservers(rows, ObserverOptions{IgnoreFirstN: 6})
	assert.True(t, errors.Is(err, ErrInsufficientObservations))
	_, err = TriangulateObservers(rows, ObserverOptions{IgnoreFirstN: 100})
	assert.True(t, errors.Is(err, ErrInsufficientObservations))
}

func TestTriangulateObserversBadBearings(t *testing.T) {
	rows := []ObservationRow{
		{Time: 0, Distance: 0, Bearing: 90},
		{Time: 1, Distance: 100, Bearing: 45},
	}
	_, err := TriangulateObservers(rows, ObserverOptions{})
	assert.True(t, errors.Is(err, geom.ErrBearingHalfPlane))

	_, err = Triangulation{}.MeanStd()
	assert.True(t, errors.Is(err, ErrInsufficientObservations))
}

func TestObserverFromFullTransits(t *testing.T) {
	lines := []FullTransitLine{
		{From: TransitPoint{"A", geom.NewPoint(0, 0)}, To: TransitPoint{"B", geom.NewPoint(20, -10)}},
		{From: TransitPoint{"C", geom.NewPoint(10, 5)}, To: TransitPoint{"D", geom.NewPoint(10, -15)}},
		{From: TransitPoint{"E", geom.NewPoint(0, -5)}, To: TransitPoint{"F", geom.NewPoint(20, -5)}},
	}
	est, err := ObserverFromFullTransits(lines)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, est.X.Mean, eps)
	assert.InDelta(t, -5.0, est.Y.Mean, eps)
	assert.InDelta(t, 0.0, est.X.Spread, eps)
	assert.InDelta(t, 0.0, est.Y.Spread, eps)

	// Move one line so the crossings spread out
	lines[2].From.XY.Y, lines[2].To.XY.Y = -7, -7
	est, err = ObserverFromFullTransits(lines)
	require.NoError(t, err)
	// Crossings are (10, -5), (14, -7), (10, -7)
	assert.InDelta(t, 34.0/3.0, est.X.Mean, eps)
	assert.InDelta(t, 2.0, est.X.Spread, eps)
	assert.InDelta(t, 1.0, est.Y.Spread, eps)

	_, err = ObserverFromFullTransits(lines[:1])
	assert.True(t, errors.Is(err, ErrInsufficientObservations))
}
