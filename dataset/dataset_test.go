package dataset

import (
	"testing"

	"github.com/LdDl/trajectory-go/geom"
	kin "github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/units"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysis(t *testing.T) *kin.Analysis {
	ds, err := Build(geom.ProjectionHaversine)
	require.NoError(t, err)
	a, err := kin.NewAnalysis(ds, kin.DefaultParams(), nil)
	require.NoError(t, err)
	return a
}

func TestBuild(t *testing.T) {
	for _, name := range []string{geom.ProjectionHaversine, geom.ProjectionUTM} {
		ds, err := Build(name)
		require.NoError(t, err, name)
		assert.Len(t, ds.Transits, 52)
		assert.Len(t, ds.Aspects, 11)
		assert.Len(t, ds.WingTips, 35)
		assert.Len(t, ds.Pitches, 17)
		assert.Len(t, ds.ApparentLengths, 31)
		assert.Len(t, ds.LandmarkEvents, 29)
		assert.Len(t, ds.FullTransits, 5)
		assert.Len(t, ds.Events, 6)
		assert.Contains(t, ds.Landmarks, "Tower 19")
	}
	_, err := Build("mercator")
	assert.Error(t, err)
}

func TestWingTips(t *testing.T) {
	tips, err := WingTips()
	require.NoError(t, err)
	assert.Equal(t, kin.MustVideoTime(0, 0, 21), tips[0].Time)
	assert.Equal(t, kin.MustVideoTime(0, 33, 18), tips[len(tips)-1].Time)
	assert.InDelta(t, 341.65875659114886, tips[0].Angle(A340), 1e-9)
	assert.InDelta(t, 1.6421354969856452, tips[0].Error(A340, 18), 1e-9)
}

func TestLandmarkEvents(t *testing.T) {
	events, err := LandmarkEvents()
	require.NoError(t, err)
	expectedFirst := []kin.LandmarkEvent{
		{Time: 2.4333333, Label: "Tower 1"},
		{Time: 2.9, Label: "Tower 2"},
		{Time: 3.3666667, Label: "Tower 3"},
	}
	if diff := cmp.Diff(expectedFirst, events[:3], cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("First landmark events mismatch (-want +got):\n%s", diff)
	}
	last := events[len(events)-1]
	assert.Equal(t, "Second control tower", last.Label)
	// Simultaneous transits are ordered by label
	for i := 1; i < len(events); i++ {
		if events[i].Time == events[i-1].Time {
			assert.Less(t, events[i-1].Label, events[i].Label)
		}
	}
}

func TestSite(t *testing.T) {
	site, err := NewSite(geom.ProjectionHaversine)
	require.NoError(t, err)
	assert.Equal(t, "Tower 1", site.Labels[0])
	assert.InDelta(t, 127.89886197349145, site.AxisBearing, 1e-9)

	datum, err := site.XY("Threshold 15")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, datum.X, 1e-6)
	assert.InDelta(t, 0.0, datum.Y, 1e-6)

	observer, err := site.GoogleEarthObserver()
	require.NoError(t, err)
	assert.InDelta(t, 3457.88, observer.X, 0.05)
	assert.InDelta(t, -655.52, observer.Y, 0.05)

	_, err = site.XY("Nowhere")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	rows, err := site.TowerRows()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Len(t, rows[1], 8)
	// Towers in a row are evenly spaced
	d0 := geom.Distance(rows[0][0], rows[0][1])
	d1 := geom.Distance(rows[0][4], rows[0][5])
	assert.InDelta(t, d0, d1, 0.1)
}

func TestCalibrationGroundSpeed(t *testing.T) {
	a := newAnalysis(t)
	mid, err := a.GroundSpeedFits().Get(kin.Mid)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{55.71687047801121, 1.481666362897805, -0.007935365447662232, -4.17694751287843e-05}, []float64(mid), 1e-6)
	gs0 := units.MPSToKnots(mid.Eval(0))
	assert.InDelta(t, 108.235736, gs0, 1e-3)
	assert.InDelta(t, 113.0, gs0, 5.0)
	assert.InDelta(t, 2058.407, mid.Integrate(0, EndAsphalt.Seconds()), 1e-3)

	corrected, err := a.CorrectedGroundSpeedFits().All()
	require.NoError(t, err)
	for i, expected := range []float64{108.236, 113.236, 118.236} {
		assert.InDelta(t, expected, units.MPSToKnots(corrected[i].Eval(0)), 1e-3)
	}

	models, err := a.MotionModels(kin.Corrected)
	require.NoError(t, err)
	for i, expected := range []float64{1181.59, 1110.04, 1038.49} {
		assert.InDelta(t, expected, models[i].Offset, 0.01)
	}
	for i, expected := range []float64{-32.829, -34.204, -35.571} {
		start, err := kin.StartOfRoll(corrected[i])
		require.NoError(t, err)
		assert.InDelta(t, expected, start, 1e-3)
	}
	start, err := a.StartOfRollEstimate()
	require.NoError(t, err)
	assert.InDelta(t, -34.204, start.Value, 1e-3)
}

func TestCalibrationObserver(t *testing.T) {
	a := newAnalysis(t)
	opts := a.Params().Observer
	expected := map[kin.ErrorDirection][4]float64{
		kin.Mid: {2266.352, 12.603, -762.991, 12.096},
		kin.Min: {2241.219, 7.680, -804.590, 13.751},
		kin.Max: {2289.290, 23.183, -720.141, 16.658},
	}
	for dir, e := range expected {
		tr, err := a.ObserverPositions(dir, opts)
		require.NoError(t, err, dir.String())
		assert.Equal(t, 435, tr.Possible)
		assert.Len(t, tr.Points, 153)
		est, err := tr.MeanStd()
		require.NoError(t, err)
		assert.InDelta(t, e[0], est.X.Mean, 0.01, dir.String())
		assert.InDelta(t, e[1], est.X.Spread, 0.01, dir.String())
		assert.InDelta(t, e[2], est.Y.Mean, 0.01, dir.String())
		assert.InDelta(t, e[3], est.Y.Spread, 0.01, dir.String())
	}

	mid, err := a.ObserverPositionMeanStd(opts)
	require.NoError(t, err)
	assert.InDelta(t, 2266.352, mid.X.Mean, 0.01)

	tr, err := a.ObserverPositions(kin.Mid, kin.ObserverOptions{})
	require.NoError(t, err)
	assert.Equal(t, 595, tr.Possible)
	assert.Len(t, tr.Points, 595)
	est, err := tr.MeanStd()
	require.NoError(t, err)
	assert.InDelta(t, 2255.73, est.X.Mean, 0.01)
	assert.InDelta(t, -772.57, est.Y.Mean, 0.01)

	full, err := a.ObserverFromFullTransits()
	require.NoError(t, err)
	assert.InDelta(t, 3434.450, full.X.Mean, 0.01)
	assert.InDelta(t, 5.765, full.X.Spread, 0.01)
	assert.InDelta(t, -776.835, full.Y.Mean, 0.01)
	assert.InDelta(t, 9.052, full.Y.Spread, 0.01)
}

func TestCalibrationTransits(t *testing.T) {
	a := newAnalysis(t)
	observer := geom.NewPoint(2266+1182, -763)
	distances, err := a.TransitXAxisDistances(observer)
	require.NoError(t, err)
	require.Len(t, distances, 29)
	// Landmarks are passed in order down the runway, apart from simultaneous pairs
	assert.Less(t, distances[0].Distance, distances[len(distances)-1].Distance)
	speeds, err := a.TransitSpeeds(observer)
	require.NoError(t, err)
	assert.Len(t, speeds, 28)

	events, err := a.Events()
	require.NoError(t, err)
	require.Len(t, events, 6)
	assert.Equal(t, "Video starts", events[1].Label)
	// The video starts about 1110 m from the start of the runway
	assert.InDelta(t, 1110.04, events[1].FromStart.Value, 0.01)
	assert.InDelta(t, 3240.0, events[4].FromStart.Value, 1e-6)
}

func TestVHNOO(t *testing.T) {
	legs, err := kin.TrackFromFixes(VHNOOFixes(), VHNOOWind)
	require.NoError(t, err)
	require.Len(t, legs, 5)
	assert.Equal(t, 410, legs[4].FromID)
	assert.InDelta(t, 61.8197, legs[0].Ground.Speed, 1e-3)
}
