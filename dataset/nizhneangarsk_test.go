package dataset

import (
	"testing"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNizhneangarskSurvey(t *testing.T) {
	survey, err := NizhneangarskSurvey()
	require.NoError(t, err)

	// Published runway length is 1653 m
	assert.InDelta(t, 1652.69, survey.Length, 0.01)
	assert.InDelta(t, 218.235, survey.Heading, 0.001)
	assert.InDelta(t, 218.175, survey.HeadingMin, 0.001)
	assert.InDelta(t, 218.295, survey.HeadingMax, 0.001)
	assert.InDelta(t, 1652.31, survey.LengthTile7, 0.01)
	assert.InDelta(t, 32.97, survey.Width, 0.01)
	assert.InDelta(t, 1853.18, survey.BoundaryFence, 0.01)

	expected := map[int]geom.PixelPoint{
		1: geom.NewPixelPoint(-1288, 3919),
		2: geom.NewPixelPoint(-477, 2881),
		3: geom.NewPixelPoint(211, 1949),
		4: geom.NewPixelPoint(876, 1049),
		5: geom.NewPixelPoint(1597, 197),
		6: geom.NewPixelPoint(2412, -812),
		7: geom.NewPixelPoint(2955, -1555),
	}
	if diff := cmp.Diff(expected, survey.Threshold); diff != "" {
		t.Errorf("thresholds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, survey.Tiles())

	// The approach start is on the extended centreline
	approach := geom.PixelDistance(survey.Threshold[5], survey.ApproachStart, NizhneangarskScale)
	assert.InDelta(t, 2500.0, approach, 1e-6)
	assert.InDelta(t, geom.NormalizeDegrees(survey.Heading+180), geom.PixelBearing(survey.Threshold[5], survey.ApproachStart), 1e-6)

	require.Len(t, survey.Positions, 16)
	first := survey.Positions[0]
	assert.Equal(t, 1, first.Frame)
	assert.InDelta(t, -2490.18, first.XY.X, 0.01)
	assert.InDelta(t, 1.32, first.XY.Y, 0.01)
	assert.InDelta(t, 99.65, first.Tolerance, 0.01)

	threshold := survey.Positions[10]
	assert.Equal(t, 827, threshold.Frame)
	assert.InDelta(t, 0.0, threshold.XY.X, 1e-9)
	assert.InDelta(t, 10.0, threshold.Tolerance, 1e-9)

	mid := survey.Positions[15]
	assert.Equal(t, "Runway mid point", mid.Note)
	assert.InDelta(t, survey.Length/2, mid.XY.X, 1e-6)
	assert.InDelta(t, 0.0, mid.XY.Y, 1e-6)
}
