package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchParams(t *testing.T) {
	assert.Equal(t, kinematics.DefaultParams(), Default().Params())
	// An empty config falls back to the same values
	assert.Equal(t, kinematics.DefaultParams(), (&Config{}).Params())
	assert.Equal(t, geom.ProjectionHaversine, (&Config{}).GetProjection())
	w, h := (&Config{}).GetPlotSize()
	assert.Equal(t, 16.0, w)
	assert.Equal(t, 10.0, h)
}

func TestParse(t *testing.T) {
	data := []byte(`
timestamp_error_frames: 10
smooth_wing_tips: true
landmark_error_m: 15
ground_speed_offsets_kt: [-5, 0, 5]
speed_correction_kt: 2
fit_degree: 2
observer_baseline_m: 500
observer_ignore_first_n: 0
observer_time_from: 10
observer_time_to: 20
projection: utm
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	params := cfg.Params()
	assert.InDelta(t, 10.0/kinematics.FramesPerSecond, params.TimestampError, 1e-12)
	assert.InDelta(t, 1.0/kinematics.FramesPerSecond, params.TransitError, 1e-12)
	assert.True(t, params.SmoothWingTips)
	assert.Equal(t, 15.0, params.LandmarkError)
	assert.InDelta(t, units.KnotsToMPS(-5), params.GroundSpeedOffsets[0], 1e-12)
	assert.Equal(t, 0.0, params.GroundSpeedOffsets[1])
	assert.InDelta(t, units.KnotsToMPS(2), params.SpeedCorrection, 1e-12)
	assert.InDelta(t, units.KnotsToMPS(5), params.SpeedTolerance, 1e-12)
	assert.Equal(t, 2, params.FitDegree)
	assert.Equal(t, kinematics.ObserverOptions{
		Baseline:     500,
		IgnoreFirstN: 0,
		TimeRange:    kinematics.TimeRange{From: 10, To: 20},
	}, params.Observer)
	assert.Equal(t, geom.ProjectionUTM, cfg.GetProjection())
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"fit_degree": 4, "distance_error_m": 30}`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.GetFitDegree())
	assert.Equal(t, 30.0, cfg.GetDistanceError())
	assert.Equal(t, 1250.0, cfg.GetObserverOptions().Baseline)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"negative landmark error", "landmark_error_m: -1"},
		{"negative pitch error", "pitch_error_deg: -1"},
		{"two offsets", "ground_speed_offsets_kt: [0, 1]"},
		{"negative degree", "fit_degree: -1"},
		{"huge degree", "fit_degree: 12"},
		{"negative ignore", "observer_ignore_first_n: -3"},
		{"projection", "projection: mercator"},
		{"plot width", "plot_width_cm: 0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
	_, err := Parse([]byte("fit_degree: [1"))
	assert.Error(t, err)
	assert.NoError(t, Default().Validate())
}

func TestParseUnknownKeys(t *testing.T) {
	// The frame rate is fixed by the video time base, so it is not a setting
	_, err := Parse([]byte("frames_per_second: 25\n"))
	assert.ErrorContains(t, err, "frames_per_second")
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte(`{"fit_degree": 2, "fit_degre": 3}`))
	assert.ErrorContains(t, err, "fit_degre")

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, kinematics.DefaultParams(), cfg.Params())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "take-off.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aspect_error_deg: 3\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.GetAspectError())

	txt := filepath.Join(dir, "take-off.txt")
	require.NoError(t, os.WriteFile(txt, []byte("aspect_error_deg: 3\n"), 0o600))
	_, err = Load(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	big := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(big, make([]byte, maxFileSize+1), 0o600))
	_, err = Load(big)
	assert.ErrorContains(t, err, "too large")
}
