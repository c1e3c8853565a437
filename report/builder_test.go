package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LdDl/trajectory-go/dataset"
	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newA340Analysis(t *testing.T) *kinematics.Analysis {
	t.Helper()
	ds, err := dataset.Build(geom.ProjectionHaversine)
	require.NoError(t, err)
	a, err := kinematics.NewAnalysis(ds, kinematics.DefaultParams(), nil)
	require.NoError(t, err)
	return a
}

func TestBuilderBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	created := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	builder := NewBuilder(newA340Analysis(t), dir, nil).
		WithPlotSize(12, 8).
		WithReference("Google Earth", kinematics.ObserverEstimate{
			X: kinematics.AxisEstimate{Mean: 3457.88},
			Y: kinematics.AxisEstimate{Mean: -655.52},
		}).
		WithSettings(map[string]any{"fit_degree": 3})
	builder.now = func() time.Time { return created }

	manifest, err := builder.Build()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, manifest.RunID)
	assert.Equal(t, created, manifest.Created)
	assert.Equal(t, "A340-300", manifest.Aircraft)

	for _, name := range []string{
		"ground_speed_raw", "ground_speed_perturbed", "ground_speed_corrected",
		"distance", "acceleration", "pitch", "aspect", "angle_of_view", "yaw", "transit_distance",
		"transit_speed", "full_transit_lines",
	} {
		assert.Contains(t, manifest.Files, name+".dat")
		assert.Contains(t, manifest.Files, name+".svg")
	}
	for _, name := range []string{"observer.html", "README.md", "manifest.json"} {
		assert.Contains(t, manifest.Files, name)
	}
	for _, name := range manifest.Files {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	names := make([]string, 0, len(manifest.Observers))
	for _, o := range manifest.Observers {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Wing tips MIN", "Wing tips MID", "Wing tips MAX", "Full transits", "Google Earth"}, names)
	assert.InDelta(t, 2266.352, manifest.Observers[1].Estimate.X.Mean, 0.01)
	assert.InDelta(t, -776.835, manifest.Observers[3].Estimate.Y.Mean, 0.01)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, manifest.RunID, decoded.RunID)
	assert.Equal(t, map[string]any{"fit_degree": 3.0}, decoded.Settings)

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	text := string(readme)
	assert.True(t, strings.HasPrefix(text, "# A340-300 take off\n"))
	for _, want := range []string{"## Selected Events", "| Nose wheel off |", "v(t) =", "| Full transits |", "Tall radio tower"} {
		assert.Contains(t, text, want)
	}

	html, err := os.ReadFile(filepath.Join(dir, "observer.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Wing tips MID")
}

func TestBuilderRepeatable(t *testing.T) {
	dir := t.TempDir()
	builder := NewBuilder(newA340Analysis(t), dir, nil)
	first, err := builder.Build()
	require.NoError(t, err)
	second, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, first.Files, second.Files)
	assert.NotEqual(t, first.RunID, second.RunID)

	dat, err := os.ReadFile(filepath.Join(dir, "distance.dat"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(dat)), "\n")
	// Rows start at the earliest start of roll with the other directions missing
	fields := strings.Fields(lines[0])
	require.Len(t, fields, 4)
	assert.True(t, strings.HasPrefix(fields[0], "-"), lines[0])
	assert.Contains(t, fields[1:], "NaN")
}
