package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&logs)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalibrate(t *testing.T) {
	out, err := run(t, "calibrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Calibration OK: 108.2 knots within 113 ± 5")
	assert.Contains(t, out, "corrected MID gs(0)= 113.2 kt")
	// The perturbed MIN fit never reaches zero before the video starts
	assert.Contains(t, out, "perturbed MIN gs(0)=")
	assert.Contains(t, out, "start=   n/a s")
}

func TestTrack(t *testing.T) {
	out, err := run(t, "vh-noo")
	require.NoError(t, err)
	rows := tableRows(out)
	require.Len(t, rows, 6)
	assert.Contains(t, rows[0], "PHOTOS")
	assert.Contains(t, rows[1], "405->406")
}

func TestObserver(t *testing.T) {
	out, err := run(t, "observer")
	require.NoError(t, err)
	for _, source := range []string{"Wing tips MID", "Aspect fits", "Full transits", "Full transits -10 m", "Full transits +10 m", "Google Earth"} {
		assert.Contains(t, out, "| "+source+" ", source)
	}
	assert.Contains(t, out, "https://www.google.com/maps/@")
}

func TestNizhneangarsk(t *testing.T) {
	out, err := run(t, "nizhneangarsk")
	require.NoError(t, err)
	assert.Contains(t, out, "| Runway length (m) ")
	assert.Contains(t, out, " 1653 |")
	assert.Contains(t, out, "Crossing the threshold")
	assert.Contains(t, out, "Runway mid point")
}

// tableRows returns the header and data lines of a rendered table
func tableRows(out string) []string {
	ret := []string{}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			ret = append(ret, line)
		}
	}
	return ret
}

func TestInvalidUnits(t *testing.T) {
	_, err := run(t, "events", "--units", "furlongs")
	assert.ErrorContains(t, err, "invalid units")
	speedUnits = "kt"
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projection: mercator\n"), 0o600))
	_, err := run(t, "calibrate", "--config", path)
	assert.Error(t, err)
	configPath = ""
}
