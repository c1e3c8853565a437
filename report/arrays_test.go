package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArraysMerge(t *testing.T) {
	a := kinematics.Table{{0, 1}, {1, 2}, {3, 4}}
	b := kinematics.Table{{1, 10, 20}, {2, 30, 40}}
	var buf bytes.Buffer
	require.NoError(t, WriteArrays(&buf, a, b))
	expected := strings.Join([]string{
		"0.0         1.000      NaN      NaN",
		"1.0         2.000   10.000   20.000",
		"2.0           NaN   30.000   40.000",
		"3.0         4.000      NaN      NaN",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteArraysRepeatedTimes(t *testing.T) {
	a := kinematics.Table{{1, 1}, {1, 2}, {2, math.NaN()}}
	b := kinematics.Table{{1, 5}}
	var buf bytes.Buffer
	require.NoError(t, WriteArrays(&buf, a, b))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1.0", "1.000", "5.000"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1.0", "2.000", "NaN"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2.0", "NaN", "NaN"}, strings.Fields(lines[2]))
}

func TestWriteArraysErrors(t *testing.T) {
	var buf bytes.Buffer
	err := WriteArrays(&buf, kinematics.Table{{0, 1}}, kinematics.Table{{2, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrUnorderedTimebase)
	assert.Contains(t, err.Error(), "table 1")

	err = WriteArrays(&buf, kinematics.Table{{0, 1}, {1, 1, 2}})
	assert.ErrorIs(t, err, ErrRaggedTable)

	err = WriteArrays(&buf, kinematics.Table{{}})
	assert.ErrorIs(t, err, ErrRaggedTable)
	assert.Zero(t, buf.Len())

	require.NoError(t, WriteArrays(&buf))
	require.NoError(t, WriteArrays(&buf, kinematics.Table{}))
	assert.Zero(t, buf.Len())
}
