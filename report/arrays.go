// Package report writes the results of a take off analysis to a directory:
// columnar .dat files, SVG plots, an HTML observer chart, Markdown tables and a run manifest.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/pkg/errors"
)

var (
	// ErrUnorderedTimebase is returned when the first column of a table is not ascending
	ErrUnorderedTimebase = errors.New("first column must be in ascending order")
	// ErrRaggedTable is returned when rows of one table differ in width
	ErrRaggedTable = errors.New("rows differ in width")
)

const missing = "NaN"

// WriteArrays writes tables side by side merged on their first column.
// Every output line starts with the time followed by the remaining columns of each table in turn.
// A table without a row at that time contributes NaN for each of its columns.
// Repeated times are consumed one row at a time.
func WriteArrays(w io.Writer, tables ...kinematics.Table) error {
	for i, table := range tables {
		if err := checkTable(table); err != nil {
			return errors.Wrapf(err, "table %d", i)
		}
	}
	bw := bufio.NewWriter(w)
	cursors := make([]int, len(tables))
	for {
		t, ok := nextTime(tables, cursors)
		if !ok {
			break
		}
		parts := make([]string, 0, 8)
		parts = append(parts, fmt.Sprintf("%-8.1f", t))
		for i, table := range tables {
			width := table.Width()
			if cursors[i] < len(table) && table[cursors[i]][0] == t {
				for _, v := range table[cursors[i]][1:] {
					parts = append(parts, formatValue(v))
				}
				cursors[i]++
				continue
			}
			for j := 1; j < width; j++ {
				parts = append(parts, fmt.Sprintf("%8s", missing))
			}
		}
		if _, err := bw.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return errors.Wrap(err, "can't write row")
		}
	}
	return bw.Flush()
}

func checkTable(table kinematics.Table) error {
	width := table.Width()
	if len(table) > 0 && width == 0 {
		return errors.Wrap(ErrRaggedTable, "rows have no time column")
	}
	for i, row := range table {
		if len(row) != width {
			return errors.Wrapf(ErrRaggedTable, "row %d has %d columns, expected %d", i, len(row), width)
		}
	}
	if !sort.Float64sAreSorted(table.Column(0)) {
		return ErrUnorderedTimebase
	}
	return nil
}

// nextTime returns the smallest unconsumed time of all tables
func nextTime(tables []kinematics.Table, cursors []int) (float64, bool) {
	ret := math.Inf(1)
	found := false
	for i, table := range tables {
		if cursors[i] < len(table) && table[cursors[i]][0] < ret {
			ret = table[cursors[i]][0]
			found = true
		}
	}
	return ret, found
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return fmt.Sprintf("%8s", missing)
	}
	return fmt.Sprintf("%8.3f", v)
}
