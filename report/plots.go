package report

import (
	"math"

	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// product is one .dat file and the plot drawn from it
type product struct {
	name   string
	title  string
	xLabel string
	yLabel string
	tables []kinematics.Table
	// labels name the value columns of each table. Columns with an empty label are written but not plotted.
	labels [][]string
	points bool
}

func (p product) empty() bool {
	for _, table := range p.tables {
		if len(table) > 0 {
			return false
		}
	}
	return true
}

// xys returns column j of table against its first column, skipping NaN values
func xys(table kinematics.Table, j int) plotter.XYs {
	ret := make(plotter.XYs, 0, len(table))
	for _, row := range table {
		if math.IsNaN(row[0]) || math.IsNaN(row[j]) {
			continue
		}
		ret = append(ret, plotter.XY{X: row[0], Y: row[j]})
	}
	return ret
}

// savePlot draws every labelled column of the product and saves it, the format follows the extension of path
func savePlot(p product, width, height vg.Length, path string) error {
	pl := plot.New()
	pl.Title.Text = p.title
	pl.X.Label.Text = p.xLabel
	pl.Y.Label.Text = p.yLabel
	pl.Add(plotter.NewGrid())

	series := 0
	for i, table := range p.tables {
		if i >= len(p.labels) {
			break
		}
		for j, label := range p.labels[i] {
			if label == "" || j+1 >= table.Width() {
				continue
			}
			pts := xys(table, j+1)
			if len(pts) == 0 {
				continue
			}
			color := plotutil.Color(series)
			if p.points {
				scatter, err := plotter.NewScatter(pts)
				if err != nil {
					return errors.Wrapf(err, "can't make scatter '%s'", label)
				}
				scatter.GlyphStyle.Color = color
				scatter.GlyphStyle.Shape = plotutil.Shape(series)
				scatter.GlyphStyle.Radius = vg.Points(2)
				pl.Add(scatter)
				pl.Legend.Add(label, scatter)
			} else {
				line, err := plotter.NewLine(pts)
				if err != nil {
					return errors.Wrapf(err, "can't make line '%s'", label)
				}
				line.Color = color
				line.Width = vg.Points(1)
				pl.Add(line)
				pl.Legend.Add(label, line)
			}
			series++
		}
	}
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Legend.XOffs = 10
	pl.Legend.YOffs = -10

	if err := pl.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "can't save plot '%s'", path)
	}
	return nil
}
