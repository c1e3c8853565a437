package report

import (
	"fmt"
	"io"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// NamedObserver is an observer estimate and where it came from
type NamedObserver struct {
	Name     string                       `json:"name"`
	Estimate kinematics.ObserverEstimate `json:"estimate"`
}

// NamedTriangulation is a set of triangulated observer positions
type NamedTriangulation struct {
	Name   string
	Points []geom.Point
}

// RenderObserverChart writes an HTML scatter chart of triangulated observer positions
// with the mean estimates drawn as larger symbols
func RenderObserverChart(w io.Writer, title string, triangulations []NamedTriangulation, estimates []NamedObserver) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("estimates=%d", len(estimates))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (m)", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (m)", NameLocation: "middle", NameGap: 40, Scale: opts.Bool(true)}),
	)
	for _, tr := range triangulations {
		data := make([]opts.ScatterData, 0, len(tr.Points))
		for _, p := range tr.Points {
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
		}
		scatter.AddSeries(tr.Name, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}
	for _, e := range estimates {
		data := []opts.ScatterData{{
			Name:  e.Name,
			Value: []interface{}{e.Estimate.X.Mean, e.Estimate.Y.Mean},
		}}
		scatter.AddSeries(e.Name, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}))
	}
	if err := scatter.Render(w); err != nil {
		return errors.Wrap(err, "can't render observer chart")
	}
	return nil
}
