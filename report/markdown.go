package report

import (
	"fmt"
	"strings"

	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newMarkdownTable returns a table writer whose listed columns (1 based) are right aligned
func newMarkdownTable(header table.Row, rightAligned ...int) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(header)
	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, number := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw
}

func renderMarkdown(tw table.Writer) []string {
	return strings.Split(tw.RenderMarkdown(), "\n")
}

func formatValueAndError(v kinematics.ValueAndError, verb string, convert func(float64) float64) string {
	if convert == nil {
		convert = func(x float64) float64 { return x }
	}
	if !v.HasError {
		return fmt.Sprintf(verb, convert(v.Value))
	}
	return fmt.Sprintf(verb+" ±"+verb, convert(v.Value), convert(v.Error))
}

// EventsMarkdown returns the events as Markdown table lines. Speeds are in knots.
func EventsMarkdown(events []kinematics.EventRow) []string {
	tw := newMarkdownTable(table.Row{
		"Event",
		"Video Time (s)",
		"Time from Start Take Off (s)",
		"Ground Speed (knots)",
		"Acceleration (knots/s)",
		"From Start of Runway (m)",
		"To end Asphalt (m)",
		"Notes",
	}, 2, 3, 4, 5, 6, 7)
	// The start of roll error applies to every later time from start
	startError := 0.0
	for _, event := range events {
		if event.StartTime.HasError {
			startError = event.StartTime.Error
		}
		tw.AppendRow(table.Row{
			event.Label,
			formatValueAndError(event.VideoTime, "%.1f", nil),
			fmt.Sprintf("%.1f ±%.1f", event.StartTime.Value, startError),
			formatValueAndError(event.GroundSpeed, "%.0f", units.MPSToKnots),
			fmt.Sprintf("%.1f ±%.2f", units.MPSToKnots(event.Acceleration.Value), units.MPSToKnots(event.Acceleration.Error)),
			formatValueAndError(event.FromStart, "%.0f", nil),
			formatValueAndError(event.ToEnd, "%.0f", nil),
			event.Notes,
		})
	}
	return renderMarkdown(tw)
}

// FullTransitsMarkdown returns the full transit lines as Markdown table lines
func FullTransitsMarkdown(ds *kinematics.Dataset) []string {
	tw := newMarkdownTable(table.Row{"Time", "From", "Lat, Long", "x, y (m)", "To", "Lat, Long", "x, y (m)"}, 1, 3, 4, 6, 7)
	for _, line := range ds.FullTransits {
		from := ds.LandmarkLatLongs[line.From.Label]
		to := ds.LandmarkLatLongs[line.To.Label]
		tw.AppendRow(table.Row{
			line.Time.Timestamp(),
			line.From.Label,
			fmt.Sprintf("%.6f, %.6f", from.Lat, from.Long),
			fmt.Sprintf("%.0f, %.0f", line.From.XY.X, line.From.XY.Y),
			line.To.Label,
			fmt.Sprintf("%.6f, %.6f", to.Lat, to.Long),
			fmt.Sprintf("%.0f, %.0f", line.To.XY.X, line.To.XY.Y),
		})
	}
	return renderMarkdown(tw)
}

// ObserverMarkdown returns the observer estimates as Markdown table lines
func ObserverMarkdown(estimates []NamedObserver) []string {
	tw := newMarkdownTable(table.Row{"Source", "x (m)", "y (m)"}, 2, 3)
	for _, e := range estimates {
		tw.AppendRow(table.Row{
			e.Name,
			fmt.Sprintf("%.0f ±%.0f", e.Estimate.X.Mean, e.Estimate.X.Spread),
			fmt.Sprintf("%.0f ±%.0f", e.Estimate.Y.Mean, e.Estimate.Y.Spread),
		})
	}
	return renderMarkdown(tw)
}
