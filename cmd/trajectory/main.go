// Command trajectory reconstructs the A340 take off at SBKP from the video measurements
// and writes reports of the ground speed, distance and observer position.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/LdDl/trajectory-go/config"
	"github.com/LdDl/trajectory-go/dataset"
	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/report"
	"github.com/LdDl/trajectory-go/units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	projection string
	speedUnits string

	outputDir string

	baseline     float64
	ignoreFirstN int
	timeFrom     float64
	timeTo       float64

	markdown bool
)

var rootCmd = &cobra.Command{
	Use:   "trajectory",
	Short: "Reconstruct the A340 take off trajectory and the observer position",
	Long: `trajectory fits ground speed models to the transit, aspect and pitch measurements
of the A340-300 take off video from runway 15 at SBKP (Viracopos) and triangulates
where the video was taken from.

Examples:
  trajectory report --out plots
  trajectory observer --baseline 1000 --ignore 0
  trajectory events --units kmph
  trajectory calibrate --config take-off.yaml
  trajectory nizhneangarsk`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write .dat, .svg, observer.html, README.md and manifest.json into a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		builder := report.NewBuilder(env.analysis, outputDir, env.logger).
			WithPlotSize(env.cfg.GetPlotSize()).
			WithSettings(env.cfg)
		if observer, err := env.site.GoogleEarthObserver(); err == nil {
			builder.WithReference("Google Earth", kinematics.ObserverEstimate{
				X: kinematics.AxisEstimate{Mean: observer.X},
				Y: kinematics.AxisEstimate{Mean: observer.Y},
			})
		} else {
			env.logger.Warn("no Google Earth observer", "error", err)
		}
		manifest, err := builder.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s wrote %d files to %s\n", manifest.RunID, len(manifest.Files), outputDir)
		return nil
	},
}

var observerCmd = &cobra.Command{
	Use:   "observer",
	Short: "Triangulate the observer position from wing tip aspects and full transits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		opts := env.analysis.Params().Observer
		flags := cmd.Flags()
		if flags.Changed("baseline") {
			opts.Baseline = baseline
		}
		if flags.Changed("ignore") {
			opts.IgnoreFirstN = ignoreFirstN
		}
		if flags.Changed("from") {
			opts.TimeRange.From = timeFrom
		}
		if flags.Changed("to") {
			opts.TimeRange.To = timeTo
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Baseline %.0f m, ignoring first %d, time range [%.1f, %.1f)\n",
			opts.Baseline, opts.IgnoreFirstN, opts.TimeRange.From, opts.TimeRange.To)
		tw := newTable(out, table.Row{"Source", "x (m)", "±", "y (m)", "±", "Pairs", "Google Earth"}, 2, 3, 4, 5, 6)
		for _, dir := range kinematics.Directions() {
			tr, err := env.analysis.ObserverPositions(dir, opts)
			if err != nil {
				return errors.Wrapf(err, "observer %s", dir)
			}
			appendTriangulation(tw, env, "Wing tips "+dir.String(), tr, nil)
		}
		// Table aspects are coarse, so failures are reported rather than fatal
		rows, err := env.analysis.ObserverTimeDistanceBearingFromAspects(kinematics.Mid)
		if err != nil {
			return err
		}
		tr, err := kinematics.TriangulateObservers(rows, opts)
		appendTriangulation(tw, env, "Table aspects", tr, err)
		tr, err = env.analysis.ObserverFromFits(opts.Baseline, env.analysis.Params().FitInterval)
		appendTriangulation(tw, env, "Aspect fits", tr, err)
		full, err := env.analysis.ObserverFromFullTransits()
		if err != nil {
			return err
		}
		appendObserver(tw, env, "Full transits", full, "")
		shifted, err := env.analysis.ObserverFromShiftedFullTransits()
		if err != nil {
			return err
		}
		landmarkError := env.analysis.Params().LandmarkError
		appendObserver(tw, env, fmt.Sprintf("Full transits %+.0f m", -landmarkError), shifted[0], "")
		appendObserver(tw, env, fmt.Sprintf("Full transits %+.0f m", landmarkError), shifted[1], "")
		ge, err := env.site.GoogleEarthObserver()
		if err != nil {
			return err
		}
		appendObserver(tw, env, "Google Earth", kinematics.ObserverEstimate{
			X: kinematics.AxisEstimate{Mean: ge.X},
			Y: kinematics.AxisEstimate{Mean: ge.Y},
		}, "")
		tw.Render()
		return nil
	},
}

// newTable returns a table writer rendering to out whose listed columns (1 based) are right aligned
func newTable(out io.Writer, header table.Row, rightAligned ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleDefault)
	tw.AppendHeader(header)
	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, number := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw
}

func appendTriangulation(tw table.Writer, env *environment, name string, tr kinematics.Triangulation, err error) {
	if err != nil {
		env.logger.Warn("can't triangulate observer", "source", name, "error", err)
		return
	}
	estimate, err := tr.MeanStd()
	if err != nil {
		env.logger.Warn("can't triangulate observer", "source", name, "error", err)
		return
	}
	appendObserver(tw, env, name, estimate, fmt.Sprintf("%d of %d", len(tr.Points), tr.Possible))
}

func appendObserver(tw table.Writer, env *environment, name string, estimate kinematics.ObserverEstimate, pairs string) {
	url := ""
	if ll, err := env.site.Projection.ToLatLong(estimate.Point()); err == nil {
		url = geom.FormatGoogleEarthURL(ll)
	} else {
		env.logger.Debug("no lat/long for observer", "source", name, "error", err)
	}
	tw.AppendRow(table.Row{
		name,
		fmt.Sprintf("%.1f", estimate.X.Mean), fmt.Sprintf("%.1f", estimate.X.Spread),
		fmt.Sprintf("%.1f", estimate.Y.Mean), fmt.Sprintf("%.1f", estimate.Y.Spread),
		pairs, url,
	})
}

var fitsCmd = &cobra.Command{
	Use:   "fits",
	Short: "Print every fitted polynomial",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		a := env.analysis
		sets := []*kinematics.FitSet{
			a.GroundSpeedFits(),
			a.OffsetGroundSpeedFits(),
			a.CorrectedGroundSpeedFits(),
			a.AspectFits(),
			a.WingTipAspectFits(),
			a.PitchFits(),
		}
		out := cmd.OutOrStdout()
		for _, fs := range sets {
			fits, err := fs.All()
			if err != nil {
				return err
			}
			for i, dir := range kinematics.Directions() {
				fmt.Fprintf(out, "%-22s %-3s %s\n", fs.Name(), dir, fits[i].Format("f", "t", "%.6g"))
			}
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the take off events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		events, err := env.analysis.Events()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if markdown {
			for _, line := range report.EventsMarkdown(events) {
				fmt.Fprintln(out, line)
			}
			return nil
		}
		tw := newTable(out, table.Row{
			"Event", "t (s)", "±", "gs (" + speedUnits + ")", "±", "d (m)", "±", "d_end (m)", "±", "Notes",
		}, 2, 3, 4, 5, 6, 7, 8, 9)
		for _, e := range events {
			tw.AppendRow(table.Row{
				e.Label,
				fmt.Sprintf("%.1f", e.VideoTime.Value), fmt.Sprintf("%.1f", e.VideoTime.Error),
				fmt.Sprintf("%.1f", units.ConvertSpeed(e.GroundSpeed.Value, speedUnits)),
				fmt.Sprintf("%.1f", units.ConvertSpeed(e.GroundSpeed.Error, speedUnits)),
				fmt.Sprintf("%.0f", e.FromStart.Value), fmt.Sprintf("%.0f", e.FromStart.Error),
				fmt.Sprintf("%.0f", e.ToEnd.Value), fmt.Sprintf("%.0f", e.ToEnd.Error),
				e.Notes,
			})
		}
		tw.Render()
		eom, err := env.analysis.EquationsOfMotion()
		if err != nil {
			return err
		}
		for _, s := range eom.Strings() {
			fmt.Fprintln(out, s)
		}
		return nil
	},
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Check the Mid ground speed fit against the known speed at the start of the video",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, strategy := range []kinematics.FitStrategy{kinematics.PerturbedObservations, kinematics.NominalOffset, kinematics.Corrected} {
			models, err := env.analysis.MotionModels(strategy)
			if err != nil {
				return err
			}
			for i, dir := range kinematics.Directions() {
				m := models[i]
				start := "   n/a"
				if m.HasStart {
					start = fmt.Sprintf("%6.1f", m.Start)
				}
				fmt.Fprintf(out, "%-9s %-3s gs(0)=%6.1f %s start=%s s offset=%7.1f m\n",
					strategy, dir, units.ConvertSpeed(m.Speed(0), speedUnits), speedUnits, start, m.Offset)
			}
		}
		midFits, err := env.analysis.Fits(kinematics.PerturbedObservations)
		if err != nil {
			return err
		}
		mid, err := midFits.Get(kinematics.Mid)
		if err != nil {
			return err
		}
		gs := units.MPSToKnots(mid.Eval(0))
		if gs < calibrationSpeed-calibrationTolerance || gs > calibrationSpeed+calibrationTolerance {
			return errors.Errorf("Mid ground speed at t=0 is %.1f knots, expected %.0f ± %.0f", gs, calibrationSpeed, calibrationTolerance)
		}
		fmt.Fprintf(out, "Calibration OK: %.1f knots within %.0f ± %.0f\n", gs, calibrationSpeed, calibrationTolerance)
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "vh-noo",
	Short: "Print the ground and air track of VH-NOO from photograph fixes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		legs, err := kinematics.TrackFromFixes(dataset.VHNOOFixes(), dataset.VHNOOWind)
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout(), table.Row{
			"Photos", "d (m)", "dt (s)", "gs (kt)", "Track (°)", "TAS (kt)", "Heading (°)", "RoC (ft/min)", "RoT (°/s)",
		}, 2, 3, 4, 5, 6, 7, 8, 9)
		for _, leg := range legs {
			rot := ""
			if leg.HasRateOfTurn {
				rot = fmt.Sprintf("%.2f", leg.RateOfTurn)
			}
			tw.AppendRow(table.Row{
				fmt.Sprintf("%d->%d", leg.FromID, leg.ToID),
				fmt.Sprintf("%.1f", leg.Distance), fmt.Sprintf("%.1f", leg.Dt),
				fmt.Sprintf("%.1f", leg.Ground.Speed), fmt.Sprintf("%.1f", leg.Ground.Direction),
				fmt.Sprintf("%.1f", leg.Air.Speed), fmt.Sprintf("%.1f", leg.Air.Direction),
				fmt.Sprintf("%.0f", leg.RateOfClimb), rot,
			})
		}
		tw.Render()
		return nil
	},
}

var surveyCmd = &cobra.Command{
	Use:   "nizhneangarsk",
	Short: "Print the runway 22 survey at Nizhneangarsk from satellite tiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := dataset.NizhneangarskSurvey()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		tw := newTable(out, table.Row{"Measurement", "Value"}, 2)
		tw.AppendRows([]table.Row{
			{"Runway length (m)", fmt.Sprintf("%.0f", survey.Length)},
			{"Runway length from tile 7 (m)", fmt.Sprintf("%.0f", survey.LengthTile7)},
			{"Runway heading (°)", fmt.Sprintf("%.2f [%.2f, %.2f]", survey.Heading, survey.HeadingMin, survey.HeadingMax)},
			{"Runway width (m)", fmt.Sprintf("%.1f", survey.Width)},
			{"Threshold to boundary fence (m)", fmt.Sprintf("%.0f", survey.BoundaryFence)},
		})
		tw.Render()
		tw = newTable(out, table.Row{"Frame", "Tile", "x (m)", "y (m)", "± (m)", "Note"}, 1, 2, 3, 4, 5)
		for _, pos := range survey.Positions {
			frame := ""
			if pos.Frame > 0 {
				frame = fmt.Sprintf("%d", pos.Frame)
			}
			tw.AppendRow(table.Row{
				frame, pos.Tile,
				fmt.Sprintf("%.0f", pos.XY.X), fmt.Sprintf("%.0f", pos.XY.Y), fmt.Sprintf("%.0f", pos.Tolerance),
				pos.Note,
			})
		}
		tw.Render()
		return nil
	},
}

// The Mid fit at the start of the video should be close to the speed called out on the flight deck
const (
	calibrationSpeed     = 113.0
	calibrationTolerance = 5.0
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&projection, "projection", "", "lat/long projection: haversine or utm (overrides config)")
	rootCmd.PersistentFlags().StringVar(&speedUnits, "units", units.KT, "speed units: "+units.GetValidUnitsString())

	reportCmd.Flags().StringVarP(&outputDir, "out", "o", "plots", "output directory")

	observerCmd.Flags().Float64Var(&baseline, "baseline", 0, "minimum x separation of observation pairs in metres")
	observerCmd.Flags().IntVar(&ignoreFirstN, "ignore", 0, "ignore the first N observations")
	observerCmd.Flags().Float64Var(&timeFrom, "from", 0, "first video time of observations")
	observerCmd.Flags().Float64Var(&timeTo, "to", 0, "video time after the last observation")

	eventsCmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table in knots")

	rootCmd.AddCommand(reportCmd, observerCmd, fitsCmd, eventsCmd, calibrateCmd, trackCmd, surveyCmd)
}

// environment is everything a command needs
type environment struct {
	logger   *slog.Logger
	cfg      *config.Config
	site     *dataset.Site
	analysis *kinematics.Analysis
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	logger := newLogger(cmd.ErrOrStderr())
	if !units.IsValid(speedUnits) {
		return nil, errors.Errorf("invalid units '%s', expected one of: %s", speedUnits, units.GetValidUnitsString())
	}
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Info("loaded config", "path", configPath)
	}
	projectionName := cfg.GetProjection()
	if projection != "" {
		projectionName = projection
	}
	site, err := dataset.NewSite(projectionName)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Build(projectionName)
	if err != nil {
		return nil, err
	}
	analysis, err := kinematics.NewAnalysis(ds, cfg.Params(), logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("analysis ready", "projection", projectionName, "transits", len(ds.Transits), "wing_tips", len(ds.WingTips))
	return &environment{logger: logger, cfg: cfg, site: site, analysis: analysis}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
