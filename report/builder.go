package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/units"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"
)

// Manifest describes one run of the Builder
type Manifest struct {
	RunID     uuid.UUID       `json:"run_id"`
	Created   time.Time       `json:"created"`
	Aircraft  string          `json:"aircraft"`
	Files     []string        `json:"files"`
	Observers []NamedObserver `json:"observers"`
	Settings  any             `json:"settings,omitempty"`
}

// Builder writes every report product of an analysis into a directory
type Builder struct {
	analysis   *kinematics.Analysis
	dir        string
	logger     *slog.Logger
	width      vg.Length
	height     vg.Length
	references []NamedObserver
	settings   any
	now        func() time.Time
	files      []string
}

// NewBuilder creates a builder that writes into dir. A nil logger discards output.
func NewBuilder(analysis *kinematics.Analysis, dir string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		analysis: analysis,
		dir:      dir,
		logger:   logger.With("component", "report"),
		width:    16 * vg.Centimeter,
		height:   10 * vg.Centimeter,
		now:      time.Now,
	}
}

// WithPlotSize sets the plot size in centimetres
func (b *Builder) WithPlotSize(widthCm, heightCm float64) *Builder {
	b.width = vg.Length(widthCm) * vg.Centimeter
	b.height = vg.Length(heightCm) * vg.Centimeter
	return b
}

// WithReference adds an observer position that was not computed by the analysis, e.g. a Google Earth estimate
func (b *Builder) WithReference(name string, estimate kinematics.ObserverEstimate) *Builder {
	b.references = append(b.references, NamedObserver{Name: name, Estimate: estimate})
	return b
}

// WithSettings stores a value echoed in manifest.json, usually the configuration
func (b *Builder) WithSettings(settings any) *Builder {
	b.settings = settings
	return b
}

// Build writes the .dat and .svg products, observer.html, README.md and manifest.json
func (b *Builder) Build() (*Manifest, error) {
	b.files = b.files[:0]
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "can't create '%s'", b.dir)
	}
	triangulations, observers, err := b.observers()
	if err != nil {
		return nil, err
	}
	products, err := b.products(observers)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.empty() {
			b.logger.Debug("skipped empty product", "name", p.name)
			continue
		}
		if err := b.writeProduct(p); err != nil {
			return nil, err
		}
	}
	if len(triangulations) > 0 || len(observers) > 0 {
		err := b.writeFile("observer.html", func(w io.Writer) error {
			return RenderObserverChart(w, "Observer position", triangulations, observers)
		})
		if err != nil {
			return nil, err
		}
	}
	if err := b.writeFile("README.md", func(w io.Writer) error {
		return b.writeMarkdown(w, observers)
	}); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		RunID:     uuid.New(),
		Created:   b.now().UTC(),
		Aircraft:  b.analysis.Dataset().Aircraft.Name,
		Observers: observers,
		Settings:  b.settings,
	}
	manifest.Files = append(append([]string(nil), b.files...), "manifest.json")
	if err := b.writeFile("manifest.json", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(manifest)
	}); err != nil {
		return nil, err
	}
	b.logger.Info("report written", "dir", b.dir, "files", len(manifest.Files), "run_id", manifest.RunID.String())
	return manifest, nil
}

func (b *Builder) writeFile(name string, write func(w io.Writer) error) error {
	path := filepath.Join(b.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "can't create '%s'", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "can't write '%s'", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "can't close '%s'", path)
	}
	b.files = append(b.files, name)
	b.logger.Info("wrote file", "path", path)
	return nil
}

func (b *Builder) writeProduct(p product) error {
	if err := b.writeFile(p.name+".dat", func(w io.Writer) error {
		return WriteArrays(w, p.tables...)
	}); err != nil {
		return err
	}
	svg := p.name + ".svg"
	if err := savePlot(p, b.width, b.height, filepath.Join(b.dir, svg)); err != nil {
		return err
	}
	b.files = append(b.files, svg)
	b.logger.Info("wrote file", "path", filepath.Join(b.dir, svg))
	return nil
}

// observers triangulates the observer from the wing tips for every direction and
// from the full transits. Missing observations are logged and skipped.
func (b *Builder) observers() ([]NamedTriangulation, []NamedObserver, error) {
	opts := b.analysis.Params().Observer
	triangulations := make([]NamedTriangulation, 0, 3)
	estimates := make([]NamedObserver, 0, 5+len(b.references))
	for _, dir := range kinematics.Directions() {
		tr, err := b.analysis.ObserverPositions(dir, opts)
		if errors.Is(err, kinematics.ErrInsufficientObservations) {
			b.logger.Warn("not enough wing tip observations", "direction", dir.String(), "error", err)
			continue
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "observer %s", dir)
		}
		estimate, err := tr.MeanStd()
		if err != nil {
			b.logger.Warn("no observer intersections", "direction", dir.String(), "error", err)
			continue
		}
		name := "Wing tips " + dir.String()
		triangulations = append(triangulations, NamedTriangulation{Name: name, Points: tr.Points})
		estimates = append(estimates, NamedObserver{Name: name, Estimate: estimate})
		b.logger.Info("observer estimate", "source", name, "x", estimate.X.Mean, "y", estimate.Y.Mean, "points", len(tr.Points), "possible", tr.Possible)
	}
	if len(b.analysis.Dataset().FullTransits) >= 2 {
		estimate, err := b.analysis.ObserverFromFullTransits()
		if err != nil {
			return nil, nil, errors.Wrap(err, "observer from full transits")
		}
		estimates = append(estimates, NamedObserver{Name: fullTransitsName, Estimate: estimate})
		b.logger.Info("observer estimate", "source", fullTransitsName, "x", estimate.X.Mean, "y", estimate.Y.Mean)
	}
	estimates = append(estimates, b.references...)
	return triangulations, estimates, nil
}

const (
	fullTransitsName = "Full transits"
	wingTipsMidName  = "Wing tips MID"
	// fullTransitOvershoot extends each full transit line past the observer, metres
	fullTransitOvershoot = 250.0
)

func findObserver(observers []NamedObserver, name string) (kinematics.ObserverEstimate, bool) {
	for _, o := range observers {
		if o.Name == name {
			return o.Estimate, true
		}
	}
	return kinematics.ObserverEstimate{}, false
}

func convertTable(table kinematics.Table, convert func(float64) float64) kinematics.Table {
	ret := make(kinematics.Table, len(table))
	for i, row := range table {
		ret[i] = make([]float64, len(row))
		ret[i][0] = row[0]
		for j := 1; j < len(row); j++ {
			ret[i][j] = convert(row[j])
		}
	}
	return ret
}

func directionLabels(prefix string) [][]string {
	ret := make([][]string, 0, 3)
	for _, dir := range kinematics.Directions() {
		ret = append(ret, []string{strings.TrimSpace(prefix + " " + dir.String())})
	}
	return ret
}

// sampleModels returns a table of (t, min, mid, max) of fn applied to each model
func (b *Builder) sampleModels(models []kinematics.MotionModel, fn func(m kinematics.MotionModel, t float64) float64) kinematics.Table {
	params := b.analysis.Params()
	ret := kinematics.Table{}
	for t := 0.0; t <= params.MaxVideoTime; t += params.FitInterval {
		row := []float64{t}
		for _, m := range models {
			row = append(row, fn(m, t))
		}
		ret = append(ret, row)
	}
	return ret
}

func (b *Builder) products(observers []NamedObserver) ([]product, error) {
	a := b.analysis
	ds := a.Dataset()
	ret := make([]product, 0, 10)

	raw := make([]kinematics.Table, 0, 3)
	for _, dir := range kinematics.Directions() {
		speeds, err := a.GroundSpeeds(dir)
		if err != nil {
			return nil, errors.Wrap(err, "ground speeds")
		}
		raw = append(raw, convertTable(kinematics.SeriesTable(speeds), units.MPSToKnots))
	}
	ret = append(ret, product{
		name: "ground_speed_raw", title: "Ground speed from transits",
		xLabel: "Video time (s)", yLabel: "Ground speed (knots)",
		tables: raw, labels: directionLabels(""), points: true,
	})

	for _, strategy := range []kinematics.FitStrategy{kinematics.PerturbedObservations, kinematics.Corrected} {
		models, err := a.MotionModels(strategy)
		if err != nil {
			return nil, errors.Wrapf(err, "%s motion models", strategy)
		}
		speed := b.sampleModels(models, func(m kinematics.MotionModel, t float64) float64 {
			return units.MPSToKnots(m.Speed(t))
		})
		ret = append(ret, product{
			name: "ground_speed_" + strategy.String(), title: fmt.Sprintf("Ground speed fit (%s)", strategy),
			xLabel: "Video time (s)", yLabel: "Ground speed (knots)",
			tables: []kinematics.Table{speed}, labels: [][]string{{"MIN", "MID", "MAX"}},
		})
	}

	distances, err := a.DistancesMinMidMax(ds.EndAsphalt.Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "distances")
	}
	ret = append(ret, product{
		name: "distance", title: "Distance from runway start",
		xLabel: "Video time (s)", yLabel: "Distance (m)",
		tables: distances, labels: directionLabels(""),
	})

	accelerations, err := a.RawAccelerations(units.MPSToKnots)
	if err != nil {
		return nil, errors.Wrap(err, "accelerations")
	}
	ret = append(ret, product{
		name: "acceleration", title: "Acceleration from successive transits",
		xLabel: "Video time (s)", yLabel: "Acceleration (knots/s)",
		tables: []kinematics.Table{accelerations}, labels: [][]string{{"MID", "", "", "MIN", "MAX"}}, points: true,
	})

	pitches := make([]kinematics.Table, 0, 3)
	for _, dir := range kinematics.Directions() {
		pitches = append(pitches, kinematics.SeriesTable(a.Pitches(dir)))
	}
	ret = append(ret, product{
		name: "pitch", title: "Pitch",
		xLabel: "Video time (s)", yLabel: "Pitch (degrees)",
		tables: pitches, labels: directionLabels(""), points: true,
	})

	aspects := make([]kinematics.Table, 0, 6)
	labels := make([][]string, 0, 6)
	for _, dir := range kinematics.Directions() {
		aspects = append(aspects, kinematics.SeriesTable(a.Aspects(dir)), kinematics.SeriesTable(a.WingTipAspects(dir)))
		labels = append(labels, []string{"Table " + dir.String()}, []string{"Wing tips " + dir.String()})
	}
	smoothed, err := a.SmoothedWingTipAspects()
	if err != nil {
		return nil, errors.Wrap(err, "smoothed wing tips")
	}
	aspects = append(aspects, kinematics.SeriesTable(smoothed))
	labels = append(labels, []string{"Wing tips smoothed"})
	ret = append(ret, product{
		name: "aspect", title: "Aspect",
		xLabel: "Video time (s)", yLabel: "Aspect (degrees)",
		tables: aspects, labels: labels, points: true,
	})

	if len(ds.ApparentLengths) > 0 && len(ds.Pitches) > 0 {
		angles := make([]kinematics.Table, 0, 3)
		for _, dir := range kinematics.Directions() {
			table, err := a.AngleOfView(dir, ds.AngleOfViewObserver)
			if err != nil {
				return nil, errors.Wrapf(err, "angle of view %s", dir)
			}
			angles = append(angles, table)
		}
		ret = append(ret, product{
			name: "angle_of_view", title: "Camera angle of view",
			xLabel: "Video time (s)", yLabel: "Angle of view (degrees)",
			tables: angles, labels: directionLabels(""), points: true,
		})
	}

	if observer, ok := findObserver(observers, wingTipsMidName); ok {
		rows, err := a.Yaw(observer)
		if err != nil {
			return nil, errors.Wrap(err, "yaw")
		}
		ret = append(ret, product{
			name: "yaw", title: "Yaw",
			xLabel: "Video time (s)", yLabel: "Yaw (degrees)",
			tables: []kinematics.Table{kinematics.YawTable(rows)}, labels: [][]string{{"Yaw", "Low", "High"}}, points: true,
		})
	}

	if observer, ok := findObserver(observers, fullTransitsName); ok {
		landmarks, err := a.TransitXAxisDistancesWithError(observer)
		if err != nil {
			return nil, errors.Wrap(err, "transit distances")
		}
		ret = append(ret, product{
			name: "transit_distance", title: "Distance from landmark transits",
			xLabel: "Video time (s)", yLabel: "x (m)",
			tables: []kinematics.Table{
				kinematics.TransitDistanceErrorTable(landmarks),
				kinematics.TransitDistanceTable(a.FullTransitDistances(observer.Point())),
			},
			labels: [][]string{{"Landmarks", "Low", "High"}, {"Full transits"}}, points: true,
		})

		speeds, err := a.TransitSpeeds(observer.Point())
		if err != nil {
			return nil, errors.Wrap(err, "transit speeds")
		}
		ret = append(ret, product{
			name: "transit_speed", title: "Ground speed between landmark transits",
			xLabel: "Video time (s)", yLabel: "Ground speed (knots)",
			tables: []kinematics.Table{kinematics.TransitSpeedTable(speeds, units.MPSToKnots)},
			labels: [][]string{{"Landmarks"}}, points: true,
		})

		segments := a.FullTransitSegments(observer.Point(), fullTransitOvershoot)
		lines := make([]kinematics.Table, 0, len(segments))
		lineLabels := make([][]string, 0, len(segments))
		for _, seg := range segments {
			lines = append(lines, seg.Table())
			lineLabels = append(lineLabels, []string{seg.Label})
		}
		ret = append(ret, product{
			name: "full_transit_lines", title: "Full transit lines",
			xLabel: "x (m)", yLabel: "y (m)",
			tables: lines, labels: lineLabels,
		})
	}
	return ret, nil
}

func (b *Builder) writeMarkdown(w io.Writer, observers []NamedObserver) error {
	a := b.analysis
	ds := a.Dataset()
	events, err := a.Events()
	if err != nil {
		return errors.Wrap(err, "events")
	}
	eom, err := a.EquationsOfMotion()
	if err != nil {
		return errors.Wrap(err, "equations of motion")
	}
	lines := []string{
		fmt.Sprintf("# %s take off", ds.Aircraft.Name),
		"",
		"## Selected Events",
		"",
	}
	lines = append(lines, EventsMarkdown(events)...)
	lines = append(lines, "", "## Equations of Motion", "")
	for _, s := range eom.Strings() {
		lines = append(lines, "* "+s)
	}
	if len(observers) > 0 {
		lines = append(lines, "", "## Observer Position", "")
		lines = append(lines, ObserverMarkdown(observers)...)
	}
	if len(ds.FullTransits) > 0 {
		lines = append(lines, "", "## Full transits to Observer from Google Earth Positions", "")
		lines = append(lines, FullTransitsMarkdown(ds)...)
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return err
	}
	return nil
}
