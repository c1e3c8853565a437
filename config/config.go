// Package config loads the error terms and estimator settings of a trajectory analysis.
// Every field is optional: unset fields fall back to the A340 defaults through the Get* accessors.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/LdDl/trajectory-go/geom"
	"github.com/LdDl/trajectory-go/kinematics"
	"github.com/LdDl/trajectory-go/units"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// maxFileSize is the largest config file accepted
const maxFileSize = 1 * 1024 * 1024

var (
	// ErrInvalidConfig is returned by Validate
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnsupportedFormat is returned for config files other than YAML or JSON
	ErrUnsupportedFormat = errors.New("config file must be .yaml, .yml or .json")
)

// Config is the on disk configuration. YAML and JSON files share the same keys.
type Config struct {
	// Video, in frames at kinematics.FramesPerSecond
	TimestampErrorFrames *float64 `yaml:"timestamp_error_frames,omitempty" json:"timestamp_error_frames,omitempty"`
	TransitErrorFrames   *float64 `yaml:"transit_error_frames,omitempty" json:"transit_error_frames,omitempty"`

	// Measurement errors
	PitchError               *float64 `yaml:"pitch_error_deg,omitempty" json:"pitch_error_deg,omitempty"`
	AspectError              *float64 `yaml:"aspect_error_deg,omitempty" json:"aspect_error_deg,omitempty"`
	WingTipPixelError        *float64 `yaml:"wing_tip_pixel_error,omitempty" json:"wing_tip_pixel_error,omitempty"`
	ApparentLengthPixelError *float64 `yaml:"apparent_length_pixel_error,omitempty" json:"apparent_length_pixel_error,omitempty"`
	SmoothWingTips           *bool    `yaml:"smooth_wing_tips,omitempty" json:"smooth_wing_tips,omitempty"`
	LandmarkError            *float64 `yaml:"landmark_error_m,omitempty" json:"landmark_error_m,omitempty"`

	// Ground speed, knots
	GroundSpeedOffsets []float64 `yaml:"ground_speed_offsets_kt,omitempty" json:"ground_speed_offsets_kt,omitempty"`
	SpeedCorrection    *float64  `yaml:"speed_correction_kt,omitempty" json:"speed_correction_kt,omitempty"`
	SpeedTolerance     *float64  `yaml:"speed_tolerance_kt,omitempty" json:"speed_tolerance_kt,omitempty"`
	AccelerationError  *float64  `yaml:"acceleration_error,omitempty" json:"acceleration_error,omitempty"`
	DistanceError      *float64  `yaml:"distance_error_m,omitempty" json:"distance_error_m,omitempty"`

	// Fitting
	FitDegree         *int     `yaml:"fit_degree,omitempty" json:"fit_degree,omitempty"`
	FitInterval       *float64 `yaml:"fit_interval,omitempty" json:"fit_interval,omitempty"`
	MaxVideoTime      *float64 `yaml:"max_video_time,omitempty" json:"max_video_time,omitempty"`
	ExtrapolationStop *float64 `yaml:"extrapolation_stop,omitempty" json:"extrapolation_stop,omitempty"`

	// Observer
	ObserverBaseline     *float64 `yaml:"observer_baseline_m,omitempty" json:"observer_baseline_m,omitempty"`
	ObserverIgnoreFirstN *int     `yaml:"observer_ignore_first_n,omitempty" json:"observer_ignore_first_n,omitempty"`
	ObserverTimeFrom     *float64 `yaml:"observer_time_from,omitempty" json:"observer_time_from,omitempty"`
	ObserverTimeTo       *float64 `yaml:"observer_time_to,omitempty" json:"observer_time_to,omitempty"`

	// Output
	Projection *string  `yaml:"projection,omitempty" json:"projection,omitempty"`
	PlotWidth  *float64 `yaml:"plot_width_cm,omitempty" json:"plot_width_cm,omitempty"`
	PlotHeight *float64 `yaml:"plot_height_cm,omitempty" json:"plot_height_cm,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

// Default returns a config with every field set to its default
func Default() *Config {
	return &Config{
		TimestampErrorFrames:     ptrFloat64(5),
		TransitErrorFrames:       ptrFloat64(1),
		PitchError:               ptrFloat64(1),
		AspectError:              ptrFloat64(5),
		WingTipPixelError:        ptrFloat64(18),
		ApparentLengthPixelError: ptrFloat64(10),
		SmoothWingTips:           ptrBool(false),
		LandmarkError:            ptrFloat64(10),
		GroundSpeedOffsets:       []float64{-10, 0, 10},
		SpeedCorrection:          ptrFloat64(5),
		SpeedTolerance:           ptrFloat64(5),
		AccelerationError:        ptrFloat64(0.17 / 2),
		DistanceError:            ptrFloat64(25),
		FitDegree:                ptrInt(3),
		FitInterval:              ptrFloat64(1),
		MaxVideoTime:             ptrFloat64(36),
		ExtrapolationStop:        ptrFloat64(40),
		ObserverBaseline:         ptrFloat64(1250),
		ObserverIgnoreFirstN:     ptrInt(5),
		ObserverTimeFrom:         ptrFloat64(0),
		ObserverTimeTo:           ptrFloat64(0),
		Projection:               ptrString(geom.ProjectionHaversine),
		PlotWidth:                ptrFloat64(16),
		PlotHeight:               ptrFloat64(10),
	}
}

// Load reads a YAML or JSON config file. Omitted fields keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	switch ext := filepath.Ext(cleanPath); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "got '%s'", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "can't stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "can't read config file")
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON, which is valid YAML) and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "can't parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of every field that is set
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value *float64
	}{
		{"fit_interval", c.FitInterval},
		{"max_video_time", c.MaxVideoTime},
		{"plot_width_cm", c.PlotWidth},
		{"plot_height_cm", c.PlotHeight},
	}
	for _, p := range positive {
		if p.value != nil && *p.value <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must be > 0, got %v", p.name, *p.value)
		}
	}
	nonNegative := []struct {
		name  string
		value *float64
	}{
		{"timestamp_error_frames", c.TimestampErrorFrames},
		{"transit_error_frames", c.TransitErrorFrames},
		{"pitch_error_deg", c.PitchError},
		{"aspect_error_deg", c.AspectError},
		{"wing_tip_pixel_error", c.WingTipPixelError},
		{"apparent_length_pixel_error", c.ApparentLengthPixelError},
		{"speed_tolerance_kt", c.SpeedTolerance},
		{"acceleration_error", c.AccelerationError},
		{"distance_error_m", c.DistanceError},
		{"landmark_error_m", c.LandmarkError},
		{"observer_baseline_m", c.ObserverBaseline},
	}
	for _, p := range nonNegative {
		if p.value != nil && *p.value < 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must be >= 0, got %v", p.name, *p.value)
		}
	}
	if c.GroundSpeedOffsets != nil && len(c.GroundSpeedOffsets) != 3 {
		return errors.Wrapf(ErrInvalidConfig, "ground_speed_offsets_kt needs 3 values for min, mid, max, got %d", len(c.GroundSpeedOffsets))
	}
	if c.FitDegree != nil && (*c.FitDegree < 0 || *c.FitDegree > 9) {
		return errors.Wrapf(ErrInvalidConfig, "fit_degree must be between 0 and 9, got %d", *c.FitDegree)
	}
	if c.ObserverIgnoreFirstN != nil && *c.ObserverIgnoreFirstN < 0 {
		return errors.Wrapf(ErrInvalidConfig, "observer_ignore_first_n must be >= 0, got %d", *c.ObserverIgnoreFirstN)
	}
	if c.Projection != nil {
		switch *c.Projection {
		case geom.ProjectionHaversine, geom.ProjectionUTM:
		default:
			return errors.Wrapf(ErrInvalidConfig, "projection must be '%s' or '%s', got '%s'", geom.ProjectionHaversine, geom.ProjectionUTM, *c.Projection)
		}
	}
	return nil
}

func getFloat64(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func getInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// GetTimestampError returns the timestamp error in seconds
func (c *Config) GetTimestampError() float64 {
	return getFloat64(c.TimestampErrorFrames, 5) / kinematics.FramesPerSecond
}

// GetTransitError returns the transit error in seconds
func (c *Config) GetTransitError() float64 {
	return getFloat64(c.TransitErrorFrames, 1) / kinematics.FramesPerSecond
}

func (c *Config) GetPitchError() float64 {
	return getFloat64(c.PitchError, 1)
}

func (c *Config) GetAspectError() float64 {
	return getFloat64(c.AspectError, 5)
}

func (c *Config) GetWingTipPixelError() float64 {
	return getFloat64(c.WingTipPixelError, 18)
}

func (c *Config) GetApparentLengthPixelError() float64 {
	return getFloat64(c.ApparentLengthPixelError, 10)
}

// GetSmoothWingTips reports whether wing tip selections are Kalman smoothed before use
func (c *Config) GetSmoothWingTips() bool {
	if c.SmoothWingTips == nil {
		return false
	}
	return *c.SmoothWingTips
}

// GetLandmarkError returns the position error of Google Earth landmarks in metres
func (c *Config) GetLandmarkError() float64 {
	return getFloat64(c.LandmarkError, 10)
}

// GetGroundSpeedOffsets returns the min, mid, max offsets in knots
func (c *Config) GetGroundSpeedOffsets() [3]float64 {
	if len(c.GroundSpeedOffsets) != 3 {
		return [3]float64{-10, 0, 10}
	}
	return [3]float64{c.GroundSpeedOffsets[0], c.GroundSpeedOffsets[1], c.GroundSpeedOffsets[2]}
}

// GetSpeedCorrection returns the speed correction in knots
func (c *Config) GetSpeedCorrection() float64 {
	return getFloat64(c.SpeedCorrection, 5)
}

// GetSpeedTolerance returns the speed tolerance in knots
func (c *Config) GetSpeedTolerance() float64 {
	return getFloat64(c.SpeedTolerance, 5)
}

func (c *Config) GetAccelerationError() float64 {
	return getFloat64(c.AccelerationError, 0.17/2)
}

func (c *Config) GetDistanceError() float64 {
	return getFloat64(c.DistanceError, 25)
}

func (c *Config) GetFitDegree() int {
	return getInt(c.FitDegree, 3)
}

func (c *Config) GetFitInterval() float64 {
	return getFloat64(c.FitInterval, 1)
}

func (c *Config) GetMaxVideoTime() float64 {
	return getFloat64(c.MaxVideoTime, 36)
}

func (c *Config) GetExtrapolationStop() float64 {
	return getFloat64(c.ExtrapolationStop, 40)
}

// GetObserverOptions returns the filters applied before triangulating the observer
func (c *Config) GetObserverOptions() kinematics.ObserverOptions {
	return kinematics.ObserverOptions{
		Baseline:     getFloat64(c.ObserverBaseline, 1250),
		IgnoreFirstN: getInt(c.ObserverIgnoreFirstN, 5),
		TimeRange: kinematics.TimeRange{
			From: getFloat64(c.ObserverTimeFrom, 0),
			To:   getFloat64(c.ObserverTimeTo, 0),
		},
	}
}

// GetProjection returns the lat/long projection name
func (c *Config) GetProjection() string {
	if c.Projection == nil || *c.Projection == "" {
		return geom.ProjectionHaversine
	}
	return *c.Projection
}

// GetPlotSize returns plot width and height in centimetres
func (c *Config) GetPlotSize() (float64, float64) {
	return getFloat64(c.PlotWidth, 16), getFloat64(c.PlotHeight, 10)
}

// Params converts the config to analysis parameters. Speeds are converted from knots to m/s.
func (c *Config) Params() kinematics.Params {
	offsets := c.GetGroundSpeedOffsets()
	return kinematics.Params{
		TimestampError:           c.GetTimestampError(),
		TransitError:             c.GetTransitError(),
		PitchError:               c.GetPitchError(),
		AspectError:              c.GetAspectError(),
		WingTipPixelError:        c.GetWingTipPixelError(),
		ApparentLengthPixelError: c.GetApparentLengthPixelError(),
		SmoothWingTips:           c.GetSmoothWingTips(),
		LandmarkError:            c.GetLandmarkError(),
		GroundSpeedOffsets: [3]float64{
			units.KnotsToMPS(offsets[0]),
			units.KnotsToMPS(offsets[1]),
			units.KnotsToMPS(offsets[2]),
		},
		SpeedCorrection:   units.KnotsToMPS(c.GetSpeedCorrection()),
		SpeedTolerance:    units.KnotsToMPS(c.GetSpeedTolerance()),
		AccelerationError: c.GetAccelerationError(),
		DistanceError:     c.GetDistanceError(),
		FitDegree:         c.GetFitDegree(),
		FitInterval:       c.GetFitInterval(),
		MaxVideoTime:      c.GetMaxVideoTime(),
		ExtrapolationStop: c.GetExtrapolationStop(),
		Observer:          c.GetObserverOptions(),
	}
}
