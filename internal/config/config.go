// Package config holds the generator settings, loaded from a TOML file over
// built-in defaults. All values are SI: meters, volts, amperes, tesla, radians.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OpenTraceLab/magnetorquer/pkg/field"
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/footprint"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
	"github.com/OpenTraceLab/magnetorquer/pkg/spiral"
)

// BoardConfig describes the bare board.
type BoardConfig struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Thickness float64 `toml:"thickness"`
	Layers    int     `toml:"layers"`
}

// SpiralConfig describes the coil outline.
type SpiralConfig struct {
	XRadius       float64 `toml:"x_radius"`
	YRadius       float64 `toml:"y_radius"`
	InnerRadius   float64 `toml:"inner_radius"`
	Squareness    float64 `toml:"squareness"`
	PadAngle      float64 `toml:"pad_angle"`
	WidthExponent float64 `toml:"width_exponent"`
	AngleStep     float64 `toml:"angle_step"`
	CenterX       float64 `toml:"center_x"`
	CenterY       float64 `toml:"center_y"`
	NetName       string  `toml:"net_name"`
}

// ConstraintsConfig are the manufacturing limits.
type ConstraintsConfig struct {
	MaxTraceWidth        float64 `toml:"max_trace_width"`
	MinTraceWidth        float64 `toml:"min_trace_width"`
	OuterCopperThickness float64 `toml:"outer_copper_thickness"`
	InnerCopperThickness float64 `toml:"inner_copper_thickness"`
	TraceSpacing         float64 `toml:"trace_spacing"`
	MinViaDrill          float64 `toml:"min_via_drill"`
	MinViaDiameter       float64 `toml:"min_via_diameter"`
	MaxCurrent           float64 `toml:"max_current"`
}

// DriveConfig is the analysis environment.
type DriveConfig struct {
	Voltage float64    `toml:"voltage"`
	Field   [3]float64 `toml:"field"`
	Pivot   [3]float64 `toml:"pivot"`
}

// OutputConfig names the generated artifacts.
type OutputConfig struct {
	Footprint string `toml:"footprint"`
	Name      string `toml:"name"`
	PNG       string `toml:"png"`
	ImageSize int    `toml:"image_size"`
	Markers   bool   `toml:"markers"`
}

// Config is the complete generator configuration.
type Config struct {
	Board       BoardConfig       `toml:"board"`
	Spiral      SpiralConfig      `toml:"spiral"`
	Limits      ConstraintsConfig `toml:"constraints"`
	Environment DriveConfig       `toml:"drive"`
	Output      OutputConfig      `toml:"output"`
}

// Defaults returns a 10 cm square, 6 layer FR-4 board with 1 oz outer and
// 0.5 oz inner copper.
func Defaults() *Config {
	const size = 0.1
	return &Config{
		Board: BoardConfig{
			Width:     size,
			Height:    size,
			Thickness: 1.6e-3,
			Layers:    6,
		},
		Spiral: SpiralConfig{
			XRadius:       size / 2 * 0.9,
			YRadius:       size / 2 * 0.9,
			InnerRadius:   10e-3,
			Squareness:    0.5,
			WidthExponent: 1.0,
			AngleStep:     spiral.DefaultAngleStep,
			NetName:       spiral.DefaultNetName,
		},
		Limits: ConstraintsConfig{
			MaxTraceWidth:        0.5e-3,
			MinTraceWidth:        0.2e-3,
			OuterCopperThickness: 35e-6,
			InnerCopperThickness: 17.5e-6,
			TraceSpacing:         0.2e-3,
			MinViaDrill:          0.3e-3,
			MinViaDiameter:       0.6e-3,
			MaxCurrent:           1,
		},
		Environment: DriveConfig{
			Voltage: 3.3,
			Field:   [3]float64{0, 0, 50e-6},
		},
		Output: OutputConfig{
			Footprint: "magnetorquer.kicad_mod",
			Name:      footprint.DefaultName,
			ImageSize: 1024,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default; unknown keys are an error. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals TOML data into cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("unknown config keys:\n%s", sme.String())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes cfg as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks ranges that the core would otherwise reject later.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Board.Width > 0 && c.Board.Height > 0 && c.Board.Thickness > 0) {
		errs = append(errs, fmt.Errorf("board dimensions must be positive"))
	}
	if c.Board.Layers < 2 || c.Board.Layers > footprint.MaxLayers {
		errs = append(errs, fmt.Errorf("board layers must be in [2, %d], got %d", footprint.MaxLayers, c.Board.Layers))
	}
	if !(c.Spiral.Squareness >= 0 && c.Spiral.Squareness < 1) {
		errs = append(errs, fmt.Errorf("squareness must be in [0, 1), got %g", c.Spiral.Squareness))
	}
	if !(c.Spiral.XRadius > 0 && c.Spiral.YRadius > 0) {
		errs = append(errs, fmt.Errorf("spiral radii must be positive"))
	}
	if 2*c.Spiral.XRadius > c.Board.Width || 2*c.Spiral.YRadius > c.Board.Height {
		errs = append(errs, fmt.Errorf("spiral (%g x %g) does not fit the board (%g x %g)",
			2*c.Spiral.XRadius, 2*c.Spiral.YRadius, c.Board.Width, c.Board.Height))
	}
	if !(c.Spiral.InnerRadius > 0) || c.Spiral.InnerRadius >= min(c.Spiral.XRadius, c.Spiral.YRadius) {
		errs = append(errs, fmt.Errorf("inner radius must be positive and inside the spiral, got %g", c.Spiral.InnerRadius))
	}
	if !(c.Spiral.AngleStep > 0) || math.IsInf(c.Spiral.AngleStep, 1) {
		errs = append(errs, fmt.Errorf("angle step must be positive and finite, got %g", c.Spiral.AngleStep))
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"pad angle", c.Spiral.PadAngle},
		{"center x", c.Spiral.CenterX},
		{"center y", c.Spiral.CenterY},
		{"width exponent", c.Spiral.WidthExponent},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %g", v.name, v.value))
		}
	}
	if err := c.Constraints().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Output.ImageSize < 0 {
		errs = append(errs, fmt.Errorf("image size must not be negative"))
	}
	return errors.Join(errs...)
}

// Constraints converts to the core constraint set.
func (c *Config) Constraints() pcb.Constraints {
	k := c.Limits
	return pcb.Constraints{
		MaxTraceWidth:             k.MaxTraceWidth,
		MinTraceWidth:             k.MinTraceWidth,
		TraceThicknessOuterLayers: k.OuterCopperThickness,
		TraceThicknessInnerLayers: k.InnerCopperThickness,
		TraceSpacing:              k.TraceSpacing,
		MinViaDrillSize:           k.MinViaDrill,
		MinViaDiameter:            k.MinViaDiameter,
		MaxCurrent:                k.MaxCurrent,
	}
}

// Layout converts to the router layout.
func (c *Config) Layout() spiral.Layout {
	s := c.Spiral
	return spiral.Layout{
		Center:             geometry.Pt(s.CenterX, s.CenterY),
		Squareness:         s.Squareness,
		XRadius:            s.XRadius,
		YRadius:            s.YRadius,
		InnerRadius:        s.InnerRadius,
		PadAngle:           s.PadAngle,
		TraceWidthExponent: s.WidthExponent,
		AngleStep:          s.AngleStep,
		NetName:            s.NetName,
	}
}

// Drive converts to the analysis drive.
func (c *Config) Drive() field.Drive {
	d := c.Environment
	return field.Drive{
		Voltage: d.Voltage,
		Field:   r3.Vec{X: d.Field[0], Y: d.Field[1], Z: d.Field[2]},
		Pivot:   r3.Vec{X: d.Pivot[0], Y: d.Pivot[1], Z: d.Pivot[2]},
	}
}

// NewBoard returns an empty board sized by the configuration.
func (c *Config) NewBoard() *pcb.Board {
	return pcb.NewBoard(c.Board.Width, c.Board.Height, c.Board.Thickness, c.Board.Layers, c.Constraints())
}

// Generate builds and routes a board from the configuration.
func (c *Config) Generate() (*pcb.Board, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b := c.NewBoard()
	if err := spiral.GenerateSpiralTrace(b, c.Layout()); err != nil {
		return nil, err
	}
	return b, nil
}
