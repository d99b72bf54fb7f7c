package cmd

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/internal/quantity"
)

// boardFlags override configuration values. Only flags the user actually
// set are applied.
type boardFlags struct {
	layers      int
	size        float64
	radius      float64
	xRadius     float64
	yRadius     float64
	innerRadius float64
	squareness  float64
	padAngle    float64
	angleStep   float64
	widthExp    float64
	minWidth    float64
	maxWidth    float64
	spacing     float64
	outerCopper float64
	innerCopper float64
	drill       float64
	viaDiameter float64
	maxCurrent  float64
	voltage     float64
	field       r3.Vec
}

func defaultBoardFlags() *boardFlags {
	d := config.Defaults()
	return &boardFlags{
		layers:      d.Board.Layers,
		size:        d.Board.Width,
		radius:      d.Spiral.XRadius,
		xRadius:     d.Spiral.XRadius,
		yRadius:     d.Spiral.YRadius,
		innerRadius: d.Spiral.InnerRadius,
		squareness:  d.Spiral.Squareness,
		padAngle:    d.Spiral.PadAngle,
		angleStep:   d.Spiral.AngleStep,
		widthExp:    d.Spiral.WidthExponent,
		minWidth:    d.Limits.MinTraceWidth,
		maxWidth:    d.Limits.MaxTraceWidth,
		spacing:     d.Limits.TraceSpacing,
		outerCopper: d.Limits.OuterCopperThickness,
		innerCopper: d.Limits.InnerCopperThickness,
		drill:       d.Limits.MinViaDrill,
		viaDiameter: d.Limits.MinViaDiameter,
		maxCurrent:  d.Limits.MaxCurrent,
		voltage:     d.Environment.Voltage,
		field:       r3.Vec{X: d.Environment.Field[0], Y: d.Environment.Field[1], Z: d.Environment.Field[2]},
	}
}

// addBoardFlags registers the board, spiral and constraint overrides on cmd
// and returns the values they write to.
func addBoardFlags(cmd *cobra.Command, withLayers bool) *boardFlags {
	bf := defaultBoardFlags()
	f := cmd.Flags()
	if withLayers {
		f.IntVarP(&bf.layers, "layers", "l", bf.layers, "copper layers (odd counts are rounded down)")
	}
	f.Var(quantity.NewValue(&bf.size, quantity.Length), "size", "square board edge; also resizes the spiral to 90% of it")
	f.Var(quantity.NewValue(&bf.radius, quantity.Length), "radius", "spiral outer radius along both axes")
	f.Var(quantity.NewValue(&bf.xRadius, quantity.Length), "x-radius", "spiral outer radius along X")
	f.Var(quantity.NewValue(&bf.yRadius, quantity.Length), "y-radius", "spiral outer radius along Y")
	f.Var(quantity.NewValue(&bf.innerRadius, quantity.Length), "inner-radius", "radius of the inner via ring")
	f.Float64Var(&bf.squareness, "squareness", bf.squareness, "0 for a round coil, toward 1 for a square one")
	f.Var(quantity.NewValue(&bf.padAngle, quantity.Angle), "pad-angle", "angle of the terminal pads")
	f.Var(quantity.NewValue(&bf.angleStep, quantity.Angle), "angle-step", "polyline angular resolution")
	f.Float64Var(&bf.widthExp, "width-exp", bf.widthExp, "exponent controlling width variation")
	f.Var(quantity.NewValue(&bf.minWidth, quantity.Length), "min-width", "minimum trace width")
	f.Var(quantity.NewValue(&bf.maxWidth, quantity.Length), "max-width", "maximum trace width")
	f.Var(quantity.NewValue(&bf.spacing, quantity.Length), "spacing", "minimum trace spacing")
	f.Var(quantity.NewValue(&bf.outerCopper, quantity.Length), "thickness", "outer layer copper thickness (1oz = 35um)")
	f.Var(quantity.NewValue(&bf.innerCopper, quantity.Length), "inner-thickness", "inner layer copper thickness")
	f.Var(quantity.NewValue(&bf.drill, quantity.Length), "via-drill", "via drill diameter")
	f.Var(quantity.NewValue(&bf.viaDiameter, quantity.Length), "via-diameter", "via pad diameter")
	f.Var(quantity.NewValue(&bf.maxCurrent, quantity.Current), "max-current", "maximum coil current")
	f.Var(quantity.NewValue(&bf.voltage, quantity.Voltage), "voltage", "drive voltage")
	f.Var(quantity.NewVectorValue(&bf.field, quantity.FluxDensity), "field", "external field (x, y, z)")
	return bf
}

// apply copies the flags the user set on cmd into cfg.
func (bf *boardFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Lookup(name) != nil && f.Changed(name) {
			apply()
		}
	}

	// sweep owns its own --layers list
	if fl := f.Lookup("layers"); fl != nil && fl.Value.Type() == "int" {
		set("layers", func() { cfg.Board.Layers = bf.layers })
	}
	set("size", func() {
		cfg.Board.Width, cfg.Board.Height = bf.size, bf.size
		cfg.Spiral.XRadius, cfg.Spiral.YRadius = bf.size/2*0.9, bf.size/2*0.9
	})
	set("radius", func() { cfg.Spiral.XRadius, cfg.Spiral.YRadius = bf.radius, bf.radius })
	set("x-radius", func() { cfg.Spiral.XRadius = bf.xRadius })
	set("y-radius", func() { cfg.Spiral.YRadius = bf.yRadius })
	set("inner-radius", func() { cfg.Spiral.InnerRadius = bf.innerRadius })
	set("squareness", func() { cfg.Spiral.Squareness = bf.squareness })
	set("pad-angle", func() { cfg.Spiral.PadAngle = bf.padAngle })
	set("angle-step", func() { cfg.Spiral.AngleStep = bf.angleStep })
	set("width-exp", func() { cfg.Spiral.WidthExponent = bf.widthExp })
	set("min-width", func() { cfg.Limits.MinTraceWidth = bf.minWidth })
	set("max-width", func() { cfg.Limits.MaxTraceWidth = bf.maxWidth })
	set("spacing", func() { cfg.Limits.TraceSpacing = bf.spacing })
	set("thickness", func() { cfg.Limits.OuterCopperThickness = bf.outerCopper })
	set("inner-thickness", func() { cfg.Limits.InnerCopperThickness = bf.innerCopper })
	set("via-drill", func() { cfg.Limits.MinViaDrill = bf.drill })
	set("via-diameter", func() { cfg.Limits.MinViaDiameter = bf.viaDiameter })
	set("max-current", func() { cfg.Limits.MaxCurrent = bf.maxCurrent })
	set("voltage", func() { cfg.Environment.Voltage = bf.voltage })
	set("field", func() { cfg.Environment.Field = [3]float64{bf.field.X, bf.field.Y, bf.field.Z} })
}
