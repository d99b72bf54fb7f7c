package pcb

import (
	"errors"
	"fmt"
)

// Constraints are the manufacturing limits a coil is generated against.
type Constraints struct {
	MaxTraceWidth             float64 // Widest allowed trace
	MinTraceWidth             float64 // Narrowest allowed trace
	TraceThicknessOuterLayers float64 // Copper thickness on the two outer layers
	TraceThicknessInnerLayers float64 // Copper thickness on inner layers
	TraceSpacing              float64 // Minimum copper-to-copper clearance
	MinViaDrillSize           float64 // Smallest drill
	MinViaDiameter            float64 // Smallest via annular diameter
	MaxCurrent                float64 // Maximum continuous current in amperes
}

// Validate checks that every limit is usable.
func (c Constraints) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"max trace width", c.MaxTraceWidth},
		{"min trace width", c.MinTraceWidth},
		{"outer layer thickness", c.TraceThicknessOuterLayers},
		{"inner layer thickness", c.TraceThicknessInnerLayers},
		{"trace spacing", c.TraceSpacing},
		{"min via drill size", c.MinViaDrillSize},
		{"min via diameter", c.MinViaDiameter},
		{"max current", c.MaxCurrent},
	}

	var errs []error
	for _, f := range fields {
		if !(f.value > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", f.name, f.value))
		}
	}
	if c.MinTraceWidth > c.MaxTraceWidth {
		errs = append(errs, fmt.Errorf("min trace width %g exceeds max trace width %g", c.MinTraceWidth, c.MaxTraceWidth))
	}
	if c.MinViaDrillSize >= c.MinViaDiameter {
		errs = append(errs, fmt.Errorf("via drill %g must be smaller than via diameter %g", c.MinViaDrillSize, c.MinViaDiameter))
	}
	return errors.Join(errs...)
}

// Board is the top-level container for one generation run.
type Board struct {
	Width       float64 // Board extent along X
	Height      float64 // Board extent along Y
	Thickness   float64 // Board thickness
	Layers      int     // Copper layer count actually realized
	Constraints Constraints
	Nets        []Net
	Vias        []Via
	Pads        []Pad
	Markers     []Marker
}

// NewBoard creates an empty board.
func NewBoard(width, height, thickness float64, layers int, c Constraints) *Board {
	return &Board{
		Width:       width,
		Height:      height,
		Thickness:   thickness,
		Layers:      layers,
		Constraints: c,
	}
}

// AddNet appends a completed net.
func (b *Board) AddNet(n Net) {
	b.Nets = append(b.Nets, n)
}

// AddVia appends a via.
func (b *Board) AddVia(v Via) {
	b.Vias = append(b.Vias, v)
}

// AddPad appends a pad.
func (b *Board) AddPad(p Pad) {
	b.Pads = append(b.Pads, p)
}

// AddMarker appends a marker.
func (b *Board) AddMarker(m Marker) {
	b.Markers = append(b.Markers, m)
}

// Net returns the net with the given name, or nil.
func (b *Board) Net(name string) *Net {
	for i := range b.Nets {
		if b.Nets[i].Name == name {
			return &b.Nets[i]
		}
	}
	return nil
}

// TracesOnLayer returns every trace on a layer across all nets.
func (b *Board) TracesOnLayer(layer int) []Trace {
	var traces []Trace
	for _, n := range b.Nets {
		for _, t := range n.Traces {
			if t.Layer == layer {
				traces = append(traces, t)
			}
		}
	}
	return traces
}
