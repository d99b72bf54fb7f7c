// Package pcb is the data model for a generated coil board: copper segments
// grouped into per-layer traces and series nets, plus the vias, pads and
// markers placed alongside them.
//
// All lengths are meters. Entities are plain values owned by exactly one
// container and are not mutated once the board is handed off.
package pcb

import (
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
)

// Point is re-exported so callers of this package rarely need geometry.
type Point = geometry.Point

// TraceSegment is one straight copper run.
type TraceSegment struct {
	Start     Point   // Start point
	End       Point   // End point
	Width     float64 // Copper width
	Thickness float64 // Copper thickness
}

// Via connects adjacent copper layers at a fixed position.
type Via struct {
	Position  Point   // Via center
	Size      float64 // Annular ring diameter
	DrillSize float64 // Drill diameter, always smaller than Size
}

// Pad is a surface terminal at one end of the coil.
type Pad struct {
	Index    int     // Pad number, starting at 1
	Position Point   // Pad center
	XSize    float64 // Size along X
	YSize    float64 // Size along Y
}

// Marker is a diagnostic annotation with no electrical meaning.
type Marker struct {
	Position Point
	Radius   float64
}

// Trace is a continuous conductor run confined to one layer. Consecutive
// segments share endpoints.
type Trace struct {
	Layer    int
	Segments []TraceSegment
}

// AddSegment appends a segment to the trace.
func (t *Trace) AddSegment(seg TraceSegment) {
	t.Segments = append(t.Segments, seg)
}

// Start returns the first point of the trace.
func (t *Trace) Start() (Point, bool) {
	if len(t.Segments) == 0 {
		return Point{}, false
	}
	return t.Segments[0].Start, true
}

// End returns the last point of the trace.
func (t *Trace) End() (Point, bool) {
	if len(t.Segments) == 0 {
		return Point{}, false
	}
	return t.Segments[len(t.Segments)-1].End, true
}

// Net is a series path of traces listed in current-flow order.
type Net struct {
	Name   string
	Traces []Trace
}

// AddTrace appends a trace to the net.
func (n *Net) AddTrace(t Trace) {
	n.Traces = append(n.Traces, t)
}

// Segments returns the number of segments across all traces.
func (n *Net) Segments() int {
	count := 0
	for i := range n.Traces {
		count += len(n.Traces[i].Segments)
	}
	return count
}
