package pcb

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// CopperResistivity is the resistivity of annealed copper at 20 °C in Ω·m.
const CopperResistivity = 1.68e-8

// ContinuityTolerance is the largest gap, in meters, tolerated between
// consecutive segment endpoints.
const ContinuityTolerance = 1e-9

// Length returns the straight-line length of the segment.
func (s TraceSegment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Resistance returns the DC resistance of the segment for resistivity rho.
// A segment without cross-section contributes nothing.
func (s TraceSegment) Resistance(rho float64) float64 {
	area := s.Width * s.Thickness
	if area == 0 {
		return 0
	}
	return rho * s.Length() / area
}

// Midpoint returns the center of the segment.
func (s TraceSegment) Midpoint() Point {
	return s.Start.Midpoint(s.End)
}

// Delta returns End - Start as a vector.
func (s TraceSegment) Delta() r3.Vec {
	return r3.Sub(s.End.Vec(), s.Start.Vec())
}

// MagneticMoment returns I·(mid × Δ)/2, the signed area swept from the
// origin across the segment scaled by the current.
func (s TraceSegment) MagneticMoment(current float64) r3.Vec {
	return r3.Scale(current/2, r3.Cross(s.Midpoint().Vec(), s.Delta()))
}

// TotalLength returns the polyline length of the trace.
func (t *Trace) TotalLength() float64 {
	total := 0.0
	for _, seg := range t.Segments {
		total += seg.Length()
	}
	return total
}

// Resistance returns the copper resistance of the trace.
func (t *Trace) Resistance() float64 {
	return t.ResistanceWith(CopperResistivity)
}

// ResistanceWith returns the resistance of the trace for resistivity rho.
func (t *Trace) ResistanceWith(rho float64) float64 {
	total := 0.0
	for _, seg := range t.Segments {
		total += seg.Resistance(rho)
	}
	return total
}

// MagneticMoment returns the dipole moment of the trace carrying current,
// using m = (I/2) ∮ r × dl discretized per segment.
func (t *Trace) MagneticMoment(current float64) r3.Vec {
	var m r3.Vec
	for _, seg := range t.Segments {
		m = r3.Add(m, seg.MagneticMoment(current))
	}
	return m
}

// CheckContinuity returns an error naming the first pair of consecutive
// segments whose endpoints are more than tol apart. A NaN gap counts as a break.
func (t *Trace) CheckContinuity(tol float64) error {
	for i := 1; i < len(t.Segments); i++ {
		prev, next := t.Segments[i-1].End, t.Segments[i].Start
		if gap := prev.Distance(next); !(gap <= tol) {
			return fmt.Errorf("layer %d: segment %d ends %g m from the start of segment %d", t.Layer, i-1, gap, i)
		}
	}
	return nil
}

// TotalLength returns the polyline length of every trace in the net.
func (n *Net) TotalLength() float64 {
	total := 0.0
	for i := range n.Traces {
		total += n.Traces[i].TotalLength()
	}
	return total
}

// Resistance returns the end-to-end resistance of the net. It assumes every
// trace is in series and that vias have no resistance; for a net with more
// than two terminals this number has no physical meaning.
func (n *Net) Resistance() float64 {
	total := 0.0
	for i := range n.Traces {
		total += n.Traces[i].Resistance()
	}
	return total
}

// MagneticMoment returns the summed dipole moment of all traces.
func (n *Net) MagneticMoment(current float64) r3.Vec {
	var m r3.Vec
	for i := range n.Traces {
		m = r3.Add(m, n.Traces[i].MagneticMoment(current))
	}
	return m
}

// CheckContinuity verifies every trace and the joins between consecutive
// traces. Joins between layers land on a shared via position.
func (n *Net) CheckContinuity(tol float64) error {
	for i := range n.Traces {
		if err := n.Traces[i].CheckContinuity(tol); err != nil {
			return fmt.Errorf("trace %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		prevEnd, ok := n.Traces[i-1].End()
		if !ok {
			continue
		}
		start, ok := n.Traces[i].Start()
		if !ok {
			continue
		}
		if gap := prevEnd.Distance(start); !(gap <= tol) {
			return fmt.Errorf("trace %d starts %g m from the end of trace %d", i, gap, i-1)
		}
	}
	return nil
}
