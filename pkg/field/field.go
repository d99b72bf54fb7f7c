// Package field derives the electrical operating point of a coil and the
// force and torque it experiences in a uniform external magnetic field.
//
// Every conductor is treated as a thin filament along its segment centerline.
package field

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// SeriesAssumption qualifies every net resistance this package reports.
const SeriesAssumption = "traces in series, vias treated as zero resistance"

// ErrNoResistance is returned when a drive is solved against a net without
// copper resistance.
var ErrNoResistance = errors.New("resistance must be positive")

// OperatingPoint is the steady state of a coil on a voltage drive.
type OperatingPoint struct {
	Voltage    float64 // Voltage across the coil in volts
	Current    float64 // Current in amperes
	Resistance float64 // Coil resistance in ohms
	Clamped    bool    // Current was limited to the maximum
}

// Power returns the dissipated power in watts.
func (op OperatingPoint) Power() float64 {
	return op.Voltage * op.Current
}

// SolveOperatingPoint returns the current drawn by resistance r at voltage v.
// When that exceeds maxCurrent the drive is limited: the current becomes
// maxCurrent and the voltage the drop that current produces.
func SolveOperatingPoint(r, v, maxCurrent float64) (OperatingPoint, error) {
	if !(r > 0) {
		return OperatingPoint{}, fmt.Errorf("%w: got %g", ErrNoResistance, r)
	}
	op := OperatingPoint{Voltage: v, Current: v / r, Resistance: r}
	if maxCurrent > 0 && op.Current > maxCurrent {
		op.Current = maxCurrent
		op.Voltage = maxCurrent * r
		op.Clamped = true
	}
	return op, nil
}

// Force returns the net Lorentz force on a net carrying current in field b.
// For a closed loop in a uniform field it vanishes.
func Force(n *pcb.Net, current float64, b r3.Vec) r3.Vec {
	var f r3.Vec
	for i := range n.Traces {
		for _, seg := range n.Traces[i].Segments {
			f = r3.Add(f, r3.Cross(r3.Scale(current, seg.Delta()), b))
		}
	}
	return f
}

// Torque returns the torque about pivot on a net carrying current in field b.
func Torque(n *pcb.Net, current float64, b, pivot r3.Vec) r3.Vec {
	var tau r3.Vec
	for i := range n.Traces {
		for _, seg := range n.Traces[i].Segments {
			arm := r3.Sub(seg.Midpoint().Vec(), pivot)
			df := r3.Cross(r3.Scale(current, seg.Delta()), b)
			tau = r3.Add(tau, r3.Cross(arm, df))
		}
	}
	return tau
}
