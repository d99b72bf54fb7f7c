package field

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// Drive is the electrical and magnetic environment a board is analyzed in.
type Drive struct {
	Voltage float64 // Supply voltage in volts
	Field   r3.Vec  // External flux density in tesla
	Pivot   r3.Vec  // Torque reference point in meters
}

// NetReport summarizes one net.
type NetReport struct {
	Name       string
	Traces     int
	Segments   int
	Length     float64        // Copper length in meters
	Operating  OperatingPoint // Includes the series resistance
	Moment     r3.Vec         // Dipole moment in A·m²
	Force      r3.Vec         // Newtons
	Torque     r3.Vec         // Newton meters
	Continuity error          // Nil when every segment joins the next
}

// Report is the analysis of every net on a board.
type Report struct {
	Layers      int
	Vias        int
	Drive       Drive
	MaxCurrent  float64
	Nets        []NetReport
	Assumptions string
}

// Analyze solves the operating point of every net under d, limited by the
// board's maximum current, and derives its moment, force and torque.
func Analyze(b *pcb.Board, d Drive) (*Report, error) {
	rep := &Report{
		Layers:      b.Layers,
		Vias:        len(b.Vias),
		Drive:       d,
		MaxCurrent:  b.Constraints.MaxCurrent,
		Assumptions: SeriesAssumption,
	}
	for i := range b.Nets {
		n := &b.Nets[i]
		op, err := SolveOperatingPoint(n.Resistance(), d.Voltage, b.Constraints.MaxCurrent)
		if err != nil {
			return nil, fmt.Errorf("net %q: %w", n.Name, err)
		}
		rep.Nets = append(rep.Nets, NetReport{
			Name:       n.Name,
			Traces:     len(n.Traces),
			Segments:   n.Segments(),
			Length:     n.TotalLength(),
			Operating:  op,
			Moment:     n.MagneticMoment(op.Current),
			Force:      Force(n, op.Current, d.Field),
			Torque:     Torque(n, op.Current, d.Field, d.Pivot),
			Continuity: n.CheckContinuity(pcb.ContinuityTolerance),
		})
	}
	return rep, nil
}
