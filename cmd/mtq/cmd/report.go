package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/pkg/field"
)

func newReportCmd(g *globalOptions) *cobra.Command {
	var (
		asJSON bool
		board  *boardFlags
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show resistance, operating point, moment and torque",
		Long: `Route the coil in memory and report, for each net, its copper length,
series resistance, the current it draws from the drive voltage (limited to
--max-current), its magnetic moment and the force and torque it experiences
in the external field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd, board)
			if err != nil {
				return err
			}
			return runReport(cmd.OutOrStdout(), cfg, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	board = addBoardFlags(cmd, true)
	return cmd
}

type netJSON struct {
	Name       string     `json:"name"`
	Traces     int        `json:"traces"`
	Segments   int        `json:"segments"`
	Length     float64    `json:"length_m"`
	Resistance float64    `json:"resistance_ohm"`
	Voltage    float64    `json:"voltage_v"`
	Current    float64    `json:"current_a"`
	Power      float64    `json:"power_w"`
	Clamped    bool       `json:"clamped"`
	Moment     [3]float64 `json:"moment_am2"`
	Force      [3]float64 `json:"force_n"`
	Torque     [3]float64 `json:"torque_nm"`
	Continuity string     `json:"continuity_error,omitempty"`
}

type reportJSONOut struct {
	Layers      int        `json:"layers"`
	Vias        int        `json:"vias"`
	Field       [3]float64 `json:"field_t"`
	MaxCurrent  float64    `json:"max_current_a"`
	Assumptions string     `json:"assumptions"`
	Nets        []netJSON  `json:"nets"`
}

func runReport(out io.Writer, cfg *config.Config, asJSON bool) error {
	b, err := cfg.Generate()
	if err != nil {
		return err
	}
	rep, err := field.Analyze(b, cfg.Drive())
	if err != nil {
		return err
	}

	if asJSON {
		return writeReportJSON(out, rep)
	}
	printReport(out, newPalette(out), rep)
	return nil
}

func writeReportJSON(w io.Writer, rep *field.Report) error {
	doc := reportJSONOut{
		Layers:      rep.Layers,
		Vias:        rep.Vias,
		Field:       [3]float64{rep.Drive.Field.X, rep.Drive.Field.Y, rep.Drive.Field.Z},
		MaxCurrent:  rep.MaxCurrent,
		Assumptions: rep.Assumptions,
		Nets:        []netJSON{},
	}
	for _, n := range rep.Nets {
		nj := netJSON{
			Name:       n.Name,
			Traces:     n.Traces,
			Segments:   n.Segments,
			Length:     n.Length,
			Resistance: n.Operating.Resistance,
			Voltage:    n.Operating.Voltage,
			Current:    n.Operating.Current,
			Power:      n.Operating.Power(),
			Clamped:    n.Operating.Clamped,
			Moment:     [3]float64{n.Moment.X, n.Moment.Y, n.Moment.Z},
			Force:      [3]float64{n.Force.X, n.Force.Y, n.Force.Z},
			Torque:     [3]float64{n.Torque.X, n.Torque.Y, n.Torque.Z},
		}
		if n.Continuity != nil {
			nj.Continuity = n.Continuity.Error()
		}
		doc.Nets = append(doc.Nets, nj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func printReport(w io.Writer, p palette, rep *field.Report) {
	fmt.Fprintln(w, p.title("Magnetorquer report"))
	p.row(w, "Layers", "%d", rep.Layers)
	p.row(w, "Vias", "%d", rep.Vias)
	p.row(w, "Field", "%s T", vec(rep.Drive.Field))
	p.row(w, "Max current", "%.4g A", rep.MaxCurrent)

	for _, n := range rep.Nets {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.title("Net "+n.Name))
		p.row(w, "Traces", "%d (%d segments)", n.Traces, n.Segments)
		p.row(w, "Length", "%.4f m", n.Length)
		p.row(w, "Resistance", "%.4g Ω", n.Operating.Resistance)
		current := fmt.Sprintf("%.4g A at %.4g V", n.Operating.Current, n.Operating.Voltage)
		if n.Operating.Clamped {
			current += " " + p.warn("(clamped to max current)")
		}
		p.row(w, "Current", "%s", current)
		p.row(w, "Power", "%.4g W", n.Operating.Power())
		p.row(w, "Moment", "%s A·m²", vec(n.Moment))
		p.row(w, "Force", "%s N", vec(n.Force))
		p.row(w, "Torque", "%s N·m", vec(n.Torque))
		if n.Continuity != nil {
			p.row(w, "Continuity", "%s", p.bad(n.Continuity.Error()))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.label(rep.Assumptions))
}
