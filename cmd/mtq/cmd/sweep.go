package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OpenTraceLab/magnetorquer/internal/sweep"
)

type sweepOptions struct {
	*globalOptions
	board   *boardFlags
	layers  []int
	workers int
}

func newSweepCmd(g *globalOptions) *cobra.Command {
	o := &sweepOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare coils across layer counts",
		Long: `Generate and analyze one coil per layer count in parallel and print
their resistance, current, moment and torque side by side.

Example:
  mtq sweep --layers 2,4,6,8 --voltage 5V`,
		RunE: o.run,
	}

	cmd.Flags().IntSliceVarP(&o.layers, "layers", "l", []int{2, 4, 6, 8}, "layer counts to compare")
	cmd.Flags().IntVarP(&o.workers, "workers", "j", 0, "parallel workers (default GOMAXPROCS)")
	o.board = addBoardFlags(cmd, false)
	return cmd
}

func (o *sweepOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd, o.board)
	if err != nil {
		return err
	}
	results, err := sweep.Run(cmd.Context(), cfg, o.layers, o.workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := newPalette(out)
	fmt.Fprintln(out, p.title(fmt.Sprintf("%-7s %-9s %10s %10s %10s %12s %12s",
		"LAYERS", "ROUTED", "LENGTH m", "R Ω", "I A", "|m| A·m²", "|τ| N·m")))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%-7d %s\n", r.Layers, p.bad("error: "+r.Err.Error()))
			continue
		}
		for _, n := range r.Report.Nets {
			fmt.Fprintf(out, "%-7d %-9d %10.4f %10.4g %10.4g %12.4g %12.4g\n",
				r.Layers, r.Realized, n.Length, n.Operating.Resistance, n.Operating.Current,
				r3.Norm(n.Moment), r3.Norm(n.Torque))
		}
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d variants failed", failed)
	}
	return nil
}
