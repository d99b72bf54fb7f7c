package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/internal/logger"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	configPath string
}

// newRootCmd builds the mtq command tree. Each call returns an independent
// tree with its own flag state.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "mtq",
		Short: "PCB magnetorquer coil generator",
		Long: `mtq routes a spiral coil through every copper layer of a PCB, writes it
as a KiCad footprint, and reports the coil's resistance, operating point,
magnetic moment and the torque it produces in an external field.

Settings come from built-in defaults (10 cm square, 6 layer board), an
optional TOML file (--config) and command-line flags, in that order.
Lengths, fields, voltages and currents accept units: 0.2mm, 1oz, 50uT, 3.3V.

Examples:
  mtq generate                                  # Write magnetorquer.kicad_mod
  mtq generate --layers 4 --png coil.png        # Four layers plus a preview
  mtq generate --config mtq.toml --watch        # Regenerate on every save
  mtq report --field "(0, 30uT, 0)"             # Torque in a 30 uT field along Y
  mtq sweep --layers 2,4,6,8                    # Compare layer counts
  mtq info magnetorquer.kicad_mod               # Summarize a footprint`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Set(logger.New(os.Stderr, g.verbose))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "TOML configuration file")

	rootCmd.AddCommand(
		newGenerateCmd(g),
		newReportCmd(g),
		newRenderCmd(g),
		newInfoCmd(),
		newSweepCmd(g),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies the board flags the
// user set on cmd.
func (g *globalOptions) loadConfig(cmd *cobra.Command, bf *boardFlags) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	bf.apply(cmd, cfg)
	return cfg, nil
}
