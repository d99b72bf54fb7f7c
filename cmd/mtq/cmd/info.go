package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/footprint"
)

func newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info <file.kicad_mod>",
		Short: "Summarize a footprint file",
		Long: `Parse a KiCad footprint and show its pad and via counts and the lines
and copper length on each layer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func runInfo(cmd *cobra.Command, path string, asJSON bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open footprint: %w", err)
	}
	defer f.Close()

	s, err := footprint.ReadSummary(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	p := newPalette(out)
	fmt.Fprintln(out, p.title("Footprint "+s.Name))
	p.row(out, "Pads", "%d", s.Pads)
	p.row(out, "Vias", "%d", s.Vias)
	for _, layer := range s.Layers() {
		p.row(out, layer, "%d lines, %.2f mm", s.LinesPerLayer[layer], s.LengthByLayer[layer])
	}
	p.row(out, "Copper", "%.2f mm", s.CopperLength)
	return nil
}
