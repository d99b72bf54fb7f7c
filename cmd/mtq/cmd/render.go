package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/magnetorquer/pkg/render"
)

type renderOptions struct {
	*globalOptions
	board   *boardFlags
	output  string
	size    int
	markers bool
	layers  []int
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	o := &renderOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the routed coil to a PNG",
		Long: `Route the coil in memory and draw it to a PNG image using the KiCad
layer colors. Use --layer to draw selected copper layers only.`,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "magnetorquer.png", "PNG path")
	cmd.Flags().IntVar(&o.size, "image-size", 0, "image edge in pixels (default from config)")
	cmd.Flags().BoolVar(&o.markers, "markers", false, "draw touch point markers")
	cmd.Flags().IntSliceVar(&o.layers, "layer", nil, "copper layer indices to draw (default all)")
	o.board = addBoardFlags(cmd, true)
	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd, o.board)
	if err != nil {
		return err
	}
	b, err := cfg.Generate()
	if err != nil {
		return err
	}

	size := cfg.Output.ImageSize
	if o.size > 0 {
		size = o.size
	}
	opts := render.Options{
		Size:    size,
		Markers: o.markers || cfg.Output.Markers,
		Layers:  o.layers,
	}
	if err := render.SavePNG(o.output, b, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", o.output)
	return nil
}
