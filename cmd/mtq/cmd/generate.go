package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/internal/watch"
	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/footprint"
	"github.com/OpenTraceLab/magnetorquer/pkg/render"
)

type generateOptions struct {
	*globalOptions
	board   *boardFlags
	output  string
	png     string
	name    string
	markers bool
	watch   bool
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{globalOptions: g}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Route the coil and write a KiCad footprint",
		Long: `Route a spiral coil through every copper layer and write it as a KiCad
footprint. With --png a preview image is written as well.

With --watch the configuration file is watched and the footprint is
regenerated every time it is saved, until interrupted.`,
		RunE: o.run,
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "footprint path (default from config: magnetorquer.kicad_mod)")
	cmd.Flags().StringVar(&o.png, "png", "", "also write a PNG preview")
	cmd.Flags().StringVar(&o.name, "name", "", "footprint name")
	cmd.Flags().BoolVar(&o.markers, "markers", false, "include touch point markers")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "regenerate when the config file changes")
	o.board = addBoardFlags(cmd, true)
	return cmd
}

func (o *generateOptions) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !o.watch {
		cfg, err := o.loadConfig(cmd, o.board)
		if err != nil {
			return err
		}
		return o.generate(out, cfg)
	}

	if o.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", o.configPath)
	return watch.Watch(cmd.Context(), o.configPath, func(ctx context.Context) error {
		cfg, err := o.loadConfig(cmd, o.board)
		if err != nil {
			return err
		}
		return o.generate(out, cfg)
	})
}

func (o *generateOptions) generate(out io.Writer, cfg *config.Config) error {
	if o.output != "" {
		cfg.Output.Footprint = o.output
	}
	if o.png != "" {
		cfg.Output.PNG = o.png
	}
	if o.name != "" {
		cfg.Output.Name = o.name
	}
	if o.markers {
		cfg.Output.Markers = true
	}

	b, err := cfg.Generate()
	if err != nil {
		return err
	}

	opts := footprint.Options{
		Name:    cfg.Output.Name,
		Origin:  cfg.Layout().Center,
		Markers: cfg.Output.Markers,
	}
	if err := footprint.WriteFile(cfg.Output.Footprint, b, opts); err != nil {
		return err
	}
	logger.L().Info("footprint written", "path", cfg.Output.Footprint, "layers", b.Layers)

	segments := 0
	length := 0.0
	for i := range b.Nets {
		segments += b.Nets[i].Segments()
		length += b.Nets[i].TotalLength()
	}
	fmt.Fprintf(out, "Footprint written to %s\n", cfg.Output.Footprint)
	fmt.Fprintf(out, "  %d layers, %d vias, %d segments, %.3f m of copper\n",
		b.Layers, len(b.Vias), segments, length)

	if cfg.Output.PNG != "" {
		ropts := render.Options{Size: cfg.Output.ImageSize, Markers: cfg.Output.Markers}
		if err := render.SavePNG(cfg.Output.PNG, b, ropts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Preview written to %s\n", cfg.Output.PNG)
	}
	return nil
}
