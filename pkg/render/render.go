// Package render draws a generated board to a PNG preview.
package render

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// Options control the preview.
type Options struct {
	Size    int  // Image width and height in pixels; zero means DefaultSize
	Margin  int  // Border in pixels; negative means none
	Markers bool // Draw touch point markers
	Layers  []int
}

// DefaultSize is the preview edge length in pixels.
const DefaultSize = 1024

func (o Options) normalized() Options {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = o.Size / 32
	}
	return o
}

func (o Options) shows(layer int) bool {
	if len(o.Layers) == 0 {
		return true
	}
	for _, l := range o.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// Render draws b and returns the image.
func Render(b *pcb.Board, opts Options) (image.Image, error) {
	dc, err := draw(b, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG draws b and encodes it as PNG to w.
func WritePNG(w io.Writer, b *pcb.Board, opts Options) error {
	dc, err := draw(b, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG draws b to a PNG file.
func SavePNG(path string, b *pcb.Board, opts Options) error {
	dc, err := draw(b, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func draw(b *pcb.Board, opts Options) (*gg.Context, error) {
	if b == nil {
		return nil, errors.New("nil board")
	}
	opts = opts.normalized()
	if opts.Size < 16 || 2*opts.Margin >= opts.Size {
		return nil, fmt.Errorf("image size %d with margin %d leaves nothing to draw", opts.Size, opts.Margin)
	}

	cam := &Camera{ScreenWidth: opts.Size, ScreenHeight: opts.Size}
	bb := b.Bounds()
	if bb.IsEmpty() {
		bb = pcb.BoundingBox{Max: geometry.Pt(b.Width, b.Height)}
	}
	cam.FitBounds(bb, opts.Margin)

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.ClearWithColor(gg.FromColor(ColorBackground))
	dc.SetLineCap(gg.LineCapRound)

	// Back to front so F.Cu ends up on top.
	strokes := 0
	for layer := b.Layers - 1; layer >= 0; layer-- {
		if !opts.shows(layer) {
			continue
		}
		dc.SetColor(LayerColor(layer, b.Layers))
		for _, tr := range b.TracesOnLayer(layer) {
			if len(tr.Segments) == 0 {
				continue
			}
			dc.SetLineWidth(cam.Length(tr.Segments[0].Width))
			dc.MoveTo(cam.WorldToScreen(tr.Segments[0].Start))
			for _, seg := range tr.Segments {
				dc.LineTo(cam.WorldToScreen(seg.End))
			}
			if err := dc.Stroke(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("layer %d: %w", layer, err)
			}
			strokes++
		}
	}

	for _, v := range b.Vias {
		x, y := cam.WorldToScreen(v.Position)
		dc.SetColor(ColorVia)
		dc.DrawCircle(x, y, cam.Length(v.Size/2))
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, err
		}
		dc.SetColor(ColorBackground)
		dc.DrawCircle(x, y, cam.Length(v.DrillSize/2))
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	// Pads are ovals: a round-capped stroke as wide as the short side.
	dc.SetColor(ColorPad)
	for _, p := range b.Pads {
		long, short := p.XSize, p.YSize
		half := geometry.Pt((long-short)/2, 0)
		if short > long {
			long, short = short, long
			half = geometry.Pt(0, (long-short)/2)
		}
		dc.SetLineWidth(cam.Length(short))
		dc.MoveTo(cam.WorldToScreen(p.Position.Sub(half)))
		dc.LineTo(cam.WorldToScreen(p.Position.Add(half)))
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	if opts.Markers {
		dc.SetColor(ColorMarker)
		dc.SetLineWidth(1)
		for _, m := range b.Markers {
			x, y := cam.WorldToScreen(m.Position)
			dc.DrawCircle(x, y, cam.Length(m.Radius))
			if err := dc.Stroke(); err != nil {
				dc.Close()
				return nil, err
			}
		}
	}

	logger.L().Debug("board rendered",
		"size", opts.Size, "zoom_px_per_m", cam.Zoom, "traces", strokes, "vias", len(b.Vias))
	return dc, nil
}
