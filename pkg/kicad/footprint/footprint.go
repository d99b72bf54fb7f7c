// Package footprint serializes a generated board as a KiCad footprint
// (.kicad_mod) and summarizes existing footprint files.
package footprint

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/sexp"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// Version is the KiCad 6 footprint file format version.
const Version = 20211014

// MaxLayers is the largest copper stack KiCad supports.
const MaxLayers = 32

// DefaultName is used when Options.Name is empty.
const DefaultName = "Magnetorquer"

// Options control footprint output.
type Options struct {
	Name    string         // Footprint name, also the value text
	Origin  geometry.Point // Board point placed at the footprint origin
	Markers bool           // Emit touch point markers on F.Fab
}

// LayerName maps a copper layer index to its KiCad name.
func LayerName(index, total int) (string, error) {
	if total < 1 || total > MaxLayers {
		return "", fmt.Errorf("only 1-%d copper layers are supported, got %d", MaxLayers, total)
	}
	switch {
	case index == 0:
		return "F.Cu", nil
	case index == total-1:
		return "B.Cu", nil
	case index > 0 && index < total-1:
		return fmt.Sprintf("In%d.Cu", index), nil
	default:
		return "", fmt.Errorf("invalid layer index %d for %d layers", index, total)
	}
}

// writer accumulates elements and numbers their tstamps.
type writer struct {
	name    string
	origin  geometry.Point
	ordinal int
}

// tstamp derives a stable UUID from the footprint name and element ordinal,
// so the same board always yields the same file.
func (w *writer) tstamp() *sexp.Node {
	w.ordinal++
	id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s/%d", w.name, w.ordinal))
	return sexp.L("tstamp", sexp.Sym(id.String()))
}

// xy converts board meters to footprint millimeters with Y pointing down.
func (w *writer) xy(key string, p geometry.Point) *sexp.Node {
	d := p.Sub(w.origin)
	return sexp.L(key, mm(d.X), mm(-d.Y))
}

func mm(v float64) *sexp.Node { return sexp.Num(v * 1000) }

func text(kind, value string, y float64, tstamp *sexp.Node) *sexp.Node {
	return sexp.L("fp_text", sexp.Sym(kind), sexp.Str(value),
		sexp.L("at", sexp.Num(0), sexp.Num(y)),
		sexp.L("layer", sexp.Str("F.Fab")),
		sexp.L("effects", sexp.L("font", sexp.L("size", sexp.Num(1), sexp.Num(1)), sexp.L("thickness", sexp.Num(0.15)))),
		tstamp,
	)
}

func fabCircle(center, end *sexp.Node, tstamp *sexp.Node) *sexp.Node {
	return sexp.L("fp_circle", center, end,
		sexp.L("stroke", sexp.L("width", sexp.Num(0.1)), sexp.L("type", sexp.Sym("default"))),
		sexp.L("fill", sexp.Sym("none")),
		sexp.L("layer", sexp.Str("F.Fab")),
		tstamp,
	)
}

// Build returns the footprint document for b.
func Build(b *pcb.Board, opts Options) (*sexp.Node, error) {
	if b == nil {
		return nil, errors.New("nil board")
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if _, err := LayerName(0, b.Layers); err != nil {
		return nil, err
	}

	w := &writer{name: opts.Name, origin: opts.Origin}
	doc := sexp.L("footprint", sexp.Str(opts.Name),
		sexp.L("version", sexp.Int(Version)),
		sexp.L("generator", sexp.Sym("mtq")),
		sexp.L("layer", sexp.Str("F.Cu")),
		sexp.L("attr", sexp.Sym("through_hole"), sexp.Sym("allow_missing_courtyard")),
		text("reference", "REF**", 0, w.tstamp()),
		text("value", opts.Name, -1.5, w.tstamp()),
		fabCircle(sexp.L("center", sexp.Num(0), sexp.Num(0)), sexp.L("end", sexp.Num(1), sexp.Num(0)), w.tstamp()),
	)

	for _, pad := range b.Pads {
		doc.Add(sexp.L("pad", sexp.Str(fmt.Sprint(pad.Index)), sexp.Sym("smd"), sexp.Sym("oval"),
			w.xy("at", pad.Position),
			sexp.L("size", mm(pad.XSize), mm(pad.YSize)),
			sexp.L("layers", sexp.Str("F.Cu"), sexp.Str("F.Paste"), sexp.Str("F.Mask")),
			w.tstamp(),
		))
	}

	lines := 0
	for _, net := range b.Nets {
		for _, trace := range net.Traces {
			layer, err := LayerName(trace.Layer, b.Layers)
			if err != nil {
				return nil, fmt.Errorf("net %q: %w", net.Name, err)
			}
			for _, seg := range trace.Segments {
				doc.Add(sexp.L("fp_line",
					w.xy("start", seg.Start),
					w.xy("end", seg.End),
					sexp.L("layer", sexp.Str(layer)),
					sexp.L("width", mm(seg.Width)),
					w.tstamp(),
				))
				lines++
			}
		}
	}

	for _, via := range b.Vias {
		doc.Add(sexp.L("pad", sexp.Str(""), sexp.Sym("thru_hole"), sexp.Sym("circle"),
			w.xy("at", via.Position),
			sexp.L("size", mm(via.Size), mm(via.Size)),
			sexp.L("drill", mm(via.DrillSize)),
			sexp.L("layers", sexp.Str("*.Cu")),
			w.tstamp(),
		))
	}

	if opts.Markers {
		for _, m := range b.Markers {
			edge := m.Position.Add(geometry.Pt(m.Radius, 0))
			doc.Add(fabCircle(w.xy("center", m.Position), w.xy("end", edge), w.tstamp()))
		}
	}

	logger.L().Debug("footprint built",
		"name", opts.Name, "pads", len(b.Pads), "vias", len(b.Vias), "lines", lines)
	return doc, nil
}

// Write serializes b as a footprint to out.
func Write(out io.Writer, b *pcb.Board, opts Options) error {
	doc, err := Build(b, opts)
	if err != nil {
		return err
	}
	return sexp.Write(out, doc)
}

// WriteFile writes the footprint to path, replacing any existing file.
func WriteFile(path string, b *pcb.Board, opts Options) (err error) {
	doc, err := Build(b, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create footprint: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close footprint: %w", cerr)
		}
	}()
	if err := sexp.Write(f, doc); err != nil {
		return fmt.Errorf("failed to write footprint: %w", err)
	}
	return nil
}
