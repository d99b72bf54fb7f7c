package footprint

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/sexp"
)

// Summary describes the copper in a footprint file. Lengths are millimeters.
type Summary struct {
	Name          string
	Pads          int            // SMD pads
	Vias          int            // Through-hole pads
	LinesPerLayer map[string]int // fp_line count per layer
	LengthByLayer map[string]float64
	CopperLength  float64 // Total fp_line length on copper layers
}

// Layers returns the layers carrying lines, in name order.
func (s *Summary) Layers() []string {
	layers := make([]string, 0, len(s.LinesPerLayer))
	for l := range s.LinesPerLayer {
		layers = append(layers, l)
	}
	slices.Sort(layers)
	return layers
}

// ReadSummary parses a footprint and counts its pads, vias and lines.
func ReadSummary(r io.Reader) (*Summary, error) {
	nodes, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty footprint file")
	}
	root := nodes[0]
	if k := root.Key(); k != "footprint" && k != "module" {
		return nil, fmt.Errorf("expected (footprint ...), got %q", k)
	}

	s := &Summary{
		LinesPerLayer: make(map[string]int),
		LengthByLayer: make(map[string]float64),
	}
	if s.Name, err = root.Arg(0); err != nil {
		return nil, fmt.Errorf("footprint name: %w", err)
	}

	for _, pad := range root.Children("pad") {
		kind, err := pad.Arg(1)
		if err != nil {
			return nil, fmt.Errorf("pad: %w", err)
		}
		switch kind {
		case "smd":
			s.Pads++
		case "thru_hole":
			s.Vias++
		}
	}

	for i, line := range root.Children("fp_line") {
		layer, err := line.Child("layer").Arg(0)
		if err != nil {
			return nil, fmt.Errorf("fp_line %d: layer: %w", i, err)
		}
		x0, y0, err := line.Child("start").XY()
		if err != nil {
			return nil, fmt.Errorf("fp_line %d: start: %w", i, err)
		}
		x1, y1, err := line.Child("end").XY()
		if err != nil {
			return nil, fmt.Errorf("fp_line %d: end: %w", i, err)
		}
		length := math.Hypot(x1-x0, y1-y0)
		s.LinesPerLayer[layer]++
		s.LengthByLayer[layer] += length
		if isCopper(layer) {
			s.CopperLength += length
		}
	}
	return s, nil
}

func isCopper(layer string) bool {
	return len(layer) > 3 && layer[len(layer)-3:] == ".Cu"
}
