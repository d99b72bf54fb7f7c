package render

import (
	"image/color"

	"github.com/OpenTraceLab/magnetorquer/pkg/kicad/footprint"
)

// KiCad Classic theme copper colors, keyed by layer name.
var classicCopper = map[string]color.NRGBA{
	"F.Cu":   {R: 200, G: 52, B: 52, A: 255},   // Front copper (red)
	"B.Cu":   {R: 77, G: 127, B: 196, A: 255},  // Back copper (blue)
	"In1.Cu": {R: 127, G: 200, B: 127, A: 255}, // Inner layer 1
	"In2.Cu": {R: 206, G: 125, B: 44, A: 255},  // Inner layer 2
}

// innerCycle colors inner layers past In2.
var innerCycle = []color.NRGBA{
	{R: 127, G: 200, B: 127, A: 255},
	{R: 206, G: 125, B: 44, A: 255},
	{R: 79, G: 203, B: 203, A: 255},
	{R: 219, G: 98, B: 139, A: 255},
	{R: 167, G: 165, B: 198, A: 255},
	{R: 40, G: 204, B: 217, A: 255},
}

// Special colors
var (
	ColorBackground = color.NRGBA{R: 0, G: 16, B: 35, A: 255}     // Background (dark blue)
	ColorVia        = color.NRGBA{R: 236, G: 236, B: 236, A: 255} // Via (light gray)
	ColorPad        = color.NRGBA{R: 227, G: 183, B: 46, A: 255}  // SMD pad (gold)
	ColorMarker     = color.NRGBA{R: 255, G: 38, B: 226, A: 255}  // Touch point marker (magenta)
)

// LayerColor returns the copper color for a layer index in a stack of total
// layers. Unknown layers get the last inner color.
func LayerColor(index, total int) color.NRGBA {
	name, err := footprint.LayerName(index, total)
	if err != nil {
		return innerCycle[len(innerCycle)-1]
	}
	if c, ok := classicCopper[name]; ok {
		return c
	}
	return innerCycle[(index-1)%len(innerCycle)]
}
