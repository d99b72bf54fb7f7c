package render

import (
	"math"

	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// Camera maps board meters to image pixels.
type Camera struct {
	// Center position in board coordinates (m)
	CenterX float64
	CenterY float64

	// Pixels per meter
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// FitBounds centers the camera on bb and zooms so it fills the screen minus
// margin pixels on every side.
func (c *Camera) FitBounds(bb pcb.BoundingBox, margin int) {
	center := bb.Center()
	c.CenterX, c.CenterY = center.X, center.Y

	availW := float64(c.ScreenWidth - 2*margin)
	availH := float64(c.ScreenHeight - 2*margin)
	w, h := bb.Width(), bb.Height()
	if w <= 0 || h <= 0 || availW <= 0 || availH <= 0 {
		c.Zoom = 1
		return
	}
	c.Zoom = math.Min(availW/w, availH/h)
}

// WorldToScreen converts board coordinates to pixels. Board Y points up,
// image Y points down.
func (c *Camera) WorldToScreen(p geometry.Point) (float64, float64) {
	x := (p.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2
	y := -(p.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2
	return x, y
}

// Length converts a board length to pixels, never thinner than one pixel.
func (c *Camera) Length(l float64) float64 {
	return math.Max(1, l*c.Zoom)
}
