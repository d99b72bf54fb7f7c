package spiral

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// WidthPolicy picks the copper width for an arc running from radius r0 to r1.
type WidthPolicy func(p ArcParams, r0, r1 float64) float64

// ConstantWidth gives every arc the minimum trace width.
//
// TODO: add a radius-dependent policy driven by TraceWidthExponent that
// widens outer turns toward MaxTraceWidth.
func ConstantWidth(p ArcParams, _, _ float64) float64 {
	return p.MinTraceWidth
}

// MaxArcSteps bounds the segment count of a single arc.
const MaxArcSteps = 1 << 20

// ArcParams controls the shape of a single arc. Lengths are meters and angles
// radians.
type ArcParams struct {
	Center             geometry.Point     // Spiral center
	Squareness         float64            // 0 for a circle, toward 1 for a square
	TraceSpacing       float64            // Radial clearance between windings
	MaxTraceWidth      float64            // Upper width bound
	MinTraceWidth      float64            // Lower width bound
	TraceWidthExponent float64            // Width-by-radius exponent, for Width policies
	TraceThickness     float64            // Copper thickness for every segment
	Chirality          geometry.Chirality // Turning direction
	AngleStep          float64            // Angular resolution of the polyline
	XScale             float64            // Stretch along X
	YScale             float64            // Stretch along Y
	Width              WidthPolicy        // Nil means ConstantWidth
}

func (p ArcParams) validate() error {
	switch {
	case !p.Chirality.Valid():
		return fmt.Errorf("%w: chirality %v is not cw or ccw", ErrInvalidParameter, p.Chirality)
	case !(p.Squareness >= 0 && p.Squareness < 1):
		return fmt.Errorf("%w: squareness %g outside [0, 1)", ErrInvalidParameter, p.Squareness)
	case !(p.AngleStep > 0) || math.IsInf(p.AngleStep, 1):
		return fmt.Errorf("%w: angle step %g must be positive and finite", ErrInvalidParameter, p.AngleStep)
	case !(p.XScale > 0 && p.YScale > 0):
		return fmt.Errorf("%w: scales (%g, %g) must be positive", ErrInvalidParameter, p.XScale, p.YScale)
	case !(p.TraceThickness > 0):
		return fmt.Errorf("%w: trace thickness %g must be positive", ErrInvalidParameter, p.TraceThickness)
	}
	return nil
}

func (p ArcParams) project(r, theta float64) geometry.Point {
	return p.Center.Add(geometry.SquircleProject(p.Squareness, r, theta, p.XScale, p.YScale))
}

// SquircleSpiral builds the arc from start to end around p.Center.
//
// The arc makes at least one full revolution, and more when the radial
// distance covered is large compared with one pitch (spacing plus width).
// Radius is interpolated linearly with angle, so before projection the path
// is an Archimedean spiral. The returned trace has no layer set.
func SquircleSpiral(start, end geometry.Point, p ArcParams) (*pcb.Trace, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if !start.IsFinite() || !end.IsFinite() || !p.Center.IsFinite() {
		return nil, fmt.Errorf("%w: arc from %+v to %+v around %+v is not finite", ErrInvalidParameter, start, end, p.Center)
	}
	widthFor := p.Width
	if widthFor == nil {
		widthFor = ConstantWidth
	}

	d0, d1 := start.Sub(p.Center), end.Sub(p.Center)
	r0, theta0 := geometry.Polar(d0.X, d0.Y)
	r1, theta1 := geometry.Polar(d1.X, d1.Y)

	width := widthFor(p, r0, r1)
	pitch := p.TraceSpacing + width
	if !(width > 0) || !(pitch > 0) {
		return nil, fmt.Errorf("%w: trace width %g and spacing %g give no pitch", ErrInvalidParameter, width, p.TraceSpacing)
	}

	radial := r1 - r0
	turns := math.Max(1, math.Floor(math.Abs(radial)/pitch))

	// The separation from the end angle back to the start angle is the part of
	// the last turn that is not swept, so the walk stops exactly on theta1.
	angularDifference := geometry.AngularSeparation(theta1, theta0, p.Chirality)
	totalAngle := 2*math.Pi*turns - angularDifference

	// Compared as floats: the count may not fit an int.
	n := math.Round(math.Abs(totalAngle / p.AngleStep))
	if !(n <= MaxArcSteps) {
		return nil, fmt.Errorf("%w: %g steps of %g rad over %g rad exceeds %d",
			ErrInvalidParameter, n, p.AngleStep, totalAngle, MaxArcSteps)
	}
	steps := max(1, int(n))
	dTheta := p.Chirality.Direction() * totalAngle / float64(steps)
	dR := radial / float64(steps)

	logger.L().Debug("squircle arc",
		"r0", r0, "r1", r1, "turns", turns, "sweep", totalAngle, "steps", steps)

	trace := &pcb.Trace{Segments: make([]pcb.TraceSegment, 0, steps)}
	prev := p.project(r0, theta0)
	for i := 1; i < steps; i++ {
		curr := p.project(r0+float64(i)*dR, theta0+float64(i)*dTheta)
		trace.AddSegment(pcb.TraceSegment{Start: prev, End: curr, Width: width, Thickness: p.TraceThickness})
		prev = curr
	}
	// Close on the exact end point rather than the last stepped sample.
	trace.AddSegment(pcb.TraceSegment{Start: prev, End: p.project(r1, theta1), Width: width, Thickness: p.TraceThickness})

	return trace, nil
}
