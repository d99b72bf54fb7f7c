package spiral

import (
	"fmt"
	"math"
	"slices"

	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/pkg/geometry"
	"github.com/OpenTraceLab/magnetorquer/pkg/pcb"
)

// DefaultAngleStep is the polyline angular resolution used when a Layout
// leaves AngleStep at zero.
const DefaultAngleStep = 0.05

// DefaultNetName names the coil net when Layout.NetName is empty.
const DefaultNetName = "coil"

// markerRadius is the size of the diagnostic touch point markers.
const markerRadius = 0.5e-3

// Layout describes the coil outline. Lengths are meters, angles radians.
type Layout struct {
	Center             geometry.Point // Coil center
	Squareness         float64        // Squircle squareness in [0, 1)
	XRadius            float64        // Outer extent along X
	YRadius            float64        // Outer extent along Y
	InnerRadius        float64        // Radius of the inner via ring
	PadAngle           float64        // Angle of the terminal pads
	TraceWidthExponent float64        // Passed to the width policy
	AngleStep          float64        // Polyline resolution; zero means DefaultAngleStep
	NetName            string         // Zero means DefaultNetName
	Width              WidthPolicy    // Nil means ConstantWidth
}

// GenerateSpiralTrace routes one coil net through every layer of b.
//
// An odd layer count is rounded down and b.Layers is updated to the value
// actually routed. The vias, the two terminal pads, the touch point markers
// and the finished net are appended to b. On error b is left unchanged.
func GenerateSpiralTrace(b *pcb.Board, l Layout) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidParameter)
	}
	if err := b.Constraints.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if l.AngleStep == 0 {
		l.AngleStep = DefaultAngleStep
	}
	if l.NetName == "" {
		l.NetName = DefaultNetName
	}
	if !(l.AngleStep > 0) || math.IsInf(l.AngleStep, 1) {
		return fmt.Errorf("%w: angle step %g must be positive and finite", ErrInvalidParameter, l.AngleStep)
	}
	if !(l.Squareness >= 0 && l.Squareness < 1) {
		return fmt.Errorf("%w: squareness %g outside [0, 1)", ErrInvalidParameter, l.Squareness)
	}
	if !l.Center.IsFinite() {
		return fmt.Errorf("%w: center %+v is not finite", ErrInvalidParameter, l.Center)
	}
	if math.IsNaN(l.PadAngle) || math.IsInf(l.PadAngle, 0) {
		return fmt.Errorf("%w: pad angle %g is not finite", ErrInvalidParameter, l.PadAngle)
	}

	layers := 2 * (b.Layers / 2)
	if layers < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidParameter, b.Layers)
	}

	if !(l.XRadius > 0 && l.YRadius > 0) || math.IsInf(l.XRadius, 1) || math.IsInf(l.YRadius, 1) {
		return fmt.Errorf("%w: radii (%g, %g) must be positive and finite", ErrInvalidParameter, l.XRadius, l.YRadius)
	}
	radius := math.Min(l.XRadius, l.YRadius)
	xScale, yScale := l.XRadius/radius, l.YRadius/radius

	c := b.Constraints
	viaPitch := c.MinViaDiameter + c.TraceSpacing
	if viaPitch > 2*radius {
		return fmt.Errorf("%w: via pitch %g does not fit radius %g", ErrInvalidParameter, viaPitch, radius)
	}
	if !(l.InnerRadius > 0) || !(l.InnerRadius+2*viaPitch < radius-2*viaPitch) {
		return fmt.Errorf("%w: inner radius %g leaves no room for a spiral inside radius %g", ErrInvalidParameter, l.InnerRadius, radius)
	}
	padOffset := 2 * math.Asin(viaPitch/radius/2)

	n := layers / 2
	ringSpacing := 2 * viaPitch
	inner := ring{
		vias:    geometry.PlacePointsOnCircle(n, l.InnerRadius, ringSpacing, l.PadAngle),
		touches: geometry.PlacePointsOnCircle(n, l.InnerRadius+ringSpacing, ringSpacing, l.PadAngle),
	}
	outer := ring{
		vias:    geometry.PlacePointsOnCircle(n, radius, ringSpacing, l.PadAngle),
		touches: geometry.PlacePointsOnCircle(n, radius-ringSpacing, ringSpacing, l.PadAngle),
	}

	// The last outer via is the end terminal; shift it off the pad angle so it
	// does not land on the start terminal, then walk the ring from the end
	// terminal backwards.
	outer.vias[0] = onCircle(radius, l.PadAngle-padOffset)
	slices.Reverse(outer.vias)
	slices.Reverse(outer.touches)

	project := func(p geometry.Point) geometry.Point {
		return l.Center.Add(geometry.ProjectPoint(l.Squareness, p, xScale, yScale))
	}

	vias := make([]pcb.Via, 0, 2*n)
	for _, rv := range [][]geometry.Point{inner.vias, outer.vias} {
		for _, p := range rv {
			vias = append(vias, pcb.Via{Position: project(p), Size: c.MinViaDiameter, DrillSize: c.MinViaDrillSize})
		}
	}

	// The start terminal is not a via but departs like one.
	outer.vias = slices.Insert(outer.vias, 0, onCircle(radius, l.PadAngle+padOffset))

	markers := make([]pcb.Marker, 0, 2*n)
	for _, rt := range [][]geometry.Point{inner.touches, outer.touches} {
		for _, p := range rt {
			markers = append(markers, pcb.Marker{Position: project(p), Radius: markerRadius})
		}
	}

	pads := []pcb.Pad{
		{Index: 1, Position: project(outer.vias[0]), XSize: 2 * c.MinTraceWidth, YSize: c.MinTraceWidth},
		{Index: 2, Position: project(outer.vias[len(outer.vias)-1]), XSize: 2 * c.MinTraceWidth, YSize: c.MinTraceWidth},
	}

	logger.L().Debug("via rings placed",
		"layers", layers, "vias_per_ring", n, "radius", radius, "pad_offset", padOffset)

	net := pcb.Net{Name: l.NetName}
	rr := newRingRouter(outer, inner)
	for layer := 0; layer < layers; layer++ {
		thickness := c.TraceThicknessInnerLayers
		if layer == 0 || layer == layers-1 {
			thickness = c.TraceThicknessOuterLayers
		}

		// Every layer winds counter-clockwise so the layer moments add.
		params := ArcParams{
			Center:             l.Center,
			Squareness:         l.Squareness,
			TraceSpacing:       c.TraceSpacing,
			MaxTraceWidth:      c.MaxTraceWidth,
			MinTraceWidth:      c.MinTraceWidth,
			TraceWidthExponent: l.TraceWidthExponent,
			TraceThickness:     thickness,
			Chirality:          geometry.CCW,
			AngleStep:          l.AngleStep,
			XScale:             xScale,
			YScale:             yScale,
			Width:              l.Width,
		}

		lg := rr.leg()
		anchors := []geometry.Point{lg.departVia, lg.departTouch, lg.arriveTouch, lg.arriveVia}
		for i := 0; i+1 < len(anchors); i++ {
			trace, err := SquircleSpiral(l.Center.Add(anchors[i]), l.Center.Add(anchors[i+1]), params)
			if err != nil {
				return fmt.Errorf("layer %d arc %d: %w", layer, i, err)
			}
			trace.Layer = layer
			net.AddTrace(*trace)
		}
		rr.advance()
	}

	if err := net.CheckContinuity(pcb.ContinuityTolerance); err != nil {
		return fmt.Errorf("routed net is broken: %w", err)
	}

	if layers != b.Layers {
		logger.L().Info("odd layer count rounded down", "requested", b.Layers, "routed", layers)
		b.Layers = layers
	}
	for _, v := range vias {
		b.AddVia(v)
	}
	for _, m := range markers {
		b.AddMarker(m)
	}
	for _, p := range pads {
		b.AddPad(p)
	}
	b.AddNet(net)

	logger.L().Debug("coil routed",
		"traces", len(net.Traces), "segments", net.Segments(), "length_m", net.TotalLength())
	return nil
}

func onCircle(r, theta float64) geometry.Point {
	return geometry.Pt(r*math.Cos(theta), r*math.Sin(theta))
}
