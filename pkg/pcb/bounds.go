package pcb

import "math"

// BoundingBox is an axis-aligned rectangle in board coordinates.
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates an empty bounding box.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether nothing has been added to the box.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand grows the box to include p.
func (bb *BoundingBox) Expand(p Point) {
	bb.Min.X = math.Min(bb.Min.X, p.X)
	bb.Min.Y = math.Min(bb.Min.Y, p.Y)
	bb.Max.X = math.Max(bb.Max.X, p.X)
	bb.Max.Y = math.Max(bb.Max.Y, p.Y)
}

// expandSquare grows the box to include a rectangle of half-sizes rx, ry around p.
func (bb *BoundingBox) expandSquare(p Point, rx, ry float64) {
	bb.Expand(Point{X: p.X - rx, Y: p.Y - ry})
	bb.Expand(Point{X: p.X + rx, Y: p.Y + ry})
}

// Width returns the X extent.
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the Y extent.
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the middle of the box.
func (bb BoundingBox) Center() Point {
	return Point{X: (bb.Min.X + bb.Max.X) / 2, Y: (bb.Min.Y + bb.Max.Y) / 2}
}

// Bounds returns the box enclosing all copper, vias and pads, including
// trace half-widths and via radii.
func (b *Board) Bounds() BoundingBox {
	bb := NewBoundingBox()

	for _, n := range b.Nets {
		for _, t := range n.Traces {
			for _, seg := range t.Segments {
				half := seg.Width / 2
				bb.expandSquare(seg.Start, half, half)
				bb.expandSquare(seg.End, half, half)
			}
		}
	}

	for _, v := range b.Vias {
		bb.expandSquare(v.Position, v.Size/2, v.Size/2)
	}

	for _, p := range b.Pads {
		bb.expandSquare(p.Position, p.XSize/2, p.YSize/2)
	}

	return bb
}
