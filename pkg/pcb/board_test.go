package pcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConstraints() Constraints {
	return Constraints{
		MaxTraceWidth:             0.5e-3,
		MinTraceWidth:             0.2e-3,
		TraceThicknessOuterLayers: 35e-6,
		TraceThicknessInnerLayers: 17.5e-6,
		TraceSpacing:              0.2e-3,
		MinViaDrillSize:           0.3e-3,
		MinViaDiameter:            0.6e-3,
		MaxCurrent:                1,
	}
}

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Constraints)
		wantErr string
	}{
		{name: "valid", mutate: func(*Constraints) {}},
		{name: "zero spacing", mutate: func(c *Constraints) { c.TraceSpacing = 0 }, wantErr: "trace spacing"},
		{name: "negative current", mutate: func(c *Constraints) { c.MaxCurrent = -1 }, wantErr: "max current"},
		{name: "widths inverted", mutate: func(c *Constraints) { c.MinTraceWidth = 1e-3 }, wantErr: "exceeds max trace width"},
		{name: "drill too big", mutate: func(c *Constraints) { c.MinViaDrillSize = c.MinViaDiameter }, wantErr: "must be smaller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConstraints()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBoardCollections(t *testing.T) {
	b := NewBoard(0.1, 0.1, 1.6e-3, 4, validConstraints())

	n := Net{Name: "coil"}
	n.AddTrace(Trace{Layer: 0, Segments: []TraceSegment{seg(0, 0, 1, 0, 0.1, 0.1)}})
	n.AddTrace(Trace{Layer: 1, Segments: []TraceSegment{seg(1, 0, 1, 1, 0.1, 0.1)}})
	b.AddNet(n)
	b.AddVia(Via{Position: Point{X: 1}, Size: 0.6e-3, DrillSize: 0.3e-3})
	b.AddPad(Pad{Index: 1, XSize: 0.4e-3, YSize: 0.2e-3})
	b.AddMarker(Marker{Radius: 0.5e-3})

	require.NotNil(t, b.Net("coil"))
	assert.Nil(t, b.Net("missing"))
	assert.Len(t, b.TracesOnLayer(1), 1)
	assert.Empty(t, b.TracesOnLayer(3))
	assert.Len(t, b.Vias, 1)
	assert.Len(t, b.Pads, 1)
	assert.Len(t, b.Markers, 1)
}

func TestBounds(t *testing.T) {
	b := NewBoard(0.1, 0.1, 1.6e-3, 2, validConstraints())
	assert.True(t, b.Bounds().IsEmpty())

	b.AddNet(Net{Traces: []Trace{{Segments: []TraceSegment{seg(-1, -1, 1, 2, 0.2, 0.1)}}}})
	b.AddVia(Via{Position: Point{X: 3, Y: 0}, Size: 1, DrillSize: 0.5})

	bb := b.Bounds()
	require.False(t, bb.IsEmpty())
	assert.InDelta(t, -1.1, bb.Min.X, 1e-12)
	assert.InDelta(t, -1.1, bb.Min.Y, 1e-12)
	assert.InDelta(t, 3.5, bb.Max.X, 1e-12)
	assert.InDelta(t, 2.1, bb.Max.Y, 1e-12)
	assert.InDelta(t, 4.6, bb.Width(), 1e-12)
	assert.InDelta(t, 1.2, bb.Center().X, 1e-12)
}
