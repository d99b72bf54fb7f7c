package quantity

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// Value binds a float64 to a command-line flag that accepts units.
// It satisfies the pflag Value interface.
type Value struct {
	p   *float64
	dim Dimension
}

// NewValue returns a flag value writing to p.
func NewValue(p *float64, dim Dimension) *Value {
	return &Value{p: p, dim: dim}
}

func (v *Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatFloat(*v.p, 'g', -1, 64)
}

// Set parses s and stores the SI value.
func (v *Value) Set(s string) error {
	f, err := Parse(s, v.dim)
	if err != nil {
		return err
	}
	*v.p = f
	return nil
}

// Type names the dimension in flag help.
func (v *Value) Type() string { return v.dim.String() }

// VectorValue binds an r3.Vec to a flag accepting "(x, y, z)".
type VectorValue struct {
	p   *r3.Vec
	dim Dimension
}

// NewVectorValue returns a flag value writing to p.
func NewVectorValue(p *r3.Vec, dim Dimension) *VectorValue {
	return &VectorValue{p: p, dim: dim}
}

func (v *VectorValue) String() string {
	if v.p == nil {
		return "(0, 0, 0)"
	}
	return fmt.Sprintf("(%g, %g, %g)", v.p.X, v.p.Y, v.p.Z)
}

// Set parses s and stores the SI vector.
func (v *VectorValue) Set(s string) error {
	vec, err := ParseVector(s, v.dim)
	if err != nil {
		return err
	}
	*v.p = vec
	return nil
}

// Type names the dimension in flag help.
func (v *VectorValue) Type() string { return v.dim.String() + "-vector" }
