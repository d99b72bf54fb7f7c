// Package quantity parses physical quantities written with SI or common PCB
// units ("0.2mm", "1oz", "50uT", "90deg") into SI values.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dimension is the physical dimension a quantity is expected to have.
type Dimension int

const (
	Length Dimension = iota
	FluxDensity
	Voltage
	Current
	Angle
)

func (d Dimension) String() string {
	switch d {
	case Length:
		return "length"
	case FluxDensity:
		return "flux-density"
	case Voltage:
		return "voltage"
	case Current:
		return "current"
	case Angle:
		return "angle"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

var (
	// ErrUnknownUnit is returned for a unit this package does not know.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDimension is returned when a unit has the wrong dimension.
	ErrDimension = errors.New("unit has wrong dimension")
)

type unit struct {
	dim    Dimension
	factor float64
}

var units = map[string]unit{
	"m":   {Length, 1},
	"mm":  {Length, 1e-3},
	"um":  {Length, 1e-6},
	"µm":  {Length, 1e-6},
	"μm":  {Length, 1e-6},
	"mil": {Length, 25.4e-6},
	"in":  {Length, 25.4e-3},
	"oz":  {Length, 35e-6}, // copper weight per square foot

	"T":  {FluxDensity, 1},
	"mT": {FluxDensity, 1e-3},
	"uT": {FluxDensity, 1e-6},
	"µT": {FluxDensity, 1e-6},
	"μT": {FluxDensity, 1e-6},
	"nT": {FluxDensity, 1e-9},
	"G":  {FluxDensity, 1e-4},

	"V":  {Voltage, 1},
	"mV": {Voltage, 1e-3},

	"A":  {Current, 1},
	"mA": {Current, 1e-3},

	"rad": {Angle, 1},
	"deg": {Angle, math.Pi / 180},
}

// scalar is the grammar for "<number>[unit]".
type scalar struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Unit?"`
}

// vector is the grammar for "(q, q, q)"; the parentheses are optional.
type vector struct {
	Open bool    `parser:"@LParen?"`
	X    *scalar `parser:"@@"`
	Y    *scalar `parser:"Comma @@"`
	Z    *scalar `parser:"Comma @@"`
	Shut bool    `parser:"@RParen?"`
}

var (
	buildOnce    sync.Once
	scalarParser *participle.Parser[scalar]
	vectorParser *participle.Parser[vector]
	buildErr     error
)

func parsers() (*participle.Parser[scalar], *participle.Parser[vector], error) {
	buildOnce.Do(func() {
		scalarParser, buildErr = participle.Build[scalar](
			participle.Lexer(quantityLexer),
			participle.Elide("Whitespace"),
		)
		if buildErr != nil {
			buildErr = fmt.Errorf("failed to build quantity parser: %w", buildErr)
			return
		}
		vectorParser, buildErr = participle.Build[vector](
			participle.Lexer(quantityLexer),
			participle.Elide("Whitespace"),
		)
		if buildErr != nil {
			buildErr = fmt.Errorf("failed to build vector parser: %w", buildErr)
		}
	})
	return scalarParser, vectorParser, buildErr
}

func (s *scalar) si(dim Dimension) (float64, error) {
	if s.Unit == "" {
		return s.Value, nil
	}
	u, ok := units[s.Unit]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, s.Unit)
	}
	if u.dim != dim {
		return 0, fmt.Errorf("%w: %q is %v, want %v", ErrDimension, s.Unit, u.dim, dim)
	}
	return s.Value * u.factor, nil
}

// Parse converts text to an SI value of dimension dim. A bare number is
// taken as already SI.
func Parse(text string, dim Dimension) (float64, error) {
	sp, _, err := parsers()
	if err != nil {
		return 0, err
	}
	s, err := sp.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse error: %w", err)
	}
	return s.si(dim)
}

// ParseVector converts "(x, y, z)" to an SI vector. Each component may carry
// its own unit.
func ParseVector(text string, dim Dimension) (r3.Vec, error) {
	_, vp, err := parsers()
	if err != nil {
		return r3.Vec{}, err
	}
	v, err := vp.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return r3.Vec{}, fmt.Errorf("parse error: %w", err)
	}
	if v.Open != v.Shut {
		return r3.Vec{}, fmt.Errorf("parse error: unbalanced parentheses in %q", text)
	}
	var out [3]float64
	for i, s := range []*scalar{v.X, v.Y, v.Z} {
		if out[i], err = s.si(dim); err != nil {
			return r3.Vec{}, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
}
