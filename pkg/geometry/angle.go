package geometry

import (
	"fmt"
	"math"
)

// Chirality is the rotational sense a spiral winds in.
type Chirality int

const (
	// CCW winds counter-clockwise: increasing angle is forward progress.
	CCW Chirality = iota + 1
	// CW winds clockwise: decreasing angle is forward progress.
	CW
)

// ParseChirality accepts "ccw" or "cw".
func ParseChirality(s string) (Chirality, error) {
	switch s {
	case "ccw":
		return CCW, nil
	case "cw":
		return CW, nil
	default:
		return 0, fmt.Errorf("chirality must be \"cw\" or \"ccw\", got %q", s)
	}
}

// Valid reports whether c is one of the two turning directions.
func (c Chirality) Valid() bool {
	return c == CCW || c == CW
}

// Direction is +1 for CCW and -1 for CW.
func (c Chirality) Direction() float64 {
	if c == CW {
		return -1
	}
	return 1
}

func (c Chirality) String() string {
	switch c {
	case CCW:
		return "ccw"
	case CW:
		return "cw"
	default:
		return fmt.Sprintf("Chirality(%d)", int(c))
	}
}

// AngularSeparation returns the angle swept going from start to end in the
// direction given by chirality. The result is in [0, 2π): zero means the
// angles coincide, values near 2π mean almost a full turn is needed.
func AngularSeparation(start, end float64, chirality Chirality) float64 {
	sep := end - start
	if chirality == CW {
		sep = -sep
	}
	for sep >= 2*math.Pi {
		sep -= 2 * math.Pi
	}
	for sep < 0 {
		sep += 2 * math.Pi
	}
	return sep
}
