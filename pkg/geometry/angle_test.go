package geometry

import (
	"math"
	"testing"
)

const angleTol = 1e-9

func TestParseChirality(t *testing.T) {
	tests := []struct {
		input   string
		want    Chirality
		wantErr bool
	}{
		{input: "ccw", want: CCW},
		{input: "cw", want: CW},
		{input: "CCW", wantErr: true},
		{input: "", wantErr: true},
		{input: "left", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChirality(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseChirality(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChirality(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseChirality(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestAngularSeparation(t *testing.T) {
	pi := math.Pi
	tests := []struct {
		name       string
		start, end float64
		chirality  Chirality
		want       float64
	}{
		{"ccw quarter", 0, pi / 2, CCW, pi / 2},
		{"ccw half", 0, pi, CCW, pi},
		{"ccw seven eighths", 0, 7 * pi / 4, CCW, 7 * pi / 4},
		{"ccw full turn wraps to zero", 0, 2 * pi, CCW, 0},
		{"cw quarter", pi / 2, 0, CW, pi / 2},
		{"cw full turn wraps to zero", 2 * pi, 0, CW, 0},
		{"ccw backwards", pi / 4, 0, CCW, 2*pi - pi/4},
		{"ccw backwards half", pi, 0, CCW, pi},
		{"cw backwards", 0, pi / 4, CW, 2*pi - pi/4},
		{"cw backwards three quarters", 0, 3 * pi / 2, CW, pi / 2},
		{"ccw from quarter", pi / 2, pi / 4, CCW, 7 * pi / 4},
		{"ccw same angle", pi / 2, pi / 2, CCW, 0},
		{"ccw from quarter to full", pi / 2, 2 * pi, CCW, 3 * pi / 2},
		{"cw from negative", -pi / 2, pi / 4, CW, 5 * pi / 4},
		{"cw from negative to half", -pi / 2, pi, CW, pi / 2},
		{"cw from negative coincident", -pi / 2, 3 * pi / 2, CW, 0},
		{"cw from negative to full", -pi / 2, 2 * pi, CW, 3 * pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.start, tt.end, tt.chirality)
			if math.Abs(got-tt.want) > angleTol && math.Abs(got-tt.want-2*pi) > angleTol {
				t.Errorf("AngularSeparation(%v, %v, %v) = %v, want %v", tt.start, tt.end, tt.chirality, got, tt.want)
			}
		})
	}
}

func TestAngularSeparationProperties(t *testing.T) {
	var angles []float64
	for a := -3 * math.Pi; a <= 3*math.Pi; a += 0.37 {
		angles = append(angles, a)
	}

	for _, a := range angles {
		if got := AngularSeparation(a, a, CCW); got != 0 {
			t.Errorf("AngularSeparation(%v, %v, ccw) = %v, want 0", a, a, got)
		}
		if got := AngularSeparation(a, a+2*math.Pi, CCW); got > angleTol && 2*math.Pi-got > angleTol {
			t.Errorf("AngularSeparation(%v, %v+2π, ccw) = %v, want ≈0", a, a, got)
		}

		for _, b := range angles {
			for _, c := range []Chirality{CCW, CW} {
				got := AngularSeparation(a, b, c)
				if got < 0 || got >= 2*math.Pi {
					t.Fatalf("AngularSeparation(%v, %v, %v) = %v out of [0, 2π)", a, b, c, got)
				}
			}

			if cw, ccw := AngularSeparation(a, b, CW), AngularSeparation(b, a, CCW); cw != ccw {
				t.Errorf("cw(%v,%v) = %v, ccw(%v,%v) = %v", a, b, cw, b, a, ccw)
			}

			ab := AngularSeparation(a, b, CCW)
			ba := AngularSeparation(b, a, CCW)
			if ab == 0 || ba == 0 {
				continue
			}
			if math.Abs(ab+ba-2*math.Pi) > angleTol {
				t.Errorf("ccw(%v,%v) + ccw(%v,%v) = %v, want 2π", a, b, b, a, ab+ba)
			}
		}
	}
}

func TestPolar(t *testing.T) {
	r, theta := Polar(0, 2)
	if math.Abs(r-2) > angleTol || math.Abs(theta-math.Pi/2) > angleTol {
		t.Errorf("Polar(0, 2) = (%v, %v), want (2, π/2)", r, theta)
	}

	r, theta = Polar(-1, 0)
	if math.Abs(r-1) > angleTol || math.Abs(theta-math.Pi) > angleTol {
		t.Errorf("Polar(-1, 0) = (%v, %v), want (1, π)", r, theta)
	}
}
