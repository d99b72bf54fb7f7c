package geometry

import (
	"math"
	"testing"
)

func TestSquircleProjectCircle(t *testing.T) {
	for theta := -math.Pi; theta <= math.Pi; theta += 0.1 {
		got := SquircleProject(0, 2, theta, 1.5, 0.5)
		want := Pt(1.5*2*math.Cos(theta), 0.5*2*math.Sin(theta))
		if got != want {
			t.Fatalf("SquircleProject(0, 2, %v) = %+v, want %+v", theta, got, want)
		}
	}
}

func TestSquircleProjectAxesAreFinite(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2} {
		got := SquircleProject(0.9, 1, theta, 1, 1)
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.X, 0) || math.IsInf(got.Y, 0) {
			t.Fatalf("SquircleProject(0.9, 1, %v) = %+v, want finite", theta, got)
		}
		if r := math.Hypot(got.X, got.Y); math.Abs(r-1) > 1e-12 {
			t.Errorf("radius on axis %v = %v, want 1", theta, r)
		}
	}
}

func TestSquircleProjectCornerApproachesSquare(t *testing.T) {
	tests := []struct {
		squareness float64
		wantRadius float64
	}{
		{squareness: 0, wantRadius: 1},
		{squareness: 0.5, wantRadius: math.Sqrt(2 / (1 + math.Sqrt(0.75)))},
		{squareness: 0.999999, wantRadius: math.Sqrt2},
	}

	for _, tt := range tests {
		got := SquircleProject(tt.squareness, 1, math.Pi/4, 1, 1)
		if r := math.Hypot(got.X, got.Y); math.Abs(r-tt.wantRadius) > 2e-3 {
			t.Errorf("corner radius for squareness %v = %v, want %v", tt.squareness, r, tt.wantRadius)
		}
	}
}

func TestProjectPoint(t *testing.T) {
	p := Pt(0.3, -0.4)
	got := ProjectPoint(0, p, 1, 1)
	if !got.ApproxEqual(p, 1e-12) {
		t.Errorf("ProjectPoint(0, %+v) = %+v, want identity", p, got)
	}
}

func TestPlacePointsOnCircle(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		minRadius  float64
		minDist    float64
		wantRadius float64
	}{
		{name: "single point keeps radius", n: 1, minRadius: 0.01, minDist: 1, wantRadius: 0.01},
		{name: "spacing satisfied", n: 4, minRadius: 1, minDist: 0.5, wantRadius: 1},
		{name: "radius grows for spacing", n: 2, minRadius: 0.1, minDist: 1, wantRadius: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := PlacePointsOnCircle(tt.n, tt.minRadius, tt.minDist, math.Pi/3)
			if len(points) != tt.n {
				t.Fatalf("got %d points, want %d", len(points), tt.n)
			}
			for i, p := range points {
				r, _ := Polar(p.X, p.Y)
				if math.Abs(r-tt.wantRadius) > 1e-12 {
					t.Errorf("point %d radius = %v, want %v", i, r, tt.wantRadius)
				}
			}
			_, theta := Polar(points[0].X, points[0].Y)
			if math.Abs(theta-math.Pi/3) > 1e-12 {
				t.Errorf("first point angle = %v, want π/3", theta)
			}
			for i := 1; i < len(points); i++ {
				if d := points[i].Distance(points[i-1]); d < tt.minDist-1e-12 {
					t.Errorf("points %d and %d are %v apart, want >= %v", i-1, i, d, tt.minDist)
				}
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Pt(4, 6)

	if got := b.Sub(a).Add(a); got != b {
		t.Errorf("Sub/Add round trip = %+v, want %+v", got, b)
	}
	if got := Pt(0, 0).Distance(Pt(3, 4)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Pt(0, 0).Midpoint(Pt(2, 4)); got != Pt(1, 2) {
		t.Errorf("Midpoint = %+v, want (1, 2)", got)
	}
	if got := FromVec(a.Vec()); got != a {
		t.Errorf("FromVec(Vec()) = %+v, want %+v", got, a)
	}
}

func TestPointIsFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Pt(0, 0), true},
		{"nan x", Pt(math.NaN(), 0), false},
		{"inf y", Pt(0, math.Inf(-1)), false},
		{"nan z", Point{Z: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
