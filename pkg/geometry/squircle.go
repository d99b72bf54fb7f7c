package geometry

import "math"

// squarenessEpsilon is the squareness below which the projection is treated
// as a plain circle.
const squarenessEpsilon = 1e-6

// SquircleProject maps the polar coordinate (r, theta) through the
// Fernández-Guasti squircle deformation and scales the result per axis.
//
// Squareness 0 is a circle of radius r (an ellipse once scaled); as it
// approaches 1 the curve tends to the square inscribing that circle.
// See https://en.wikipedia.org/wiki/Squircle#Fern%C3%A1ndez-Guasti_squircle.
func SquircleProject(squareness, r, theta, xScale, yScale float64) Point {
	rho := r
	if squareness > squarenessEpsilon {
		// rho = r·√2/|u| · sqrt(1 - sqrt(1 - u²)) with u = s·sin2θ, rewritten
		// as r·sqrt(2 / (1 + sqrt(1 - u²))) so the axes (u = 0) stay finite.
		u := squareness * math.Sin(2*theta)
		rho = r * math.Sqrt(2/(1+math.Sqrt(1-u*u)))
	}
	return Point{
		X: xScale * rho * math.Cos(theta),
		Y: yScale * rho * math.Sin(theta),
	}
}

// ProjectPoint projects a point given relative to the spiral center.
func ProjectPoint(squareness float64, p Point, xScale, yScale float64) Point {
	r, theta := Polar(p.X, p.Y)
	return SquircleProject(squareness, r, theta, xScale, yScale)
}

// PlacePointsOnCircle spaces n points evenly on a circle, starting at
// startAngle. The radius grows beyond minRadius when needed so that adjacent
// points are at least minDistance apart.
func PlacePointsOnCircle(n int, minRadius, minDistance, startAngle float64) []Point {
	separation := 0.0
	radius := minRadius
	if n >= 2 {
		separation = 2 * math.Pi / float64(n)
		required := minDistance / (2 * math.Sin(separation/2))
		radius = math.Max(minRadius, required)
	}

	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		theta := startAngle + float64(i)*separation
		points = append(points, Pt(radius*math.Cos(theta), radius*math.Sin(theta)))
	}
	return points
}
