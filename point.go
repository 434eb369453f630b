package draft

import "math"

// Point represents a 2D point or vector in drawing units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Offset returns p translated by (dx, dy).
func (p Point) Offset(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Polar returns the point at distance dist from p in direction deg,
// measured in degrees counter-clockwise from the positive x axis.
func (p Point) Polar(deg, dist float64) Point {
	rad := Radians(deg)
	return Point{X: p.X + dist*math.Cos(rad), Y: p.Y + dist*math.Sin(rad)}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return p.Lerp(q, 0.5)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// AcrossFlats returns the across-flats width of a regular hexagon with the
// given side length.
func AcrossFlats(side float64) float64 {
	return side * math.Sqrt(3)
}

// AcrossCorners returns the across-corners width of a regular hexagon with
// the given side length.
func AcrossCorners(side float64) float64 {
	return 2 * side
}
