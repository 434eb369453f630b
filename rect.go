package draft

import "math"

// Rect is an axis-aligned extent with Min at the lower-left corner and Max
// at the upper-right corner.
//
// The zero Rect is the degenerate extent at the origin. Use EmptyRect as
// the identity element when accumulating a union.
type Rect struct {
	Min, Max Point
}

// R returns the Rect spanned by two opposite corners in any order.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Min: Point{X: math.Min(x0, x1), Y: math.Min(y0, y1)},
		Max: Point{X: math.Max(x0, x1), Y: math.Max(y0, y1)},
	}
}

// RectAround returns the Rect of the given half width and half height
// centered on c.
func RectAround(c Point, halfW, halfH float64) Rect {
	return R(c.X-halfW, c.Y-halfH, c.X+halfW, c.Y+halfH)
}

// EmptyRect returns an extent that contains nothing. Its union with any
// Rect r is r.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{X: inf, Y: inf}, Max: Point{X: -inf, Y: -inf}}
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the horizontal size of r, or 0 for an empty Rect.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical size of r, or 0 for an empty Rect.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return r.Min.Mid(r.Max)
}

// Union returns the smallest Rect containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, s.Min.X), Y: math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, s.Max.X), Y: math.Max(r.Max.Y, s.Max.Y)},
	}
}

// Include returns the smallest Rect containing r and p.
func (r Rect) Include(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Expand returns r grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Min: r.Min.Offset(-d, -d), Max: r.Max.Offset(d, d)}
}

// Overlaps reports whether r and s share interior area. Rects that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(s Rect) bool {
	if r.IsEmpty() || s.IsEmpty() {
		return false
	}
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corners returns the four corners of r counter-clockwise from Min.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}
