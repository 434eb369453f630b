package recording

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/draft"
)

// Shared layout for backends that draw dimensions, polygons and hatches
// themselves instead of delegating them to a host.

// PolygonVertices returns the vertices of a regular polygon,
// counter-clockwise from angle zero. Even-sided polygons get a horizontal
// bottom edge.
func PolygonVertices(c PolygonCommand) []draft.Point {
	if c.Sides < 3 {
		return nil
	}
	step := 360 / float64(c.Sides)
	r := c.Radius
	start := 0.0
	if c.Sides%2 == 1 {
		start = -90 + step/2
	}
	if !c.Inscribed {
		r /= math.Cos(draft.Radians(step / 2))
	}
	pts := make([]draft.Point, c.Sides)
	for i := range pts {
		pts[i] = c.Center.Polar(start+float64(i)*step, r)
	}
	return pts
}

// ArrowHead returns the triangle of an arrow whose tip is at tip and which
// points along dir.
func ArrowHead(tip, dir draft.Point, size float64) [3]draft.Point {
	l := math.Hypot(dir.X, dir.Y)
	if l == 0 {
		dir, l = draft.Pt(1, 0), 1
	}
	u := dir.Mul(1 / l)
	n := draft.Pt(-u.Y, u.X)
	base := tip.Sub(u.Mul(size))
	return [3]draft.Point{tip, base.Add(n.Mul(size / 6)), base.Sub(n.Mul(size / 6))}
}

// DimensionLayout is the resolved geometry of a dimension.
type DimensionLayout struct {
	Extensions [][2]draft.Point
	Line       [2]draft.Point
	Tail       []draft.Point // optional leader from Line[1] to the text
	Arrows     [][3]draft.Point
	TextCenter draft.Point
	Rotation   float64
	Label      string
}

// FormatMeasured formats a measured value with two decimals, trailing zeros
// removed.
func FormatMeasured(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// DimensionLabel returns the displayed text of a dimension.
func DimensionLabel(override string, measured float64) string {
	m := FormatMeasured(measured)
	if override == "" {
		return m
	}
	return strings.ReplaceAll(override, MeasuredPlaceholder, m)
}

// LayoutLinear resolves a linear dimension.
func LayoutLinear(c LinearDimensionCommand, style draft.DimensionStyle) DimensionLayout {
	var a, b draft.Point
	var measured float64
	switch c.Axis {
	case AxisHorizontal:
		a, b = draft.Pt(c.P1.X, c.TextPos.Y), draft.Pt(c.P2.X, c.TextPos.Y)
		measured = math.Abs(c.P2.X - c.P1.X)
	case AxisVertical:
		a, b = draft.Pt(c.TextPos.X, c.P1.Y), draft.Pt(c.TextPos.X, c.P2.Y)
		measured = math.Abs(c.P2.Y - c.P1.Y)
	default:
		measured = c.P1.Distance(c.P2)
		d := c.P2.Sub(c.P1)
		if measured == 0 {
			d = draft.Pt(1, 0)
		}
		n := draft.Pt(-d.Y, d.X).Mul(1 / math.Hypot(d.X, d.Y))
		off := c.TextPos.Sub(c.P1)
		dist := off.X*n.X + off.Y*n.Y
		a, b = c.P1.Add(n.Mul(dist)), c.P2.Add(n.Mul(dist))
	}

	// Text reads left to right or bottom to top.
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	rot := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	if a == b {
		rot = 0
	}
	sin, cos := math.Sincos(draft.Radians(rot))
	up := draft.Pt(-sin, cos)

	l := DimensionLayout{
		Line:       [2]draft.Point{a, b},
		TextCenter: a.Mid(b).Add(up.Mul(style.TextHeight)),
		Rotation:   rot,
		Label:      DimensionLabel(c.Text, measured),
	}
	l.Extensions = append(l.Extensions,
		extension(c.P1, nearest(c.P1, a, b), style.ArrowSize/2),
		extension(c.P2, nearest(c.P2, a, b), style.ArrowSize/2),
	)
	if a != b {
		dir := b.Sub(a)
		l.Arrows = [][3]draft.Point{
			ArrowHead(b, dir, style.ArrowSize),
			ArrowHead(a, dir.Mul(-1), style.ArrowSize),
		}
	}
	return l
}

// LayoutDiameter resolves a diameter dimension.
func LayoutDiameter(c DiameterDimensionCommand, style draft.DimensionStyle) DimensionLayout {
	u := c.TextPos.Sub(c.Center)
	dist := math.Hypot(u.X, u.Y)
	if dist == 0 {
		u, dist = draft.Pt(1, 0), 1
	}
	u = u.Mul(1 / dist)
	a := c.Center.Sub(u.Mul(c.Radius))
	b := c.Center.Add(u.Mul(c.Radius))

	override := c.Text
	if override == "" {
		override = DiameterSign + MeasuredPlaceholder
	}
	l := DimensionLayout{
		Line: [2]draft.Point{a, b},
		Arrows: [][3]draft.Point{
			ArrowHead(b, u, style.ArrowSize),
			ArrowHead(a, u.Mul(-1), style.ArrowSize),
		},
		TextCenter: c.TextPos,
		Label:      DimensionLabel(override, 2*c.Radius),
	}
	if dist > c.Radius {
		l.Tail = []draft.Point{b, c.TextPos}
		l.TextCenter = c.TextPos.Offset(0, style.TextHeight)
	}
	return l
}

func nearest(p, a, b draft.Point) draft.Point {
	if p.Distance(a) <= p.Distance(b) {
		return a
	}
	return b
}

// extension runs from the feature point p past the dimension line point
// q by overrun.
func extension(p, q draft.Point, overrun float64) [2]draft.Point {
	d := q.Distance(p)
	if d == 0 {
		return [2]draft.Point{p, q}
	}
	return [2]draft.Point{p, q.Add(q.Sub(p).Mul(overrun / d))}
}

// hatchFamily is one set of parallel pattern lines.
type hatchFamily struct {
	angle   float64
	period  float64
	offsets []float64 // fractions of period
}

// Preview approximations of the host hatch patterns at scale 1.
var hatchPatterns = map[string][]hatchFamily{
	"ANSI31": {{45, 3.175, []float64{0}}},
	"ANSI32": {{45, 9.525, []float64{0, 1.0 / 3}}},
	"ANSI33": {{45, 6.35, []float64{0, 0.5}}},
	"ANSI37": {{45, 3.175, []float64{0}}, {135, 3.175, []float64{0}}},
	"SOLID":  {{45, 0.25, []float64{0}}},
}

// HatchLines returns the pattern segments clipped to the hatch boundary.
// Spacing is limited to at most a quarter of the boundary diagonal so small
// regions still show the pattern.
func HatchLines(c HatchCommand) [][2]draft.Point {
	if len(c.Boundary) < 3 {
		return nil
	}
	families, ok := hatchPatterns[strings.ToUpper(c.Pattern)]
	if !ok {
		families = hatchPatterns["ANSI31"]
	}
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	ext := draft.EmptyRect()
	for _, p := range c.Boundary {
		ext = ext.Include(p)
	}
	diag := math.Hypot(ext.Width(), ext.Height())

	var out [][2]draft.Point
	for _, f := range families {
		period := math.Min(f.period*scale, diag/4)
		if period <= 0 {
			continue
		}
		for _, o := range f.offsets {
			out = append(out, scanLines(c.Boundary, f.angle, period, o*period)...)
		}
	}
	return out
}

// scanLines intersects lines at angle, spaced by period and shifted by
// offset, with the polygon using the even-odd rule.
func scanLines(poly []draft.Point, angle, period, offset float64) [][2]draft.Point {
	sin, cos := math.Sincos(draft.Radians(angle))
	d := draft.Pt(cos, sin)
	n := draft.Pt(-sin, cos)
	dot := func(p, q draft.Point) float64 { return p.X*q.X + p.Y*q.Y }

	tmin, tmax := math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		t := dot(p, n)
		tmin, tmax = math.Min(tmin, t), math.Max(tmax, t)
	}

	var out [][2]draft.Point
	for t := math.Ceil((tmin-offset)/period)*period + offset; t <= tmax; t += period {
		var params []float64
		for i := range poly {
			p, q := poly[i], poly[(i+1)%len(poly)]
			ap, aq := dot(p, n)-t, dot(q, n)-t
			if (ap > 0) == (aq > 0) {
				continue
			}
			x := p.Add(q.Sub(p).Mul(ap / (ap - aq)))
			params = append(params, dot(x, d))
		}
		sort.Float64s(params)
		base := n.Mul(t)
		for i := 0; i+1 < len(params); i += 2 {
			out = append(out, [2]draft.Point{base.Add(d.Mul(params[i])), base.Add(d.Mul(params[i+1]))})
		}
	}
	return out
}

// Centroid returns the vertex average of pts.
func Centroid(pts []draft.Point) draft.Point {
	var c draft.Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}
