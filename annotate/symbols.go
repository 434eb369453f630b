package annotate

import (
	"math"
	"strings"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/recording"
)

// Symbol proportions as multiples of the dimension text height.
const (
	BoxWidthFactor  = 2.5
	BoxHeightFactor = 2.0
	DatumFrameSide  = 2.0
	BalloonRadius   = 1.5
)

// DefaultFinishSize is the roughness symbol size used when a request does
// not give one.
const DefaultFinishSize = 5.0

// Direction is the side a feature control frame grows towards.
type Direction int

const (
	GrowRight Direction = iota // frame spans [near.X, near.X+width]
	GrowLeft                   // frame spans [near.X-width, near.X]
)

func (d Direction) String() string {
	if d == GrowLeft {
		return "left"
	}
	return "right"
}

// DatumPlacement locates a datum symbol: the leader starts on the feature
// and the square frame is centered on Label.
type DatumPlacement struct {
	Attach draft.Point
	Label  draft.Point
}

// FramePlacement locates a feature control frame. Near is the midpoint of
// the frame edge the leader ends on.
type FramePlacement struct {
	Attach draft.Point
	Near   draft.Point
	Grow   Direction
}

// FinishPlacement locates a roughness symbol on a surface.
type FinishPlacement struct {
	At draft.Point
}

// BalloonPlacement locates an item balloon centered on Center.
type BalloonPlacement struct {
	Attach draft.Point
	Center draft.Point
}

var toleranceSymbols = map[string]string{
	"perpendicularity":     "⊥",
	"parallelism":          "∥",
	"flatness":             "▱",
	"position":             "⌖",
	"angularity":           "∠",
	"straightness":         "⏤",
	"circularity":          "○",
	"roundness":            "○",
	"cylindricity":         "⌭",
	"concentricity":        "◎",
	"symmetry":             "⌯",
	"profile_of_a_line":    "⌒",
	"line_profile":         "⌒",
	"profile_of_a_surface": "⌓",
	"surface_profile":      "⌓",
	"circular_runout":      "↗",
	"total_runout":         "⌰",
}

// ToleranceSymbol returns the characteristic symbol of a tolerance type,
// or "?" for types it does not know. Matching ignores case, and spaces or
// hyphens stand for underscores.
func ToleranceSymbol(typ string) string {
	key := strings.ToLower(strings.TrimSpace(typ))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if s, ok := toleranceSymbols[key]; ok {
		return s
	}
	return "?"
}

// FrameWidth returns the width of a feature control frame with n datum
// references: a symbol box, a double-width tolerance box and one box per
// datum.
func FrameWidth(textHeight float64, n int) float64 {
	return BoxWidthFactor * textHeight * float64(3+n)
}

// DrawFrame draws a feature control frame and its leader on the current
// layer and returns the frame outline.
func DrawFrame(rec *recording.Recorder, p FramePlacement, symbol, tolerance string, datums []string) draft.Rect {
	th := rec.Style().TextHeight
	boxW, boxH := BoxWidthFactor*th, BoxHeightFactor*th
	w := FrameWidth(th, len(datums))

	x := p.Near.X
	if p.Grow == GrowLeft {
		x -= w
	}
	y := p.Near.Y - boxH/2
	frame := draft.R(x, y, x+w, y+boxH)
	midY := p.Near.Y

	rec.Leader(p.Attach, p.Near)

	cell := func(width float64, s string) {
		rec.Rectangle(draft.Pt(x, y), draft.Pt(x+width, y+boxH))
		rec.Text(draft.Pt(x+width/2, midY), th, 0, recording.JustifyMiddleCenter, s)
		x += width
	}
	cell(boxW, symbol)
	cell(2*boxW, tolerance)
	for _, d := range datums {
		cell(boxW, d)
	}
	return frame
}

// DrawDatum draws a datum symbol: a leader from the feature to a square
// frame of side 2×text height, with the label inside between dashes.
func DrawDatum(rec *recording.Recorder, p DatumPlacement, label string) {
	th := rec.Style().TextHeight
	half := DatumFrameSide * th / 2
	rec.Leader(p.Attach, squareEdge(p.Label, half, p.Attach))
	rec.Rect(draft.RectAround(p.Label, half, half))
	rec.Text(p.Label, th, 0, recording.JustifyMiddleCenter, "-"+label+"-")
}

// squareEdge returns where the segment from the center c of a square with
// half side half towards p leaves the square. Points inside the square
// return c.
func squareEdge(c draft.Point, half float64, p draft.Point) draft.Point {
	d := p.Sub(c)
	m := math.Max(math.Abs(d.X), math.Abs(d.Y))
	if m <= half {
		return c
	}
	return c.Add(d.Mul(half / m))
}

// RoughnessPoints returns the checkmark vertices p1..p3 and the end of the
// extension leg p4 of a roughness symbol inserted at p1.
func RoughnessPoints(at draft.Point, size, rotation float64) [4]draft.Point {
	p1 := at
	p2 := p1.Polar(rotation+60, size)
	p3 := p2.Polar(rotation+120, size)
	p4 := p3.Polar(rotation, 1.5*size)
	return [4]draft.Point{p1, p2, p3, p4}
}

// DrawRoughness draws a roughness symbol with its label.
func DrawRoughness(rec *recording.Recorder, at draft.Point, label string, size, rotation float64) {
	if size <= 0 {
		size = DefaultFinishSize
	}
	p := RoughnessPoints(at, size, rotation)
	th := 0.4 * size
	rec.Polyline(false, p[0], p[1], p[2])
	rec.Line(p[2], p[3])
	rec.Text(p[1].Polar(rotation+90, 0.4*th), th, rotation, recording.JustifyBottomLeft, label)
}

// DrawBalloon draws an item balloon with a leader from the attach point to
// the circle.
func DrawBalloon(rec *recording.Recorder, p BalloonPlacement, number string) {
	th := rec.Style().TextHeight
	r := BalloonRadius * th
	if d := p.Attach.Distance(p.Center); d > r {
		rec.Leader(p.Attach, p.Center.Lerp(p.Attach, r/d))
	}
	rec.Circle(p.Center, r)
	rec.Text(p.Center, th, 0, recording.JustifyMiddleCenter, number)
}
