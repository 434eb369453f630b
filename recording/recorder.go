package recording

import (
	"math"
	"slices"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/text"
)

// Meta describes a recording as a whole. It is handed to Backend.Begin.
type Meta struct {
	Title  string
	Style  draft.DimensionStyle
	Bounds draft.Rect
}

// Recorder accumulates drawing commands. NewRecorder creates every layer
// of the options up front; primitives are then appended to the layer made
// current by the last Select.
//
// Independent parts of a drawing (a view, one annotation, a table) are
// closed with EndGroup. The current layer does not survive a group
// boundary: drawing before the next Select panics.
//
// Example:
//
//	rec := recording.NewRecorder(opts)
//	rec.Select(draft.LayerOutline)
//	rec.Rectangle(draft.Pt(0, 0), draft.Pt(20, 20))
//	r := rec.FinishRecording("Cylinder")
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	style    draft.DimensionStyle
	layers   map[draft.LayerKey]draft.Layer
	current  draft.LayerKey
	commands []Command
	groups   []int
	bounds   draft.Rect
}

// NewRecorder creates a recorder and emits one CreateLayer per layer of
// opts, in creation order.
func NewRecorder(opts draft.Options) *Recorder {
	opts = opts.Normalized()
	r := &Recorder{
		style:  opts.Dimension,
		layers: make(map[draft.LayerKey]draft.Layer),
		bounds: draft.EmptyRect(),
	}
	for _, l := range opts.LayerList() {
		r.layers[l.Key] = l
		r.commands = append(r.commands, CreateLayerCommand{Layer: l})
	}
	return r
}

// Style returns the dimension style of the recording.
func (r *Recorder) Style() draft.DimensionStyle { return r.style }

// Layer returns the layer created for key.
func (r *Recorder) Layer(key draft.LayerKey) (draft.Layer, bool) {
	l, ok := r.layers[key]
	return l, ok
}

// Select emits a SelectLayer for key. It panics if key was never created.
func (r *Recorder) Select(key draft.LayerKey) {
	if _, ok := r.layers[key]; !ok {
		panic("recording: select of unknown layer " + string(key))
	}
	r.current = key
	r.commands = append(r.commands, SelectLayerCommand{Key: key})
}

// EndGroup closes the current group of primitives and forgets the current
// layer.
func (r *Recorder) EndGroup() {
	r.current = ""
	n := len(r.commands)
	if len(r.groups) == 0 || r.groups[len(r.groups)-1] != n {
		r.groups = append(r.groups, n)
	}
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Bounds returns the extent of everything drawn so far, text included.
func (r *Recorder) Bounds() draft.Rect { return r.bounds }

// FinishRecording returns an immutable recording of the commands so far.
// The recorder may continue to be used; later commands do not affect the
// returned recording.
func (r *Recorder) FinishRecording(title string) *Recording {
	return &Recording{
		meta: Meta{
			Title:  title,
			Style:  r.style,
			Bounds: r.bounds,
		},
		commands: slices.Clone(r.commands),
		groups:   slices.Clone(r.groups),
	}
}

func (r *Recorder) draw(c Command) {
	if r.current == "" {
		panic("recording: " + c.Type().String() + " without a SelectLayer in its group")
	}
	r.commands = append(r.commands, c)
	r.bounds = r.bounds.Union(CommandBounds(c))
}

// --------------------------------------------------------------------------
// Primitives
// --------------------------------------------------------------------------

// Line draws a segment.
func (r *Recorder) Line(from, to draft.Point) {
	r.draw(LineCommand{From: from, To: to})
}

// Rectangle draws an axis-aligned rectangle between two corners.
func (r *Recorder) Rectangle(a, b draft.Point) {
	rc := draft.R(a.X, a.Y, b.X, b.Y)
	r.draw(RectangleCommand{Min: rc.Min, Max: rc.Max})
}

// Rect draws rc.
func (r *Recorder) Rect(rc draft.Rect) {
	r.draw(RectangleCommand{Min: rc.Min, Max: rc.Max})
}

// Circle draws a circle.
func (r *Recorder) Circle(c draft.Point, radius float64) {
	r.draw(CircleCommand{Center: c, Radius: radius})
}

// Arc draws an arc counter-clockwise from start to end degrees.
func (r *Recorder) Arc(c draft.Point, radius, start, end float64) {
	r.draw(ArcCommand{Center: c, Radius: radius, Start: start, End: end})
}

// Polygon draws a regular polygon.
func (r *Recorder) Polygon(c draft.Point, radius float64, sides int, inscribed bool) {
	r.draw(PolygonCommand{Center: c, Radius: radius, Sides: sides, Inscribed: inscribed})
}

// Polyline draws connected segments through pts.
func (r *Recorder) Polyline(closed bool, pts ...draft.Point) {
	r.draw(PolylineCommand{Points: slices.Clone(pts), Closed: closed})
}

// Hatch fills the closed boundary with pattern.
func (r *Recorder) Hatch(pattern string, scale float64, boundary ...draft.Point) {
	r.draw(HatchCommand{Pattern: pattern, Scale: scale, Boundary: slices.Clone(boundary)})
}

// HatchRect fills rc with pattern.
func (r *Recorder) HatchRect(pattern string, scale float64, rc draft.Rect) {
	c := rc.Corners()
	r.Hatch(pattern, scale, c[:]...)
}

// Text places s at pos.
func (r *Recorder) Text(pos draft.Point, height, rotation float64, j Justify, s string) {
	r.draw(TextCommand{Pos: pos, Height: height, Rotation: rotation, Justify: j, Value: s})
}

// Leader draws a leader with its arrow at pts[0].
func (r *Recorder) Leader(pts ...draft.Point) {
	r.draw(LeaderCommand{Points: slices.Clone(pts)})
}

// LinearDimension dimensions p1-p2 along axis with the dimension line
// through textPos.
func (r *Recorder) LinearDimension(p1, p2, textPos draft.Point, axis DimAxis, override string) {
	r.draw(LinearDimensionCommand{P1: p1, P2: p2, TextPos: textPos, Axis: axis, Text: override})
}

// DiameterDimension dimensions the circle at c.
func (r *Recorder) DiameterDimension(c draft.Point, radius float64, textPos draft.Point, override string) {
	r.draw(DiameterDimensionCommand{Center: c, Radius: radius, TextPos: textPos, Text: override})
}

// --------------------------------------------------------------------------
// Extents
// --------------------------------------------------------------------------

// CommandBounds returns the drawing extent of a primitive. Layer commands
// have an empty extent.
func CommandBounds(c Command) draft.Rect {
	b := draft.EmptyRect()
	switch c := c.(type) {
	case LineCommand:
		b = b.Include(c.From).Include(c.To)
	case RectangleCommand:
		b = b.Include(c.Min).Include(c.Max)
	case CircleCommand:
		b = draft.RectAround(c.Center, c.Radius, c.Radius)
	case ArcCommand:
		b = draft.RectAround(c.Center, c.Radius, c.Radius)
	case PolygonCommand:
		for _, p := range PolygonVertices(c) {
			b = b.Include(p)
		}
	case PolylineCommand:
		for _, p := range c.Points {
			b = b.Include(p)
		}
	case HatchCommand:
		for _, p := range c.Boundary {
			b = b.Include(p)
		}
	case LeaderCommand:
		for _, p := range c.Points {
			b = b.Include(p)
		}
	case TextCommand:
		for _, p := range TextBox(c) {
			b = b.Include(p)
		}
	case LinearDimensionCommand:
		b = b.Include(c.P1).Include(c.P2).Include(c.TextPos)
	case DiameterDimensionCommand:
		b = draft.RectAround(c.Center, c.Radius, c.Radius).Include(c.TextPos)
	}
	return b
}

// TextBox returns the corners of the box covered by a text command,
// measured with the bundled face.
func TextBox(c TextCommand) [4]draft.Point {
	w := text.Default().Width(c.Value, c.Height)
	h := c.Height
	var x0, y0 float64
	if c.Justify == JustifyMiddleCenter {
		x0, y0 = -w/2, -h/2
	}
	local := [4]draft.Point{
		{X: x0, Y: y0}, {X: x0 + w, Y: y0},
		{X: x0 + w, Y: y0 + h}, {X: x0, Y: y0 + h},
	}
	sin, cos := math.Sincos(draft.Radians(c.Rotation))
	var out [4]draft.Point
	for i, p := range local {
		out[i] = draft.Pt(c.Pos.X+p.X*cos-p.Y*sin, c.Pos.Y+p.X*sin+p.Y*cos)
	}
	return out
}
