// Package svg provides an SVG preview backend for the recording system.
//
// Drawing coordinates are y-up; the backend flips them into the SVG user
// space and sizes the viewBox from the recording bounds. Every layer
// selection opens a <g> carrying the layer color and linetype dash array.
// Dimensions, hatches and polygons are laid out with the shared helpers
// of the recording package.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/recording"
)

func init() {
	recording.Register(recording.Format{
		Name:      "svg",
		Extension: ".svg",
		MediaType: MediaType,
		New:       func() recording.Backend { return NewBackend() },
	})
}

// MediaType is the media type of the generated document.
const MediaType = "image/svg+xml"

// Margin is the blank border around the drawing, in drawing units.
const Margin = 10.0

// strokeWidth of outline and annotation lines, in drawing units.
const strokeWidth = 0.35

// fontScale converts cap height to font size for sans-serif faces.
const fontScale = 1.4

// Backend writes an SVG document.
type Backend struct {
	buf       bytes.Buffer
	meta      recording.Meta
	layers    map[draft.LayerKey]draft.Layer
	current   draft.Layer
	groupOpen bool
	minX      float64
	maxY      float64
	ended     bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin writes the document header.
func (b *Backend) Begin(meta recording.Meta) error {
	b.buf.Reset()
	b.meta = meta
	b.layers = make(map[draft.LayerKey]draft.Layer)
	b.groupOpen = false
	b.ended = false

	bounds := meta.Bounds
	if bounds.IsEmpty() {
		bounds = draft.R(0, 0, 100, 100)
	}
	bounds = bounds.Expand(Margin)
	b.minX, b.maxY = bounds.Min.X, bounds.Max.Y

	w, h := bounds.Width(), bounds.Height()
	fmt.Fprintf(&b.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%smm" height="%smm">`,
		num(w), num(h), num(w), num(h))
	b.buf.WriteString("\n")
	if meta.Title != "" {
		b.buf.WriteString("  <title>")
		b.escape(meta.Title)
		b.buf.WriteString("</title>\n")
	}
	fmt.Fprintf(&b.buf, `  <rect x="0" y="0" width="%s" height="%s" fill="#ffffff"/>`, num(w), num(h))
	b.buf.WriteString("\n")
	return nil
}

// End closes the document.
func (b *Backend) End() error {
	if b.layers == nil {
		return fmt.Errorf("svg: End called before Begin")
	}
	b.closeGroup()
	b.buf.WriteString("</svg>\n")
	b.ended = true
	return nil
}

// CreateLayer records the layer style.
func (b *Backend) CreateLayer(l draft.Layer) {
	b.layers[l.Key] = l
}

// SelectLayer starts a group styled for the layer.
func (b *Backend) SelectLayer(key draft.LayerKey) {
	b.closeGroup()
	l, ok := b.layers[key]
	if !ok {
		l = draft.Layer{Key: key, Name: string(key), Color: 7}
	}
	b.current = l
	color := draft.ACIHex(l.Color)
	fmt.Fprintf(&b.buf, `  <g class="layer" data-layer="%s" stroke="%s" fill="none" stroke-width="%s"`,
		attr(l.Name), color, num(strokeWidth))
	if d := recording.LineTypeDash(l.LineType); d != nil {
		parts := make([]string, len(d.Array))
		for i, v := range d.Array {
			parts[i] = num(v)
		}
		fmt.Fprintf(&b.buf, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	b.buf.WriteString(">\n")
	b.groupOpen = true
}

func (b *Backend) closeGroup() {
	if b.groupOpen {
		b.buf.WriteString("  </g>\n")
		b.groupOpen = false
	}
}

// Line draws a segment.
func (b *Backend) Line(c recording.LineCommand) {
	b.line(c.From, c.To, "")
}

// Rectangle draws a rectangle.
func (b *Backend) Rectangle(c recording.RectangleCommand) {
	r := draft.R(c.Min.X, c.Min.Y, c.Max.X, c.Max.Y)
	x, y := b.xy(draft.Pt(r.Min.X, r.Max.Y))
	fmt.Fprintf(&b.buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`, x, y, num(r.Width()), num(r.Height()))
	b.buf.WriteString("\n")
}

// Circle draws a circle.
func (b *Backend) Circle(c recording.CircleCommand) {
	x, y := b.xy(c.Center)
	fmt.Fprintf(&b.buf, `    <circle cx="%s" cy="%s" r="%s"/>`, x, y, num(c.Radius))
	b.buf.WriteString("\n")
}

// Arc draws a counter-clockwise arc.
func (b *Backend) Arc(c recording.ArcCommand) {
	span := math.Mod(c.End-c.Start, 360)
	if span <= 0 {
		span += 360
	}
	large := 0
	if span > 180 {
		large = 1
	}
	sx, sy := b.xy(c.Center.Polar(c.Start, c.Radius))
	ex, ey := b.xy(c.Center.Polar(c.Start+span, c.Radius))
	r := num(c.Radius)
	// Counter-clockwise in y-up space is sweep-flag 0 once flipped.
	fmt.Fprintf(&b.buf, `    <path d="M %s %s A %s %s 0 %d 0 %s %s"/>`, sx, sy, r, r, large, ex, ey)
	b.buf.WriteString("\n")
}

// Polygon draws a regular polygon.
func (b *Backend) Polygon(c recording.PolygonCommand) {
	b.poly("polygon", recording.PolygonVertices(c), "")
}

// Polyline draws a polyline.
func (b *Backend) Polyline(c recording.PolylineCommand) {
	kind := "polyline"
	if c.Closed {
		kind = "polygon"
	}
	b.poly(kind, c.Points, "")
}

// Hatch draws the pattern lines clipped to the boundary, always solid.
func (b *Backend) Hatch(c recording.HatchCommand) {
	lines := recording.HatchLines(c)
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(&b.buf, `    <g data-pattern="%s" stroke-width="%s" stroke-dasharray="none">`, attr(c.Pattern), num(strokeWidth/2))
	b.buf.WriteString("\n")
	for _, l := range lines {
		b.line(l[0], l[1], "  ")
	}
	b.buf.WriteString("    </g>\n")
}

// Text places justified text.
func (b *Backend) Text(c recording.TextCommand) {
	b.text(c.Pos, c.Height, c.Rotation, c.Justify, c.Value)
}

// Leader draws a leader with a filled arrowhead at its first point.
func (b *Backend) Leader(c recording.LeaderCommand) {
	if len(c.Points) < 2 {
		return
	}
	b.poly("polyline", c.Points, "")
	b.arrow(recording.ArrowHead(c.Points[0], c.Points[0].Sub(c.Points[1]), b.meta.Style.ArrowSize))
}

// LinearDimension draws extension lines, the dimension line, arrows and text.
func (b *Backend) LinearDimension(c recording.LinearDimensionCommand) {
	b.dimension(recording.LayoutLinear(c, b.meta.Style))
}

// DiameterDimension draws a diameter dimension.
func (b *Backend) DiameterDimension(c recording.DiameterDimensionCommand) {
	b.dimension(recording.LayoutDiameter(c, b.meta.Style))
}

func (b *Backend) dimension(l recording.DimensionLayout) {
	b.buf.WriteString(`    <g stroke-dasharray="none">` + "\n")
	for _, e := range l.Extensions {
		b.line(e[0], e[1], "  ")
	}
	b.line(l.Line[0], l.Line[1], "  ")
	if len(l.Tail) > 1 {
		b.poly("polyline", l.Tail, "  ")
	}
	for _, a := range l.Arrows {
		b.arrow(a)
	}
	b.buf.WriteString("    </g>\n")
	b.text(l.TextCenter, b.meta.Style.TextHeight, l.Rotation, recording.JustifyMiddleCenter, l.Label)
}

// Bytes returns the document. It should only be called after End.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, fmt.Errorf("svg: WriteTo called before End")
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the document to a file.
func (b *Backend) SaveToFile(path string) error {
	if !b.ended {
		return fmt.Errorf("svg: SaveToFile called before End")
	}
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

func (b *Backend) line(p, q draft.Point, indent string) {
	x1, y1 := b.xy(p)
	x2, y2 := b.xy(q)
	fmt.Fprintf(&b.buf, `%s    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`, indent, x1, y1, x2, y2)
	b.buf.WriteString("\n")
}

func (b *Backend) poly(kind string, pts []draft.Point, indent string) {
	if len(pts) == 0 {
		return
	}
	fmt.Fprintf(&b.buf, `%s    <%s points="%s"/>`, indent, kind, b.points(pts))
	b.buf.WriteString("\n")
}

func (b *Backend) arrow(tri [3]draft.Point) {
	fmt.Fprintf(&b.buf, `      <polygon points="%s" fill="%s" stroke="none"/>`,
		b.points(tri[:]), draft.ACIHex(b.current.Color))
	b.buf.WriteString("\n")
}

func (b *Backend) text(pos draft.Point, height, rotation float64, j recording.Justify, s string) {
	if s == "" {
		return
	}
	x, y := b.xy(pos)
	anchor, baseline := "start", "auto"
	if j == recording.JustifyMiddleCenter {
		anchor, baseline = "middle", "central"
	}
	fmt.Fprintf(&b.buf, `    <text x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="%s" dominant-baseline="%s" fill="%s" stroke="none"`,
		x, y, num(height*fontScale), anchor, baseline, draft.ACIHex(b.current.Color))
	if rotation != 0 {
		fmt.Fprintf(&b.buf, ` transform="rotate(%s %s %s)"`, num(-rotation), x, y)
	}
	b.buf.WriteString(">")
	b.escape(s)
	b.buf.WriteString("</text>\n")
}

func (b *Backend) points(pts []draft.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := b.xy(p)
		parts[i] = x + "," + y
	}
	return strings.Join(parts, " ")
}

// xy maps a drawing point to SVG user space.
func (b *Backend) xy(p draft.Point) (string, string) {
	return num(p.X - b.minX), num(b.maxY - p.Y)
}

func (b *Backend) escape(s string) {
	_ = xml.EscapeText(&b.buf, []byte(s))
}

func attr(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
