// Package raster provides a PNG preview backend for the recording system.
//
// Strokes are expanded to quads and filled with the anti-aliasing
// rasterizer of golang.org/x/image/vector; text is drawn with the bundled
// Go Regular face. Host linetypes are approximated with dash patterns and
// dimensions, hatches and polygons use the shared layouts of the recording
// package, so a preview matches the SVG backend.
//
// # Limitations
//
// Text rotation is rounded to the nearest quarter turn.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/draft/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("raster")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("preview.png")
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/recording"
)

func init() {
	recording.Register(recording.Format{
		Name:      "raster",
		Extension: ".png",
		MediaType: MediaType,
		New:       func() recording.Backend { return NewBackend() },
	})
}

// MediaType is the media type of the encoded image.
const MediaType = "image/png"

// Defaults for NewBackend.
const (
	DefaultScale   = 4.0  // pixels per drawing unit
	DefaultMaxSide = 4096 // pixels
	margin         = 10.0 // drawing units
	lineWidthPx    = 1.5
	capHeight      = 1466.0 / 2048.0
	circleSegments = 96
)

// Backend renders recordings to an RGBA image.
// It implements recording.Backend, recording.WriterBackend and
// recording.FileBackend.
type Backend struct {
	// Scale is the pixel size of one drawing unit. It is reduced when the
	// image would exceed MaxSide.
	Scale   float64
	MaxSide int

	img    *image.RGBA
	meta   recording.Meta
	layers map[draft.LayerKey]draft.Layer
	color  color.NRGBA
	dash   *recording.Dash
	minX   float64
	maxY   float64
	scale  float64

	z       *vector.Rasterizer
	pending bool
	ended   bool
	faces   map[int]font.Face
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{Scale: DefaultScale, MaxSide: DefaultMaxSide}
}

// Begin allocates a white canvas covering the recording bounds.
func (b *Backend) Begin(meta recording.Meta) error {
	bounds := meta.Bounds
	if bounds.IsEmpty() {
		bounds = draft.R(0, 0, 100, 100)
	}
	bounds = bounds.Expand(margin)

	scale := b.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	if maxSide := float64(b.MaxSide); maxSide > 0 {
		if side := math.Max(bounds.Width(), bounds.Height()) * scale; side > maxSide {
			scale *= maxSide / side
		}
	}
	w := int(math.Ceil(bounds.Width() * scale))
	h := int(math.Ceil(bounds.Height() * scale))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("raster: empty canvas %dx%d", w, h)
	}

	b.meta = meta
	b.scale = scale
	b.minX, b.maxY = bounds.Min.X, bounds.Max.Y
	b.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(b.img, b.img.Bounds(), image.White, image.Point{}, draw.Src)
	b.z = vector.NewRasterizer(w, h)
	b.z.DrawOp = draw.Over
	b.layers = make(map[draft.LayerKey]draft.Layer)
	b.color = draft.ACIColor(7)
	b.dash = nil
	b.pending = false
	b.ended = false
	return nil
}

// End flushes pending geometry.
func (b *Backend) End() error {
	if b.img == nil {
		return fmt.Errorf("raster: End called before Begin")
	}
	b.flush()
	b.ended = true
	return nil
}

// CreateLayer records the layer style.
func (b *Backend) CreateLayer(l draft.Layer) {
	b.layers[l.Key] = l
}

// SelectLayer switches color and dash pattern.
func (b *Backend) SelectLayer(key draft.LayerKey) {
	b.flush()
	l, ok := b.layers[key]
	if !ok {
		l = draft.Layer{Color: 7}
	}
	b.color = draft.ACIColor(l.Color)
	b.dash = recording.LineTypeDash(l.LineType)
}

// Line draws a segment.
func (b *Backend) Line(c recording.LineCommand) {
	b.stroke(b.dash, c.From, c.To)
}

// Rectangle draws a rectangle.
func (b *Backend) Rectangle(c recording.RectangleCommand) {
	r := draft.R(c.Min.X, c.Min.Y, c.Max.X, c.Max.Y).Corners()
	b.stroke(b.dash, r[0], r[1], r[2], r[3], r[0])
}

// Circle draws a circle.
func (b *Backend) Circle(c recording.CircleCommand) {
	b.stroke(b.dash, arcPoints(c.Center, c.Radius, 0, 360)...)
}

// Arc draws a counter-clockwise arc.
func (b *Backend) Arc(c recording.ArcCommand) {
	span := math.Mod(c.End-c.Start, 360)
	if span <= 0 {
		span += 360
	}
	b.stroke(b.dash, arcPoints(c.Center, c.Radius, c.Start, span)...)
}

// Polygon draws a regular polygon.
func (b *Backend) Polygon(c recording.PolygonCommand) {
	pts := recording.PolygonVertices(c)
	if len(pts) == 0 {
		return
	}
	b.stroke(b.dash, append(pts, pts[0])...)
}

// Polyline draws a polyline.
func (b *Backend) Polyline(c recording.PolylineCommand) {
	pts := c.Points
	if c.Closed && len(pts) > 0 {
		pts = append(append([]draft.Point(nil), pts...), pts[0])
	}
	b.stroke(b.dash, pts...)
}

// Hatch draws solid pattern lines clipped to the boundary.
func (b *Backend) Hatch(c recording.HatchCommand) {
	for _, l := range recording.HatchLines(c) {
		b.stroke(nil, l[0], l[1])
	}
}

// Text draws justified text.
func (b *Backend) Text(c recording.TextCommand) {
	b.text(c.Pos, c.Height, c.Rotation, c.Justify, c.Value)
}

// Leader draws a leader with a filled arrowhead.
func (b *Backend) Leader(c recording.LeaderCommand) {
	if len(c.Points) < 2 {
		return
	}
	b.stroke(nil, c.Points...)
	b.fill(recording.ArrowHead(c.Points[0], c.Points[0].Sub(c.Points[1]), b.meta.Style.ArrowSize))
}

// LinearDimension draws a linear dimension.
func (b *Backend) LinearDimension(c recording.LinearDimensionCommand) {
	b.dimension(recording.LayoutLinear(c, b.meta.Style))
}

// DiameterDimension draws a diameter dimension.
func (b *Backend) DiameterDimension(c recording.DiameterDimensionCommand) {
	b.dimension(recording.LayoutDiameter(c, b.meta.Style))
}

func (b *Backend) dimension(l recording.DimensionLayout) {
	for _, e := range l.Extensions {
		b.stroke(nil, e[0], e[1])
	}
	b.stroke(nil, l.Line[0], l.Line[1])
	b.stroke(nil, l.Tail...)
	for _, a := range l.Arrows {
		b.fill(a)
	}
	b.text(l.TextCenter, b.meta.Style.TextHeight, l.Rotation, recording.JustifyMiddleCenter, l.Label)
}

// Image returns the rendered image.
func (b *Backend) Image() image.Image {
	return b.img
}

// Width returns the canvas width in pixels.
func (b *Backend) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (b *Backend) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, fmt.Errorf("raster: WriteTo called before End")
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// px maps a drawing point to canvas pixels.
func (b *Backend) px(p draft.Point) (float32, float32) {
	return float32((p.X - b.minX) * b.scale), float32((b.maxY - p.Y) * b.scale)
}

// stroke queues quads for the polyline through pts, split by dash.
func (b *Backend) stroke(dash *recording.Dash, pts ...draft.Point) {
	hw := lineWidthPx / 2 / b.scale
	for i := 0; i+1 < len(pts); i++ {
		for _, seg := range dash.Split(pts[i], pts[i+1]) {
			b.quad(seg[0], seg[1], hw)
		}
	}
}

// quad adds the rectangle of half width hw around p-q, wound
// counter-clockwise so overlapping strokes never cancel.
func (b *Backend) quad(p, q draft.Point, hw float64) {
	d := q.Sub(p)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		d, l = draft.Pt(1, 0), 1
	}
	u := d.Mul(hw / l)
	n := draft.Pt(-u.Y, u.X)
	p, q = p.Sub(u), q.Add(u)
	b.polygon([]draft.Point{p.Sub(n), q.Sub(n), q.Add(n), p.Add(n)})
}

func (b *Backend) fill(tri [3]draft.Point) {
	pts := tri[:]
	if area(pts) < 0 {
		pts = []draft.Point{tri[0], tri[2], tri[1]}
	}
	b.polygon(pts)
}

func (b *Backend) polygon(pts []draft.Point) {
	x, y := b.px(pts[0])
	b.z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = b.px(p)
		b.z.LineTo(x, y)
	}
	b.z.ClosePath()
	b.pending = true
}

// flush draws the queued geometry in the current color.
func (b *Backend) flush() {
	if !b.pending {
		return
	}
	b.z.Draw(b.img, b.img.Bounds(), image.NewUniform(b.color), image.Point{})
	r := b.img.Bounds()
	b.z.Reset(r.Dx(), r.Dy())
	b.z.DrawOp = draw.Over
	b.pending = false
}

func (b *Backend) text(pos draft.Point, height, rotation float64, j recording.Justify, s string) {
	if s == "" || height <= 0 {
		return
	}
	b.flush()
	face, err := b.faceFor(height * b.scale / capHeight)
	if err != nil {
		return
	}
	w := font.MeasureString(face, s).Ceil()
	capPx := int(math.Ceil(height * b.scale))
	descent := face.Metrics().Descent.Ceil()

	// Draw unrotated into a mask, then place it by quarter turns.
	mask := image.NewAlpha(image.Rect(0, 0, w+2, capPx+descent+2))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(1, capPx+1),
	}
	d.DrawString(s)

	// Anchor inside the mask, in mask pixels.
	ax, ay := 1.0, float64(capPx+1)
	if j == recording.JustifyMiddleCenter {
		ax, ay = 1+float64(w)/2, 1+float64(capPx)/2
	}
	turns := int(math.Round(rotation/90)) & 3
	rot, rax, ray := rotate(mask, turns, ax, ay)

	x, y := b.px(pos)
	sp := image.Pt(int(math.Round(float64(x)-rax)), int(math.Round(float64(y)-ray)))
	dst := rot.Bounds().Add(sp)
	draw.DrawMask(b.img, dst, image.NewUniform(b.color), image.Point{}, rot, rot.Bounds().Min, draw.Over)
}

// rotate turns m counter-clockwise by quarter turns and maps the anchor.
func rotate(m *image.Alpha, turns int, ax, ay float64) (*image.Alpha, float64, float64) {
	if turns == 0 {
		return m, ax, ay
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	var out *image.Alpha
	switch turns {
	case 1, 3:
		out = image.NewAlpha(image.Rect(0, 0, h, w))
	default:
		out = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := m.AlphaAt(x, y)
			switch turns {
			case 1:
				out.SetAlpha(y, w-1-x, a)
			case 2:
				out.SetAlpha(w-1-x, h-1-y, a)
			case 3:
				out.SetAlpha(h-1-y, x, a)
			}
		}
	}
	switch turns {
	case 1:
		return out, ay, float64(w) - ax
	case 2:
		return out, float64(w) - ax, float64(h) - ay
	default:
		return out, float64(h) - ay, ax
	}
}

var (
	fontOnce sync.Once
	fontData *opentype.Font
	fontErr  error
)

// faceFor returns a Go Regular face of roughly size pixels. Faces are
// not safe for concurrent use, so each backend keeps its own.
func (b *Backend) faceFor(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	key := int(math.Round(size * 4))
	if key < 4 {
		key = 4
	}
	if f, ok := b.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	if b.faces == nil {
		b.faces = make(map[int]font.Face)
	}
	b.faces[key] = f
	return f, nil
}

func arcPoints(c draft.Point, r, start, span float64) []draft.Point {
	n := int(math.Ceil(circleSegments * span / 360))
	if n < 2 {
		n = 2
	}
	pts := make([]draft.Point, n+1)
	for i := range pts {
		pts[i] = c.Polar(start+span*float64(i)/float64(n), r)
	}
	return pts
}

// area returns twice the signed area of pts, positive when
// counter-clockwise in drawing space.
func area(pts []draft.Point) float64 {
	var s float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
