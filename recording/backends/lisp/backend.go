// Package lisp provides an AutoLISP backend for the recording system.
//
// The generated file defines a C:DrawMyObject command. Running it in the
// host creates the layers, sets the dimension variables and replays every
// primitive as one (command ...) call on the current layer. Dimensions and
// hatches are delegated to the host's DIMLINEAR, DIMDIAMETER and -HATCH
// commands, so their appearance follows the host's dimension style.
//
// # Example
//
//	import _ "github.com/gogpu/draft/recording/backends/lisp"
//
//	b, _ := recording.NewBackend("lisp")
//	rec.Playback(b)
//	b.(recording.FileBackend).SaveToFile("cylinder.lsp")
package lisp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/recording"
)

func init() {
	recording.Register(recording.Format{
		Name:      "lisp",
		Extension: ".lsp",
		MediaType: MediaType,
		New:       func() recording.Backend { return NewBackend() },
	})
}

// MediaType is the media type of the generated script.
const MediaType = "text/plain; charset=utf-8"

// Backend writes an AutoLISP drawing script.
type Backend struct {
	buf    bytes.Buffer
	meta   recording.Meta
	layers map[draft.LayerKey]draft.Layer
	order  []draft.LayerKey

	headerDone bool
	ended      bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new lisp backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new script.
func (b *Backend) Begin(meta recording.Meta) error {
	b.buf.Reset()
	b.meta = meta
	b.layers = make(map[draft.LayerKey]draft.Layer)
	b.order = nil
	b.headerDone = false
	b.ended = false

	b.buf.WriteString("(defun C:DrawMyObject ()\n")
	b.buf.WriteString("  (command \"_.UNDO\" \"Begin\")\n")
	b.buf.WriteString("  (setvar \"CMDECHO\" 0)\n")
	return nil
}

// End writes the footer.
func (b *Backend) End() error {
	if b.layers == nil {
		return fmt.Errorf("lisp: End called before Begin")
	}
	b.header()
	title := b.meta.Title
	if title == "" {
		title = "Drawing"
	}
	b.buf.WriteString("  (setvar \"CMDECHO\" 1)(command \"_.ZOOM\" \"_E\")(command \"_.UNDO\" \"End\")\n")
	fmt.Fprintf(&b.buf, "  (princ \"\\n%s drawing completed!\\n\")(princ))\n", escape(title))
	b.buf.WriteString("(princ \"\\nLISP file loaded. Type 'DrawMyObject' to run.\")(princ)\n")
	b.ended = true
	return nil
}

// CreateLayer writes the layer setup, loading the linetype when needed.
func (b *Backend) CreateLayer(l draft.Layer) {
	if _, dup := b.layers[l.Key]; !dup {
		b.order = append(b.order, l.Key)
	}
	b.layers[l.Key] = l
	name := quote(l.Name)
	color := quote(strconv.Itoa(l.Color))
	if l.LineType == "" {
		fmt.Fprintf(&b.buf, "  (command \"_.-LAYER\" \"_M\" %s \"_C\" %s \"\" \"\")\n", name, color)
		return
	}
	lt := quote(l.LineType)
	fmt.Fprintf(&b.buf, "  (if (not (tblsearch \"LTYPE\" %s)) (command \"_.-LINETYPE\" \"_L\" %s \"acad.lin\" \"\" \"\"))", lt, lt)
	fmt.Fprintf(&b.buf, "(command \"_.-LAYER\" \"_M\" %s \"_C\" %s \"\" \"_L\" %s \"\" \"\")\n", name, color, lt)
}

// header writes the system variables once all layers are known.
func (b *Backend) header() {
	if b.headerDone {
		return
	}
	b.headerDone = true
	dimColor := 2
	if l, ok := b.layers[draft.LayerDimensions]; ok {
		dimColor = l.Color
	}
	s := b.meta.Style
	b.buf.WriteString("  (setvar \"LTSCALE\" 5.0)\n")
	fmt.Fprintf(&b.buf, "  (setvar \"DIMTXT\" %s)\n", num(s.TextHeight))
	fmt.Fprintf(&b.buf, "  (setvar \"DIMASZ\" %s)\n", num(s.ArrowSize))
	for _, v := range []string{"DIMCLRD", "DIMCLRE", "DIMCLRT"} {
		fmt.Fprintf(&b.buf, "  (setvar %q %d)\n", v, dimColor)
	}
	b.buf.WriteString("  (setvar \"DIMDEC\" 2)\n")
}

// SelectLayer makes a layer current.
func (b *Backend) SelectLayer(key draft.LayerKey) {
	b.header()
	name := string(key)
	if l, ok := b.layers[key]; ok {
		name = l.Name
	}
	b.command("_.-LAYER", "_S", name, "")
}

// Line draws a segment.
func (b *Backend) Line(c recording.LineCommand) {
	b.command("_.LINE", pt(c.From), pt(c.To), "")
}

// Rectangle draws a rectangle.
func (b *Backend) Rectangle(c recording.RectangleCommand) {
	b.command("_.RECTANG", pt(c.Min), pt(c.Max))
}

// Circle draws a circle.
func (b *Backend) Circle(c recording.CircleCommand) {
	b.command("_.CIRCLE", pt(c.Center), num(c.Radius))
}

// Arc draws an arc through its start and end points.
func (b *Backend) Arc(c recording.ArcCommand) {
	start := c.Center.Polar(c.Start, c.Radius)
	end := c.Center.Polar(c.End, c.Radius)
	b.command("_.ARC", "_C", pt(c.Center), pt(start), pt(end))
}

// Polygon draws a regular polygon.
func (b *Backend) Polygon(c recording.PolygonCommand) {
	mode := "_Circumscribed"
	if c.Inscribed {
		mode = "_Inscribed"
	}
	b.command("_.POLYGON", strconv.Itoa(c.Sides), pt(c.Center), mode, num(c.Radius))
}

// Polyline draws a polyline.
func (b *Backend) Polyline(c recording.PolylineCommand) {
	args := []string{"_.PLINE"}
	for _, p := range c.Points {
		args = append(args, pt(p))
	}
	if c.Closed {
		args = append(args, "_C")
	} else {
		args = append(args, "")
	}
	b.command(args...)
}

// Hatch sets the pattern and picks the boundary interior.
func (b *Backend) Hatch(c recording.HatchCommand) {
	if len(c.Boundary) < 3 {
		return
	}
	fmt.Fprintf(&b.buf, "  (command \"_.SETVAR\" \"HPNAME\" %s)(command \"_.SETVAR\" \"HPSCALE\" %s)\n",
		quote(c.Pattern), num(c.Scale))
	b.command("_-HATCH", pt(recording.Centroid(c.Boundary)), "")
}

// Text places justified text.
func (b *Backend) Text(c recording.TextCommand) {
	b.command("_.TEXT", "_J", "_"+c.Justify.String(), pt(c.Pos), num(c.Height), num(c.Rotation), hostText(c.Value))
}

// Leader draws a leader without annotation.
func (b *Backend) Leader(c recording.LeaderCommand) {
	if len(c.Points) < 2 {
		return
	}
	args := []string{"_.LEADER"}
	for _, p := range c.Points {
		args = append(args, pt(p))
	}
	args = append(args, "", "", "_N")
	b.command(args...)
}

// LinearDimension delegates to DIMLINEAR or DIMALIGNED.
func (b *Backend) LinearDimension(c recording.LinearDimensionCommand) {
	args := []string{"_.DIMLINEAR", pt(c.P1), pt(c.P2)}
	switch c.Axis {
	case recording.AxisHorizontal:
		args = append(args, "_H")
	case recording.AxisVertical:
		args = append(args, "_V")
	default:
		args[0] = "_.DIMALIGNED"
	}
	if c.Text != "" {
		args = append(args, "_T", hostText(c.Text))
	}
	args = append(args, pt(c.TextPos))
	b.command(args...)
}

// DiameterDimension delegates to DIMDIAMETER, picking the circle on the
// side of the text.
func (b *Backend) DiameterDimension(c recording.DiameterDimensionCommand) {
	dir := c.TextPos.Sub(c.Center)
	on := c.Center.Offset(c.Radius, 0)
	if d := c.Center.Distance(c.TextPos); d > 0 {
		on = c.Center.Add(dir.Mul(c.Radius / d))
	}
	args := []string{"_.DIMDIAMETER", pt(on)}
	if c.Text != "" {
		args = append(args, "_T", hostText(c.Text))
	}
	args = append(args, pt(c.TextPos))
	b.command(args...)
}

// Bytes returns the script. It should only be called after End.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

// WriteTo writes the script to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, fmt.Errorf("lisp: WriteTo called before End")
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the script to a file.
func (b *Backend) SaveToFile(path string) error {
	if !b.ended {
		return fmt.Errorf("lisp: SaveToFile called before End")
	}
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

// command writes one (command ...) call with every argument quoted.
func (b *Backend) command(args ...string) {
	b.buf.WriteString("  (command")
	for _, a := range args {
		b.buf.WriteByte(' ')
		b.buf.WriteString(quote(a))
	}
	b.buf.WriteString(")\n")
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pt(p draft.Point) string {
	return num(p.X) + "," + num(p.Y)
}

// hostText maps drawing text to host text codes.
func hostText(s string) string {
	s = strings.ReplaceAll(s, recording.DiameterSign, "%%c")
	s = strings.ReplaceAll(s, "±", "%%p")
	s = strings.ReplaceAll(s, "°", "%%d")
	var sb strings.Builder
	for _, r := range s {
		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}
		fmt.Fprintf(&sb, "\\U+%04X", r)
	}
	return sb.String()
}

// quote returns s as a LISP string literal.
func quote(s string) string {
	return `"` + escape(s) + `"`
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
