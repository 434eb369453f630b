package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/recording"
)

func render(t *testing.T, draw func(r *recording.Recorder)) string {
	t.Helper()
	rec := recording.NewRecorder(draft.DefaultOptions())
	draw(rec)
	b := NewBackend()
	if err := rec.FinishRecording("Hex <Nut>").Playback(b); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	return buf.String()
}

// wellFormed decodes the whole document.
func wellFormed(t *testing.T, doc string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, doc)
		}
	}
}

func TestRegistered(t *testing.T) {
	f, err := recording.Lookup("svg")
	if err != nil {
		t.Fatal(err)
	}
	if f.Extension != ".svg" || f.MediaType != MediaType {
		t.Errorf("format = %+v", f)
	}
	if _, ok := f.New().(*Backend); !ok {
		t.Errorf("New() = %T", f.New())
	}
}

func TestDocument(t *testing.T) {
	out := render(t, func(r *recording.Recorder) {
		r.Select(draft.LayerOutline)
		r.Rectangle(draft.Pt(0, 0), draft.Pt(20, 20))
		r.Circle(draft.Pt(10, 45), 10)
		r.Arc(draft.Pt(10, 45), 4, 135, 45)
		r.Polygon(draft.Pt(10, 45), 8, 6, true)
		r.Select(draft.LayerHidden)
		r.Line(draft.Pt(7, 0), draft.Pt(7, 20))
		r.Select(draft.LayerHatch)
		r.HatchRect("ANSI31", 15, draft.R(0, 0, 20, 20))
		r.Select(draft.LayerDimensions)
		r.LinearDimension(draft.Pt(0, 0), draft.Pt(0, 20), draft.Pt(-27.5, 10), recording.AxisVertical, "<>±0.1")
		r.DiameterDimension(draft.Pt(10, 45), 10, draft.Pt(30, 60), "")
		r.Select(draft.LayerAnnotations)
		r.Leader(draft.Pt(10, 0), draft.Pt(10, -20))
		r.Text(draft.Pt(10, -20), 3.5, 0, recording.JustifyMiddleCenter, "-A-")
	})
	wellFormed(t, out)

	for _, want := range []string{
		"<title>Hex &lt;Nut&gt;</title>",
		`data-layer="Outline" stroke="#000000"`,
		`data-layer="Hidden" stroke="#808080"`,
		`stroke-dasharray="3 1.5"`,
		`<circle cx=`,
		`<path d="M`,
		`data-pattern="ANSI31"`,
		">20±0.1</text>",
		">⌀20</text>",
		">-A-</text>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if got := strings.Count(out, "<g class=\"layer\""); got != 5 {
		t.Errorf("layer groups = %d, want 5", got)
	}
}

func TestYFlip(t *testing.T) {
	b := NewBackend()
	if err := b.Begin(recording.Meta{Bounds: draft.R(0, 0, 20, 20)}); err != nil {
		t.Fatal(err)
	}
	x, y := b.xy(draft.Pt(0, 20))
	if x != "10" || y != "10" {
		t.Errorf("xy(0,20) = %s,%s, want 10,10", x, y)
	}
	_, y = b.xy(draft.Pt(0, 0))
	if y != "30" {
		t.Errorf("xy(0,0).y = %s, want 30", y)
	}
}

func TestEmptyRecording(t *testing.T) {
	out := render(t, func(r *recording.Recorder) {})
	wellFormed(t, out)
	if !strings.Contains(out, `viewBox="0 0 120 120"`) {
		t.Errorf("empty drawing viewBox not defaulted: %s", out)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-0.0001, "0"},
		{13.8564, "13.856"},
	}
	for _, tt := range tests {
		if got := num(tt.v); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
