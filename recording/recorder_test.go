package recording

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/draft"
)

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		t    CommandType
		want string
	}{
		{CmdCreateLayer, "CreateLayer"},
		{CmdPolygon, "Polygon"},
		{CmdDiameterDimension, "DiameterDimension"},
		{cmdTypeCount, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.t, got, tt.want)
		}
	}
	if CmdSelectLayer.IsPrimitive() || !CmdLine.IsPrimitive() || cmdTypeCount.IsPrimitive() {
		t.Error("IsPrimitive() misclassifies layer or sentinel types")
	}
}

func TestNewRecorderCreatesLayers(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	r := rec.FinishRecording("empty")
	if got := r.Count(CmdCreateLayer); got != 8 {
		t.Errorf("CreateLayer count = %d, want 8", got)
	}
	first := r.Commands()[0].(CreateLayerCommand)
	if first.Layer.Key != draft.LayerOutline {
		t.Errorf("first layer = %q, want outline", first.Layer.Key)
	}
	if !r.Meta().Bounds.IsEmpty() {
		t.Errorf("empty recording bounds = %v", r.Meta().Bounds)
	}
}

func TestPrimitiveBeforeSelectPanics(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	defer func() {
		if recover() == nil {
			t.Error("Line before Select did not panic")
		}
	}()
	rec.Line(draft.Pt(0, 0), draft.Pt(1, 1))
}

func TestEndGroupForgetsLayer(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	rec.Select(draft.LayerOutline)
	rec.Line(draft.Pt(0, 0), draft.Pt(1, 1))
	rec.EndGroup()
	defer func() {
		if recover() == nil {
			t.Error("Line after EndGroup inherited the previous layer")
		}
	}()
	rec.Line(draft.Pt(1, 1), draft.Pt(2, 2))
}

func TestSelectUnknownPanics(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	defer func() {
		if recover() == nil {
			t.Error("Select(unknown) did not panic")
		}
	}()
	rec.Select("nope")
}

func TestRecorderBounds(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	rec.Select(draft.LayerOutline)
	rec.Rectangle(draft.Pt(20, 20), draft.Pt(0, 0))
	rec.Circle(draft.Pt(10, 45), 10)
	b := rec.Bounds()
	if b != draft.R(0, 0, 20, 55) {
		t.Errorf("Bounds() = %v, want (0,0)-(20,55)", b)
	}

	rec.Select(draft.LayerAnnotations)
	rec.Text(draft.Pt(100, 0), 3.5, 0, JustifyBottomLeft, "Parameter List")
	if rec.Bounds().Max.X <= 100 {
		t.Errorf("text did not extend bounds: %v", rec.Bounds())
	}
}

func TestRecordingIsImmutable(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	rec.Select(draft.LayerOutline)
	pts := []draft.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	rec.Polyline(true, pts...)
	r := rec.FinishRecording("t")
	n := r.Len()

	pts[0] = draft.Pt(99, 99)
	rec.Line(draft.Pt(0, 0), draft.Pt(1, 0))
	if r.Len() != n {
		t.Errorf("Len() = %d after further recording, want %d", r.Len(), n)
	}
	last := r.Commands()[n-1].(PolylineCommand)
	if last.Points[0] != draft.Pt(0, 0) {
		t.Error("recording shares point storage with the caller")
	}
}

func TestPlayback(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	rec.Select(draft.LayerOutline)
	rec.Rectangle(draft.Pt(0, 0), draft.Pt(20, 20))
	rec.Polygon(draft.Pt(0, 0), 8, 6, true)
	rec.Select(draft.LayerDimensions)
	rec.LinearDimension(draft.Pt(0, 0), draft.Pt(20, 0), draft.Pt(10, -10), AxisHorizontal, "")
	rec.DiameterDimension(draft.Pt(0, 0), 5, draft.Pt(10, 10), "")
	r := rec.FinishRecording("Cylinder")

	m := newMockBackend("m")
	if err := r.Playback(m); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	if m.beginCalls != 1 || m.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", m.beginCalls, m.endCalls)
	}
	if m.meta.Title != "Cylinder" {
		t.Errorf("meta title = %q", m.meta.Title)
	}
	if len(m.calls) != r.Len() {
		t.Errorf("backend saw %d commands, want %d", len(m.calls), r.Len())
	}
	if len(m.selected) != 2 || m.selected[1] != draft.LayerDimensions {
		t.Errorf("selected = %v", m.selected)
	}
}

type bogus struct{}

func (bogus) Type() CommandType { return cmdTypeCount }

func TestPlaybackUnsupported(t *testing.T) {
	r := NewRecording(Meta{}, []Command{bogus{}})
	if err := r.Playback(newMockBackend("m")); err == nil {
		t.Error("Playback() of unknown command returned nil error")
	}
}

func TestCheckLayers(t *testing.T) {
	outline := draft.DefaultLayers()[draft.LayerOutline]
	tests := []struct {
		name    string
		cmds    []Command
		wantIdx int // -1 means valid
	}{
		{"valid", []Command{
			CreateLayerCommand{Layer: outline},
			SelectLayerCommand{Key: draft.LayerOutline},
			LineCommand{},
		}, -1},
		{"no select", []Command{
			CreateLayerCommand{Layer: outline},
			LineCommand{},
		}, 1},
		{"uncreated layer", []Command{
			CreateLayerCommand{Layer: outline},
			SelectLayerCommand{Key: draft.LayerHatch},
			HatchCommand{},
		}, 1},
		{"unnamed layer", []Command{
			CreateLayerCommand{Layer: draft.Layer{Key: "x"}},
		}, 0},
		{"empty", nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLayers(tt.cmds)
			if tt.wantIdx < 0 {
				if err != nil {
					t.Errorf("CheckLayers() = %v, want nil", err)
				}
				return
			}
			var le *LayerError
			if !errors.As(err, &le) {
				t.Fatalf("CheckLayers() = %v, want *LayerError", err)
			}
			if le.Index != tt.wantIdx {
				t.Errorf("Index = %d, want %d", le.Index, tt.wantIdx)
			}
		})
	}
}

func TestCheckLayersGroups(t *testing.T) {
	outline := draft.DefaultLayers()[draft.LayerOutline]
	hatch := draft.DefaultLayers()[draft.LayerHatch]
	stream := []Command{
		CreateLayerCommand{Layer: outline},
		SelectLayerCommand{Key: draft.LayerOutline},
		LineCommand{},
		CircleCommand{},
	}
	tests := []struct {
		name    string
		cmds    []Command
		groups  []int
		wantIdx int // -1 means valid
	}{
		{"one group", stream, nil, -1},
		{"boundary at the end", stream, []int{4}, -1},
		{"group inherits the layer", stream, []int{3}, 3},
		{"unsorted boundaries", stream, []int{4, 3}, 3},
		{"create clears the selection", []Command{
			CreateLayerCommand{Layer: outline},
			SelectLayerCommand{Key: draft.LayerOutline},
			CreateLayerCommand{Layer: hatch},
			LineCommand{},
		}, nil, 3},
		{"group selects again", []Command{
			CreateLayerCommand{Layer: outline},
			SelectLayerCommand{Key: draft.LayerOutline},
			LineCommand{},
			SelectLayerCommand{Key: draft.LayerOutline},
			LineCommand{},
		}, []int{3}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLayers(tt.cmds, tt.groups...)
			if tt.wantIdx < 0 {
				if err != nil {
					t.Errorf("CheckLayers() = %v, want nil", err)
				}
				return
			}
			var le *LayerError
			if !errors.As(err, &le) || le.Index != tt.wantIdx {
				t.Errorf("CheckLayers() = %v, want LayerError at %d", err, tt.wantIdx)
			}
		})
	}
}

func TestRecordingGroups(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	created := rec.Len()
	rec.Select(draft.LayerOutline)
	rec.Line(draft.Pt(0, 0), draft.Pt(1, 1))
	rec.EndGroup()
	rec.EndGroup()
	rec.Select(draft.LayerTable)
	rec.Rect(draft.R(0, 0, 2, 2))
	rec.EndGroup()

	r := rec.FinishRecording("t")
	if got, want := r.Groups(), []int{created + 2, created + 4}; !slices.Equal(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
	if err := r.CheckLayers(); err != nil {
		t.Errorf("CheckLayers() = %v", err)
	}
}

func TestRecorderOutputPassesCheck(t *testing.T) {
	rec := NewRecorder(draft.DefaultOptions())
	rec.Select(draft.LayerHatch)
	rec.HatchRect("ANSI31", 1, draft.R(0, 0, 10, 10))
	rec.Select(draft.LayerAnnotations)
	rec.Leader(draft.Pt(0, 0), draft.Pt(5, 5))
	if err := CheckLayers(rec.FinishRecording("t").Commands()); err != nil {
		t.Errorf("CheckLayers() = %v", err)
	}
}

func TestTextBoxMiddleCenter(t *testing.T) {
	c := TextCommand{Pos: draft.Pt(10, 10), Height: 2, Justify: JustifyMiddleCenter, Value: "A"}
	box := TextBox(c)
	if !near(box[0].Y, 9) || !near(box[2].Y, 11) {
		t.Errorf("TextBox() = %v, want vertical span 9..11", box)
	}
	if !near((box[0].X+box[1].X)/2, 10) {
		t.Errorf("TextBox() not centered: %v", box)
	}
}
