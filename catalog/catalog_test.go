package catalog

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/geometry"
	"github.com/gogpu/draft/part"
	"github.com/gogpu/draft/recording"
	"github.com/gogpu/draft/table"
)

const eps = 1e-9

func nearPt(p, q draft.Point) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// fixtures holds one valid document per kind.
var fixtures = map[part.Kind]string{
	part.KindCylinder: `
shape: cylinder
parameters: {radius: 10, height: 20, height_tolerance: "±0.1"}
drawing_options: {insertion_point: [0, 0], spacing: 15}
datums: [{label: A, attach_to: bottom}]
geometric_tolerances: [{type: perpendicularity, tolerance: "0.05", datum_references: [A], attach_to: left_side}]
surface_finish: {top_surface: ["Ra 1.6", 0, 5]}
`,
	part.KindCuboid: `
shape: cuboid
parameters: {length: 30, width: 20, height: 10}
datums: [{label: A, attach_to: front_view_bottom_mid}]
`,
	part.KindHexPrism: `
shape: hexagonal_prism
parameters: {side_length: 10, height: 15}
surface_finish: {top_surface: {symbol: "Ra 0.8", rotation: 0}}
`,
	part.KindHexNut: `
shape: hexagonal_nut
parameters: {side_length: 8, height: 6, hole: {diameter: 7}}
datums: [{label: A, attach_face: bottom}]
geometric_tolerances: [{type: flatness, tolerance: "0.02", leader_attach_point: side_face_of_right_view}]
`,
	part.KindHexScrew: `
shape: hexagonal_screw
parameters: {head: {side_length: 8, height: 5}, shaft: {diameter: 8, length: 30}}
`,
	part.KindSocketHeadCapScrew: `
shape: socket_head_cap_screw
parameters:
  head_diameter: 16
  head_height: 10
  shaft_diameter: 10
  shaft_length: 40
  socket_depth: 6
  socket_width_across_flats: 8
  thread_depth: 1
geometric_tolerances: [{type: position, tolerance: "0.1", attach_to: head_side}]
`,
	part.KindScrewNutAssembly: `
shape: screw_nut_assembly
parameters: {total_height_tolerance: "±0.2"}
components:
  screw: {name: Bolt, parameters: {head_width: 13, head_height: 5.5, shaft_diameter: 8, shaft_length: 40}}
  nut: {quantity: 2, parameters: {width: 13, height: 6.5, hole_diameter: 8}}
drawing_options: {draw_section_view: true}
`,
	part.KindCuboidCylinderAssembly: `
shape: cuboid_cylinder_assembly
components:
  cuboid: {parameters: {length: 50, width: 40, height: 20}}
  cylinder: {parameters: {radius: 10, height: 30}}
surface_finish: {hole_wall: ["Ra 3.2", 90, 5]}
`,
	part.KindCylinderScrewNutAssembly: `
shape: cylinder_screw_nut_assembly
components:
  cylinder: {parameters: {radius: 15, height: 20}}
  screw: {parameters: {head: {side_length: 8, height: 5}, shaft: {diameter: 8, length: 35}}}
  nut: {parameters: {side_length: 8, height: 6, hole: {diameter: 8}}}
drawing_options: {draw_section_view: true}
`,
}

func load(t *testing.T, src string) *config.Document {
	t.Helper()
	doc, err := config.Parse([]byte(src))
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}
	return doc
}

func generate(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Generate(load(t, src))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return res
}

func ofType[T recording.Command](cmds []recording.Command) []T {
	var out []T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func texts(res *Result) []string {
	var out []string
	for _, c := range ofType[recording.TextCommand](res.Commands()) {
		out = append(out, c.Value)
	}
	return out
}

func TestKinds(t *testing.T) {
	if got, want := Kinds(), part.Kinds(); len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want one generator per part kind", got)
	}
	for _, k := range part.Kinds() {
		if _, ok := fixtures[k]; !ok {
			t.Errorf("no fixture for %s", k)
		}
	}
	if Title(part.KindHexNut) != "Hexagonal Nut" {
		t.Errorf("Title(hexagonal_nut) = %q", Title(part.KindHexNut))
	}
}

func TestGenerateEveryKind(t *testing.T) {
	for kind, src := range fixtures {
		t.Run(string(kind), func(t *testing.T) {
			res := generate(t, src)
			if res.Kind != kind {
				t.Errorf("Kind = %s, want %s", res.Kind, kind)
			}
			if err := res.CheckLayers(); err != nil {
				t.Errorf("CheckLayers() = %v", err)
			}
			if n := len(res.Groups()); n < 2 {
				t.Errorf("%d primitive groups, want the views and the tables closed separately", n)
			}
			if n := res.Count(recording.CmdCreateLayer); n != 8 {
				t.Errorf("CreateLayer count = %d, want 8", n)
			}
			if res.Count(recording.CmdLinearDimension)+res.Count(recording.CmdDiameterDimension) == 0 {
				t.Error("no dimensions drawn")
			}
			if len(res.Skipped) != 0 {
				t.Errorf("Skipped = %v, want none", res.Skipped)
			}
			if !slices.Contains(texts(res), table.ParamTitle) {
				t.Error("parameter table missing")
			}
			if res.Meta().Title != Title(kind) {
				t.Errorf("Meta().Title = %q, want %q", res.Meta().Title, Title(kind))
			}
		})
	}
}

func TestViewsDoNotOverlap(t *testing.T) {
	for kind, src := range fixtures {
		views := generate(t, src).Geometry.Views()
		for i := range views {
			for j := i + 1; j < len(views); j++ {
				if views[i].Extent.Overlaps(views[j].Extent) {
					t.Errorf("%s: views %s and %s overlap", kind, views[i].Name, views[j].Name)
				}
			}
		}
	}
}

func TestCylinderViews(t *testing.T) {
	res := generate(t, fixtures[part.KindCylinder])

	rects := ofType[recording.RectangleCommand](res.Commands())
	front := slices.ContainsFunc(rects, func(r recording.RectangleCommand) bool {
		return nearPt(r.Min, draft.Pt(0, 0)) && nearPt(r.Max, draft.Pt(20, 20))
	})
	if !front {
		t.Errorf("front rectangle (0,0)-(20,20) missing from %v", rects)
	}

	circles := ofType[recording.CircleCommand](res.Commands())
	top := slices.ContainsFunc(circles, func(c recording.CircleCommand) bool {
		return nearPt(c.Center, draft.Pt(10, 45)) && c.Radius == 10
	})
	if !top {
		t.Errorf("top circle at (10,45) r=10 missing from %v", circles)
	}

	dims := ofType[recording.LinearDimensionCommand](res.Commands())
	if !slices.ContainsFunc(dims, func(d recording.LinearDimensionCommand) bool { return d.Text == "<>±0.1" }) {
		t.Error("height dimension does not carry the tolerance")
	}
	if !slices.ContainsFunc(dims, func(d recording.LinearDimensionCommand) bool { return d.Text == "⌀<>" }) {
		t.Error("diameter dimension missing")
	}
}

func TestHexNutGeometry(t *testing.T) {
	res := generate(t, fixtures[part.KindHexNut])
	if got := res.Geometry.Scalar("corners"); got != 16 {
		t.Errorf("across corners = %v, want 16", got)
	}
	if got, want := res.Geometry.Scalar("flats"), 8*math.Sqrt(3); math.Abs(got-want) > 1e-9 {
		t.Errorf("across flats = %v, want %v", got, want)
	}
	polys := ofType[recording.PolygonCommand](res.Commands())
	if len(polys) != 1 || polys[0].Sides != 6 || polys[0].Radius != 8 || !polys[0].Inscribed {
		t.Errorf("top hexagon = %+v", polys)
	}
}

func TestSectionToggle(t *testing.T) {
	res := generate(t, fixtures[part.KindHexNut])
	if res.Count(recording.CmdHatch) == 0 {
		t.Error("nut section view is on by default but nothing is hatched")
	}
	if _, ok := res.Geometry.View(geometry.Section); !ok {
		t.Error("section view extent missing")
	}

	doc := load(t, fixtures[part.KindHexNut])
	off := false
	doc.Options.SectionView = &off
	res, err := Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	if n := res.Count(recording.CmdHatch); n != 0 {
		t.Errorf("hatch count with section off = %d, want 0", n)
	}
	if _, ok := res.Geometry.View(geometry.Section); ok {
		t.Error("section view produced while disabled")
	}
}

func TestHexNutSectionRegions(t *testing.T) {
	tests := []struct {
		hole    string
		hatches int
	}{
		{"7", 4}, // inner edges clear the hole and split each wall
		{"9", 2},
	}
	for _, tt := range tests {
		res := generate(t, "shape: hexagonal_nut\nparameters: {side_length: 8, height: 6, hole: {diameter: "+tt.hole+"}}\n")
		hatches := ofType[recording.HatchCommand](res.Commands())
		if len(hatches) != tt.hatches {
			t.Errorf("hole %s: %d hatches, want %d", tt.hole, len(hatches), tt.hatches)
		}
		for _, h := range hatches {
			box := draft.EmptyRect()
			for _, p := range h.Boundary {
				box = box.Include(p)
			}
			for _, l := range ofType[recording.LineCommand](res.Commands()) {
				if l.From.X != l.To.X || math.Max(l.From.Y, l.To.Y) <= box.Min.Y || math.Min(l.From.Y, l.To.Y) >= box.Max.Y {
					continue
				}
				if x := l.From.X; x > box.Min.X+1e-9 && x < box.Max.X-1e-9 {
					t.Errorf("hole %s: line at x=%v splits hatch region %v", tt.hole, x, box)
				}
			}
		}
	}
}

func TestHatchOptions(t *testing.T) {
	doc := load(t, fixtures[part.KindHexNut])
	doc.Options.Hatch = &draft.HatchStyle{Pattern: "ANSI37", Color: 3}
	res, err := Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range ofType[recording.HatchCommand](res.Commands()) {
		if h.Pattern != "ANSI37" || h.Scale != 15 {
			t.Errorf("hatch = %s at %v, want ANSI37 at the default scale", h.Pattern, h.Scale)
		}
	}
	for _, c := range ofType[recording.CreateLayerCommand](res.Commands()) {
		if c.Layer.Key == draft.LayerHatch && c.Layer.Color != 3 {
			t.Errorf("hatch layer color = %d, want 3", c.Layer.Color)
		}
	}
}

func TestAssemblyTables(t *testing.T) {
	res := generate(t, fixtures[part.KindScrewNutAssembly])
	got := texts(res)
	for _, want := range []string{table.BOMTitle, table.ParamTitle, "Bolt", "Nut", "1", "2"} {
		if !slices.Contains(got, want) {
			t.Errorf("text %q missing", want)
		}
	}

	// One balloon per component, on the annotations layer.
	th := draft.DefaultTextHeight
	balloons := 0
	for _, c := range ofType[recording.CircleCommand](res.Commands()) {
		if math.Abs(c.Radius-1.5*th) <= eps {
			balloons++
		}
	}
	if balloons != 2 {
		t.Errorf("balloons = %d, want 2", balloons)
	}
}

func TestTablePlacement(t *testing.T) {
	res := generate(t, fixtures[part.KindCylinder])
	views := res.Geometry.Bounds()
	for _, c := range ofType[recording.TextCommand](res.Commands()) {
		if c.Value == table.ParamTitle && c.Pos.X <= views.Max.X {
			t.Errorf("parameter table title at %v, want right of the views (max x %v)", c.Pos, views.Max.X)
		}
	}

	res = generate(t, fixtures[part.KindCuboidCylinderAssembly])
	views = res.Geometry.Bounds()
	for _, c := range ofType[recording.TextCommand](res.Commands()) {
		switch c.Value {
		case table.ParamTitle:
			if c.Pos.Y >= views.Min.Y {
				t.Errorf("assembly parameter table at %v, want below the views", c.Pos)
			}
		case table.BOMTitle:
			if c.Pos.X <= views.Max.X {
				t.Errorf("BOM at %v, want right of the views", c.Pos)
			}
		}
	}
}

func TestSkippedAnnotations(t *testing.T) {
	res := generate(t, `
shape: cylinder
parameters: {radius: 5, height: 10}
datums: [{label: A, attach_to: nowhere}, {label: B, attach_to: bottom}]
surface_finish: {underside: ["Ra 6.3", 0, 5]}
`)
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped = %v, want 2", res.Skipped)
	}
	if res.Skipped[0].Selector != "nowhere" || res.Skipped[0].Category != annotate.CategoryDatum {
		t.Errorf("Skipped[0] = %+v", res.Skipped[0])
	}
	if !slices.Contains(texts(res), "-B-") {
		t.Error("known datum B was not drawn")
	}
}

func TestCuboidCylinderSectionFinishes(t *testing.T) {
	doc := load(t, fixtures[part.KindCuboidCylinderAssembly])
	sel, err := Selectors(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(sel.Names(annotate.CategoryFinish), "hole_wall") {
		t.Error("hole_wall missing with the section on")
	}

	off := false
	doc.Options.SectionView = &off
	sel, err = Selectors(doc)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(sel.Names(annotate.CategoryFinish), "hole_wall") {
		t.Error("hole_wall offered without a section view")
	}
	res, err := Generate(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Selector != "hole_wall" {
		t.Errorf("Skipped = %v, want hole_wall", res.Skipped)
	}
}

func TestShortShaftIsNotAnError(t *testing.T) {
	res := generate(t, `
shape: cylinder_screw_nut_assembly
components:
  cylinder: {parameters: {radius: 15, height: 20}}
  screw: {parameters: {head: {side_length: 8, height: 5}, shaft: {diameter: 8, length: 22}}}
  nut: {parameters: {side_length: 8, height: 6, hole: {diameter: 8}}}
`)
	if err := res.CheckLayers(); err != nil {
		t.Error(err)
	}
	if res.Count(recording.CmdRectangle) == 0 {
		t.Error("no outlines generated")
	}
}

func TestGenerateMismatch(t *testing.T) {
	doc := &config.Document{
		Spec: &part.ScrewNutAssembly{
			Screw: part.ScrewParams{HeadWidth: 13, HeadHeight: 5, ShaftDiameter: 8, ShaftLength: 40},
			Nut:   part.NutParams{Width: 13, Height: 6, HoleDiameter: 10},
		},
		Options: draft.DefaultOptions(),
	}
	res, err := Generate(doc)
	if !errors.Is(err, part.ErrDimensionMismatch) {
		t.Fatalf("Generate() error = %v, want DimensionMismatchError", err)
	}
	if res != nil {
		t.Errorf("Generate() = %d commands, want none", res.Len())
	}
}

func TestGenerateUnsupported(t *testing.T) {
	for _, doc := range []*config.Document{nil, {}} {
		if _, err := Generate(doc); !errors.Is(err, part.ErrUnsupportedShape) {
			t.Errorf("Generate(%v) error = %v, want ErrUnsupportedShape", doc, err)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, fixtures[part.KindSocketHeadCapScrew]).Commands()
	b := generate(t, fixtures[part.KindSocketHeadCapScrew]).Commands()
	if len(a) != len(b) {
		t.Fatalf("command counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type() != b[i].Type() {
			t.Fatalf("command %d: %s vs %s", i, a[i].Type(), b[i].Type())
		}
	}
}

func TestGenerateAll(t *testing.T) {
	docs := []*config.Document{
		load(t, fixtures[part.KindCylinder]),
		{Spec: &part.Cylinder{Height: 3}},
		load(t, fixtures[part.KindHexNut]),
	}
	out := GenerateAll(context.Background(), docs, 2)
	if len(out) != 3 {
		t.Fatalf("len(GenerateAll()) = %d, want 3", len(out))
	}
	if out[0].Err != nil || out[0].Result.Kind != part.KindCylinder {
		t.Errorf("out[0] = %+v", out[0])
	}
	if !errors.Is(out[1].Err, part.ErrMissingParameter) || out[1].Result != nil {
		t.Errorf("out[1].Err = %v, want missing parameter", out[1].Err)
	}
	if out[2].Err != nil || out[2].Result.Kind != part.KindHexNut {
		t.Errorf("out[2] = %+v", out[2])
	}
	for i, r := range out {
		if r.Doc != docs[i] {
			t.Errorf("out[%d].Doc is not the input document", i)
		}
	}
}

func TestGenerateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	docs := []*config.Document{load(t, fixtures[part.KindCuboid]), load(t, fixtures[part.KindCuboid])}
	for i, r := range GenerateAll(ctx, docs, 1) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("out[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}
