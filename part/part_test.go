package part

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if got, _ := ParseKind("hex_nut"); got != KindHexNut {
		t.Errorf("ParseKind(hex_nut) = %q, want %q", got, KindHexNut)
	}

	_, err := ParseKind("torus")
	var unsupported *UnsupportedShapeError
	if !errors.As(err, &unsupported) || unsupported.Shape != "torus" {
		t.Fatalf("ParseKind(torus) error = %v, want UnsupportedShapeError", err)
	}
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Error("errors.Is(err, ErrUnsupportedShape) = false")
	}
}

func TestKindsCount(t *testing.T) {
	if n := len(Kinds()); n != 9 {
		t.Errorf("len(Kinds()) = %d, want 9", n)
	}
	assemblies := 0
	for _, k := range Kinds() {
		if k.IsAssembly() {
			assemblies++
		}
	}
	if assemblies != 3 {
		t.Errorf("assemblies = %d, want 3", assemblies)
	}
}

func TestMissingParameter(t *testing.T) {
	tests := []struct {
		spec  Spec
		field string
	}{
		{&Cylinder{Height: 20}, "radius"},
		{&Cuboid{Length: 1, Width: 2}, "height"},
		{&HexNut{SideLength: 8, Height: 4}, "hole.diameter"},
		{&HexScrew{Head: HexHead{SideLength: 8, Height: 5}, Shaft: Shaft{Diameter: 6}}, "shaft.length"},
		{&SocketHeadCapScrew{HeadDiameter: 16, HeadHeight: 10, ShaftDiameter: 10, ShaftLength: 40, SocketDepth: 6, SocketWidthAcrossFlats: 8}, "thread_depth"},
		{&CuboidCylinderAssembly{Cuboid: Cuboid{Length: 50, Width: 40, Height: 20}}, "cylinder.radius"},
	}
	for _, tt := range tests {
		err := tt.spec.Validate()
		var missing *MissingParameterError
		if !errors.As(err, &missing) {
			t.Errorf("%s: Validate() = %v, want MissingParameterError", tt.spec.Kind(), err)
			continue
		}
		if missing.Field != tt.field || missing.Kind != tt.spec.Kind() {
			t.Errorf("%s: missing = %+v, want field %q", tt.spec.Kind(), missing, tt.field)
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("Error() = %q does not name the field", err.Error())
		}
	}
}

func TestInvalidParameter(t *testing.T) {
	err := (&Cylinder{Radius: -1, Height: 5}).Validate()
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) || invalid.Field != "radius" {
		t.Fatalf("Validate() = %v, want InvalidParameterError for radius", err)
	}
	err = (&Cuboid{Length: math.NaN(), Width: 1, Height: 1}).Validate()
	if !errors.As(err, &invalid) {
		t.Errorf("NaN length: Validate() = %v, want InvalidParameterError", err)
	}
}

func TestScrewNutMismatch(t *testing.T) {
	a := &ScrewNutAssembly{
		Screw: ScrewParams{HeadWidth: 16, HeadHeight: 6, ShaftDiameter: 8, ShaftLength: 40},
		Nut:   NutParams{Width: 14, Height: 6, HoleDiameter: 10},
	}
	err := a.Validate()
	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Validate() = %v, want DimensionMismatchError", err)
	}
	if mismatch.ValueA != 8 || mismatch.ValueB != 10 {
		t.Errorf("mismatch values = %v, %v, want 8, 10", mismatch.ValueA, mismatch.ValueB)
	}
	if mismatch.FieldA != "screw.shaft_diameter" || mismatch.FieldB != "nut.hole_diameter" {
		t.Errorf("mismatch fields = %q, %q", mismatch.FieldA, mismatch.FieldB)
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Error("errors.Is(err, ErrDimensionMismatch) = false")
	}

	a.Nut.HoleDiameter = 8
	if err := a.Validate(); err != nil {
		t.Errorf("matching assembly: Validate() = %v", err)
	}
}

func TestScrewNutWidths(t *testing.T) {
	tests := []struct {
		name  string
		screw ScrewParams
		nut   NutParams
		field string
	}{
		{"shaft wider than head", ScrewParams{HeadWidth: 6, HeadHeight: 4, ShaftDiameter: 20, ShaftLength: 30}, NutParams{Width: 30, Height: 4, HoleDiameter: 20}, "screw.shaft_diameter"},
		{"shaft across corners only", ScrewParams{HeadWidth: 10, HeadHeight: 4, ShaftDiameter: 9, ShaftLength: 30}, NutParams{Width: 30, Height: 4, HoleDiameter: 9}, "screw.shaft_diameter"},
		{"hole wider than nut", ScrewParams{HeadWidth: 30, HeadHeight: 4, ShaftDiameter: 20, ShaftLength: 30}, NutParams{Width: 6, Height: 4, HoleDiameter: 20}, "nut.hole_diameter"},
		{"both narrow", ScrewParams{HeadWidth: 6, HeadHeight: 4, ShaftDiameter: 20, ShaftLength: 30}, NutParams{Width: 6, Height: 4, HoleDiameter: 20}, "screw.shaft_diameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ScrewNutAssembly{Screw: tt.screw, Nut: tt.nut}).Validate()
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() = %v, want InvalidParameterError", err)
			}
			if invalid.Field != tt.field || invalid.Kind != KindScrewNutAssembly {
				t.Errorf("Field = %q (kind %s), want %q", invalid.Field, invalid.Kind, tt.field)
			}
		})
	}
}

func TestCuboidCylinderFit(t *testing.T) {
	a := &CuboidCylinderAssembly{
		Cuboid:   Cuboid{Length: 60, Width: 30, Height: 20},
		Cylinder: Cylinder{Radius: 16, Height: 30},
	}
	var mismatch *DimensionMismatchError
	if err := a.Validate(); !errors.As(err, &mismatch) || mismatch.FieldB != "cuboid.width" {
		t.Fatalf("Validate() = %v, want mismatch against cuboid.width", err)
	}
	a.Cylinder.Radius = 10
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCylinderScrewNut(t *testing.T) {
	a := &CylinderScrewNutAssembly{
		Cylinder: Cylinder{Radius: 3, Height: 8},
		Screw:    HexScrew{Head: HexHead{SideLength: 4, Height: 3}, Shaft: Shaft{Diameter: 3, Length: 15}},
		Nut:      HexNut{SideLength: 4, Height: 3, Hole: Hole{Diameter: 3}},
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if a.ShortShaft() {
		t.Error("ShortShaft() = true for a 15 long shaft through 8+3")
	}

	a.Nut.Height = 0
	var missing *MissingParameterError
	if err := a.Validate(); !errors.As(err, &missing) || missing.Field != "nut.height" || missing.Kind != KindCylinderScrewNutAssembly {
		t.Errorf("Validate() = %v, want missing nut.height on the assembly", err)
	}
	a.Nut.Height = 3

	a.Cylinder.Radius = 1.5
	var mismatch *DimensionMismatchError
	if err := a.Validate(); !errors.As(err, &mismatch) || mismatch.FieldA != "cylinder.diameter" {
		t.Errorf("Validate() = %v, want cylinder bore mismatch", err)
	}
}

func TestSocketHeadDefaults(t *testing.T) {
	s := SocketHeadCapScrew{
		HeadDiameter: 16, HeadHeight: 10, ShaftDiameter: 10, ShaftLength: 40,
		SocketDepth: 6, SocketWidthAcrossFlats: 8, ThreadDepth: 0.6,
	}
	d := s.WithDefaults()
	if d.ThreadLength != 18 || d.FilletRadius != 0.4 || d.SocketCountersinkDiameter != 9 || d.EndChamferSize != 1 {
		t.Errorf("WithDefaults() = %+v", d)
	}
	s.ThreadPitch = 1.5
	if got := s.WithDefaults().EndChamferSize; got != 1.5 {
		t.Errorf("EndChamferSize = %v, want thread pitch 1.5", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParamsOrder(t *testing.T) {
	n := &HexNut{SideLength: 8, Height: 4, Hole: Hole{Diameter: 6}, HeightTolerance: "±0.1",
		Extras: Extras{{Path: []string{"material"}, Value: "steel"}}}
	var got []string
	for _, p := range n.Params() {
		got = append(got, strings.Join(p.Path, ".")+"="+p.Value)
	}
	want := []string{"side_length=8", "height=4", "hole.diameter=6", "height_tolerance=±0.1", "material=steel"}
	if !slices.Equal(got, want) {
		t.Errorf("Params() = %v, want %v", got, want)
	}
}

func TestAssemblyParamsPrefixed(t *testing.T) {
	a := &ScrewNutAssembly{
		Screw:                ScrewParams{HeadWidth: 16, HeadHeight: 6, ShaftDiameter: 8, ShaftLength: 40},
		Nut:                  NutParams{Width: 14, Height: 6, HoleDiameter: 8},
		TotalHeightTolerance: "±0.2",
	}
	p := a.Params()
	if len(p) != 8 {
		t.Fatalf("len(Params()) = %d, want 8", len(p))
	}
	if !slices.Equal(p[0].Path, []string{"screw", "head_width"}) {
		t.Errorf("first path = %v", p[0].Path)
	}
	if !slices.Equal(p[7].Path, []string{"total_height_tolerance"}) {
		t.Errorf("last path = %v", p[7].Path)
	}
	c := a.Components()
	if len(c) != 2 || c[0].Key != "screw" || c[1].Key != "nut" {
		t.Errorf("Components() = %+v", c)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{10: "10", 10.5: "10.5", 0.125: "0.125"}
	for v, want := range tests {
		if got := Num(v); got != want {
			t.Errorf("Num(%v) = %q, want %q", v, got, want)
		}
	}
	if got := Fixed(16, 2); got != "16.00" {
		t.Errorf("Fixed(16, 2) = %q, want 16.00", got)
	}
}
