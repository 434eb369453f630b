package draft

import "testing"

func TestOptionsNormalized(t *testing.T) {
	o := Options{
		Layers: map[LayerKey]Layer{
			LayerOutline: {Name: "Visible", Color: 3},
			"notes":      {Name: "Notes", Color: 4},
		},
	}
	n := o.Normalized()
	if got := n.Layer(LayerOutline); got.Name != "Visible" || got.Key != LayerOutline {
		t.Errorf("Layer(outline) = %+v, want configured Visible layer", got)
	}
	if got := n.Layer(LayerCenterline); got.LineType != "CENTER" {
		t.Errorf("Layer(centerline).LineType = %q, want CENTER", got.LineType)
	}
	if n.Dimension.TextHeight != DefaultTextHeight || n.Dimension.ArrowSize != DefaultArrowSize {
		t.Errorf("Dimension = %+v, want defaults", n.Dimension)
	}
	if _, ok := o.Layers[LayerHidden]; ok {
		t.Error("Normalized() modified the receiver's layer map")
	}
}

func TestOptionsLayerList(t *testing.T) {
	o := Options{Layers: map[LayerKey]Layer{"zeta": {Name: "Z"}, "alpha": {Name: "A"}}}
	list := o.LayerList()
	if len(list) != len(canonicalLayers)+2 {
		t.Fatalf("len(LayerList()) = %d, want %d", len(list), len(canonicalLayers)+2)
	}
	if list[0].Key != LayerOutline {
		t.Errorf("first layer = %q, want outline", list[0].Key)
	}
	if list[len(list)-2].Key != "alpha" || list[len(list)-1].Key != "zeta" {
		t.Errorf("extra layers not sorted: %q, %q", list[len(list)-2].Key, list[len(list)-1].Key)
	}
}

func TestOptionsToggles(t *testing.T) {
	var o Options
	if !o.SectionEnabled(true) || o.SectionEnabled(false) {
		t.Error("SectionEnabled() should return the default when unset")
	}
	off := false
	o.SectionView = &off
	if o.SectionEnabled(true) {
		t.Error("SectionEnabled() ignored an explicit false")
	}

	def := HatchStyle{Pattern: "ANSI31", Scale: 15, Color: 7}
	if got := o.HatchOr(def); got != def {
		t.Errorf("HatchOr() = %+v, want default", got)
	}
	o.Hatch = &HatchStyle{Scale: 2}
	if got := o.HatchOr(def); got.Pattern != "ANSI31" || got.Scale != 2 {
		t.Errorf("HatchOr() = %+v, want pattern ANSI31 scale 2", got)
	}
}

func TestACIColor(t *testing.T) {
	if got := ACIHex(1); got != "#ff0000" {
		t.Errorf("ACIHex(1) = %q, want #ff0000", got)
	}
	if ACIColor(0) != ACIColor(7) || ACIColor(300) != ACIColor(7) {
		t.Error("out-of-range indices should map to index 7")
	}
}
