package draft

import (
	"maps"
	"slices"
)

// LayerKey names the role a layer plays in a drawing. Primitives are
// grouped by role and each role maps to one host layer.
type LayerKey string

// Layer roles used by the shape catalog.
const (
	LayerOutline       LayerKey = "outline"
	LayerHidden        LayerKey = "hidden"
	LayerOutlineHidden LayerKey = "outline_hidden"
	LayerCenterline    LayerKey = "centerline"
	LayerDimensions    LayerKey = "dimensions"
	LayerAnnotations   LayerKey = "annotations"
	LayerHatch         LayerKey = "hatch"
	LayerTable         LayerKey = "param_table"
)

// canonicalLayers is the creation order for the known roles.
var canonicalLayers = [...]LayerKey{
	LayerOutline,
	LayerHidden,
	LayerOutlineHidden,
	LayerCenterline,
	LayerDimensions,
	LayerAnnotations,
	LayerHatch,
	LayerTable,
}

// Layer describes one host layer.
type Layer struct {
	Key      LayerKey
	Name     string
	Color    int    // AutoCAD color index
	LineType string // empty means continuous
}

// DimensionStyle holds the dimension text height and arrow size.
type DimensionStyle struct {
	TextHeight float64
	ArrowSize  float64
}

// HatchStyle describes the fill pattern of cut surfaces.
type HatchStyle struct {
	Pattern string
	Scale   float64
	Color   int
}

// Default style values.
const (
	DefaultTextHeight = 3.5
	DefaultArrowSize  = 2.5
	DefaultSpacing    = 50.0
)

// DefaultLayers returns the layer table used for roles a document leaves
// unconfigured.
func DefaultLayers() map[LayerKey]Layer {
	return map[LayerKey]Layer{
		LayerOutline:       {Key: LayerOutline, Name: "Outline", Color: 7},
		LayerHidden:        {Key: LayerHidden, Name: "Hidden", Color: 8, LineType: "HIDDEN"},
		LayerOutlineHidden: {Key: LayerOutlineHidden, Name: "Outline_Hidden", Color: 7, LineType: "HIDDEN"},
		LayerCenterline:    {Key: LayerCenterline, Name: "Centerline", Color: 1, LineType: "CENTER"},
		LayerDimensions:    {Key: LayerDimensions, Name: "Dimensions", Color: 2},
		LayerAnnotations:   {Key: LayerAnnotations, Name: "Annotations", Color: 6},
		LayerHatch:         {Key: LayerHatch, Name: "Hatch", Color: 7},
		LayerTable:         {Key: LayerTable, Name: "Parameter_Table", Color: 7},
	}
}

// Options are the drawing options shared by every component of one
// generation run. Options are treated as immutable once loaded.
type Options struct {
	Origin    Point
	Spacing   float64
	Layers    map[LayerKey]Layer
	Dimension DimensionStyle

	// Hatch overrides the per-kind hatch defaults when set.
	Hatch *HatchStyle

	// SectionView overrides the per-kind section view default when set.
	SectionView *bool
}

// DefaultOptions returns options with the default layer table and style.
func DefaultOptions() Options {
	return Options{
		Spacing:   DefaultSpacing,
		Layers:    DefaultLayers(),
		Dimension: DimensionStyle{TextHeight: DefaultTextHeight, ArrowSize: DefaultArrowSize},
	}
}

// Normalized returns a copy of o with unconfigured layers and zero style
// values replaced by defaults. The receiver is not modified.
func (o Options) Normalized() Options {
	layers := DefaultLayers()
	for k, l := range o.Layers {
		l.Key = k
		layers[k] = l
	}
	o.Layers = layers
	if o.Dimension.TextHeight <= 0 {
		o.Dimension.TextHeight = DefaultTextHeight
	}
	if o.Dimension.ArrowSize <= 0 {
		o.Dimension.ArrowSize = DefaultArrowSize
	}
	return o
}

// Layer returns the layer configured for key, falling back to the default
// table.
func (o Options) Layer(key LayerKey) Layer {
	if l, ok := o.Layers[key]; ok {
		l.Key = key
		return l
	}
	if l, ok := DefaultLayers()[key]; ok {
		return l
	}
	return Layer{Key: key, Name: string(key), Color: 7}
}

// LayerList returns every layer in creation order: the known roles first,
// then any additional keys sorted by name.
func (o Options) LayerList() []Layer {
	out := make([]Layer, 0, len(canonicalLayers)+len(o.Layers))
	for _, k := range canonicalLayers {
		out = append(out, o.Layer(k))
	}
	extra := slices.Sorted(maps.Keys(o.Layers))
	for _, k := range extra {
		if slices.Contains(canonicalLayers[:], k) {
			continue
		}
		out = append(out, o.Layer(k))
	}
	return out
}

// SectionEnabled resolves the section view toggle against a per-kind
// default.
func (o Options) SectionEnabled(def bool) bool {
	if o.SectionView == nil {
		return def
	}
	return *o.SectionView
}

// HatchOr returns the configured hatch style, or def when none is set.
// Zero fields of the configured style are taken from def.
func (o Options) HatchOr(def HatchStyle) HatchStyle {
	if o.Hatch == nil {
		return def
	}
	h := *o.Hatch
	if h.Pattern == "" {
		h.Pattern = def.Pattern
	}
	if h.Scale <= 0 {
		h.Scale = def.Scale
	}
	if h.Color == 0 {
		h.Color = def.Color
	}
	return h
}
