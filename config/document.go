// Package config loads drawing documents and service settings.
//
// A drawing document is a YAML (or JSON) mapping naming a shape kind, its
// parameters, drawing options and annotation requests:
//
//	shape: hexagonal_nut
//	parameters:
//	  side_length: 8
//	  height: 6
//	  hole: {diameter: 7}
//	drawing_options:
//	  insertion_point: [0, 0]
//	  spacing: 40
//	datums:
//	  - {label: A, attach_to: bottom}
//
// Parse validates the decoded shape, so a Document always carries a
// drawable Spec.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/part"
)

// Document is a decoded drawing document.
type Document struct {
	// Source is the file the document was loaded from, if any.
	Source string

	Spec        part.Spec
	Options     draft.Options
	Annotations []annotate.Request
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

// Parse decodes and validates a drawing document. Shape errors are the
// part package's error types; field paths are dotted document paths such
// as "hole.diameter" or "screw.head.side_length".
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("config: decode document: %w", err)
	}
	top := &root
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, &part.MissingParameterError{Field: "shape"}
		}
		top = resolve(top.Content[0])
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: decode document: top level must be a mapping, got %s", kindName(top.Kind))
	}

	r := &reader{}
	o := object{r: r, n: top}
	name := o.str("shape")
	if r.err != nil {
		return nil, r.err
	}
	if name == "" {
		return nil, &part.MissingParameterError{Field: "shape"}
	}
	kind, err := part.ParseKind(name)
	if err != nil {
		return nil, err
	}
	r.kind = kind

	doc := &Document{
		Spec:        decoders[kind](o),
		Options:     decodeOptions(o.obj("drawing_options")),
		Annotations: decodeAnnotations(o),
	}
	if r.err != nil {
		return nil, r.err
	}
	if err := doc.Spec.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

var decoders = map[part.Kind]func(o object) part.Spec{
	part.KindCylinder:                 func(o object) part.Spec { return cylinder(parameters(o)) },
	part.KindCuboid:                   func(o object) part.Spec { return cuboid(parameters(o)) },
	part.KindHexPrism:                 func(o object) part.Spec { return hexPrism(parameters(o)) },
	part.KindHexNut:                   func(o object) part.Spec { return hexNut(parameters(o)) },
	part.KindHexScrew:                 func(o object) part.Spec { return hexScrew(parameters(o)) },
	part.KindSocketHeadCapScrew:       func(o object) part.Spec { return socketScrew(parameters(o)) },
	part.KindScrewNutAssembly:         screwNut,
	part.KindCuboidCylinderAssembly:   cuboidCylinder,
	part.KindCylinderScrewNutAssembly: cylinderScrewNut,
}

// parameters returns the top-level parameters mapping. Its fields are
// reported without a prefix, matching part validation paths.
func parameters(o object) object {
	p := o.obj("parameters")
	p.path = ""
	return p
}

func cylinder(p object) *part.Cylinder {
	return &part.Cylinder{
		Radius:            p.num("radius"),
		Height:            p.num("height"),
		HeightTolerance:   p.str("height_tolerance"),
		DiameterTolerance: p.str("diameter_tolerance"),
		Extras:            p.extras("radius", "height", "height_tolerance", "diameter_tolerance"),
	}
}

func cuboid(p object) *part.Cuboid {
	return &part.Cuboid{
		Length:          p.num("length"),
		Width:           p.num("width"),
		Height:          p.num("height"),
		HeightTolerance: p.str("height_tolerance"),
		Extras:          p.extras("length", "width", "height", "height_tolerance"),
	}
}

func hexPrism(p object) *part.HexPrism {
	return &part.HexPrism{
		SideLength:      p.num("side_length"),
		Height:          p.num("height"),
		HeightTolerance: p.str("height_tolerance"),
		WidthTolerance:  p.str("width_tolerance"),
		Extras:          p.extras("side_length", "height", "height_tolerance", "width_tolerance"),
	}
}

func hexNut(p object) *part.HexNut {
	hole := p.obj("hole")
	return &part.HexNut{
		SideLength: p.num("side_length"),
		Height:     p.num("height"),
		Hole: part.Hole{
			Diameter:          hole.num("diameter"),
			DiameterTolerance: hole.str("diameter_tolerance"),
		},
		HeightTolerance:     p.str("height_tolerance"),
		SideLengthTolerance: p.str("side_length_tolerance"),
		Extras:              p.extras("side_length", "height", "hole", "height_tolerance", "side_length_tolerance"),
	}
}

func hexScrew(p object) *part.HexScrew {
	head, shaft := p.obj("head"), p.obj("shaft")
	return &part.HexScrew{
		Head:                 part.HexHead{SideLength: head.num("side_length"), Height: head.num("height")},
		Shaft:                part.Shaft{Diameter: shaft.num("diameter"), Length: shaft.num("length")},
		TotalHeightTolerance: p.str("total_height_tolerance"),
		HeadWidthTolerance:   p.str("head_width_tolerance"),
		Extras:               p.extras("head", "shaft", "total_height_tolerance", "head_width_tolerance"),
	}
}

var socketFields = []string{
	"head_diameter", "head_height", "shaft_diameter", "shaft_length",
	"socket_depth", "socket_width_across_flats", "thread_depth",
	"thread_length", "thread_pitch", "fillet_radius",
	"socket_countersink_diameter", "end_chamfer_size",
}

func socketScrew(p object) *part.SocketHeadCapScrew {
	return &part.SocketHeadCapScrew{
		HeadDiameter:              p.num("head_diameter"),
		HeadHeight:                p.num("head_height"),
		ShaftDiameter:             p.num("shaft_diameter"),
		ShaftLength:               p.num("shaft_length"),
		SocketDepth:               p.num("socket_depth"),
		SocketWidthAcrossFlats:    p.num("socket_width_across_flats"),
		ThreadDepth:               p.num("thread_depth"),
		ThreadLength:              p.num("thread_length"),
		ThreadPitch:               p.num("thread_pitch"),
		FilletRadius:              p.num("fillet_radius"),
		SocketCountersinkDiameter: p.num("socket_countersink_diameter"),
		EndChamferSize:            p.num("end_chamfer_size"),
		Extras:                    p.extras(socketFields...),
	}
}

// component returns the bill-of-materials entry and the parameters of the
// assembly component at key. Field paths inside it are prefixed with key.
func component(o object, key string) (part.Component, object) {
	c := o.obj("components").obj(key)
	params := c.obj("parameters")
	params.path = key
	return part.Component{Key: key, Name: c.str("name"), Quantity: c.integer("quantity")}, params
}

func screwNut(o object) part.Spec {
	screwItem, screw := component(o, "screw")
	nutItem, nut := component(o, "nut")
	top := parameters(o)
	return &part.ScrewNutAssembly{
		Screw: part.ScrewParams{
			HeadWidth:     screw.num("head_width"),
			HeadHeight:    screw.num("head_height"),
			ShaftDiameter: screw.num("shaft_diameter"),
			ShaftLength:   screw.num("shaft_length"),
		},
		ScrewItem: screwItem,
		Nut: part.NutParams{
			Width:        nut.num("width"),
			Height:       nut.num("height"),
			HoleDiameter: nut.num("hole_diameter"),
		},
		NutItem:              nutItem,
		TotalHeightTolerance: top.str("total_height_tolerance"),
		HeadWidthTolerance:   top.str("head_width_tolerance"),
		Extras:               top.extras("total_height_tolerance", "head_width_tolerance"),
	}
}

func cuboidCylinder(o object) part.Spec {
	cuboidItem, cub := component(o, "cuboid")
	cylinderItem, cyl := component(o, "cylinder")
	return &part.CuboidCylinderAssembly{
		Cuboid:       *cuboid(cub),
		CuboidItem:   cuboidItem,
		Cylinder:     *cylinder(cyl),
		CylinderItem: cylinderItem,
		Extras:       parameters(o).extras(),
	}
}

func cylinderScrewNut(o object) part.Spec {
	cylinderItem, cyl := component(o, "cylinder")
	screwItem, screw := component(o, "screw")
	nutItem, nut := component(o, "nut")
	return &part.CylinderScrewNutAssembly{
		Cylinder:     *cylinder(cyl),
		CylinderItem: cylinderItem,
		Screw:        *hexScrew(screw),
		ScrewItem:    screwItem,
		Nut:          *hexNut(nut),
		NutItem:      nutItem,
		Extras:       parameters(o).extras(),
	}
}

func decodeOptions(o object) draft.Options {
	dim := o.obj("dimension_options")
	opts := draft.Options{
		Spacing:     o.numOr("spacing", draft.DefaultSpacing),
		SectionView: o.flag("draw_section_view"),
		Dimension: draft.DimensionStyle{
			TextHeight: dim.num("text_height"),
			ArrowSize:  dim.num("arrow_size"),
		},
	}
	if pt := o.list("insertion_point"); pt != nil {
		opts.Origin = point(o, "insertion_point", pt)
	}
	if o.has("hatch_options") {
		h := o.obj("hatch_options")
		opts.Hatch = &draft.HatchStyle{
			Pattern: h.str("pattern"),
			Scale:   h.num("scale"),
			Color:   h.integer("color"),
		}
	}
	layers := o.obj("layers")
	defaults := draft.DefaultLayers()
	layers.each(func(key string, _ *yaml.Node) {
		if opts.Layers == nil {
			opts.Layers = map[draft.LayerKey]draft.Layer{}
		}
		lk := draft.LayerKey(key)
		l, ok := defaults[lk]
		if !ok {
			l = draft.Layer{Key: lk, Name: key, Color: 7}
		}
		lo := layers.obj(key)
		if name := lo.str("name"); name != "" {
			l.Name = name
		}
		if lo.has("color") {
			l.Color = lo.integer("color")
		}
		if lo.has("linetype") {
			l.LineType = lo.str("linetype")
		}
		opts.Layers[lk] = l
	})
	return opts
}

// point decodes an [x, y] pair.
func point(o object, key string, pt []*yaml.Node) draft.Point {
	if len(pt) != 2 {
		o.r.fail(&part.InvalidParameterError{
			Kind: o.r.kind, Field: o.field(key), Value: len(pt), Reason: "must be an [x, y] pair",
		})
		return draft.Point{}
	}
	var xy [2]float64
	for i, n := range pt {
		v, err := strconv.ParseFloat(n.Value, 64)
		if n.Kind != yaml.ScalarNode || err != nil {
			o.invalid(key+"."+strconv.Itoa(i), n, "must be a number")
			return draft.Point{}
		}
		xy[i] = v
	}
	return draft.Pt(xy[0], xy[1])
}

// items returns the mappings of the list at key as objects.
func items(o object, key string) []object {
	var out []object
	for i, n := range o.list(key) {
		path := key + "." + strconv.Itoa(i)
		if n.Kind != yaml.MappingNode {
			o.invalid(path, n, "must be a mapping")
			return nil
		}
		out = append(out, object{r: o.r, path: o.field(path), n: n})
	}
	return out
}

// firstStr returns the first non-empty scalar among keys.
func firstStr(o object, keys ...string) string {
	for _, k := range keys {
		if v := o.str(k); v != "" {
			return v
		}
	}
	return ""
}

func decodeAnnotations(o object) []annotate.Request {
	var reqs []annotate.Request
	for _, d := range items(o, "datums") {
		reqs = append(reqs, annotate.Datum{
			Label:    d.str("label"),
			AttachTo: firstStr(d, "attach_to", "attach_face"),
		})
	}
	for _, g := range items(o, "geometric_tolerances") {
		reqs = append(reqs, annotate.GeometricTolerance{
			Type:      g.str("type"),
			Tolerance: g.str("tolerance"),
			Datums:    g.strings("datum_references"),
			AttachTo:  firstStr(g, "attach_to", "leader_attach_point"),
		})
	}
	finishes := o.obj("surface_finish")
	finishes.each(func(loc string, n *yaml.Node) {
		reqs = append(reqs, finish(finishes, loc, n))
	})
	for _, b := range items(o, "balloons") {
		reqs = append(reqs, annotate.Balloon{Number: b.str("number"), AttachTo: b.str("attach_to")})
	}
	return reqs
}

// finish decodes one surface finish entry, given either as
// [symbol, rotation, size] or as {symbol, rotation, size}.
func finish(o object, loc string, n *yaml.Node) annotate.SurfaceFinish {
	sf := annotate.SurfaceFinish{Location: loc}
	switch n.Kind {
	case yaml.SequenceNode:
		list := o.list(loc)
		if len(list) == 0 || len(list) > 3 {
			o.r.fail(&part.InvalidParameterError{
				Kind: o.r.kind, Field: o.field(loc), Value: len(list), Reason: "must be [symbol, rotation, size]",
			})
			return sf
		}
		// Wrap the elements in a synthetic mapping so they share the
		// scalar readers.
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, key := range []string{"symbol", "rotation", "size"}[:len(list)] {
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, list[i])
		}
		e := object{r: o.r, path: o.field(loc), n: m}
		sf.Symbol, sf.Rotation, sf.Size = e.str("symbol"), e.num("rotation"), e.num("size")
	case yaml.MappingNode:
		e := o.obj(loc)
		sf.Symbol, sf.Size = e.str("symbol"), e.num("size")
		if e.has("rotation") {
			sf.Rotation = e.num("rotation")
		} else {
			sf.Rotation = e.num("orientation")
		}
	default:
		// A bare scalar is the symbol alone.
		sf.Symbol = o.str(loc)
	}
	return sf
}
