// Package catalog turns a drawing document into a complete recording.
//
// Every shape kind has one generator. A generator draws the orthographic
// views of its resolved geometry layer by layer (outlines, hidden lines,
// centerlines, hatching and dimensions), publishes the attachment
// vocabulary its annotations resolve against, and leaves table placement
// and annotation drawing to the shared pipeline in Generate.
//
// Generation is fail-fast: a document that does not validate produces an
// error and no commands at all.
package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/geometry"
	"github.com/gogpu/draft/part"
	"github.com/gogpu/draft/recording"
	"github.com/gogpu/draft/table"
)

// Result is a generated drawing.
type Result struct {
	*recording.Recording

	// Kind is the generated shape kind.
	Kind part.Kind

	// Geometry is the resolved view geometry the drawing was built from.
	Geometry *geometry.ViewGeometry

	// Skipped lists annotation requests whose selector the kind does not
	// know. They were not drawn.
	Skipped []*annotate.UnknownAttachmentError
}

// generator draws one shape kind.
type generator struct {
	title string

	// hatch is the kind's hatch default, overridden by the document.
	hatch draft.HatchStyle

	// roles names the balloon selectors of an assembly's components, in
	// component order.
	roles []string

	// views emits the view primitives: outlines, hidden lines,
	// centerlines, section hatching and dimensions.
	views func(d *drawer)

	// selectors builds the attachment vocabulary of the kind.
	selectors func(d *drawer) annotate.Selectors
}

var generators = map[part.Kind]*generator{}

func register(kind part.Kind, g *generator) {
	if _, dup := generators[kind]; dup {
		panic("catalog: generator registered twice for " + string(kind))
	}
	generators[kind] = g
}

// Kinds returns the kinds with a generator, sorted by name.
func Kinds() []part.Kind {
	return slices.Sorted(maps.Keys(generators))
}

// Title returns the drawing title of a kind.
func Title(kind part.Kind) string {
	if g, ok := generators[kind]; ok {
		return g.title
	}
	return string(kind)
}

// Selectors returns the attachment vocabulary a document's shape resolves
// annotations against.
func Selectors(doc *config.Document) (annotate.Selectors, error) {
	d, _, err := prepare(doc)
	if err != nil {
		return annotate.Selectors{}, err
	}
	return d.gen.selectors(d), nil
}

// Generate produces the drawing of doc.
//
// The command stream holds the layer table, the views of the shape, its
// annotations, the parameter table and, for assemblies, the item balloons
// and the bill of materials. Validation errors are returned unchanged from
// the part package.
func Generate(doc *config.Document) (*Result, error) {
	d, opts, err := prepare(doc)
	if err != nil {
		return nil, err
	}
	log := draft.ComponentLogger("catalog")
	d.Recorder = recording.NewRecorder(opts)

	d.gen.views(d)
	d.EndGroup()

	reqs := doc.Annotations
	asm, isAssembly := doc.Spec.(part.Assembly)
	if isAssembly {
		reqs = append(balloons(d.gen.roles), reqs...)
	}
	engine := annotate.NewEngine(d.kind, d.gen.selectors(d))
	engine.Apply(d.Recorder, reqs)

	th := d.Style().TextHeight
	ext := d.Bounds().Union(d.g.Bounds())
	right := draft.Pt(ext.Max.X+d.sp, ext.Max.Y)
	params := table.ParamTable(doc.Spec.Params(), th)
	if isAssembly {
		table.Compose(d.Recorder, table.BOMTable(asm.Components(), th), right)
		table.Compose(d.Recorder, params, draft.Pt(ext.Min.X, ext.Min.Y-d.sp))
	} else {
		table.Compose(d.Recorder, params, right)
	}

	rec := d.FinishRecording(d.gen.title)
	skipped := engine.Skipped()
	log.Info("drawing generated",
		"kind", d.kind, "commands", rec.Len(), "skipped", len(skipped))
	return &Result{Recording: rec, Kind: d.kind, Geometry: d.g, Skipped: skipped}, nil
}

// prepare validates doc and resolves its geometry. The returned drawer has
// no recorder yet.
func prepare(doc *config.Document) (*drawer, draft.Options, error) {
	if doc == nil || doc.Spec == nil {
		return nil, draft.Options{}, &part.UnsupportedShapeError{Shape: "<nil>"}
	}
	kind := doc.Spec.Kind()
	gen, ok := generators[kind]
	if !ok {
		return nil, draft.Options{}, &part.UnsupportedShapeError{Shape: string(kind)}
	}
	opts := doc.Options.Normalized()

	var ropts []geometry.Option
	if opts.SectionView != nil {
		ropts = append(ropts, geometry.WithSection(*opts.SectionView))
	}
	g, err := geometry.Resolve(doc.Spec, opts.Origin, opts.Spacing, ropts...)
	if err != nil {
		return nil, draft.Options{}, err
	}

	hatch := opts.HatchOr(gen.hatch)
	if hatch.Color != 0 {
		layers := maps.Clone(opts.Layers)
		l := opts.Layer(draft.LayerHatch)
		l.Color = hatch.Color
		layers[draft.LayerHatch] = l
		opts.Layers = layers
	}

	d := &drawer{
		kind:  kind,
		gen:   gen,
		spec:  doc.Spec,
		g:     g,
		hatch: hatch,
		sp:    g.Spacing(),
		cl:    g.Clearance(),
		th:    opts.Dimension.TextHeight,
	}
	d.ix, d.iy = g.Origin().X, g.Origin().Y
	return d, opts, nil
}

// balloons returns one balloon request per component role, numbered in
// BOM order.
func balloons(roles []string) []annotate.Request {
	reqs := make([]annotate.Request, 0, len(roles))
	for i, role := range roles {
		reqs = append(reqs, annotate.Balloon{Number: strconv.Itoa(i + 1), AttachTo: role})
	}
	return reqs
}

// drawer carries the state of one generation. Generators read scalars
// through s and emit through the embedded recorder.
type drawer struct {
	*recording.Recorder

	kind  part.Kind
	gen   *generator
	spec  part.Spec
	g     *geometry.ViewGeometry
	hatch draft.HatchStyle

	ix, iy float64 // insertion point
	sp     float64 // view spacing
	cl     float64 // centerline overrun
	th     float64 // dimension text height
}

func (d *drawer) s(name string) float64 { return d.g.Scalar(name) }

func (d *drawer) rect(name string) draft.Rect { return d.g.MustRect(name) }

func (d *drawer) vline(x, y0, y1 float64) { d.Line(draft.Pt(x, y0), draft.Pt(x, y1)) }

func (d *drawer) hline(y, x0, x1 float64) { d.Line(draft.Pt(x0, y), draft.Pt(x1, y)) }

// axisV draws a vertical centerline through x covering [y0, y1] plus the
// clearance on both ends.
func (d *drawer) axisV(x, y0, y1 float64) { d.vline(x, y0-d.cl, y1+d.cl) }

// axisH draws a horizontal centerline through y covering [x0, x1] plus the
// clearance on both ends.
func (d *drawer) axisH(y, x0, x1 float64) { d.hline(y, x0-d.cl, x1+d.cl) }

// vdim draws a vertical dimension between two heights at x.
func (d *drawer) vdim(x, y0, y1, textX float64, override string) {
	d.LinearDimension(draft.Pt(x, y0), draft.Pt(x, y1), draft.Pt(textX, (y0+y1)/2), recording.AxisVertical, override)
}

// hdim draws a horizontal dimension between two abscissas at y.
func (d *drawer) hdim(y, x0, x1, textY float64, override string) {
	d.LinearDimension(draft.Pt(x0, y), draft.Pt(x1, y), draft.Pt((x0+x1)/2, textY), recording.AxisHorizontal, override)
}

// hatchRect hatches rc with the generation's hatch style.
func (d *drawer) hatchRect(rc draft.Rect) { d.HatchRect(d.hatch.Pattern, d.hatch.Scale, rc) }

// hatchStrips hatches each strip between consecutive xs, from y0 to y1.
func (d *drawer) hatchStrips(y0, y1 float64, xs ...float64) {
	for i := 1; i < len(xs); i++ {
		d.hatchRect(draft.R(xs[i-1], y0, xs[i], y1))
	}
}

// tolerance returns the dimension text of a measured value followed by a
// tolerance, or the bare measurement when the tolerance is empty.
func tolerance(tol string) string {
	if tol == "" {
		return ""
	}
	return "<>" + tol
}

// diameter returns the dimension text of a diameter with an optional
// tolerance.
func diameter(tol string) string { return "⌀<>" + tol }

// fixed returns a dimension text showing v with two decimals and an
// optional tolerance.
func fixed(v float64, tol string) string { return part.Fixed(v, 2) + tol }

func mustSpec[T part.Spec](d *drawer) T {
	s, ok := d.spec.(T)
	if !ok {
		panic(fmt.Sprintf("catalog: %s generator got %T", d.kind, d.spec))
	}
	return s
}
