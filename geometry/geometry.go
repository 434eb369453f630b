// Package geometry resolves part specifications into the view geometry of
// an orthographic drawing.
//
// Each shape kind is described by a Template: named scalars, anchor points
// and member extents written as closed-form expressions of the spec's
// dimensions, the insertion origin and the view spacing. One generic
// resolver evaluates a template in declaration order, so an expression may
// refer to anything declared before it. The result is an immutable
// ViewGeometry that the catalog and the annotation engine read from.
//
// Views are the union of their member extents. The centerline clearance of
// a template is reported separately and is never folded into a view
// extent, so sibling views stay disjoint whenever the spacing is positive.
package geometry

import (
	"fmt"
	"math"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/part"
)

// ViewName identifies one orthographic view.
type ViewName string

// Views produced by the templates.
const (
	Front   ViewName = "front"
	Top     ViewName = "top"
	Side    ViewName = "side"
	Section ViewName = "section"
)

// Env is the evaluation environment of template expressions.
type Env struct {
	Origin  draft.Point
	Spacing float64
	Section bool

	scalars map[string]float64
	anchors map[string]draft.Point
	rects   map[string]draft.Rect
}

// X returns the insertion x coordinate.
func (e *Env) X() float64 { return e.Origin.X }

// Y returns the insertion y coordinate.
func (e *Env) Y() float64 { return e.Origin.Y }

// S returns a scalar declared earlier in the template.
func (e *Env) S(name string) float64 {
	v, ok := e.scalars[name]
	if !ok {
		panic("geometry: undefined scalar " + name)
	}
	return v
}

// P returns an anchor declared earlier in the template.
func (e *Env) P(name string) draft.Point {
	p, ok := e.anchors[name]
	if !ok {
		panic("geometry: undefined anchor " + name)
	}
	return p
}

// R returns a member extent declared earlier in the template.
func (e *Env) R(name string) draft.Rect {
	r, ok := e.rects[name]
	if !ok {
		panic("geometry: undefined rect " + name)
	}
	return r
}

// Scalar is a named scalar expression.
type Scalar struct {
	Name string
	Expr func(*Env) float64
}

// Anchor is a named point expression.
type Anchor struct {
	Name string
	Expr func(*Env) draft.Point
}

// Box is a named member extent, e.g. the head of a screw in the front view.
// When is optional; a Box whose When returns false is not defined.
type Box struct {
	Name string
	Expr func(*Env) draft.Rect
	When func(*Env) bool
}

// View is one orthographic view made of member boxes. A View whose When
// returns false is not produced.
type View struct {
	Name    ViewName
	Members []string
	When    func(*Env) bool
}

// Template describes the geometry of one shape kind.
type Template struct {
	Kind part.Kind

	// Clearance is the centerline overrun past the view outlines.
	Clearance float64

	// SectionDefault is the section view toggle used when the caller does
	// not set one.
	SectionDefault bool

	// Bind extracts the base scalars from a validated spec.
	Bind func(part.Spec) map[string]float64

	Scalars []Scalar
	Anchors []Anchor
	Boxes   []Box
	Views   []View
}

func sectionOnly(e *Env) bool { return e.Section }

// Option configures Resolve.
type Option func(*resolveOptions)

type resolveOptions struct {
	section *bool
}

// WithSection forces the section view on or off regardless of the kind's
// default.
func WithSection(on bool) Option {
	return func(o *resolveOptions) {
		o.section = &on
	}
}

// Resolve validates spec and evaluates the template of its kind at the
// given origin and spacing.
//
// Validation runs before any expression is evaluated; the first violation
// is returned unchanged and no geometry is produced.
func Resolve(spec part.Spec, origin draft.Point, spacing float64, opts ...Option) (*ViewGeometry, error) {
	if spec == nil {
		return nil, &part.UnsupportedShapeError{Shape: "<nil>"}
	}
	t, ok := Lookup(spec.Kind())
	if !ok {
		return nil, &part.UnsupportedShapeError{Shape: string(spec.Kind())}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spacing < 0 || !finite(spacing) {
		return nil, &part.InvalidParameterError{
			Kind: spec.Kind(), Field: "drawing_options.spacing", Value: spacing,
			Reason: "must be a finite, non-negative number",
		}
	}
	if !finite(origin.X) || !finite(origin.Y) {
		return nil, &part.InvalidParameterError{
			Kind: spec.Kind(), Field: "drawing_options.insertion_point", Value: origin,
			Reason: "must be finite",
		}
	}

	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}
	section := t.SectionDefault
	if o.section != nil {
		section = *o.section
	}
	return t.evaluate(spec, origin, spacing, section)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (t *Template) evaluate(spec part.Spec, origin draft.Point, spacing float64, section bool) (*ViewGeometry, error) {
	env := &Env{
		Origin:  origin,
		Spacing: spacing,
		Section: section,
		scalars: t.Bind(spec),
		anchors: make(map[string]draft.Point, len(t.Anchors)),
		rects:   make(map[string]draft.Rect, len(t.Boxes)),
	}
	for _, s := range t.Scalars {
		env.scalars[s.Name] = s.Expr(env)
	}
	for _, a := range t.Anchors {
		env.anchors[a.Name] = a.Expr(env)
	}
	for _, b := range t.Boxes {
		if b.When != nil && !b.When(env) {
			continue
		}
		env.rects[b.Name] = b.Expr(env)
	}

	g := &ViewGeometry{
		kind:      t.Kind,
		origin:    origin,
		spacing:   spacing,
		clearance: t.Clearance,
		section:   section,
		scalars:   env.scalars,
		anchors:   env.anchors,
		rects:     env.rects,
		bounds:    draft.EmptyRect(),
	}
	for _, v := range t.Views {
		if v.When != nil && !v.When(env) {
			continue
		}
		ext := draft.EmptyRect()
		for _, m := range v.Members {
			r, ok := env.rects[m]
			if !ok {
				return nil, fmt.Errorf("geometry: %s: view %s references undefined member %q", t.Kind, v.Name, m)
			}
			ext = ext.Union(r)
		}
		g.views = append(g.views, ViewExtent{Name: v.Name, Extent: ext})
		g.bounds = g.bounds.Union(ext)
	}
	draft.ComponentLogger("geometry").Debug("resolved",
		"kind", t.Kind, "views", len(g.views), "bounds", g.bounds)
	return g, nil
}

// ViewExtent is the extent of one produced view.
type ViewExtent struct {
	Name   ViewName
	Extent draft.Rect
}

// ViewGeometry is the resolved geometry of one shape. It is read-only.
type ViewGeometry struct {
	kind      part.Kind
	origin    draft.Point
	spacing   float64
	clearance float64
	section   bool
	scalars   map[string]float64
	anchors   map[string]draft.Point
	rects     map[string]draft.Rect
	views     []ViewExtent
	bounds    draft.Rect
}

// Kind returns the shape kind.
func (g *ViewGeometry) Kind() part.Kind { return g.kind }

// Origin returns the insertion origin.
func (g *ViewGeometry) Origin() draft.Point { return g.origin }

// Spacing returns the inter-view spacing.
func (g *ViewGeometry) Spacing() float64 { return g.spacing }

// Clearance returns the centerline overrun.
func (g *ViewGeometry) Clearance() float64 { return g.clearance }

// SectionEnabled reports whether the section view was produced.
func (g *ViewGeometry) SectionEnabled() bool { return g.section }

// Scalar returns a named scalar. It panics for names the template does not
// declare.
func (g *ViewGeometry) Scalar(name string) float64 {
	v, ok := g.scalars[name]
	if !ok {
		panic(fmt.Sprintf("geometry: %s has no scalar %q", g.kind, name))
	}
	return v
}

// Anchor returns a named anchor point. It panics for names the template
// does not declare.
func (g *ViewGeometry) Anchor(name string) draft.Point {
	p, ok := g.anchors[name]
	if !ok {
		panic(fmt.Sprintf("geometry: %s has no anchor %q", g.kind, name))
	}
	return p
}

// Rect returns a named member extent and whether it is defined.
func (g *ViewGeometry) Rect(name string) (draft.Rect, bool) {
	r, ok := g.rects[name]
	return r, ok
}

// MustRect is like Rect but panics when the member is not defined.
func (g *ViewGeometry) MustRect(name string) draft.Rect {
	r, ok := g.rects[name]
	if !ok {
		panic(fmt.Sprintf("geometry: %s has no rect %q", g.kind, name))
	}
	return r
}

// View returns the extent of a produced view.
func (g *ViewGeometry) View(name ViewName) (draft.Rect, bool) {
	for _, v := range g.views {
		if v.Name == name {
			return v.Extent, true
		}
	}
	return draft.Rect{}, false
}

// Views returns the produced views in template order.
func (g *ViewGeometry) Views() []ViewExtent {
	out := make([]ViewExtent, len(g.views))
	copy(out, g.views)
	return out
}

// Bounds returns the union of all view extents.
func (g *ViewGeometry) Bounds() draft.Rect { return g.bounds }
