// Package annotate lays out datum symbols, feature control frames,
// roughness symbols and item balloons on a drawing.
//
// Requests name the feature they attach to with a selector. Every shape kind
// has a fixed vocabulary of selectors, built from its resolved view geometry
// into a Selectors table. A request whose selector is not in the table is
// not drawn; the engine logs it at debug level and reports it through
// Engine.Skipped. It is never an error.
//
// Each request is one group of primitives on the annotations layer, and the
// engine selects that layer before every group.
package annotate

import (
	"fmt"
	"slices"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/part"
	"github.com/gogpu/draft/recording"
)

// Selectors is the attachment vocabulary of one shape, resolved to concrete
// placements.
type Selectors struct {
	Datums   map[string]DatumPlacement
	Frames   map[string]FramePlacement
	Finishes map[string]FinishPlacement
	Balloons map[string]BalloonPlacement
}

// Names returns the selectors known for a category.
func (s Selectors) Names(c Category) []string {
	var names []string
	switch c {
	case CategoryDatum:
		names = keys(s.Datums)
	case CategoryTolerance:
		names = keys(s.Frames)
	case CategoryFinish:
		names = keys(s.Finishes)
	case CategoryBalloon:
		names = keys(s.Balloons)
	}
	return names
}

// UnknownAttachmentError describes a request dropped because its selector
// is not part of the shape's vocabulary.
type UnknownAttachmentError struct {
	Kind     part.Kind
	Category Category
	Selector string
}

func (e *UnknownAttachmentError) Error() string {
	return fmt.Sprintf("annotate: %s: unknown %s attachment %q", e.Kind, e.Category, e.Selector)
}

// Engine draws annotation requests for one shape.
type Engine struct {
	kind    part.Kind
	sel     Selectors
	skipped []*UnknownAttachmentError
}

// NewEngine returns an engine resolving selectors through sel.
func NewEngine(kind part.Kind, sel Selectors) *Engine {
	return &Engine{kind: kind, sel: sel}
}

// Apply draws the requests in order. Requests with unknown selectors are
// skipped.
func (e *Engine) Apply(rec *recording.Recorder, reqs []Request) {
	for _, req := range reqs {
		if req == nil {
			continue
		}
		if !e.apply(rec, req) {
			e.skip(req)
			continue
		}
		rec.EndGroup()
	}
}

func (e *Engine) apply(rec *recording.Recorder, req Request) bool {
	switch r := req.(type) {
	case Datum:
		p, ok := e.sel.Datums[r.AttachTo]
		if !ok {
			return false
		}
		rec.Select(draft.LayerAnnotations)
		DrawDatum(rec, p, r.Label)
	case GeometricTolerance:
		p, ok := e.sel.Frames[r.AttachTo]
		if !ok {
			return false
		}
		rec.Select(draft.LayerAnnotations)
		DrawFrame(rec, p, ToleranceSymbol(r.Type), r.Tolerance, r.Datums)
	case SurfaceFinish:
		p, ok := e.sel.Finishes[r.Location]
		if !ok {
			return false
		}
		rec.Select(draft.LayerAnnotations)
		DrawRoughness(rec, p.At, r.Symbol, r.Size, r.Rotation)
	case Balloon:
		p, ok := e.sel.Balloons[r.AttachTo]
		if !ok {
			return false
		}
		rec.Select(draft.LayerAnnotations)
		DrawBalloon(rec, p, r.Number)
	default:
		return false
	}
	return true
}

func (e *Engine) skip(req Request) {
	err := &UnknownAttachmentError{Kind: e.kind, Category: req.Category(), Selector: req.Selector()}
	e.skipped = append(e.skipped, err)
	draft.ComponentLogger("annotate").Debug("dropped annotation",
		"kind", e.kind, "category", err.Category, "selector", err.Selector,
		"known", e.sel.Names(err.Category))
}

// Skipped returns the requests dropped so far, in request order.
func (e *Engine) Skipped() []*UnknownAttachmentError {
	out := make([]*UnknownAttachmentError, len(e.skipped))
	copy(out, e.skipped)
	return out
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
