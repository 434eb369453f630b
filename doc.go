// Package draft provides the shared value types of a parametric multi-view
// drafting engine.
//
// # Overview
//
// A drawing is produced from a declarative part or assembly description.
// The engine computes the geometry of the orthographic views (front, top,
// side and an optional section), lays out dimensions, datums, geometric
// tolerance frames, surface finish symbols and balloons, composes parameter
// and bill-of-materials tables, and records everything as an ordered,
// backend-agnostic command stream.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/draft/catalog"
//	    "github.com/gogpu/draft/config"
//	    "github.com/gogpu/draft/recording"
//	    _ "github.com/gogpu/draft/recording/backends/lisp"
//	)
//
//	doc, err := config.LoadFile("hex_nut.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec, err := catalog.Generate(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	backend, err := recording.NewBackend("lisp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rec.Playback(backend); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The repository is organized leaves first:
//   - draft: Point, Rect, drawing Options, layers, color palette, logger
//   - part: validated shape specifications (one variant per kind)
//   - geometry: declarative view templates and the resolver
//   - annotate: datum, GD&T frame, roughness symbol and balloon layout
//   - table: parameter and bill-of-materials grids
//   - catalog: per-kind orchestration into a complete recording
//   - recording: command stream, playback and the backend registry
//
// Data flows strictly geometry, then annotations and tables, then the
// catalog, then a backend. No package keeps shared mutable state apart
// from the logger and the backend registry.
//
// # Coordinates
//
// All coordinates use one implicit length unit with the y axis pointing up,
// as in the host CAD systems the command stream targets. Angles are degrees,
// counter-clockwise from the positive x axis.
package draft
