// Package recording provides the drawing command stream produced by the
// shape catalog and consumed by output backends.
//
// # Architecture
//
// The system follows a Command Pattern with three main components:
//
//   - Recorder: Appends typed commands, tracking the current layer
//   - Recording: Immutable command stream for playback
//   - Backend: Renders commands to a specific output format
//
// # Basic Usage
//
//	rec := recording.NewRecorder(opts)
//
//	rec.Select(draft.LayerOutline)
//	rec.Rectangle(draft.Pt(0, 0), draft.Pt(20, 20))
//	rec.Circle(draft.Pt(10, 45), 10)
//
//	rec.Select(draft.LayerDimensions)
//	rec.LinearDimension(draft.Pt(0, 0), draft.Pt(20, 0), draft.Pt(10, -10),
//	    recording.AxisHorizontal, "")
//
//	r := rec.FinishRecording("Cylinder")
//
// # Layer Discipline
//
// NewRecorder creates every configured layer first. Each group of
// primitives is preceded by an explicit SelectLayer; the stream never
// relies on a layer being current from earlier output. Producers close
// each group with [Recorder.EndGroup], which forgets the current layer and
// records the boundary; [Recording.CheckLayers] verifies a stream against
// these rules.
//
// # Playback to Backends
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/draft/recording"
//	    _ "github.com/gogpu/draft/recording/backends/lisp" // "lisp"
//	    _ "github.com/gogpu/draft/recording/backends/svg"  // "svg"
//	)
//
//	b, _ := recording.NewBackend("lisp")
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
//	b.(recording.WriterBackend).WriteTo(os.Stdout)
//
// Backends that compute their own dimension and hatch geometry use
// [LayoutLinear], [LayoutDiameter], [HatchLines] and [PolygonVertices] so
// every preview format draws them alike.
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. Recording objects are immutable
// and can be played back from multiple goroutines, each to its own backend.
package recording
