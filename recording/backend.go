package recording

import (
	"io"

	"github.com/gogpu/draft"
)

// Backend is the interface that all output backends must implement.
// Backends receive the drawing stream one command at a time and translate
// it to their output format (host script, SVG elements, raster pixels).
//
// The current layer is backend state: SelectLayer changes it and every
// primitive that follows is drawn on it.
//
// Backends are created via the registry using NewBackend(name) and
// registered as a Format in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register a Format in init() using recording.Register()
//  2. Handle all Backend methods (even if no-op for some)
//  3. Map the y-up drawing coordinates to its own space
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register(recording.Format{
//	        Name: "dxf", Extension: ".dxf", MediaType: "image/vnd.dxf",
//	        New:  func() recording.Backend { return NewBackend() },
//	    })
//	}
type Backend interface {
	// Lifecycle methods

	// Begin initializes the backend for a recording.
	// This must be called before any drawing operations.
	Begin(meta Meta) error

	// End finalizes the output.
	// After End is called, output methods (WriteTo, SaveToFile) can be used.
	End() error

	// Layer methods

	// CreateLayer declares a host layer.
	CreateLayer(l draft.Layer)

	// SelectLayer makes a declared layer current.
	SelectLayer(key draft.LayerKey)

	// Drawing methods

	Line(c LineCommand)
	Rectangle(c RectangleCommand)
	Circle(c CircleCommand)
	Arc(c ArcCommand)
	Polygon(c PolygonCommand)
	Polyline(c PolylineCommand)
	Hatch(c HatchCommand)
	Text(c TextCommand)
	Leader(c LeaderCommand)
	LinearDimension(c LinearDimensionCommand)
	DiameterDimension(c DiameterDimensionCommand)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error
}
