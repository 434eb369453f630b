package recording

import "github.com/gogpu/draft"

// CommandType identifies the type of a command.
// Each command type corresponds to one primitive of the drawing stream.
type CommandType uint8

const (
	// Layer commands
	CmdCreateLayer CommandType = iota // Create a host layer
	CmdSelectLayer                    // Make a layer current

	// Geometry commands
	CmdLine      // Straight segment
	CmdRectangle // Axis-aligned rectangle
	CmdCircle    // Full circle
	CmdArc       // Counter-clockwise circular arc
	CmdPolygon   // Regular polygon by radius
	CmdPolyline  // Open or closed polyline
	CmdHatch     // Pattern fill of a closed boundary

	// Annotation commands
	CmdText              // Single-line justified text
	CmdLeader            // Arrowed leader line
	CmdLinearDimension   // Horizontal, vertical or aligned dimension
	CmdDiameterDimension // Diameter dimension of a circle

	cmdTypeCount // sentinel for bounds checking
)

var commandTypeNames = [...]string{
	CmdCreateLayer:       "CreateLayer",
	CmdSelectLayer:       "SelectLayer",
	CmdLine:              "Line",
	CmdRectangle:         "Rectangle",
	CmdCircle:            "Circle",
	CmdArc:               "Arc",
	CmdPolygon:           "Polygon",
	CmdPolyline:          "Polyline",
	CmdHatch:             "Hatch",
	CmdText:              "Text",
	CmdLeader:            "Leader",
	CmdLinearDimension:   "LinearDimension",
	CmdDiameterDimension: "DiameterDimension",
}

// String returns a human-readable name for the command type.
func (t CommandType) String() string {
	if t < cmdTypeCount {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// IsPrimitive reports whether commands of this type draw on the current
// layer.
func (t CommandType) IsPrimitive() bool {
	return t > CmdSelectLayer && t < cmdTypeCount
}

// Command is the interface implemented by every element of the drawing
// stream.
type Command interface {
	// Type returns the command type for dispatch.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Layer Commands
// --------------------------------------------------------------------------

// CreateLayerCommand creates a host layer.
type CreateLayerCommand struct {
	Layer draft.Layer
}

// Type implements Command.
func (CreateLayerCommand) Type() CommandType { return CmdCreateLayer }

// SelectLayerCommand makes a previously created layer current.
// Every group of primitives is preceded by one.
type SelectLayerCommand struct {
	Key draft.LayerKey
}

// Type implements Command.
func (SelectLayerCommand) Type() CommandType { return CmdSelectLayer }

// --------------------------------------------------------------------------
// Geometry Commands
// --------------------------------------------------------------------------

// LineCommand draws a segment.
type LineCommand struct {
	From, To draft.Point
}

// Type implements Command.
func (LineCommand) Type() CommandType { return CmdLine }

// RectangleCommand draws an axis-aligned rectangle between two corners.
type RectangleCommand struct {
	Min, Max draft.Point
}

// Type implements Command.
func (RectangleCommand) Type() CommandType { return CmdRectangle }

// CircleCommand draws a circle.
type CircleCommand struct {
	Center draft.Point
	Radius float64
}

// Type implements Command.
func (CircleCommand) Type() CommandType { return CmdCircle }

// ArcCommand draws an arc counter-clockwise from Start to End degrees.
type ArcCommand struct {
	Center     draft.Point
	Radius     float64
	Start, End float64
}

// Type implements Command.
func (ArcCommand) Type() CommandType { return CmdArc }

// PolygonCommand draws a regular polygon whose bottom edge is horizontal.
//
// When Inscribed is set the vertices lie on the circle of the given radius;
// otherwise the edges are tangent to it.
type PolygonCommand struct {
	Center    draft.Point
	Radius    float64
	Sides     int
	Inscribed bool
}

// Type implements Command.
func (PolygonCommand) Type() CommandType { return CmdPolygon }

// PolylineCommand draws connected segments.
type PolylineCommand struct {
	Points []draft.Point
	Closed bool
}

// Type implements Command.
func (PolylineCommand) Type() CommandType { return CmdPolyline }

// HatchCommand fills a closed boundary with a named pattern.
type HatchCommand struct {
	Pattern  string
	Scale    float64
	Boundary []draft.Point
}

// Type implements Command.
func (HatchCommand) Type() CommandType { return CmdHatch }

// --------------------------------------------------------------------------
// Annotation Commands
// --------------------------------------------------------------------------

// Justify selects the text anchor point.
type Justify uint8

const (
	// JustifyBottomLeft anchors text at its baseline start.
	JustifyBottomLeft Justify = iota
	// JustifyMiddleCenter anchors text at the center of its box.
	JustifyMiddleCenter
)

// String returns the justification name.
func (j Justify) String() string {
	switch j {
	case JustifyBottomLeft:
		return "BL"
	case JustifyMiddleCenter:
		return "MC"
	default:
		return "Unknown"
	}
}

// TextCommand places a single line of text. Height is the cap height and
// Rotation is in degrees.
type TextCommand struct {
	Pos      draft.Point
	Height   float64
	Rotation float64
	Justify  Justify
	Value    string
}

// Type implements Command.
func (TextCommand) Type() CommandType { return CmdText }

// LeaderCommand draws a leader with its arrowhead at Points[0].
type LeaderCommand struct {
	Points []draft.Point
}

// Type implements Command.
func (LeaderCommand) Type() CommandType { return CmdLeader }

// DimAxis selects the measuring direction of a linear dimension.
type DimAxis uint8

const (
	AxisHorizontal DimAxis = iota
	AxisVertical
	AxisAligned
)

// MeasuredPlaceholder stands for the measured value in dimension text.
const MeasuredPlaceholder = "<>"

// DiameterSign prefixes diameter values.
const DiameterSign = "⌀"

// LinearDimensionCommand dimensions the distance between P1 and P2. The
// dimension line passes through TextPos.
//
// Text overrides the dimension text. Empty text shows the measured value;
// MeasuredPlaceholder inside Text is replaced by it.
type LinearDimensionCommand struct {
	P1, P2  draft.Point
	TextPos draft.Point
	Axis    DimAxis
	Text    string
}

// Type implements Command.
func (LinearDimensionCommand) Type() CommandType { return CmdLinearDimension }

// DiameterDimensionCommand dimensions a circle. The dimension line runs
// through Center toward TextPos.
type DiameterDimensionCommand struct {
	Center  draft.Point
	Radius  float64
	TextPos draft.Point
	Text    string
}

// Type implements Command.
func (DiameterDimensionCommand) Type() CommandType { return CmdDiameterDimension }

// Ensure all commands implement the Command interface.
var (
	_ Command = CreateLayerCommand{}
	_ Command = SelectLayerCommand{}
	_ Command = LineCommand{}
	_ Command = RectangleCommand{}
	_ Command = CircleCommand{}
	_ Command = ArcCommand{}
	_ Command = PolygonCommand{}
	_ Command = PolylineCommand{}
	_ Command = HatchCommand{}
	_ Command = TextCommand{}
	_ Command = LeaderCommand{}
	_ Command = LinearDimensionCommand{}
	_ Command = DiameterDimensionCommand{}
)
