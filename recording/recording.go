package recording

import (
	"fmt"
	"slices"

	"github.com/gogpu/draft"
)

// Recording is an immutable drawing command stream.
type Recording struct {
	meta     Meta
	commands []Command
	groups   []int
}

// NewRecording wraps an existing command stream. The stream is copied.
func NewRecording(meta Meta, commands []Command) *Recording {
	return &Recording{meta: meta, commands: slices.Clone(commands)}
}

// Meta returns the recording metadata.
func (r *Recording) Meta() Meta { return r.meta }

// Len returns the number of commands.
func (r *Recording) Len() int { return len(r.commands) }

// Commands returns a copy of the command stream.
func (r *Recording) Commands() []Command {
	return slices.Clone(r.commands)
}

// Groups returns the command indices at which a new group of primitives
// starts, in increasing order. The stream start is implied.
func (r *Recording) Groups() []int { return slices.Clone(r.groups) }

// CheckLayers runs CheckLayers over the stream and its group boundaries.
func (r *Recording) CheckLayers() error { return CheckLayers(r.commands, r.groups...) }

// Count returns the number of commands of type t.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.meta); err != nil {
		return err
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case CreateLayerCommand:
			backend.CreateLayer(c.Layer)
		case SelectLayerCommand:
			backend.SelectLayer(c.Key)
		case LineCommand:
			backend.Line(c)
		case RectangleCommand:
			backend.Rectangle(c)
		case CircleCommand:
			backend.Circle(c)
		case ArcCommand:
			backend.Arc(c)
		case PolygonCommand:
			backend.Polygon(c)
		case PolylineCommand:
			backend.Polyline(c)
		case HatchCommand:
			backend.Hatch(c)
		case TextCommand:
			backend.Text(c)
		case LeaderCommand:
			backend.Leader(c)
		case LinearDimensionCommand:
			backend.LinearDimension(c)
		case DiameterDimensionCommand:
			backend.DiameterDimension(c)
		default:
			return fmt.Errorf("recording: playback of unsupported command %s", cmd.Type())
		}
	}

	return backend.End()
}

// LayerError reports a violation of layer discipline in a command stream.
type LayerError struct {
	Index   int
	Command CommandType
	Reason  string
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("recording: command %d (%s): %s", e.Index, e.Command, e.Reason)
}

// CheckLayers verifies that every SelectLayer names a layer created
// earlier in the stream and that every primitive follows a SelectLayer of
// its own group. groups are the indices at which a new group starts; the
// start of the stream always begins one. A CreateLayer also clears the
// selection, since hosts make a newly created layer current.
func CheckLayers(commands []Command, groups ...int) error {
	groups = slices.Sorted(slices.Values(groups))
	created := make(map[draft.LayerKey]bool)
	selected := false
	next := 0
	for i, c := range commands {
		for next < len(groups) && groups[next] <= i {
			selected = false
			next++
		}
		switch c := c.(type) {
		case CreateLayerCommand:
			if c.Layer.Name == "" {
				return &LayerError{Index: i, Command: c.Type(), Reason: "layer has no name"}
			}
			created[c.Layer.Key] = true
			selected = false
		case SelectLayerCommand:
			if !created[c.Key] {
				return &LayerError{Index: i, Command: c.Type(), Reason: fmt.Sprintf("layer %q not created", c.Key)}
			}
			selected = true
		default:
			if c.Type().IsPrimitive() && !selected {
				return &LayerError{Index: i, Command: c.Type(), Reason: "primitive without a SelectLayer in its group"}
			}
		}
	}
	return nil
}
