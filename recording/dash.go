package recording

import (
	"math"
	"strings"

	"github.com/gogpu/draft"
)

// Dash defines a dash pattern for preview stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths. An odd-length array is
	// logically duplicated ([5] becomes [5, 5]).
	Array []float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	positive := false
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if l != 0 {
			positive = true
		}
	}
	if !positive {
		return nil
	}
	return &Dash{Array: normalized}
}

// Host linetype patterns in drawing units at scale 1.
var lineTypeDashes = map[string][]float64{
	"HIDDEN":  {3, 1.5},
	"DASHED":  {6, 3},
	"CENTER":  {16, 3, 3, 3},
	"PHANTOM": {16, 3, 3, 3, 3, 3},
	"DOT":     {0.5, 2},
}

// LineTypeDash returns the preview pattern of a host linetype, or nil for
// continuous lines.
func LineTypeDash(lineType string) *Dash {
	arr, ok := lineTypeDashes[strings.ToUpper(lineType)]
	if !ok {
		return nil
	}
	return NewDash(arr...)
}

// PatternLength returns the total length of one complete pattern cycle.
func (d *Dash) PatternLength() float64 {
	var total float64
	for _, l := range d.effectiveArray() {
		total += l
	}
	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
func (d *Dash) IsDashed() bool {
	return d.PatternLength() > 0
}

// Scale returns a new Dash with all lengths multiplied by the given factor.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	scaled := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaled[i] = l * factor
	}
	return &Dash{Array: scaled}
}

// Split returns the visible pieces of the segment a-b. A nil or solid
// pattern returns the whole segment.
func (d *Dash) Split(a, b draft.Point) [][2]draft.Point {
	length := a.Distance(b)
	if !d.IsDashed() || length == 0 {
		return [][2]draft.Point{{a, b}}
	}
	arr := d.effectiveArray()
	var out [][2]draft.Point
	pos := 0.0
	for i := 0; pos < length; i++ {
		l := arr[i%len(arr)]
		end := math.Min(pos+l, length)
		if i%2 == 0 {
			out = append(out, [2]draft.Point{a.Lerp(b, pos/length), a.Lerp(b, end/length)})
		}
		pos = end
	}
	return out
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}
