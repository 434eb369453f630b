package part

import (
	"errors"
	"fmt"
)

// Sentinel errors for the part package.
var (
	// ErrUnsupportedShape is matched by every UnsupportedShapeError.
	ErrUnsupportedShape = errors.New("part: unsupported shape")

	// ErrMissingParameter is matched by every MissingParameterError.
	ErrMissingParameter = errors.New("part: missing parameter")

	// ErrInvalidParameter is matched by every InvalidParameterError.
	ErrInvalidParameter = errors.New("part: invalid parameter")

	// ErrDimensionMismatch is matched by every DimensionMismatchError.
	ErrDimensionMismatch = errors.New("part: dimension mismatch")
)

// MissingParameterError is returned when a required dimension is absent.
// Field is the dotted path of the parameter, e.g. "head.side_length".
type MissingParameterError struct {
	Kind  Kind
	Field string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("part: %s: missing required parameter %q", e.Kind, e.Field)
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// InvalidParameterError is returned when a parameter is present but
// unusable, e.g. a negative length or a string where a number is expected.
type InvalidParameterError struct {
	Kind   Kind
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("part: %s: invalid parameter %q = %v: %s", e.Kind, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DimensionMismatchError is returned when two dimensions that must agree
// do not, e.g. a screw shaft that does not fit the nut hole.
type DimensionMismatchError struct {
	Kind   Kind
	FieldA string
	ValueA float64
	FieldB string
	ValueB float64
	Reason string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("part: %s: dimension mismatch: %s = %g, %s = %g: %s",
		e.Kind, e.FieldA, e.ValueA, e.FieldB, e.ValueB, e.Reason)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// UnsupportedShapeError is returned for an unrecognized shape identifier.
type UnsupportedShapeError struct {
	Shape string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("part: unsupported shape %q", e.Shape)
}

// Is reports whether target is ErrUnsupportedShape.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}
