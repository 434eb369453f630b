// Package part defines the validated shape specifications accepted by the
// drafting engine.
//
// Every supported shape kind is one concrete Spec type declaring its own
// required and optional fields. Specs are plain values; Validate checks the
// required fields and the dimensional relations between them, and returns
// the first violation as one of the error types in this package.
package part

import (
	"math"
	"slices"
	"strconv"
)

// Kind identifies a shape or assembly kind.
type Kind string

// Supported kinds.
const (
	KindCylinder                 Kind = "cylinder"
	KindCuboid                   Kind = "cuboid"
	KindHexPrism                 Kind = "hexagonal_prism"
	KindHexNut                   Kind = "hexagonal_nut"
	KindHexScrew                 Kind = "hexagonal_screw"
	KindSocketHeadCapScrew       Kind = "socket_head_cap_screw"
	KindScrewNutAssembly         Kind = "screw_nut_assembly"
	KindCuboidCylinderAssembly   Kind = "cuboid_cylinder_assembly"
	KindCylinderScrewNutAssembly Kind = "cylinder_screw_nut_assembly"
)

var kinds = []Kind{
	KindCylinder,
	KindCuboid,
	KindHexPrism,
	KindHexNut,
	KindHexScrew,
	KindSocketHeadCapScrew,
	KindScrewNutAssembly,
	KindCuboidCylinderAssembly,
	KindCylinderScrewNutAssembly,
}

var aliases = map[string]Kind{
	"hex_prism": KindHexPrism,
	"hex_nut":   KindHexNut,
	"hex_screw": KindHexScrew,
}

// Kinds returns every supported kind in catalog order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// ParseKind resolves a shape identifier, accepting the short hex aliases.
func ParseKind(name string) (Kind, error) {
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	k := Kind(name)
	if slices.Contains(kinds, k) {
		return k, nil
	}
	return "", &UnsupportedShapeError{Shape: name}
}

// IsAssembly reports whether k describes a multi-component assembly.
func (k Kind) IsAssembly() bool {
	switch k {
	case KindScrewNutAssembly, KindCuboidCylinderAssembly, KindCylinderScrewNutAssembly:
		return true
	}
	return false
}

// Spec is a validated shape specification.
type Spec interface {
	// Kind returns the shape kind.
	Kind() Kind

	// Validate checks required fields and dimensional relations.
	Validate() error

	// Params returns the parameter table rows in declaration order.
	Params() []Param
}

// Assembly is a Spec made of several bill-of-materials components.
type Assembly interface {
	Spec

	// Components returns the components in item-number order.
	Components() []Component
}

// Param is one parameter table row. Path holds the nested key segments,
// e.g. {"head", "side_length"}.
type Param struct {
	Path  []string
	Value string
}

// Component is one bill-of-materials item.
type Component struct {
	Key      string // document key, e.g. "screw"
	Name     string // display name; empty means derived from Key
	Quantity int    // zero means 1
}

// Extras holds document parameters that no spec field claims. They are
// reported after the declared rows of the parameter table.
type Extras []Param

// Num formats a dimension for tables and dimension text.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed formats a dimension with a fixed number of decimals.
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// rows accumulates parameter table rows.
type rows []Param

func (r *rows) num(v float64, path ...string) {
	*r = append(*r, Param{Path: path, Value: Num(v)})
}

func (r *rows) str(v string, path ...string) {
	if v == "" {
		return
	}
	*r = append(*r, Param{Path: path, Value: v})
}

func (r *rows) extra(e Extras) []Param {
	return append(*r, e...)
}

// prefixed returns p with every path prefixed by seg.
func prefixed(seg string, p []Param) []Param {
	out := make([]Param, len(p))
	for i, row := range p {
		out[i] = Param{Path: append([]string{seg}, row.Path...), Value: row.Value}
	}
	return out
}

// dim is one named dimension checked by positive.
type dim struct {
	field string
	value float64
}

// positive returns an error for the first dimension that is absent (zero)
// or not a positive finite number.
func positive(kind Kind, dims ...dim) error {
	for _, d := range dims {
		switch {
		case d.value == 0:
			return &MissingParameterError{Kind: kind, Field: d.field}
		case math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value < 0:
			return &InvalidParameterError{Kind: kind, Field: d.field, Value: d.value, Reason: "must be a positive number"}
		}
	}
	return nil
}
