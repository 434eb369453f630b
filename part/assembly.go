package part

import (
	"errors"
	"math"
)

// ScrewParams are the screw dimensions of a screw-nut assembly.
// HeadWidth is the across-corners width of the hexagonal head.
type ScrewParams struct {
	HeadWidth     float64
	HeadHeight    float64
	ShaftDiameter float64
	ShaftLength   float64
}

// NutParams are the nut dimensions of a screw-nut assembly.
// Width is the across-corners width of the nut.
type NutParams struct {
	Width        float64
	Height       float64
	HoleDiameter float64
}

// ScrewNutAssembly is a hexagon head screw with a nut threaded onto the
// end of its shaft.
type ScrewNutAssembly struct {
	Screw     ScrewParams
	ScrewItem Component
	Nut       NutParams
	NutItem   Component

	TotalHeightTolerance string
	HeadWidthTolerance   string
	Extras               Extras
}

func (*ScrewNutAssembly) Kind() Kind { return KindScrewNutAssembly }

func (a *ScrewNutAssembly) Validate() error {
	if err := positive(KindScrewNutAssembly,
		dim{"screw.head_width", a.Screw.HeadWidth},
		dim{"screw.head_height", a.Screw.HeadHeight},
		dim{"screw.shaft_diameter", a.Screw.ShaftDiameter},
		dim{"screw.shaft_length", a.Screw.ShaftLength},
		dim{"nut.width", a.Nut.Width},
		dim{"nut.height", a.Nut.Height},
		dim{"nut.hole_diameter", a.Nut.HoleDiameter},
	); err != nil {
		return err
	}
	if a.Screw.ShaftDiameter != a.Nut.HoleDiameter {
		return &DimensionMismatchError{
			Kind:   KindScrewNutAssembly,
			FieldA: "screw.shaft_diameter", ValueA: a.Screw.ShaftDiameter,
			FieldB: "nut.hole_diameter", ValueB: a.Nut.HoleDiameter,
			Reason: "screw shaft must match the nut hole",
		}
	}
	// Widths are across corners; the shaft must clear both hexagons across flats.
	if flats := a.Screw.HeadWidth / 2 * math.Sqrt(3); a.Screw.ShaftDiameter >= flats {
		return &InvalidParameterError{
			Kind: KindScrewNutAssembly, Field: "screw.shaft_diameter", Value: a.Screw.ShaftDiameter,
			Reason: "shaft must be narrower than the head across flats",
		}
	}
	if flats := a.Nut.Width / 2 * math.Sqrt(3); a.Nut.HoleDiameter >= flats {
		return &InvalidParameterError{
			Kind: KindScrewNutAssembly, Field: "nut.hole_diameter", Value: a.Nut.HoleDiameter,
			Reason: "hole must be smaller than the nut across flats",
		}
	}
	return nil
}

func (a *ScrewNutAssembly) Components() []Component {
	return []Component{withKey(a.ScrewItem, "screw"), withKey(a.NutItem, "nut")}
}

func (a *ScrewNutAssembly) Params() []Param {
	var screw, nut, top rows
	screw.num(a.Screw.HeadWidth, "head_width")
	screw.num(a.Screw.HeadHeight, "head_height")
	screw.num(a.Screw.ShaftDiameter, "shaft_diameter")
	screw.num(a.Screw.ShaftLength, "shaft_length")
	nut.num(a.Nut.Width, "width")
	nut.num(a.Nut.Height, "height")
	nut.num(a.Nut.HoleDiameter, "hole_diameter")
	top.str(a.TotalHeightTolerance, "total_height_tolerance")
	top.str(a.HeadWidthTolerance, "head_width_tolerance")

	out := prefixed("screw", screw)
	out = append(out, prefixed("nut", nut)...)
	return append(out, top.extra(a.Extras)...)
}

// CuboidCylinderAssembly is a cylinder seated in a bore at the center of a
// cuboid block.
type CuboidCylinderAssembly struct {
	Cuboid       Cuboid
	CuboidItem   Component
	Cylinder     Cylinder
	CylinderItem Component
	Extras       Extras
}

func (*CuboidCylinderAssembly) Kind() Kind { return KindCuboidCylinderAssembly }

func (a *CuboidCylinderAssembly) Validate() error {
	const k = KindCuboidCylinderAssembly
	if err := within(k, "cuboid", a.Cuboid.Validate()); err != nil {
		return err
	}
	if err := within(k, "cylinder", a.Cylinder.Validate()); err != nil {
		return err
	}
	d := 2 * a.Cylinder.Radius
	if d > a.Cuboid.Length {
		return &DimensionMismatchError{
			Kind:   k,
			FieldA: "cylinder.diameter", ValueA: d,
			FieldB: "cuboid.length", ValueB: a.Cuboid.Length,
			Reason: "cylinder must fit inside the cuboid",
		}
	}
	if d > a.Cuboid.Width {
		return &DimensionMismatchError{
			Kind:   k,
			FieldA: "cylinder.diameter", ValueA: d,
			FieldB: "cuboid.width", ValueB: a.Cuboid.Width,
			Reason: "cylinder must fit inside the cuboid",
		}
	}
	return nil
}

func (a *CuboidCylinderAssembly) Components() []Component {
	return []Component{withKey(a.CuboidItem, "cuboid"), withKey(a.CylinderItem, "cylinder")}
}

func (a *CuboidCylinderAssembly) Params() []Param {
	out := prefixed("cuboid", a.Cuboid.Params())
	out = append(out, prefixed("cylinder", a.Cylinder.Params())...)
	return append(out, a.Extras...)
}

// CylinderScrewNutAssembly is a hexagon head screw passing through a bored
// cylinder and clamped by a nut below it.
type CylinderScrewNutAssembly struct {
	Cylinder     Cylinder
	CylinderItem Component
	Screw        HexScrew
	ScrewItem    Component
	Nut          HexNut
	NutItem      Component
	Extras       Extras
}

func (*CylinderScrewNutAssembly) Kind() Kind { return KindCylinderScrewNutAssembly }

func (a *CylinderScrewNutAssembly) Validate() error {
	const k = KindCylinderScrewNutAssembly
	if err := within(k, "cylinder", a.Cylinder.Validate()); err != nil {
		return err
	}
	if err := within(k, "screw", a.Screw.Validate()); err != nil {
		return err
	}
	if err := within(k, "nut", a.Nut.Validate()); err != nil {
		return err
	}
	if a.Screw.Shaft.Diameter != a.Nut.Hole.Diameter {
		return &DimensionMismatchError{
			Kind:   k,
			FieldA: "screw.shaft.diameter", ValueA: a.Screw.Shaft.Diameter,
			FieldB: "nut.hole.diameter", ValueB: a.Nut.Hole.Diameter,
			Reason: "screw shaft must match the nut hole",
		}
	}
	if d := 2 * a.Cylinder.Radius; d <= a.Screw.Shaft.Diameter {
		return &DimensionMismatchError{
			Kind:   k,
			FieldA: "cylinder.diameter", ValueA: d,
			FieldB: "screw.shaft.diameter", ValueB: a.Screw.Shaft.Diameter,
			Reason: "cylinder must be wider than its bore",
		}
	}
	return nil
}

// ShortShaft reports whether the shaft ends inside the nut, i.e. it is
// shorter than the clamped cylinder plus nut stack.
func (a *CylinderScrewNutAssembly) ShortShaft() bool {
	return a.Screw.Shaft.Length < a.Cylinder.Height+a.Nut.Height
}

func (a *CylinderScrewNutAssembly) Components() []Component {
	return []Component{
		withKey(a.ScrewItem, "screw"),
		withKey(a.CylinderItem, "cylinder"),
		withKey(a.NutItem, "nut"),
	}
}

func (a *CylinderScrewNutAssembly) Params() []Param {
	out := prefixed("cylinder", a.Cylinder.Params())
	out = append(out, prefixed("screw", a.Screw.Params())...)
	out = append(out, prefixed("nut", a.Nut.Params())...)
	return append(out, a.Extras...)
}

func withKey(c Component, key string) Component {
	if c.Key == "" {
		c.Key = key
	}
	return c
}

// within re-targets a component validation error at the enclosing
// assembly, prefixing field paths with the component key.
func within(kind Kind, prefix string, err error) error {
	if err == nil {
		return nil
	}
	var (
		missing  *MissingParameterError
		invalid  *InvalidParameterError
		mismatch *DimensionMismatchError
	)
	switch {
	case errors.As(err, &missing):
		return &MissingParameterError{Kind: kind, Field: prefix + "." + missing.Field}
	case errors.As(err, &invalid):
		e := *invalid
		e.Kind, e.Field = kind, prefix+"."+invalid.Field
		return &e
	case errors.As(err, &mismatch):
		e := *mismatch
		e.Kind = kind
		e.FieldA, e.FieldB = prefix+"."+mismatch.FieldA, prefix+"."+mismatch.FieldB
		return &e
	}
	return err
}
