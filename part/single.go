package part

import "math"

// Cylinder is a solid right circular cylinder.
type Cylinder struct {
	Radius            float64
	Height            float64
	HeightTolerance   string
	DiameterTolerance string
	Extras            Extras
}

func (*Cylinder) Kind() Kind { return KindCylinder }

func (c *Cylinder) Validate() error {
	return positive(KindCylinder, dim{"radius", c.Radius}, dim{"height", c.Height})
}

func (c *Cylinder) Params() []Param {
	var r rows
	r.num(c.Radius, "radius")
	r.num(c.Height, "height")
	r.str(c.HeightTolerance, "height_tolerance")
	r.str(c.DiameterTolerance, "diameter_tolerance")
	return r.extra(c.Extras)
}

// Cuboid is a rectangular block.
type Cuboid struct {
	Length          float64
	Width           float64
	Height          float64
	HeightTolerance string
	Extras          Extras
}

func (*Cuboid) Kind() Kind { return KindCuboid }

func (c *Cuboid) Validate() error {
	return positive(KindCuboid, dim{"length", c.Length}, dim{"width", c.Width}, dim{"height", c.Height})
}

func (c *Cuboid) Params() []Param {
	var r rows
	r.num(c.Length, "length")
	r.num(c.Width, "width")
	r.num(c.Height, "height")
	r.str(c.HeightTolerance, "height_tolerance")
	return r.extra(c.Extras)
}

// HexPrism is a regular hexagonal prism standing on a hexagonal face.
type HexPrism struct {
	SideLength      float64
	Height          float64
	HeightTolerance string
	WidthTolerance  string
	Extras          Extras
}

func (*HexPrism) Kind() Kind { return KindHexPrism }

func (h *HexPrism) Validate() error {
	return positive(KindHexPrism, dim{"side_length", h.SideLength}, dim{"height", h.Height})
}

func (h *HexPrism) Params() []Param {
	var r rows
	r.num(h.SideLength, "side_length")
	r.num(h.Height, "height")
	r.str(h.HeightTolerance, "height_tolerance")
	r.str(h.WidthTolerance, "width_tolerance")
	return r.extra(h.Extras)
}

// Hole is a through hole.
type Hole struct {
	Diameter          float64
	DiameterTolerance string
}

// HexNut is a hexagonal nut with a plain through hole.
type HexNut struct {
	SideLength          float64
	Height              float64
	Hole                Hole
	HeightTolerance     string
	SideLengthTolerance string
	Extras              Extras
}

func (*HexNut) Kind() Kind { return KindHexNut }

func (n *HexNut) Validate() error {
	if err := positive(KindHexNut,
		dim{"side_length", n.SideLength},
		dim{"height", n.Height},
		dim{"hole.diameter", n.Hole.Diameter},
	); err != nil {
		return err
	}
	if flats := n.SideLength * math.Sqrt(3); n.Hole.Diameter >= flats {
		return &DimensionMismatchError{
			Kind:   KindHexNut,
			FieldA: "hole.diameter", ValueA: n.Hole.Diameter,
			FieldB: "across_flats", ValueB: flats,
			Reason: "hole must be smaller than the across-flats width",
		}
	}
	return nil
}

func (n *HexNut) Params() []Param {
	var r rows
	r.num(n.SideLength, "side_length")
	r.num(n.Height, "height")
	r.num(n.Hole.Diameter, "hole", "diameter")
	r.str(n.Hole.DiameterTolerance, "hole", "diameter_tolerance")
	r.str(n.HeightTolerance, "height_tolerance")
	r.str(n.SideLengthTolerance, "side_length_tolerance")
	return r.extra(n.Extras)
}

// HexHead is the hexagonal head of a screw.
type HexHead struct {
	SideLength float64
	Height     float64
}

// Shaft is a plain cylindrical screw shaft.
type Shaft struct {
	Diameter float64
	Length   float64
}

// HexScrew is a hexagon head screw.
type HexScrew struct {
	Head                 HexHead
	Shaft                Shaft
	TotalHeightTolerance string
	HeadWidthTolerance   string
	Extras               Extras
}

func (*HexScrew) Kind() Kind { return KindHexScrew }

func (s *HexScrew) Validate() error {
	if err := positive(KindHexScrew,
		dim{"head.side_length", s.Head.SideLength},
		dim{"head.height", s.Head.Height},
		dim{"shaft.diameter", s.Shaft.Diameter},
		dim{"shaft.length", s.Shaft.Length},
	); err != nil {
		return err
	}
	if flats := s.Head.SideLength * math.Sqrt(3); s.Shaft.Diameter >= flats {
		return &DimensionMismatchError{
			Kind:   KindHexScrew,
			FieldA: "shaft.diameter", ValueA: s.Shaft.Diameter,
			FieldB: "head.across_flats", ValueB: flats,
			Reason: "shaft must be narrower than the head",
		}
	}
	return nil
}

// TotalHeight returns the head height plus the shaft length.
func (s *HexScrew) TotalHeight() float64 {
	return s.Head.Height + s.Shaft.Length
}

func (s *HexScrew) Params() []Param {
	var r rows
	r.num(s.Head.SideLength, "head", "side_length")
	r.num(s.Head.Height, "head", "height")
	r.num(s.Shaft.Diameter, "shaft", "diameter")
	r.num(s.Shaft.Length, "shaft", "length")
	r.str(s.TotalHeightTolerance, "total_height_tolerance")
	r.str(s.HeadWidthTolerance, "head_width_tolerance")
	return r.extra(s.Extras)
}

// Socket head cap screw defaults for optional fields.
const (
	DefaultThreadLength = 18.0
	DefaultFilletRadius = 0.4
	DefaultThreadPitch  = 1.0
)

// SocketHeadCapScrew is a cylindrical head screw with a hexagonal socket.
// Zero optional fields take their defaults in WithDefaults.
type SocketHeadCapScrew struct {
	HeadDiameter              float64
	HeadHeight                float64
	ShaftDiameter             float64
	ShaftLength               float64
	SocketDepth               float64
	SocketWidthAcrossFlats    float64
	ThreadDepth               float64
	ThreadLength              float64
	ThreadPitch               float64
	FilletRadius              float64
	SocketCountersinkDiameter float64
	EndChamferSize            float64
	Extras                    Extras
}

func (*SocketHeadCapScrew) Kind() Kind { return KindSocketHeadCapScrew }

// WithDefaults returns a copy with unset optional fields filled in.
func (s SocketHeadCapScrew) WithDefaults() SocketHeadCapScrew {
	if s.ThreadLength == 0 {
		s.ThreadLength = DefaultThreadLength
	}
	if s.FilletRadius == 0 {
		s.FilletRadius = DefaultFilletRadius
	}
	if s.SocketCountersinkDiameter == 0 {
		s.SocketCountersinkDiameter = s.SocketWidthAcrossFlats + 1
	}
	if s.EndChamferSize == 0 {
		s.EndChamferSize = s.ThreadPitch
		if s.EndChamferSize == 0 {
			s.EndChamferSize = DefaultThreadPitch
		}
	}
	return s
}

func (s *SocketHeadCapScrew) Validate() error {
	const k = KindSocketHeadCapScrew
	if err := positive(k,
		dim{"head_diameter", s.HeadDiameter},
		dim{"head_height", s.HeadHeight},
		dim{"shaft_diameter", s.ShaftDiameter},
		dim{"shaft_length", s.ShaftLength},
		dim{"socket_depth", s.SocketDepth},
		dim{"socket_width_across_flats", s.SocketWidthAcrossFlats},
		dim{"thread_depth", s.ThreadDepth},
	); err != nil {
		return err
	}
	d := s.WithDefaults()
	if err := positive(k,
		dim{"thread_length", d.ThreadLength},
		dim{"fillet_radius", d.FilletRadius},
		dim{"socket_countersink_diameter", d.SocketCountersinkDiameter},
		dim{"end_chamfer_size", d.EndChamferSize},
	); err != nil {
		return err
	}
	checks := []struct {
		a, b   dim
		reason string
	}{
		{dim{"shaft_diameter", d.ShaftDiameter}, dim{"head_diameter", d.HeadDiameter}, "shaft must be narrower than the head"},
		{dim{"socket_countersink_diameter", d.SocketCountersinkDiameter}, dim{"head_diameter", d.HeadDiameter}, "socket must fit inside the head"},
		{dim{"socket_depth", d.SocketDepth}, dim{"head_height", d.HeadHeight}, "socket must be shallower than the head"},
		{dim{"thread_depth", d.ThreadDepth}, dim{"shaft_radius", d.ShaftDiameter / 2}, "thread must be shallower than the shaft radius"},
		{dim{"end_chamfer_size", d.EndChamferSize}, dim{"shaft_radius", d.ShaftDiameter / 2}, "chamfer must be smaller than the shaft radius"},
	}
	for _, c := range checks {
		if c.a.value >= c.b.value {
			return &DimensionMismatchError{
				Kind:   k,
				FieldA: c.a.field, ValueA: c.a.value,
				FieldB: c.b.field, ValueB: c.b.value,
				Reason: c.reason,
			}
		}
	}
	return nil
}

func (s *SocketHeadCapScrew) Params() []Param {
	d := s.WithDefaults()
	var r rows
	r.num(d.HeadDiameter, "head_diameter")
	r.num(d.HeadHeight, "head_height")
	r.num(d.ShaftDiameter, "shaft_diameter")
	r.num(d.ShaftLength, "shaft_length")
	r.num(d.SocketDepth, "socket_depth")
	r.num(d.SocketWidthAcrossFlats, "socket_width_across_flats")
	r.num(d.ThreadDepth, "thread_depth")
	r.num(d.ThreadLength, "thread_length")
	if d.ThreadPitch != 0 {
		r.num(d.ThreadPitch, "thread_pitch")
	}
	r.num(d.FilletRadius, "fillet_radius")
	r.num(d.SocketCountersinkDiameter, "socket_countersink_diameter")
	r.num(d.EndChamferSize, "end_chamfer_size")
	return r.extra(s.Extras)
}
