package geometry

import (
	"math"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/part"
)

var templates = map[part.Kind]*Template{}

func register(t *Template) {
	if _, dup := templates[t.Kind]; dup {
		panic("geometry: template registered twice for " + string(t.Kind))
	}
	templates[t.Kind] = t
}

// Lookup returns the template of a kind.
func Lookup(kind part.Kind) (*Template, bool) {
	t, ok := templates[kind]
	return t, ok
}

func init() {
	register(cylinderTemplate())
	register(cuboidTemplate())
	register(hexPrismTemplate())
	register(hexNutTemplate())
	register(hexScrewTemplate())
	register(socketHeadTemplate())
	register(screwNutTemplate())
	register(cuboidCylinderTemplate())
	register(cylinderScrewNutTemplate())
}

// Helpers keeping the templates close to their formulas.

func sc(name string, expr func(*Env) float64) Scalar { return Scalar{Name: name, Expr: expr} }

func pt(name string, expr func(*Env) draft.Point) Anchor { return Anchor{Name: name, Expr: expr} }

func box(name string, expr func(*Env) draft.Rect) Box { return Box{Name: name, Expr: expr} }

func sectionBox(name string, expr func(*Env) draft.Rect) Box {
	return Box{Name: name, Expr: expr, When: sectionOnly}
}

func view(name ViewName, members ...string) View { return View{Name: name, Members: members} }

// hexHalfHeight is the vertical half extent of a flat-bottomed hexagon with
// vertex radius r.
func hexHalfHeight(r float64) float64 { return r * math.Sqrt(3) / 2 }

func cylinderTemplate() *Template {
	return &Template{
		Kind:      part.KindCylinder,
		Clearance: 10,
		Bind: func(s part.Spec) map[string]float64 {
			c := s.(*part.Cylinder)
			return map[string]float64{"r": c.Radius, "h": c.Height}
		},
		Scalars: []Scalar{
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("r") }),
			sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("h")/2 }),
			sc("top_y", func(e *Env) float64 { return e.Y() + e.S("h") }),
			sc("side_sx", func(e *Env) float64 { return e.X() + 2*e.S("r") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("r") }),
			sc("top_cy", func(e *Env) float64 { return e.Y() + e.S("h") + e.Spacing + e.S("r") }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: []Box{
			box("front.body", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.Y(), e.X()+2*e.S("r"), e.S("top_y"))
			}),
			box("side.body", func(e *Env) draft.Rect {
				return draft.R(e.S("side_sx"), e.Y(), e.S("side_sx")+2*e.S("r"), e.S("top_y"))
			}),
			box("top.body", func(e *Env) draft.Rect {
				return draft.RectAround(e.P("top_center"), e.S("r"), e.S("r"))
			}),
		},
		Views: []View{
			view(Front, "front.body"),
			view(Side, "side.body"),
			view(Top, "top.body"),
		},
	}
}

func cuboidTemplate() *Template {
	return &Template{
		Kind:      part.KindCuboid,
		Clearance: 10,
		Bind: func(s part.Spec) map[string]float64 {
			c := s.(*part.Cuboid)
			return map[string]float64{"l": c.Length, "w": c.Width, "h": c.Height}
		},
		Scalars: []Scalar{
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("l")/2 }),
			sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("h")/2 }),
			sc("top_y", func(e *Env) float64 { return e.Y() + e.S("h") }),
			sc("top_sy", func(e *Env) float64 { return e.S("top_y") + e.Spacing }),
			sc("top_cy", func(e *Env) float64 { return e.S("top_sy") + e.S("w")/2 }),
			sc("side_sx", func(e *Env) float64 { return e.X() + e.S("l") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("w")/2 }),
		},
		Boxes: []Box{
			box("front.body", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.Y(), e.X()+e.S("l"), e.S("top_y"))
			}),
			box("top.body", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.S("top_sy"), e.X()+e.S("l"), e.S("top_sy")+e.S("w"))
			}),
			box("side.body", func(e *Env) draft.Rect {
				return draft.R(e.S("side_sx"), e.Y(), e.S("side_sx")+e.S("w"), e.S("top_y"))
			}),
		},
		Views: []View{
			view(Front, "front.body"),
			view(Top, "top.body"),
			view(Side, "side.body"),
		},
	}
}

// hexScalars are shared by the prism and the nut: a hexagon of side s
// standing on a face, front view across corners, side view across flats.
func hexScalars() []Scalar {
	return []Scalar{
		sc("flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("s")) }),
		sc("corners", func(e *Env) float64 { return draft.AcrossCorners(e.S("s")) }),
		sc("front_cx", func(e *Env) float64 { return e.X() + e.S("s") }),
		sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("h")/2 }),
		sc("top_y", func(e *Env) float64 { return e.Y() + e.S("h") }),
		sc("side_sx", func(e *Env) float64 { return e.X() + e.S("corners") + e.Spacing }),
		sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("flats")/2 }),
		sc("top_cy", func(e *Env) float64 { return e.S("top_y") + e.Spacing + e.S("s") }),
		sc("top_bottom_y", func(e *Env) float64 { return e.S("top_cy") - e.S("flats")/2 }),
	}
}

func hexBoxes() []Box {
	return []Box{
		box("front.body", func(e *Env) draft.Rect {
			return draft.R(e.X(), e.Y(), e.X()+e.S("corners"), e.S("top_y"))
		}),
		box("side.body", func(e *Env) draft.Rect {
			return draft.R(e.S("side_sx"), e.Y(), e.S("side_sx")+e.S("flats"), e.S("top_y"))
		}),
		box("top.body", func(e *Env) draft.Rect {
			return draft.RectAround(e.P("top_center"), e.S("s"), e.S("flats")/2)
		}),
	}
}

func hexPrismTemplate() *Template {
	return &Template{
		Kind:      part.KindHexPrism,
		Clearance: 10,
		Bind: func(s part.Spec) map[string]float64 {
			p := s.(*part.HexPrism)
			return map[string]float64{"s": p.SideLength, "h": p.Height}
		},
		Scalars: hexScalars(),
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: hexBoxes(),
		Views: []View{
			view(Front, "front.body"),
			view(Side, "side.body"),
			view(Top, "top.body"),
		},
	}
}

func hexNutTemplate() *Template {
	scalars := append(hexScalars(),
		sc("inner", func(e *Env) float64 { return e.S("s") / 2 }),
		sc("section_y", func(e *Env) float64 { return e.S("top_y") + e.Spacing }),
		sc("section_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("s") }),
	)
	boxes := append(hexBoxes(),
		sectionBox("section.body", func(e *Env) draft.Rect {
			return draft.R(e.S("side_sx"), e.S("section_y"), e.S("side_sx")+e.S("corners"), e.S("section_y")+e.S("h"))
		}),
	)
	return &Template{
		Kind:           part.KindHexNut,
		Clearance:      5,
		SectionDefault: true,
		Bind: func(s part.Spec) map[string]float64 {
			n := s.(*part.HexNut)
			return map[string]float64{"s": n.SideLength, "h": n.Height, "hole_r": n.Hole.Diameter / 2}
		},
		Scalars: scalars,
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: boxes,
		Views: []View{
			view(Front, "front.body"),
			view(Side, "side.body"),
			view(Top, "top.body"),
			{Name: Section, Members: []string{"section.body"}, When: sectionOnly},
		},
	}
}

func hexScrewTemplate() *Template {
	return &Template{
		Kind:      part.KindHexScrew,
		Clearance: 10,
		Bind: func(s part.Spec) map[string]float64 {
			h := s.(*part.HexScrew)
			return map[string]float64{
				"s":         h.Head.SideLength,
				"head_h":    h.Head.Height,
				"shaft_r":   h.Shaft.Diameter / 2,
				"shaft_len": h.Shaft.Length,
			}
		},
		Scalars: []Scalar{
			sc("total", func(e *Env) float64 { return e.S("head_h") + e.S("shaft_len") }),
			sc("flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("s")) }),
			sc("corners", func(e *Env) float64 { return draft.AcrossCorners(e.S("s")) }),
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("s") }),
			sc("head_y", func(e *Env) float64 { return e.Y() + e.S("shaft_len") }),
			sc("top_y", func(e *Env) float64 { return e.Y() + e.S("total") }),
			sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("total")/2 }),
			sc("side_sx", func(e *Env) float64 { return e.X() + e.S("corners") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("flats")/2 }),
			sc("top_cy", func(e *Env) float64 { return e.S("top_y") + e.Spacing + e.S("s") }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: []Box{
			box("front.head", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.S("head_y"), e.X()+e.S("corners"), e.S("top_y"))
			}),
			box("front.shaft", func(e *Env) draft.Rect {
				cx := e.S("front_cx")
				return draft.R(cx-e.S("shaft_r"), e.Y(), cx+e.S("shaft_r"), e.S("head_y"))
			}),
			box("side.head", func(e *Env) draft.Rect {
				return draft.R(e.S("side_sx"), e.S("head_y"), e.S("side_sx")+e.S("flats"), e.S("top_y"))
			}),
			box("side.shaft", func(e *Env) draft.Rect {
				cx := e.S("side_cx")
				return draft.R(cx-e.S("shaft_r"), e.Y(), cx+e.S("shaft_r"), e.S("head_y"))
			}),
			box("top.head", func(e *Env) draft.Rect {
				return draft.RectAround(e.P("top_center"), e.S("s"), e.S("flats")/2)
			}),
		},
		Views: []View{
			view(Front, "front.head", "front.shaft"),
			view(Side, "side.head", "side.shaft"),
			view(Top, "top.head"),
		},
	}
}

func socketHeadTemplate() *Template {
	tan30 := math.Tan(draft.Radians(30))
	tan60 := math.Tan(draft.Radians(60))
	cos30 := math.Cos(draft.Radians(30))

	// sinkY is the height at which the 120° countersink meets a socket wall
	// at half width w.
	sinkY := func(e *Env, w float64) float64 {
		dx := e.S("sink_half") - w
		if dx <= 0 {
			return e.S("head_top")
		}
		return e.S("head_top") - dx*tan30
	}

	return &Template{
		Kind:      part.KindSocketHeadCapScrew,
		Clearance: 20,
		Bind: func(s part.Spec) map[string]float64 {
			d := s.(*part.SocketHeadCapScrew).WithDefaults()
			return map[string]float64{
				"head_r":       d.HeadDiameter / 2,
				"head_h":       d.HeadHeight,
				"shaft_r":      d.ShaftDiameter / 2,
				"shaft_len":    d.ShaftLength,
				"socket_depth": d.SocketDepth,
				"socket_flats": d.SocketWidthAcrossFlats,
				"sink_half":    d.SocketCountersinkDiameter / 2,
				"chamfer":      d.EndChamferSize,
				"thread_len":   d.ThreadLength,
				"thread_depth": d.ThreadDepth,
				"fillet":       d.FilletRadius,
			}
		},
		Scalars: []Scalar{
			sc("total", func(e *Env) float64 { return e.S("head_h") + e.S("shaft_len") }),
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("head_r") }),
			sc("head_y", func(e *Env) float64 { return e.Y() + e.S("shaft_len") }),
			sc("head_top", func(e *Env) float64 { return e.S("head_y") + e.S("head_h") }),
			sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("shaft_len")/2 }),
			sc("socket_bottom", func(e *Env) float64 { return e.S("head_top") - e.S("socket_depth") }),
			sc("thread_end", func(e *Env) float64 {
				return e.Y() + math.Min(e.S("thread_len"), e.S("shaft_len"))
			}),
			sc("fillet_y", func(e *Env) float64 { return e.S("head_y") - e.S("fillet") }),
			sc("minor_r", func(e *Env) float64 { return e.S("shaft_r") - e.S("thread_depth") }),
			sc("chamfer_r", func(e *Env) float64 { return e.S("shaft_r") - e.S("chamfer") }),
			sc("socket_half_flats", func(e *Env) float64 { return e.S("socket_flats") / 2 }),
			sc("socket_half_corners", func(e *Env) float64 { return e.S("socket_flats") / 2 / cos30 }),
			sc("socket_inner", func(e *Env) float64 { return e.S("socket_flats") / math.Sqrt(3) / 2 }),
			sc("sink_y_flats", func(e *Env) float64 { return sinkY(e, e.S("socket_half_flats")) }),
			sc("sink_y_corners", func(e *Env) float64 { return sinkY(e, e.S("socket_half_corners")) }),
			sc("sink_y_inner", func(e *Env) float64 { return sinkY(e, e.S("socket_inner")) }),
			sc("tip_y_flats", func(e *Env) float64 { return e.S("socket_bottom") - e.S("socket_half_flats")/tan60 }),
			sc("tip_y_corners", func(e *Env) float64 { return e.S("socket_bottom") - e.S("socket_half_corners")/tan60 }),
			sc("side_sx", func(e *Env) float64 { return e.X() + 2*e.S("head_r") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("head_r") }),
			sc("top_cy", func(e *Env) float64 { return e.S("head_top") + e.Spacing + e.S("head_r") }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: []Box{
			box("front.head", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.S("head_y"), e.X()+2*e.S("head_r"), e.S("head_top"))
			}),
			box("front.shaft", func(e *Env) draft.Rect {
				cx := e.S("front_cx")
				return draft.R(cx-e.S("shaft_r"), e.Y(), cx+e.S("shaft_r"), e.S("head_y"))
			}),
			box("side.head", func(e *Env) draft.Rect {
				return draft.R(e.S("side_sx"), e.S("head_y"), e.S("side_sx")+2*e.S("head_r"), e.S("head_top"))
			}),
			box("side.shaft", func(e *Env) draft.Rect {
				cx := e.S("side_cx")
				return draft.R(cx-e.S("shaft_r"), e.Y(), cx+e.S("shaft_r"), e.S("head_y"))
			}),
			box("top.head", func(e *Env) draft.Rect {
				return draft.RectAround(e.P("top_center"), e.S("head_r"), e.S("head_r"))
			}),
		},
		Views: []View{
			view(Front, "front.head", "front.shaft"),
			view(Side, "side.head", "side.shaft"),
			view(Top, "top.head"),
		},
	}
}
