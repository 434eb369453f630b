package geometry

import (
	"math"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/part"
)

// screwNutTemplate stacks a hexagon head screw and a nut on a vertical axis.
// The nut sits at the shaft tip; widths are given as across-corners values.
func screwNutTemplate() *Template {
	boxes := stackBoxes("front", "front_cx", "head_w", "nut_w")
	boxes = append(boxes, stackBoxes("side", "side_cx", "head_flats", "nut_flats")...)
	boxes = append(boxes, sectionStack("section", "side_cx", "head_flats", "nut_flats", "section_dy")...)
	boxes = append(boxes, box("top.hex", func(e *Env) draft.Rect {
		return draft.RectAround(e.P("top_center"), e.S("half"), hexHalfHeight(e.S("half")))
	}))

	return &Template{
		Kind:      part.KindScrewNutAssembly,
		Clearance: 15,
		Bind: func(s part.Spec) map[string]float64 {
			a := s.(*part.ScrewNutAssembly)
			return map[string]float64{
				"head_w":    a.Screw.HeadWidth,
				"head_h":    a.Screw.HeadHeight,
				"shaft_r":   a.Screw.ShaftDiameter / 2,
				"shaft_len": a.Screw.ShaftLength,
				"nut_w":     a.Nut.Width,
				"nut_h":     a.Nut.Height,
			}
		},
		Scalars: []Scalar{
			sc("total", func(e *Env) float64 { return e.S("head_h") + e.S("shaft_len") }),
			sc("head_side", func(e *Env) float64 { return e.S("head_w") / 2 }),
			sc("nut_side", func(e *Env) float64 { return e.S("nut_w") / 2 }),
			sc("head_flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("head_side")) }),
			sc("nut_flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("nut_side")) }),
			sc("half", func(e *Env) float64 { return math.Max(e.S("head_w"), e.S("nut_w")) / 2 }),
			sc("side_half", func(e *Env) float64 { return math.Max(e.S("head_flats"), e.S("nut_flats")) / 2 }),
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("head_w")/2 }),
			sc("nut_top", func(e *Env) float64 { return e.Y() + e.S("nut_h") }),
			sc("head_y", func(e *Env) float64 { return e.Y() + e.S("shaft_len") }),
			sc("head_top", func(e *Env) float64 { return e.S("head_y") + e.S("head_h") }),
			sc("shank_mid_y", func(e *Env) float64 { return (e.S("head_y") + e.S("nut_top")) / 2 }),
			sc("side_sx", func(e *Env) float64 { return e.S("front_cx") + e.S("half") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("side_half") }),
			sc("top_sy", func(e *Env) float64 { return e.S("head_top") + e.Spacing }),
			sc("top_cy", func(e *Env) float64 { return e.S("top_sy") + e.S("half") }),
			sc("section_dy", func(e *Env) float64 { return e.S("head_top") + e.Spacing - e.Y() }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: boxes,
		Views: []View{
			view(Front, "front.head", "front.shaft", "front.nut"),
			view(Side, "side.head", "side.shaft", "side.nut"),
			view(Top, "top.hex"),
			{Name: Section, Members: []string{"section.head", "section.shaft", "section.nut"}, When: sectionOnly},
		},
	}
}

// stackBoxes returns the head, shaft and nut boxes of a screw-nut stack
// centered on the scalar cx, with the widths named by headW and nutW.
func stackBoxes(prefix, cx, headW, nutW string) []Box {
	return []Box{
		box(prefix+".head", func(e *Env) draft.Rect {
			c, w := e.S(cx), e.S(headW)/2
			return draft.R(c-w, e.S("head_y"), c+w, e.S("head_top"))
		}),
		box(prefix+".shaft", func(e *Env) draft.Rect {
			c, r := e.S(cx), e.S("shaft_r")
			return draft.R(c-r, e.Y(), c+r, e.S("head_y"))
		}),
		box(prefix+".nut", func(e *Env) draft.Rect {
			c, w := e.S(cx), e.S(nutW)/2
			return draft.R(c-w, e.Y(), c+w, e.S("nut_top"))
		}),
	}
}

// sectionStack is stackBoxes shifted by the scalar dy and defined only when
// the section view is on.
func sectionStack(prefix, cx, headW, nutW, dy string) []Box {
	var out []Box
	for _, b := range stackBoxes(prefix, cx, headW, nutW) {
		expr := b.Expr
		out = append(out, Box{
			Name: b.Name,
			Expr: func(e *Env) draft.Rect {
				r := expr(e)
				d := e.S(dy)
				return draft.R(r.Min.X, r.Min.Y+d, r.Max.X, r.Max.Y+d)
			},
			When: sectionOnly,
		})
	}
	return out
}

// cuboidCylinderTemplate places a cylinder in a central bore of a cuboid.
// The section view sits right of the side view.
func cuboidCylinderTemplate() *Template {
	body := func(cx string) func(*Env) draft.Rect {
		return func(e *Env) draft.Rect {
			c := e.S(cx)
			return draft.R(c-e.S("w")/2, e.Y(), c+e.S("w")/2, e.Y()+e.S("h"))
		}
	}
	plug := func(cx string) func(*Env) draft.Rect {
		return func(e *Env) draft.Rect {
			c := e.S(cx)
			return draft.R(c-e.S("r"), e.Y(), c+e.S("r"), e.Y()+e.S("cyl_h"))
		}
	}

	return &Template{
		Kind:           part.KindCuboidCylinderAssembly,
		Clearance:      20,
		SectionDefault: true,
		Bind: func(s part.Spec) map[string]float64 {
			a := s.(*part.CuboidCylinderAssembly)
			return map[string]float64{
				"l":     a.Cuboid.Length,
				"w":     a.Cuboid.Width,
				"h":     a.Cuboid.Height,
				"r":     a.Cylinder.Radius,
				"cyl_h": a.Cylinder.Height,
			}
		},
		Scalars: []Scalar{
			sc("total", func(e *Env) float64 { return math.Max(e.S("h"), e.S("cyl_h")) }),
			sc("contact_h", func(e *Env) float64 { return math.Min(e.S("h"), e.S("cyl_h")) }),
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("l")/2 }),
			sc("mid_y", func(e *Env) float64 { return e.Y() + e.S("h")/2 }),
			sc("top_y", func(e *Env) float64 { return e.Y() + e.S("total") }),
			sc("top_sy", func(e *Env) float64 { return e.S("top_y") + e.Spacing }),
			sc("top_cy", func(e *Env) float64 { return e.S("top_sy") + e.S("w")/2 }),
			sc("side_sx", func(e *Env) float64 { return e.X() + e.S("l") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("w")/2 }),
			sc("section_sx", func(e *Env) float64 { return e.S("side_sx") + e.S("w") + e.Spacing }),
			sc("section_cx", func(e *Env) float64 { return e.S("section_sx") + e.S("w")/2 }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: []Box{
			box("front.cuboid", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.Y(), e.X()+e.S("l"), e.Y()+e.S("h"))
			}),
			box("front.cylinder", plug("front_cx")),
			box("top.cuboid", func(e *Env) draft.Rect {
				return draft.R(e.X(), e.S("top_sy"), e.X()+e.S("l"), e.S("top_sy")+e.S("w"))
			}),
			box("side.cuboid", body("side_cx")),
			box("side.cylinder", plug("side_cx")),
			sectionBox("section.cuboid", body("section_cx")),
			sectionBox("section.cylinder", plug("section_cx")),
		},
		Views: []View{
			view(Front, "front.cuboid", "front.cylinder"),
			view(Top, "top.cuboid"),
			view(Side, "side.cuboid", "side.cylinder"),
			{Name: Section, Members: []string{"section.cuboid", "section.cylinder"}, When: sectionOnly},
		},
	}
}

// cylinderScrewNutTemplate stacks, from the shaft tip upwards: the nut, the
// bored cylinder and the screw head. The head rests on the cylinder and the
// nut is clamped under it, so a short shaft ends inside or above the nut.
func cylinderScrewNutTemplate() *Template {
	member := func(cx, half, y0, y1 string) func(*Env) draft.Rect {
		return func(e *Env) draft.Rect {
			c, w := e.S(cx), e.S(half)
			return draft.R(c-w, e.S(y0), c+w, e.S(y1))
		}
	}
	shifted := func(name string, f func(*Env) draft.Rect) Box {
		return sectionBox(name, func(e *Env) draft.Rect {
			r := f(e)
			d := e.S("section_dy")
			return draft.R(r.Min.X, r.Min.Y+d, r.Max.X, r.Max.Y+d)
		})
	}

	return &Template{
		Kind:      part.KindCylinderScrewNutAssembly,
		Clearance: 15,
		Bind: func(s part.Spec) map[string]float64 {
			a := s.(*part.CylinderScrewNutAssembly)
			return map[string]float64{
				"r":         a.Cylinder.Radius,
				"cyl_h":     a.Cylinder.Height,
				"head_s":    a.Screw.Head.SideLength,
				"head_h":    a.Screw.Head.Height,
				"shaft_r":   a.Screw.Shaft.Diameter / 2,
				"shaft_len": a.Screw.Shaft.Length,
				"nut_s":     a.Nut.SideLength,
				"nut_h":     a.Nut.Height,
			}
		},
		Scalars: []Scalar{
			sc("head_half_flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("head_s")) / 2 }),
			sc("nut_half_flats", func(e *Env) float64 { return draft.AcrossFlats(e.S("nut_s")) / 2 }),
			sc("half", func(e *Env) float64 { return math.Max(e.S("r"), math.Max(e.S("head_s"), e.S("nut_s"))) }),
			sc("side_half", func(e *Env) float64 {
				return math.Max(e.S("r"), math.Max(e.S("head_half_flats"), e.S("nut_half_flats")))
			}),
			sc("front_cx", func(e *Env) float64 { return e.X() + e.S("half") }),
			sc("tip_y", func(e *Env) float64 { return e.Y() }),
			sc("head_y", func(e *Env) float64 { return e.Y() + e.S("shaft_len") }),
			sc("head_top", func(e *Env) float64 { return e.S("head_y") + e.S("head_h") }),
			sc("cyl_y", func(e *Env) float64 { return e.S("head_y") - e.S("cyl_h") }),
			sc("nut_top", func(e *Env) float64 { return e.S("cyl_y") }),
			sc("nut_y", func(e *Env) float64 { return e.S("nut_top") - e.S("nut_h") }),
			sc("bottom_y", func(e *Env) float64 { return math.Min(e.S("tip_y"), e.S("nut_y")) }),
			sc("mid_y", func(e *Env) float64 { return e.S("cyl_y") + e.S("cyl_h")/2 }),
			sc("side_sx", func(e *Env) float64 { return e.X() + 2*e.S("half") + e.Spacing }),
			sc("side_cx", func(e *Env) float64 { return e.S("side_sx") + e.S("side_half") }),
			sc("top_sy", func(e *Env) float64 { return e.S("head_top") + e.Spacing }),
			sc("top_cy", func(e *Env) float64 { return e.S("top_sy") + e.S("side_half") }),
			sc("section_dy", func(e *Env) float64 { return e.S("head_top") + e.Spacing - e.S("bottom_y") }),
		},
		Anchors: []Anchor{
			pt("top_center", func(e *Env) draft.Point { return draft.Pt(e.S("front_cx"), e.S("top_cy")) }),
		},
		Boxes: []Box{
			box("front.head", member("front_cx", "head_s", "head_y", "head_top")),
			box("front.cylinder", member("front_cx", "r", "cyl_y", "head_y")),
			box("front.nut", member("front_cx", "nut_s", "nut_y", "nut_top")),
			box("front.shaft", member("front_cx", "shaft_r", "tip_y", "head_y")),
			box("side.head", member("side_cx", "head_half_flats", "head_y", "head_top")),
			box("side.cylinder", member("side_cx", "r", "cyl_y", "head_y")),
			box("side.nut", member("side_cx", "nut_half_flats", "nut_y", "nut_top")),
			box("side.shaft", member("side_cx", "shaft_r", "tip_y", "head_y")),
			box("top.body", func(e *Env) draft.Rect {
				return draft.RectAround(e.P("top_center"), e.S("half"), e.S("side_half"))
			}),
			shifted("section.head", member("side_cx", "head_half_flats", "head_y", "head_top")),
			shifted("section.cylinder", member("side_cx", "r", "cyl_y", "head_y")),
			shifted("section.nut", member("side_cx", "nut_half_flats", "nut_y", "nut_top")),
			shifted("section.shaft", member("side_cx", "shaft_r", "tip_y", "head_y")),
		},
		Views: []View{
			view(Front, "front.head", "front.cylinder", "front.nut", "front.shaft"),
			view(Side, "side.head", "side.cylinder", "side.nut", "side.shaft"),
			view(Top, "top.body"),
			{Name: Section, Members: []string{"section.head", "section.cylinder", "section.nut", "section.shaft"}, When: sectionOnly},
		},
	}
}
