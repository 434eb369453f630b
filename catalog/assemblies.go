package catalog

import (
	"math"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/part"
)

func init() {
	register(part.KindScrewNutAssembly, &generator{
		title:     "Screw-Nut Assembly",
		hatch:     draft.HatchStyle{Pattern: "ANSI31", Scale: 1.5},
		roles:     []string{"screw", "nut"},
		views:     screwNutViews,
		selectors: screwNutSelectors,
	})
	register(part.KindCuboidCylinderAssembly, &generator{
		title:     "Cuboid-Cylinder Assembly",
		hatch:     draft.HatchStyle{Pattern: "ANSI31", Scale: 1.5},
		roles:     []string{"cuboid", "cylinder"},
		views:     cuboidCylinderViews,
		selectors: cuboidCylinderSelectors,
	})
	register(part.KindCylinderScrewNutAssembly, &generator{
		title:     "Cylinder-Screw-Nut Assembly",
		hatch:     draft.HatchStyle{Pattern: "ANSI31", Scale: 1.5},
		roles:     []string{"screw", "cylinder", "nut"},
		views:     cylinderScrewNutViews,
		selectors: cylinderScrewNutSelectors,
	})
}

// balloonOffset is the distance of an item balloon from the view edge it
// points into.
const balloonOffset = 20.0

func (d *drawer) balloonRadius() float64 { return annotate.BalloonRadius * d.th }

// Screw-nut assembly

// screwNutStack draws one projection of the screw and nut centered on cx.
// Head and nut show their flat edges at ±edge from the axis (zero for a
// single middle edge).
func screwNutStack(d *drawer, view string, cx, headEdge, nutEdge float64) {
	sr := d.s("shaft_r")
	hy, ht, nt := d.s("head_y"), d.s("head_top"), d.s("nut_top")

	d.Select(draft.LayerOutline)
	d.Rect(d.rect(view + ".head"))
	d.Rect(d.rect(view + ".nut"))
	d.vline(cx-sr, nt, hy)
	d.vline(cx+sr, nt, hy)
	for _, e := range edges(headEdge) {
		d.vline(cx+e, hy, ht)
	}
	for _, e := range edges(nutEdge) {
		d.vline(cx+e, d.iy, nt)
	}

	d.Select(draft.LayerHidden)
	d.vline(cx-sr, d.iy, nt)
	d.vline(cx+sr, d.iy, nt)
}

// edges returns the offsets of the visible flat edges of a hexagon seen
// with its inner edges at ±e, or the single middle edge for e == 0.
func edges(e float64) []float64 {
	if e == 0 {
		return []float64{0}
	}
	return []float64{-e, e}
}

func screwNutViews(d *drawer) {
	a := mustSpec[*part.ScrewNutAssembly](d)
	hw, nw, sr := d.s("head_w"), d.s("nut_w"), d.s("shaft_r")
	cx, scx, half, sideHalf := d.s("front_cx"), d.s("side_cx"), d.s("half"), d.s("side_half")
	ht := d.s("head_top")
	center := d.g.Anchor("top_center")

	screwNutStack(d, "front", cx, d.s("head_side")/2, d.s("nut_side")/2)
	screwNutStack(d, "side", scx, 0, 0)

	// Top view: the larger hexagon is visible, the smaller one hides below
	// the head or shows on top of the nut.
	big, small := hw, nw
	smallLayer := draft.LayerHidden
	if nw > hw {
		big, small = nw, hw
		smallLayer = draft.LayerOutline
	}
	d.Select(draft.LayerOutline)
	d.Polygon(center, big/2, 6, true)
	if small != big {
		d.Select(smallLayer)
		d.Polygon(center, small/2, 6, true)
	}
	d.Select(draft.LayerHidden)
	d.Circle(center, sr)

	sectionTop := ht
	if d.g.SectionEnabled() {
		dy := d.s("section_dy")
		sectionTop = ht + dy
		head, shaft, nut := d.rect("section.head"), d.rect("section.shaft"), d.rect("section.nut")

		d.Select(draft.LayerOutline)
		d.Rect(head)
		d.Rect(shaft)
		d.Rect(nut)
		d.vline(scx, head.Min.Y, head.Max.Y)

		d.Select(draft.LayerHatch)
		d.hatchRect(draft.R(head.Min.X, head.Min.Y, scx, head.Max.Y))
		d.hatchRect(draft.R(scx, head.Min.Y, head.Max.X, head.Max.Y))
		d.hatchRect(draft.R(nut.Min.X, nut.Min.Y, shaft.Min.X, nut.Max.Y))
		d.hatchRect(draft.R(shaft.Max.X, nut.Min.Y, nut.Max.X, nut.Max.Y))
		d.hatchRect(shaft)

		d.Select(draft.LayerOutlineHidden)
		d.hline(nut.Max.Y, shaft.Min.X, shaft.Max.X)
	}

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, center.Y+half)
	d.axisV(scx, d.iy, sectionTop)
	d.axisH(d.s("shank_mid_y"), d.ix, scx+sideHalf)
	d.axisH(center.Y, cx-half, cx+half)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, ht, d.ix-d.sp/2, tolerance(a.TotalHeightTolerance))
	d.hdim(ht, d.ix, d.ix+hw, ht+d.sp/2, tolerance(a.HeadWidthTolerance))
}

func screwNutSelectors(d *drawer) annotate.Selectors {
	hw, hh, nw, nh := d.s("head_w"), d.s("head_h"), d.s("nut_w"), d.s("nut_h")
	cx, scx, hy, ht, nt := d.s("front_cx"), d.s("side_cx"), d.s("head_y"), d.s("head_top"), d.s("nut_top")
	br := d.balloonRadius()
	underside := draft.Pt(d.ix+0.1*hw, hy)
	return annotate.Selectors{
		Balloons: map[string]annotate.BalloonPlacement{
			"screw": {
				Attach: draft.Pt(d.ix+0.8*hw, hy+hh/2),
				Center: draft.Pt(d.ix+hw+balloonOffset+br, ht+balloonOffset),
			},
			"nut": {
				Attach: draft.Pt(cx-nw/2+5, d.iy+nh/2),
				Center: draft.Pt(cx-nw/2-2*balloonOffset-br, d.iy+nh/2),
			},
		},
		Datums: map[string]annotate.DatumPlacement{
			"underside_of_screw_head": {Attach: underside, Label: draft.Pt(d.ix-15, hy-15)},
			"screw_axis_right_view":   {Attach: draft.Pt(scx, nt), Label: draft.Pt(scx-offset, nt-offset)},
		},
		Frames: map[string]annotate.FramePlacement{
			"underside_of_screw_head_gdt": {Attach: underside, Near: draft.Pt(d.ix-offset, hy-25), Grow: annotate.GrowLeft},
			"nut_top_face": {
				Attach: draft.Pt(cx+0.4*nw, nt),
				Near:   draft.Pt(cx+math.Max(hw, nw)/2+30, nt+30),
				Grow:   annotate.GrowRight,
			},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"underside_of_screw_head": {At: draft.Pt(d.ix+0.6*hw, hy)},
			"top_of_screw_head":       {At: draft.Pt(d.ix+0.4*hw, ht)},
		},
	}
}

// Cuboid-cylinder assembly

// plugProjection draws the cuboid and the bored-in cylinder seen from one
// side, centered on cx with the cuboid half width half.
func plugProjection(d *drawer, cx, half float64) {
	h, r, ch, contact := d.s("h"), d.s("r"), d.s("cyl_h"), d.s("contact_h")

	d.Select(draft.LayerOutline)
	d.Rectangle(draft.Pt(cx-half, d.iy), draft.Pt(cx+half, d.iy+h))
	if ch > h {
		d.Rectangle(draft.Pt(cx-r, d.iy+h), draft.Pt(cx+r, d.iy+ch))
	}

	d.Select(draft.LayerHidden)
	d.vline(cx-r, d.iy, d.iy+contact)
	d.vline(cx+r, d.iy, d.iy+contact)
	if h > ch {
		d.hline(d.iy+ch, cx-r, cx+r)
	}
}

func cuboidCylinderViews(d *drawer) {
	a := mustSpec[*part.CuboidCylinderAssembly](d)
	l, w, h, r, ch := d.s("l"), d.s("w"), d.s("h"), d.s("r"), d.s("cyl_h")
	cx, scx, mid, top := d.s("front_cx"), d.s("side_cx"), d.s("mid_y"), d.s("top_y")
	tsy := d.s("top_sy")
	center := d.g.Anchor("top_center")

	plugProjection(d, cx, l/2)
	plugProjection(d, scx, w/2)

	d.Select(draft.LayerOutline)
	d.Rect(d.rect("top.cuboid"))
	d.Circle(center, r)

	right := scx + w/2
	if d.g.SectionEnabled() {
		body, plug := d.rect("section.cuboid"), d.rect("section.cylinder")
		right = body.Max.X
		left := draft.R(body.Min.X, body.Min.Y, plug.Min.X, body.Max.Y)
		rightHalf := draft.R(plug.Max.X, body.Min.Y, body.Max.X, body.Max.Y)

		d.Select(draft.LayerOutline)
		d.Rect(left)
		d.Rect(rightHalf)
		d.Rect(plug)
		if h > ch {
			d.hline(body.Max.Y, plug.Min.X, plug.Max.X)
		}

		d.Select(draft.LayerHatch)
		d.hatchRect(left)
		d.hatchRect(rightHalf)
		d.HatchRect("ANSI32", d.hatch.Scale, plug)

		d.Select(draft.LayerCenterline)
		d.axisV(d.s("section_cx"), d.iy, top)
	}

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, tsy+w)
	d.axisV(scx, d.iy, top)
	d.axisH(mid, d.ix, right)
	d.axisH(center.Y, d.ix, d.ix+l)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, d.iy+h, d.ix-0.7*d.sp, tolerance(a.Cuboid.HeightTolerance))
	d.hdim(d.iy, d.ix, d.ix+l, d.iy-0.7*d.sp, "")
	d.DiameterDimension(center, r, draft.Pt(center.X-r-offset, center.Y+r+offset), diameter(a.Cylinder.DiameterTolerance))
}

func cuboidCylinderSelectors(d *drawer) annotate.Selectors {
	l, h, r, ch, contact := d.s("l"), d.s("h"), d.s("r"), d.s("cyl_h"), d.s("contact_h")
	cx, sx, mid := d.s("front_cx"), d.s("side_sx"), d.s("mid_y")
	br := d.balloonRadius()
	hole := d.g.Anchor("top_center").Polar(135, r)
	s := annotate.Selectors{
		Balloons: map[string]annotate.BalloonPlacement{
			"cuboid": {
				Attach: draft.Pt(d.ix+0.8*l, d.iy+0.5*h),
				Center: draft.Pt(d.ix+l+balloonOffset+br, d.iy+0.5*h),
			},
			"cylinder": {
				Attach: draft.Pt(cx+0.7*r, d.iy+0.7*contact),
				Center: draft.Pt(cx+r+balloonOffset+br, d.iy+0.7*contact+balloonOffset),
			},
		},
		Datums: map[string]annotate.DatumPlacement{
			"front_view_bottom_mid": {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-offset)},
			"side_view_left_mid":    {Attach: draft.Pt(sx, mid), Label: draft.Pt(sx-offset, mid)},
			"front_view_left_mid":   {Attach: draft.Pt(d.ix, mid), Label: draft.Pt(d.ix-offset, mid)},
		},
		Frames: map[string]annotate.FramePlacement{
			"hole_outline_top_view":  {Attach: hole, Near: hole.Add(draft.Pt(-offset, offset)), Grow: annotate.GrowLeft},
			"front_view_top_surface": {Attach: draft.Pt(cx, d.iy+h), Near: draft.Pt(cx+2*offset, d.iy+h+offset), Grow: annotate.GrowRight},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"top_surface": {At: draft.Pt(d.ix+0.75*l, d.iy+h)},
		},
	}
	if d.g.SectionEnabled() {
		scx := d.s("section_cx")
		s.Finishes["hole_bottom"] = annotate.FinishPlacement{At: draft.Pt(scx, d.iy+ch)}
		s.Finishes["hole_wall"] = annotate.FinishPlacement{At: draft.Pt(scx-r, d.iy+ch/2)}
	}
	return s
}

// Cylinder-screw-nut assembly

// clampStack draws one projection of the screw, cylinder and nut centered
// on cx. headEdge and nutEdge place the visible flat edges as in
// screwNutStack.
func clampStack(d *drawer, view string, cx, headEdge, nutEdge float64) {
	sr := d.s("shaft_r")
	tip, hy, ht := d.s("tip_y"), d.s("head_y"), d.s("head_top")
	ny, nt := d.s("nut_y"), d.s("nut_top")

	d.Select(draft.LayerOutline)
	d.Rect(d.rect(view + ".head"))
	d.Rect(d.rect(view + ".cylinder"))
	d.Rect(d.rect(view + ".nut"))
	for _, e := range edges(headEdge) {
		d.vline(cx+e, hy, ht)
	}
	for _, e := range edges(nutEdge) {
		d.vline(cx+e, ny, nt)
	}

	// The shaft shows below the nut and hides inside the cylinder and nut.
	// A short shaft ends hidden; the bore continues above its tip.
	hiddenFrom := math.Max(tip, ny)
	if tip < ny {
		d.vline(cx-sr, tip, ny)
		d.vline(cx+sr, tip, ny)
		d.hline(tip, cx-sr, cx+sr)
	}
	d.Select(draft.LayerHidden)
	d.vline(cx-sr, hiddenFrom, hy)
	d.vline(cx+sr, hiddenFrom, hy)
	if tip > ny {
		d.hline(tip, cx-sr, cx+sr)
		d.vline(cx-sr, ny, tip)
		d.vline(cx+sr, ny, tip)
	}
}

func cylinderScrewNutViews(d *drawer) {
	a := mustSpec[*part.CylinderScrewNutAssembly](d)
	r, hs, ns, sr := d.s("r"), d.s("head_s"), d.s("nut_s"), d.s("shaft_r")
	cx, scx, half, sideHalf := d.s("front_cx"), d.s("side_cx"), d.s("half"), d.s("side_half")
	hy, ht, cy, bottom, mid := d.s("head_y"), d.s("head_top"), d.s("cyl_y"), d.s("bottom_y"), d.s("mid_y")
	tip := d.s("tip_y")
	center := d.g.Anchor("top_center")

	if a.ShortShaft() {
		draft.ComponentLogger("catalog").Warn("shaft ends inside the clamped stack",
			"kind", d.kind, "shaft_length", a.Screw.Shaft.Length,
			"stack_height", a.Cylinder.Height+a.Nut.Height)
	}

	clampStack(d, "front", cx, hs/2, ns/2)
	clampStack(d, "side", scx, 0, 0)

	d.Select(draft.LayerOutline)
	d.Polygon(center, hs, 6, true)
	d.Circle(center, r)
	d.Select(draft.LayerHidden)
	d.Polygon(center, ns, 6, true)
	d.Circle(center, sr)

	sectionTop := ht
	if d.g.SectionEnabled() {
		dy := d.s("section_dy")
		sectionTop = ht + dy
		head, cyl := d.rect("section.head"), d.rect("section.cylinder")
		nut, shaft := d.rect("section.nut"), d.rect("section.shaft")

		d.Select(draft.LayerOutline)
		d.Rect(head)
		d.Rect(cyl)
		d.Rect(nut)
		d.Rect(shaft)

		d.Select(draft.LayerHatch)
		d.hatchRect(draft.R(cyl.Min.X, cyl.Min.Y, shaft.Min.X, cyl.Max.Y))
		d.hatchRect(draft.R(shaft.Max.X, cyl.Min.Y, cyl.Max.X, cyl.Max.Y))
		d.hatchRect(draft.R(nut.Min.X, nut.Min.Y, shaft.Min.X, nut.Max.Y))
		d.hatchRect(draft.R(shaft.Max.X, nut.Min.Y, nut.Max.X, nut.Max.Y))
	}

	d.Select(draft.LayerCenterline)
	d.axisV(cx, bottom, center.Y+sideHalf)
	d.axisV(scx, bottom, sectionTop)
	d.axisH(mid, d.ix, scx+sideHalf)
	d.axisH(center.Y, cx-half, cx+half)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, bottom, ht, d.ix-d.sp/2, "")
	d.vdim(cx+r, cy, hy, cx+half+d.sp/2, tolerance(a.Cylinder.HeightTolerance))
	d.hdim(tip, cx-sr, cx+sr, bottom-15, diameter(""))
	d.hdim(center.Y, cx-r, cx+r, center.Y+sideHalf+d.sp/2, diameter(a.Cylinder.DiameterTolerance))
}

func cylinderScrewNutSelectors(d *drawer) annotate.Selectors {
	r, hs, hh, ns, nh := d.s("r"), d.s("head_s"), d.s("head_h"), d.s("nut_s"), d.s("nut_h")
	cx, half, sideHalf, scx := d.s("front_cx"), d.s("half"), d.s("side_half"), d.s("side_cx")
	hy, ht, ny, mid := d.s("head_y"), d.s("head_top"), d.s("nut_y"), d.s("mid_y")
	br := d.balloonRadius()
	right := cx + half
	return annotate.Selectors{
		Balloons: map[string]annotate.BalloonPlacement{
			"screw": {
				Attach: draft.Pt(cx+0.6*hs, hy+hh/2),
				Center: draft.Pt(right+balloonOffset+br, ht+balloonOffset),
			},
			"cylinder": {
				Attach: draft.Pt(cx-0.7*r, mid),
				Center: draft.Pt(d.ix-2*balloonOffset-br, mid),
			},
			"nut": {
				Attach: draft.Pt(cx-0.7*ns, ny+nh/2),
				Center: draft.Pt(d.ix-2*balloonOffset-br, ny+nh/2),
			},
		},
		Datums: map[string]annotate.DatumPlacement{
			"screw_head_underside":     {Attach: draft.Pt(cx-0.8*hs, hy), Label: draft.Pt(d.ix-offset, hy+offset/2)},
			"cylinder_axis_right_view": {Attach: draft.Pt(scx+r, mid), Label: draft.Pt(scx+sideHalf+offset, mid)},
		},
		Frames: map[string]annotate.FramePlacement{
			"cylinder_top_face": {Attach: draft.Pt(cx+0.8*r, hy), Near: draft.Pt(right+15, ht+15), Grow: annotate.GrowRight},
			"nut_bottom_face":   {Attach: draft.Pt(cx+0.5*ns, ny), Near: draft.Pt(right+15, ny-15), Grow: annotate.GrowRight},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"cylinder_side":  {At: draft.Pt(cx+r, mid)},
			"screw_head_top": {At: draft.Pt(cx-0.4*hs, ht)},
		},
	}
}
