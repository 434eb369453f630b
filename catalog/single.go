package catalog

import (
	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/part"
)

// offset is the distance of outer dimension texts and annotation labels
// from the view they belong to.
const offset = 20.0

func init() {
	register(part.KindCylinder, &generator{title: "Cylinder", views: cylinderViews, selectors: cylinderSelectors})
	register(part.KindCuboid, &generator{title: "Cuboid", views: cuboidViews, selectors: cuboidSelectors})
	register(part.KindHexPrism, &generator{title: "Hexagonal Prism", views: prismViews, selectors: prismSelectors})
	register(part.KindHexNut, &generator{
		title:     "Hexagonal Nut",
		hatch:     draft.HatchStyle{Pattern: "ANSI31", Scale: 15},
		views:     nutViews,
		selectors: nutSelectors,
	})
	register(part.KindHexScrew, &generator{title: "Hexagonal Screw", views: screwViews, selectors: screwSelectors})
}

// Cylinder

func cylinderViews(d *drawer) {
	c := mustSpec[*part.Cylinder](d)
	r, cx, top := d.s("r"), d.s("front_cx"), d.s("top_y")
	sx, scx, mid := d.s("side_sx"), d.s("side_cx"), d.s("mid_y")
	center := d.g.Anchor("top_center")

	d.Select(draft.LayerOutline)
	d.Rect(d.rect("front.body"))
	d.Rect(d.rect("side.body"))
	d.Circle(center, r)

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, top)
	d.axisV(scx, d.iy, top)
	d.axisH(mid, d.ix, sx+2*r)
	d.axisH(center.Y, cx-r, cx+r)
	d.axisV(cx, center.Y-r, center.Y+r)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, top, d.ix-offset-d.sp/2, tolerance(c.HeightTolerance))
	d.hdim(center.Y, cx-r, cx+r, center.Y+r+offset, diameter(c.DiameterTolerance))
}

func cylinderSelectors(d *drawer) annotate.Selectors {
	r, cx, top := d.s("r"), d.s("front_cx"), d.s("top_y")
	sx, mid := d.s("side_sx"), d.s("mid_y")
	right := sx + 2*r
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"bottom":     {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-offset)},
			"centerline": {Attach: draft.Pt(sx, mid), Label: draft.Pt(sx-offset, mid-offset/2)},
		},
		Frames: map[string]annotate.FramePlacement{
			"left_side":  {Attach: draft.Pt(d.ix, mid), Near: draft.Pt(d.ix-offset, mid), Grow: annotate.GrowLeft},
			"right_side": {Attach: draft.Pt(right, mid), Near: draft.Pt(right+offset, mid), Grow: annotate.GrowRight},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"side_surface": {At: draft.Pt(right, mid)},
			"top_surface":  {At: draft.Pt(cx, top)},
		},
	}
}

// Cuboid

func cuboidViews(d *drawer) {
	c := mustSpec[*part.Cuboid](d)
	l, w := d.s("l"), d.s("w")
	cx, mid, top := d.s("front_cx"), d.s("mid_y"), d.s("top_y")
	tsy, tcy := d.s("top_sy"), d.s("top_cy")
	sx, scx := d.s("side_sx"), d.s("side_cx")

	d.Select(draft.LayerOutline)
	d.Rect(d.rect("front.body"))
	d.Rect(d.rect("top.body"))
	d.Rect(d.rect("side.body"))

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, tsy+w)
	d.axisH(mid, d.ix, sx+w)
	d.axisH(tcy, d.ix, d.ix+l)
	d.axisV(scx, d.iy, top)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, top, d.ix-d.sp/2, tolerance(c.HeightTolerance))
	d.hdim(d.iy, d.ix, d.ix+l, d.iy-d.sp/2, "")
	d.hdim(d.iy, sx, sx+w, d.iy-d.sp/2, "")
}

func cuboidSelectors(d *drawer) annotate.Selectors {
	w, h := d.s("w"), d.s("h")
	cx, mid, top := d.s("front_cx"), d.s("mid_y"), d.s("top_y")
	sx := d.s("side_sx")
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"front_view_bottom_mid": {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-offset)},
			"side_view_left_mid":    {Attach: draft.Pt(sx, mid), Label: draft.Pt(sx-offset, mid)},
		},
		Frames: map[string]annotate.FramePlacement{
			"front_view_left_side": {Attach: draft.Pt(d.ix, mid), Near: draft.Pt(d.ix-2*offset, mid), Grow: annotate.GrowLeft},
			"side_view_right_side": {Attach: draft.Pt(sx+w, mid), Near: draft.Pt(sx+w+offset, mid), Grow: annotate.GrowRight},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"top_surface":        {At: draft.Pt(cx, top)},
			"right_side_surface": {At: draft.Pt(sx+w, d.iy+0.75*h)},
		},
	}
}

// Hexagonal prism and nut share the projection of a flat-bottomed hexagon:
// the front view shows the across-corners width with the two inner edges,
// the side view the across-flats width with the middle edge.

func hexOutline(d *drawer) {
	s, top := d.s("s"), d.s("top_y")
	cx, scx := d.s("front_cx"), d.s("side_cx")

	d.Select(draft.LayerOutline)
	d.Polygon(d.g.Anchor("top_center"), s, 6, true)
	d.Rect(d.rect("front.body"))
	d.vline(cx-s/2, d.iy, top)
	d.vline(cx+s/2, d.iy, top)
	d.Rect(d.rect("side.body"))
	d.vline(scx, d.iy, top)
}

func hexCenterlines(d *drawer) {
	s, flats := d.s("s"), d.s("flats")
	cx, tcy, top := d.s("front_cx"), d.s("top_cy"), d.s("top_y")
	sx, scx, mid := d.s("side_sx"), d.s("side_cx"), d.s("mid_y")

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, tcy+flats/2)
	d.axisV(scx, d.iy, top)
	d.axisH(mid, d.ix, sx+flats)
	d.axisH(tcy, cx-s, cx+s)
}

// Hexagonal prism

func prismViews(d *drawer) {
	p := mustSpec[*part.HexPrism](d)
	s, flats, corners := d.s("s"), d.s("flats"), d.s("corners")
	cx, top, tcy := d.s("front_cx"), d.s("top_y"), d.s("top_cy")
	sx := d.s("side_sx")

	hexOutline(d)
	hexCenterlines(d)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, top, d.ix-1.5*offset, tolerance(p.HeightTolerance))
	d.hdim(top, d.ix, d.ix+corners, top+d.sp/2, fixed(corners, p.WidthTolerance))
	d.hdim(tcy+flats/2, cx-s/2, cx+s/2, tcy+flats/2+offset, fixed(s, ""))
	d.hdim(d.iy, sx, sx+flats, d.iy-2*offset, fixed(flats, ""))
}

func prismSelectors(d *drawer) annotate.Selectors {
	s, flats, th := d.s("s"), d.s("flats"), d.th
	cx, top, mid := d.s("front_cx"), d.s("top_y"), d.s("mid_y")
	right := d.s("side_sx") + flats
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"front_view_centerline_bottom":   {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-offset)},
			"right_view_right_side_midpoint": {Attach: draft.Pt(right, mid), Label: draft.Pt(right+2*offset, mid)},
		},
		Frames: map[string]annotate.FramePlacement{
			"front_view_left_side": {
				Attach: draft.Pt(d.ix, mid),
				Near:   draft.Pt(d.ix-2*offset, mid),
				Grow:   annotate.GrowLeft,
			},
			"right_view_top_surface": {
				Attach: draft.Pt(right, top),
				Near:   draft.Pt(right+15, top-annotate.BoxHeightFactor*th),
				Grow:   annotate.GrowRight,
			},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"top_surface": {At: draft.Pt(cx+s/2, top)},
		},
	}
}

// Hexagonal nut

func nutViews(d *drawer) {
	n := mustSpec[*part.HexNut](d)
	s, h, hr, corners := d.s("s"), d.s("h"), d.s("hole_r"), d.s("corners")
	cx, top, tcy := d.s("front_cx"), d.s("top_y"), d.s("top_cy")
	scx, bottom := d.s("side_cx"), d.s("top_bottom_y")

	hexOutline(d)
	d.Circle(d.g.Anchor("top_center"), hr)

	d.Select(draft.LayerHidden)
	for _, x := range []float64{cx - hr, cx + hr, scx - hr, scx + hr} {
		d.vline(x, d.iy, top)
	}

	if d.g.SectionEnabled() {
		body := d.rect("section.body")
		sy, sc := d.s("section_y"), d.s("section_cx")
		inner := d.s("inner")

		d.Select(draft.LayerOutline)
		d.Rect(body)
		d.vline(sc-hr, sy, sy+h)
		d.vline(sc+hr, sy, sy+h)

		d.Select(draft.LayerOutlineHidden)
		d.vline(sc-inner, sy, sy+h)
		d.vline(sc+inner, sy, sy+h)

		// The inner edges split each wall into two regions when they clear the hole.
		left, right := []float64{body.Min.X, sc - hr}, []float64{sc + hr, body.Max.X}
		if hr < inner {
			left = []float64{body.Min.X, sc - inner, sc - hr}
			right = []float64{sc + hr, sc + inner, body.Max.X}
		}
		d.Select(draft.LayerHatch)
		d.hatchStrips(sy, sy+h, left...)
		d.hatchStrips(sy, sy+h, right...)

		d.Select(draft.LayerCenterline)
		d.axisV(sc, sy, sy+h)
	}

	hexCenterlines(d)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, top, d.ix-d.sp/2, tolerance(n.HeightTolerance))
	d.hdim(top, d.ix, d.ix+corners, top+d.sp/2, "")
	d.hdim(tcy, cx-hr, cx+hr, tcy+s+d.sp/2, diameter(n.Hole.DiameterTolerance))
	d.hdim(bottom, cx-s/2, cx+s/2, bottom-d.sp/2, tolerance(n.SideLengthTolerance))
}

func nutSelectors(d *drawer) annotate.Selectors {
	s, h, hr := d.s("s"), d.s("h"), d.s("hole_r")
	cx, top, mid, tcy := d.s("front_cx"), d.s("top_y"), d.s("mid_y"), d.s("top_cy")
	right := d.s("side_sx") + d.s("flats")
	center := d.g.Anchor("top_center")
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"bottom":               {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-offset)},
			"side_face_right_view": {Attach: draft.Pt(right, mid), Label: draft.Pt(right+offset, mid)},
			"inner_hole_top_view":  {Attach: draft.Pt(cx+hr, tcy), Label: draft.Pt(cx+s+offset, tcy)},
		},
		Frames: map[string]annotate.FramePlacement{
			"side_face_of_right_view": {
				Attach: draft.Pt(right, d.iy+0.75*h),
				Near:   draft.Pt(right+offset/2, d.iy+0.75*h),
				Grow:   annotate.GrowRight,
			},
			"side_face_of_front_view": {
				Attach: draft.Pt(d.ix, d.iy+0.25*h),
				Near:   draft.Pt(d.ix-offset, d.iy+0.25*h),
				Grow:   annotate.GrowLeft,
			},
			"inner_hole_top_view": {
				Attach: center.Polar(135, hr),
				Near:   draft.Pt(d.ix-15, tcy+s),
				Grow:   annotate.GrowLeft,
			},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"top_face":             {At: draft.Pt(cx, top)},
			"side_face_right_view": {At: draft.Pt(right, mid)},
			"inner_hole_top_view":  {At: center.Polar(45, hr)},
		},
	}
}

// Hexagonal screw

func screwViews(d *drawer) {
	sc := mustSpec[*part.HexScrew](d)
	s, sr, flats, corners := d.s("s"), d.s("shaft_r"), d.s("flats"), d.s("corners")
	cx, hy, top, mid := d.s("front_cx"), d.s("head_y"), d.s("top_y"), d.s("mid_y")
	sx, scx, tcy := d.s("side_sx"), d.s("side_cx"), d.s("top_cy")
	center := d.g.Anchor("top_center")

	d.Select(draft.LayerOutline)
	d.Polygon(center, s, 6, true)
	d.Circle(center, sr)
	d.Rect(d.rect("front.head"))
	d.Rect(d.rect("front.shaft"))
	d.vline(cx-s/2, hy, top)
	d.vline(cx+s/2, hy, top)
	d.Rect(d.rect("side.head"))
	d.Rect(d.rect("side.shaft"))
	d.vline(scx, hy, top)

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, tcy+flats/2)
	d.axisV(scx, d.iy, top)
	d.axisH(mid, d.ix, sx+flats)
	d.axisH(tcy, cx-s, cx+s)

	d.Select(draft.LayerDimensions)
	d.vdim(d.ix, d.iy, top, d.ix-1.5*offset, tolerance(sc.TotalHeightTolerance))
	d.hdim(top, d.ix, d.ix+corners, top+d.sp/2, fixed(corners, sc.HeadWidthTolerance))
	d.hdim(d.iy, cx-sr, cx+sr, d.iy-offset, diameter(""))
	d.hdim(top, sx, sx+flats, top+d.sp/2, fixed(flats, ""))
}

func screwSelectors(d *drawer) annotate.Selectors {
	hh, flats := d.s("head_h"), d.s("flats")
	cx, hy, top, mid := d.s("front_cx"), d.s("head_y"), d.s("top_y"), d.s("mid_y")
	sx, scx := d.s("side_sx"), d.s("side_cx")
	headMid := hy + hh/2
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"bottom_surface":           {Attach: draft.Pt(cx, d.iy), Label: draft.Pt(cx, d.iy-2*offset)},
			"centerline_of_right_view": {Attach: draft.Pt(sx, mid), Label: draft.Pt(sx-offset, mid)},
		},
		Frames: map[string]annotate.FramePlacement{
			"front_view_left_side_of_head": {
				Attach: draft.Pt(d.ix, headMid),
				Near:   draft.Pt(d.ix-2*offset, headMid),
				Grow:   annotate.GrowLeft,
			},
			"right_view_top_surface": {
				Attach: draft.Pt(scx, top),
				Near:   draft.Pt(sx+flats+15, top),
				Grow:   annotate.GrowRight,
			},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"top_surface":  {At: draft.Pt(cx, top)},
			"side_surface": {At: draft.Pt(sx+flats, headMid)},
		},
	}
}
