package catalog

import (
	"github.com/gogpu/draft"
	"github.com/gogpu/draft/annotate"
	"github.com/gogpu/draft/part"
)

func init() {
	register(part.KindSocketHeadCapScrew, &generator{
		title:     "Socket Head Cap Screw",
		views:     socketViews,
		selectors: socketSelectors,
	})
}

// socketProfile draws the outline of the screw seen from the side, centered
// on cx. The front and side views share it.
func socketProfile(d *drawer, cx float64) {
	hr, sr, f := d.s("head_r"), d.s("shaft_r"), d.s("fillet")
	hy, ht, fy := d.s("head_y"), d.s("head_top"), d.s("fillet_y")
	ch, cr, mr := d.s("chamfer"), d.s("chamfer_r"), d.s("minor_r")
	te := d.s("thread_end")

	d.Select(draft.LayerOutline)
	d.hline(ht, cx-hr, cx+hr)
	d.vline(cx-hr, hy, ht)
	d.vline(cx+hr, hy, ht)
	d.hline(hy, cx-hr, cx-sr-f)
	d.hline(hy, cx+sr+f, cx+hr)
	d.Arc(draft.Pt(cx-sr-f, fy), f, 0, 90)
	d.Arc(draft.Pt(cx+sr+f, fy), f, 90, 180)
	d.vline(cx-sr, d.iy+ch, fy)
	d.vline(cx+sr, d.iy+ch, fy)

	// End chamfer and tip.
	d.Line(draft.Pt(cx-sr, d.iy+ch), draft.Pt(cx-cr, d.iy))
	d.Line(draft.Pt(cx+sr, d.iy+ch), draft.Pt(cx+cr, d.iy))
	d.hline(d.iy, cx-cr, cx+cr)
	d.hline(d.iy+ch, cx-sr, cx+sr)

	// Thread minor diameter and thread end.
	d.vline(cx-mr, d.iy, te)
	d.vline(cx+mr, d.iy, te)
	d.hline(te, cx-sr, cx+sr)
	d.hline(hy, cx-sr, cx+sr)
}

// socketHidden draws the hexagonal socket seen at half width half, with
// its countersink and drill point.
func socketHidden(d *drawer, cx, half, sinkY, tipY float64) {
	sb, ht := d.s("socket_bottom"), d.s("head_top")
	sink := d.s("sink_half")

	d.Select(draft.LayerHidden)
	d.Line(draft.Pt(cx-half, sb), draft.Pt(cx, tipY))
	d.Line(draft.Pt(cx, tipY), draft.Pt(cx+half, sb))
	d.vline(cx-half, sb, sinkY)
	d.vline(cx+half, sb, sinkY)
	d.Line(draft.Pt(cx-half, sinkY), draft.Pt(cx-sink, ht))
	d.Line(draft.Pt(cx+half, sinkY), draft.Pt(cx+sink, ht))
	d.hline(sb, cx-half, cx+half)
}

func socketViews(d *drawer) {
	hr, sr := d.s("head_r"), d.s("shaft_r")
	hy, ht := d.s("head_y"), d.s("head_top")
	cx, scx, mid := d.s("front_cx"), d.s("side_cx"), d.s("mid_y")
	hf, inner := d.s("socket_half_flats"), d.s("socket_inner")
	sb, ch, te := d.s("socket_bottom"), d.s("chamfer"), d.s("thread_end")
	center := d.g.Anchor("top_center")

	// Front view across the socket flats, with the inner edges.
	socketProfile(d, cx)
	socketHidden(d, cx, hf, d.s("sink_y_flats"), d.s("tip_y_flats"))
	d.vline(cx-inner, sb, d.s("sink_y_inner"))
	d.vline(cx+inner, sb, d.s("sink_y_inner"))

	// Side view across the socket corners.
	socketProfile(d, scx)
	socketHidden(d, scx, d.s("socket_half_corners"), d.s("sink_y_corners"), d.s("tip_y_corners"))
	d.vline(scx, sb, d.s("sink_y_flats"))

	d.Select(draft.LayerOutline)
	d.Circle(center, hr)
	d.Polygon(center, hf, 6, false)
	d.Circle(center, d.s("sink_half"))
	d.Arc(center, d.s("minor_r"), 135, 45)

	d.Select(draft.LayerCenterline)
	d.axisV(cx, d.iy, center.Y+hr)
	d.axisV(scx, d.iy, ht)
	d.axisH(center.Y, cx-hr, cx+hr)
	d.axisH(mid, d.ix, scx+hr)

	d.Select(draft.LayerDimensions)
	d.vdim(cx-hr, d.iy, ht, d.ix-d.sp, "")
	d.vdim(cx+hr, hy, ht, cx+hr+d.sp/2, "")
	d.hdim(d.iy+ch, cx-sr, cx+sr, d.iy-15, diameter(""))
	d.DiameterDimension(center, hr, draft.Pt(center.X-hr-d.sp/2, center.Y+hr+d.sp/2), diameter(""))
	d.hdim(center.Y, center.X-hf, center.X+hf, center.Y-hr-d.sp/2, "")
	d.vdim(cx+sr, d.iy, te, cx+sr+d.sp, "")
}

func socketSelectors(d *drawer) annotate.Selectors {
	hr, hh, sr := d.s("head_r"), d.s("head_h"), d.s("shaft_r")
	cx, hy, ht, mid := d.s("front_cx"), d.s("head_y"), d.s("head_top"), d.s("mid_y")
	return annotate.Selectors{
		Datums: map[string]annotate.DatumPlacement{
			"head_underside": {
				Attach: draft.Pt(cx+hr, hy),
				Label:  draft.Pt(cx+hr+d.sp/2, hy-2*d.th),
			},
		},
		Frames: map[string]annotate.FramePlacement{
			"head_side": {
				Attach: draft.Pt(d.ix, hy+hh/2),
				Near:   draft.Pt(d.ix-15, ht+2*d.th),
				Grow:   annotate.GrowLeft,
			},
		},
		Finishes: map[string]annotate.FinishPlacement{
			"head_top":      {At: draft.Pt(cx-0.6*hr, ht)},
			"shaft_surface": {At: draft.Pt(cx+sr, mid)},
		},
	}
}
