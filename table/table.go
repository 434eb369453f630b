// Package table composes parameter and bill-of-materials grids.
//
// A table is anchored at its top-left corner and grows downwards: a header
// band of 1.5 row heights carrying the centered title, then one band per
// data row. Columns are laid out by cumulative width, so the same composer
// draws the two-column parameter list and the N-column BOM.
package table

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/part"
	"github.com/gogpu/draft/recording"
	"github.com/gogpu/draft/text"
)

// Layout constants.
const (
	DefaultRowHeight = 15.0
	HeaderFactor     = 1.5 // header band height in row heights
	TitleFactor      = 1.2 // title height in text heights
)

// Titles of the standard tables.
const (
	ParamTitle = "Parameter List"
	BOMTitle   = "Bill of Materials"
)

// Column widths of the standard tables.
var (
	ParamColumns = []float64{150, 80}
	BOMColumns   = []float64{40, 150, 50}
)

// Spec describes one table.
type Spec struct {
	Title      string
	Widths     []float64
	RowHeight  float64
	TextHeight float64
	Rows       [][]string
}

// Width returns the total column width.
func (s Spec) Width() float64 {
	var w float64
	for _, c := range s.Widths {
		w += c
	}
	return w
}

// Height returns the header band plus all row bands, or zero without rows.
func (s Spec) Height() float64 {
	if len(s.Rows) == 0 {
		return 0
	}
	return s.RowHeight * (HeaderFactor + float64(len(s.Rows)))
}

// Extent returns the rectangle a table anchored at topLeft covers. It is
// empty without rows.
func (s Spec) Extent(topLeft draft.Point) draft.Rect {
	if len(s.Rows) == 0 || len(s.Widths) == 0 {
		return draft.EmptyRect()
	}
	return draft.R(topLeft.X, topLeft.Y-s.Height(), topLeft.X+s.Width(), topLeft.Y)
}

// Compose draws s with its top-left corner at topLeft on the table layer
// and returns the table extent. A table without rows or columns draws
// nothing.
func Compose(rec *recording.Recorder, s Spec, topLeft draft.Point) draft.Rect {
	ext := s.Extent(topLeft)
	if ext.IsEmpty() {
		return ext
	}
	rh, th := s.RowHeight, s.TextHeight
	x0, y0 := topLeft.X, topLeft.Y
	x1, y1 := ext.Max.X, ext.Min.Y
	header := rh * HeaderFactor
	hy := y0 - header

	rec.Select(draft.LayerTable)
	rec.Rect(ext)
	rec.Line(draft.Pt(x0, hy), draft.Pt(x1, hy))

	// Column centers and internal dividers.
	centers := make([]float64, len(s.Widths))
	x := x0
	for i, w := range s.Widths {
		centers[i] = x + w/2
		x += w
		if i < len(s.Widths)-1 {
			rec.Line(draft.Pt(x, hy), draft.Pt(x, y1))
		}
	}

	rec.Text(draft.Pt((x0+x1)/2, y0-header/2), TitleFactor*th, 0, recording.JustifyMiddleCenter, s.Title)

	log := draft.ComponentLogger("table")
	y := hy
	for i, row := range s.Rows {
		mid := y - rh/2
		for j, cell := range row {
			if j >= len(s.Widths) {
				log.Debug("row has more cells than columns",
					"table", s.Title, "row", i, "cells", len(row), "columns", len(s.Widths))
				break
			}
			if cell == "" {
				continue
			}
			if !text.Default().Fits(cell, th, s.Widths[j]) {
				log.Debug("cell overflows column",
					"table", s.Title, "row", i, "column", j, "text", cell, "width", s.Widths[j])
			}
			rec.Text(draft.Pt(centers[j], mid), th, 0, recording.JustifyMiddleCenter, cell)
		}
		y -= rh
		if i < len(s.Rows)-1 {
			rec.Line(draft.Pt(x0, y), draft.Pt(x1, y))
		}
	}
	rec.EndGroup()
	return ext
}

// Label joins nested parameter keys into a Title-cased table label, e.g.
// {"head", "side_length"} becomes "Head Side Length".
func Label(path ...string) string {
	s := strings.ReplaceAll(strings.Join(path, " "), "_", " ")
	return cases.Title(language.Und).String(s)
}

// ParamTable returns the parameter list of params.
func ParamTable(params []part.Param, textHeight float64) Spec {
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{Label(p.Path...), p.Value})
	}
	return Spec{
		Title:      ParamTitle,
		Widths:     slices.Clone(ParamColumns),
		RowHeight:  DefaultRowHeight,
		TextHeight: textHeight,
		Rows:       rows,
	}
}

// BOMTable returns the bill of materials of components: item number, name
// and quantity. Components without a name use their Title-cased key and a
// zero quantity counts as one.
func BOMTable(components []part.Component, textHeight float64) Spec {
	rows := make([][]string, 0, len(components))
	for i, c := range components {
		name := c.Name
		if name == "" {
			name = Label(c.Key)
		}
		qty := c.Quantity
		if qty == 0 {
			qty = 1
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), name, strconv.Itoa(qty)})
	}
	return Spec{
		Title:      BOMTitle,
		Widths:     slices.Clone(BOMColumns),
		RowHeight:  DefaultRowHeight,
		TextHeight: textHeight,
		Rows:       rows,
	}
}
