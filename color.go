package draft

import (
	"fmt"
	"image/color"
)

// aciStandard holds the nine standard AutoCAD color index entries as they
// appear on a white sheet. Index 7 is plotted black.
var aciStandard = [...]color.NRGBA{
	1: {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	2: {R: 0xcc, G: 0xaa, B: 0x00, A: 0xff}, // yellow, darkened for paper
	3: {R: 0x00, G: 0xa0, B: 0x00, A: 0xff},
	4: {R: 0x00, G: 0xa0, B: 0xa0, A: 0xff},
	5: {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	6: {R: 0xc0, G: 0x00, B: 0xc0, A: 0xff},
	7: {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	8: {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	9: {R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
}

// ACIColor returns the preview color for an AutoCAD color index.
// Indices outside the standard range render as index 7.
func ACIColor(index int) color.NRGBA {
	if index < 1 || index >= len(aciStandard) {
		return aciStandard[7]
	}
	return aciStandard[index]
}

// ACIHex returns the preview color for an AutoCAD color index as a
// "#rrggbb" string.
func ACIHex(index int) string {
	c := ACIColor(index)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
