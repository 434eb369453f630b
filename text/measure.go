// Package text measures single-line drawing text.
//
// Drafting hosts size text by cap height. A Measurer shapes a string with
// HarfBuzz (go-text/typesetting) at the em size whose cap height equals the
// requested text height, and reports the resulting advance. Measurements
// are used to compute text extents and to flag table cells whose content
// overflows the column.
package text

import (
	"bytes"
	"errors"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("text: empty font data")

// capHeight is the Go Regular cap height in em units (1466/2048).
const capHeight = 1466.0 / 2048.0

// Measurer computes text advances. It is safe for concurrent use.
type Measurer struct {
	font *font.Font

	// HarfbuzzShaper keeps a mutable buffer, so instances are pooled.
	shapers sync.Pool
}

// NewMeasurer parses TrueType or OpenType data.
func NewMeasurer(data []byte) (*Measurer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Measurer{
		font: face.Font,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
)

// Default returns the shared Measurer for the bundled Go Regular face.
func Default() *Measurer {
	defaultOnce.Do(func() {
		m, err := NewMeasurer(goregular.TTF)
		if err != nil {
			panic("text: bundled font: " + err.Error())
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Width returns the advance of s rendered at the given cap height.
func (m *Measurer) Width(s string, height float64) float64 {
	if s == "" || height <= 0 {
		return 0
	}
	runes := []rune(s)
	em := height / capHeight

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(m.font),
		Size:      fixed.Int26_6(em * 64),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := m.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shapers.Put(hb)

	return float64(out.Advance) / 64
}

// Fits reports whether s at the given height fits within width.
func (m *Measurer) Fits(s string, height, width float64) bool {
	return m.Width(s, height) <= width
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
