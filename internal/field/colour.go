package field

import (
	"math"

	"github.com/jmylchreest/themepanel/internal/colour"
)

// ColorField keeps a hex text value and an HSL picker state in sync.
//
// Typing updates the text immediately and the HSL state only once the text
// is a complete colour. Moving a slider updates both.
type ColorField struct {
	text  string
	hsl   colour.HSL
	valid string // last committed colour
}

// NewColorField creates a field for initial. An invalid initial value leaves
// the picker at colour.Fallback.
func NewColorField(initial string) *ColorField {
	f := &ColorField{}
	f.SetHex(initial)
	if !f.Valid() {
		f.hsl = colour.Fallback
		f.valid = colour.Fallback.Hex()
	}
	return f
}

// SetHex records typed text. The picker follows only when the text is valid.
func (f *ColorField) SetHex(text string) {
	f.text = text
	hex := colour.NormalizeHex(text)
	if colour.IsValidHex(hex) {
		f.hsl = colour.HexToHSL(hex)
		f.valid = hex
	}
}

// SetHSL moves the picker and rewrites the text.
func (f *ColorField) SetHSL(c colour.HSL) {
	f.hsl = HSLClamp(c)
	f.valid = f.hsl.Hex()
	f.text = f.valid
}

// SetHue sets the hue in degrees, wrapping into [0,360).
func (f *ColorField) SetHue(h float64) {
	c := f.hsl
	c.H = h
	f.SetHSL(c)
}

// SetSaturation sets the saturation percentage, clamped to [0,100].
func (f *ColorField) SetSaturation(s float64) {
	c := f.hsl
	c.S = s
	f.SetHSL(c)
}

// SetLightness sets the lightness percentage, clamped to [0,100].
func (f *ColorField) SetLightness(l float64) {
	c := f.hsl
	c.L = l
	f.SetHSL(c)
}

// Nudge shifts each component by the given amounts.
func (f *ColorField) Nudge(dh, ds, dl float64) {
	f.SetHSL(colour.HSL{H: f.hsl.H + dh, S: f.hsl.S + ds, L: f.hsl.L + dl})
}

// Text returns the text as typed.
func (f *ColorField) Text() string { return f.text }

// HSL returns the picker state.
func (f *ColorField) HSL() colour.HSL { return f.hsl }

// Valid reports whether the current text is a complete colour.
func (f *ColorField) Valid() bool {
	return colour.IsValidHex(colour.NormalizeHex(f.text))
}

// Value returns the colour to commit: the normalised text when valid,
// otherwise the last valid colour.
func (f *ColorField) Value() string {
	return f.valid
}

// HSLClamp wraps the hue into [0,360) and clamps saturation and lightness
// to [0,100].
func HSLClamp(c colour.HSL) colour.HSL {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	return colour.HSL{
		H: h,
		S: min(max(c.S, 0), 100),
		L: min(max(c.L, 0), 100),
	}
}
