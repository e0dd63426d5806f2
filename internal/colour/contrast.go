package colour

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	black = "#000000"
	white = "#ffffff"
)

// Luminance returns the WCAG relative luminance of hex in [0,1].
// Unparseable input is measured as the Fallback grey.
func Luminance(hex string) float64 {
	hex = NormalizeHex(hex)
	if !IsValidHex(hex) {
		hex = Fallback.Hex()
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colours, in [1,21].
func ContrastRatio(a, b string) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ReadableForeground picks black or white text, whichever contrasts more
// with the background bg.
func ReadableForeground(bg string) string {
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}

// IsLight reports whether black text is the better choice on hex.
func IsLight(hex string) bool {
	return ReadableForeground(hex) == black
}
