package colour

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidHSL is returned by ParseHSL for text that is not an HSL triple.
var ErrInvalidHSL = errors.New("invalid hsl value")

// HSL is a colour in hue (degrees, [0,360)), saturation and lightness
// (percentages, [0,100]).
type HSL struct {
	H float64 `json:"h" yaml:"h" toml:"h"`
	S float64 `json:"s" yaml:"s" toml:"s"`
	L float64 `json:"l" yaml:"l" toml:"l"`
}

// Fallback is what HexToHSL returns for input it cannot parse.
var Fallback = HSL{H: 0, S: 0, L: 50}

// hslRegex accepts "hsl(210, 50%, 40%)", "210,50,40" and "210 50% 40%".
var hslRegex = regexp.MustCompile(`^\s*(?:hsl\(\s*)?(-?[0-9]*\.?[0-9]+)(?:deg)?\s*[,\s]\s*([0-9]*\.?[0-9]+)%?\s*[,\s]\s*([0-9]*\.?[0-9]+)%?\s*\)?\s*$`)

type channel int

const (
	channelRed channel = iota
	channelGreen
	channelBlue
)

// HexToHSL converts a six digit hex colour (optional '#', any case) to HSL.
// Input that does not parse yields Fallback.
func HexToHSL(hex string) HSL {
	rgb, ok := ParseRGB(hex)
	if !ok {
		return Fallback
	}

	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	l := (hi + lo) / 2

	// Achromatic: no hue, no saturation.
	if hi == lo {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := hi - lo
	var s float64
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	var h float64
	switch dominant(r, g, b) {
	case channelRed:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case channelGreen:
		h = (b-r)/d + 2
	case channelBlue:
		h = (r-g)/d + 4
	}

	return HSL{H: h / 6 * 360, S: s * 100, L: l * 100}
}

// dominant reports which channel holds the maximum. Ties go to red, then green.
func dominant(r, g, b float64) channel {
	switch {
	case r >= g && r >= b:
		return channelRed
	case g >= b:
		return channelGreen
	default:
		return channelBlue
	}
}

// HSLToHex converts hue in degrees and saturation/lightness in percent to a
// lowercase "#rrggbb" string. Channels are rounded and clamped to [0,255].
func HSLToHex(h, s, l float64) string {
	s /= 100
	l /= 100
	a := s * min(l, 1-l)

	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		if k < 0 {
			k += 12
		}
		c := l - a*max(-1, min(k-3, 9-k, 1))
		return clampByte(math.Round(255 * c))
	}

	return RGB{R: f(0), G: f(8), B: f(4)}.Hex()
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Hex converts the colour to "#rrggbb".
func (c HSL) Hex() string {
	return HSLToHex(c.H, c.S, c.L)
}

// Rounded returns the colour with each component rounded to an integer.
func (c HSL) Rounded() HSL {
	h := math.Round(c.H)
	if h >= 360 {
		h -= 360
	}
	return HSL{H: h, S: math.Round(c.S), L: math.Round(c.L)}
}

// String renders the colour in CSS notation, e.g. "hsl(210, 50%, 40%)".
func (c HSL) String() string {
	r := c.Rounded()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(r.H), int(r.S), int(r.L))
}

// ParseHSL reads an HSL triple. Hue is wrapped into [0,360); saturation and
// lightness must be within [0,100].
func ParseHSL(text string) (HSL, error) {
	m := hslRegex.FindStringSubmatch(text)
	if m == nil {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHSL, text)
	}

	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: %q: %v", ErrInvalidHSL, text, err)
		}
		v[i] = f
	}

	if v[1] > 100 || v[2] > 100 {
		return HSL{}, fmt.Errorf("%w: %q: saturation and lightness must be at most 100", ErrInvalidHSL, text)
	}

	h := math.Mod(v[0], 360)
	if h < 0 {
		h += 360
	}
	return HSL{H: h, S: v[1], L: v[2]}, nil
}

// AdjustLightness shifts the lightness of hex by delta percentage points,
// clamped to [0,100]. Unparseable input is adjusted from Fallback.
func AdjustLightness(hex string, delta float64) string {
	c := HexToHSL(hex)
	c.L = min(max(c.L+delta, 0), 100)
	return c.Hex()
}
