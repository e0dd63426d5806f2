package colour

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// validHexRegex matches a committed colour: '#' followed by exactly six hex digits.
var validHexRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// looseHexRegex matches six hex digits with an optional '#', capturing each channel.
var looseHexRegex = regexp.MustCompile(`^#?([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})$`)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Hex returns the colour as "#rrggbb" with lowercase digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsValidHex reports whether value is '#' followed by exactly six hex digits.
func IsValidHex(value string) bool {
	return validHexRegex.MatchString(value)
}

// NormalizeHex returns value with a leading '#'.
// An empty value becomes "#000000". Digit content is not checked, so
// NormalizeHex("zzzzzz") is "#zzzzzz"; pair it with IsValidHex.
func NormalizeHex(value string) string {
	if value == "" {
		return "#000000"
	}
	if !strings.HasPrefix(value, "#") {
		return "#" + value
	}
	return value
}

// ParseRGB splits a six digit hex colour (optional '#', any case) into channels.
func ParseRGB(hex string) (RGB, bool) {
	m := looseHexRegex.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// ChannelDistance returns the largest absolute per-channel difference.
func ChannelDistance(a, b RGB) int {
	d := max(absDiff(a.R, b.R), absDiff(a.G, b.G))
	return max(d, absDiff(a.B, b.B))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a) - int(b)
	}
	return int(b) - int(a)
}
