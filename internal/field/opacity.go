package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOpacity reads an opacity as a fraction ("0.5") or a percentage
// ("50%") and returns a fraction in [0,1].
func ParseOpacity(text string) (float64, error) {
	t := strings.TrimSpace(text)
	percent := strings.HasSuffix(t, "%")
	t = strings.TrimSpace(strings.TrimSuffix(t, "%"))

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid opacity %q: %w", text, err)
	}
	if percent {
		v /= 100
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("opacity %q: %w", text, ErrOutOfRange)
	}
	return v, nil
}

// ClampOpacity bounds v to [0,1].
func ClampOpacity(v float64) float64 {
	return min(max(v, 0), 1)
}

// FormatOpacity renders a fraction as a whole percentage, e.g. "50%".
func FormatOpacity(v float64) string {
	return strconv.Itoa(int(ClampOpacity(v)*100+0.5)) + "%"
}
