package field

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSize is returned for text that is not a CSS length.
	ErrInvalidSize = errors.New("invalid size")

	// ErrOutOfRange is returned when a parsed value falls outside its bounds.
	ErrOutOfRange = errors.New("value out of range")
)

// DefaultUnit is applied to bare numbers.
const DefaultUnit = "px"

// Units lists the accepted CSS length units.
var Units = []string{"px", "rem", "em", "%", "vh", "vw"}

var sizeRegex = regexp.MustCompile(`^\s*(-?[0-9]*\.?[0-9]+)\s*([a-zA-Z%]*)\s*$`)

// Size is a CSS length.
type Size struct {
	Value float64
	Unit  string
}

// String renders the size, e.g. "16px" or "1.25rem".
func (s Size) String() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit
}

// ParseSize reads a CSS length such as "16px", "1.5rem" or "12".
func ParseSize(text string) (Size, error) {
	m := sizeRegex.FindStringSubmatch(text)
	if m == nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, text)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q: %v", ErrInvalidSize, text, err)
	}

	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = DefaultUnit
	}
	if !slices.Contains(Units, unit) {
		return Size{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidSize, m[2])
	}

	return Size{Value: v, Unit: unit}, nil
}

// SizeField is a numeric length input with bounds and a step.
// Zero Min and Max mean unbounded.
type SizeField struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp bounds the value of s to the field's range. Each bound applies
// only when it is non-zero.
func (f SizeField) Clamp(s Size) Size {
	if f.Min != 0 {
		s.Value = max(s.Value, f.Min)
	}
	if f.Max != 0 {
		s.Value = min(s.Value, f.Max)
	}
	return s
}

// Parse reads text and clamps it to the field's range.
func (f SizeField) Parse(text string) (Size, error) {
	s, err := ParseSize(text)
	if err != nil {
		return Size{}, err
	}
	return f.Clamp(s), nil
}

// Increment returns s raised by one step.
func (f SizeField) Increment(s Size) Size {
	s.Value += f.step()
	return f.Clamp(s)
}

// Decrement returns s lowered by one step.
func (f SizeField) Decrement(s Size) Size {
	s.Value -= f.step()
	return f.Clamp(s)
}

func (f SizeField) step() float64 {
	if f.Step <= 0 {
		return 1
	}
	return f.Step
}
