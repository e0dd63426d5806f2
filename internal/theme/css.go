package theme

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// CSSOptions controls custom property generation.
type CSSOptions struct {
	Selector string            // Rule selector, ":root" when empty
	Prefix   string            // Optional name prefix, "--<prefix>-<name>"
	Root     string            // Subtree to export; empty exports the whole document
	Units    map[string]string // Key suffix to unit for bare numbers, e.g. "Size": "px"
}

// DefaultCSSOptions returns the options used when nothing is configured.
func DefaultCSSOptions() CSSOptions {
	return CSSOptions{
		Selector: ":root",
		Root:     "styles",
		Units: map[string]string{
			"Size":    "px",
			"Radius":  "px",
			"Spacing": "px",
			"Width":   "px",
		},
	}
}

// Variable is one generated custom property.
type Variable struct {
	Name  string `json:"name" yaml:"name"`   // e.g. "--brand-primary-light"
	Value string `json:"value" yaml:"value"` // CSS value
	Path  string `json:"path" yaml:"path"`   // Document path it came from
}

// CSSVariables converts the leaves under opts.Root into custom properties,
// sorted by name. Booleans, lists, nulls and empty strings have no CSS form
// and are skipped.
func CSSVariables(doc tree.Tree, opts CSSOptions) []Variable {
	sub, ok := tree.Sub(doc, opts.Root)
	if !ok {
		return nil
	}

	var vars []Variable
	for _, leaf := range tree.Leaves(sub) {
		segments := tree.Split(leaf.Path)
		value, ok := formatValue(leaf.Value, unitFor(segments[len(segments)-1], opts.Units))
		if !ok {
			continue
		}
		vars = append(vars, Variable{
			Name:  PropertyName(opts.Prefix, leaf.Path),
			Value: value,
			Path:  tree.Join(opts.Root, leaf.Path),
		})
	}

	sort.SliceStable(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}

// GenerateCSS renders the document's custom properties as a single rule.
func GenerateCSS(doc tree.Tree, opts CSSOptions) string {
	selector := opts.Selector
	if selector == "" {
		selector = ":root"
	}

	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, v := range CSSVariables(doc, opts) {
		sb.WriteString("  ")
		sb.WriteString(v.Name)
		sb.WriteString(": ")
		sb.WriteString(v.Value)
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// PropertyName builds a custom property name from a dot-path:
// "brandPrimaryLight" becomes "--brand-primary-light" and
// "mobile.tabBar" becomes "--mobile-tab-bar".
func PropertyName(prefix, path string) string {
	parts := make([]string, 0, 4)
	if p := kebab(prefix); p != "" {
		parts = append(parts, p)
	}
	for _, seg := range tree.Split(path) {
		if k := kebab(seg); k != "" {
			parts = append(parts, k)
		}
	}
	return "--" + strings.Join(parts, "-")
}

// kebab lowercases s and splits camelCase, underscores and spaces with '-'.
func kebab(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	dash := true // suppress leading separators

	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if !dash {
				sb.WriteByte('-')
				dash = true
			}
			continue
		case unicode.IsUpper(r) && i > 0 && !dash:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
		dash = false
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// unitFor returns the unit of the longest suffix in units matching key,
// compared case-insensitively.
func unitFor(key string, units map[string]string) string {
	lower := strings.ToLower(key)
	best, unit := -1, ""
	for suffix, u := range units {
		s := strings.ToLower(suffix)
		if strings.HasSuffix(lower, s) && (len(s) > best || (len(s) == best && u < unit)) {
			best, unit = len(s), u
		}
	}
	return unit
}

func formatValue(v any, unit string) (string, bool) {
	switch n := v.(type) {
	case string:
		if n == "" {
			return "", false
		}
		if _, ok := colour.ParseRGB(n); ok {
			return colour.NormalizeHex(n), true
		}
		return n, true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64) + unit, true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32) + unit, true
	case int:
		return strconv.Itoa(n) + unit, true
	case int64:
		return strconv.FormatInt(n, 10) + unit, true
	case int32:
		return strconv.FormatInt(int64(n), 10) + unit, true
	case uint64:
		return strconv.FormatUint(n, 10) + unit, true
	case uint:
		return strconv.FormatUint(uint64(n), 10) + unit, true
	default:
		return "", false
	}
}
