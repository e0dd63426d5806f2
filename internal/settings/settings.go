// Package settings describes the mobile app settings panel: which paths the
// document holds, what kind of value each one takes, and how raw text from
// an input is turned into a stored value.
package settings

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/field"
	"github.com/jmylchreest/themepanel/internal/theme"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// ErrInvalidValue is returned by Apply when raw text does not fit the rule.
var ErrInvalidValue = errors.New("invalid value")

// Kind is the type of value a settings path holds.
type Kind string

const (
	KindString     Kind = "string"
	KindIdentifier Kind = "identifier" // reverse-DNS bundle identifier
	KindColour     Kind = "colour"
	KindOpacity    Kind = "opacity"
	KindSize       Kind = "size"
	KindBool       Kind = "bool"
	KindURL        Kind = "url"
)

// Rule constrains the value at Path.
type Rule struct {
	Path     string
	Kind     Kind
	Required bool
}

// Schema is the mobile app settings panel layout.
var Schema = []Rule{
	{Path: "app.name", Kind: KindString, Required: true},
	{Path: "app.bundleId", Kind: KindIdentifier, Required: true},
	{Path: "app.supportUrl", Kind: KindURL},
	{Path: "branding.primaryColor", Kind: KindColour, Required: true},
	{Path: "branding.splashBackground", Kind: KindColour},
	{Path: "branding.splashLogoOpacity", Kind: KindOpacity},
	{Path: "branding.iconPadding", Kind: KindSize},
	{Path: "branding.tabBarHeight", Kind: KindSize},
	{Path: "features.darkMode", Kind: KindBool},
	{Path: "features.pushNotifications", Kind: KindBool},
	{Path: "features.offlineMode", Kind: KindBool},
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z][A-Za-z0-9_-]*)+$`)

// Problem is a validation finding for one path.
type Problem struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Defaults returns the bundled mobile settings document.
func Defaults() tree.Tree {
	doc, ok := theme.GetEmbeddedTheme(theme.MobileThemeName)
	if !ok {
		return make(tree.Tree)
	}
	return tree.Delete(doc, "name")
}

// RuleFor returns the rule for path.
func RuleFor(path string) (Rule, bool) {
	for _, r := range Schema {
		if r.Path == path {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate checks doc against Schema and returns the problems sorted by path.
func Validate(doc tree.Tree) []Problem {
	var problems []Problem
	for _, r := range Schema {
		v, ok := tree.Get(doc, r.Path)
		if !ok || v == nil {
			if r.Required {
				problems = append(problems, Problem{Path: r.Path, Message: "is required"})
			}
			continue
		}
		if msg := check(r, v); msg != "" {
			problems = append(problems, Problem{Path: r.Path, Message: msg})
		}
	}

	sort.Slice(problems, func(i, j int) bool {
		return problems[i].Path < problems[j].Path
	})
	return problems
}

// ValidateColours reports every string leaf that starts with '#' but is not
// a "#rrggbb" colour. Theme documents have no schema, so this is their check.
func ValidateColours(doc tree.Tree) []Problem {
	var problems []Problem
	for _, l := range tree.Leaves(doc) {
		s, ok := l.Value.(string)
		if !ok || !strings.HasPrefix(s, "#") || colour.IsValidHex(s) {
			continue
		}
		problems = append(problems, Problem{Path: l.Path, Message: fmt.Sprintf("%q is not a hex colour", s)})
	}
	return problems
}

func check(r Rule, v any) string {
	switch r.Kind {
	case KindBool:
		if _, ok := v.(bool); !ok {
			return "must be true or false"
		}
		return ""
	case KindOpacity:
		if f, ok := toFloat(v); ok {
			if f < 0 || f > 1 {
				return "must be between 0 and 1"
			}
			return ""
		}
	case KindSize:
		if _, ok := toFloat(v); ok {
			return ""
		}
	}

	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("must be a %s", r.Kind)
	}
	if r.Kind == KindColour {
		// Stored colours must already be in the form Apply writes.
		if !colour.IsValidHex(s) {
			return fmt.Sprintf("%q is not a #rrggbb colour", s)
		}
		return ""
	}
	if _, err := parse(r.Kind, s); err != nil {
		return err.Error()
	}
	if r.Required && strings.TrimSpace(s) == "" {
		return "is required"
	}
	return ""
}

// Apply parses raw according to the rule for path and stores the result in
// a copy of doc. Paths outside Schema store raw as a string.
func Apply(doc tree.Tree, path, raw string) (tree.Tree, error) {
	r, ok := RuleFor(path)
	if !ok {
		return tree.Set(doc, path, raw), nil
	}

	v, err := parse(r.Kind, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree.Set(doc, path, v), nil
}

func parse(kind Kind, raw string) (any, error) {
	text := strings.TrimSpace(raw)

	switch kind {
	case KindColour:
		hex := colour.NormalizeHex(text)
		if !colour.IsValidHex(hex) {
			return nil, fmt.Errorf("%w: %q is not a hex colour", ErrInvalidValue, raw)
		}
		return hex, nil

	case KindOpacity:
		v, err := field.ParseOpacity(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return v, nil

	case KindSize:
		s, err := field.ParseSize(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return s.String(), nil

	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not true or false", ErrInvalidValue, raw)
		}
		return b, nil

	case KindURL:
		u, err := url.Parse(text)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidValue, raw)
		}
		return text, nil

	case KindIdentifier:
		if !identifierRegex.MatchString(text) {
			return nil, fmt.Errorf("%w: %q is not a reverse-DNS identifier", ErrInvalidValue, raw)
		}
		return text, nil

	default:
		return raw, nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
