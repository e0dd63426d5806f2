// Package output provides output formatters for document values.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/themepanel/internal/tree"
)

// Formatter formats document values for output.
type Formatter interface {
	// FormatValue writes a single value, scalar or subtree.
	FormatValue(w io.Writer, v any) error
	// FormatLeaves writes a list of path/value pairs.
	FormatLeaves(w io.Writer, leaves []tree.Leaf) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
)

// ValidFormats returns all valid format types.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// ParseFormat checks s against the known format types.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range ValidFormats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, must be one of: %v", s, ValidFormats())
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom leaf template for plain format, e.g. "{{.Path}}={{.Value}}"
	Separator string // Between path and value in plain format
	Indent    string // Indent for json output
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Separator: " = ",
		Indent:    "  ",
	}
}

// templateData provides data for custom leaf templates.
type templateData struct {
	Index int
	Path  string
	Value any
}

func parseTemplate(name, text string) *template.Template {
	if text == "" {
		return nil
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil
	}
	return tmpl
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"scalar": Scalar,
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
	}
}
