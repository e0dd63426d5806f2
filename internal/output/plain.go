package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/themepanel/internal/tree"
)

// PlainFormatter formats values as plain text, one leaf per line.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// FormatValue writes scalars on a single line. Subtrees are written as
// their leaves relative to the subtree.
func (f *PlainFormatter) FormatValue(w io.Writer, v any) error {
	if m, ok := v.(map[string]any); ok {
		return f.FormatLeaves(w, tree.Leaves(m))
	}
	_, err := fmt.Fprintln(w, Scalar(v))
	return err
}

// FormatLeaves writes one line per leaf.
func (f *PlainFormatter) FormatLeaves(w io.Writer, leaves []tree.Leaf) error {
	sep := f.opts.Separator
	if sep == "" {
		sep = " = "
	}

	for i, l := range leaves {
		if f.template != nil {
			var sb strings.Builder
			data := templateData{Index: i + 1, Path: l.Path, Value: l.Value}
			if err := f.template.Execute(&sb, data); err == nil {
				if _, err := fmt.Fprintln(w, sb.String()); err != nil {
					return err
				}
				continue
			}
		}
		if _, err := fmt.Fprintln(w, l.Path+sep+Scalar(l.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Scalar renders a leaf value as text. Lists are rendered as compact JSON
// and nil as "null".
func Scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
