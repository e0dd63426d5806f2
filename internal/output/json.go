package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/themepanel/internal/tree"
)

// JSONFormatter formats values as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatValue writes v as indented JSON.
func (f *JSONFormatter) FormatValue(w io.Writer, v any) error {
	return f.encode(w, v)
}

// FormatLeaves writes leaves as a JSON array of {path, value} objects.
func (f *JSONFormatter) FormatLeaves(w io.Writer, leaves []tree.Leaf) error {
	if leaves == nil {
		leaves = []tree.Leaf{}
	}
	return f.encode(w, leaves)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", f.opts.Indent)
	return encoder.Encode(v)
}
