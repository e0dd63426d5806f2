package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themepanel/internal/tree"
)

// YAMLFormatter formats values as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatValue writes v as a YAML document.
func (f *YAMLFormatter) FormatValue(w io.Writer, v any) error {
	return f.encode(w, v)
}

// FormatLeaves writes leaves as a YAML sequence.
func (f *YAMLFormatter) FormatLeaves(w io.Writer, leaves []tree.Leaf) error {
	if leaves == nil {
		leaves = []tree.Leaf{}
	}
	return f.encode(w, leaves)
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
