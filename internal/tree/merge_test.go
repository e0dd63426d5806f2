package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	base := Tree{
		"styles": map[string]any{"brandPrimary": "#336699", "fontSize": 16},
		"name":   "base",
	}
	overlay := Tree{
		"styles": map[string]any{"brandPrimary": "#ff0000"},
		"extra":  true,
	}

	out := Merge(base, overlay)

	assert.Equal(t, Tree{
		"styles": map[string]any{"brandPrimary": "#ff0000", "fontSize": 16},
		"name":   "base",
		"extra":  true,
	}, out)

	// Inputs untouched.
	assert.Equal(t, "#336699", base["styles"].(map[string]any)["brandPrimary"])
	assert.NotContains(t, base, "extra")
}

func TestMerge_ScalarReplacesMapping(t *testing.T) {
	out := Merge(Tree{"a": map[string]any{"b": 1}}, Tree{"a": "flat"})
	assert.Equal(t, Tree{"a": "flat"}, out)
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, Tree{}, Merge(nil, nil))
	assert.Equal(t, Tree{"a": 1}, Merge(nil, Tree{"a": 1}))
}
