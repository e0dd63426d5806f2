package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() Tree {
	return Tree{
		"styles": map[string]any{
			"brandPrimary":   "#336699",
			"brandSecondary": "#ff8800",
			"fontSize":       16,
		},
		"app": map[string]any{
			"name":  "Acme",
			"empty": map[string]any{},
		},
		"tags": []any{"a", "b"},
	}
}

func TestLeaves(t *testing.T) {
	leaves := Leaves(sampleTree())

	paths := make([]string, len(leaves))
	for i, l := range leaves {
		paths[i] = l.Path
	}

	assert.Equal(t, []string{
		"app.name",
		"styles.brandPrimary",
		"styles.brandSecondary",
		"styles.fontSize",
		"tags",
	}, paths)
	assert.Equal(t, 16, leaves[3].Value)
}

func TestLeaves_Cycle(t *testing.T) {
	m := Tree{"x": 1}
	m["self"] = m

	leaves := Leaves(m)
	require.Len(t, leaves, 1)
	assert.Equal(t, "x", leaves[0].Path)
}

func TestLookup(t *testing.T) {
	root := sampleTree()

	name, ok := Lookup[string](root, "app.name")
	assert.True(t, ok)
	assert.Equal(t, "Acme", name)

	_, ok = Lookup[string](root, "styles.fontSize")
	assert.False(t, ok)

	size, ok := Lookup[int](root, "styles.fontSize")
	assert.True(t, ok)
	assert.Equal(t, 16, size)
}

func TestSub(t *testing.T) {
	root := sampleTree()

	styles, ok := Sub(root, "styles")
	require.True(t, ok)
	assert.Len(t, styles, 3)

	all, ok := Sub(root, "")
	assert.True(t, ok)
	assert.Len(t, all, 3)

	_, ok = Sub(root, "app.name")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	root := sampleTree()

	assert.Equal(t, []string{"styles.brandPrimary"}, Suggest(root, "brandPrim", 3))
	assert.Len(t, Suggest(root, "brand", 1), 1)
	assert.Nil(t, Suggest(root, "brand", 0))
	assert.Nil(t, Suggest(Tree{}, "brand", 3))
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"a": map[any]any{1: "one", "two": map[any]any{"x": true}},
		"l": []any{map[any]any{"k": "v"}},
	}

	out := NormalizeTree(in)

	v, ok := Get(out, "a.1")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	v, ok = Get(out, "a.two.x")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	assert.Equal(t, []any{map[string]any{"k": "v"}}, out["l"])
	assert.Equal(t, Tree{}, NormalizeTree(nil))
}

func TestNormalize_JSONNumbers(t *testing.T) {
	assert.Equal(t, 16, Normalize(json.Number("16")))
	assert.Equal(t, 1.5, Normalize(json.Number("1.5")))
	assert.Equal(t, []any{2, 0.25}, Normalize([]any{json.Number("2"), json.Number("0.25")}))
}
