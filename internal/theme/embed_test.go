package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/tree"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	doc, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")

	primary, ok := tree.Lookup[string](doc, "styles.brandPrimary")
	require.True(t, ok)
	assert.True(t, colour.IsValidHex(primary))

	size, ok := tree.Get(doc, "styles.fontSize")
	require.True(t, ok)
	assert.Equal(t, 16, size)
}

func TestGetEmbeddedTheme_MidnightIsUnresolved(t *testing.T) {
	doc, found := GetEmbeddedTheme("midnight")
	require.True(t, found)
	assert.Equal(t, "default", doc[ExtendsKey])
	assert.False(t, tree.Has(doc, "styles.fontSize"))
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	doc, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
	assert.Nil(t, doc)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()

	assert.ElementsMatch(t, BundledThemes, themes)
}

func TestIsEmbeddedTheme(t *testing.T) {
	assert.True(t, IsEmbeddedTheme("default"))
	assert.True(t, IsEmbeddedTheme("mobile"))
	assert.False(t, IsEmbeddedTheme("nonexistent"))
}

func TestBundledThemesColoursAreValid(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			th, ok := NewBundledTheme(name)
			require.True(t, ok)
			for _, leaf := range tree.Leaves(th.Doc) {
				s, isString := leaf.Value.(string)
				if isString && len(s) > 0 && s[0] == '#' {
					assert.True(t, colour.IsValidHex(s), "%s=%s", leaf.Path, s)
				}
			}
		})
	}
}
