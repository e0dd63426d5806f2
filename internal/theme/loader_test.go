package theme

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

func TestLoader_Resolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "custom.yaml"), "styles:\n  brandPrimary: \"#abcdef\"\n")

	l := NewLoader(dir, nil)
	assert.Equal(t, dir, l.Dir())

	th, err := l.LoadTheme("custom")
	require.NoError(t, err)
	assert.False(t, th.IsBundled)
	assert.Same(t, th, l.GetTheme())

	th, err = l.LoadTheme("midnight")
	require.NoError(t, err)
	assert.True(t, th.IsBundled)

	th, err = l.LoadTheme("does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, th.Name)

	th, err = l.LoadTheme("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestLoader_ListThemes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "custom.toml"), "")

	names := []string{}
	for _, th := range NewLoader(dir, nil).ListThemes() {
		names = append(names, th.Name)
	}
	assert.Contains(t, names, "custom")
	assert.Contains(t, names, "default")
}

func TestLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	require.NoError(t, store.SaveDocument(path, tree.Tree{"styles": map[string]any{"brandPrimary": "#111111"}}))

	l := NewLoader(dir, nil)
	_, err := l.LoadTheme("live")
	require.NoError(t, err)

	reloaded := make(chan *Theme, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, l.StartHotReload(ctx, func(th *Theme) { reloaded <- th }))
	defer l.StopHotReload()

	// Ensure the new mtime is strictly later on coarse-grained filesystems.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.SaveDocument(path, tree.Tree{"styles": map[string]any{"brandPrimary": "#222222"}}))

	select {
	case th := <-reloaded:
		v, _ := tree.Get(th.Doc, "styles.brandPrimary")
		assert.Equal(t, "#222222", v)
	case <-time.After(5 * time.Second):
		t.Fatal("theme was not hot-reloaded")
	}
}

func TestLoader_HotReloadBundledIsNoop(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	_, err := l.LoadTheme("default")
	require.NoError(t, err)
	assert.NoError(t, l.StartHotReload(context.Background(), nil))
	l.StopHotReload()
}
