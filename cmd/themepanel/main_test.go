package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type env struct {
	dir    string
	doc    string
	config string
}

func newEnv(t *testing.T, docName string) env {
	t.Helper()
	dir := t.TempDir()
	return env{
		dir:    dir,
		doc:    filepath.Join(dir, docName),
		config: filepath.Join(dir, "config.toml"),
	}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", e.config, "-d", e.doc}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (e env) load(t *testing.T) tree.Tree {
	t.Helper()
	doc, err := store.LoadDocument(e.doc)
	require.NoError(t, err)
	return doc
}

func TestSetGetHasUnset(t *testing.T) {
	e := newEnv(t, "theme.yaml")

	assert.Equal(t, "styles.brandPrimary = #ff8800\n", e.mustRun(t, "set", "styles.brandPrimary", "#ff8800"))
	e.mustRun(t, "set", "styles.fontSize", "18")
	e.mustRun(t, "set", "app.version", "2", "--raw")

	assert.Equal(t, "#ff8800\n", e.mustRun(t, "get", "styles.brandPrimary"))
	assert.Equal(t, "18\n", e.mustRun(t, "get", "styles.fontSize"))
	assert.Equal(t, "2\n", e.mustRun(t, "get", "app.version"))

	doc := e.load(t)
	v, _ := tree.Get(doc, "app.version")
	assert.Equal(t, "2", v)

	assert.Equal(t, "true\n", e.mustRun(t, "has", "styles.fontSize"))

	e.mustRun(t, "unset", "styles.fontSize")
	out, err := e.run(t, "has", "styles.fontSize")
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, "false\n", out)

	assert.True(t, tree.Has(e.load(t), "styles"))
}

func TestGet_MissingSuggests(t *testing.T) {
	e := newEnv(t, "theme.json")
	e.mustRun(t, "set", "styles.brandPrimary", "#336699")

	_, err := e.run(t, "get", "styles.brandPrimry")
	require.ErrorIs(t, err, errNotFound)
	assert.Contains(t, err.Error(), "styles.brandPrimary")
}

func TestGet_Formats(t *testing.T) {
	e := newEnv(t, "theme.toml")
	e.mustRun(t, "set", "styles.brandPrimary", "#336699")

	assert.JSONEq(t, `{"brandPrimary":"#336699"}`, e.mustRun(t, "get", "styles", "--format", "json"))
	out := e.mustRun(t, "get", "styles", "-f", "yaml")
	assert.Contains(t, out, "brandPrimary:")
	assert.Contains(t, out, "#336699")

	_, err := e.run(t, "get", "styles", "--format", "xml")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	e.mustRun(t, "set", "styles.brandPrimary", "#336699")
	e.mustRun(t, "set", "styles.spacing", "8")
	e.mustRun(t, "set", "app.name", "Demo")

	assert.Equal(t, "styles.brandPrimary = #336699\nstyles.spacing = 8\n", e.mustRun(t, "list", "styles"))
	assert.Equal(t, "app.name\n", e.mustRun(t, "list", "app", "--template", "{{.Path}}"))
}

func TestList_Resolved(t *testing.T) {
	e := newEnv(t, "brand.yaml")
	require.NoError(t, os.WriteFile(e.doc, []byte("extends: default\nstyles:\n  brandPrimary: \"#ff0000\"\n"), 0644))

	out := e.mustRun(t, "list", "styles", "--resolved")
	assert.Contains(t, out, "styles.brandPrimary = #ff0000")
	assert.Contains(t, out, "styles.brandSecondary = #ff8800")

	assert.NotContains(t, e.mustRun(t, "list"), "brandSecondary")
}

func TestSet_SettingsKind(t *testing.T) {
	e := newEnv(t, "app.json")

	e.mustRun(t, "--kind", "settings", "set", "branding.splashLogoOpacity", "80%")
	e.mustRun(t, "--kind", "settings", "set", "branding.primaryColor", "ABCDEF")
	e.mustRun(t, "--kind", "settings", "set", "branding.iconPadding", "16")

	doc := e.load(t)
	opacity, _ := tree.Get(doc, "branding.splashLogoOpacity")
	assert.Equal(t, 0.8, opacity)
	primary, _ := tree.Get(doc, "branding.primaryColor")
	assert.Equal(t, "#ABCDEF", primary)
	padding, _ := tree.Get(doc, "branding.iconPadding")
	assert.Equal(t, "16px", padding)

	_, err := e.run(t, "--kind", "settings", "set", "features.darkMode", "maybe")
	assert.Error(t, err)
}

func TestLogAndUndo(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	e.mustRun(t, "set", "styles.brandPrimary", "#336699")
	e.mustRun(t, "set", "styles.brandPrimary", "#ff0000")

	out := e.mustRun(t, "log")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "set styles.brandPrimary = #ff0000 (was #336699)")

	assert.Equal(t, "reverted set styles.brandPrimary\n", e.mustRun(t, "undo"))
	assert.Equal(t, "#336699\n", e.mustRun(t, "get", "styles.brandPrimary"))

	e.mustRun(t, "undo")
	assert.False(t, tree.Has(e.load(t), "styles.brandPrimary"))

	assert.Equal(t, "nothing to undo\n", e.mustRun(t, "undo"))
	assert.Len(t, strings.Split(strings.TrimSpace(e.mustRun(t, "log", "-n", "0")), "\n"), 4)

	_, err := os.Stat(filepath.Join(e.dir, ".theme.yaml.journal.jsonl"))
	assert.NoError(t, err)
}

func TestJournalDisabled(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	require.NoError(t, os.WriteFile(e.config, []byte("[journal]\nenabled = false\n"), 0644))

	e.mustRun(t, "set", "styles.brandPrimary", "#336699")
	_, err := e.run(t, "undo")
	assert.ErrorIs(t, err, errJournalDisabled)
}

func TestCSS(t *testing.T) {
	e := newEnv(t, "brand.yaml")
	require.NoError(t, os.WriteFile(e.doc, []byte("extends: default\nstyles:\n  brandPrimary: \"#336699\"\n"), 0644))

	out := e.mustRun(t, "css")
	assert.True(t, strings.HasPrefix(out, ":root {"))
	assert.Contains(t, out, "--brand-primary: #336699;")
	assert.Contains(t, out, "--brand-primary-light: #538cc6;")
	assert.Contains(t, out, "--brand-primary-dark: #204060;")
	assert.Contains(t, out, "--font-size: 16px;")

	out = e.mustRun(t, "css", "--no-variants", "--selector", ".brand", "--prefix", "tp")
	assert.True(t, strings.HasPrefix(out, ".brand {"))
	assert.Contains(t, out, "--tp-brand-primary: #336699;")
	assert.NotContains(t, out, "light")

	cssPath := filepath.Join(e.dir, "dist", "theme.css")
	assert.Empty(t, e.mustRun(t, "css", "--out", cssPath))
	data, err := os.ReadFile(cssPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--brand-primary: #336699;")
}

func TestConvert(t *testing.T) {
	e := newEnv(t, "theme.yaml")

	out := e.mustRun(t, "convert", "336699")
	assert.Contains(t, out, "hex: #336699\n")
	assert.Contains(t, out, "hsl: hsl(210, 50%, 40%)\n")
	assert.Contains(t, out, "rgb: 51, 102, 153\n")

	out = e.mustRun(t, "convert", "hsl(210, 50%, 50%)")
	assert.Contains(t, out, "hex: #4080bf\n")

	out = e.mustRun(t, "convert", "#336699", "--adjust", "20", "--format", "json")
	assert.Contains(t, out, `"hex": "#6699cc"`)

	_, err := e.run(t, "convert", "not-a-colour")
	assert.Error(t, err)
}

func TestPalette(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	assert.Equal(t, "no colours found\n", e.mustRun(t, "palette"))

	e.mustRun(t, "set", "styles.brandPrimary", "#336699")
	out := e.mustRun(t, "palette")
	assert.Contains(t, out, "styles.brandPrimary")
	assert.Contains(t, out, "styles.brandPrimaryLight")
}

func TestThemesAndInit(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	themesDir := filepath.Join(e.dir, "themes")
	require.NoError(t, os.MkdirAll(themesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, "brand.yaml"),
		[]byte("extends: midnight\nstyles:\n  brandSecondary: \"#00ff00\"\n"), 0644))

	out := e.mustRun(t, "themes", "--themes-dir", themesDir)
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "midnight")
	assert.Contains(t, out, filepath.Join(themesDir, "brand.yaml"))

	e.mustRun(t, "init", "brand", "--themes-dir", themesDir)
	doc := e.load(t)
	primary, _ := tree.Get(doc, "styles.brandPrimary")
	assert.Equal(t, "#7aa2f7", primary)
	secondary, _ := tree.Get(doc, "styles.brandSecondary")
	assert.Equal(t, "#00ff00", secondary)

	_, err := e.run(t, "init", "default")
	assert.Error(t, err)
	e.mustRun(t, "init", "default", "--force")

	_, err = e.run(t, "init", "nope", "--force")
	assert.Error(t, err)
}

func TestInitAndValidateSettings(t *testing.T) {
	e := newEnv(t, "app.yaml")

	e.mustRun(t, "--kind", "settings", "init")
	assert.Contains(t, e.mustRun(t, "--kind", "settings", "validate"), "ok")

	e.mustRun(t, "--kind", "settings", "unset", "app.bundleId")
	e.mustRun(t, "--kind", "settings", "set", "branding.splashBackground", "#fff", "--raw")

	out, err := e.run(t, "--kind", "settings", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "app.bundleId: is required")
	assert.Contains(t, out, "branding.splashBackground:")
}

func TestValidateTheme(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	e.mustRun(t, "set", "styles.border", "#ccc")

	out, err := e.run(t, "validate")
	require.Error(t, err)
	assert.Contains(t, out, "styles.border")
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 18, parseValue("18", false))
	assert.Equal(t, 1.5, parseValue("1.5", false))
	assert.Equal(t, "16px", parseValue("16px", false))
	assert.Equal(t, "18}", parseValue("18}", false))
	assert.Equal(t, true, parseValue("true", false))
	assert.Nil(t, parseValue("null", false))
	assert.Equal(t, []any{"a", 1}, parseValue(`["a", 1]`, false))
	assert.Equal(t, map[string]any{"a": "b"}, parseValue(`{"a":"b"}`, false))
	assert.Equal(t, "#336699", parseValue("#336699", false))
	assert.Equal(t, "18", parseValue("18", true))
}

func TestEditableColour(t *testing.T) {
	doc := tree.Tree{"styles": tree.Tree{"a": "336699", "b": 12, "c": "red"}}

	hex, err := editableColour(doc, "styles.a")
	require.NoError(t, err)
	assert.Equal(t, "#336699", hex)

	hex, err = editableColour(doc, "styles.missing")
	require.NoError(t, err)
	assert.Equal(t, "#808080", hex)

	_, err = editableColour(doc, "styles.b")
	assert.Error(t, err)
	_, err = editableColour(doc, "styles.c")
	assert.Error(t, err)
}

func TestDebouncer(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	for range 5 {
		d.trigger(func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestImport(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	e.mustRun(t, "set", "styles.brandPrimary", "#336699")
	e.mustRun(t, "set", "styles.spacing", "8")

	overrides := filepath.Join(e.dir, "overrides.json")
	require.NoError(t, os.WriteFile(overrides,
		[]byte(`{"styles":{"brandPrimary":"#336699","brandSecondary":"#00ff00"},"app":{"name":"Demo"}}`), 0644))

	assert.Equal(t, "would set app.name\nwould set styles.brandSecondary\n",
		e.mustRun(t, "import", overrides, "--dry-run"))
	assert.False(t, tree.Has(e.load(t), "app.name"))

	assert.Equal(t, "imported 2 value(s)\n", e.mustRun(t, "import", overrides))
	doc := e.load(t)
	name, _ := tree.Get(doc, "app.name")
	assert.Equal(t, "Demo", name)
	assert.True(t, tree.Has(doc, "styles.spacing"))

	assert.Equal(t, "nothing to import\n", e.mustRun(t, "import", overrides))

	e.mustRun(t, "undo")
	assert.False(t, tree.Has(e.load(t), "styles.brandSecondary"))
	assert.True(t, tree.Has(e.load(t), "app.name"))
}

func TestImport_Stdin(t *testing.T) {
	e := newEnv(t, "theme.yaml")
	rootCmd.SetIn(strings.NewReader("styles:\n  border: \"#cccccc\"\n"))
	defer rootCmd.SetIn(nil)

	e.mustRun(t, "import", "-", "--format", "yaml")
	border, _ := tree.Get(e.load(t), "styles.border")
	assert.Equal(t, "#cccccc", border)
}

func TestSameValue(t *testing.T) {
	assert.True(t, sameValue(8, float64(8)))
	assert.True(t, sameValue("#fff", "#fff"))
	assert.False(t, sameValue("8", 8))
	assert.False(t, sameValue([]any{1}, []any{2}))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: unknown, built: unknown)", rootCmd.Version)
}

func TestUndo_RemovesCreatedParents(t *testing.T) {
	e := newEnv(t, "theme.toml")
	e.mustRun(t, "set", "styles.fontSize", "16")
	e.mustRun(t, "set", "layout.grid.columns", "12")
	e.mustRun(t, "set", "styles.fontSize", "18")

	e.mustRun(t, "undo")
	e.mustRun(t, "undo")

	doc := e.load(t)
	assert.False(t, tree.Has(doc, "layout"))
	size, _ := tree.Get(doc, "styles.fontSize")
	assert.EqualValues(t, 16, size)
	assert.IsType(t, int64(0), size)
}
