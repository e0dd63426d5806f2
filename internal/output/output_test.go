package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

func testDocument() tree.Tree {
	return tree.Tree{
		"styles": map[string]any{
			"brandPrimary": "#336699",
			"fontSize":     16,
			"opacity":      0.6,
		},
		"features": map[string]any{
			"darkMode": true,
			"tags":     []any{"a", "b"},
			"note":     nil,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("other", opts))
}

func TestPlainFormatter_Scalar(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(DefaultFormatterOptions())

	require.NoError(t, f.FormatValue(&buf, "#336699"))
	require.NoError(t, f.FormatValue(&buf, 0.6))
	require.NoError(t, f.FormatValue(&buf, 16))
	require.NoError(t, f.FormatValue(&buf, nil))

	assert.Equal(t, "#336699\n0.6\n16\nnull\n", buf.String())
}

func TestPlainFormatter_Subtree(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(DefaultFormatterOptions())

	sub, ok := tree.Sub(testDocument(), "features")
	require.True(t, ok)
	require.NoError(t, f.FormatValue(&buf, sub))

	assert.Equal(t, "darkMode = true\nnote = null\ntags = [\"a\",\"b\"]\n", buf.String())
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}:{{.Path}}={{scalar .Value}}"
	f := NewPlainFormatter(opts)

	leaves := tree.Leaves(testDocument()["styles"].(map[string]any))
	require.NoError(t, f.FormatLeaves(&buf, leaves))

	assert.Equal(t, "1:brandPrimary=#336699\n2:fontSize=16\n3:opacity=0.6\n", buf.String())
}

func TestPlainFormatter_BadTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultFormatterOptions()
	opts.Template = "{{.Path"
	f := NewPlainFormatter(opts)

	require.NoError(t, f.FormatLeaves(&buf, []tree.Leaf{{Path: "a", Value: "b"}}))
	assert.Equal(t, "a = b\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(DefaultFormatterOptions())

	require.NoError(t, f.FormatLeaves(&buf, tree.Leaves(testDocument())))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 6)
	assert.Equal(t, "features.darkMode", decoded[0]["path"])
	assert.Equal(t, true, decoded[0]["value"])

	buf.Reset()
	require.NoError(t, f.FormatLeaves(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(DefaultFormatterOptions())

	require.NoError(t, f.FormatValue(&buf, testDocument()["styles"]))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "#336699", decoded["brandPrimary"])
	assert.Equal(t, 16, decoded["fontSize"])
}

func TestFormatJournal(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	entries := []store.Entry{
		{ID: "01A", At: now.Add(-2 * time.Hour).Unix(), Op: store.OpSet, Path: "styles.brandPrimary", Old: "#336699", HadOld: true, New: "#ff0000"},
		{ID: "01B", At: now.Add(-time.Minute).Unix(), Op: store.OpDelete, Path: "styles.border", Old: "#cccccc", HadOld: true},
		{ID: "01C", At: now.Unix(), Op: store.OpSet, Path: "styles.border", New: "#cccccc", Reverts: "01B"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatJournal(&buf, entries, now))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "01C"))
	assert.Contains(t, lines[0], "now")
	assert.Contains(t, lines[0], "set styles.border = #cccccc (was unset) [undo 01B]")

	assert.Contains(t, lines[1], "1 minute ago")
	assert.Contains(t, lines[1], "unset styles.border (was #cccccc)")

	assert.Contains(t, lines[2], "2 hours ago")
	assert.Contains(t, lines[2], "set styles.brandPrimary = #ff0000 (was #336699)")
}

func TestFormatJournal_Base(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	entries := []store.Entry{
		{ID: "01A", At: now.Unix(), Op: store.OpSet, Path: "styles.k", Base: "styles", Old: "flat", HadOld: true, New: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatJournal(&buf, entries, now))
	assert.Contains(t, buf.String(), "set styles.k = 1 (was styles = flat)")
}

func TestSwatches(t *testing.T) {
	out := Swatches(tree.Leaves(testDocument()))

	assert.Contains(t, out, "#336699")
	assert.Contains(t, out, "styles.brandPrimary")
	assert.Contains(t, out, "hsl(210, 50%, 40%)")
	assert.NotContains(t, out, "fontSize")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestColourLeaves(t *testing.T) {
	leaves := []tree.Leaf{
		{Path: "a", Value: "#336699"},
		{Path: "b", Value: "336699"},
		{Path: "c", Value: "#33669"},
		{Path: "d", Value: 12},
	}
	got := ColourLeaves(leaves)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Path)
}
