package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// EmbeddedThemes contains all bundled theme documents.
//
//go:embed themes/*.yaml
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// MobileThemeName is the bundled mobile app settings document.
const MobileThemeName = "mobile"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"default", "midnight", "mobile"}

// GetEmbeddedSource returns the raw YAML of a bundled theme.
func GetEmbeddedSource(name string) ([]byte, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, false
	}
	return data, true
}

// GetEmbeddedTheme returns a bundled theme document. Its extends key is
// left unresolved; use Loader.LoadTheme for the merged result.
func GetEmbeddedTheme(name string) (tree.Tree, bool) {
	data, ok := GetEmbeddedSource(name)
	if !ok {
		return nil, false
	}
	doc, err := store.Decode(data, store.FormatYAML)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// ListEmbeddedThemes returns names of all embedded themes.
func ListEmbeddedThemes() []string {
	var themes []string

	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".yaml" {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}
	return themes
}

// IsEmbeddedTheme checks if a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, found := GetEmbeddedSource(name)
	return found
}
