package theme

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// ExtendsKey names the base theme(s) a document builds on. The value is a
// theme name or a list of names, applied in order.
const ExtendsKey = "extends"

// documentExts are the extensions tried when resolving a theme by name.
var documentExts = []string{".yaml", ".yml", ".json", ".toml"}

// Theme is a resolved theme document with metadata.
type Theme struct {
	Name      string    // Theme name (file name without extension)
	Path      string    // Full path to the document (empty for bundled)
	Doc       tree.Tree // Document with extends resolved
	ModTime   time.Time // Last modification time
	IsBundled bool      // True if loaded from the embedded set
}

// NewTheme loads a theme document from path, resolving extends relative to
// the document's directory. A document may extend a bundled theme of its
// own name to override parts of it.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	doc, err := store.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		Doc:     ResolveExtends(doc, filepath.Dir(path), map[string]bool{path: true}),
		ModTime: info.ModTime(),
	}, nil
}

// NewBundledTheme resolves an embedded theme. The second result is false
// when no such theme is bundled.
func NewBundledTheme(name string) (*Theme, bool) {
	doc, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:      name,
		Doc:       ResolveExtends(doc, "", map[string]bool{"embedded:" + name: true}),
		IsBundled: true,
	}, true
}

// NewDefaultTheme returns the embedded default theme.
func NewDefaultTheme() *Theme {
	t, _ := NewBundledTheme(DefaultThemeName)
	return t
}

// ResolveExtends merges the themes named by doc's extends key underneath
// doc and drops the key. Bases are looked up in baseDir first, then in the
// bundled set. The seen map prevents circular extends; a base that cannot be
// found or would loop is skipped.
func ResolveExtends(doc tree.Tree, baseDir string, seen map[string]bool) tree.Tree {
	if seen == nil {
		seen = make(map[string]bool)
	}

	if _, ok := doc[ExtendsKey]; !ok {
		return doc
	}
	names := extendsNames(doc[ExtendsKey])

	merged := make(tree.Tree)
	for _, name := range names {
		base, key, dir, ok := findBase(name, baseDir, seen)
		if !ok {
			slog.Warn("extended theme not found or circular", "theme", name)
			continue
		}
		seen[key] = true
		merged = tree.Merge(merged, ResolveExtends(base, dir, seen))
	}

	return tree.Merge(merged, tree.Delete(doc, ExtendsKey))
}

// findBase locates a base theme by name, skipping candidates already in
// seen. It returns the document, a key identifying it for cycle detection
// and the directory its own extends are relative to. A user theme that
// extends its own name therefore reaches the bundled theme of that name.
func findBase(name, baseDir string, seen map[string]bool) (tree.Tree, string, string, bool) {
	if baseDir != "" {
		for _, ext := range documentExts {
			path := filepath.Join(baseDir, name+ext)
			if seen[path] {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			doc, err := store.LoadDocument(path)
			if err != nil {
				slog.Warn("failed to load extended theme", "path", path, "error", err)
				continue
			}
			return doc, path, baseDir, true
		}
	}

	key := "embedded:" + name
	if seen[key] {
		return nil, "", "", false
	}
	if doc, ok := GetEmbeddedTheme(name); ok {
		return doc, key, "", true
	}
	return nil, "", "", false
}

func extendsNames(v any) []string {
	switch n := v.(type) {
	case string:
		if n == "" {
			return nil
		}
		return []string{n}
	case []any:
		var names []string
		for _, item := range n {
			if s, ok := item.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		return names
	default:
		return nil
	}
}

// Reload re-reads the theme from disk.
// Returns true if the resolved document changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}

	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}

	changed := !equalDocs(t.Doc, fresh.Doc)
	t.Doc = fresh.Doc
	t.ModTime = fresh.ModTime
	return changed, nil
}

func equalDocs(a, b tree.Tree) bool {
	la, lb := tree.Leaves(a), tree.Leaves(b)
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i].Path != lb[i].Path || !equalValues(la[i].Value, lb[i].Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	la, aok := a.([]any)
	lb, bok := b.([]any)
	if aok != bok {
		return false
	}
	if !aok {
		return a == b
	}
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if !equalValues(la[i], lb[i]) {
			return false
		}
	}
	return true
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	IsDefault bool   `json:"is_default" yaml:"is_default"`
	IsBundled bool   `json:"is_bundled" yaml:"is_bundled"`
}

// ListAvailableThemes lists bundled themes followed by user themes in dir.
// A user theme with a bundled name overrides the bundled entry.
func ListAvailableThemes(dir string) ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if dir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if _, err := store.FormatFromPath(entry.Name()); err != nil {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(ext)]
		info := ThemeInfo{
			Name:      name,
			Path:      filepath.Join(dir, entry.Name()),
			IsDefault: name == DefaultThemeName,
		}
		if i, ok := index[name]; ok {
			themes[i] = info
			continue
		}
		index[name] = len(themes)
		themes = append(themes, info)
	}

	return themes, nil
}
