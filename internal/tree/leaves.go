package tree

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
)

// Leaf is a non-mapping value together with its dot-path.
type Leaf struct {
	Path  string `json:"path" yaml:"path"`
	Value any    `json:"value" yaml:"value"`
}

// Lookup returns the value at path when it exists and has type T.
func Lookup[T any](root Tree, path string) (T, bool) {
	var zero T
	v, ok := Get(root, path)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Sub returns the mapping at path. An empty path returns root itself.
func Sub(root Tree, path string) (Tree, bool) {
	if path == "" {
		return root, root != nil
	}
	return Lookup[map[string]any](root, path)
}

// Leaves lists every scalar or list value under root, sorted by path.
// Empty mappings contribute nothing. Mappings already visited are skipped,
// so cyclic documents terminate.
func Leaves(root Tree) []Leaf {
	var leaves []Leaf
	seen := make(map[nodeID]bool)

	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		if node == nil || seen[mapID(node)] {
			return
		}
		seen[mapID(node)] = true
		for k, v := range node {
			path := k
			if prefix != "" {
				path = prefix + Separator + k
			}
			if child, ok := v.(map[string]any); ok {
				walk(path, child)
				continue
			}
			leaves = append(leaves, Leaf{Path: path, Value: v})
		}
	}
	walk("", root)

	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].Path < leaves[j].Path
	})
	return leaves
}

// Suggest returns up to n existing leaf paths that fuzzily match path,
// best match first.
func Suggest(root Tree, path string, n int) []string {
	leaves := Leaves(root)
	if len(leaves) == 0 || n <= 0 {
		return nil
	}

	paths := make([]string, len(leaves))
	for i, l := range leaves {
		paths[i] = l.Path
	}

	matches := fuzzy.Find(path, paths)
	out := make([]string, 0, min(n, len(matches)))
	for _, m := range matches {
		if len(out) == n {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Normalize converts decoded documents into Tree form: mappings with
// non-string keys (as produced by some YAML decoders) get their keys
// formatted as strings, recursively through mappings and lists. A
// json.Number becomes an int when it is integral and a float64 otherwise.
// The input must be acyclic.
func Normalize(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[k] = Normalize(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[fmt.Sprint(k)] = Normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			out[i] = Normalize(child)
		}
		return out
	default:
		return v
	}
}

// NormalizeTree is Normalize for a whole document. A nil document becomes
// an empty one.
func NormalizeTree(root map[string]any) Tree {
	if root == nil {
		return make(Tree)
	}
	return Normalize(root).(map[string]any)
}
