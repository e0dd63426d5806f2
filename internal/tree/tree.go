// Package tree reads and writes values in nested configuration documents
// addressed by dot-separated paths such as "styles.brandPrimaryLight".
//
// A document is a Tree whose values are scalars, lists ([]any) or further
// mappings (map[string]any), the shape produced by decoding JSON, YAML or
// TOML into an `any`. Set and Delete never modify their input: they work on a
// deep copy and return it. No operation in this package fails; a path that
// cannot be resolved is reported as absent.
package tree

import (
	"reflect"
	"strings"
	"unsafe"
)

// Tree is a nested configuration document.
type Tree = map[string]any

// Separator joins path segments.
const Separator = "."

// Split breaks a dot-path into its segments.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join builds a dot-path from segments, skipping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// Get returns the value at path and whether it exists.
// A missing, nil or non-mapping intermediate node means the value is absent.
func Get(root Tree, path string) (any, bool) {
	keys := Split(path)
	node := root
	for i, key := range keys {
		if node == nil {
			return nil, false
		}
		v, ok := node[key]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	return nil, false
}

// Has reports whether a value exists at path.
func Has(root Tree, path string) bool {
	_, ok := Get(root, path)
	return ok
}

// Set returns a copy of root with value stored at path. Missing intermediate
// mappings are created; intermediate scalars are replaced by empty mappings.
func Set(root Tree, path string, value any) Tree {
	out, c := cloneTree(root)
	keys := Split(path)
	node := out
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(map[string]any)
		if !ok || next == nil {
			next = make(Tree)
			node[key] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = c.value(value)
	return out
}

// Delete returns a copy of root with the value at path removed. When any
// intermediate node is missing the copy is returned unchanged.
func Delete(root Tree, path string) Tree {
	out := Clone(root)
	keys := Split(path)
	node := out
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(map[string]any)
		if !ok || next == nil {
			return out
		}
		node = next
	}
	delete(node, keys[len(keys)-1])
	return out
}

// Clone returns a deep copy of root sharing no mappings or lists with it.
// Nodes reachable more than once, including through a cycle, are copied once
// and the copy keeps the same shape.
func Clone(root Tree) Tree {
	out, _ := cloneTree(root)
	return out
}

// cloneTree copies root and returns the cloner so later values copied with
// it map nodes of root onto the same copies.
func cloneTree(root Tree) (Tree, *cloner) {
	out := make(Tree, len(root))
	c := &cloner{seen: make(map[nodeID]any)}
	if root != nil {
		c.seen[mapID(root)] = out
	}
	for k, v := range root {
		out[k] = c.value(v)
	}
	return out, c
}

// nodeID identifies a mapping or list by its backing storage.
type nodeID struct {
	ptr unsafe.Pointer
	len int
}

func mapID(m map[string]any) nodeID {
	return nodeID{ptr: reflect.ValueOf(m).UnsafePointer(), len: -1}
}

type cloner struct {
	seen map[nodeID]any
}

func (c *cloner) value(v any) any {
	switch n := v.(type) {
	case map[string]any:
		if n == nil {
			return n
		}
		id := mapID(n)
		if done, ok := c.seen[id]; ok {
			return done
		}
		out := make(map[string]any, len(n))
		c.seen[id] = out
		for k, child := range n {
			out[k] = c.value(child)
		}
		return out

	case []any:
		if n == nil {
			return n
		}
		out := make([]any, len(n))
		if len(n) > 0 {
			id := nodeID{ptr: unsafe.Pointer(&n[0]), len: len(n)}
			if done, ok := c.seen[id]; ok {
				return done
			}
			c.seen[id] = out
		}
		for i, child := range n {
			out[i] = c.value(child)
		}
		return out

	default:
		return v
	}
}
