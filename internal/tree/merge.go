package tree

// Merge returns a deep copy of base with overlay applied on top. Mappings
// present on both sides are merged key by key; any other overlay value
// replaces the base value. Neither input is modified.
func Merge(base, overlay Tree) Tree {
	out := Clone(base)
	for k, v := range Clone(overlay) {
		bm, bok := out[k].(map[string]any)
		om, ook := v.(map[string]any)
		if bok && ook {
			out[k] = Merge(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}
