package theme

import (
	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/tree"
)

// Variant key suffixes.
const (
	LightSuffix = "Light"
	DarkSuffix  = "Dark"
)

// VariantOptions selects the colours that get light and dark variants.
type VariantOptions struct {
	Root       string   // Subtree holding the keys, e.g. "styles"
	Keys       []string // Base colour keys, e.g. "brandPrimary"
	LightDelta float64  // Lightness added for <key>Light, in percentage points
	DarkDelta  float64  // Lightness removed for <key>Dark
}

// DefaultVariantOptions returns the options used when nothing is configured.
func DefaultVariantOptions() VariantOptions {
	return VariantOptions{
		Root:       "styles",
		Keys:       []string{"brandPrimary", "brandSecondary"},
		LightDelta: 15,
		DarkDelta:  15,
	}
}

// DeriveVariants returns a copy of doc in which every configured base key
// holding a valid hex colour has <key>Light and <key>Dark siblings. Values
// already present are kept, so hand-tuned variants win.
func DeriveVariants(doc tree.Tree, opts VariantOptions) tree.Tree {
	out := tree.Clone(doc)

	for _, key := range opts.Keys {
		path := tree.Join(opts.Root, key)
		base, ok := tree.Lookup[string](out, path)
		if !ok {
			continue
		}
		hex := colour.NormalizeHex(base)
		if !colour.IsValidHex(hex) {
			continue
		}

		if light := path + LightSuffix; !tree.Has(out, light) {
			out = tree.Set(out, light, colour.AdjustLightness(hex, opts.LightDelta))
		}
		if dark := path + DarkSuffix; !tree.Has(out, dark) {
			out = tree.Set(out, dark, colour.AdjustLightness(hex, -opts.DarkDelta))
		}
	}

	return out
}
