package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/theme"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var cssOpts struct {
	out        string
	selector   string
	prefix     string
	root       string
	noVariants bool
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Export the theme as CSS custom properties",
	Long: `Export the theme as a single CSS rule of custom properties.

Each leaf under the CSS root becomes a property: styles.brandPrimary becomes
--brand-primary. Brand colours get derived *Light and *Dark variants unless
the document already defines them. Numbers get the unit configured for their
key suffix, e.g. fontSize 16 becomes 16px.

Examples:
  themepanel css
  themepanel css --out public/theme.css
  themepanel css --selector '[data-theme=midnight]' --prefix tp`,
	Args: cobra.NoArgs,
	RunE: runCSS,
}

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.Flags().StringVarP(&cssOpts.out, "out", "o", "",
		"Write to file instead of stdout")
	cssCmd.Flags().StringVar(&cssOpts.selector, "selector", "",
		"CSS selector (default from config, :root)")
	cssCmd.Flags().StringVar(&cssOpts.prefix, "prefix", "",
		"Custom property prefix (default from config)")
	cssCmd.Flags().StringVar(&cssOpts.root, "root", "",
		"Subtree to export (default from config, styles)")
	cssCmd.Flags().BoolVar(&cssOpts.noVariants, "no-variants", false,
		"Do not derive light/dark brand variants")
}

func runCSS(cmd *cobra.Command, args []string) error {
	doc, path, err := loadDocument()
	if err != nil {
		return err
	}
	return writeCSS(cmd.OutOrStdout(), cssOpts.out, renderCSS(doc, path))
}

// cssOptions applies command flags over the configured options.
func cssOptions() (theme.CSSOptions, theme.VariantOptions) {
	opts := cfg.CSSOptions()
	variants := cfg.VariantOptions()
	if cssOpts.selector != "" {
		opts.Selector = cssOpts.selector
	}
	if cssOpts.prefix != "" {
		opts.Prefix = cssOpts.prefix
	}
	if cssOpts.root != "" {
		opts.Root = cssOpts.root
		variants.Root = cssOpts.root
	}
	return opts, variants
}

// renderCSS resolves extends, derives variants and generates the stylesheet.
func renderCSS(doc tree.Tree, path string) string {
	opts, variants := cssOptions()
	resolved := resolveDocument(doc, path)
	if !cssOpts.noVariants {
		resolved = theme.DeriveVariants(resolved, variants)
	}
	return theme.GenerateCSS(resolved, opts)
}

// writeCSS writes css to out, or to w when out is empty.
func writeCSS(w io.Writer, out, css string) error {
	if out == "" {
		_, err := io.WriteString(w, css)
		return err
	}
	if err := store.WriteFileAtomic(out, []byte(css), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.Info("wrote stylesheet", "path", out)
	return nil
}
