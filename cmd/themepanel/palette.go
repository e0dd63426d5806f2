package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/output"
	"github.com/jmylchreest/themepanel/internal/theme"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var paletteCmd = &cobra.Command{
	Use:   "palette [prefix]",
	Short: "Show colour swatches for the document",
	Long: `Show every hex colour in the document as a swatch with its path and HSL
value. Extends are applied and brand variants derived first, so the palette
matches what css exports.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	doc, path, err := loadDocument()
	if err != nil {
		return err
	}

	resolved := theme.DeriveVariants(resolveDocument(doc, path), cfg.VariantOptions())
	leaves := tree.Leaves(resolved)
	if len(args) == 1 {
		leaves = underPrefix(leaves, args[0])
	}

	w := cmd.OutOrStdout()
	if len(output.ColourLeaves(leaves)) == 0 {
		_, err := fmt.Fprintln(w, "no colours found")
		return err
	}
	_, err = io.WriteString(w, output.Swatches(leaves))
	return err
}
