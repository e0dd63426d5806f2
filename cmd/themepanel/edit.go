package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
	"github.com/jmylchreest/themepanel/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Edit a colour in the terminal colour picker",
	Long: `Open the colour at a dot path in an interactive HSL picker.

Use ↑/↓ to choose hue, saturation or lightness and ←/→ to adjust it (H/L for
bigger steps). Tab switches to typing a hex value. Enter saves the colour to
the document, esc leaves it unchanged. Step sizes come from the [editor]
section of the config.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}

	initial, err := editableColour(doc, path)
	if err != nil {
		return err
	}

	value, ok, err := tui.Run(initial, tui.Options{
		Path:    path,
		HueStep: cfg.Editor.HueStep,
		Step:    cfg.Editor.Step,
	})
	if err != nil {
		return err
	}
	if !ok || value == initial {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
		return err
	}

	if _, err := commit(doc, docPath, store.OpSet, path, value); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", path, value)
	return err
}

// editableColour returns the colour at path. A missing path starts from the
// fallback grey; a value that is not a colour cannot be edited.
func editableColour(doc tree.Tree, path string) (string, error) {
	v, ok := tree.Get(doc, path)
	if !ok || v == nil {
		return colour.Fallback.Hex(), nil
	}

	s, isString := v.(string)
	if !isString {
		return "", fmt.Errorf("%s holds %T, not a colour", path, v)
	}
	hex := colour.NormalizeHex(s)
	if !colour.IsValidHex(hex) {
		return "", fmt.Errorf("%s holds %q, not a hex colour", path, s)
	}
	return hex, nil
}
