package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/output"
	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var setOpts struct {
	raw bool
}

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set the value at a dot path",
	Long: `Set the value at a dot path, creating intermediate mappings.

The value is read as a JSON literal when it is one (numbers, booleans, null,
lists, objects) and as a string otherwise. For settings documents, paths in
the settings schema are parsed by kind: colours are normalised, opacities
accept "50%" or "0.5", sizes accept "16" or "1.5rem".

Every change is recorded in the journal and can be reverted with undo.

Examples:
  themepanel set styles.brandPrimary '#ff8800'
  themepanel set styles.fontSize 18
  themepanel set app.name 42 --raw
  themepanel --kind settings set branding.splashLogoOpacity 80%`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var unsetCmd = &cobra.Command{
	Use:   "unset <path>",
	Short: "Remove the value at a dot path",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnset,
}

var hasCmd = &cobra.Command{
	Use:   "has <path>",
	Short: "Report whether a dot path exists",
	Long: `Print true when the path exists and false otherwise. Exits with status 1
when the path is absent, so it can be used in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: runHas,
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(hasCmd)

	setCmd.Flags().BoolVar(&setOpts.raw, "raw", false,
		"Store the value as a string without parsing")
}

func runSet(cmd *cobra.Command, args []string) error {
	path, raw := args[0], args[1]

	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}

	value, err := valueFor(doc, path, raw, setOpts.raw)
	if err != nil {
		return err
	}

	if _, err := commit(doc, docPath, store.OpSet, path, value); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", path, output.Scalar(value))
	return err
}

func runUnset(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}

	if !tree.Has(doc, path) {
		return notFound(doc, path)
	}

	if _, err := commit(doc, docPath, store.OpDelete, path, nil); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "unset %s\n", path)
	return err
}

func runHas(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument()
	if err != nil {
		return err
	}

	found := tree.Has(doc, args[0])
	fmt.Fprintln(cmd.OutOrStdout(), found)
	if !found {
		return fmt.Errorf("%w: %s", errNotFound, args[0])
	}
	return nil
}
