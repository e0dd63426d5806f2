package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var importOpts struct {
	format string
	dryRun bool
}

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Merge another document into the document",
	Long: `Deep-merge a JSON, YAML or TOML document into the current document.
Values in the imported document win; everything else is kept. Each changed
leaf is journaled separately, so undo reverts an import one value at a time.

Reads stdin when no file is given or the file is "-"; --format is then
required unless it is JSON.

Examples:
  themepanel import brand-overrides.yaml
  curl -s https://cms.example.com/theme.json | themepanel import
  themepanel import tokens.toml --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importOpts.format, "format", "",
		"Input format (json, yaml, toml; default from file extension or json)")
	importCmd.Flags().BoolVar(&importOpts.dryRun, "dry-run", false,
		"Print the changes without saving")
}

func runImport(cmd *cobra.Command, args []string) error {
	incoming, err := readImport(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}

	changes := importChanges(doc, incoming)
	w := cmd.OutOrStdout()
	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "nothing to import")
		return err
	}

	if importOpts.dryRun {
		for _, c := range changes {
			fmt.Fprintf(w, "would set %s\n", c.path)
		}
		return nil
	}

	if _, err := commitChanges(doc, docPath, changes); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "imported %d value(s)\n", len(changes))
	return err
}

func readImport(stdin io.Reader, args []string) (tree.Tree, error) {
	format := store.Format(importOpts.format)

	if len(args) == 0 || args[0] == "-" {
		if format == "" {
			format = store.FormatJSON
		}
		return store.ReadDocument(stdin, format)
	}

	if format == "" {
		f, err := store.FormatFromPath(args[0])
		if err != nil {
			return nil, err
		}
		format = f
	}

	file, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return store.ReadDocument(file, format)
}

// importChanges lists a set for every leaf of incoming that differs from doc.
func importChanges(doc, incoming tree.Tree) []change {
	var changes []change
	for _, l := range tree.Leaves(incoming) {
		if current, ok := tree.Get(doc, l.Path); ok && sameValue(current, l.Value) {
			continue
		}
		changes = append(changes, change{op: store.OpSet, path: l.Path, value: l.Value})
	}
	return changes
}

// sameValue compares by JSON encoding so an int from YAML equals the same
// float64 from JSON.
func sameValue(a, b any) bool {
	ea, errA := json.Marshal(a)
	eb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ea, eb)
}
