package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/output"
	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var logOpts struct {
	limit int
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent changes to the document",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the most recent change",
	Long: `Revert the most recent change that has not been undone yet. The revert
is itself journaled, so repeated undo walks further back through history.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(undoCmd)

	logCmd.Flags().IntVarP(&logOpts.limit, "limit", "n", 10,
		"Number of entries to show (0 = all)")
}

func runLog(cmd *cobra.Command, args []string) error {
	docPath, err := documentFile()
	if err != nil {
		return err
	}
	j := openJournal(docPath)
	if j == nil {
		return errJournalDisabled
	}

	entries, err := j.Load()
	if err != nil {
		return err
	}
	if logOpts.limit > 0 && len(entries) > logOpts.limit {
		entries = entries[len(entries)-logOpts.limit:]
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no changes recorded")
		return err
	}

	return output.FormatJournal(cmd.OutOrStdout(), entries, time.Now())
}

func runUndo(cmd *cobra.Command, args []string) error {
	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}
	j := openJournal(docPath)
	if j == nil {
		return errJournalDisabled
	}

	_, undone, err := j.Undo(doc, func(next tree.Tree) error {
		return store.SaveDocument(docPath, next)
	})
	if err != nil {
		if errors.Is(err, store.ErrJournalEmpty) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "nothing to undo")
			return err
		}
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "reverted %s %s\n", undone.Op, undone.Path)
	return err
}
