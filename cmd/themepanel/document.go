package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/themepanel/internal/config"
	"github.com/jmylchreest/themepanel/internal/settings"
	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/theme"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var (
	errNotFound        = errors.New("path not found")
	errJournalDisabled = errors.New("journal is disabled")
)

// documentFile returns the document selected by flags and config.
func documentFile() (string, error) {
	return cfg.DocumentFile(globalOpts.documentPath)
}

// loadDocument reads the selected document. A missing file is empty.
func loadDocument() (tree.Tree, string, error) {
	path, err := documentFile()
	if err != nil {
		return nil, "", err
	}
	doc, err := store.LoadDocument(path)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("loaded document", "path", path, "leaves", len(tree.Leaves(doc)))
	return doc, path, nil
}

// resolveDocument merges the bases named by extends underneath doc.
// Bases are looked up next to the document, then in the bundled set.
func resolveDocument(doc tree.Tree, path string) tree.Tree {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return theme.ResolveExtends(doc, filepath.Dir(abs), map[string]bool{abs: true})
}

// openJournal returns the journal for path, or nil when disabled.
func openJournal(path string) *store.Journal {
	file := cfg.JournalFile(path)
	if file == "" {
		return nil
	}
	return store.NewJournal(file)
}

// change is one edit to apply through commitChanges.
type change struct {
	op    store.Op
	path  string
	value any
}

// commit records op at path on doc, saves the result and journals it.
func commit(doc tree.Tree, docPath string, op store.Op, path string, value any) (tree.Tree, error) {
	return commitChanges(doc, docPath, []change{{op: op, path: path, value: value}})
}

// commitChanges applies changes in order, saves the document once and
// journals one entry per change.
func commitChanges(doc tree.Tree, docPath string, changes []change) (tree.Tree, error) {
	next := doc
	entries := make([]store.Entry, 0, len(changes))
	for _, c := range changes {
		entry := store.Change(next, c.op, c.path, c.value)
		next = entry.Apply(next)
		entries = append(entries, entry)
	}

	if err := store.SaveDocument(docPath, next); err != nil {
		return nil, err
	}

	if j := openJournal(docPath); j != nil {
		for _, entry := range entries {
			if _, err := j.Append(entry); err != nil {
				return next, fmt.Errorf("document saved but journal failed: %w", err)
			}
		}
	}

	logger.Debug("committed changes", "count", len(changes), "document", docPath)
	return next, nil
}

// parseValue reads raw as a JSON literal when it is one, otherwise as a string.
func parseValue(raw string, forceString bool) any {
	if forceString {
		return raw
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	if _, err := dec.Token(); err != io.EOF {
		return raw
	}
	return tree.Normalize(v)
}

// valueFor turns raw input into the value stored at path. Settings
// documents parse it according to their schema.
func valueFor(doc tree.Tree, path, raw string, forceString bool) (any, error) {
	if cfg.Document.Kind != config.KindSettings || forceString {
		return parseValue(raw, forceString), nil
	}
	if _, ok := settings.RuleFor(path); !ok {
		return parseValue(raw, false), nil
	}

	next, err := settings.Apply(doc, path, raw)
	if err != nil {
		return nil, err
	}
	v, _ := tree.Get(next, path)
	return v, nil
}

// notFound builds the error for a missing path, with suggestions.
func notFound(doc tree.Tree, path string) error {
	suggestions := tree.Suggest(doc, path, 3)
	if len(suggestions) == 0 {
		return fmt.Errorf("%w: %s", errNotFound, path)
	}
	return fmt.Errorf("%w: %s (did you mean %s?)", errNotFound, path, strings.Join(suggestions, ", "))
}
