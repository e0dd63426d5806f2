package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/themepanel/internal/tree"
)

// SchemaVersion is the current journal schema version.
const SchemaVersion = 1

// ErrJournalEmpty is returned when there is no entry left to undo.
var ErrJournalEmpty = errors.New("journal has nothing to undo")

// Op is the kind of edit recorded in the journal.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Entry is one recorded edit.
type Entry struct {
	ID      string `json:"id"`
	At      int64  `json:"at"`
	Op      Op     `json:"op"`
	Path    string `json:"path"`
	Base    string `json:"base,omitempty"` // ancestor of Path a set created or replaced
	Old     any    `json:"old,omitempty"`
	HadOld  bool   `json:"had_old"`
	New     any    `json:"new,omitempty"`
	Reverts string `json:"reverts,omitempty"` // ID of the entry this one undoes
}

// Time returns when the entry was recorded.
func (e Entry) Time() time.Time {
	return time.Unix(e.At, 0)
}

// Change describes applying op at path to before, capturing the previous
// value so the edit can be reverted. When a set has to create or replace an
// intermediate node, Old holds that node's previous state instead.
func Change(before tree.Tree, op Op, path string, value any) Entry {
	e := Entry{Op: op, Path: path}
	if op == OpSet {
		e.New = value
		e.Base = createdBase(before, path)
	}
	e.Old, e.HadOld = tree.Get(before, e.RevertPath())
	return e
}

// RevertPath is the path an undo restores: Base when set, otherwise Path.
func (e Entry) RevertPath() string {
	if e.Base != "" {
		return e.Base
	}
	return e.Path
}

// createdBase returns the shortest proper prefix of path that is not a
// mapping in doc, or "" when every intermediate already exists.
func createdBase(doc tree.Tree, path string) string {
	keys := tree.Split(path)
	for i := 1; i < len(keys); i++ {
		prefix := strings.Join(keys[:i], tree.Separator)
		v, ok := tree.Get(doc, prefix)
		if _, isMap := v.(map[string]any); !ok || !isMap {
			return prefix
		}
	}
	return ""
}

// Apply performs the edit described by e on doc and returns the new document.
func (e Entry) Apply(doc tree.Tree) tree.Tree {
	if e.Op == OpDelete {
		return tree.Delete(doc, e.Path)
	}
	return tree.Set(doc, e.Path, e.New)
}

// schemaHeader is the first line of the journal file.
type schemaHeader struct {
	SchemaVersion int   `json:"themepanel_journal_version"`
	CreatedAt     int64 `json:"created_at"`
}

// Journal is an append-only JSONL log of document edits.
type Journal struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewJournal creates a journal backed by path. The file is created on the
// first append.
func NewJournal(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Append records e, assigning its ID and timestamp.
func (j *Journal) Append(e Entry) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.appendLocked(e)
}

func (j *Journal) appendLocked(e Entry) (Entry, error) {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Entry{}, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(j.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to open journal %s: %w", j.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Entry{}, err
	}

	now := j.now()
	if info.Size() == 0 {
		header, err := json.Marshal(schemaHeader{SchemaVersion: SchemaVersion, CreatedAt: now.Unix()})
		if err != nil {
			return Entry{}, err
		}
		if _, err := file.Write(append(header, '\n')); err != nil {
			return Entry{}, err
		}
	}

	e.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	e.At = now.Unix()

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, err
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return Entry{}, err
	}
	return e, file.Sync()
}

// Load reads all entries, oldest first. A missing journal has no entries.
// Malformed lines are skipped.
func (j *Journal) Load() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.loadLocked()
}

func (j *Journal) loadLocked() ([]Entry, error) {
	file, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.SchemaVersion > 0 {
				if header.SchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported journal version %d (max: %d)",
						header.SchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		e, err := decodeEntry(line)
		if err != nil || e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("error reading journal: %w", err)
	}
	return entries, nil
}

// decodeEntry reads one journal line, keeping integers as ints so a revert
// writes back the same type the document held.
func decodeEntry(line []byte) (Entry, error) {
	var e Entry
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	if err := dec.Decode(&e); err != nil {
		return Entry{}, err
	}
	e.Old = tree.Normalize(e.Old)
	e.New = tree.Normalize(e.New)
	return e, nil
}

// Pending returns the entry the next Undo would revert: the newest edit
// that is neither an undo itself nor already undone.
func Pending(entries []Entry) (Entry, bool) {
	reverted := make(map[string]bool)
	for _, e := range entries {
		if e.Reverts != "" {
			reverted[e.Reverts] = true
		}
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Reverts == "" && !reverted[e.ID] {
			return e, true
		}
	}
	return Entry{}, false
}

// Undo reverts the pending edit on doc and returns the reverted document
// together with the entry that was undone. When save is not nil it is called
// with the reverted document first; the inverse edit is only recorded once
// save succeeds.
func (j *Journal) Undo(doc tree.Tree, save func(tree.Tree) error) (tree.Tree, Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.loadLocked()
	if err != nil {
		return nil, Entry{}, err
	}

	target, ok := Pending(entries)
	if !ok {
		return nil, Entry{}, ErrJournalEmpty
	}

	at := target.RevertPath()
	inverse := Change(doc, OpDelete, at, nil)
	if target.HadOld {
		inverse = Change(doc, OpSet, at, target.Old)
	}
	inverse.Reverts = target.ID
	next := inverse.Apply(doc)

	if save != nil {
		if err := save(next); err != nil {
			return nil, Entry{}, err
		}
	}
	if _, err := j.appendLocked(inverse); err != nil {
		return next, target, fmt.Errorf("document reverted but journal failed: %w", err)
	}
	return next, target, nil
}
