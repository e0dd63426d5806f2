package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/themepanel/internal/store"
)

// FormatJournal writes journal entries newest first, one per line, with
// times relative to now.
func FormatJournal(w io.Writer, entries []store.Entry, now time.Time) error {
	for i := len(entries) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, journalLine(entries[i], now)); err != nil {
			return err
		}
	}
	return nil
}

func journalLine(e store.Entry, now time.Time) string {
	when := humanize.RelTime(e.Time(), now, "ago", "from now")

	var change string
	switch e.Op {
	case store.OpDelete:
		change = fmt.Sprintf("unset %s (was %s)", e.Path, oldValue(e))
	default:
		change = fmt.Sprintf("set %s = %s (was %s)", e.Path, Scalar(e.New), oldValue(e))
	}
	if e.Reverts != "" {
		change += " [undo " + e.Reverts + "]"
	}

	return fmt.Sprintf("%s  %-14s %s", e.ID, when, change)
}

func oldValue(e store.Entry) string {
	if !e.HadOld {
		return "unset"
	}
	if e.Base != "" {
		return e.Base + " = " + Scalar(e.Old)
	}
	return Scalar(e.Old)
}
