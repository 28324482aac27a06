package timesheet

import "time"

// =============================================================================
// ENTRY BOOK - Unique-by-(date, project) entry collection
// =============================================================================

type entryKey struct {
	date      Date
	projectID string
}

// EntryBook holds the day entries of one session. Uniqueness of
// (date, project) is structural: an index map locates the slot for each key,
// so a duplicate insert is impossible rather than merely forbidden.
// Iteration order is stable insertion order.
//
// EntryBook is not safe for concurrent use; the owning Session serializes
// access.
type EntryBook struct {
	entries []DayEntry
	index   map[entryKey]int
}

func NewEntryBook() *EntryBook {
	return &EntryBook{index: make(map[entryKey]int)}
}

// Upsert validates the entry, then replaces the record with matching
// (date, project) in place or appends a new one. Idempotent: applying the
// same entry twice leaves a single record equal to the input.
func (b *EntryBook) Upsert(entry DayEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	k := entryKey{date: entry.Date, projectID: entry.ProjectID}
	if i, ok := b.index[k]; ok {
		b.entries[i] = entry
		return nil
	}
	b.index[k] = len(b.entries)
	b.entries = append(b.entries, entry)
	return nil
}

// Query returns the entries of the given month, optionally restricted to one
// project (empty projectID means all projects). Order follows insertion.
func (b *EntryBook) Query(year int, month time.Month, projectID string) []DayEntry {
	var result []DayEntry
	for _, e := range b.entries {
		if !e.Date.SameMonth(year, month) {
			continue
		}
		if projectID != "" && e.ProjectID != projectID {
			continue
		}
		result = append(result, e)
	}
	return result
}

// HasDate reports whether any entry exists for the date, across all projects
// and statuses. Autofill uses this to suppress synthesis.
func (b *EntryBook) HasDate(d Date) bool {
	for k := range b.index {
		if k.date == d {
			return true
		}
	}
	return false
}

// All returns a copy of every entry in insertion order.
func (b *EntryBook) All() []DayEntry {
	out := make([]DayEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *EntryBook) Len() int { return len(b.entries) }

// Replace rebuilds the book from a persisted entry list. Later duplicates of
// a (date, project) pair win, mirroring upsert semantics.
func (b *EntryBook) Replace(entries []DayEntry) error {
	fresh := NewEntryBook()
	for _, e := range entries {
		if err := fresh.Upsert(e); err != nil {
			return err
		}
	}
	*b = *fresh
	return nil
}
