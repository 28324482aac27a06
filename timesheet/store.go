package timesheet

import "context"

// =============================================================================
// STORE - Flat key-value persistence interface
// =============================================================================

// Store persists the two session collections: the entry list and the report
// list. The contract is read-all / write-all: Hydrate loads both collections
// into memory at session start, and every mutation rewrites the affected
// collection wholesale. There is no incremental patching, which keeps the
// uniqueness invariants enforceable entirely in memory.
//
// All dates cross this boundary encoded as ISO-8601 date strings.
//
// Implementations:
//   - store/memory:   in-memory, for tests and dev
//   - store/jsonfile: flat JSON files, the default backend
//   - store/sqlite:   SQLite-backed
type Store interface {
	LoadEntries(ctx context.Context) ([]DayEntry, error)
	SaveEntries(ctx context.Context, entries []DayEntry) error

	LoadReports(ctx context.Context) ([]TimeReport, error)
	SaveReports(ctx context.Context, reports []TimeReport) error

	Close() error
}
