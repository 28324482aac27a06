// Package memory provides an in-memory Store for tests and development.
package memory

import (
	"context"
	"sync"

	"github.com/warp/timesheet-engine/timesheet"
)

// Store keeps both collections in memory. Save replaces the whole
// collection, matching the read-all / write-all contract.
type Store struct {
	mu      sync.RWMutex
	entries []timesheet.DayEntry
	reports []timesheet.TimeReport

	// Write tallies per collection, handy in tests asserting that
	// rejected operations do not flush.
	entrySaves  int
	reportSaves int
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadEntries(_ context.Context) ([]timesheet.DayEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]timesheet.DayEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Store) SaveEntries(_ context.Context, entries []timesheet.DayEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]timesheet.DayEntry, len(entries))
	copy(s.entries, entries)
	s.entrySaves++
	return nil
}

func (s *Store) LoadReports(_ context.Context) ([]timesheet.TimeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]timesheet.TimeReport, len(s.reports))
	copy(out, s.reports)
	return out, nil
}

func (s *Store) SaveReports(_ context.Context, reports []timesheet.TimeReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = make([]timesheet.TimeReport, len(reports))
	copy(s.reports, reports)
	s.reportSaves++
	return nil
}

func (s *Store) Close() error { return nil }

// EntrySaves returns how many times the entry collection was written.
func (s *Store) EntrySaves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entrySaves
}

// ReportSaves returns how many times the report collection was written.
func (s *Store) ReportSaves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reportSaves
}

var _ timesheet.Store = (*Store)(nil)
