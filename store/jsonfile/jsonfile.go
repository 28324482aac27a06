// Package jsonfile persists the session collections as flat JSON files,
// one per collection, mirroring the key-value model of the original
// browser-local storage. Writes are atomic (temp file + rename) and a
// corrupt file is backed up rather than silently discarded.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp/timesheet-engine/timesheet"
)

const (
	entriesFile = "entries.json"
	reportsFile = "reports.json"
)

// Store reads and writes the two collections under a base directory.
type Store struct {
	dir string
}

// New creates the base directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadEntries(_ context.Context) ([]timesheet.DayEntry, error) {
	var entries []timesheet.DayEntry
	if err := s.load(entriesFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveEntries(_ context.Context, entries []timesheet.DayEntry) error {
	if entries == nil {
		entries = []timesheet.DayEntry{}
	}
	return s.save(entriesFile, entries)
}

func (s *Store) LoadReports(_ context.Context) ([]timesheet.TimeReport, error) {
	var reports []timesheet.TimeReport
	if err := s.load(reportsFile, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Store) SaveReports(_ context.Context, reports []timesheet.TimeReport) error {
	if reports == nil {
		reports = []timesheet.TimeReport{}
	}
	return s.save(reportsFile, reports)
}

func (s *Store) Close() error { return nil }

// load unmarshals a collection file. A missing file means an empty
// collection; a corrupt file is renamed aside so the next save starts clean.
func (s *Store) load(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		backup := path + ".corrupt"
		_ = os.Rename(path, backup)
		return fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backup, err)
	}
	return nil
}

// save atomically replaces a collection file.
func (s *Store) save(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage error renaming %s: %w", tmp, err)
	}
	return nil
}

var _ timesheet.Store = (*Store)(nil)
