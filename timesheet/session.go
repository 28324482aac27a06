package timesheet

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// =============================================================================
// SESSION - Owned state with explicit hydrate/flush boundaries
// =============================================================================

// Session owns the entry book and report registry of one logical user
// session. It is the sole write path: saves go through the editability lock,
// submissions through the lifecycle state machine, and each successful
// mutation flushes the affected collection back to durable storage.
//
// A mutex serializes access because the HTTP surface may serve concurrent
// requests, but the persistence discipline stays read-all / write-all:
// there is exactly one logical writer per store.
type Session struct {
	mu       sync.Mutex
	store    Store
	book     *EntryBook
	registry *ReportRegistry
	projects []Project
	cfg      Config

	// now is swappable for tests.
	now func() time.Time
}

func NewSession(store Store, projects []Project, cfg Config) *Session {
	return &Session{
		store:    store,
		book:     NewEntryBook(),
		registry: NewReportRegistry(),
		projects: projects,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetClock replaces the session's time source. Tests use this to pin "today".
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Hydrate loads both persisted collections into memory. Call once at startup.
func (s *Session) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.LoadEntries(ctx)
	if err != nil {
		return fmt.Errorf("hydrate entries: %w", err)
	}
	if err := s.book.Replace(entries); err != nil {
		return fmt.Errorf("hydrate entries: %w", err)
	}

	reports, err := s.store.LoadReports(ctx)
	if err != nil {
		return fmt.Errorf("hydrate reports: %w", err)
	}
	if err := s.registry.Replace(reports); err != nil {
		return fmt.Errorf("hydrate reports: %w", err)
	}
	return nil
}

// Flush rewrites both collections to the store.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveEntries(ctx, s.book.All()); err != nil {
		return err
	}
	return s.store.SaveReports(ctx, s.registry.All())
}

func (s *Session) today() Date { return DateOf(s.now()) }

// Projects returns the configured reference projects.
func (s *Session) Projects() []Project {
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// =============================================================================
// ENTRY OPERATIONS
// =============================================================================

// SaveEntry upserts a day entry after checking the editability lock. A save
// against a locked month or a future date is rejected without touching any
// state.
func (s *Session) SaveEntry(ctx context.Context, entry DayEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := entry.Validate(); err != nil {
		return err
	}

	today := s.today()
	if entry.Date.After(today) {
		return fmt.Errorf("entry for %s: %w", entry.Date, ErrFutureDate)
	}
	if !s.registry.Editable(entry.Date, today) {
		return &LockedEntryError{
			Date:   entry.Date,
			Status: s.registry.Status(entry.Date.Year(), entry.Date.Month()),
		}
	}

	if err := s.book.Upsert(entry); err != nil {
		return err
	}
	return s.store.SaveEntries(ctx, s.book.All())
}

// Entries returns the month's entries, optionally filtered to one project.
func (s *Session) Entries(year int, month time.Month, projectID string) []DayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Query(year, month, projectID)
}

// EntryEditable reports whether a date accepts edits right now.
func (s *Session) EntryEditable(date Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Editable(date, s.today())
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary recomputes the month's derived metrics over the current entries,
// optionally restricted to one project.
func (s *Session) Summary(year int, month time.Month, projectID string) MonthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(year, month, s.book.Query(year, month, projectID), s.cfg)
}

// =============================================================================
// REPORT OPERATIONS
// =============================================================================

// Report returns the month's lifecycle record (implicitly upcoming when none
// is stored).
func (s *Session) Report(year int, month time.Month) TimeReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(year, month)
}

// SubmitReport submits the month for approval. Reported and expected hours
// are computed across all projects; a shortfall requires the caller to have
// collected an explicit acknowledgment first.
func (s *Session) SubmitReport(ctx context.Context, year int, month time.Month, ackShortfall bool) (TimeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summarize(year, month, s.book.Query(year, month, ""), s.cfg)
	rec, err := s.registry.Submit(year, month, summary.ReportedHours, summary.ExpectedHours, ackShortfall, s.today())
	if err != nil {
		return TimeReport{}, err
	}
	if err := s.store.SaveReports(ctx, s.registry.All()); err != nil {
		return TimeReport{}, err
	}
	return rec, nil
}

// SetReportStatus records an external approver's decision for a pending
// month. The session never calls this on its own behalf.
func (s *Session) SetReportStatus(ctx context.Context, year int, month time.Month, to ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.SetStatus(year, month, to); err != nil {
		return err
	}
	return s.store.SaveReports(ctx, s.registry.All())
}

// =============================================================================
// AUTOFILL
// =============================================================================

// Autofill backfills missing historical weekdays and persists any additions.
// Run once per session load; a second run is a no-op.
func (s *Session) Autofill(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := Autofill(s.book, s.today(), s.projects)
	if err != nil {
		return added, err
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.store.SaveEntries(ctx, s.book.All())
}
