/*
Package sqlite provides a SQLite-backed implementation of timesheet.Store.

PERSISTENCE MODEL:
  The session follows a read-all / write-all discipline: both collections are
  loaded wholesale at startup and each save rewrites its table inside one
  transaction (DELETE + INSERT). The tables therefore never accumulate
  incremental patches, and the primary keys mirror the in-memory uniqueness
  invariants:

    entries:  PRIMARY KEY (date, project_id)
    reports:  PRIMARY KEY (year, month)

ENCODING:
  Dates are stored as ISO-8601 text (2006-01-02). Hours are stored as decimal
  text to avoid floating-point drift.

WAL MODE:
  The database is opened with WAL for better read concurrency and crash
  recovery. A mutex still serializes writers; there is one logical session
  per database.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/timesheet"
)

// Store implements timesheet.Store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		date TEXT NOT NULL,
		project_id TEXT NOT NULL,
		project_name TEXT NOT NULL DEFAULT '',
		hours TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		PRIMARY KEY (date, project_id)
	);

	CREATE TABLE IF NOT EXISTS reports (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		status TEXT NOT NULL,
		submitted_at TEXT,
		PRIMARY KEY (year, month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENTRIES
// =============================================================================

func (s *Store) LoadEntries(ctx context.Context) ([]timesheet.DayEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, project_id, project_name, hours, status, notes
		 FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.DayEntry
	for rows.Next() {
		var dateStr, projectID, projectName, hoursStr, status, notes string
		if err := rows.Scan(&dateStr, &projectID, &projectName, &hoursStr, &status, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		date, err := timesheet.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to decode entry date: %w", err)
		}
		hours, err := decimal.NewFromString(hoursStr)
		if err != nil {
			return nil, fmt.Errorf("failed to decode entry hours %q: %w", hoursStr, err)
		}

		entries = append(entries, timesheet.DayEntry{
			Date:        date,
			Hours:       hours,
			Status:      timesheet.Status(status),
			ProjectID:   projectID,
			ProjectName: projectName,
			Notes:       notes,
		})
	}
	return entries, rows.Err()
}

func (s *Store) SaveEntries(ctx context.Context, entries []timesheet.DayEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO entries (date, project_id, project_name, hours, status, notes, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entries {
			_, err := stmt.ExecContext(ctx,
				e.Date.String(), e.ProjectID, e.ProjectName,
				e.Hours.String(), string(e.Status), e.Notes, i)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// =============================================================================
// REPORTS
// =============================================================================

func (s *Store) LoadReports(ctx context.Context) ([]timesheet.TimeReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, month, status, submitted_at FROM reports ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	defer rows.Close()

	var reports []timesheet.TimeReport
	for rows.Next() {
		var rec timesheet.TimeReport
		var submittedAt sql.NullString
		if err := rows.Scan(&rec.Year, &rec.Month, &rec.Status, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if submittedAt.Valid {
			date, err := timesheet.ParseDate(submittedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to decode report date: %w", err)
			}
			rec.SubmittedAt = &date
		}
		reports = append(reports, rec)
	}
	return reports, rows.Err()
}

func (s *Store) SaveReports(ctx context.Context, reports []timesheet.TimeReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reports`); err != nil {
			return err
		}
		for _, r := range reports {
			var submittedAt any
			if r.SubmittedAt != nil {
				submittedAt = r.SubmittedAt.String()
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO reports (year, month, status, submitted_at) VALUES (?, ?, ?, ?)`,
				r.Year, r.Month, string(r.Status), submittedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ timesheet.Store = (*Store)(nil)
