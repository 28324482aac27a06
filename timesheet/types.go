/*
Package timesheet implements the core of a browser-based time tracker:
day-level work entries, monthly pay summaries, and the report approval
lifecycle that gates editing.

KEY CONCEPTS:
  - DayEntry:      One work record per (date, project). Unique by construction.
  - Project:       Read-only reference data owned externally.
  - TimeReport:    Per-month approval lifecycle record.
  - MonthSummary:  Derived hours/pay/flex metrics, recomputed on every query.
  - Session:       Owns all in-memory state; hydrates from and flushes to a Store.

DESIGN PRINCIPLES:
  1. Precision: all hour and money arithmetic uses decimal.Decimal,
     never float64.
  2. Structural invariants: uniqueness of (date, project) entries and of
     (year, month) reports is enforced by indexed maps, not by convention.
  3. Purity: Summarize is a pure function; lifecycle checks are a single
     predicate every caller shares.

SEE ALSO:
  - summary.go:  Month summary computation
  - report.go:   Report lifecycle state machine
  - entries.go:  Entry collection with upsert semantics
  - autofill.go: Historical backfill of missing weekdays
*/
package timesheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY ENTRY
// =============================================================================

// Status is the work status recorded for a single day.
type Status string

const (
	StatusWorked          Status = "worked"
	StatusMissed          Status = "missed"
	StatusDayOff          Status = "day-off"
	StatusSuspendedClient Status = "suspended-client"
)

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWorked, StatusMissed, StatusDayOff, StatusSuspendedClient:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, s)
	}
}

// DayEntry is one work record for a single date and project.
// Hours is meaningful only when Status is worked; every other status
// contributes zero hours to pay math regardless of the field value.
type DayEntry struct {
	Date        Date            `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Status      Status          `json:"status"`
	ProjectID   string          `json:"projectId"`
	ProjectName string          `json:"projectName"`
	Notes       string          `json:"notes,omitempty"`
}

// Validate checks an entry before it enters the book.
func (e DayEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidEntry)
	}
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return err
	}
	if e.Hours.IsNegative() {
		return fmt.Errorf("%w: negative hours %s", ErrInvalidEntry, e.Hours)
	}
	if e.ProjectID == "" {
		return fmt.Errorf("%w: missing project id", ErrInvalidEntry)
	}
	return nil
}

// =============================================================================
// PROJECT - Read-only reference data
// =============================================================================

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// TIME REPORT - Monthly lifecycle record
// =============================================================================

// ReportStatus is the approval state of a month's time report.
type ReportStatus string

const (
	// ReportUpcoming is the implicit state of a month with no stored record.
	ReportUpcoming        ReportStatus = "upcoming"
	ReportPendingApproval ReportStatus = "pending-approval"
	ReportApproved        ReportStatus = "approved"
	ReportDeclined        ReportStatus = "declined"
)

// ParseReportStatus validates a raw report status string.
func ParseReportStatus(s string) (ReportStatus, error) {
	switch ReportStatus(s) {
	case ReportUpcoming, ReportPendingApproval, ReportApproved, ReportDeclined:
		return ReportStatus(s), nil
	default:
		return "", fmt.Errorf("unknown report status %q", s)
	}
}

// TimeReport is the lifecycle record for one (year, month). A month with no
// record is implicitly upcoming; a record is first created on submission.
type TimeReport struct {
	Year        int          `json:"year"`
	Month       int          `json:"month"` // 1-12
	Status      ReportStatus `json:"reportStatus"`
	SubmittedAt *Date        `json:"submittedAt,omitempty"`
}

// =============================================================================
// MONTH SUMMARY - Derived metrics, never stored
// =============================================================================

// MonthSummary holds the derived hours/pay/flex metrics for one month.
// It is fully recomputed on every query and never persisted.
type MonthSummary struct {
	ExpectedHours   decimal.Decimal `json:"expectedHours"`
	ReportedHours   decimal.Decimal `json:"reportedHours"`
	RemainingHours  decimal.Decimal `json:"remainingHours"`
	ContractedHours decimal.Decimal `json:"contractedHours"`
	MonthlySalary   decimal.Decimal `json:"monthlySalary"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	DeviationHours  decimal.Decimal `json:"deviationHours"`
	DeviationCost   decimal.Decimal `json:"deviationCost"`
	EarnedFlexDays  decimal.Decimal `json:"earnedFlexDays"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// Config carries the compensation parameters fed into summary computation.
type Config struct {
	// ExpectedHoursOverride, when set, replaces the contracted-hours figure
	// as the month's expectation. Nil means "expect the contracted hours".
	ExpectedHoursOverride *decimal.Decimal

	MonthlySalary decimal.Decimal
	HourlyRate    decimal.Decimal
}
