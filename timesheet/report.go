package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REPORT REGISTRY - One lifecycle record per (year, month)
// =============================================================================

type monthKey struct {
	year  int
	month time.Month
}

// ReportRegistry tracks the approval lifecycle of monthly time reports.
// Months without a record are implicitly upcoming; a record is created on
// first submission. Keyed storage makes the one-report-per-month invariant
// structural.
//
// The registry performs only the submission transitions itself
// (upcoming -> pending-approval and declined -> pending-approval on
// resubmission). Approval and decline come from an external approver via
// SetStatus. Nothing leaves approved.
//
// Not safe for concurrent use; the owning Session serializes access.
type ReportRegistry struct {
	reports map[monthKey]TimeReport
}

func NewReportRegistry() *ReportRegistry {
	return &ReportRegistry{reports: make(map[monthKey]TimeReport)}
}

// Status returns the month's lifecycle status, upcoming when no record exists.
func (r *ReportRegistry) Status(year int, month time.Month) ReportStatus {
	if rec, ok := r.reports[monthKey{year, month}]; ok {
		return rec.Status
	}
	return ReportUpcoming
}

// Get returns the stored record, or a synthetic upcoming record when absent.
func (r *ReportRegistry) Get(year int, month time.Month) TimeReport {
	if rec, ok := r.reports[monthKey{year, month}]; ok {
		return rec
	}
	return TimeReport{Year: year, Month: int(month), Status: ReportUpcoming}
}

// Submit moves a month to pending-approval. Allowed from upcoming and from
// declined (resubmission). When reported hours fall short of expectation the
// caller must pass ackShortfall=true, confirming the user has been warned
// that under-reported hours risk lost earnings.
func (r *ReportRegistry) Submit(year int, month time.Month, reported, expected decimal.Decimal, ackShortfall bool, submittedOn Date) (TimeReport, error) {
	switch status := r.Status(year, month); status {
	case ReportUpcoming, ReportDeclined:
		// submission allowed
	case ReportPendingApproval:
		return TimeReport{}, fmt.Errorf("report %d-%02d: %w", year, int(month), ErrAlreadySubmitted)
	default:
		return TimeReport{}, &InvalidTransitionError{Year: year, Month: month, From: status, To: ReportPendingApproval}
	}

	if reported.LessThan(expected) && !ackShortfall {
		return TimeReport{}, fmt.Errorf("report %d-%02d: reported %s of %s expected hours: %w",
			year, int(month), reported, expected, ErrShortfallUnacknowledged)
	}

	rec := TimeReport{
		Year:        year,
		Month:       int(month),
		Status:      ReportPendingApproval,
		SubmittedAt: &submittedOn,
	}
	r.reports[monthKey{year, month}] = rec
	return rec, nil
}

// SetStatus applies an approver's decision. Only pending-approval months can
// be approved or declined; any other change is rejected.
func (r *ReportRegistry) SetStatus(year int, month time.Month, to ReportStatus) error {
	from := r.Status(year, month)
	if from != ReportPendingApproval || (to != ReportApproved && to != ReportDeclined) {
		return &InvalidTransitionError{Year: year, Month: month, From: from, To: to}
	}

	rec := r.reports[monthKey{year, month}]
	rec.Status = to
	r.reports[monthKey{year, month}] = rec
	return nil
}

// Editable is the single authority on whether a day entry may be modified:
// the month's report must be upcoming or declined, and the date must not lie
// in the future. Every collaborator (save path, UI, API) consults this
// predicate rather than re-deriving the rule.
func (r *ReportRegistry) Editable(date Date, today Date) bool {
	if date.After(today) {
		return false
	}
	switch r.Status(date.Year(), date.Month()) {
	case ReportUpcoming, ReportDeclined:
		return true
	default:
		return false
	}
}

// All returns every stored report, ordered by (year, month).
func (r *ReportRegistry) All() []TimeReport {
	out := make([]TimeReport, 0, len(r.reports))
	for _, rec := range r.reports {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Replace rebuilds the registry from a persisted report list.
func (r *ReportRegistry) Replace(reports []TimeReport) error {
	fresh := NewReportRegistry()
	for _, rec := range reports {
		if _, err := ParseReportStatus(string(rec.Status)); err != nil {
			return err
		}
		fresh.reports[monthKey{rec.Year, time.Month(rec.Month)}] = rec
	}
	*r = *fresh
	return nil
}
