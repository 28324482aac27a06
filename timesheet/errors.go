package timesheet

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidEntry is returned when an entry fails validation
	// (unknown status, negative hours, missing date or project).
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrEntryLocked is returned when a save targets a month whose report
	// is pending approval or approved. The store is left untouched.
	ErrEntryLocked = errors.New("entry locked")

	// ErrFutureDate is returned when a save targets a date after today.
	ErrFutureDate = errors.New("date is in the future")

	// ErrAlreadySubmitted is returned on a second submit for a month that is
	// already pending approval.
	ErrAlreadySubmitted = errors.New("report already submitted")

	// ErrShortfallUnacknowledged is returned when a submit with reported
	// hours below expectation is attempted without explicit acknowledgment
	// of the potential lost earnings.
	ErrShortfallUnacknowledged = errors.New("under-reported hours not acknowledged")

	// ErrInvalidTransition is returned for any report status change the
	// lifecycle does not define. Approved is terminal.
	ErrInvalidTransition = errors.New("invalid report transition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// LockedEntryError explains why a save was rejected.
type LockedEntryError struct {
	Date   Date
	Status ReportStatus
}

func (e *LockedEntryError) Error() string {
	return fmt.Sprintf("entry for %s is locked: month report is %s", e.Date, e.Status)
}

func (e *LockedEntryError) Unwrap() error { return ErrEntryLocked }

// InvalidTransitionError records a rejected lifecycle transition.
type InvalidTransitionError struct {
	Year  int
	Month time.Month
	From  ReportStatus
	To    ReportStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("report %d-%02d: cannot transition %s -> %s", e.Year, int(e.Month), e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is caused by the caller's input or
// timing rather than a fault in this package.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidEntry) ||
		errors.Is(err, ErrEntryLocked) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrShortfallUnacknowledged) ||
		errors.Is(err, ErrInvalidTransition)
}
