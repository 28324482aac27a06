/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the internal
  domain model from the external contract. All monetary and hour quantities
  are serialized as decimal strings; dates as ISO-8601 (2006-01-02).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route definitions
*/
package api

import (
	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// PROJECTS
// =============================================================================

type ProjectDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// ENTRIES
// =============================================================================

// EntryDTO represents one day entry in API responses.
type EntryDTO struct {
	Date        string `json:"date"`
	Hours       string `json:"hours"`
	Status      string `json:"status"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Notes       string `json:"notes,omitempty"`
	Editable    bool   `json:"editable"`
}

// SaveEntryRequest is the request to create or replace a day entry.
type SaveEntryRequest struct {
	Date      string `json:"date"`
	Hours     string `json:"hours"`
	Status    string `json:"status"`
	ProjectID string `json:"project_id"`
	Notes     string `json:"notes,omitempty"`
}

// =============================================================================
// SUMMARY
// =============================================================================

// SummaryDTO carries the derived month metrics. Quantities are decimal
// strings; display formatting (currency, locale) is the client's concern.
type SummaryDTO struct {
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	ExpectedHours   string `json:"expected_hours"`
	ReportedHours   string `json:"reported_hours"`
	RemainingHours  string `json:"remaining_hours"`
	ContractedHours string `json:"contracted_hours"`
	MonthlySalary   string `json:"monthly_salary"`
	HourlyRate      string `json:"hourly_rate"`
	DeviationHours  string `json:"deviation_hours"`
	DeviationCost   string `json:"deviation_cost"`
	EarnedFlexDays  string `json:"earned_flex_days"`
	Subtotal        string `json:"subtotal"`
}

func summaryDTO(year, month int, s timesheet.MonthSummary) SummaryDTO {
	return SummaryDTO{
		Year:            year,
		Month:           month,
		ExpectedHours:   s.ExpectedHours.String(),
		ReportedHours:   s.ReportedHours.String(),
		RemainingHours:  s.RemainingHours.String(),
		ContractedHours: s.ContractedHours.String(),
		MonthlySalary:   s.MonthlySalary.String(),
		HourlyRate:      s.HourlyRate.String(),
		DeviationHours:  s.DeviationHours.String(),
		DeviationCost:   s.DeviationCost.String(),
		EarnedFlexDays:  s.EarnedFlexDays.String(),
		Subtotal:        s.Subtotal.String(),
	}
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportDTO represents a month's lifecycle record. Editable tells the client
// whether the month's status still accepts entry edits (dates in the future
// stay read-only regardless).
type ReportDTO struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	Editable    bool   `json:"editable"`
}

func reportDTO(rec timesheet.TimeReport) ReportDTO {
	dto := ReportDTO{
		Year:     rec.Year,
		Month:    rec.Month,
		Status:   string(rec.Status),
		Editable: rec.Status == timesheet.ReportUpcoming || rec.Status == timesheet.ReportDeclined,
	}
	if rec.SubmittedAt != nil {
		dto.SubmittedAt = rec.SubmittedAt.String()
	}
	return dto
}

// SubmitReportRequest carries the shortfall acknowledgment: when reported
// hours fall below expectation, the client must warn the user about the risk
// of lost earnings and resubmit with this flag set.
type SubmitReportRequest struct {
	AcknowledgeShortfall bool `json:"acknowledge_shortfall"`
}

// SetReportStatusRequest is the external approver's decision.
type SetReportStatusRequest struct {
	Status string `json:"status"` // approved | declined
}

// =============================================================================
// AUTOFILL
// =============================================================================

type AutofillResponse struct {
	Created int `json:"created"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
