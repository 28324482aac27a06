package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTH SUMMARY COMPUTATION
// =============================================================================

// ContractedHoursPerProjectDay is the contractual commitment: two hours per
// project per weekday.
const ContractedHoursPerProjectDay = 2

var (
	two = decimal.NewFromInt(2)
)

// Summarize computes the MonthSummary for one calendar month.
//
// The entries must already be restricted to the target month (and project
// filter, if any) by the caller; Summarize does not filter by date. It is a
// pure function: deterministic, no side effects, and it always returns a
// complete summary - the zero-expectation edge case yields defined zero
// values instead of a division fault.
func Summarize(year int, month time.Month, entries []DayEntry, cfg Config) MonthSummary {
	weekdays := len(WeekdaysInMonth(year, month))

	// Worked entries are the only ones that count toward reported hours.
	// Other statuses contribute zero no matter what their Hours field holds.
	reported := decimal.Zero
	projects := make(map[string]struct{})
	for _, e := range entries {
		if e.Status == StatusWorked {
			reported = reported.Add(e.Hours)
		}
		projects[e.ProjectID] = struct{}{}
	}

	projectCount := len(projects)
	if projectCount < 1 {
		projectCount = 1
	}

	contracted := decimal.NewFromInt(int64(weekdays * ContractedHoursPerProjectDay * projectCount))

	expected := contracted
	if cfg.ExpectedHoursOverride != nil {
		expected = *cfg.ExpectedHoursOverride
	}

	remaining := expected.Sub(reported)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	deviation := reported.Sub(expected)

	// Shortfall is charged at the hourly rate; surplus hours are never paid
	// out. The asymmetry is contractual policy.
	deviationCost := decimal.Zero
	if deviation.IsNegative() {
		deviationCost = deviation.Abs().Mul(cfg.HourlyRate).Neg()
	}

	// Flex days accrue proportionally to delivered hours: two flex days for
	// a fully delivered month. Zero expectation earns zero flex days.
	flexDays := decimal.Zero
	if expected.IsPositive() {
		flexDays = two.Mul(reported).Div(expected).Round(1)
		if flexDays.IsNegative() {
			flexDays = decimal.Zero
		}
	}

	return MonthSummary{
		ExpectedHours:   expected,
		ReportedHours:   reported,
		RemainingHours:  remaining,
		ContractedHours: contracted,
		MonthlySalary:   cfg.MonthlySalary,
		HourlyRate:      cfg.HourlyRate,
		DeviationHours:  deviation,
		DeviationCost:   deviationCost,
		EarnedFlexDays:  flexDays,
		Subtotal:        cfg.MonthlySalary.Add(deviationCost),
	}
}
