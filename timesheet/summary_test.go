package timesheet_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// requireDecimal asserts decimal equality with a readable failure message.
func requireDecimal(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.True(t, d(want).Equal(got), "want %v, got %s: %v", want, got, msgAndArgs)
}

func worked(date timesheet.Date, hours float64, projectID string) timesheet.DayEntry {
	return timesheet.DayEntry{
		Date:        date,
		Hours:       d(hours),
		Status:      timesheet.StatusWorked,
		ProjectID:   projectID,
		ProjectName: "Project " + projectID,
	}
}

func testConfig() timesheet.Config {
	return timesheet.Config{
		MonthlySalary: d(3500),
		HourlyRate:    d(19.89),
	}
}

// February 2025 runs Saturday the 1st through Friday the 28th: exactly 20
// weekdays, which keeps the arithmetic in these tests round.
const feb2025Year = 2025

var feb2025 = time.February

// =============================================================================
// SUMMARY ENGINE TESTS
// =============================================================================

func TestSummarize_TwentyWeekdayMonth_SingleProject(t *testing.T) {
	// GIVEN: 20-weekday month, one project, 15 worked days at 2h each
	// THEN: contracted = 20×2×1 = 40 = expected, reported = 30,
	//       remaining = 10, deviation = -10, cost = -10×rate, flex = 1.5

	require.Len(t, timesheet.WeekdaysInMonth(feb2025Year, feb2025), 20)

	var entries []timesheet.DayEntry
	weekdays := timesheet.WeekdaysInMonth(feb2025Year, feb2025)
	for i := 0; i < 15; i++ {
		entries = append(entries, worked(weekdays[i], 2, "p1"))
	}

	s := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())

	requireDecimal(t, 40, s.ContractedHours)
	requireDecimal(t, 40, s.ExpectedHours)
	requireDecimal(t, 30, s.ReportedHours)
	requireDecimal(t, 10, s.RemainingHours)
	requireDecimal(t, -10, s.DeviationHours)
	require.True(t, d(10*19.89).Neg().Equal(s.DeviationCost), "got %s", s.DeviationCost)
	requireDecimal(t, 1.5, s.EarnedFlexDays)
	require.True(t, d(3500).Add(s.DeviationCost).Equal(s.Subtotal))
}

func TestSummarize_NonWorkedStatusesContributeZeroHours(t *testing.T) {
	// Entries with non-worked statuses carry hours here on purpose: the
	// engine must ignore the field entirely for them.
	entries := []timesheet.DayEntry{
		worked(timesheet.NewDate(2025, time.February, 3), 8, "p1"),
		{Date: timesheet.NewDate(2025, time.February, 4), Hours: d(8), Status: timesheet.StatusMissed, ProjectID: "p1"},
		{Date: timesheet.NewDate(2025, time.February, 5), Hours: d(8), Status: timesheet.StatusDayOff, ProjectID: "p1"},
		{Date: timesheet.NewDate(2025, time.February, 6), Hours: d(8), Status: timesheet.StatusSuspendedClient, ProjectID: "p1"},
	}

	s := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())

	requireDecimal(t, 8, s.ReportedHours)
}

func TestSummarize_OverDelivery_NoBonus(t *testing.T) {
	// GIVEN: reported (50) > expected (40)
	// THEN: deviation cost stays 0 and subtotal is exactly the salary

	weekdays := timesheet.WeekdaysInMonth(feb2025Year, feb2025)
	var entries []timesheet.DayEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, worked(weekdays[i], 5, "p1"))
	}

	s := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())

	requireDecimal(t, 50, s.ReportedHours)
	requireDecimal(t, 10, s.DeviationHours)
	requireDecimal(t, 0, s.DeviationCost)
	requireDecimal(t, 0, s.RemainingHours)
	requireDecimal(t, 3500, s.Subtotal)
}

func TestSummarize_DeviationCostNeverPositive(t *testing.T) {
	cases := []float64{0, 10, 39.5, 40, 50, 100}
	weekday := timesheet.NewDate(2025, time.February, 3)

	for _, hours := range cases {
		s := timesheet.Summarize(feb2025Year, feb2025,
			[]timesheet.DayEntry{worked(weekday, hours, "p1")}, testConfig())
		assert.False(t, s.DeviationCost.IsPositive(), "hours=%v cost=%s", hours, s.DeviationCost)
		if !s.ReportedHours.LessThan(s.ExpectedHours) {
			assert.True(t, s.DeviationCost.IsZero(), "hours=%v cost=%s", hours, s.DeviationCost)
		}
	}
}

func TestSummarize_ContractedHoursScaleWithDistinctProjects(t *testing.T) {
	entries := []timesheet.DayEntry{
		worked(timesheet.NewDate(2025, time.February, 3), 2, "p1"),
		worked(timesheet.NewDate(2025, time.February, 3), 2, "p2"),
		worked(timesheet.NewDate(2025, time.February, 4), 2, "p2"),
	}

	s := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())

	// 20 weekdays × 2h × 2 projects
	requireDecimal(t, 80, s.ContractedHours)
}

func TestSummarize_NoEntries_CountsAsOneProject(t *testing.T) {
	s := timesheet.Summarize(feb2025Year, feb2025, nil, testConfig())

	requireDecimal(t, 40, s.ContractedHours)
	requireDecimal(t, 0, s.ReportedHours)
	requireDecimal(t, 40, s.RemainingHours)
}

func TestSummarize_ExpectedHoursOverride(t *testing.T) {
	cfg := testConfig()
	override := d(160)
	cfg.ExpectedHoursOverride = &override

	s := timesheet.Summarize(feb2025Year, feb2025, nil, cfg)

	requireDecimal(t, 160, s.ExpectedHours)
	requireDecimal(t, 40, s.ContractedHours) // override leaves contracted untouched
}

func TestSummarize_ZeroExpectedHours_FlexDaysDefinedFallback(t *testing.T) {
	// A zero expectation must never propagate a division fault; flex days
	// fall back to 0 and every field stays populated.
	cfg := testConfig()
	override := decimal.Zero
	cfg.ExpectedHoursOverride = &override

	s := timesheet.Summarize(feb2025Year, feb2025,
		[]timesheet.DayEntry{worked(timesheet.NewDate(2025, time.February, 3), 8, "p1")}, cfg)

	requireDecimal(t, 0, s.EarnedFlexDays)
	requireDecimal(t, 0, s.ExpectedHours)
	requireDecimal(t, 8, s.DeviationHours)
	requireDecimal(t, 0, s.DeviationCost)
}

func TestSummarize_FlexDaysNeverNegative(t *testing.T) {
	s := timesheet.Summarize(feb2025Year, feb2025, nil, testConfig())
	require.False(t, s.EarnedFlexDays.IsNegative())
	requireDecimal(t, 0, s.EarnedFlexDays)
}

func TestSummarize_IsDeterministic(t *testing.T) {
	entries := []timesheet.DayEntry{
		worked(timesheet.NewDate(2025, time.February, 3), 7.5, "p1"),
		worked(timesheet.NewDate(2025, time.February, 4), 6.25, "p2"),
	}

	first := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())
	second := timesheet.Summarize(feb2025Year, feb2025, entries, testConfig())

	require.Equal(t, first, second)
}
