package timesheet

import "github.com/shopspring/decimal"

// =============================================================================
// AUTOFILL - Backfill of missing historical weekdays
// =============================================================================

const (
	// AutofillLookbackMonths is how many calendar months before the current
	// one are scanned for gaps.
	AutofillLookbackMonths = 3

	// AutofillDayHours is the assumed working day for synthesized entries.
	AutofillDayHours = 8
)

// Autofill synthesizes a default "worked 8h" entry on the first project for
// every weekday gap in the lookback window: dates strictly before today, in
// the three calendar months preceding today's month, that have no entry at
// all. An existing entry of any status for a date, on any project,
// suppresses synthesis for that date. Weekends and dates from today onward
// are never touched.
//
// With no project reference data the call is a no-op. Running it again adds
// nothing: every gap it could fill, it already has.
func Autofill(book *EntryBook, today Date, projects []Project) (int, error) {
	if len(projects) == 0 {
		return 0, nil
	}
	target := projects[0]

	added := 0
	for back := AutofillLookbackMonths; back >= 1; back-- {
		month := StartOfMonth(today.Year(), today.Month()).AddMonths(-back)
		for _, day := range WeekdaysInMonth(month.Year(), month.Month()) {
			if !day.Before(today) || book.HasDate(day) {
				continue
			}
			err := book.Upsert(DayEntry{
				Date:        day,
				Hours:       decimal.NewFromInt(AutofillDayHours),
				Status:      StatusWorked,
				ProjectID:   target.ID,
				ProjectName: target.Name,
			})
			if err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}
