package timesheet

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a local calendar date. Time-of-day and timezone are deliberately
// absent: all scheduling and locking decisions in this system are made at
// day granularity on the local Gregorian calendar.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date, normalizing out-of-range components the same way
// time.Date does (e.g. day 32 rolls into the next month).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate parses an ISO-8601 date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }
func (d Date) IsZero() bool      { return d == Date{} }

// Time returns the date at midnight UTC. Used only for arithmetic and
// comparisons; no instant semantics are implied.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.Time().AddDate(0, n, 0)) }

// Properties
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsWorkday() bool { return !d.IsWeekend() }

// SameMonth reports whether the date falls in the given calendar month.
func (d Date) SameMonth(year int, month time.Month) bool {
	return d.year == year && d.month == month
}

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// MarshalJSON encodes the date as an ISO-8601 string, the persisted wire
// format for all dates in this system.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: not a JSON string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// MONTH ENUMERATION
// =============================================================================

// StartOfMonth returns the first day of the given month.
func StartOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}

// DaysInMonth returns every day of the given month in order.
func DaysInMonth(year int, month time.Month) []Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days := make([]Date, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		days = append(days, Date{year: year, month: month, day: d})
	}
	return days
}

// WeekdaysInMonth returns the Monday-Friday dates of the given month.
func WeekdaysInMonth(year int, month time.Month) []Date {
	var weekdays []Date
	for _, d := range DaysInMonth(year, month) {
		if d.IsWorkday() {
			weekdays = append(weekdays, d)
		}
	}
	return weekdays
}
