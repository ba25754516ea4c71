package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granularity time abstraction
// =============================================================================

// Date is a calendar day in UTC. Tenure math, leave dates, and payroll
// periods all operate on whole days; anything finer lives in time.Time
// fields (CreatedAt, ResponseDate, ...).
type Date struct {
	t time.Time
}

// Constructors

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison

func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic

func (d Date) AddDays(n int) Date   { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.t.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.t.AddDate(n, 0, 0)) }

// Properties

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysBetween returns the number of whole days from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// MonthsBetween returns the calendar month difference between two dates,
// ignoring the day component. From March 31 to April 1 is one month.
func MonthsBetween(from, to Date) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// =============================================================================
// PAYROLL PERIOD - A calendar month identified as YYYY-MM
// =============================================================================

// PeriodBounds returns the first and last calendar day of a YYYY-MM period.
func PeriodBounds(period string) (Date, Date, error) {
	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 {
		return Date{}, Date{}, fmt.Errorf("invalid payroll period %q (use YYYY-MM)", period)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("invalid payroll period %q (use YYYY-MM)", period)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, Date{}, fmt.Errorf("invalid payroll period %q (use YYYY-MM)", period)
	}

	start := NewDate(year, time.Month(month), 1)
	end := start.AddMonths(1).AddDays(-1)
	return start, end, nil
}

// FormatPeriod renders a date's month as a YYYY-MM payroll period.
func FormatPeriod(d Date) string {
	return d.t.Format("2006-01")
}
