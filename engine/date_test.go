package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/engine"
)

// =============================================================================
// DATE PARSING AND ARITHMETIC
// =============================================================================

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := engine.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
}

func TestParseDate_RejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "2024-2-29", "29/02/2024", "2024-13-01"} {
		_, err := engine.ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDaysBetween(t *testing.T) {
	// GIVEN: Two dates a leap February apart
	// THEN: The difference counts February 29
	from := engine.NewDate(2024, time.February, 1)
	to := engine.NewDate(2024, time.March, 1)
	assert.Equal(t, 29, engine.DaysBetween(from, to))
}

func TestMonthsBetween_IgnoresDayComponent(t *testing.T) {
	// March 31 -> April 1 is one calendar month even though only one day
	// elapsed.
	from := engine.NewDate(2024, time.March, 31)
	to := engine.NewDate(2024, time.April, 1)
	assert.Equal(t, 1, engine.MonthsBetween(from, to))

	assert.Equal(t, 12, engine.MonthsBetween(
		engine.NewDate(2023, time.June, 15),
		engine.NewDate(2024, time.June, 1),
	))
}

// =============================================================================
// PAYROLL PERIODS
// =============================================================================

func TestPeriodBounds_CalendarMonth(t *testing.T) {
	start, end, err := engine.PeriodBounds("2024-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", start.String())
	assert.Equal(t, "2024-07-31", end.String())
}

func TestPeriodBounds_LeapFebruary(t *testing.T) {
	_, end, err := engine.PeriodBounds("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", end.String())
}

func TestPeriodBounds_RejectsBadInput(t *testing.T) {
	for _, period := range []string{"", "2024", "2024-00", "2024-13", "July 2024"} {
		_, _, err := engine.PeriodBounds(period)
		assert.Error(t, err, "period %q", period)
	}
}

func TestFormatPeriod(t *testing.T) {
	d := engine.NewDate(2024, time.July, 19)
	assert.Equal(t, "2024-07", engine.FormatPeriod(d))
}
