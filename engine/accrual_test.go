package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func days(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func fixedClock(d engine.Date) func() engine.Date {
	return func() engine.Date { return d }
}

func seedEmployee(t *testing.T, store *memory.Memory, startDate engine.Date) *engine.Employee {
	t.Helper()
	employee, err := store.CreateEmployee(context.Background(), &engine.Employee{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		Department:     "Operations",
		Position:       "Technician",
		StartDate:      startDate,
		Salary:         decimal.NewFromInt(2400),
	})
	require.NoError(t, err)
	return employee
}

// =============================================================================
// ENTITLEMENT POLICY TESTS
// =============================================================================

func TestCasualEntitlement_140DaysTenure(t *testing.T) {
	// GIVEN: An employee who started exactly 140 days ago
	// WHEN: Computing the casual entitlement
	// THEN: 20 weeks -> 100 working days -> 5 casual days

	start := engine.NewDate(2024, time.January, 1)
	asOf := start.AddDays(140)

	got := engine.CasualEntitlement(start, asOf)
	assert.Equal(t, "5", got.String())
}

func TestCasualEntitlement_BeforeStartDate_Zero(t *testing.T) {
	start := engine.NewDate(2024, time.June, 1)
	asOf := engine.NewDate(2024, time.May, 1)

	got := engine.CasualEntitlement(start, asOf)
	assert.True(t, got.IsZero())
}

func TestVacationEntitlement_SevenMonthsTenure(t *testing.T) {
	// GIVEN: An employee who started seven calendar months ago
	// WHEN: Computing the vacation entitlement
	// THEN: floor(7/3)=2 completed quarters -> 10 vacation days

	start := engine.NewDate(2024, time.January, 15)
	asOf := engine.NewDate(2024, time.August, 15)

	got := engine.VacationEntitlement(start, asOf)
	assert.Equal(t, "10", got.String())
}

func TestVacationEntitlement_MonthsAreCalendarBased(t *testing.T) {
	// Month difference ignores the day component: Mar 31 -> Jun 1 is three
	// calendar months, one completed quarter.
	start := engine.NewDate(2024, time.March, 31)
	asOf := engine.NewDate(2024, time.June, 1)

	got := engine.VacationEntitlement(start, asOf)
	assert.Equal(t, "5", got.String())
}

// =============================================================================
// RECONCILIATION TESTS
// =============================================================================

func TestProcessAccruals_CreatesZeroBalanceRowForNewEmployee(t *testing.T) {
	// GIVEN: A brand-new employee with no balance row
	// WHEN: Processing accruals on their first day
	// THEN: A zero-initialized balance row exists for the current year

	ctx := context.Background()
	store := memory.New()
	today := engine.NewDate(2024, time.June, 3)
	employee := seedEmployee(t, store, today)

	ac := engine.NewAccrualCalculator(store)
	ac.Now = fixedClock(today)

	balance, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)

	assert.Equal(t, 2024, balance.Year)
	assert.True(t, balance.CasualLeaveBalance.IsZero())
	assert.True(t, balance.VacationLeaveBalance.IsZero())
}

func TestProcessAccruals_RaisesBalanceToEntitlement(t *testing.T) {
	// GIVEN: 140 days and 7 months of tenure
	// WHEN: Processing accruals
	// THEN: Casual = 5 and vacation reflects completed quarters

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2024, time.January, 1)
	today := start.AddDays(140) // 2024-05-20, 4 calendar months
	employee := seedEmployee(t, store, start)

	ac := engine.NewAccrualCalculator(store)
	ac.Now = fixedClock(today)

	balance, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)

	assert.Equal(t, "5", balance.CasualLeaveBalance.String())
	assert.Equal(t, "5", balance.VacationLeaveBalance.String()) // 1 quarter
}

func TestProcessAccruals_Idempotent(t *testing.T) {
	// GIVEN: Accruals already processed today
	// WHEN: Processing again at the same instant
	// THEN: Balances are unchanged and no new ledger rows appear

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2024, time.January, 1)
	today := start.AddDays(140)
	employee := seedEmployee(t, store, start)

	ac := engine.NewAccrualCalculator(store)
	ac.Now = fixedClock(today)

	first, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)
	firstHistory, err := store.LeaveAccrualHistory(ctx, employee.ID)
	require.NoError(t, err)

	second, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)
	secondHistory, err := store.LeaveAccrualHistory(ctx, employee.ID)
	require.NoError(t, err)

	assert.True(t, first.CasualLeaveBalance.Equal(second.CasualLeaveBalance))
	assert.True(t, first.VacationLeaveBalance.Equal(second.VacationLeaveBalance))
	assert.Len(t, secondHistory, len(firstHistory), "second run must not append ledger rows")
}

func TestProcessAccruals_NeverDecreasesBalance(t *testing.T) {
	// GIVEN: A stored balance above the computed entitlement
	// WHEN: Processing accruals
	// THEN: The balance is left alone

	ctx := context.Background()
	store := memory.New()
	today := engine.NewDate(2024, time.June, 3)
	employee := seedEmployee(t, store, today) // zero tenure, zero entitlement

	seeded := days(12)
	_, err := store.CreateLeaveBalance(ctx, &engine.LeaveBalance{
		EmployeeID:           employee.ID,
		Year:                 2024,
		CasualLeaveBalance:   seeded,
		VacationLeaveBalance: seeded,
	})
	require.NoError(t, err)

	ac := engine.NewAccrualCalculator(store)
	ac.Now = fixedClock(today)

	balance, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)

	assert.Equal(t, "12", balance.CasualLeaveBalance.String())
	assert.Equal(t, "12", balance.VacationLeaveBalance.String())
}

func TestProcessAccruals_LedgerRecordsDeltaAndReason(t *testing.T) {
	// GIVEN: An employee earning their first casual and vacation days
	// WHEN: Processing accruals
	// THEN: One ledger row per leave type, amount = delta, readable reason

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2024, time.January, 1)
	today := engine.NewDate(2024, time.August, 1) // 7 months, 213 days
	employee := seedEmployee(t, store, start)

	ac := engine.NewAccrualCalculator(store)
	ac.Now = fixedClock(today)

	_, err := ac.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)

	history, err := store.LeaveAccrualHistory(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	byType := map[string]*engine.LeaveAccrual{}
	for _, h := range history {
		byType[h.AccrualType] = h
	}

	casual := byType[engine.LeaveCasual]
	require.NotNil(t, casual)
	// 213 days -> 30 weeks -> 150 working days -> 7 casual days
	assert.Equal(t, "7", casual.Amount.String())
	assert.Equal(t, "Accrued 7 casual leave days (1 day per 20 working days)", casual.Reason)
	assert.True(t, casual.AccrualDate.Equal(today))

	vacation := byType[engine.LeaveVacation]
	require.NotNil(t, vacation)
	assert.Equal(t, "10", vacation.Amount.String())
	assert.Equal(t, "Accrued 10 vacation leave days (5 days per completed quarter)", vacation.Reason)
}

func TestProcessAccruals_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	ac := engine.NewAccrualCalculator(store)
	_, err := ac.ProcessAccruals(ctx, 404)

	assert.True(t, engine.IsNotFound(err))
}
