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
// TEST SETUP
// =============================================================================

// seedComponent grants the employee rates of 100 basic + 10 transport per
// day, active from their start date, open-ended.
func seedComponent(t *testing.T, store *memory.Memory, employeeID int64, from engine.Date) *engine.PayrollComponent {
	t.Helper()
	component, err := store.CreatePayrollComponent(context.Background(), &engine.PayrollComponent{
		EmployeeID:               employeeID,
		BasicSalaryPerDay:        decimal.NewFromInt(100),
		TransportAllowancePerDay: decimal.NewFromInt(10),
		EffectiveFrom:            from,
		IsActive:                 true,
	})
	require.NoError(t, err)
	return component
}

// seedWorkMonth inserts n consecutive weekday-agnostic entries starting at
// the first of the month, each with the given hours and overtime.
func seedWorkMonth(t *testing.T, store *memory.Memory, employeeID int64, first engine.Date, n int, hours, overtime int64) {
	t.Helper()
	entries := make([]*engine.TimesheetEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, &engine.TimesheetEntry{
			EmployeeID:    employeeID,
			WorkDate:      first.AddDays(i),
			HoursWorked:   decimal.NewFromInt(hours),
			OvertimeHours: decimal.NewFromInt(overtime),
		})
	}
	_, err := store.CreateTimesheetEntries(context.Background(), entries)
	require.NoError(t, err)
}

func newPayrollCalculator(store *memory.Memory, today engine.Date) *engine.PayrollCalculator {
	pc := engine.NewPayrollCalculator(store)
	pc.Now = fixedClock(today)
	return pc
}

// =============================================================================
// CALCULATION TESTS
// =============================================================================

func TestCalculateForEmployee_WorkedMonth(t *testing.T) {
	// GIVEN: basic=100/day, transport=10/day, 20 entries of 8h + 2 OT
	// WHEN: Calculating 2024-03
	// THEN: days=20, overtime=40, basic=2000, transport=200,
	//       overtimePay=40*(100/8*1.5)=750, gross=net=2950, draft

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)
	seedComponent(t, store, employee.ID, start)
	seedWorkMonth(t, store, employee.ID, engine.NewDate(2024, time.March, 1), 20, 8, 2)

	pc := newPayrollCalculator(store, today)
	calc, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", calc.PayrollPeriod)
	assert.Equal(t, "20", calc.TotalDaysWorked.String())
	assert.Equal(t, "160", calc.TotalHoursWorked.String())
	assert.Equal(t, "40", calc.OvertimeHours.String())

	assert.Equal(t, "2000", calc.BasicSalary.String())
	assert.Equal(t, "200", calc.TransportAllowance.String())
	assert.True(t, calc.FoodAllowance.IsZero())
	assert.True(t, calc.AccommodationAllowance.IsZero())
	assert.Equal(t, "750", calc.OvertimePay.String())

	assert.Equal(t, "2950", calc.GrossSalary.String())
	assert.True(t, calc.Deductions.IsZero())
	assert.Equal(t, "2950", calc.NetSalary.String())
	assert.Equal(t, engine.PayrollDraft, calc.Status)
}

func TestCalculateForEmployee_EmptyMonth(t *testing.T) {
	// No timesheet entries: everything zeroes out but the draft still lands.

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)
	seedComponent(t, store, employee.ID, start)

	pc := newPayrollCalculator(store, today)
	calc, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	require.NoError(t, err)

	assert.True(t, calc.TotalDaysWorked.IsZero())
	assert.True(t, calc.GrossSalary.IsZero())
	assert.True(t, calc.NetSalary.IsZero())
}

func TestCalculateForEmployee_NoCurrentComponent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)

	pc := newPayrollCalculator(store, today)
	_, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")

	assert.ErrorIs(t, err, engine.ErrNoPayrollComponent)
	var ncErr *engine.NoPayrollComponentError
	require.ErrorAs(t, err, &ncErr)
	assert.Equal(t, employee.ID, ncErr.EmployeeID)
}

func TestCalculateForEmployee_ExpiredComponentIsNotCurrent(t *testing.T) {
	// A component whose effectiveTo has passed must not be picked up.

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)

	expired := engine.NewDate(2023, time.December, 31)
	_, err := store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:        employee.ID,
		BasicSalaryPerDay: decimal.NewFromInt(100),
		EffectiveFrom:     start,
		EffectiveTo:       &expired,
		IsActive:          true,
	})
	require.NoError(t, err)

	pc := newPayrollCalculator(store, today)
	_, err = pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	assert.ErrorIs(t, err, engine.ErrNoPayrollComponent)
}

func TestCalculateForEmployee_MostRecentComponentWins(t *testing.T) {
	// Two covering components: the one with the later effectiveFrom applies.

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)
	seedComponent(t, store, employee.ID, start) // 100/day

	raise := engine.NewDate(2024, time.January, 1)
	_, err := store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:        employee.ID,
		BasicSalaryPerDay: decimal.NewFromInt(120),
		EffectiveFrom:     raise,
		IsActive:          true,
	})
	require.NoError(t, err)

	seedWorkMonth(t, store, employee.ID, engine.NewDate(2024, time.March, 1), 10, 8, 0)

	pc := newPayrollCalculator(store, today)
	calc, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "1200", calc.BasicSalary.String())
}

func TestCalculateForEmployee_DuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)
	seedComponent(t, store, employee.ID, start)

	pc := newPayrollCalculator(store, today)
	_, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	require.NoError(t, err)

	_, err = pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	assert.ErrorIs(t, err, engine.ErrPayrollExists)
}

func TestCalculateForEmployee_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	pc := newPayrollCalculator(store, engine.NewDate(2024, time.March, 31))
	_, err := pc.CalculateForEmployee(ctx, 1, "March 2024")
	assert.Error(t, err)
}

// =============================================================================
// LEAVE ATTRIBUTION TESTS
// =============================================================================

func TestCalculateForEmployee_LeaveStrictlyContainedCounts(t *testing.T) {
	// GIVEN: One approved request inside March, one straddling into April
	// WHEN: Calculating 2024-03
	// THEN: Only the contained request's days are attributed; pay unchanged

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)
	employee := seedEmployee(t, store, start)
	seedComponent(t, store, employee.ID, start)
	seedWorkMonth(t, store, employee.ID, engine.NewDate(2024, time.March, 1), 10, 8, 0)

	_, err := store.CreateTimeOffRequest(ctx, &engine.TimeOffRequest{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveCasual,
		StartDate:  engine.NewDate(2024, time.March, 18),
		EndDate:    engine.NewDate(2024, time.March, 19),
		Days:       days(2),
		Status:     engine.StatusApproved,
	})
	require.NoError(t, err)

	// Straddles the month boundary: attributed to neither month.
	_, err = store.CreateTimeOffRequest(ctx, &engine.TimeOffRequest{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveVacation,
		StartDate:  engine.NewDate(2024, time.March, 29),
		EndDate:    engine.NewDate(2024, time.April, 2),
		Days:       days(5),
		Status:     engine.StatusApproved,
	})
	require.NoError(t, err)

	// Pending requests never count.
	_, err = store.CreateTimeOffRequest(ctx, &engine.TimeOffRequest{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveVacation,
		StartDate:  engine.NewDate(2024, time.March, 5),
		EndDate:    engine.NewDate(2024, time.March, 6),
		Days:       days(2),
		Status:     engine.StatusPending,
	})
	require.NoError(t, err)

	pc := newPayrollCalculator(store, today)
	calc, err := pc.CalculateForEmployee(ctx, employee.ID, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "2", calc.LeaveDaysTaken.String())
	// Leave days are informational; pay still derives from days worked.
	assert.Equal(t, "1000", calc.BasicSalary.String())
}

// =============================================================================
// BULK CALCULATION TESTS
// =============================================================================

func TestBulkCalculate_RerunIsNoOp(t *testing.T) {
	// GIVEN: Two payable employees
	// WHEN: Bulk-calculating 2024-03 twice
	// THEN: Exactly one calculation row per employee survives both runs

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)

	first := seedEmployee(t, store, start)
	second := seedApprover(t, store, start)
	for _, e := range []*engine.Employee{first, second} {
		seedComponent(t, store, e.ID, start)
		seedWorkMonth(t, store, e.ID, engine.NewDate(2024, time.March, 1), 5, 8, 0)
	}

	pc := newPayrollCalculator(store, today)

	created, err := pc.BulkCalculate(ctx, "2024-03")
	require.NoError(t, err)
	assert.Len(t, created, 2)

	rerun, err := pc.BulkCalculate(ctx, "2024-03")
	require.NoError(t, err)
	assert.Empty(t, rerun)

	for _, e := range []*engine.Employee{first, second} {
		calcs, err := store.PayrollCalculationsByEmployee(ctx, e.ID)
		require.NoError(t, err)
		assert.Len(t, calcs, 1)
	}
}

func TestBulkCalculate_SkipsFailingEmployeeAndContinues(t *testing.T) {
	// GIVEN: One employee without rates and one fully set up
	// WHEN: Bulk-calculating
	// THEN: The batch completes with one calculation

	ctx := context.Background()
	store := memory.New()
	start := engine.NewDate(2023, time.June, 1)
	today := engine.NewDate(2024, time.March, 31)

	bare := seedEmployee(t, store, start) // no payroll component
	payable := seedApprover(t, store, start)
	seedComponent(t, store, payable.ID, start)
	seedWorkMonth(t, store, payable.ID, engine.NewDate(2024, time.March, 1), 5, 8, 0)

	pc := newPayrollCalculator(store, today)
	created, err := pc.BulkCalculate(ctx, "2024-03")
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, payable.ID, created[0].EmployeeID)

	calcs, err := store.PayrollCalculationsByEmployee(ctx, bare.ID)
	require.NoError(t, err)
	assert.Empty(t, calcs)
}
