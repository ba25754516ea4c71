package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedEmployee(t *testing.T, store *sqlite.Store) *engine.Employee {
	t.Helper()
	employee, err := store.CreateEmployee(context.Background(), &engine.Employee{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		Department:     "Operations",
		Position:       "Technician",
		StartDate:      engine.NewDate(2024, time.January, 1),
		Salary:         decimal.NewFromInt(2400),
	})
	require.NoError(t, err)
	return employee
}

func TestEmployeeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	created := seedEmployee(t, store)
	require.NotZero(t, created.ID)
	assert.Equal(t, engine.EmployeeActive, created.Status)

	got, err := store.Employee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", got.EmployeeNumber)
	assert.Equal(t, "2024-01-01", got.StartDate.String())
	assert.Equal(t, "2400", got.Salary.String())
}

func TestEmployee_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Employee(context.Background(), 404)
	assert.True(t, engine.IsNotFound(err))
}

func TestLeaveBalance_UpdatePatchesOnlyGivenFields(t *testing.T) {
	// GIVEN: A balance with casual=5 and vacation=10
	// WHEN: Patching only the casual balance
	// THEN: Vacation is untouched

	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	balance, err := store.CreateLeaveBalance(ctx, &engine.LeaveBalance{
		EmployeeID:           employee.ID,
		Year:                 2024,
		CasualLeaveBalance:   decimal.NewFromInt(5),
		VacationLeaveBalance: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	newCasual := decimal.NewFromInt(3)
	updated, err := store.UpdateLeaveBalance(ctx, balance.ID, engine.LeaveBalancePatch{
		CasualLeaveBalance: &newCasual,
	})
	require.NoError(t, err)

	assert.Equal(t, "3", updated.CasualLeaveBalance.String())
	assert.Equal(t, "10", updated.VacationLeaveBalance.String())
}

func TestLeaveBalance_FractionalDaysSurviveStorage(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	half := decimal.RequireFromString("2.5")
	created, err := store.CreateLeaveBalance(ctx, &engine.LeaveBalance{
		EmployeeID:         employee.ID,
		Year:               2024,
		CasualLeaveBalance: half,
	})
	require.NoError(t, err)

	got, err := store.LeaveBalance(ctx, employee.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2.5", got.CasualLeaveBalance.String())
}

func TestApprovedRequestsInRange_StrictContainment(t *testing.T) {
	// GIVEN: An approved request inside March and one straddling into April
	// WHEN: Querying approved requests for March
	// THEN: Only the fully contained request is returned

	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	inside, err := store.CreateTimeOffRequest(ctx, &engine.TimeOffRequest{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveCasual,
		StartDate:  engine.NewDate(2024, time.March, 11),
		EndDate:    engine.NewDate(2024, time.March, 12),
		Days:       decimal.NewFromInt(2),
		Status:     engine.StatusApproved,
		IsWithPay:  true,
	})
	require.NoError(t, err)

	_, err = store.CreateTimeOffRequest(ctx, &engine.TimeOffRequest{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveVacation,
		StartDate:  engine.NewDate(2024, time.March, 29),
		EndDate:    engine.NewDate(2024, time.April, 2),
		Days:       decimal.NewFromInt(5),
		Status:     engine.StatusApproved,
		IsWithPay:  true,
	})
	require.NoError(t, err)

	got, err := store.ApprovedTimeOffRequestsInRange(ctx, employee.ID,
		engine.NewDate(2024, time.March, 1), engine.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestCurrentPayrollComponent_MostRecentEffectiveWins(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	_, err := store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:        employee.ID,
		BasicSalaryPerDay: decimal.NewFromInt(100),
		EffectiveFrom:     engine.NewDate(2024, time.January, 1),
		IsActive:          true,
	})
	require.NoError(t, err)

	raise, err := store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:        employee.ID,
		BasicSalaryPerDay: decimal.NewFromInt(120),
		EffectiveFrom:     engine.NewDate(2024, time.March, 1),
		IsActive:          true,
	})
	require.NoError(t, err)

	got, err := store.CurrentPayrollComponent(ctx, employee.ID,
		engine.NewDate(2024, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, raise.ID, got.ID)
	assert.Equal(t, "120", got.BasicSalaryPerDay.String())
}

func TestCurrentPayrollComponent_ExpiredIsSkipped(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	expiry := engine.NewDate(2024, time.February, 29)
	_, err := store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:        employee.ID,
		BasicSalaryPerDay: decimal.NewFromInt(100),
		EffectiveFrom:     engine.NewDate(2024, time.January, 1),
		EffectiveTo:       &expiry,
		IsActive:          true,
	})
	require.NoError(t, err)

	_, err = store.CurrentPayrollComponent(ctx, employee.ID,
		engine.NewDate(2024, time.March, 15))
	assert.True(t, engine.IsNotFound(err))
}

func TestWithTx_RollbackDiscardsWrites(t *testing.T) {
	// GIVEN: A transaction that creates a balance then fails
	// WHEN: The callback returns an error
	// THEN: No balance row is visible afterwards

	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	boom := assert.AnError
	err := store.WithTx(ctx, func(tx engine.Storage) error {
		_, err := tx.CreateLeaveBalance(ctx, &engine.LeaveBalance{
			EmployeeID:         employee.ID,
			Year:               2024,
			CasualLeaveBalance: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.LeaveBalance(ctx, employee.ID, 2024)
	assert.True(t, engine.IsNotFound(err))
}

func TestWithTx_CommitPersistsWrites(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	employee := seedEmployee(t, store)

	err := store.WithTx(ctx, func(tx engine.Storage) error {
		_, err := tx.CreateLeaveBalance(ctx, &engine.LeaveBalance{
			EmployeeID:           employee.ID,
			Year:                 2024,
			VacationLeaveBalance: decimal.NewFromInt(10),
		})
		return err
	})
	require.NoError(t, err)

	got, err := store.LeaveBalance(ctx, employee.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, "10", got.VacationLeaveBalance.String())
}

func TestEngineAgainstSQLite_EndToEnd(t *testing.T) {
	// The full accrue -> request -> approve -> payroll cycle against the real
	// database, exercising the transactional paths the memory store fakes.

	ctx := context.Background()
	store := newStore(t)

	employee, err := store.CreateEmployee(ctx, &engine.Employee{
		EmployeeNumber: "EMP-002",
		FirstName:      "Nuwan",
		LastName:       "Silva",
		Email:          "nuwan.silva@example.com",
		StartDate:      engine.NewDate(2024, time.January, 1),
		Salary:         decimal.NewFromInt(2400),
	})
	require.NoError(t, err)

	today := engine.NewDate(2024, time.August, 1)
	accruals := engine.NewAccrualCalculator(store)
	accruals.Now = func() engine.Date { return today }

	balance, err := accruals.ProcessAccruals(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", balance.CasualLeaveBalance.String())
	assert.Equal(t, "10", balance.VacationLeaveBalance.String())

	leave := engine.NewLeaveService(store)
	leave.Accruals = accruals
	leave.Now = func() time.Time { return today.Time() }

	request, err := leave.CreateRequest(ctx, engine.CreateRequestInput{
		EmployeeID: employee.ID,
		LeaveType:  engine.LeaveVacation,
		StartDate:  engine.NewDate(2024, time.August, 5),
		EndDate:    engine.NewDate(2024, time.August, 9),
		Days:       decimal.NewFromInt(5),
		Reason:     "family visit",
	})
	require.NoError(t, err)
	assert.Equal(t, engine.StatusPending, request.Status)

	approver, err := store.CreateEmployee(ctx, &engine.Employee{
		EmployeeNumber: "EMP-100",
		FirstName:      "Mala",
		LastName:       "Fernando",
		Email:          "mala.fernando@example.com",
		StartDate:      engine.NewDate(2020, time.January, 1),
	})
	require.NoError(t, err)

	approved, err := leave.Approve(ctx, request.ID, approver.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusApproved, approved.Status)

	after, err := store.LeaveBalance(ctx, employee.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, "5", after.VacationLeaveBalance.String())
}
