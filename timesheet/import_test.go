package timesheet_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/store/memory"
	"github.com/warp/hr-engine/timesheet"
)

func seedWorld(t *testing.T, store *memory.Memory) *engine.Employee {
	t.Helper()
	ctx := context.Background()

	employee, err := store.CreateEmployee(ctx, &engine.Employee{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		StartDate:      engine.NewDate(2024, time.January, 1),
		Salary:         decimal.NewFromInt(2400),
	})
	require.NoError(t, err)

	_, err = store.CreateCostCenter(ctx, &engine.CostCenter{
		Code:     "CC-OPS",
		Name:     "Operations",
		IsActive: true,
	})
	require.NoError(t, err)

	return employee
}

func newImporter(store *memory.Memory) *timesheet.Importer {
	im := timesheet.NewImporter(store)
	im.NewBatchID = func() string { return "batch-test" }
	return im
}

func TestImportCSV_CleanFile(t *testing.T) {
	// GIVEN: A two-row CSV referencing a known employee and cost center
	// WHEN: Importing
	// THEN: Two entries land in the store and the upload reads completed

	ctx := context.Background()
	store := memory.New()
	employee := seedWorld(t, store)

	csv := `employeeId,costCenterCode,workDate,hoursWorked,overtimeHours,breakHours,remarks
1,CC-OPS,2024-03-04,8,0,1,
1,CC-OPS,2024-03-05,8,2,1,late shift
`
	result, err := newImporter(store).ImportCSV(ctx, strings.NewReader(csv), "march.csv", "payroll-admin")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "completed", result.Upload.Status)
	assert.Equal(t, 2, result.Upload.TotalRecords)
	assert.Equal(t, "payroll-admin", result.Upload.UploadedBy)
	assert.Equal(t, "march.csv", result.Upload.Filename)

	entries, err := store.TimesheetEntriesInRange(ctx, employee.ID,
		engine.NewDate(2024, time.March, 1), engine.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "batch-test", entries[0].UploadBatchID)
	assert.Equal(t, "2", entries[1].OvertimeHours.String())
	assert.Equal(t, "late shift", entries[1].Remarks)
	assert.False(t, entries[0].IsManualEntry)
}

func TestImportCSV_BadRowsAreReportedNotFatal(t *testing.T) {
	// GIVEN: A file with one good row, one unknown employee, one unknown
	//        cost center, and one malformed date
	// WHEN: Importing
	// THEN: The good row is stored; the rest surface as row errors

	ctx := context.Background()
	store := memory.New()
	employee := seedWorld(t, store)

	csv := `employeeId,costCenterCode,workDate,hoursWorked,overtimeHours,breakHours,remarks
1,CC-OPS,2024-03-04,8,0,1,
999,CC-OPS,2024-03-05,8,0,1,
1,CC-NOPE,2024-03-06,8,0,1,
1,CC-OPS,not-a-date,8,0,1,
`
	result, err := newImporter(store).ImportCSV(ctx, strings.NewReader(csv), "mixed.csv", "payroll-admin")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Employee not found: 999", result.Errors[0].Message)
	assert.Equal(t, "Cost center not found: CC-NOPE", result.Errors[1].Message)
	assert.Contains(t, result.Errors[2].Message, "Invalid work date")

	assert.Equal(t, "completed_with_errors", result.Upload.Status)
	assert.Equal(t, 4, result.Upload.TotalRecords)
	assert.Equal(t, 1, result.Upload.ProcessedRecords)
	assert.Equal(t, 3, result.Upload.ErrorRecords)
	assert.Contains(t, result.Upload.ErrorDetails, `"Employee not found: 999"`)

	entries, err := store.TimesheetEntriesInRange(ctx, employee.ID,
		engine.NewDate(2024, time.March, 1), engine.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestImportCSV_MissingRequiredFields(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedWorld(t, store)

	csv := `employeeId,costCenterCode,workDate,hoursWorked,overtimeHours,breakHours,remarks
,CC-OPS,2024-03-04,8,0,1,
`
	result, err := newImporter(store).ImportCSV(ctx, strings.NewReader(csv), "bad.csv", "payroll-admin")
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Missing required fields: employeeId, workDate, hoursWorked", result.Errors[0].Message)
}

func TestImportCSV_MissingRequiredColumnIsBatchFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedWorld(t, store)

	csv := `employeeId,costCenterCode,hoursWorked
1,CC-OPS,8
`
	_, err := newImporter(store).ImportCSV(ctx, strings.NewReader(csv), "noheader.csv", "payroll-admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"workDate"`)

	uploads, err := store.TimesheetUploads(ctx)
	require.NoError(t, err)
	assert.Empty(t, uploads, "a rejected header must not record an upload")
}

func TestImportCSV_OptionalColumnsDefaultToZero(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	employee := seedWorld(t, store)

	csv := `employeeId,workDate,hoursWorked
1,2024-03-04,7.5
`
	result, err := newImporter(store).ImportCSV(ctx, strings.NewReader(csv), "minimal.csv", "payroll-admin")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	entries, err := store.TimesheetEntriesInRange(ctx, employee.ID,
		engine.NewDate(2024, time.March, 1), engine.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "7.5", entries[0].HoursWorked.String())
	assert.True(t, entries[0].OvertimeHours.IsZero())
	assert.True(t, entries[0].BreakHours.IsZero())
	assert.Zero(t, entries[0].CostCenterID)
}
