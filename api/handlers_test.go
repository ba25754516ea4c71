package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/api"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/store/memory"
)

// =============================================================================
// TEST FIXTURE
// =============================================================================

type fixture struct {
	store  *memory.Memory
	router http.Handler
}

// newFixture wires the full handler stack over a memory store with every
// clock pinned to 2024-08-01.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()

	today := engine.NewDate(2024, time.August, 1)
	h := api.NewHandler(store)
	h.Accruals.Now = func() engine.Date { return today }
	h.Leave.Now = func() time.Time { return today.Time() }
	h.Payroll.Now = func() engine.Date { return today }
	h.Importer.NewBatchID = func() string { return "batch-test" }

	return &fixture{store: store, router: api.NewRouter(h)}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (f *fixture) seedEmployee(t *testing.T, startDate engine.Date) *engine.Employee {
	t.Helper()
	employee, err := f.store.CreateEmployee(context.Background(), &engine.Employee{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		StartDate:      startDate,
		Salary:         decimal.NewFromInt(2400),
	})
	require.NoError(t, err)
	return employee
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func TestCreateAndGetEmployee(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		Department:     "Operations",
		StartDate:      "2024-01-01",
		Salary:         "2400",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.EmployeeDTO](t, rec)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "2024-01-01", created.StartDate)

	rec = f.do(t, http.MethodGet, "/api/employees/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[api.EmployeeDTO](t, rec)
	assert.Equal(t, "EMP-001", got.EmployeeNumber)
	assert.Equal(t, "2400", got.Salary)
}

func TestGetEmployee_Unknown404(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/employees/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEmployee_BadDate400(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		StartDate:      "01/01/2024",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// BALANCE AND ACCRUAL ENDPOINTS
// =============================================================================

func TestGetLeaveBalance_ReconcilesAccrualsFirst(t *testing.T) {
	// GIVEN: An employee with seven months of tenure and no balance row
	// WHEN: Fetching the balance
	// THEN: The response reflects freshly reconciled entitlements

	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	rec := f.do(t, http.MethodGet, "/api/employees/1/leave-balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	balance := decode[api.LeaveBalanceDTO](t, rec)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, "7", balance.CasualLeaveBalance)
	assert.Equal(t, "10", balance.VacationLeaveBalance)

	rec = f.do(t, http.MethodGet, "/api/employees/1/leave-accruals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]api.LeaveAccrualDTO](t, rec)
	assert.Len(t, history, 2)
}

// =============================================================================
// LEAVE REQUEST ENDPOINTS
// =============================================================================

func TestCreateLeaveRequest_CasualAutoApproves(t *testing.T) {
	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	rec := f.do(t, http.MethodPost, "/api/leave-requests", api.CreateLeaveRequestRequest{
		EmployeeID: 1,
		LeaveType:  "casual",
		StartDate:  "2024-08-05",
		EndDate:    "2024-08-06",
		Days:       "2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	request := decode[api.TimeOffRequestDTO](t, rec)
	assert.Equal(t, "approved", request.Status)
	assert.False(t, request.RequiresApproval)
	assert.True(t, request.IsWithPay)

	// 7 accrued - 2 taken
	rec = f.do(t, http.MethodGet, "/api/employees/1/leave-balance", nil)
	balance := decode[api.LeaveBalanceDTO](t, rec)
	assert.Equal(t, "5", balance.CasualLeaveBalance)
}

func TestCreateLeaveRequest_Insufficient400(t *testing.T) {
	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.July, 29)) // no entitlement yet

	rec := f.do(t, http.MethodPost, "/api/leave-requests", api.CreateLeaveRequestRequest{
		EmployeeID: 1,
		LeaveType:  "casual",
		StartDate:  "2024-08-05",
		EndDate:    "2024-08-06",
		Days:       "2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Contains(t, resp.Details, "Insufficient casual leave balance")
}

func TestApproveFlow_VacationPendingThenConflictOnReplay(t *testing.T) {
	// GIVEN: A pending vacation request
	// WHEN: Approving twice
	// THEN: First approval deducts and succeeds; second returns 409

	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	rec := f.do(t, http.MethodPost, "/api/leave-requests", api.CreateLeaveRequestRequest{
		EmployeeID: 1,
		LeaveType:  "vacation",
		StartDate:  "2024-08-12",
		EndDate:    "2024-08-16",
		Days:       "5",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	request := decode[api.TimeOffRequestDTO](t, rec)
	assert.Equal(t, "pending", request.Status)
	assert.True(t, request.RequiresApproval)

	rec = f.do(t, http.MethodGet, "/api/leave-requests/pending", nil)
	pending := decode[[]api.TimeOffRequestDTO](t, rec)
	require.Len(t, pending, 1)

	rec = f.do(t, http.MethodPost, "/api/leave-requests/1/approve", api.DecideRequest{ApproverID: 99})
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decode[api.TimeOffRequestDTO](t, rec)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.EqualValues(t, 99, *approved.ApproverID)

	rec = f.do(t, http.MethodGet, "/api/employees/1/leave-balance", nil)
	balance := decode[api.LeaveBalanceDTO](t, rec)
	assert.Equal(t, "5", balance.VacationLeaveBalance)

	rec = f.do(t, http.MethodPost, "/api/leave-requests/1/approve", api.DecideRequest{ApproverID: 99})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDenyRequest_NoDeduction(t *testing.T) {
	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	f.do(t, http.MethodPost, "/api/leave-requests", api.CreateLeaveRequestRequest{
		EmployeeID: 1,
		LeaveType:  "vacation",
		StartDate:  "2024-08-12",
		EndDate:    "2024-08-16",
		Days:       "5",
	})

	rec := f.do(t, http.MethodPost, "/api/leave-requests/1/deny", api.DecideRequest{ApproverID: 99})
	require.Equal(t, http.StatusOK, rec.Code)
	denied := decode[api.TimeOffRequestDTO](t, rec)
	assert.Equal(t, "denied", denied.Status)

	rec = f.do(t, http.MethodGet, "/api/employees/1/leave-balance", nil)
	balance := decode[api.LeaveBalanceDTO](t, rec)
	assert.Equal(t, "10", balance.VacationLeaveBalance)
}

// =============================================================================
// TIMESHEET ENDPOINTS
// =============================================================================

func TestUploadTimesheets_Multipart(t *testing.T) {
	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	csv := `employeeId,workDate,hoursWorked,overtimeHours
1,2024-07-01,8,0
1,2024-07-02,8,2
999,2024-07-03,8,0
`
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "july.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("uploaded_by", "payroll-admin"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/timesheets/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[api.UploadResultDTO](t, rec)
	assert.Equal(t, 2, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "completed_with_errors", result.Upload.Status)

	rec = f.do(t, http.MethodGet, "/api/employees/1/timesheets?start=2024-07-01&end=2024-07-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]api.TimesheetEntryDTO](t, rec)
	assert.Len(t, entries, 2)

	rec = f.do(t, http.MethodGet, "/api/timesheet-uploads", nil)
	uploads := decode[[]api.TimesheetUploadDTO](t, rec)
	require.Len(t, uploads, 1)
	assert.Equal(t, "batch-test", uploads[0].BatchID)
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

func (f *fixture) seedPayrollWorld(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	_, err := f.store.CreatePayrollComponent(ctx, &engine.PayrollComponent{
		EmployeeID:               1,
		BasicSalaryPerDay:        decimal.NewFromInt(100),
		TransportAllowancePerDay: decimal.NewFromInt(10),
		EffectiveFrom:            engine.NewDate(2024, time.January, 1),
		IsActive:                 true,
	})
	require.NoError(t, err)

	day := engine.NewDate(2024, time.July, 1)
	for i := 0; i < 20; i++ {
		_, err := f.store.CreateTimesheetEntries(ctx, []*engine.TimesheetEntry{{
			EmployeeID:    1,
			WorkDate:      day.AddDays(i),
			HoursWorked:   decimal.NewFromInt(8),
			OvertimeHours: decimal.NewFromInt(2),
		}})
		require.NoError(t, err)
	}
}

func TestCalculatePayroll_WorkedMonth(t *testing.T) {
	f := newFixture(t)
	f.seedPayrollWorld(t)

	rec := f.do(t, http.MethodPost, "/api/payroll/calculate", api.CalculatePayrollRequest{
		EmployeeID: 1,
		Period:     "2024-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	calc := decode[api.PayrollCalculationDTO](t, rec)
	assert.Equal(t, "20", calc.TotalDaysWorked)
	assert.Equal(t, "160", calc.TotalHoursWorked)
	assert.Equal(t, "40", calc.OvertimeHours)
	assert.Equal(t, "2000", calc.BasicSalary)
	assert.Equal(t, "200", calc.TransportAllowance)
	assert.Equal(t, "750", calc.OvertimePay)
	assert.Equal(t, "2950", calc.GrossSalary)
	assert.Equal(t, "2950", calc.NetSalary)
	assert.Equal(t, "draft", calc.Status)
}

func TestCalculatePayroll_Duplicate409(t *testing.T) {
	f := newFixture(t)
	f.seedPayrollWorld(t)

	rec := f.do(t, http.MethodPost, "/api/payroll/calculate", api.CalculatePayrollRequest{
		EmployeeID: 1, Period: "2024-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/payroll/calculate", api.CalculatePayrollRequest{
		EmployeeID: 1, Period: "2024-07",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCalculatePayroll_NoComponent400(t *testing.T) {
	f := newFixture(t)
	f.seedEmployee(t, engine.NewDate(2024, time.January, 1))

	rec := f.do(t, http.MethodPost, "/api/payroll/calculate", api.CalculatePayrollRequest{
		EmployeeID: 1, Period: "2024-07",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkCalculate_RerunReturnsEmpty(t *testing.T) {
	f := newFixture(t)
	f.seedPayrollWorld(t)

	rec := f.do(t, http.MethodPost, "/api/payroll/bulk-calculate", api.BulkCalculateRequest{Period: "2024-07"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[[]api.PayrollCalculationDTO](t, rec)
	assert.Len(t, first, 1)

	rec = f.do(t, http.MethodPost, "/api/payroll/bulk-calculate", api.BulkCalculateRequest{Period: "2024-07"})
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[[]api.PayrollCalculationDTO](t, rec)
	assert.Empty(t, second)
}

func TestGetPayslip_PDF(t *testing.T) {
	f := newFixture(t)
	f.seedPayrollWorld(t)

	rec := f.do(t, http.MethodPost, "/api/payroll/calculate", api.CalculatePayrollRequest{
		EmployeeID: 1, Period: "2024-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	calc := decode[api.PayrollCalculationDTO](t, rec)

	rec = f.do(t, http.MethodGet,
		"/api/payroll-calculations/"+strconv.FormatInt(calc.ID, 10)+"/payslip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}
