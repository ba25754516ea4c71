/*
handlers.go - HTTP API handlers for the leave and payroll engine

PURPOSE:
  Exposes the engine via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                            List all employees
    POST   /api/employees                            Create employee
    GET    /api/employees/{id}                       Get employee details
    GET    /api/employees/{id}/leave-balance         Balance (accruals reconciled first)
    GET    /api/employees/{id}/leave-accruals        Accrual ledger
    POST   /api/employees/{id}/accruals/process      Force reconciliation
    GET    /api/employees/{id}/leave-requests        Request history
    GET    /api/employees/{id}/timesheets            Entries in a date range
    GET    /api/employees/{id}/payroll-components    Rate history
    POST   /api/employees/{id}/payroll-components    Add rates
    GET    /api/employees/{id}/payroll-calculations  Payroll history

  Leave requests:
    POST   /api/leave-requests                       File a request
    GET    /api/leave-requests/pending               Approval queue
    POST   /api/leave-requests/{id}/approve          Approve (deducts balance)
    POST   /api/leave-requests/{id}/deny             Deny

  Cost centers:
    GET    /api/cost-centers                         List
    POST   /api/cost-centers                         Create

  Timesheets:
    POST   /api/timesheets/upload                    CSV batch import
    GET    /api/timesheet-uploads                    Batch history

  Payroll:
    POST   /api/payroll/calculate                    One employee + period
    POST   /api/payroll/bulk-calculate               Everyone for a period
    GET    /api/payroll-calculations/{id}/payslip    PDF payslip

ERROR HANDLING:
  Business-rule failures (insufficient balance, duplicate payroll, double
  decision) map to 400/409 via engine.IsClientError; missing records to 404
  via engine.IsNotFound; everything else is a 500.

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/payslip"
	"github.com/warp/hr-engine/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    engine.Storage
	Accruals *engine.AccrualCalculator
	Leave    *engine.LeaveService
	Payroll  *engine.PayrollCalculator
	Importer *timesheet.Importer
}

// NewHandler wires the engine services over the given store.
func NewHandler(store engine.Storage) *Handler {
	accruals := engine.NewAccrualCalculator(store)
	leave := engine.NewLeaveService(store)
	leave.Accruals = accruals
	return &Handler{
		Store:    store,
		Accruals: accruals,
		Leave:    leave,
		Payroll:  engine.NewPayrollCalculator(store),
		Importer: timesheet.NewImporter(store),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeNumber == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "employee_number, first_name and last_name are required", nil)
		return
	}
	startDate, err := engine.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	salary := decimal.Zero
	if req.Salary != "" {
		salary, err = decimal.NewFromString(req.Salary)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid salary", err)
			return
		}
	}

	employee, err := h.Store.CreateEmployee(r.Context(), &engine.Employee{
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Department:     req.Department,
		Position:       req.Position,
		StartDate:      startDate,
		Salary:         salary,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(employee))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	employee, err := h.Store.Employee(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(employee))
}

// =============================================================================
// LEAVE BALANCE AND ACCRUAL HANDLERS
// =============================================================================

// GetLeaveBalance returns the employee's balance after reconciling accruals,
// so a stale balance is never served.
func (h *Handler) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	balance, err := h.Accruals.ProcessAccruals(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get leave balance", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveBalanceDTO(balance))
}

// ListLeaveAccruals returns the employee's accrual ledger.
func (h *Handler) ListLeaveAccruals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	history, err := h.Store.LeaveAccrualHistory(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get accrual history", err)
		return
	}

	dtos := make([]LeaveAccrualDTO, len(history))
	for i, a := range history {
		dtos[i] = toLeaveAccrualDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ProcessAccruals forces an accrual reconciliation for the employee.
func (h *Handler) ProcessAccruals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	balance, err := h.Accruals.ProcessAccruals(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to process accruals", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveBalanceDTO(balance))
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// CreateLeaveRequest validates and files a leave request. Non-vacation types
// are auto-approved with the balance deducted in the same transaction.
func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.LeaveType != engine.LeaveCasual && req.LeaveType != engine.LeaveVacation {
		writeError(w, http.StatusBadRequest, "leave_type must be casual or vacation", nil)
		return
	}
	startDate, err := engine.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	endDate, err := engine.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}
	if endDate.Before(startDate) {
		writeError(w, http.StatusBadRequest, "end_date must not precede start_date", nil)
		return
	}
	days, err := decimal.NewFromString(req.Days)
	if err != nil || !days.IsPositive() {
		writeError(w, http.StatusBadRequest, "days must be a positive decimal", err)
		return
	}

	request, err := h.Leave.CreateRequest(r.Context(), engine.CreateRequestInput{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       days,
		Reason:     req.Reason,
		IsWithPay:  req.IsWithPay,
	})
	if err != nil {
		writeEngineError(w, "Failed to create leave request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTimeOffRequestDTO(request))
}

// ListLeaveRequests returns one employee's request history.
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	requests, err := h.Store.TimeOffRequestsByEmployee(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to list leave requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// ListPendingRequests returns the approval queue.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.PendingTimeOffRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// ApproveRequest approves a pending request, deducting the balance.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, h.Leave.Approve)
}

// DenyRequest denies a pending request. No balance mutation.
func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, h.Leave.Deny)
}

func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, requestID, approverID int64) (*engine.TimeOffRequest, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ApproverID == 0 {
		writeError(w, http.StatusBadRequest, "approver_id is required", nil)
		return
	}

	request, err := decide(r.Context(), id, req.ApproverID)
	if err != nil {
		writeEngineError(w, "Failed to decide leave request", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeOffRequestDTO(request))
}

// =============================================================================
// COST CENTER HANDLERS
// =============================================================================

// ListCostCenters returns all cost centers.
func (h *Handler) ListCostCenters(w http.ResponseWriter, r *http.Request) {
	costCenters, err := h.Store.CostCenters(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost centers", err)
		return
	}

	dtos := make([]CostCenterDTO, len(costCenters))
	for i, c := range costCenters {
		dtos[i] = toCostCenterDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCostCenter creates a cost center.
func (h *Handler) CreateCostCenter(w http.ResponseWriter, r *http.Request) {
	var req CreateCostCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Code == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "code and name are required", nil)
		return
	}

	costCenter, err := h.Store.CreateCostCenter(r.Context(), &engine.CostCenter{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		IsActive:    true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create cost center", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCostCenterDTO(costCenter))
}

// =============================================================================
// TIMESHEET HANDLERS
// =============================================================================

// ListTimesheets returns one employee's entries inside ?start=&end=.
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	start, err := engine.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := engine.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}

	entries, err := h.Store.TimesheetEntriesInRange(r.Context(), id, start, end)
	if err != nil {
		writeEngineError(w, "Failed to list timesheet entries", err)
		return
	}

	dtos := make([]TimesheetEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimesheetEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UploadTimesheets ingests a CSV batch. Multipart field "file"; the optional
// "uploaded_by" form field names the actor.
func (h *Handler) UploadTimesheets(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file upload", err)
		return
	}
	defer file.Close()

	result, err := h.Importer.ImportCSV(r.Context(), file, header.Filename, r.FormValue("uploaded_by"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to import timesheet CSV", err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResultDTO{
		Upload:    toTimesheetUploadDTO(result.Upload),
		Processed: result.Processed,
		Errors:    result.Errors,
	})
}

// ListTimesheetUploads returns the batch history, newest first.
func (h *Handler) ListTimesheetUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.Store.TimesheetUploads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list uploads", err)
		return
	}

	dtos := make([]TimesheetUploadDTO, len(uploads))
	for i, u := range uploads {
		dtos[i] = toTimesheetUploadDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL COMPONENT HANDLERS
// =============================================================================

// ListPayrollComponents returns one employee's rate history.
func (h *Handler) ListPayrollComponents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	components, err := h.Store.PayrollComponentsByEmployee(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to list payroll components", err)
		return
	}

	dtos := make([]PayrollComponentDTO, len(components))
	for i, c := range components {
		dtos[i] = toPayrollComponentDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePayrollComponent adds effective-dated rates for an employee.
func (h *Handler) CreatePayrollComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CreatePayrollComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	effectiveFrom, err := engine.ParseDate(req.EffectiveFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_from", err)
		return
	}
	var effectiveTo *engine.Date
	if req.EffectiveTo != "" {
		d, err := engine.ParseDate(req.EffectiveTo)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid effective_to", err)
			return
		}
		effectiveTo = &d
	}

	rates := [4]decimal.Decimal{}
	for i, raw := range []string{
		req.BasicSalaryPerDay, req.TransportAllowancePerDay,
		req.FoodAllowancePerDay, req.AccommodationAllowancePerDay,
	} {
		rates[i] = decimal.Zero
		if raw != "" {
			rates[i], err = decimal.NewFromString(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid rate value", err)
				return
			}
		}
	}

	// Reject rates for an unknown employee up front.
	if _, err := h.Store.Employee(r.Context(), id); err != nil {
		writeEngineError(w, "Failed to create payroll component", err)
		return
	}

	component, err := h.Store.CreatePayrollComponent(r.Context(), &engine.PayrollComponent{
		EmployeeID:                   id,
		CostCenterID:                 req.CostCenterID,
		BasicSalaryPerDay:            rates[0],
		TransportAllowancePerDay:     rates[1],
		FoodAllowancePerDay:          rates[2],
		AccommodationAllowancePerDay: rates[3],
		EffectiveFrom:                effectiveFrom,
		EffectiveTo:                  effectiveTo,
		IsActive:                     true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create payroll component", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayrollComponentDTO(component))
}

// =============================================================================
// PAYROLL CALCULATION HANDLERS
// =============================================================================

// CalculatePayroll computes one employee's payroll for a period.
func (h *Handler) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	var req CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	calc, err := h.Payroll.CalculateForEmployee(r.Context(), req.EmployeeID, req.Period)
	if err != nil {
		writeEngineError(w, "Failed to calculate payroll", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayrollCalculationDTO(calc))
}

// BulkCalculatePayroll computes payroll for every employee; employees that
// already have a row for the period are skipped.
func (h *Handler) BulkCalculatePayroll(w http.ResponseWriter, r *http.Request) {
	var req BulkCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	calcs, err := h.Payroll.BulkCalculate(r.Context(), req.Period)
	if err != nil {
		writeEngineError(w, "Failed to bulk calculate payroll", err)
		return
	}

	dtos := make([]PayrollCalculationDTO, len(calcs))
	for i, c := range calcs {
		dtos[i] = toPayrollCalculationDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListPayrollCalculations returns one employee's payroll history.
func (h *Handler) ListPayrollCalculations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	calcs, err := h.Store.PayrollCalculationsByEmployee(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to list payroll calculations", err)
		return
	}

	dtos := make([]PayrollCalculationDTO, len(calcs))
	for i, c := range calcs {
		dtos[i] = toPayrollCalculationDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPayslip renders one payroll calculation as a PDF.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	calc, err := h.Store.PayrollCalculation(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get payroll calculation", err)
		return
	}
	employee, err := h.Store.Employee(r.Context(), calc.EmployeeID)
	if err != nil {
		writeEngineError(w, "Failed to get employee", err)
		return
	}

	pdf, err := payslip.Render(employee, calc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render payslip", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="payslip-`+employee.EmployeeNumber+`-`+calc.PayrollPeriod+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// =============================================================================
// HELPERS
// =============================================================================

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func toRequestDTOs(requests []*engine.TimeOffRequest) []TimeOffRequestDTO {
	dtos := make([]TimeOffRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toTimeOffRequestDTO(r)
	}
	return dtos
}

// writeEngineError maps an engine error to the HTTP status the taxonomy
// implies: 404 missing record, 409 state conflicts, 400 other business-rule
// failures, 500 everything else.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrPayrollExists) || errors.Is(err, engine.ErrInvalidState):
		writeError(w, http.StatusConflict, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
