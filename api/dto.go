/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

PRECISION:
  Day counts and money cross the wire as decimal strings ("2.5", "2950"),
  never as JSON numbers, so clients cannot lose precision to float parsing.
  Dates are YYYY-MM-DD strings; instants are RFC3339.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/timesheet"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID             int64  `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	StartDate      string `json:"start_date"`
	Salary         string `json:"salary"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	StartDate      string `json:"start_date"`
	Salary         string `json:"salary"`
}

// LeaveBalanceDTO represents one employee-year balance row.
type LeaveBalanceDTO struct {
	ID                   int64  `json:"id"`
	EmployeeID           int64  `json:"employee_id"`
	Year                 int    `json:"year"`
	CasualLeaveBalance   string `json:"casual_leave_balance"`
	VacationLeaveBalance string `json:"vacation_leave_balance"`
	LastAccrualDate      string `json:"last_accrual_date,omitempty"`
}

// LeaveAccrualDTO represents one accrual ledger row.
type LeaveAccrualDTO struct {
	ID          int64  `json:"id"`
	EmployeeID  int64  `json:"employee_id"`
	AccrualType string `json:"accrual_type"`
	Amount      string `json:"amount"`
	AccrualDate string `json:"accrual_date"`
	Reason      string `json:"reason,omitempty"`
}

// CreateLeaveRequestRequest is the request to file a leave request.
type CreateLeaveRequestRequest struct {
	EmployeeID int64  `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       string `json:"days"`
	Reason     string `json:"reason,omitempty"`
	IsWithPay  *bool  `json:"is_with_pay,omitempty"`
}

// TimeOffRequestDTO represents a leave request in API responses.
type TimeOffRequestDTO struct {
	ID               int64  `json:"id"`
	EmployeeID       int64  `json:"employee_id"`
	LeaveType        string `json:"leave_type"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Days             string `json:"days"`
	Reason           string `json:"reason,omitempty"`
	Status           string `json:"status"`
	RequiresApproval bool   `json:"requires_approval"`
	IsWithPay        bool   `json:"is_with_pay"`
	ApproverID       *int64 `json:"approver_id,omitempty"`
	ResponseDate     string `json:"response_date,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// DecideRequest is the body for approve/deny actions.
type DecideRequest struct {
	ApproverID int64 `json:"approver_id"`
}

// CostCenterDTO represents a cost center.
type CostCenterDTO struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Department  string `json:"department,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// CreateCostCenterRequest is the request to create a cost center.
type CreateCostCenterRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Department  string `json:"department"`
}

// TimesheetEntryDTO represents one worked day.
type TimesheetEntryDTO struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"employee_id"`
	CostCenterID  int64  `json:"cost_center_id,omitempty"`
	WorkDate      string `json:"work_date"`
	HoursWorked   string `json:"hours_worked"`
	OvertimeHours string `json:"overtime_hours"`
	BreakHours    string `json:"break_hours"`
	Remarks       string `json:"remarks,omitempty"`
	UploadBatchID string `json:"upload_batch_id,omitempty"`
	IsManualEntry bool   `json:"is_manual_entry"`
}

// TimesheetUploadDTO represents one CSV ingestion batch.
type TimesheetUploadDTO struct {
	ID               int64  `json:"id"`
	BatchID          string `json:"batch_id"`
	Filename         string `json:"filename"`
	UploadedBy       string `json:"uploaded_by,omitempty"`
	TotalRecords     int    `json:"total_records"`
	ProcessedRecords int    `json:"processed_records"`
	ErrorRecords     int    `json:"error_records"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// UploadResultDTO is the response after a CSV import.
type UploadResultDTO struct {
	Upload    TimesheetUploadDTO  `json:"upload"`
	Processed int                 `json:"processed"`
	Errors    []timesheet.RowError `json:"errors,omitempty"`
}

// PayrollComponentDTO represents effective-dated per-day rates.
type PayrollComponentDTO struct {
	ID                           int64  `json:"id"`
	EmployeeID                   int64  `json:"employee_id"`
	CostCenterID                 *int64 `json:"cost_center_id,omitempty"`
	BasicSalaryPerDay            string `json:"basic_salary_per_day"`
	TransportAllowancePerDay     string `json:"transport_allowance_per_day"`
	FoodAllowancePerDay          string `json:"food_allowance_per_day"`
	AccommodationAllowancePerDay string `json:"accommodation_allowance_per_day"`
	EffectiveFrom                string `json:"effective_from"`
	EffectiveTo                  string `json:"effective_to,omitempty"`
	IsActive                     bool   `json:"is_active"`
}

// CreatePayrollComponentRequest is the request to add rates for an employee.
type CreatePayrollComponentRequest struct {
	CostCenterID                 *int64 `json:"cost_center_id,omitempty"`
	BasicSalaryPerDay            string `json:"basic_salary_per_day"`
	TransportAllowancePerDay     string `json:"transport_allowance_per_day"`
	FoodAllowancePerDay          string `json:"food_allowance_per_day"`
	AccommodationAllowancePerDay string `json:"accommodation_allowance_per_day"`
	EffectiveFrom                string `json:"effective_from"`
	EffectiveTo                  string `json:"effective_to,omitempty"`
}

// PayrollCalculationDTO represents one computed payroll.
type PayrollCalculationDTO struct {
	ID               int64  `json:"id"`
	EmployeeID       int64  `json:"employee_id"`
	PayrollPeriod    string `json:"payroll_period"`
	TotalDaysWorked  string `json:"total_days_worked"`
	TotalHoursWorked string `json:"total_hours_worked"`
	OvertimeHours    string `json:"overtime_hours"`
	LeaveDaysTaken   string `json:"leave_days_taken"`

	BasicSalary            string `json:"basic_salary"`
	TransportAllowance     string `json:"transport_allowance"`
	FoodAllowance          string `json:"food_allowance"`
	AccommodationAllowance string `json:"accommodation_allowance"`
	OvertimePay            string `json:"overtime_pay"`

	GrossSalary string `json:"gross_salary"`
	Deductions  string `json:"deductions"`
	NetSalary   string `json:"net_salary"`

	Status       string `json:"status"`
	CalculatedAt string `json:"calculated_at,omitempty"`
}

// CalculatePayrollRequest is the request to compute one employee's payroll.
type CalculatePayrollRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Period     string `json:"period"` // YYYY-MM
}

// BulkCalculateRequest is the request to compute payroll for everyone.
type BulkCalculateRequest struct {
	Period string `json:"period"` // YYYY-MM
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e *engine.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Department:     e.Department,
		Position:       e.Position,
		StartDate:      e.StartDate.String(),
		Salary:         e.Salary.String(),
		Status:         e.Status,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

func toLeaveBalanceDTO(b *engine.LeaveBalance) LeaveBalanceDTO {
	dto := LeaveBalanceDTO{
		ID:                   b.ID,
		EmployeeID:           b.EmployeeID,
		Year:                 b.Year,
		CasualLeaveBalance:   b.CasualLeaveBalance.String(),
		VacationLeaveBalance: b.VacationLeaveBalance.String(),
	}
	if !b.LastAccrualDate.IsZero() {
		dto.LastAccrualDate = b.LastAccrualDate.String()
	}
	return dto
}

func toLeaveAccrualDTO(a *engine.LeaveAccrual) LeaveAccrualDTO {
	return LeaveAccrualDTO{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		AccrualType: a.AccrualType,
		Amount:      a.Amount.String(),
		AccrualDate: a.AccrualDate.String(),
		Reason:      a.Reason,
	}
}

func toTimeOffRequestDTO(r *engine.TimeOffRequest) TimeOffRequestDTO {
	dto := TimeOffRequestDTO{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		LeaveType:        r.LeaveType,
		StartDate:        r.StartDate.String(),
		EndDate:          r.EndDate.String(),
		Days:             r.Days.String(),
		Reason:           r.Reason,
		Status:           r.Status,
		RequiresApproval: r.RequiresApproval,
		IsWithPay:        r.IsWithPay,
		ApproverID:       r.ApproverID,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResponseDate != nil {
		dto.ResponseDate = r.ResponseDate.Format(time.RFC3339)
	}
	return dto
}

func toCostCenterDTO(c *engine.CostCenter) CostCenterDTO {
	return CostCenterDTO{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Department:  c.Department,
		IsActive:    c.IsActive,
	}
}

func toTimesheetEntryDTO(e *engine.TimesheetEntry) TimesheetEntryDTO {
	return TimesheetEntryDTO{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		CostCenterID:  e.CostCenterID,
		WorkDate:      e.WorkDate.String(),
		HoursWorked:   e.HoursWorked.String(),
		OvertimeHours: e.OvertimeHours.String(),
		BreakHours:    e.BreakHours.String(),
		Remarks:       e.Remarks,
		UploadBatchID: e.UploadBatchID,
		IsManualEntry: e.IsManualEntry,
	}
}

func toTimesheetUploadDTO(u *engine.TimesheetUpload) TimesheetUploadDTO {
	return TimesheetUploadDTO{
		ID:               u.ID,
		BatchID:          u.BatchID,
		Filename:         u.Filename,
		UploadedBy:       u.UploadedBy,
		TotalRecords:     u.TotalRecords,
		ProcessedRecords: u.ProcessedRecords,
		ErrorRecords:     u.ErrorRecords,
		Status:           u.Status,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339),
	}
}

func toPayrollComponentDTO(c *engine.PayrollComponent) PayrollComponentDTO {
	dto := PayrollComponentDTO{
		ID:                           c.ID,
		EmployeeID:                   c.EmployeeID,
		CostCenterID:                 c.CostCenterID,
		BasicSalaryPerDay:            c.BasicSalaryPerDay.String(),
		TransportAllowancePerDay:     c.TransportAllowancePerDay.String(),
		FoodAllowancePerDay:          c.FoodAllowancePerDay.String(),
		AccommodationAllowancePerDay: c.AccommodationAllowancePerDay.String(),
		EffectiveFrom:                c.EffectiveFrom.String(),
		IsActive:                     c.IsActive,
	}
	if c.EffectiveTo != nil {
		dto.EffectiveTo = c.EffectiveTo.String()
	}
	return dto
}

func toPayrollCalculationDTO(c *engine.PayrollCalculation) PayrollCalculationDTO {
	return PayrollCalculationDTO{
		ID:                     c.ID,
		EmployeeID:             c.EmployeeID,
		PayrollPeriod:          c.PayrollPeriod,
		TotalDaysWorked:        c.TotalDaysWorked.String(),
		TotalHoursWorked:       c.TotalHoursWorked.String(),
		OvertimeHours:          c.OvertimeHours.String(),
		LeaveDaysTaken:         c.LeaveDaysTaken.String(),
		BasicSalary:            c.BasicSalary.String(),
		TransportAllowance:     c.TransportAllowance.String(),
		FoodAllowance:          c.FoodAllowance.String(),
		AccommodationAllowance: c.AccommodationAllowance.String(),
		OvertimePay:            c.OvertimePay.String(),
		GrossSalary:            c.GrossSalary.String(),
		Deductions:             c.Deductions.String(),
		NetSalary:              c.NetSalary.String(),
		Status:                 c.Status,
		CalculatedAt:           c.CalculatedAt.Format(time.RFC3339),
	}
}
