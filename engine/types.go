/*
Package engine implements the leave-accrual and payroll-calculation engine.

PURPOSE:
  This package contains the domain entities and the three calculators that
  operate on them:
    - AccrualCalculator: derives leave entitlement from tenure and reconciles
      stored balances against it (accrual.go)
    - LeaveService: validates requests against balances and mediates the
      approval workflow (leave.go)
    - PayrollCalculator: aggregates timesheets and approved leave into a
      monthly payroll computation (payroll.go)

DESIGN PRINCIPLES:
  1. Precision: day balances and money are decimal.Decimal, never float
  2. Explicit mutation: partial updates go through per-entity patch structs
     that enumerate exactly the columns an operation may touch
  3. Injected persistence: all calculators operate on the Storage interface
     (storage.go) so an in-memory store can substitute for SQL in tests

SEE ALSO:
  - storage.go: Storage/TxStorage interfaces
  - errors.go: sentinel and structured errors
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEAVE TYPES AND STATUSES
// =============================================================================

const (
	LeaveCasual   = "casual"
	LeaveVacation = "vacation"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

const (
	PayrollDraft    = "draft"
	PayrollApproved = "approved"
	PayrollPaid     = "paid"
)

const (
	EmployeeActive     = "active"
	EmployeeInactive   = "inactive"
	EmployeeTerminated = "terminated"
)

// =============================================================================
// ENTITIES
// =============================================================================

// Employee is the tenure anchor for accrual math. The engine reads employees
// but never mutates them beyond what the directory API exposes.
type Employee struct {
	ID             int64
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Department     string
	Position       string
	StartDate      Date
	Salary         decimal.Decimal
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeaveBalance holds the two leave balances for one employee and year.
// Exactly one row exists per (employee, year); both balances stay >= 0
// after every engine-driven mutation.
type LeaveBalance struct {
	ID                   int64
	EmployeeID           int64
	Year                 int
	CasualLeaveBalance   decimal.Decimal
	VacationLeaveBalance decimal.Decimal
	LastAccrualDate      Date
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Balance returns the stored balance for the given leave type.
func (b LeaveBalance) Balance(leaveType string) decimal.Decimal {
	if leaveType == LeaveCasual {
		return b.CasualLeaveBalance
	}
	return b.VacationLeaveBalance
}

// LeaveBalancePatch enumerates the balance columns the engine may update.
type LeaveBalancePatch struct {
	CasualLeaveBalance   *decimal.Decimal
	VacationLeaveBalance *decimal.Decimal
	LastAccrualDate      *Date
}

// LeaveAccrual is one row of the append-only accrual ledger. Rows are never
// mutated or deleted; they exist to reconstruct how a balance was reached.
type LeaveAccrual struct {
	ID          int64
	EmployeeID  int64
	AccrualType string // casual, vacation
	Amount      decimal.Decimal
	AccrualDate Date
	Reason      string
	CreatedAt   time.Time
}

// TimeOffRequest is a leave request. Created pending (vacation) or
// auto-approved (everything else); transitions exactly once to a terminal
// status by an approver action.
type TimeOffRequest struct {
	ID               int64
	EmployeeID       int64
	LeaveType        string
	StartDate        Date
	EndDate          Date
	Days             decimal.Decimal
	Reason           string
	Status           string
	RequiresApproval bool
	IsWithPay        bool
	ApproverID       *int64
	ResponseDate     *time.Time
	CreatedAt        time.Time
}

// TimeOffRequestPatch enumerates the columns an approval decision may touch.
type TimeOffRequestPatch struct {
	Status       *string
	ApproverID   *int64
	ResponseDate *time.Time
}

// CostCenter classifies timesheet entries for payroll attribution.
// Static reference data to the engine.
type CostCenter struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Department  string
	IsActive    bool
	CreatedAt   time.Time
}

// TimesheetEntry records one worked day. The engine reads these; ingestion
// happens through the timesheet package or manual entry.
type TimesheetEntry struct {
	ID            int64
	EmployeeID    int64
	CostCenterID  int64
	WorkDate      Date
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
	BreakHours    decimal.Decimal
	Remarks       string
	UploadBatchID string
	IsManualEntry bool
	CreatedAt     time.Time
}

// PayrollComponent is an employee's effective-dated per-day compensation
// rates. At most one row is current (active and covering today) per
// employee at any instant.
type PayrollComponent struct {
	ID                           int64
	EmployeeID                   int64
	CostCenterID                 *int64
	BasicSalaryPerDay            decimal.Decimal
	TransportAllowancePerDay     decimal.Decimal
	FoodAllowancePerDay          decimal.Decimal
	AccommodationAllowancePerDay decimal.Decimal
	EffectiveFrom                Date
	EffectiveTo                  *Date // nil = open-ended
	IsActive                     bool
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// Covers reports whether the component's effective range includes the date.
func (c PayrollComponent) Covers(d Date) bool {
	if d.Before(c.EffectiveFrom) {
		return false
	}
	return c.EffectiveTo == nil || c.EffectiveTo.AfterOrEqual(d)
}

// PayrollCalculation is the computed payroll for one employee and period.
// One row per (employee, period); created as draft.
type PayrollCalculation struct {
	ID               int64
	EmployeeID       int64
	PayrollPeriod    string // YYYY-MM
	TotalDaysWorked  decimal.Decimal
	TotalHoursWorked decimal.Decimal
	OvertimeHours    decimal.Decimal
	LeaveDaysTaken   decimal.Decimal

	BasicSalary            decimal.Decimal
	TransportAllowance     decimal.Decimal
	FoodAllowance          decimal.Decimal
	AccommodationAllowance decimal.Decimal
	OvertimePay            decimal.Decimal

	GrossSalary decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal

	Status       string
	CalculatedAt time.Time
	CreatedAt    time.Time
}

// TimesheetUpload tracks one CSV ingestion batch.
type TimesheetUpload struct {
	ID               int64
	BatchID          string
	Filename         string
	UploadedBy       string
	TotalRecords     int
	ProcessedRecords int
	ErrorRecords     int
	Status           string // processing, completed, completed_with_errors
	ErrorDetails     string // JSON-encoded row errors
	CreatedAt        time.Time
}

// TimesheetUploadPatch enumerates the columns ingestion may update.
type TimesheetUploadPatch struct {
	TotalRecords     *int
	ProcessedRecords *int
	ErrorRecords     *int
	Status           *string
	ErrorDetails     *string
}
