/*
storage.go - Persistence interface for the engine

PURPOSE:
  Storage is the complete persistence surface the calculators and the API
  depend on. Implementations live under store/ (memory, sqlite, postgres);
  the engine never imports them.

TRANSACTIONS:
  TxStorage adds WithTx. The function receives a Storage view scoped to the
  transaction; returning an error rolls everything back. Calculators run
  each public operation inside one transaction and pass the transactional
  view down to their unexported helpers, so nested operations share it
  instead of opening a second transaction.
*/
package engine

import "context"

// Storage is the persistence interface the engine operates on.
// Missing records are reported as errors wrapping ErrNotFound.
type Storage interface {
	// Employees
	CreateEmployee(ctx context.Context, e *Employee) (*Employee, error)
	Employee(ctx context.Context, id int64) (*Employee, error)
	Employees(ctx context.Context) ([]*Employee, error)

	// Leave balances - one row per (employee, year)
	LeaveBalance(ctx context.Context, employeeID int64, year int) (*LeaveBalance, error)
	CreateLeaveBalance(ctx context.Context, b *LeaveBalance) (*LeaveBalance, error)
	UpdateLeaveBalance(ctx context.Context, id int64, patch LeaveBalancePatch) (*LeaveBalance, error)

	// Accrual ledger - append-only
	AppendLeaveAccrual(ctx context.Context, a *LeaveAccrual) (*LeaveAccrual, error)
	LeaveAccrualHistory(ctx context.Context, employeeID int64) ([]*LeaveAccrual, error)

	// Time-off requests
	CreateTimeOffRequest(ctx context.Context, r *TimeOffRequest) (*TimeOffRequest, error)
	TimeOffRequest(ctx context.Context, id int64) (*TimeOffRequest, error)
	UpdateTimeOffRequest(ctx context.Context, id int64, patch TimeOffRequestPatch) (*TimeOffRequest, error)
	TimeOffRequestsByEmployee(ctx context.Context, employeeID int64) ([]*TimeOffRequest, error)
	PendingTimeOffRequests(ctx context.Context) ([]*TimeOffRequest, error)
	ApprovedTimeOffRequestsInRange(ctx context.Context, employeeID int64, start, end Date) ([]*TimeOffRequest, error)

	// Cost centers
	CreateCostCenter(ctx context.Context, c *CostCenter) (*CostCenter, error)
	CostCenters(ctx context.Context) ([]*CostCenter, error)
	CostCenterByCode(ctx context.Context, code string) (*CostCenter, error)

	// Timesheets
	CreateTimesheetEntries(ctx context.Context, entries []*TimesheetEntry) ([]*TimesheetEntry, error)
	TimesheetEntriesInRange(ctx context.Context, employeeID int64, start, end Date) ([]*TimesheetEntry, error)
	CreateTimesheetUpload(ctx context.Context, u *TimesheetUpload) (*TimesheetUpload, error)
	UpdateTimesheetUpload(ctx context.Context, id int64, patch TimesheetUploadPatch) (*TimesheetUpload, error)
	TimesheetUploads(ctx context.Context) ([]*TimesheetUpload, error)

	// Payroll components - effective-dated rates
	CreatePayrollComponent(ctx context.Context, c *PayrollComponent) (*PayrollComponent, error)
	PayrollComponentsByEmployee(ctx context.Context, employeeID int64) ([]*PayrollComponent, error)
	CurrentPayrollComponent(ctx context.Context, employeeID int64, asOf Date) (*PayrollComponent, error)

	// Payroll calculations - one row per (employee, period)
	CreatePayrollCalculation(ctx context.Context, c *PayrollCalculation) (*PayrollCalculation, error)
	PayrollCalculation(ctx context.Context, id int64) (*PayrollCalculation, error)
	PayrollCalculationByPeriod(ctx context.Context, employeeID int64, period string) (*PayrollCalculation, error)
	PayrollCalculationsByEmployee(ctx context.Context, employeeID int64) ([]*PayrollCalculation, error)
}

// TxStorage is a Storage that can scope a group of operations to one
// transaction.
type TxStorage interface {
	Storage
	WithTx(ctx context.Context, fn func(Storage) error) error
}

// withTx runs fn transactionally when the store supports it, and directly
// otherwise. Used by calculators so they accept a plain Storage in tests.
func withTx(ctx context.Context, store Storage, fn func(Storage) error) error {
	if tx, ok := store.(TxStorage); ok {
		return tx.WithTx(ctx, fn)
	}
	return fn(store)
}
