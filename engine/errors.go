/*
errors.go - Centralized error types for the engine

ERROR CATEGORIES:
  1. Validation failures - expected business-rule outcomes (insufficient
     balance, missing balance row, missing payroll component). Reported to
     the caller as structured failures, never as crashes.
  2. Not-found - unknown employee/request/record ids. Reported, not retried.
  3. State violations - a terminal request transitioned twice.

Callers match with errors.Is(); the structured types carry the amounts a
client needs to render a useful message.
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is wrapped by stores for any missing record.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance is returned when a request or deduction exceeds
	// the available leave balance.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// ErrBalanceNotFound is returned when no balance row exists for the
	// employee even after an accrual reconciliation attempt.
	ErrBalanceNotFound = errors.New("leave balance not found")

	// ErrNoPayrollComponent is returned when an employee has no current
	// compensation rates; payroll cannot be computed without one.
	ErrNoPayrollComponent = errors.New("no current payroll component")

	// ErrPayrollExists is returned when a payroll calculation already exists
	// for the (employee, period) pair.
	ErrPayrollExists = errors.New("payroll calculation already exists for period")

	// ErrInvalidState is returned when a terminal request is approved or
	// denied a second time.
	ErrInvalidState = errors.New("invalid request state")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InsufficientBalanceError reports a balance shortage with the figures the
// caller needs for its message.
type InsufficientBalanceError struct {
	EmployeeID int64
	LeaveType  string
	Available  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient %s leave balance. Available: %s days, Requested: %s days",
		e.LeaveType, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// NoPayrollComponentError identifies the employee missing compensation rates.
type NoPayrollComponentError struct {
	EmployeeID int64
}

func (e *NoPayrollComponentError) Error() string {
	return fmt.Sprintf("no current payroll component for employee %d", e.EmployeeID)
}

func (e *NoPayrollComponentError) Unwrap() error { return ErrNoPayrollComponent }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is an expected business-rule
// failure rather than a defect.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrBalanceNotFound) ||
		errors.Is(err, ErrNoPayrollComponent) ||
		errors.Is(err, ErrPayrollExists) ||
		errors.Is(err, ErrInvalidState)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
