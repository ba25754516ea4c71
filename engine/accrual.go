/*
accrual.go - Tenure-based leave entitlement

PURPOSE:
  Derives how much leave an employee has earned from their start date and
  reconciles the stored balance up to that entitlement.

ACCRUAL POLICIES:
  Casual:   1 day per 20 working days, working days approximated as
            floor(daysSinceStart / 7) * 5
  Vacation: 5 days per completed quarter, quarters counted as
            floor(calendarMonthsSinceStart / 3)

KEY PROPERTIES:
  - Idempotent: a second run at the same instant changes nothing
  - Monotonic: reconciliation raises a balance to the computed entitlement
    when the entitlement exceeds it, and never lowers one
  - Ledgered: every raise appends a LeaveAccrual history row
*/
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTITLEMENT POLICIES
// =============================================================================

// CasualEntitlement returns the casual leave days earned between startDate
// and asOf: one day per 20 working days, with working days approximated as
// five per full week of tenure.
func CasualEntitlement(startDate, asOf Date) decimal.Decimal {
	days := DaysBetween(startDate, asOf)
	if days < 0 {
		return decimal.Zero
	}
	workingDays := (days / 7) * 5
	return decimal.NewFromInt(int64(workingDays / 20))
}

// VacationEntitlement returns the vacation days earned between startDate and
// asOf: five days per completed quarter, with quarters counted from calendar
// months regardless of the day within the month.
func VacationEntitlement(startDate, asOf Date) decimal.Decimal {
	months := MonthsBetween(startDate, asOf)
	if months < 0 {
		return decimal.Zero
	}
	quarters := months / 3
	return decimal.NewFromInt(int64(quarters * 5))
}

// =============================================================================
// ACCRUAL CALCULATOR
// =============================================================================

// AccrualCalculator reconciles stored leave balances against computed
// entitlements.
type AccrualCalculator struct {
	Store Storage
	Now   func() Date // injectable clock; defaults to Today
}

func NewAccrualCalculator(store Storage) *AccrualCalculator {
	return &AccrualCalculator{Store: store, Now: Today}
}

func (ac *AccrualCalculator) now() Date {
	if ac.Now != nil {
		return ac.Now()
	}
	return Today()
}

// ProcessAccruals brings the employee's current-year balance up to the
// computed entitlements, creating the balance row if missing and appending
// one ledger entry per raised leave type. Safe to call any number of times.
func (ac *AccrualCalculator) ProcessAccruals(ctx context.Context, employeeID int64) (*LeaveBalance, error) {
	var balance *LeaveBalance
	err := withTx(ctx, ac.Store, func(store Storage) error {
		var err error
		balance, err = ac.process(ctx, store, employeeID)
		return err
	})
	return balance, err
}

// process is ProcessAccruals inside an already-open transaction; other
// engine operations that must accrue-then-act call this with their own
// transactional view.
func (ac *AccrualCalculator) process(ctx context.Context, store Storage, employeeID int64) (*LeaveBalance, error) {
	employee, err := store.Employee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("process accruals: %w", err)
	}

	today := ac.now()
	year := today.Year()

	balance, err := store.LeaveBalance(ctx, employeeID, year)
	if err != nil {
		if !IsNotFound(err) {
			return nil, fmt.Errorf("process accruals: %w", err)
		}
		balance, err = store.CreateLeaveBalance(ctx, &LeaveBalance{
			EmployeeID:           employeeID,
			Year:                 year,
			CasualLeaveBalance:   decimal.Zero,
			VacationLeaveBalance: decimal.Zero,
			LastAccrualDate:      today,
		})
		if err != nil {
			return nil, fmt.Errorf("process accruals: %w", err)
		}
	}

	casual := CasualEntitlement(employee.StartDate, today)
	vacation := VacationEntitlement(employee.StartDate, today)

	patch := LeaveBalancePatch{}
	if casual.GreaterThan(balance.CasualLeaveBalance) {
		delta := casual.Sub(balance.CasualLeaveBalance)
		patch.CasualLeaveBalance = &casual
		if err := ac.record(ctx, store, employeeID, LeaveCasual, delta, today,
			fmt.Sprintf("Accrued %s casual leave days (1 day per 20 working days)", delta)); err != nil {
			return nil, err
		}
	}
	if vacation.GreaterThan(balance.VacationLeaveBalance) {
		delta := vacation.Sub(balance.VacationLeaveBalance)
		patch.VacationLeaveBalance = &vacation
		if err := ac.record(ctx, store, employeeID, LeaveVacation, delta, today,
			fmt.Sprintf("Accrued %s vacation leave days (5 days per completed quarter)", delta)); err != nil {
			return nil, err
		}
	}

	if patch.CasualLeaveBalance == nil && patch.VacationLeaveBalance == nil {
		return balance, nil
	}

	patch.LastAccrualDate = &today
	updated, err := store.UpdateLeaveBalance(ctx, balance.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("process accruals: %w", err)
	}
	return updated, nil
}

func (ac *AccrualCalculator) record(ctx context.Context, store Storage, employeeID int64, leaveType string, amount decimal.Decimal, date Date, reason string) error {
	_, err := store.AppendLeaveAccrual(ctx, &LeaveAccrual{
		EmployeeID:  employeeID,
		AccrualType: leaveType,
		Amount:      amount,
		AccrualDate: date,
		Reason:      reason,
	})
	if err != nil {
		return fmt.Errorf("record accrual: %w", err)
	}
	return nil
}
