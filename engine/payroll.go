/*
payroll.go - Monthly payroll computation

PURPOSE:
  Turns a month of timesheet entries plus the employee's current per-day
  rates into one draft PayrollCalculation.

COMPUTATION:
  daysWorked   = count of timesheet entries in the period
  hours/OT     = sums over the same entries
  component    = per-day rate * daysWorked (basic, transport, food,
                 accommodation)
  overtimePay  = overtimeHours * (basicPerDay / 8 * 1.5)
  gross        = basic + transport + food + accommodation + overtimePay
  deductions   = 0, net = gross
  leaveDays    = approved requests strictly contained in the period;
                 recorded for reporting, never deducted from pay

One calculation per (employee, period); recomputation requires deleting
the draft out of band.
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

var (
	hoursPerDay    = decimal.NewFromInt(8)
	overtimeFactor = decimal.NewFromFloat(1.5)
)

// PayrollCalculator computes and persists payroll calculations.
type PayrollCalculator struct {
	Store Storage
	Now   func() Date
}

func NewPayrollCalculator(store Storage) *PayrollCalculator {
	return &PayrollCalculator{Store: store, Now: Today}
}

func (pc *PayrollCalculator) now() Date {
	if pc.Now != nil {
		return pc.Now()
	}
	return Today()
}

// CalculateForEmployee computes the payroll for one employee and YYYY-MM
// period and persists it as a draft. Fails with ErrPayrollExists when a
// calculation for the pair already exists and ErrNoPayrollComponent when
// the employee has no current rates.
func (pc *PayrollCalculator) CalculateForEmployee(ctx context.Context, employeeID int64, period string) (*PayrollCalculation, error) {
	var calc *PayrollCalculation
	err := withTx(ctx, pc.Store, func(store Storage) error {
		var err error
		calc, err = pc.calculate(ctx, store, employeeID, period)
		return err
	})
	return calc, err
}

func (pc *PayrollCalculator) calculate(ctx context.Context, store Storage, employeeID int64, period string) (*PayrollCalculation, error) {
	start, end, err := PeriodBounds(period)
	if err != nil {
		return nil, err
	}

	if _, err := store.Employee(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("calculate payroll: %w", err)
	}

	existing, err := store.PayrollCalculationByPeriod(ctx, employeeID, period)
	if err != nil && !IsNotFound(err) {
		return nil, fmt.Errorf("calculate payroll: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("employee %d period %s: %w", employeeID, period, ErrPayrollExists)
	}

	component, err := store.CurrentPayrollComponent(ctx, employeeID, pc.now())
	if err != nil {
		if IsNotFound(err) {
			return nil, &NoPayrollComponentError{EmployeeID: employeeID}
		}
		return nil, fmt.Errorf("calculate payroll: %w", err)
	}

	entries, err := store.TimesheetEntriesInRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("calculate payroll: %w", err)
	}

	daysWorked := decimal.NewFromInt(int64(len(entries)))
	totalHours := decimal.Zero
	overtimeHours := decimal.Zero
	for _, e := range entries {
		totalHours = totalHours.Add(e.HoursWorked)
		overtimeHours = overtimeHours.Add(e.OvertimeHours)
	}

	leaveDays, err := pc.leaveDaysTaken(ctx, store, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	basic := component.BasicSalaryPerDay.Mul(daysWorked)
	transport := component.TransportAllowancePerDay.Mul(daysWorked)
	food := component.FoodAllowancePerDay.Mul(daysWorked)
	accommodation := component.AccommodationAllowancePerDay.Mul(daysWorked)

	overtimeRate := component.BasicSalaryPerDay.Div(hoursPerDay).Mul(overtimeFactor)
	overtimePay := overtimeHours.Mul(overtimeRate)

	gross := basic.Add(transport).Add(food).Add(accommodation).Add(overtimePay)
	deductions := decimal.Zero
	net := gross.Sub(deductions)

	calc, err := store.CreatePayrollCalculation(ctx, &PayrollCalculation{
		EmployeeID:             employeeID,
		PayrollPeriod:          period,
		TotalDaysWorked:        daysWorked,
		TotalHoursWorked:       totalHours,
		OvertimeHours:          overtimeHours,
		LeaveDaysTaken:         leaveDays,
		BasicSalary:            basic,
		TransportAllowance:     transport,
		FoodAllowance:          food,
		AccommodationAllowance: accommodation,
		OvertimePay:            overtimePay,
		GrossSalary:            gross,
		Deductions:             deductions,
		NetSalary:              net,
		Status:                 PayrollDraft,
		CalculatedAt:           time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("calculate payroll: %w", err)
	}
	return calc, nil
}

// leaveDaysTaken sums the days of approved requests whose full range falls
// inside the period. Requests straddling a month boundary attribute to
// neither month.
func (pc *PayrollCalculator) leaveDaysTaken(ctx context.Context, store Storage, employeeID int64, start, end Date) (decimal.Decimal, error) {
	requests, err := store.ApprovedTimeOffRequestsInRange(ctx, employeeID, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculate payroll: %w", err)
	}
	total := decimal.Zero
	for _, r := range requests {
		total = total.Add(r.Days)
	}
	return total, nil
}

// BulkCalculate runs CalculateForEmployee for every employee. Employees with
// an existing calculation are skipped silently; other failures are logged
// and do not stop the batch. Returns the calculations created.
func (pc *PayrollCalculator) BulkCalculate(ctx context.Context, period string) ([]*PayrollCalculation, error) {
	employees, err := pc.Store.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("bulk calculate: %w", err)
	}

	var results []*PayrollCalculation
	for _, employee := range employees {
		calc, err := pc.CalculateForEmployee(ctx, employee.ID, period)
		if err != nil {
			if errors.Is(err, ErrPayrollExists) {
				continue
			}
			log.Printf("payroll: skipping employee %d for %s: %v", employee.ID, period, err)
			continue
		}
		results = append(results, calc)
	}
	return results, nil
}
