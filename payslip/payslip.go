/*
Package payslip renders a payroll calculation as a PDF document.

PURPOSE:
  Produces the A4 payslip handed to an employee for one payroll period:
  identity, worked-time aggregates, the earning components, gross,
  deductions, and net.

The renderer is pure: it takes the already-computed entities and returns
bytes, leaving storage and delivery to the caller.
*/
package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/hr-engine/engine"
)

// Render produces the PDF payslip for one employee and calculation.
func Render(employee *engine.Employee, calc *engine.PayrollCalculation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)",
		employee.FirstName, employee.LastName, employee.EmployeeNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", employee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", calc.PayrollPeriod))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Days worked: %s", calc.TotalDaysWorked))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hours worked: %s", calc.TotalHoursWorked))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime hours: %s", calc.OvertimeHours))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave days taken: %s", calc.LeaveDaysTaken))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	line := func(label string, amount fmt.Stringer) {
		pdf.Cell(120, 8, label)
		pdf.CellFormat(40, 8, amount.String(), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	line("Basic salary", calc.BasicSalary)
	line("Transport allowance", calc.TransportAllowance)
	line("Food allowance", calc.FoodAllowance)
	line("Accommodation allowance", calc.AccommodationAllowance)
	line("Overtime pay", calc.OvertimePay)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Gross salary", calc.GrossSalary)
	pdf.SetFont("Helvetica", "", 12)
	line("Deductions", calc.Deductions)
	pdf.SetFont("Helvetica", "B", 14)
	line("Net salary", calc.NetSalary)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
