package payslip_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hr-engine/engine"
	"github.com/warp/hr-engine/payslip"
)

func TestRender_ProducesPDF(t *testing.T) {
	employee := &engine.Employee{
		ID:             1,
		EmployeeNumber: "EMP-001",
		FirstName:      "Asha",
		LastName:       "Perera",
		Email:          "asha.perera@example.com",
		StartDate:      engine.NewDate(2024, time.January, 1),
	}
	calc := &engine.PayrollCalculation{
		EmployeeID:             1,
		PayrollPeriod:          "2024-03",
		TotalDaysWorked:        decimal.NewFromInt(20),
		TotalHoursWorked:       decimal.NewFromInt(160),
		OvertimeHours:          decimal.NewFromInt(2),
		LeaveDaysTaken:         decimal.NewFromInt(1),
		BasicSalary:            decimal.NewFromInt(2000),
		TransportAllowance:     decimal.NewFromInt(200),
		FoodAllowance:          decimal.NewFromInt(100),
		AccommodationAllowance: decimal.NewFromInt(150),
		OvertimePay:            decimal.RequireFromString("37.5"),
		GrossSalary:            decimal.RequireFromString("2487.5"),
		Deductions:             decimal.Zero,
		NetSalary:              decimal.RequireFromString("2487.5"),
		Status:                 engine.PayrollDraft,
	}

	pdf, err := payslip.Render(employee, calc)
	require.NoError(t, err)

	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
