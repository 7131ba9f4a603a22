package payroll

import (
	"context"
	"fmt"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculatorConfig carries the payroll policy knobs.
type CalculatorConfig struct {
	WeekendPolicy        WeekendPolicy
	StandardWeeklyHours  int
	StandardMonthlyHours int
}

// Calculator derives one employee's salary breakdown for one period:
// validate -> resolve components -> leave/overtime -> tax -> insurance ->
// assemble. It holds no state between invocations and never writes.
type Calculator struct {
	employeeRepo   employee.EmployeeRepository
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	cfg            CalculatorConfig
}

func NewCalculator(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	cfg CalculatorConfig,
) *Calculator {
	return &Calculator{
		employeeRepo:   employeeRepo,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		cfg:            cfg,
	}
}

func (c *Calculator) Calculate(ctx context.Context, employeeID string, period payroll.PayrollPeriod) (payroll.SalaryBreakdown, error) {
	emp, err := c.employeeRepo.GetWithType(ctx, employeeID)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}
	if emp.Type == nil {
		// Multipliers cannot default silently.
		return payroll.SalaryBreakdown{}, fmt.Errorf("employee %s: %w", employeeID, payroll.ErrMissingEmployeeType)
	}

	breakdown := emptyBreakdown(employeeID, period.ID)
	basic := emp.BasicSalary

	// A contractor's pay is never adjusted by components, leave, tax or
	// insurance.
	if emp.Type.IsContractor() {
		breakdown.BasicSalary = basic
		breakdown.NetSalary = basic.Round(2)
		return breakdown, nil
	}

	// Part-time basic salary is prorated by contracted hours before any
	// further calculation.
	if emp.Type.Category == employee.TypeCategoryPartTime {
		standard := decimal.NewFromInt(int64(c.cfg.StandardWeeklyHours))
		basic = basic.Mul(emp.Type.WorkingHoursPerWeek).Div(standard).Round(2)
	}

	assignments, err := c.payrollRepo.GetEmployeeComponents(ctx, employeeID)
	if err != nil {
		return payroll.SalaryBreakdown{}, c.wrap(employeeID, period.ID, fmt.Errorf("resolve components: %w", err))
	}
	totals := ResolveComponents(assignments, basic, period.EndDate)

	workingDays := CountWorkingDays(period.StartDate, period.EndDate, c.cfg.WeekendPolicy)
	leaves, err := c.attendanceRepo.GetApprovedLeaves(ctx, employeeID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.SalaryBreakdown{}, c.wrap(employeeID, period.ID, fmt.Errorf("load leave requests: %w", err))
	}
	leaveDeductions := LeaveDeductions(leaves, basic, workingDays, period.StartDate, period.EndDate, c.cfg.WeekendPolicy)

	overtimeHours, err := c.attendanceRepo.GetRecordedHours(ctx, employeeID, period.ID, attendance.HourKindOvertime)
	if err != nil {
		return payroll.SalaryBreakdown{}, c.wrap(employeeID, period.ID, fmt.Errorf("load overtime hours: %w", err))
	}
	holidayHours, err := c.attendanceRepo.GetRecordedHours(ctx, employeeID, period.ID, attendance.HourKindHoliday)
	if err != nil {
		return payroll.SalaryBreakdown{}, c.wrap(employeeID, period.ID, fmt.Errorf("load holiday hours: %w", err))
	}

	monthlyHours := monthlyHoursFor(emp.Type, c.cfg.StandardMonthlyHours)
	overtimePay := PremiumPay(overtimeHours, basic, monthlyHours, emp.Type.OvertimeMultiplier)
	holidayPremium := PremiumPay(holidayHours, basic, monthlyHours, emp.Type.HolidayPayMultiplier)

	brackets, err := c.payrollRepo.GetTaxBrackets(ctx)
	if err != nil {
		return payroll.SalaryBreakdown{}, c.wrap(employeeID, period.ID, fmt.Errorf("load tax brackets: %w", err))
	}
	taxBase := basic.Add(totals.TaxableAllowances).Sub(totals.TotalDeductions)
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}
	tax, err := CalculateProgressiveTax(brackets, taxBase)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	insuranceRate, err := c.payrollRepo.GetSocialInsuranceRate(ctx, period.EndDate)
	if err != nil {
		// Missing configuration must surface, never default to zero.
		return payroll.SalaryBreakdown{}, err
	}
	socialInsurance := insuranceRate.Rate.Mul(basic.Add(totals.TotalAllowances)).Round(2)

	breakdown.BasicSalary = basic
	breakdown.TotalAllowances = totals.TotalAllowances
	breakdown.TaxExemptAllowances = totals.TaxExemptAllowances
	breakdown.TotalDeductions = totals.TotalDeductions
	breakdown.OvertimePay = overtimePay
	breakdown.HolidayPremium = holidayPremium
	breakdown.LeaveDeductions = leaveDeductions
	breakdown.Tax = tax
	breakdown.SocialInsurance = socialInsurance
	breakdown.NetSalary = basic.
		Add(totals.TotalAllowances).
		Add(overtimePay).
		Add(holidayPremium).
		Sub(totals.TotalDeductions).
		Sub(leaveDeductions).
		Sub(tax).
		Sub(socialInsurance).
		Round(2)

	return breakdown, nil
}

func (c *Calculator) wrap(employeeID, periodID string, err error) error {
	return &payroll.CalculationError{EmployeeID: employeeID, PeriodID: periodID, Err: err}
}

func emptyBreakdown(employeeID, periodID string) payroll.SalaryBreakdown {
	return payroll.SalaryBreakdown{
		EmployeeID:          employeeID,
		PeriodID:            periodID,
		BasicSalary:         decimal.Zero,
		TotalAllowances:     decimal.Zero,
		TaxExemptAllowances: decimal.Zero,
		TotalDeductions:     decimal.Zero,
		OvertimePay:         decimal.Zero,
		HolidayPremium:      decimal.Zero,
		LeaveDeductions:     decimal.Zero,
		Tax:                 decimal.Zero,
		SocialInsurance:     decimal.Zero,
		NetSalary:           decimal.Zero,
	}
}
