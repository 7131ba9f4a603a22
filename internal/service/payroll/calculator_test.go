package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(store *fakeStore) *Calculator {
	return NewCalculator(
		&fakeEmployeeRepo{store: store},
		&fakePayrollRepo{store: store},
		&fakeAttendanceRepo{store: store},
		CalculatorConfig{
			WeekendPolicy:        WeekendSaturdaySunday,
			StandardWeeklyHours:  40,
			StandardMonthlyHours: 160,
		},
	)
}

func seedEmployee(store *fakeStore, id, basic string, empType *employee.EmployeeType) {
	store.employees[id] = employee.Employee{
		ID:               id,
		EmployeeCode:     "EMP-" + id,
		FullName:         "Employee " + id,
		BasicSalary:      dec(basic),
		EmploymentStatus: employee.EmploymentStatusActive,
		HireDate:         time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:             empType,
	}
	store.activeIDs = append(store.activeIDs, id)
}

func seedTaxAndInsurance(store *fakeStore) {
	store.brackets = standardBrackets()
	store.insurance = []payroll.SocialInsuranceRate{
		{ID: "sir-1", Rate: dec("0.14"), EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestCalculate_RegularWithComponents(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-1", "5000", regularType())
	seedTaxAndInsurance(store)
	store.assignments["emp-1"] = []payroll.EmployeeSalaryComponent{
		assignment("transport", payroll.ComponentKindAllowance, "1000", taxExempt),
		assignment("pension", payroll.ComponentKindDeduction, "10", percentage),
	}

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-1", july2025())
	require.NoError(t, err)

	assert.True(t, breakdown.TotalAllowances.Equal(dec("1000.00")))
	assert.True(t, breakdown.TaxExemptAllowances.Equal(dec("1000.00")))
	assert.True(t, breakdown.TotalDeductions.Equal(dec("500.00")))
	// taxable base 5000 + 0 - 500 = 4500 across the schedule
	assert.True(t, breakdown.Tax.Equal(dec("350.00")), "tax %s", breakdown.Tax)
	// 14% of basic + allowances = 6000
	assert.True(t, breakdown.SocialInsurance.Equal(dec("840.00")), "insurance %s", breakdown.SocialInsurance)
	assert.True(t, breakdown.NetSalary.Equal(dec("4310.00")), "net %s", breakdown.NetSalary)
}

func TestCalculate_ContractorFlatPay(t *testing.T) {
	store := newFakeStore()
	contractor := &employee.EmployeeType{
		ID:       "type-contractor",
		Name:     "Contractor",
		Category: employee.TypeCategoryContractor,
	}
	seedEmployee(store, "emp-c", "7500", contractor)
	seedTaxAndInsurance(store)
	// Components and hours exist but must not touch a contractor's pay.
	store.assignments["emp-c"] = []payroll.EmployeeSalaryComponent{
		assignment("transport", payroll.ComponentKindAllowance, "1000"),
	}
	store.hours[hoursKey("emp-c", attendance.HourKindOvertime)] = dec("12")

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-c", july2025())
	require.NoError(t, err)

	assert.True(t, breakdown.NetSalary.Equal(dec("7500.00")))
	assert.True(t, breakdown.TotalAllowances.IsZero())
	assert.True(t, breakdown.OvertimePay.IsZero())
	assert.True(t, breakdown.Tax.IsZero())
	assert.True(t, breakdown.SocialInsurance.IsZero())
}

func TestCalculate_PartTimeProration(t *testing.T) {
	store := newFakeStore()
	halfTime := &employee.EmployeeType{
		ID:                   "type-pt",
		Name:                 "Part Time",
		Category:             employee.TypeCategoryPartTime,
		OvertimeMultiplier:   dec("1.5"),
		HolidayPayMultiplier: dec("2"),
		WorkingHoursPerWeek:  dec("20"),
	}
	seedEmployee(store, "emp-pt", "5000", halfTime)
	seedTaxAndInsurance(store)

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-pt", july2025())
	require.NoError(t, err)

	// 5000 * 20/40 = 2500; tax 150, insurance 350
	assert.True(t, breakdown.BasicSalary.Equal(dec("2500.00")), "basic %s", breakdown.BasicSalary)
	assert.True(t, breakdown.Tax.Equal(dec("150.00")), "tax %s", breakdown.Tax)
	assert.True(t, breakdown.SocialInsurance.Equal(dec("350.00")), "insurance %s", breakdown.SocialInsurance)
	assert.True(t, breakdown.NetSalary.Equal(dec("2000.00")), "net %s", breakdown.NetSalary)
}

func TestCalculate_OvertimeAndHoliday(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-ot", "4800", regularType())
	seedTaxAndInsurance(store)
	store.hours[hoursKey("emp-ot", attendance.HourKindOvertime)] = dec("10")
	store.hours[hoursKey("emp-ot", attendance.HourKindHoliday)] = dec("8")

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-ot", july2025())
	require.NoError(t, err)

	// hourly 4800/160 = 30; 10h at 1.5x, 8h at 2x
	assert.True(t, breakdown.OvertimePay.Equal(dec("450.00")), "overtime %s", breakdown.OvertimePay)
	assert.True(t, breakdown.HolidayPremium.Equal(dec("480.00")), "holiday %s", breakdown.HolidayPremium)
}

func TestCalculate_UnpaidLeaveReducesNet(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-lv", "4600", regularType())
	seedTaxAndInsurance(store)
	store.leaves["emp-lv"] = []attendance.LeaveRequest{
		unpaidLeave(day(2025, time.July, 7), day(2025, time.July, 9), "1"),
	}

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-lv", july2025())
	require.NoError(t, err)

	assert.True(t, breakdown.LeaveDeductions.Equal(dec("600.00")), "leave %s", breakdown.LeaveDeductions)
}

func TestCalculate_MissingEmployeeType(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-x", "5000", nil)
	seedTaxAndInsurance(store)

	_, err := newTestCalculator(store).Calculate(context.Background(), "emp-x", july2025())
	assert.ErrorIs(t, err, payroll.ErrMissingEmployeeType)
}

func TestCalculate_NoTaxBrackets(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-1", "5000", regularType())
	store.insurance = []payroll.SocialInsuranceRate{
		{ID: "sir-1", Rate: dec("0.14"), EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	_, err := newTestCalculator(store).Calculate(context.Background(), "emp-1", july2025())
	assert.ErrorIs(t, err, payroll.ErrNoTaxBrackets)
}

func TestCalculate_NoInsuranceRate(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-1", "5000", regularType())
	store.brackets = standardBrackets()

	_, err := newTestCalculator(store).Calculate(context.Background(), "emp-1", july2025())
	assert.ErrorIs(t, err, payroll.ErrNoInsuranceRate)
}

func TestCalculate_InsuranceRateAsOfPeriodEnd(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "emp-1", "5000", regularType())
	store.brackets = standardBrackets()
	store.insurance = []payroll.SocialInsuranceRate{
		{ID: "sir-old", Rate: dec("0.10"), EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "sir-new", Rate: dec("0.12"), EffectiveDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "sir-future", Rate: dec("0.20"), EffectiveDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	breakdown, err := newTestCalculator(store).Calculate(context.Background(), "emp-1", july2025())
	require.NoError(t, err)

	// 12% of 5000, the rate in force at period end
	assert.True(t, breakdown.SocialInsurance.Equal(dec("600.00")), "insurance %s", breakdown.SocialInsurance)
}
