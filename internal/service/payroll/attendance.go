package payroll

import (
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// WeekendPolicy selects which two days are excluded from working-day counts.
// The default is Saturday+Sunday; Friday+Saturday covers deployments in
// regions with that weekend.
type WeekendPolicy string

const (
	WeekendSaturdaySunday WeekendPolicy = "sat_sun"
	WeekendFridaySaturday WeekendPolicy = "fri_sat"
)

func (p WeekendPolicy) isWeekend(day time.Weekday) bool {
	if p == WeekendFridaySaturday {
		return day == time.Friday || day == time.Saturday
	}
	return day == time.Saturday || day == time.Sunday
}

// CountWorkingDays counts calendar days in [start, end] that are not
// weekend days under the policy.
func CountWorkingDays(start, end time.Time, policy WeekendPolicy) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !policy.isWeekend(d.Weekday()) {
			count++
		}
	}
	return count
}

// LeaveDeductions sums the pay deducted for approved unpaid leave
// overlapping the period. Each unpaid leave deducts
// dailyRate * overlappingWorkingDays * deductionRate, where dailyRate is
// basicSalary over the period's working days. Paid leave deducts nothing.
func LeaveDeductions(leaves []attendance.LeaveRequest, basicSalary decimal.Decimal, workingDays int, periodStart, periodEnd time.Time, policy WeekendPolicy) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.Zero
	}
	dailyRate := basicSalary.Div(decimal.NewFromInt(int64(workingDays)))

	total := decimal.Zero
	for _, leave := range leaves {
		if leave.IsPaid {
			continue
		}
		start := leave.StartDate
		if start.Before(periodStart) {
			start = periodStart
		}
		end := leave.EndDate
		if end.After(periodEnd) {
			end = periodEnd
		}
		if end.Before(start) {
			continue
		}
		days := CountWorkingDays(start, end, policy)
		if days == 0 {
			continue
		}
		total = total.Add(dailyRate.Mul(decimal.NewFromInt(int64(days))).Mul(leave.DeductionRate))
	}

	return total.Round(2)
}

// PremiumPay prices recorded overtime or holiday hours at the employee's
// hourly rate times the employee-type multiplier.
func PremiumPay(hours, basicSalary, monthlyHours, multiplier decimal.Decimal) decimal.Decimal {
	if hours.IsZero() || monthlyHours.IsZero() {
		return decimal.Zero
	}
	hourlyRate := basicSalary.Div(monthlyHours)
	return hours.Mul(hourlyRate).Mul(multiplier).Round(2)
}

// monthlyHoursFor derives the standard monthly hour count for premium pay:
// four weeks of the type's contracted weekly hours, or the configured
// fallback when the type carries none.
func monthlyHoursFor(empType *employee.EmployeeType, fallbackMonthlyHours int) decimal.Decimal {
	if empType != nil && empType.WorkingHoursPerWeek.GreaterThan(decimal.Zero) {
		return empType.WorkingHoursPerWeek.Mul(decimal.NewFromInt(4))
	}
	return decimal.NewFromInt(int64(fallbackMonthlyHours))
}
