package payroll

import (
	"testing"
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountWorkingDays_July2025(t *testing.T) {
	start, end := day(2025, time.July, 1), day(2025, time.July, 31)

	assert.Equal(t, 23, CountWorkingDays(start, end, WeekendSaturdaySunday))
	assert.Equal(t, 23, CountWorkingDays(start, end, WeekendFridaySaturday))
}

func TestCountWorkingDays_PolicyDiffers(t *testing.T) {
	friday := day(2025, time.July, 4)
	sunday := day(2025, time.July, 6)

	assert.Equal(t, 1, CountWorkingDays(friday, friday, WeekendSaturdaySunday))
	assert.Equal(t, 0, CountWorkingDays(friday, friday, WeekendFridaySaturday))

	assert.Equal(t, 0, CountWorkingDays(sunday, sunday, WeekendSaturdaySunday))
	assert.Equal(t, 1, CountWorkingDays(sunday, sunday, WeekendFridaySaturday))
}

func unpaidLeave(start, end time.Time, rate string) attendance.LeaveRequest {
	return attendance.LeaveRequest{
		ID:            "leave-1",
		EmployeeID:    "emp-1",
		LeaveType:     "unpaid",
		IsPaid:        false,
		DeductionRate: dec(rate),
		StartDate:     start,
		EndDate:       end,
		Status:        attendance.RequestStatusApproved,
	}
}

func TestLeaveDeductions_UnpaidFullRate(t *testing.T) {
	periodStart, periodEnd := day(2025, time.July, 1), day(2025, time.July, 31)
	// Mon-Wed, 3 working days at a 200.00 daily rate
	leaves := []attendance.LeaveRequest{
		unpaidLeave(day(2025, time.July, 7), day(2025, time.July, 9), "1"),
	}

	deduction := LeaveDeductions(leaves, dec("4600"), 23, periodStart, periodEnd, WeekendSaturdaySunday)

	assert.True(t, deduction.Equal(dec("600.00")), "got %s", deduction)
}

func TestLeaveDeductions_PartialRate(t *testing.T) {
	periodStart, periodEnd := day(2025, time.July, 1), day(2025, time.July, 31)
	leaves := []attendance.LeaveRequest{
		unpaidLeave(day(2025, time.July, 7), day(2025, time.July, 9), "0.5"),
	}

	deduction := LeaveDeductions(leaves, dec("4600"), 23, periodStart, periodEnd, WeekendSaturdaySunday)

	assert.True(t, deduction.Equal(dec("300.00")), "got %s", deduction)
}

func TestLeaveDeductions_PaidLeaveFree(t *testing.T) {
	periodStart, periodEnd := day(2025, time.July, 1), day(2025, time.July, 31)
	paid := unpaidLeave(day(2025, time.July, 7), day(2025, time.July, 11), "1")
	paid.IsPaid = true

	deduction := LeaveDeductions([]attendance.LeaveRequest{paid}, dec("4600"), 23, periodStart, periodEnd, WeekendSaturdaySunday)

	assert.True(t, deduction.IsZero())
}

func TestLeaveDeductions_ClampedToPeriod(t *testing.T) {
	periodStart, periodEnd := day(2025, time.July, 1), day(2025, time.July, 31)
	// Spans June 26 - July 2; only Jul 1 (Tue) and Jul 2 (Wed) fall inside.
	leaves := []attendance.LeaveRequest{
		unpaidLeave(day(2025, time.June, 26), day(2025, time.July, 2), "1"),
	}

	deduction := LeaveDeductions(leaves, dec("4600"), 23, periodStart, periodEnd, WeekendSaturdaySunday)

	assert.True(t, deduction.Equal(dec("400.00")), "got %s", deduction)
}

func TestLeaveDeductions_WeekendOnlyLeave(t *testing.T) {
	periodStart, periodEnd := day(2025, time.July, 1), day(2025, time.July, 31)
	leaves := []attendance.LeaveRequest{
		unpaidLeave(day(2025, time.July, 5), day(2025, time.July, 6), "1"),
	}

	deduction := LeaveDeductions(leaves, dec("4600"), 23, periodStart, periodEnd, WeekendSaturdaySunday)

	assert.True(t, deduction.IsZero(), "weekend days are not working days")
}

func TestPremiumPay(t *testing.T) {
	// 4800 / 160 = 30.00 hourly, 10h at 1.5x = 450.00
	pay := PremiumPay(dec("10"), dec("4800"), dec("160"), dec("1.5"))
	assert.True(t, pay.Equal(dec("450.00")), "got %s", pay)

	assert.True(t, PremiumPay(dec("0"), dec("4800"), dec("160"), dec("1.5")).IsZero())
	assert.True(t, PremiumPay(dec("10"), dec("4800"), dec("0"), dec("1.5")).IsZero())
}
