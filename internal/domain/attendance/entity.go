package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveRequest - Approved leave consumed read-only by the payroll
// calculator. IsPaid and DeductionRate come joined from the leave type.
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveType     string
	IsPaid        bool
	DeductionRate decimal.Decimal // fraction of the daily rate deducted per unpaid day
	StartDate     time.Time
	EndDate       time.Time
	Status        RequestStatus
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// HourKind enum for recorded premium hours
type HourKind string

const (
	HourKindOvertime HourKind = "overtime"
	HourKindHoliday  HourKind = "holiday"
)
