package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	// GetApprovedLeaves returns approved leave requests overlapping
	// [start, end] for the employee, with paid/deduction-rate fields joined
	// from the leave type.
	GetApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)

	// GetRecordedHours sums the recorded hours of the given kind for the
	// employee within the period. No records means zero, not an error.
	GetRecordedHours(ctx context.Context, employeeID, periodID string, kind HourKind) (decimal.Decimal, error)
}
