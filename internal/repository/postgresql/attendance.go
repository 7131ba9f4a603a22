package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpay/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lt.name, lt.is_paid, lt.deduction_rate,
			   lr.start_date, lr.end_date, lr.status
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		  AND lr.status = $2
		  AND lr.start_date <= $3
		  AND lr.end_date >= $4
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, attendance.RequestStatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leaves: %w", err)
	}
	defer rows.Close()

	var leaves []attendance.LeaveRequest
	for rows.Next() {
		var l attendance.LeaveRequest
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.LeaveType, &l.IsPaid, &l.DeductionRate,
			&l.StartDate, &l.EndDate, &l.Status,
		); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *attendanceRepository) GetRecordedHours(ctx context.Context, employeeID, periodID string, kind attendance.HourKind) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(hours), 0)
		FROM attendance_hours
		WHERE employee_id = $1 AND period_id = $2 AND kind = $3
	`, employeeID, periodID, kind).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to get recorded %s hours: %w", kind, err)
	}
	return total, nil
}
