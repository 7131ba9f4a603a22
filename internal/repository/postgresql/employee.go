package postgresql

import (
	"context"
	"fmt"

	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetWithType(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.employee_type_id,
			   e.basic_salary, e.employment_status, e.hire_date,
			   e.created_at, e.updated_at,
			   t.id, t.name, t.category,
			   t.overtime_multiplier, t.holiday_pay_multiplier, t.working_hours_per_week
		FROM employees e
		LEFT JOIN employee_types t ON e.employee_type_id = t.id
		WHERE e.id = $1
	`

	var emp employee.Employee
	var typeID, typeName, typeCategory *string
	var overtimeMult, holidayMult, weeklyHours *decimal.Decimal
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.EmployeeTypeID,
		&emp.BasicSalary, &emp.EmploymentStatus, &emp.HireDate,
		&emp.CreatedAt, &emp.UpdatedAt,
		&typeID, &typeName, &typeCategory,
		&overtimeMult, &holidayMult, &weeklyHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if typeID != nil {
		emp.Type = &employee.EmployeeType{
			ID:                   *typeID,
			Name:                 *typeName,
			Category:             employee.TypeCategory(*typeCategory),
			OvertimeMultiplier:   *overtimeMult,
			HolidayPayMultiplier: *holidayMult,
			WorkingHoursPerWeek:  *weeklyHours,
		}
	}

	return emp, nil
}

func (r *employeeRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id
		FROM employees
		WHERE employment_status = $1
		ORDER BY employee_code
	`, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
