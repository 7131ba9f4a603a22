package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpay/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== COMPONENTS ==========

func (r *payrollRepository) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, kind, is_taxable, is_percentage, value, is_active, created_at, updated_at
		FROM salary_components
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY kind, name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		var c payroll.SalaryComponent
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.IsTaxable, &c.IsPercentage, &c.Value, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *payrollRepository) GetComponentByID(ctx context.Context, id string) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	var c payroll.SalaryComponent
	err := q.QueryRow(ctx, `
		SELECT id, name, kind, is_taxable, is_percentage, value, is_active, created_at, updated_at
		FROM salary_components
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Kind, &c.IsTaxable, &c.IsPercentage, &c.Value, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to get salary component: %w", err)
	}
	return c, nil
}

func (r *payrollRepository) GetEmployeeComponents(ctx context.Context, employeeID string) ([]payroll.EmployeeSalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.component_id, a.override_value,
			   a.valid_from, a.valid_to, a.is_active, a.created_at, a.updated_at,
			   c.name, c.kind, c.is_taxable, c.is_percentage, c.value
		FROM employee_salary_components a
		JOIN salary_components c ON a.component_id = c.id
		WHERE a.employee_id = $1 AND a.is_active = true AND c.is_active = true
		ORDER BY c.kind, c.name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee components: %w", err)
	}
	defer rows.Close()

	var assignments []payroll.EmployeeSalaryComponent
	for rows.Next() {
		var a payroll.EmployeeSalaryComponent
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ComponentID, &a.OverrideValue,
			&a.ValidFrom, &a.ValidTo, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&a.ComponentName, &a.Kind, &a.IsTaxable, &a.IsPercentage, &a.DefaultValue,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ========== TAX & INSURANCE ==========

func (r *payrollRepository) GetTaxBrackets(ctx context.Context) ([]payroll.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, min_amount, max_amount, rate
		FROM tax_brackets
		ORDER BY min_amount
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax brackets: %w", err)
	}
	defer rows.Close()

	var brackets []payroll.TaxBracket
	for rows.Next() {
		var b payroll.TaxBracket
		if err := rows.Scan(&b.ID, &b.MinAmount, &b.MaxAmount, &b.Rate); err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

func (r *payrollRepository) GetSocialInsuranceRate(ctx context.Context, asOf time.Time) (payroll.SocialInsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	var rate payroll.SocialInsuranceRate
	err := q.QueryRow(ctx, `
		SELECT id, rate, effective_date
		FROM social_insurance_rates
		WHERE effective_date <= $1
		ORDER BY effective_date DESC
		LIMIT 1
	`, asOf).Scan(&rate.ID, &rate.Rate, &rate.EffectiveDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SocialInsuranceRate{}, payroll.ErrNoInsuranceRate
		}
		return payroll.SocialInsuranceRate{}, fmt.Errorf("failed to get social insurance rate: %w", err)
	}
	return rate, nil
}

// ========== PERIODS ==========

const periodColumns = `id, year, month, start_date, end_date, status,
	approved_by, approved_at, processed_by, processed_at, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.Year, &p.Month, &p.StartDate, &p.EndDate, &p.Status,
		&p.ApprovedBy, &p.ApprovedAt, &p.ProcessedBy, &p.ProcessedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, year, month, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query,
		uuid.NewString(), period.Year, period.Month, period.StartDate, period.EndDate, period.Status,
	))
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	period, err := scanPeriod(q.QueryRow(ctx,
		"SELECT "+periodColumns+" FROM payroll_periods WHERE id = $1", id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return period, nil
}

func (r *payrollRepository) GetPeriodByYearMonth(ctx context.Context, year, month int) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	period, err := scanPeriod(q.QueryRow(ctx,
		"SELECT "+periodColumns+" FROM payroll_periods WHERE year = $1 AND month = $2", year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return period, nil
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE payroll_periods SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	return nil
}

func (r *payrollRepository) StampPeriodApproved(ctx context.Context, id, approvedBy string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE payroll_periods
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4
	`, payroll.PeriodStatusApproved, approvedBy, at, id)
	if err != nil {
		return fmt.Errorf("failed to approve period: %w", err)
	}
	return nil
}

func (r *payrollRepository) StampPeriodProcessed(ctx context.Context, id, processedBy string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE payroll_periods
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4
	`, payroll.PeriodStatusProcessed, processedBy, at, id)
	if err != nil {
		return fmt.Errorf("failed to process period: %w", err)
	}
	return nil
}

func (r *payrollRepository) LockPeriod(ctx context.Context, periodID string) error {
	q := GetQuerier(ctx, r.db)

	// Transaction-scoped advisory lock; released automatically on
	// commit/rollback. Serializes concurrent generation for one period.
	_, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", periodID)
	if err != nil {
		return fmt.Errorf("failed to lock period: %w", err)
	}
	return nil
}

// ========== ENTRIES ==========

const entryColumns = `id, period_id, employee_id, basic_salary, total_allowances,
	tax_exempt_allowances, total_deductions, total_adjustments, overtime_pay,
	holiday_premium, leave_deductions, tax, social_insurance, net_salary,
	payment_status, payment_date, created_at, updated_at`

func scanEntry(row pgx.Row) (payroll.PayrollEntry, error) {
	var e payroll.PayrollEntry
	err := row.Scan(
		&e.ID, &e.PeriodID, &e.EmployeeID, &e.BasicSalary, &e.TotalAllowances,
		&e.TaxExemptAllowances, &e.TotalDeductions, &e.TotalAdjustments, &e.OvertimePay,
		&e.HolidayPremium, &e.LeaveDeductions, &e.Tax, &e.SocialInsurance, &e.NetSalary,
		&e.PaymentStatus, &e.PaymentDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *payrollRepository) UpsertEntry(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_entries (
			id, period_id, employee_id, basic_salary, total_allowances,
			tax_exempt_allowances, total_deductions, total_adjustments, overtime_pay,
			holiday_premium, leave_deductions, tax, social_insurance, net_salary,
			payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (period_id, employee_id) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			total_allowances = EXCLUDED.total_allowances,
			tax_exempt_allowances = EXCLUDED.tax_exempt_allowances,
			total_deductions = EXCLUDED.total_deductions,
			total_adjustments = EXCLUDED.total_adjustments,
			overtime_pay = EXCLUDED.overtime_pay,
			holiday_premium = EXCLUDED.holiday_premium,
			leave_deductions = EXCLUDED.leave_deductions,
			tax = EXCLUDED.tax,
			social_insurance = EXCLUDED.social_insurance,
			net_salary = EXCLUDED.net_salary,
			payment_status = EXCLUDED.payment_status,
			updated_at = NOW()
		RETURNING ` + entryColumns

	saved, err := scanEntry(q.QueryRow(ctx, query,
		uuid.NewString(), entry.PeriodID, entry.EmployeeID, entry.BasicSalary, entry.TotalAllowances,
		entry.TaxExemptAllowances, entry.TotalDeductions, entry.TotalAdjustments, entry.OvertimePay,
		entry.HolidayPremium, entry.LeaveDeductions, entry.Tax, entry.SocialInsurance, entry.NetSalary,
		entry.PaymentStatus,
	))
	if err != nil {
		return payroll.PayrollEntry{}, fmt.Errorf("failed to upsert payroll entry: %w", err)
	}
	return saved, nil
}

func (r *payrollRepository) GetEntryByID(ctx context.Context, id string) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM payroll_entries WHERE id = $1", id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	return entry, nil
}

func (r *payrollRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.period_id, e.employee_id, e.basic_salary, e.total_allowances,
			   e.tax_exempt_allowances, e.total_deductions, e.total_adjustments, e.overtime_pay,
			   e.holiday_premium, e.leave_deductions, e.tax, e.social_insurance, e.net_salary,
			   e.payment_status, e.payment_date, e.created_at, e.updated_at,
			   emp.full_name, emp.employee_code
		FROM payroll_entries e
		JOIN employees emp ON e.employee_id = emp.id
		WHERE e.period_id = $1
		ORDER BY emp.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		var e payroll.PayrollEntry
		if err := rows.Scan(
			&e.ID, &e.PeriodID, &e.EmployeeID, &e.BasicSalary, &e.TotalAllowances,
			&e.TaxExemptAllowances, &e.TotalDeductions, &e.TotalAdjustments, &e.OvertimePay,
			&e.HolidayPremium, &e.LeaveDeductions, &e.Tax, &e.SocialInsurance, &e.NetSalary,
			&e.PaymentStatus, &e.PaymentDate, &e.CreatedAt, &e.UpdatedAt,
			&e.EmployeeName, &e.EmployeeCode,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *payrollRepository) CountEntriesByPeriod(ctx context.Context, periodID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx,
		"SELECT COUNT(1) FROM payroll_entries WHERE period_id = $1", periodID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payroll entries: %w", err)
	}
	return count, nil
}

func (r *payrollRepository) UpdateEntry(ctx context.Context, entry payroll.PayrollEntry) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_entries
		SET basic_salary = $1, total_adjustments = $2, tax = $3,
			social_insurance = $4, net_salary = $5, updated_at = NOW()
		WHERE id = $6
	`, entry.BasicSalary, entry.TotalAdjustments, entry.Tax,
		entry.SocialInsurance, entry.NetSalary, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update payroll entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}
	return nil
}

func (r *payrollRepository) MarkEntriesApproved(ctx context.Context, periodID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE payroll_entries SET payment_status = $1, updated_at = NOW() WHERE period_id = $2
	`, payroll.PaymentStatusApproved, periodID)
	if err != nil {
		return fmt.Errorf("failed to mark entries approved: %w", err)
	}
	return nil
}

func (r *payrollRepository) MarkEntriesPaid(ctx context.Context, periodID string, payDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE payroll_entries SET payment_status = $1, payment_date = $2, updated_at = NOW() WHERE period_id = $3
	`, payroll.PaymentStatusPaid, payDate, periodID)
	if err != nil {
		return fmt.Errorf("failed to mark entries paid: %w", err)
	}
	return nil
}

// ========== ADJUSTMENTS ==========

func (r *payrollRepository) CreateSalaryAdjustment(ctx context.Context, adjustment payroll.SalaryAdjustment) (payroll.SalaryAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_adjustments (id, employee_id, previous_salary, new_salary, effective_date, reason, adjusted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, previous_salary, new_salary, effective_date, reason, adjusted_by, created_at
	`

	var a payroll.SalaryAdjustment
	err := q.QueryRow(ctx, query,
		uuid.NewString(), adjustment.EmployeeID, adjustment.PreviousSalary, adjustment.NewSalary,
		adjustment.EffectiveDate, adjustment.Reason, adjustment.AdjustedBy,
	).Scan(&a.ID, &a.EmployeeID, &a.PreviousSalary, &a.NewSalary, &a.EffectiveDate, &a.Reason, &a.AdjustedBy, &a.CreatedAt)
	if err != nil {
		return payroll.SalaryAdjustment{}, fmt.Errorf("failed to create salary adjustment: %w", err)
	}
	return a, nil
}
