package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for the payroll core. Every entity
// comes back as its explicit record type, constructed once at this boundary;
// callers never inspect raw row shapes.
type PayrollRepository interface {
	// Components
	ListComponents(ctx context.Context, activeOnly bool) ([]SalaryComponent, error)
	GetComponentByID(ctx context.Context, id string) (SalaryComponent, error)

	// GetEmployeeComponents returns the employee's active component
	// assignments with template fields joined in. Validity-window filtering
	// against a reference date is the resolver's job, not the store's.
	GetEmployeeComponents(ctx context.Context, employeeID string) ([]EmployeeSalaryComponent, error)

	// Tax & social insurance configuration
	GetTaxBrackets(ctx context.Context) ([]TaxBracket, error)

	// GetSocialInsuranceRate returns the latest rate row with
	// effective_date <= asOf, or ErrNoInsuranceRate.
	GetSocialInsuranceRate(ctx context.Context, asOf time.Time) (SocialInsuranceRate, error)

	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayrollPeriod, error)
	GetPeriodByYearMonth(ctx context.Context, year, month int) (PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id string, status PeriodStatus) error
	StampPeriodApproved(ctx context.Context, id, approvedBy string, at time.Time) error
	StampPeriodProcessed(ctx context.Context, id, processedBy string, at time.Time) error

	// LockPeriod serializes concurrent batch generation for one period.
	// Must be called inside a transaction; the lock is released on commit or
	// rollback.
	LockPeriod(ctx context.Context, periodID string) error

	// Entries
	UpsertEntry(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)
	GetEntryByID(ctx context.Context, id string) (PayrollEntry, error)
	ListEntriesByPeriod(ctx context.Context, periodID string) ([]PayrollEntry, error)
	CountEntriesByPeriod(ctx context.Context, periodID string) (int, error)
	UpdateEntry(ctx context.Context, entry PayrollEntry) error
	MarkEntriesApproved(ctx context.Context, periodID string) error
	MarkEntriesPaid(ctx context.Context, periodID string, payDate time.Time) error

	// Adjustments (append-only)
	CreateSalaryAdjustment(ctx context.Context, adjustment SalaryAdjustment) (SalaryAdjustment, error)
}
