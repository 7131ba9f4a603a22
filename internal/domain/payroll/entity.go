package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind enum
type ComponentKind string

const (
	ComponentKindAllowance ComponentKind = "allowance"
	ComponentKindDeduction ComponentKind = "deduction"
)

// SalaryComponent - Global allowance/deduction template
type SalaryComponent struct {
	ID           string
	Name         string
	Kind         ComponentKind
	IsTaxable    bool
	IsPercentage bool
	Value        decimal.Decimal // fixed amount, or percentage of basic salary
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeSalaryComponent - Component assignment to an employee with an
// optional override and a validity window. At most one assignment per
// employee/component should be current for a given date.
type EmployeeSalaryComponent struct {
	ID            string
	EmployeeID    string
	ComponentID   string
	OverrideValue *decimal.Decimal
	ValidFrom     time.Time
	ValidTo       *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined from salary_components
	ComponentName string
	Kind          ComponentKind
	IsTaxable     bool
	IsPercentage  bool
	DefaultValue  decimal.Decimal
}

// EffectiveValue returns the override when present, the template default
// otherwise.
func (a EmployeeSalaryComponent) EffectiveValue() decimal.Decimal {
	if a.OverrideValue != nil {
		return *a.OverrideValue
	}
	return a.DefaultValue
}

// CurrentAt reports whether the assignment is active and its validity window
// contains ref.
func (a EmployeeSalaryComponent) CurrentAt(ref time.Time) bool {
	if !a.IsActive {
		return false
	}
	if ref.Before(a.ValidFrom) {
		return false
	}
	if a.ValidTo != nil && ref.After(*a.ValidTo) {
		return false
	}
	return true
}

// TaxBracket - One marginal rate range. MaxAmount nil means open-ended.
// The stored set is expected to tile [0, inf) without overlaps.
type TaxBracket struct {
	ID        string
	MinAmount decimal.Decimal
	MaxAmount *decimal.Decimal
	Rate      decimal.Decimal
}

// SocialInsuranceRate - Effective-dated flat contribution rate.
type SocialInsuranceRate struct {
	ID            string
	Rate          decimal.Decimal
	EffectiveDate time.Time
}

// PeriodStatus enum - the single canonical status vocabulary. "processing"
// is a draft-equivalent sub-state entered once entries have been generated.
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusApproved   PeriodStatus = "approved"
	PeriodStatusProcessed  PeriodStatus = "processed"
)

// Editable reports whether entries may still be generated or changed.
func (s PeriodStatus) Editable() bool {
	return s == PeriodStatusDraft || s == PeriodStatusProcessing
}

// Final reports whether the period can no longer revert.
func (s PeriodStatus) Final() bool {
	return s == PeriodStatusApproved || s == PeriodStatusProcessed
}

// PayrollPeriod - Unique per (year, month). Transitions only forward:
// draft -> processing -> approved -> processed.
type PayrollPeriod struct {
	ID          string
	Year        int
	Month       int
	StartDate   time.Time
	EndDate     time.Time
	Status      PeriodStatus
	ApprovedBy  *string
	ApprovedAt  *time.Time
	ProcessedBy *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaymentStatus enum for individual entries
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusPaid     PaymentStatus = "paid"
)

// PayrollEntry - Computed salary breakdown for one employee in one period.
type PayrollEntry struct {
	ID                  string
	PeriodID            string
	EmployeeID          string
	BasicSalary         decimal.Decimal
	TotalAllowances     decimal.Decimal
	TaxExemptAllowances decimal.Decimal
	TotalDeductions     decimal.Decimal
	TotalAdjustments    decimal.Decimal
	OvertimePay         decimal.Decimal
	HolidayPremium      decimal.Decimal
	LeaveDeductions     decimal.Decimal
	Tax                 decimal.Decimal
	SocialInsurance     decimal.Decimal
	NetSalary           decimal.Decimal
	PaymentStatus       PaymentStatus
	PaymentDate         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// SalaryAdjustment - Append-only audit record of a basic-salary change.
type SalaryAdjustment struct {
	ID             string
	EmployeeID     string
	PreviousSalary decimal.Decimal
	NewSalary      decimal.Decimal
	EffectiveDate  time.Time
	Reason         string
	AdjustedBy     string
	CreatedAt      time.Time
}

// SalaryBreakdown - Result of one calculator invocation, not yet persisted.
type SalaryBreakdown struct {
	EmployeeID          string
	PeriodID            string
	BasicSalary         decimal.Decimal
	TotalAllowances     decimal.Decimal
	TaxExemptAllowances decimal.Decimal
	TotalDeductions     decimal.Decimal
	OvertimePay         decimal.Decimal
	HolidayPremium      decimal.Decimal
	LeaveDeductions     decimal.Decimal
	Tax                 decimal.Decimal
	SocialInsurance     decimal.Decimal
	NetSalary           decimal.Decimal
}
