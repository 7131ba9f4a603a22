package payroll

import (
	"time"

	"github.com/hrpay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID          string  `json:"id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	ProcessedBy *string `json:"processed_by,omitempty"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	PeriodID    string   `json:"-"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GenerateResult struct {
	PeriodID string
	Entries  []PayrollEntry
	Failures []EmployeeFailure
}

type GenerateResultResponse struct {
	PeriodID     string            `json:"period_id"`
	PeriodStatus string            `json:"period_status"`
	Generated    int               `json:"generated"`
	Entries      []EntryResponse   `json:"entries"`
	Failures     []EmployeeFailure `json:"failures,omitempty"`
}

// ========== ENTRY DTOs ==========

type UpdateEntryRequest struct {
	ID               string           `json:"-"`
	BasicSalary      *decimal.Decimal `json:"basic_salary,omitempty"`
	TotalAdjustments *decimal.Decimal `json:"total_adjustments,omitempty"`
	AdjustmentReason string           `json:"adjustment_reason,omitempty"`
	EffectiveDate    *string          `json:"effective_date,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.BasicSalary != nil && validator.IsEmpty(r.AdjustmentReason) {
		errs = append(errs, validator.ValidationError{Field: "adjustment_reason", Message: "is required when changing basic salary"})
	}
	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID                  string          `json:"id"`
	PeriodID            string          `json:"period_id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        *string         `json:"employee_name,omitempty"`
	EmployeeCode        *string         `json:"employee_code,omitempty"`
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	TotalAllowances     decimal.Decimal `json:"total_allowances"`
	TaxExemptAllowances decimal.Decimal `json:"tax_exempt_allowances"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	TotalAdjustments    decimal.Decimal `json:"total_adjustments"`
	OvertimePay         decimal.Decimal `json:"overtime_pay"`
	HolidayPremium      decimal.Decimal `json:"holiday_premium"`
	LeaveDeductions     decimal.Decimal `json:"leave_deductions"`
	Tax                 decimal.Decimal `json:"tax"`
	SocialInsurance     decimal.Decimal `json:"social_insurance"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	PaymentStatus       string          `json:"payment_status"`
	PaymentDate         *string         `json:"payment_date,omitempty"`
}

// ========== COMPONENT DTOs ==========

type ComponentResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	IsTaxable    bool            `json:"is_taxable"`
	IsPercentage bool            `json:"is_percentage"`
	Value        decimal.Decimal `json:"value"`
	IsActive     bool            `json:"is_active"`
}

type TaxBracketResponse struct {
	MinAmount decimal.Decimal  `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
	Rate      decimal.Decimal  `json:"rate"`
}

// ========== RESPONSE MAPPING ==========

const dateLayout = "2006-01-02"

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewPeriodResponse(p PayrollPeriod) PeriodResponse {
	return PeriodResponse{
		ID:          p.ID,
		Year:        p.Year,
		Month:       p.Month,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Status:      string(p.Status),
		ApprovedBy:  p.ApprovedBy,
		ApprovedAt:  formatTimestamp(p.ApprovedAt),
		ProcessedBy: p.ProcessedBy,
		ProcessedAt: formatTimestamp(p.ProcessedAt),
	}
}

func NewEntryResponse(e PayrollEntry) EntryResponse {
	var paymentDate *string
	if e.PaymentDate != nil {
		s := e.PaymentDate.Format(dateLayout)
		paymentDate = &s
	}
	return EntryResponse{
		ID:                  e.ID,
		PeriodID:            e.PeriodID,
		EmployeeID:          e.EmployeeID,
		EmployeeName:        e.EmployeeName,
		EmployeeCode:        e.EmployeeCode,
		BasicSalary:         e.BasicSalary,
		TotalAllowances:     e.TotalAllowances,
		TaxExemptAllowances: e.TaxExemptAllowances,
		TotalDeductions:     e.TotalDeductions,
		TotalAdjustments:    e.TotalAdjustments,
		OvertimePay:         e.OvertimePay,
		HolidayPremium:      e.HolidayPremium,
		LeaveDeductions:     e.LeaveDeductions,
		Tax:                 e.Tax,
		SocialInsurance:     e.SocialInsurance,
		NetSalary:           e.NetSalary,
		PaymentStatus:       string(e.PaymentStatus),
		PaymentDate:         paymentDate,
	}
}

func NewEntryResponses(entries []PayrollEntry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, NewEntryResponse(e))
	}
	return responses
}

func NewGenerateResultResponse(result GenerateResult, status PeriodStatus) GenerateResultResponse {
	return GenerateResultResponse{
		PeriodID:     result.PeriodID,
		PeriodStatus: string(status),
		Generated:    len(result.Entries),
		Entries:      NewEntryResponses(result.Entries),
		Failures:     result.Failures,
	}
}

func NewComponentResponse(c SalaryComponent) ComponentResponse {
	return ComponentResponse{
		ID:           c.ID,
		Name:         c.Name,
		Kind:         string(c.Kind),
		IsTaxable:    c.IsTaxable,
		IsPercentage: c.IsPercentage,
		Value:        c.Value,
		IsActive:     c.IsActive,
	}
}

func NewTaxBracketResponse(b TaxBracket) TaxBracketResponse {
	return TaxBracketResponse{
		MinAmount: b.MinAmount,
		MaxAmount: b.MaxAmount,
		Rate:      b.Rate,
	}
}
