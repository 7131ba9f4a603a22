package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// TxRunner executes fn inside one storage transaction; a returned error
// rolls everything back.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages payroll period lifecycle: creation, batch generation,
// approval, processing and entry edits. Identity is always an explicit
// argument; there is no ambient current user.
type Service struct {
	tx           TxRunner
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	calc         *Calculator
	logger       *slog.Logger
}

func NewService(
	tx TxRunner,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	calc *Calculator,
	logger *slog.Logger,
) *Service {
	return &Service{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		calc:         calc,
		logger:       logger,
	}
}

// CreatePeriod is idempotent: an existing draft/processing period for the
// same year/month is returned as-is; a finalized one rejects.
func (s *Service) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PayrollPeriod, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollPeriod{}, err
	}

	existing, err := s.payrollRepo.GetPeriodByYearMonth(ctx, req.Year, req.Month)
	if err == nil {
		if existing.Status.Editable() {
			return existing, nil
		}
		return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyFinalized
	}
	if !errors.Is(err, payroll.ErrPeriodNotFound) {
		return payroll.PayrollPeriod{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return s.payrollRepo.CreatePeriod(ctx, payroll.PayrollPeriod{
		Year:      req.Year,
		Month:     req.Month,
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodStatusDraft,
	})
}

func (s *Service) GetPeriod(ctx context.Context, periodID string) (payroll.PayrollPeriod, error) {
	return s.payrollRepo.GetPeriodByID(ctx, periodID)
}

func (s *Service) ListEntries(ctx context.Context, periodID string) ([]payroll.PayrollEntry, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}
	return s.payrollRepo.ListEntriesByPeriod(ctx, periodID)
}

// GeneratePayroll computes and persists entries for every requested
// employee (all active employees when none are named) inside a single
// transaction, serialized per period. A per-employee calculation failure is
// recorded and skipped; only persistence errors or a batch where every
// employee failed roll the transaction back. Partial success still advances
// the period out of draft.
func (s *Service) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, req.PeriodID)
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	if !period.Status.Editable() {
		return payroll.GenerateResult{}, payroll.ErrPeriodNotEditable
	}

	employeeIDs := req.EmployeeIDs
	if len(employeeIDs) == 0 {
		employeeIDs, err = s.employeeRepo.ListActiveIDs(ctx)
		if err != nil {
			return payroll.GenerateResult{}, fmt.Errorf("list active employees: %w", err)
		}
	}
	if len(employeeIDs) == 0 {
		return payroll.GenerateResult{}, payroll.ErrNoEmployees
	}

	result := payroll.GenerateResult{PeriodID: period.ID}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.LockPeriod(ctx, period.ID); err != nil {
			return fmt.Errorf("lock period: %w", err)
		}

		for _, employeeID := range employeeIDs {
			breakdown, calcErr := s.calc.Calculate(ctx, employeeID, period)
			if calcErr != nil {
				s.logger.Warn("payroll calculation failed",
					slog.String("period_id", period.ID),
					slog.String("employee_id", employeeID),
					slog.String("error", calcErr.Error()),
				)
				result.Failures = append(result.Failures, payroll.EmployeeFailure{
					EmployeeID: employeeID,
					Reason:     calcErr.Error(),
				})
				continue
			}

			entry, err := s.payrollRepo.UpsertEntry(ctx, entryFromBreakdown(breakdown))
			if err != nil {
				return fmt.Errorf("write payroll entry for employee %s: %w", employeeID, err)
			}
			result.Entries = append(result.Entries, entry)
		}

		if len(result.Entries) == 0 {
			return payroll.ErrAllEmployeesFailed
		}

		if period.Status == payroll.PeriodStatusDraft {
			if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, payroll.PeriodStatusProcessing); err != nil {
				return fmt.Errorf("advance period status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.GenerateResult{PeriodID: period.ID, Failures: result.Failures}, err
	}

	s.logger.Info("payroll generated",
		slog.String("period_id", period.ID),
		slog.Int("entries", len(result.Entries)),
		slog.Int("failures", len(result.Failures)),
	)
	return result, nil
}

// ApprovePeriod requires a draft/processing period with at least one entry.
// It stamps the approver and flips every entry to approved.
func (s *Service) ApprovePeriod(ctx context.Context, periodID, approverID string) (payroll.PayrollPeriod, error) {
	if validator.IsEmpty(approverID) {
		return payroll.PayrollPeriod{}, validator.ValidationErrors{{Field: "approver_id", Message: "is required"}}
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PayrollPeriod{}, err
	}
	if !period.Status.Editable() {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyFinalized
	}

	count, err := s.payrollRepo.CountEntriesByPeriod(ctx, periodID)
	if err != nil {
		return payroll.PayrollPeriod{}, err
	}
	if count == 0 {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodHasNoEntries
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.StampPeriodApproved(ctx, periodID, approverID, now); err != nil {
			return err
		}
		return s.payrollRepo.MarkEntriesApproved(ctx, periodID)
	})
	if err != nil {
		return payroll.PayrollPeriod{}, err
	}

	s.logger.Info("payroll period approved",
		slog.String("period_id", periodID),
		slog.String("approved_by", approverID),
		slog.Int("entries", count),
	)
	return s.payrollRepo.GetPeriodByID(ctx, periodID)
}

// ProcessPeriod requires an approved period. It stamps the processor, sets
// the period to processed and marks every entry paid with the payment date.
func (s *Service) ProcessPeriod(ctx context.Context, periodID, processorID string) (payroll.PayrollPeriod, error) {
	if validator.IsEmpty(processorID) {
		return payroll.PayrollPeriod{}, validator.ValidationErrors{{Field: "processor_id", Message: "is required"}}
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PayrollPeriod{}, err
	}
	if period.Status != payroll.PeriodStatusApproved {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotApproved
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.StampPeriodProcessed(ctx, periodID, processorID, now); err != nil {
			return err
		}
		return s.payrollRepo.MarkEntriesPaid(ctx, periodID, now)
	})
	if err != nil {
		return payroll.PayrollPeriod{}, err
	}

	s.logger.Info("payroll period processed",
		slog.String("period_id", periodID),
		slog.String("processed_by", processorID),
	)
	return s.payrollRepo.GetPeriodByID(ctx, periodID)
}

// UpdateEntry edits an entry while its period is still draft/processing.
// The net salary is recalculated from the edited figures; a basic-salary
// change also appends a salary adjustment audit record.
func (s *Service) UpdateEntry(ctx context.Context, req payroll.UpdateEntryRequest, actorID string) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}
	if validator.IsEmpty(actorID) {
		return payroll.PayrollEntry{}, validator.ValidationErrors{{Field: "actor_id", Message: "is required"}}
	}

	entry, err := s.payrollRepo.GetEntryByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	period, err := s.payrollRepo.GetPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	if !period.Status.Editable() {
		return payroll.PayrollEntry{}, payroll.ErrPeriodNotEditable
	}

	previousBasic := entry.BasicSalary
	basicChanged := false
	if req.BasicSalary != nil && !req.BasicSalary.Equal(entry.BasicSalary) {
		entry.BasicSalary = *req.BasicSalary
		basicChanged = true
	}
	if req.TotalAdjustments != nil {
		entry.TotalAdjustments = *req.TotalAdjustments
	}

	// Tax and insurance depend on basic salary; recompute them before the
	// net formula when it changed.
	if basicChanged {
		brackets, err := s.payrollRepo.GetTaxBrackets(ctx)
		if err != nil {
			return payroll.PayrollEntry{}, fmt.Errorf("load tax brackets: %w", err)
		}
		taxableAllowances := entry.TotalAllowances.Sub(entry.TaxExemptAllowances)
		taxBase := entry.BasicSalary.Add(taxableAllowances).Sub(entry.TotalDeductions)
		if taxBase.IsNegative() {
			taxBase = decimal.Zero
		}
		tax, err := CalculateProgressiveTax(brackets, taxBase)
		if err != nil {
			return payroll.PayrollEntry{}, err
		}
		entry.Tax = tax

		insuranceRate, err := s.payrollRepo.GetSocialInsuranceRate(ctx, period.EndDate)
		if err != nil {
			return payroll.PayrollEntry{}, err
		}
		entry.SocialInsurance = insuranceRate.Rate.Mul(entry.BasicSalary.Add(entry.TotalAllowances)).Round(2)
	}

	entry.NetSalary = entry.BasicSalary.
		Add(entry.TotalAllowances).
		Add(entry.OvertimePay).
		Add(entry.HolidayPremium).
		Sub(entry.TotalDeductions).
		Sub(entry.LeaveDeductions).
		Sub(entry.Tax).
		Sub(entry.SocialInsurance).
		Round(2)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.UpdateEntry(ctx, entry); err != nil {
			return err
		}
		if !basicChanged {
			return nil
		}

		effectiveDate := period.EndDate
		if req.EffectiveDate != nil {
			if parsed, ok := validator.IsValidDate(*req.EffectiveDate); ok {
				effectiveDate = parsed
			}
		}
		_, err := s.payrollRepo.CreateSalaryAdjustment(ctx, payroll.SalaryAdjustment{
			EmployeeID:     entry.EmployeeID,
			PreviousSalary: previousBasic,
			NewSalary:      entry.BasicSalary,
			EffectiveDate:  effectiveDate,
			Reason:         req.AdjustmentReason,
			AdjustedBy:     actorID,
		})
		return err
	})
	if err != nil {
		return payroll.PayrollEntry{}, err
	}

	return s.payrollRepo.GetEntryByID(ctx, req.ID)
}

// ListComponents exposes the global component catalog.
func (s *Service) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.SalaryComponent, error) {
	return s.payrollRepo.ListComponents(ctx, activeOnly)
}

func (s *Service) GetComponent(ctx context.Context, id string) (payroll.SalaryComponent, error) {
	return s.payrollRepo.GetComponentByID(ctx, id)
}

// ListTaxBrackets exposes the configured tax schedule.
func (s *Service) ListTaxBrackets(ctx context.Context) ([]payroll.TaxBracket, error) {
	return s.payrollRepo.GetTaxBrackets(ctx)
}

func entryFromBreakdown(breakdown payroll.SalaryBreakdown) payroll.PayrollEntry {
	return payroll.PayrollEntry{
		PeriodID:            breakdown.PeriodID,
		EmployeeID:          breakdown.EmployeeID,
		BasicSalary:         breakdown.BasicSalary,
		TotalAllowances:     breakdown.TotalAllowances,
		TaxExemptAllowances: breakdown.TaxExemptAllowances,
		TotalDeductions:     breakdown.TotalDeductions,
		TotalAdjustments:    decimal.Zero,
		OvertimePay:         breakdown.OvertimePay,
		HolidayPremium:      breakdown.HolidayPremium,
		LeaveDeductions:     breakdown.LeaveDeductions,
		Tax:                 breakdown.Tax,
		SocialInsurance:     breakdown.SocialInsurance,
		NetSalary:           breakdown.NetSalary,
		PaymentStatus:       payroll.PaymentStatusPending,
	}
}
