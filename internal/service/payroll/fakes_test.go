package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories so lifecycle tests observe consistent state.
type fakeStore struct {
	employees   map[string]employee.Employee
	activeIDs   []string
	assignments map[string][]payroll.EmployeeSalaryComponent
	components  []payroll.SalaryComponent
	brackets    []payroll.TaxBracket
	insurance   []payroll.SocialInsuranceRate
	leaves      map[string][]attendance.LeaveRequest
	hours       map[string]decimal.Decimal
	periods     map[string]payroll.PayrollPeriod
	entries     map[string]payroll.PayrollEntry
	adjustments []payroll.SalaryAdjustment
	seq         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   make(map[string]employee.Employee),
		assignments: make(map[string][]payroll.EmployeeSalaryComponent),
		leaves:      make(map[string][]attendance.LeaveRequest),
		hours:       make(map[string]decimal.Decimal),
		periods:     make(map[string]payroll.PayrollPeriod),
		entries:     make(map[string]payroll.PayrollEntry),
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func hoursKey(employeeID string, kind attendance.HourKind) string {
	return employeeID + "/" + string(kind)
}

// snapshot/restore emulate transaction rollback.
func (s *fakeStore) snapshot() *fakeStore {
	periods := make(map[string]payroll.PayrollPeriod, len(s.periods))
	for k, v := range s.periods {
		periods[k] = v
	}
	entries := make(map[string]payroll.PayrollEntry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	return &fakeStore{
		periods:     periods,
		entries:     entries,
		adjustments: append([]payroll.SalaryAdjustment(nil), s.adjustments...),
		seq:         s.seq,
	}
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.periods = snap.periods
	s.entries = snap.entries
	s.adjustments = snap.adjustments
	s.seq = snap.seq
}

// fakeTxRunner rolls mutable state back when fn fails.
type fakeTxRunner struct {
	store *fakeStore
}

func (t *fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ========== EMPLOYEE REPOSITORY ==========

type fakeEmployeeRepo struct {
	store *fakeStore
}

func (r *fakeEmployeeRepo) GetWithType(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	return r.store.activeIDs, nil
}

// ========== ATTENDANCE REPOSITORY ==========

type fakeAttendanceRepo struct {
	store *fakeStore
}

func (r *fakeAttendanceRepo) GetApprovedLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.LeaveRequest, error) {
	var out []attendance.LeaveRequest
	for _, l := range r.store.leaves[employeeID] {
		if l.Status != attendance.RequestStatusApproved {
			continue
		}
		if l.EndDate.Before(start) || l.StartDate.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetRecordedHours(ctx context.Context, employeeID, periodID string, kind attendance.HourKind) (decimal.Decimal, error) {
	if h, ok := r.store.hours[hoursKey(employeeID, kind)]; ok {
		return h, nil
	}
	return decimal.Zero, nil
}

// ========== PAYROLL REPOSITORY ==========

type fakePayrollRepo struct {
	store *fakeStore

	// forced errors per method
	upsertErr error
}

func (r *fakePayrollRepo) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.SalaryComponent, error) {
	var out []payroll.SalaryComponent
	for _, c := range r.store.components {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakePayrollRepo) GetComponentByID(ctx context.Context, id string) (payroll.SalaryComponent, error) {
	for _, c := range r.store.components {
		if c.ID == id {
			return c, nil
		}
	}
	return payroll.SalaryComponent{}, payroll.ErrComponentNotFound
}

func (r *fakePayrollRepo) GetEmployeeComponents(ctx context.Context, employeeID string) ([]payroll.EmployeeSalaryComponent, error) {
	return r.store.assignments[employeeID], nil
}

func (r *fakePayrollRepo) GetTaxBrackets(ctx context.Context) ([]payroll.TaxBracket, error) {
	return r.store.brackets, nil
}

func (r *fakePayrollRepo) GetSocialInsuranceRate(ctx context.Context, asOf time.Time) (payroll.SocialInsuranceRate, error) {
	var best *payroll.SocialInsuranceRate
	for i := range r.store.insurance {
		rate := r.store.insurance[i]
		if rate.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || rate.EffectiveDate.After(best.EffectiveDate) {
			best = &rate
		}
	}
	if best == nil {
		return payroll.SocialInsuranceRate{}, payroll.ErrNoInsuranceRate
	}
	return *best, nil
}

func (r *fakePayrollRepo) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	period.ID = r.store.nextID("period")
	r.store.periods[period.ID] = period
	return period, nil
}

func (r *fakePayrollRepo) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	period, ok := r.store.periods[id]
	if !ok {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return period, nil
}

func (r *fakePayrollRepo) GetPeriodByYearMonth(ctx context.Context, year, month int) (payroll.PayrollPeriod, error) {
	for _, p := range r.store.periods {
		if p.Year == year && p.Month == month {
			return p, nil
		}
	}
	return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
}

func (r *fakePayrollRepo) UpdatePeriodStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	period, ok := r.store.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	period.Status = status
	r.store.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) StampPeriodApproved(ctx context.Context, id, approvedBy string, at time.Time) error {
	period, ok := r.store.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	period.Status = payroll.PeriodStatusApproved
	period.ApprovedBy = &approvedBy
	period.ApprovedAt = &at
	r.store.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) StampPeriodProcessed(ctx context.Context, id, processedBy string, at time.Time) error {
	period, ok := r.store.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	period.Status = payroll.PeriodStatusProcessed
	period.ProcessedBy = &processedBy
	period.ProcessedAt = &at
	r.store.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) LockPeriod(ctx context.Context, periodID string) error {
	return nil
}

func (r *fakePayrollRepo) UpsertEntry(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	if r.upsertErr != nil {
		return payroll.PayrollEntry{}, r.upsertErr
	}
	for id, existing := range r.store.entries {
		if existing.PeriodID == entry.PeriodID && existing.EmployeeID == entry.EmployeeID {
			entry.ID = id
			r.store.entries[id] = entry
			return entry, nil
		}
	}
	entry.ID = r.store.nextID("entry")
	r.store.entries[entry.ID] = entry
	return entry, nil
}

func (r *fakePayrollRepo) GetEntryByID(ctx context.Context, id string) (payroll.PayrollEntry, error) {
	entry, ok := r.store.entries[id]
	if !ok {
		return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
	}
	return entry, nil
}

func (r *fakePayrollRepo) ListEntriesByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollEntry, error) {
	var out []payroll.PayrollEntry
	for _, e := range r.store.entries {
		if e.PeriodID == periodID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) CountEntriesByPeriod(ctx context.Context, periodID string) (int, error) {
	count := 0
	for _, e := range r.store.entries {
		if e.PeriodID == periodID {
			count++
		}
	}
	return count, nil
}

func (r *fakePayrollRepo) UpdateEntry(ctx context.Context, entry payroll.PayrollEntry) error {
	if _, ok := r.store.entries[entry.ID]; !ok {
		return payroll.ErrEntryNotFound
	}
	r.store.entries[entry.ID] = entry
	return nil
}

func (r *fakePayrollRepo) MarkEntriesApproved(ctx context.Context, periodID string) error {
	for id, e := range r.store.entries {
		if e.PeriodID == periodID {
			e.PaymentStatus = payroll.PaymentStatusApproved
			r.store.entries[id] = e
		}
	}
	return nil
}

func (r *fakePayrollRepo) MarkEntriesPaid(ctx context.Context, periodID string, payDate time.Time) error {
	for id, e := range r.store.entries {
		if e.PeriodID == periodID {
			e.PaymentStatus = payroll.PaymentStatusPaid
			e.PaymentDate = &payDate
			r.store.entries[id] = e
		}
	}
	return nil
}

func (r *fakePayrollRepo) CreateSalaryAdjustment(ctx context.Context, adjustment payroll.SalaryAdjustment) (payroll.SalaryAdjustment, error) {
	adjustment.ID = r.store.nextID("adjustment")
	r.store.adjustments = append(r.store.adjustments, adjustment)
	return adjustment, nil
}

// ========== FIXTURE HELPERS ==========

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// standardBrackets: 0% to 1000, 10% to 5000, 15% to 10000, 20% above.
func standardBrackets() []payroll.TaxBracket {
	return []payroll.TaxBracket{
		{ID: "b1", MinAmount: dec("0"), MaxAmount: decPtr("1000"), Rate: dec("0")},
		{ID: "b2", MinAmount: dec("1000"), MaxAmount: decPtr("5000"), Rate: dec("0.10")},
		{ID: "b3", MinAmount: dec("5000"), MaxAmount: decPtr("10000"), Rate: dec("0.15")},
		{ID: "b4", MinAmount: dec("10000"), Rate: dec("0.20")},
	}
}

func regularType() *employee.EmployeeType {
	return &employee.EmployeeType{
		ID:                   "type-regular",
		Name:                 "Regular",
		Category:             employee.TypeCategoryRegular,
		OvertimeMultiplier:   dec("1.5"),
		HolidayPayMultiplier: dec("2"),
		WorkingHoursPerWeek:  dec("40"),
	}
}

func july2025() payroll.PayrollPeriod {
	return payroll.PayrollPeriod{
		ID:        "period-jul",
		Year:      2025,
		Month:     7,
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		Status:    payroll.PeriodStatusDraft,
	}
}
