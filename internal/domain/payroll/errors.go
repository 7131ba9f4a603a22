package payroll

import (
	"errors"
	"fmt"
)

var (
	// Configuration/state problems an operator must fix; retrying is useless.
	ErrNoTaxBrackets          = errors.New("no tax brackets configured")
	ErrNoInsuranceRate        = errors.New("no social insurance rate configured")
	ErrMissingEmployeeType    = errors.New("employee has no employee type record")
	ErrPeriodNotFound         = errors.New("payroll period not found")
	ErrPeriodNotEditable      = errors.New("payroll period is not in draft or processing status")
	ErrPeriodNotApproved      = errors.New("payroll period is not approved")
	ErrPeriodAlreadyFinalized = errors.New("payroll period already approved or processed")
	ErrPeriodHasNoEntries     = errors.New("payroll period has no entries")
	ErrEntryNotFound          = errors.New("payroll entry not found")
	ErrAllEmployeesFailed     = errors.New("payroll generation failed for every employee")
	ErrNoEmployees            = errors.New("no employees to process")
	ErrComponentNotFound      = errors.New("salary component not found")
)

// CalculationError wraps an unexpected failure while computing one
// employee's salary, keeping employee and period context for diagnostics.
type CalculationError struct {
	EmployeeID string
	PeriodID   string
	Err        error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("payroll calculation failed for employee %s in period %s: %v", e.EmployeeID, e.PeriodID, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}
