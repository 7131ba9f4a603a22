package response

import (
	"errors"
	"net/http"

	"github.com/hrpay/payroll-backend-go/internal/domain/employee"
	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Calculation failures carry the underlying cause; unwrap for the
	// status mapping but keep the contextual message.
	var calcErr *payroll.CalculationError
	if errors.As(err, &calcErr) {
		UnprocessableEntity(w, calcErr.Error())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeTypeNotFound):
		NotFound(w, "Employee type not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is not active")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrPeriodNotEditable):
		Conflict(w, "Payroll period is no longer editable")
	case errors.Is(err, payroll.ErrPeriodNotApproved):
		Conflict(w, "Payroll period has not been approved")
	case errors.Is(err, payroll.ErrPeriodAlreadyFinalized):
		Conflict(w, "Payroll period has already been finalized")
	case errors.Is(err, payroll.ErrPeriodHasNoEntries):
		Conflict(w, "Payroll period has no entries")
	case errors.Is(err, payroll.ErrNoEmployees):
		UnprocessableEntity(w, "No active employees to generate payroll for")
	case errors.Is(err, payroll.ErrAllEmployeesFailed):
		UnprocessableEntity(w, "Payroll calculation failed for every employee")
	case errors.Is(err, payroll.ErrNoTaxBrackets):
		UnprocessableEntity(w, "No tax brackets configured")
	case errors.Is(err, payroll.ErrNoInsuranceRate):
		UnprocessableEntity(w, "No social insurance rate configured")
	case errors.Is(err, payroll.ErrMissingEmployeeType):
		UnprocessableEntity(w, "Employee has no employee type assigned")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
