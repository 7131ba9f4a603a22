package payroll

import (
	"time"

	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ComponentTotals aggregates an employee's resolved salary components.
// TaxableAllowances and TaxExemptAllowances partition TotalAllowances.
type ComponentTotals struct {
	TotalAllowances     decimal.Decimal
	TaxableAllowances   decimal.Decimal
	TaxExemptAllowances decimal.Decimal
	TotalDeductions     decimal.Decimal
}

// ResolveComponents computes the component aggregates for one employee.
// Assignments that are inactive or whose validity window does not contain
// asOf are skipped. Percentage components resolve against basicSalary; an
// assignment override takes precedence over the template default. Pure:
// same inputs always produce the same totals, nothing is mutated.
func ResolveComponents(assignments []payroll.EmployeeSalaryComponent, basicSalary decimal.Decimal, asOf time.Time) ComponentTotals {
	totals := ComponentTotals{
		TotalAllowances:     decimal.Zero,
		TaxableAllowances:   decimal.Zero,
		TaxExemptAllowances: decimal.Zero,
		TotalDeductions:     decimal.Zero,
	}

	for _, assignment := range assignments {
		if !assignment.CurrentAt(asOf) {
			continue
		}

		amount := assignment.EffectiveValue()
		if assignment.IsPercentage {
			amount = basicSalary.Mul(amount).Div(decimal.NewFromInt(100))
		}
		amount = amount.Round(2)

		switch assignment.Kind {
		case payroll.ComponentKindAllowance:
			totals.TotalAllowances = totals.TotalAllowances.Add(amount)
			if assignment.IsTaxable {
				totals.TaxableAllowances = totals.TaxableAllowances.Add(amount)
			} else {
				totals.TaxExemptAllowances = totals.TaxExemptAllowances.Add(amount)
			}
		case payroll.ComponentKindDeduction:
			totals.TotalDeductions = totals.TotalDeductions.Add(amount)
		}
	}

	return totals
}
