package payroll

import (
	"sort"

	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateProgressiveTax computes total tax by applying each bracket's
// marginal rate to the portion of taxable falling within [min, max). A nil
// MaxAmount means open-ended. Brackets are sorted by MinAmount ascending here
// regardless of storage order. A payroll cannot run without a tax schedule,
// so an empty set is an error rather than zero tax.
func CalculateProgressiveTax(brackets []payroll.TaxBracket, taxable decimal.Decimal) (decimal.Decimal, error) {
	if len(brackets) == 0 {
		return decimal.Zero, payroll.ErrNoTaxBrackets
	}
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	sorted := make([]payroll.TaxBracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinAmount.LessThan(sorted[j].MinAmount)
	})

	total := decimal.Zero
	for _, bracket := range sorted {
		if taxable.LessThanOrEqual(bracket.MinAmount) {
			break
		}
		upper := taxable
		if bracket.MaxAmount != nil && bracket.MaxAmount.LessThan(upper) {
			upper = *bracket.MaxAmount
		}
		portion := upper.Sub(bracket.MinAmount)
		if portion.GreaterThan(decimal.Zero) {
			total = total.Add(portion.Mul(bracket.Rate))
		}
	}

	return total.Round(2), nil
}
