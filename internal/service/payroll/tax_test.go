package payroll

import (
	"testing"

	"github.com/hrpay/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateProgressiveTax_MarginalRates(t *testing.T) {
	// 0% on the first 1000, 10% on the next 4000 = 400.00
	tax, err := CalculateProgressiveTax(standardBrackets(), dec("5000"))
	require.NoError(t, err)
	assert.True(t, tax.Equal(dec("400.00")), "expected 400.00, got %s", tax)
}

func TestCalculateProgressiveTax_SpansAllBrackets(t *testing.T) {
	// 0 + 400 + 750 + 400 = 1550.00
	tax, err := CalculateProgressiveTax(standardBrackets(), dec("12000"))
	require.NoError(t, err)
	assert.True(t, tax.Equal(dec("1550.00")), "expected 1550.00, got %s", tax)
}

func TestCalculateProgressiveTax_BracketBoundary(t *testing.T) {
	tax, err := CalculateProgressiveTax(standardBrackets(), dec("1000"))
	require.NoError(t, err)
	assert.True(t, tax.IsZero(), "income at the zero-rate boundary owes nothing, got %s", tax)
}

func TestCalculateProgressiveTax_ZeroAndNegativeIncome(t *testing.T) {
	tax, err := CalculateProgressiveTax(standardBrackets(), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, tax.IsZero())

	tax, err = CalculateProgressiveTax(standardBrackets(), dec("-250"))
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestCalculateProgressiveTax_UnsortedBrackets(t *testing.T) {
	brackets := standardBrackets()
	shuffled := []payroll.TaxBracket{brackets[3], brackets[0], brackets[2], brackets[1]}

	tax, err := CalculateProgressiveTax(shuffled, dec("5000"))
	require.NoError(t, err)
	assert.True(t, tax.Equal(dec("400.00")), "storage order must not matter, got %s", tax)
}

func TestCalculateProgressiveTax_NoBrackets(t *testing.T) {
	_, err := CalculateProgressiveTax(nil, dec("5000"))
	assert.ErrorIs(t, err, payroll.ErrNoTaxBrackets)
}

func TestCalculateProgressiveTax_Monotonic(t *testing.T) {
	brackets := standardBrackets()
	previous := decimal.Zero
	for _, income := range []string{"500", "1000", "2500", "5000", "10000", "20000"} {
		tax, err := CalculateProgressiveTax(brackets, dec(income))
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(previous),
			"tax must not decrease as income grows: income %s tax %s previous %s", income, tax, previous)
		previous = tax
	}
}
