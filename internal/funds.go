package internal

import "github.com/shopspring/decimal"

// AvailableFunds returns the monthly surplus left for debt payments.
// A shortfall is floored at zero.
func AvailableFunds(income []IncomeSource, expenses []NonDebtExpense) decimal.Decimal {
	surplus := decimal.Zero
	for _, in := range income {
		surplus = surplus.Add(in.Amount)
	}
	for _, ex := range expenses {
		surplus = surplus.Sub(ex.Amount)
	}
	if surplus.IsNegative() {
		return decimal.Zero
	}
	return surplus
}
