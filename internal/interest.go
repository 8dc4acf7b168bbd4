package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// aprDivisor converts an annual percentage to a monthly fraction (12 months × 100)
var aprDivisor = decimal.NewFromInt(1200)

// ApplicableAPR returns the rate in force on the given date.
// Once a promotional expiry date is reached the post-expiry rate applies.
func (d Debt) ApplicableAPR(on time.Time) decimal.Decimal {
	if !d.Expires.IsZero() && !on.Before(d.Expires) {
		return d.NewAPROnExpiry
	}
	return d.CurrentAPR
}

// AccrueInterest adds one period of interest to every debt.
// The returned slice is a new collection; debts is left untouched.
func AccrueInterest(debts []Debt, on time.Time) []Debt {
	out := cloneDebts(debts)
	for i := range out {
		apr := out[i].ApplicableAPR(on)
		interest := out[i].TotalOwed.Mul(apr).Div(aprDivisor)

		out[i].AppliedAPR = apr
		out[i].Interest = interest
		out[i].TotalOwed = out[i].TotalOwed.Add(interest)
	}
	return out
}

// TotalInterest sums the interest accrued by the given debts this period
func TotalInterest(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Interest)
	}
	return total
}
