package internal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// newDebt builds a debt without promotional expiry
func newDebt(name, minimum, owed, apr string) Debt {
	return Debt{
		Name:           name,
		MinimumPayment: dec(minimum),
		TotalOwed:      dec(owed),
		CurrentAPR:     dec(apr),
		NewAPROnExpiry: dec(apr),
	}
}

// accrued builds a debt as it looks after interest accrual, ready for allocation
func accrued(name, minimum, owed, apr string) Debt {
	d := newDebt(name, minimum, owed, apr)
	d.AppliedAPR = dec(apr)
	return d
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", label, got.String(), want)
	}
}

func names(debts []Debt) []string {
	var out []string
	for _, d := range debts {
		out = append(out, d.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// twoCardLedger has two credit cards and 1950 available per month
func twoCardLedger() Ledger {
	return Ledger{
		Debts: []Debt{
			newDebt("A", "50", "5000", "18.99"),
			newDebt("B", "75", "7500", "15.99"),
		},
		Expenses: []NonDebtExpense{
			{Name: "Rent", Amount: dec("1200")},
			{Name: "Living", Amount: dec("850")},
		},
		Income: []IncomeSource{
			{Name: "Job", Amount: dec("3500")},
			{Name: "Side", Amount: dec("500")},
		},
	}
}

// threeDebtLedger has its highest-APR debt carrying the largest balance,
// so avalanche and snowball target different debts from the first month
func threeDebtLedger() Ledger {
	return Ledger{
		Debts: []Debt{
			newDebt("Card", "100", "6000", "24.99"),
			newDebt("Store", "25", "800", "9.99"),
			newDebt("Loan", "60", "3000", "5"),
		},
		Expenses: []NonDebtExpense{{Name: "Rent", Amount: dec("1300")}},
		Income:   []IncomeSource{{Name: "Job", Amount: dec("2000")}},
	}
}
