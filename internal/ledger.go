package internal

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// ClearedThreshold is the balance at or below which a debt counts as paid off
var ClearedThreshold = decimal.RequireFromString("0.01")

// Ledger holds the starting state of a simulation.
// Runs never mutate a Ledger; each run works on its own copy of the debts.
type Ledger struct {
	Debts    []Debt
	Expenses []NonDebtExpense
	Income   []IncomeSource
}

// NewLedger coerces raw input records into a ledger.
// Unparseable numbers become zero and unparseable expiry dates mean no expiry.
// Debts without a name or with a name already seen are skipped.
func NewLedger(in Input, logger *slog.Logger) Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var l Ledger
	seen := make(map[string]bool)
	for _, rec := range in.Debts {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			logger.Warn("skipping debt without a name", "total_owed", strings.TrimSpace(string(rec.TotalOwed)))
			continue
		}
		if seen[name] {
			logger.Warn("skipping duplicate debt", "name", name)
			continue
		}
		seen[name] = true

		l.Debts = append(l.Debts, Debt{
			Name:           name,
			MinimumPayment: rec.MinimumPayment.Decimal(),
			TotalOwed:      rec.TotalOwed.Decimal(),
			CurrentAPR:     rec.CurrentAPR.Decimal(),
			Expires:        ParseExpiry(string(rec.Expires)),
			ExpiresRaw:     strings.TrimSpace(string(rec.Expires)),
			NewAPROnExpiry: rec.NewAPROnExpiry.Decimal(),
			Currencies: CurrencyFlags{
				USD: rec.USD.Bool(),
				GBP: rec.GBP.Bool(),
			},
		})
	}
	for _, rec := range in.Expenses {
		l.Expenses = append(l.Expenses, NonDebtExpense{
			Name:   strings.TrimSpace(rec.Name),
			Amount: rec.Amount.Decimal(),
		})
	}
	for _, rec := range in.Income {
		l.Income = append(l.Income, IncomeSource{
			Name:   strings.TrimSpace(rec.Name),
			Amount: rec.Amount.Decimal(),
		})
	}
	return l
}

// TotalOwed sums the balances of the given debts
func TotalOwed(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.TotalOwed)
	}
	return total
}

// IsCleared reports whether the debt's balance is negligible
func (d Debt) IsCleared() bool {
	return d.TotalOwed.LessThanOrEqual(ClearedThreshold)
}

func cloneDebts(debts []Debt) []Debt {
	if debts == nil {
		return nil
	}
	out := make([]Debt, len(debts))
	copy(out, debts)
	return out
}
