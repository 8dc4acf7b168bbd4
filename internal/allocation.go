package internal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Policies lists the supported repayment policies
var Policies = []Policy{PolicyAvalanche, PolicySnowball}

// ParsePolicy validates a policy token (case-insensitive)
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownPolicy, s, Policies)
	}
	return p, nil
}

// Valid reports whether p is a supported policy
func (p Policy) Valid() bool {
	return p == PolicyAvalanche || p == PolicySnowball
}

// Compare orders two debts for payment under the policy.
// Avalanche: applied APR descending, then balance ascending.
// Snowball: balance ascending, then applied APR ascending.
func (p Policy) Compare(a, b Debt) int {
	if p == PolicySnowball {
		if c := a.TotalOwed.Cmp(b.TotalOwed); c != 0 {
			return c
		}
		return a.AppliedAPR.Cmp(b.AppliedAPR)
	}
	if c := b.AppliedAPR.Cmp(a.AppliedAPR); c != 0 {
		return c
	}
	return a.TotalOwed.Cmp(b.TotalOwed)
}

// Allocation is the outcome of distributing one period's funds
type Allocation struct {
	// Active holds the debts still owing after payment, in input order
	Active []Debt
	// Paid holds every debt that entered the period, in payment order,
	// including the ones cleared this period
	Paid []Debt
	// Unspent is what remains of the funds after all payments
	Unspent decimal.Decimal
}

// AllocatePayments pays minimums in policy order, then routes the whole
// remainder to the first debt still owing after its minimum. Leftover funds
// are not redistributed to other debts. Debts are expected to carry the APR
// applied by AccrueInterest for this period.
func AllocatePayments(debts []Debt, funds decimal.Decimal, policy Policy) Allocation {
	if len(debts) == 0 {
		return Allocation{Unspent: funds}
	}

	order := make([]int, len(debts))
	for i := range order {
		order[i] = i
	}
	// stable, so remaining ties keep input order
	slices.SortStableFunc(order, func(i, j int) int {
		return policy.Compare(debts[i], debts[j])
	})

	paid := make([]Debt, len(debts))
	position := make([]int, len(debts))
	for k, idx := range order {
		paid[k] = debts[idx]
		position[idx] = k
	}

	remaining := funds
	for k := range paid {
		pay := decimal.Min(paid[k].MinimumPayment, paid[k].TotalOwed, remaining)
		if pay.IsNegative() {
			pay = decimal.Zero
		}
		paid[k].Payment = pay
		paid[k].ExtraPayment = decimal.Zero
		remaining = remaining.Sub(pay)
	}

	if remaining.IsPositive() {
		for k := range paid {
			outstanding := paid[k].TotalOwed.Sub(paid[k].Payment)
			if !outstanding.IsPositive() {
				continue
			}
			extra := decimal.Min(remaining, outstanding)
			paid[k].Payment = paid[k].Payment.Add(extra)
			paid[k].ExtraPayment = extra
			remaining = remaining.Sub(extra)
			break
		}
	}

	for k := range paid {
		paid[k].TotalOwed = paid[k].TotalOwed.Sub(paid[k].Payment)
	}

	var active []Debt
	for idx := range debts {
		d := paid[position[idx]]
		if !d.IsCleared() {
			active = append(active, d)
		}
	}

	return Allocation{
		Active:  active,
		Paid:    paid,
		Unspent: remaining,
	}
}

// TotalPaid sums the payments made to the given debts this period
func TotalPaid(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Payment)
	}
	return total
}
