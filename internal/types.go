package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy selects how debts are ordered for minimum and extra payments
type Policy string

const (
	PolicyAvalanche Policy = "avalanche" // highest APR first
	PolicySnowball  Policy = "snowball"  // lowest balance first
)

// StopReason records which terminal condition ended a simulation
type StopReason string

const (
	StopCleared  StopReason = "cleared"  // all debts paid off
	StopDiverged StopReason = "diverged" // total debt grew compared to the previous period
	StopCeiling  StopReason = "ceiling"  // period ceiling reached without convergence
)

// CurrencyFlags are carried through from the input untouched
type CurrencyFlags struct {
	USD bool
	GBP bool
}

// Debt is one interest-bearing obligation
type Debt struct {
	Name           string
	MinimumPayment decimal.Decimal
	TotalOwed      decimal.Decimal
	CurrentAPR     decimal.Decimal
	Expires        time.Time // zero means no promotional expiry
	ExpiresRaw     string
	NewAPROnExpiry decimal.Decimal
	Currencies     CurrencyFlags

	// Set during a period
	AppliedAPR   decimal.Decimal
	Interest     decimal.Decimal
	Payment      decimal.Decimal
	ExtraPayment decimal.Decimal
}

// NonDebtExpense is a fixed monthly outgoing
type NonDebtExpense struct {
	Name   string
	Amount decimal.Decimal
}

// IncomeSource is a fixed monthly inflow
type IncomeSource struct {
	Name   string
	Amount decimal.Decimal
}

// ScheduleEntry summarizes one simulated period
type ScheduleEntry struct {
	Period              int
	TotalRemaining      decimal.Decimal
	CumulativeInterest  decimal.Decimal
	CumulativePrincipal decimal.Decimal
}

// PaymentDetail is the payment record of one debt in one period
type PaymentDetail struct {
	Period       int
	DebtName     string
	Payment      decimal.Decimal
	ExtraPayment decimal.Decimal
	Remaining    decimal.Decimal
}

// SimulationResult is the full output of one run
type SimulationResult struct {
	Policy     Policy
	Schedule   []ScheduleEntry
	Payments   []PaymentDetail
	StopReason StopReason
}

// Summary holds the aggregate figures of a finished schedule
type Summary struct {
	Policy            Policy
	TotalPeriods      int
	TotalInterestPaid decimal.Decimal
	TotalAmountPaid   decimal.Decimal
}

// Run pairs a simulation result with its summary
type Run struct {
	Result  SimulationResult
	Summary Summary
}
