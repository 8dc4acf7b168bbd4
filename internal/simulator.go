package internal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxPeriods is the period ceiling used when Options.MaxPeriods is zero
	DefaultMaxPeriods = 1000

	// PeriodDays is the fixed length of a simulated month
	PeriodDays = 30
)

// Options controls a simulation run
type Options struct {
	// MaxPeriods caps the number of simulated periods. Zero means DefaultMaxPeriods.
	MaxPeriods int

	// StartDate is the date the simulation counts periods from
	StartDate time.Time

	Logger *slog.Logger
}

// PeriodDate returns the simulated date of a period.
// It depends only on the start date and the period index.
func PeriodDate(start time.Time, period int) time.Time {
	return start.AddDate(0, 0, PeriodDays*period)
}

func (o Options) validate() error {
	if o.MaxPeriods < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPeriods, o.MaxPeriods)
	}
	return nil
}

func (o Options) maxPeriods() int {
	if o.MaxPeriods == 0 {
		return DefaultMaxPeriods
	}
	return o.MaxPeriods
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Simulate repays the ledger's debts period by period under the given policy.
//
// Each period accrues interest, computes the available funds and allocates
// payments. The run stops when all debts are cleared, when the total owed
// grows compared to the previous period (from the second period on), or when
// the period ceiling is reached. None of these is an error; the reason is
// recorded in the result. Only invalid options or an unknown policy fail, and
// they fail before any period is simulated.
func Simulate(ledger Ledger, policy Policy, opts Options) (SimulationResult, error) {
	if !policy.Valid() {
		return SimulationResult{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	if err := opts.validate(); err != nil {
		return SimulationResult{}, err
	}

	logger := opts.logger().With("policy", string(policy))
	maxPeriods := opts.maxPeriods()

	debts := cloneDebts(ledger.Debts)
	totalInterest := decimal.Zero
	totalPrincipal := decimal.Zero
	previous := TotalOwed(debts)

	result := SimulationResult{
		Policy:     policy,
		StopReason: StopCeiling,
	}

	for period := 1; period <= maxPeriods; period++ {
		debts = AccrueInterest(debts, PeriodDate(opts.StartDate, period))
		interest := TotalInterest(debts)
		funds := AvailableFunds(ledger.Income, ledger.Expenses)

		alloc := AllocatePayments(debts, funds, policy)
		debts = alloc.Active

		totalInterest = totalInterest.Add(interest)
		totalPrincipal = totalPrincipal.Add(funds.Sub(alloc.Unspent))
		current := TotalOwed(debts)

		result.Schedule = append(result.Schedule, ScheduleEntry{
			Period:              period,
			TotalRemaining:      current,
			CumulativeInterest:  totalInterest,
			CumulativePrincipal: totalPrincipal,
		})
		for _, d := range alloc.Paid {
			result.Payments = append(result.Payments, PaymentDetail{
				Period:       period,
				DebtName:     d.Name,
				Payment:      d.Payment,
				ExtraPayment: d.ExtraPayment,
				Remaining:    d.TotalOwed,
			})
		}

		logger.Debug("period simulated",
			"period", period,
			"remaining", current.StringFixed(2),
			"interest", interest.StringFixed(2),
			"unspent", alloc.Unspent.StringFixed(2),
			"active_debts", len(debts))

		if !current.IsPositive() {
			result.StopReason = StopCleared
			break
		}
		if period > 1 && current.GreaterThan(previous) {
			result.StopReason = StopDiverged
			break
		}
		previous = current
	}

	logger.Info("simulation finished",
		"periods", len(result.Schedule),
		"stop_reason", string(result.StopReason))

	return result, nil
}
