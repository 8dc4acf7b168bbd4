package internal

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Summarize reduces a finished schedule to its aggregate figures.
// The schedule must contain at least one period.
func Summarize(schedule []ScheduleEntry, policy Policy) (Summary, error) {
	if len(schedule) == 0 {
		return Summary{}, ErrEmptySchedule
	}
	last := schedule[len(schedule)-1]
	return Summary{
		Policy:            policy,
		TotalPeriods:      len(schedule),
		TotalInterestPaid: last.CumulativeInterest,
		TotalAmountPaid:   last.CumulativeInterest.Add(last.CumulativePrincipal),
	}, nil
}

// RunPolicy simulates one policy and summarizes the result
func RunPolicy(ledger Ledger, policy Policy, opts Options) (Run, error) {
	result, err := Simulate(ledger, policy, opts)
	if err != nil {
		return Run{}, err
	}
	summary, err := Summarize(result.Schedule, policy)
	if err != nil {
		return Run{}, fmt.Errorf("summarizing %s run: %w", policy, err)
	}
	return Run{Result: result, Summary: summary}, nil
}

// RunPolicies simulates each policy concurrently against the same ledger.
// Runs share no mutable state. Results are returned in the order requested.
func RunPolicies(ctx context.Context, ledger Ledger, policies []Policy, opts Options) ([]Run, error) {
	for _, p := range policies {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, p)
		}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	runs := make([]Run, len(policies))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range policies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run, err := RunPolicy(ledger, p, opts)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
