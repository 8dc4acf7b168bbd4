package internal

import (
	"context"
	"errors"
	"testing"
)

func TestSummarize(t *testing.T) {
	schedule := []ScheduleEntry{
		{Period: 1, TotalRemaining: dec("900"), CumulativeInterest: dec("10"), CumulativePrincipal: dec("110")},
		{Period: 2, TotalRemaining: dec("0"), CumulativeInterest: dec("19"), CumulativePrincipal: dec("1019")},
	}

	got, err := Summarize(schedule, PolicySnowball)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Policy != PolicySnowball || got.TotalPeriods != 2 {
		t.Errorf("got policy %s periods %d", got.Policy, got.TotalPeriods)
	}
	assertDecimal(t, "interest", got.TotalInterestPaid, "19")
	assertDecimal(t, "amount", got.TotalAmountPaid, "1038")
}

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil, PolicyAvalanche); !errors.Is(err, ErrEmptySchedule) {
		t.Errorf("expected ErrEmptySchedule, got %v", err)
	}
}

func TestRunPolicy(t *testing.T) {
	run, err := RunPolicy(twoCardLedger(), PolicyAvalanche, Options{StartDate: date("2025-01-01")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Summary.TotalPeriods != 8 {
		t.Errorf("periods = %d, want 8", run.Summary.TotalPeriods)
	}
	if got := run.Summary.TotalInterestPaid.StringFixed(2); got != "707.53" {
		t.Errorf("interest = %s, want 707.53", got)
	}
	if got := run.Summary.TotalAmountPaid.StringFixed(2); got != "13915.05" {
		t.Errorf("amount = %s, want 13915.05", got)
	}
}

func TestRunPolicies(t *testing.T) {
	opts := Options{StartDate: date("2025-01-01")}
	policies := []Policy{PolicySnowball, PolicyAvalanche}

	runs, err := RunPolicies(context.Background(), threeDebtLedger(), policies, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for i, p := range policies {
		if runs[i].Summary.Policy != p || runs[i].Result.Policy != p {
			t.Errorf("run %d is %s, want %s", i, runs[i].Summary.Policy, p)
		}
	}

	snowball, avalanche := runs[0].Summary, runs[1].Summary
	if !avalanche.TotalInterestPaid.LessThan(snowball.TotalInterestPaid) {
		t.Errorf("avalanche interest %s should be below snowball %s",
			avalanche.TotalInterestPaid.StringFixed(2), snowball.TotalInterestPaid.StringFixed(2))
	}

	// concurrent runs match sequential ones
	for i, p := range policies {
		want := render(simulate(t, threeDebtLedger(), p, opts))
		if got := render(runs[i].Result); !equalStrings(got, want) {
			t.Errorf("%s: concurrent result differs from sequential run", p)
		}
	}
}

func TestRunPolicies_Errors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		policies []Policy
		opts     Options
		wantErr  error
	}{
		{"unknown policy", context.Background(), []Policy{PolicyAvalanche, "minimum-only"}, Options{}, ErrUnknownPolicy},
		{"negative ceiling", context.Background(), Policies, Options{MaxPeriods: -3}, ErrInvalidMaxPeriods},
		{"cancelled", cancelled, Policies, Options{}, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := RunPolicies(tt.ctx, twoCardLedger(), tt.policies, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if runs != nil {
				t.Errorf("expected no runs on error, got %d", len(runs))
			}
		})
	}
}
