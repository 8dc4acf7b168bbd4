package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// OutputOptions controls how simulation runs are displayed
type OutputOptions struct {
	Currency  Currency
	StartDate time.Time // when set, periods are labeled with their simulated month
	Details   bool      // include the per-debt payment table
	Config    *Config
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Runs []JSONRun `json:"runs"`
}

// JSONRun is one policy's result
type JSONRun struct {
	Summary    JSONSummary         `json:"summary"`
	StopReason string              `json:"stop_reason"`
	Schedule   []JSONScheduleEntry `json:"schedule"`
	Payments   []JSONPayment       `json:"payments"`
}

// JSONSummary contains the aggregate figures of a run
type JSONSummary struct {
	Policy            string  `json:"policy"`
	TotalPeriods      int     `json:"total_periods"`
	TotalInterestPaid float64 `json:"total_interest_paid"`
	TotalAmountPaid   float64 `json:"total_amount_paid"`
	Currency          string  `json:"currency"`
}

// JSONScheduleEntry is one period of the schedule
type JSONScheduleEntry struct {
	Period              int     `json:"period"`
	TotalRemaining      float64 `json:"total_remaining"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
}

// JSONPayment is one debt's payment in one period
type JSONPayment struct {
	Period       int     `json:"period"`
	Debt         string  `json:"debt"`
	Payment      float64 `json:"payment"`
	ExtraPayment float64 `json:"extra_payment"`
	Remaining    float64 `json:"remaining"`
}

// money rounds to cents for presentation
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// BuildJSONOutput converts runs to their JSON representation
func BuildJSONOutput(runs []Run, currency Currency) JSONOutput {
	out := JSONOutput{Runs: make([]JSONRun, 0, len(runs))}
	for _, run := range runs {
		jr := JSONRun{
			Summary: JSONSummary{
				Policy:            string(run.Summary.Policy),
				TotalPeriods:      run.Summary.TotalPeriods,
				TotalInterestPaid: money(run.Summary.TotalInterestPaid),
				TotalAmountPaid:   money(run.Summary.TotalAmountPaid),
				Currency:          currency.Code,
			},
			StopReason: string(run.Result.StopReason),
			Schedule:   make([]JSONScheduleEntry, 0, len(run.Result.Schedule)),
			Payments:   make([]JSONPayment, 0, len(run.Result.Payments)),
		}
		for _, e := range run.Result.Schedule {
			jr.Schedule = append(jr.Schedule, JSONScheduleEntry{
				Period:              e.Period,
				TotalRemaining:      money(e.TotalRemaining),
				CumulativeInterest:  money(e.CumulativeInterest),
				CumulativePrincipal: money(e.CumulativePrincipal),
			})
		}
		for _, p := range run.Result.Payments {
			jr.Payments = append(jr.Payments, JSONPayment{
				Period:       p.Period,
				Debt:         p.DebtName,
				Payment:      money(p.Payment),
				ExtraPayment: money(p.ExtraPayment),
				Remaining:    money(p.Remaining),
			})
		}
		out.Runs = append(out.Runs, jr)
	}
	return out
}

// PrintRunsJSON outputs runs in JSON format
func PrintRunsJSON(w io.Writer, runs []Run, currency Currency) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONOutput(runs, currency))
}

// StopMessage describes why a run ended
func StopMessage(run Run) string {
	n := run.Summary.TotalPeriods
	switch run.Result.StopReason {
	case StopCleared:
		return text.FgGreen.Sprintf("All debts cleared after %d months", n)
	case StopDiverged:
		return text.FgRed.Sprintf("Debt is growing after %d months: available funds do not cover the accruing interest", n)
	default:
		return text.FgYellow.Sprintf("Stopped after %d months without clearing all debts", n)
	}
}

func (o OutputOptions) periodLabel(period int) string {
	if o.StartDate.IsZero() {
		return fmt.Sprintf("%d", period)
	}
	return fmt.Sprintf("%d (%s)", period, PeriodDate(o.StartDate, period).Format("2006-01"))
}

// PrintRunTable outputs one run as a summary line, the schedule table and,
// if requested, the payment details table
func PrintRunTable(w io.Writer, run Run, opts OutputOptions) {
	fmt.Fprintf(w, "Policy: %s\n", run.Summary.Policy)
	fmt.Fprintln(w, StopMessage(run))
	fmt.Fprintf(w, "Total interest paid: %s\n", opts.Currency.Format(run.Summary.TotalInterestPaid))
	fmt.Fprintf(w, "Total amount paid: %s\n\n", opts.Currency.Format(run.Summary.TotalAmountPaid))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Month", "Remaining Debt", "Interest (cum.)", "Principal (cum.)"})
	for _, e := range run.Result.Schedule {
		t.AppendRow(table.Row{
			opts.periodLabel(e.Period),
			opts.Currency.Format(e.TotalRemaining),
			opts.Currency.Format(e.CumulativeInterest),
			opts.Currency.Format(e.CumulativePrincipal),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	if opts.Details {
		fmt.Fprintln(w)
		PrintPaymentsTable(w, run.Result.Payments, opts)
	}
}

// PrintPaymentsTable outputs the per-debt payment details
func PrintPaymentsTable(w io.Writer, payments []PaymentDetail, opts OutputOptions) {
	hasDescriptions := false
	if opts.Config != nil {
		for _, p := range payments {
			if opts.Config.GetDescription(p.DebtName) != "" {
				hasDescriptions = true
				break
			}
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Month", "Debt"}
	if hasDescriptions {
		header = append(header, "Description")
	}
	header = append(header, "Payment", "Extra", "Remaining")
	t.AppendHeader(header)

	lastPeriod := 0
	for _, p := range payments {
		if lastPeriod != 0 && p.Period != lastPeriod {
			t.AppendSeparator()
		}
		lastPeriod = p.Period

		row := table.Row{opts.periodLabel(p.Period), p.DebtName}
		if hasDescriptions {
			row = append(row, opts.Config.GetDescription(p.DebtName))
		}

		extra := text.FgHiBlack.Sprint("-")
		if p.ExtraPayment.IsPositive() {
			extra = text.Bold.Sprint(opts.Currency.Format(p.ExtraPayment))
		}
		remaining := opts.Currency.Format(p.Remaining)
		if p.Remaining.LessThanOrEqual(ClearedThreshold) {
			remaining = text.FgGreen.Sprint("PAID OFF")
		}

		row = append(row, opts.Currency.Format(p.Payment), extra, remaining)
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault

	colCount := len(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: colCount - 2, Align: text.AlignRight},
		{Number: colCount - 1, Align: text.AlignRight},
		{Number: colCount, Align: text.AlignRight},
	})

	t.Render()
}

// PrintComparisonTable outputs the summaries of several runs side by side
func PrintComparisonTable(w io.Writer, runs []Run, opts OutputOptions) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Policy", "Months", "Outcome", "Total Interest", "Total Paid"})

	var best *Run
	for i := range runs {
		run := runs[i]
		if run.Result.StopReason == StopCleared &&
			(best == nil || run.Summary.TotalInterestPaid.LessThan(best.Summary.TotalInterestPaid)) {
			best = &runs[i]
		}
		t.AppendRow(table.Row{
			string(run.Summary.Policy),
			run.Summary.TotalPeriods,
			string(run.Result.StopReason),
			opts.Currency.Format(run.Summary.TotalInterestPaid),
			opts.Currency.Format(run.Summary.TotalAmountPaid),
		})
	}

	if best != nil {
		t.AppendSeparator()
		t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Lowest interest"), text.Bold.Sprint(string(best.Summary.Policy))})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}
