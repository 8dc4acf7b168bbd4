package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/debt-simulator/internal"
	"github.com/joho/godotenv"
)

type Params struct {
	File        string `descr:"Input file (.yaml, .json or .xlsx), optionally prefixed with a source, e.g. google-sheets:<spreadsheet-id>" positional:"true" optional:"true"`
	Source      string `descr:"Input source type (default: inferred from the file extension)" optional:"true"`
	Policy      string `descr:"Repayment policy: avalanche, snowball or compare (default: config, then avalanche)" optional:"true"`
	MaxPeriods  int    `descr:"Maximum number of months to simulate (0 = 1000)" env:"DEBTSIM_MAX_PERIODS" optional:"true"`
	StartDate   string `descr:"Simulation start date (YYYY-MM-DD, default: today)" env:"DEBTSIM_START_DATE" optional:"true"`
	Currency    string `descr:"Display currency as ISO code (default: config, then system locale)" env:"DEBTSIM_CURRENCY" optional:"true"`
	Output      string `descr:"Output format" alts:"table,json" default:"table" strict:"true"`
	Details     bool   `descr:"Show per-debt payment details" optional:"true"`
	Export      string `descr:"Also write the schedule and payment details to this .xlsx file" optional:"true"`
	Config      string `descr:"Config file path (default: ~/.debt-simulator/config.yaml)" optional:"true"`
	InitConfig  bool   `descr:"Write a config template for the input's debts to the config path and exit" optional:"true"`
	WriteSample string `descr:"Write sample input data to this path (.yaml, .json or .xlsx) and exit" optional:"true"`
	Verbose     bool   `descr:"Log every simulated month" optional:"true"`
}

func main() {
	// .env may carry DEBTSIM_* defaults and Google credentials
	_ = godotenv.Load()

	boa.NewCmdT[Params]("debt-simulator").
		WithShort("Simulate paying off debts with the avalanche or snowball method").
		WithLong("Simulates monthly repayment of interest-bearing debts under a fixed budget (income minus fixed expenses). " +
			"Minimum payments are made on every debt and the remaining funds go to one target debt: " +
			"the highest APR first (avalanche) or the lowest balance first (snowball).").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, stdout, stderr io.Writer) error {
	logger := internal.NewLogger(stderr, params.Verbose)
	slog.SetDefault(logger)

	if params.WriteSample != "" {
		if err := internal.WriteInput(params.WriteSample, internal.SampleInput()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote sample input to %s\n", params.WriteSample)
		return nil
	}

	if params.File == "" {
		return errors.New("missing input file (create one with --write-sample debts.yaml)")
	}

	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	// --init-config may name a file that does not exist yet
	cfg, err := loadConfig(configPath, params.Config != "" && !params.InitConfig)
	if err != nil {
		return err
	}

	in, err := internal.LoadInput(params.Source, params.File)
	if err != nil {
		return err
	}
	in = cfg.ApplyExclusions(in)

	if params.InitConfig {
		if configPath == "" {
			return errors.New("no config path available, use --config")
		}
		if err := internal.GenerateConfigTemplate(in).Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote config template to %s\n", configPath)
		return nil
	}

	ledger := internal.NewLedger(in, logger)
	funds := internal.AvailableFunds(ledger.Income, ledger.Expenses)
	logger.Info("loaded input",
		"debts", len(ledger.Debts),
		"expenses", len(ledger.Expenses),
		"income", len(ledger.Income),
		"available_funds", funds.StringFixed(2))

	policies, err := resolvePolicies(params.Policy, cfg)
	if err != nil {
		return err
	}

	start, err := resolveStartDate(params.StartDate, cfg)
	if err != nil {
		return err
	}

	maxPeriods := params.MaxPeriods
	if maxPeriods == 0 && cfg != nil {
		maxPeriods = cfg.MaxPeriods
	}

	opts := internal.Options{
		MaxPeriods: maxPeriods,
		StartDate:  start,
		Logger:     logger,
	}
	runs, err := internal.RunPolicies(context.Background(), ledger, policies, opts)
	if err != nil {
		return err
	}

	currency := internal.GetCurrency(resolveCurrency(params.Currency, cfg, ledger))

	if params.Export != "" {
		if err := internal.ExportXLSX(params.Export, runs); err != nil {
			return fmt.Errorf("exporting %s: %w", params.Export, err)
		}
		logger.Info("exported workbook", "path", params.Export)
	}

	if params.Output == "json" {
		return internal.PrintRunsJSON(stdout, runs, currency)
	}

	out := internal.OutputOptions{
		Currency:  currency,
		StartDate: start,
		Details:   params.Details,
		Config:    cfg,
	}
	fmt.Fprintf(stdout, "Loaded %d debts, %d expenses, %d income sources\n",
		len(ledger.Debts), len(ledger.Expenses), len(ledger.Income))
	fmt.Fprintf(stdout, "Available for debt payments: %s per month\n\n", currency.Format(funds))

	if len(runs) > 1 {
		internal.PrintComparisonTable(stdout, runs, out)
		fmt.Fprintln(stdout)
	}
	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		internal.PrintRunTable(stdout, r, out)
	}
	return nil
}

// loadConfig loads the config file. A missing file is only an error when
// the path was given explicitly.
func loadConfig(path string, explicit bool) (*internal.Config, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

func resolvePolicies(flag string, cfg *internal.Config) ([]internal.Policy, error) {
	name := flag
	if name == "" && cfg != nil {
		name = cfg.Policy
	}
	if name == "" {
		name = string(internal.PolicyAvalanche)
	}
	if strings.EqualFold(name, internal.PolicyCompare) {
		return internal.Policies, nil
	}
	p, err := internal.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	return []internal.Policy{p}, nil
}

func resolveStartDate(flag string, cfg *internal.Config) (time.Time, error) {
	if flag != "" {
		t, err := time.Parse(internal.DateLayout, flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid start date %q: %w", flag, err)
		}
		return t, nil
	}
	if start := cfg.Start(); !start.IsZero() {
		return start, nil
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func resolveCurrency(flag string, cfg *internal.Config, ledger internal.Ledger) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.Currency != "" {
		return cfg.Currency
	}
	if detected := internal.DetectSystemCurrency(); detected != "" {
		return detected
	}
	return internal.CurrencyFromFlags(ledger.Debts)
}
