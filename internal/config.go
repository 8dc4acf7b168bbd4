package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PolicyCompare runs every policy side by side; it is a CLI mode, not an engine policy
const PolicyCompare = "compare"

// DateLayout is the layout of start dates in flags and config
const DateLayout = "2006-01-02"

// Record kinds an exclude rule can be limited to
const (
	KindDebt    = "debt"
	KindExpense = "expense"
	KindIncome  = "income"
)

// ExcludeRule removes matching records from the input before simulating
type ExcludeRule struct {
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind,omitempty"` // debt, expense or income; empty matches all

	// compiled fields
	regex *regexp.Regexp `yaml:"-"`
}

type Config struct {
	// Policy is avalanche, snowball or compare
	Policy string `yaml:"policy,omitempty"`

	// MaxPeriods caps the simulation length (0 means the built-in default)
	MaxPeriods int `yaml:"max_periods,omitempty"`

	// Currency is the ISO code used for display
	Currency string `yaml:"currency,omitempty"`

	// StartDate (YYYY-MM-DD) fixes the simulation start; empty means today
	StartDate string `yaml:"start_date,omitempty"`

	// Descriptions maps debt names to notes shown in the details table
	Descriptions map[string]string `yaml:"descriptions,omitempty"`

	// Exclude is a list of exclusion rules (strings or objects with pattern and kind)
	Exclude []yaml.Node `yaml:"exclude,omitempty"`

	// compiled (not serialized)
	excludeRules []ExcludeRule `yaml:"-"`
	startDate    time.Time     `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.debt-simulator/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".debt-simulator", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Policy != "" && !strings.EqualFold(cfg.Policy, PolicyCompare) {
		if _, err := ParsePolicy(cfg.Policy); err != nil {
			return nil, fmt.Errorf("invalid policy in config: %w", err)
		}
	}
	if cfg.MaxPeriods < 0 {
		return nil, fmt.Errorf("invalid max_periods %d: %w", cfg.MaxPeriods, ErrInvalidMaxPeriods)
	}
	if cfg.StartDate != "" {
		t, err := time.Parse(DateLayout, cfg.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q: %w", cfg.StartDate, err)
		}
		cfg.startDate = t
	}

	// Parse exclude rules (supports both strings and objects)
	for _, node := range cfg.Exclude {
		var rule ExcludeRule

		if node.Kind == yaml.ScalarNode {
			rule.Pattern = node.Value
		} else if node.Kind == yaml.MappingNode {
			if err := node.Decode(&rule); err != nil {
				return nil, fmt.Errorf("parsing exclude rule: %w", err)
			}
		} else {
			return nil, fmt.Errorf("invalid exclude rule format")
		}

		switch rule.Kind {
		case "", KindDebt, KindExpense, KindIncome:
		default:
			return nil, fmt.Errorf("invalid exclude kind %q (want %s, %s or %s)", rule.Kind, KindDebt, KindExpense, KindIncome)
		}

		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", rule.Pattern, err)
		}
		rule.regex = re

		cfg.excludeRules = append(cfg.excludeRules, rule)
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Start returns the configured start date, or the zero time if unset
func (c *Config) Start() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.startDate
}

// ShouldExclude returns true if a record of the given kind matches any exclude rule
func (c *Config) ShouldExclude(kind, name string) bool {
	if c == nil {
		return false
	}
	for _, rule := range c.excludeRules {
		if rule.Kind != "" && rule.Kind != kind {
			continue
		}
		if rule.regex.MatchString(name) {
			return true
		}
	}
	return false
}

// ApplyExclusions returns a copy of the input without excluded records
func (c *Config) ApplyExclusions(in Input) Input {
	if c == nil || len(c.excludeRules) == 0 {
		return in
	}
	var out Input
	for _, d := range in.Debts {
		if !c.ShouldExclude(KindDebt, d.Name) {
			out.Debts = append(out.Debts, d)
		}
	}
	for _, e := range in.Expenses {
		if !c.ShouldExclude(KindExpense, e.Name) {
			out.Expenses = append(out.Expenses, e)
		}
	}
	for _, i := range in.Income {
		if !c.ShouldExclude(KindIncome, i.Name) {
			out.Income = append(out.Income, i)
		}
	}
	return out
}

// GetDescription returns the custom description for a debt, or empty string
func (c *Config) GetDescription(name string) string {
	if c == nil || c.Descriptions == nil {
		return ""
	}
	return c.Descriptions[name]
}

// GenerateConfigTemplate creates a config template with a description placeholder per debt
func GenerateConfigTemplate(in Input) *Config {
	cfg := &Config{
		Policy:       string(PolicyAvalanche),
		Descriptions: make(map[string]string),
	}

	for _, d := range in.Debts {
		cfg.Descriptions[d.Name] = "" // Empty description as placeholder
	}

	return cfg
}
