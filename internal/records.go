package internal

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ExpiryLayout is the month/day/year layout used for promotional rate expiry dates
const ExpiryLayout = "1/2/2006"

// NoExpiry is the sentinel written in place of an expiry date
const NoExpiry = "NA"

// Cell is a raw input value as it appears in a spreadsheet cell.
// Numeric and boolean fields are coerced when the ledger is built,
// so a malformed cell never fails a load.
type Cell string

// Input holds the raw records a simulation is built from
type Input struct {
	Debts    []DebtRecord    `yaml:"debts" json:"debts"`
	Expenses []ExpenseRecord `yaml:"expenses" json:"expenses"`
	Income   []IncomeRecord  `yaml:"income" json:"income"`
}

// DebtRecord is one row of the debt outgoings sheet
type DebtRecord struct {
	Name           string `yaml:"name" json:"name"`
	MinimumPayment Cell   `yaml:"minimum_payment" json:"minimum_payment"`
	TotalOwed      Cell   `yaml:"total_owed" json:"total_owed"`
	CurrentAPR     Cell   `yaml:"current_apr" json:"current_apr"`
	Expires        Cell   `yaml:"expires,omitempty" json:"expires,omitempty"`
	NewAPROnExpiry Cell   `yaml:"new_apr_on_expiry,omitempty" json:"new_apr_on_expiry,omitempty"`
	USD            Cell   `yaml:"usd,omitempty" json:"usd,omitempty"`
	GBP            Cell   `yaml:"gbp,omitempty" json:"gbp,omitempty"`
}

// ExpenseRecord is one row of the non-debt outgoings sheet
type ExpenseRecord struct {
	Name   string `yaml:"name" json:"name"`
	Amount Cell   `yaml:"amount" json:"amount"`
}

// IncomeRecord is one row of the income sheet
type IncomeRecord struct {
	Name   string `yaml:"name" json:"name"`
	Amount Cell   `yaml:"amount" json:"amount"`
}

// UnmarshalJSON accepts strings, numbers, booleans and null
func (c *Cell) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	*c = Cell(raw)
	return nil
}

// MarshalJSON writes numeric and boolean cells unquoted
func (c Cell) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(c))
	if d, err := decimal.NewFromString(s); err == nil {
		return []byte(d.String()), nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return json.Marshal(b)
	}
	return json.Marshal(string(c))
}

// MarshalYAML writes numeric and boolean cells as plain scalars.
// Numbers keep their full decimal text.
func (c Cell) MarshalYAML() (interface{}, error) {
	s := strings.TrimSpace(string(c))
	if d, err := decimal.NewFromString(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: d.String()}, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return string(c), nil
}

// Decimal coerces the cell to a number, defaulting to zero
func (c Cell) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(c)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Bool coerces the cell to a flag; anything unrecognized is false
func (c Cell) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// ParseExpiry parses a promotional rate expiry date.
// Empty values, the NA sentinel and unparseable text all mean no expiry.
func ParseExpiry(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, NoExpiry) {
		return time.Time{}
	}
	t, err := time.Parse(ExpiryLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NumberCell formats a decimal as a cell
func NumberCell(d decimal.Decimal) Cell {
	return Cell(d.String())
}
