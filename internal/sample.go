package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SampleInput returns a small household with four debts, five fixed
// expenses and two income sources
func SampleInput() Input {
	return Input{
		Debts: []DebtRecord{
			{Name: "Credit Card A", MinimumPayment: "50", TotalOwed: "5000", CurrentAPR: "18.99", Expires: NoExpiry, NewAPROnExpiry: "18.99", USD: "true", GBP: "false"},
			{Name: "Credit Card B", MinimumPayment: "75", TotalOwed: "7500", CurrentAPR: "15.99", Expires: "12/31/2024", NewAPROnExpiry: "21.99", USD: "true", GBP: "false"},
			{Name: "Personal Loan", MinimumPayment: "200", TotalOwed: "10000", CurrentAPR: "8.5", Expires: NoExpiry, NewAPROnExpiry: "8.5", USD: "true", GBP: "false"},
			{Name: "Store Card", MinimumPayment: "25", TotalOwed: "1500", CurrentAPR: "24.99", Expires: NoExpiry, NewAPROnExpiry: "24.99", USD: "true", GBP: "false"},
		},
		Expenses: []ExpenseRecord{
			{Name: "Rent", Amount: "1200"},
			{Name: "Utilities", Amount: "200"},
			{Name: "Groceries", Amount: "400"},
			{Name: "Transportation", Amount: "150"},
			{Name: "Insurance", Amount: "100"},
		},
		Income: []IncomeRecord{
			{Name: "Primary Job", Amount: "3500"},
			{Name: "Side Hustle", Amount: "500"},
		},
	}
}

// WriteInput writes input records to path, in YAML, JSON or XLSX depending on the extension
func WriteInput(path string, in Input) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteInputXLSX(path, in)
	case ".json":
		data, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling input: %w", err)
		}
		return writeFile(path, append(data, '\n'))
	case ".yaml", ".yml":
		data, err := yaml.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling input: %w", err)
		}
		return writeFile(path, data)
	default:
		return fmt.Errorf("unsupported sample format %q (use .yaml, .json or .xlsx)", filepath.Ext(path))
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
