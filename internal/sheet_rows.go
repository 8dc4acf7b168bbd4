package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by the workbook and Google Sheets sources
const (
	SheetDebts    = "debt-outgoings"
	SheetExpenses = "non-debt-outgoings"
	SheetIncome   = "income"
)

// Column headers of the debt outgoings sheet
var DebtHeaders = []string{"Company", "Minimum Payment", "Total Owed", "Current APR", "Expires", "New APR on Expiry", "USD", "GBP"}

// Column headers of the non-debt outgoings and income sheets
var (
	ExpenseHeaders = []string{"Expense", "Total Owed"}
	IncomeHeaders  = []string{"Source", "Amount"}
)

type column struct {
	names    []string // accepted header spellings, matched case-insensitively
	required bool
}

var (
	debtColumns = map[string]column{
		"name":    {names: []string{"Company", "Name"}, required: true},
		"minimum": {names: []string{"Minimum Payment"}, required: true},
		"owed":    {names: []string{"Total Owed", "Balance"}, required: true},
		"apr":     {names: []string{"Current APR", "APR"}, required: true},
		"expires": {names: []string{"Expires"}},
		"new_apr": {names: []string{"New APR on Expiry"}},
		"usd":     {names: []string{"USD"}},
		"gbp":     {names: []string{"GBP"}},
	}
	expenseColumns = map[string]column{
		"name":   {names: []string{"Expense", "Name"}, required: true},
		"amount": {names: []string{"Total Owed", "Amount"}, required: true},
	}
	incomeColumns = map[string]column{
		"name":   {names: []string{"Source", "Name"}, required: true},
		"amount": {names: []string{"Amount"}, required: true},
	}
)

// ParseSheetRows converts the rows of the three input sheets into records.
// Each sheet needs a header row; rows above it are ignored, as are data rows
// with an empty name.
func ParseSheetRows(debtRows, expenseRows, incomeRows [][]string) (Input, error) {
	var in Input

	cols, start, err := findHeader(debtRows, debtColumns)
	if err != nil {
		return Input{}, fmt.Errorf("sheet %s: %w", SheetDebts, err)
	}
	for _, row := range debtRows[start:] {
		name := cellAt(row, cols["name"])
		if name == "" {
			continue
		}
		in.Debts = append(in.Debts, DebtRecord{
			Name:           name,
			MinimumPayment: Cell(cellAt(row, cols["minimum"])),
			TotalOwed:      Cell(cellAt(row, cols["owed"])),
			CurrentAPR:     Cell(cellAt(row, cols["apr"])),
			Expires:        expiryCell(cellAt(row, cols["expires"])),
			NewAPROnExpiry: Cell(cellAt(row, cols["new_apr"])),
			USD:            Cell(cellAt(row, cols["usd"])),
			GBP:            Cell(cellAt(row, cols["gbp"])),
		})
	}

	cols, start, err = findHeader(expenseRows, expenseColumns)
	if err != nil {
		return Input{}, fmt.Errorf("sheet %s: %w", SheetExpenses, err)
	}
	for _, row := range expenseRows[start:] {
		if name := cellAt(row, cols["name"]); name != "" {
			in.Expenses = append(in.Expenses, ExpenseRecord{Name: name, Amount: Cell(cellAt(row, cols["amount"]))})
		}
	}

	cols, start, err = findHeader(incomeRows, incomeColumns)
	if err != nil {
		return Input{}, fmt.Errorf("sheet %s: %w", SheetIncome, err)
	}
	for _, row := range incomeRows[start:] {
		if name := cellAt(row, cols["name"]); name != "" {
			in.Income = append(in.Income, IncomeRecord{Name: name, Amount: Cell(cellAt(row, cols["amount"]))})
		}
	}

	return in, nil
}

// findHeader locates the first row that contains every required column.
// Returns the column indices (-1 for absent optional columns) and the index
// of the first data row.
func findHeader(rows [][]string, columns map[string]column) (map[string]int, int, error) {
	for i, row := range rows {
		lookup := make(map[string]int, len(row))
		for j, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := lookup[key]; !dup {
				lookup[key] = j
			}
		}

		found := make(map[string]int, len(columns))
		complete := true
		for key, col := range columns {
			found[key] = -1
			for _, name := range col.names {
				if j, ok := lookup[strings.ToLower(name)]; ok {
					found[key] = j
					break
				}
			}
			if found[key] == -1 && col.required {
				complete = false
			}
		}
		if complete {
			return found, i + 1, nil
		}
	}

	var required []string
	for _, col := range columns {
		if col.required {
			required = append(required, col.names[0])
		}
	}
	sort.Strings(required)
	return nil, 0, fmt.Errorf("could not find required columns (%s)", strings.Join(required, ", "))
}

// expiryCell turns a spreadsheet date serial into the expiry layout.
// Anything else is kept as written.
func expiryCell(raw string) Cell {
	serial, err := decimal.NewFromString(raw)
	if err != nil || !serial.IsPositive() {
		return Cell(raw)
	}
	t, err := excelize.ExcelDateToTime(serial.InexactFloat64(), false)
	if err != nil {
		return Cell(raw)
	}
	return Cell(t.Format(ExpiryLayout))
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
