package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates in a new workbook
const defaultSheet = "Sheet1"

type sheetData struct {
	name   string
	header []string
	rows   [][]interface{}
}

// WriteInputXLSX writes input records as a workbook that ParseXLSX can read back
func WriteInputXLSX(path string, in Input) error {
	debts := sheetData{name: SheetDebts, header: DebtHeaders}
	for _, d := range in.Debts {
		debts.rows = append(debts.rows, []interface{}{
			d.Name,
			cellValue(d.MinimumPayment),
			cellValue(d.TotalOwed),
			cellValue(d.CurrentAPR),
			cellValue(d.Expires),
			cellValue(d.NewAPROnExpiry),
			cellValue(d.USD),
			cellValue(d.GBP),
		})
	}
	expenses := sheetData{name: SheetExpenses, header: ExpenseHeaders}
	for _, e := range in.Expenses {
		expenses.rows = append(expenses.rows, []interface{}{e.Name, cellValue(e.Amount)})
	}
	income := sheetData{name: SheetIncome, header: IncomeHeaders}
	for _, i := range in.Income {
		income.rows = append(income.rows, []interface{}{i.Name, cellValue(i.Amount)})
	}

	return writeWorkbook(path, []sheetData{debts, expenses, income})
}

// ExportXLSX writes the schedule and payment details of each run, plus a summary sheet
func ExportXLSX(path string, runs []Run) error {
	summary := sheetData{
		name:   "summary",
		header: []string{"Policy", "Total Periods", "Total Interest Paid", "Total Amount Paid", "Stop Reason"},
	}
	var sheets []sheetData
	for _, run := range runs {
		policy := string(run.Summary.Policy)
		summary.rows = append(summary.rows, []interface{}{
			policy,
			run.Summary.TotalPeriods,
			money(run.Summary.TotalInterestPaid),
			money(run.Summary.TotalAmountPaid),
			string(run.Result.StopReason),
		})

		schedule := sheetData{
			name:   policy + " schedule",
			header: []string{"Month", "Total Remaining", "Cumulative Interest", "Cumulative Principal"},
		}
		for _, e := range run.Result.Schedule {
			schedule.rows = append(schedule.rows, []interface{}{
				e.Period, money(e.TotalRemaining), money(e.CumulativeInterest), money(e.CumulativePrincipal),
			})
		}

		payments := sheetData{
			name:   policy + " payments",
			header: []string{"Month", "Company", "Payment", "Extra Payment", "Remaining Debt"},
		}
		for _, p := range run.Result.Payments {
			payments.rows = append(payments.rows, []interface{}{
				p.Period, p.DebtName, money(p.Payment), money(p.ExtraPayment), money(p.Remaining),
			})
		}
		sheets = append(sheets, schedule, payments)
	}

	return writeWorkbook(path, append([]sheetData{summary}, sheets...))
}

func writeWorkbook(path string, sheets []sheetData) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", s.name, err)
		}

		header := make([]interface{}, len(s.header))
		for j, h := range s.header {
			header[j] = h
		}
		if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
			return fmt.Errorf("writing header of %s: %w", s.name, err)
		}
		for j, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("writing row %d of %s: %w", j+2, s.name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// cellValue stores numbers and flags as typed spreadsheet values
func cellValue(c Cell) interface{} {
	s := strings.TrimSpace(string(c))
	if d, err := decimal.NewFromString(s); err == nil {
		return d.InexactFloat64()
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
