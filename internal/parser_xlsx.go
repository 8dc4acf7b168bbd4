package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads input records from an Excel workbook with the sheets
// debt-outgoings, non-debt-outgoings and income. Sheets named with a
// "sample-" prefix are accepted as well. Cells are read unformatted, so
// styled numbers keep their value and dates arrive as serials.
func ParseXLSX(path string) (Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Input{}, fmt.Errorf("no sheets found in file")
	}

	var rows [3][][]string
	for i, want := range []string{SheetDebts, SheetExpenses, SheetIncome} {
		name, ok := findSheet(sheets, want)
		if !ok {
			return Input{}, fmt.Errorf("missing sheet %q (found: %v)", want, sheets)
		}
		rows[i], err = f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return Input{}, fmt.Errorf("reading sheet %s: %w", name, err)
		}
	}

	return ParseSheetRows(rows[0], rows[1], rows[2])
}

func findSheet(sheets []string, want string) (string, bool) {
	for _, name := range sheets {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == want || n == "sample-"+want {
			return name, true
		}
	}
	return "", false
}

func init() {
	RegisterParser("xlsx", ParserFunc(ParseXLSX))
}
