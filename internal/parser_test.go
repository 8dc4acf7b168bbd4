package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsKnownParser(t *testing.T) {
	// Register a test parser
	RegisterParser("test-format", ParserFunc(func(path string) (Input, error) {
		return Input{}, nil
	}))

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"known parser", "test-format", true},
		{"built-in yaml", "yaml", true},
		{"built-in xlsx", "xlsx", true},
		{"built-in google sheets", "google-sheets", true},
		{"unknown parser", "unknown-format", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKnownParser(tt.input)
			if got != tt.expected {
				t.Errorf("IsKnownParser(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFileArg(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedFormat string
		expectedPath   string
	}{
		{
			name:           "with built-in format prefix",
			input:          "xlsx:debts.xlsx",
			expectedFormat: "xlsx",
			expectedPath:   "debts.xlsx",
		},
		{
			name:           "spreadsheet id",
			input:          "google-sheets:1AbCdEf",
			expectedFormat: "google-sheets",
			expectedPath:   "1AbCdEf",
		},
		{
			name:           "no prefix",
			input:          "debts.yaml",
			expectedFormat: "",
			expectedPath:   "debts.yaml",
		},
		{
			name:           "unknown prefix treated as path",
			input:          "unknown:debts.yaml",
			expectedFormat: "",
			expectedPath:   "unknown:debts.yaml",
		},
		{
			name:           "windows path with drive letter",
			input:          "C:\\Users\\test\\debts.xlsx",
			expectedFormat: "",
			expectedPath:   "C:\\Users\\test\\debts.xlsx",
		},
		{
			name:           "empty path after prefix",
			input:          "yaml:",
			expectedFormat: "yaml",
			expectedPath:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, path := ParseFileArg(tt.input)
			if format != tt.expectedFormat {
				t.Errorf("ParseFileArg(%q) format = %q, want %q", tt.input, format, tt.expectedFormat)
			}
			if path != tt.expectedPath {
				t.Errorf("ParseFileArg(%q) path = %q, want %q", tt.input, path, tt.expectedPath)
			}
		})
	}
}

func TestSourceForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"debts.yaml", "yaml", false},
		{"debts.YML", "yaml", false},
		{"debts.json", "simple-json", false},
		{"/tmp/Debts.XLSX", "xlsx", false},
		{"debts.csv", "", true},
		{"debts", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := SourceForPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SourceForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

const yamlInput = `debts:
  - name: Card
    minimum_payment: 50
    total_owed: 5000
    current_apr: 18.99
    expires: NA
    new_apr_on_expiry: 18.99
    usd: true
  - name: Promo
    minimum_payment: "75"
    total_owed: 7500
    current_apr: 0
    expires: 12/31/2024
    new_apr_on_expiry: 21.99
    gbp: yes
expenses:
  - name: Rent
    amount: 1200
income:
  - name: Job
    amount: 3500
`

const jsonInput = `{
  "debts": [
    {"name": "Card", "minimum_payment": 50, "total_owed": "5000", "current_apr": 18.99,
     "expires": "NA", "new_apr_on_expiry": 18.99, "usd": true, "gbp": null}
  ],
  "expenses": [{"name": "Rent", "amount": 1200.5}],
  "income": [{"name": "Job", "amount": 3500}]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	in, err := ParseYAML(writeTemp(t, "debts.yaml", yamlInput))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	if len(in.Debts) != 2 || len(in.Expenses) != 1 || len(in.Income) != 1 {
		t.Fatalf("got %d debts, %d expenses, %d income", len(in.Debts), len(in.Expenses), len(in.Income))
	}

	ledger := NewLedger(in, nil)
	card, promo := ledger.Debts[0], ledger.Debts[1]
	assertDecimal(t, "card minimum", card.MinimumPayment, "50")
	assertDecimal(t, "card APR", card.CurrentAPR, "18.99")
	if !card.Expires.IsZero() || !card.Currencies.USD || card.Currencies.GBP {
		t.Errorf("unexpected card: %+v", card)
	}
	assertDecimal(t, "promo minimum", promo.MinimumPayment, "75")
	if got := promo.Expires.Format("2006-01-02"); got != "2024-12-31" {
		t.Errorf("promo expires = %s", got)
	}
	if !promo.Currencies.GBP {
		t.Error("expected promo to be flagged GBP")
	}
	assertDecimal(t, "rent", ledger.Expenses[0].Amount, "1200")
	assertDecimal(t, "income", ledger.Income[0].Amount, "3500")
}

func TestParseSimpleJSON(t *testing.T) {
	in, err := ParseSimpleJSON(writeTemp(t, "debts.json", jsonInput))
	if err != nil {
		t.Fatalf("ParseSimpleJSON failed: %v", err)
	}

	ledger := NewLedger(in, nil)
	if len(ledger.Debts) != 1 {
		t.Fatalf("got %d debts", len(ledger.Debts))
	}
	assertDecimal(t, "owed", ledger.Debts[0].TotalOwed, "5000")
	assertDecimal(t, "rent", ledger.Expenses[0].Amount, "1200.5")
	if !ledger.Debts[0].Currencies.USD || ledger.Debts[0].Currencies.GBP {
		t.Errorf("unexpected currency flags: %+v", ledger.Debts[0].Currencies)
	}
}

func TestParseSimpleJSON_Invalid(t *testing.T) {
	_, err := ParseSimpleJSON(writeTemp(t, "bad.json", `{"debts": [`))
	if err == nil || !strings.Contains(err.Error(), "parsing JSON") {
		t.Errorf("expected JSON parse error, got %v", err)
	}
}

func TestLoadInput(t *testing.T) {
	yamlPath := writeTemp(t, "debts.yaml", yamlInput)
	// yaml content behind a .txt extension only loads with an explicit source
	txtPath := writeTemp(t, "debts.txt", yamlInput)

	tests := []struct {
		name      string
		source    string
		arg       string
		wantDebts int
		wantErr   string
	}{
		{"by extension", "", yamlPath, 2, ""},
		{"by prefix", "", "yaml:" + txtPath, 2, ""},
		{"explicit source", "yaml", txtPath, 2, ""},
		{"explicit source wins over prefix", "yaml", "simple-json:" + txtPath, 2, ""},
		{"unknown extension", "", txtPath, 0, "cannot infer source type"},
		{"unknown source", "csv", yamlPath, 0, "unknown source type"},
		{"missing file", "", filepath.Join(t.TempDir(), "none.yaml"), 0, "parsing yaml input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := LoadInput(tt.source, tt.arg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(in.Debts) != tt.wantDebts {
				t.Errorf("got %d debts, want %d", len(in.Debts), tt.wantDebts)
			}
		})
	}
}
