package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// sheetsTimeout bounds all API calls made for one input load
const sheetsTimeout = 30 * time.Second

// RangeReader reads a cell range from a spreadsheet as text
type RangeReader interface {
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// SheetsClient reads ranges through the Google Sheets API
type SheetsClient struct {
	svc *gsheet.Service
}

var _ RangeReader = (*SheetsClient)(nil)

// NewSheetsClientFromEnv creates a read-only Sheets client from service account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsClientFromEnv(ctx context.Context) (*SheetsClient, error) {
	credentialsJSON, err := serviceAccountCredentials(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

func serviceAccountCredentials(ctx context.Context) ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		slog.DebugContext(ctx, "using inline service account credentials")
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		slog.DebugContext(ctx, "reading service account credentials", "path", serviceAccountFile)
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// ReadRange fetches a range and stringifies its unformatted cells
func (c *SheetsClient) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStrings(row))
	}
	return rows, nil
}

// ReadSpreadsheetInput reads the three input sheets of a spreadsheet
func ReadSpreadsheetInput(ctx context.Context, r RangeReader, spreadsheetID string) (Input, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return Input{}, errors.New("missing spreadsheet id")
	}

	var rows [3][][]string
	for i, sheet := range []string{SheetDebts, SheetExpenses, SheetIncome} {
		rng := fmt.Sprintf("'%s'!A:H", sheet)
		values, err := r.ReadRange(ctx, spreadsheetID, rng)
		if err != nil {
			return Input{}, err
		}
		slog.DebugContext(ctx, "read sheet", "sheet", sheet, "rows", len(values))
		rows[i] = values
	}
	return ParseSheetRows(rows[0], rows[1], rows[2])
}

// ParseGoogleSheets loads input from the spreadsheet with the given id
func ParseGoogleSheets(spreadsheetID string) (Input, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sheetsTimeout)
	defer cancel()

	client, err := NewSheetsClientFromEnv(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("sheets service: %w", err)
	}
	return ReadSpreadsheetInput(ctx, client, spreadsheetID)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func init() {
	RegisterParser("google-sheets", ParserFunc(ParseGoogleSheets))
}
