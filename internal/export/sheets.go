package export

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsExporter appends extraction rows to a fixed Google Sheet
type SheetsExporter struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsExporter creates an exporter for the given spreadsheet. When
// credentialsPath is empty the client falls back to application default
// credentials.
func NewSheetsExporter(ctx context.Context, credentialsPath, spreadsheetID string) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsPath != "" {
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}

		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}

		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}

	return &SheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Export appends each row to the sheet one call at a time and returns the
// sheet URL. Row-by-row appends keep each request small, so one oversized
// batch cannot time out or trip payload limits.
func (e *SheetsExporter) Export(ctx context.Context, rows [][]string) (string, error) {
	for _, row := range rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cell
		}

		body := &sheets.ValueRange{
			Values: [][]interface{}{values},
		}

		_, err := e.service.Spreadsheets.Values.
			Append(e.spreadsheetID, "A1", body).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to append row: %w", err)
		}
	}

	return e.SheetURL(), nil
}

// SheetURL returns the browser link to the configured spreadsheet
func (e *SheetsExporter) SheetURL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", e.spreadsheetID)
}
