package rowstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Credentials selects how the Sheets client authenticates. A service account
// grants read-write access; an API key alone is read-only.
type Credentials struct {
	ServiceAccountJSON []byte
	ServiceAccountFile string
	APIKey             string
}

func (c Credentials) Configured() bool {
	return len(c.ServiceAccountJSON) > 0 || strings.TrimSpace(c.ServiceAccountFile) != "" || strings.TrimSpace(c.APIKey) != ""
}

// SheetsClient talks to the Google Sheets v4 values API.
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
	access        Access
}

func NewSheetsClient(ctx context.Context, spreadsheetID string, creds Credentials) (*SheetsClient, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is empty", ErrCredentialsMissing)
	}

	var (
		opts   []option.ClientOption
		access Access
	)
	switch {
	case len(creds.ServiceAccountJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(creds.ServiceAccountJSON), option.WithScopes(sheets.SpreadsheetsScope))
		access = AccessReadWrite
	case strings.TrimSpace(creds.ServiceAccountFile) != "":
		if _, err := os.Stat(creds.ServiceAccountFile); err != nil {
			return nil, fmt.Errorf("service account file: %w", err)
		}
		opts = append(opts, option.WithCredentialsFile(creds.ServiceAccountFile), option.WithScopes(sheets.SpreadsheetsScope))
		access = AccessReadWrite
	case strings.TrimSpace(creds.APIKey) != "":
		opts = append(opts, option.WithAPIKey(strings.TrimSpace(creds.APIKey)))
		access = AccessReadOnly
	default:
		return nil, ErrCredentialsMissing
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{
		service:       service,
		spreadsheetID: strings.TrimSpace(spreadsheetID),
		access:        access,
	}, nil
}

func (c *SheetsClient) SpreadsheetID() string {
	return c.spreadsheetID
}

func (c *SheetsClient) Access() Access {
	return c.access
}

func (c *SheetsClient) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	table := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, value := range raw {
			if value == nil {
				continue
			}
			row[i] = fmt.Sprint(value)
		}
		table = append(table, row)
	}
	return table, nil
}

func (c *SheetsClient) BatchWrite(ctx context.Context, updates []CellUpdate) error {
	if c.access != AccessReadWrite {
		return ErrWriteNotPermitted
	}
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, update := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  update.Range,
			Values: [][]interface{}{{update.Value}},
		})
	}
	_, err := c.service.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	return err
}

func (c *SheetsClient) AppendRow(ctx context.Context, sheet string, values []string) error {
	if c.access != AccessReadWrite {
		return ErrWriteNotPermitted
	}
	row := make([]interface{}, len(values))
	for i, value := range values {
		row[i] = value
	}
	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, SheetRange(sheet), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}
