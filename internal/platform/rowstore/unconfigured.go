package rowstore

import "context"

// UnconfiguredClient stands in for a spreadsheet when no credentials exist.
// Every call fails with ErrCredentialsMissing so callers can report 503.
type UnconfiguredClient struct {
	ID string
}

func (c UnconfiguredClient) SpreadsheetID() string {
	return c.ID
}

func (UnconfiguredClient) Access() Access {
	return AccessReadOnly
}

func (UnconfiguredClient) ReadRange(context.Context, string) ([][]string, error) {
	return nil, ErrCredentialsMissing
}

func (UnconfiguredClient) BatchWrite(context.Context, []CellUpdate) error {
	return ErrCredentialsMissing
}

func (UnconfiguredClient) AppendRow(context.Context, string, []string) error {
	return ErrCredentialsMissing
}
