package rowstore

import "context"

// Access describes what the configured credential may do.
type Access int

const (
	AccessReadOnly Access = iota
	AccessReadWrite
)

func (a Access) String() string {
	if a == AccessReadWrite {
		return "read_write"
	}
	return "read_only"
}

// CellUpdate is one value destined for one A1 cell.
type CellUpdate struct {
	Range string
	Value string
}

// Client is the raw spreadsheet API surface the Store needs.
type Client interface {
	SpreadsheetID() string
	Access() Access
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	BatchWrite(ctx context.Context, updates []CellUpdate) error
	AppendRow(ctx context.Context, sheet string, values []string) error
}
