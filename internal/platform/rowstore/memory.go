package rowstore

import (
	"context"
	"sync"
)

// MemoryClient is an in-process spreadsheet used for sample data and tests.
type MemoryClient struct {
	mu     sync.RWMutex
	id     string
	access Access
	sheets map[string][][]string

	readCalls  int
	writeCalls int

	// FailWrites makes BatchWrite and AppendRow return the given error.
	FailWrites error
}

func NewMemoryClient(spreadsheetID string, access Access, tables map[string][][]string) *MemoryClient {
	sheets := make(map[string][][]string, len(tables))
	for name, table := range tables {
		sheets[name] = cloneTable(table)
	}
	return &MemoryClient{
		id:     spreadsheetID,
		access: access,
		sheets: sheets,
	}
}

func (c *MemoryClient) SpreadsheetID() string {
	return c.id
}

func (c *MemoryClient) Access() Access {
	return c.access
}

func (c *MemoryClient) ReadRange(_ context.Context, rng string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readCalls++
	return cloneTable(c.sheets[SheetFromRange(rng)]), nil
}

func (c *MemoryClient) BatchWrite(_ context.Context, updates []CellUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeCalls++
	if c.access != AccessReadWrite {
		return ErrWriteNotPermitted
	}
	if c.FailWrites != nil {
		return c.FailWrites
	}

	for _, update := range updates {
		sheet, col, row, err := ParseCellAddress(update.Range)
		if err != nil {
			return err
		}
		table := c.sheets[sheet]
		for len(table) <= row {
			table = append(table, []string{})
		}
		for len(table[row]) <= col {
			table[row] = append(table[row], "")
		}
		table[row][col] = update.Value
		c.sheets[sheet] = table
	}
	return nil
}

func (c *MemoryClient) AppendRow(_ context.Context, sheet string, values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeCalls++
	if c.access != AccessReadWrite {
		return ErrWriteNotPermitted
	}
	if c.FailWrites != nil {
		return c.FailWrites
	}
	c.sheets[sheet] = append(c.sheets[sheet], append([]string(nil), values...))
	return nil
}

func (c *MemoryClient) ReadCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readCalls
}

func (c *MemoryClient) WriteCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.writeCalls
}

// Cell returns the raw value at a zero-based position, for assertions.
func (c *MemoryClient) Cell(sheet string, row int, col int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table := c.sheets[sheet]
	if row < 0 || row >= len(table) {
		return ""
	}
	return cell(table[row], col)
}

// Table returns a copy of a sheet.
func (c *MemoryClient) Table(sheet string) [][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTable(c.sheets[sheet])
}

func cloneTable(table [][]string) [][]string {
	if table == nil {
		return nil
	}
	out := make([][]string, len(table))
	for i, row := range table {
		out[i] = append([]string(nil), row...)
	}
	return out
}
