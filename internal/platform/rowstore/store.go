package rowstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"musubime/internal/platform/cache"

	"golang.org/x/sync/singleflight"
)

// InfluencerColumn is the header used to filter rows by influencer.
const InfluencerColumn = "id_influencer"

// Schema declares the layout of one sheet tab.
type Schema struct {
	Sheet string
	// DataStartRow is the raw row index where data begins; row 0 is the header.
	DataStartRow int
	Columns      []string
}

// Row is one data row keyed by header name.
type Row map[string]string

// Get returns the cell value or "" when the column is absent.
func (r Row) Get(column string) string {
	if r == nil {
		return ""
	}
	return r[column]
}

type Query struct {
	Sheet        string
	Columns      []string
	InfluencerID string
	ForceRefresh bool
}

type keyPart struct {
	column string
	value  string
}

// Key identifies a row by one or more column values.
type Key struct {
	parts []keyPart
}

func KeyOf(column string, value string) Key {
	return Key{parts: []keyPart{{column: column, value: strings.TrimSpace(value)}}}
}

func (k Key) And(column string, value string) Key {
	parts := append(append([]keyPart(nil), k.parts...), keyPart{column: column, value: strings.TrimSpace(value)})
	return Key{parts: parts}
}

func (k Key) String() string {
	items := make([]string, 0, len(k.parts))
	for _, part := range k.parts {
		items = append(items, part.column+"="+part.value)
	}
	return strings.Join(items, ",")
}

type CellWrite struct {
	Column string
	Value  string
}

// JSONAppend appends Entry to the JSON array stored in Column.
type JSONAppend struct {
	Column string
	Entry  any
}

// Update is applied to a single row in one batched write.
type Update struct {
	Key     Key
	Cells   []CellWrite
	Appends []JSONAppend
}

type Options struct {
	Cache   *cache.TTL[[][]string]
	Schemas []Schema
	Logger  *slog.Logger
}

// Store adapts a spreadsheet into name-keyed rows.
type Store struct {
	client  Client
	cache   *cache.TTL[[][]string]
	group   singleflight.Group
	schemas map[string]Schema
	logger  *slog.Logger

	lockMu sync.Mutex
	locks  map[string]*rowLock
}

type rowLock struct {
	mu   sync.Mutex
	refs int
}

func New(client Client, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	schemas := make(map[string]Schema, len(opts.Schemas))
	for _, schema := range opts.Schemas {
		schemas[schema.Sheet] = schema
	}
	return &Store{
		client:  client,
		cache:   opts.Cache,
		schemas: schemas,
		logger:  logger,
		locks:   make(map[string]*rowLock),
	}
}

func (s *Store) Writable() bool {
	return s.client.Access() == AccessReadWrite
}

func (s *Store) SpreadsheetID() string {
	return s.client.SpreadsheetID()
}

// FetchColumns reads a sheet and projects the requested columns.
// Missing columns yield empty strings. An empty Columns list returns every header.
func (s *Store) FetchColumns(ctx context.Context, q Query) ([]Row, error) {
	table, err := s.readTable(ctx, q.Sheet, q.ForceRefresh)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return []Row{}, nil
	}

	headers := table[0]
	index := headerIndex(headers)
	columns := q.Columns
	if len(columns) == 0 {
		columns = nonEmpty(headers)
	}

	influencerID := strings.TrimSpace(q.InfluencerID)
	influencerIdx, hasInfluencer := index[InfluencerColumn]

	start := s.dataStartRow(q.Sheet)
	rows := make([]Row, 0, max(len(table)-start, 0))
	for i := start; i < len(table); i++ {
		raw := table[i]
		if isBlankRow(raw) {
			continue
		}
		if influencerID != "" && hasInfluencer && strings.TrimSpace(cell(raw, influencerIdx)) != influencerID {
			continue
		}
		row := make(Row, len(columns))
		for _, column := range columns {
			if idx, ok := index[column]; ok {
				row[column] = cell(raw, idx)
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Headers returns the header row of a sheet.
func (s *Store) Headers(ctx context.Context, sheet string) ([]string, error) {
	table, err := s.readTable(ctx, sheet, false)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return []string{}, nil
	}
	return append([]string(nil), table[0]...), nil
}

// ValidateSchema reports the declared columns missing from the live header row.
func (s *Store) ValidateSchema(ctx context.Context, schema Schema) ([]string, error) {
	headers, err := s.Headers(ctx, schema.Sheet)
	if err != nil {
		return nil, err
	}
	index := headerIndex(headers)
	missing := make([]string, 0)
	for _, column := range schema.Columns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing, nil
}

func (s *Store) WriteCells(ctx context.Context, sheet string, key Key, writes ...CellWrite) error {
	return s.Apply(ctx, sheet, Update{Key: key, Cells: writes})
}

func (s *Store) AppendJSONLogEntry(ctx context.Context, sheet string, key Key, column string, entry any) error {
	return s.Apply(ctx, sheet, Update{
		Key:     key,
		Appends: []JSONAppend{{Column: column, Entry: entry}},
	})
}

// Apply locates the row for u.Key and issues one batched write with every cell
// and JSON append in u. There is no rollback across cells.
func (s *Store) Apply(ctx context.Context, sheet string, u Update) error {
	if !s.Writable() {
		return ErrWriteNotPermitted
	}
	if len(u.Key.parts) == 0 {
		return fmt.Errorf("%w: empty row key", ErrColumnNotFound)
	}

	unlock := s.lockRow(sheet + "|" + u.Key.String())
	defer unlock()

	table, err := s.readTable(ctx, sheet, true)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return fmt.Errorf("%w: sheet %s has no header row", ErrColumnNotFound, sheet)
	}
	index := headerIndex(table[0])

	rowIdx, err := s.locateRow(sheet, table, index, u.Key)
	if err != nil {
		return err
	}

	pending := make(map[int]string)
	order := make([]int, 0, len(u.Cells)+len(u.Appends))
	set := func(col int, value string) {
		if _, seen := pending[col]; !seen {
			order = append(order, col)
		}
		pending[col] = value
	}

	for _, write := range u.Cells {
		col, ok := index[write.Column]
		if !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, write.Column)
		}
		set(col, write.Value)
	}
	for _, appendOp := range u.Appends {
		col, ok := index[appendOp.Column]
		if !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, appendOp.Column)
		}
		current, seen := pending[col]
		if !seen {
			current = cell(table[rowIdx], col)
		}
		next, err := appendJSON(current, appendOp.Entry)
		if err != nil {
			return err
		}
		set(col, next)
	}
	if len(order) == 0 {
		return nil
	}

	updates := make([]CellUpdate, 0, len(order))
	for _, col := range order {
		updates = append(updates, CellUpdate{
			Range: CellAddress(sheet, col, rowIdx),
			Value: pending[col],
		})
	}
	if err := s.client.BatchWrite(ctx, updates); err != nil {
		s.logger.Error("row store batch write failed",
			"event", "rowstore_batch_write_failed",
			"module", "internal/platform/rowstore",
			"layer", "platform",
			"sheet", sheet,
			"row_key", u.Key.String(),
			"error", err.Error(),
		)
		return fmt.Errorf("batch write %s: %w", sheet, err)
	}

	dropped := s.invalidate(sheet)
	s.logger.Debug("row store batch write applied",
		"event", "rowstore_batch_write_applied",
		"module", "internal/platform/rowstore",
		"layer", "platform",
		"sheet", sheet,
		"row_key", u.Key.String(),
		"cells", len(updates),
		"cache_evicted", dropped,
	)
	return nil
}

// AppendRow adds a new row at the bottom of sheet, ordering values by header.
func (s *Store) AppendRow(ctx context.Context, sheet string, values map[string]string) error {
	if !s.Writable() {
		return ErrWriteNotPermitted
	}
	headers, err := s.Headers(ctx, sheet)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return fmt.Errorf("%w: sheet %s has no header row", ErrColumnNotFound, sheet)
	}
	index := headerIndex(headers)
	for column := range values {
		if _, ok := index[column]; !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
		}
	}
	row := make([]string, len(headers))
	for i, header := range headers {
		row[i] = values[strings.TrimSpace(header)]
	}
	if err := s.client.AppendRow(ctx, sheet, row); err != nil {
		return fmt.Errorf("append row %s: %w", sheet, err)
	}
	s.invalidate(sheet)
	return nil
}

func (s *Store) locateRow(sheet string, table [][]string, index map[string]int, key Key) (int, error) {
	cols := make([]int, 0, len(key.parts))
	for _, part := range key.parts {
		col, ok := index[part.column]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrColumnNotFound, part.column)
		}
		cols = append(cols, col)
	}

	for i := s.dataStartRow(sheet); i < len(table); i++ {
		matched := true
		for j, part := range key.parts {
			if strings.TrimSpace(cell(table[i], cols[j])) != part.value {
				matched = false
				break
			}
		}
		if matched {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrRowNotFound, key.String())
}

func (s *Store) readTable(ctx context.Context, sheet string, force bool) ([][]string, error) {
	rng := SheetRange(sheet)
	key := s.cacheKey(rng)
	gen := s.cache.Generation()
	if force {
		// Forced reads feed read-modify-write updates and must not join a
		// flight that started before the caller's lock was taken.
		return s.load(ctx, sheet, rng, key, gen)
	}
	if table, ok := s.cache.Get(key); ok {
		return table, nil
	}

	value, err, _ := s.group.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		return s.load(ctx, sheet, rng, key, gen)
	})
	if err != nil {
		return nil, err
	}
	return value.([][]string), nil
}

func (s *Store) load(ctx context.Context, sheet string, rng string, key string, gen uint64) ([][]string, error) {
	table, err := s.client.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	s.cache.SetIfGeneration(key, table, gen)
	return table, nil
}

func (s *Store) cacheKey(rng string) string {
	return s.client.SpreadsheetID() + "/" + rng
}

func (s *Store) invalidate(sheet string) int {
	return s.cache.InvalidatePrefix(s.cacheKey(SheetRange(sheet)))
}

func (s *Store) dataStartRow(sheet string) int {
	if schema, ok := s.schemas[sheet]; ok && schema.DataStartRow > 0 {
		return schema.DataStartRow
	}
	return 1
}

func (s *Store) lockRow(key string) func() {
	s.lockMu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &rowLock{}
		s.locks[key] = lock
	}
	lock.refs++
	s.lockMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.lockMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, key)
		}
		s.lockMu.Unlock()
	}
}

// DecodeJSONArray parses a JSON array cell. Corrupt or non-array content is
// treated as an empty array.
func DecodeJSONArray(raw string) []json.RawMessage {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []json.RawMessage{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []json.RawMessage{}
	}
	return items
}

func appendJSON(current string, entry any) (string, error) {
	items := DecodeJSONArray(current)
	encoded, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encode log entry: %w", err)
	}
	items = append(items, json.RawMessage(encoded))
	out, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode log column: %w", err)
	}
	return string(out), nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func nonEmpty(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, header := range headers {
		if name := strings.TrimSpace(header); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
