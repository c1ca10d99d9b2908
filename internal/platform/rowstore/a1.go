package rowstore

import (
	"fmt"
	"strconv"
	"strings"
)

// SheetRange is the A1 range covering a whole sheet tab.
func SheetRange(sheet string) string {
	return quoteSheet(sheet)
}

// CellAddress converts zero-based column and row indexes into an A1 address.
func CellAddress(sheet string, column int, row int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheet), ColumnLetters(column), row+1)
}

// ColumnLetters maps 0 -> A, 25 -> Z, 26 -> AA.
func ColumnLetters(index int) string {
	if index < 0 {
		return ""
	}
	var out []byte
	for n := index + 1; n > 0; {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// ParseCellAddress is the inverse of CellAddress.
func ParseCellAddress(address string) (string, int, int, error) {
	sheetPart, cellPart, ok := cutLast(address, "!")
	if !ok {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	sheet := unquoteSheet(sheetPart)

	split := strings.IndexFunc(cellPart, func(r rune) bool { return r >= '0' && r <= '9' })
	if split <= 0 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	letters := strings.ToUpper(cellPart[:split])
	rowNumber, err := strconv.Atoi(cellPart[split:])
	if err != nil || rowNumber <= 0 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	column := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}
		column = column*26 + int(r-'A'+1)
	}
	return sheet, column - 1, rowNumber - 1, nil
}

// SheetFromRange extracts the tab name from a range such as 'campaigns' or 'campaigns'!A1:B2.
func SheetFromRange(rng string) string {
	if sheetPart, _, ok := cutLast(rng, "!"); ok {
		return unquoteSheet(sheetPart)
	}
	return unquoteSheet(rng)
}

func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func unquoteSheet(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
		value = value[1 : len(value)-1]
		return strings.ReplaceAll(value, "''", "'")
	}
	return value
}

func cutLast(value string, sep string) (string, string, bool) {
	idx := strings.LastIndex(value, sep)
	if idx < 0 {
		return value, "", false
	}
	return value[:idx], value[idx+len(sep):], true
}
