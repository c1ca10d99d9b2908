// Package services holds the pure parsing rules applied to spreadsheet cells.
// Cells are edited by hand, so none of these functions fail: malformed input
// falls back to a zero value.
package services

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"musubime/contexts/campaign-workflow/campaign-service/domain/entities"
)

const DateLayout = "2006-01-02"

var strictDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"2006/01/02 15:04:05",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006年1月2日",
}

// ParsePrice strips currency marks, separators and spaces and returns whole yen.
// Anything left besides an optional sign, digits and one decimal point makes
// the cell unreadable and yields 0.
func ParsePrice(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == '¥', r == '￥', r == '$', r == '円', r == ',', r == '，', unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if !numericAmount(cleaned) {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if value > math.MaxInt64 || value < math.MinInt64 {
		return 0
	}
	return int64(value)
}

func numericAmount(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ParseDate reads a yyyy-mm-dd cell as midnight in loc. Other layouts are
// tried as a fallback. Empty or unparseable input yields nil.
func ParseDate(raw string, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.Local
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if strictDate.MatchString(value) {
		parsed, err := time.ParseInLocation(DateLayout, value, loc)
		if err != nil {
			return nil
		}
		return &parsed
	}
	for _, layout := range fallbackDateLayouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			local := parsed.In(loc)
			return &local
		}
	}
	return nil
}

// FormatDate renders t as yyyy-mm-dd in loc; nil renders as "".
func FormatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// SplitLines splits a multi-line cell and drops blank lines.
func SplitLines(raw string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseMessageLog decodes the JSON array message cell. A corrupt cell reads as
// an empty log; elements that are not objects are skipped.
func ParseMessageLog(raw string) []entities.MessageEntry {
	out := make([]entities.MessageEntry, 0)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return out
	}
	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		out = append(out, entities.MessageEntry{
			Type:      stringField(fields["type"]),
			Content:   stringField(fields["content"]),
			Timestamp: stringField(fields["timestamp"]),
		})
	}
	return out
}

func stringField(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
