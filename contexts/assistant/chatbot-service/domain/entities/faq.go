package entities

import (
	"strings"
	"unicode"
)

// FAQEntry is one curated answer. Keywords are matched as case-insensitive
// substrings so they work for Japanese text without word boundaries.
type FAQEntry struct {
	ID       string   `yaml:"id"`
	Question string   `yaml:"question"`
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

type Match struct {
	Entry   FAQEntry
	Matched int
	Score   float64
}

// Confident reports whether the match should be answered without the model.
func (m Match) Confident(threshold float64) bool {
	return m.Matched > 0 && m.Score >= threshold
}

// BestMatch scores every entry by the share of its keywords found in the
// message. Ties keep the earlier entry.
func BestMatch(message string, entries []FAQEntry) (Match, bool) {
	normalized := normalize(message)
	if normalized == "" {
		return Match{}, false
	}
	var (
		best  Match
		found bool
	)
	for _, entry := range entries {
		total, matched := 0, 0
		for _, keyword := range entry.Keywords {
			keyword = normalize(keyword)
			if keyword == "" {
				continue
			}
			total++
			if strings.Contains(normalized, keyword) {
				matched++
			}
		}
		if total == 0 || matched == 0 {
			continue
		}
		score := float64(matched) / float64(total)
		if !found || score > best.Score || (score == best.Score && matched > best.Matched) {
			best = Match{Entry: entry, Matched: matched, Score: score}
			found = true
		}
	}
	return best, found
}

func normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, value)
}
