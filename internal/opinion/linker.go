package opinion

import (
	"strings"

	"saveticker-sync/internal/types"
)

// Link scans items and attaches derived opinions to tickers, returning
// the number of opinions created.
//
// Each item is first gated on the opinion keyword pre-filter. Surviving
// titles are scanned against the tickers in the supplied order; the first
// ticker whose symbol appears as a whole word wins and scanning stops for
// that item. A title naming two symbols therefore produces exactly one
// opinion, on the earlier ticker. That single-attribution policy is
// deliberate; downstream consumers rely on one opinion per news item.
func (m *Matcher) Link(items []types.NewsItem, tickers []*types.Ticker) int {
	count := 0
	for _, item := range items {
		if !m.HasOpinionKeyword(item.Title) {
			continue
		}
		for _, t := range tickers {
			if !containsWord(item.Title, t.Symbol) {
				continue
			}
			t.Opinions = append(t.Opinions, types.Opinion{
				Symbol:      t.Symbol,
				Opinion:     m.Classify(item.Title),
				OpinionDate: item.CreatedAt,
				Bank:        m.MatchBank(item.Title).Name,
				NewsID:      item.ID,
			})
			count++
			break
		}
	}
	return count
}

// containsWord reports whether word occurs in s delimited by non-word
// characters. Case-sensitive: ticker symbols match only in uppercase.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; start <= len(s)-len(word); {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isWordChar(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(s) || !isWordChar(s[afterIdx])
		if before && after {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
