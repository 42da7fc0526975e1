// Package opinion derives analyst opinions from news titles: direction
// classification, bank attribution, and linking opinions to tickers.
package opinion

import (
	"strings"

	"saveticker-sync/internal/types"
)

// Matcher holds the injected lookup tables. It never owns reference
// data; cfg supplies the lists and tests use small synthetic ones.
type Matcher struct {
	opinionKeywords []string
	upgradeWords    []string
	downgradeWords  []string
	banks           []types.Bank
}

// NewMatcher creates a matcher over the given keyword sets and bank list.
// Bank order is significant: the first bank whose nickname matches wins.
func NewMatcher(opinionKeywords, upgradeWords, downgradeWords []string, banks []types.Bank) *Matcher {
	return &Matcher{
		opinionKeywords: opinionKeywords,
		upgradeWords:    upgradeWords,
		downgradeWords:  downgradeWords,
		banks:           banks,
	}
}

// HasOpinionKeyword reports whether the title carries at least one
// opinion-bearing phrase. Titles failing this are never linked.
func (m *Matcher) HasOpinionKeyword(title string) bool {
	for _, kw := range m.opinionKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// Classify determines the opinion direction of a title. The upgrade set
// is checked first, so a title matching both sets is an upgrade.
func (m *Matcher) Classify(title string) types.Direction {
	for _, kw := range m.upgradeWords {
		if strings.Contains(title, kw) {
			return types.Upgrade
		}
	}
	for _, kw := range m.downgradeWords {
		if strings.Contains(title, kw) {
			return types.Downgrade
		}
	}
	return types.Neutral
}

// MatchBank returns the first bank in list order with a case-insensitive,
// whitespace-trimmed nickname substring match in the title, or a zero
// Bank when none match. Short nicknames ("TD") can match unrelated text;
// that hazard is part of the contract, not something to repair here.
func (m *Matcher) MatchBank(title string) types.Bank {
	lower := strings.ToLower(title)
	for _, bank := range m.banks {
		for _, nick := range bank.NickNames {
			nick = strings.ToLower(strings.TrimSpace(nick))
			if nick == "" {
				continue
			}
			if strings.Contains(lower, nick) {
				return bank
			}
		}
	}
	return types.Bank{}
}

// Matches reports whether the title hits the opinion keyword list or any
// bank nickname. The secondary dataset filter keeps exactly these rows.
func (m *Matcher) Matches(title string) bool {
	return m.HasOpinionKeyword(title) || m.MatchBank(title).Name != ""
}
