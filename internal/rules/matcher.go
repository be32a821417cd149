package rules

import (
	"strings"

	"feedback-analysis/internal/models"
)

// Matcher holds the ordered rule set. It is immutable after construction and
// safe for concurrent use.
type Matcher struct {
	rules []models.Rule
}

func NewMatcher(rules []models.Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match returns the labels of every rule whose keyword set intersects text,
// in rule declaration order. A rule contributes its label at most once even
// when several of its keywords occur. Duplicate labels across different
// rules are preserved; consolidation is the caller's concern.
func (m *Matcher) Match(text string) []string {
	if text == "" {
		return nil
	}

	var hits []string
	for _, rule := range m.rules {
		if ruleMatches(rule, text) {
			hits = append(hits, strings.TrimSpace(rule.Label))
		}
	}
	return hits
}

// First returns the label of the earliest matching rule, stopping at the
// first hit.
func (m *Matcher) First(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, rule := range m.rules {
		if ruleMatches(rule, text) {
			return strings.TrimSpace(rule.Label), true
		}
	}
	return "", false
}

func ruleMatches(rule models.Rule, text string) bool {
	for _, kw := range rule.Keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
