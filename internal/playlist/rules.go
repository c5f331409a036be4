package playlist

import "strings"

// DefaultFallbackQuery is searched when no rule matches.
const DefaultFallbackQuery = "chill"

// Rule maps a trigger keyword to a catalog search query.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Query   string `yaml:"query"`
}

// DefaultRules returns the built-in rule table. Order matters: the first
// rule whose keyword appears in the entry wins.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "happy", Query: "happy upbeat"},
		{Keyword: "excited", Query: "happy upbeat"},
		{Keyword: "amazing", Query: "happy upbeat"},
		{Keyword: "sad", Query: "calm relaxing"},
		{Keyword: "tired", Query: "chill relaxing"},
		{Keyword: "focus", Query: "lofi instrumental"},
		{Keyword: "project", Query: "motivational upbeat"},
		{Keyword: "work", Query: "focus lo-fi"},
	}
}

// normalizeRules lower-cases keywords and drops rules missing either half.
func normalizeRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		q := strings.TrimSpace(r.Query)
		if kw == "" || q == "" {
			continue
		}
		out = append(out, Rule{Keyword: kw, Query: q})
	}
	return out
}

// selectQuery returns the query of the first rule contained in text,
// or fallback when none match.
func selectQuery(rules []Rule, fallback, text string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Query
		}
	}
	return fallback
}
