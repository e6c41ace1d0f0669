package search

import "strings"

// tokenize lowercases a query and splits it into unique terms, preserving
// first-seen order. Deduplication keeps scores term-distinct: a repeated
// query word never counts twice.
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, field)
	}
	return terms
}

// lexicalScore counts the query terms present as substrings of the
// lowercased summary. Each term counts at most once regardless of how
// often it recurs in the text.
func lexicalScore(terms []string, summary string) int {
	lowered := strings.ToLower(summary)
	score := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			score++
		}
	}
	return score
}
