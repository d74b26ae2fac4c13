// Package search derives and normalizes the search terms indexed on posts.
// Matching is exact-term containment: no stemming, no prefix matching and
// no ranking.
package search

import (
	"strings"
	"unicode"
)

// fillerWords are dropped from post descriptions when deriving search terms.
var fillerWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "is": {}, "of": {},
	"and": {}, "or": {}, "a": {}, "in": {}, "it": {},
}

// Terms tokenizes a post description into its stored search terms: the text
// is split on whitespace and on '.', ',', '?', '!', '#', each token is
// lowercased, and empty tokens, duplicates and filler words are dropped.
// Order of the returned terms is not significant.
func Terms(description string) []string {
	tokens := strings.FieldsFunc(description, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(".,?!#", r)
	})

	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		term := strings.ToLower(token)
		if _, filler := fillerWords[term]; filler {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// NormalizeQuery maps a user-entered search query onto the stored term form.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
