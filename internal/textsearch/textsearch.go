// Package textsearch turns a free-form search phrase into the native
// text-search parameter of a database.
//
// Phrases are normalized (NFKC, Unicode case folding) and split into terms on
// anything that is not a letter or digit, so user input can never inject
// query operators. Each term becomes a prefix match, which is what
// type-ahead lookups expect.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Terms returns the normalized search terms of phrase in order.
// Returns an empty slice (not nil) for an empty or punctuation-only phrase.
func Terms(phrase string) []string {
	// A Caser is stateful, so each call gets its own.
	normalized := cases.Fold().String(norm.NFKC.String(phrase))
	terms := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if terms == nil {
		terms = []string{}
	}
	return terms
}

// SQLite renders phrase as an FTS4 MATCH expression: every term is a prefix
// query and terms are implicitly ANDed, "blue* widg*".
func SQLite(phrase string) string {
	terms := Terms(phrase)
	for i, t := range terms {
		terms[i] = t + "*"
	}
	return strings.Join(terms, " ")
}

// Postgres renders phrase for to_tsquery with prefix matching,
// "blue:* & widg:*".
func Postgres(phrase string) string {
	terms := Terms(phrase)
	for i, t := range terms {
		terms[i] = t + ":*"
	}
	return strings.Join(terms, " & ")
}
