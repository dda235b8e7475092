// Package match holds the word matching predicates used during candidate
// discovery: exact prefix matching and case-folded subsequence matching.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Prefix reports whether word begins with prefix. Comparison is
// case-sensitive, so "Foo" does not complete "fo".
func Prefix(prefix, word string) bool {
	return strings.HasPrefix(word, prefix)
}

// Subsequence reports whether every character of pattern appears in word in
// the same relative order after case-folding both sides. "abc" matches
// "axbyyc" but "acb" does not, since the order is violated.
func Subsequence(pattern, word string) bool {
	return fuzzy.MatchFold(pattern, word)
}

// Anchor returns the first character of prefix as its own string. The fuzzy
// scan searches the buffer for this anchor at word boundaries and runs the
// full Subsequence test on each word it finds.
func Anchor(prefix string) string {
	_, size := utf8.DecodeRuneInString(prefix)
	return prefix[:size]
}
