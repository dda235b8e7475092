// Package candidate holds the completion candidates collected for a single
// prefix and the cycling logic that walks them.
package candidate

import (
	"cmp"
	"slices"
)

// MatchType classifies how a candidate word matched the typed prefix.
type MatchType int

const (
	// MatchExact marks words beginning with the typed prefix.
	MatchExact MatchType = iota
	// MatchFuzzy marks words containing the prefix characters in order.
	MatchFuzzy
)

// SortOrder selects the primary ranking key for a candidate set. The
// numeric values are also the persisted encoding in the settings file.
type SortOrder int

const (
	// SortAlphabetical orders candidates lexicographically.
	SortAlphabetical SortOrder = iota
	// SortByDistance orders candidates by how close to the cursor they
	// were found.
	SortByDistance
)

// Candidate is one completion drawn from the buffer.
type Candidate struct {
	Text     string
	Distance int
	Type     MatchType
}

// Set collects the candidates found for one prefix. Texts are unique; the
// word currently being completed is excluded during scanning so it can be
// appended as the final cycle entry instead. Set is not safe for
// concurrent use.
type Set struct {
	items   []Candidate
	exclude string
}

// NewSet returns an empty set that will ignore the given word.
func NewSet(exclude string) *Set {
	return &Set{exclude: exclude}
}

// Clear empties the set and records the word to leave out of the next scan.
func (s *Set) Clear(exclude string) {
	s.items = s.items[:0]
	s.exclude = exclude
}

// Len returns the number of candidates currently held.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the candidates in their current order.
func (s *Set) Items() []Candidate {
	return slices.Clone(s.items)
}

// find returns the index of the first candidate with the given text, or -1.
// The list is bounded by the candidate limits, so a linear walk is fine.
func (s *Set) find(text string) int {
	for i := range s.items {
		if s.items[i].Text == text {
			return i
		}
	}
	return -1
}

// Upsert records a word found at the given distance from the cursor. A word
// already present keeps its earlier match type and the smaller of the two
// distances. Empty words and the excluded word are ignored. The return
// value reports whether a new entry was added; only those count against the
// per-pass candidate limit.
func (s *Set) Upsert(text string, distance int, mt MatchType) bool {
	if text == "" || text == s.exclude {
		return false
	}
	if i := s.find(text); i >= 0 {
		if distance < s.items[i].Distance {
			s.items[i].Distance = distance
		}
		return false
	}
	s.items = append(s.items, Candidate{Text: text, Distance: distance, Type: mt})
	return true
}

// Sort orders the set by the primary key, alphabetically or by buffer
// distance. With groupExact set, exact matches come before fuzzy ones and
// the primary key orders within each group. A single stable sort with a
// composite comparator keeps ties in discovery order.
func (s *Set) Sort(order SortOrder, groupExact bool) {
	slices.SortStableFunc(s.items, func(a, b Candidate) int {
		if groupExact {
			if c := cmp.Compare(a.Type, b.Type); c != 0 {
				return c
			}
		}
		if order == SortAlphabetical {
			return cmp.Compare(a.Text, b.Text)
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
}

// Finalize appends the cycle-back entry, the text that restores what the
// user originally typed once cycling wraps around. An empty set stays
// empty: no candidates means nothing to cycle through.
func (s *Set) Finalize(trailing string) {
	if len(s.items) == 0 {
		return
	}
	s.items = append(s.items, Candidate{Text: trailing, Distance: 0, Type: MatchExact})
}
