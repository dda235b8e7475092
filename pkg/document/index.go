package document

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// WordEntry pairs an indexed word with its occurrence count.
type WordEntry struct {
	Word  string
	Count int
}

// WordIndex is a prefix-searchable snapshot of a document's vocabulary.
// It serves introspection only; candidate discovery always scans the live
// buffer.
type WordIndex struct {
	trie  *patricia.Trie
	words int
}

// Index walks the document and counts every word occurrence into a trie.
// Later edits to the document do not update the index.
func (d *Document) Index() *WordIndex {
	ix := &WordIndex{trie: patricia.NewTrie()}
	for pos := 0; pos < len(d.text); {
		r, size := utf8.DecodeRuneInString(d.text[pos:])
		if !d.isWordChar(r) {
			pos += size
			continue
		}
		end := d.WordEnd(pos, true)
		p := patricia.Prefix(d.text[pos:end])
		if item := ix.trie.Get(p); item != nil {
			ix.trie.Set(p, item.(int)+1)
		} else {
			ix.trie.Insert(p, 1)
			ix.words++
		}
		pos = end
	}
	return ix
}

// Words returns the number of distinct words in the index.
func (ix *WordIndex) Words() int {
	return ix.words
}

// WithPrefix returns the indexed words starting with prefix in
// lexicographic order, capped at limit when limit is positive. An empty
// prefix lists the whole vocabulary.
func (ix *WordIndex) WithPrefix(prefix string, limit int) []WordEntry {
	var out []WordEntry
	// the visitor never fails, so neither does the walk
	_ = ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		out = append(out, WordEntry{Word: string(p), Count: item.(int)})
		return nil
	})
	slices.SortFunc(out, func(a, b WordEntry) int {
		return cmp.Compare(a.Word, b.Word)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
