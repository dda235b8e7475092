package complete

import (
	"github.com/ysandre/wordcycle/pkg/candidate"
	"github.com/ysandre/wordcycle/pkg/config"
	"github.com/ysandre/wordcycle/pkg/match"
)

// scanPass walks the search window and records words matching prefix in
// set. The exact pass searches for the prefix itself; the fuzzy pass
// anchors on its first character and keeps words that pass the
// subsequence test. Returns how many candidates the pass added, which is
// capped at cfg.CandidatesLimit. Words the other pass already found only
// get their distance refreshed and do not count against the cap.
func scanPass(buf Buffer, set *candidate.Set, cfg *config.Config, prefix string, pos int, fuzzyPass bool) int {
	start, end := 0, buf.Length()
	if cfg.DistanceLimitKB > 0 {
		radius := cfg.DistanceLimitKB * 1024
		start = max(pos-radius, 0)
		end = min(pos+radius, end)
	}

	pattern := prefix
	mt := candidate.MatchExact
	if fuzzyPass {
		pattern = match.Anchor(prefix)
		mt = candidate.MatchFuzzy
	}

	added := 0
	from := start
	for {
		at, ok := buf.FindText(pattern, from, end, true)
		if !ok {
			break
		}
		wordEnd := buf.WordEnd(at, true)
		word := buf.TextRange(at, wordEnd)

		hit := match.Prefix(prefix, word)
		if fuzzyPass {
			hit = match.Subsequence(prefix, word)
		}
		if hit && set.Upsert(word, abs(at-pos), mt) {
			added++
			if added >= cfg.CandidatesLimit {
				break
			}
		}
		// resume behind the word, matches inside it start mid-word anyway
		from = wordEnd
	}
	return added
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
