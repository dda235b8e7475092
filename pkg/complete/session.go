package complete

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ysandre/wordcycle/pkg/candidate"
	"github.com/ysandre/wordcycle/pkg/config"
)

// Session tracks completion state across cycle requests: the prefix the
// candidates were collected for, the last inserted completion, and the
// candidate list itself. One session serves one document at a time; call
// Reset when the host switches documents.
type Session struct {
	cfg           *config.Config
	status        StatusReporter
	set           *candidate.Set
	prevPrefix    string
	prevSelection string
}

// NewSession returns a session using cfg. The status reporter may be nil,
// in which case notices are dropped.
func NewSession(cfg *config.Config, status StatusReporter) *Session {
	return &Session{cfg: cfg, status: status}
}

// Config returns the active configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// SetConfig swaps the active configuration. Only safe between cycle
// requests, like everything else on a session.
func (s *Session) SetConfig(cfg *config.Config) {
	s.cfg = cfg
}

// Candidates returns a copy of the active candidate list.
func (s *Session) Candidates() []candidate.Candidate {
	if s.set == nil {
		return nil
	}
	return s.set.Items()
}

// Selection returns the most recently inserted completion, or "" when no
// cycle has been applied since the last rescan.
func (s *Session) Selection() string {
	return s.prevSelection
}

// Reset drops all session state. The next cycle request scans from
// scratch, as after the host switches documents.
func (s *Session) Reset() {
	s.prevPrefix = ""
	s.prevSelection = ""
	s.set = nil
}

// Cycle performs one completion step in the given direction. It reads the
// prefix before the cursor, rebuilds the candidate list when the prefix
// changed since the previous step, and replaces the in-progress word with
// the next candidate as a single undoable edit.
func (s *Session) Cycle(buf Buffer, dir candidate.Direction) Result {
	pos := buf.CursorPosition()
	start := buf.WordStart(pos, true)
	end := buf.WordEnd(pos, true)

	// cursor at a word start or not touching word characters: nothing to
	// complete, silently ignore
	if pos <= start {
		return Result{Status: StatusNoPrefix}
	}

	prefix := buf.TextRange(start, pos)
	word := buf.TextRange(start, end)

	rescanned := false
	if s.prevPrefix == "" || s.prevPrefix != prefix {
		s.prevPrefix = ""
		s.prevSelection = ""
		if s.set == nil {
			s.set = candidate.NewSet(word)
		} else {
			s.set.Clear(word)
		}
		s.scan(buf, prefix, pos)
		if s.set.Len() > 0 {
			s.set.Sort(s.cfg.SortOrder, !s.cfg.SkipFuzzyIfExact)
			trailing := prefix
			if s.cfg.RemoveTrailingWordPart {
				trailing = word
			}
			s.set.Finalize(trailing)
		}
		rescanned = true
		log.Debugf("scanned %d candidates for prefix %q", s.set.Len(), prefix)
	}

	if s.set.Len() == 0 {
		if s.status != nil {
			s.status.ReportMessage(fmt.Sprintf("No completions found for %q.", prefix))
		}
		return Result{Status: StatusNoMatch, Rescanned: rescanned}
	}

	completion := s.set.Next(s.prevSelection, dir)

	replaceEnd := pos
	if s.cfg.RemoveTrailingWordPart {
		replaceEnd = end
	}

	buf.DismissPopup()
	buf.BeginUndoGroup()
	buf.ReplaceRange(start, replaceEnd, completion)
	buf.SetCursorPosition(start + len(completion))
	buf.EndUndoGroup()

	// after the edit the text before the cursor is the completion itself,
	// so it doubles as the prefix of the next request in this chain
	s.prevPrefix = completion
	s.prevSelection = completion

	return Result{
		Status:     StatusApplied,
		Text:       completion,
		Start:      start,
		End:        replaceEnd,
		Cursor:     start + len(completion),
		Rescanned:  rescanned,
		Candidates: s.set.Len(),
	}
}

// scan runs the exact pass, then the fuzzy pass unless exact matches were
// found and the configuration says those suffice.
func (s *Session) scan(buf Buffer, prefix string, pos int) {
	exact := scanPass(buf, s.set, s.cfg, prefix, pos, false)
	if exact == 0 || !s.cfg.SkipFuzzyIfExact {
		scanPass(buf, s.set, s.cfg, prefix, pos, true)
	}
}
