package complete

import (
	"testing"

	"github.com/ysandre/wordcycle/pkg/candidate"
	"github.com/ysandre/wordcycle/pkg/config"
	"github.com/ysandre/wordcycle/pkg/document"
)

type statusRecorder struct {
	messages []string
}

func (r *statusRecorder) ReportMessage(msg string) {
	r.messages = append(r.messages, msg)
}

// The shared fixture has two exact matches for "fo" (foobar, food), one
// fuzzy match (faro), and the in-progress word itself at the end.
const fixture = "foobar faro food fo"

func newTestSession(cfg *config.Config) (*Session, *document.Document, *statusRecorder) {
	status := &statusRecorder{}
	doc := document.New(fixture, document.WithCursor(len(fixture)))
	return NewSession(cfg, status), doc, status
}

func TestCycleForward(t *testing.T) {
	// by-distance order puts food (7) before foobar (19), fuzzy faro
	// goes after the exact group, the typed prefix closes the circle
	sess, doc, _ := newTestSession(config.DefaultConfig())

	want := []string{"food", "foobar", "faro", "fo", "food"}
	for i, text := range want {
		res := sess.Cycle(doc, candidate.Forward)
		if res.Status != StatusApplied {
			t.Fatalf("step %d: status %d, want applied", i, res.Status)
		}
		if res.Text != text {
			t.Errorf("step %d: completed %q, want %q", i, res.Text, text)
		}
		wantRescan := i == 0
		if res.Rescanned != wantRescan {
			t.Errorf("step %d: rescanned = %v, want %v", i, res.Rescanned, wantRescan)
		}
		if res.Candidates != 4 {
			t.Errorf("step %d: %d candidates, want 4", i, res.Candidates)
		}
		if got := doc.CursorPosition(); got != res.Cursor {
			t.Errorf("step %d: cursor %d, result says %d", i, got, res.Cursor)
		}
	}

	if got := doc.String(); got != "foobar faro food food" {
		t.Errorf("after full circle and one step: %q", got)
	}
}

func TestCycleBackward(t *testing.T) {
	sess, doc, _ := newTestSession(config.DefaultConfig())

	want := []string{"food", "fo", "faro", "foobar", "food"}
	for i, text := range want {
		res := sess.Cycle(doc, candidate.Backward)
		if res.Status != StatusApplied {
			t.Fatalf("step %d: status %d, want applied", i, res.Status)
		}
		if res.Text != text {
			t.Errorf("step %d: completed %q, want %q", i, res.Text, text)
		}
	}
}

func TestCycleFirstStepEdit(t *testing.T) {
	sess, doc, _ := newTestSession(config.DefaultConfig())

	res := sess.Cycle(doc, candidate.Forward)
	if res.Start != 17 || res.End != 19 {
		t.Errorf("replaced range [%d, %d), want [17, 19)", res.Start, res.End)
	}
	if res.Cursor != 21 {
		t.Errorf("cursor %d, want 21", res.Cursor)
	}
	if got := doc.String(); got != "foobar faro food food" {
		t.Errorf("buffer after first step: %q", got)
	}
}

func TestCycleNoPrefix(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, pos := range []int{0, 4} {
		sess := NewSession(cfg, nil)
		doc := document.New("foo bar", document.WithCursor(pos))

		res := sess.Cycle(doc, candidate.Forward)
		if res.Status != StatusNoPrefix {
			t.Errorf("cursor %d: status %d, want no-prefix", pos, res.Status)
		}
		if got := doc.String(); got != "foo bar" {
			t.Errorf("cursor %d: buffer changed to %q", pos, got)
		}
	}
}

func TestCycleNoMatch(t *testing.T) {
	cfg := config.DefaultConfig()
	status := &statusRecorder{}
	sess := NewSession(cfg, status)
	doc := document.New("zzz qqq ab", document.WithCursor(10))

	res := sess.Cycle(doc, candidate.Forward)
	if res.Status != StatusNoMatch {
		t.Fatalf("status %d, want no-match", res.Status)
	}
	if !res.Rescanned {
		t.Error("a failed scan still counts as a rescan")
	}
	if got := doc.String(); got != "zzz qqq ab" {
		t.Errorf("buffer changed to %q", got)
	}
	if len(status.messages) != 1 || status.messages[0] != `No completions found for "ab".` {
		t.Errorf("status messages: %q", status.messages)
	}
}

func TestCyclePrefixChangeRescans(t *testing.T) {
	sess, doc, _ := newTestSession(config.DefaultConfig())
	sess.Cycle(doc, candidate.Forward)

	// the user discards the inserted word and types a new prefix
	doc.ReplaceRange(17, 21, "fa")
	doc.SetCursorPosition(19)

	res := sess.Cycle(doc, candidate.Forward)
	if !res.Rescanned {
		t.Fatal("prefix change must trigger a rescan")
	}
	if res.Text != "faro" {
		t.Errorf("completed %q, want faro", res.Text)
	}
	if res.Candidates != 3 {
		t.Errorf("%d candidates, want 3 (faro, foobar, fa)", res.Candidates)
	}
}

func TestCycleKeepsWordTail(t *testing.T) {
	// cursor in the middle of "food": only the typed half is replaced
	// and the tail stays put
	cfg := config.DefaultConfig()
	sess := NewSession(cfg, nil)
	doc := document.New("foobar food food", document.WithCursor(14))

	res := sess.Cycle(doc, candidate.Forward)
	if res.Text != "foobar" {
		t.Fatalf("completed %q, want foobar", res.Text)
	}
	if res.End != 14 {
		t.Errorf("replace end %d, want the cursor position 14", res.End)
	}
	if got := doc.String(); got != "foobar food foobarod" {
		t.Errorf("buffer: %q", got)
	}
}

func TestCycleRemoveTrailingWordPart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RemoveTrailingWordPart = true
	sess := NewSession(cfg, nil)
	doc := document.New("foobar food food", document.WithCursor(14))

	// the whole word under the cursor is excluded and later restored by
	// the trailing candidate
	want := []string{"foobar", "food", "foobar"}
	texts := []string{"foobar food foobar", "foobar food food", "foobar food foobar"}
	for i := range want {
		res := sess.Cycle(doc, candidate.Forward)
		if res.Text != want[i] {
			t.Errorf("step %d: completed %q, want %q", i, res.Text, want[i])
		}
		if got := doc.String(); got != texts[i] {
			t.Errorf("step %d: buffer %q, want %q", i, got, texts[i])
		}
	}
}

func TestCycleSkipFuzzyIfExact(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SkipFuzzyIfExact = true
	sess, doc, _ := newTestSession(cfg)

	res := sess.Cycle(doc, candidate.Forward)
	if res.Candidates != 3 {
		t.Fatalf("%d candidates, want 3: fuzzy matches should be skipped", res.Candidates)
	}
	want := []string{"food", "foobar", "fo"}
	got := []string{res.Text}
	for i := 1; i < len(want); i++ {
		got = append(got, sess.Cycle(doc, candidate.Forward).Text)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: completed %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCycleFuzzyRunsWhenNoExactMatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SkipFuzzyIfExact = true
	sess := NewSession(cfg, nil)
	doc := document.New("faro fo", document.WithCursor(7))

	res := sess.Cycle(doc, candidate.Forward)
	if res.Status != StatusApplied {
		t.Fatalf("status %d, want applied", res.Status)
	}
	if res.Text != "faro" {
		t.Errorf("completed %q, want the fuzzy match faro", res.Text)
	}
}

func TestCycleSortAlphabetical(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SortOrder = candidate.SortAlphabetical
	sess := NewSession(cfg, nil)
	doc := document.New("bravo brick beta b", document.WithCursor(18))

	want := []string{"beta", "bravo", "brick", "b"}
	for i, text := range want {
		res := sess.Cycle(doc, candidate.Forward)
		if res.Text != text {
			t.Errorf("step %d: completed %q, want %q", i, res.Text, text)
		}
	}
}

func TestCycleExactGroupBeforeFuzzy(t *testing.T) {
	// alphabetically faro sorts before foobar, but as a fuzzy match it
	// stays behind the exact group
	cfg := config.DefaultConfig()
	cfg.SortOrder = candidate.SortAlphabetical
	sess, doc, _ := newTestSession(cfg)

	want := []string{"foobar", "food", "faro", "fo"}
	for i, text := range want {
		res := sess.Cycle(doc, candidate.Forward)
		if res.Text != text {
			t.Errorf("step %d: completed %q, want %q", i, res.Text, text)
		}
	}
}

func TestCycleUndoRestoresInOneStep(t *testing.T) {
	sess, doc, _ := newTestSession(config.DefaultConfig())
	sess.Cycle(doc, candidate.Forward)

	if !doc.Undo() {
		t.Fatal("undo should revert the completion edit")
	}
	if got := doc.String(); got != fixture {
		t.Errorf("buffer after undo: %q, want %q", got, fixture)
	}
	if got := doc.CursorPosition(); got != len(fixture) {
		t.Errorf("cursor after undo: %d, want %d", got, len(fixture))
	}
	if doc.Undo() {
		t.Error("a single cycle step should produce a single undo group")
	}
}

func TestSessionReset(t *testing.T) {
	sess, doc, status := newTestSession(config.DefaultConfig())
	sess.Cycle(doc, candidate.Forward)

	if sess.Selection() != "food" {
		t.Fatalf("selection %q, want food", sess.Selection())
	}

	sess.Reset()
	if sess.Selection() != "" {
		t.Errorf("selection after reset: %q", sess.Selection())
	}
	if sess.Candidates() != nil {
		t.Errorf("candidates after reset: %+v", sess.Candidates())
	}

	// same prefix again, but the reset forces a rescan; "food" has no
	// candidates of its own in this buffer
	res := sess.Cycle(doc, candidate.Forward)
	if !res.Rescanned {
		t.Error("cycle after reset must rescan")
	}
	if res.Status != StatusNoMatch {
		t.Errorf("status %d, want no-match", res.Status)
	}
	if len(status.messages) == 0 {
		t.Error("no-match should report a status message")
	}
}
