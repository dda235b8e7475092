/*
Package complete implements cycling word completion against a host buffer.

A Session reads the in-progress word before the cursor, scans the
surrounding text for words matching it, and replaces the prefix with one
candidate after another on repeated invocations. Candidates are gathered in
two passes: an exact pass for words beginning with the typed prefix, and a
fuzzy pass for words containing the prefix characters in order. Results are
deduplicated, ranked by the configured order, and closed off with the
originally typed text so that cycling wraps back to where the user started.

The host editor stays behind two small interfaces: Buffer for cursor, word
boundary, search, and edit operations, and StatusReporter for user-facing
notices. Every call runs synchronously inside the host's key dispatch; the
session holds no locks and must be driven from a single goroutine.
*/
package complete

// Buffer is the host text surface a session completes against. Positions
// are byte offsets. Word classification (letters, digits, underscore, plus
// any host extras) lives behind the boundary queries, so the session never
// inspects characters itself.
type Buffer interface {
	CursorPosition() int
	SetCursorPosition(pos int)
	WordStart(pos int, onlyWordChars bool) int
	WordEnd(pos int, onlyWordChars bool) int
	TextRange(start, end int) string
	Length() int
	FindText(pattern string, start, end int, wordStart bool) (int, bool)
	BeginUndoGroup()
	EndUndoGroup()
	ReplaceRange(start, end int, text string)
	DismissPopup()
}

// StatusReporter receives user-facing notices that leave the buffer
// untouched, like the no-completions message.
type StatusReporter interface {
	ReportMessage(msg string)
}

// Status tells what a cycle request did.
type Status int

const (
	// StatusApplied means a completion was inserted into the buffer.
	StatusApplied Status = iota
	// StatusNoPrefix means there was no word prefix before the cursor;
	// the request was silently ignored.
	StatusNoPrefix
	// StatusNoMatch means scanning found nothing; the buffer is untouched
	// and the status reporter carried the message.
	StatusNoMatch
)

// Result describes the outcome of one cycle request.
type Result struct {
	Status Status
	// Text is the inserted completion.
	Text string
	// Start and End bound the replaced span, in pre-edit offsets.
	Start int
	End   int
	// Cursor is the cursor position after the edit.
	Cursor int
	// Rescanned is set when the prefix changed and candidates were rebuilt.
	Rescanned bool
	// Candidates is the size of the active candidate list.
	Candidates int
}
