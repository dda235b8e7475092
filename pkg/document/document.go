// Package document provides an in-memory text buffer with the cursor,
// word-boundary, search, and undo operations a completion session needs
// from its host editor. Positions are byte offsets throughout.
package document

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Option configures a Document at construction time.
type Option func(*Document)

// WithCursor places the cursor at pos, clamped to the text bounds.
func WithCursor(pos int) Option {
	return func(d *Document) { d.SetCursorPosition(pos) }
}

// WithWordChars adds extra characters to the word character set, which
// otherwise holds letters, digits, and underscore.
func WithWordChars(extra string) Option {
	return func(d *Document) { d.extra = extra }
}

// Document is a mutable text buffer. It is not safe for concurrent use.
type Document struct {
	text   string
	cursor int
	extra  string
	popup  bool
	undo   []undoGroup
	depth  int
	open   undoGroup
}

// edit remembers enough of one replacement to reverse it.
type edit struct {
	start   int
	oldText string
	newLen  int
}

// undoGroup is one user-facing undo step: the edits applied between a
// BeginUndoGroup/EndUndoGroup pair and the cursor position before them.
type undoGroup struct {
	edits  []edit
	cursor int
}

// New returns a document holding text, cursor at the start unless
// WithCursor says otherwise.
func New(text string, opts ...Option) *Document {
	d := &Document{text: text}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// String returns the full buffer text.
func (d *Document) String() string {
	return d.text
}

// Length returns the buffer length in bytes.
func (d *Document) Length() int {
	return len(d.text)
}

// CursorPosition returns the current cursor offset.
func (d *Document) CursorPosition() int {
	return d.cursor
}

// SetCursorPosition moves the cursor, clamped to the text bounds.
func (d *Document) SetCursorPosition(pos int) {
	d.cursor = d.clamp(pos)
}

func (d *Document) clamp(pos int) int {
	return min(max(pos, 0), len(d.text))
}

// isWordChar reports whether r belongs to a word: letters, digits,
// underscore, plus any extra characters the host configured.
func (d *Document) isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' ||
		strings.ContainsRune(d.extra, r)
}

// IsWordChar exposes the document's word character classification.
func (d *Document) IsWordChar(r rune) bool {
	return d.isWordChar(r)
}

type charClass int

const (
	classWord charClass = iota
	classSpace
	classOther
)

func (d *Document) classOf(r rune) charClass {
	switch {
	case d.isWordChar(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classOther
	}
}

// WordStart walks backward from pos to the start of the surrounding word.
// With onlyWordChars set it stops as soon as the preceding character is not
// a word character; otherwise it crosses the contiguous run of characters
// in the same class (word, space, or other) as the one before pos.
func (d *Document) WordStart(pos int, onlyWordChars bool) int {
	pos = d.clamp(pos)
	if pos == 0 {
		return 0
	}
	if onlyWordChars {
		for pos > 0 {
			r, size := utf8.DecodeLastRuneInString(d.text[:pos])
			if !d.isWordChar(r) {
				break
			}
			pos -= size
		}
		return pos
	}
	prev, size := utf8.DecodeLastRuneInString(d.text[:pos])
	cls := d.classOf(prev)
	pos -= size
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(d.text[:pos])
		if d.classOf(r) != cls {
			break
		}
		pos -= size
	}
	return pos
}

// WordEnd walks forward from pos to the end of the surrounding word,
// mirroring WordStart.
func (d *Document) WordEnd(pos int, onlyWordChars bool) int {
	pos = d.clamp(pos)
	if pos == len(d.text) {
		return pos
	}
	if onlyWordChars {
		for pos < len(d.text) {
			r, size := utf8.DecodeRuneInString(d.text[pos:])
			if !d.isWordChar(r) {
				break
			}
			pos += size
		}
		return pos
	}
	first, size := utf8.DecodeRuneInString(d.text[pos:])
	cls := d.classOf(first)
	pos += size
	for pos < len(d.text) {
		r, size := utf8.DecodeRuneInString(d.text[pos:])
		if d.classOf(r) != cls {
			break
		}
		pos += size
	}
	return pos
}

// TextRange returns the text between start and end, both clamped to the
// buffer bounds. An inverted range yields the empty string.
func (d *Document) TextRange(start, end int) string {
	start = d.clamp(start)
	end = d.clamp(end)
	if start >= end {
		return ""
	}
	return d.text[start:end]
}

// FindText searches [start, end) for the first literal, case-sensitive
// occurrence of pattern. With wordStart set, a hit counts only when the
// character before it is not a word character. The boolean reports whether
// a match was found.
func (d *Document) FindText(pattern string, start, end int, wordStart bool) (int, bool) {
	if pattern == "" {
		return 0, false
	}
	start = d.clamp(start)
	end = d.clamp(end)
	from := start
	for from < end {
		i := strings.Index(d.text[from:end], pattern)
		if i < 0 {
			break
		}
		at := from + i
		if !wordStart || d.atWordStart(at) {
			return at, true
		}
		_, size := utf8.DecodeRuneInString(d.text[at:])
		from = at + size
	}
	return 0, false
}

func (d *Document) atWordStart(pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(d.text[:pos])
	return !d.isWordChar(r)
}

// ReplaceRange substitutes text for the span [start, end). The edit is
// recorded for undo, joining the open undo group if one exists. Callers
// position the cursor explicitly afterwards; ReplaceRange only keeps it
// inside the new bounds.
func (d *Document) ReplaceRange(start, end int, text string) {
	start = d.clamp(start)
	end = d.clamp(end)
	if start > end {
		start, end = end, start
	}
	e := edit{start: start, oldText: d.text[start:end], newLen: len(text)}
	if d.depth > 0 {
		d.open.edits = append(d.open.edits, e)
	} else {
		d.undo = append(d.undo, undoGroup{edits: []edit{e}, cursor: d.cursor})
	}
	d.text = d.text[:start] + text + d.text[end:]
	if d.cursor > len(d.text) {
		d.cursor = len(d.text)
	}
}

// BeginUndoGroup opens an undo group; edits until the matching
// EndUndoGroup form a single undo step. Groups nest: only the outermost
// pair delimits the step.
func (d *Document) BeginUndoGroup() {
	d.depth++
	if d.depth == 1 {
		d.open = undoGroup{cursor: d.cursor}
	}
}

// EndUndoGroup closes the innermost open undo group.
func (d *Document) EndUndoGroup() {
	if d.depth == 0 {
		return
	}
	d.depth--
	if d.depth == 0 && len(d.open.edits) > 0 {
		d.undo = append(d.undo, d.open)
		d.open = undoGroup{}
	}
}

// Undo reverts the most recent undo step, restoring both the text and the
// cursor position from before it. It reports whether there was anything
// to undo.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	g := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	for i := len(g.edits) - 1; i >= 0; i-- {
		e := g.edits[i]
		d.text = d.text[:e.start] + e.oldText + d.text[e.start+e.newLen:]
	}
	d.cursor = g.cursor
	return true
}

// ShowPopup raises the inline popup flag, standing in for the host
// editor's own autocompletion popup.
func (d *Document) ShowPopup() {
	d.popup = true
}

// DismissPopup lowers the inline popup flag.
func (d *Document) DismissPopup() {
	d.popup = false
}

// PopupVisible reports whether the inline popup flag is raised.
func (d *Document) PopupVisible() bool {
	return d.popup
}
