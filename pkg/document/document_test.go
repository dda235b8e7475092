package document

import "testing"

func TestWordBoundaries(t *testing.T) {
	d := New("see foobar run")

	testCases := []struct {
		pos         int
		wantStart   int
		wantEnd     int
		description string
	}{
		{7, 4, 10, "inside a word"},
		{4, 4, 10, "at word start"},
		{10, 4, 10, "at word end"},
		{3, 0, 3, "cursor right after a word"},
		{0, 0, 3, "buffer start"},
		{14, 11, 14, "buffer end"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := d.WordStart(tc.pos, true); got != tc.wantStart {
				t.Errorf("WordStart(%d) = %d, want %d", tc.pos, got, tc.wantStart)
			}
			if got := d.WordEnd(tc.pos, true); got != tc.wantEnd {
				t.Errorf("WordEnd(%d) = %d, want %d", tc.pos, got, tc.wantEnd)
			}
		})
	}
}

func TestWordBoundariesCharClasses(t *testing.T) {
	d := New("foo   bar+++baz")

	// without onlyWordChars the boundaries cross runs of the same class
	if got := d.WordStart(6, false); got != 3 {
		t.Errorf("WordStart over spaces = %d, want 3", got)
	}
	if got := d.WordEnd(3, false); got != 6 {
		t.Errorf("WordEnd over spaces = %d, want 6", got)
	}
	if got := d.WordEnd(9, false); got != 12 {
		t.Errorf("WordEnd over punctuation = %d, want 12", got)
	}
	if got := d.WordStart(12, false); got != 9 {
		t.Errorf("WordStart over punctuation = %d, want 9", got)
	}
}

func TestWordCharsConfigurable(t *testing.T) {
	plain := New("well-known fact")
	if got := plain.WordEnd(0, true); got != 4 {
		t.Errorf("default word chars: WordEnd = %d, want 4", got)
	}

	hyphens := New("well-known fact", WithWordChars("-"))
	if got := hyphens.WordEnd(0, true); got != 10 {
		t.Errorf("hyphen as word char: WordEnd = %d, want 10", got)
	}

	underscore := New("snake_case rest")
	if got := underscore.WordEnd(0, true); got != 10 {
		t.Errorf("underscore is always a word char: WordEnd = %d, want 10", got)
	}
}

func TestTextRange(t *testing.T) {
	d := New("hello world")

	if got := d.TextRange(0, 5); got != "hello" {
		t.Errorf("TextRange(0,5) = %q, want %q", got, "hello")
	}
	if got := d.TextRange(6, 999); got != "world" {
		t.Errorf("clamped range = %q, want %q", got, "world")
	}
	if got := d.TextRange(5, 2); got != "" {
		t.Errorf("inverted range = %q, want empty", got)
	}
}

func TestFindText(t *testing.T) {
	d := New("foofoo foo Foo")

	testCases := []struct {
		pattern     string
		start, end  int
		wordStart   bool
		wantPos     int
		wantFound   bool
		description string
	}{
		{"foo", 0, 14, true, 0, true, "match at buffer start"},
		{"foo", 1, 14, true, 7, true, "embedded occurrence skipped"},
		{"foo", 1, 14, false, 3, true, "embedded occurrence kept without word anchoring"},
		{"Foo", 0, 14, true, 11, true, "search is case-sensitive"},
		{"foo", 8, 14, true, 0, false, "no match after range start"},
		{"foo", 0, 6, true, 0, true, "range end respected"},
		{"quux", 0, 14, true, 0, false, "absent pattern"},
		{"", 0, 14, true, 0, false, "empty pattern never matches"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pos, found := d.FindText(tc.pattern, tc.start, tc.end, tc.wordStart)
			if found != tc.wantFound || (found && pos != tc.wantPos) {
				t.Errorf("FindText(%q, %d, %d, %v) = (%d, %v), want (%d, %v)",
					tc.pattern, tc.start, tc.end, tc.wordStart, pos, found, tc.wantPos, tc.wantFound)
			}
		})
	}
}

func TestFindTextMatchMustFitRange(t *testing.T) {
	d := New("foobar")
	// a match straddling the range end does not count
	if _, found := d.FindText("bar", 0, 5, false); found {
		t.Error("match extending past the range end should not be found")
	}
}

func TestReplaceRangeAndUndo(t *testing.T) {
	t.Run("bare edit is one undo step", func(t *testing.T) {
		d := New("hello world", WithCursor(5))
		d.ReplaceRange(0, 5, "goodbye")
		if got := d.String(); got != "goodbye world" {
			t.Fatalf("text = %q, want %q", got, "goodbye world")
		}
		if !d.Undo() {
			t.Fatal("expected an undo step")
		}
		if got := d.String(); got != "hello world" {
			t.Errorf("after undo text = %q, want %q", got, "hello world")
		}
		if got := d.CursorPosition(); got != 5 {
			t.Errorf("after undo cursor = %d, want 5", got)
		}
		if d.Undo() {
			t.Error("expected no further undo steps")
		}
	})

	t.Run("grouped edits revert together", func(t *testing.T) {
		d := New("fo rest", WithCursor(2))
		d.BeginUndoGroup()
		d.ReplaceRange(0, 2, "foobar")
		d.SetCursorPosition(6)
		d.EndUndoGroup()

		if got := d.String(); got != "foobar rest" {
			t.Fatalf("text = %q, want %q", got, "foobar rest")
		}
		if !d.Undo() {
			t.Fatal("expected an undo step")
		}
		if got := d.String(); got != "fo rest" {
			t.Errorf("after undo text = %q, want %q", got, "fo rest")
		}
		if got := d.CursorPosition(); got != 2 {
			t.Errorf("after undo cursor = %d, want 2", got)
		}
	})

	t.Run("multiple edits in a group revert in reverse", func(t *testing.T) {
		d := New("abc")
		d.BeginUndoGroup()
		d.ReplaceRange(0, 1, "XX")
		d.ReplaceRange(2, 3, "")
		d.EndUndoGroup()

		if got := d.String(); got != "XXc" {
			t.Fatalf("text = %q, want %q", got, "XXc")
		}
		d.Undo()
		if got := d.String(); got != "abc" {
			t.Errorf("after undo text = %q, want %q", got, "abc")
		}
	})

	t.Run("nested groups form one step", func(t *testing.T) {
		d := New("abc")
		d.BeginUndoGroup()
		d.BeginUndoGroup()
		d.ReplaceRange(0, 1, "x")
		d.EndUndoGroup()
		d.ReplaceRange(1, 2, "y")
		d.EndUndoGroup()

		if got := d.String(); got != "xyc" {
			t.Fatalf("text = %q, want %q", got, "xyc")
		}
		if !d.Undo() {
			t.Fatal("expected an undo step")
		}
		if got := d.String(); got != "abc" {
			t.Errorf("after undo text = %q, want %q", got, "abc")
		}
		if d.Undo() {
			t.Error("nested groups must collapse into a single step")
		}
	})

	t.Run("empty group records nothing", func(t *testing.T) {
		d := New("abc")
		d.BeginUndoGroup()
		d.EndUndoGroup()
		if d.Undo() {
			t.Error("group without edits should not be undoable")
		}
	})
}

func TestCursorClamping(t *testing.T) {
	d := New("short")
	d.SetCursorPosition(-3)
	if got := d.CursorPosition(); got != 0 {
		t.Errorf("negative cursor = %d, want 0", got)
	}
	d.SetCursorPosition(999)
	if got := d.CursorPosition(); got != 5 {
		t.Errorf("oversized cursor = %d, want 5", got)
	}
}

func TestPopupFlag(t *testing.T) {
	d := New("text")
	d.ShowPopup()
	if !d.PopupVisible() {
		t.Error("popup should be visible after ShowPopup")
	}
	d.DismissPopup()
	if d.PopupVisible() {
		t.Error("popup should be hidden after DismissPopup")
	}
}

func TestIndex(t *testing.T) {
	d := New("the cat saw the dog chase the cat")
	ix := d.Index()

	if got := ix.Words(); got != 5 {
		t.Errorf("Words() = %d, want 5", got)
	}

	all := ix.WithPrefix("", 0)
	if len(all) != 5 {
		t.Fatalf("full listing has %d entries, want 5", len(all))
	}
	// lexicographic order with counts
	want := []WordEntry{{"cat", 2}, {"chase", 1}, {"dog", 1}, {"saw", 1}, {"the", 3}}
	for i, e := range all {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}

	ca := ix.WithPrefix("ca", 0)
	if len(ca) != 1 || ca[0].Word != "cat" {
		t.Errorf("WithPrefix(ca) = %+v, want just cat", ca)
	}

	capped := ix.WithPrefix("", 2)
	if len(capped) != 2 {
		t.Errorf("capped listing has %d entries, want 2", len(capped))
	}
}
