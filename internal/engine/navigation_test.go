package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestNextPrevBoundaries(t *testing.T) {
	d := newDoc(t, "ab\ncd")

	end := d.LastPosition()
	if end != pos(1, 2) {
		t.Fatalf("expected last position (1:2), got %s", end)
	}
	if d.Next(&end) {
		t.Error("Next at the end of the last row should fail")
	}
	if end != pos(1, 2) {
		t.Errorf("failed Next should not move, got %s", end)
	}

	sentinel := pos(d.NumRows(), 0)
	if d.Next(&sentinel) {
		t.Error("Next at the end-of-document sentinel should fail")
	}

	origin := pos(0, 0)
	if d.Prev(&origin) {
		t.Error("Prev at the origin should fail")
	}

	p := pos(0, 2)
	if !d.Next(&p) || p != pos(1, 0) {
		t.Errorf("Next should wrap to the next row, got %s", p)
	}
	if !d.Prev(&p) || p != pos(0, 2) {
		t.Errorf("Prev should wrap to the end of the previous row, got %s", p)
	}
}

func TestRowMovement(t *testing.T) {
	d := newDoc(t, "abcdef\nab\nabcd")

	p := pos(0, 5)
	if !d.NextRow(&p) || p != pos(1, 2) {
		t.Errorf("expected column clamped to (1:2), got %s", p)
	}
	if !d.NextRow(&p) || p != pos(2, 2) {
		t.Errorf("expected (2:2), got %s", p)
	}
	if d.NextRow(&p) {
		t.Error("NextRow on the last row should fail")
	}
	if !d.PrevRow(&p) || p != pos(1, 2) {
		t.Errorf("expected (1:2), got %s", p)
	}

	top := pos(0, 3)
	if d.PrevRow(&top) {
		t.Error("PrevRow on the first row should fail")
	}
}

func TestWordMovement(t *testing.T) {
	d := newDoc(t, "ab\n  cd ef")

	p := pos(0, 0)
	if !d.NextWord(&p) || p != pos(0, 2) {
		t.Errorf("expected end of first word (0:2), got %s", p)
	}
	if !d.NextWord(&p) || p != pos(1, 4) {
		t.Errorf("expected to skip whitespace across rows to (1:4), got %s", p)
	}

	last := pos(1, 5)
	if d.NextWord(&last) {
		t.Error("NextWord from the last word should fail")
	}
	if last != pos(1, 5) {
		t.Errorf("failed NextWord should not move, got %s", last)
	}

	q := pos(1, 4)
	if !d.PrevWord(&q) || q != pos(1, 2) {
		t.Errorf("expected start of word (1:2), got %s", q)
	}
	if d.PrevWord(&q) {
		t.Error("PrevWord into the first word should fail at the document start")
	}
	if q != pos(1, 2) {
		t.Errorf("failed PrevWord should not move, got %s", q)
	}
}

func TestCharacterAt(t *testing.T) {
	d := newDoc(t, "aé\nb")
	tests := []struct {
		p    Position
		want rune
	}{
		{pos(0, 1), 'é'},
		{pos(0, 2), '\n'},
		{pos(1, 1), 0},
		{pos(5, 0), 0},
	}
	for _, tt := range tests {
		if got := d.CharacterAt(tt.p); got != tt.want {
			t.Errorf("CharacterAt(%s) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestNavigate(t *testing.T) {
	d := newDoc(t, "foo bar baz\nqux")

	tests := []struct {
		name    string
		start   Selection
		nav     Navigation
		fixTail bool
		want    Selection
	}{
		{"identity", sel(pos(0, 1), pos(0, 2)), Identity, false, sel(pos(0, 1), pos(0, 2))},
		{"whole document", caret(pos(0, 5)), WholeDocument, false, sel(pos(0, 0), pos(1, 3))},
		{"whole line", sel(pos(1, 1), pos(0, 2)), WholeLine, false, sel(pos(0, 0), pos(1, 3))},
		{"whole word", caret(pos(0, 5)), WholeWord, false, sel(pos(0, 4), pos(0, 7))},
		{"forward char", caret(pos(0, 1)), ForwardByChar, false, caret(pos(0, 2))},
		{"forward char fixing tail", caret(pos(0, 1)), ForwardByChar, true, sel(pos(0, 2), pos(0, 1))},
		{"backward char", caret(pos(1, 0)), BackwardByChar, false, caret(pos(0, 11))},
		{"forward word", caret(pos(0, 3)), ForwardByWord, false, caret(pos(0, 7))},
		{"forward word at last word", caret(pos(1, 1)), ForwardByWord, false, caret(pos(1, 3))},
		{"backward word", caret(pos(0, 6)), BackwardByWord, false, caret(pos(0, 4))},
		{"backward word at first word", caret(pos(0, 2)), BackwardByWord, false, caret(pos(0, 0))},
		{"forward line", caret(pos(0, 9)), ForwardByLine, false, caret(pos(1, 3))},
		{"backward line", caret(pos(1, 2)), BackwardByLine, false, caret(pos(0, 2))},
		{"line start", caret(pos(0, 6)), ToLineStart, false, caret(pos(0, 0))},
		{"line end fixing tail", caret(pos(0, 6)), ToLineEnd, true, sel(pos(0, 11), pos(0, 6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Navigate(tt.start, tt.nav, tt.fixTail)
			if err != nil {
				t.Fatalf("Navigate: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNavigatedSelectionsIsPure(t *testing.T) {
	d := newDoc(t, "one two\nthree")
	if err := d.SetSelections([]Selection{caret(pos(0, 0)), caret(pos(1, 0))}); err != nil {
		t.Fatal(err)
	}

	next, err := d.NavigatedSelections(ForwardByWord, false)
	if err != nil {
		t.Fatalf("NavigatedSelections: %v", err)
	}
	if next[0] != caret(pos(0, 3)) || next[1] != caret(pos(1, 5)) {
		t.Errorf("unexpected navigated selections %v", next)
	}
	if d.Selections()[0] != caret(pos(0, 0)) {
		t.Error("NavigatedSelections should not install the result")
	}

	if err := d.SetSelections(next); err != nil {
		t.Fatalf("installing navigated selections: %v", err)
	}
}

func TestNavigationNames(t *testing.T) {
	for n := Identity; n <= ToLineEnd; n++ {
		got, ok := ParseNavigation(n.String())
		if !ok || got != n {
			t.Errorf("ParseNavigation(%q) = %v, %v", n.String(), got, ok)
		}
	}
	if _, ok := ParseNavigation("sideways"); ok {
		t.Error("unknown names should not parse")
	}
	if Navigation(99).String() != "unknown" {
		t.Error("out of range navigation should print as unknown")
	}
	if WholeWord.IsMovement() || !ToLineEnd.IsMovement() {
		t.Error("IsMovement misclassified")
	}
}

func TestWordRange(t *testing.T) {
	d := newDoc(t, "foo  bar")
	tests := []struct {
		p    Position
		want Span
	}{
		{pos(0, 1), Span{Start: 0, End: 3}},
		{pos(0, 4), Span{Start: 4, End: 4}},
		{pos(0, 8), Span{Start: 5, End: 8}},
	}
	for _, tt := range tests {
		got, err := d.WordRange(tt.p)
		if err != nil {
			t.Fatalf("WordRange(%s): %v", tt.p, err)
		}
		if got != tt.want {
			t.Errorf("WordRange(%s) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestNavigationRejectsInvalidPositions(t *testing.T) {
	d := newDoc(t, "abc\ndef")

	tests := []struct {
		name string
		sel  Selection
		nav  Navigation
	}{
		{"column past row end", caret(pos(0, 9)), BackwardByChar},
		{"row past document end", caret(pos(7, 2)), ToLineEnd},
		{"negative column", caret(pos(1, -1)), ForwardByChar},
		{"invalid tail", sel(pos(0, 1), pos(0, 4)), Identity},
		{"end-of-document sentinel", caret(pos(2, 0)), BackwardByWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.Navigate(tt.sel, tt.nav, false); !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("expected ErrInvalidPosition, got %v", err)
			}
		})
	}

	if _, err := d.WordRange(pos(0, 42)); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("WordRange past the row end: expected ErrInvalidPosition, got %v", err)
	}
	if _, err := d.WordRange(pos(3, 0)); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("WordRange past the last row: expected ErrInvalidPosition, got %v", err)
	}
}

func TestNavigatedSelectionsReportsIndex(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	if err := d.SetSelections([]Selection{caret(pos(0, 0)), caret(pos(1, 3))}); err != nil {
		t.Fatal(err)
	}
	// Shrink the document behind the second selection's back.
	if err := d.lines.Reset([]string{"abc"}); err != nil {
		t.Fatal(err)
	}

	_, err := d.NavigatedSelections(ForwardByChar, false)
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if !strings.Contains(err.Error(), "selection 1") {
		t.Errorf("expected the failing index in %q", err)
	}
}

func TestWordMotionOnLongLine(t *testing.T) {
	line := strings.Repeat("x", 100000) + " y"
	d := newDoc(t, line)

	p := pos(0, 0)
	if !d.NextWord(&p) || p != pos(0, 100000) {
		t.Fatalf("unexpected NextWord result %s", p)
	}
	if !d.PrevWord(&p) || p != pos(0, 0) {
		t.Errorf("unexpected PrevWord result %s", p)
	}
	r, err := d.WordRange(pos(0, 50000))
	if err != nil {
		t.Fatal(err)
	}
	if r != (Span{Start: 0, End: 100000}) {
		t.Errorf("unexpected word range %s", r)
	}
}
