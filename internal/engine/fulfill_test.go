package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dshills/textcore/internal/engine/cursor"
)

var (
	pos   = cursor.Pos
	caret = cursor.NewCaret
	sel   = cursor.NewSelection
)

func newDoc(t *testing.T, text string, opts ...Option) *Document {
	t.Helper()
	return New(append([]Option{WithContent(text)}, opts...)...)
}

func mustFulfill(t *testing.T, d *Document, tr Transaction) Transaction {
	t.Helper()
	r, err := d.Fulfill(tr)
	if err != nil {
		t.Fatalf("Fulfill(%s): %v", tr, err)
	}
	return r
}

func TestFulfillInsertCharacter(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	r := mustFulfill(t, d, NewTransaction(caret(pos(0, 1)), "X"))

	if got := d.Text(); got != "aXbc\ndef" {
		t.Errorf("expected %q, got %q", "aXbc\ndef", got)
	}
	if r.Selection != sel(pos(0, 1), pos(0, 2)) {
		t.Errorf("unexpected reciprocal selection %s", r.Selection)
	}
	if r.Content != "" {
		t.Errorf("expected empty reciprocal content, got %q", r.Content)
	}
	if r.Direction != Reverse {
		t.Errorf("expected reverse direction, got %s", r.Direction)
	}
}

func TestFulfillDeleteWholeLine(t *testing.T) {
	d := newDoc(t, "abc")
	r := mustFulfill(t, d, NewTransaction(sel(pos(0, 0), pos(0, 3)), ""))

	if d.NumRows() != 1 || d.Line(0) != "" {
		t.Errorf("expected a single empty row, got %q", d.Text())
	}
	if r.Content != "abc" {
		t.Errorf("expected reciprocal content %q, got %q", "abc", r.Content)
	}
	if r.Selection != caret(pos(0, 0)) {
		t.Errorf("expected reciprocal caret at origin, got %s", r.Selection)
	}
}

func TestFulfillReplaceLineBreakIsNoop(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	r := mustFulfill(t, d, NewTransaction(sel(pos(0, 2), pos(1, 0)), "\n"))

	if got := d.Text(); got != "ab\ncd" {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if r.Selection.Tail != pos(1, 0) {
		t.Errorf("expected reciprocal tail (1:0), got %s", r.Selection.Tail)
	}
	if r.Content != "\n" {
		t.Errorf("expected reciprocal content %q, got %q", "\n", r.Content)
	}
}

func TestFulfillReversedSelection(t *testing.T) {
	d := newDoc(t, "hello\nworld")
	mustFulfill(t, d, NewTransaction(sel(pos(1, 2), pos(0, 3)), "-"))

	if got := d.Text(); got != "hel-rld" {
		t.Errorf("expected %q, got %q", "hel-rld", got)
	}
}

func TestFulfillMultiLineInsert(t *testing.T) {
	d := newDoc(t, "start end")
	r := mustFulfill(t, d, NewTransaction(caret(pos(0, 6)), "one\ntwo\n"))

	if got := d.Text(); got != "start one\ntwo\nend" {
		t.Errorf("unexpected text %q", got)
	}
	if r.Selection != sel(pos(0, 6), pos(2, 0)) {
		t.Errorf("unexpected reciprocal selection %s", r.Selection)
	}
}

func TestFulfillAdjustsOtherSelections(t *testing.T) {
	d := newDoc(t, "0123456789")
	if err := d.SetSelections([]Selection{caret(pos(0, 5)), caret(pos(0, 1))}); err != nil {
		t.Fatal(err)
	}

	if _, err := d.Perform(1, NewTransaction(caret(pos(0, 1)), "XY")); err != nil {
		t.Fatalf("Perform: %v", err)
	}

	sels := d.Selections()
	if sels[0] != caret(pos(0, 7)) {
		t.Errorf("expected first caret at (0:7), got %s", sels[0])
	}
	if sels[1] != caret(pos(0, 3)) {
		t.Errorf("expected edited caret at (0:3), got %s", sels[1])
	}
}

func TestFulfillAdjustsLaterRows(t *testing.T) {
	d := newDoc(t, "a\nb\nc")
	if err := d.SetSelections([]Selection{caret(pos(0, 0)), sel(pos(2, 0), pos(2, 1))}); err != nil {
		t.Fatal(err)
	}

	if _, err := d.Perform(0, NewTransaction(caret(pos(0, 0)), "x\ny\n")); err != nil {
		t.Fatal(err)
	}
	if got := d.Selections()[1]; got != sel(pos(4, 0), pos(4, 1)) {
		t.Errorf("expected selection moved down two rows, got %s", got)
	}
	if got := d.Selections()[0]; got != caret(pos(2, 0)) {
		t.Errorf("expected caret after inserted text, got %s", got)
	}
}

func TestFulfillInvalidPositionIsAtomic(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	before := d.Selections()

	bad := []Transaction{
		NewTransaction(caret(pos(0, 4)), "X"),
		NewTransaction(caret(pos(2, 0)), "X"),
		NewTransaction(sel(pos(0, 0), pos(-1, 0)), ""),
	}
	for _, tr := range bad {
		_, err := d.Fulfill(tr)
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("%s: expected ErrInvalidPosition, got %v", tr, err)
		}
		var pe *PositionError
		if !errors.As(err, &pe) || pe.Op != "fulfill" {
			t.Errorf("%s: expected *PositionError from fulfill, got %v", tr, err)
		}
	}

	if d.Text() != "abc\ndef" {
		t.Errorf("document changed after rejected transactions: %q", d.Text())
	}
	if after := d.Selections(); len(after) != len(before) || after[0] != before[0] {
		t.Errorf("selections changed after rejected transactions: %v", after)
	}
}

func TestFulfillNormalizesLineEndings(t *testing.T) {
	d := newDoc(t, "")
	mustFulfill(t, d, NewTransaction(caret(pos(0, 0)), "x\r\ny\rz"))
	if got := d.Text(); got != "x\ny\nz" {
		t.Errorf("expected normalized line endings, got %q", got)
	}
}

func TestPerformUndoSelectsRestoredText(t *testing.T) {
	d := newDoc(t, "abcd")
	if err := d.SetSelection(0, sel(pos(0, 1), pos(0, 3)).WithTag(5)); err != nil {
		t.Fatal(err)
	}

	r, err := d.Perform(0, NewTransaction(sel(pos(0, 1), pos(0, 3)), "X"))
	if err != nil {
		t.Fatal(err)
	}
	if d.Text() != "aXd" {
		t.Fatalf("unexpected text %q", d.Text())
	}
	s, _ := d.Selection(0)
	if s != caret(pos(0, 2)).WithTag(5) {
		t.Errorf("expected tagged caret after insert, got %s tag %d", s, s.Tag)
	}

	r2, err := d.Perform(0, r)
	if err != nil {
		t.Fatal(err)
	}
	if d.Text() != "abcd" {
		t.Errorf("undo did not restore text: %q", d.Text())
	}
	if s, _ := d.Selection(0); s != sel(pos(0, 1), pos(0, 3)).WithTag(5) {
		t.Errorf("expected restored text selected, got %s", s)
	}
	if r2.Direction != Forward || r2.Content != "X" {
		t.Errorf("unexpected redo transaction %s", r2)
	}
}

func TestReciprocalIsLiteral(t *testing.T) {
	d := newDoc(t, "a\tb")
	r := mustFulfill(t, d, NewTransaction(sel(pos(0, 0), pos(0, 2)), ""))
	if !r.Literal || r.Content != "a\t" {
		t.Fatalf("expected literal reciprocal restoring %q, got %s", "a\t", r)
	}

	mustFulfill(t, d, r)
	if got := d.Text(); got != "a\tb" {
		t.Errorf("expected the tab restored verbatim, got %q", got)
	}
}

func TestPerformBadIndex(t *testing.T) {
	d := newDoc(t, "abc")
	if _, err := d.Perform(3, NewTransaction(caret(pos(0, 0)), "x")); !errors.Is(err, ErrSelectionIndex) {
		t.Errorf("expected ErrSelectionIndex, got %v", err)
	}
	if d.Text() != "abc" {
		t.Error("document changed after a rejected perform")
	}
}

func TestFulfillSpecialCharacters(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		opts   []Option
		tr     func(sc SpecialCharacters) Transaction
		want   string
		wantAt Position
	}{
		{
			name: "backspace joins rows",
			text: "ab\ncd",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Backspace(caret(pos(1, 0))) },
			want: "abcd", wantAt: pos(0, 2),
		},
		{
			name: "backspace at origin is a no-op",
			text: "ab",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Backspace(caret(pos(0, 0))) },
			want: "ab", wantAt: pos(0, 0),
		},
		{
			name: "backspace deletes a range without widening",
			text: "abcd",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Backspace(sel(pos(0, 1), pos(0, 3))) },
			want: "ad", wantAt: pos(0, 1),
		},
		{
			name: "delete removes following character",
			text: "ab\ncd",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Delete(caret(pos(0, 2))) },
			want: "abcd", wantAt: pos(0, 2),
		},
		{
			name: "delete at end is a no-op",
			text: "ab",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Delete(caret(pos(0, 2))) },
			want: "ab", wantAt: pos(0, 2),
		},
		{
			name: "tab inserts spaces",
			text: "ab",
			tr:   func(sc SpecialCharacters) Transaction { return sc.Tab(caret(pos(0, 1))) },
			want: "a    b", wantAt: pos(0, 5),
		},
		{
			name: "tab width is configurable",
			text: "ab",
			opts: []Option{WithTabWidth(2)},
			tr:   func(sc SpecialCharacters) Transaction { return sc.Tab(caret(pos(0, 1))) },
			want: "a  b", wantAt: pos(0, 3),
		},
		{
			name: "disabled sentinels are literal",
			text: "ab",
			opts: []Option{WithSpecialCharacters(SpecialCharacters{})},
			tr:   func(SpecialCharacters) Transaction { return NewTransaction(caret(pos(0, 1)), "\t") },
			want: "a\tb", wantAt: pos(0, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t, tt.text, tt.opts...)
			tr := tt.tr(d.SpecialCharacters())
			if err := d.SetSelection(0, tr.Selection); err != nil {
				t.Fatal(err)
			}
			if _, err := d.Perform(0, tr); err != nil {
				t.Fatalf("Perform: %v", err)
			}
			if got := d.Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if s, _ := d.Selection(0); s != caret(tt.wantAt) {
				t.Errorf("expected caret at %s, got %s", tt.wantAt, s)
			}
		})
	}
}

func TestFulfillRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab \nxé")

	randomText := func(n int) string {
		r := make([]rune, n)
		for i := range r {
			r[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(r)
	}
	randomPos := func(d *Document) Position {
		row := rng.Intn(d.NumRows())
		return pos(row, rng.Intn(d.NumColumns(row)+1))
	}

	for iter := 0; iter < 500; iter++ {
		d := newDoc(t, randomText(rng.Intn(30)))
		s := sel(randomPos(d), randomPos(d))
		o := s.Oriented()

		// Track carets that lie outside the edited range. A caret at the
		// head of a replaced range is left out: the reciprocal pushes it to
		// the end of the restored text (see TestRoundTripMovesCaretAtRemovedHead).
		var others []Selection
		for k := 0; k < 4; k++ {
			p := randomPos(d)
			if p.Before(o.Head) || (!p.Before(o.Tail) && p != o.Head) {
				others = append(others, caret(p))
			}
		}
		if len(others) == 0 {
			others = append(others, caret(pos(0, 0)))
			if o.Head.IsZero() && !o.IsSingular() {
				continue
			}
		}
		if err := d.SetSelections(others); err != nil {
			t.Fatal(err)
		}

		text := d.Text()
		r := mustFulfill(t, d, NewTransaction(s, randomText(rng.Intn(6))))
		mustFulfill(t, d, r)

		if got := d.Text(); got != text {
			t.Fatalf("iteration %d: text %q became %q", iter, text, got)
		}
		for k, want := range others {
			if got := d.Selections()[k]; got != want {
				t.Fatalf("iteration %d: selection %d %s became %s (edit %s)", iter, k, want, got, s)
			}
		}
	}
}

func TestRoundTripMovesCaretAtRemovedHead(t *testing.T) {
	d := newDoc(t, "abcdef")
	if err := d.SetSelections([]Selection{caret(pos(0, 2)), caret(pos(0, 5))}); err != nil {
		t.Fatal(err)
	}

	r := mustFulfill(t, d, NewTransaction(sel(pos(0, 2), pos(0, 4)), ""))
	if got := d.Selections(); got[0] != caret(pos(0, 2)) || got[1] != caret(pos(0, 3)) {
		t.Fatalf("unexpected selections after the delete %v", got)
	}

	mustFulfill(t, d, r)
	if got := d.Text(); got != "abcdef" {
		t.Fatalf("expected the text restored, got %q", got)
	}
	got := d.Selections()
	if got[1] != caret(pos(0, 5)) {
		t.Errorf("caret after the range should be restored, got %s", got[1])
	}
	// Restored text is inserted in front of a caret at its start.
	if got[0] != caret(pos(0, 4)) {
		t.Errorf("caret at the removed head should follow the restored text, got %s", got[0])
	}
}
