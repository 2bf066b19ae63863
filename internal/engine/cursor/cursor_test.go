package cursor

import (
	"errors"
	"testing"
)

// fakeLines is a fixed set of row lengths.
type fakeLines []int

func (f fakeLines) NumRows() int { return len(f) }

func (f fakeLines) NumColumns(row int) int {
	if row < 0 || row >= len(f) {
		return 0
	}
	return f[row]
}

// Position Tests

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Pos(0, 0), Pos(0, 0), 0},
		{Pos(0, 1), Pos(0, 2), -1},
		{Pos(1, 0), Pos(0, 9), 1},
		{Pos(2, 3), Pos(2, 1), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPositionValidate(t *testing.T) {
	lines := fakeLines{3, 0}

	valid := []Position{Pos(0, 0), Pos(0, 3), Pos(1, 0)}
	for _, p := range valid {
		if err := p.Validate(lines); err != nil {
			t.Errorf("expected %s to be valid, got %v", p, err)
		}
	}

	invalid := []Position{Pos(-1, 0), Pos(0, 4), Pos(0, -1), Pos(2, 0), Pos(1, 1)}
	for _, p := range invalid {
		if err := p.Validate(lines); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("expected ErrInvalidPosition for %s, got %v", p, err)
		}
	}
}

func TestEndSentinel(t *testing.T) {
	lines := fakeLines{3, 2}
	end := End(lines)
	if end != Pos(2, 0) {
		t.Errorf("expected (2:0), got %s", end)
	}
	if end.IsValid(lines) {
		t.Error("end-of-document sentinel should not be a valid edit position")
	}
	if !end.After(Pos(1, 2)) {
		t.Error("sentinel should compare after the last character")
	}
}

// Span Tests

func TestSpan(t *testing.T) {
	s := NewSpan(5, 2)
	if s.Start != 2 || s.End != 5 {
		t.Errorf("expected [2, 5), got %s", s)
	}
	if s.Len() != 3 {
		t.Errorf("expected len 3, got %d", s.Len())
	}
	if !s.Contains(2) || s.Contains(5) {
		t.Error("span should be half-open")
	}

	if got := s.Intersect(Span{4, 9}); got != (Span{4, 5}) {
		t.Errorf("expected [4, 5), got %s", got)
	}
	if got := s.Intersect(Span{7, 9}); !got.IsEmpty() {
		t.Errorf("expected empty intersection, got %s", got)
	}
	if got := s.Union(Span{7, 9}); got != (Span{2, 9}) {
		t.Errorf("expected [2, 9), got %s", got)
	}
	if got := (Span{}).Union(Span{1, 2}); got != (Span{1, 2}) {
		t.Errorf("union with empty should return other, got %s", got)
	}
}

// Selection Tests

func TestSelectionOrientation(t *testing.T) {
	forward := NewSelection(Pos(0, 1), Pos(1, 0))
	backward := forward.Swapped()

	if !forward.IsOriented() {
		t.Error("forward selection should be oriented")
	}
	if backward.IsOriented() {
		t.Error("backward selection should not be oriented")
	}
	if backward.Oriented() != forward {
		t.Errorf("expected %s, got %s", forward, backward.Oriented())
	}

	for _, s := range []Selection{forward, backward, NewCaret(Pos(2, 2))} {
		once := s.Oriented()
		if once.Oriented() != once {
			t.Errorf("orienting twice changed %s", s)
		}
	}
}

func TestSelectionPredicates(t *testing.T) {
	caret := NewCaret(Pos(1, 1))
	if !caret.IsSingular() || !caret.IsSingleLine() {
		t.Error("caret should be singular and single-line")
	}
	if caret.Contains(Pos(1, 1)) {
		t.Error("caret should contain nothing")
	}

	multi := NewSelection(Pos(2, 0), Pos(0, 3))
	if multi.IsSingular() || multi.IsSingleLine() {
		t.Error("multi-row selection misclassified")
	}
	if !multi.Contains(Pos(1, 7)) || multi.Contains(Pos(2, 0)) {
		t.Error("Contains should test [start, end)")
	}
	if multi.Start() != Pos(0, 3) || multi.End() != Pos(2, 0) {
		t.Errorf("unexpected start/end %s %s", multi.Start(), multi.End())
	}
	if got := multi.Rows(); got != (Span{0, 3}) {
		t.Errorf("expected rows [0, 3), got %s", got)
	}
}

func TestHorizontallyMaximized(t *testing.T) {
	lines := fakeLines{5, 7, 4}

	s := NewSelection(Pos(0, 2), Pos(2, 1)).HorizontallyMaximized(lines)
	if s.Head != Pos(0, 0) || s.Tail != Pos(2, 4) {
		t.Errorf("oriented: got %s", s)
	}

	r := NewSelection(Pos(2, 1), Pos(0, 2)).HorizontallyMaximized(lines)
	if r.Head != Pos(2, 4) || r.Tail != Pos(0, 0) {
		t.Errorf("reversed: got %s", r)
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		content string
		tail    Position
	}{
		{"", Pos(0, 0)},
		{"abc", Pos(0, 3)},
		{"\n", Pos(1, 0)},
		{"ab\ncde", Pos(1, 3)},
		{"héllo", Pos(0, 5)},
		{"a\n\nb", Pos(2, 1)},
	}
	for _, tt := range tests {
		s := Measure(tt.content)
		if s.Head != Pos(0, 0) || s.Tail != tt.tail {
			t.Errorf("Measure(%q) = %s, want tail %s", tt.content, s, tt.tail)
		}
	}
}

func TestStartingFrom(t *testing.T) {
	s := Measure("XY").StartingFrom(Pos(3, 4))
	if s.Head != Pos(3, 4) || s.Tail != Pos(3, 6) {
		t.Errorf("single line: got %s", s)
	}

	m := Measure("X\nYZ").StartingFrom(Pos(3, 4))
	if m.Head != Pos(3, 4) || m.Tail != Pos(4, 2) {
		t.Errorf("multi line: got %s", m)
	}

	if got := NewCaret(Pos(1, 1)).Measuring("ab"); got.Tail != Pos(1, 3) {
		t.Errorf("Measuring: got %s", got)
	}
}

func TestColumnRangeOnRow(t *testing.T) {
	s := NewSelection(Pos(3, 2), Pos(1, 4)) // reversed on purpose
	tests := []struct {
		row  int
		want Span
	}{
		{0, Span{}},
		{1, Span{4, 10}},
		{2, Span{0, 10}},
		{3, Span{0, 2}},
		{4, Span{}},
	}
	for _, tt := range tests {
		if got := s.ColumnRangeOnRow(tt.row, 10); got != tt.want {
			t.Errorf("row %d: got %s, want %s", tt.row, got, tt.want)
		}
	}

	single := NewSelection(Pos(2, 1), Pos(2, 5))
	if got := single.ColumnRangeOnRow(2, 10); got != (Span{1, 5}) {
		t.Errorf("single line: got %s", got)
	}
}

func TestSelectionString(t *testing.T) {
	if got := NewCaret(Pos(1, 2)).String(); got != "Caret(1:2)" {
		t.Errorf("got %q", got)
	}
	if got := NewSelection(Pos(0, 0), Pos(1, 2)).String(); got != "Selection(0:0)→(1:2)" {
		t.Errorf("got %q", got)
	}
}
