package cursor

import (
	"fmt"
	"strings"
)

// Selection represents a range of text between a head and a tail.
// When Head == Tail, this represents a caret with no selected text.
// Tag is a style tag the renderer uses when painting the selection.
// Selection is an immutable value type.
type Selection struct {
	Head Position
	Tail Position
	Tag  int
}

// NewSelection creates a selection from head to tail.
func NewSelection(head, tail Position) Selection {
	return Selection{Head: head, Tail: tail}
}

// NewCaret creates a selection representing just a caret (no extent).
func NewCaret(p Position) Selection {
	return Selection{Head: p, Tail: p}
}

// Measure returns a selection that starts at the origin and spans content
// as if it were inserted there: the tail row is the number of line breaks
// and the tail column is the length of the last line.
func Measure(content string) Selection {
	rows := strings.Count(content, "\n")
	last := content
	if rows > 0 {
		last = content[strings.LastIndexByte(content, '\n')+1:]
	}
	return Selection{Tail: Position{Row: rows, Col: len([]rune(last))}}
}

// IsSingular returns true if the selection has no extent (just a caret).
func (s Selection) IsSingular() bool {
	return s.Head == s.Tail
}

// IsSingleLine returns true if head and tail are on the same row.
func (s Selection) IsSingleLine() bool {
	return s.Head.Row == s.Tail.Row
}

// IsOriented returns true if the head does not come after the tail.
func (s Selection) IsOriented() bool {
	return !s.Head.After(s.Tail)
}

// Oriented returns the selection with head and tail swapped if needed so
// that head <= tail. Orienting twice is the same as orienting once.
func (s Selection) Oriented() Selection {
	if s.IsOriented() {
		return s
	}
	return s.Swapped()
}

// Swapped returns a selection with head and tail exchanged.
func (s Selection) Swapped() Selection {
	return Selection{Head: s.Tail, Tail: s.Head, Tag: s.Tag}
}

// Start returns the earlier of head and tail.
func (s Selection) Start() Position {
	return s.Oriented().Head
}

// End returns the later of head and tail.
func (s Selection) End() Position {
	return s.Oriented().Tail
}

// WithTag returns a copy of the selection carrying the given style tag.
func (s Selection) WithTag(tag int) Selection {
	s.Tag = tag
	return s
}

// Contains returns true if p lies in [start, end) of the selection.
// A caret contains nothing.
func (s Selection) Contains(p Position) bool {
	o := s.Oriented()
	return !p.Before(o.Head) && p.Before(o.Tail)
}

// HorizontallyMaximized returns the selection widened so its first row
// starts at column 0 and its last row ends at the end of the line.
// Head and tail keep their roles: a reversed selection stays reversed.
func (s Selection) HorizontallyMaximized(lines Lines) Selection {
	if s.IsOriented() {
		s.Head.Col = 0
		s.Tail.Col = lines.NumColumns(s.Tail.Row)
	} else {
		s.Head.Col = lines.NumColumns(s.Head.Row)
		s.Tail.Col = 0
	}
	return s
}

// StartingFrom translates a selection measured from the origin (see
// Measure) so that its head lands on p.
func (s Selection) StartingFrom(p Position) Selection {
	tail := s.Tail
	if tail.Row == s.Head.Row {
		tail.Col = p.Col + tail.Col - s.Head.Col
	}
	tail.Row = p.Row + tail.Row - s.Head.Row
	return Selection{Head: p, Tail: tail, Tag: s.Tag}
}

// Measuring returns a selection whose head is this selection's head and
// whose tail is where the end of content would land if it were inserted
// at the head.
func (s Selection) Measuring(content string) Selection {
	m := Measure(content).StartingFrom(s.Head)
	m.Tag = s.Tag
	return m
}

// ColumnRangeOnRow returns the columns this selection covers on row.
// Rows outside the selection give an empty span; rows strictly inside a
// multi-row selection cover [0, numColumns).
func (s Selection) ColumnRangeOnRow(row, numColumns int) Span {
	o := s.Oriented()
	switch {
	case row < o.Head.Row || row > o.Tail.Row:
		return Span{}
	case row == o.Head.Row && row == o.Tail.Row:
		return Span{Start: o.Head.Col, End: o.Tail.Col}
	case row == o.Head.Row:
		return Span{Start: o.Head.Col, End: numColumns}
	case row == o.Tail.Row:
		return Span{Start: 0, End: o.Tail.Col}
	default:
		return Span{Start: 0, End: numColumns}
	}
}

// Rows returns the half-open span of rows the selection touches.
func (s Selection) Rows() Span {
	o := s.Oriented()
	return Span{Start: o.Head.Row, End: o.Tail.Row + 1}
}

// Validate returns ErrInvalidPosition if either end is not valid in lines.
func (s Selection) Validate(lines Lines) error {
	if err := s.Head.Validate(lines); err != nil {
		return err
	}
	return s.Tail.Validate(lines)
}

// Equals returns true if two selections have the same ends and tag.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsSingular() {
		return fmt.Sprintf("Caret%s", s.Head)
	}
	return fmt.Sprintf("Selection%s→%s", s.Head, s.Tail)
}
