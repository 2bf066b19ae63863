package engine

import (
	"fmt"
	"unicode"
)

// Navigation is a named way of moving or widening a selection.
type Navigation int

const (
	Identity Navigation = iota
	WholeDocument
	WholeLine
	WholeWord
	ForwardByChar
	BackwardByChar
	ForwardByWord
	BackwardByWord
	ForwardByLine
	BackwardByLine
	ToLineStart
	ToLineEnd
)

var navigationNames = [...]string{
	Identity:       "identity",
	WholeDocument:  "wholeDocument",
	WholeLine:      "wholeLine",
	WholeWord:      "wholeWord",
	ForwardByChar:  "forwardByChar",
	BackwardByChar: "backwardByChar",
	ForwardByWord:  "forwardByWord",
	BackwardByWord: "backwardByWord",
	ForwardByLine:  "forwardByLine",
	BackwardByLine: "backwardByLine",
	ToLineStart:    "toLineStart",
	ToLineEnd:      "toLineEnd",
}

// String returns the navigation name.
func (n Navigation) String() string {
	if n < 0 || int(n) >= len(navigationNames) {
		return "unknown"
	}
	return navigationNames[n]
}

// ParseNavigation returns the navigation with the given name.
func ParseNavigation(name string) (Navigation, bool) {
	for n, s := range navigationNames {
		if s == name {
			return Navigation(n), true
		}
	}
	return Identity, false
}

// IsMovement reports whether n moves the head, as opposed to widening the
// selection to a whole unit.
func (n Navigation) IsMovement() bool {
	return n >= ForwardByChar
}

// Next advances p by one character, wrapping to the start of the next row.
// It returns false and leaves p alone at the end of the last row.
func (d *Document) Next(p *Position) bool {
	if p.Row < 0 || p.Row >= d.NumRows() {
		return false
	}
	if p.Col < d.NumColumns(p.Row) {
		p.Col++
		return true
	}
	if p.Row < d.NumRows()-1 {
		p.Row++
		p.Col = 0
		return true
	}
	return false
}

// Prev moves p back by one character, wrapping to the end of the previous
// row. It returns false and leaves p alone at the origin.
func (d *Document) Prev(p *Position) bool {
	if p.Col > 0 {
		p.Col--
		return true
	}
	if p.Row > 0 {
		p.Row--
		p.Col = d.NumColumns(p.Row)
		return true
	}
	return false
}

// NextRow moves p down one row, clamping the column to the new row's
// length. It returns false on the last row.
func (d *Document) NextRow(p *Position) bool {
	if p.Row < 0 || p.Row >= d.NumRows()-1 {
		return false
	}
	p.Row++
	p.Col = min(p.Col, d.NumColumns(p.Row))
	return true
}

// PrevRow moves p up one row, clamping the column to the new row's
// length. It returns false on the first row.
func (d *Document) PrevRow(p *Position) bool {
	if p.Row <= 0 || p.Row > d.NumRows() {
		return false
	}
	p.Row--
	p.Col = min(p.Col, d.NumColumns(p.Row))
	return true
}

// NextWord moves p past any whitespace and then to the end of the
// following word. Words are runs of non-whitespace; row ends count as
// whitespace. If the document ends before a word end is found, p is left
// alone and NextWord returns false.
func (d *Document) NextWord(p *Position) bool {
	q := *p
	for isSpace(d.CharacterAt(q)) {
		if !d.Next(&q) {
			return false
		}
	}
	for !isSpace(d.CharacterAt(q)) {
		if !d.Next(&q) {
			return false
		}
	}
	*p = q
	return true
}

// PrevWord mirrors NextWord: it moves p back over whitespace and then to
// the start of the preceding word, returning false without moving p if the
// document starts before a word start is found.
func (d *Document) PrevWord(p *Position) bool {
	q := *p
	for isSpace(d.characterBefore(q)) {
		if !d.Prev(&q) {
			return false
		}
	}
	for !isSpace(d.characterBefore(q)) {
		if !d.Prev(&q) {
			return false
		}
	}
	*p = q
	return true
}

// characterBefore returns the character preceding p, or 0 at the origin.
func (d *Document) characterBefore(p Position) rune {
	if !d.Prev(&p) {
		return 0
	}
	return d.CharacterAt(p)
}

// WordRange returns the columns of the whitespace-delimited word around p
// on p's row. On whitespace the range is empty at p.Col. An invalid p
// returns ErrInvalidPosition.
func (d *Document) WordRange(p Position) (Span, error) {
	if err := d.validatePosition("word range", p); err != nil {
		return Span{}, err
	}
	start, end := p.Col, p.Col
	for start > 0 && !d.spaceAt(p.Row, start-1) {
		start--
	}
	for end < d.lines.NumColumns(p.Row) && !d.spaceAt(p.Row, end) {
		end++
	}
	return Span{Start: start, End: end}, nil
}

func (d *Document) spaceAt(row, col int) bool {
	r, _ := d.lines.RuneAt(row, col)
	return isSpace(r)
}

// Navigate returns s moved or widened by n. Movements act on the head and,
// unless fixTail is set, collapse the tail onto it. A word movement that
// runs into the document boundary lands on that boundary. A selection
// with an end outside the document returns ErrInvalidPosition.
func (d *Document) Navigate(s Selection, n Navigation, fixTail bool) (Selection, error) {
	if err := d.validateSelection("navigate", s); err != nil {
		return Selection{}, err
	}

	switch n {
	case Identity:
		return s, nil
	case WholeDocument:
		return Selection{Head: Position{}, Tail: d.LastPosition(), Tag: s.Tag}, nil
	case WholeLine:
		return s.Oriented().HorizontallyMaximized(d), nil
	case WholeWord:
		o := s.Oriented()
		head, _ := d.WordRange(o.Head)
		tail, _ := d.WordRange(o.Tail)
		o.Head.Col, o.Tail.Col = head.Start, tail.End
		return o, nil
	case ForwardByChar:
		d.Next(&s.Head)
	case BackwardByChar:
		d.Prev(&s.Head)
	case ForwardByWord:
		if !d.NextWord(&s.Head) {
			s.Head = d.LastPosition()
		}
	case BackwardByWord:
		if !d.PrevWord(&s.Head) {
			s.Head = Position{}
		}
	case ForwardByLine:
		d.NextRow(&s.Head)
	case BackwardByLine:
		d.PrevRow(&s.Head)
	case ToLineStart:
		s.Head.Col = 0
	case ToLineEnd:
		s.Head.Col = d.NumColumns(s.Head.Row)
	default:
		return s, nil
	}
	if !fixTail {
		s.Tail = s.Head
	}
	return s, nil
}

// NavigatedSelections returns every tracked selection mapped through
// Navigate. The document is not changed; install the result with
// SetSelections.
func (d *Document) NavigatedSelections(n Navigation, fixTail bool) ([]Selection, error) {
	sels := d.selections.All()
	for i, s := range sels {
		next, err := d.Navigate(s, n, fixTail)
		if err != nil {
			return nil, fmt.Errorf("selection %d: %w", i, err)
		}
		sels[i] = next
	}
	return sels, nil
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
