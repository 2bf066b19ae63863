package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/dshills/textcore/internal/engine/cursor"
)

// Fulfill applies t to the document and returns its reciprocal: the
// transaction that, fulfilled next, restores the text and every selection
// that lay outside the edited range.
//
// Every tracked selection is pulled back as if the replaced text were
// removed, then pushed forward by the inserted text. Selections strictly
// inside the replaced text collapse onto its start.
//
// Fulfill validates before it mutates: a transaction whose selection is not
// valid returns ErrInvalidPosition and leaves the document untouched.
func (d *Document) Fulfill(t Transaction) (Transaction, error) {
	if err := d.validateSelection("fulfill", t.Selection); err != nil {
		d.logger.Warn("rejected %s: %v", t, err)
		return Transaction{}, err
	}

	t = t.AccountingForSpecialCharacters(d, d.special, d.tabWidth)
	s := t.Selection.Oriented()

	// L is the full text of every row the selection touches; i and j are
	// the selection's ends as offsets into L.
	L := []rune(d.content(s.HorizontallyMaximized(d)))
	i := s.Head.Col
	j := lastIndexRune(L, '\n') + s.Tail.Col + 1
	M := slices.Concat(L[:i], []rune(t.Content), L[j:])

	inserted := cursor.Measure(t.Content).StartingFrom(s.Head)
	adjusted := d.selections.Adjusted(s, inserted)

	rows := strings.Split(string(M), "\n")
	if err := d.lines.Splice(s.Head.Row, s.Tail.Row-s.Head.Row+1, rows); err != nil {
		return Transaction{}, fmt.Errorf("fulfill: %w", err)
	}
	d.selections.SetAll(adjusted)
	d.invalidateBounds()

	reciprocal := Transaction{
		Selection:    inserted,
		Content:      string(L[i:j]),
		AffectedArea: d.affectedArea(s, inserted),
		Direction:    t.Direction.Flip(),
		Literal:      true,
	}
	d.logger.Debug("fulfilled %s, reciprocal %s", t, reciprocal)
	return reciprocal, nil
}

// Perform fulfills t and then installs the caller-facing caret for the
// selection at index: after a forward edit a caret at the end of the
// inserted text, after a reverse edit the restored text selected.
func (d *Document) Perform(index int, t Transaction) (Transaction, error) {
	prev, ok := d.selections.Get(index)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %d", ErrSelectionIndex, index)
	}

	r, err := d.Fulfill(t)
	if err != nil {
		return Transaction{}, err
	}

	next := r.Selection
	if r.Direction == Reverse {
		next = cursor.NewCaret(r.Selection.Tail)
	}
	d.selections.Replace(index, next.WithTag(prev.Tag))
	return r, nil
}

// affectedArea covers every row from the first edited row down. When the
// edit did not change the row count only the edited rows are covered.
func (d *Document) affectedArea(removed, inserted Selection) fixed.Rectangle26_6 {
	top, _ := d.VerticalRangeForRow(removed.Head.Row)
	bottom := fixed.Int26_6(math.MaxInt32)
	if removed.Tail.Row-removed.Head.Row == inserted.Tail.Row-inserted.Head.Row {
		_, bottom = d.VerticalRangeForRow(inserted.Tail.Row)
	}
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: 0, Y: top},
		Max: fixed.Point26_6{X: fixed.Int26_6(math.MaxInt32), Y: bottom},
	}
}

func lastIndexRune(rs []rune, r rune) int {
	for k := len(rs) - 1; k >= 0; k-- {
		if rs[k] == r {
			return k
		}
	}
	return -1
}
