package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/dshills/textcore/internal/engine/cursor"
)

// Direction tells the caller how to place the caret after a transaction.
// A Forward edit leaves the caret after the inserted content; a Reverse
// edit (an undo) selects the restored text.
type Direction int

const (
	// Forward is the direction of ordinary edits.
	Forward Direction = iota
	// Reverse is the direction of the reciprocal of a forward edit.
	Reverse
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Transaction replaces the text covered by Selection with Content.
type Transaction struct {
	Selection cursor.Selection
	Content   string

	// AffectedArea is the document region changed by the edit that
	// produced this transaction, as a repaint hint.
	AffectedArea fixed.Rectangle26_6

	Direction Direction

	// Literal marks content to be inserted verbatim, with no sentinel
	// interpretation. Reciprocals are always literal.
	Literal bool
}

// NewTransaction creates a forward transaction.
func NewTransaction(sel cursor.Selection, content string) Transaction {
	return Transaction{Selection: sel, Content: content}
}

// String returns a debug representation of the transaction.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction{%s %q %s}", t.Selection, t.Content, t.Direction)
}

// SpecialCharacters are the keystroke sentinels recognized as the last
// character of transaction content. A zero rune disables that sentinel.
type SpecialCharacters struct {
	TabKey       rune
	BackspaceKey rune
	DeleteKey    rune
}

// DefaultSpecialCharacters returns the ASCII control codes for tab,
// backspace and delete.
func DefaultSpecialCharacters() SpecialCharacters {
	return SpecialCharacters{TabKey: '\t', BackspaceKey: '\b', DeleteKey: 0x7f}
}

// Tab returns a transaction that inserts one tab's worth of spaces.
func (sc SpecialCharacters) Tab(sel cursor.Selection) Transaction {
	return NewTransaction(sel, string(sc.TabKey))
}

// Backspace returns a transaction that deletes the selection, or the
// character before a caret.
func (sc SpecialCharacters) Backspace(sel cursor.Selection) Transaction {
	return NewTransaction(sel, string(sc.BackspaceKey))
}

// Delete returns a transaction that deletes the selection, or the
// character after a caret.
func (sc SpecialCharacters) Delete(sel cursor.Selection) Transaction {
	return NewTransaction(sel, string(sc.DeleteKey))
}

// Stepper moves positions one character at a time.
type Stepper interface {
	Next(p *cursor.Position) bool
	Prev(p *cursor.Position) bool
}

// AccountingForSpecialCharacters returns the transaction with keystroke
// sentinels resolved against doc:
//
//   - a trailing tab becomes tabWidth spaces
//   - a trailing backspace widens a caret one character back and clears the content
//   - a trailing delete widens a caret one character forward and clears the content
//
// A backspace or delete on a selection that already spans text just clears
// the content. Line breaks in the resulting content are normalized to "\n".
// Literal transactions only have their line breaks normalized.
func (t Transaction) AccountingForSpecialCharacters(doc Stepper, sc SpecialCharacters, tabWidth int) Transaction {
	last := lastRune(t.Content)
	switch {
	case last == 0 || t.Literal:
	case last == sc.TabKey:
		t.Content = strings.Repeat(" ", max(tabWidth, 1))
	case last == sc.BackspaceKey:
		if t.Selection.IsSingular() {
			doc.Prev(&t.Selection.Head)
		}
		t.Content = ""
	case last == sc.DeleteKey:
		if t.Selection.IsSingular() {
			doc.Next(&t.Selection.Tail)
		}
		t.Content = ""
	}
	t.Content = normalizeLineEndings(t.Content)
	return t
}

func lastRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// normalizeLineEndings converts CRLF and CR line breaks to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
