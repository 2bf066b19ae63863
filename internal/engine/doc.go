// Package engine provides the text document core: a Document holding lines
// of text, an ordered list of selections, and the font parameters needed
// to answer geometry queries.
//
// The engine package serves as the main facade over several sub-packages:
//
//   - cursor: Position, Span and the Selection algebra (pull/push)
//   - buffer: the line store with style tags and cached glyph layout
//   - outline: boundary tracing for selection highlights
//   - history: an undo stack built on reciprocal transactions
//
// # Transactions
//
// Every edit is a Transaction: replace the text under a selection with new
// content. Fulfilling a transaction returns its reciprocal, a transaction
// that undoes it. Undo and redo therefore need no separate command types:
//
//	doc := engine.New(engine.WithContent("abc\ndef"))
//
//	t := engine.NewTransaction(cursor.NewCaret(cursor.Pos(0, 1)), "X")
//	r, _ := doc.Fulfill(t)  // "aXbc\ndef"
//	doc.Fulfill(r)          // "abc\ndef"
//
// Every tracked selection is adjusted on every edit, so multiple carets
// stay on the same characters while others type.
//
// # Keystrokes
//
// Content ending in one of the configured sentinel characters is
// interpreted as a keystroke: tab inserts spaces, backspace and delete
// remove one character next to a caret. See SpecialCharacters.
//
//	sc := doc.SpecialCharacters()
//	doc.Perform(0, sc.Backspace(sel))
//
// # Navigation
//
// Navigation is a pure query. NavigatedSelections maps the current
// selections and returns them; the caller installs the result:
//
//	next, err := doc.NavigatedSelections(engine.ForwardByWord, false)
//	if err == nil {
//		err = doc.SetSelections(next)
//	}
//
// # Geometry
//
// Glyph positions come from a golang.org/x/image/font Face and are
// expressed in 26.6 fixed point. Row r spans [r*LineHeight, (r+1)*LineHeight)
// vertically.
//
// # Errors
//
// Operations never clamp invalid input. A position outside the document
// yields ErrInvalidPosition (wrapped in a *PositionError) and the document
// is left unchanged.
//
// # Thread Safety
//
// A Document is not safe for concurrent use.
package engine
