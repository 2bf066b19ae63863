// Package cursor provides the position and selection algebra used by the
// document core.
//
// The cursor package handles:
//
//   - Row/column positions with the Position type
//   - Half-open index ranges with the Span type
//   - Text selections with a head/tail model via the Selection type
//   - Ordered selection lists with Set
//   - Position adjustment after removals and insertions (Pull and Push)
//
// Selection Model:
//
// A Selection has a head and a tail. When Head == Tail the selection is a
// caret. A selection is oriented when its head precedes or equals its tail;
// the algebra never reorders a selection unless asked to (see Oriented), so
// the direction a user dragged in is preserved.
//
// Columns count characters (runes), not bytes.
//
// Adjustment:
//
// When a region of text is removed, every other position must be pulled
// back as if the region never existed; when a region is inserted every
// later position is pushed forward. The document performs a pull followed
// by a push for every tracked selection on every single edit:
//
//	removed := cursor.NewSelection(cursor.Pos(0, 1), cursor.Pos(0, 3))
//	inserted := cursor.Measure("XY").StartingFrom(removed.Head)
//
//	p := cursor.Pos(0, 5)
//	removed.Pull(&p)   // (0:3)
//	inserted.Push(&p)  // (0:5)
//
// Thread Safety:
//
// Position, Span and Selection are immutable value types and safe for
// concurrent use. Set is not thread-safe.
package cursor
