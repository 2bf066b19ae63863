// Package history records edits made through a Document and undoes them by
// fulfilling their reciprocal transactions.
//
// # Steps and groups
//
// Every recorded edit is a Step: the index of the selection it was
// performed for, the transaction that makes the edit and the reciprocal
// that reverts it. Steps are collected into Groups, the unit of undo.
//
//	h := history.New(doc)
//	h.InsertAtSelections("x")
//	h.Undo()
//	h.Redo()
//
// Undoing a group fulfills the reverse transaction of each step, last step
// first, and keeps the reciprocal Fulfill returns as the step's new forward
// transaction. Redo runs the same exchange in step order.
//
// # Grouping
//
// Edits between BeginGroup and EndGroup undo together:
//
//	h.BeginGroup("Replace All")
//	// ... multiple edits ...
//	h.EndGroup()
//
// Outside an explicit group, edits arriving within the coalescing window of
// the previous one join its group, so a burst of typing undoes as a whole.
package history
