// Package script runs Lua scripts against a document.
//
// Scripts see a global table named doc. Rows and columns are 1-indexed as
// is usual in Lua; column n+1 on a row of n characters is the end of the
// row.
//
//	for i = 1, doc.rows() do
//	    doc.set_selection(1, i, 1)
//	    doc.insert("> ")
//	end
//
// Edits go through the document history, so scripts can undo and redo.
// Only the base, table, string and math libraries are available.
package script
