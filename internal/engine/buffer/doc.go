// Package buffer provides the line store behind a document: an ordered
// array of lines, each holding its characters, one style tag per
// character, and a lazily computed glyph layout.
//
// The buffer package provides:
//
//   - Row-addressed text storage (columns count runes)
//   - Per-character style tags that always match the line length
//   - Glyph positioning via golang.org/x/image/font faces
//   - A per-line layout cache that can be switched off without changing
//     any result
//
// Basic usage:
//
//	lines := buffer.New(buffer.WithFace(basicfont.Face7x13))
//	lines.Reset([]string{"hello", "world"})
//
//	// Tag "world" and read back positioned glyphs
//	lines.ApplyStyleTags(1, cursor.NewSelection(cursor.Pos(1, 0), cursor.Pos(1, 5)).WithTag(2))
//	glyphs := lines.Glyphs(1, fixed.I(24), 2, false)
//
// Layout Cache:
//
// Every mutation marks the affected line dirty. Geometry is recomputed the
// next time glyphs are requested; with the cache disabled it is recomputed
// on every request instead.
//
// Thread Safety:
//
// Lines is not safe for concurrent use. The owning document serializes
// all access.
package buffer
