package engine

import "golang.org/x/image/math/fixed"

// View is the read-only face of a Document. Renderers and scripts that
// must not edit hold a View instead of the Document itself.
type View interface {
	NumRows() int
	NumColumns(row int) int
	Line(row int) string
	Tags(row int) []int
	Text() string
	Selections() []Selection
	CharacterAt(p Position) rune
	SelectionContent(s Selection) (string, error)

	LineHeight() fixed.Int26_6
	Glyphs(row, tag int, withTrailingSpace bool) []Glyph
	GlyphBounds(p Position) (fixed.Rectangle26_6, error)
	RowsIntersecting(area fixed.Rectangle26_6) Span
	IndexNearestPosition(pt fixed.Point26_6) Position
	Bounds() fixed.Rectangle26_6
}

var _ View = (*Document)(nil)
