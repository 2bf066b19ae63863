package engine

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/dshills/textcore/internal/engine/outline"
)

// LineHeight returns the distance between consecutive baselines: the font
// height scaled by the line spacing.
func (d *Document) LineHeight() fixed.Int26_6 {
	h := float64(d.lines.Face().Metrics().Height) * d.lineSpacing
	return fixed.Int26_6(math.Round(h))
}

// VerticalRangeForRow returns the top and bottom of row.
func (d *Document) VerticalRangeForRow(row int) (top, bottom fixed.Int26_6) {
	lh := d.LineHeight()
	top = lh * fixed.Int26_6(row)
	return top, top + lh
}

// baseline returns the baseline y of row.
func (d *Document) baseline(row int) fixed.Int26_6 {
	top, _ := d.VerticalRangeForRow(row)
	return top + d.lines.Face().Metrics().Ascent
}

// Glyphs returns the positioned glyphs of row on its baseline, optionally
// filtered by tag and followed by a trailing space glyph.
func (d *Document) Glyphs(row, tag int, withTrailingSpace bool) []Glyph {
	return d.lines.Glyphs(row, d.baseline(row), tag, withTrailingSpace)
}

// GlyphBounds returns the box of the character at p, spanning the full
// line height. The position after the last character measures as a space.
func (d *Document) GlyphBounds(p Position) (fixed.Rectangle26_6, error) {
	if err := d.validatePosition("glyph bounds", p); err != nil {
		return fixed.Rectangle26_6{}, err
	}
	return d.rowBox(p.Row, d.lines.ColumnX(p.Row, p.Col), d.lines.ColumnX(p.Row, p.Col+1)), nil
}

// BoundsOnRow returns the box covering cols on row. An empty span yields a
// zero-width box at its start. Columns past the end of the row return
// ErrInvalidPosition.
func (d *Document) BoundsOnRow(row int, cols Span) (fixed.Rectangle26_6, error) {
	if row < 0 || row >= d.NumRows() {
		return fixed.Rectangle26_6{}, &PositionError{Op: "bounds on row", Pos: Position{Row: row}, Err: ErrInvalidRow}
	}
	n := d.NumColumns(row)
	for _, col := range []int{cols.Start, cols.End} {
		if col < 0 || col > n {
			return fixed.Rectangle26_6{}, &PositionError{Op: "bounds on row", Pos: Position{Row: row, Col: col}, Err: ErrInvalidPosition}
		}
	}
	return d.rowBox(row, d.lines.ColumnX(row, cols.Start), d.lines.ColumnX(row, max(cols.Start, cols.End))), nil
}

func (d *Document) rowBox(row int, x0, x1 fixed.Int26_6) fixed.Rectangle26_6 {
	top, bottom := d.VerticalRangeForRow(row)
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: x0, Y: top},
		Max: fixed.Point26_6{X: x1, Y: bottom},
	}
}

// RowsIntersecting returns the rows whose vertical range overlaps area,
// clamped to the document.
func (d *Document) RowsIntersecting(area fixed.Rectangle26_6) Span {
	lh := d.LineHeight()
	n := d.NumRows()
	if lh <= 0 || area.Max.Y <= area.Min.Y {
		return Span{}
	}
	start := int(area.Min.Y / lh)
	end := int((area.Max.Y + lh - 1) / lh)
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return Span{Start: start, End: end}
}

// GlyphsIntersecting returns the glyphs whose boxes overlap area, filtered
// by tag (AnyTag for all).
func (d *Document) GlyphsIntersecting(area fixed.Rectangle26_6, tag int) []Glyph {
	rows := d.RowsIntersecting(area)
	var out []Glyph
	for row := rows.Start; row < rows.End; row++ {
		for _, g := range d.Glyphs(row, tag, false) {
			if !g.Bounds.Intersect(area).Empty() {
				out = append(out, g)
			}
		}
	}
	return out
}

// IndexNearestPosition returns the character boundary closest to pt.
// Points above or below the text map to the first or last row.
func (d *Document) IndexNearestPosition(pt fixed.Point26_6) Position {
	lh := d.LineHeight()
	row := 0
	if lh > 0 && pt.Y > 0 {
		row = int(pt.Y / lh)
	}
	row = min(max(row, 0), d.NumRows()-1)

	n := d.NumColumns(row)
	best, bestDist := 0, fixed.Int26_6(math.MaxInt32)
	for col := 0; col <= n; col++ {
		dist := d.lines.ColumnX(row, col) - pt.X
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = col, dist
		}
	}
	return Position{Row: row, Col: best}
}

// Bounds returns the box enclosing every row, including room for a caret
// after the longest row. The result is memoized until the next edit or
// font change.
func (d *Document) Bounds() fixed.Rectangle26_6 {
	if d.bounds != nil {
		return *d.bounds
	}
	var width fixed.Int26_6
	for row := 0; row < d.NumRows(); row++ {
		width = max(width, d.lines.ColumnX(row, d.NumColumns(row)+1))
	}
	_, bottom := d.VerticalRangeForRow(d.NumRows() - 1)
	b := fixed.Rectangle26_6{Max: fixed.Point26_6{X: width, Y: bottom}}
	d.bounds = &b
	return b
}

// SelectionRectangles returns one highlight box per row s touches. Rows
// the selection continues past include one space for the line break. A
// caret yields no boxes.
func (d *Document) SelectionRectangles(s Selection) ([]fixed.Rectangle26_6, error) {
	if err := d.validateSelection("selection rectangles", s); err != nil {
		return nil, err
	}
	if s.IsSingular() {
		return nil, nil
	}
	o := s.Oriented()
	var rects []fixed.Rectangle26_6
	for row := o.Head.Row; row <= o.Tail.Row; row++ {
		cols := o.ColumnRangeOnRow(row, d.NumColumns(row))
		end := cols.End
		if row < o.Tail.Row {
			end++
		}
		rects = append(rects, d.rowBox(row, d.lines.ColumnX(row, cols.Start), d.lines.ColumnX(row, end)))
	}
	return rects, nil
}

// SelectionOutline returns the outline of s as a single polygon.
// It returns ErrUnsupportedGeometry when the rows of s do not overlap
// horizontally, for example a two-row selection whose tail column lies
// left of its head column.
func (d *Document) SelectionOutline(s Selection) (outline.Path, error) {
	rects, err := d.SelectionRectangles(s)
	if err != nil {
		return outline.Path{}, err
	}
	return outline.Trace(rects)
}
