package buffer

import (
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// AnyTag disables style tag filtering in Glyphs.
const AnyTag = -1

// Glyph is one positioned character of a line.
type Glyph struct {
	Rune    rune
	Column  int
	Tag     int
	Dot     fixed.Point26_6     // pen position on the baseline
	Advance fixed.Int26_6       // horizontal advance
	Bounds  fixed.Rectangle26_6 // line box: ascent to descent, pen to pen+advance
}

// layout holds the pen position of every column of a line.
// x has one more entry than the line has characters; x[i] is the left edge
// of column i and x[len] is the line width.
type layout struct {
	x []fixed.Int26_6
}

// compute lays text out with face, expanding tabs to the next tab stop.
func compute(face font.Face, text []rune, tabWidth int) *layout {
	x := make([]fixed.Int26_6, len(text)+1)
	space := spaceAdvance(face)

	var pen fixed.Int26_6
	cells := 0
	prev := rune(-1)
	for i, r := range text {
		x[i] = pen
		var adv fixed.Int26_6
		switch {
		case r == '\t':
			stops := tabWidth - cells%tabWidth
			adv = space * fixed.Int26_6(stops)
			cells += stops
			prev = -1
		default:
			if prev >= 0 {
				pen += face.Kern(prev, r)
				x[i] = pen
			}
			a, ok := face.GlyphAdvance(r)
			if !ok {
				a, ok = face.GlyphAdvance(unicode.ReplacementChar)
			}
			if !ok {
				a = space
			}
			adv = a
			cells++
			prev = r
		}
		pen += adv
	}
	x[len(text)] = pen
	return &layout{x: x}
}

func spaceAdvance(face font.Face) fixed.Int26_6 {
	if a, ok := face.GlyphAdvance(' '); ok {
		return a
	}
	return face.Metrics().Height / 2
}

// layoutFor returns the layout of row, recomputing it when dirty or when
// caching is disabled.
func (l *Lines) layoutFor(row int) *layout {
	ln := l.lines[row]
	if l.cache && !ln.dirty && ln.layout != nil {
		l.stats.Hits++
		return ln.layout
	}
	l.stats.Misses++
	l.stats.Layouts++
	lay := compute(l.face, ln.text, l.tabWidth)
	if l.cache {
		ln.layout = lay
		ln.dirty = false
	}
	return lay
}

// Width returns the advance width of row.
func (l *Lines) Width(row int) fixed.Int26_6 {
	if row < 0 || row >= len(l.lines) {
		return 0
	}
	lay := l.layoutFor(row)
	return lay.x[len(lay.x)-1]
}

// ColumnX returns the pen position of col on row. Columns past the end of
// the line continue with space advances.
func (l *Lines) ColumnX(row, col int) fixed.Int26_6 {
	if row < 0 || row >= len(l.lines) {
		return spaceAdvance(l.face) * fixed.Int26_6(max(col, 0))
	}
	lay := l.layoutFor(row)
	n := len(lay.x) - 1
	if col <= n {
		return lay.x[max(col, 0)]
	}
	return lay.x[n] + spaceAdvance(l.face)*fixed.Int26_6(col-n)
}

// Glyphs returns the positioned glyphs of row with their pens on the given
// baseline. When tag is not AnyTag only glyphs carrying that tag are
// returned. withTrailingSpace appends a space glyph after the last column,
// which gives an end-of-line caret something to measure.
func (l *Lines) Glyphs(row int, baseline fixed.Int26_6, tag int, withTrailingSpace bool) []Glyph {
	if row < 0 || row >= len(l.lines) {
		return nil
	}
	ln := l.lines[row]
	lay := l.layoutFor(row)
	m := l.face.Metrics()

	glyph := func(col int, r rune, t int, x0, x1 fixed.Int26_6) Glyph {
		return Glyph{
			Rune:    r,
			Column:  col,
			Tag:     t,
			Dot:     fixed.Point26_6{X: x0, Y: baseline},
			Advance: x1 - x0,
			Bounds: fixed.Rectangle26_6{
				Min: fixed.Point26_6{X: x0, Y: baseline - m.Ascent},
				Max: fixed.Point26_6{X: x1, Y: baseline + m.Descent},
			},
		}
	}

	out := make([]Glyph, 0, len(ln.text)+1)
	for i, r := range ln.text {
		if tag != AnyTag && ln.tags[i] != tag {
			continue
		}
		out = append(out, glyph(i, r, ln.tags[i], lay.x[i], lay.x[i+1]))
	}
	if withTrailingSpace && (tag == AnyTag || tag == 0) {
		n := len(ln.text)
		out = append(out, glyph(n, ' ', 0, lay.x[n], lay.x[n]+spaceAdvance(l.face)))
	}
	return out
}
