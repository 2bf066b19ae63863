// Package view draws a read-only document into a rectangle of a terminal
// backend: an optional line-number gutter, the text with style tags and
// selection highlight, secondary carets, and the terminal cursor on the
// primary caret.
package view

import (
	"sync"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/renderer/backend"
	"github.com/dshills/textcore/internal/renderer/core"
	"github.com/dshills/textcore/internal/renderer/gutter"
)

// Theme holds the styles a View draws with.
type Theme struct {
	Text      core.Style
	Selection core.Style
	Gutter    core.Style

	// Caret marks the heads of secondary selections.
	Caret core.Style

	// Tags maps style tags to text styles. Untagged text and unknown tags
	// use Text.
	Tags map[int]core.Style
}

// DefaultTheme uses the terminal's colors with reverse video for
// selections and carets.
func DefaultTheme() Theme {
	return Theme{
		Text:      core.DefaultStyle(),
		Selection: core.DefaultStyle().With(core.AttrReverse),
		Gutter:    core.DefaultStyle().With(core.AttrDim),
		Caret:     core.DefaultStyle().With(core.AttrReverse),
	}
}

// Option configures a View.
type Option func(*View)

// WithGutter draws line numbers with f.
func WithGutter(f *gutter.Formatter) Option {
	return func(v *View) { v.gutter = f }
}

// WithTheme sets the styles.
func WithTheme(t Theme) Option {
	return func(v *View) { v.theme = t }
}

// WithTabWidth sets the tab stop interval in cells.
func WithTabWidth(width int) Option {
	return func(v *View) {
		if width > 0 {
			v.tabWidth = width
		}
	}
}

// View renders a document into a screen rectangle.
type View struct {
	mu sync.RWMutex

	doc      engine.View
	gutter   *gutter.Formatter
	theme    Theme
	tabWidth int

	x, y          int
	width, height int

	// First visible row and first visible cell of the text area.
	top, left int

	focused bool
}

// New creates a view of doc occupying the given rectangle.
func New(doc engine.View, x, y, width, height int, opts ...Option) *View {
	v := &View{
		doc:      doc,
		theme:    DefaultTheme(),
		tabWidth: engine.DefaultTabWidth,
		x:        x,
		y:        y,
		width:    width,
		height:   height,
		focused:  true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Bounds returns the view's screen rectangle.
func (v *View) Bounds() (x, y, width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.x, v.y, v.width, v.height
}

// SetBounds moves and resizes the view.
func (v *View) SetBounds(x, y, width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y, v.width, v.height = x, y, width, height
}

// Theme returns the styles in use.
func (v *View) Theme() Theme {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.theme
}

// SetTheme replaces the styles.
func (v *View) SetTheme(t Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.theme = t
}

// SetTabWidth sets the tab stop interval in cells.
func (v *View) SetTabWidth(width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width > 0 {
		v.tabWidth = width
	}
}

// SetGutter replaces the gutter formatter; nil hides the gutter.
func (v *View) SetGutter(f *gutter.Formatter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gutter = f
}

// SetFocused controls whether Render shows the terminal cursor.
func (v *View) SetFocused(focused bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = focused
}

// Scroll returns the first visible row and cell.
func (v *View) Scroll() (top, left int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.top, v.left
}

// ScrollBy moves the first visible row by delta, clamped to the document.
func (v *View) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top = max(min(v.top+delta, v.doc.NumRows()-1), 0)
}

// GutterWidth returns the number of cells the gutter occupies.
func (v *View) GutterWidth() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.gutterWidth()
}

func (v *View) gutterWidth() int {
	if v.gutter == nil {
		return 0
	}
	return min(v.gutter.Width(v.doc.NumRows()), v.width)
}

// ScrollToReveal scrolls minimally so that p is visible.
func (v *View) ScrollToReveal(p engine.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case p.Row < v.top:
		v.top = p.Row
	case p.Row >= v.top+v.height:
		v.top = p.Row - v.height + 1
	}

	textWidth := v.width - v.gutterWidth()
	if textWidth <= 0 {
		return
	}
	l := v.layout(p.Row)
	cx := l.cellOf(p.Col)
	switch {
	case cx < v.left:
		v.left = cx
	case cx >= v.left+textWidth:
		v.left = cx - textWidth + 1
	}
}

// Render draws the view.
func (v *View) Render(b backend.Backend) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	sels := v.doc.Selections()
	numRows := v.doc.NumRows()
	gw := v.gutterWidth()
	cursorRow := 0
	if len(sels) > 0 {
		cursorRow = sels[0].Head.Row
	}

	for sy := 0; sy < v.height; sy++ {
		row := v.top + sy
		if v.gutter != nil {
			v.renderGutter(b, row, numRows, cursorRow, v.y+sy, gw)
		}
		if row < numRows {
			v.renderRow(b, row, sels, v.y+sy, gw)
		} else {
			v.renderFiller(b, v.y+sy, gw)
		}
	}

	if !v.focused || len(sels) == 0 {
		b.HideCursor()
		return
	}
	if x, y, ok := v.bufferToScreen(sels[0].Head); ok {
		b.ShowCursor(x, y)
	} else {
		b.HideCursor()
	}
}

func (v *View) renderGutter(b backend.Backend, row, numRows, cursorRow, sy, gw int) {
	label := ""
	if row < numRows {
		label = v.gutter.Label(row, numRows, cursorRow)
	}
	labelRunes := []rune(label)
	for x := 0; x < gw; x++ {
		r := ' '
		if x < len(labelRunes) {
			r = labelRunes[x]
		}
		b.SetCell(v.x+x, sy, core.NewStyledCell(r, v.theme.Gutter))
	}
}

func (v *View) renderFiller(b backend.Backend, sy, gw int) {
	for x := gw; x < v.width; x++ {
		r := ' '
		if x == gw {
			r = '~'
		}
		b.SetCell(v.x+x, sy, core.NewStyledCell(r, v.theme.Gutter))
	}
}

// renderRow draws one document row. Continuation cells of a wide
// character cut by the left edge are drawn as blanks.
func (v *View) renderRow(b backend.Backend, row int, sels []engine.Selection, sy, gw int) {
	l := v.layout(row)
	tags := v.doc.Tags(row)
	numCols := v.doc.NumColumns(row)
	hl := highlights(sels, row, numCols)

	for sx := gw; sx < v.width; sx++ {
		cx := v.left + sx - gw
		if cx >= l.width() {
			style := v.theme.Text
			// The cell after the last character stands for the line break.
			if cx == l.width() && hl.newline {
				style = v.theme.Selection
			}
			b.SetCell(v.x+sx, sy, core.NewStyledCell(' ', style))
			continue
		}

		col := l.cellCol[cx]
		style := v.theme.Text
		if col < len(tags) {
			if s, ok := v.theme.Tags[tags[col]]; ok && tags[col] != 0 {
				style = s
			}
		}
		if hl.contains(col) {
			style = v.theme.Selection
		}

		cell := l.cells[cx]
		cell.Style = style
		if cell.IsContinuation() && sx == gw {
			cell = core.NewStyledCell(' ', style)
		}
		if cell.Width > 1 && sx+cell.Width > v.width {
			cell = core.NewStyledCell(' ', style)
		}
		b.SetCell(v.x+sx, sy, cell)
	}

	for _, s := range sels[min(1, len(sels)):] {
		if s.Head.Row != row {
			continue
		}
		sx := l.cellOf(s.Head.Col) - v.left + gw
		if sx < gw || sx >= v.width {
			continue
		}
		cell := core.NewStyledCell(' ', v.theme.Caret)
		if cx := sx - gw + v.left; cx < l.width() {
			cell = l.cells[cx]
			cell.Style = v.theme.Caret
		}
		b.SetCell(v.x+sx, sy, cell)
	}
}

func (v *View) layout(row int) rowLayout {
	return layoutRow(v.doc.Line(row), v.doc.NumColumns(row), v.tabWidth)
}

// rowHighlight is the union of the selected columns on one row.
type rowHighlight struct {
	spans   []engine.Span
	newline bool
}

func highlights(sels []engine.Selection, row, numCols int) rowHighlight {
	var hl rowHighlight
	for _, s := range sels {
		if s.IsSingular() {
			continue
		}
		span := s.ColumnRangeOnRow(row, numCols)
		if !span.IsEmpty() {
			hl.spans = append(hl.spans, span)
		}
		o := s.Oriented()
		if row >= o.Head.Row && row < o.Tail.Row {
			hl.newline = true
		}
	}
	return hl
}

func (h rowHighlight) contains(col int) bool {
	for _, s := range h.spans {
		if s.Contains(col) {
			return true
		}
	}
	return false
}

// ScreenToBuffer converts a screen cell to the nearest document position.
// It returns false for cells outside the text area.
func (v *View) ScreenToBuffer(sx, sy int) (engine.Position, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	gw := v.gutterWidth()
	if sx < v.x+gw || sx >= v.x+v.width || sy < v.y || sy >= v.y+v.height {
		return engine.Position{}, false
	}

	row := v.top + sy - v.y
	if last := v.doc.NumRows() - 1; row > last {
		return engine.Position{Row: last, Col: v.doc.NumColumns(last)}, true
	}
	l := v.layout(row)
	return engine.Position{Row: row, Col: l.columnAt(v.left + sx - v.x - gw)}, true
}

// BufferToScreen converts a document position to a screen cell. It
// returns false when p is scrolled out of view.
func (v *View) BufferToScreen(p engine.Position) (x, y int, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bufferToScreen(p)
}

func (v *View) bufferToScreen(p engine.Position) (x, y int, ok bool) {
	if p.Row < v.top || p.Row >= v.top+v.height {
		return 0, 0, false
	}
	gw := v.gutterWidth()
	l := v.layout(p.Row)
	sx := l.cellOf(p.Col) - v.left + gw
	if sx < gw || sx >= v.width {
		return 0, 0, false
	}
	return v.x + sx, v.y + p.Row - v.top, true
}
