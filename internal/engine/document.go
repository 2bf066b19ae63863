package engine

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a row/column position.
	Position = cursor.Position

	// Selection is a head/tail text range.
	Selection = cursor.Selection

	// Span is a half-open row or column range.
	Span = cursor.Span

	// Glyph is a positioned character.
	Glyph = buffer.Glyph
)

// AnyTag disables style tag filtering in glyph queries.
const AnyTag = buffer.AnyTag

// Document is the text model of one editor: lines, the ordered list of
// selections, and the font parameters geometry queries are answered with.
//
// A Document is not safe for concurrent use. Every mutation runs to
// completion before the next operation starts.
type Document struct {
	lines      *buffer.Lines
	selections *cursor.Set

	lineSpacing float64
	tabWidth    int
	special     SpecialCharacters
	logger      *logging.Logger

	// bounds memoizes Bounds; nil when stale.
	bounds *fixed.Rectangle26_6

	// Construction-time settings.
	face        font.Face
	initContent string
	layoutCache bool
}

// New creates a document holding one empty line and a caret at the origin.
func New(opts ...Option) *Document {
	d := &Document{
		lineSpacing: DefaultLineSpacing,
		tabWidth:    DefaultTabWidth,
		special:     DefaultSpecialCharacters(),
		logger:      logging.Null(),
		layoutCache: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.lines = buffer.New(
		buffer.WithFace(d.face),
		buffer.WithTabWidth(d.tabWidth),
		buffer.WithCache(d.layoutCache),
	)
	d.selections = cursor.NewSet(cursor.Selection{})
	if d.initContent != "" {
		d.ReplaceAll(d.initContent)
	}
	return d
}

// ReplaceAll replaces the whole text and resets the selections to a
// single caret at the origin.
func (d *Document) ReplaceAll(text string) {
	// splitLines never yields line breaks, so Reset cannot fail.
	_ = d.lines.Reset(splitLines(text))
	d.selections.Reset(cursor.Position{})
	d.invalidateBounds()
	d.logger.Debug("replaced content: %d rows", d.lines.NumRows())
}

// Text returns the whole document with rows joined by "\n".
func (d *Document) Text() string {
	return d.lines.Text()
}

// NumRows returns the number of rows. A document always has at least one.
func (d *Document) NumRows() int {
	return d.lines.NumRows()
}

// NumColumns returns the number of characters on row, or 0 if row is out
// of range.
func (d *Document) NumColumns(row int) int {
	return d.lines.NumColumns(row)
}

// Line returns the text of row, or "" if row is out of range.
func (d *Document) Line(row int) string {
	return d.lines.Get(row)
}

// Tags returns the style tags of row, one per character.
func (d *Document) Tags(row int) []int {
	return d.lines.Tags(row)
}

// LastPosition returns the position after the last character.
func (d *Document) LastPosition() Position {
	last := d.lines.NumRows() - 1
	return Position{Row: last, Col: d.lines.NumColumns(last)}
}

// CharacterAt returns the character at p. The end of a row that has a
// successor reads as '\n'; the end of the document and invalid positions
// read as 0.
func (d *Document) CharacterAt(p Position) rune {
	if p.Row < 0 || p.Row >= d.lines.NumRows() || p.Col < 0 {
		return 0
	}
	if r, ok := d.lines.RuneAt(p.Row, p.Col); ok {
		return r
	}
	if p.Col == d.lines.NumColumns(p.Row) && p.Row < d.lines.NumRows()-1 {
		return '\n'
	}
	return 0
}

// Selections returns a copy of the tracked selections in order.
func (d *Document) Selections() []Selection {
	return d.selections.All()
}

// NumSelections returns the number of tracked selections.
func (d *Document) NumSelections() int {
	return d.selections.Len()
}

// Selection returns the selection at index.
func (d *Document) Selection(index int) (Selection, error) {
	s, ok := d.selections.Get(index)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %d", ErrSelectionIndex, index)
	}
	return s, nil
}

// SetSelections replaces every tracked selection.
// Nothing changes unless every selection is valid.
func (d *Document) SetSelections(sels []Selection) error {
	if len(sels) == 0 {
		return ErrNoSelections
	}
	for _, s := range sels {
		if err := d.validateSelection("set selections", s); err != nil {
			return err
		}
	}
	d.selections.SetAll(sels)
	return nil
}

// SetSelection replaces the selection at index.
func (d *Document) SetSelection(index int, s Selection) error {
	if _, ok := d.selections.Get(index); !ok {
		return fmt.Errorf("%w: %d", ErrSelectionIndex, index)
	}
	if err := d.validateSelection("set selection", s); err != nil {
		return err
	}
	d.selections.Replace(index, s)
	return nil
}

// AddSelection appends a selection and returns its index.
func (d *Document) AddSelection(s Selection) (int, error) {
	if err := d.validateSelection("add selection", s); err != nil {
		return 0, err
	}
	d.selections.Add(s)
	return d.selections.Len() - 1, nil
}

// SelectionContent returns the text covered by s, rows joined by "\n".
func (d *Document) SelectionContent(s Selection) (string, error) {
	if err := d.validateSelection("selection content", s); err != nil {
		return "", err
	}
	return d.content(s), nil
}

// content assumes s is valid.
func (d *Document) content(s Selection) string {
	o := s.Oriented()
	h, t := o.Head, o.Tail

	if h.Row == t.Row {
		return string(d.lines.Runes(h.Row)[h.Col:t.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(d.lines.Runes(h.Row)[h.Col:]))
	for row := h.Row + 1; row < t.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(d.lines.Get(row))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines.Runes(t.Row)[:t.Col]))
	return sb.String()
}

// SpecialCharacters returns the keystroke sentinels in effect.
func (d *Document) SpecialCharacters() SpecialCharacters {
	return d.special
}

// SetSpecialCharacters replaces the keystroke sentinels. Transactions
// already fulfilled are unaffected.
func (d *Document) SetSpecialCharacters(sc SpecialCharacters) {
	d.special = sc
}

// TabWidth returns the tab width.
func (d *Document) TabWidth() int {
	return d.tabWidth
}

// SetTabWidth changes the tab width for layout and tab keystrokes.
func (d *Document) SetTabWidth(width int) {
	if width <= 0 {
		return
	}
	d.tabWidth = width
	d.lines.SetTabWidth(width)
	d.invalidateBounds()
}

// Face returns the font face used for geometry.
func (d *Document) Face() font.Face {
	return d.lines.Face()
}

// SetFace changes the font face.
func (d *Document) SetFace(face font.Face) {
	d.lines.SetFace(face)
	d.invalidateBounds()
}

// LineSpacing returns the line height multiplier.
func (d *Document) LineSpacing() float64 {
	return d.lineSpacing
}

// SetLineSpacing changes the line height multiplier.
func (d *Document) SetLineSpacing(spacing float64) {
	if spacing <= 0 {
		return
	}
	d.lineSpacing = spacing
	d.invalidateBounds()
}

// SetLayoutCache turns the glyph layout cache on or off. Results are the
// same either way.
func (d *Document) SetLayoutCache(enabled bool) {
	d.lines.SetCacheEnabled(enabled)
}

// LayoutStats returns glyph layout cache counters.
func (d *Document) LayoutStats() buffer.CacheStats {
	return d.lines.CacheStats()
}

// ClearStyleTags resets the style tags of every row in rows.
func (d *Document) ClearStyleTags(rows Span) error {
	if err := d.validateRows(rows); err != nil {
		return err
	}
	for row := rows.Start; row < rows.End; row++ {
		d.lines.ClearStyleTags(row)
	}
	return nil
}

// ApplyStyleTags tags the characters each zone covers within rows with the
// zone's Tag. Later zones win where zones overlap.
func (d *Document) ApplyStyleTags(rows Span, zones []Selection) error {
	if err := d.validateRows(rows); err != nil {
		return err
	}
	for row := rows.Start; row < rows.End; row++ {
		for _, z := range zones {
			d.lines.ApplyStyleTags(row, z)
		}
	}
	return nil
}

func (d *Document) validateRows(rows Span) error {
	if rows.Start < 0 || rows.End > d.lines.NumRows() || rows.Start > rows.End {
		return fmt.Errorf("rows %s: %w", rows, ErrInvalidRow)
	}
	return nil
}

func (d *Document) validatePosition(op string, p Position) error {
	if !p.IsValid(d) {
		return &PositionError{Op: op, Pos: p, Err: ErrInvalidPosition}
	}
	return nil
}

func (d *Document) validateSelection(op string, s Selection) error {
	if err := d.validatePosition(op, s.Head); err != nil {
		return err
	}
	return d.validatePosition(op, s.Tail)
}

func (d *Document) invalidateBounds() {
	d.bounds = nil
}

// splitLines normalizes line breaks and splits text into rows.
func splitLines(text string) []string {
	return strings.Split(normalizeLineEndings(text), "\n")
}
