package buffer

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"

	"github.com/dshills/textcore/internal/engine/cursor"
)

// line is one entry of the store.
type line struct {
	text   []rune
	tags   []int
	layout *layout
	dirty  bool
}

func newLine(text string) *line {
	r := []rune(text)
	return &line{text: r, tags: make([]int, len(r)), dirty: true}
}

// setText replaces the characters, keeping the tags of the common prefix.
func (ln *line) setText(text string) {
	r := []rune(text)
	tags := make([]int, len(r))
	copy(tags, ln.tags)
	ln.text = r
	ln.tags = tags
	ln.dirty = true
}

// CacheStats reports layout cache effectiveness.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Layouts uint64
}

// Lines is the ordered line store of a document.
// It always holds at least one line.
type Lines struct {
	lines    []*line
	face     font.Face
	tabWidth int
	cache    bool
	stats    CacheStats
}

// New creates a store holding a single empty line.
func New(opts ...Option) *Lines {
	l := &Lines{
		lines:    []*line{newLine("")},
		face:     defaultFace(),
		tabWidth: DefaultTabWidth,
		cache:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NumRows returns the number of lines.
func (l *Lines) NumRows() int {
	return len(l.lines)
}

// NumColumns returns the number of characters on row, or 0 if row is out
// of range.
func (l *Lines) NumColumns(row int) int {
	if row < 0 || row >= len(l.lines) {
		return 0
	}
	return len(l.lines[row].text)
}

// Get returns the text of row, or "" if row is out of range.
func (l *Lines) Get(row int) string {
	if row < 0 || row >= len(l.lines) {
		return ""
	}
	return string(l.lines[row].text)
}

// Runes returns a copy of the characters on row.
func (l *Lines) Runes(row int) []rune {
	if row < 0 || row >= len(l.lines) {
		return nil
	}
	out := make([]rune, len(l.lines[row].text))
	copy(out, l.lines[row].text)
	return out
}

// RuneAt returns the character at col on row without copying the line.
// It reports false when row or col is out of range.
func (l *Lines) RuneAt(row, col int) (rune, bool) {
	if row < 0 || row >= len(l.lines) {
		return 0, false
	}
	text := l.lines[row].text
	if col < 0 || col >= len(text) {
		return 0, false
	}
	return text[col], true
}

// Text returns all lines joined with "\n".
func (l *Lines) Text() string {
	var sb strings.Builder
	for i, ln := range l.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(ln.text))
	}
	return sb.String()
}

// Reset replaces the whole store. An empty slice yields one empty line.
func (l *Lines) Reset(texts []string) error {
	if err := checkLineBreaks(texts...); err != nil {
		return err
	}
	if len(texts) == 0 {
		texts = []string{""}
	}
	l.lines = make([]*line, len(texts))
	for i, text := range texts {
		l.lines[i] = newLine(text)
	}
	return nil
}

// SetText replaces the text of row.
func (l *Lines) SetText(row int, text string) error {
	if row < 0 || row >= len(l.lines) {
		return fmt.Errorf("set row %d: %w", row, ErrRowOutOfRange)
	}
	if err := checkLineBreaks(text); err != nil {
		return err
	}
	l.lines[row].setText(text)
	return nil
}

// Insert adds a line before row; row may equal NumRows to append.
func (l *Lines) Insert(row int, text string) error {
	return l.Splice(row, 0, []string{text})
}

// RemoveRange deletes count lines starting at start.
// Removing every line leaves a single empty line.
func (l *Lines) RemoveRange(start, count int) error {
	return l.Splice(start, count, nil)
}

// Splice replaces count lines starting at start with texts.
// It fails without modifying the store if the range is invalid.
func (l *Lines) Splice(start, count int, texts []string) error {
	if start < 0 || count < 0 || start+count > len(l.lines) {
		return fmt.Errorf("splice rows [%d, %d): %w", start, start+count, ErrRowOutOfRange)
	}
	if err := checkLineBreaks(texts...); err != nil {
		return err
	}

	// Replaced rows keep their line (and the tags of its unchanged prefix).
	inserted := make([]*line, len(texts))
	for i, text := range texts {
		if i < count {
			ln := l.lines[start+i]
			ln.setText(text)
			inserted[i] = ln
			continue
		}
		inserted[i] = newLine(text)
	}

	lines := make([]*line, 0, len(l.lines)-count+len(inserted))
	lines = append(lines, l.lines[:start]...)
	lines = append(lines, inserted...)
	lines = append(lines, l.lines[start+count:]...)
	if len(lines) == 0 {
		lines = append(lines, newLine(""))
	}
	l.lines = lines
	return nil
}

// Tags returns a copy of the style tags of row.
func (l *Lines) Tags(row int) []int {
	if row < 0 || row >= len(l.lines) {
		return nil
	}
	out := make([]int, len(l.lines[row].tags))
	copy(out, l.lines[row].tags)
	return out
}

// ClearStyleTags resets every tag on row to zero.
func (l *Lines) ClearStyleTags(row int) {
	if row < 0 || row >= len(l.lines) {
		return
	}
	clear(l.lines[row].tags)
}

// ApplyStyleTags sets the tag of every column sel covers on row to sel.Tag.
func (l *Lines) ApplyStyleTags(row int, sel cursor.Selection) {
	if row < 0 || row >= len(l.lines) {
		return
	}
	ln := l.lines[row]
	cols := sel.ColumnRangeOnRow(row, len(ln.text)).Intersect(cursor.Span{End: len(ln.text)})
	for c := cols.Start; c < cols.End; c++ {
		ln.tags[c] = sel.Tag
	}
}

// Face returns the font face used for layout.
func (l *Lines) Face() font.Face {
	return l.face
}

// SetFace changes the font face and marks every line dirty.
func (l *Lines) SetFace(face font.Face) {
	if face == nil {
		return
	}
	l.face = face
	l.invalidateAll()
}

// TabWidth returns the tab stop width in space advances.
func (l *Lines) TabWidth() int {
	return l.tabWidth
}

// SetTabWidth changes the tab stop width and marks every line dirty.
func (l *Lines) SetTabWidth(width int) {
	if width <= 0 || width == l.tabWidth {
		return
	}
	l.tabWidth = width
	l.invalidateAll()
}

// CacheEnabled reports whether layouts are cached between requests.
func (l *Lines) CacheEnabled() bool {
	return l.cache
}

// SetCacheEnabled turns the layout cache on or off.
func (l *Lines) SetCacheEnabled(enabled bool) {
	l.cache = enabled
	if !enabled {
		for _, ln := range l.lines {
			ln.layout = nil
			ln.dirty = true
		}
	}
}

// CacheStats returns layout cache counters.
func (l *Lines) CacheStats() CacheStats {
	return l.stats
}

func (l *Lines) invalidateAll() {
	for _, ln := range l.lines {
		ln.dirty = true
	}
}

func checkLineBreaks(texts ...string) error {
	for _, text := range texts {
		if strings.ContainsAny(text, "\r\n") {
			return fmt.Errorf("%q: %w", text, ErrLineBreak)
		}
	}
	return nil
}
