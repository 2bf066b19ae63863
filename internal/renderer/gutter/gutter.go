// Package gutter formats the line-number column drawn beside a document.
//
// Labels are right-aligned and followed by one space. In relative mode
// every row except the cursor row shows its distance from the cursor row;
// the cursor row keeps its absolute number.
package gutter

import (
	"strconv"
	"strings"
)

// DefaultMinWidth is the minimum number of digit columns.
const DefaultMinWidth = 3

// DefaultCacheSize bounds the label cache.
const DefaultCacheSize = 256

// Options configures a Formatter.
type Options struct {
	MinWidth  int
	Relative  bool
	CacheSize int
}

// DefaultOptions returns absolute numbering with the default width.
func DefaultOptions() Options {
	return Options{MinWidth: DefaultMinWidth, CacheSize: DefaultCacheSize}
}

// Formatter produces gutter labels. It is safe for concurrent use.
type Formatter struct {
	opts  Options
	cache *Cache
}

// New creates a formatter.
func New(opts Options) *Formatter {
	opts.MinWidth = max(opts.MinWidth, 1)
	return &Formatter{opts: opts, cache: NewCache(opts.CacheSize)}
}

// Relative reports whether relative numbering is on.
func (f *Formatter) Relative() bool {
	return f.opts.Relative
}

// Width returns the number of cells the gutter occupies for a document
// of numRows rows, including the trailing space.
func (f *Formatter) Width(numRows int) int {
	return f.digits(numRows) + 1
}

func (f *Formatter) digits(numRows int) int {
	return max(len(strconv.Itoa(max(numRows, 1))), f.opts.MinWidth)
}

// Label returns the label of row for a document of numRows rows whose
// primary cursor is on cursorRow.
func (f *Formatter) Label(row, numRows, cursorRow int) string {
	value := row + 1
	if f.opts.Relative && row != cursorRow {
		value = row - cursorRow
		if value < 0 {
			value = -value
		}
	}
	width := f.digits(numRows)
	key := uint64(width)<<32 | uint64(uint32(value))
	return f.cache.Get(row, key, func() string {
		return pad(strconv.Itoa(value), width) + " "
	})
}

// Stats returns the label cache statistics.
func (f *Formatter) Stats() Stats {
	return f.cache.Stats()
}

// Invalidate drops cached labels from row onwards.
func (f *Formatter) Invalidate(row int) {
	f.cache.InvalidateFrom(row)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
