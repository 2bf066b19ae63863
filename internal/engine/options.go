package engine

import (
	"golang.org/x/image/font"

	"github.com/dshills/textcore/internal/logging"
)

// Default configuration values.
const (
	DefaultTabWidth    = 4
	DefaultLineSpacing = 1.25
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithFace sets the font face used for glyph geometry.
func WithFace(face font.Face) Option {
	return func(d *Document) {
		d.face = face
	}
}

// WithLineSpacing sets the line height as a multiple of the font height.
func WithLineSpacing(spacing float64) Option {
	return func(d *Document) {
		if spacing > 0 {
			d.lineSpacing = spacing
		}
	}
}

// WithTabWidth sets both the tab stop width used for layout and the number
// of spaces a tab keystroke inserts.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithSpecialCharacters sets the sentinel characters recognized at the end
// of transaction content.
func WithSpecialCharacters(sc SpecialCharacters) Option {
	return func(d *Document) {
		d.special = sc
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithLayoutCache enables or disables the per-line glyph layout cache.
func WithLayoutCache(enabled bool) Option {
	return func(d *Document) {
		d.layoutCache = enabled
	}
}
