package buffer

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultTabWidth is the number of space advances a tab stop spans.
const DefaultTabWidth = 4

// Option is a functional option for configuring Lines.
type Option func(*Lines)

// WithFace sets the font face used for glyph layout.
func WithFace(face font.Face) Option {
	return func(l *Lines) {
		if face != nil {
			l.face = face
		}
	}
}

// WithTabWidth sets the tab stop width in space advances.
func WithTabWidth(width int) Option {
	return func(l *Lines) {
		if width > 0 {
			l.tabWidth = width
		}
	}
}

// WithCache enables or disables the per-line layout cache.
func WithCache(enabled bool) Option {
	return func(l *Lines) {
		l.cache = enabled
	}
}

// defaultFace is the face used when none is configured.
func defaultFace() font.Face {
	return basicfont.Face7x13
}
