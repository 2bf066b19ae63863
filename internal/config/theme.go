package config

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is a resolved theme.
type Palette struct {
	Foreground colorful.Color
	Background colorful.Color
	Selection  colorful.Color
	Caret      colorful.Color
	Gutter     colorful.Color
}

// selectionBlend is how far the derived selection color moves from the
// background toward the foreground.
const selectionBlend = 0.25

// Palette resolves the theme colors. A missing selection color is blended
// from the background and foreground in Lab space.
func (t ThemeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"foreground", t.Foreground, &p.Foreground},
		{"background", t.Background, &p.Background},
		{"caret", t.Caret, &p.Caret},
		{"gutter", t.Gutter, &p.Gutter},
	}
	for _, f := range fields {
		c, err := parseColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = c
	}

	if t.Selection == "" {
		p.Selection = p.Background.BlendLab(p.Foreground, selectionBlend).Clamped()
		return p, nil
	}
	c, err := parseColor(t.Selection)
	if err != nil {
		return Palette{}, fmt.Errorf("theme.selection: %w", err)
	}
	p.Selection = c
	return p, nil
}

func parseColor(hex string) (colorful.Color, error) {
	return colorful.Hex(hex)
}
