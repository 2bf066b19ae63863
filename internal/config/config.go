package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/logging"
)

// Config holds every user-facing setting.
// Section structs are plain values; copy a Config to snapshot it.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Gutter GutterConfig `toml:"gutter" yaml:"gutter"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig configures the document and its history.
type EditorConfig struct {
	// TabWidth is both the tab stop width and the number of spaces a tab
	// keystroke inserts.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// LineSpacing is the line height as a multiple of the font height.
	LineSpacing float64 `toml:"line_spacing" yaml:"line_spacing"`

	// LayoutCache enables the per-line glyph layout cache.
	LayoutCache bool `toml:"layout_cache" yaml:"layout_cache"`

	// TabKey, BackspaceKey and DeleteKey name the keystroke sentinels: a
	// single character, a name (tab, backspace, delete, none) or U+XXXX.
	TabKey       string `toml:"tab_key" yaml:"tab_key"`
	BackspaceKey string `toml:"backspace_key" yaml:"backspace_key"`
	DeleteKey    string `toml:"delete_key" yaml:"delete_key"`

	// UndoLimit caps the number of undo groups kept.
	UndoLimit int `toml:"undo_limit" yaml:"undo_limit"`

	// CoalesceMillis is the window within which consecutive edits undo
	// together. Zero disables coalescing.
	CoalesceMillis int `toml:"coalesce_ms" yaml:"coalesce_ms"`
}

// GutterConfig configures the line number gutter.
type GutterConfig struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	Relative  bool `toml:"relative" yaml:"relative"`
	MinWidth  int  `toml:"min_width" yaml:"min_width"`
	CacheSize int  `toml:"cache_size" yaml:"cache_size"`
}

// ThemeConfig holds hex colors (#rrggbb). An empty Selection is derived
// from Background and Foreground.
type ThemeConfig struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	Selection  string `toml:"selection" yaml:"selection"`
	Caret      string `toml:"caret" yaml:"caret"`
	Gutter     string `toml:"gutter" yaml:"gutter"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File is a path to append logs to. Empty logs to stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:       engine.DefaultTabWidth,
			LineSpacing:    engine.DefaultLineSpacing,
			LayoutCache:    true,
			TabKey:         "tab",
			BackspaceKey:   "backspace",
			DeleteKey:      "delete",
			UndoLimit:      history.DefaultMaxEntries,
			CoalesceMillis: int(history.DefaultCoalesceWindow / time.Millisecond),
		},
		Gutter: GutterConfig{
			Enabled:   true,
			MinWidth:  3,
			CacheSize: 256,
		},
		Theme: ThemeConfig{
			Foreground: "#d0d0d0",
			Background: "#1c1c1c",
			Caret:      "#ffaf00",
			Gutter:     "#6c6c6c",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every setting and returns all failures joined; each
// failure is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	e := c.Editor
	if e.TabWidth < 1 || e.TabWidth > 16 {
		fail("editor.tab_width", "must be between 1 and 16", e.TabWidth)
	}
	if e.LineSpacing < 0.5 || e.LineSpacing > 4 {
		fail("editor.line_spacing", "must be between 0.5 and 4", e.LineSpacing)
	}
	if e.UndoLimit < 1 {
		fail("editor.undo_limit", "must be positive", e.UndoLimit)
	}
	if e.CoalesceMillis < 0 {
		fail("editor.coalesce_ms", "must not be negative", e.CoalesceMillis)
	}
	for path, key := range map[string]string{
		"editor.tab_key":       e.TabKey,
		"editor.backspace_key": e.BackspaceKey,
		"editor.delete_key":    e.DeleteKey,
	} {
		if _, err := ParseKey(key); err != nil {
			fail(path, err.Error(), key)
		}
	}

	if c.Gutter.MinWidth < 1 {
		fail("gutter.min_width", "must be positive", c.Gutter.MinWidth)
	}
	if c.Gutter.CacheSize < 0 {
		fail("gutter.cache_size", "must not be negative", c.Gutter.CacheSize)
	}

	for path, hex := range map[string]string{
		"theme.foreground": c.Theme.Foreground,
		"theme.background": c.Theme.Background,
		"theme.caret":      c.Theme.Caret,
		"theme.gutter":     c.Theme.Gutter,
	} {
		if _, err := parseColor(hex); err != nil {
			fail(path, "not a #rrggbb color", hex)
		}
	}
	if c.Theme.Selection != "" {
		if _, err := parseColor(c.Theme.Selection); err != nil {
			fail("theme.selection", "not a #rrggbb color", c.Theme.Selection)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", "unknown level", c.Log.Level)
	}

	if len(errs) == 0 {
		return nil
	}
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].(*ValidationError).Path < errs[j].(*ValidationError).Path
	})
	return errors.Join(errs...)
}

// ParseKey parses a sentinel key setting. The empty string and "none"
// yield 0, which disables the sentinel.
func ParseKey(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return 0, nil
	case "tab":
		return '\t', nil
	case "backspace":
		return '\b', nil
	case "delete":
		return 0x7f, nil
	}
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		n, err := strconv.ParseUint(rest, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, fmt.Errorf("invalid code point %q", s)
		}
		return rune(n), nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("key %q is not a single character", s)
}

// SpecialCharacters returns the configured keystroke sentinels.
func (c *Config) SpecialCharacters() (engine.SpecialCharacters, error) {
	var sc engine.SpecialCharacters
	var err error
	if sc.TabKey, err = ParseKey(c.Editor.TabKey); err != nil {
		return sc, fmt.Errorf("editor.tab_key: %w", err)
	}
	if sc.BackspaceKey, err = ParseKey(c.Editor.BackspaceKey); err != nil {
		return sc, fmt.Errorf("editor.backspace_key: %w", err)
	}
	if sc.DeleteKey, err = ParseKey(c.Editor.DeleteKey); err != nil {
		return sc, fmt.Errorf("editor.delete_key: %w", err)
	}
	return sc, nil
}

// DocumentOptions returns the engine options for a new document.
// c is assumed to be valid.
func (c *Config) DocumentOptions() []engine.Option {
	sc, _ := c.SpecialCharacters()
	return []engine.Option{
		engine.WithTabWidth(c.Editor.TabWidth),
		engine.WithLineSpacing(c.Editor.LineSpacing),
		engine.WithLayoutCache(c.Editor.LayoutCache),
		engine.WithSpecialCharacters(sc),
	}
}

// ApplyTo updates the settings of an existing document that can change
// without recreating it.
func (c *Config) ApplyTo(doc *engine.Document) {
	doc.SetTabWidth(c.Editor.TabWidth)
	doc.SetLineSpacing(c.Editor.LineSpacing)
	doc.SetLayoutCache(c.Editor.LayoutCache)
	if sc, err := c.SpecialCharacters(); err == nil {
		doc.SetSpecialCharacters(sc)
	}
}

// HistoryOptions returns the options for a document history.
func (c *Config) HistoryOptions() []history.Option {
	return []history.Option{
		history.WithMaxEntries(c.Editor.UndoLimit),
		history.WithCoalesceWindow(time.Duration(c.Editor.CoalesceMillis) * time.Millisecond),
	}
}

// LogLevel returns the configured log level, or info if it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
