package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "textcore.toml", `
[editor]
tab_width = 2
line_spacing = 1.5
delete_key = "none"

[gutter]
relative = true

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != 2 || cfg.Editor.LineSpacing != 1.5 {
		t.Errorf("unexpected editor section %+v", cfg.Editor)
	}
	if !cfg.Gutter.Relative || !cfg.Gutter.Enabled {
		t.Errorf("expected file values merged over defaults, got %+v", cfg.Gutter)
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("expected debug level, got %s", cfg.LogLevel())
	}

	sc, err := cfg.SpecialCharacters()
	if err != nil {
		t.Fatal(err)
	}
	if sc.DeleteKey != 0 || sc.TabKey != '\t' || sc.BackspaceKey != '\b' {
		t.Errorf("unexpected sentinels %+v", sc)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "textcore.yml", `
editor:
  tab_width: 8
  backspace_key: "U+0008"
theme:
  selection: "#334455"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("expected tab width 8, got %d", cfg.Editor.TabWidth)
	}
	if cfg.Theme.Selection != "#334455" {
		t.Errorf("unexpected selection color %q", cfg.Theme.Selection)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != engine.DefaultTabWidth {
		t.Errorf("expected defaults, got %+v", cfg.Editor)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != engine.DefaultTabWidth {
		t.Errorf("expected default tab width, got %d", cfg.Editor.TabWidth)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		file  string
		body  string
		check func(error) bool
	}{
		{"unknown extension", "config.ini", "x=1", func(err error) bool { return errors.Is(err, ErrUnknownFormat) }},
		{"toml syntax", "bad.toml", "[editor\ntab_width = 2", func(err error) bool {
			var perr *ParseError
			return errors.As(err, &perr) && perr.Line > 0
		}},
		{"toml unknown key", "typo.toml", "[editor]\ntab_widht = 2", func(err error) bool {
			var perr *ParseError
			return errors.As(err, &perr)
		}},
		{"yaml unknown key", "typo.yaml", "editor:\n  tabwidth: 2\n", func(err error) bool {
			var perr *ParseError
			return errors.As(err, &perr)
		}},
		{"invalid value", "range.toml", "[editor]\ntab_width = 0", func(err error) bool {
			var verr *ValidationError
			return errors.Is(err, ErrValidationFailed) && errors.As(err, &verr) && verr.Path == "editor.tab_width"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.body))
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	cfg := Default()
	cfg.Editor.TabWidth = 99
	cfg.Theme.Caret = "orange"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	var count int
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		if _, ok := e.(*ValidationError); ok {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 validation errors, got %d: %v", count, err)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"tab", '\t', false},
		{"Backspace", '\b', false},
		{"delete", 0x7f, false},
		{"none", 0, false},
		{"", 0, false},
		{"\t", '\t', false},
		{"U+001B", 0x1b, false},
		{"u+7f", 0x7f, false},
		{"é", 'é', false},
		{"U+ZZ", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKey(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TEXTCORE_TAB_WIDTH":    "6",
		"TEXTCORE_LINE_SPACING": "2",
		"TEXTCORE_LOG_LEVEL":    "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 6 || cfg.Editor.LineSpacing != 2 || cfg.Log.Level != "warn" {
		t.Errorf("environment not applied: %+v %+v", cfg.Editor, cfg.Log)
	}

	env["TEXTCORE_UNDO_LIMIT"] = "lots"
	var perr *ParseError
	if err := applyEnv(Default(), lookup); !errors.As(err, &perr) {
		t.Errorf("expected ParseError, got %v", err)
	}
}

func TestDocumentOptions(t *testing.T) {
	cfg := Default()
	cfg.Editor.TabWidth = 2
	cfg.Editor.TabKey = "none"

	doc := engine.New(cfg.DocumentOptions()...)
	if doc.TabWidth() != 2 {
		t.Errorf("expected tab width 2, got %d", doc.TabWidth())
	}
	if doc.SpecialCharacters().TabKey != 0 {
		t.Error("expected the tab sentinel disabled")
	}

	cfg.Editor.TabWidth = 3
	cfg.Editor.TabKey = "tab"
	cfg.ApplyTo(doc)
	if doc.TabWidth() != 3 {
		t.Errorf("expected ApplyTo to update tab width, got %d", doc.TabWidth())
	}
	if doc.SpecialCharacters().TabKey != '\t' {
		t.Error("expected ApplyTo to re-enable the tab sentinel")
	}
}

func TestPalette(t *testing.T) {
	p, err := Default().Theme.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if p.Background.Hex() != "#1c1c1c" {
		t.Errorf("unexpected background %s", p.Background.Hex())
	}
	// The derived selection sits between background and foreground.
	bl, _, _ := p.Background.Lab()
	sl, _, _ := p.Selection.Lab()
	fl, _, _ := p.Foreground.Lab()
	if !(bl < sl && sl < fl) {
		t.Errorf("expected selection lightness between %v and %v, got %v", bl, fl, sl)
	}

	theme := Default().Theme
	theme.Gutter = "#12"
	if _, err := theme.Palette(); err == nil {
		t.Error("expected an invalid color to fail")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "textcore.toml", "[editor]\ntab_width = 2\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	err := Watch(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	writeFile(t, dir, "other.toml", "[editor]\ntab_width = 5\n")
	writeFile(t, dir, "textcore.toml", "[editor]\ntab_width = 8\n")

	select {
	case cfg := <-reloaded:
		if cfg.Editor.TabWidth != 8 {
			t.Errorf("expected reloaded tab width 8, got %d", cfg.Editor.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
