package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/logging"
)

func newTestState(t *testing.T, text string, opts ...Option) (*engine.Document, *State) {
	t.Helper()
	doc := engine.New(engine.WithContent(text))
	s := New(history.New(doc, history.WithCoalesceWindow(0)), opts...)
	t.Cleanup(s.Close)
	return doc, s
}

func run(t *testing.T, s *State, code string) {
	t.Helper()
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString: %v", err)
	}
}

func TestReadAPI(t *testing.T) {
	_, s := newTestState(t, "alpha\nbeta")
	run(t, s, `
		assert(doc.rows() == 2)
		assert(doc.line(2) == "beta")
		assert(doc.columns(1) == 5)
		assert(doc.text() == "alpha\nbeta")
		local sel = doc.selections()[1]
		assert(sel.head.row == 1 and sel.head.col == 1 and sel.tag == 0)
	`)
}

func TestInsertAtEveryRow(t *testing.T) {
	doc, s := newTestState(t, "a\nb\nc")
	run(t, s, `
		for i = 1, doc.rows() do
			doc.set_selection(1, i, 1)
			doc.insert("> ")
		end
	`)
	if got := doc.Text(); got != "> a\n> b\n> c" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestMultiCursorInsertAndUndo(t *testing.T) {
	doc, s := newTestState(t, "one\ntwo")
	run(t, s, `
		doc.set_selection(1, 1, 4)
		assert(doc.add_selection(2, 4) == 2)
		doc.insert(";")
		assert(doc.text() == "one;\ntwo;")
		assert(doc.undo())
		assert(doc.text() == "one\ntwo")
		assert(doc.redo())
		assert(not doc.redo())
	`)
	if got := doc.Text(); got != "one;\ntwo;" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestReplaceAndNavigate(t *testing.T) {
	doc, s := newTestState(t, "hello world")
	run(t, s, `
		doc.replace(1, 1, 1, 6, "goodbye")
		doc.set_selection(1, 1, 1)
		doc.navigate("forwardByWord", true)
	`)
	if got := doc.Text(); got != "goodbye world" {
		t.Errorf("unexpected text %q", got)
	}
	want := cursor.NewSelection(cursor.Pos(0, 7), cursor.Pos(0, 0))
	if got := doc.Selections()[0]; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestErrorsRaise(t *testing.T) {
	_, s := newTestState(t, "abc")
	tests := []struct {
		name string
		code string
		want string
	}{
		{"bad row", `doc.line(5)`, "row out of range"},
		{"bad position", `doc.set_selection(1, 1, 9)`, "set_selection"},
		{"bad index", `doc.set_selection(3, 1, 1)`, "set_selection"},
		{"unknown navigation", `doc.navigate("sideways")`, "unknown navigation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DoString(context.Background(), tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	_, s := newTestState(t, "")
	run(t, s, `
		assert(io == nil)
		assert(os == nil)
		assert(dofile == nil)
		assert(loadstring == nil)
		assert(string.upper("x") == "X")
		assert(math.max(1, 2) == 2)
	`)
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	_, s := newTestState(t, "", WithLogger(logger))
	run(t, s, `print("hello", 42)`)
	if !strings.Contains(buf.String(), "hello\t42") {
		t.Errorf("expected print output in the log, got %q", buf.String())
	}
}

func TestTimeout(t *testing.T) {
	_, s := newTestState(t, "", WithTimeout(50*time.Millisecond))
	start := time.Now()
	err := s.DoString(context.Background(), `while true do end`)
	if err == nil {
		t.Fatal("expected the loop to be interrupted")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("timeout took too long: %v", time.Since(start))
	}
}

func TestDoFileAndClose(t *testing.T) {
	doc, s := newTestState(t, "x")
	path := filepath.Join(t.TempDir(), "edit.lua")
	if err := os.WriteFile(path, []byte(`doc.set_selection(1, 1, 2) doc.insert("y")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile: %v", err)
	}
	if doc.Text() != "xy" {
		t.Errorf("unexpected text %q", doc.Text())
	}

	s.Close()
	if err := s.DoString(context.Background(), `return 1`); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
