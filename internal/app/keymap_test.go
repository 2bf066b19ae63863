package app

import (
	"testing"

	"github.com/dshills/textcore/internal/renderer/backend"
)

func TestChordOf(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		want Chord
	}{
		{"rune", typed('a'), Chord{Key: backend.KeyRune, Rune: 'a'}},
		{"shifted rune", backend.Event{Key: backend.KeyRune, Rune: 'A', Mod: backend.ModShift}, Chord{Key: backend.KeyRune, Rune: 'A'}},
		{"ctrl letter", backend.Event{Key: backend.KeyCtrl, Rune: 's', Mod: backend.ModCtrl}, Ctrl('s')},
		{"shift arrow", keyEvent(backend.KeyLeft, backend.ModShift), Key(backend.KeyLeft, backend.ModShift)},
		{"meta ignored", keyEvent(backend.KeyHome, backend.ModMeta), Key(backend.KeyHome, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChordOf(tt.ev); got != tt.want {
				t.Errorf("ChordOf = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	k := DefaultKeymap()
	tests := []struct {
		ev   backend.Event
		want string
	}{
		{keyEvent(backend.KeyLeft, 0), "cursor.backwardByChar"},
		{keyEvent(backend.KeyLeft, backend.ModShift), "select.backwardByChar"},
		{keyEvent(backend.KeyRight, backend.ModCtrl|backend.ModShift), "select.forwardByWord"},
		{keyEvent(backend.KeyEnd, 0), "cursor.toLineEnd"},
		{ctrl('a'), "select.wholeDocument"},
		{ctrl('z'), "edit.undo"},
		{keyEvent(backend.KeyBackspace, 0), "edit.backspace"},
	}
	for _, tt := range tests {
		got, ok := k.Lookup(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%s) = %q, %v; want %q", tt.ev.Key, got, ok, tt.want)
		}
	}

	if _, ok := k.Lookup(typed('x')); ok {
		t.Error("plain runes should not be bound")
	}
}

func TestKeymapBind(t *testing.T) {
	k := NewKeymap()
	k.Bind(Ctrl('s'), "file.save")
	if got, _ := k.Lookup(ctrl('s')); got != "file.save" {
		t.Errorf("unexpected binding %q", got)
	}
	k.Bind(Ctrl('s'), "app.quit")
	if got, _ := k.Lookup(ctrl('s')); got != "app.quit" {
		t.Errorf("expected rebinding to replace, got %q", got)
	}
	k.Unbind(Ctrl('s'))
	if _, ok := k.Lookup(ctrl('s')); ok {
		t.Error("expected the binding to be removed")
	}
}

func TestUnknownCommand(t *testing.T) {
	a := newTestApp(t, "", "")
	a.keymap.Bind(Ctrl('k'), "cursor.sideways")
	if err := a.handleBackendEvent(ctrl('k')); err == nil {
		t.Error("expected an unknown command error")
	}
}
