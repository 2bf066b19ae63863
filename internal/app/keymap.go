package app

import (
	"github.com/dshills/textcore/internal/renderer/backend"
)

// Chord identifies a keystroke with its modifiers.
type Chord struct {
	Key  backend.Key
	Rune rune
	Mod  backend.ModMask
}

// chordMods are the modifiers bindings distinguish.
const chordMods = backend.ModShift | backend.ModCtrl | backend.ModAlt

// ChordOf returns the chord of a key event. Shift is dropped from rune
// keys, whose rune already carries the case.
func ChordOf(ev backend.Event) Chord {
	c := Chord{Key: ev.Key, Mod: ev.Mod & chordMods}
	switch ev.Key {
	case backend.KeyRune:
		c.Rune = ev.Rune
		c.Mod &^= backend.ModShift
	case backend.KeyCtrl:
		c.Rune = ev.Rune
		c.Mod &^= backend.ModCtrl
	}
	return c
}

// Key returns a chord for a named key.
func Key(k backend.Key, mod backend.ModMask) Chord {
	return Chord{Key: k, Mod: mod}
}

// Ctrl returns a chord for a control letter.
func Ctrl(r rune) Chord {
	return Chord{Key: backend.KeyCtrl, Rune: r}
}

// Keymap binds chords to command names.
type Keymap struct {
	bindings map[Chord]string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[Chord]string)}
}

// DefaultKeymap returns the built-in bindings. Arrow keys move every
// selection; with shift they extend it instead.
func DefaultKeymap() *Keymap {
	k := NewKeymap()

	moves := []struct {
		chord Chord
		nav   string
	}{
		{Key(backend.KeyLeft, 0), "backwardByChar"},
		{Key(backend.KeyRight, 0), "forwardByChar"},
		{Key(backend.KeyUp, 0), "backwardByLine"},
		{Key(backend.KeyDown, 0), "forwardByLine"},
		{Key(backend.KeyLeft, backend.ModCtrl), "backwardByWord"},
		{Key(backend.KeyRight, backend.ModCtrl), "forwardByWord"},
		{Key(backend.KeyLeft, backend.ModAlt), "backwardByWord"},
		{Key(backend.KeyRight, backend.ModAlt), "forwardByWord"},
		{Key(backend.KeyHome, 0), "toLineStart"},
		{Key(backend.KeyEnd, 0), "toLineEnd"},
	}
	for _, m := range moves {
		k.Bind(m.chord, "cursor."+m.nav)
		shifted := m.chord
		shifted.Mod |= backend.ModShift
		k.Bind(shifted, "select."+m.nav)
	}

	k.Bind(Ctrl('a'), "select.wholeDocument")
	k.Bind(Ctrl('l'), "select.wholeLine")
	k.Bind(Ctrl('w'), "select.wholeWord")
	k.Bind(Ctrl('d'), "cursor.addBelow")
	k.Bind(Key(backend.KeyEscape, 0), "cursor.collapse")

	k.Bind(Key(backend.KeyEnter, 0), "edit.newline")
	k.Bind(Key(backend.KeyTab, 0), "edit.tab")
	k.Bind(Key(backend.KeyBackspace, 0), "edit.backspace")
	k.Bind(Key(backend.KeyDelete, 0), "edit.delete")
	k.Bind(Ctrl('z'), "edit.undo")
	k.Bind(Ctrl('y'), "edit.redo")

	k.Bind(Key(backend.KeyPageUp, 0), "view.pageUp")
	k.Bind(Key(backend.KeyPageDown, 0), "view.pageDown")

	k.Bind(Ctrl('s'), "file.save")
	k.Bind(Ctrl('q'), "app.quit")
	return k
}

// Bind binds c to command, replacing any previous binding.
func (k *Keymap) Bind(c Chord, command string) {
	k.bindings[c] = command
}

// Unbind removes the binding of c.
func (k *Keymap) Unbind(c Chord) {
	delete(k.bindings, c)
}

// Lookup returns the command bound to the key event.
func (k *Keymap) Lookup(ev backend.Event) (string, bool) {
	command, ok := k.bindings[ChordOf(ev)]
	return command, ok
}
