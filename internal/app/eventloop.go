package app

import (
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/renderer/backend"
)

// wheelStep is the number of rows one wheel notch scrolls.
const wheelStep = 3

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	default:
		return nil
	}
}

// resize lays the view out above the status line.
func (app *Application) resize(width, height int) {
	app.width, app.height = width, height
	app.view.SetBounds(0, 0, width, max(height-1, 0))
}

// handleKeyEvent runs the bound command, or inserts a typed character.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	if command, ok := app.keymap.Lookup(ev); ok {
		return app.execute(command)
	}
	if ev.Key == backend.KeyRune && !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt) {
		app.quitArmed = false
		return app.insert(string(ev.Rune))
	}
	return nil
}

// handleMouseEvent places a caret on click; alt-click adds one. The wheel
// scrolls the view.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		app.view.ScrollBy(-wheelStep)
		return nil
	case backend.MouseWheelDown:
		app.view.ScrollBy(wheelStep)
		return nil
	case backend.MouseLeft:
	default:
		return nil
	}

	p, ok := app.view.ScreenToBuffer(ev.MouseX, ev.MouseY)
	if !ok {
		return nil
	}
	doc := app.doc.Engine
	app.doc.History.Break()
	if ev.Mod.Has(backend.ModAlt) {
		_, err := doc.AddSelection(cursor.NewCaret(p))
		return err
	}
	return doc.SetSelections([]engine.Selection{cursor.NewCaret(p)})
}
