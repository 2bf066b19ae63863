package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
)

// execute runs a command by name. Commands named "cursor.<navigation>"
// move every selection and "select.<navigation>" extend them, for any
// navigation engine.ParseNavigation accepts.
func (app *Application) execute(command string) error {
	if command != "app.quit" {
		app.quitArmed = false
	}

	if name, ok := strings.CutPrefix(command, "cursor."); ok {
		if n, ok := engine.ParseNavigation(name); ok {
			return app.navigate(n, false)
		}
	}
	if name, ok := strings.CutPrefix(command, "select."); ok {
		if n, ok := engine.ParseNavigation(name); ok {
			return app.navigate(n, true)
		}
	}

	sc := app.doc.Engine.SpecialCharacters()
	switch command {
	case "cursor.addBelow":
		return app.addCursorBelow()
	case "cursor.collapse":
		return app.collapse()
	case "edit.newline":
		return app.insert("\n")
	case "edit.tab":
		return app.insertSentinel(sc.TabKey, "tab")
	case "edit.backspace":
		return app.insertSentinel(sc.BackspaceKey, "backspace")
	case "edit.delete":
		return app.insertSentinel(sc.DeleteKey, "delete")
	case "edit.undo":
		return app.step(app.doc.History.Undo, history.ErrNothingToUndo, "nothing to undo")
	case "edit.redo":
		return app.step(app.doc.History.Redo, history.ErrNothingToRedo, "nothing to redo")
	case "view.pageUp":
		_, _, _, h := app.view.Bounds()
		app.view.ScrollBy(-max(h, 1))
		return nil
	case "view.pageDown":
		_, _, _, h := app.view.Bounds()
		app.view.ScrollBy(max(h, 1))
		return nil
	case "file.save":
		return app.save()
	case "app.quit":
		return app.quit()
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
}

func (app *Application) navigate(n engine.Navigation, fixTail bool) error {
	doc := app.doc.Engine
	next, err := doc.NavigatedSelections(n, fixTail)
	if err != nil {
		return err
	}
	if err := doc.SetSelections(next); err != nil {
		return err
	}
	app.doc.History.Break()
	app.revealPrimary()
	return nil
}

// addCursorBelow adds a caret one row below the last selection's head.
func (app *Application) addCursorBelow() error {
	doc := app.doc.Engine
	sels := doc.Selections()
	p := sels[len(sels)-1].Head
	if !doc.NextRow(&p) {
		return nil
	}
	if _, err := doc.AddSelection(cursor.NewCaret(p)); err != nil {
		return err
	}
	app.doc.History.Break()
	return nil
}

// collapse keeps only a caret at the primary head.
func (app *Application) collapse() error {
	doc := app.doc.Engine
	head := doc.Selections()[0].Head
	app.doc.History.Break()
	return doc.SetSelections([]engine.Selection{cursor.NewCaret(head)})
}

// insert replaces every selection with text.
func (app *Application) insert(text string) error {
	if app.doc.ReadOnly {
		return ErrReadOnly
	}
	if err := app.doc.History.InsertAtSelections(text); err != nil {
		return err
	}
	app.doc.Touch()
	app.revealPrimary()
	return nil
}

// insertSentinel inserts a keystroke sentinel, which the engine resolves
// into the tab, backspace or delete edit.
func (app *Application) insertSentinel(r rune, name string) error {
	if r == 0 {
		return fmt.Errorf("%s key is disabled", name)
	}
	return app.insert(string(r))
}

func (app *Application) step(fn func() error, empty error, msg string) error {
	err := fn()
	switch {
	case errors.Is(err, empty):
		app.setStatus(msg)
		return nil
	case err != nil:
		return err
	}
	app.doc.Touch()
	app.revealPrimary()
	return nil
}

func (app *Application) save() error {
	if err := app.doc.Save(); err != nil {
		return err
	}
	app.logger.Info("saved %s", app.doc.Path)
	app.setStatus(fmt.Sprintf("wrote %s", app.doc.Path))
	return nil
}

// quit returns ErrQuit, unless there are unsaved changes and this is the
// first request in a row.
func (app *Application) quit() error {
	if app.doc.IsModified() && !app.quitArmed {
		app.quitArmed = true
		return fmt.Errorf("%w: quit again to discard them", ErrUnsavedChanges)
	}
	return ErrQuit
}

func (app *Application) revealPrimary() {
	app.view.ScrollToReveal(app.doc.Engine.Selections()[0].Head)
}
