package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
)

// docModule implements the doc API table.
type docModule struct {
	history *history.History
}

func registerDocModule(L *lua.LState, h *history.History) {
	m := &docModule{history: h}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"rows":          m.rows,
		"columns":       m.columns,
		"line":          m.line,
		"text":          m.text,
		"selections":    m.selections,
		"set_selection": m.setSelection,
		"add_selection": m.addSelection,
		"navigate":      m.navigate,
		"insert":        m.insert,
		"replace":       m.replace,
		"undo":          m.undo,
		"redo":          m.redo,
	})
	L.SetGlobal("doc", mod)
}

func (m *docModule) doc() *engine.Document {
	return m.history.Document()
}

// rows() -> number
func (m *docModule) rows(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc().NumRows()))
	return 1
}

// columns(row) -> number
// Returns the number of characters on row.
func (m *docModule) columns(L *lua.LState) int {
	row := m.checkRow(L, 1)
	L.Push(lua.LNumber(m.doc().NumColumns(row)))
	return 1
}

// line(row) -> string
func (m *docModule) line(L *lua.LState) int {
	row := m.checkRow(L, 1)
	L.Push(lua.LString(m.doc().Line(row)))
	return 1
}

// text() -> string
func (m *docModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.doc().Text()))
	return 1
}

// selections() -> {{head={row,col}, tail={row,col}, tag=n}, ...}
func (m *docModule) selections(L *lua.LState) int {
	list := L.NewTable()
	for _, s := range m.doc().Selections() {
		t := L.NewTable()
		L.SetField(t, "head", positionTable(L, s.Head))
		L.SetField(t, "tail", positionTable(L, s.Tail))
		L.SetField(t, "tag", lua.LNumber(s.Tag))
		list.Append(t)
	}
	L.Push(list)
	return 1
}

// set_selection(index, row, col [, tail_row, tail_col])
func (m *docModule) setSelection(L *lua.LState) int {
	index := L.CheckInt(1) - 1
	s := checkSelection(L, 2)
	if err := m.doc().SetSelection(index, s); err != nil {
		L.RaiseError("set_selection: %v", err)
	}
	return 0
}

// add_selection(row, col [, tail_row, tail_col]) -> index
func (m *docModule) addSelection(L *lua.LState) int {
	s := checkSelection(L, 1)
	index, err := m.doc().AddSelection(s)
	if err != nil {
		L.RaiseError("add_selection: %v", err)
		return 0
	}
	L.Push(lua.LNumber(index + 1))
	return 1
}

// navigate(name [, fix_tail])
// Moves every selection, e.g. navigate("forwardByWord").
func (m *docModule) navigate(L *lua.LState) int {
	n, ok := engine.ParseNavigation(L.CheckString(1))
	if !ok {
		L.ArgError(1, "unknown navigation")
		return 0
	}
	fixTail := L.OptBool(2, false)
	next, err := m.doc().NavigatedSelections(n, fixTail)
	if err == nil {
		err = m.doc().SetSelections(next)
	}
	if err != nil {
		L.RaiseError("navigate: %v", err)
	}
	return 0
}

// insert(text)
// Replaces every selection with text.
func (m *docModule) insert(L *lua.LState) int {
	if err := m.history.InsertAtSelections(L.CheckString(1)); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// replace(row, col, tail_row, tail_col, text)
// Replaces the given range through the primary selection.
func (m *docModule) replace(L *lua.LState) int {
	s := cursor.NewSelection(checkPosition(L, 1), checkPosition(L, 3))
	text := L.CheckString(5)
	if _, err := m.history.Perform(0, engine.NewTransaction(s, text)); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

// undo() -> bool
func (m *docModule) undo(L *lua.LState) int {
	return m.step(L, "undo", m.history.Undo, history.ErrNothingToUndo)
}

// redo() -> bool
func (m *docModule) redo(L *lua.LState) int {
	return m.step(L, "redo", m.history.Redo, history.ErrNothingToRedo)
}

// step runs undo or redo, returning false instead of raising when the
// stack is empty.
func (m *docModule) step(L *lua.LState, name string, fn func() error, empty error) int {
	err := fn()
	switch {
	case err == nil:
		L.Push(lua.LTrue)
	case errors.Is(err, empty):
		L.Push(lua.LFalse)
	default:
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	return 1
}

func (m *docModule) checkRow(L *lua.LState, n int) int {
	row := L.CheckInt(n) - 1
	if row < 0 || row >= m.doc().NumRows() {
		L.ArgError(n, "row out of range")
	}
	return row
}

// checkPosition reads a 1-indexed row and column at n and n+1.
func checkPosition(L *lua.LState, n int) cursor.Position {
	return cursor.Pos(L.CheckInt(n)-1, L.CheckInt(n+1)-1)
}

// checkSelection reads a head at n and an optional tail at n+2. Without a
// tail the selection is a caret.
func checkSelection(L *lua.LState, n int) cursor.Selection {
	head := checkPosition(L, n)
	if L.GetTop() < n+2 {
		return cursor.NewCaret(head)
	}
	return cursor.NewSelection(head, checkPosition(L, n+2))
}

func positionTable(L *lua.LState, p cursor.Position) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "row", lua.LNumber(p.Row+1))
	L.SetField(t, "col", lua.LNumber(p.Col+1))
	return t
}
