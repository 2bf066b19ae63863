package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/logging"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrGroupOpen     = errors.New("edit group is open")
)

// Defaults.
const (
	DefaultMaxEntries     = 1000
	DefaultCoalesceWindow = 400 * time.Millisecond
)

// Option configures a History.
type Option func(*History)

// WithMaxEntries limits the number of groups kept on the undo stack.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithCoalesceWindow sets how close in time consecutive edits must be to
// share a group. Zero disables coalescing.
func WithCoalesceWindow(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.window = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l.WithComponent("history")
		}
	}
}

// History manages the undo and redo stacks of one document.
// All edits that should be undoable must go through it.
type History struct {
	mu  sync.Mutex
	doc *engine.Document

	undoStack []*Group
	redoStack []*Group

	// Explicit grouping state
	group *Group

	maxEntries int
	window     time.Duration
	now        func() time.Time
	logger     *logging.Logger
}

// New creates a history that records edits made to doc.
func New(doc *engine.Document, opts ...Option) *History {
	h := &History{
		doc:        doc,
		maxEntries: DefaultMaxEntries,
		window:     DefaultCoalesceWindow,
		now:        time.Now,
		logger:     logging.Null(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Document returns the document edits are applied to.
func (h *History) Document() *engine.Document {
	return h.doc
}

// Perform performs t for the selection at index and records the edit.
func (h *History) Perform(index int, t engine.Transaction) (engine.Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, err := h.doc.Perform(index, t)
	if err != nil {
		return engine.Transaction{}, err
	}
	h.recordLocked("Edit", Step{Index: index, Forward: t, Reverse: r})
	return r, nil
}

// InsertAtSelections replaces every selection with content, one selection
// at a time in index order. Each edit sees the effect of the previous ones,
// and all of them undo together.
func (h *History) InsertAtSelections(content string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	steps := make([]Step, 0, h.doc.NumSelections())
	for i := 0; i < h.doc.NumSelections(); i++ {
		sel, err := h.doc.Selection(i)
		if err != nil {
			return err
		}
		t := engine.NewTransaction(sel, content)
		r, err := h.doc.Perform(i, t)
		if err != nil {
			// Keep what was applied undoable.
			h.recordLocked("Insert", steps...)
			return fmt.Errorf("insert at selection %d: %w", i, err)
		}
		steps = append(steps, Step{Index: i, Forward: t, Reverse: r})
	}
	h.recordLocked("Insert", steps...)
	return nil
}

// recordLocked adds steps to the open group, the coalescing group on top
// of the undo stack, or a new group. It clears the redo stack.
func (h *History) recordLocked(name string, steps ...Step) {
	if len(steps) == 0 {
		return
	}
	now := h.now()
	h.redoStack = nil

	if h.group != nil {
		h.group.Steps = append(h.group.Steps, steps...)
		h.group.lastEdit = now
		return
	}

	if top := h.topLocked(); top != nil && top.coalesce && h.window > 0 && now.Sub(top.lastEdit) < h.window {
		top.Steps = append(top.Steps, steps...)
		top.lastEdit = now
		return
	}

	g := newGroup(name, now, true)
	g.Steps = steps
	h.pushLocked(g)
}

func (h *History) topLocked() *Group {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// pushLocked adds a group without acquiring the lock.
func (h *History) pushLocked(g *Group) {
	h.undoStack = append(h.undoStack, g)
	h.trimLocked()
}

func (h *History) trimLocked() {
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// apply performs t for the selection at index, or fulfills it directly if
// that selection no longer exists.
func (h *History) apply(index int, t engine.Transaction) (engine.Transaction, error) {
	if index < h.doc.NumSelections() {
		return h.doc.Perform(index, t)
	}
	return h.doc.Fulfill(t)
}

// Undo reverts the most recent group.
//
// Undo fails if the document was edited without going through the history
// in a way that invalidates the stored transactions. A group that fails
// before any step was reverted stays on the undo stack; one that fails part
// way is dropped.
func (h *History) Undo() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group != nil {
		return ErrGroupOpen
	}
	g := h.topLocked()
	if g == nil {
		return ErrNothingToUndo
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	for k := len(g.Steps) - 1; k >= 0; k-- {
		step := &g.Steps[k]
		r, err := h.apply(step.Index, step.Reverse)
		if err != nil {
			if k == len(g.Steps)-1 {
				h.undoStack = append(h.undoStack, g)
			}
			h.logger.Warn("undo %s failed at step %d: %v", g.ID, k, err)
			return fmt.Errorf("undo: %w", err)
		}
		step.Forward = r
	}

	// Edits after an undo never join an older group.
	g.coalesce = false
	if top := h.topLocked(); top != nil {
		top.coalesce = false
	}
	h.redoStack = append(h.redoStack, g)
	h.logger.Debug("undid %s (%d steps)", g.ID, len(g.Steps))
	return nil
}

// Redo reapplies the most recently undone group.
func (h *History) Redo() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group != nil {
		return ErrGroupOpen
	}
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	g := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	for k := range g.Steps {
		step := &g.Steps[k]
		r, err := h.apply(step.Index, step.Forward)
		if err != nil {
			if k == 0 {
				h.redoStack = append(h.redoStack, g)
			}
			h.logger.Warn("redo %s failed at step %d: %v", g.ID, k, err)
			return fmt.Errorf("redo: %w", err)
		}
		step.Reverse = r
	}

	h.pushLocked(g)
	h.logger.Debug("redid %s (%d steps)", g.ID, len(g.Steps))
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of groups that can be undone.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of groups that can be redone.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Break closes the group on top of the undo stack to coalescing, so the
// next edit starts a new group regardless of timing.
func (h *History) Break() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if top := h.topLocked(); top != nil {
		top.coalesce = false
	}
}

// BeginGroup starts an explicit group. Edits recorded until EndGroup undo
// as one unit. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.group != nil {
		return
	}
	h.group = newGroup(name, h.now(), false)
}

// EndGroup closes the explicit group and pushes it if it recorded anything.
func (h *History) EndGroup() {
	h.endGroup()
}

// endGroup closes the explicit group and returns it if it was pushed.
func (h *History) endGroup() *Group {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.group
	if g == nil {
		return nil
	}
	h.group = nil
	if len(g.Steps) == 0 {
		return nil
	}
	h.pushLocked(g)
	return g
}

// CancelGroup discards the explicit group without adding it to history.
// Edits already made stay in the document.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.group = nil
}

// IsGrouping returns true while an explicit group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.group != nil
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.group = nil
}

// UndoInfo describes the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo describes the redo stack, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(groups []*Group) []OperationInfo {
	result := make([]OperationInfo, len(groups))
	for i, g := range groups {
		result[i] = g.info()
	}
	return result
}

// PeekUndo returns info about the next undo without performing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.topLocked()
	if g == nil {
		return OperationInfo{}, false
	}
	return g.info(), true
}

// SetMaxEntries changes the maximum number of undo groups.
// If the current stack is larger, oldest groups are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo groups.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
