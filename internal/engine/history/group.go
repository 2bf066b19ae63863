package history

// GroupScope provides a convenient way to group edits using defer.
// Usage:
//
//	func replaceAll(h *History) {
//	    defer h.GroupScope("Replace All").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End ends the group scope. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without recording it.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Do runs fn within a named group. If fn fails the edits it made are
// undone and the error is returned.
func (h *History) Do(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		if g := h.endGroup(); g != nil {
			if uerr := h.Undo(); uerr == nil {
				h.dropRedo()
			}
		}
		return err
	}

	h.EndGroup()
	return nil
}

func (h *History) dropRedo() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.redoStack); n > 0 {
		h.redoStack = h.redoStack[:n-1]
	}
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes every group recorded since cp.
func (h *History) UndoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes groups until the undo stack is back at cp's depth
// or nothing is left to redo.
func (h *History) RedoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(); err != nil {
			return err
		}
	}
	return nil
}
