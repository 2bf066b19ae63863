package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine"
)

// Step is one recorded edit.
type Step struct {
	// Index is the selection the edit was performed for.
	Index int

	// Forward makes the edit; Reverse reverts it.
	Forward engine.Transaction
	Reverse engine.Transaction
}

// Group is the unit of undo: a run of steps undone and redone together.
type Group struct {
	ID        uuid.UUID
	Name      string
	Steps     []Step
	Timestamp time.Time // when the group was opened

	lastEdit time.Time
	coalesce bool
}

func newGroup(name string, now time.Time, coalesce bool) *Group {
	return &Group{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: now,
		lastEdit:  now,
		coalesce:  coalesce,
	}
}

func (g *Group) info() OperationInfo {
	return OperationInfo{
		ID:          g.ID,
		Description: g.Name,
		Steps:       len(g.Steps),
		Timestamp:   g.Timestamp,
	}
}

// OperationInfo describes a group on the undo or redo stack.
type OperationInfo struct {
	ID          uuid.UUID
	Description string
	Steps       int
	Timestamp   time.Time
}
