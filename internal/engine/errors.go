package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/textcore/internal/engine/buffer"
	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/outline"
)

// Errors returned by document operations.
var (
	// ErrInvalidPosition indicates a position outside the document.
	ErrInvalidPosition = cursor.ErrInvalidPosition

	// ErrInvalidRow indicates a row index or row range outside the document.
	ErrInvalidRow = buffer.ErrRowOutOfRange

	// ErrSelectionIndex indicates a selection index that is not tracked.
	ErrSelectionIndex = errors.New("selection index out of range")

	// ErrNoSelections indicates an attempt to leave the document without
	// any selection.
	ErrNoSelections = errors.New("document requires at least one selection")

	// ErrUnsupportedGeometry indicates outline input that is not a single
	// connected region.
	ErrUnsupportedGeometry = outline.ErrUnsupportedGeometry
)

// PositionError records a rejected position and the operation that
// rejected it.
type PositionError struct {
	Op  string
	Pos cursor.Position
	Err error
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Pos, e.Err)
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}
