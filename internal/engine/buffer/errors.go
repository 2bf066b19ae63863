package buffer

import "errors"

// Errors returned by line store operations.
var (
	// ErrRowOutOfRange indicates a row index outside the store.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrLineBreak indicates text for a single line contained a line break.
	ErrLineBreak = errors.New("line text contains a line break")
)
