package cursor

import "fmt"

// Lines is the minimal view of a document needed to validate and maximize
// positions.
type Lines interface {
	// NumRows returns the number of rows; always at least one.
	NumRows() int

	// NumColumns returns the number of characters on row, or 0 when row is
	// out of range.
	NumColumns(row int) int
}

// Position is a row and column in a document.
// Both are 0-indexed; Col counts characters.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// End returns the end-of-document sentinel for lines: one row past the last
// row, column 0. It compares after every valid position but is not itself a
// valid edit position.
func End(lines Lines) Position {
	return Position{Row: lines.NumRows()}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true for the document origin.
func (p Position) IsZero() bool {
	return p.Row == 0 && p.Col == 0
}

// IsValid reports whether p addresses a character boundary in lines.
func (p Position) IsValid(lines Lines) bool {
	if p.Row < 0 || p.Row >= lines.NumRows() {
		return false
	}
	return p.Col >= 0 && p.Col <= lines.NumColumns(p.Row)
}

// Validate returns ErrInvalidPosition, wrapped with the offending position,
// when p is not valid in lines.
func (p Position) Validate(lines Lines) error {
	if !p.IsValid(lines) {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p)
	}
	return nil
}
