package cursor

import "errors"

// ErrInvalidPosition indicates a position outside the document: a row not
// in [0, NumRows) or a column greater than the row's length.
var ErrInvalidPosition = errors.New("invalid position")
