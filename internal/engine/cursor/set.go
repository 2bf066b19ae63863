package cursor

// Set is an ordered list of selections.
// Order is stable: indices identify selections across edits, so a Set never
// sorts or merges on its own. A Set always holds at least one selection;
// the first is the primary selection.
type Set struct {
	selections []Selection
}

// NewSet creates a set holding a single selection.
func NewSet(initial Selection) *Set {
	return &Set{selections: []Selection{initial}}
}

// NewSetFromSlice creates a set from a slice of selections.
// An empty slice yields a caret at the origin.
func NewSetFromSlice(selections []Selection) *Set {
	s := &Set{}
	s.SetAll(selections)
	return s
}

// Primary returns the first selection.
func (s *Set) Primary() Selection {
	return s.selections[0]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the Set.
func (s *Set) All() []Selection {
	result := make([]Selection, len(s.selections))
	copy(result, s.selections)
	return result
}

// Len returns the number of selections.
func (s *Set) Len() int {
	return len(s.selections)
}

// Get returns the selection at index and whether the index was in range.
func (s *Set) Get(index int) (Selection, bool) {
	if index < 0 || index >= len(s.selections) {
		return Selection{}, false
	}
	return s.selections[index], true
}

// Replace overwrites the selection at index.
// Returns false if index is out of range.
func (s *Set) Replace(index int, sel Selection) bool {
	if index < 0 || index >= len(s.selections) {
		return false
	}
	s.selections[index] = sel
	return true
}

// Add appends a selection.
func (s *Set) Add(sel Selection) {
	s.selections = append(s.selections, sel)
}

// SetAll replaces all selections.
func (s *Set) SetAll(sels []Selection) {
	if len(sels) == 0 {
		s.selections = []Selection{{}}
		return
	}
	s.selections = make([]Selection, len(sels))
	copy(s.selections, sels)
}

// Reset collapses the set to a single caret at p.
func (s *Set) Reset(p Position) {
	s.selections = []Selection{NewCaret(p)}
}

// ForEach calls f for each selection with its index.
func (s *Set) ForEach(f func(index int, sel Selection)) {
	for i, sel := range s.selections {
		f(i, sel)
	}
}

// Map applies f to each selection and returns the results.
func (s *Set) Map(f func(sel Selection) Selection) []Selection {
	result := make([]Selection, len(s.selections))
	for i, sel := range s.selections {
		result[i] = f(sel)
	}
	return result
}

// Adjusted returns every selection updated for a replacement of removed
// by inserted (see Adjust). The set itself is unchanged.
func (s *Set) Adjusted(removed, inserted Selection) []Selection {
	return s.Map(func(sel Selection) Selection {
		return Adjust(sel, removed, inserted)
	})
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return NewSetFromSlice(s.selections)
}

// Equals returns true if two sets hold the same selections in order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.selections) != len(other.selections) {
		return false
	}
	for i, sel := range s.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}
