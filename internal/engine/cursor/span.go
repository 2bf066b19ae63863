package cursor

import "fmt"

// Span is a half-open range [Start, End) of columns or rows.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span, swapping the bounds if needed so Start <= End.
func NewSpan(start, end int) Span {
	if start > end {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty returns true if the span covers nothing.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains returns true if i is in [Start, End).
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Intersect returns the overlap of two spans, or an empty span at the
// larger start when they do not overlap.
func (s Span) Intersect(other Span) Span {
	start := max(s.Start, other.Start)
	end := min(s.End, other.End)
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Union returns the smallest span covering both spans.
func (s Span) Union(other Span) Span {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
