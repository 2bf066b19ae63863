// Package outline traces the boundary of a union of axis-aligned
// rectangles as a single closed rectilinear path.
//
// The typical input is the list of per-row highlight rectangles of a
// multi-row selection; the output is one polygon suitable for stroking or
// filling, optionally with rounded corners.
//
// The input must form a single connected region without holes.
// Rectangles that touch only at a corner count as connected. Anything else
// is reported as ErrUnsupportedGeometry rather than producing a partial
// outline.
package outline
