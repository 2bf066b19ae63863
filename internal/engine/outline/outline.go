package outline

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"golang.org/x/image/math/fixed"
)

// ErrUnsupportedGeometry indicates the rectangles do not form a single
// connected region without holes.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Path is a closed rectilinear polygon. Consecutive vertices differ in
// exactly one coordinate and no three consecutive vertices are collinear.
// The path runs clockwise on screen (y grows downward).
type Path struct {
	Points []fixed.Point26_6
}

// IsEmpty returns true if the path has no vertices.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Bounds returns the smallest rectangle containing every vertex.
func (p Path) Bounds() fixed.Rectangle26_6 {
	if len(p.Points) == 0 {
		return fixed.Rectangle26_6{}
	}
	b := fixed.Rectangle26_6{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		b.Min.X = min(b.Min.X, pt.X)
		b.Min.Y = min(b.Min.Y, pt.Y)
		b.Max.X = max(b.Max.X, pt.X)
		b.Max.Y = max(b.Max.Y, pt.Y)
	}
	return b
}

// direction of a boundary edge, in clockwise order.
type direction int

const (
	right direction = iota
	down
	left
	up
)

func (d direction) rightTurn() direction { return (d + 1) % 4 }
func (d direction) leftTurn() direction  { return (d + 3) % 4 }

// gridPoint addresses a vertex of the cell grid by edge indices.
type gridPoint struct{ i, j int }

type edge struct {
	from, to gridPoint
	dir      direction
	used     bool
}

// Trace returns the boundary of the union of rects.
// Empty rectangles are ignored; if nothing remains the path is empty.
func Trace(rects []fixed.Rectangle26_6) (Path, error) {
	var live []fixed.Rectangle26_6
	for _, r := range rects {
		if !r.Empty() {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return Path{}, nil
	}

	xs, ys := edgeCoordinates(live)
	occupied := occupancy(live, xs, ys)
	edges, out := boundaryEdges(occupied)

	pts, err := stitch(edges, out)
	if err != nil {
		return Path{}, err
	}

	path := Path{Points: make([]fixed.Point26_6, len(pts))}
	for k, gp := range pts {
		path.Points[k] = fixed.Point26_6{X: xs[gp.i], Y: ys[gp.j]}
	}
	return path, nil
}

// edgeCoordinates returns the sorted distinct x and y edges of rects.
func edgeCoordinates(rects []fixed.Rectangle26_6) (xs, ys []fixed.Int26_6) {
	for _, r := range rects {
		xs = append(xs, r.Min.X, r.Max.X)
		ys = append(ys, r.Min.Y, r.Max.Y)
	}
	slices.Sort(xs)
	slices.Sort(ys)
	return slices.Compact(xs), slices.Compact(ys)
}

// occupancy marks every grid cell covered by some rectangle.
// occupied[j][i] is the cell between xs[i]..xs[i+1] and ys[j]..ys[j+1].
func occupancy(rects []fixed.Rectangle26_6, xs, ys []fixed.Int26_6) [][]bool {
	occupied := make([][]bool, len(ys)-1)
	for j := range occupied {
		occupied[j] = make([]bool, len(xs)-1)
	}

	index := func(vals []fixed.Int26_6, v fixed.Int26_6) int {
		return sort.Search(len(vals), func(k int) bool { return vals[k] >= v })
	}
	for _, r := range rects {
		i0, i1 := index(xs, r.Min.X), index(xs, r.Max.X)
		j0, j1 := index(ys, r.Min.Y), index(ys, r.Max.Y)
		for j := j0; j < j1; j++ {
			for i := i0; i < i1; i++ {
				occupied[j][i] = true
			}
		}
	}
	return occupied
}

// boundaryEdges emits a directed edge for every cell side that borders an
// unoccupied cell, oriented so the region lies on the right of travel.
func boundaryEdges(occupied [][]bool) ([]*edge, map[gridPoint][]*edge) {
	at := func(i, j int) bool {
		return j >= 0 && j < len(occupied) && i >= 0 && i < len(occupied[j]) && occupied[j][i]
	}

	var edges []*edge
	out := make(map[gridPoint][]*edge)
	add := func(from, to gridPoint, dir direction) {
		e := &edge{from: from, to: to, dir: dir}
		edges = append(edges, e)
		out[from] = append(out[from], e)
	}

	for j := range occupied {
		for i := range occupied[j] {
			if !occupied[j][i] {
				continue
			}
			if !at(i, j-1) {
				add(gridPoint{i, j}, gridPoint{i + 1, j}, right)
			}
			if !at(i+1, j) {
				add(gridPoint{i + 1, j}, gridPoint{i + 1, j + 1}, down)
			}
			if !at(i, j+1) {
				add(gridPoint{i + 1, j + 1}, gridPoint{i, j + 1}, left)
			}
			if !at(i-1, j) {
				add(gridPoint{i, j + 1}, gridPoint{i, j}, up)
			}
		}
	}
	return edges, out
}

// stitch walks the boundary from its top-left corner and returns the
// corner vertices. Edges left over after the walk closes mean the region
// was disconnected or had holes.
func stitch(edges []*edge, out map[gridPoint][]*edge) ([]gridPoint, error) {
	// Edges are emitted in row-major cell order, so the first one is the
	// top edge of the top-left cell; its start has no other outgoing edge.
	start := edges[0]
	start.used = true
	pts := []gridPoint{start.from}
	cur := start
	used := 1

	for cur.to != start.from {
		next := pick(out[cur.to], cur.dir)
		if next == nil {
			return nil, fmt.Errorf("%w: open boundary at %v", ErrUnsupportedGeometry, cur.to)
		}
		next.used = true
		used++
		if next.dir != cur.dir {
			pts = append(pts, cur.to)
		}
		cur = next
	}

	if used != len(edges) {
		return nil, fmt.Errorf("%w: %d of %d boundary edges form a separate loop",
			ErrUnsupportedGeometry, len(edges)-used, len(edges))
	}
	return pts, nil
}

// pick chooses the next unused edge. Where two regions meet at a single
// point there are two candidates; turning left keeps both in one loop.
func pick(candidates []*edge, heading direction) *edge {
	var fallback *edge
	for _, want := range []direction{heading.leftTurn(), heading, heading.rightTurn()} {
		for _, e := range candidates {
			if e.used {
				continue
			}
			if e.dir == want {
				return e
			}
			if fallback == nil {
				fallback = e
			}
		}
	}
	return fallback
}
