package outline

import (
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Op is a path drawing operation.
type Op int

const (
	// MoveTo starts the path at Points[0].
	MoveTo Op = iota
	// LineTo draws a straight line to Points[0].
	LineTo
	// QuadTo draws a quadratic curve with control Points[0] ending at Points[1].
	QuadTo
)

// Segment is one drawing operation of an outline.
type Segment struct {
	Op     Op
	Points [2]fixed.Point26_6
}

// Rounded returns the path as drawing segments with every corner replaced
// by a quadratic curve. The radius at each corner is limited to half of
// the shorter adjacent edge. A radius of zero yields straight corners.
// The final segment returns to the starting point.
func (p Path) Rounded(radius fixed.Int26_6) []Segment {
	n := len(p.Points)
	if n == 0 {
		return nil
	}
	if radius <= 0 || n < 3 {
		segs := []Segment{{Op: MoveTo, Points: [2]fixed.Point26_6{p.Points[0]}}}
		for _, pt := range p.Points[1:] {
			segs = append(segs, Segment{Op: LineTo, Points: [2]fixed.Point26_6{pt}})
		}
		return append(segs, Segment{Op: LineTo, Points: [2]fixed.Point26_6{p.Points[0]}})
	}

	// a[k] and b[k] are where the curve around vertex k begins and ends.
	a := make([]fixed.Point26_6, n)
	b := make([]fixed.Point26_6, n)
	for k, v := range p.Points {
		prev := p.Points[(k+n-1)%n]
		next := p.Points[(k+1)%n]
		r := min(radius, manhattan(prev, v)/2, manhattan(v, next)/2)
		a[k] = toward(v, prev, r)
		b[k] = toward(v, next, r)
	}

	segs := []Segment{{Op: MoveTo, Points: [2]fixed.Point26_6{b[0]}}}
	for k := 1; k <= n; k++ {
		v := k % n
		segs = append(segs,
			Segment{Op: LineTo, Points: [2]fixed.Point26_6{a[v]}},
			Segment{Op: QuadTo, Points: [2]fixed.Point26_6{p.Points[v], b[v]}},
		)
	}
	return segs
}

// Rasterize adds the rounded path to z as one closed subpath.
// Coordinates are converted from 26.6 fixed point to pixels.
func (p Path) Rasterize(z *vector.Rasterizer, radius fixed.Int26_6) {
	segs := p.Rounded(radius)
	if len(segs) == 0 {
		return
	}
	for _, s := range segs {
		switch s.Op {
		case MoveTo:
			z.MoveTo(px(s.Points[0].X), px(s.Points[0].Y))
		case LineTo:
			z.LineTo(px(s.Points[0].X), px(s.Points[0].Y))
		case QuadTo:
			z.QuadTo(px(s.Points[0].X), px(s.Points[0].Y), px(s.Points[1].X), px(s.Points[1].Y))
		}
	}
	z.ClosePath()
}

func px(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func manhattan(a, b fixed.Point26_6) fixed.Int26_6 {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// toward moves from v in the direction of target by d. The two points
// share one coordinate.
func toward(v, target fixed.Point26_6, d fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: v.X + sign(target.X-v.X)*d, Y: v.Y + sign(target.Y-v.Y)*d}
}

func abs(v fixed.Int26_6) fixed.Int26_6 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v fixed.Int26_6) fixed.Int26_6 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
