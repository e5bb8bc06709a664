package puzzle

import "math"

// DefaultTolerance is the flattening tolerance used when none is given.
const DefaultTolerance = 0.01

const maxSubdivision = 16

// Flatten converts cmds to polylines whose distance from the true curves is at
// most tolerance. Each MoveTo starts a new polyline; ClosePath returns to the
// polyline's first point. Smooth cubics are expanded first.
func Flatten(cmds []PathCommand, tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var (
		lines [][]Point
		cur   []Point
	)
	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	for _, c := range ExpandSmooth(cmds) {
		switch c.Kind {
		case MoveToKind:
			flush()
			cur = []Point{c.P0}
		case LineToKind:
			cur = appendPoint(cur, c.P0)
		case CubicToKind:
			var p0 Point
			if len(cur) > 0 {
				p0 = cur[len(cur)-1]
			} else {
				cur = []Point{p0}
			}
			cur = flattenCubic(cur, p0, c.P0, c.P1, c.P2, tolerance, 0)
		case ClosePathKind:
			if len(cur) > 0 {
				cur = appendPoint(cur, cur[0])
			}
		}
	}
	flush()
	return lines
}

func appendPoint(pts []Point, p Point) []Point {
	if len(pts) > 0 && pts[len(pts)-1] == p {
		return pts
	}
	return append(pts, p)
}

// flattenCubic appends the subdivided curve p0..p3, excluding p0.
func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tol float64, depth int) []Point {
	if depth >= maxSubdivision || cubicFlat(p0, p1, p2, p3, tol) {
		return append(dst, p3)
	}
	// de Casteljau split at t=0.5
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	dst = flattenCubic(dst, p0, p01, p012, mid, tol, depth+1)
	return flattenCubic(dst, mid, p123, p23, p3, tol, depth+1)
}

// cubicFlat reports whether both control points lie within tol of the chord.
func cubicFlat(p0, p1, p2, p3 Point, tol float64) bool {
	return distToSegment(p1, p0, p3) <= tol && distToSegment(p2, p0, p3) <= tol
}

func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Distance(a.Add(ab.Scale(t)))
}

// PolylineLength sums the lengths of the polyline's edges.
func PolylineLength(pts []Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Distance(pts[i])
	}
	return l
}
