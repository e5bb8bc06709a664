package puzzle

import (
	"math"

	"github.com/matzehuels/jigsaw/pkg/random"
)

// Along positions of the fixed control points.
const (
	entryAlong = 0.20
	exitAlong  = 0.80
	tabCenter  = 0.50
)

// Draw is the random input of one curve segment: four jitter scalars and the
// tab direction. DrawSegment fills it in the canonical order.
type Draw struct {
	Jitter [4]float64
	Flip   bool
}

// Direction is -1 when the tab is flipped and +1 otherwise.
func (d Draw) Direction() float64 {
	if d.Flip {
		return -1
	}
	return 1
}

// DrawSegment takes the random values for one segment from src: j1, j2, j3
// and j4 uniformly in [-jitterFrac, jitterFrac], then one boolean. Every
// segment consumes exactly five draws.
func DrawSegment(src *random.Source, jitterFrac float64) Draw {
	var d Draw
	for i := range d.Jitter {
		d.Jitter[i] = src.Uniform(-jitterFrac, jitterFrac)
	}
	d.Flip = src.Bool()
	return d
}

// PointAlongLine maps an (along, off) pair relative to the line start→end to
// an absolute point. Off is measured along the perpendicular (dy, -dx), both
// fractions being scaled by the line length.
func PointAlongLine(start, end Point, along, off float64) Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	return Point{
		X: start.X + dx*along + dy*off,
		Y: start.Y + dy*along - dx*off,
	}
}

// CurveSegment is one tabbed edge between two adjacent grid points, made of
// three chained cubic curves: Start→Tab1, Tab1→Tab2 and Tab2→End.
type CurveSegment struct {
	// First marks the opening segment of a path. Only the first segment
	// carries its own entry control point CP1; later ones continue smoothly.
	First bool
	Start Point
	CP1   Point
	CP2   Point
	Tab1  Point
	CP3   Point
	CP4   Point
	Tab2  Point
	CP5   Point
	CP6   Point
	End   Point

	Draw Draw
	// Span is the tile column (for row cuts) or tile row (for column cuts)
	// the segment borders.
	Span int
}

// BuildSegment computes the control points of a segment from start to end
// for a given draw. halfTab is half the tab width as a fraction of the
// segment length.
func BuildSegment(first bool, start, end Point, halfTab float64, d Draw) CurveSegment {
	j1, j2, j3, j4 := d.Jitter[0], d.Jitter[1], d.Jitter[2], d.Jitter[3]
	dir := d.Direction()
	at := func(along, off float64) Point {
		return PointAlongLine(start, end, along, off*dir)
	}
	return CurveSegment{
		First: first,
		Start: start,
		CP1:   at(entryAlong, j1),
		CP2:   at(tabCenter+j2+j4, -halfTab+j3),
		Tab1:  at(tabCenter-halfTab+j2, halfTab+j3),
		CP3:   at(tabCenter-2*halfTab+j2-j4, 3*halfTab+j3),
		CP4:   at(tabCenter+2*halfTab+j2-j4, 3*halfTab+j3),
		Tab2:  at(tabCenter+halfTab+j2, halfTab+j3),
		CP5:   at(tabCenter+j2+j4, -halfTab+j3),
		CP6:   at(exitAlong, j1),
		End:   end,
		Draw:  d,
	}
}

// Commands returns the three drawing commands of the segment. The first
// command is a full cubic for the opening segment of a path and a smooth
// continuation otherwise.
func (s CurveSegment) Commands() []PathCommand {
	first := CubicSmoothTo(s.CP2, s.Tab1)
	if s.First {
		first = CubicTo(s.CP1, s.CP2, s.Tab1)
	}
	return []PathCommand{
		first,
		CubicTo(s.CP3, s.CP4, s.Tab2),
		CubicTo(s.CP5, s.CP6, s.End),
	}
}

// Bulge returns the unit vector pointing to the side the tab protrudes to.
// It is the zero vector for a degenerate segment.
func (s CurveSegment) Bulge() Point {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	dir := s.Draw.Direction()
	return Point{X: dy / l * dir, Y: -dx / l * dir}
}

// Length is the straight-line distance between the segment's end points.
func (s CurveSegment) Length() float64 { return s.Start.Distance(s.End) }

// EdgeBuilder produces segments for one puzzle configuration.
type EdgeBuilder struct {
	HalfTab float64
	Jitter  float64
}

// NewEdgeBuilder returns a builder using cfg's tab and jitter settings.
func NewEdgeBuilder(cfg Config) EdgeBuilder {
	return EdgeBuilder{HalfTab: cfg.HalfTab(), Jitter: cfg.JitterFrac()}
}

// Segment draws the random values for one segment from src and builds it.
func (b EdgeBuilder) Segment(first bool, start, end Point, src *random.Source) CurveSegment {
	return BuildSegment(first, start, end, b.HalfTab, DrawSegment(src, b.Jitter))
}
