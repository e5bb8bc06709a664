package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies a path-drawing command.
type CommandKind int

const (
	// MoveToKind starts a new subpath at P0.
	MoveToKind CommandKind = iota + 1
	// LineToKind draws a straight line to P0.
	LineToKind
	// CubicToKind draws a cubic Bézier with control points P0, P1 ending at P2.
	CubicToKind
	// CubicSmoothToKind draws a cubic Bézier whose first control point is the
	// reflection of the previous command's second control point about the
	// current point. P1 is the second control point and P2 the end point;
	// P0 is unused.
	CubicSmoothToKind
	// ClosePathKind closes the current subpath.
	ClosePathKind
)

func (k CommandKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case CubicToKind:
		return "CubicTo"
	case CubicSmoothToKind:
		return "CubicSmoothTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// PathCommand is a single drawing command. Which points are meaningful
// depends on Kind.
type PathCommand struct {
	Kind CommandKind
	P0   Point
	P1   Point
	P2   Point
}

// MoveTo starts a new subpath at pt.
func MoveTo(pt Point) PathCommand { return PathCommand{Kind: MoveToKind, P0: pt} }

// LineTo draws a straight line to pt.
func LineTo(pt Point) PathCommand { return PathCommand{Kind: LineToKind, P0: pt} }

// ClosePath returns to the start of the current subpath.
func ClosePath() PathCommand { return PathCommand{Kind: ClosePathKind} }

// CubicTo draws a cubic curve with control points c1 and c2 to end.
func CubicTo(c1, c2, end Point) PathCommand {
	return PathCommand{Kind: CubicToKind, P0: c1, P1: c2, P2: end}
}

// CubicSmoothTo continues the previous cubic curve smoothly, with second
// control point c2, to end.
func CubicSmoothTo(c2, end Point) PathCommand {
	return PathCommand{Kind: CubicSmoothToKind, P1: c2, P2: end}
}

// End returns the point the pen rests on after the command. ClosePath has no
// end point of its own and reports false.
func (c PathCommand) End() (Point, bool) {
	switch c.Kind {
	case MoveToKind, LineToKind:
		return c.P0, true
	case CubicToKind, CubicSmoothToKind:
		return c.P2, true
	}
	return Point{}, false
}

// Points returns the points the command carries, in SVG argument order.
func (c PathCommand) Points() []Point {
	switch c.Kind {
	case MoveToKind, LineToKind:
		return []Point{c.P0}
	case CubicToKind:
		return []Point{c.P0, c.P1, c.P2}
	case CubicSmoothToKind:
		return []Point{c.P1, c.P2}
	}
	return nil
}

func (c PathCommand) String() string {
	pts := c.Points()
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", c.Kind, strings.Join(parts, ", "))
}

// ExpandSmooth returns a copy of cmds in which every CubicSmoothTo is replaced
// by the equivalent CubicTo. The implicit first control point is the previous
// cubic's second control point reflected about the current point; after a
// non-cubic command it is the current point itself.
func ExpandSmooth(cmds []PathCommand) []PathCommand {
	out := make([]PathCommand, len(cmds))
	var cur, start, lastCtrl Point
	haveCtrl := false
	for i, c := range cmds {
		switch c.Kind {
		case CubicSmoothToKind:
			c1 := cur
			if haveCtrl {
				c1 = lastCtrl.Reflect(cur)
			}
			c = CubicTo(c1, c.P1, c.P2)
		}
		out[i] = c

		switch c.Kind {
		case MoveToKind:
			cur, start = c.P0, c.P0
			haveCtrl = false
		case LineToKind:
			cur = c.P0
			haveCtrl = false
		case CubicToKind:
			cur, lastCtrl = c.P2, c.P1
			haveCtrl = true
		case ClosePathKind:
			cur = start
			haveCtrl = false
		}
	}
	return out
}

// PathData formats cmds as SVG path data using absolute commands. Numbers use
// the shortest representation that round-trips, so equal inputs give
// byte-identical output.
func PathData(cmds []PathCommand) string {
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Kind {
		case MoveToKind:
			b.WriteByte('M')
		case LineToKind:
			b.WriteByte('L')
		case CubicToKind:
			b.WriteByte('C')
		case CubicSmoothToKind:
			b.WriteByte('S')
		case ClosePathKind:
			b.WriteByte('Z')
			continue
		}
		for j, p := range c.Points() {
			if j > 0 {
				b.WriteByte(' ')
			}
			writePoint(&b, p)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteByte(',')
	b.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	if v == 0 {
		// Avoid "-0" in output.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StyleTag classifies a path for the output sink. It carries no geometry.
type StyleTag int

const (
	Outline StyleTag = iota
	Horizontal
	Vertical
)

func (s StyleTag) String() string {
	switch s {
	case Outline:
		return "outline"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("StyleTag(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s StyleTag) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StyleTag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "outline":
		*s = Outline
	case "horizontal":
		*s = Horizontal
	case "vertical":
		*s = Vertical
	default:
		return fmt.Errorf("unknown style tag %q", text)
	}
	return nil
}

// NamedPath is one complete cut line as handed to a [Sink].
type NamedPath struct {
	// Name is "row<i>", "column<i>" or "PuzzleBorder".
	Name string
	// Style tells the sink which stroke to use.
	Style StyleTag
	// Index is the grid row (Horizontal) or column (Vertical) the cut runs
	// along; zero for the border.
	Index int
	// Commands is the drawing program, starting with a MoveTo.
	Commands []PathCommand
	// Segments holds the tabbed curves in traversal order. Empty for the border.
	Segments []CurveSegment
}

// Data returns the path as SVG path data.
func (p NamedPath) Data() string { return PathData(p.Commands) }
