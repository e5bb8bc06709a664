package puzzle

import "fmt"

// Side describes one edge of a piece.
type Side int

const (
	Flat Side = iota
	Knob
	Socket
)

func (s Side) String() string {
	switch s {
	case Flat:
		return "flat"
	case Knob:
		return "knob"
	case Socket:
		return "socket"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Symbol is a one-rune rendering used by terminal views.
func (s Side) Symbol() string {
	switch s {
	case Knob:
		return "+"
	case Socket:
		return "-"
	}
	return "."
}

// Tile addresses a piece by tile row and column.
type Tile struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (t Tile) String() string { return fmt.Sprintf("r%dc%d", t.Row, t.Col) }

// Piece is the shape class of one tile.
type Piece struct {
	Tile
	Top    Side `json:"top"`
	Right  Side `json:"right"`
	Bottom Side `json:"bottom"`
	Left   Side `json:"left"`
}

// Sides returns the sides clockwise from the top.
func (p Piece) Sides() [4]Side { return [4]Side{p.Top, p.Right, p.Bottom, p.Left} }

// Count returns how many sides are of kind s.
func (p Piece) Count(s Side) int {
	n := 0
	for _, v := range p.Sides() {
		if v == s {
			n++
		}
	}
	return n
}

// Kind is "corner", "edge" or "interior" depending on the number of flat
// sides. A single-tile puzzle yields "single".
func (p Piece) Kind() string {
	switch p.Count(Flat) {
	case 0:
		return "interior"
	case 1:
		return "edge"
	case 2:
		return "corner"
	}
	return "single"
}

// Joint is one interlock between two tiles: the tile whose knob sticks out
// and the tile holding the matching socket.
type Joint struct {
	Knob    Tile   `json:"knob"`
	Socket  Tile   `json:"socket"`
	Path    string `json:"path"`
	Segment int    `json:"segment"`
}

// Joints lists every interlock in path emission order.
func (p *Puzzle) Joints() []Joint {
	var out []Joint
	for _, np := range p.Paths {
		for i, seg := range np.Segments {
			b := seg.Bulge()
			var a, c Tile // a precedes c along the axis perpendicular to the cut
			var into float64
			switch np.Style {
			case Horizontal:
				a = Tile{Row: np.Index - 1, Col: seg.Span}
				c = Tile{Row: np.Index, Col: seg.Span}
				into = b.Y
			case Vertical:
				a = Tile{Row: seg.Span, Col: np.Index - 1}
				c = Tile{Row: seg.Span, Col: np.Index}
				into = b.X
			default:
				continue
			}
			j := Joint{Knob: a, Socket: c, Path: np.Name, Segment: i}
			if into < 0 {
				// Tab protrudes into a: c owns the knob.
				j.Knob, j.Socket = c, a
			}
			out = append(out, j)
		}
	}
	return out
}

// Pieces classifies every tile, indexed [row][col]. Sides on the border are
// flat; every shared side is a knob on exactly one of its two tiles.
func (p *Puzzle) Pieces() [][]Piece {
	down, across := p.Config.TilesDown, p.Config.TilesAcross
	grid := make([][]Piece, down)
	for r := range grid {
		grid[r] = make([]Piece, across)
		for c := range grid[r] {
			grid[r][c].Tile = Tile{Row: r, Col: c}
		}
	}
	for _, j := range p.Joints() {
		k, s := j.Knob, j.Socket
		switch {
		case k.Row == s.Row && k.Col < s.Col:
			grid[k.Row][k.Col].Right = Knob
			grid[s.Row][s.Col].Left = Socket
		case k.Row == s.Row:
			grid[k.Row][k.Col].Left = Knob
			grid[s.Row][s.Col].Right = Socket
		case k.Row < s.Row:
			grid[k.Row][k.Col].Bottom = Knob
			grid[s.Row][s.Col].Top = Socket
		default:
			grid[k.Row][k.Col].Top = Knob
			grid[s.Row][s.Col].Bottom = Socket
		}
	}
	return grid
}
