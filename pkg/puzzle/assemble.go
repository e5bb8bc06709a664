package puzzle

import (
	"fmt"

	"github.com/matzehuels/jigsaw/pkg/random"
)

// BorderName is the name of the outline path.
const BorderName = "PuzzleBorder"

// Sink receives completed paths in emission order.
type Sink interface {
	Emit(NamedPath)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(NamedPath)

// Emit calls f(p).
func (f SinkFunc) Emit(p NamedPath) { f(p) }

// Collector is a Sink that keeps every path it receives.
type Collector struct {
	Paths []NamedPath
}

// Emit appends p.
func (c *Collector) Emit(p NamedPath) { c.Paths = append(c.Paths, p) }

// Assemble emits the cut lines of cfg over grid g to sink: one path per
// interior row, then one per interior column, then the border. Even rows are
// traversed right to left and even columns bottom to top, so consecutive cuts
// start from alternating sides.
//
// g must have been built for cfg's tile counts.
func Assemble(cfg Config, g *Grid, src *random.Source, sink Sink) {
	eb := NewEdgeBuilder(cfg)
	across, down := cfg.TilesAcross, cfg.TilesDown

	for r := 1; r < down; r++ {
		cols := lineIndices(across, r%2 == 0)
		pts := make([]Point, len(cols))
		for i, c := range cols {
			pts[i] = g.At(r, c)
		}
		sink.Emit(buildLine(fmt.Sprintf("row%d", r), Horizontal, r, pts, cols, eb, src))
	}

	for c := 1; c < across; c++ {
		rows := lineIndices(down, c%2 == 0)
		pts := make([]Point, len(rows))
		for i, r := range rows {
			pts[i] = g.At(r, c)
		}
		sink.Emit(buildLine(fmt.Sprintf("column%d", c), Vertical, c, pts, rows, eb, src))
	}

	sink.Emit(Border(cfg.Width, cfg.Height))
}

// lineIndices returns 0..n, or n..0 when reversed.
func lineIndices(n int, reversed bool) []int {
	idx := make([]int, n+1)
	for i := range idx {
		if reversed {
			idx[i] = n - i
		} else {
			idx[i] = i
		}
	}
	return idx
}

func buildLine(name string, style StyleTag, index int, pts []Point, idx []int, eb EdgeBuilder, src *random.Source) NamedPath {
	p := NamedPath{
		Name:     name,
		Style:    style,
		Index:    index,
		Commands: make([]PathCommand, 0, 1+3*(len(pts)-1)),
		Segments: make([]CurveSegment, 0, len(pts)-1),
	}
	p.Commands = append(p.Commands, MoveTo(pts[0]))
	for i := 0; i+1 < len(pts); i++ {
		seg := eb.Segment(i == 0, pts[i], pts[i+1], src)
		seg.Span = min(idx[i], idx[i+1])
		p.Segments = append(p.Segments, seg)
		p.Commands = append(p.Commands, seg.Commands()...)
	}
	return p
}

// Border returns the closed rectangular outline of a width×height puzzle.
func Border(width, height float64) NamedPath {
	return NamedPath{
		Name:  BorderName,
		Style: Outline,
		Commands: []PathCommand{
			MoveTo(Pt(0, 0)),
			LineTo(Pt(width, 0)),
			LineTo(Pt(width, height)),
			LineTo(Pt(0, height)),
			LineTo(Pt(0, 0)),
			ClosePath(),
		},
	}
}

// Puzzle is the result of one generation run.
type Puzzle struct {
	Config Config
	// Seed is the seed the stream was started with. Zero means the puzzle
	// cannot be reproduced.
	Seed  uint64
	Grid  *Grid
	Paths []NamedPath
}

// Generate validates cfg, seeds a fresh random stream with cfg.Seed and
// builds the complete puzzle. Nothing is produced when cfg is invalid.
func Generate(cfg Config) (*Puzzle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return GenerateWith(cfg, random.New(cfg.Seed))
}

// GenerateWith builds a puzzle drawing from src instead of a fresh stream
// seeded from cfg.Seed.
func GenerateWith(cfg Config, src *random.Source) (*Puzzle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := BuildGrid(cfg.Width, cfg.Height, cfg.TilesAcross, cfg.TilesDown, cfg.IntersectionJitterFrac(), src)
	if err != nil {
		return nil, err
	}
	var c Collector
	Assemble(cfg, g, src, &c)
	return &Puzzle{Config: cfg, Seed: cfg.Seed, Grid: g, Paths: c.Paths}, nil
}

// Rows returns the horizontal cut paths in emission order.
func (p *Puzzle) Rows() []NamedPath { return p.byStyle(Horizontal) }

// Columns returns the vertical cut paths in emission order.
func (p *Puzzle) Columns() []NamedPath { return p.byStyle(Vertical) }

// Border returns the outline path.
func (p *Puzzle) Border() NamedPath {
	b, _ := p.Path(BorderName)
	return b
}

// Path looks up a path by name.
func (p *Puzzle) Path(name string) (NamedPath, bool) {
	for _, np := range p.Paths {
		if np.Name == name {
			return np, true
		}
	}
	return NamedPath{}, false
}

func (p *Puzzle) byStyle(s StyleTag) []NamedPath {
	var out []NamedPath
	for _, np := range p.Paths {
		if np.Style == s {
			out = append(out, np)
		}
	}
	return out
}
