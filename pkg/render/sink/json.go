package sink

import (
	"encoding/json"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	pieces bool
	stats  bool
	indent bool
}

// WithJSONPieces adds the piece classification and the joint list.
func WithJSONPieces() JSONOption { return func(r *jsonRenderer) { r.pieces = true } }

// WithJSONStats adds measurements computed by [puzzle.Measure].
func WithJSONStats() JSONOption { return func(r *jsonRenderer) { r.stats = true } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Config puzzle.Config    `json:"config"`
	Seed   uint64           `json:"seed,omitempty"`
	Grid   jsonGrid         `json:"grid"`
	Paths  []jsonPath       `json:"paths"`
	Pieces [][]puzzle.Piece `json:"pieces,omitempty"`
	Joints []puzzle.Joint   `json:"joints,omitempty"`
	Stats  *puzzle.Stats    `json:"stats,omitempty"`
}

type jsonGrid struct {
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	CellWidth  float64      `json:"cell_width"`
	CellHeight float64      `json:"cell_height"`
	Points     [][2]float64 `json:"points"`
}

type jsonPath struct {
	Name     string          `json:"name"`
	Style    puzzle.StyleTag `json:"style"`
	Index    int             `json:"index,omitempty"`
	D        string          `json:"d"`
	Commands []jsonCommand   `json:"commands"`
	Segments []jsonSegment   `json:"segments,omitempty"`
}

type jsonCommand struct {
	Kind   string       `json:"kind"`
	Points [][2]float64 `json:"points,omitempty"`
}

type jsonSegment struct {
	Span    int        `json:"span"`
	Flip    bool       `json:"flip"`
	Jitter  [4]float64 `json:"jitter"`
	Start   [2]float64 `json:"start"`
	End     [2]float64 `json:"end"`
	TabPeak [2]float64 `json:"tab_peak"`
}

// RenderJSON exports the puzzle geometry. Point lists are row-major grids of
// [x, y] pairs; each path carries both its SVG path data and the structured
// command list.
func RenderJSON(p *puzzle.Puzzle, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		Config: p.Config,
		Seed:   p.Seed,
		Grid:   buildJSONGrid(p.Grid),
		Paths:  make([]jsonPath, 0, len(p.Paths)),
	}
	for _, np := range p.Paths {
		out.Paths = append(out.Paths, buildJSONPath(np))
	}
	if r.pieces {
		out.Pieces = p.Pieces()
		out.Joints = p.Joints()
	}
	if r.stats {
		st := puzzle.Measure(p)
		out.Stats = &st
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func buildJSONGrid(g *puzzle.Grid) jsonGrid {
	pts := g.Points()
	jg := jsonGrid{
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		CellWidth:  g.CellWidth(),
		CellHeight: g.CellHeight(),
		Points:     make([][2]float64, len(pts)),
	}
	for i, pt := range pts {
		jg.Points[i] = pair(pt)
	}
	return jg
}

func buildJSONPath(np puzzle.NamedPath) jsonPath {
	jp := jsonPath{
		Name:     np.Name,
		Style:    np.Style,
		Index:    np.Index,
		D:        np.Data(),
		Commands: make([]jsonCommand, len(np.Commands)),
	}
	for i, c := range np.Commands {
		jc := jsonCommand{Kind: c.Kind.String()}
		for _, pt := range c.Points() {
			jc.Points = append(jc.Points, pair(pt))
		}
		jp.Commands[i] = jc
	}
	for _, seg := range np.Segments {
		jp.Segments = append(jp.Segments, jsonSegment{
			Span:    seg.Span,
			Flip:    seg.Draw.Flip,
			Jitter:  seg.Draw.Jitter,
			Start:   pair(seg.Start),
			End:     pair(seg.End),
			TabPeak: pair(seg.CP3.Lerp(seg.CP4, 0.5)),
		})
	}
	return jp
}

func pair(pt puzzle.Point) [2]float64 { return [2]float64{pt.X, pt.Y} }
