package puzzle

import "math"

// Rect is an axis-aligned box.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// PathStats measures one path.
type PathStats struct {
	Name     string  `json:"name"`
	Segments int     `json:"segments"`
	Length   float64 `json:"length"`
}

// Stats summarises a puzzle.
type Stats struct {
	Rows     int `json:"rows"`
	Columns  int `json:"columns"`
	Segments int `json:"segments"`
	Commands int `json:"commands"`
	Pieces   int `json:"pieces"`

	// CutLength is the length of all tabbed cuts, excluding the border.
	CutLength    float64 `json:"cut_length"`
	BorderLength float64 `json:"border_length"`

	// Bounds encloses every point and control point of every path.
	Bounds Rect        `json:"bounds"`
	Paths  []PathStats `json:"paths"`
}

// Measure computes Stats for p. Curve lengths are measured on the flattened
// polylines with DefaultTolerance.
func Measure(p *Puzzle) Stats {
	st := Stats{
		Pieces: p.Config.TilesAcross * p.Config.TilesDown,
		Bounds: Rect{
			Min: Pt(math.Inf(1), math.Inf(1)),
			Max: Pt(math.Inf(-1), math.Inf(-1)),
		},
	}
	for _, np := range p.Paths {
		var l float64
		for _, line := range Flatten(np.Commands, DefaultTolerance) {
			l += PolylineLength(line)
		}
		switch np.Style {
		case Horizontal:
			st.Rows++
			st.CutLength += l
		case Vertical:
			st.Columns++
			st.CutLength += l
		case Outline:
			st.BorderLength += l
		}
		st.Segments += len(np.Segments)
		st.Commands += len(np.Commands)
		st.Paths = append(st.Paths, PathStats{Name: np.Name, Segments: len(np.Segments), Length: l})
		for _, c := range np.Commands {
			for _, pt := range c.Points() {
				st.Bounds.Min = Pt(math.Min(st.Bounds.Min.X, pt.X), math.Min(st.Bounds.Min.Y, pt.Y))
				st.Bounds.Max = Pt(math.Max(st.Bounds.Max.X, pt.X), math.Max(st.Bounds.Max.Y, pt.Y))
			}
		}
	}
	return st
}
