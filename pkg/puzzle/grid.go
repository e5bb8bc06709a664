package puzzle

import (
	"math"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/random"
)

// Grid is the immutable lattice of intersection points. It has Rows() rows
// and Cols() columns of points, one more than the tile counts in each
// direction.
type Grid struct {
	points     []Point
	rows, cols int
	cellW      float64
	cellH      float64
}

// BuildGrid lays out the intersection points of a width×height puzzle with
// across×down tiles.
//
// Interior points are displaced by up to jitterFrac of the cell size along
// the axes on which they are interior. Draws are taken row-major: for an
// interior row the y offset first, then for an interior column the x offset.
// Points on the border are placed exactly on 0, width or height.
func BuildGrid(width, height float64, across, down int, jitterFrac float64, src *random.Source) (*Grid, error) {
	if err := errors.ValidatePositive("width", width); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive("height", height); err != nil {
		return nil, err
	}
	if err := errors.ValidateCount("tiles across", across); err != nil {
		return nil, err
	}
	if err := errors.ValidateCount("tiles down", down); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("intersection jitter", jitterFrac); err != nil {
		return nil, err
	}

	g := &Grid{
		rows:   down + 1,
		cols:   across + 1,
		cellW:  width / float64(across),
		cellH:  height / float64(down),
		points: make([]Point, (down+1)*(across+1)),
	}
	for r := 0; r <= down; r++ {
		for c := 0; c <= across; c++ {
			x := axisCoord(c, across, g.cellW, width)
			y := axisCoord(r, down, g.cellH, height)
			if r > 0 && r < down {
				y += src.Uniform(-1, 1) * jitterFrac * g.cellH
			}
			if c > 0 && c < across {
				x += src.Uniform(-1, 1) * jitterFrac * g.cellW
			}
			g.points[r*g.cols+c] = Point{X: x, Y: y}
		}
	}
	return g, nil
}

func axisCoord(i, n int, cell, total float64) float64 {
	if i == n {
		return total
	}
	return float64(i) * cell
}

// At returns the point at row r and column c. It panics when out of range.
func (g *Grid) At(r, c int) Point {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic("puzzle: grid index out of range")
	}
	return g.points[r*g.cols+c]
}

// Rows returns the number of intersection rows, TilesDown+1.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of intersection columns, TilesAcross+1.
func (g *Grid) Cols() int { return g.cols }

// CellWidth returns the unjittered tile width.
func (g *Grid) CellWidth() float64 { return g.cellW }

// CellHeight returns the unjittered tile height.
func (g *Grid) CellHeight() float64 { return g.cellH }

// Points returns a row-major copy of all intersection points.
func (g *Grid) Points() []Point {
	out := make([]Point, len(g.points))
	copy(out, g.points)
	return out
}

// Displacement returns the largest distance any point moved from its
// undisplaced position.
func (g *Grid) Displacement() float64 {
	var maxd float64
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			base := Point{X: float64(c) * g.cellW, Y: float64(r) * g.cellH}
			maxd = math.Max(maxd, base.Distance(g.At(r, c)))
		}
	}
	return maxd
}
