// Package puzzle generates jigsaw puzzle cut lines.
//
// A puzzle is a grid of intersection points (see [BuildGrid]). Every pair of
// adjacent points along an interior row or column is joined by a
// [CurveSegment]: three chained cubic Bézier curves that approximate the
// straight edge but bulge out into a single tab in the middle. The segments
// of one row or column form a [NamedPath]; an undecorated rectangle named
// PuzzleBorder closes the puzzle.
//
// # Determinism
//
// All randomness comes from one [random.Source] passed explicitly. Values are
// drawn in a fixed order: first the grid (row-major, y before x for each
// interior point), then for every segment four jitter values and one tab
// direction, rows before columns. A non-zero seed therefore reproduces a
// puzzle exactly.
//
// # Geometry
//
// Positions along a segment are given as (along, off) fractions of the
// segment length. Off is measured along the perpendicular (dy, -dx) of the
// segment direction (dx, dy), for rows and columns alike. Even rows run right
// to left and even columns bottom to top, so the base side of the tabs
// alternates between neighbouring cuts.
//
// # Usage
//
//	cfg := puzzle.DefaultConfig()
//	cfg.Seed = 42
//	p, err := puzzle.Generate(cfg)
//	if err != nil {
//	    return err
//	}
//	for _, path := range p.Paths {
//	    fmt.Println(path.Name, path.Data())
//	}
package puzzle
