package sink

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// pathData converts puzzle commands to a geometry path. Smooth cubics are
// expanded, since neither PDF nor the raster stroker has a reflected-control
// operator.
func pathData(cmds []puzzle.PathCommand) *path.Data {
	p := &path.Data{}
	for _, c := range puzzle.ExpandSmooth(cmds) {
		switch c.Kind {
		case puzzle.MoveToKind:
			p = p.MoveTo(toVec(c.P0))
		case puzzle.LineToKind:
			p = p.LineTo(toVec(c.P0))
		case puzzle.CubicToKind:
			p = p.CubeTo(toVec(c.P0), toVec(c.P1), toVec(c.P2))
		case puzzle.ClosePathKind:
			p = p.Close()
		}
	}
	return p
}

func toVec(pt puzzle.Point) vec.Vec2 { return vec.Vec2{X: pt.X, Y: pt.Y} }
