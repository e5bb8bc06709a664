// Package pkg holds the jigsaw libraries.
//
// # Overview
//
// Jigsaw turns a rectangle, a tile count and a seed into the cut lines of a
// jigsaw puzzle. The pkg directory is organized into three areas:
//
//  1. Core: [random] (the seeded stream) and [puzzle] (grid, edge curves,
//     assembly, piece map, statistics)
//  2. Output: [render/sink] (SVG, JSON, PDF, PNG), [render/nodelink] (piece
//     adjacency graphs) and [render/styles] (stroke palettes)
//  3. Infrastructure: [pipeline] (generate → render with caching),
//     [cache], [store] (archived puzzles), [observability], [errors] and
//     [buildinfo]
//
// # Data flow
//
//	Config + seed
//	     ↓
//	[random.Source] → [puzzle.BuildGrid] → [puzzle.Assemble]
//	     ↓
//	[puzzle.Puzzle] (named paths of commands)
//	     ↓
//	[pipeline.Render] → SVG/JSON/PDF/PNG/DOT
//
// # Quick Start
//
//	p, err := puzzle.Generate(puzzle.Config{
//	    Width: 300, Height: 200,
//	    TilesAcross: 15, TilesDown: 10,
//	    TabSize: 15, Jitter: 4,
//	    Seed: 42,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(p)
package pkg
