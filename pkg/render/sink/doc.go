// Package sink provides output format renderers for generated puzzles.
//
// # Overview
//
// A "sink" turns a [puzzle.Puzzle] into bytes. This package provides:
//
//   - SVG: the cut lines grouped into Rows and Columns, ready for an editor
//   - JSON: the full geometry, optionally with piece shapes and statistics
//   - PDF: a single page sized to the puzzle, for printers and cutters
//   - PNG: a raster preview
//
// # SVG Output
//
// [RenderSVG] emits one path element per cut. The Puzzle group can be
// shifted with [WithOffset] or centred on a larger canvas with
// [WithCenterOn]:
//
//	svg := sink.RenderSVG(p,
//	    sink.WithPalette(styles.Monochrome()),
//	    sink.WithCenterOn(297, 210),
//	    sink.WithUnits("mm"),
//	)
//
// Smooth continuation commands ("S") are kept as they are, since SVG
// reflects the previous control point the same way the generator does.
//
// # PDF and PNG Output
//
// Both formats convert each cut to a seehuhn.de/go/geom path first, with
// smooth continuations expanded to explicit cubics. [RenderPDF] writes vector
// output with seehuhn.de/go/pdf; puzzle units are taken as millimetres unless
// [WithPDFUnit] says otherwise. [RenderPNG] strokes the paths with
// github.com/fogleman/gg using round caps and joins. Neither requires
// external tools.
//
// [puzzle.Puzzle]: github.com/matzehuels/jigsaw/pkg/puzzle.Puzzle
package sink
