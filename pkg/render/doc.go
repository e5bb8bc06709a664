// Package render turns generated puzzles into output documents.
//
// # Overview
//
// The generator in package puzzle only produces named paths tagged with a
// style. Rendering is layered on top:
//
//   - [styles]: stroke palettes mapping style tags to colour and width
//   - [sink]: SVG, JSON, PDF and PNG writers
//   - [nodelink]: piece-adjacency diagrams via Graphviz
//
// Sinks never draw random values, so rendering a puzzle twice always gives
// identical bytes.
//
//	p, _ := puzzle.Generate(cfg)
//	svg := sink.RenderSVG(p, sink.WithPalette(styles.Monochrome()))
//	pdf, err := sink.RenderPDF(p)
//
// [styles]: github.com/matzehuels/jigsaw/pkg/render/styles
// [sink]: github.com/matzehuels/jigsaw/pkg/render/sink
// [nodelink]: github.com/matzehuels/jigsaw/pkg/render/nodelink
package render
