// Package nodelink renders a puzzle's piece adjacency as a node-link diagram.
//
// # Overview
//
// Every tile becomes a box and every interlock an arrow from the tile with the
// knob to the tile with the socket. The diagram is a quick way to check that a
// puzzle interlocks everywhere and to spot tiles with unusual shapes: corner
// and edge pieces are shaded.
//
// # Usage
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
