package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// Options configures piece-adjacency diagram rendering.
type Options struct {
	// Detailed adds the side shapes to node labels and the cut name to edges.
	// When false, only the tile address is shown.
	Detailed bool
}

// ToDOT converts a puzzle's piece map to Graphviz DOT. There is one node per
// tile and one edge per interlock, pointing from the tile that carries the
// knob to the tile that holds the socket. Each tile row is kept on its own
// rank so the diagram keeps the shape of the puzzle.
func ToDOT(p *puzzle.Puzzle, opts Options) string {
	pieces := p.Pieces()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, row := range pieces {
		ids := make([]string, len(row))
		for c, pc := range row {
			ids[c] = strconv.Quote(pc.Tile.String())
			fmt.Fprintf(&buf, "  %s [%s];\n", ids[c], strings.Join(fmtAttrs(pc, opts.Detailed), ", "))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, j := range p.Joints() {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", j.Knob.String(), j.Socket.String(), fmt.Sprintf("%s/%d", j.Path, j.Segment))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", j.Knob.String(), j.Socket.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(pc puzzle.Piece, detailed bool) string {
	if !detailed {
		return pc.Tile.String()
	}
	var sides []string
	for _, s := range pc.Sides() {
		sides = append(sides, s.Symbol())
	}
	return pc.Tile.String() + "\n" + strings.Join(sides, " ") + "\n" + pc.Kind()
}

func fmtAttrs(pc puzzle.Piece, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(pc, detailed))}
	switch pc.Kind() {
	case "corner", "single":
		attrs = append(attrs, "fillcolor=lightgrey")
	case "edge":
		attrs = append(attrs, "fillcolor=whitesmoke")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
