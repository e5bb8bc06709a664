package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/render/nodelink"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// Generate builds the puzzle described by opts.
func Generate(opts Options) (*puzzle.Puzzle, error) {
	return puzzle.Generate(opts.Config())
}

// Render produces one artifact for an already generated puzzle.
func Render(ctx context.Context, p *puzzle.Puzzle, format string, opts Options) ([]byte, error) {
	palette := opts.PaletteStyle()

	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{
			sink.WithPalette(palette),
			sink.WithOffset(opts.OffsetX, opts.OffsetY),
		}
		if opts.Units != "" {
			svgOpts = append(svgOpts, sink.WithUnits(opts.Units))
		}
		return sink.RenderSVG(p, svgOpts...), nil

	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONIndent()}
		if opts.Pieces {
			jsonOpts = append(jsonOpts, sink.WithJSONPieces(), sink.WithJSONStats())
		}
		return sink.RenderJSON(p, jsonOpts...)

	case FormatPDF:
		return sink.RenderPDF(p, sink.WithPDFPalette(palette))

	case FormatPNG:
		return sink.RenderPNG(p, sink.WithScale(opts.Scale), sink.WithPNGPalette(palette))

	case FormatDOT:
		return []byte(nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})), nil

	case FormatPieces:
		dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, fmt.Errorf("render pieces: %w", err)
		}
		return svg, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
}

// RenderAll renders every format in opts.Formats without caching.
func RenderAll(ctx context.Context, p *puzzle.Puzzle, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := Render(ctx, p, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
