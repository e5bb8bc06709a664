package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"seehuhn.de/go/geom/path"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/render/styles"
)

// MaxPixels bounds the raster size RenderPNG accepts.
const MaxPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette   styles.Palette
	scale     float64
	lineWidth float64
}

// WithScale sets the number of pixels per puzzle unit (default 2.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithLineWidth sets the stroke width in pixels (default 1.0).
func WithLineWidth(px float64) PNGOption {
	return func(r *pngRenderer) { r.lineWidth = px }
}

// WithPNGPalette selects the stroke colours. Palette widths are ignored; see
// [WithLineWidth].
func WithPNGPalette(p styles.Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// RenderPNG rasterizes the puzzle on a white background. Every path is
// stroked with round caps and joins.
func RenderPNG(p *puzzle.Puzzle, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: styles.Default(), scale: 2.0, lineWidth: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || !(r.lineWidth > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale and line width must be positive")
	}

	// Sized in float64 so huge puzzles cannot overflow int.
	fw := math.Ceil(p.Config.Width * r.scale)
	fh := math.Ceil(p.Config.Height * r.scale)
	if !(fw >= 1 && fh >= 1) || fw*fh > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image of %.0fx%.0f pixels is too large", fw, fh)
	}

	dc := gg.NewContext(int(fw), int(fh))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.SetLineWidth(r.lineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, np := range p.Paths {
		for cmd, pts := range pathData(np.Commands).Iter() {
			switch cmd {
			case path.CmdMoveTo:
				dc.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				dc.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				dc.ClosePath()
			}
		}
		dc.SetColor(r.palette.For(np.Style).RGBA())
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
