package sink

import (
	"fmt"
	"os"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/render/styles"
)

// PointsPerMM converts millimetres to PDF points.
const PointsPerMM = 72 / 25.4

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	palette styles.Palette
	unit    float64
	margin  float64
}

// WithPDFPalette selects the stroke palette. Colours are reduced to their
// gray level.
func WithPDFPalette(p styles.Palette) PDFOption { return func(r *pdfRenderer) { r.palette = p } }

// WithPDFUnit sets how many PDF points one puzzle unit spans. The default
// treats puzzle units as millimetres.
func WithPDFUnit(points float64) PDFOption { return func(r *pdfRenderer) { r.unit = points } }

// WithPDFMargin adds a blank margin, in puzzle units, around the puzzle.
func WithPDFMargin(m float64) PDFOption { return func(r *pdfRenderer) { r.margin = m } }

// RenderPDF draws the puzzle on a single page sized to fit it, with round
// caps and joins. The document is written through a temporary file because
// the single-page writer takes a file name.
func RenderPDF(p *puzzle.Puzzle, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{palette: styles.Monochrome(), unit: PointsPerMM}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.unit > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pdf unit must be positive, got %v", r.unit)
	}
	if err := errors.ValidateNonNegative("pdf margin", r.margin); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "jigsaw-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := r.write(name, p); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return data, nil
}

func (r pdfRenderer) write(name string, p *puzzle.Puzzle) error {
	w := p.Config.Width + 2*r.margin
	h := p.Config.Height + 2*r.margin
	paper := &pdf.Rectangle{URx: w * r.unit, URy: h * r.unit}

	page, err := document.CreateSinglePage(name, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}

	// PDF origin is bottom-left; puzzle coordinates are top-left.
	page.Transform(matrix.Matrix{r.unit, 0, 0, -r.unit, r.margin * r.unit, (h - r.margin) * r.unit})

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, np := range p.Paths {
		stroke := r.palette.For(np.Style)
		page.SetStrokeColor(color.DeviceGray(stroke.Gray()))
		page.SetLineWidth(stroke.Width)
		for cmd, pts := range pathData(np.Commands).Iter() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Stroke()
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
