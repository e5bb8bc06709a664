package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/render/styles"
)

const inkscapeNS = "http://www.inkscape.org/namespaces/inkscape"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette          styles.Palette
	offsetX, offsetY float64
	canvasW, canvasH float64
	units            string
}

// WithOffset translates the puzzle group by (x, y).
func WithOffset(x, y float64) SVGOption {
	return func(r *svgRenderer) { r.offsetX, r.offsetY = x, y }
}

// WithCenterOn places the puzzle in the middle of a w×h canvas.
func WithCenterOn(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.canvasW, r.canvasH = w, h }
}

// WithPalette selects the stroke colours and widths.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithUnits sets the unit suffix of the document width and height, e.g. "mm".
// The suffix is XML-escaped; callers taking it from user input should also
// check it against [styles.Units].
func WithUnits(u string) SVGOption { return func(r *svgRenderer) { r.units = u } }

// RenderSVG writes the puzzle as an SVG document. Row cuts and column cuts
// are grouped separately; every path carries its name as id and Inkscape
// label.
func RenderSVG(p *puzzle.Puzzle, opts ...SVGOption) []byte {
	r := svgRenderer{palette: styles.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	w, h := p.Config.Width, p.Config.Height
	cw, ch := w+2*r.offsetX, h+2*r.offsetY
	if r.canvasW > 0 && r.canvasH > 0 {
		cw, ch = r.canvasW, r.canvasH
		r.offsetX, r.offsetY = (cw-w)/2, (ch-h)/2
	}

	units := styles.EscapeXML(r.units)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="%s" viewBox="0 0 %s %s" width="%s%s" height="%s%s">`+"\n",
		inkscapeNS, num(cw), num(ch), num(cw), units, num(ch), units)
	fmt.Fprintf(&buf, `  <g id="Puzzle" inkscape:label="Puzzle" transform="translate(%s,%s)">`+"\n", num(r.offsetX), num(r.offsetY))

	r.renderGroup(&buf, "Rows", p.Rows())
	r.renderGroup(&buf, "Columns", p.Columns())
	r.renderPath(&buf, p.Border(), "    ")

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderGroup(buf *bytes.Buffer, name string, paths []puzzle.NamedPath) {
	fmt.Fprintf(buf, `    <g id="%s" inkscape:label="%s">`+"\n", name, name)
	for _, np := range paths {
		r.renderPath(buf, np, "      ")
	}
	buf.WriteString("    </g>\n")
}

func (r svgRenderer) renderPath(buf *bytes.Buffer, np puzzle.NamedPath, indent string) {
	name := styles.EscapeXML(np.Name)
	fmt.Fprintf(buf, `%s<path id="%s" inkscape:label="%s" style="%s" d="%s"/>`+"\n",
		indent, name, name, styles.EscapeXML(r.palette.For(np.Style).Attr()), np.Data())
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
