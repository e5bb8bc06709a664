// Package styles defines the stroke palettes used by the output sinks.
//
// The core generator only tags each path as an outline, horizontal or vertical
// cut; the palette decides what those tags look like. [Default] reproduces the
// classic colouring (red outline, green rows, blue columns) so the three sets
// of cuts can be told apart in an editor. [Monochrome] draws everything in
// black, which is what laser cutters and plotters expect.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// DefaultWidth is the stroke width in puzzle units.
const DefaultWidth = 0.1

// Stroke describes how one class of path is drawn.
type Stroke struct {
	Color string  // CSS hex colour, e.g. "#00ba00"
	Width float64 // in puzzle units
}

// RGBA parses Color. Unparseable colours fall back to opaque black.
func (s Stroke) RGBA() color.RGBA {
	c, err := ParseHex(s.Color)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

// Gray returns the luminance of Color in [0, 1].
func (s Stroke) Gray() float64 {
	c := s.RGBA()
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return y / 255
}

// Attr formats the stroke as an SVG style attribute value.
func (s Stroke) Attr() string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", s.Color, strconv.FormatFloat(s.Width, 'f', -1, 64))
}

// Palette maps each path style to a stroke.
type Palette struct {
	Name       string
	Outline    Stroke
	Horizontal Stroke
	Vertical   Stroke
}

// For returns the stroke for tag.
func (p Palette) For(tag puzzle.StyleTag) Stroke {
	switch tag {
	case puzzle.Horizontal:
		return p.Horizontal
	case puzzle.Vertical:
		return p.Vertical
	default:
		return p.Outline
	}
}

// WithWidth returns a copy of p with every stroke set to width w.
func (p Palette) WithWidth(w float64) Palette {
	p.Outline.Width = w
	p.Horizontal.Width = w
	p.Vertical.Width = w
	return p
}

// Default is the colour-coded palette.
func Default() Palette {
	return Palette{
		Name:       "default",
		Outline:    Stroke{Color: "#FF0000", Width: DefaultWidth},
		Horizontal: Stroke{Color: "#00ba00", Width: DefaultWidth},
		Vertical:   Stroke{Color: "#0000ff", Width: DefaultWidth},
	}
}

// Monochrome draws every path in black.
func Monochrome() Palette {
	black := Stroke{Color: "#000000", Width: DefaultWidth}
	return Palette{Name: "monochrome", Outline: black, Horizontal: black, Vertical: black}
}

// ByName returns the palette called name ("default" or "monochrome").
func ByName(name string) (Palette, bool) {
	switch strings.ToLower(name) {
	case "", "default", "color", "colour":
		return Default(), true
	case "monochrome", "mono", "black":
		return Monochrome(), true
	}
	return Palette{}, false
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Units lists the length units accepted for document sizes. The empty string
// means unitless user units.
var Units = map[string]bool{"": true, "mm": true, "cm": true, "in": true, "px": true, "pt": true}
