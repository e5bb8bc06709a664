// Package pipeline provides the generate → render pipeline shared by the CLI
// and the HTTP service.
//
// By centralizing this logic, both entry points apply the same defaults, the
// same validation and the same caching rules.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: validate the options and build the puzzle geometry
//  2. Render: produce each requested format (SVG, JSON, PDF, PNG, DOT or the
//     piece-adjacency SVG)
//
// Rendered artifacts are cached by a hash of the options and the format.
// Puzzles requested with seed zero are never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 42
//	opts.Formats = []string{"svg", "pdf"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultScale is the PNG resolution in pixels per puzzle unit.
	DefaultScale = 2.0

	// DefaultPalette is the default stroke palette.
	DefaultPalette = "default"

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour

	// MaxTiles bounds the number of tiles of one puzzle. The generator itself
	// accepts any size; this limit keeps a single request from exhausting
	// memory.
	MaxTiles = 10_000
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatJSON   = "json"
	FormatPDF    = "pdf"
	FormatPNG    = "png"
	FormatDOT    = "dot"
	FormatPieces = "pieces"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatJSON:   true,
	FormatPDF:    true,
	FormatPNG:    true,
	FormatDOT:    true,
	FormatPieces: true,
}

// FormatNames lists the supported formats in display order.
var FormatNames = []string{FormatSVG, FormatJSON, FormatPDF, FormatPNG, FormatDOT, FormatPieces}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. It serializes to
// JSON for API requests, to TOML for config files and to BSON for the
// archive.
//
// Start from [DefaultOptions]: zero values are taken literally, so a zero
// tile count is rejected rather than replaced.
type Options struct {
	// Puzzle options
	Width              float64 `json:"width" toml:"width" bson:"width"`
	Height             float64 `json:"height" toml:"height" bson:"height"`
	TilesAcross        int     `json:"tiles_across" toml:"tiles_across" bson:"tiles_across"`
	TilesDown          int     `json:"tiles_down" toml:"tiles_down" bson:"tiles_down"`
	TabSize            float64 `json:"tab_size" toml:"tab_size" bson:"tab_size"`
	Jitter             float64 `json:"jitter" toml:"jitter" bson:"jitter"`
	IntersectionJitter float64 `json:"intersection_jitter" toml:"intersection_jitter" bson:"intersection_jitter"`
	Seed               uint64  `json:"seed" toml:"seed" bson:"seed"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats" bson:"formats"`
	Palette     string   `json:"palette,omitempty" toml:"palette" bson:"palette"`
	StrokeWidth float64  `json:"stroke_width,omitempty" toml:"stroke_width" bson:"stroke_width"`
	OffsetX     float64  `json:"offset_x,omitempty" toml:"offset_x" bson:"offset_x"`
	OffsetY     float64  `json:"offset_y,omitempty" toml:"offset_y" bson:"offset_y"`
	Units       string   `json:"units,omitempty" toml:"units" bson:"units"`
	Scale       float64  `json:"scale,omitempty" toml:"scale" bson:"scale"`
	Pieces      bool     `json:"pieces,omitempty" toml:"pieces" bson:"pieces"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed" bson:"detailed"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" bson:"-"`
}

// DefaultOptions returns the puzzle defaults with SVG output.
func DefaultOptions() Options {
	cfg := puzzle.DefaultConfig()
	return Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		TilesAcross: cfg.TilesAcross,
		TilesDown:   cfg.TilesDown,
		TabSize:     cfg.TabSize,
		Jitter:      cfg.Jitter,
		Formats:     []string{FormatSVG},
		Palette:     DefaultPalette,
		Scale:       DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Puzzle is the generated geometry.
	Puzzle *puzzle.Puzzle

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHits lists the formats that were served from the cache.
	CacheHits []string

	// Stats contains puzzle measurements and timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	puzzle.Stats
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills render options left empty. Puzzle fields are not touched.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the puzzle configuration and the render options.
func (o *Options) Validate() error {
	if err := o.Config().Validate(); err != nil {
		return err
	}
	if o.TilesAcross > MaxTiles || o.TilesDown > MaxTiles || o.TilesAcross*o.TilesDown > MaxTiles {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"puzzle of %dx%d tiles exceeds the limit of %d tiles", o.TilesAcross, o.TilesDown, MaxTiles)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, ok := styles.ByName(o.Palette); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown palette %q (must be one of: default, monochrome)", o.Palette)
	}
	if err := errors.ValidateNonNegative("stroke width", o.StrokeWidth); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("scale", o.Scale); err != nil {
		return err
	}
	if !styles.Units[o.Units] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown units %q (must be one of: mm, cm, in, px, pt)", o.Units)
	}
	return nil
}

// Config returns the puzzle configuration part of the options.
func (o Options) Config() puzzle.Config {
	return puzzle.Config{
		Width:              o.Width,
		Height:             o.Height,
		TilesAcross:        o.TilesAcross,
		TilesDown:          o.TilesDown,
		TabSize:            o.TabSize,
		Jitter:             o.Jitter,
		IntersectionJitter: o.IntersectionJitter,
		Seed:               o.Seed,
	}
}

// Cacheable reports whether artifacts for these options may be cached.
func (o Options) Cacheable() bool { return o.Seed != 0 }

// PaletteStyle resolves the palette, applying StrokeWidth when set.
func (o Options) PaletteStyle() styles.Palette {
	p, ok := styles.ByName(o.Palette)
	if !ok {
		p = styles.Default()
	}
	if o.StrokeWidth > 0 {
		p = p.WithWidth(o.StrokeWidth)
	}
	return p
}

// keyView is the part of the options that determines artifact bytes. Formats
// are excluded because every format is cached under its own key.
func (o Options) keyView() Options {
	o.Formats = nil
	o.Logger = nil
	return o
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid and not repeated.
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if slices.Contains(formats[:i], f) {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q requested twice", f)
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case FormatDOT:
		return "dot"
	case FormatPieces:
		return "pieces.svg"
	}
	return format
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatPieces:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "application/octet-stream"
}

// String summarizes the puzzle options for log output.
func (o Options) String() string {
	return fmt.Sprintf("%gx%g %dx%d tab=%g jitter=%g seed=%d", o.Width, o.Height, o.TilesAcross, o.TilesDown, o.TabSize, o.Jitter, o.Seed)
}
