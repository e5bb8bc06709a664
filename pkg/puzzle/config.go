package puzzle

import (
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Default configuration values.
const (
	DefaultWidth       = 300.0
	DefaultHeight      = 200.0
	DefaultTilesAcross = 15
	DefaultTilesDown   = 10
	DefaultTabSize     = 15.0
	DefaultJitter      = 4.0
)

// Config describes one puzzle. Percentages are given in the units users type
// on the command line: TabSize 15 means a tab spanning 15% of the cell edge.
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	TilesAcross int `json:"tiles_across"`
	TilesDown   int `json:"tiles_down"`

	// TabSize is the full tab width in percent of the edge length.
	TabSize float64 `json:"tab_size"`
	// Jitter is the maximum control-point displacement in percent.
	Jitter float64 `json:"jitter"`
	// IntersectionJitter displaces interior grid points by up to this many
	// percent of the cell size.
	IntersectionJitter float64 `json:"intersection_jitter"`

	// Seed selects the random stream. Zero means non-reproducible entropy.
	Seed uint64 `json:"seed"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		TilesAcross: DefaultTilesAcross,
		TilesDown:   DefaultTilesDown,
		TabSize:     DefaultTabSize,
		Jitter:      DefaultJitter,
	}
}

// Validate reports the first invalid field as an INVALID_CONFIGURATION error.
// Large tab sizes are accepted: they produce overlapping but well-defined
// geometry.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("width", c.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("height", c.Height); err != nil {
		return err
	}
	if err := errors.ValidateCount("tiles across", c.TilesAcross); err != nil {
		return err
	}
	if err := errors.ValidateCount("tiles down", c.TilesDown); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("tab size", c.TabSize); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("jitter", c.Jitter); err != nil {
		return err
	}
	return errors.ValidateNonNegative("intersection jitter", c.IntersectionJitter)
}

// HalfTab is half the tab width as a fraction of the edge length.
func (c Config) HalfTab() float64 { return c.TabSize / 200 }

// JitterFrac is Jitter as a fraction.
func (c Config) JitterFrac() float64 { return c.Jitter / 100 }

// IntersectionJitterFrac is IntersectionJitter as a fraction.
func (c Config) IntersectionJitterFrac() float64 { return c.IntersectionJitter / 100 }

// Segments is the number of tabbed curve segments the puzzle contains.
func (c Config) Segments() int {
	return (c.TilesDown-1)*c.TilesAcross + (c.TilesAcross-1)*c.TilesDown
}
