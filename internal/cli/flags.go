package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// optionFlags binds the puzzle and render flags shared by generate, inspect
// and tune. Flags write into opts; resolve layers them over --config.
type optionFlags struct {
	opts       pipeline.Options
	configPath string
	formats    string

	// copy moves the value of a changed flag from the flag-bound options
	// onto the options loaded from the config file.
	copy map[string]func(dst, src *pipeline.Options)
}

func newOptionFlags() *optionFlags {
	return &optionFlags{
		opts: pipeline.DefaultOptions(),
		copy: map[string]func(dst, src *pipeline.Options){
			"width":               func(d, s *pipeline.Options) { d.Width = s.Width },
			"height":              func(d, s *pipeline.Options) { d.Height = s.Height },
			"across":              func(d, s *pipeline.Options) { d.TilesAcross = s.TilesAcross },
			"down":                func(d, s *pipeline.Options) { d.TilesDown = s.TilesDown },
			"tab-size":            func(d, s *pipeline.Options) { d.TabSize = s.TabSize },
			"jitter":              func(d, s *pipeline.Options) { d.Jitter = s.Jitter },
			"intersection-jitter": func(d, s *pipeline.Options) { d.IntersectionJitter = s.IntersectionJitter },
			"seed":                func(d, s *pipeline.Options) { d.Seed = s.Seed },
			"palette":             func(d, s *pipeline.Options) { d.Palette = s.Palette },
			"stroke-width":        func(d, s *pipeline.Options) { d.StrokeWidth = s.StrokeWidth },
			"offset-x":            func(d, s *pipeline.Options) { d.OffsetX = s.OffsetX },
			"offset-y":            func(d, s *pipeline.Options) { d.OffsetY = s.OffsetY },
			"units":               func(d, s *pipeline.Options) { d.Units = s.Units },
			"scale":               func(d, s *pipeline.Options) { d.Scale = s.Scale },
			"pieces":              func(d, s *pipeline.Options) { d.Pieces = s.Pieces },
			"detailed":            func(d, s *pipeline.Options) { d.Detailed = s.Detailed },
		},
	}
}

// register adds the puzzle flags to cmd. Render flags are added only when
// render is true.
func (f *optionFlags) register(cmd *cobra.Command, render bool) {
	o := &f.opts
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML config file (flags override it)")
	fl.Float64Var(&o.Width, "width", o.Width, "puzzle width")
	fl.Float64Var(&o.Height, "height", o.Height, "puzzle height")
	fl.IntVarP(&o.TilesAcross, "across", "x", o.TilesAcross, "tiles per row")
	fl.IntVarP(&o.TilesDown, "down", "y", o.TilesDown, "tiles per column")
	fl.Float64VarP(&o.TabSize, "tab-size", "t", o.TabSize, "tab size, percent of a tile")
	fl.Float64VarP(&o.Jitter, "jitter", "j", o.Jitter, "curve jitter, percent of a tile")
	fl.Float64Var(&o.IntersectionJitter, "intersection-jitter", o.IntersectionJitter, "corner displacement, percent of a tile")
	fl.Uint64VarP(&o.Seed, "seed", "s", o.Seed, "random seed (0 for a fresh puzzle every run)")

	if !render {
		return
	}
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png, dot, pieces (comma-separated)")
	fl.StringVar(&o.Palette, "palette", o.Palette, "stroke palette: default, monochrome")
	fl.Float64Var(&o.StrokeWidth, "stroke-width", o.StrokeWidth, "stroke width override")
	fl.Float64Var(&o.OffsetX, "offset-x", o.OffsetX, "SVG translation x")
	fl.Float64Var(&o.OffsetY, "offset-y", o.OffsetY, "SVG translation y")
	fl.StringVar(&o.Units, "units", o.Units, "SVG size units, e.g. mm")
	fl.Float64Var(&o.Scale, "scale", o.Scale, "PNG pixels per unit")
	fl.BoolVar(&o.Pieces, "pieces", o.Pieces, "include the piece map in JSON output")
	fl.BoolVar(&o.Detailed, "detailed", o.Detailed, "label piece-graph edges with their cut")
}

// resolve returns the effective options: defaults, then the config file,
// then every flag set explicitly on the command line.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := f.opts
	if f.configPath != "" {
		base, err := pipeline.LoadOptionsFile(f.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		cmd.Flags().Visit(func(fl *pflag.Flag) {
			if cp := f.copy[fl.Name]; cp != nil {
				cp(&base, &f.opts)
			}
		})
		opts = base
	}
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	return opts, nil
}
