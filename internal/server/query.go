package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// optionsFromQuery applies query parameters on top of the defaults. Parameter
// names match the JSON field names of pipeline.Options.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	floats := map[string]*float64{
		"width":               &opts.Width,
		"height":              &opts.Height,
		"tab_size":            &opts.TabSize,
		"jitter":              &opts.Jitter,
		"intersection_jitter": &opts.IntersectionJitter,
		"stroke_width":        &opts.StrokeWidth,
		"offset_x":            &opts.OffsetX,
		"offset_y":            &opts.OffsetY,
		"scale":               &opts.Scale,
	}
	ints := map[string]*int{
		"tiles_across": &opts.TilesAcross,
		"tiles_down":   &opts.TilesDown,
	}
	bools := map[string]*bool{
		"pieces":   &opts.Pieces,
		"detailed": &opts.Detailed,
	}
	strs := map[string]*string{
		"palette": &opts.Palette,
		"units":   &opts.Units,
	}

	for key, vals := range q {
		v := vals[len(vals)-1]
		var err error
		switch {
		case floats[key] != nil:
			*floats[key], err = strconv.ParseFloat(v, 64)
		case ints[key] != nil:
			*ints[key], err = strconv.Atoi(v)
		case bools[key] != nil:
			*bools[key], err = strconv.ParseBool(v)
		case strs[key] != nil:
			*strs[key] = v
		case key == "seed":
			opts.Seed, err = strconv.ParseUint(v, 10, 64)
		default:
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "unknown parameter %q", key)
		}
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, v)
		}
	}
	return opts, nil
}
