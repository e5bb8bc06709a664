package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

// LoadOptionsFile reads a TOML config file on top of the defaults. Keys the
// file does not set keep their default; unknown keys are rejected.
//
//	width = 400
//	tiles_across = 20
//	seed = 7
//	formats = ["svg", "pdf"]
func LoadOptionsFile(path string) (Options, error) {
	return loadOptions(path, DefaultOptions())
}

// LoadOptionsFileInto decodes path on top of base.
func LoadOptionsFileInto(path string, base Options) (Options, error) {
	return loadOptions(path, base)
}

func loadOptions(path string, opts Options) (Options, error) {
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidConfiguration, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// DecodeOptionsJSON reads a JSON request body on top of the defaults.
// Unknown fields are rejected.
func DecodeOptionsJSON(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
	}
	return opts, nil
}

// EncodeTOML writes opts as a TOML config file.
func EncodeTOML(w io.Writer, opts Options) error {
	if err := toml.NewEncoder(w).Encode(opts); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}
