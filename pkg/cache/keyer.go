package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// OptionsHash reduces a JSON-serializable options value to a stable hash.
	OptionsHash(opts any) string
	// ArtifactKey names the rendered artifact of one format for the options
	// identified by optionsHash.
	ArtifactKey(optionsHash, format string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OptionsHash hashes the JSON encoding of opts.
func (DefaultKeyer) OptionsHash(opts any) string {
	return hashJSON("opts", opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(optionsHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, optionsHash)
}
