package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts, generates the puzzle and renders every requested
// format. Formats found in the cache are not rendered again.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	// Stage 1: Generate
	cfg := opts.Config()
	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, cfg.TilesAcross, cfg.TilesDown)
	start := time.Now()
	p, err := puzzle.Generate(cfg)
	result.Stats.GenerateTime = time.Since(start)
	if err != nil {
		hooks.OnGenerateComplete(ctx, 0, result.Stats.GenerateTime, err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, len(p.Paths), result.Stats.GenerateTime, nil)
	result.Puzzle = p
	result.Stats.Stats = puzzle.Measure(p)

	r.Logger.Info("generated puzzle",
		"tiles", fmt.Sprintf("%dx%d", cfg.TilesAcross, cfg.TilesDown),
		"paths", len(p.Paths),
		"seed", p.Seed,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	start = time.Now()
	err = r.render(ctx, p, opts, result)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheHits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) render(ctx context.Context, p *puzzle.Puzzle, opts Options, result *Result) error {
	cacheable := opts.Cacheable()
	if !cacheable {
		r.Logger.Debug("seed is zero, skipping cache")
	}
	hash := r.Keyer.OptionsHash(opts.keyView())
	hooks := observability.Cache()

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := r.Keyer.ArtifactKey(hash, format)

		if cacheable {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, format)
				result.Artifacts[format] = data
				result.CacheHits = append(result.CacheHits, format)
				continue
			} else if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			hooks.OnCacheMiss(ctx, format)
		}

		data, err := Render(ctx, p, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "error", err)
			} else {
				hooks.OnCacheSet(ctx, format, len(data))
			}
		}
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
