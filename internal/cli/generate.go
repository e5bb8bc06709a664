package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/random"
	"github.com/matzehuels/jigsaw/pkg/store"
)

// generateOpts holds the flags of the generate command that are not
// pipeline options.
type generateOpts struct {
	output  string // output base path
	noCache bool   // bypass the artifact cache
	save    bool   // archive the configuration
}

func (c *CLI) generateCommand() *cobra.Command {
	flags := newOptionFlags()
	var gen generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzle cut lines",
		Long: `Generate the cut lines of a puzzle and write one file per format.

Files are named <output>.<ext>; with no --output the name is puzzle-<seed>.`,
		Example: `  jigsaw generate --seed 42
  jigsaw generate -x 20 -y 14 --width 400 --height 280 -f svg,pdf -o frame
  jigsaw generate --config puzzle.toml --seed 7 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, gen)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&gen.output, "output", "o", "", "output base path")
	cmd.Flags().BoolVar(&gen.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&gen.save, "save", false, "archive the configuration for later re-rendering")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, gen generateOpts) error {
	logger := loggerFromContext(ctx)
	opts.SetDefaults()
	if gen.save && opts.Seed == 0 {
		opts.Seed = random.NewSeed()
		logger.Debug("picked seed for archiving", "seed", opts.Seed)
	}

	runner, err := c.newRunner(gen.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := outputBase(gen.output, opts.Seed)
	paths, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printSuccess("Generated %d×%d puzzle", opts.TilesAcross, opts.TilesDown)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, len(result.CacheHits), len(opts.Formats))
	if opts.Seed == 0 {
		printWarning("Seed 0 gives a different puzzle every run; pass --seed to make it reproducible")
	}

	if gen.save {
		rec, err := saveRecord(ctx, opts)
		if err != nil {
			return err
		}
		printKeyValue("archived", rec.ID)
		printNextStep("Render it again", "jigsaw archive render "+rec.ID)
	}
	return nil
}

func saveRecord(ctx context.Context, opts pipeline.Options) (*store.Record, error) {
	archive, err := openArchive()
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	rec, err := store.NewRecord(opts)
	if err != nil {
		return nil, err
	}
	if err := archive.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// outputBase derives the base output path. A known format extension on
// output is stripped so "-o cut.svg -f svg,pdf" writes cut.svg and cut.pdf.
func outputBase(output string, seed uint64) string {
	if output == "" {
		if seed == 0 {
			return "puzzle"
		}
		return fmt.Sprintf("puzzle-%d", seed)
	}
	// pieces first: its extension ends in .svg
	for _, f := range append([]string{pipeline.FormatPieces}, pipeline.FormatNames...) {
		if ext := "." + pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := base + "." + pipeline.Extension(format)
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
