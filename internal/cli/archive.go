package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/store"
)

// archiveCommand manages puzzles saved with generate --save.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List and re-render archived puzzles",
	}
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveRenderCommand())
	return cmd
}

func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived puzzles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			recs, err := archive.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printInfo("Archive is empty")
				printDetail("Directory: %s", archive.Dir())
				return nil
			}
			fmt.Fprintln(stdout, recordTable(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of puzzles")
	return cmd
}

func (c *CLI) archiveRenderCommand() *cobra.Command {
	var gen generateOpts
	var formats string

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render an archived puzzle again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArchiveRender(cmd.Context(), args[0], formats, gen)
		},
	}
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s), comma-separated (default svg)")
	cmd.Flags().StringVarP(&gen.output, "output", "o", "", "output base path")
	cmd.Flags().BoolVar(&gen.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runArchiveRender(ctx context.Context, id, formats string, gen generateOpts) error {
	archive, err := openArchive()
	if err != nil {
		return err
	}
	rec, err := archive.Get(ctx, id)
	if err != nil {
		return err
	}
	opts := rec.Options
	if formats != "" {
		opts.Formats = pipeline.ParseFormats(formats)
	}
	return c.runGenerate(ctx, opts, gen)
}

func recordTable(recs []store.Record) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		o := r.Options
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format("Jan 2 15:04"),
			fmt.Sprintf("%d×%d", o.TilesAcross, o.TilesDown),
			fmt.Sprintf("%g×%g", o.Width, o.Height),
			strconv.FormatUint(o.Seed, 10),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Tiles", "Size", "Seed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
