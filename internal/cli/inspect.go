package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

type inspectOpts struct {
	joints bool // list every interlock instead of the piece table
	json   bool // print stats as JSON
}

func (c *CLI) inspectCommand() *cobra.Command {
	flags := newOptionFlags()
	var ins inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print statistics and the piece table for a puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return runInspect(cmd.Context(), opts, ins)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&ins.joints, "joints", false, "list every knob/socket interlock")
	cmd.Flags().BoolVar(&ins.json, "json", false, "print statistics as JSON")
	return cmd
}

func runInspect(ctx context.Context, opts pipeline.Options, ins inspectOpts) error {
	logger := loggerFromContext(ctx)
	if err := opts.Validate(); err != nil {
		return err
	}
	p, err := pipeline.Generate(opts)
	if err != nil {
		return err
	}
	st := puzzle.Measure(p)
	logger.Debug("measured puzzle", "paths", len(p.Paths), "segments", st.Segments)

	if ins.json {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	printStatsBlock(p, st)
	printNewline()
	if ins.joints {
		fmt.Fprintln(stdout, jointTable(p.Joints()))
	} else {
		fmt.Fprintln(stdout, pieceTable(p.Pieces()))
	}
	return nil
}

func printStatsBlock(p *puzzle.Puzzle, st puzzle.Stats) {
	cfg := p.Config
	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Puzzle %g×%g", cfg.Width, cfg.Height)))
	printKeyValue("tiles", fmt.Sprintf("%d × %d", cfg.TilesAcross, cfg.TilesDown))
	seed := "random"
	if p.Seed != 0 {
		seed = strconv.FormatUint(p.Seed, 10)
	}
	printKeyValue("seed", seed)
	printKeyValue("cuts", fmt.Sprintf("%d rows, %d columns", st.Rows, st.Columns))
	printKeyValue("segments", strconv.Itoa(st.Segments))
	printKeyValue("commands", strconv.Itoa(st.Commands))

	kinds := map[string]int{}
	for _, row := range p.Pieces() {
		for _, pc := range row {
			kinds[pc.Kind()]++
		}
	}
	printKeyValue("pieces", fmt.Sprintf("%d (%d corner, %d edge, %d interior)",
		st.Pieces, kinds["corner"], kinds["edge"], kinds["interior"]))
	printKeyValue("cut length", fmt.Sprintf("%.2f + %.2f border", st.CutLength, st.BorderLength))
	printKeyValue("bounds", fmt.Sprintf("%s – %s", st.Bounds.Min, st.Bounds.Max))
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func sideCell(s puzzle.Side) string { return sideStyle(s).Render(s.String()) }

func pieceTable(pieces [][]puzzle.Piece) string {
	var rows [][]string
	for _, row := range pieces {
		for _, pc := range row {
			rows = append(rows, []string{
				pc.Tile.String(),
				sideCell(pc.Top), sideCell(pc.Right), sideCell(pc.Bottom), sideCell(pc.Left),
				strconv.Itoa(pc.Count(puzzle.Knob)),
				pc.Kind(),
			})
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tile", "Top", "Right", "Bottom", "Left", "Knobs", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func jointTable(joints []puzzle.Joint) string {
	rows := make([][]string, len(joints))
	for i, j := range joints {
		rows[i] = []string{j.Path, strconv.Itoa(j.Segment), j.Knob.String(), j.Socket.String()}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Path", "Segment", "Knob", "Socket").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
