package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
	"github.com/matzehuels/jigsaw/pkg/random"
)

// Tuning limits.
const (
	maxTunedTiles = 60
	jitterStep    = 1.0
	tabStep       = 1.0
)

var (
	tuneKeyStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	tuneHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	tuneErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) tuneCommand() *cobra.Command {
	flags := newOptionFlags()
	var outDir string

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Explore tile counts, tab size, jitter and seeds interactively",
		Long: `Open an interactive view of the piece map.

Keys:
  ←/→  tiles across    ↑/↓  tiles down
  +/-  jitter          [/]  tab size
  r    new seed        w    write SVG
  q    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			m := newTuneModel(cmd.Context(), opts, outDir)
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(tuneModel); ok {
				printDetail("Final: %s", fm.opts)
			}
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&outDir, "dir", ".", "directory for SVGs written with w")
	return cmd
}

// =============================================================================
// tuneModel - Interactive puzzle explorer
// =============================================================================

type tuneModel struct {
	ctx    context.Context
	opts   pipeline.Options
	outDir string

	puzzle *puzzle.Puzzle
	stats  puzzle.Stats
	err    error
	status string
	width  int
}

func newTuneModel(ctx context.Context, opts pipeline.Options, outDir string) tuneModel {
	if opts.Seed == 0 {
		opts.Seed = random.NewSeed()
	}
	opts.SetDefaults()
	m := tuneModel{ctx: ctx, opts: opts, outDir: outDir, width: 80}
	m.regenerate()
	return m
}

func (m *tuneModel) regenerate() {
	m.puzzle, m.err = nil, m.opts.Validate()
	if m.err != nil {
		return
	}
	m.puzzle, m.err = pipeline.Generate(m.opts)
	if m.err == nil {
		m.stats = puzzle.Measure(m.puzzle)
	}
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		o := &m.opts
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			o.TilesAcross = max(o.TilesAcross-1, 1)
		case "right", "l":
			o.TilesAcross = min(o.TilesAcross+1, maxTunedTiles)
		case "up", "k":
			o.TilesDown = max(o.TilesDown-1, 1)
		case "down", "j":
			o.TilesDown = min(o.TilesDown+1, maxTunedTiles)
		case "+", "=":
			o.Jitter += jitterStep
		case "-", "_":
			o.Jitter = max(o.Jitter-jitterStep, 0)
		case "]":
			o.TabSize += tabStep
		case "[":
			o.TabSize = max(o.TabSize-tabStep, 0)
		case "r":
			o.Seed = random.NewSeed()
		case "w":
			m.status, m.err = m.write()
			return m, nil
		default:
			return m, nil
		}
		m.regenerate()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// write renders the current puzzle as SVG into outDir.
func (m tuneModel) write() (string, error) {
	if m.puzzle == nil {
		return "", m.err
	}
	data, err := pipeline.Render(m.ctx, m.puzzle, pipeline.FormatSVG, m.opts)
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.outDir, fmt.Sprintf("puzzle-%d.svg", m.opts.Seed))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return "wrote " + path, nil
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune Puzzle"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.opts.String()))
	b.WriteString("\n")
	b.WriteString(tuneHelpStyle.Render("←/→ across  ↑/↓ down  +/- jitter  [/] tab  r seed  w write  q quit"))
	b.WriteString("\n\n")

	if m.puzzle != nil {
		b.WriteString(knobMap(m.puzzle.Pieces(), m.width))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d segments · %d pieces · cut %.1f · bounds %s – %s",
			m.stats.Segments, m.stats.Pieces, m.stats.CutLength+m.stats.BorderLength,
			m.stats.Bounds.Min, m.stats.Bounds.Max)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(tuneErrStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
		b.WriteString("\n")
	}
	return b.String()
}

// knobMap draws every piece as its four sides clockwise from the top:
// + knob, - socket, . flat. Rows wider than width are cut short.
func knobMap(pieces [][]puzzle.Piece, width int) string {
	const cell = 5 // four symbols and a space
	fit := len(pieces[0])
	if width > 0 && fit*cell > width {
		fit = max(width/cell, 1)
	}

	var b strings.Builder
	for _, row := range pieces {
		for i, pc := range row[:fit] {
			if i > 0 {
				b.WriteByte(' ')
			}
			for _, s := range pc.Sides() {
				b.WriteString(sideStyle(s).Render(s.Symbol()))
			}
		}
		if fit < len(row) {
			b.WriteString(tuneKeyStyle.Render(" …"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
