package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

// stdout receives all command output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Terminal colours (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

// Knob map cells. Knobs stand out, sockets are muted, border sides fade away.
var (
	styleKnob   = lipgloss.NewStyle().Foreground(colorGreen)
	styleSocket = lipgloss.NewStyle().Foreground(colorYellow)
	styleFlat   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

func sideStyle(s puzzle.Side) lipgloss.Style {
	switch s {
	case puzzle.Knob:
		return styleKnob
	case puzzle.Socket:
		return styleSocket
	default:
		return styleFlat
	}
}

func printLine(icon string, iconStyle lipgloss.Style, msg string) {
	fmt.Fprintln(stdout, iconStyle.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(iconSuccess, styleIconSuccess, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(iconWarning, styleIconWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(iconInfo, styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints a muted line indented under the previous message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports one written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats summarizes a run on one line: the puzzle's size, its total cut
// length, and how many of the artifacts came from the cache.
func printStats(st pipeline.Stats, cached, total int) {
	parts := []string{
		fmt.Sprintf("%d paths", len(st.Paths)),
		fmt.Sprintf("%d segments", st.Segments),
		fmt.Sprintf("%d pieces", st.Pieces),
		fmt.Sprintf("cut %.1f", st.CutLength+st.BorderLength),
	}
	for i, part := range parts {
		parts[i] = StyleDim.Render(part)
	}

	var status string
	switch {
	case total > 0 && cached == total:
		status = styleIconSuccess.Render("cached")
	case cached > 0:
		status = styleIconSuccess.Render(fmt.Sprintf("%d/%d cached", cached, total))
	default:
		status = styleIconInfo.Render("fresh")
	}
	parts = append(parts, status)

	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(separator)))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
