package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/puzzle"
)

func testPuzzle(t *testing.T) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.Generate(puzzle.Config{Width: 90, Height: 60, TilesAcross: 3, TilesDown: 2, TabSize: 20, Seed: 12})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return p
}

func TestToDOT(t *testing.T) {
	p := testPuzzle(t)
	dot := ToDOT(p, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT does not start with digraph header")
	}
	for _, id := range []string{`"r0c0"`, `"r0c2"`, `"r1c0"`, `"r1c2"`} {
		if !strings.Contains(dot, id+" [") {
			t.Errorf("DOT missing node %s", id)
		}
	}
	if got := strings.Count(dot, "->"); got != p.Config.Segments() {
		t.Errorf("edges = %d, want %d", got, p.Config.Segments())
	}
	if got := strings.Count(dot, "rank=same"); got != 2 {
		t.Errorf("rank groups = %d, want 2", got)
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("corner pieces are not shaded")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testPuzzle(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="row1/`) {
		t.Error("detailed DOT has no cut labels on edges")
	}
	if !strings.Contains(dot, `corner"`) {
		t.Error("detailed DOT has no piece kinds")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testPuzzle(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "r1c2") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
