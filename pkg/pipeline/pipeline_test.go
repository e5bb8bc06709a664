package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"pieces", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	if err := ValidateFormats([]string{"svg", "svg"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Repeated format error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, PDF ,png", []string{"svg", "pdf", "png"}},
		{"svg,,", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseFormats(tt.in)); diff != "" {
			t.Errorf("ParseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"defaults", func(*Options) {}, ""},
		{"zero tiles", func(o *Options) { o.TilesAcross = 0 }, errors.ErrCodeInvalidConfiguration},
		{"negative width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidConfiguration},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
		{"bad palette", func(o *Options) { o.Palette = "neon" }, errors.ErrCodeInvalidInput},
		{"negative stroke", func(o *Options) { o.StrokeWidth = -0.5 }, errors.ErrCodeInvalidConfiguration},
		{"units mm", func(o *Options) { o.Units = "mm" }, ""},
		{"units markup", func(o *Options) { o.Units = `"><script>alert(1)</script>` }, errors.ErrCodeInvalidInput},
		{"units unknown", func(o *Options) { o.Units = "furlong" }, errors.ErrCodeInvalidInput},
		{"max tiles", func(o *Options) { o.TilesAcross, o.TilesDown = 100, 100 }, ""},
		{"too many tiles", func(o *Options) { o.TilesAcross, o.TilesDown = 100, 101 }, errors.ErrCodeInvalidConfiguration},
		{"huge grid", func(o *Options) { o.TilesAcross, o.TilesDown = 100_000, 100_000 }, errors.ErrCodeInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if diff := cmp.Diff([]string{FormatSVG}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", opts.Palette, DefaultPalette)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
	if opts.TilesAcross != 0 {
		t.Errorf("TilesAcross = %d, want 0 (puzzle fields untouched)", opts.TilesAcross)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, ctype string
	}{
		{FormatSVG, "svg", "image/svg+xml"},
		{FormatJSON, "json", "application/json"},
		{FormatPDF, "pdf", "application/pdf"},
		{FormatPNG, "png", "image/png"},
		{FormatDOT, "dot", "text/vnd.graphviz; charset=utf-8"},
		{FormatPieces, "pieces.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%q) = %q, want %q", tt.format, got, tt.ext)
		}
		if got := ContentType(tt.format); got != tt.ctype {
			t.Errorf("ContentType(%q) = %q, want %q", tt.format, got, tt.ctype)
		}
	}
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.TilesAcross, opts.TilesDown = 3, 2
	opts.Seed = 9
	p, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		format string
		prefix string
	}{
		{FormatSVG, "<svg"},
		{FormatJSON, "{"},
		{FormatDOT, "digraph"},
	}
	for _, tt := range tests {
		data, err := Render(context.Background(), p, tt.format, opts)
		if err != nil {
			t.Errorf("Render(%s) error: %v", tt.format, err)
			continue
		}
		if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(tt.prefix)) {
			t.Errorf("Render(%s) starts with %q, want %q", tt.format, firstLine(data), tt.prefix)
		}
	}

	if _, err := Render(context.Background(), p, "gif", opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerExecute(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Seed = 42
	opts.Formats = []string{FormatSVG, FormatJSON}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(first.CacheHits) != 0 {
		t.Errorf("first run CacheHits = %v, want none", first.CacheHits)
	}
	if got, want := len(first.Puzzle.Paths), opts.TilesDown-1+opts.TilesAcross-1+1; got != want {
		t.Errorf("paths = %d, want %d", got, want)
	}
	if first.Stats.Segments == 0 {
		t.Error("Stats.Segments = 0")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if diff := cmp.Diff([]string{FormatSVG, FormatJSON}, second.CacheHits); diff != "" {
		t.Errorf("CacheHits mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}

	// A different palette must not hit the SVG cached above.
	opts.Palette = "monochrome"
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(third.CacheHits) != 0 {
		t.Errorf("palette change CacheHits = %v, want none", third.CacheHits)
	}
}

func TestRunnerSeedZeroNotCached(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	opts := DefaultOptions()
	opts.Seed = 0
	for range 2 {
		result, err := runner.Execute(context.Background(), opts)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if len(result.CacheHits) != 0 {
			t.Errorf("CacheHits = %v, want none for seed 0", result.CacheHits)
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries, want 0", len(entries))
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.TilesDown = 0
	if _, err := runner.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("Execute error = %v, want %s", err, errors.ErrCodeInvalidConfiguration)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.Seed = 1
	if _, err := runner.Execute(ctx, opts); err != context.Canceled {
		t.Errorf("Execute error = %v, want %v", err, context.Canceled)
	}
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jigsaw.toml")
	content := `width = 400
tiles_across = 20
seed = 7
formats = ["svg", "pdf"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}

	want := DefaultOptions()
	want.Width = 400
	want.TilesAcross = 20
	want.Seed = 7
	want.Formats = []string{"svg", "pdf"}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("tiles = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadOptionsFile(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidConfiguration)
	}
	if !strings.Contains(err.Error(), "tiles") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 99
	opts.Formats = []string{"png"}

	var buf bytes.Buffer
	if err := EncodeTOML(&buf, opts); err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}
	if diff := cmp.Diff(opts, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOptionsJSON(t *testing.T) {
	opts, err := DecodeOptionsJSON(strings.NewReader(`{"tiles_across": 4, "tiles_down": 3, "seed": 5}`))
	if err != nil {
		t.Fatalf("DecodeOptionsJSON: %v", err)
	}
	if opts.TilesAcross != 4 || opts.TilesDown != 3 || opts.Seed != 5 {
		t.Errorf("decoded %dx%d seed %d, want 4x3 seed 5", opts.TilesAcross, opts.TilesDown, opts.Seed)
	}
	if opts.Width != DefaultOptions().Width {
		t.Errorf("Width = %v, want default", opts.Width)
	}

	if _, err := DecodeOptionsJSON(strings.NewReader(`{"colour": "red"}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown field error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	opts, err = DecodeOptionsJSON(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty body: %v", err)
	}
	if diff := cmp.Diff(DefaultOptions(), opts); diff != "" {
		t.Errorf("empty body mismatch (-want +got):\n%s", diff)
	}
}

func firstLine(b []byte) string {
	line, _, _ := bytes.Cut(b, []byte("\n"))
	return string(line)
}
