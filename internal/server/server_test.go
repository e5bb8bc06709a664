package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(fc, nil, logger), store.NewMemoryStore(), logger)
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body healthBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		target      string
		contentType string
		prefix      string
	}{
		{"/puzzle.svg?seed=3&tiles_across=4&tiles_down=3", "image/svg+xml", "<svg"},
		{"/puzzle.json?seed=3&tiles_across=4&tiles_down=3&pieces=true", "application/json", "{"},
		{"/puzzle.dot?seed=3", "text/vnd.graphviz; charset=utf-8", "digraph"},
	}
	for _, tt := range tests {
		w := do(t, srv, "GET", tt.target, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d: %s", tt.target, w.Code, w.Body.String())
			continue
		}
		if got := w.Header().Get("Content-Type"); got != tt.contentType {
			t.Errorf("GET %s Content-Type = %q, want %q", tt.target, got, tt.contentType)
		}
		if !strings.HasPrefix(strings.TrimSpace(w.Body.String()), tt.prefix) {
			t.Errorf("GET %s body does not start with %q", tt.target, tt.prefix)
		}
	}
}

func TestGenerateCached(t *testing.T) {
	srv := newTestServer(t)
	first := do(t, srv, "GET", "/puzzle.svg?seed=8", "")
	second := do(t, srv, "GET", "/puzzle.svg?seed=8", "")

	if got := first.Header().Get("X-Jigsaw-Cache"); got != "miss" {
		t.Errorf("first X-Jigsaw-Cache = %q, want miss", got)
	}
	if got := second.Header().Get("X-Jigsaw-Cache"); got != "hit" {
		t.Errorf("second X-Jigsaw-Cache = %q, want hit", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs")
	}

	unseeded := do(t, srv, "GET", "/puzzle.svg", "")
	if got := unseeded.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("unseeded Cache-Control = %q, want no-store", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/puzzle.svg?tiles_across=0", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/puzzle.svg?width=-5", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/puzzle.svg?width=wide", http.StatusBadRequest, "INVALID_INPUT"},
		{"/puzzle.svg?colour=red", http.StatusBadRequest, "INVALID_INPUT"},
		{"/puzzle.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/puzzle.svg?units=" + url.QueryEscape(`"><script>alert(1)</script>`), http.StatusBadRequest, "INVALID_INPUT"},
		{"/puzzle.svg?tiles_across=100000&tiles_down=100000", http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"/nowhere", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		w := do(t, srv, "GET", tt.target, "")
		if w.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.target, w.Code, tt.status)
			continue
		}
		if body := decodeError(t, w); body.Code != tt.code {
			t.Errorf("GET %s code = %q, want %q", tt.target, body.Code, tt.code)
		}
	}
}

func TestArchiveFlow(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, "POST", "/api/puzzles", `{"tiles_across": 5, "tiles_down": 4}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID      string           `json:"id"`
		Options pipeline.Options `json:"options"`
		Links   map[string]string
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created ID is empty")
	}
	if created.Options.Seed == 0 {
		t.Error("archived seed is zero")
	}
	if loc := w.Header().Get("Location"); loc != "/api/puzzles/"+created.ID {
		t.Errorf("Location = %q", loc)
	}
	if got := created.Links["svg"]; got != "/api/puzzles/"+created.ID+"/svg" {
		t.Errorf("svg link = %q", got)
	}

	w = do(t, srv, "GET", "/api/puzzles/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, srv, "GET", "/api/puzzles", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list listBody
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list.Puzzles) != 1 || list.Puzzles[0].ID != created.ID {
		t.Errorf("list = %+v, want the created record", list.Puzzles)
	}

	first := do(t, srv, "GET", "/api/puzzles/"+created.ID+"/svg", "")
	second := do(t, srv, "GET", "/api/puzzles/"+created.ID+"/svg", "")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("render status = %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("archived puzzle renders differently on repeat")
	}
}

func TestArchiveErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method, target, body string
		status               int
	}{
		{"POST", "/api/puzzles", `{"tiles_across": 0}`, http.StatusBadRequest},
		{"POST", "/api/puzzles", `{"colour": "red"}`, http.StatusBadRequest},
		{"POST", "/api/puzzles", `not json`, http.StatusBadRequest},
		{"POST", "/api/puzzles", `{"units": "\"><script>alert(1)</script>"}`, http.StatusBadRequest},
		{"POST", "/api/puzzles", `{"tiles_across": 5000, "tiles_down": 5000}`, http.StatusBadRequest},
		{"GET", "/api/puzzles/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound},
		{"GET", "/api/puzzles/" + url.PathEscape("bad id!"), "", http.StatusBadRequest},
		{"GET", "/api/puzzles?limit=-1", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := do(t, srv, tt.method, tt.target, tt.body)
		if w.Code != tt.status {
			t.Errorf("%s %s status = %d, want %d (%s)", tt.method, tt.target, w.Code, tt.status, w.Body.String())
		}
	}
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	srv := newTestServer(t)
	srv.renderRL = newRateLimiter(1, time.Hour)

	if w := do(t, srv, "GET", "/puzzle.svg?seed=1", ""); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}
	w := do(t, srv, "GET", "/puzzle.svg?seed=1", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "3600" {
		t.Errorf("Retry-After = %q, want 3600", got)
	}
	if body := decodeError(t, w); body.Code != "RATE_LIMITED" {
		t.Errorf("code = %q, want RATE_LIMITED", body.Code)
	}
	// Archive listing is not limited.
	if w := do(t, srv, "GET", "/api/puzzles", ""); w.Code != http.StatusOK {
		t.Errorf("list status = %d, want 200", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Hour)
	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("a") {
		t.Error("third request should be limited")
	}
	if !rl.allow("b") {
		t.Error("other visitor should pass")
	}
}

func TestOptionsFromQuery(t *testing.T) {
	q := url.Values{
		"width":        {"120"},
		"tiles_across": {"6"},
		"seed":         {"99"},
		"pieces":       {"true"},
		"palette":      {"monochrome"},
	}
	opts, err := optionsFromQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Width != 120 || opts.TilesAcross != 6 || opts.Seed != 99 || !opts.Pieces || opts.Palette != "monochrome" {
		t.Errorf("optionsFromQuery = %+v", opts)
	}
	if opts.Height != pipeline.DefaultOptions().Height {
		t.Errorf("Height = %v, want default", opts.Height)
	}
}
