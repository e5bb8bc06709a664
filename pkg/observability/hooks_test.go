package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, 15, 10)
	g.OnGenerateComplete(ctx, 24, time.Second, nil)
	g.OnRenderStart(ctx, []string{"svg"})
	g.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "svg")
	c.OnCacheMiss(ctx, "pdf")
	c.OnCacheSet(ctx, "png", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/healthz")
	s.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	custom := &countingHooks{}
	SetGenerateHooks(custom)
	SetCacheHooks(custom)
	SetServerHooks(custom)
	if Generate() != custom || Cache() != custom || Server() != custom {
		t.Error("Set* should register custom hooks")
	}

	// nil is ignored
	SetGenerateHooks(nil)
	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should keep existing hooks")
	}

	Cache().OnCacheHit(context.Background(), "svg")
	if custom.hits != 1 {
		t.Errorf("hits = %d, want 1", custom.hits)
	}

	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset should restore no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnGenerateStart(ctx, 3, 2)
	h.OnGenerateComplete(ctx, 4, time.Millisecond, nil)
	h.OnGenerateComplete(ctx, 0, time.Millisecond, errors.New("boom"))
	h.OnCacheSet(ctx, "svg", 10)
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"generate start", "generate done", "generate failed", "boom", "cache set", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type countingHooks struct {
	NoopGenerateHooks
	NoopServerHooks
	hits int
}

func (c *countingHooks) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingHooks) OnCacheMiss(context.Context, string)     {}
func (c *countingHooks) OnCacheSet(context.Context, string, int) {}
