package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopChartHooks{}
	c.OnUpdateStart(10, 4)
	c.OnUpdateComplete(UpdateStats{Nodes: 10, Links: 4, Markers: 2}, time.Millisecond)
	c.OnUnresolvedLink("1", "99")

	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "svg")
	k.OnCacheMiss(ctx, "png")
	k.OnCacheSet(ctx, "svg", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/timeline.svg", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Chart().(NoopChartHooks); !ok {
		t.Error("Chart() should return NoopChartHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	custom := &testChartHooks{}
	SetChartHooks(custom)
	if Chart() != custom {
		t.Error("SetChartHooks should set custom hooks")
	}

	SetChartHooks(nil)
	if Chart() != custom {
		t.Error("SetChartHooks(nil) should keep the current hooks")
	}

	Chart().OnUnresolvedLink("a", "b")
	if custom.unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", custom.unresolved)
	}

	Reset()
	if _, ok := Chart().(NoopChartHooks); !ok {
		t.Error("Reset() should restore NoopChartHooks")
	}
}

type testChartHooks struct {
	NoopChartHooks
	unresolved int
}

func (h *testChartHooks) OnUnresolvedLink(string, string) { h.unresolved++ }
