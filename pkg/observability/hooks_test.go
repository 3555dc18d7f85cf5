package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSolveHooks{}
	s.OnSolveStart(ctx, "bz", 100)
	s.OnSolveComplete(ctx, "bz", 100, time.Second, nil)
	s.OnColor(ctx, 100, 10, 40, time.Millisecond, nil)
	s.OnRender(ctx, "svg", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "table")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "table", 1024)
	c.OnCacheError(ctx, "table", "get", nil)

	NoopHTTPHooks{}.OnResponse(ctx, "POST", "/v1/maxwhite", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Solve() should return NoopSolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customSolve := &testSolveHooks{}
	SetSolveHooks(customSolve)
	if Solve() != customSolve {
		t.Error("SetSolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Reset() should restore NoopSolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testSolveHooks{}
	SetSolveHooks(custom)
	SetSolveHooks(nil)

	if Solve() != custom {
		t.Error("SetSolveHooks(nil) should be ignored")
	}
}

type testSolveHooks struct{ NoopSolveHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
