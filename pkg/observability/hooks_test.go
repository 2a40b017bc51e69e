package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingControllerHooks struct {
	NoopControllerHooks
	mu     sync.Mutex
	phases []string
}

func (h *recordingControllerHooks) OnPhaseChange(id, from, to string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.phases = append(h.phases, from+">"+to)
}

type testLayoutHooks struct{ NoopLayoutHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopLayoutHooks{}.OnLayoutComputed(ctx, 3, 2, time.Millisecond)
	NoopControllerHooks{}.OnPhaseChange("id", "idle", "animating")
	NoopControllerHooks{}.OnResize("id", 1200, 800)
	NoopCacheHooks{}.OnCacheHit(ctx, "layout")
	NoopCacheHooks{}.OnCacheMiss(ctx, "viewport")
	NoopCacheHooks{}.OnCacheSet(ctx, "layout", 512)
	NoopHTTPHooks{}.OnRequest(ctx, "GET", "/v1/layouts")
	NoopHTTPHooks{}.OnResponse(ctx, "GET", "/v1/layouts", 200, time.Millisecond)
}

func TestRegistryDefaultsAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetLayoutHooks(&testLayoutHooks{})
	SetControllerHooks(&recordingControllerHooks{})
	SetCacheHooks(&testCacheHooks{})
	SetHTTPHooks(&testHTTPHooks{})

	if _, ok := Layout().(*testLayoutHooks); !ok {
		t.Error("SetLayoutHooks should register custom hooks")
	}
	if _, ok := HTTP().(*testHTTPHooks); !ok {
		t.Error("SetHTTPHooks should register custom hooks")
	}

	Reset()
	checks := []struct {
		name string
		ok   bool
	}{
		{"layout", isType[NoopLayoutHooks](Layout())},
		{"controller", isType[NoopControllerHooks](Controller())},
		{"cache", isType[NoopCacheHooks](Cache())},
		{"http", isType[NoopHTTPHooks](HTTP())},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("Reset() should restore no-op %s hooks", c.name)
		}
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testCacheHooks{}
	SetCacheHooks(custom)
	SetCacheHooks(nil)

	if Cache() != custom {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

func TestControllerHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingControllerHooks{}
	SetControllerHooks(rec)
	Controller().OnPhaseChange("c1", "idle", "animating")
	Controller().OnPhaseChange("c1", "animating", "idle")

	want := []string{"idle>animating", "animating>idle"}
	if len(rec.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", rec.phases, want)
	}
	for i := range want {
		if rec.phases[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, rec.phases[i], want[i])
		}
	}
}

func isType[T any](v any) bool {
	_, ok := v.(T)
	return ok
}
