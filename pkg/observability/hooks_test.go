package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	NoopPipelineHooks
	classifyStarts int
}

func (h *testPipelineHooks) OnClassifyStart(ctx context.Context, name string, relationCount int) {
	h.classifyStarts++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "erd", "workspace.erd")
	p.OnLoadComplete(ctx, "erd", "workspace.erd", 6, time.Second, nil)
	p.OnClassifyStart(ctx, "workspace", 6)
	p.OnClassifyComplete(ctx, "workspace", 3, time.Second, nil)
	p.OnRenderStart(ctx, []string{"dot"})
	p.OnRenderComplete(ctx, []string{"dot"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layering")
	c.OnCacheMiss(ctx, "layering")
	c.OnCacheSet(ctx, "layering", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	Pipeline().OnClassifyStart(context.Background(), "demo", 1)
	if customPipeline.classifyStarts != 1 {
		t.Errorf("classifyStarts = %d, want 1", customPipeline.classifyStarts)
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	Cache().OnCacheHit(context.Background(), "layering")
	if customCache.hits != 1 {
		t.Errorf("hits = %d, want 1", customCache.hits)
	}

	// nil registrations are ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks(nil) should keep the previous hooks")
	}
}
