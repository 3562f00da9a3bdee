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

	p := NoopPipelineHooks{}
	p.OnExportStart(ctx, "arch", 2)
	p.OnPageAssembled(ctx, "Main", 10, 12, 1, time.Millisecond)
	p.OnExportComplete(ctx, "arch", 12, time.Second, nil)
	p.OnPreviewStart(ctx, "Main", "svg")
	p.OnPreviewComplete(ctx, "Main", "svg", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/export")
	h.OnResponse(ctx, "POST", "/export", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
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
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	ctx := context.Background()

	p := LogPipelineHooks{Logger: logger}
	p.OnExportStart(ctx, "arch", 2)
	p.OnPageAssembled(ctx, "Main", 3, 4, 0, time.Millisecond)
	p.OnExportComplete(ctx, "arch", 4, time.Millisecond, nil)
	p.OnExportComplete(ctx, "broken", 0, 0, errors.New("boom"))

	c := LogCacheHooks{Logger: logger}
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 10)
	c.OnCacheHit(ctx, "artifact")

	h := LogHTTPHooks{Logger: logger}
	h.OnRequest(ctx, "POST", "/export")
	h.OnResponse(ctx, "POST", "/export", 200, time.Millisecond)
	h.OnResponse(ctx, "POST", "/preview", 404, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"export started", "page assembled", "export finished", "export failed", "boom", "cache miss", "cache set", "cache hit", "/export", "status=404"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
