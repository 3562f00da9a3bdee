package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
// The CLI registers it when --verbose is set.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnExportStart(_ context.Context, document string, pages int) {
	h.Logger.Debug("export started", "document", document, "pages", pages)
}

func (h LogPipelineHooks) OnPageAssembled(_ context.Context, page string, nodes, edges, skipped int, d time.Duration) {
	h.Logger.Debug("page assembled", "page", page, "nodes", nodes, "edges", edges, "skipped", skipped, "duration", d)
}

func (h LogPipelineHooks) OnExportComplete(_ context.Context, document string, edges int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("export failed", "document", document, "error", err)
		return
	}
	h.Logger.Debug("export finished", "document", document, "edges", edges, "duration", d)
}

func (h LogPipelineHooks) OnPreviewStart(_ context.Context, page, format string) {
	h.Logger.Debug("preview started", "page", page, "format", format)
}

func (h LogPipelineHooks) OnPreviewComplete(_ context.Context, page, format string, d time.Duration, err error) {
	h.Logger.Debug("preview finished", "page", page, "format", format, "duration", d, "error", err)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one access log line per response. "c4export serve"
// registers it.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (h LogHTTPHooks) OnRequest(context.Context, string, string) {}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	switch {
	case status >= 500:
		h.Logger.Error("request", "method", method, "path", path, "status", status, "duration", d)
	case status >= 400:
		h.Logger.Warn("request", "method", method, "path", path, "status", status, "duration", d)
	default:
		h.Logger.Info("request", "method", method, "path", path, "status", status, "duration", d)
	}
}
