package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks forwards observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnScanStart(_ context.Context, dir string) {
	h.logger.Debug("scan started", "dir", dir)
}

func (h logHooks) OnScanComplete(_ context.Context, dir string, files, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scan failed", "dir", dir, "error", err)
		return
	}
	h.logger.Debug("scan complete", "dir", dir, "modules", files, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCyclesFound(_ context.Context, dir string, count int) {
	h.logger.Debug("cycle detection", "dir", dir, "cycles", count)
}

func (h logHooks) OnResolve(_ context.Context, count int, size float64, shrinks, jitters int, fallback bool, d time.Duration) {
	h.logger.Debug("placement resolved",
		"count", count,
		"size", size,
		"shrinks", shrinks,
		"jitters", jitters,
		"fallback", fallback,
		"took", d.Round(time.Microsecond),
	)
}

func (h logHooks) OnSkip(_ context.Context, reason string) {
	h.logger.Debug("placement skipped", "reason", reason)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}
