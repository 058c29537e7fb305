package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and server events to a logger at debug
// level. It implements all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnImportStart(_ context.Context, path string) {
	h.Logger.Debug("import started", "path", path)
}

func (h *LogHooks) OnImportComplete(_ context.Context, path string, observations int, d time.Duration, err error) {
	h.Logger.Debug("import finished", "path", path, "observations", observations, "duration", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, observations int) {
	h.Logger.Debug("layout started", "observations", observations)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, bars, ticks int, d time.Duration, err error) {
	h.Logger.Debug("layout finished", "bars", bars, "ticks", ticks, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render finished", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, renderID, method, path string) {
	h.Logger.Debug("request", "render_id", renderID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, renderID string, status int, d time.Duration) {
	h.Logger.Debug("response", "render_id", renderID, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
