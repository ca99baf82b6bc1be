package conf

import (
	"log/slog"

	"github.com/sitewarden/sitewarden/internal/observability/metrics"
)

// Context holds the shared application state handed to commands: the loaded
// settings, the application logger and the metrics collector. It replaces
// hidden package-level state so tests can run against isolated stores.
type Context struct {
	Settings *Settings
	Logger   *slog.Logger
	Metrics  *metrics.SyncMetrics
}

// NewContext creates a new instance of Context with the provided settings.
func NewContext(settings *Settings, logger *slog.Logger, m *metrics.SyncMetrics) *Context {
	return &Context{
		Settings: settings,
		Logger:   logger,
		Metrics:  m,
	}
}
