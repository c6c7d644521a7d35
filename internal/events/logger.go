package events

import "log/slog"

// LogObserver records every catalog change on the application logger at
// debug level. Useful when tracing which command caused a persisted
// change.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a log observer. A nil logger falls back to
// slog.Default.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// Name implements Observer.
func (o *LogObserver) Name() string { return "activity-log" }

// OnCatalogChange implements Observer.
func (o *LogObserver) OnCatalogChange(change Change) {
	o.logger.Debug("catalog changed", "type", string(change.Type), "id", change.ID)
}
