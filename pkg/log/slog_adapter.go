package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger at Info level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as one structured record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.Uint64("seq", event.Sequence),
		slog.String("category", event.Category.String()),
	}
	if event.Bank != "" {
		attrs = append(attrs, slog.String("bank", event.Bank))
	}

	msg := "journal"
	switch {
	case event.Change != nil:
		msg = "parameter"
		attrs = append(attrs,
			slog.String("param", event.Change.Parameter),
			slog.String("value", event.Change.Value),
			slog.Float64("normalised", event.Change.Normalised),
			slog.String("law", event.Change.Law.String()),
		)
		if event.Change.Unit != "" {
			attrs = append(attrs, slog.String("unit", event.Change.Unit))
		}
	case event.Session != nil:
		msg = "session"
		attrs = append(attrs,
			slog.String("action", event.Session.Action.String()),
			slog.Int("parameters", event.Session.Parameters),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
