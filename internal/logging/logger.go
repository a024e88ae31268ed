// Package logging wires the portal's slog output: JSON to stdout, with
// ERROR and above copied to the system_logs table once the database is up.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Setup installs the default logger. Extra sinks (such as the Postgres
// handler) receive every record the stdout handler does; each sink still
// applies its own level filter.
func Setup(sinks ...slog.Handler) {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if len(sinks) == 0 {
		slog.SetDefault(slog.New(stdout))
		return
	}
	slog.SetDefault(slog.New(fanout{handlers: append([]slog.Handler{stdout}, sinks...)}))
}

// fanout forwards each record to every handler that accepts its level.
type fanout struct {
	handlers []slog.Handler
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return fanout{handlers: next}
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return fanout{handlers: next}
}
