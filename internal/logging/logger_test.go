package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

type recordingHandler struct {
	min     slog.Level
	handled []string
}

func (r *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.min
}

func (r *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	r.handled = append(r.handled, rec.Message)
	return nil
}

func (r *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(_ string) slog.Handler      { return r }

func TestFanoutRespectsPerSinkLevels(t *testing.T) {
	info := &recordingHandler{min: slog.LevelInfo}
	errOnly := &recordingHandler{min: slog.LevelError}
	f := fanout{handlers: []slog.Handler{info, errOnly}}

	ctx := context.Background()
	infoRec := slog.NewRecord(time.Now(), slog.LevelInfo, "info message", 0)
	errRec := slog.NewRecord(time.Now(), slog.LevelError, "error message", 0)

	if err := f.Handle(ctx, infoRec); err != nil {
		t.Fatal(err)
	}
	if err := f.Handle(ctx, errRec); err != nil {
		t.Fatal(err)
	}

	if len(info.handled) != 2 {
		t.Fatalf("info sink handled %d records, want 2", len(info.handled))
	}
	if len(errOnly.handled) != 1 || errOnly.handled[0] != "error message" {
		t.Fatalf("error sink handled %v, want only the error record", errOnly.handled)
	}
}

func TestFanoutEnabledIsUnionOfSinks(t *testing.T) {
	f := fanout{handlers: []slog.Handler{&recordingHandler{min: slog.LevelWarn}}}
	ctx := context.Background()

	if f.Enabled(ctx, slog.LevelInfo) {
		t.Fatal("info should be disabled when every sink requires warn+")
	}
	if !f.Enabled(ctx, slog.LevelError) {
		t.Fatal("error should be enabled")
	}
}
