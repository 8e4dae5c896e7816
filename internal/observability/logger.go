package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type ctxKey string

const (
	ctxKeyRunID ctxKey = "run_id"
)

var level = new(slog.LevelVar)

// basic global logger, JSON to stderr.
var logger atomic.Pointer[slog.Logger]

func init() {
	SetOutput(os.Stderr)
}

func Logger() *slog.Logger {
	return logger.Load()
}

// SetOutput redirects the global logger. The TUI points it at a file or
// io.Discard so log lines never land on the alt screen.
func SetOutput(w io.Writer) {
	logger.Store(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// SetLevel parses debug/info/warn/error.
func SetLevel(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		level.Set(slog.LevelInfo)
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", s)
	}
	return nil
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return Logger().With(kv...)
}

// WithRunID stores an analysis run id in the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKeyRunID, runID)
}

// LoggerFromContext adds run_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	runID, _ := ctx.Value(ctxKeyRunID).(string)
	if runID == "" {
		return Logger()
	}
	return Logger().With("run_id", runID)
}
