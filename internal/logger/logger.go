// Package logger is a small levelled logger on top of log/slog whose level can be
// flipped at runtime (see featureflags.LogLevel).
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu    sync.RWMutex
	level = new(slog.LevelVar)
	base  = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

// Init sets the initial level. Unknown values fall back to info.
func Init(lvl string) {
	SetLevel(lvl)
}

// InitWriter is Init with a custom destination, used by tests.
func InitWriter(w io.Writer, lvl string) {
	mu.Lock()
	base = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	mu.Unlock()
	SetLevel(lvl)
}

// SetLevel changes the active level.
func SetLevel(lvl string) {
	level.Set(parseLevel(lvl))
}

// GetLevel returns the active level as a lowercase name.
func GetLevel() string {
	return strings.ToLower(level.Level().String())
}

// Slog exposes the underlying logger for code that wants structured attributes.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debugf(format string, args ...any) { logf(slog.LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(slog.LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(slog.LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(slog.LevelError, format, args...) }

func logf(l slog.Level, format string, args ...any) {
	lg := Slog()
	ctx := context.Background()
	if !lg.Enabled(ctx, l) {
		return
	}
	lg.Log(ctx, l, fmt.Sprintf(format, args...))
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
