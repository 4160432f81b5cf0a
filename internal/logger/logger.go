// Package logger provides the shared slog logger for the CLI.
// All log lines go to stderr so that stdout stays reserved for
// rendered command output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu       sync.Mutex
	minLevel = slog.LevelInfo
	out      io.Writer = os.Stderr
)

// Setup configures global verbosity. Each -v lowers the threshold to
// Debug; --quiet raises it to Error. Final error messages are printed
// by main outside the logger and are never suppressed.
func Setup(verbosity int, quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	switch {
	case quiet:
		minLevel = slog.LevelError
	case verbosity > 0:
		minLevel = slog.LevelDebug
	default:
		minLevel = slog.LevelInfo
	}
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Get returns a logger with the custom colored text format.
func Get() *slog.Logger {
	return slog.New(&textHandler{})
}

// textHandler formats each record as a single colored line:
// 15:04:05.000 [INFO] [gcphcp]: message key=value
type textHandler struct {
	attrs []slog.Attr
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= minLevel
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	levelStr := r.Level.String()
	switch r.Level {
	case slog.LevelDebug:
		levelStr = color.MagentaString(levelStr)
	case slog.LevelInfo:
		levelStr = color.GreenString(levelStr)
	case slog.LevelWarn:
		levelStr = color.YellowString(levelStr)
	case slog.LevelError:
		levelStr = color.RedString(levelStr)
	}

	attrs := ""
	for _, a := range h.attrs {
		attrs += " " + color.CyanString(a.Key+"=") + a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs += " " + color.CyanString(a.Key+"=") + a.Value.String()
		return true
	})

	line := fmt.Sprintf("%s [%s] %s: %s%s\n",
		r.Time.Format("15:04:05.000"),
		levelStr,
		color.BlueString("[gcphcp]"),
		r.Message,
		attrs,
	)

	mu.Lock()
	defer mu.Unlock()
	_, err := io.WriteString(out, line)
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &textHandler{attrs: merged}
}

func (h *textHandler) WithGroup(string) slog.Handler { return h }
