package internal

import (
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// LogLevelEnv is the environment variable selecting the minimum log level.
const LogLevelEnv = "BULKIO_LOG_LEVEL"

var defaultHandler = sync.OnceValue(func() slog.Handler {
	level := parseLevel(os.Getenv(LogLevelEnv))

	if runtime.GOOS == "windows" {
		w := colorable.NewColorableStdout()
		return tint.NewHandler(w, &tint.Options{Level: level})
	}

	w := os.Stderr
	return tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(w.Fd()),
	})
})

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

type Logger struct {
	*slog.Logger

	kind string
	name string
}

func NewLogger(kind, name string) *Logger {
	return newLoggerWithHandler(kind, name, defaultHandler())
}

func newLoggerWithHandler(kind, name string, handler slog.Handler) *Logger {
	return &Logger{
		Logger: slog.New(handler),

		kind: kind,
		name: name,
	}
}

func (l *Logger) getInfo() slog.Attr {
	return slog.Group("info", slog.String("kind", l.kind), slog.String("name", l.name))
}

func (l *Logger) getArgs(args ...any) []any {
	return append([]any{l.getInfo()}, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, l.getArgs(args...)...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, l.getArgs(args...)...)
}

func (l *Logger) Error(msg string, err error, args ...any) {
	tmpArgs := append([]any{tint.Err(err)}, args...)
	l.Logger.Error(msg, l.getArgs(tmpArgs...)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, l.getArgs(args...)...)
}
