package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

type Level = slog.Level

const (
	DEBUG = slog.LevelDebug
	INFO  = slog.LevelInfo
	WARN  = slog.LevelWarn
	ERROR = slog.LevelError
	// FATAL logs at error severity and then exits the process.
	FATAL = slog.Level(12)
)

var exit = os.Exit

type Logger struct {
	l       *slog.Logger
	service string
}

// New returns a logger tagged with service. The level comes from LOG_LEVEL;
// output is human-readable text on a terminal and JSON otherwise.
func New(service string) *Logger {
	opts := &slog.HandlerOptions{
		Level:       levelFromEnv(os.Getenv("LOG_LEVEL")),
		ReplaceAttr: renameFatal,
	}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return NewWithHandler(service, handler)
}

// NewWithWriter builds a text logger writing to out at the given level.
func NewWithWriter(service string, out io.Writer, level Level) *Logger {
	return NewWithHandler(service, slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameFatal,
	}))
}

func NewWithHandler(service string, handler slog.Handler) *Logger {
	l := slog.New(handler)
	if service != "" {
		l = l.With(slog.String("service", service))
	}
	return &Logger{l: l, service: service}
}

func levelFromEnv(envLevel string) Level {
	switch strings.ToUpper(envLevel) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func renameFatal(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= FATAL {
			a.Value = slog.StringValue("FATAL")
		}
	}
	return a
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.l.Enabled(ctx, level) {
		return
	}
	l.l.Log(ctx, level, fmt.Sprintf(format, args...))

	if level >= FATAL {
		exit(1)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}

// With returns a child logger that attaches the given key/value pairs to
// every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...), service: l.service}
}

// Slog exposes the underlying structured logger for libraries that take one.
func (l *Logger) Slog() *slog.Logger {
	return l.l
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l})
	log.SetFlags(0)
}

type stdLogWriter struct {
	logger *Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	w.logger.Info("%s", msg)
	return len(p), nil
}
