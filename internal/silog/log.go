// Package silog implements a structured logger for CLI usage.
// It's a wrapper around log/slog and the go.abhg.dev/log/silog handler
// that adds printf-style functions and a fatal level.
package silog

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	handler "go.abhg.dev/log/silog"
)

// Options defines options for the logger.
type Options struct {
	// Level is the minimum log level to log.
	// It must be between LevelDebug and LevelError.
	// The default is LevelInfo.
	Level Level

	// OnFatal is called after a fatal message is logged.
	// It must stop control flow.
	//
	// Defaults to exiting the program with a non-zero status.
	OnFatal func() // optional
}

// Logger provides structured and printf-style logging.
// For each level, there's a structured logging method (e.g. Info)
// and a printf-style method (e.g. Infof).
//
// A nil Logger discards all messages.
type Logger struct {
	sl      *slog.Logger   // required
	lvl     *slog.LevelVar // required
	onFatal func()         // required
}

// Nop returns a logger that discards all log messages.
func Nop() *Logger {
	return New(io.Discard, nil)
}

// New creates a new logger that writes to the given writer.
// Output is colored only if w is a terminal.
func New(w io.Writer, opts *Options) *Logger {
	opts = cmp.Or(opts, &Options{Level: LevelInfo})
	if opts.Level < LevelDebug || opts.Level > LevelError {
		panic(fmt.Sprintf("silog: level must be in [debug, error], got %v", opts.Level))
	}

	var isTTY bool
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		isTTY = isatty.IsTerminal(f.Fd())
	}

	renderer := lipgloss.NewRenderer(w)
	style := handler.PlainStyle(renderer)
	if isTTY {
		style = handler.DefaultStyle(renderer)
	}
	style.LevelLabels[LevelFatal.Level()] = style.LevelLabels[slog.LevelError].SetString("FTL")

	lvl := new(slog.LevelVar)
	lvl.Set(opts.Level.Level())

	h := handler.NewHandler(w, &handler.HandlerOptions{
		Level:       lvl,
		Style:       style,
		ReplaceAttr: dropTime,
	})

	onFatal := opts.OnFatal
	if onFatal == nil {
		onFatal = exitOnFatal
	}

	return &Logger{
		sl:      slog.New(h),
		lvl:     lvl,
		onFatal: onFatal,
	}
}

// CLI output doesn't carry timestamps.
func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return attr
}

// Level returns the current log level of the logger.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelFatal + 1
	}
	return Level(l.lvl.Level())
}

// SetLevel changes the log level of the logger
// and all loggers derived from it with With.
func (l *Logger) SetLevel(lvl Level) {
	if l == nil {
		return
	}
	l.lvl.Set(lvl.Level())
}

// With returns a copy of the logger with the given attributes added.
func (l *Logger) With(attrs ...any) *Logger {
	if l == nil || len(attrs) == 0 {
		return l
	}

	newL := *l
	newL.sl = l.sl.With(attrs...)
	return &newL
}

// Log logs a message at the given level with the given key-value pairs.
func (l *Logger) Log(lvl Level, msg string, kvs ...any) {
	if l == nil {
		if lvl >= LevelFatal {
			_osExit(1)
		}
		return
	}

	l.sl.Log(context.Background(), lvl.Level(), msg, kvs...)
	if lvl >= LevelFatal {
		l.onFatal()
		panic("unreachable: onFatal should stop control flow")
	}
}

// Logf logs a message at the given level with the given format and arguments.
func (l *Logger) Logf(lvl Level, format string, args ...any) {
	l.Log(lvl, fmt.Sprintf(format, args...))
}

// Debug posts a structured log message with the level [LevelDebug].
func (l *Logger) Debug(msg string, kvs ...any) { l.Log(LevelDebug, msg, kvs...) }

// Info posts a structured log message with the level [LevelInfo].
func (l *Logger) Info(msg string, kvs ...any) { l.Log(LevelInfo, msg, kvs...) }

// Warn posts a structured log message with the level [LevelWarn].
func (l *Logger) Warn(msg string, kvs ...any) { l.Log(LevelWarn, msg, kvs...) }

// Error posts a structured log message with the level [LevelError].
func (l *Logger) Error(msg string, kvs ...any) { l.Log(LevelError, msg, kvs...) }

// Fatal posts a structured log message with the level [LevelFatal]
// and stops the program.
func (l *Logger) Fatal(msg string, kvs ...any) { l.Log(LevelFatal, msg, kvs...) }

// Debugf posts a printf-style log message with the level [LevelDebug].
func (l *Logger) Debugf(format string, args ...any) { l.Logf(LevelDebug, format, args...) }

// Infof posts a printf-style log message with the level [LevelInfo].
func (l *Logger) Infof(format string, args ...any) { l.Logf(LevelInfo, format, args...) }

// Warnf posts a printf-style log message with the level [LevelWarn].
func (l *Logger) Warnf(format string, args ...any) { l.Logf(LevelWarn, format, args...) }

// Errorf posts a printf-style log message with the level [LevelError].
func (l *Logger) Errorf(format string, args ...any) { l.Logf(LevelError, format, args...) }

// Fatalf posts a printf-style log message with the level [LevelFatal]
// and stops the program.
func (l *Logger) Fatalf(format string, args ...any) { l.Logf(LevelFatal, format, args...) }

var _osExit = os.Exit // for testing

func exitOnFatal() { _osExit(1) }
