// Package logger is a thin slog wrapper. The table never writes to stdout
// (the terminal belongs to the renderer), so the default logger discards
// everything and programs opt in with a file sink.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type Options struct {
	Writer io.Writer
	Level  Level
	Type   Type
}

var DefaultLogger = New(Options{io.Discard, DefaultLevel, TypeText})

type logger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = io.Discard
	}
	var handler slog.Handler
	switch opts.Type {
	case TypeJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	case TypeText:
		fallthrough
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	}
	return &logger{
		Logger: slog.New(handler),
	}
}

func (l *logger) With(args ...any) Logger {
	return &logger{Logger: l.Logger.With(args...)}
}

// OpenFile returns a logger appending to path. The caller closes the file.
func OpenFile(path string, level Level, typ Type) (Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(Options{Writer: f, Level: level, Type: typ}), f, nil
}
