package log

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

/*
log implements context-based logging on top of slog. AddTags attaches
key-value pairs to a context; every record logged with that context, or one
derived from it, carries them. Regions use this to tag their records with the
region name and element type.

The "f" functions take a format string and arguments, the "w" functions a
message and an even-length list of key-value pairs.
*/

////////////////////////////////////////////////////////////////////////////////

type contextKey int

const (
	logTagKey contextKey = iota
)

// AddTags adds key-value pairs to the log context.
func AddTags(ctx context.Context, kvs ...any) context.Context {
	if len(kvs)%2 != 0 {
		panic("log: AddTags requires an even number of arguments")
	}
	tags := append(Tags(ctx), kvs...)
	return context.WithValue(ctx, logTagKey, tags)
}

// Tags returns a copy of the key-value pairs attached to ctx.
func Tags(ctx context.Context) []any {
	tags, _ := ctx.Value(logTagKey).([]any)
	return append([]any{}, tags...)
}

func emit(ctx context.Context, level slog.Level, msg string, keyvals []any) {
	handler := slog.Default().Handler()
	if !handler.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	addPairs(&r, keyvals)
	addPairs(&r, Tags(ctx))
	if err := handler.Handle(ctx, r); err != nil {
		slog.ErrorContext(ctx, "error handling log record", "error", err)
	}
}

func addPairs(r *slog.Record, kvs []any) {
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic("log: invalid log key")
		}
		r.Add(key, kvs[i+1])
	}
}

// Infof logs a formatted message.
func Infof(ctx context.Context, format string, args ...any) {
	emit(ctx, slog.LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message.
func Errorf(ctx context.Context, format string, args ...any) {
	emit(ctx, slog.LevelError, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a formatted debug message.
func Debugf(ctx context.Context, format string, args ...any) {
	emit(ctx, slog.LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning.
func Warnf(ctx context.Context, format string, args ...any) {
	emit(ctx, slog.LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Infow logs a message with key-value pairs.
func Infow(ctx context.Context, msg string, keyvals ...any) {
	emit(ctx, slog.LevelInfo, msg, keyvals)
}

// Errorw logs an error message with key-value pairs.
func Errorw(ctx context.Context, msg string, keyvals ...any) {
	emit(ctx, slog.LevelError, msg, keyvals)
}

// Debugw logs a debug message with key-value pairs.
func Debugw(ctx context.Context, msg string, keyvals ...any) {
	emit(ctx, slog.LevelDebug, msg, keyvals)
}

// Warnw logs a warning with key-value pairs.
func Warnw(ctx context.Context, msg string, keyvals ...any) {
	emit(ctx, slog.LevelWarn, msg, keyvals)
}
