package log_test

import (
	"context"
	"io"
	glog "log"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bitptr/util/log"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	stderr := os.Stderr
	os.Stdout = w
	os.Stderr = w
	glog.SetOutput(w)
	defer func() {
		os.Stdout = stdout
		os.Stderr = stderr
		glog.SetOutput(stderr)
	}()
	f()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestAddTags(t *testing.T) {
	ctx := context.Background()
	t.Run("infof", func(t *testing.T) {
		ctx := log.AddTags(ctx, "region", "scratch")
		output := captureStdout(t, func() {
			log.Infof(ctx, "allocated %d elements", 4)
		})
		require.Contains(t, output, "INFO allocated 4 elements region=scratch")
	})
	t.Run("infow", func(t *testing.T) {
		ctx := log.AddTags(ctx, "region", "scratch")
		output := captureStdout(t, func() {
			log.Infow(ctx, "allocated", "elements", 4)
		})
		require.Contains(t, output, "INFO allocated elements=4 region=scratch")
	})
	t.Run("nested tags accumulate", func(t *testing.T) {
		outer := log.AddTags(ctx, "region", "scratch")
		inner := log.AddTags(outer, "element", "u16")
		require.Equal(t, []any{"region", "scratch"}, log.Tags(outer))
		require.Equal(t, []any{"region", "scratch", "element", "u16"}, log.Tags(inner))
	})
	t.Run("odd tag count panics", func(t *testing.T) {
		require.Panics(t, func() { log.AddTags(ctx, "region") })
	})
}

func TestLogf(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	cases := []struct {
		assertion string
		f         func(context.Context, string, ...any)
		contains  string
	}{
		{"infof", log.Infof, "INFO hello world"},
		{"warnf", log.Warnf, "WARN hello world"},
		{"errorf", log.Errorf, "ERROR hello world"},
		{"debugf", log.Debugf, "DEBUG hello world"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			output := captureStdout(t, func() {
				c.f(context.Background(), "hello %s", "world")
			})
			require.Contains(t, output, c.contains)
		})
	}
}

func TestLogLeveling(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	s := captureStdout(t, func() {
		log.Debugf(context.Background(), "foo")
		log.Debugw(context.Background(), "bar")
	})
	require.Contains(t, s, "DEBUG foo")
	require.Contains(t, s, "DEBUG bar")

	slog.SetLogLoggerLevel(slog.LevelInfo)
	s = captureStdout(t, func() {
		log.Debugf(context.Background(), "foo")
		log.Debugw(context.Background(), "bar")
	})
	require.Equal(t, "", s)
}

func TestLogw(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	cases := []struct {
		assertion string
		f         func(ctx context.Context, msg string, keyvals ...any)
		contains  string
	}{
		{"infow", log.Infow, "INFO hello world=earth"},
		{"warnw", log.Warnw, "WARN hello world=earth"},
		{"errorw", log.Errorw, "ERROR hello world=earth"},
		{"debugw", log.Debugw, "DEBUG hello world=earth"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			output := captureStdout(t, func() {
				c.f(context.Background(), "hello", "world", "earth")
			})
			require.Contains(t, output, c.contains)
		})
	}
}
