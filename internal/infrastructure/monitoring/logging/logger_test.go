package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newObservedLogger returns a Logger whose entries can be inspected.
func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoggerFromCore(core), logs
}

func TestNewLogger_JSONFormat(t *testing.T) {
	l, err := NewLogger(Config{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l, err := NewLogger(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	_, err := NewLogger(Config{OutputPaths: []string{"/nonexistent-dir-xyz/a/b/c.log"}})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestLogger_EmitsMessageAndFields(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("molecule decoded",
		String("name", "pyridine"),
		Int("atoms", 6),
		Bool("aromatic", true),
		Duration("took", 3*time.Millisecond),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "molecule decoded", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "pyridine", fields["name"])
	assert.Equal(t, int64(6), fields["atoms"])
	assert.Equal(t, true, fields["aromatic"])
}

func TestLogger_ErrField(t *testing.T) {
	l, logs := newObservedLogger()

	l.Error("compute failed", Err(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestErr_NilError(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestLogger_With_ChildCarriesFields(t *testing.T) {
	l, logs := newObservedLogger()

	child := l.With(String("component", "worker"))
	child.Info("started")
	l.Info("parent entry")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "worker", entries[0].ContextMap()["component"])
	assert.NotContains(t, entries[1].ContextMap(), "component")
}

func TestLogger_Named(t *testing.T) {
	l, logs := newObservedLogger()

	l.Named("http").Named("router").Info("route registered")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http.router", entries[0].LoggerName)
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Debug("msg")
		l.Info("msg", Int("k", 1))
		l.Warn("msg")
		l.Error("msg", Err(errors.New("x")))
	})
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("x"))
	assert.NoError(t, l.Sync())
}

func TestDefault_SetAndGet(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	l, logs := newObservedLogger()
	SetDefault(l)
	Default().Info("via default")
	require.Len(t, logs.All(), 1)

	// A nil argument must not clobber the default.
	SetDefault(nil)
	assert.Equal(t, l, Default())
}
