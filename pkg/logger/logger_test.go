package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(LevelInfo)
	l2 := Get(LevelDebug)
	require.NotNil(t, l1)
	assert.Same(t, l1, l2)
}

func TestGetReturnsNoopWhenGlobalMissing(t *testing.T) {
	_ = Get(LevelInfo)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(LevelInfo))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(LevelInfo, zapcore.AddSync(&buf))
	lgr.Info("rows loaded", RowsKey, 3, DatasetKey, "pagamentos")
	lgr.V(1).Info("hidden at info level")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "rows loaded", entry[MessageKey])
	assert.Equal(t, float64(3), entry[RowsKey])
	assert.Equal(t, "pagamentos", entry[DatasetKey])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
}

func TestNewDebugLevelEmitsVerbose(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(LevelDebug, zapcore.AddSync(&buf))
	lgr.V(1).Info("sort toggled")
	assert.Contains(t, buf.String(), "sort toggled")
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	lgr := Get(LevelInfo)

	withLgr := WithLogger(ctx, lgr)
	assert.Same(t, lgr, withLgr.Value(loggerContextKey{}))
	assert.Equal(t, withLgr, WithLogger(withLgr, lgr), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(withLgr, &other)
	assert.Same(t, &other, replaced.Value(loggerContextKey{}))
}

func TestFromContext(t *testing.T) {
	lgr := Get(LevelInfo)
	assert.Same(t, lgr, FromContext(WithLogger(context.Background(), lgr)))
	assert.Same(t, globalLogrLogger, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestSyncWithoutGlobal(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()
	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValues(t *testing.T) {
	lgr := Get(LevelInfo)
	nl := WithValues(lgr, SourceKey, "stdin")
	require.NotNil(t, nl)
	assert.NotSame(t, lgr, nl)

	var nilLogger *logr.Logger
	assert.Panics(t, func() { _ = WithValues(nilLogger, "k", "v") })
}

func TestNoopLogger(t *testing.T) {
	assert.NotPanics(t, func() { GetNoopLogger().Info("nothing") })
}
