package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(slog.LevelDebug, parseLevel("debug"))
	assert.Equal(slog.LevelDebug, parseLevel(" DEBUG "))
	assert.Equal(slog.LevelWarn, parseLevel("warning"))
	assert.Equal(slog.LevelError, parseLevel("error"))
	assert.Equal(slog.LevelInfo, parseLevel(""))
	assert.Equal(slog.LevelInfo, parseLevel("verbose"))
}

func Test_Logger(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := newLoggerWithHandler("ringbuffer", "test", slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.Info("grown", "capacity", 8)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal("grown", record["msg"])
	assert.Equal(float64(8), record["capacity"])
	assert.Equal(map[string]any{"kind": "ringbuffer", "name": "test"}, record["info"])

	buf.Reset()
	l.Error("failed", errors.New("boom"))
	assert.Contains(buf.String(), "boom")
	assert.Contains(buf.String(), `"level":"ERROR"`)
}

func Test_Telemetry(t *testing.T) {
	assert := assert.New(t)

	tel := NewTelemetry("connector", "test")
	assert.Equal("connector_test_queued", tel.getMeterName("queued"))

	// The global providers are no-op, instruments are still usable
	counter := tel.NewCounter("items")
	assert.NotNil(counter)
	counter.Add(context.Background(), 1)

	upDown := tel.NewUpDownCounter("queued")
	assert.NotNil(upDown)
	upDown.Add(context.Background(), -1)

	_, span := tel.NewTrace(context.Background(), "test")
	span.End()
}

func Test_Stats(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := newLoggerWithHandler("cli", "test", slog.NewJSONHandler(&buf, nil))

	stats := NewStats(l, 0)
	assert.Equal(time.Second, stats.interval)

	stats.IncrementItemCountBy(3)
	stats.IncrementByteCountBy(30)
	stats.IncrementByteCountBy(12)

	items, byteCount := stats.Totals()
	assert.Equal(uint64(3), items)
	assert.Equal(uint64(42), byteCount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats.RunStats(ctx)
}
