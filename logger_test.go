package octaindex

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestLoggerBatchFields(t *testing.T) {
	var buf bytes.Buffer
	l := captureLogger(&buf)

	l.WithStrategy("parallel").WithCount(4096).LogBatch(context.Background(), "encode_index64", nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"batch completed"`)
	assert.Contains(t, out, `"strategy":"parallel"`)
	assert.Contains(t, out, `"count":4096`)
	assert.Contains(t, out, `"op":"encode_index64"`)

	buf.Reset()
	l.WithStrategy("gpu").WithCount(2).LogBatch(context.Background(), "neighbors_route64", errors.New("device lost"))
	assert.Contains(t, buf.String(), `"msg":"batch failed"`)
	assert.Contains(t, buf.String(), "device lost")
}

func TestLoggerGPUInit(t *testing.T) {
	var buf bytes.Buffer
	l := captureLogger(&buf)

	l.LogGPUInit(context.Background(), "Radeon 780M", nil)
	assert.Contains(t, buf.String(), `"msg":"GPU backend ready"`)
	assert.Contains(t, buf.String(), "Radeon 780M")

	buf.Reset()
	l.LogGPUInit(context.Background(), "", errors.New("no adapter"))
	assert.Contains(t, buf.String(), `"msg":"GPU backend unavailable"`)
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := NoopLogger()
	l.LogFallback(context.Background(), "gpu", "parallel", errors.New("device lost"))
	l.WithStrategy("scalar").WithCount(1).LogBatch(context.Background(), "decode_index64", nil)
}
