package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookado/platform/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON records by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", slog.String("k", "v"))

		record := logLine(t, &buf)
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "v", record["k"])
	})

	t.Run("respects the configured level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("attaches static attributes to every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(logger.Component("resolver")),
		)
		log.Info("hello")

		record := logLine(t, &buf)
		assert.Equal(t, "resolver", record["component"])
	})

	t.Run("environment defaults pick level and service attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithEnvironment("production", "gateway"),
		)

		log.Debug("dropped")
		assert.Zero(t, buf.Len())

		log.Info("kept")
		record := logLine(t, &buf)
		assert.Equal(t, "gateway", record["service"])
		assert.Equal(t, "production", record["env"])
	})

	t.Run("context extractors enrich records at log time", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		extractor := func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(key{}).(string); ok {
				return slog.String("trace", v), true
			}
			return slog.Attr{}, false
		}

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(extractor))

		ctx := context.WithValue(context.Background(), key{}, "abc123")
		log.InfoContext(ctx, "hello")

		record := logLine(t, &buf)
		assert.Equal(t, "abc123", record["trace"])

		buf.Reset()
		log.InfoContext(context.Background(), "hello")
		record = logLine(t, &buf)
		assert.NotContains(t, record, "trace")
	})
}

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(assert.AnError)
	assert.Equal(t, "error", attr.Key)
}
