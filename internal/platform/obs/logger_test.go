package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	logger := NewLogger(&bytes.Buffer{}, "loud", "json")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestTimeLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "json")
	ctx := logger.WithContext(context.WithValue(context.Background(), RequestIDKey, "abc"))

	err := errors.New("boom")
	Time(ctx, "test.op")(&err)

	require.Contains(t, buf.String(), `"op":"test.op"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Equal(t, "abc", RequestID(ctx))
}
