package logging

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/measure-engine/pkg/types"
)

func TestNewJSON(t *testing.T) {
	var buf strings.Builder
	logger, err := New(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("classified row", zap.Int("line", 3), zap.String("outcome", "accepted"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "classified row", entry["msg"])
	assert.Equal(t, float64(3), entry["line"])
	assert.Equal(t, "accepted", entry["outcome"])
	assert.Contains(t, entry, "ts")
}

func TestNewConsoleDefault(t *testing.T) {
	var buf strings.Builder
	logger, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("normalize finished", zap.Int("rows", 7))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "normalize finished")
	assert.Contains(t, out, `{"rows": 7}`)
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(types.LogConfig{Level: tt.level}, &strings.Builder{})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"}, &strings.Builder{})
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(types.LogConfig{Format: "xml"}, &strings.Builder{})
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}
