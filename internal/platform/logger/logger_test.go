package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "console", ""} {
		zl, err := New("warn", format)
		require.NoError(t, err, format)
		assert.False(t, zl.Core().Enabled(zapcore.InfoLevel), "info must be disabled at warn level")
		assert.True(t, zl.Core().Enabled(zapcore.ErrorLevel))
	}
}
