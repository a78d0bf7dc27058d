package logging_test

import (
	"testing"

	"github.com/dom/crowd-translate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"production warn", "production", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"development debug", "development", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"invalid level falls back to info", "development", "loud", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logging.New(tt.environment, tt.level)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.disabled))
		})
	}
}
