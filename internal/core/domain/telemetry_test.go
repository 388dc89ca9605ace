package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/wbuild/internal/core/domain"
)

func TestStageStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.StageStatus
		isTerminal bool
	}{
		{"Pending", domain.StageStatusPending, false},
		{"Running", domain.StageStatusRunning, false},
		{"Completed", domain.StageStatusCompleted, true},
		{"Failed", domain.StageStatusFailed, true},
		{"Skipped", domain.StageStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "INFO", domain.LogLevel(42).String())
}
