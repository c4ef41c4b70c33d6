package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/selfheal-infra/remedy/types"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Severity
	}{
		{"system down", "System is down", types.SeverityCritical},
		{"failure", "deployment failure in us-east-1", types.SeverityCritical},
		{"error", "Error connecting to database", types.SeverityError},
		{"problem", "there is a problem with the queue", types.SeverityError},
		{"degraded", "Service degraded", types.SeverityWarning},
		{"warn", "warn: high latency", types.SeverityWarning},
		{"recovered", "Successfully recovered", types.SeveritySuccess},
		{"healthy", "all targets healthy", types.SeveritySuccess},
		{"plain message", "Regular message", types.SeverityInfo},
		{"empty", "", types.SeverityInfo},
		{"case insensitive", "CRITICAL condition detected", types.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.text))
		})
	}
}

func TestClassifySeverityPriorityOrder(t *testing.T) {
	t.Run("critical beats success", func(t *testing.T) {
		assert.Equal(t, types.SeverityCritical, ClassifySeverity("service down but recovered"))
	})

	t.Run("critical beats error", func(t *testing.T) {
		assert.Equal(t, types.SeverityCritical, ClassifySeverity("critical error detected"))
	})

	t.Run("error beats warning", func(t *testing.T) {
		assert.Equal(t, types.SeverityError, ClassifySeverity("warning: disk error"))
	})

	t.Run("warning beats success", func(t *testing.T) {
		assert.Equal(t, types.SeverityWarning, ClassifySeverity("degraded but healthy"))
	})
}
