package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfheal-infra/remedy/types"
)

func TestNormalizeDirectInvocation(t *testing.T) {
	nm := NewNormalizer("self-healing-infra")

	t.Run("all fields supplied", func(t *testing.T) {
		raw := []byte(`{"message":"hi","severity":"warning","title":"T","source":"direct"}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, "hi", n.Message)
		assert.Equal(t, types.SeverityWarning, n.Severity)
		assert.Equal(t, "T", n.Title)
		assert.Equal(t, types.SourceDirect, n.Source)
		assert.Empty(t, n.Metadata)
	})

	t.Run("defaults applied", func(t *testing.T) {
		raw := []byte(`{"message":"hello"}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, types.SeverityInfo, n.Severity)
		assert.Equal(t, "self-healing-infra Notification", n.Title)
		assert.Equal(t, types.SourceDirect, n.Source)
	})

	t.Run("unknown severity resolves to info", func(t *testing.T) {
		raw := []byte(`{"message":"hello","severity":"catastrophic"}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, types.SeverityInfo, n.Severity)
	})

	t.Run("metadata carried through", func(t *testing.T) {
		raw := []byte(`{"message":"hello","metadata":{"region":"us-east-1"}}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, "us-east-1", n.Metadata["region"])
	})
}

func TestNormalizeRawAlarm(t *testing.T) {
	nm := NewNormalizer("self-healing-infra")

	t.Run("firing alarm is critical", func(t *testing.T) {
		raw := []byte(`{"AlarmName":"prod-cpu-utilization-high","NewStateValue":"ALARM","NewStateReason":"Threshold crossed"}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, "CloudWatch Alarm: prod-cpu-utilization-high", n.Title)
		assert.Equal(t, "State: ALARM\nReason: Threshold crossed", n.Message)
		assert.Equal(t, types.SeverityCritical, n.Severity)
		assert.Equal(t, types.SourceCloudWatch, n.Source)
		assert.Equal(t, "prod-cpu-utilization-high", n.Metadata["AlarmName"])
	})

	t.Run("recovered alarm is success", func(t *testing.T) {
		raw := []byte(`{"AlarmName":"prod-cpu-utilization-high","NewStateValue":"OK","NewStateReason":"Back to normal"}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, types.SeveritySuccess, n.Severity)
		assert.Equal(t, "State: OK\nReason: Back to normal", n.Message)
	})
}

func TestNormalizeSNSEnvelope(t *testing.T) {
	nm := NewNormalizer("self-healing-infra")

	t.Run("sns record consumed", func(t *testing.T) {
		inner, err := json.Marshal(map[string]any{
			"Subject": "Deploy finished",
			"Message": "Deployment resolved successfully",
		})
		require.NoError(t, err)

		raw, err := json.Marshal(map[string]any{
			"Records": []map[string]any{{
				"EventSource": "aws:sns",
				"Sns":         map[string]any{"Message": string(inner)},
			}},
		})
		require.NoError(t, err)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, "Deploy finished", n.Title)
		assert.Equal(t, "Deployment resolved successfully", n.Message)
		assert.Equal(t, types.SeveritySuccess, n.Severity)
		assert.Equal(t, types.SourceSNS, n.Source)
	})

	t.Run("non-sns records ignored", func(t *testing.T) {
		raw := []byte(`{"Records":[{"EventSource":"aws:s3","Sns":{"Message":"not json"}}]}`)

		n, err := nm.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, types.SourceLambda, n.Source)
		assert.Empty(t, n.Title)
	})

	t.Run("malformed inner message is an error", func(t *testing.T) {
		raw := []byte(`{"Records":[{"EventSource":"aws:sns","Sns":{"Message":"not json"}}]}`)

		_, err := nm.Normalize(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode sns message")
	})
}

func TestNormalizeUnrecognizedShape(t *testing.T) {
	nm := NewNormalizer("self-healing-infra")

	n, err := nm.Normalize([]byte(`{"detail-type":"Scheduled Event"}`))
	require.NoError(t, err)

	assert.Empty(t, n.Title)
	assert.Empty(t, n.Message)
	assert.Equal(t, types.SeverityInfo, n.Severity)
	assert.Equal(t, types.SourceLambda, n.Source)
}

func TestNormalizeMalformedJSON(t *testing.T) {
	nm := NewNormalizer("self-healing-infra")

	_, err := nm.Normalize([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode event")
}
