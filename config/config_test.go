package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "remedy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: staging
project_name: self-healing-infra
fleet_name: web-asg
slack_webhook_url: https://hooks.slack.com/services/T/B/X
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "self-healing-infra", cfg.ProjectName)
	assert.Equal(t, "web-asg", cfg.FleetName)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.SlackWebhookURL)
	assert.Empty(t, cfg.DiscordWebhookURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
environment: staging
project_name: from-file
`)

	t.Setenv("PROJECT_NAME", "from-env")
	t.Setenv("ASG_NAME", "env-asg")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.ProjectName)
	assert.Equal(t, "env-asg", cfg.FleetName)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "self-healing-infra", cfg.ProjectName)
	assert.Equal(t, "self-healing-infra Notification", cfg.DefaultTitle())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("PROJECT_NAME", "my-project")
	t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:alerts")
	t.Setenv("PAGERDUTY_ROUTING_KEY", "rk")
	t.Setenv("PAGERDUTY_API_KEY", "ak")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "my-project", cfg.ProjectName)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:alerts", cfg.SNSTopicARN)
	assert.Equal(t, "rk", cfg.PagerDutyRoutingKey)
	assert.Equal(t, "ak", cfg.PagerDutyAPIKey)
}
