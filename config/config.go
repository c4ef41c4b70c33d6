package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the remediation and notification pipelines need.
// Lambda deployments configure entirely through the environment; the YAML
// form exists for remedyctl and tests.
type Config struct {
	Environment string `yaml:"environment"`
	ProjectName string `yaml:"project_name"`
	Region      string `yaml:"region,omitempty"`

	// Remediation target
	FleetName string `yaml:"fleet_name,omitempty"`

	// Notification channels; a channel with no value is simply not configured.
	SNSTopicARN         string `yaml:"sns_topic_arn,omitempty"`
	DefaultEmail        string `yaml:"default_email,omitempty"`
	SlackWebhookURL     string `yaml:"slack_webhook_url,omitempty"`
	DiscordWebhookURL   string `yaml:"discord_webhook_url,omitempty"`
	TeamsWebhookURL     string `yaml:"teams_webhook_url,omitempty"`
	PagerDutyRoutingKey string `yaml:"pagerduty_routing_key,omitempty"`
	PagerDutyAPIKey     string `yaml:"pagerduty_api_key,omitempty"`
}

// Load reads configuration from a YAML file and applies env overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds configuration from environment variables alone,
// the way the Lambda entrypoints run.
func FromEnv() (*Config, error) {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overlay := map[string]*string{
		"ENVIRONMENT":           &c.Environment,
		"PROJECT_NAME":          &c.ProjectName,
		"AWS_REGION":            &c.Region,
		"ASG_NAME":              &c.FleetName,
		"SNS_TOPIC_ARN":         &c.SNSTopicARN,
		"DEFAULT_EMAIL":         &c.DefaultEmail,
		"SLACK_WEBHOOK_URL":     &c.SlackWebhookURL,
		"DISCORD_WEBHOOK_URL":   &c.DiscordWebhookURL,
		"TEAMS_WEBHOOK_URL":     &c.TeamsWebhookURL,
		"PAGERDUTY_ROUTING_KEY": &c.PagerDutyRoutingKey,
		"PAGERDUTY_API_KEY":     &c.PagerDutyAPIKey,
	}
	for key, field := range overlay {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "prod"
	}
	if c.ProjectName == "" {
		c.ProjectName = "self-healing-infra"
	}
}

// Validate ensures config has required fields.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ProjectName == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}

// DefaultTitle is the project-qualified title used when a direct
// invocation carries no title of its own.
func (c *Config) DefaultTitle() string {
	return fmt.Sprintf("%s Notification", c.ProjectName)
}
