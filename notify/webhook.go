package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/selfheal-infra/remedy/types"
)

// webhookChannel posts a channel-specific JSON payload to a webhook URL.
type webhookChannel struct {
	name    string
	url     string
	client  *http.Client
	payload func(n types.Notification) map[string]any
}

func (c *webhookChannel) Name() string { return c.name }

func (c *webhookChannel) Send(ctx context.Context, n types.Notification) types.ChannelResult {
	if err := postJSON(ctx, c.client, c.url, nil, c.payload(n)); err != nil {
		return types.ChannelFailed(c.name, err)
	}
	return types.ChannelOK(c.name, "delivered")
}

// NewSlackChannel builds the Slack webhook channel.
func NewSlackChannel(url, project, environment string, client *http.Client) Channel {
	return &webhookChannel{
		name:   "slack",
		url:    url,
		client: client,
		payload: func(n types.Notification) map[string]any {
			return slackPayload(n, project, environment)
		},
	}
}

// NewDiscordChannel builds the Discord webhook channel.
func NewDiscordChannel(url, project, environment string, client *http.Client) Channel {
	return &webhookChannel{
		name:   "discord",
		url:    url,
		client: client,
		payload: func(n types.Notification) map[string]any {
			return discordPayload(n, project, environment)
		},
	}
}

// NewTeamsChannel builds the Microsoft Teams webhook channel.
func NewTeamsChannel(url, project, environment string, client *http.Client) Channel {
	return &webhookChannel{
		name:   "teams",
		url:    url,
		client: client,
		payload: func(n types.Notification) map[string]any {
			return teamsPayload(n, project, environment)
		},
	}
}

func slackPayload(n types.Notification, project, environment string) map[string]any {
	style := n.Severity.Style()
	return map[string]any{
		"username":   fmt.Sprintf("%s Monitor", project),
		"icon_emoji": ":robot_face:",
		"attachments": []map[string]any{{
			"color":  style.Color,
			"title":  fmt.Sprintf("%s %s", style.Emoji, n.Title),
			"text":   n.Message,
			"fields": factFields(n, environment, "title", "value", "short"),
			"footer": project,
			"ts":     time.Now().Unix(),
		}},
	}
}

func discordPayload(n types.Notification, project, environment string) map[string]any {
	style := n.Severity.Style()
	return map[string]any{
		"username": fmt.Sprintf("%s Monitor", project),
		"embeds": []map[string]any{{
			"title":       fmt.Sprintf("%s %s", style.Emoji, n.Title),
			"description": n.Message,
			"color":       hexToDecimal(style.Color),
			"fields":      factFields(n, environment, "name", "value", "inline"),
			"footer":      map[string]any{"text": project},
			"timestamp":   n.Timestamp,
		}},
	}
}

func teamsPayload(n types.Notification, project, environment string) map[string]any {
	style := n.Severity.Style()
	return map[string]any{
		"@type":      "MessageCard",
		"@context":   "https://schema.org/extensions",
		"summary":    n.Title,
		"themeColor": strings.TrimPrefix(style.Color, "#"),
		"title":      fmt.Sprintf("%s %s", style.Emoji, n.Title),
		"text":       n.Message,
		"sections": []map[string]any{{
			"facts": []map[string]any{
				{"name": "Severity", "value": strings.ToUpper(string(n.Severity))},
				{"name": "Environment", "value": environment},
				{"name": "Source", "value": string(n.Source)},
				{"name": "Timestamp", "value": n.Timestamp},
			},
		}},
	}
}

// factFields builds the four standard fact fields with channel-specific
// key names (Slack uses title/short, Discord uses name/inline).
func factFields(n types.Notification, environment, titleKey, valueKey, shortKey string) []map[string]any {
	facts := []struct{ title, value string }{
		{"Severity", strings.ToUpper(string(n.Severity))},
		{"Environment", environment},
		{"Source", string(n.Source)},
		{"Timestamp", n.Timestamp},
	}

	fields := make([]map[string]any, 0, len(facts))
	for _, fact := range facts {
		fields = append(fields, map[string]any{
			titleKey: fact.title,
			valueKey: fact.value,
			shortKey: true,
		})
	}
	return fields
}

func hexToDecimal(color string) int64 {
	decimal, err := strconv.ParseInt(strings.TrimPrefix(color, "#"), 16, 64)
	if err != nil {
		return 0
	}
	return decimal
}

func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post payload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
