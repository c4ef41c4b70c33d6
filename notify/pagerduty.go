package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/selfheal-infra/remedy/types"
)

const pagerDutyEndpoint = "https://events.pagerduty.com/v2/enqueue"

// PagerDutyChannel triggers PagerDuty Events v2 incidents. Paging is
// reserved for urgent events: anything outside critical/error is skipped.
type PagerDutyChannel struct {
	routingKey  string
	apiKey      string
	project     string
	environment string
	endpoint    string
	client      *http.Client
}

func NewPagerDutyChannel(routingKey, apiKey, project, environment string, client *http.Client) *PagerDutyChannel {
	return &PagerDutyChannel{
		routingKey:  routingKey,
		apiKey:      apiKey,
		project:     project,
		environment: environment,
		endpoint:    pagerDutyEndpoint,
		client:      client,
	}
}

func (c *PagerDutyChannel) Name() string { return "pagerduty" }

func (c *PagerDutyChannel) Send(ctx context.Context, n types.Notification) types.ChannelResult {
	if !n.Severity.Pages() {
		return types.ChannelResult{
			Channel: c.Name(),
			Status:  types.ChannelSkipped,
			Detail:  "non-critical event",
		}
	}

	headers := map[string]string{
		"Authorization": fmt.Sprintf("Token token=%s", c.apiKey),
	}
	if err := postJSON(ctx, c.client, c.endpoint, headers, c.payload(n)); err != nil {
		return types.ChannelFailed(c.Name(), err)
	}
	return types.ChannelOK(c.Name(), "triggered")
}

func (c *PagerDutyChannel) payload(n types.Notification) map[string]any {
	return map[string]any{
		"routing_key":  c.routingKey,
		"event_action": "trigger",
		"payload": map[string]any{
			"summary":   n.Title,
			"source":    fmt.Sprintf("%s-%s", c.project, c.environment),
			"severity":  n.Severity.Style().PagerDuty,
			"timestamp": n.Timestamp,
			"custom_details": map[string]any{
				"message":     n.Message,
				"environment": c.environment,
				"source":      string(n.Source),
				"metadata":    n.Metadata,
			},
		},
	}
}
