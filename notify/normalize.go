package notify

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/selfheal-infra/remedy/types"
)

const snsEventSource = "aws:sns"

type rawAlarm struct {
	AlarmName        string `json:"AlarmName"`
	AlarmDescription string `json:"AlarmDescription"`
	NewStateValue    string `json:"NewStateValue"`
	NewStateReason   string `json:"NewStateReason"`
}

type directPayload struct {
	Message  string         `json:"message"`
	Severity string         `json:"severity"`
	Title    string         `json:"title"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata"`
}

// Normalizer converts the three inbound shapes (SNS envelope, direct
// payload, raw CloudWatch alarm) into the canonical Notification.
type Normalizer struct {
	project string
}

func NewNormalizer(project string) *Normalizer {
	return &Normalizer{project: project}
}

// Normalize detects the event shape and builds a Notification. An event
// matching none of the shapes keeps the all-defaults form; only JSON that
// fails to decode is an error.
func (nm *Normalizer) Normalize(raw []byte) (types.Notification, error) {
	notification := types.NewNotification()

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return notification, fmt.Errorf("failed to decode event: %w", err)
	}

	switch {
	case hasKey(probe, "Records"):
		var envelope events.SNSEvent
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return notification, fmt.Errorf("failed to decode pub/sub envelope: %w", err)
		}
		for _, record := range envelope.Records {
			if record.EventSource != snsEventSource {
				continue
			}
			if err := applySNSMessage(&notification, record.SNS); err != nil {
				return notification, err
			}
		}
	case hasKey(probe, "message"):
		var payload directPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return notification, fmt.Errorf("failed to decode direct payload: %w", err)
		}
		nm.applyDirect(&notification, payload)
	case hasKey(probe, "AlarmName"):
		var alarm rawAlarm
		if err := json.Unmarshal(raw, &alarm); err != nil {
			return notification, fmt.Errorf("failed to decode alarm: %w", err)
		}
		applyAlarm(&notification, alarm, raw)
	}

	return notification, nil
}

func hasKey(probe map[string]json.RawMessage, key string) bool {
	_, ok := probe[key]
	return ok
}

func applySNSMessage(n *types.Notification, entity events.SNSEntity) error {
	var message map[string]any
	if err := json.Unmarshal([]byte(entity.Message), &message); err != nil {
		return fmt.Errorf("failed to decode sns message: %w", err)
	}

	n.Title = stringField(message, "Subject", "SNS Notification")
	n.Message = stringField(message, "Message", "")
	n.Severity = ClassifySeverity(n.Message)
	n.Source = types.SourceSNS
	n.Metadata = message
	return nil
}

func (nm *Normalizer) applyDirect(n *types.Notification, payload directPayload) {
	n.Message = payload.Message
	n.Severity = types.ParseSeverity(payload.Severity)

	n.Title = payload.Title
	if n.Title == "" {
		n.Title = fmt.Sprintf("%s Notification", nm.project)
	}

	n.Source = types.SourceDirect
	if payload.Source != "" {
		n.Source = types.Source(payload.Source)
	}

	if payload.Metadata != nil {
		n.Metadata = payload.Metadata
	}
}

func applyAlarm(n *types.Notification, alarm rawAlarm, raw []byte) {
	name := alarm.AlarmName
	if name == "" {
		name = "Unknown Alarm"
	}
	state := alarm.NewStateValue
	if state == "" {
		state = "UNKNOWN"
	}

	n.Severity = types.SeveritySuccess
	if state == "ALARM" {
		n.Severity = types.SeverityCritical
	}

	n.Title = fmt.Sprintf("CloudWatch Alarm: %s", name)
	n.Message = fmt.Sprintf("State: %s\nReason: %s", state, alarm.NewStateReason)
	n.Source = types.SourceCloudWatch

	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err == nil {
		n.Metadata = metadata
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
