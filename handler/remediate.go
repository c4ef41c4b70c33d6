package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/selfheal-infra/remedy/remediation"
	"github.com/selfheal-infra/remedy/telemetry"
	"github.com/selfheal-infra/remedy/types"
)

const snsEventSource = "aws:sns"

type alarmMessage struct {
	AlarmName        string `json:"AlarmName"`
	AlarmDescription string `json:"AlarmDescription"`
	NewStateValue    string `json:"NewStateValue"`
	NewStateReason   string `json:"NewStateReason"`
}

// RemediateHandler consumes SNS-wrapped CloudWatch alarms and runs the
// routed remediation action for each.
type RemediateHandler struct {
	engine   *remediation.Engine
	notifier remediation.Notifier
	fleet    string
	metrics  *telemetry.PipelineMetrics
	logger   zerolog.Logger
}

func NewRemediateHandler(engine *remediation.Engine, notifier remediation.Notifier, fleet string, metrics *telemetry.PipelineMetrics, logger zerolog.Logger) *RemediateHandler {
	return &RemediateHandler{
		engine:   engine,
		notifier: notifier,
		fleet:    fleet,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle processes one SNS delivery. A malformed alarm payload fails the
// invocation; everything downstream degrades into advisories.
func (h *RemediateHandler) Handle(ctx context.Context, event events.SNSEvent) (Response, error) {
	logger := h.logger.With().Ctx(ctx).Logger()

	for _, record := range event.Records {
		if record.EventSource != snsEventSource {
			continue
		}

		var alarm alarmMessage
		if err := json.Unmarshal([]byte(record.SNS.Message), &alarm); err != nil {
			logger.Error().Err(err).Msg("failed to decode alarm message")
			h.notifier.Notify(ctx, fmt.Sprintf("Error in remediation Lambda: %s", err))
			return Response{StatusCode: 500, Body: fmt.Sprintf("Error: %s", err)}, nil
		}

		alarmEvent := types.AlarmEvent{
			Name:        alarm.AlarmName,
			State:       types.ParseAlarmState(alarm.NewStateValue),
			Reason:      alarm.NewStateReason,
			Description: alarm.AlarmDescription,
		}
		logger.Info().
			Str("alarm", alarmEvent.Name).
			Str("state", string(alarmEvent.State)).
			Str("reason", alarmEvent.Reason).
			Msg("processing alarm")

		action, ok := remediation.Route(alarmEvent, h.fleet)
		if !ok {
			logger.Info().Str("alarm", alarmEvent.Name).Msg("alarm not firing, skipping remediation")
			continue
		}

		outcome := h.engine.Run(ctx, action)
		h.metrics.RecordRemediation(ctx, string(action.Kind), string(outcome))
	}

	return Response{StatusCode: 200, Body: `"Remediation triggered successfully"`}, nil
}
