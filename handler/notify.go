package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/selfheal-infra/remedy/notify"
	"github.com/selfheal-infra/remedy/telemetry"
)

// Response mirrors the statusCode/body shape the invocation callers expect.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// NotifyHandler normalizes any inbound event and fans it out to every
// configured channel.
type NotifyHandler struct {
	normalizer *notify.Normalizer
	fanout     *notify.Fanout
	metrics    *telemetry.PipelineMetrics
	logger     zerolog.Logger
}

func NewNotifyHandler(normalizer *notify.Normalizer, fanout *notify.Fanout, metrics *telemetry.PipelineMetrics, logger zerolog.Logger) *NotifyHandler {
	return &NotifyHandler{
		normalizer: normalizer,
		fanout:     fanout,
		metrics:    metrics,
		logger:     logger,
	}
}

// Handle processes one invocation. Only a normalization failure yields a
// failure response; per-channel delivery failures surface in the results.
func (h *NotifyHandler) Handle(ctx context.Context, raw json.RawMessage) (Response, error) {
	logger := h.logger.With().Ctx(ctx).Logger()

	notification, err := h.normalizer.Normalize(raw)
	if err != nil {
		logger.Error().Err(err).Msg("failed to normalize event")
		return Response{StatusCode: 500, Body: fmt.Sprintf("Error: %s", err)}, nil
	}
	h.metrics.RecordNormalized(ctx, string(notification.Source))

	logger.Info().
		Str("title", notification.Title).
		Str("severity", string(notification.Severity)).
		Str("source", string(notification.Source)).
		Msg("dispatching notification")

	results := h.fanout.Send(ctx, notification)
	for channel, result := range results {
		h.metrics.RecordDelivery(ctx, channel, string(result.Status))
	}

	body, err := json.Marshal(map[string]any{
		"message": "Notifications sent successfully",
		"results": results,
	})
	if err != nil {
		return Response{StatusCode: 500, Body: fmt.Sprintf("Error: %s", err)}, nil
	}
	return Response{StatusCode: 200, Body: string(body)}, nil
}
