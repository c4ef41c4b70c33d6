package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds operational metrics using OTEL semantic conventions
type PipelineMetrics struct {
	eventsNormalized    metric.Int64Counter
	remediations        metric.Int64Counter
	channelDeliveries   metric.Int64Counter
	instancesRemediated metric.Int64Counter
}

// NewPipelineMetrics creates pipeline metrics following OTEL semantic conventions
func NewPipelineMetrics() (*PipelineMetrics, error) {
	meter := otel.Meter("remedy.pipeline")

	eventsNormalized, err := meter.Int64Counter(
		"remedy.events.normalized",
		metric.WithDescription("Number of inbound events normalized"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	remediations, err := meter.Int64Counter(
		"remedy.remediations",
		metric.WithDescription("Number of remediation actions run"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	channelDeliveries, err := meter.Int64Counter(
		"remedy.channel.deliveries",
		metric.WithDescription("Number of notification channel deliveries"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, err
	}

	instancesRemediated, err := meter.Int64Counter(
		"remedy.instances.remediated",
		metric.WithDescription("Number of fleet instances touched by remediation"),
		metric.WithUnit("{instance}"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		eventsNormalized:    eventsNormalized,
		remediations:        remediations,
		channelDeliveries:   channelDeliveries,
		instancesRemediated: instancesRemediated,
	}, nil
}

// RecordNormalized counts one normalized inbound event by source.
func (m *PipelineMetrics) RecordNormalized(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.eventsNormalized.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
	))
}

// RecordRemediation counts one remediation run by action and outcome.
func (m *PipelineMetrics) RecordRemediation(ctx context.Context, action, outcome string) {
	if m == nil {
		return
	}
	m.remediations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

// RecordDelivery counts one channel delivery attempt by channel and status.
func (m *PipelineMetrics) RecordDelivery(ctx context.Context, channel, status string) {
	if m == nil {
		return
	}
	m.channelDeliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("status", status),
	))
}

// RecordInstances counts instances touched by a batch action.
func (m *PipelineMetrics) RecordInstances(ctx context.Context, action string, count int) {
	if m == nil {
		return
	}
	m.instancesRemediated.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("action", action),
	))
}
