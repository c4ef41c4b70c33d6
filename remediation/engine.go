package remediation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/selfheal-infra/remedy/telemetry"
	"github.com/selfheal-infra/remedy/types"
)

// Outcome summarizes how a remediation run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAdvisory  Outcome = "advisory"
	OutcomeFailed    Outcome = "failed"
)

// Engine runs remediation actions against the fleet collaborators.
// Collaborator failures never propagate out of Run; they degrade into
// advisory notifications.
type Engine struct {
	asg      AutoScalingAPI
	ec2      EC2API
	ssm      SSMAPI
	notifier Notifier
	metrics  *telemetry.PipelineMetrics
	logger   zerolog.Logger
}

func NewEngine(asg AutoScalingAPI, ec2Client EC2API, ssmClient SSMAPI, notifier Notifier, metrics *telemetry.PipelineMetrics, logger zerolog.Logger) *Engine {
	return &Engine{
		asg:      asg,
		ec2:      ec2Client,
		ssm:      ssmClient,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run executes one routed action and reports how it ended.
func (e *Engine) Run(ctx context.Context, action types.RemediationAction) Outcome {
	e.logger.Info().
		Str("action", string(action.Kind)).
		Str("fleet", action.Fleet).
		Str("alarm", action.Alarm).
		Msg("running remediation")

	var err error
	switch action.Kind {
	case types.ActionScaleOut:
		err = e.scaleOut(ctx, action.Fleet)
	case types.ActionClearCache:
		err = e.clearCache(ctx, action.Fleet)
	case types.ActionCleanDisk:
		err = e.cleanDisk(ctx, action.Fleet)
	case types.ActionCullUnhealthy:
		err = e.cullUnhealthy(ctx, action.Fleet)
	default:
		e.notifier.Notify(ctx, fmt.Sprintf("Alert: %s triggered but no remediation configured", action.Alarm))
		return OutcomeAdvisory
	}

	if err != nil {
		e.logger.Error().Err(err).Str("action", string(action.Kind)).Msg("remediation failed")
		e.notifier.Notify(ctx, fmt.Sprintf("Error in %s remediation: %v", action.Kind, err))
		return OutcomeFailed
	}
	return OutcomeCompleted
}

// fleetInstances resolves in-service members. A missing fleet or an empty
// membership ends the action with an advisory; done reports that case.
func (e *Engine) fleetInstances(ctx context.Context, fleet string) (instances []string, done bool, err error) {
	snapshot, err := DescribeFleet(ctx, e.asg, fleet)
	if errors.Is(err, ErrFleetNotFound) {
		e.logger.Warn().Str("fleet", fleet).Msg("fleet not found")
		e.notifier.Notify(ctx, fmt.Sprintf("Alert: fleet %s not found, no remediation possible", fleet))
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(snapshot.InService) == 0 {
		e.logger.Info().Str("fleet", fleet).Msg("no in-service instances")
		e.notifier.Notify(ctx, fmt.Sprintf("Alert: fleet %s has no in-service instances, nothing to remediate", fleet))
		return nil, true, nil
	}

	return snapshot.InService, false, nil
}
