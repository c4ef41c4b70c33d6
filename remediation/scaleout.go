package remediation

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

// scaleOut adds exactly one instance, never exceeding the fleet's maximum.
// At maximum it performs no mutation and emits an advisory.
//
// Known limitation: desired capacity is read then written without
// compare-and-set because the Auto Scaling API offers none. Two overlapping
// invocations can observe the same snapshot and converge on a single +1
// instead of two. The one-step increment bounded by MaxSize keeps the worst
// interleaving at maximum capacity, never past it.
func (e *Engine) scaleOut(ctx context.Context, fleet string) error {
	snapshot, err := DescribeFleet(ctx, e.asg, fleet)
	if errors.Is(err, ErrFleetNotFound) {
		e.logger.Warn().Str("fleet", fleet).Msg("fleet not found")
		e.notifier.Notify(ctx, fmt.Sprintf("Alert: fleet %s not found, no remediation possible", fleet))
		return nil
	}
	if err != nil {
		return err
	}

	if snapshot.DesiredCapacity >= snapshot.MaxSize {
		e.logger.Info().
			Str("fleet", fleet).
			Int32("max_size", snapshot.MaxSize).
			Msg("fleet already at maximum capacity")
		e.notifier.Notify(ctx, fmt.Sprintf("Alert: High CPU detected but fleet %s already at maximum capacity", fleet))
		return nil
	}

	next := snapshot.DesiredCapacity + 1
	_, err = e.asg.SetDesiredCapacity(ctx, &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: aws.String(fleet),
		DesiredCapacity:      aws.Int32(next),
	})
	if err != nil {
		return fmt.Errorf("failed to set desired capacity: %w", err)
	}

	e.logger.Info().
		Str("fleet", fleet).
		Int32("from", snapshot.DesiredCapacity).
		Int32("to", next).
		Msg("scaled out fleet")
	e.notifier.Notify(ctx, fmt.Sprintf("Remediation: Scaled up %s from %d to %d instances due to high CPU",
		fleet, snapshot.DesiredCapacity, next))
	return nil
}
