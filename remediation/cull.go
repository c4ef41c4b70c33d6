package remediation

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/selfheal-infra/remedy/types"
)

// cullUnhealthy terminates members failing either health check. Desired
// capacity is not decremented, so replacement capacity launches
// automatically. One advisory per terminated instance, not batched.
func (e *Engine) cullUnhealthy(ctx context.Context, fleet string) error {
	instances, done, err := e.fleetInstances(ctx, fleet)
	if err != nil || done {
		return err
	}

	terminated := 0
	for _, id := range instances {
		out, err := e.ec2.DescribeInstanceStatus(ctx, &ec2.DescribeInstanceStatusInput{
			InstanceIds: []string{id},
		})
		if err != nil {
			e.logger.Warn().Err(err).Str("instance_id", id).Msg("failed to describe instance status, skipping instance")
			continue
		}
		if len(out.InstanceStatuses) == 0 {
			continue
		}
		if instanceHealthy(out.InstanceStatuses[0]) {
			continue
		}

		_, err = e.asg.TerminateInstanceInAutoScalingGroup(ctx, &autoscaling.TerminateInstanceInAutoScalingGroupInput{
			InstanceId:                     aws.String(id),
			ShouldDecrementDesiredCapacity: aws.Bool(false),
		})
		if err != nil {
			e.logger.Warn().Err(err).Str("instance_id", id).Msg("failed to terminate instance, skipping instance")
			continue
		}

		terminated++
		e.logger.Info().Str("instance_id", id).Msg("terminated unhealthy instance")
		e.notifier.Notify(ctx, fmt.Sprintf("Remediation: Terminated unhealthy instance %s", id))
	}
	e.metrics.RecordInstances(ctx, string(types.ActionCullUnhealthy), terminated)
	return nil
}

// instanceHealthy reports whether both instance-level and system-level
// checks pass.
func instanceHealthy(status ec2types.InstanceStatus) bool {
	if status.InstanceStatus == nil || status.SystemStatus == nil {
		return false
	}
	return status.InstanceStatus.Status == ec2types.SummaryStatusOk &&
		status.SystemStatus.Status == ec2types.SummaryStatusOk
}
