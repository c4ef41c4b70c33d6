package remediation

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// ErrFleetNotFound means the target auto scaling group does not exist.
var ErrFleetNotFound = errors.New("fleet not found")

// FleetSnapshot is a point-in-time view of the target fleet. The fleet's
// capacity counter is owned by the autoscaling collaborator; this is only
// a read.
type FleetSnapshot struct {
	Name            string
	DesiredCapacity int32
	MaxSize         int32
	InService       []string
}

// DescribeFleet reads the fleet's capacity bounds and in-service members.
func DescribeFleet(ctx context.Context, client AutoScalingAPI, name string) (*FleetSnapshot, error) {
	out, err := client.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe auto scaling groups: %w", err)
	}
	if len(out.AutoScalingGroups) == 0 {
		return nil, ErrFleetNotFound
	}

	group := out.AutoScalingGroups[0]
	return &FleetSnapshot{
		Name:            aws.ToString(group.AutoScalingGroupName),
		DesiredCapacity: aws.ToInt32(group.DesiredCapacity),
		MaxSize:         aws.ToInt32(group.MaxSize),
		InService:       inServiceIDs(group.Instances),
	}, nil
}

// inServiceIDs filters the member list to lifecycle state InService;
// members in any other lifecycle state are excluded.
func inServiceIDs(instances []autoscalingtypes.Instance) []string {
	ids := make([]string, 0, len(instances))
	for _, instance := range instances {
		if instance.LifecycleState != autoscalingtypes.LifecycleStateInService {
			continue
		}
		ids = append(ids, aws.ToString(instance.InstanceId))
	}
	return ids
}
