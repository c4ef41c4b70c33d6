package handler

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfheal-infra/remedy/remediation"
)

type mockASG struct {
	groups            *autoscaling.DescribeAutoScalingGroupsOutput
	setCapacityInputs []*autoscaling.SetDesiredCapacityInput
	terminateInputs   []*autoscaling.TerminateInstanceInAutoScalingGroupInput
}

func (m *mockASG) DescribeAutoScalingGroups(_ context.Context, _ *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	return m.groups, nil
}

func (m *mockASG) SetDesiredCapacity(_ context.Context, params *autoscaling.SetDesiredCapacityInput, _ ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	m.setCapacityInputs = append(m.setCapacityInputs, params)
	return &autoscaling.SetDesiredCapacityOutput{}, nil
}

func (m *mockASG) TerminateInstanceInAutoScalingGroup(_ context.Context, params *autoscaling.TerminateInstanceInAutoScalingGroupInput, _ ...func(*autoscaling.Options)) (*autoscaling.TerminateInstanceInAutoScalingGroupOutput, error) {
	m.terminateInputs = append(m.terminateInputs, params)
	return &autoscaling.TerminateInstanceInAutoScalingGroupOutput{}, nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) {
	r.messages = append(r.messages, message)
}

func newRemediateHandler(asg *mockASG) (*RemediateHandler, *recordingNotifier) {
	notifier := &recordingNotifier{}
	engine := remediation.NewEngine(asg, nil, nil, notifier, nil, zerolog.Nop())
	return NewRemediateHandler(engine, notifier, "web-asg", nil, zerolog.Nop()), notifier
}

func snsRecord(message string) events.SNSEventRecord {
	return events.SNSEventRecord{
		EventSource: "aws:sns",
		SNS:         events.SNSEntity{Message: message},
	}
}

func webFleet(desired, maxSize int32) *autoscaling.DescribeAutoScalingGroupsOutput {
	return &autoscaling.DescribeAutoScalingGroupsOutput{
		AutoScalingGroups: []autoscalingtypes.AutoScalingGroup{{
			AutoScalingGroupName: aws.String("web-asg"),
			DesiredCapacity:      aws.Int32(desired),
			MaxSize:              aws.Int32(maxSize),
		}},
	}
}

func TestRemediateHandle(t *testing.T) {
	asg := &mockASG{groups: webFleet(2, 4)}
	h, notifier := newRemediateHandler(asg)

	event := events.SNSEvent{Records: []events.SNSEventRecord{
		snsRecord(`{"AlarmName": "prod-cpu-utilization-high", "NewStateValue": "ALARM", "NewStateReason": "Threshold crossed"}`),
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `"Remediation triggered successfully"`, resp.Body)

	require.Len(t, asg.setCapacityInputs, 1)
	assert.Equal(t, int32(3), aws.ToInt32(asg.setCapacityInputs[0].DesiredCapacity))

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Scaled up web-asg from 2 to 3 instances")
}

func TestRemediateHandleSkipsRecoveredAlarm(t *testing.T) {
	asg := &mockASG{groups: webFleet(2, 4)}
	h, notifier := newRemediateHandler(asg)

	event := events.SNSEvent{Records: []events.SNSEventRecord{
		snsRecord(`{"AlarmName": "prod-cpu-utilization-high", "NewStateValue": "OK"}`),
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, asg.setCapacityInputs)
	assert.Empty(t, notifier.messages)
}

func TestRemediateHandleIgnoresForeignRecords(t *testing.T) {
	asg := &mockASG{groups: webFleet(2, 4)}
	h, notifier := newRemediateHandler(asg)

	event := events.SNSEvent{Records: []events.SNSEventRecord{
		{EventSource: "aws:sqs", SNS: events.SNSEntity{Message: "not an alarm"}},
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, asg.setCapacityInputs)
	assert.Empty(t, notifier.messages)
}

func TestRemediateHandleMalformedAlarm(t *testing.T) {
	asg := &mockASG{groups: webFleet(2, 4)}
	h, notifier := newRemediateHandler(asg)

	event := events.SNSEvent{Records: []events.SNSEventRecord{
		snsRecord(`{{{`),
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, resp.Body, "Error:")

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Error in remediation Lambda")
	assert.Empty(t, asg.setCapacityInputs)
}

func TestRemediateHandleUnroutedAlarm(t *testing.T) {
	asg := &mockASG{groups: webFleet(2, 4)}
	h, notifier := newRemediateHandler(asg)

	event := events.SNSEvent{Records: []events.SNSEventRecord{
		snsRecord(`{"AlarmName": "prod-billing-anomaly", "NewStateValue": "ALARM"}`),
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, asg.setCapacityInputs)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Alert: prod-billing-anomaly triggered but no remediation configured", notifier.messages[0])
}
