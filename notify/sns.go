package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/selfheal-infra/remedy/types"
)

// SNSAPI defines the SNS operations the channels use.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSChannel publishes the notification to a topic as plain text.
type SNSChannel struct {
	client      SNSAPI
	topicARN    string
	environment string
}

func NewSNSChannel(client SNSAPI, topicARN, environment string) *SNSChannel {
	return &SNSChannel{client: client, topicARN: topicARN, environment: environment}
}

func (c *SNSChannel) Name() string { return "sns" }

func (c *SNSChannel) Send(ctx context.Context, n types.Notification) types.ChannelResult {
	body := fmt.Sprintf("%s\n\n%s\n\nSeverity: %s\nEnvironment: %s\nSource: %s\nTimestamp: %s",
		n.Title, n.Message, strings.ToUpper(string(n.Severity)), c.environment, n.Source, n.Timestamp)

	out, err := c.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(n.Title),
		Message:  aws.String(body),
	})
	if err != nil {
		return types.ChannelFailed(c.Name(), fmt.Errorf("failed to publish: %w", err))
	}
	return types.ChannelOK(c.Name(), aws.ToString(out.MessageId))
}

// AdvisoryNotifier publishes best-effort advisory messages about
// remediation outcomes. A missing topic or publish failure is logged
// and swallowed, never propagated.
type AdvisoryNotifier struct {
	client      SNSAPI
	topicARN    string
	project     string
	environment string
	logger      zerolog.Logger
}

func NewAdvisoryNotifier(client SNSAPI, topicARN, project, environment string, logger zerolog.Logger) *AdvisoryNotifier {
	return &AdvisoryNotifier{
		client:      client,
		topicARN:    topicARN,
		project:     project,
		environment: environment,
		logger:      logger,
	}
}

func (a *AdvisoryNotifier) Notify(ctx context.Context, message string) {
	if a.topicARN == "" {
		a.logger.Debug().Msg("sns topic not configured, skipping advisory")
		return
	}

	body := fmt.Sprintf("%s\n\nTimestamp: %s\nEnvironment: %s",
		message, time.Now().UTC().Format(time.RFC3339), a.environment)

	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String(fmt.Sprintf("%s - Self-Healing Action", a.project)),
		Message:  aws.String(body),
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to publish advisory")
		return
	}
	a.logger.Info().Str("advisory", message).Msg("advisory published")
}
