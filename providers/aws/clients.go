package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Clients bundles the AWS service clients the pipelines depend on,
// constructed once from a shared configuration. The core never builds
// its own transport clients; these are injected at wiring time.
type Clients struct {
	AutoScaling *autoscaling.Client
	EC2         *ec2.Client
	SSM         *ssm.Client
	SNS         *sns.Client
	SES         *sesv2.Client
}

// NewClients loads the default AWS configuration and constructs the
// service clients.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		AutoScaling: autoscaling.NewFromConfig(cfg),
		EC2:         ec2.NewFromConfig(cfg),
		SSM:         ssm.NewFromConfig(cfg),
		SNS:         sns.NewFromConfig(cfg),
		SES:         sesv2.NewFromConfig(cfg),
	}, nil
}
