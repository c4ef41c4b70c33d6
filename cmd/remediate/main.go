package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/selfheal-infra/remedy/config"
	"github.com/selfheal-infra/remedy/handler"
	"github.com/selfheal-infra/remedy/notify"
	awsprovider "github.com/selfheal-infra/remedy/providers/aws"
	"github.com/selfheal-infra/remedy/remediation"
	"github.com/selfheal-infra/remedy/telemetry"
)

func main() {
	logger := telemetry.NewLogger("remedy-remediate")
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	clients, err := awsprovider.NewClients(ctx, cfg.Region)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build AWS clients")
	}

	metrics, err := telemetry.NewPipelineMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build metrics")
	}

	notifier := notify.NewAdvisoryNotifier(clients.SNS, cfg.SNSTopicARN, cfg.ProjectName, cfg.Environment, logger.Logger)
	engine := remediation.NewEngine(clients.AutoScaling, clients.EC2, clients.SSM, notifier, metrics, logger.Logger)

	h := handler.NewRemediateHandler(engine, notifier, cfg.FleetName, metrics, logger.Logger)
	lambda.Start(h.Handle)
}
