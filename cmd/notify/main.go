package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/selfheal-infra/remedy/config"
	"github.com/selfheal-infra/remedy/handler"
	"github.com/selfheal-infra/remedy/notify"
	awsprovider "github.com/selfheal-infra/remedy/providers/aws"
	"github.com/selfheal-infra/remedy/telemetry"
)

func main() {
	logger := telemetry.NewLogger("remedy-notify")
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

	httpClient := &http.Client{Timeout: 10 * time.Second}
	channels := notify.FromConfig(cfg, httpClient, clients.SNS, clients.SES)
	fanout := notify.NewFanout(logger.Logger, channels...)
	normalizer := notify.NewNormalizer(cfg.ProjectName)

	h := handler.NewNotifyHandler(normalizer, fanout, metrics, logger.Logger)
	lambda.Start(h.Handle)
}
