package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/de-tools/log-enricher/pkg/app"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/logging"
	"github.com/de-tools/log-enricher/pkg/services/subscription"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.New("info", os.Stdout)
		lambda.Start(func(context.Context, events.CloudWatchEvent) (subscription.Outcome, error) {
			logger.Error().Err(err).Msg("initialization error")
			return subscription.Outcome{Status: subscription.StatusFailed}, err
		})
		return
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	lambda.Start(app.SubscriptionHandler(context.Background(), logger, cfg))
}
