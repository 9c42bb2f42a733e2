package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/de-tools/log-enricher/pkg/app"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/handlers/firehose"
	"github.com/de-tools/log-enricher/pkg/logging"
	"github.com/de-tools/log-enricher/pkg/services/transform"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.New("info", os.Stdout)
		lambda.Start(firehose.Unavailable(logger, err))
		return
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	lambda.Start(app.FirehoseHandler(context.Background(), logger, cfg, transform.VariantMetrics))
}
