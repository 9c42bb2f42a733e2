package app

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/handlers/firehose"
	"github.com/de-tools/log-enricher/pkg/services/subscription"
	"github.com/rs/zerolog"
)

type FirehoseFunc func(context.Context, events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error)

type SubscriptionFunc func(context.Context, events.CloudWatchEvent) (subscription.Outcome, error)

// FirehoseHandler builds the Lambda handler of a transformer variant. An
// initialization failure yields a handler that answers every batch with no
// records instead of crashing the runtime.
func FirehoseHandler(ctx context.Context, logger zerolog.Logger, cfg *config.Config, variant string) FirehoseFunc {
	ctx = logger.WithContext(ctx)

	a, err := New(ctx, cfg)
	if err != nil {
		return firehose.Unavailable(logger, err)
	}
	transformer, err := a.Get(variant)
	if err != nil {
		return firehose.Unavailable(logger, err)
	}

	return firehose.NewHandler(logger, transformer).Handle
}

// SubscriptionHandler builds the Lambda handler of the subscription
// installer. Initialization failures are returned on every invocation so the
// event is retried.
func SubscriptionHandler(ctx context.Context, logger zerolog.Logger, cfg *config.Config) SubscriptionFunc {
	ctx = logger.WithContext(ctx)

	installer, err := newInstaller(ctx, cfg)
	if err != nil {
		return func(context.Context, events.CloudWatchEvent) (subscription.Outcome, error) {
			logger.Error().Err(err).Msg("initialization error")
			return subscription.Outcome{Status: subscription.StatusFailed}, err
		}
	}

	return func(ctx context.Context, event events.CloudWatchEvent) (subscription.Outcome, error) {
		return installer.Handle(logger.WithContext(ctx), event)
	}
}

func newInstaller(ctx context.Context, cfg *config.Config) (*subscription.Installer, error) {
	a, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return a.Installer()
}
