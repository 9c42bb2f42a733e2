package firehose

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/rs/zerolog"
)

// Handler adapts a transformer to the Firehose data-transformation contract.
type Handler struct {
	logger      zerolog.Logger
	transformer transform.Transformer
}

func NewHandler(logger zerolog.Logger, transformer transform.Transformer) *Handler {
	return &Handler{
		logger:      logger,
		transformer: transformer,
	}
}

// Handle never returns an error; failing records come back as Dropped.
func (h *Handler) Handle(
	ctx context.Context,
	event events.KinesisFirehoseEvent,
) (events.KinesisFirehoseResponse, error) {
	logger := h.logger.With().Str("invocation_id", event.InvocationID).Logger()
	ctx = logger.WithContext(ctx)

	return Invoke(ctx, h.transformer, event), nil
}

// Invoke runs one batch through the transformer, preserving record order.
func Invoke(
	ctx context.Context,
	transformer transform.Transformer,
	event events.KinesisFirehoseEvent,
) events.KinesisFirehoseResponse {
	records := make([]transform.Record, 0, len(event.Records))
	for _, r := range event.Records {
		records = append(records, transform.Record{RecordID: r.RecordID, Data: r.Data})
	}

	results := transformer.Transform(ctx, records)

	response := events.KinesisFirehoseResponse{
		Records: make([]events.KinesisFirehoseResponseRecord, 0, len(results)),
	}
	for _, result := range results {
		response.Records = append(response.Records, events.KinesisFirehoseResponseRecord{
			RecordID: result.RecordID,
			Result:   resultState(result.Result),
			Data:     result.Data,
		})
	}

	zerolog.Ctx(ctx).Info().
		Int("records", len(response.Records)).
		Msg("batch transformed")
	return response
}

func resultState(result string) string {
	if result == transform.ResultOk {
		return events.KinesisFirehoseTransformedStateOk
	}
	return events.KinesisFirehoseTransformedStateDropped
}

// Unavailable is installed when the transformer could not be initialized.
// Every batch is answered with no records so Firehose retries it.
func Unavailable(
	logger zerolog.Logger,
	initErr error,
) func(context.Context, events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error) {
	return func(_ context.Context, event events.KinesisFirehoseEvent) (events.KinesisFirehoseResponse, error) {
		logger.Error().
			Err(initErr).
			Str("invocation_id", event.InvocationID).
			Int("records", len(event.Records)).
			Msg("initialization error, returning no records")
		return events.KinesisFirehoseResponse{
			Records: []events.KinesisFirehoseResponseRecord{},
		}, nil
	}
}
