package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	ResultOk      = "Ok"
	ResultDropped = "Dropped"

	VariantMetrics = "metrics"
	VariantLogs    = "logs"
)

type Record struct {
	RecordID string
	Data     []byte
}

type Result struct {
	RecordID string
	Result   string
	Data     []byte
}

// Transformer turns a batch of records into exactly one result per record,
// in input order.
type Transformer interface {
	Transform(ctx context.Context, records []Record) []Result
}

type MetricEnricher interface {
	Enrich(ctx context.Context, record domain.MetricRecord) (domain.MetricRecord, bool)
}

type LogEnricher interface {
	Enrich(ctx context.Context, event domain.LogGroupEvent) ([]domain.LogEntry, bool)
}

type lineFunc func(ctx context.Context, line []byte) ([]any, error)

type batchTransformer struct {
	variant string
	line    lineFunc
}

func NewMetrics(enricher MetricEnricher) Transformer {
	return &batchTransformer{
		variant: VariantMetrics,
		line: func(ctx context.Context, line []byte) ([]any, error) {
			dec := json.NewDecoder(bytes.NewReader(line))
			dec.UseNumber()

			var record domain.MetricRecord
			if err := dec.Decode(&record); err != nil {
				return nil, fmt.Errorf("failed to decode metric: %w", err)
			}

			enriched, ok := enricher.Enrich(ctx, record)
			if !ok {
				return nil, nil
			}
			return []any{enriched}, nil
		},
	}
}

func NewLogs(enricher LogEnricher) Transformer {
	return &batchTransformer{
		variant: VariantLogs,
		line: func(ctx context.Context, line []byte) ([]any, error) {
			var event domain.LogGroupEvent
			if err := json.Unmarshal(line, &event); err != nil {
				return nil, fmt.Errorf("failed to decode log event: %w", err)
			}

			entries, ok := enricher.Enrich(ctx, event)
			if !ok {
				return nil, nil
			}
			out := make([]any, 0, len(entries))
			for _, entry := range entries {
				out = append(out, entry)
			}
			return out, nil
		},
	}
}

func (b *batchTransformer) Transform(ctx context.Context, records []Record) []Result {
	results := make([]Result, 0, len(records))
	for _, record := range records {
		results = append(results, b.transformRecord(ctx, record))
	}
	return results
}

func (b *batchTransformer) transformRecord(ctx context.Context, record Record) Result {
	logger := zerolog.Ctx(ctx).With().
		Str("variant", b.variant).
		Str("record_id", record.RecordID).
		Logger()
	ctx = logger.WithContext(ctx)

	dropped := Result{RecordID: record.RecordID, Result: ResultDropped, Data: record.Data}

	payload, err := Decode(record.Data)
	if err != nil {
		logger.Error().Err(err).Msg("failed to decode record")
		return dropped
	}

	var entries []any
	for _, line := range Lines(payload) {
		out, err := b.line(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("could not process line")
			continue
		}
		entries = append(entries, out...)
	}

	logger.Info().Int("entries", len(entries)).Msg("processed record")
	if len(entries) == 0 {
		return dropped
	}

	data, err := Encode(entries)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode record")
		return dropped
	}
	return Result{RecordID: record.RecordID, Result: ResultOk, Data: data}
}
