package enrich

import (
	"context"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/extract"
	"github.com/de-tools/log-enricher/pkg/services/tags"
	"github.com/rs/zerolog"
)

const (
	metricTagsKey        = "Tags"
	metricDimensionsKey  = "dimensions"
	clientIDDimension    = "ClientId"
	freeStorageMetric    = "FreeStorageSpace"
	databaseSizeTagKey   = "db_size"
	metricAccountIDField = "account_id"
)

var metricDenylist = []string{"metric_stream_name", "account_id", "region"}

type Metrics struct {
	resolver TagResolver
	lookup   tags.LookupContext
}

// NewMetrics creates a metric enricher. When lookup has no account ID, the
// account_id carried by each metric is used to build ARNs.
func NewMetrics(resolver TagResolver, lookup tags.LookupContext) *Metrics {
	return &Metrics{
		resolver: resolver,
		lookup:   lookup,
	}
}

// Enrich returns a copy of the metric with ownership tags attached and
// sensitive fields removed, or false when the metric must be dropped.
func (m *Metrics) Enrich(ctx context.Context, record domain.MetricRecord) (domain.MetricRecord, bool) {
	logger := zerolog.Ctx(ctx)

	namespace, _ := record["namespace"].(string)
	metricName, _ := record["metric_name"].(string)
	if namespace == "" || metricName == "" || !isMetricValue(record["value"]) {
		logger.Debug().
			Str("namespace", namespace).
			Str("metric_name", metricName).
			Msg("metric is missing required fields")
		return nil, false
	}

	dimensions, _ := record[metricDimensionsKey].(map[string]any)
	key, ok := extract.FromMetric(ctx, namespace, dimensions)
	if !ok {
		logger.Debug().Str("namespace", namespace).Msg("no resource found on metric")
		return nil, false
	}

	lc := m.lookup
	if lc.AccountID == "" {
		lc.AccountID, _ = record[metricAccountIDField].(string)
	}

	resolved := m.resolver.Resolve(ctx, key, lc)
	if len(resolved) == 0 {
		logger.Debug().
			Str("identifier", key.Identifier).
			Msg("dropping metric without recognized ownership")
		return nil, false
	}

	if key.Kind == domain.ResourceKindDatabase && metricName == freeStorageMetric {
		if size, ok := m.resolver.StorageSize(ctx, key.Identifier); ok {
			resolved = resolved.Clone()
			resolved[databaseSizeTagKey] = size
		}
	}

	out := record.Clone()
	for _, field := range metricDenylist {
		delete(out, field)
	}
	if dims, ok := out[metricDimensionsKey].(map[string]any); ok {
		delete(dims, clientIDDimension)
	}
	out[metricTagsKey] = resolved

	return out, true
}
