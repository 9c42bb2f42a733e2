package enrich

import (
	"context"
	"encoding/json"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/tags"
)

// TagResolver is the part of tags.Resolver the enrichers depend on.
type TagResolver interface {
	Resolve(ctx context.Context, key domain.ResourceKey, lc tags.LookupContext) domain.TagMap
	StorageSize(ctx context.Context, identifier string) (string, bool)
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

// isMetricValue accepts a plain number or a metric-stream statistic set such
// as {"max": 1, "min": 0, "sum": 3, "count": 4}.
func isMetricValue(v any) bool {
	if isNumber(v) {
		return true
	}
	stats, ok := v.(map[string]any)
	if !ok || len(stats) == 0 {
		return false
	}
	for _, stat := range stats {
		if !isNumber(stat) {
			return false
		}
	}
	return true
}
