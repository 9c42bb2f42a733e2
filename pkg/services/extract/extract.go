package extract

import (
	"context"
	"strings"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/rs/zerolog"
)

const logGroupIdentifierSegment = 4

type namespaceDimension struct {
	kind      domain.ResourceKind
	dimension string
}

// keyed by the service part of the namespace, e.g. "RDS" for "AWS/RDS"
var namespaces = map[string]namespaceDimension{
	"RDS": {kind: domain.ResourceKindDatabase, dimension: "DBInstanceIdentifier"},
	"ES":  {kind: domain.ResourceKindSearchDomain, dimension: "DomainName"},
	"S3":  {kind: domain.ResourceKindObjectStorage, dimension: "BucketName"},
}

// FromLogGroup reads the database instance identifier out of a log group
// path such as /aws/rds/instance/<identifier>/postgresql.
func FromLogGroup(ctx context.Context, logGroup string) (key domain.ResourceKey, ok bool) {
	defer guard(ctx, &ok)

	segments := strings.Split(logGroup, "/")
	if len(segments) <= logGroupIdentifierSegment {
		zerolog.Ctx(ctx).Info().Str("log_group", logGroup).Msg("log group has no resource segment")
		return domain.ResourceKey{}, false
	}

	identifier := segments[logGroupIdentifierSegment]
	if identifier == "" {
		return domain.ResourceKey{}, false
	}
	return domain.ResourceKey{Kind: domain.ResourceKindDatabase, Identifier: identifier}, true
}

// FromMetric maps a metric namespace to a resource kind and reads the
// identifier from that namespace's dimension.
func FromMetric(ctx context.Context, namespace string, dimensions map[string]any) (key domain.ResourceKey, ok bool) {
	defer guard(ctx, &ok)

	service := namespace
	if i := strings.LastIndex(namespace, "/"); i >= 0 {
		service = namespace[i+1:]
	}

	nd, found := namespaces[service]
	if !found {
		zerolog.Ctx(ctx).Warn().Str("namespace", namespace).Msg("unsupported metric namespace")
		return domain.ResourceKey{}, false
	}

	identifier, _ := dimensions[nd.dimension].(string)
	if identifier == "" {
		return domain.ResourceKey{}, false
	}
	return domain.ResourceKey{Kind: nd.kind, Identifier: identifier}, true
}

func guard(ctx context.Context, ok *bool) {
	if r := recover(); r != nil {
		zerolog.Ctx(ctx).Error().Interface("panic", r).Msg("failed to extract resource key")
		*ok = false
	}
}
