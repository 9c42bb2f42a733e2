package tags

import (
	"context"
	"strconv"
	"strings"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Config struct {
	Prefixes domain.PrefixSet
	Clients  Clients
	Cache    Cache[domain.TagMap]

	// Describer and SizeCache are optional; without them StorageSize reports nothing.
	Describer Describer
	SizeCache Cache[string]
}

// Resolver turns a resource key into the ownership tags of that resource.
type Resolver struct {
	prefixes  domain.PrefixSet
	clients   Clients
	cache     Cache[domain.TagMap]
	describer Describer
	sizes     Cache[string]
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		prefixes:  cfg.Prefixes,
		clients:   cfg.Clients,
		cache:     cfg.Cache,
		describer: cfg.Describer,
		sizes:     cfg.SizeCache,
	}
}

// Resolve never fails: every error path yields an empty map. The result is a
// copy the caller owns.
func (r *Resolver) Resolve(ctx context.Context, key domain.ResourceKey, lc LookupContext) domain.TagMap {
	logger := zerolog.Ctx(ctx).With().
		Str("kind", key.Kind.String()).
		Str("identifier", key.Identifier).
		Logger()

	// Plain prefix match, no delimiter check.
	prefix := r.prefixes.For(key.Kind)
	if prefix == "" || !strings.HasPrefix(key.Identifier, prefix) {
		logger.Debug().Str("prefix", prefix).Msg("resource is outside this environment")
		return domain.TagMap{}
	}

	lookupKey, err := LookupKey(key, lc)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build lookup key")
		return domain.TagMap{}
	}
	logger = logger.With().Str("lookup_key", lookupKey).Logger()

	if r.cache != nil {
		if cached, ok := r.cache.Get(lookupKey); ok {
			return cached.Clone()
		}
	}

	client := r.clients.For(key.Kind)
	if client == nil {
		logger.Error().Msg("no inventory client configured for resource kind")
		return domain.TagMap{}
	}

	result := lookup(ctx, client, lookupKey)
	if !result.OK() {
		logger.Error().
			Err(result.Err).
			Str("failure", string(result.Failure)).
			Msg("could not fetch tags")
		return domain.TagMap{}
	}

	tags := result.Tags
	if _, ok := tags[key.Kind.OwnershipMarker()]; !ok {
		if len(tags) > 0 {
			logger.Info().
				Str("marker", key.Kind.OwnershipMarker()).
				Msg("resource has no ownership marker, ignoring its tags")
		}
		tags = domain.TagMap{}
	}

	if r.cache != nil {
		r.cache.Add(lookupKey, tags)
	}
	return tags.Clone()
}

// StorageSize returns the allocated storage of a database instance as a tag
// value. Failures are logged and not cached.
func (r *Resolver) StorageSize(ctx context.Context, identifier string) (string, bool) {
	if r.describer == nil {
		return "", false
	}
	if r.sizes != nil {
		if size, ok := r.sizes.Get(identifier); ok {
			return size, true
		}
	}

	allocated, err := r.describer.AllocatedStorage(ctx, identifier)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("identifier", identifier).
			Msg("failed to get rds description")
		return "", false
	}

	size := strconv.Itoa(int(allocated))
	if r.sizes != nil {
		r.sizes.Add(identifier, size)
	}
	return size, true
}
