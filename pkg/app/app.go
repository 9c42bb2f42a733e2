package app

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/enrich"
	"github.com/de-tools/log-enricher/pkg/services/prefix"
	"github.com/de-tools/log-enricher/pkg/services/subscription"
	"github.com/de-tools/log-enricher/pkg/services/tags"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/de-tools/log-enricher/pkg/store/inventory"
	"github.com/rs/zerolog"
)

// App holds the process-wide state shared by every invocation: the tag
// caches live as long as the App does.
type App struct {
	cfg      *config.Config
	aws      awssdk.Config
	prefixes domain.PrefixSet
	lookup   tags.LookupContext
	resolver *tags.Resolver
	registry transform.Registry
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, &domain.ConfigurationError{Reason: "configuration is missing"}
	}

	awsCfg, err := inventory.LoadAWSConfig(ctx, cfg.Region)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "AWS_REGION", Value: cfg.Region, Reason: "failed to load AWS config", Err: err}
	}

	return build(ctx, cfg, awsCfg, inventory.NewClients(awsCfg))
}

func build(ctx context.Context, cfg *config.Config, awsCfg awssdk.Config, clients inventory.Clients) (*App, error) {
	prefixes, err := prefix.Derive(cfg.Environment)
	if err != nil {
		return nil, err
	}

	tagCache, err := tags.NewLRUCache[domain.TagMap](cfg.TagCacheSize)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "TAG_CACHE_SIZE", Reason: "failed to create tag cache", Err: err}
	}
	sizeCache, err := tags.NewLRUCache[string](cfg.TagCacheSize)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "TAG_CACHE_SIZE", Reason: "failed to create size cache", Err: err}
	}

	lookup := cfg.LookupContext()
	if lookup.Region == "" {
		lookup.Region = awsCfg.Region
	}

	resolver := tags.NewResolver(tags.Config{
		Prefixes: prefixes,
		Clients: tags.Clients{
			Database:      clients.Database,
			SearchDomain:  clients.SearchDomains,
			ObjectStorage: clients.Buckets,
		},
		Cache:     tagCache,
		Describer: clients.Database,
		SizeCache: sizeCache,
	})

	registry := transform.NewRegistry()
	if err := registry.Register(transform.VariantMetrics, transform.NewMetrics(enrich.NewMetrics(resolver, lookup))); err != nil {
		return nil, fmt.Errorf("failed to register metrics transformer: %w", err)
	}
	if err := registry.Register(transform.VariantLogs, transform.NewLogs(enrich.NewLogs(resolver, lookup))); err != nil {
		return nil, fmt.Errorf("failed to register logs transformer: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("environment", cfg.Environment).
		Str("region", lookup.Region).
		Str("partition", lookup.Partition).
		Int("cache_size", cfg.TagCacheSize).
		Msg("transformers initialized")

	return &App{
		cfg:      cfg,
		aws:      awsCfg,
		prefixes: prefixes,
		lookup:   lookup,
		resolver: resolver,
		registry: registry,
	}, nil
}

// Get returns the transformer of a variant, enforcing the settings that
// variant cannot run without.
func (a *App) Get(variant string) (transform.Transformer, error) {
	if variant == transform.VariantLogs {
		if err := a.cfg.RequireAccountID(); err != nil {
			return nil, err
		}
	}
	return a.registry.Get(variant)
}

func (a *App) ListVariants() []string {
	return a.registry.ListVariants()
}

func (a *App) Installer() (*subscription.Installer, error) {
	if err := a.cfg.RequireSubscription(); err != nil {
		return nil, err
	}
	return subscription.NewInstaller(a.aws, a.prefixes, a.cfg.FirehoseARN, a.cfg.RoleARN), nil
}
