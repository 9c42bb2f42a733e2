package enrich

import (
	"context"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/extract"
	"github.com/de-tools/log-enricher/pkg/services/tags"
	"github.com/rs/zerolog"
)

type Logs struct {
	resolver TagResolver
	lookup   tags.LookupContext
}

func NewLogs(resolver TagResolver, lookup tags.LookupContext) *Logs {
	return &Logs{
		resolver: resolver,
		lookup:   lookup,
	}
}

// Enrich fans a log group event out into one tagged entry per log event.
// owner, subscriptionFilters and messageType are never carried over.
func (l *Logs) Enrich(ctx context.Context, event domain.LogGroupEvent) ([]domain.LogEntry, bool) {
	logger := zerolog.Ctx(ctx)

	if event.LogGroup == "" || event.LogEvents == nil {
		logger.Debug().
			Str("message_type", event.MessageType).
			Msg("log event is missing required fields")
		return nil, false
	}

	key, ok := extract.FromLogGroup(ctx, event.LogGroup)
	if !ok {
		return nil, false
	}

	resolved := l.resolver.Resolve(ctx, key, l.lookup)
	if len(resolved) == 0 {
		logger.Debug().
			Str("log_group", event.LogGroup).
			Msg("dropping logs without recognized ownership")
		return nil, false
	}

	entries := make([]domain.LogEntry, 0, len(event.LogEvents))
	for _, e := range event.LogEvents {
		entries = append(entries, domain.LogEntry{
			LogGroup:  event.LogGroup,
			LogStream: event.LogStream,
			Message:   e.Message,
			Timestamp: e.Timestamp,
			Tags:      resolved,
		})
	}
	return entries, true
}
