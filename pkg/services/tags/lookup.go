package tags

import (
	"context"
	"fmt"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/store/inventory"
)

const DefaultPartition = "aws-us-gov"

// Lister is the inventory capability needed per resource kind.
type Lister interface {
	ListTags(ctx context.Context, lookupKey string) ([]domain.Tag, error)
}

// Describer reports the allocated storage of a database instance.
type Describer interface {
	AllocatedStorage(ctx context.Context, identifier string) (int32, error)
}

type Clients struct {
	Database      Lister
	SearchDomain  Lister
	ObjectStorage Lister
}

func (c Clients) For(kind domain.ResourceKind) Lister {
	switch kind {
	case domain.ResourceKindDatabase:
		return c.Database
	case domain.ResourceKindSearchDomain:
		return c.SearchDomain
	case domain.ResourceKindObjectStorage:
		return c.ObjectStorage
	default:
		return nil
	}
}

// LookupContext carries the account coordinates used to build ARNs.
type LookupContext struct {
	Partition string
	Region    string
	AccountID string
}

// LookupKey builds the identifier the inventory service knows the resource by:
// an ARN for databases and search domains, the bucket name for object storage.
func LookupKey(key domain.ResourceKey, lc LookupContext) (string, error) {
	if key.Kind == domain.ResourceKindObjectStorage {
		return key.Identifier, nil
	}

	if lc.Region == "" || lc.AccountID == "" {
		return "", fmt.Errorf("region and account id are required to build an ARN for %s", key.Identifier)
	}
	partition := lc.Partition
	if partition == "" {
		partition = DefaultPartition
	}

	switch key.Kind {
	case domain.ResourceKindDatabase:
		return fmt.Sprintf("arn:%s:rds:%s:%s:db:%s", partition, lc.Region, lc.AccountID, key.Identifier), nil
	case domain.ResourceKindSearchDomain:
		return fmt.Sprintf("arn:%s:es:%s:%s:domain/%s", partition, lc.Region, lc.AccountID, key.Identifier), nil
	default:
		return "", fmt.Errorf("unsupported resource kind: %s", key.Kind)
	}
}

// LookupResult keeps the outcome of one inventory call, so failures stay
// distinguishable even though they all degrade to "no tags".
type LookupResult struct {
	Tags    domain.TagMap
	Err     error
	Failure inventory.Failure
}

func (r LookupResult) OK() bool {
	return r.Err == nil
}

func lookup(ctx context.Context, client Lister, lookupKey string) (result LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			result = LookupResult{
				Err:     fmt.Errorf("inventory client panicked: %v", r),
				Failure: inventory.FailureOther,
			}
		}
	}()

	raw, err := client.ListTags(ctx, lookupKey)
	if err != nil {
		return LookupResult{Err: err, Failure: inventory.Classify(err)}
	}
	return LookupResult{Tags: domain.NewTagMap(raw)}
}
