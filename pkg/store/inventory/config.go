package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig resolves credentials and region from the execution
// environment. An empty region keeps the SDK default chain (AWS_REGION on Lambda).
func LoadAWSConfig(ctx context.Context, region string) (awssdk.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	if awsCfg.Region == "" {
		return awssdk.Config{}, fmt.Errorf("unable to resolve AWS region")
	}

	return awsCfg, nil
}

// Clients bundles one tag source per resource kind.
type Clients struct {
	Database      *RDS
	SearchDomains *SearchDomains
	Buckets       *S3
}

func NewClients(cfg awssdk.Config) Clients {
	return Clients{
		Database:      NewRDS(cfg),
		SearchDomains: NewSearchDomains(cfg),
		Buckets:       NewS3(cfg),
	}
}
