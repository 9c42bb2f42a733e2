package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/log-enricher/pkg/models/domain"
)

type rdsAPI interface {
	ListTagsForResource(
		ctx context.Context,
		params *rds.ListTagsForResourceInput,
		optFns ...func(*rds.Options),
	) (*rds.ListTagsForResourceOutput, error)
	DescribeDBInstances(
		ctx context.Context,
		params *rds.DescribeDBInstancesInput,
		optFns ...func(*rds.Options),
	) (*rds.DescribeDBInstancesOutput, error)
}

type RDS struct {
	client rdsAPI
}

func NewRDS(cfg awssdk.Config) *RDS {
	return &RDS{
		client: rds.NewFromConfig(cfg),
	}
}

// ListTags returns the tags of the database instance identified by its ARN.
func (r *RDS) ListTags(ctx context.Context, arn string) ([]domain.Tag, error) {
	resp, err := r.client.ListTagsForResource(ctx, &rds.ListTagsForResourceInput{
		ResourceName: awssdk.String(arn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for %s: %w", arn, err)
	}

	tags := make([]domain.Tag, 0, len(resp.TagList))
	for _, tag := range resp.TagList {
		tags = append(tags, domain.Tag{
			Key:   awssdk.ToString(tag.Key),
			Value: awssdk.ToString(tag.Value),
		})
	}
	return tags, nil
}

// AllocatedStorage returns the allocated storage, in GiB, of a database instance.
func (r *RDS) AllocatedStorage(ctx context.Context, identifier string) (int32, error) {
	resp, err := r.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: awssdk.String(identifier),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to describe RDS instance %s: %w", identifier, err)
	}
	if len(resp.DBInstances) == 0 || resp.DBInstances[0].AllocatedStorage == nil {
		return 0, fmt.Errorf("no allocated storage reported for RDS instance %s", identifier)
	}
	return *resp.DBInstances[0].AllocatedStorage, nil
}
