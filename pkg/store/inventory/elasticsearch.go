package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/de-tools/log-enricher/pkg/models/domain"
)

type elasticsearchAPI interface {
	ListTags(
		ctx context.Context,
		params *elasticsearchservice.ListTagsInput,
		optFns ...func(*elasticsearchservice.Options),
	) (*elasticsearchservice.ListTagsOutput, error)
}

// SearchDomains reads tags of Elasticsearch/OpenSearch domains.
type SearchDomains struct {
	client elasticsearchAPI
}

func NewSearchDomains(cfg awssdk.Config) *SearchDomains {
	return &SearchDomains{
		client: elasticsearchservice.NewFromConfig(cfg),
	}
}

func (s *SearchDomains) ListTags(ctx context.Context, arn string) ([]domain.Tag, error) {
	resp, err := s.client.ListTags(ctx, &elasticsearchservice.ListTagsInput{
		ARN: awssdk.String(arn),
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
