package inventory

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/de-tools/log-enricher/pkg/models/domain"
)

type s3API interface {
	GetBucketTagging(
		ctx context.Context,
		params *s3.GetBucketTaggingInput,
		optFns ...func(*s3.Options),
	) (*s3.GetBucketTaggingOutput, error)
}

type S3 struct {
	client s3API
}

func NewS3(cfg awssdk.Config) *S3 {
	return &S3{
		client: s3.NewFromConfig(cfg),
	}
}

// ListTags returns the bucket's tag set. A bucket without a tag set is a
// successful, empty answer rather than an error.
func (c *S3) ListTags(ctx context.Context, bucket string) ([]domain.Tag, error) {
	resp, err := c.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: awssdk.String(bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchTagSet" {
			return []domain.Tag{}, nil
		}
		return nil, fmt.Errorf("failed to get tagging for bucket %s: %w", bucket, err)
	}

	tags := make([]domain.Tag, 0, len(resp.TagSet))
	for _, tag := range resp.TagSet {
		tags = append(tags, domain.Tag{
			Key:   awssdk.ToString(tag.Key),
			Value: awssdk.ToString(tag.Value),
		})
	}
	return tags, nil
}
