package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	estypes "github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRDSAPI struct {
	mock.Mock
}

func (m *mockRDSAPI) ListTagsForResource(
	ctx context.Context,
	params *rds.ListTagsForResourceInput,
	_ ...func(*rds.Options),
) (*rds.ListTagsForResourceOutput, error) {
	args := m.Called(ctx, awssdk.ToString(params.ResourceName))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rds.ListTagsForResourceOutput), args.Error(1)
}

func (m *mockRDSAPI) DescribeDBInstances(
	ctx context.Context,
	params *rds.DescribeDBInstancesInput,
	_ ...func(*rds.Options),
) (*rds.DescribeDBInstancesOutput, error) {
	args := m.Called(ctx, awssdk.ToString(params.DBInstanceIdentifier))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rds.DescribeDBInstancesOutput), args.Error(1)
}

type mockElasticsearchAPI struct {
	mock.Mock
}

func (m *mockElasticsearchAPI) ListTags(
	ctx context.Context,
	params *elasticsearchservice.ListTagsInput,
	_ ...func(*elasticsearchservice.Options),
) (*elasticsearchservice.ListTagsOutput, error) {
	args := m.Called(ctx, awssdk.ToString(params.ARN))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.ListTagsOutput), args.Error(1)
}

type mockS3API struct {
	mock.Mock
}

func (m *mockS3API) GetBucketTagging(
	ctx context.Context,
	params *s3.GetBucketTaggingInput,
	_ ...func(*s3.Options),
) (*s3.GetBucketTaggingOutput, error) {
	args := m.Called(ctx, awssdk.ToString(params.Bucket))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetBucketTaggingOutput), args.Error(1)
}

const dbARN = "arn:aws-us-gov:rds:us-gov-west-1:123456:db:cg-aws-broker-prod-test"

func TestRDS_ListTags(t *testing.T) {
	api := new(mockRDSAPI)
	api.On("ListTagsForResource", mock.Anything, dbARN).Return(&rds.ListTagsForResourceOutput{
		TagList: []rdstypes.Tag{
			{Key: awssdk.String("Organization GUID"), Value: awssdk.String("cloudgovtests")},
			{Key: awssdk.String("Environment"), Value: awssdk.String("production")},
		},
	}, nil)

	client := &RDS{client: api}
	tags, err := client.ListTags(context.Background(), dbARN)

	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{
		{Key: "Organization GUID", Value: "cloudgovtests"},
		{Key: "Environment", Value: "production"},
	}, tags)
	api.AssertExpectations(t)
}

func TestRDS_ListTags_WrapsError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "DBInstanceNotFound", Message: "gone"}
	api := new(mockRDSAPI)
	api.On("ListTagsForResource", mock.Anything, dbARN).Return(nil, apiErr)

	client := &RDS{client: api}
	_, err := client.ListTags(context.Background(), dbARN)

	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, FailureNotFound, Classify(err))
}

func TestRDS_AllocatedStorage(t *testing.T) {
	api := new(mockRDSAPI)
	api.On("DescribeDBInstances", mock.Anything, "cg-aws-broker-prod-test").Return(&rds.DescribeDBInstancesOutput{
		DBInstances: []rdstypes.DBInstance{{AllocatedStorage: awssdk.Int32(20)}},
	}, nil)
	api.On("DescribeDBInstances", mock.Anything, "cg-aws-broker-prod-empty").Return(&rds.DescribeDBInstancesOutput{}, nil)

	client := &RDS{client: api}

	size, err := client.AllocatedStorage(context.Background(), "cg-aws-broker-prod-test")
	require.NoError(t, err)
	assert.Equal(t, int32(20), size)

	_, err = client.AllocatedStorage(context.Background(), "cg-aws-broker-prod-empty")
	assert.Error(t, err)
}

func TestSearchDomains_ListTags(t *testing.T) {
	arn := "arn:aws-us-gov:es:us-gov-west-1:123456:domain/cg-broker-dev-jason-test"
	api := new(mockElasticsearchAPI)
	api.On("ListTags", mock.Anything, arn).Return(&elasticsearchservice.ListTagsOutput{
		TagList: []estypes.Tag{
			{Key: awssdk.String("organization"), Value: awssdk.String("cloudgovtests")},
		},
	}, nil)

	client := &SearchDomains{client: api}
	tags, err := client.ListTags(context.Background(), arn)

	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{Key: "organization", Value: "cloudgovtests"}}, tags)
}

func TestS3_ListTags(t *testing.T) {
	api := new(mockS3API)
	api.On("GetBucketTagging", mock.Anything, "development-cg-tagged").Return(&s3.GetBucketTaggingOutput{
		TagSet: []s3types.Tag{
			{Key: awssdk.String("organization"), Value: awssdk.String("cloudgovtests")},
			{Key: awssdk.String("Testing"), Value: awssdk.String("enabled")},
		},
	}, nil)
	api.On("GetBucketTagging", mock.Anything, "development-cg-untagged").
		Return(nil, &smithy.GenericAPIError{Code: "NoSuchTagSet", Message: "The TagSet does not exist"})
	api.On("GetBucketTagging", mock.Anything, "development-cg-denied").
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

	client := &S3{client: api}

	tags, err := client.ListTags(context.Background(), "development-cg-tagged")
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	tags, err = client.ListTags(context.Background(), "development-cg-untagged")
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = client.ListTags(context.Background(), "development-cg-denied")
	require.Error(t, err)
	assert.Equal(t, FailureAccessDenied, Classify(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Failure
	}{
		{name: "nil", err: nil, expected: FailureNone},
		{name: "not found", err: &smithy.GenericAPIError{Code: "ResourceNotFoundException"}, expected: FailureNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDeniedException"}, expected: FailureAccessDenied},
		{name: "throttled", err: &smithy.GenericAPIError{Code: "ThrottlingException"}, expected: FailureThrottled},
		{
			name:     "wrapped throttling",
			err:      fmt.Errorf("failed to list tags: %w", &smithy.GenericAPIError{Code: "Throttling"}),
			expected: FailureThrottled,
		},
		{name: "canceled", err: fmt.Errorf("call: %w", context.Canceled), expected: FailureCanceled},
		{name: "unknown api code", err: &smithy.GenericAPIError{Code: "InternalFailure"}, expected: FailureOther},
		{name: "plain error", err: errors.New("boom"), expected: FailureOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}
