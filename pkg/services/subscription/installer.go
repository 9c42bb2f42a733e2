package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/prefix"
	"github.com/de-tools/log-enricher/pkg/store/inventory"
	"github.com/rs/zerolog"
)

const (
	FilterName    = "firehose_for_opensearch"
	filterPattern = ""
)

type Status string

const (
	StatusCreated Status = "created"
	StatusExists  Status = "exists"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Outcome struct {
	LogGroup string `json:"logGroup"`
	Status   Status `json:"status"`
}

type logsAPI interface {
	PutSubscriptionFilter(
		ctx context.Context,
		params *cloudwatchlogs.PutSubscriptionFilterInput,
		optFns ...func(*cloudwatchlogs.Options),
	) (*cloudwatchlogs.PutSubscriptionFilterOutput, error)
}

// Installer subscribes newly created database log groups of this
// environment to the enrichment delivery stream.
type Installer struct {
	client         logsAPI
	logGroupPrefix string
	destinationARN string
	roleARN        string
}

func NewInstaller(cfg awssdk.Config, prefixes domain.PrefixSet, destinationARN, roleARN string) *Installer {
	return &Installer{
		client:         cloudwatchlogs.NewFromConfig(cfg),
		logGroupPrefix: prefix.DatabaseLogGroupPrefix(prefixes),
		destinationARN: destinationARN,
		roleARN:        roleARN,
	}
}

type createLogGroupDetail struct {
	RequestParameters struct {
		LogGroupName string `json:"logGroupName"`
	} `json:"requestParameters"`
}

// Handle reacts to the CloudTrail CreateLogGroup event delivered by EventBridge.
func (i *Installer) Handle(ctx context.Context, event events.CloudWatchEvent) (Outcome, error) {
	var detail createLogGroupDetail
	if len(event.Detail) > 0 {
		if err := json.Unmarshal(event.Detail, &detail); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("event_id", event.ID).Msg("failed to decode event detail")
			return Outcome{Status: StatusSkipped}, nil
		}
	}
	return i.Install(ctx, detail.RequestParameters.LogGroupName), nil
}

func (i *Installer) Install(ctx context.Context, logGroup string) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("log_group", logGroup).Logger()

	if logGroup == "" || !strings.HasPrefix(logGroup, i.logGroupPrefix) {
		logger.Info().Str("prefix", i.logGroupPrefix).Msg("log group is not a broker database log group")
		return Outcome{LogGroup: logGroup, Status: StatusSkipped}
	}

	_, err := i.client.PutSubscriptionFilter(ctx, &cloudwatchlogs.PutSubscriptionFilterInput{
		LogGroupName:   awssdk.String(logGroup),
		FilterName:     awssdk.String(FilterName),
		FilterPattern:  awssdk.String(filterPattern),
		DestinationArn: awssdk.String(i.destinationARN),
		RoleArn:        awssdk.String(i.roleARN),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if errors.As(err, &exists) {
			logger.Info().Msg("subscription filter already exists")
			return Outcome{LogGroup: logGroup, Status: StatusExists}
		}
		logger.Error().
			Err(err).
			Str("failure", string(inventory.Classify(err))).
			Msg("failed to create subscription filter")
		return Outcome{LogGroup: logGroup, Status: StatusFailed}
	}

	logger.Info().Msg("subscription filter created")
	return Outcome{LogGroup: logGroup, Status: StatusCreated}
}
