package inventory

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// Failure is the category of a failed inventory lookup. All categories are
// handled the same way by the resolver; they only differ in what gets logged.
type Failure string

const (
	FailureNone         Failure = ""
	FailureNotFound     Failure = "not_found"
	FailureAccessDenied Failure = "access_denied"
	FailureThrottled    Failure = "throttled"
	FailureCanceled     Failure = "canceled"
	FailureOther        Failure = "other"
)

var failureCodes = map[string]Failure{
	"ResourceNotFoundException": FailureNotFound,
	"ResourceNotFoundFault":     FailureNotFound,
	"DBInstanceNotFound":        FailureNotFound,
	"DBInstanceNotFoundFault":   FailureNotFound,
	"NoSuchBucket":              FailureNotFound,
	"NotFound":                  FailureNotFound,

	"AccessDenied":          FailureAccessDenied,
	"AccessDeniedException": FailureAccessDenied,
	"UnauthorizedOperation": FailureAccessDenied,
	"InvalidClientTokenId":  FailureAccessDenied,
	"ExpiredToken":          FailureAccessDenied,

	"Throttling":                FailureThrottled,
	"ThrottlingException":       FailureThrottled,
	"TooManyRequestsException":  FailureThrottled,
	"RequestLimitExceeded":      FailureThrottled,
	"LimitExceededException":    FailureThrottled,
	"SlowDown":                  FailureThrottled,
	"RequestThrottledException": FailureThrottled,
}

// Classify maps an inventory error to its failure category.
func Classify(err error) Failure {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return FailureCanceled
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if failure, ok := failureCodes[apiErr.ErrorCode()]; ok {
			return failure
		}
	}
	return FailureOther
}
