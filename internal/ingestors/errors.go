package ingestors

import (
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
)

const (
	codeValidationFailed = "ING_1000"
	codePublisherFailed  = "ING_9000"
)

func errValidationFailed(message string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, message, cause)
}

func errInternalObservationPublisherFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codePublisherFailed, cause)
}
