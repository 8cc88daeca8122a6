package aggregators

import (
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidFilter = "AGG_1000"
	codeUnknownClient = "AGG_1001"
	codeStoreFailed   = "AGG_9000"
)

func errInvalidFilter(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFilter, cause.Error(), cause)
}

func errUnknownClient() *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUnknownClient, "unknown client key", nil)
}
