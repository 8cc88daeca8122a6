package queries

import (
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidFilter = "QRY_1000"
	codeInvalidSort   = "QRY_1001"
	codeUnknownClient = "QRY_1002"
	codeStoreFailed   = "QRY_9000"
)

func errInvalidFilter(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFilter, cause.Error(), cause)
}

func errInvalidSort(message string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSort, message, nil)
}

func errUnknownClient() *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUnknownClient, "unknown client key", nil)
}
