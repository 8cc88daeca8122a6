package http

import (
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
)

const (
	codeBadRequest      = "HTTP_1000"
	codeMissingAPIKey   = "AUTH_1000"
	codeUnknownAPIKey   = "AUTH_1001"
	codeKeyIssueFailed  = "KEY_9000"
	codeAuthCheckFailed = "AUTH_9000"
)

func errBadRequest(message string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBadRequest, message, cause)
}

func errMissingAPIKey(message string) *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeMissingAPIKey, message, nil)
}

func errUnknownAPIKey() *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeUnknownAPIKey, "unknown api key", nil)
}
