package reports

import (
	"fmt"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
)

const (
	codeUnsupportedFormat = "RPT_1000"
	codeExportNotFound    = "RPT_1001"
	codeRenderFailed      = "RPT_9000"
	codeExportFailed      = "RPT_9001"
)

func errUnsupportedFormat(format models.ReportFormat) *svcerrors.ServiceError {
	return svcerrors.NewUnsupportedError(codeUnsupportedFormat, fmt.Sprintf("unsupported report format: %q", format), nil)
}

func errExportNotFound(fileKey string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeExportNotFound, fmt.Sprintf("no exported report %q", fileKey), nil)
}

func errRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeRenderFailed, cause)
}

func errExportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeExportFailed, cause)
}
