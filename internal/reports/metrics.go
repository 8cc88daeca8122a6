package reports

import (
	"github.com/vmi98/api-analytics/internal/shared/metrics"
)

const fieldFormat = "format"

var metricReportRenderedTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubReport,
	Name:      "rendered_total",
	Help:      "Total number of report renders requested.",
}, []string{fieldFormat, metrics.FieldErrorCode})

var metricReportExportedTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubReport,
	Name:      "exported_total",
	Help:      "Total number of report exports requested.",
}, []string{fieldFormat, metrics.FieldErrorCode})
