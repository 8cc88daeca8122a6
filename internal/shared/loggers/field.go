package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldClientKey    = "client_key"
	FieldPartitionId  = "partition_id"
	FieldReportFormat = "report_format"
)
