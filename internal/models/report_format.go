package models

import "fmt"

// ReportFormat selects a report encoding.
type ReportFormat string

const (
	// FormatStructured is the lossless machine-readable JSON encoding.
	FormatStructured ReportFormat = "structured"
	// FormatDocument is the paginated PDF encoding with charts.
	FormatDocument ReportFormat = "document"
)

// ParseReportFormat maps a user-supplied format name to a ReportFormat.
// The HTTP layer exposes the encodings as "json" and "pdf"; those aliases are
// accepted alongside the canonical names.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch s {
	case "structured", "json":
		return FormatStructured, nil
	case "document", "pdf":
		return FormatDocument, nil
	default:
		return "", fmt.Errorf("unknown report format: %q", s)
	}
}

// Extension returns the file extension used when exporting this format.
func (f ReportFormat) Extension() string {
	if f == FormatDocument {
		return "pdf"
	}
	return "json"
}
