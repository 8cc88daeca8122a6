package models

import "time"

// RequestLog is one observation of a completed HTTP request handled by a
// monitored service. Records are immutable once written and always scoped to
// the client key that owns them.
type RequestLog struct {
	ID          int64     `json:"id"`
	ClientKey   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	Method      string    `json:"method"`
	Endpoint    string    `json:"endpoint"`
	IP          string    `json:"ip,omitempty"`
	ProcessTime float64   `json:"process_time"` // wall-clock seconds
	StatusCode  int       `json:"status_code"`
}

// IsError reports whether the record counts toward the error rate.
func (r *RequestLog) IsError() bool {
	return r.StatusCode >= 400
}

// Day returns the record's calendar day in UTC, the time-series granularity.
func (r *RequestLog) Day() time.Time {
	return r.CreatedAt.UTC().Truncate(24 * time.Hour)
}

var validMethods = map[string]struct{}{
	"GET":     {},
	"POST":    {},
	"PUT":     {},
	"DELETE":  {},
	"PATCH":   {},
	"OPTIONS": {},
}

// IsValidMethod reports whether m is one of the accepted HTTP methods.
// Callers are expected to uppercase m first.
func IsValidMethod(m string) bool {
	_, ok := validMethods[m]
	return ok
}

const (
	// MinStatusCode and MaxStatusCode bound accepted HTTP status codes.
	MinStatusCode = 100
	MaxStatusCode = 599
)
