package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidStatus    = errors.New("status code out of range")
	ErrInvalidTimeRange = errors.New("process_time_min must not exceed process_time_max")
)

// LogFilter is a conjunctive predicate over request log records. Zero values
// mean "no constraint". Date bounds are inclusive on both ends.
type LogFilter struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	Method         string
	StatusCode     int
	Endpoint       string
	IP             string
	ProcessTimeMin *float64
	ProcessTimeMax *float64
}

// Validate checks the filter's internal consistency. The returned errors are
// plain sentinels; services wrap them into their own error taxonomy.
func (f LogFilter) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return ErrInvalidDateRange
	}
	if f.Method != "" && !IsValidMethod(f.Method) {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, f.Method)
	}
	if f.StatusCode != 0 && (f.StatusCode < MinStatusCode || f.StatusCode > MaxStatusCode) {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, f.StatusCode)
	}
	if f.ProcessTimeMin != nil && f.ProcessTimeMax != nil && *f.ProcessTimeMin > *f.ProcessTimeMax {
		return ErrInvalidTimeRange
	}
	return nil
}

// Matches applies the predicate to a single record.
func (f LogFilter) Matches(r *RequestLog) bool {
	if f.DateFrom != nil && r.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && r.CreatedAt.After(*f.DateTo) {
		return false
	}
	if f.Method != "" && r.Method != f.Method {
		return false
	}
	if f.StatusCode != 0 && r.StatusCode != f.StatusCode {
		return false
	}
	if f.Endpoint != "" && r.Endpoint != f.Endpoint {
		return false
	}
	if f.IP != "" && r.IP != f.IP {
		return false
	}
	if f.ProcessTimeMin != nil && r.ProcessTime < *f.ProcessTimeMin {
		return false
	}
	if f.ProcessTimeMax != nil && r.ProcessTime > *f.ProcessTimeMax {
		return false
	}
	return true
}
