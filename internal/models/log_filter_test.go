package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestLogFilter_Validate(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  LogFilter
		wantErr error
	}{
		{
			name:   "empty filter is valid",
			filter: LogFilter{},
		},
		{
			name:   "valid method",
			filter: LogFilter{Method: "GET"},
		},
		{
			name:    "date_from after date_to",
			filter:  LogFilter{DateFrom: timePtr(from), DateTo: timePtr(to)},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "unknown method",
			filter:  LogFilter{Method: "FETCH"},
			wantErr: ErrUnknownMethod,
		},
		{
			name:    "lowercase method rejected",
			filter:  LogFilter{Method: "get"},
			wantErr: ErrUnknownMethod,
		},
		{
			name:    "status code below range",
			filter:  LogFilter{StatusCode: 99},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "status code above range",
			filter:  LogFilter{StatusCode: 600},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "inverted process time range",
			filter:  LogFilter{ProcessTimeMin: floatPtr(2.0), ProcessTimeMax: floatPtr(1.0)},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.filter.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLogFilter_Matches(t *testing.T) {
	t.Parallel()

	record := &RequestLog{
		ClientKey:   "key-1",
		CreatedAt:   time.Date(2025, 1, 15, 12, 30, 0, 0, time.UTC),
		Method:      "GET",
		Endpoint:    "/users",
		IP:          "192.168.0.1",
		ProcessTime: 0.25,
		StatusCode:  200,
	}

	tests := []struct {
		name   string
		filter LogFilter
		want   bool
	}{
		{name: "empty filter matches", filter: LogFilter{}, want: true},
		{name: "method match", filter: LogFilter{Method: "GET"}, want: true},
		{name: "method mismatch", filter: LogFilter{Method: "POST"}, want: false},
		{name: "status match", filter: LogFilter{StatusCode: 200}, want: true},
		{name: "status mismatch", filter: LogFilter{StatusCode: 500}, want: false},
		{name: "endpoint match", filter: LogFilter{Endpoint: "/users"}, want: true},
		{name: "endpoint mismatch", filter: LogFilter{Endpoint: "/items"}, want: false},
		{name: "ip match", filter: LogFilter{IP: "192.168.0.1"}, want: true},
		{
			name:   "date range includes boundary",
			filter: LogFilter{DateFrom: timePtr(record.CreatedAt), DateTo: timePtr(record.CreatedAt)},
			want:   true,
		},
		{
			name:   "date range excludes",
			filter: LogFilter{DateFrom: timePtr(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))},
			want:   false,
		},
		{
			name:   "process time range includes",
			filter: LogFilter{ProcessTimeMin: floatPtr(0.1), ProcessTimeMax: floatPtr(0.3)},
			want:   true,
		},
		{
			name:   "process time min excludes",
			filter: LogFilter{ProcessTimeMin: floatPtr(0.5)},
			want:   false,
		},
		{
			name: "conjunction of all fields",
			filter: LogFilter{
				Method:     "GET",
				StatusCode: 200,
				Endpoint:   "/users",
				IP:         "192.168.0.1",
			},
			want: true,
		},
		{
			name: "conjunction fails on one field",
			filter: LogFilter{
				Method:     "GET",
				StatusCode: 200,
				Endpoint:   "/items",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Matches(record))
		})
	}
}

func TestParseReportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ReportFormat
		wantErr bool
	}{
		{input: "structured", want: FormatStructured},
		{input: "json", want: FormatStructured},
		{input: "document", want: FormatDocument},
		{input: "pdf", want: FormatDocument},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
		{input: "PDF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseReportFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
