package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmi98/api-analytics/internal/models"
)

const dayLayout = "2006-01-02"

// parseLogFilter reads the shared filter query parameters. Dates are calendar
// days in UTC; date_to is widened to the end of its day so both bounds stay
// inclusive. Only syntax is checked here; range consistency is the services'
// concern.
func parseLogFilter(r *http.Request) (models.LogFilter, error) {
	query := r.URL.Query()
	var filter models.LogFilter

	if value := query.Get("date_from"); value != "" {
		day, err := time.ParseInLocation(dayLayout, value, time.UTC)
		if err != nil {
			return filter, errBadRequest(fmt.Sprintf("date_from must be formatted as %s", dayLayout), err)
		}
		filter.DateFrom = &day
	}

	if value := query.Get("date_to"); value != "" {
		day, err := time.ParseInLocation(dayLayout, value, time.UTC)
		if err != nil {
			return filter, errBadRequest(fmt.Sprintf("date_to must be formatted as %s", dayLayout), err)
		}
		endOfDay := day.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &endOfDay
	}

	filter.Method = strings.ToUpper(strings.TrimSpace(query.Get("method")))
	filter.Endpoint = strings.TrimSpace(query.Get("endpoint"))
	filter.IP = strings.TrimSpace(query.Get("ip"))

	if value := query.Get("status_code"); value != "" {
		statusCode, err := strconv.Atoi(value)
		if err != nil {
			return filter, errBadRequest("status_code must be an integer", err)
		}
		filter.StatusCode = statusCode
	}

	if value := query.Get("process_time_min"); value != "" {
		min, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filter, errBadRequest("process_time_min must be a number", err)
		}
		filter.ProcessTimeMin = &min
	}

	if value := query.Get("process_time_max"); value != "" {
		max, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filter, errBadRequest("process_time_max must be a number", err)
		}
		filter.ProcessTimeMax = &max
	}

	return filter, nil
}
