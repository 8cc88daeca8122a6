package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/queries"
)

const (
	defaultRawLogsLimit = 100
	maxRawLogsLimit     = 100
)

type rawLogEntry struct {
	ID          int64   `json:"id"`
	CreatedAt   string  `json:"created_at"`
	Method      string  `json:"method"`
	Endpoint    string  `json:"endpoint"`
	IP          string  `json:"ip,omitempty"`
	ProcessTime float64 `json:"process_time"`
	StatusCode  int     `json:"status_code"`
}

type rawLogsResponse struct {
	Count int           `json:"count"`
	Logs  []rawLogEntry `json:"logs"`
}

type rawLogsHandler struct {
	logQueryService queries.LogQueryService
}

func NewRawLogsHandler(logQueryService queries.LogQueryService) AppHttpHandler {
	return &rawLogsHandler{
		logQueryService: logQueryService,
	}
}

// Handle processes GET /raw_logs requests. Count reports the full match size;
// Logs carries the requested page of it.
func (h *rawLogsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseLogFilter(r)
	if err != nil {
		return err
	}

	offset, limit, err := parsePagination(r)
	if err != nil {
		return err
	}

	query := r.URL.Query()
	records, err := h.logQueryService.Query(
		r.Context(),
		clientKeyFromContext(r.Context()),
		filter,
		query.Get("sort_by"),
		query.Get("sort_dir"),
	)
	if err != nil {
		return err
	}

	page := paginate(records, offset, limit)
	response := rawLogsResponse{
		Count: len(records),
		Logs:  make([]rawLogEntry, 0, len(page)),
	}
	for _, record := range page {
		response.Logs = append(response.Logs, rawLogEntry{
			ID:          record.ID,
			CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339Nano),
			Method:      record.Method,
			Endpoint:    record.Endpoint,
			IP:          record.IP,
			ProcessTime: math.Round(record.ProcessTime*100) / 100,
			StatusCode:  record.StatusCode,
		})
	}

	return writeJSONResponse(w, http.StatusOK, response)
}

func parsePagination(r *http.Request) (offset, limit int, err error) {
	query := r.URL.Query()
	limit = defaultRawLogsLimit

	if value := query.Get("offset"); value != "" {
		offset, err = strconv.Atoi(value)
		if err != nil || offset < 0 {
			return 0, 0, errBadRequest("offset must be a non-negative integer", err)
		}
	}

	if value := query.Get("limit"); value != "" {
		limit, err = strconv.Atoi(value)
		if err != nil || limit < 1 || limit > maxRawLogsLimit {
			return 0, 0, errBadRequest("limit must be between 1 and 100", err)
		}
	}

	return offset, limit, nil
}

func paginate(records []*models.RequestLog, offset, limit int) []*models.RequestLog {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
