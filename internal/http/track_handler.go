package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vmi98/api-analytics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type trackRequest struct {
	CreatedAt   string  `json:"created_at"`
	Method      string  `json:"method"`
	Endpoint    string  `json:"endpoint"`
	IP          string  `json:"ip"`
	ProcessTime float64 `json:"process_time"`
	StatusCode  int     `json:"status_code"`
}

type trackHandler struct {
	ingestionService ingestors.IngestionService
}

func NewTrackHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &trackHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /track requests. Acceptance is acknowledged before
// the record is durably appended; the append happens asynchronously.
func (h *trackHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var request trackRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return errBadRequest("malformed json body", err)
	}

	if request.CreatedAt == "" {
		request.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	observation := ingestors.Observation{
		ClientKey:   clientKeyFromContext(r.Context()),
		CreatedAt:   request.CreatedAt,
		Method:      request.Method,
		Endpoint:    request.Endpoint,
		IP:          request.IP,
		ProcessTime: request.ProcessTime,
		StatusCode:  request.StatusCode,
	}
	if err := h.ingestionService.Record(r.Context(), observation); err != nil {
		return err
	}

	return writeJSONResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
