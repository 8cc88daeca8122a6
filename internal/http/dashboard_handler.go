package http

import (
	"net/http"

	"github.com/vmi98/api-analytics/internal/aggregators"
)

type dashboardHandler struct {
	aggregationService aggregators.AggregationService
}

func NewDashboardHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &dashboardHandler{
		aggregationService: aggregationService,
	}
}

// Handle processes GET /dashboard requests.
func (h *dashboardHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseLogFilter(r)
	if err != nil {
		return err
	}

	result, err := h.aggregationService.Aggregate(r.Context(), clientKeyFromContext(r.Context()), filter)
	if err != nil {
		return err
	}

	return writeJSONResponse(w, http.StatusOK, result)
}
