package http

import (
	"net/http"
)

type rootHandler struct{}

func NewRootHandler() AppHttpHandler {
	return &rootHandler{}
}

// Handle processes GET / requests.
func (h *rootHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSONResponse(w, http.StatusOK, map[string]string{
		"service": "api-analytics",
		"status":  "ok",
	})
}
