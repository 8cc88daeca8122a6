package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID   = "x-request-id"
	headerAPIKey      = "x-api-key"
	headerContentType = "content-type"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func apiKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerAPIKey))
}
