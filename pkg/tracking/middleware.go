// Package tracking provides a client-side net/http middleware that reports
// completed requests to an api-analytics collector.
package tracking

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"time"
)

const (
	headerAPIKey = "x-api-key"

	trackPath      = "/track"
	defaultTimeout = 5 * time.Second
)

type observation struct {
	CreatedAt   string  `json:"created_at"`
	Method      string  `json:"method"`
	Endpoint    string  `json:"endpoint"`
	IP          string  `json:"ip,omitempty"`
	ProcessTime float64 `json:"process_time"`
	StatusCode  int     `json:"status_code"`
}

// Tracker reports one observation per completed request. Reporting is
// fire-and-forget: a slow or unreachable collector never delays or fails the
// instrumented handler.
type Tracker struct {
	collectorURL string
	apiKey       string
	httpClient   *http.Client
}

func NewTracker(collectorURL, apiKey string) *Tracker {
	return &Tracker{
		collectorURL: collectorURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
}

// Middleware wraps next, measuring wall-clock handling time in seconds and
// posting the observation to the collector after the response is written.
func (t *Tracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(writer, r)

		status := writer.status
		if status == 0 {
			status = http.StatusOK
		}

		obs := observation{
			CreatedAt:   start.UTC().Format(time.RFC3339Nano),
			Method:      r.Method,
			Endpoint:    r.URL.Path,
			IP:          clientIP(r),
			ProcessTime: time.Since(start).Seconds(),
			StatusCode:  status,
		}

		go t.report(obs)
	})
}

func (t *Tracker) report(obs observation) {
	payload, err := json.Marshal(obs)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, t.collectorURL+trackPath, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
