package tracking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedTrack struct {
	apiKey string
	body   observation
}

func newCollector(t *testing.T) (*httptest.Server, func() []capturedTrack) {
	var mu sync.Mutex
	var tracks []capturedTrack

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, trackPath, r.URL.Path)

		var obs observation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&obs))

		mu.Lock()
		tracks = append(tracks, capturedTrack{
			apiKey: r.Header.Get(headerAPIKey),
			body:   obs,
		})
		mu.Unlock()

		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	return server, func() []capturedTrack {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedTrack(nil), tracks...)
	}
}

func TestMiddleware_ReportsObservation(t *testing.T) {
	collector, captured := newCollector(t)
	tracker := NewTracker(collector.URL, "client-key-1")

	handler := tracker.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2", nil)
	req.RemoteAddr = "192.168.1.10:54321"
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	// Reporting happens off the request goroutine.
	require.Eventually(t, func() bool {
		return len(captured()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	track := captured()[0]
	assert.Equal(t, "client-key-1", track.apiKey)
	assert.Equal(t, "GET", track.body.Method)
	assert.Equal(t, "/api/users", track.body.Endpoint)
	assert.Equal(t, "192.168.1.10", track.body.IP)
	assert.Equal(t, http.StatusTeapot, track.body.StatusCode)
	assert.GreaterOrEqual(t, track.body.ProcessTime, 0.0)
	assert.NotEmpty(t, track.body.CreatedAt)
}

func TestMiddleware_DefaultsStatusTo200(t *testing.T) {
	collector, captured := newCollector(t)
	tracker := NewTracker(collector.URL, "client-key-1")

	handler := tracker.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Eventually(t, func() bool {
		return len(captured()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, http.StatusOK, captured()[0].body.StatusCode)
}

func TestMiddleware_DoesNotBlockOnDeadCollector(t *testing.T) {
	tracker := NewTracker("http://127.0.0.1:1", "client-key-1")

	handler := tracker.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/fast", nil)
	rr := httptest.NewRecorder()

	start := time.Now()
	handler.ServeHTTP(rr, req)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, http.StatusOK, rr.Code)
}
