package events

import (
	"github.com/vmi98/api-analytics/internal/models"
)

// RequestObservedEvent carries one validated, normalized request observation
// from the ingestion service to the store writer. Events for the same client
// key are routed to the same queue partition, so a client's records are
// appended in the order they were accepted; the top-IP first-seen tie-break
// depends on that order being stable.
//
// Example JSON:
//
//	{
//	  "clientKey": "2f1c9d1e-6a0f-4b7e-9f30-2f9df0c1a9be",
//	  "record": {
//	    "created_at": "2025-01-15T12:30:00Z",
//	    "method": "GET",
//	    "endpoint": "/users",
//	    "ip": "192.168.0.1",
//	    "process_time": 0.25,
//	    "status_code": 200
//	  }
//	}
type RequestObservedEvent struct {
	ClientKey string             `json:"clientKey"`
	Record    *models.RequestLog `json:"record"`
}
