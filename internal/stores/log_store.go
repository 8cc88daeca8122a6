package stores

import (
	"context"

	"github.com/vmi98/api-analytics/internal/models"
)

// LogStore is the durable append-only collection of request log records.
// A single Append is atomic: List never observes a partial record. List
// returns records in insertion order, which downstream aggregation relies on
// for the top-IP first-seen tie-break. No snapshot isolation is promised
// between Append and List; a concurrently in-flight append may or may not be
// included.
//
//go:generate mockgen -source=log_store.go -destination=./mocks/log_store_mock.go -package=mocks
type LogStore interface {
	Append(ctx context.Context, record *models.RequestLog) error
	List(ctx context.Context, clientKey string, filter models.LogFilter) ([]*models.RequestLog, error)
}
