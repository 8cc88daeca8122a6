package stores

import (
	"context"
	"errors"
)

var ErrAPIKeyAlreadyExists = errors.New("api key already exists")

// APIKeyStore holds the issued client keys. Every log record and every
// aggregation is scoped to one of these keys.
//
//go:generate mockgen -source=api_key_store.go -destination=./mocks/api_key_store_mock.go -package=mocks
type APIKeyStore interface {
	Create(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
