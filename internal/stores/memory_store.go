package stores

import (
	"context"
	"sync"

	"github.com/vmi98/api-analytics/internal/models"
)

// MemoryLogStore is the in-process LogStore. It backs the "memory" storage
// driver and is the injected fake the aggregation and query tests run
// against.
type MemoryLogStore struct {
	mu     sync.RWMutex
	nextID int64
	logs   map[string][]*models.RequestLog
}

func NewMemoryLogStore() *MemoryLogStore {
	return &MemoryLogStore{logs: make(map[string][]*models.RequestLog)}
}

func (s *MemoryLogStore) Append(_ context.Context, record *models.RequestLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *record
	stored.ID = s.nextID
	s.logs[record.ClientKey] = append(s.logs[record.ClientKey], &stored)
	return nil
}

func (s *MemoryLogStore) List(_ context.Context, clientKey string, filter models.LogFilter) ([]*models.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.logs[clientKey]
	matched := make([]*models.RequestLog, 0, len(records))
	for _, r := range records {
		if filter.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// MemoryAPIKeyStore is the in-process APIKeyStore counterpart.
type MemoryAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewMemoryAPIKeyStore() *MemoryAPIKeyStore {
	return &MemoryAPIKeyStore{keys: make(map[string]struct{})}
}

func (s *MemoryAPIKeyStore) Create(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return ErrAPIKeyAlreadyExists
	}
	s.keys[key] = struct{}{}
	return nil
}

func (s *MemoryAPIKeyStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.keys[key]
	return ok, nil
}
