package stores

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmi98/api-analytics/internal/models"
)

func TestMemoryLogStore_AppendAndList(t *testing.T) {
	t.Parallel()

	store := NewMemoryLogStore()
	seedRecords(t, store, testRecords())
	ctx := context.Background()

	records, err := store.List(ctx, "key-1", models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].ID < records[1].ID && records[1].ID < records[2].ID)

	records, err = store.List(ctx, "key-2", models.LogFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = store.List(ctx, "key-unknown", models.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryLogStore_AppendCopiesRecord(t *testing.T) {
	t.Parallel()

	store := NewMemoryLogStore()
	ctx := context.Background()

	record := &models.RequestLog{
		ClientKey:   "k",
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Method:      "GET",
		Endpoint:    "/a",
		ProcessTime: 0.1,
		StatusCode:  200,
	}
	require.NoError(t, store.Append(ctx, record))

	// Mutating the caller's record must not affect the stored copy.
	record.Endpoint = "/mutated"

	records, err := store.List(ctx, "k", models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/a", records[0].Endpoint)
	assert.EqualValues(t, 1, records[0].ID)
}

func TestMemoryLogStore_Filter(t *testing.T) {
	t.Parallel()

	store := NewMemoryLogStore()
	seedRecords(t, store, testRecords())

	records, err := store.List(context.Background(), "key-1", models.LogFilter{Method: "GET", Endpoint: "/users"})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestMemoryLogStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	store := NewMemoryLogStore()
	ctx := context.Background()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.Append(ctx, &models.RequestLog{
					ClientKey:   "k",
					CreatedAt:   time.Now().UTC(),
					Method:      "GET",
					Endpoint:    "/",
					ProcessTime: 0.01,
					StatusCode:  200,
				})
			}
		}()
	}
	wg.Wait()

	records, err := store.List(ctx, "k", models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, writers*perWriter)

	// IDs are unique and strictly increasing in insertion order.
	seen := make(map[int64]struct{}, len(records))
	prev := int64(0)
	for _, r := range records {
		_, dup := seen[r.ID]
		assert.False(t, dup, "duplicate ID %d", r.ID)
		seen[r.ID] = struct{}{}
		assert.Greater(t, r.ID, prev)
		prev = r.ID
	}
}

func TestMemoryAPIKeyStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryAPIKeyStore()
	ctx := context.Background()

	ok, err := store.Exists(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Create(ctx, "key-1"))

	ok, err = store.Exists(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, store.Create(ctx, "key-1"), ErrAPIKeyAlreadyExists)
}
