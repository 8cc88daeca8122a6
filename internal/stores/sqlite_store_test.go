package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmi98/api-analytics/internal/models"
)

// Tests run against an in-memory sqlite database; OpenSQLite caps the pool at
// one connection so ":memory:" stays a single database.
func newTestDB(t *testing.T) *SQLiteLogStore {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteLogStore(db)
}

func seedRecords(t *testing.T, store LogStore, records []*models.RequestLog) {
	t.Helper()

	ctx := context.Background()
	for _, r := range records {
		require.NoError(t, store.Append(ctx, r))
	}
}

func testRecords() []*models.RequestLog {
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	return []*models.RequestLog{
		{ClientKey: "key-1", CreatedAt: base, Method: "GET", Endpoint: "/users", IP: "10.0.0.1", ProcessTime: 0.10, StatusCode: 200},
		{ClientKey: "key-1", CreatedAt: base.Add(time.Hour), Method: "POST", Endpoint: "/items", IP: "10.0.0.2", ProcessTime: 0.50, StatusCode: 201},
		{ClientKey: "key-1", CreatedAt: base.Add(48 * time.Hour), Method: "GET", Endpoint: "/users", IP: "10.0.0.1", ProcessTime: 1.25, StatusCode: 500},
		{ClientKey: "key-2", CreatedAt: base, Method: "DELETE", Endpoint: "/admin", IP: "10.0.0.9", ProcessTime: 0.05, StatusCode: 204},
	}
}

func TestSQLiteLogStore_AppendAndList(t *testing.T) {
	t.Parallel()

	store := newTestDB(t)
	seedRecords(t, store, testRecords())

	records, err := store.List(context.Background(), "key-1", models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Insertion order, IDs assigned, timestamps round-trip exactly
	assert.True(t, records[0].ID < records[1].ID && records[1].ID < records[2].ID)
	assert.Equal(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), records[0].CreatedAt)
	assert.Equal(t, "GET", records[0].Method)
	assert.Equal(t, "/users", records[0].Endpoint)
	assert.Equal(t, 0.10, records[0].ProcessTime)
	assert.Equal(t, 200, records[0].StatusCode)
}

func TestSQLiteLogStore_ClientKeyScoping(t *testing.T) {
	t.Parallel()

	store := newTestDB(t)
	seedRecords(t, store, testRecords())
	ctx := context.Background()

	records, err := store.List(ctx, "key-2", models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/admin", records[0].Endpoint)

	records, err = store.List(ctx, "key-unknown", models.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteLogStore_Filters(t *testing.T) {
	t.Parallel()

	store := newTestDB(t)
	seedRecords(t, store, testRecords())
	ctx := context.Background()

	from := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	minTime := 0.4
	maxTime := 1.0

	tests := []struct {
		name      string
		filter    models.LogFilter
		wantCount int
	}{
		{name: "by method", filter: models.LogFilter{Method: "GET"}, wantCount: 2},
		{name: "by status", filter: models.LogFilter{StatusCode: 500}, wantCount: 1},
		{name: "by endpoint", filter: models.LogFilter{Endpoint: "/users"}, wantCount: 2},
		{name: "by ip", filter: models.LogFilter{IP: "10.0.0.2"}, wantCount: 1},
		{name: "by date from", filter: models.LogFilter{DateFrom: &from}, wantCount: 1},
		{name: "by process time range", filter: models.LogFilter{ProcessTimeMin: &minTime, ProcessTimeMax: &maxTime}, wantCount: 1},
		{name: "conjunction", filter: models.LogFilter{Method: "GET", StatusCode: 200}, wantCount: 1},
		{name: "no match", filter: models.LogFilter{Method: "PATCH"}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records, err := store.List(ctx, "key-1", tt.filter)
			require.NoError(t, err)
			assert.Len(t, records, tt.wantCount)
		})
	}
}

func TestSQLiteLogStore_SubsecondTimestampOrdering(t *testing.T) {
	t.Parallel()

	store := newTestDB(t)
	ctx := context.Background()

	// A plain second and a fractional second in the same second must both be
	// caught by a range starting at that second.
	base := time.Date(2025, 3, 1, 9, 30, 15, 0, time.UTC)
	seedRecords(t, store, []*models.RequestLog{
		{ClientKey: "k", CreatedAt: base, Method: "GET", Endpoint: "/", ProcessTime: 0.1, StatusCode: 200},
		{ClientKey: "k", CreatedAt: base.Add(500 * time.Millisecond), Method: "GET", Endpoint: "/", ProcessTime: 0.1, StatusCode: 200},
	})

	records, err := store.List(ctx, "k", models.LogFilter{DateFrom: &base})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSQLiteAPIKeyStore(t *testing.T) {
	t.Parallel()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteAPIKeyStore(db)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Create(ctx, "key-1"))

	ok, err = store.Exists(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	err = store.Create(ctx, "key-1")
	assert.ErrorIs(t, err, ErrAPIKeyAlreadyExists)
}
