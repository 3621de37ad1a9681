package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

func testStorage(t *testing.T) *SearchStorage {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	storage, err := NewSearchStorage(db, logger.Nop())
	require.NoError(t, err)
	return storage
}

func searchAt(from, to string, createdAt time.Time) *SearchRecord {
	return &SearchRecord{
		FromCity:    from,
		ToCity:      to,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-08",
		RouteType:   "short_haul",
		FlightCount: 21,
		CreatedAt:   createdAt,
	}
}

func TestStoreAndGetRecentSearches(t *testing.T) {
	storage := testStorage(t)

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	id1, err := storage.StoreSearch(searchAt("Boston", "Denver", base))
	require.NoError(t, err)
	id2, err := storage.StoreSearch(searchAt("New York", "London", base.Add(time.Hour)))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	records, err := storage.GetRecentSearches(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.Equal(t, "New York", records[0].FromCity)
	assert.Equal(t, "Boston", records[1].FromCity)
	assert.Equal(t, "2026-03-02", records[1].StartDate)
	assert.Equal(t, 21, records[1].FlightCount)
	assert.True(t, records[1].CreatedAt.Equal(base))
}

func TestGetRecentSearchesLimit(t *testing.T) {
	storage := testStorage(t)

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := storage.StoreSearch(searchAt("Boston", "Denver", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	records, err := storage.GetRecentSearches(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestGetSearchesByRoute(t *testing.T) {
	storage := testStorage(t)

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	_, err := storage.StoreSearch(searchAt("Boston", "Denver", base))
	require.NoError(t, err)
	_, err = storage.StoreSearch(searchAt("New York", "London", base))
	require.NoError(t, err)

	records, err := storage.GetSearchesByRoute("Boston", "Denver", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Denver", records[0].ToCity)
}

func TestGetRecentSearchesEmpty(t *testing.T) {
	storage := testStorage(t)

	records, err := storage.GetRecentSearches(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
