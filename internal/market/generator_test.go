package market

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

func testGenerator(seed int64) *Generator {
	return NewGenerator(testCatalog(), rand.New(rand.NewSource(seed)), logger.Nop())
}

func TestGenerateDailyCounts(t *testing.T) {
	gen := testGenerator(1)

	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	days := 7

	records := gen.Generate("Boston", "Denver", start, end)

	require.NotEmpty(t, records)
	assert.GreaterOrEqual(t, len(records), 3*days)
	assert.LessOrEqual(t, len(records), 8*days)

	// every calendar day in the range appears, with 3-8 records each
	perDay := make(map[string]int)
	for _, rec := range records {
		perDay[rec.Date]++
	}
	require.Len(t, perDay, days)
	for day, count := range perDay {
		assert.GreaterOrEqual(t, count, 3, day)
		assert.LessOrEqual(t, count, 8, day)
	}
}

func TestGenerateSingleDay(t *testing.T) {
	gen := testGenerator(2)

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	records := gen.Generate("Boston", "Denver", day, day)

	require.NotEmpty(t, records)
	assert.GreaterOrEqual(t, len(records), 3)
	assert.LessOrEqual(t, len(records), 8)
	for _, rec := range records {
		assert.Equal(t, "2026-03-02", rec.Date)
	}
}

func TestGenerateInvertedRange(t *testing.T) {
	gen := testGenerator(3)

	start := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, gen.Generate("Boston", "Denver", start, end))
}

func TestGeneratePreservesDayOrder(t *testing.T) {
	gen := testGenerator(4)

	start := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	records := gen.Generate("Boston", "Denver", start, end)
	require.NotEmpty(t, records)

	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].Date, records[i].Date)
	}
}

func TestGenerateClassifiesOnce(t *testing.T) {
	gen := testGenerator(5)

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)

	records := gen.Generate("New York", "London", start, end)
	require.NotEmpty(t, records)
	for _, rec := range records {
		assert.Equal(t, HaulLong, rec.RouteType)
	}
}

func TestGenerateDayOfWeekMatchesDate(t *testing.T) {
	gen := testGenerator(6)

	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	records := gen.Generate("Boston", "Denver", start, end)
	require.NotEmpty(t, records)

	for _, rec := range records {
		date, err := time.Parse(DateLayout, rec.Date)
		require.NoError(t, err)
		assert.Equal(t, date.Weekday().String(), rec.DayOfWeek)
	}
}
