package stats

import (
	"sort"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
)

// topN caps the route and airline frequency lists
const topN = 5

// PriceStats describes the price distribution over a flight list
type PriceStats struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

// RouteCount is a route with its flight frequency
type RouteCount struct {
	Route string `json:"route"`
	Count int    `json:"count"`
}

// AirlineCount is a carrier with its flight frequency
type AirlineCount struct {
	Airline string `json:"airline"`
	Count   int    `json:"count"`
}

// DayStats aggregates flights sharing a day of week. Days with no flights in
// the input are absent; callers needing all seven days must reindex.
type DayStats struct {
	Day      string  `json:"day"`
	Flights  int     `json:"flights"`
	AvgPrice float64 `json:"avg_price"`
}

// DateRange is the span of dates observed, as zero-padded ISO date strings
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the aggregate view of a flight list. It is recomputed on every
// call and never persisted.
type Summary struct {
	TotalFlights  int            `json:"total_flights"`
	PriceRange    PriceStats     `json:"price_range"`
	PopularRoutes []RouteCount   `json:"most_popular_routes"`
	ByDayOfWeek   []DayStats     `json:"by_day_of_week"`
	TopAirlines   []AirlineCount `json:"top_airlines"`
	DateRange     DateRange      `json:"date_range"`
}

// Summarize reduces a flight list to aggregate statistics. It is a pure
// function: no randomness, no side effects, and an empty input yields the
// zero-value summary rather than an error.
func Summarize(records []market.FlightRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var summary Summary
	summary.TotalFlights = len(records)

	routes := newCounter()
	airlines := newCounter()
	days := newCounter()
	dayPriceTotals := make(map[string]int)

	priceTotal := 0
	minPrice, maxPrice := records[0].Price, records[0].Price
	minDate, maxDate := records[0].Date, records[0].Date

	for _, rec := range records {
		priceTotal += rec.Price
		if rec.Price < minPrice {
			minPrice = rec.Price
		}
		if rec.Price > maxPrice {
			maxPrice = rec.Price
		}

		// lexicographic comparison; chronological because dates are ISO formatted
		if rec.Date < minDate {
			minDate = rec.Date
		}
		if rec.Date > maxDate {
			maxDate = rec.Date
		}

		routes.add(rec.Route)
		airlines.add(rec.Airline)
		days.add(rec.DayOfWeek)
		dayPriceTotals[rec.DayOfWeek] += rec.Price
	}

	summary.PriceRange = PriceStats{
		Min: minPrice,
		Max: maxPrice,
		Avg: float64(priceTotal) / float64(len(records)),
	}

	for _, kv := range routes.top(topN) {
		summary.PopularRoutes = append(summary.PopularRoutes, RouteCount{Route: kv.key, Count: kv.count})
	}
	for _, kv := range airlines.top(topN) {
		summary.TopAirlines = append(summary.TopAirlines, AirlineCount{Airline: kv.key, Count: kv.count})
	}

	// day order follows first encounter in the input
	for _, day := range days.keys {
		count := days.counts[day]
		summary.ByDayOfWeek = append(summary.ByDayOfWeek, DayStats{
			Day:      day,
			Flights:  count,
			AvgPrice: float64(dayPriceTotals[day]) / float64(count),
		})
	}

	summary.DateRange = DateRange{Start: minDate, End: maxDate}

	return summary
}

// counter tracks string frequencies while remembering insertion order, so
// top-N ties resolve to the first-encountered key.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

type keyCount struct {
	key   string
	count int
}

func (c *counter) top(n int) []keyCount {
	ranked := make([]keyCount, 0, len(c.keys))
	for _, k := range c.keys {
		ranked = append(ranked, keyCount{key: k, count: c.counts[k]})
	}
	// stable keeps insertion order among equal counts
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
