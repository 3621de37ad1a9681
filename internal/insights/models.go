package insights

import "context"

// KeyStatistics is the numeric block of an insights object
type KeyStatistics struct {
	AvgPrice         float64 `json:"avg_price"`
	CheapestDay      string  `json:"cheapest_day"`
	MostExpensiveDay string  `json:"most_expensive_day"`
	TotalFlights     int     `json:"total_flights"`
}

// Insights is the structured analysis of a flight list. Both the external
// and the local rule-based strategies emit this same schema.
type Insights struct {
	PopularRoutes   []string      `json:"popular_routes"`
	PriceInsights   string        `json:"price_insights"`
	DemandPatterns  string        `json:"demand_patterns"`
	Recommendations []string      `json:"recommendations"`
	KeyStatistics   KeyStatistics `json:"key_statistics"`
}

// TextGenerator is the capability interface for the external text-generation
// service. Implementations receive a system instruction and a JSON data
// summary and must return a parsed Insights object. Any error makes the
// composer fall back to the local strategy.
type TextGenerator interface {
	GenerateInsights(ctx context.Context, systemPrompt, userPrompt string) (*Insights, error)
}
