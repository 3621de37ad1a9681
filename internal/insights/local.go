package insights

import (
	"fmt"
	"math"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/stats"
)

const popularRoutesLimit = 3

// composeLocal is the deterministic rule-based strategy. It is a pure
// function of the input records.
func (c *Composer) composeLocal(records []market.FlightRecord) Insights {
	if len(records) == 0 {
		return Insights{
			PopularRoutes:   []string{},
			PriceInsights:   "No flight data available for analysis.",
			DemandPatterns:  "Unable to analyze demand patterns without data.",
			Recommendations: []string{"Please try a different search criteria."},
			KeyStatistics: KeyStatistics{
				AvgPrice:         0,
				CheapestDay:      "Unknown",
				MostExpensiveDay: "Unknown",
				TotalFlights:     0,
			},
		}
	}

	summary := stats.Summarize(records)

	routes := make([]string, 0, popularRoutesLimit)
	for i, rc := range summary.PopularRoutes {
		if i == popularRoutesLimit {
			break
		}
		routes = append(routes, rc.Route)
	}

	// strict comparisons keep the first-encountered day on ties
	cheapest := summary.ByDayOfWeek[0]
	mostExpensive := summary.ByDayOfWeek[0]
	for _, day := range summary.ByDayOfWeek[1:] {
		if day.AvgPrice < cheapest.AvgPrice {
			cheapest = day
		}
		if day.AvgPrice > mostExpensive.AvgPrice {
			mostExpensive = day
		}
	}

	avgPrice := summary.PriceRange.Avg

	priceInsights := fmt.Sprintf(
		"Average flight price is $%.2f. Prices range from $%d to $%d. "+
			"The cheapest flights are typically found on %ss ($%.2f avg), "+
			"while %ss tend to be most expensive ($%.2f avg).",
		avgPrice, summary.PriceRange.Min, summary.PriceRange.Max,
		cheapest.Day, cheapest.AvgPrice,
		mostExpensive.Day, mostExpensive.AvgPrice)

	segment := "weekends"
	if cheapest.Day == "Saturday" || cheapest.Day == "Sunday" {
		segment = "weekdays"
	}
	demandPatterns := fmt.Sprintf(
		"Analysis of %d flights shows varying demand patterns throughout the week. "+
			"Weekend flights (%s) generally show different pricing patterns compared to weekdays.",
		len(records), segment)

	recommendations := []string{
		fmt.Sprintf("Consider flying on %ss for the best prices", cheapest.Day),
		fmt.Sprintf("Avoid %ss if looking for budget options", mostExpensive.Day),
		"Book in advance for better pricing options",
		"Compare different airlines for the same route",
	}

	return Insights{
		PopularRoutes:   routes,
		PriceInsights:   priceInsights,
		DemandPatterns:  demandPatterns,
		Recommendations: recommendations,
		KeyStatistics: KeyStatistics{
			AvgPrice:         math.Round(avgPrice*100) / 100,
			CheapestDay:      cheapest.Day,
			MostExpensiveDay: mostExpensive.Day,
			TotalFlights:     len(records),
		},
	}
}
