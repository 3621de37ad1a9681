package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/stats"
	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

const systemPrompt = "You are a flight data analyst expert. Analyze the provided flight data and generate actionable insights about pricing trends, demand patterns, and travel recommendations. Respond with JSON in the following format: {'popular_routes': ['route1', 'route2'], 'price_insights': 'text analysis', 'demand_patterns': 'text analysis', 'recommendations': ['recommendation1', 'recommendation2'], 'key_statistics': {'avg_price': number, 'cheapest_day': 'day', 'most_expensive_day': 'day', 'total_flights': number}}"

// Composer turns a flight list into an Insights object, preferring the
// external text-generation service and degrading to the local rule-based
// strategy on any failure.
type Composer struct {
	generator TextGenerator // nil when no external service is configured
	logger    *logger.Logger
}

// NewComposer creates a composer. Pass a nil generator to run purely on the
// local strategy.
func NewComposer(generator TextGenerator, log *logger.Logger) *Composer {
	return &Composer{
		generator: generator,
		logger:    log.Named("insights-composer"),
	}
}

// Compose produces insights for the given records. It never returns an
// error: external-service failures are logged as warnings and replaced by
// the local strategy, and an empty input yields the canned empty-state
// object.
func (c *Composer) Compose(ctx context.Context, records []market.FlightRecord) Insights {
	if c.generator == nil || len(records) == 0 {
		return c.composeLocal(records)
	}

	result, err := c.composeExternal(ctx, records)
	if err != nil {
		c.logger.Warn("external insights generation failed, using local fallback", logger.Error(err))
		return c.composeLocal(records)
	}

	c.logger.Info("generated insights via external service")
	return *result
}

func (c *Composer) composeExternal(ctx context.Context, records []market.FlightRecord) (*Insights, error) {
	summary := stats.Summarize(records)

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data summary: %w", err)
	}

	userPrompt := fmt.Sprintf("Analyze this flight data and provide insights: %s", payload)

	result, err := c.generator.GenerateInsights(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("text generator returned no insights")
	}

	return result, nil
}
