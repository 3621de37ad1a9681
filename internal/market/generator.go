package market

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

// Generator drives the synthesizer across a date range to produce the full
// flight list for a route.
type Generator struct {
	catalog    *Catalog
	classifier *Classifier
	synth      *Synthesizer
	logger     *logger.Logger

	// rand.Rand is not safe for concurrent use; requests share one stream
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. The rng is the single entropy source for
// all records; production callers pass a time-seeded source, tests pass a
// fixed seed.
func NewGenerator(catalog *Catalog, rng *rand.Rand, log *logger.Logger) *Generator {
	return &Generator{
		catalog:    catalog,
		classifier: NewClassifier(catalog),
		synth:      NewSynthesizer(catalog),
		rng:        rng,
		logger:     log.Named("market-generator"),
	}
}

// Classify exposes the route classifier for callers that only need the haul
// class (e.g. search history records).
func (g *Generator) Classify(fromCity, toCity string) HaulClass {
	return g.classifier.Classify(fromCity, toCity)
}

// Generate produces flight records for each calendar day from startDate to
// endDate inclusive, 3-8 per day. Day order is preserved; ordering within a
// day is not guaranteed. Callers are expected to pass startDate <= endDate;
// an inverted range yields an empty slice. Any unexpected internal failure
// degrades to an empty result instead of propagating.
func (g *Generator) Generate(fromCity, toCity string, startDate, endDate time.Time) (records []FlightRecord) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("flight generation failed",
				logger.String("from", fromCity),
				logger.String("to", toCity),
				logger.Any("panic", r))
			records = nil
		}
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	haul := g.classifier.Classify(fromCity, toCity)

	startDay := midnight(startDate)
	endDay := midnight(endDate)

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		dailyFlights := randBetween(g.rng, g.catalog.FlightsPerDay.Min, g.catalog.FlightsPerDay.Max)
		for i := 0; i < dailyFlights; i++ {
			records = append(records, g.synth.Synthesize(fromCity, toCity, day, haul, g.rng))
		}
	}

	g.logger.Info("generated flight data",
		logger.String("from", fromCity),
		logger.String("to", toCity),
		logger.String("route_type", string(haul)),
		logger.Int("flights", len(records)))

	return records
}

// midnight strips the time-of-day component; generation iterates whole
// calendar days.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
