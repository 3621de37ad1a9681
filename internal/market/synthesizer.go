package market

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// departure minutes are drawn on the quarter hour
var quarterHours = []int{0, 15, 30, 45}

// Synthesizer produces individual flight records from the catalog tables
type Synthesizer struct {
	catalog *Catalog
}

// NewSynthesizer creates a synthesizer backed by the given catalog
func NewSynthesizer(catalog *Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Synthesize produces one flight record for the given date, route and haul
// class. The rng parameter is the only source of randomness, so callers can
// inject a seeded source for reproducible output. Malformed city names are
// tolerated; validation belongs to the calling layer.
func (s *Synthesizer) Synthesize(fromCity, toCity string, date time.Time, haul HaulClass, rng *rand.Rand) FlightRecord {
	airline := s.catalog.Airlines[rng.Intn(len(s.catalog.Airlines))]
	aircraft := s.catalog.AircraftTypes[rng.Intn(len(s.catalog.AircraftTypes))]
	flightNumber := fmt.Sprintf("%s%d", airlinePrefix(airline), randBetween(rng, 100, 9999))

	departureHour := randBetween(rng, 5, 22)
	departureMinute := quarterHours[rng.Intn(len(quarterHours))]

	durRange := s.catalog.Durations[haul]
	durationHours := randBetween(rng, durRange.Min, durRange.Max)
	durationMinutes := rng.Intn(60)

	// Arrival is represented as a same-day time of day. Overnight flights
	// wrap past midnight, so the arrival clock can read earlier than the
	// departure clock; no next-day flag is carried.
	departure := departureHour*60 + departureMinute
	arrival := (departure + durationHours*60 + durationMinutes) % minutesPerDay

	priceRange := s.catalog.BasePrices[haul]
	basePrice := randBetween(rng, priceRange.Min, priceRange.Max)

	multiplier := 1.0
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		multiplier *= s.catalog.Multipliers.Weekend
	}
	if s.catalog.HolidayMonths[int(date.Month())] {
		multiplier *= s.catalog.Multipliers.Holiday
	}
	if departureHour < 6 {
		multiplier *= s.catalog.Multipliers.RedEye
	} else if departureHour < 9 {
		multiplier *= s.catalog.Multipliers.EarlyMorning
	}
	multiplier *= 0.8 + rng.Float64()*0.4

	finalPrice := int(float64(basePrice) * multiplier)

	return FlightRecord{
		Date:            date.Format(DateLayout),
		Airline:         airline,
		FlightNumber:    flightNumber,
		Aircraft:        aircraft,
		DepartureTime:   formatClock(departure),
		ArrivalTime:     formatClock(arrival),
		Duration:        fmt.Sprintf("%dh %dm", durationHours, durationMinutes),
		DurationHours:   durationHours,
		DurationMinutes: durationMinutes,
		Price:           finalPrice,
		Route:           fmt.Sprintf("%s → %s", fromCity, toCity),
		FromCity:        fromCity,
		ToCity:          toCity,
		DayOfWeek:       date.Weekday().String(),
		RouteType:       haul,
	}
}

// airlinePrefix derives the flight-number prefix from the carrier name
func airlinePrefix(airline string) string {
	if len(airline) < 2 {
		return strings.ToUpper(airline)
	}
	return strings.ToUpper(airline[:2])
}

// formatClock renders minutes-since-midnight as HH:MM
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// randBetween draws uniformly from the closed interval [min, max]
func randBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}
