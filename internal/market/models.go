package market

import (
	"github.com/sahil1290-cm/flightinsightdashboard/internal/config"
)

// HaulClass buckets a route into the category that determines its duration
// and price ranges.
type HaulClass string

const (
	HaulShort  HaulClass = "short_haul"
	HaulMedium HaulClass = "medium_haul"
	HaulLong   HaulClass = "long_haul"
)

// DateLayout is the wire format for flight dates. Zero-padded ISO dates keep
// lexicographic and chronological order identical, which the summarizer's
// date-range reduction relies on.
const DateLayout = "2006-01-02"

// FlightRecord is one synthesized flight offering. Records are immutable
// once created and live only for the duration of a request.
type FlightRecord struct {
	Date            string    `json:"date"`
	Airline         string    `json:"airline"`
	FlightNumber    string    `json:"flight_number"`
	Aircraft        string    `json:"aircraft"`
	DepartureTime   string    `json:"departure_time"`
	ArrivalTime     string    `json:"arrival_time"`
	Duration        string    `json:"duration"`
	DurationHours   int       `json:"duration_hours"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int       `json:"price"`
	Route           string    `json:"route"`
	FromCity        string    `json:"from_city"`
	ToCity          string    `json:"to_city"`
	DayOfWeek       string    `json:"day_of_week"`
	RouteType       HaulClass `json:"route_type"`
}

// IntRange is a closed interval of integers
type IntRange struct {
	Min int
	Max int
}

// Multipliers are the fixed price adjustment factors
type Multipliers struct {
	Weekend      float64
	Holiday      float64
	PeakSeason   float64
	RedEye       float64
	EarlyMorning float64
}

// Catalog holds the fixed tables that drive generation. It is built once at
// startup and passed by reference; nothing mutates it afterwards.
type Catalog struct {
	Airlines            []string
	AircraftTypes       []string
	InternationalCities []string
	MajorHubs           []string

	FlightsPerDay IntRange
	BasePrices    map[HaulClass]IntRange
	Durations     map[HaulClass]IntRange // hours
	Multipliers   Multipliers
	HolidayMonths map[int]bool
}

// NewCatalog materializes a Catalog from the market configuration tables
func NewCatalog(cfg config.MarketConfig) *Catalog {
	holidayMonths := make(map[int]bool, len(cfg.HolidayMonths))
	for _, m := range cfg.HolidayMonths {
		holidayMonths[m] = true
	}

	return &Catalog{
		Airlines:            cfg.Airlines,
		AircraftTypes:       cfg.AircraftTypes,
		InternationalCities: cfg.InternationalCities,
		MajorHubs:           cfg.MajorHubs,
		FlightsPerDay:       IntRange{Min: cfg.MinFlightsPerDay, Max: cfg.MaxFlightsPerDay},
		BasePrices: map[HaulClass]IntRange{
			HaulShort:  {Min: cfg.ShortHaul.MinPrice, Max: cfg.ShortHaul.MaxPrice},
			HaulMedium: {Min: cfg.MediumHaul.MinPrice, Max: cfg.MediumHaul.MaxPrice},
			HaulLong:   {Min: cfg.LongHaul.MinPrice, Max: cfg.LongHaul.MaxPrice},
		},
		Durations: map[HaulClass]IntRange{
			HaulShort:  {Min: cfg.ShortHaul.MinDurationHours, Max: cfg.ShortHaul.MaxDurationHours},
			HaulMedium: {Min: cfg.MediumHaul.MinDurationHours, Max: cfg.MediumHaul.MaxDurationHours},
			HaulLong:   {Min: cfg.LongHaul.MinDurationHours, Max: cfg.LongHaul.MaxDurationHours},
		},
		Multipliers: Multipliers{
			Weekend:      cfg.WeekendMultiplier,
			Holiday:      cfg.HolidayMultiplier,
			PeakSeason:   cfg.PeakSeasonMultiplier,
			RedEye:       cfg.RedEyeMultiplier,
			EarlyMorning: cfg.EarlyMorningMultiplier,
		},
		HolidayMonths: holidayMonths,
	}
}
