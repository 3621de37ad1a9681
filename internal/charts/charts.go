// Package charts builds Plotly-shaped figure JSON from a flight list. The
// frontend hands each figure straight to Plotly.newPlot, so the structures
// here mirror the plotly figure schema rather than inventing one.
package charts

import (
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
)

const (
	chartHeight      = 400
	chartTemplate    = "plotly_dark"
	popularRoutesMax = 10

	priceTrendColor   = "#007bff"
	popularRouteColor = "#28a745"
	demandColor       = "#ffc107"
)

// Axis is a plotly axis definition
type Axis struct {
	Title     string `json:"title"`
	TickAngle int    `json:"tickangle,omitempty"`
}

// Layout is a plotly layout definition
type Layout struct {
	Title    string `json:"title"`
	XAxis    Axis   `json:"xaxis"`
	YAxis    Axis   `json:"yaxis"`
	Template string `json:"template"`
	Height   int    `json:"height"`
}

// Line styles a scatter trace
type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

// Marker styles trace markers
type Marker struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Trace is a single plotly data series. Y values are pointers so reindexed
// series can carry nulls for absent days.
type Trace struct {
	Type   string     `json:"type"`
	X      []string   `json:"x"`
	Y      []*float64 `json:"y"`
	Mode   string     `json:"mode,omitempty"`
	Name   string     `json:"name,omitempty"`
	Line   *Line      `json:"line,omitempty"`
	Marker *Marker    `json:"marker,omitempty"`
}

// Figure is a complete plotly figure
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Dashboard holds the serialized figures for the dashboard page, ready to be
// embedded into a script block.
type Dashboard struct {
	PriceTrend    template.JS
	PopularRoutes template.JS
	DemandByDay   template.JS
}

// Build renders the three dashboard figures from the raw flight list
func Build(records []market.FlightRecord) (Dashboard, error) {
	priceTrend, err := encodeFigure(priceTrendFigure(records))
	if err != nil {
		return Dashboard{}, fmt.Errorf("price trend chart: %w", err)
	}

	popularRoutes, err := encodeFigure(popularRoutesFigure(records))
	if err != nil {
		return Dashboard{}, fmt.Errorf("popular routes chart: %w", err)
	}

	demandByDay, err := encodeFigure(demandByDayFigure(records))
	if err != nil {
		return Dashboard{}, fmt.Errorf("demand by day chart: %w", err)
	}

	return Dashboard{
		PriceTrend:    priceTrend,
		PopularRoutes: popularRoutes,
		DemandByDay:   demandByDay,
	}, nil
}

func encodeFigure(fig Figure) (template.JS, error) {
	data, err := json.Marshal(fig)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

func priceTrendFigure(records []market.FlightRecord) Figure {
	x := make([]string, 0, len(records))
	y := make([]*float64, 0, len(records))
	for _, rec := range records {
		price := float64(rec.Price)
		x = append(x, rec.Date)
		y = append(y, &price)
	}

	return Figure{
		Data: []Trace{{
			Type:   "scatter",
			X:      x,
			Y:      y,
			Mode:   "lines+markers",
			Name:   "Price Trend",
			Line:   &Line{Color: priceTrendColor, Width: 3},
			Marker: &Marker{Size: 8},
		}},
		Layout: Layout{
			Title:    "Flight Price Trend Over Time",
			XAxis:    Axis{Title: "Date"},
			YAxis:    Axis{Title: "Price ($)"},
			Template: chartTemplate,
			Height:   chartHeight,
		},
	}
}

func popularRoutesFigure(records []market.FlightRecord) Figure {
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if _, seen := counts[rec.Route]; !seen {
			order = append(order, rec.Route)
		}
		counts[rec.Route]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > popularRoutesMax {
		order = order[:popularRoutesMax]
	}

	y := make([]*float64, 0, len(order))
	for _, route := range order {
		count := float64(counts[route])
		y = append(y, &count)
	}

	return Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      order,
			Y:      y,
			Marker: &Marker{Color: popularRouteColor},
		}},
		Layout: Layout{
			Title:    "Most Popular Routes",
			XAxis:    Axis{Title: "Route", TickAngle: -45},
			YAxis:    Axis{Title: "Number of Flights"},
			Template: chartTemplate,
			Height:   chartHeight,
		},
	}
}

func demandByDayFigure(records []market.FlightRecord) Figure {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, rec := range records {
		totals[rec.DayOfWeek] += rec.Price
		counts[rec.DayOfWeek]++
	}

	// reindex over the full week; days with no flights chart as nulls
	week := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	x := make([]string, 0, len(week))
	y := make([]*float64, 0, len(week))
	for _, day := range week {
		name := day.String()
		x = append(x, name)
		if counts[name] == 0 {
			y = append(y, nil)
			continue
		}
		avg := float64(totals[name]) / float64(counts[name])
		y = append(y, &avg)
	}

	return Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      x,
			Y:      y,
			Marker: &Marker{Color: demandColor},
		}},
		Layout: Layout{
			Title:    "Average Price by Day of Week",
			XAxis:    Axis{Title: "Day of Week"},
			YAxis:    Axis{Title: "Average Price ($)"},
			Template: chartTemplate,
			Height:   chartHeight,
		},
	}
}
