package sqlite

import "time"

// SearchRecord captures the metadata of one dashboard search. Generated
// flight records themselves are never persisted; only the query and its
// outcome size are kept for the recent-searches view.
type SearchRecord struct {
	ID          int64     `json:"id"`
	FromCity    string    `json:"from_city"`
	ToCity      string    `json:"to_city"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	RouteType   string    `json:"route_type"`
	FlightCount int       `json:"flight_count"`
	CreatedAt   time.Time `json:"created_at"`
}
