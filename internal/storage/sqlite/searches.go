package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

// SearchStorage handles storage of search history records
type SearchStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSearchStorage creates a new SQLite search storage
func NewSearchStorage(db *sql.DB, log *logger.Logger) (*SearchStorage, error) {
	storage := &SearchStorage{
		db:     db,
		logger: log.Named("sqlite-searches"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize search storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *SearchStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			from_city TEXT NOT NULL,
			to_city TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			route_type TEXT NOT NULL,
			flight_count INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create searches table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_route ON searches(from_city, to_city)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create search index: %w", err)
		}
	}

	return nil
}

// StoreSearch stores a search record and returns its ID
func (s *SearchStorage) StoreSearch(record *SearchRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO searches
		(from_city, to_city, start_date, end_date, route_type, flight_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.FromCity,
		record.ToCity,
		record.StartDate,
		record.EndDate,
		record.RouteType,
		record.FlightCount,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetRecentSearches returns the most recent searches, newest first
func (s *SearchStorage) GetRecentSearches(limit int) ([]*SearchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, from_city, to_city, start_date, end_date, route_type, flight_count, created_at
		FROM searches
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent searches: %w", err)
	}
	defer rows.Close()

	return s.scanSearchRows(rows)
}

// GetSearchesByRoute returns searches for a specific city pair
func (s *SearchStorage) GetSearchesByRoute(fromCity, toCity string, limit int) ([]*SearchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, from_city, to_city, start_date, end_date, route_type, flight_count, created_at
		FROM searches
		WHERE from_city = ? AND to_city = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		fromCity, toCity, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches by route: %w", err)
	}
	defer rows.Close()

	return s.scanSearchRows(rows)
}

// scanSearchRows scans database rows into SearchRecord structs
func (s *SearchStorage) scanSearchRows(rows *sql.Rows) ([]*SearchRecord, error) {
	var records []*SearchRecord
	for rows.Next() {
		var record SearchRecord
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.FromCity,
			&record.ToCity,
			&record.StartDate,
			&record.EndDate,
			&record.RouteType,
			&record.FlightCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}

		parsed, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		record.CreatedAt = parsed

		records = append(records, &record)
	}

	return records, rows.Err()
}
