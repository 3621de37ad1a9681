package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the full application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Market   MarketConfig   `toml:"market"`
	Insights InsightsConfig `toml:"insights"`
	Storage  StorageConfig  `toml:"storage"`
}

// ServerConfig holds HTTP server related options
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	TemplatesDir        string   `toml:"templates_dir"`
	StaticDir           string   `toml:"static_dir"`
	CORSAllowedOrigins  []string `toml:"cors_allowed_origins"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
}

// LoggingConfig holds logger options
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// HaulClassConfig holds the price and duration bounds for one haul class
type HaulClassConfig struct {
	MinPrice         int `toml:"min_price"`
	MaxPrice         int `toml:"max_price"`
	MinDurationHours int `toml:"min_duration_hours"`
	MaxDurationHours int `toml:"max_duration_hours"`
}

// MarketConfig holds the fixed tables driving the synthetic flight market.
// The tables are read once at startup and treated as immutable afterwards.
type MarketConfig struct {
	Airlines            []string `toml:"airlines"`
	AircraftTypes       []string `toml:"aircraft_types"`
	InternationalCities []string `toml:"international_cities"`
	MajorHubs           []string `toml:"major_hubs"`

	MinFlightsPerDay int `toml:"min_flights_per_day"`
	MaxFlightsPerDay int `toml:"max_flights_per_day"`

	ShortHaul  HaulClassConfig `toml:"short_haul"`
	MediumHaul HaulClassConfig `toml:"medium_haul"`
	LongHaul   HaulClassConfig `toml:"long_haul"`

	WeekendMultiplier      float64 `toml:"weekend_multiplier"`
	HolidayMultiplier      float64 `toml:"holiday_multiplier"`
	PeakSeasonMultiplier   float64 `toml:"peak_season_multiplier"`
	RedEyeMultiplier       float64 `toml:"red_eye_multiplier"`
	EarlyMorningMultiplier float64 `toml:"early_morning_multiplier"`

	HolidayMonths []int `toml:"holiday_months"`
}

// InsightsConfig holds settings for the external insights provider
type InsightsConfig struct {
	OpenAIAPIKey   string `toml:"-"` // from OPENAI_API_KEY, never from file
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// StorageConfig holds settings for the search history database
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the built-in configuration. The market tables mirror the
// data set the dashboard has always shipped with.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                5000,
			TemplatesDir:        "web/templates",
			StaticDir:           "web/static",
			CORSAllowedOrigins:  []string{"*"},
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Market: MarketConfig{
			Airlines: []string{
				"American Airlines", "Delta Air Lines", "United Airlines",
				"Southwest Airlines", "JetBlue Airways", "Alaska Airlines",
				"Spirit Airlines", "Frontier Airlines",
			},
			AircraftTypes: []string{
				"Boeing 737", "Airbus A320", "Boeing 757", "Airbus A321",
				"Boeing 777", "Airbus A330", "Boeing 787", "Embraer E175",
			},
			InternationalCities: []string{"London", "Paris", "Tokyo", "Sydney", "Dubai"},
			MajorHubs:           []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"},
			MinFlightsPerDay:    3,
			MaxFlightsPerDay:    8,
			ShortHaul:           HaulClassConfig{MinPrice: 150, MaxPrice: 400, MinDurationHours: 1, MaxDurationHours: 3},
			MediumHaul:          HaulClassConfig{MinPrice: 300, MaxPrice: 700, MinDurationHours: 3, MaxDurationHours: 6},
			LongHaul:            HaulClassConfig{MinPrice: 500, MaxPrice: 1200, MinDurationHours: 6, MaxDurationHours: 15},

			WeekendMultiplier:      1.3,
			HolidayMultiplier:      1.5,
			PeakSeasonMultiplier:   1.4,
			RedEyeMultiplier:       0.8,
			EarlyMorningMultiplier: 0.9,

			HolidayMonths: []int{12, 1, 7},
		},
		Insights: InsightsConfig{
			Model:          "gpt-4o",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "flightinsight.db",
		},
	}
}

// Load reads the configuration, starting from defaults, then layering the
// optional TOML file and finally environment variables for secrets. Missing
// .env and config files are acceptable; configuration can come entirely from
// the environment and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		}
	}

	cfg.Insights.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is internally consistent
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	m := c.Market
	if len(m.Airlines) == 0 {
		return fmt.Errorf("market.airlines must not be empty")
	}
	if len(m.AircraftTypes) == 0 {
		return fmt.Errorf("market.aircraft_types must not be empty")
	}
	if m.MinFlightsPerDay < 1 || m.MaxFlightsPerDay < m.MinFlightsPerDay {
		return fmt.Errorf("invalid flights-per-day bounds: [%d, %d]", m.MinFlightsPerDay, m.MaxFlightsPerDay)
	}
	for name, hc := range map[string]HaulClassConfig{
		"short_haul":  m.ShortHaul,
		"medium_haul": m.MediumHaul,
		"long_haul":   m.LongHaul,
	} {
		if hc.MinPrice <= 0 || hc.MaxPrice < hc.MinPrice {
			return fmt.Errorf("invalid price range for %s: [%d, %d]", name, hc.MinPrice, hc.MaxPrice)
		}
		if hc.MinDurationHours < 1 || hc.MaxDurationHours < hc.MinDurationHours {
			return fmt.Errorf("invalid duration bounds for %s: [%d, %d]", name, hc.MinDurationHours, hc.MaxDurationHours)
		}
	}

	if c.Insights.TimeoutSeconds <= 0 {
		return fmt.Errorf("insights.timeout_seconds must be positive")
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set when storage is enabled")
	}

	return nil
}
