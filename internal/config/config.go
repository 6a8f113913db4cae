package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the aurora forecast service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Space weather data source URLs
	KpIndexURL  string `env:"KP_INDEX_URL,default=https://services.swpc.noaa.gov/json/planetary_k_index_1m.json"`
	BulletinURL string `env:"GEOMAG_BULLETIN_URL,default=https://services.swpc.noaa.gov/text/3-day-geomag-forecast.txt"`
	AlertsURL   string `env:"ALERTS_FEED_URL,default=https://www.sidc.be/products/meu"`

	// Geocoding configuration
	GeocodeURL       string `env:"GEOCODE_URL,default=https://nominatim.openstreetmap.org/search"`
	GeocodeUserAgent string `env:"GEOCODE_USER_AGENT,default=AuroraForecastService/1.0"`

	// HTTP client configuration
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=30s"`

	// The city loaded at startup before any user search
	DefaultCity string `env:"DEFAULT_CITY,default=Uppsala"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
