package models

import (
	"fmt"
	"time"
)

// AuroraForecast is the aggregate forecast for one location, built fresh
// on every search and never cached across searches.
type AuroraForecast struct {
	ForecastTime  time.Time `json:"forecast_time"`
	KpIndex       float64   `json:"kp_index"`
	Location      string    `json:"location"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Probability   int       `json:"probability"` // 0-100%
	ActivityLevel string    `json:"activity_level"`
}

// ForecastDay is a single entry of the 3-day outlook. Entries are
// immutable once built; the displayed list is repopulated wholesale.
type ForecastDay struct {
	Date          string  `json:"date"`
	KpIndex       float64 `json:"kp_index"`
	Probability   int     `json:"probability"`
	ActivityLevel string  `json:"activity_level"`
	Icon          string  `json:"icon"`
}

// DisplayText renders the one-line list representation of a forecast day.
func (d ForecastDay) DisplayText() string {
	return fmt.Sprintf("%s: Kp %.1f (%s)", d.Date, d.KpIndex, d.ActivityLevel)
}

// SelectedLocation is a resolved place: either one of the built-in
// Nordic cities or a geocoding API result.
type SelectedLocation struct {
	CityName  string  `json:"city_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SpaceWeatherAlert is a notable advisory pulled from a space-weather
// news feed, shown alongside the forecast.
type SpaceWeatherAlert struct {
	Source      string    `json:"source"`
	Severity    string    `json:"severity"` // Low/Moderate/High/Extreme
	Description string    `json:"description"`
	IssuedAt    time.Time `json:"issued_at"`
}
