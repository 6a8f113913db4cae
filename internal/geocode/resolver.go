// Package geocode resolves free-text city names to coordinates,
// preferring a built-in table of Nordic locations before asking the
// OpenStreetMap Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// fallbackLocation is returned when the geocoding API is unreachable.
// A miss (the API answered but found nothing) returns nil instead; the
// two failure paths are deliberately distinct.
var fallbackLocation = models.SelectedLocation{
	CityName:  "Östersund",
	Latitude:  63.8267,
	Longitude: 16.0534,
}

// Resolver resolves city names to locations.
type Resolver struct {
	client    *resty.Client
	log       *logger.Logger
	searchURL string
	userAgent string
}

// NewResolver creates a resolver configured from cfg.
func NewResolver(cfg *config.Config) *Resolver {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout)

	return &Resolver{
		client:    client,
		log:       logger.GetGlobalLogger().WithComponent("geocode"),
		searchURL: cfg.GeocodeURL,
		userAgent: cfg.GeocodeUserAgent,
	}
}

// nominatimResult is the subset of a Nominatim search hit we read.
// Coordinates arrive as JSON strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve maps a city name to a location. The built-in table is checked
// first without any network call; unknown names go to the geocoding
// API. A nil result means the city could not be found. Transport errors
// degrade to the fixed fallback location rather than nil.
func (r *Resolver) Resolve(ctx context.Context, cityName string) *models.SelectedLocation {
	if strings.TrimSpace(cityName) == "" {
		return nil
	}

	for _, loc := range PopularNordicLocations() {
		if strings.EqualFold(loc.CityName, cityName) {
			found := loc
			return &found
		}
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		SetQueryParams(map[string]string{
			"q":      cityName,
			"format": "json",
			"limit":  "1",
		}).
		Get(r.searchURL)

	if err != nil {
		r.log.Error("geocoding request failed, using fallback location", err, logger.Fields{"city": cityName})
		loc := fallbackLocation
		loc.CityName = cityName
		return &loc
	}
	if resp.StatusCode() != 200 {
		r.log.Warnf("geocoding API returned status %d", resp.StatusCode())
		loc := fallbackLocation
		loc.CityName = cityName
		return &loc
	}

	var results []nominatimResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		r.log.Error("failed to parse geocoding response, using fallback location", err)
		loc := fallbackLocation
		loc.CityName = cityName
		return &loc
	}

	if len(results) == 0 {
		r.log.Infof("no geocoding result for %q", cityName)
		return nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		r.log.Warnf("geocoding result for %q has unreadable coordinates", cityName)
		return nil
	}

	return &models.SelectedLocation{
		CityName:  cityName,
		Latitude:  lat,
		Longitude: lon,
	}
}

// PopularNordicLocations returns the built-in table of well-known
// aurora-watching cities.
func PopularNordicLocations() []models.SelectedLocation {
	return []models.SelectedLocation{
		{CityName: "Östersund", Latitude: 63.8267, Longitude: 16.0534},
		{CityName: "Kiruna", Latitude: 67.8558, Longitude: 20.2253},
		{CityName: "Tromsø", Latitude: 69.6492, Longitude: 18.9553},
		{CityName: "Reykjavik", Latitude: 64.1466, Longitude: -21.9426},
		{CityName: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
		{CityName: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
		{CityName: "Göteborg", Latitude: 57.7089, Longitude: 11.9746},
		{CityName: "Malmö", Latitude: 55.6050, Longitude: 13.0038},
	}
}
