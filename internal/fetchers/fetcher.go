// Package fetchers talks to the remote space-weather endpoints. Every
// fetch degrades to a documented fallback value instead of returning an
// error: a failed feed must never break a search.
package fetchers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/Sigge1511/AuroraForecast-MS/internal/aurora"
	"github.com/Sigge1511/AuroraForecast-MS/internal/bulletin"
	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// fallbackKp is reported when the current Kp index cannot be fetched.
const fallbackKp = 0.0

// SpaceWeatherClient fetches the current Kp index, the 3-day bulletin
// and recent advisories.
type SpaceWeatherClient struct {
	client *resty.Client
	parser *bulletin.Parser
	feed   *gofeed.Parser
	log    *logger.Logger

	kpURL       string
	bulletinURL string
	alertsURL   string
}

// NewSpaceWeatherClient creates a client configured from cfg. Requests
// time out after cfg.RequestTimeout; there are no retries.
func NewSpaceWeatherClient(cfg *config.Config) *SpaceWeatherClient {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout)

	return &SpaceWeatherClient{
		client:      client,
		parser:      bulletin.NewParser(),
		feed:        gofeed.NewParser(),
		log:         logger.GetGlobalLogger().WithComponent("fetchers"),
		kpURL:       cfg.KpIndexURL,
		bulletinURL: cfg.BulletinURL,
		alertsURL:   cfg.AlertsURL,
	}
}

// CurrentKpIndex returns the most recent positive estimated Kp from the
// planetary K-index feed, scanning newest to oldest. Any network or
// parse failure yields the fallback value, never an error.
func (c *SpaceWeatherClient) CurrentKpIndex(ctx context.Context) float64 {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.kpURL)

	if err != nil {
		c.log.Error("Kp index fetch failed", err)
		return fallbackKp
	}
	if resp.StatusCode() != 200 {
		c.log.Warnf("Kp index feed returned status %d", resp.StatusCode())
		return fallbackKp
	}

	var entries []models.KpEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		c.log.Error("failed to parse Kp index feed", err)
		return fallbackKp
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].EstimatedKp > 0 {
			return entries[i].EstimatedKp
		}
	}
	return fallbackKp
}

// ThreeDayForecast fetches the geomagnetic bulletin and parses it into
// the 3-day outlook for the given latitude. Fetch failures yield the
// parser's fallback set, so the result always has 3 entries.
func (c *SpaceWeatherClient) ThreeDayForecast(ctx context.Context, latitude float64) []models.ForecastDay {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.bulletinURL)

	if err != nil {
		c.log.Error("bulletin fetch failed", err)
		return c.parser.Fallback(latitude)
	}
	if resp.StatusCode() != 200 {
		c.log.Warnf("bulletin endpoint returned status %d", resp.StatusCode())
		return c.parser.Fallback(latitude)
	}

	return c.parser.Parse(string(resp.Body()), latitude)
}

// ForecastForLocation composes the current Kp index and the discrete
// probability formula into one aggregate forecast record.
func (c *SpaceWeatherClient) ForecastForLocation(ctx context.Context, city string, lat, lon float64) models.AuroraForecast {
	kp := c.CurrentKpIndex(ctx)

	return models.AuroraForecast{
		ForecastTime:  time.Now().UTC(),
		KpIndex:       kp,
		Location:      city,
		Latitude:      lat,
		Longitude:     lon,
		Probability:   aurora.ForecastProbability(kp, lat),
		ActivityLevel: aurora.ActivityLevel(kp),
	}
}
