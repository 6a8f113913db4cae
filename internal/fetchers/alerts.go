package fetchers

import (
	"context"
	"strings"
	"time"

	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// alertWindow bounds how old an advisory may be to still be shown.
const alertWindow = 24 * time.Hour

// RecentAlerts fetches the space-weather advisory RSS feed and returns
// the items published within the last 24 hours, newest classification
// first. Failures yield an empty list.
func (c *SpaceWeatherClient) RecentAlerts(ctx context.Context) []models.SpaceWeatherAlert {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.alertsURL)

	if err != nil {
		c.log.Error("alerts feed fetch failed", err)
		return nil
	}
	if resp.StatusCode() != 200 {
		c.log.Warnf("alerts feed returned status %d", resp.StatusCode())
		return nil
	}

	feed, err := c.feed.ParseString(string(resp.Body()))
	if err != nil {
		c.log.Error("failed to parse alerts feed", err)
		return nil
	}

	source := feed.Title
	if source == "" {
		source = "SWPC"
	}

	now := time.Now()
	var alerts []models.SpaceWeatherAlert
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || !item.PublishedParsed.After(now.Add(-alertWindow)) {
			continue
		}
		alerts = append(alerts, models.SpaceWeatherAlert{
			Source:      source,
			Severity:    classifySeverity(item.Title),
			Description: item.Title,
			IssuedAt:    *item.PublishedParsed,
		})
	}
	return alerts
}

// classifySeverity buckets an advisory title by its flare/storm keywords.
func classifySeverity(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "x-class") || strings.Contains(t, "extreme"):
		return "Extreme"
	case strings.Contains(t, "m-class") || strings.Contains(t, "major"):
		return "High"
	case strings.Contains(t, "c-class") || strings.Contains(t, "moderate"):
		return "Moderate"
	default:
		return "Low"
	}
}
