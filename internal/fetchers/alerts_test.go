package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func alertsFeed(pubDates []time.Time, titles []string) string {
	items := ""
	for i, title := range titles {
		items += fmt.Sprintf(`<item><title>%s</title><pubDate>%s</pubDate></item>`,
			title, pubDates[i].Format(time.RFC1123Z))
	}
	return `<?xml version="1.0"?><rss version="2.0"><channel><title>Space Weather Advisories</title>` + items + `</channel></rss>`
}

func TestRecentAlertsFiltersAndClassifies(t *testing.T) {
	now := time.Now()
	feed := alertsFeed(
		[]time.Time{now.Add(-1 * time.Hour), now.Add(-2 * time.Hour), now.Add(-48 * time.Hour)},
		[]string{"X-class flare in progress", "Moderate geomagnetic storming expected", "Old major event"},
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	client := NewSpaceWeatherClient(testConfig(srv.URL))

	alerts := client.RecentAlerts(context.Background())

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts within 24h, got %d", len(alerts))
	}
	if alerts[0].Severity != "Extreme" {
		t.Errorf("alert 0 severity = %q, want Extreme", alerts[0].Severity)
	}
	if alerts[1].Severity != "Moderate" {
		t.Errorf("alert 1 severity = %q, want Moderate", alerts[1].Severity)
	}
	if alerts[0].Source != "Space Weather Advisories" {
		t.Errorf("alert source = %q, want feed title", alerts[0].Source)
	}
}

func TestRecentAlertsFeedFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewSpaceWeatherClient(testConfig(srv.URL))

	if alerts := client.RecentAlerts(context.Background()); len(alerts) != 0 {
		t.Errorf("expected no alerts on feed failure, got %d", len(alerts))
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"X-class flare detected", "Extreme"},
		{"Extreme geomagnetic storm watch", "Extreme"},
		{"M-class flare from region 3664", "High"},
		{"Major storm warning", "High"},
		{"C-class activity continues", "Moderate"},
		{"Moderate conditions expected", "Moderate"},
		{"Quiet sun today", "Low"},
	}

	for _, tt := range tests {
		if got := classifySeverity(tt.title); got != tt.want {
			t.Errorf("classifySeverity(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
