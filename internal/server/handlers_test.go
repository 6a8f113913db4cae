package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

type stubWeather struct {
	block chan struct{}
	mu    sync.Mutex
	calls int
}

func (s *stubWeather) ForecastForLocation(ctx context.Context, city string, lat, lon float64) models.AuroraForecast {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return models.AuroraForecast{
		ForecastTime:  time.Now().UTC(),
		KpIndex:       5.0,
		Location:      city,
		Latitude:      lat,
		Longitude:     lon,
		Probability:   80,
		ActivityLevel: "Active",
	}
}

func (s *stubWeather) ThreeDayForecast(ctx context.Context, latitude float64) []models.ForecastDay {
	return []models.ForecastDay{
		{Date: "Sat 30 Aug", KpIndex: 4.0, Probability: 50, ActivityLevel: "Medium"},
		{Date: "Sun 31 Aug", KpIndex: 4.3, Probability: 50, ActivityLevel: "Medium"},
		{Date: "Mon 01 Sep", KpIndex: 3.1, Probability: 50, ActivityLevel: "Medium"},
	}
}

func (s *stubWeather) RecentAlerts(ctx context.Context) []models.SpaceWeatherAlert {
	return nil
}

func (s *stubWeather) waitForCall(t *testing.T) {
	t.Helper()
	for i := 0; i < 100; i++ {
		s.mu.Lock()
		n := s.calls
		s.mu.Unlock()
		if n > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("fetch never started")
}

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, cityName string) *models.SelectedLocation {
	if strings.EqualFold(cityName, "Kiruna") {
		return &models.SelectedLocation{CityName: "Kiruna", Latitude: 67.8558, Longitude: 20.2253}
	}
	return nil
}

func newTestServer(weather *stubWeather) *Server {
	orch := forecaster.New(weather, stubResolver{}, nil)
	return NewServer(&config.Config{Port: "8981"}, orch)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["version"] == "" {
		t.Error("version missing")
	}
}

func TestHandleForecastSuccess(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodGet, "/forecast?city=Kiruna", nil)
	rec := httptest.NewRecorder()
	s.HandleForecast(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var state forecaster.ViewState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if state.CityName != "Kiruna" || !state.DataLoaded {
		t.Errorf("unexpected state: %+v", state)
	}
	if len(state.Forecast) != 3 {
		t.Errorf("forecast length = %d", len(state.Forecast))
	}
}

func TestHandleForecastEmptyCity(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodGet, "/forecast", nil)
	rec := httptest.NewRecorder()
	s.HandleForecast(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Enter a city name") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleForecastUnknownCity(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodGet, "/forecast?city=Atlantis", nil)
	rec := httptest.NewRecorder()
	s.HandleForecast(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not find city: Atlantis") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleForecastBusy(t *testing.T) {
	weather := &stubWeather{block: make(chan struct{})}
	s := newTestServer(weather)

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodGet, "/forecast?city=Kiruna", nil)
		s.HandleForecast(httptest.NewRecorder(), req)
	}()
	weather.waitForCall(t)

	req := httptest.NewRequest(http.MethodGet, "/forecast?city=Kiruna", nil)
	rec := httptest.NewRecorder()
	s.HandleForecast(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "conflict") {
		t.Errorf("body = %s", rec.Body.String())
	}

	close(weather.block)
	<-done
}

func TestHandleForecastMethodNotAllowed(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodPost, "/forecast?city=Kiruna", nil)
	rec := httptest.NewRecorder()
	s.HandleForecast(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleLocations(t *testing.T) {
	s := newTestServer(&stubWeather{})

	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rec := httptest.NewRecorder()
	s.HandleLocations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Locations []models.SelectedLocation `json:"locations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Locations) != 8 {
		t.Errorf("locations = %d, want 8", len(body.Locations))
	}
}

func TestHandleForecastChart(t *testing.T) {
	s := newTestServer(&stubWeather{})

	// Before any search there is nothing to chart.
	req := httptest.NewRequest(http.MethodGet, "/charts/forecast.png", nil)
	rec := httptest.NewRecorder()
	s.HandleForecastChart(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status before load = %d, want 404", rec.Code)
	}

	searchReq := httptest.NewRequest(http.MethodGet, "/forecast?city=Kiruna", nil)
	s.HandleForecast(httptest.NewRecorder(), searchReq)

	rec = httptest.NewRecorder()
	s.HandleForecastChart(rec, httptest.NewRequest(http.MethodGet, "/charts/forecast.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status after load = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %s", ct)
	}
	if rec.Body.Len() < 100 {
		t.Errorf("PNG suspiciously small: %d bytes", rec.Body.Len())
	}
}

func TestHandleDashboard(t *testing.T) {
	s := newTestServer(&stubWeather{})
	mux := s.SetupRoutes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Aurora Forecast") {
		t.Error("dashboard title missing")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	s := newTestServer(&stubWeather{})
	mux := s.SetupRoutes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
