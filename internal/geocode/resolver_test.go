package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
)

func resolverConfig(url string) *config.Config {
	return &config.Config{
		GeocodeURL:       url,
		GeocodeUserAgent: "AuroraForecastService/test",
		RequestTimeout:   5 * time.Second,
	}
}

func TestResolveStaticTableSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("static table hit must not call the geocoding API")
	}))
	defer srv.Close()

	r := NewResolver(resolverConfig(srv.URL))

	loc := r.Resolve(context.Background(), "Stockholm")
	if loc == nil {
		t.Fatal("expected Stockholm from the static table")
	}
	if loc.Latitude != 59.3293 || loc.Longitude != 18.0686 {
		t.Errorf("Stockholm = (%v, %v), want (59.3293, 18.0686)", loc.Latitude, loc.Longitude)
	}
}

func TestResolveStaticTableCaseInsensitive(t *testing.T) {
	r := NewResolver(resolverConfig("http://unused.invalid"))

	loc := r.Resolve(context.Background(), "kiruna")
	if loc == nil {
		t.Fatal("expected case-insensitive match for kiruna")
	}
	if loc.CityName != "Kiruna" {
		t.Errorf("CityName = %q, want table spelling Kiruna", loc.CityName)
	}
}

func TestResolveUnknownCityUsesGeocodingAPI(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if q := r.URL.Query().Get("q"); q != "Narvik" {
			t.Errorf("query = %q, want Narvik", q)
		}
		if ua := r.Header.Get("User-Agent"); ua != "AuroraForecastService/test" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte(`[{"lat":"68.4385","lon":"17.4272","display_name":"Narvik, Nordland, Norway"}]`))
	}))
	defer srv.Close()

	r := NewResolver(resolverConfig(srv.URL))

	loc := r.Resolve(context.Background(), "Narvik")
	if !called {
		t.Fatal("geocoding API was not called")
	}
	if loc == nil {
		t.Fatal("expected a resolved location")
	}
	if loc.CityName != "Narvik" || loc.Latitude != 68.4385 || loc.Longitude != 17.4272 {
		t.Errorf("got %+v", loc)
	}
}

func TestResolveNoResultReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r := NewResolver(resolverConfig(srv.URL))

	if loc := r.Resolve(context.Background(), "Atlantis"); loc != nil {
		t.Errorf("expected nil for an unknown city, got %+v", loc)
	}
}

func TestResolveBlankNameReturnsNil(t *testing.T) {
	r := NewResolver(resolverConfig("http://unused.invalid"))

	if loc := r.Resolve(context.Background(), "   "); loc != nil {
		t.Errorf("expected nil for blank input, got %+v", loc)
	}
}

func TestResolveTransportErrorReturnsFallback(t *testing.T) {
	// Closed server: the request errors at the transport level, which
	// takes the fallback-location path rather than the nil miss path.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	r := NewResolver(resolverConfig(srv.URL))

	loc := r.Resolve(context.Background(), "Narvik")
	if loc == nil {
		t.Fatal("expected fallback location on transport error, got nil")
	}
	if loc.Latitude != 63.8267 || loc.Longitude != 16.0534 {
		t.Errorf("fallback = (%v, %v), want (63.8267, 16.0534)", loc.Latitude, loc.Longitude)
	}
	if loc.CityName != "Narvik" {
		t.Errorf("fallback keeps the searched name, got %q", loc.CityName)
	}
}

func TestPopularNordicLocations(t *testing.T) {
	locations := PopularNordicLocations()

	if len(locations) != 8 {
		t.Fatalf("expected 8 built-in locations, got %d", len(locations))
	}
	for _, loc := range locations {
		if loc.CityName == "" || loc.Latitude == 0 {
			t.Errorf("incomplete table entry: %+v", loc)
		}
	}
}
