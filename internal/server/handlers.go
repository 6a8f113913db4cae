package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
	"github.com/Sigge1511/AuroraForecast-MS/internal/geocode"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
)

// HandleHealth provides the health check endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleForecast runs a search for the requested city and returns the
// resulting view state as JSON.
func (s *Server) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	city := r.URL.Query().Get("city")
	state, err := s.orch.Search(r.Context(), city)

	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, forecaster.ErrBusy):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "A search is already in progress",
			"message": "Another forecast search is currently running. Please wait for it to complete.",
			"status":  "conflict",
		})
		return
	case errors.Is(err, forecaster.ErrEmptyCity):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  state.ErrorMessage,
			"status": "bad_request",
		})
		return
	case errors.Is(err, forecaster.ErrCityNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  state.ErrorMessage,
			"status": "not_found",
		})
		return
	case err != nil:
		s.log.Error("forecast search failed", err, logger.Fields{"city": city})
		http.Error(w, "Forecast search failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(state)
}

// HandleLocations returns the built-in Nordic location table.
func (s *Server) HandleLocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"locations": geocode.PopularNordicLocations(),
	})
}

// HandleForecastChart renders the 3-day outlook as a PNG.
func (s *Server) HandleForecastChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.orch.Snapshot()
	if !state.DataLoaded || len(state.Forecast) == 0 {
		http.Error(w, "No forecast loaded", http.StatusNotFound)
		return
	}

	img, err := s.generator.ForecastPNG(state.Forecast)
	if err != nil {
		s.log.Error("failed to render forecast chart", err)
		http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// HandleDashboard serves the HTML dashboard for the current state.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := s.builder.Dashboard(s.orch.Snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}
