// Package server exposes the forecast pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/Sigge1511/AuroraForecast-MS/internal/charts"
	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
	"github.com/Sigge1511/AuroraForecast-MS/internal/reports"
)

// Server wires the orchestrator and the render layers to HTTP handlers.
type Server struct {
	cfg       *config.Config
	orch      *forecaster.Orchestrator
	builder   *reports.Builder
	generator *charts.Generator
	log       *logger.Logger
}

// NewServer creates a server around an orchestrator.
func NewServer(cfg *config.Config, orch *forecaster.Orchestrator) *Server {
	return &Server{
		cfg:       cfg,
		orch:      orch,
		builder:   reports.NewBuilder(),
		generator: charts.NewGenerator(),
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/forecast", s.HandleForecast)
	mux.HandleFunc("/locations", s.HandleLocations)
	mux.HandleFunc("/charts/forecast.png", s.HandleForecastChart)
	mux.HandleFunc("/", s.HandleDashboard)

	return mux
}
