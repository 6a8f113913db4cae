package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sigge1511/AuroraForecast-MS/internal/config"
	"github.com/Sigge1511/AuroraForecast-MS/internal/fetchers"
	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
	"github.com/Sigge1511/AuroraForecast-MS/internal/geocode"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
	"github.com/Sigge1511/AuroraForecast-MS/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	log := logger.GetGlobalLogger()
	if level := logger.ParseLevel(cfg.LogLevel); level != -1 {
		log.SetLevel(level)
	}

	log.Infof("Starting Aurora Forecast Service %s on port %s", config.GetVersion(), cfg.Port)
	log.Infof("Environment: %s", cfg.Environment)

	weather := fetchers.NewSpaceWeatherClient(cfg)
	resolver := geocode.NewResolver(cfg)
	orch := forecaster.New(weather, resolver, nil)

	srv := server.NewServer(cfg, orch)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Warm the dashboard with the default city so the first page load
	// has data to show.
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout*3)
		defer cancel()
		if _, err := orch.Search(warmCtx, cfg.DefaultCity); err != nil {
			log.Warn("initial forecast failed", logger.Fields{"city": cfg.DefaultCity, "error": err})
		}
	}()

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}
