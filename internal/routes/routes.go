package routes

import (
	"net/http"
	"path/filepath"

	"github.com/leomancini/street-metrics/internal/config"
	"github.com/leomancini/street-metrics/internal/handlers"
	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/services/analyzer"
	"github.com/leomancini/street-metrics/internal/services/capture"
)

// SetupRoutes registers the service descriptor, the capture and analysis
// endpoints, static file serving and the event feed.
func SetupRoutes(pipeline *analyzer.Service, snapshots *capture.Service, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Service descriptor
	mux.HandleFunc("GET /{$}", handlers.RootHandler(cfg))

	// Stored snapshots and dashboard assets
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDirectory))))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))
	mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDirectory, "dashboard.html"))
	})

	// Capture endpoints
	mux.HandleFunc("GET /capture", handlers.CaptureDefaultHandler(cfg))
	mux.HandleFunc("GET /capture/{deviceName}", handlers.CaptureHandler(snapshots, pipeline.GetHub(), cfg, logger))

	// Analysis pipeline endpoints
	mux.HandleFunc("GET /analyze/{deviceName}", handlers.ListImagesHandler(cfg, logger))
	mux.HandleFunc("POST /analyze/{deviceName}", handlers.AnalyzeHandler(pipeline, cfg, logger))

	// Aggregation and run log API
	mux.HandleFunc("GET /api/analysis/{deviceName}", handlers.AnalysisDataHandler(pipeline.GetStore(), logger))
	mux.HandleFunc("GET /api/runs/{deviceName}", handlers.RunsHandler(pipeline.GetRunRepository(), logger))
	mux.HandleFunc("GET /api/events", handlers.EventsWebsocketHandler(pipeline.GetHub(), logger))

	// Log endpoints
	mux.HandleFunc("GET /logs/info", handlers.ShowLogsHandler(cfg, "info.log"))
	mux.HandleFunc("GET /logs/warning", handlers.ShowLogsHandler(cfg, "warning.log"))
	mux.HandleFunc("GET /logs/error", handlers.ShowLogsHandler(cfg, "error.log"))
	mux.HandleFunc("POST /logs/info/clear", handlers.ClearLogsHandler(logger, "info.log"))
	mux.HandleFunc("POST /logs/warning/clear", handlers.ClearLogsHandler(logger, "warning.log"))
	mux.HandleFunc("POST /logs/error/clear", handlers.ClearLogsHandler(logger, "error.log"))

	return mux
}
