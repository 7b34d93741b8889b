package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/leomancini/street-metrics/internal/config"
	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/repository/sqlite"
	"github.com/leomancini/street-metrics/internal/routes"
	"github.com/leomancini/street-metrics/internal/services/analyzer"
	"github.com/leomancini/street-metrics/internal/services/capture"
	"github.com/leomancini/street-metrics/internal/services/storage"
	"github.com/leomancini/street-metrics/internal/services/vision"
	"github.com/leomancini/street-metrics/internal/services/websocket"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	hub       *websocket.HubService
	pipeline  *analyzer.Service
	snapshots *capture.Service
}

func NewApp() (*App, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogDirectory)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open run log database: %w", err)
	}

	hub := websocket.NewHubService(log)
	client := vision.NewClient(cfg.APIBaseURL, cfg.APIKey)
	builder := vision.NewRequestBuilder(cfg.Model, loc)
	store := storage.NewStore(cfg.AnalysisDirectory)
	runs := sqlite.NewRunRepository(db)

	pipeline := analyzer.NewService(client, builder, store, runs, hub, log, time.Duration(cfg.AnalyzeTimeout)*time.Second)
	snapshots := capture.NewService(cfg.ImageDirectory, loc, log)

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		hub:       hub,
		pipeline:  pipeline,
		snapshots: snapshots,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	router := routes.SetupRoutes(a.pipeline, a.snapshots, a.config, a.logger)

	fmt.Printf("🌆 street-metrics\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🎥 Devices: %v\n", a.config.DeviceNames())
	fmt.Printf("📁 Images: %s\n", a.config.ImageDirectory)
	fmt.Printf("📊 Analysis: %s\n", a.config.AnalysisDirectory)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the run log database.
func (a *App) Close() error {
	return a.db.Close()
}
