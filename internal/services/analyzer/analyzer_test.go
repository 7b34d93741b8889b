package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/model"
	"github.com/leomancini/street-metrics/internal/repository/sqlite"
	"github.com/leomancini/street-metrics/internal/schema"
	"github.com/leomancini/street-metrics/internal/services/storage"
	"github.com/leomancini/street-metrics/internal/services/vision"
)

// stubInvoker returns a canned response or error instead of calling the
// inference service.
type stubInvoker struct {
	response *vision.Response
	err      error
	requests []*vision.Request
}

func (s *stubInvoker) Analyze(ctx context.Context, request *vision.Request) (*vision.Response, error) {
	s.requests = append(s.requests, request)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func validAnalysisPayload() json.RawMessage {
	return json.RawMessage(`{
		"timestamp": "2026-01-29T22:15:00",
		"day_of_week": "Thursday",
		"daylight": "night",
		"activity": {"vehicles": 4, "pedestrians": 2, "taxis": 1, "delivery_vehicles": 0, "bikes_scooters": 0},
		"atmosphere": {"visibility_miles": 2.5, "precipitation": "light_snow", "road_condition": "wet", "sky_condition": "overcast", "fog_haze": false},
		"building_occupancy": {"residential_windows_lit_pct": 60, "office_windows_lit_pct": 10},
		"street_features": {"street_lights_on": true, "holiday_decorations_on": false, "wells_fargo_sign_on": true, "sidewalks_cleared": true, "trash_bins_visible": false},
		"seasonal": {"tree_foliage": "bare", "holiday_decorations_present": false, "season_estimate": "winter"},
		"urban_vibe": {"activity_level": "low", "hustle_score": 3, "cozy_factor": 7, "would_go_outside": false}
	}`)
}

func toolUseResponse(payload json.RawMessage) *vision.Response {
	return &vision.Response{
		StopReason: "tool_use",
		Content:    []vision.ResponseBlock{{Type: "tool_use", Name: schema.ToolName, Input: payload}},
	}
}

type testEnv struct {
	service   *Service
	invoker   *stubInvoker
	store     *storage.Store
	runs      *sqlite.RunRepository
	imagePath string
	analysis  string
}

func setupTestEnv(t *testing.T, invoker *stubInvoker) *testEnv {
	t.Helper()

	root := t.TempDir()
	imageDir := filepath.Join(root, "images", "TATAMI")
	if err := os.MkdirAll(imageDir, 0755); err != nil {
		t.Fatalf("Failed to create image dir: %v", err)
	}
	imagePath := filepath.Join(imageDir, "2026-01-29-22-15.jpg")
	if err := os.WriteFile(imagePath, []byte("fake jpeg bytes"), 0644); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}

	log, err := logger.New(filepath.Join(root, "logs"))
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	db, err := sqlite.New(filepath.Join(root, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	runs := sqlite.NewRunRepository(db)

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Failed to load location: %v", err)
	}

	analysisDir := filepath.Join(root, "analysis")
	store := storage.NewStore(analysisDir)
	builder := vision.NewRequestBuilder("claude-sonnet-4-20250514", loc)

	return &testEnv{
		service:   NewService(invoker, builder, store, runs, nil, log, 30*time.Second),
		invoker:   invoker,
		store:     store,
		runs:      runs,
		imagePath: imagePath,
		analysis:  analysisDir,
	}
}

func (e *testEnv) analysisFileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.analysis, "TATAMI"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	return len(entries)
}

func TestAnalyzeImage_Success(t *testing.T) {
	env := setupTestEnv(t, &stubInvoker{response: toolUseResponse(validAnalysisPayload())})

	record, analysisFile, err := env.service.AnalyzeImage(context.Background(), "TATAMI", "2026-01-29-22-15.jpg", env.imagePath)
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if analysisFile != "2026-01-29-22-15.json" {
		t.Errorf("analysisFile = %q", analysisFile)
	}
	if record.Daylight != "night" {
		t.Errorf("Daylight = %q, expected night", record.Daylight)
	}

	records, err := env.store.LoadAll("TATAMI")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Image != "2026-01-29-22-15.jpg" {
		t.Errorf("Persisted records = %+v", records)
	}

	runs, err := env.runs.ListByDevice("TATAMI", 10)
	if err != nil {
		t.Fatalf("ListByDevice failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != sqlite.RunStatusOK {
		t.Errorf("Run log = %+v, expected one ok run", runs)
	}

	if len(env.invoker.requests) != 1 {
		t.Fatalf("Invoker called %d times, expected 1", len(env.invoker.requests))
	}
	if env.invoker.requests[0].ToolChoice == nil || env.invoker.requests[0].ToolChoice.Name != schema.ToolName {
		t.Error("Built request lost its forced tool choice")
	}
}

func TestAnalyzeImage_ProtocolViolation(t *testing.T) {
	env := setupTestEnv(t, &stubInvoker{response: &vision.Response{
		Content: []vision.ResponseBlock{{Type: "text", Text: "A quiet snowy evening."}},
	}})

	_, _, err := env.service.AnalyzeImage(context.Background(), "TATAMI", "2026-01-29-22-15.jpg", env.imagePath)
	if !errors.Is(err, vision.ErrProtocol) {
		t.Fatalf("Expected ErrProtocol, got %v", err)
	}

	if n := env.analysisFileCount(t); n != 0 {
		t.Errorf("Protocol violation must not persist anything, found %d files", n)
	}

	runs, err := env.runs.ListByDevice("TATAMI", 10)
	if err != nil {
		t.Fatalf("ListByDevice failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != sqlite.RunStatusError {
		t.Errorf("Run log = %+v, expected one failed run", runs)
	}
}

func TestAnalyzeImage_SchemaViolation(t *testing.T) {
	payload := json.RawMessage(`{"timestamp": "2026-01-29T22:15:00", "daylight": "twilight"}`)
	env := setupTestEnv(t, &stubInvoker{response: toolUseResponse(payload)})

	_, _, err := env.service.AnalyzeImage(context.Background(), "TATAMI", "2026-01-29-22-15.jpg", env.imagePath)
	if !errors.Is(err, model.ErrSchema) {
		t.Fatalf("Expected ErrSchema, got %v", err)
	}
	if errors.Is(err, vision.ErrProtocol) {
		t.Error("Schema violation must be distinguishable from a protocol violation")
	}

	if n := env.analysisFileCount(t); n != 0 {
		t.Errorf("Schema violation must not persist anything, found %d files", n)
	}
}

func TestAnalyzeImage_TransportFailure(t *testing.T) {
	env := setupTestEnv(t, &stubInvoker{err: vision.ErrTransport})

	_, _, err := env.service.AnalyzeImage(context.Background(), "TATAMI", "2026-01-29-22-15.jpg", env.imagePath)
	if !errors.Is(err, vision.ErrTransport) {
		t.Fatalf("Expected ErrTransport, got %v", err)
	}

	if n := env.analysisFileCount(t); n != 0 {
		t.Errorf("Transport failure must not persist anything, found %d files", n)
	}
}

func TestAnalyzeImage_Reanalysis(t *testing.T) {
	env := setupTestEnv(t, &stubInvoker{response: toolUseResponse(validAnalysisPayload())})

	for i := 0; i < 2; i++ {
		if _, _, err := env.service.AnalyzeImage(context.Background(), "TATAMI", "2026-01-29-22-15.jpg", env.imagePath); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}

	if n := env.analysisFileCount(t); n != 1 {
		t.Errorf("Re-analysis should leave exactly one record, found %d", n)
	}
}
