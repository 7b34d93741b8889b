package analyzer

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/model"
	"github.com/leomancini/street-metrics/internal/repository/sqlite"
	"github.com/leomancini/street-metrics/internal/schema"
	"github.com/leomancini/street-metrics/internal/services/storage"
	"github.com/leomancini/street-metrics/internal/services/vision"
	"github.com/leomancini/street-metrics/internal/services/websocket"
)

// Invoker performs the synchronous inference call. Satisfied by
// vision.Client; tests substitute a stub.
type Invoker interface {
	Analyze(ctx context.Context, request *vision.Request) (*vision.Response, error)
}

// Service runs the extraction pipeline for single images: build the
// multimodal request, invoke the model, extract and validate the
// structured payload, persist the record.
type Service struct {
	invoker Invoker
	builder *vision.RequestBuilder
	store   *storage.Store
	runs    *sqlite.RunRepository
	hub     *websocket.HubService
	logger  *logger.Logger
	timeout time.Duration

	keyLocks map[string]*sync.Mutex
	keyMu    sync.Mutex
}

// NewService wires the pipeline. runs and hub may be nil; the run log and
// the event feed are supplements, not part of the pipeline contract.
func NewService(invoker Invoker, builder *vision.RequestBuilder, store *storage.Store, runs *sqlite.RunRepository, hub *websocket.HubService, logger *logger.Logger, timeout time.Duration) *Service {
	return &Service{
		invoker:  invoker,
		builder:  builder,
		store:    store,
		runs:     runs,
		hub:      hub,
		logger:   logger,
		timeout:  timeout,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

// AnalyzeImage runs one pipeline execution for (device, image). The image
// bytes are read from imagePath. At most one run per (device, image) key
// executes at a time; the last writer would otherwise win the race on the
// stored document. Returns the validated record and the analysis filename.
func (s *Service) AnalyzeImage(ctx context.Context, device, image, imagePath string) (record *model.SceneAnalysisRecord, analysisFile string, err error) {
	unlock := s.lockKey(device + "/" + image)
	defer unlock()

	start := time.Now()
	defer func() { s.finishRun(device, image, time.Since(start), err) }()

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", image, err)
	}

	request := s.builder.Build(imageData, image)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.invoker.Analyze(ctx, request)
	if err != nil {
		return nil, "", err
	}

	payload, err := vision.ExtractToolInput(response, schema.ToolName)
	if err != nil {
		return nil, "", err
	}

	record, err = model.Decode(payload)
	if err != nil {
		return nil, "", err
	}

	analysisFile, err = s.store.Save(device, image, record)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("🔎 Analyzed %s/%s in %s", device, image, time.Since(start).Round(time.Millisecond))
	return record, analysisFile, nil
}

// GetStore exposes the record store for the read path.
func (s *Service) GetStore() *storage.Store {
	return s.store
}

// GetRunRepository exposes the run log, possibly nil.
func (s *Service) GetRunRepository() *sqlite.RunRepository {
	return s.runs
}

// GetHub exposes the event hub, possibly nil.
func (s *Service) GetHub() *websocket.HubService {
	return s.hub
}

// lockKey acquires the per-(device,image) mutex, creating it on first use.
func (s *Service) lockKey(key string) func() {
	s.keyMu.Lock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	s.keyMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// finishRun records the run outcome in the run log and on the event feed.
func (s *Service) finishRun(device, image string, elapsed time.Duration, err error) {
	status := sqlite.RunStatusOK
	message := ""
	if err != nil {
		status = sqlite.RunStatusError
		message = err.Error()
		s.logger.Error("Analysis failed for %s/%s: %v", device, image, err)
	}

	if s.runs != nil {
		run := &sqlite.Run{
			Device:     device,
			Image:      image,
			Status:     status,
			Error:      message,
			DurationMs: elapsed.Milliseconds(),
		}
		if _, dbErr := s.runs.Insert(run); dbErr != nil {
			s.logger.Error("Failed to record run for %s/%s: %v", device, image, dbErr)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.Event{
			Type:    websocket.EventAnalysis,
			Device:  device,
			Image:   image,
			Success: err == nil,
			Error:   message,
		})
	}
}
