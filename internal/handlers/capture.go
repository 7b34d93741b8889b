package handlers

import (
	"net/http"

	"github.com/leomancini/street-metrics/internal/config"
	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/services/capture"
	"github.com/leomancini/street-metrics/internal/services/websocket"
)

// CaptureHandler grabs one snapshot from the named device and reports the
// stored image path.
func CaptureHandler(service *capture.Service, hub *websocket.HubService, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := r.PathValue("deviceName")

		device, ok := cfg.Device(deviceName)
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown device: "+deviceName)
			return
		}

		logger.Info("Capturing snapshot for device: %s", deviceName)

		filename, err := service.Snapshot(device)
		if err != nil {
			logger.Error("Capture error: %v", err)
			hub.BroadcastEvent(websocket.Event{Type: websocket.EventCapture, Device: deviceName, Error: err.Error()})
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"device":  deviceName,
				"error":   err.Error(),
			})
			return
		}

		hub.BroadcastEvent(websocket.Event{Type: websocket.EventCapture, Device: deviceName, Image: filename, Success: true})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"device":    deviceName,
			"imagePath": "/images/" + deviceName + "/" + filename,
		})
	}
}

// CaptureDefaultHandler redirects the bare capture route to the first
// configured device.
func CaptureDefaultHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/capture/"+cfg.DefaultDevice(), http.StatusFound)
	}
}
