package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leomancini/street-metrics/internal/config"
	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/services/analyzer"
)

// AnalyzeRequest is the POST /analyze/{deviceName} body.
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// ListImagesHandler lists a device's snapshot filenames, newest first.
func ListImagesHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := r.PathValue("deviceName")
		deviceDir := cfg.DeviceImageDir(deviceName)

		entries, err := os.ReadDir(deviceDir)
		if err != nil {
			if os.IsNotExist(err) {
				writeError(w, http.StatusNotFound, "No images found for device: "+deviceName)
				return
			}
			logger.Error("Error reading image directory for %s: %v", deviceName, err)
			writeError(w, http.StatusInternalServerError, "Unable to read image directory")
			return
		}

		images := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".jpg") {
				images = append(images, e.Name())
			}
		}
		slices.Sort(images)
		slices.Reverse(images)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"device": deviceName,
			"count":  len(images),
			"images": images,
			"usage":  `POST /analyze/` + deviceName + ` with body { "image": "filename.jpg" }`,
		})
	}
}

// AnalyzeHandler runs the extraction pipeline for one named image and
// returns the structured result.
func AnalyzeHandler(service *analyzer.Service, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := r.PathValue("deviceName")

		var body AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Image == "" {
			writeError(w, http.StatusBadRequest, `Missing "image" in request body. Example: { "image": "2026-01-29-22-15.jpg" }`)
			return
		}

		// The image name is a bare filename inside the device directory.
		body.Image = filepath.Base(body.Image)
		imagePath := filepath.Join(cfg.DeviceImageDir(deviceName), body.Image)
		if _, err := os.Stat(imagePath); os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "Image not found: "+body.Image)
			return
		}

		logger.Info("Analyzing image: %s", imagePath)

		record, analysisFile, err := service.AnalyzeImage(r.Context(), deviceName, body.Image, imagePath)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"device":  deviceName,
				"image":   body.Image,
				"error":   err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"device":       deviceName,
			"image":        body.Image,
			"analysisFile": analysisFile,
			"analysis":     record,
		})
	}
}
