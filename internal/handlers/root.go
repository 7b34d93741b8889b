package handlers

import (
	"net/http"

	"github.com/leomancini/street-metrics/internal/config"
)

// RootHandler returns the service descriptor: status, configured devices
// and the endpoint map.
func RootHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "street-metrics",
			"devices": cfg.DeviceNames(),
			"endpoints": map[string]string{
				"capture":      "/capture/{deviceName}",
				"images":       "/images/{deviceName}/",
				"analyze_list": "GET /analyze/{deviceName}",
				"analyze":      `POST /analyze/{deviceName} { "image": "filename.jpg" }`,
				"analysis":     "GET /api/analysis/{deviceName}",
				"runs":         "GET /api/runs/{deviceName}",
				"events":       "GET /api/events",
				"dashboard":    "/dashboard",
			},
		})
	}
}
