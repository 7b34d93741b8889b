package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/leomancini/street-metrics/internal/logger"
	"github.com/leomancini/street-metrics/internal/repository/sqlite"
	"github.com/leomancini/street-metrics/internal/services/storage"
)

// AnalysisDataHandler returns every persisted record for a device,
// annotated with its source filenames, in chronological order.
func AnalysisDataHandler(store *storage.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := r.PathValue("deviceName")

		records, err := store.LoadAll(deviceName)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "No analysis found for device: "+deviceName)
				return
			}
			logger.Error("Error loading analyses for %s: %v", deviceName, err)
			writeError(w, http.StatusInternalServerError, "Unable to load analyses")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"device":   deviceName,
			"count":    len(records),
			"analyses": records,
		})
	}
}

// RunsHandler returns the recent pipeline run log for a device.
func RunsHandler(runs *sqlite.RunRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceName := r.PathValue("deviceName")

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := runs.ListByDevice(deviceName, limit)
		if err != nil {
			logger.Error("Error loading runs for %s: %v", deviceName, err)
			writeError(w, http.StatusInternalServerError, "Unable to load run log")
			return
		}

		counts, err := runs.CountByStatus(deviceName)
		if err != nil {
			logger.Error("Error counting runs for %s: %v", deviceName, err)
			writeError(w, http.StatusInternalServerError, "Unable to load run log")
			return
		}

		if entries == nil {
			entries = []sqlite.Run{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"device": deviceName,
			"runs":   entries,
			"totals": counts,
		})
	}
}
