package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsboard/backend/internal/config"
	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/report"
	"github.com/opsboard/backend/internal/storage"
	"github.com/opsboard/backend/internal/types"
	"github.com/opsboard/backend/internal/websocket"
)

// DatasetHandler manages the working dataset: uploads, metadata, reset
type DatasetHandler struct {
	cache  *dataset.Cache
	hub    *websocket.Hub
	store  storage.Store
	config *config.Config
	logger zerolog.Logger
}

// NewDatasetHandler creates a new DatasetHandler
func NewDatasetHandler(cache *dataset.Cache, hub *websocket.Hub, store storage.Store, cfg *config.Config, logger zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		cache:  cache,
		hub:    hub,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// GetMeta returns metadata for the currently loaded dataset
func (h *DatasetHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta := h.cache.Meta()

	w.Header().Set("Content-Type", "application/json")
	if meta.DatasetID == "" {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"loaded": false,
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"loaded":  true,
		"dataset": meta,
	})
}

// Delete drops the current dataset and pushes an empty report to clients
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	meta := h.cache.Clear()
	h.broadcastReport(meta, report.Build(nil, h.config.TeamPolicy))
	metrics.Get().UpdateDatasetStats(0, 0, 0)

	h.logger.Info().Msg("dataset cleared")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "dataset cleared",
	})
}

// broadcastReport pushes the current report envelope to all dashboard clients
func (h *DatasetHandler) broadcastReport(meta types.DatasetMeta, rep *types.Report) {
	msg := types.ReportMessage{
		Type:      "report",
		Timestamp: time.Now().UTC(),
		Dataset:   meta,
		Report:    rep,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal report message")
		return
	}
	h.hub.Broadcast(data)
}
