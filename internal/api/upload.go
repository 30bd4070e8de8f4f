package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/opsboard/backend/internal/ingest"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/report"
)

// Upload accepts a new activity file and replaces the working dataset.
// The payload is either a multipart form with a "file" part or a raw body
// with an optional ?filename= hint. A decode failure resets the dataset:
// stale data from a previous upload is never shown alongside a failed one.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)

	filename, data, err := readUpload(r)
	if err != nil {
		metrics.Get().RecordUploadFailure()
		h.logger.Warn().Err(err).Msg("upload rejected")
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	records, err := ingest.Decode(filename, data)
	if err != nil {
		metrics.Get().RecordUploadFailure()
		h.logger.Warn().Err(err).Str("filename", filename).Msg("upload decode failed")

		// Reset to an empty collection and tell clients about it
		meta := h.cache.Clear()
		h.broadcastReport(meta, report.Build(nil, h.config.TeamPolicy))
		metrics.Get().UpdateDatasetStats(0, 0, 0)

		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	meta := h.cache.Replace(records, filename)

	start := time.Now()
	rep := report.Build(records, h.config.TeamPolicy)
	metrics.Get().RecordReportBuild(time.Since(start))
	metrics.Get().RecordUpload()
	metrics.Get().UpdateDatasetStats(rep.RecordCount, len(rep.Employees), len(rep.TeamAssignments))

	h.broadcastReport(meta, rep)

	// Best-effort archive of the new dataset's metadata
	if err := h.store.SaveDatasetMeta(meta); err != nil {
		h.logger.Error().Err(err).Msg("failed to archive dataset meta")
	}

	h.logger.Info().
		Str("dataset_id", meta.DatasetID).
		Str("filename", filename).
		Int("records", len(records)).
		Msg("dataset uploaded")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dataset": meta,
		"report":  rep,
	})
}

// readUpload extracts the payload bytes and filename from the request
func readUpload(r *http.Request) (string, []byte, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if strings.HasPrefix(contentType, "multipart/") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing file part: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read file part: %w", err)
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty upload")
	}

	filename := r.URL.Query().Get("filename")
	return filename, data, nil
}
