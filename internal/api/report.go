package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsboard/backend/internal/config"
	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/dateparse"
	"github.com/opsboard/backend/internal/filter"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/report"
	"github.com/opsboard/backend/internal/types"
)

// ReportHandler serves aggregated views over the working dataset
type ReportHandler struct {
	cache  *dataset.Cache
	config *config.Config
	logger zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(cache *dataset.Cache, cfg *config.Config, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

// GetReport returns the full aggregated report for the filtered working set
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterState(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	working := filter.Apply(h.cache.Snapshot(), fs)

	start := time.Now()
	rep := report.Build(working, h.config.TeamPolicy)
	metrics.Get().RecordReportBuild(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dataset": h.cache.Meta(),
		"report":  rep,
	})
}

// GetEmployeeReport returns the report narrowed to a single employee.
// Without an empId selection the working set is empty, never all employees.
func (h *ReportHandler) GetEmployeeReport(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterState(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	working := filter.ApplyEmployee(h.cache.Snapshot(), fs)

	start := time.Now()
	rep := report.Build(working, h.config.TeamPolicy)
	metrics.Get().RecordReportBuild(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"empId":  fs.EmployeeID,
		"report": rep,
	})
}

// GetDuplicates lists employee IDs appearing on multiple records of the
// filtered working set
func (h *ReportHandler) GetDuplicates(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterState(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	working := filter.Apply(h.cache.Snapshot(), fs)
	dupes := report.DuplicateEmployeeIDs(working)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"duplicates": dupes,
	})
}

// parseFilterState reads the filter controls from query parameters.
// Dates use the upload format DD/MM/YYYY; a malformed bound is a client
// error rather than a silently open range.
func parseFilterState(r *http.Request) (types.FilterState, error) {
	fs := types.FilterState{
		TeamLead:   r.URL.Query().Get("teamLead"),
		Team:       r.URL.Query().Get("team"),
		EmployeeID: r.URL.Query().Get("empId"),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		d, ok := dateparse.Parse(from)
		if !ok {
			return fs, fmt.Errorf("invalid from date %q (want DD/MM/YYYY)", from)
		}
		fs.From = &d
	}

	if to := r.URL.Query().Get("to"); to != "" {
		d, ok := dateparse.Parse(to)
		if !ok {
			return fs, fmt.Errorf("invalid to date %q (want DD/MM/YYYY)", to)
		}
		fs.To = &d
	}

	return fs, nil
}
