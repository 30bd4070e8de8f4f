package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opsboard/backend/internal/filter"
)

// GetFilterOptions returns the selectable filter values for the current
// state. Options cascade: leads come from the date-filtered set, teams only
// appear once a lead is selected, employees from the fully narrowed set.
func (h *ReportHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterState(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	opts := filter.Options(h.cache.Snapshot(), fs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(opts)
}
