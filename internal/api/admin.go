package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/opsboard/backend/internal/auth"
	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/storage"
)

// AdminHandler handles maintenance operations on in-memory and archived state
type AdminHandler struct {
	cache  *dataset.Cache
	store  storage.Store
	logger zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(cache *dataset.Cache, store storage.Store, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		cache:  cache,
		store:  store,
		logger: logger,
	}
}

// RequireAdmin middleware — only admin role allowed
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetUserFromContext(r.Context())
		if !ok || !auth.HasRole(claims, "admin") {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"admin role required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManagerOrAdmin middleware — manager or admin role allowed
func RequireManagerOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.GetUserFromContext(r.Context())
		if !ok || (claims.Role != "admin" && claims.Role != "manager") {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"manager or admin role required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ResetMemory clears the in-memory dataset cache
func (h *AdminHandler) ResetMemory(w http.ResponseWriter, r *http.Request) {
	recordsCleared := h.cache.Size()
	h.cache.Clear()
	metrics.Get().UpdateDatasetStats(0, 0, 0)

	h.logger.Info().
		Int("records", recordsCleared).
		Msg("backend memory reset")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":        "backend memory reset",
		"recordsCleared": recordsCleared,
	})
}

// WipeDynamo truncates all DynamoDB archive tables
func (h *AdminHandler) WipeDynamo(w http.ResponseWriter, r *http.Request) {
	if err := h.store.TruncateAll(); err != nil {
		h.logger.Error().Err(err).Msg("failed to truncate DynamoDB tables")
		http.Error(w, fmt.Sprintf(`{"error":"failed to truncate: %s"}`, err), http.StatusInternalServerError)
		return
	}

	h.logger.Info().Msg("DynamoDB tables truncated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "DynamoDB tables truncated",
	})
}
