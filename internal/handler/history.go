package handler

import (
	"net/http"
	"strconv"

	"github.com/scoutai/scout/internal/archive"
	"github.com/scoutai/scout/internal/models"
	"github.com/scoutai/scout/internal/store"
)

// HistoryHandler serves past research runs from Postgres and the archive.
type HistoryHandler struct {
	store   *store.Store
	archive *archive.Archive
}

func NewHistoryHandler(st *store.Store, arch *archive.Archive) *HistoryHandler {
	return &HistoryHandler{store: st, archive: arch}
}

// List handles GET /api/v1/history?limit=N
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		models.WriteError(w, http.StatusServiceUnavailable, "run history is not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			models.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	runs, err := h.store.RecentRuns(r.Context(), limit)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"count":  len(runs),
		"runs":   runs,
	})
}

// Search handles GET /api/v1/history/search?q=...
func (h *HistoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		models.WriteError(w, http.StatusServiceUnavailable, "research archive is not configured")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		models.WriteError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	records, err := h.archive.Search(r.Context(), q, 10)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"count":   len(records),
		"records": records,
	})
}
