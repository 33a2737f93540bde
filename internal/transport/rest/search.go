package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/internal/service/search"
)

type searchService interface {
	Search(ctx context.Context, in search.Input) (*domain.SearchResult, error)
	Similar(ctx context.Context, entryID uuid.UUID, limit int) []domain.SearchHit
}

// SearchHandler serves dictionary search endpoints.
type SearchHandler struct {
	svc searchService
	log *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc searchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search")}
}

type searchResponse struct {
	Results []searchHitView `json:"results"`
	Total   int             `json:"total"`
}

// Search handles GET /search?q=&limit=&offset=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryOptionalInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	result, err := h.svc.Search(r.Context(), search.Input{
		Q:      r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Results: toSearchHitViews(result.Results), Total: result.Total})
}

// Similar handles GET /entries/{id}/similar?limit=.
func (h *SearchHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": toSearchHitViews(h.svc.Similar(r.Context(), id, limit))})
}
