package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

type dictionaryService interface {
	GetEntry(ctx context.Context, slugOrID string) (*domain.EntryDetail, error)
	TopEntries(ctx context.Context, limit int) []domain.Entry
	RecentEntries(ctx context.Context, limit int) []domain.Entry
	ListRegions(ctx context.Context) []domain.Region
	GetRegion(ctx context.Context, slug string) (*domain.RegionDetail, error)
}

type userVoteLister interface {
	ListUserVotes(ctx context.Context, definitionIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// DictionaryHandler serves the public dictionary pages.
type DictionaryHandler struct {
	dict  dictionaryService
	votes userVoteLister
	log   *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(dict dictionaryService, votes userVoteLister, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{dict: dict, votes: votes, log: logger.With("handler", "dictionary")}
}

// TopEntries handles GET /entries/top?limit=.
func (h *DictionaryHandler) TopEntries(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": toEntryViews(h.dict.TopEntries(r.Context(), limit))})
}

// RecentEntries handles GET /entries/recent?limit=.
func (h *DictionaryHandler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": toEntryViews(h.dict.RecentEntries(r.Context(), limit))})
}

// Entry handles GET /entries/{slug}. The path value may also be an entry id.
// Authenticated callers also get their vote on each definition.
func (h *DictionaryHandler) Entry(w http.ResponseWriter, r *http.Request) {
	detail, err := h.dict.GetEntry(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(detail.Definitions))
	for _, d := range detail.Definitions {
		ids = append(ids, d.ID)
	}
	votes, err := h.votes.ListUserVotes(r.Context(), ids)
	if err != nil {
		h.log.ErrorContext(r.Context(), "list user votes",
			slog.String("entry_id", detail.ID.String()),
			slog.String("error", err.Error()))
		votes = nil
	}

	writeJSON(w, http.StatusOK, toEntryDetailView(detail, votes))
}

// Regions handles GET /regions.
func (h *DictionaryHandler) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": toRegionViews(h.dict.ListRegions(r.Context()))})
}

// Region handles GET /regions/{slug}.
func (h *DictionaryHandler) Region(w http.ResponseWriter, r *http.Request) {
	detail, err := h.dict.GetRegion(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regionDetailView{
		regionView: toRegionView(detail.Region),
		Entries:    toEntryViews(detail.Entries),
	})
}
