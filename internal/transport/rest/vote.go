package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/internal/service/vote"
)

type voteService interface {
	CastVote(ctx context.Context, input vote.CastVoteInput) (*domain.VoteResult, error)
}

// VoteHandler serves POST /votes.
type VoteHandler struct {
	svc voteService
	log *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(svc voteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, log: logger.With("handler", "vote")}
}

type voteRequest struct {
	DefinitionID string `json:"definitionId"`
	IsUpvote     *bool  `json:"isUpvote"`
}

type voteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Outcome string `json:"outcome"`
	Delta   int    `json:"delta"`
}

// Cast records, removes or flips the caller's vote.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var errs []domain.FieldError
	defID, err := uuid.Parse(req.DefinitionID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "definitionId", Message: "must be a UUID"})
	}
	if req.IsUpvote == nil {
		errs = append(errs, domain.FieldError{Field: "isUpvote", Message: "required"})
	}
	if err := domain.CollectValidation(errs); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.CastVote(r.Context(), vote.CastVoteInput{DefinitionID: defID, IsUpvote: *req.IsUpvote})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{
		Success: true,
		Message: result.Message,
		Outcome: result.Outcome.String(),
		Delta:   result.Delta,
	})
}
