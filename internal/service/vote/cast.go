package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// CastVote records, removes or flips the caller's vote on a definition and
// applies the matching popularity delta to the definition and its entry, all
// in one transaction.
//
//	no vote          -> insert,  delta = weight
//	same direction   -> delete,  delta = -weight
//	other direction  -> update,  delta = 2 * weight
func (s *Service) CastVote(ctx context.Context, input CastVoteInput) (*domain.VoteResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cast := domain.Vote{UserID: userID, DefinitionID: input.DefinitionID, IsUpvote: input.IsUpvote}
	var result domain.VoteResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		def, err := s.content.GetActiveDefinition(txCtx, input.DefinitionID)
		if err != nil {
			return fmt.Errorf("get definition: %w", err)
		}

		existing, err := s.votes.GetForUpdate(txCtx, userID, input.DefinitionID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get vote: %w", err)
		}

		outcome, delta, err := s.applyVote(txCtx, existing, cast)
		if err != nil {
			return err
		}

		if err := s.content.AddDefinitionPopularity(txCtx, def.ID, delta); err != nil {
			return fmt.Errorf("update definition popularity: %w", err)
		}
		if err := s.content.AddPopularity(txCtx, def.EntryID, delta); err != nil {
			return fmt.Errorf("update entry popularity: %w", err)
		}

		result = domain.VoteResult{
			Outcome:      outcome,
			Message:      outcome.Message(),
			Delta:        delta,
			DefinitionID: def.ID,
			EntryID:      def.EntryID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.VoteCast(result.Outcome.String())
	s.log.DebugContext(ctx, "vote cast",
		slog.String("definition_id", result.DefinitionID.String()),
		slog.String("outcome", result.Outcome.String()),
		slog.Int("delta", result.Delta),
	)
	return &result, nil
}

// applyVote performs the vote row mutation and returns the popularity delta.
// existing is nil when the caller has not voted on the definition yet.
func (s *Service) applyVote(ctx context.Context, existing *domain.Vote, cast domain.Vote) (domain.VoteOutcome, int, error) {
	switch {
	case existing == nil:
		if err := s.votes.Create(ctx, &cast); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				// A concurrent first vote by the same user won the unique key.
				return "", 0, domain.RetryableConflict("create vote")
			}
			return "", 0, fmt.Errorf("create vote: %w", err)
		}
		return domain.VoteOutcomeRecorded, cast.Weight(), nil

	case existing.IsUpvote == cast.IsUpvote:
		if err := s.votes.Delete(ctx, existing.ID); err != nil {
			return "", 0, fmt.Errorf("delete vote: %w", err)
		}
		return domain.VoteOutcomeRemoved, -existing.Weight(), nil

	default:
		if err := s.votes.SetDirection(ctx, existing.ID, cast.IsUpvote); err != nil {
			return "", 0, fmt.Errorf("update vote: %w", err)
		}
		return domain.VoteOutcomeUpdated, 2 * cast.Weight(), nil
	}
}

// ListUserVotes returns the caller's vote direction (true = up) for each of
// the given definitions they have voted on. Anonymous callers get an empty map.
func (s *Service) ListUserVotes(ctx context.Context, definitionIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok || len(definitionIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	votes, err := s.votes.DirectionsByUser(ctx, userID, definitionIDs)
	if err != nil {
		return nil, fmt.Errorf("list user votes: %w", err)
	}
	return votes, nil
}
