package vote

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type voteRepo interface {
	GetForUpdate(ctx context.Context, userID, definitionID uuid.UUID) (*domain.Vote, error)
	Create(ctx context.Context, v *domain.Vote) error
	SetDirection(ctx context.Context, id uuid.UUID, isUpvote bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DirectionsByUser(ctx context.Context, userID uuid.UUID, definitionIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type contentRepo interface {
	GetActiveDefinition(ctx context.Context, id uuid.UUID) (*domain.Definition, error)
	AddDefinitionPopularity(ctx context.Context, id uuid.UUID, delta int) error
	AddPopularity(ctx context.Context, entryID uuid.UUID, delta int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type metrics interface {
	VoteCast(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) VoteCast(string) {}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the popularity aggregator: it records votes and keeps
// definition and entry popularity equal to the sum of their votes.
type Service struct {
	log     *slog.Logger
	votes   voteRepo
	content contentRepo
	tx      txManager
	metrics metrics
}

// NewService creates a new vote service.
// m may be nil.
func NewService(logger *slog.Logger, votes voteRepo, content contentRepo, tx txManager, m metrics) *Service {
	if m == nil {
		m = noopMetrics{}
	}
	return &Service{
		log:     logger.With("service", "vote"),
		votes:   votes,
		content: content,
		tx:      tx,
		metrics: m,
	}
}

// CastVoteInput holds the parameters for CastVote.
type CastVoteInput struct {
	DefinitionID uuid.UUID
	IsUpvote     bool
}

// Validate checks all fields and collects all errors.
func (i CastVoteInput) Validate() error {
	var errs []domain.FieldError
	if i.DefinitionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "definitionId", Message: "required"})
	}
	return domain.CollectValidation(errs)
}
