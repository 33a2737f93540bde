package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type submissionRepo interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, status *domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewerID uuid.UUID, at time.Time) error
	SetEntryID(ctx context.Context, id, entryID uuid.UUID) error
	AppendReview(ctx context.Context, rv *domain.EditReview) (*domain.EditReview, error)
	CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error)
}

type reportRepo interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, error)
	Resolve(ctx context.Context, id uuid.UUID, status domain.ReportStatus, resolution string, reviewerID uuid.UUID, at time.Time) error
	CountByStatus(ctx context.Context) (map[domain.ReportStatus]int, error)
}

type suggestionRepo interface {
	Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	List(ctx context.Context, status *domain.SuggestionStatus, limit, offset int) ([]domain.Suggestion, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.SuggestionStatus, note *string, reviewerID uuid.UUID, at time.Time) error
	CountByStatus(ctx context.Context) (map[domain.SuggestionStatus]int, error)
}

// contentRepo is the dictionary content store that approved changes mutate.
type contentRepo interface {
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.EntryPatch) (*domain.Entry, error)
	AppendNotes(ctx context.Context, id uuid.UUID, line string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	LinkRegion(ctx context.Context, entryID, regionID uuid.UUID) error

	CreateDefinition(ctx context.Context, d *domain.Definition) (*domain.Definition, error)
	TopDefinition(ctx context.Context, entryID uuid.UUID) (*domain.Definition, error)
	UpdateDefinitionText(ctx context.Context, id uuid.UUID, text string) error
	DeactivateDefinition(ctx context.Context, id uuid.UUID) error
	DeleteDefinition(ctx context.Context, id uuid.UUID) error

	CreateVariant(ctx context.Context, v *domain.Variant) (*domain.Variant, error)
	DeactivateVariant(ctx context.Context, id uuid.UUID) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type regionRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Region, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type metrics interface {
	ReviewDecided(kind, decision string)
}

type noopMetrics struct{}

func (noopMetrics) ReviewDecided(string, string) {}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the moderation review engine: contributor submissions,
// content reports and single-field suggestions, and the content mutations
// their approval triggers.
type Service struct {
	log         *slog.Logger
	submissions submissionRepo
	reports     reportRepo
	suggestions suggestionRepo
	content     contentRepo
	regions     regionRepo
	tx          txManager
	metrics     metrics
	now         func() time.Time
}

// NewService creates a new moderation service. m may be nil.
func NewService(
	logger *slog.Logger,
	submissions submissionRepo,
	reports reportRepo,
	suggestions suggestionRepo,
	content contentRepo,
	regions regionRepo,
	tx txManager,
	m metrics,
) *Service {
	if m == nil {
		m = noopMetrics{}
	}
	return &Service{
		log:         logger.With("service", "moderation"),
		submissions: submissions,
		reports:     reports,
		suggestions: suggestions,
		content:     content,
		regions:     regions,
		tx:          tx,
		metrics:     m,
		now:         time.Now,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireUser returns the caller's id or ErrUnauthorized.
func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// requireModerator returns the caller's id if they hold EDITOR or ADMIN.
func requireModerator(ctx context.Context) (uuid.UUID, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if !ctxutil.IsModeratorCtx(ctx) {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// clampLimit ensures a limit is within [1, maxListLimit], defaulting from 0.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
