// Package suggestion implements the single-field suggestion repository using PostgreSQL.
package suggestion

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const suggestionColumns = `id, entry_id, submitter_id, type, current_value, suggested_value, reason,
	status, review_note, reviewed_by, reviewed_at, created_at`

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new suggestion repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a PENDING suggestion.
func (r *Repo) Create(ctx context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	row := q.QueryRow(ctx,
		`INSERT INTO suggestions (id, entry_id, submitter_id, type, current_value, suggested_value, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+suggestionColumns,
		s.ID, s.EntryID, s.SubmitterID, string(s.Type), s.CurrentValue, s.SuggestedValue, s.Reason,
	)

	created, err := scanSuggestion(row)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", s.ID)
	}
	return created, nil
}

// GetForUpdate returns a suggestion and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	s, err := scanSuggestion(q.QueryRow(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id)
	}
	return s, nil
}

// List returns suggestions, optionally narrowed to one status, newest first.
func (r *Repo) List(ctx context.Context, status *domain.SuggestionStatus, limit, offset int) ([]domain.Suggestion, error) {
	b := postgres.Psql.Select(suggestionColumns).
		From("suggestions").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if status != nil {
		b = b.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suggestions query: %w", err)
	}

	var rows []suggestionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "suggestions", uuid.Nil)
	}

	out := make([]domain.Suggestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SetStatus records a review decision on the suggestion.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.SuggestionStatus, note *string, reviewerID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE suggestions
		    SET status = $1, review_note = $2, reviewed_by = $3, reviewed_at = $4
		  WHERE id = $5`, string(status), note, reviewerID, at, id)
	if err != nil {
		return postgres.MapError(err, "suggestion", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "suggestion", id)
	}
	return nil
}

// CountByStatus returns the number of suggestions per status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.SuggestionStatus]int, error) {
	counts, err := postgres.CountByStatus(ctx, postgres.QuerierFromCtx(ctx, r.db), "suggestions")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.SuggestionStatus]int, len(counts))
	for status, n := range counts {
		out[domain.SuggestionStatus(status)] = n
	}
	return out, nil
}

type suggestionRow struct {
	ID             uuid.UUID  `db:"id"`
	EntryID        uuid.UUID  `db:"entry_id"`
	SubmitterID    uuid.UUID  `db:"submitter_id"`
	Type           string     `db:"type"`
	CurrentValue   *string    `db:"current_value"`
	SuggestedValue string     `db:"suggested_value"`
	Reason         *string    `db:"reason"`
	Status         string     `db:"status"`
	ReviewNote     *string    `db:"review_note"`
	ReviewedBy     *uuid.UUID `db:"reviewed_by"`
	ReviewedAt     *time.Time `db:"reviewed_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

func scanSuggestion(row pgx.Row) (*domain.Suggestion, error) {
	var sr suggestionRow
	err := row.Scan(&sr.ID, &sr.EntryID, &sr.SubmitterID, &sr.Type, &sr.CurrentValue,
		&sr.SuggestedValue, &sr.Reason, &sr.Status, &sr.ReviewNote, &sr.ReviewedBy,
		&sr.ReviewedAt, &sr.CreatedAt)
	if err != nil {
		return nil, err
	}
	s := sr.toDomain()
	return &s, nil
}

func (sr suggestionRow) toDomain() domain.Suggestion {
	return domain.Suggestion{
		ID:             sr.ID,
		EntryID:        sr.EntryID,
		SubmitterID:    sr.SubmitterID,
		Type:           domain.SuggestionType(sr.Type),
		CurrentValue:   sr.CurrentValue,
		SuggestedValue: sr.SuggestedValue,
		Reason:         sr.Reason,
		Status:         domain.SuggestionStatus(sr.Status),
		ReviewNote:     sr.ReviewNote,
		ReviewedBy:     sr.ReviewedBy,
		ReviewedAt:     sr.ReviewedAt,
		CreatedAt:      sr.CreatedAt,
	}
}
