// Package vote implements the Vote repository using PostgreSQL.
package vote

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const voteColumns = `id, user_id, definition_id, is_upvote, created_at, updated_at`

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new vote repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetForUpdate returns the user's vote on a definition and locks the row
// for the rest of the transaction. Returns domain.ErrNotFound if none exists.
func (r *Repo) GetForUpdate(ctx context.Context, userID, definitionID uuid.UUID) (*domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var v domain.Vote
	err := q.QueryRow(ctx,
		`SELECT `+voteColumns+` FROM votes
		  WHERE user_id = $1 AND definition_id = $2
		  FOR UPDATE`, userID, definitionID,
	).Scan(&v.ID, &v.UserID, &v.DefinitionID, &v.IsUpvote, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "vote on definition", definitionID)
	}
	return &v, nil
}

// Create inserts a vote. A concurrent vote on the same (user, definition)
// surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, v *domain.Vote) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := q.QueryRow(ctx,
		`INSERT INTO votes (id, user_id, definition_id, is_upvote)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		v.ID, v.UserID, v.DefinitionID, v.IsUpvote,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "vote", v.ID)
	}
	return nil
}

// SetDirection flips an existing vote.
func (r *Repo) SetDirection(ctx context.Context, id uuid.UUID, isUpvote bool) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE votes SET is_upvote = $1, updated_at = now() WHERE id = $2`, isUpvote, id)
	if err != nil {
		return postgres.MapError(err, "vote", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "vote", id)
	}
	return nil
}

// Delete removes a vote.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "vote", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "vote", id)
	}
	return nil
}

// DirectionsByUser returns the user's vote direction keyed by definition id,
// restricted to definitionIDs. Definitions without a vote are absent.
func (r *Repo) DirectionsByUser(ctx context.Context, userID uuid.UUID, definitionIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(definitionIDs))
	if len(definitionIDs) == 0 {
		return out, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx,
		`SELECT definition_id, is_upvote FROM votes
		  WHERE user_id = $1 AND definition_id = ANY($2)`, userID, definitionIDs)
	if err != nil {
		return nil, postgres.MapError(err, "votes of user", userID)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			defID uuid.UUID
			up    bool
		)
		if err := rows.Scan(&defID, &up); err != nil {
			return nil, postgres.MapError(err, "votes of user", userID)
		}
		out[defID] = up
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "votes of user", userID)
	}
	return out, nil
}

// SumForDefinition returns the signed sum of votes on a definition.
func (r *Repo) SumForDefinition(ctx context.Context, definitionID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var sum int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN is_upvote THEN 1 ELSE -1 END), 0)::int
		   FROM votes WHERE definition_id = $1`, definitionID,
	).Scan(&sum)
	if err != nil {
		return 0, postgres.MapError(err, "votes of definition", definitionID)
	}
	return sum, nil
}
