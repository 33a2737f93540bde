// Package submission implements the Submission and EditReview repository using PostgreSQL.
package submission

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

const submissionColumns = `id, submitter_id, type, status, payload, entry_id, reviewed_at, reviewed_by, created_at, updated_at`

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new submission repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Submissions
// ---------------------------------------------------------------------------

// Create inserts a PENDING submission.
func (r *Repo) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	payload, err := domain.EncodePayload(s.Payload)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx,
		`INSERT INTO submissions (id, submitter_id, type, payload, entry_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+submissionColumns,
		s.ID, s.SubmitterID, string(s.Payload.Type()), payload, domain.PayloadEntryID(s.Payload),
	)

	created, err := scanSubmission(row)
	if err != nil {
		return nil, postgres.MapError(err, "submission", s.ID)
	}
	return created, nil
}

// GetByID returns a submission with its review history.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	s, err := scanSubmission(q.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}

	reviews, err := r.ListReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Reviews = reviews
	return s, nil
}

// GetForUpdate returns a submission and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	s, err := scanSubmission(q.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// List returns submissions, optionally narrowed to one status, newest first.
func (r *Repo) List(ctx context.Context, status *domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	b := postgres.Psql.Select(submissionColumns).
		From("submissions").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if status != nil {
		b = b.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list submissions query: %w", err)
	}

	var rows []submissionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "submissions", uuid.Nil)
	}

	out := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// SetStatus records a review decision on the submission row.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewerID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE submissions
		    SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = $3
		  WHERE id = $4`, string(status), reviewerID, at, id)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "submission", id)
	}
	return nil
}

// SetEntryID links a submission to the entry its approval created.
func (r *Repo) SetEntryID(ctx context.Context, id, entryID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE submissions SET entry_id = $1 WHERE id = $2`, entryID, id); err != nil {
		return postgres.MapError(err, "submission", id)
	}
	return nil
}

// CountByStatus returns the number of submissions per status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	counts, err := postgres.CountByStatus(ctx, postgres.QuerierFromCtx(ctx, r.db), "submissions")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.SubmissionStatus]int, len(counts))
	for status, n := range counts {
		out[domain.SubmissionStatus(status)] = n
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Edit reviews (append-only)
// ---------------------------------------------------------------------------

// AppendReview inserts an immutable review record.
func (r *Repo) AppendReview(ctx context.Context, rv *domain.EditReview) (*domain.EditReview, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	out := *rv
	err := q.QueryRow(ctx,
		`INSERT INTO edit_reviews (id, submission_id, reviewer_id, decision, comments)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		rv.ID, rv.SubmissionID, rv.ReviewerID, string(rv.Decision), rv.Comments,
	).Scan(&out.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "edit_review", rv.ID)
	}
	return &out, nil
}

// ListReviews returns a submission's reviews, oldest first.
func (r *Repo) ListReviews(ctx context.Context, submissionID uuid.UUID) ([]domain.EditReview, error) {
	var rows []reviewRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT id, submission_id, reviewer_id, decision, comments, created_at
		   FROM edit_reviews
		  WHERE submission_id = $1
		  ORDER BY created_at ASC, id ASC`, submissionID)
	if err != nil {
		return nil, postgres.MapError(err, "edit_reviews of submission", submissionID)
	}

	out := make([]domain.EditReview, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.EditReview{
			ID:           row.ID,
			SubmissionID: row.SubmissionID,
			ReviewerID:   row.ReviewerID,
			Decision:     domain.SubmissionStatus(row.Decision),
			Comments:     row.Comments,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type submissionRow struct {
	ID          uuid.UUID  `db:"id"`
	SubmitterID uuid.UUID  `db:"submitter_id"`
	Type        string     `db:"type"`
	Status      string     `db:"status"`
	Payload     []byte     `db:"payload"`
	EntryID     *uuid.UUID `db:"entry_id"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	ReviewedBy  *uuid.UUID `db:"reviewed_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type reviewRow struct {
	ID           uuid.UUID `db:"id"`
	SubmissionID uuid.UUID `db:"submission_id"`
	ReviewerID   uuid.UUID `db:"reviewer_id"`
	Decision     string    `db:"decision"`
	Comments     *string   `db:"comments"`
	CreatedAt    time.Time `db:"created_at"`
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var sr submissionRow
	err := row.Scan(&sr.ID, &sr.SubmitterID, &sr.Type, &sr.Status, &sr.Payload, &sr.EntryID,
		&sr.ReviewedAt, &sr.ReviewedBy, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sr.toDomain()
}

func (sr submissionRow) toDomain() (*domain.Submission, error) {
	t := domain.SubmissionType(sr.Type)
	payload, err := domain.DecodePayload(t, sr.Payload)
	if err != nil {
		return nil, fmt.Errorf("submission %s: %w", sr.ID, err)
	}
	return &domain.Submission{
		ID:          sr.ID,
		SubmitterID: sr.SubmitterID,
		Type:        t,
		Status:      domain.SubmissionStatus(sr.Status),
		Payload:     payload,
		EntryID:     sr.EntryID,
		ReviewedAt:  sr.ReviewedAt,
		ReviewedBy:  sr.ReviewedBy,
		CreatedAt:   sr.CreatedAt,
		UpdatedAt:   sr.UpdatedAt,
	}, nil
}
