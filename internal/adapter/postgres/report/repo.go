// Package report implements the content report repository using PostgreSQL.
package report

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

const reportColumns = `id, reporter_id, reason, description, status, entry_id, definition_id, variant_id,
	resolution, reviewed_by, reviewed_at, created_at`

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new report repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a PENDING report.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}

	row := q.QueryRow(ctx,
		`INSERT INTO reports (id, reporter_id, reason, description, entry_id, definition_id, variant_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+reportColumns,
		rep.ID, rep.ReporterID, string(rep.Reason), rep.Description,
		rep.EntryID, rep.DefinitionID, rep.VariantID,
	)

	created, err := scanReport(row)
	if err != nil {
		return nil, postgres.MapError(err, "report", rep.ID)
	}
	return created, nil
}

// GetForUpdate returns a report and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rep, err := scanReport(q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, postgres.MapError(err, "report", id)
	}
	return rep, nil
}

// List returns reports, optionally narrowed to one status, newest first.
func (r *Repo) List(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, error) {
	b := postgres.Psql.Select(reportColumns).
		From("reports").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if status != nil {
		b = b.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reports query: %w", err)
	}

	var rows []reportRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "reports", uuid.Nil)
	}

	out := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Resolve records a moderator's outcome on a report.
func (r *Repo) Resolve(ctx context.Context, id uuid.UUID, status domain.ReportStatus, resolution string, reviewerID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE reports
		    SET status = $1, resolution = $2, reviewed_by = $3, reviewed_at = $4
		  WHERE id = $5`, string(status), resolution, reviewerID, at, id)
	if err != nil {
		return postgres.MapError(err, "report", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "report", id)
	}
	return nil
}

// CountByStatus returns the number of reports per status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.ReportStatus]int, error) {
	counts, err := postgres.CountByStatus(ctx, postgres.QuerierFromCtx(ctx, r.db), "reports")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ReportStatus]int, len(counts))
	for status, n := range counts {
		out[domain.ReportStatus(status)] = n
	}
	return out, nil
}

type reportRow struct {
	ID           uuid.UUID  `db:"id"`
	ReporterID   uuid.UUID  `db:"reporter_id"`
	Reason       string     `db:"reason"`
	Description  string     `db:"description"`
	Status       string     `db:"status"`
	EntryID      *uuid.UUID `db:"entry_id"`
	DefinitionID *uuid.UUID `db:"definition_id"`
	VariantID    *uuid.UUID `db:"variant_id"`
	Resolution   *string    `db:"resolution"`
	ReviewedBy   *uuid.UUID `db:"reviewed_by"`
	ReviewedAt   *time.Time `db:"reviewed_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rr reportRow
	err := row.Scan(&rr.ID, &rr.ReporterID, &rr.Reason, &rr.Description, &rr.Status,
		&rr.EntryID, &rr.DefinitionID, &rr.VariantID,
		&rr.Resolution, &rr.ReviewedBy, &rr.ReviewedAt, &rr.CreatedAt)
	if err != nil {
		return nil, err
	}
	rep := rr.toDomain()
	return &rep, nil
}

func (rr reportRow) toDomain() domain.Report {
	return domain.Report{
		ID:           rr.ID,
		ReporterID:   rr.ReporterID,
		Reason:       domain.ReportReason(rr.Reason),
		Description:  rr.Description,
		Status:       domain.ReportStatus(rr.Status),
		EntryID:      rr.EntryID,
		DefinitionID: rr.DefinitionID,
		VariantID:    rr.VariantID,
		Resolution:   rr.Resolution,
		ReviewedBy:   rr.ReviewedBy,
		ReviewedAt:   rr.ReviewedAt,
		CreatedAt:    rr.CreatedAt,
	}
}
