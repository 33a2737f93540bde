// Package region implements the dialect region repository using PostgreSQL.
package region

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// Repo provides region persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new region repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all regions by name with the number of active entries linked to each.
func (r *Repo) List(ctx context.Context) ([]domain.Region, error) {
	var rows []regionRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT g.id, g.name, g.slug, g.description, g.country, g.county, g.created_at,
		        count(e.id) AS entry_count
		   FROM regions g
		   LEFT JOIN entry_regions er ON er.region_id = g.id
		   LEFT JOIN entries e ON e.id = er.entry_id AND e.is_active
		  GROUP BY g.id
		  ORDER BY g.name ASC`)
	if err != nil {
		return nil, postgres.MapError(err, "regions", uuid.Nil)
	}
	return toDomainRegions(rows), nil
}

// GetBySlug returns a region and its active entry count.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Region, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row regionRow
	err := q.QueryRow(ctx,
		`SELECT g.id, g.name, g.slug, g.description, g.country, g.county, g.created_at,
		        (SELECT count(*) FROM entry_regions er JOIN entries e ON e.id = er.entry_id
		          WHERE er.region_id = g.id AND e.is_active) AS entry_count
		   FROM regions g
		  WHERE g.slug = $1`, slug,
	).Scan(&row.ID, &row.Name, &row.Slug, &row.Description, &row.Country, &row.County, &row.CreatedAt, &row.EntryCount)
	if err != nil {
		return nil, postgres.MapError(err, "region "+slug, uuid.Nil)
	}
	reg := row.toDomain()
	return &reg, nil
}

// ListByEntry returns the regions linked to an entry, by name.
func (r *Repo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Region, error) {
	var rows []regionRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT g.id, g.name, g.slug, g.description, g.country, g.county, g.created_at, 0 AS entry_count
		   FROM regions g
		   JOIN entry_regions er ON er.region_id = g.id
		  WHERE er.entry_id = $1
		  ORDER BY g.name ASC`, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "regions of entry", entryID)
	}
	return toDomainRegions(rows), nil
}

// ListEntryIDs returns the active entries linked to a region, most popular first.
func (r *Repo) ListEntryIDs(ctx context.Context, regionID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids,
		`SELECT e.id
		   FROM entries e
		   JOIN entry_regions er ON er.entry_id = e.id
		  WHERE er.region_id = $1 AND e.is_active
		  ORDER BY e.popularity DESC, e.id ASC
		  LIMIT $2`, regionID, limit)
	if err != nil {
		return nil, postgres.MapError(err, "entries of region", regionID)
	}
	return ids, nil
}

type regionRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	Country     string    `db:"country"`
	County      *string   `db:"county"`
	CreatedAt   time.Time `db:"created_at"`
	EntryCount  int       `db:"entry_count"`
}

func (rr regionRow) toDomain() domain.Region {
	return domain.Region{
		ID:          rr.ID,
		Name:        rr.Name,
		Slug:        rr.Slug,
		Description: rr.Description,
		Country:     rr.Country,
		County:      rr.County,
		EntryCount:  rr.EntryCount,
		CreatedAt:   rr.CreatedAt,
	}
}

func toDomainRegions(rows []regionRow) []domain.Region {
	out := make([]domain.Region, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
