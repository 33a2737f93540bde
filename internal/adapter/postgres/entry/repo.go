// Package entry implements the dictionary content repository (entries,
// definitions, variants and their region/source links) using PostgreSQL.
package entry

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

const entryColumns = `id, headword, normalized, slug, part_of_speech, etymology, notes,
	usage_status, popularity, is_active, created_at, updated_at`

// Repo provides dictionary content persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new entry repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// Create inserts an entry. Normalized form and slug are derived from the headword.
func (r *Repo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	status := e.UsageStatus
	if status == "" {
		status = domain.UsageStatusCurrent
	}

	row := r.q(ctx).QueryRow(ctx,
		`INSERT INTO entries (id, headword, normalized, slug, part_of_speech, etymology, notes, usage_status, popularity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+entryColumns,
		e.ID, e.Headword, domain.NormalizeText(e.Headword), domain.Slugify(e.Headword),
		e.PartOfSpeech, e.Etymology, e.Notes, string(status), e.Popularity,
	)

	created, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}
	return created, nil
}

// GetByID returns an entry by primary key, active or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)

	e, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}
	return e, nil
}

// GetBySlug returns the most popular active entry with the given slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Entry, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries
		  WHERE slug = $1 AND is_active
		  ORDER BY popularity DESC, created_at ASC
		  LIMIT 1`, slug)

	e, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "entry "+slug, uuid.Nil)
	}
	return e, nil
}

// List returns active entries ordered per the filter. Limit defaults to 10, max 100.
func (r *Repo) List(ctx context.Context, df domain.EntryFilter) ([]domain.Entry, error) {
	f := filter{SortBy: df.SortBy, Limit: df.Limit, Offset: df.Offset}
	f.normalize()

	query, args, err := postgres.Psql.
		Select(entryColumns).
		From("entries").
		Where("is_active").
		OrderBy(f.orderBy()).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "entries", uuid.Nil)
	}
	return toDomainEntries(rows), nil
}

// ListByIDs returns active entries with the given ids, most popular first.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Entry, error) {
	if len(ids) == 0 {
		return []domain.Entry{}, nil
	}

	var rows []entryRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT `+entryColumns+` FROM entries
		  WHERE id = ANY($1) AND is_active
		  ORDER BY popularity DESC, id ASC`, ids)
	if err != nil {
		return nil, postgres.MapError(err, "entries", uuid.Nil)
	}
	return toDomainEntries(rows), nil
}

// Patch overwrites the non-nil fields of p. A new headword re-derives the
// normalized form and slug in the same statement.
func (r *Repo) Patch(ctx context.Context, id uuid.UUID, p domain.EntryPatch) (*domain.Entry, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	b := postgres.Psql.Update("entries").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + entryColumns)

	if p.Headword != nil {
		b = b.Set("headword", *p.Headword).
			Set("normalized", domain.NormalizeText(*p.Headword)).
			Set("slug", domain.Slugify(*p.Headword))
	}
	if p.PartOfSpeech != nil {
		b = b.Set("part_of_speech", *p.PartOfSpeech)
	}
	if p.Etymology != nil {
		b = b.Set("etymology", *p.Etymology)
	}
	if p.Notes != nil {
		b = b.Set("notes", *p.Notes)
	}
	if p.UsageStatus != nil {
		b = b.Set("usage_status", string(*p.UsageStatus))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build patch entry query: %w", err)
	}

	e, err := scanEntry(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}
	return e, nil
}

// AppendNotes adds line to the entry's notes, separated by a newline.
func (r *Repo) AppendNotes(ctx context.Context, id uuid.UUID, line string) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE entries
		    SET notes = CASE WHEN notes IS NULL OR notes = '' THEN $2 ELSE notes || E'\n' || $2 END,
		        updated_at = now()
		  WHERE id = $1`, id, line)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "entry", id)
	}
	return nil
}

// AddPopularity applies a relative delta to the entry's popularity.
func (r *Repo) AddPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE entries SET popularity = popularity + $1, updated_at = now() WHERE id = $2`,
		delta, id)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "entry", id)
	}
	return nil
}

// Deactivate soft-deletes an entry.
func (r *Repo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.deactivate(ctx, "entries", "entry", id)
}

// Delete removes an entry together with its definitions, variants and votes.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "entry", id)
	}
	return nil
}

// LinkRegion associates an entry with a region. Linking twice is a no-op.
func (r *Repo) LinkRegion(ctx context.Context, entryID, regionID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO entry_regions (entry_id, region_id) VALUES ($1, $2)
		 ON CONFLICT (entry_id, region_id) DO NOTHING`, entryID, regionID)
	if err != nil {
		return postgres.MapError(err, "entry_region", entryID)
	}
	return nil
}

func (r *Repo) deactivate(ctx context.Context, table, entity string, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE `+table+` SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type entryRow struct {
	ID           uuid.UUID `db:"id"`
	Headword     string    `db:"headword"`
	Normalized   string    `db:"normalized"`
	Slug         string    `db:"slug"`
	PartOfSpeech string    `db:"part_of_speech"`
	Etymology    *string   `db:"etymology"`
	Notes        *string   `db:"notes"`
	UsageStatus  string    `db:"usage_status"`
	Popularity   int       `db:"popularity"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var er entryRow
	err := row.Scan(&er.ID, &er.Headword, &er.Normalized, &er.Slug, &er.PartOfSpeech,
		&er.Etymology, &er.Notes, &er.UsageStatus, &er.Popularity, &er.IsActive,
		&er.CreatedAt, &er.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e := er.toDomain()
	return &e, nil
}

func (er entryRow) toDomain() domain.Entry {
	return domain.Entry{
		ID:           er.ID,
		Headword:     er.Headword,
		Normalized:   er.Normalized,
		Slug:         er.Slug,
		PartOfSpeech: er.PartOfSpeech,
		Etymology:    er.Etymology,
		Notes:        er.Notes,
		UsageStatus:  domain.UsageStatus(er.UsageStatus),
		Popularity:   er.Popularity,
		IsActive:     er.IsActive,
		CreatedAt:    er.CreatedAt,
		UpdatedAt:    er.UpdatedAt,
	}
}

func toDomainEntries(rows []entryRow) []domain.Entry {
	out := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
