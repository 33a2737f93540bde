package entry

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const variantColumns = `id, entry_id, spelling, normalized, pronunciation, notes, is_active, created_at`

// CreateVariant inserts a variant. The normalized spelling is derived here.
func (r *Repo) CreateVariant(ctx context.Context, v *domain.Variant) (*domain.Variant, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	var vr variantRow
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO variants (id, entry_id, spelling, normalized, pronunciation, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+variantColumns,
		v.ID, v.EntryID, v.Spelling, domain.NormalizeText(v.Spelling), v.Pronunciation, v.Notes,
	).Scan(&vr.ID, &vr.EntryID, &vr.Spelling, &vr.Normalized, &vr.Pronunciation, &vr.Notes, &vr.IsActive, &vr.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "variant", v.ID)
	}

	created := vr.toDomain()
	return &created, nil
}

// ListVariants returns active variants of the given entries.
func (r *Repo) ListVariants(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Variant, error) {
	if len(entryIDs) == 0 {
		return []domain.Variant{}, nil
	}

	var rows []variantRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT `+variantColumns+` FROM variants
		  WHERE entry_id = ANY($1) AND is_active
		  ORDER BY created_at ASC`, entryIDs)
	if err != nil {
		return nil, postgres.MapError(err, "variants", uuid.Nil)
	}

	out := make([]domain.Variant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// DeactivateVariant soft-deletes a variant.
func (r *Repo) DeactivateVariant(ctx context.Context, id uuid.UUID) error {
	return r.deactivate(ctx, "variants", "variant", id)
}

// DeleteVariant removes a variant.
func (r *Repo) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "variant", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "variant", id)
	}
	return nil
}

// ListSources returns the sources cited by an entry.
func (r *Repo) ListSources(ctx context.Context, entryID uuid.UUID) ([]domain.Source, error) {
	var rows []sourceRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT s.id, s.title, s.author, s.publisher, s.year, s.isbn, s.url, es.page, s.created_at
		   FROM sources s
		   JOIN entry_sources es ON es.source_id = s.id
		  WHERE es.entry_id = $1
		  ORDER BY s.title`, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "sources of entry", entryID)
	}

	out := make([]domain.Source, 0, len(rows))
	for _, s := range rows {
		out = append(out, domain.Source{
			ID:        s.ID,
			Title:     s.Title,
			Author:    s.Author,
			Publisher: s.Publisher,
			Year:      s.Year,
			ISBN:      s.ISBN,
			URL:       s.URL,
			Page:      s.Page,
			CreatedAt: s.CreatedAt,
		})
	}
	return out, nil
}

type variantRow struct {
	ID            uuid.UUID `db:"id"`
	EntryID       uuid.UUID `db:"entry_id"`
	Spelling      string    `db:"spelling"`
	Normalized    string    `db:"normalized"`
	Pronunciation *string   `db:"pronunciation"`
	Notes         *string   `db:"notes"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
}

func (vr variantRow) toDomain() domain.Variant {
	return domain.Variant{
		ID:            vr.ID,
		EntryID:       vr.EntryID,
		Spelling:      vr.Spelling,
		Normalized:    vr.Normalized,
		Pronunciation: vr.Pronunciation,
		Notes:         vr.Notes,
		IsActive:      vr.IsActive,
		CreatedAt:     vr.CreatedAt,
	}
}

type sourceRow struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Author    *string   `db:"author"`
	Publisher *string   `db:"publisher"`
	Year      *int      `db:"year"`
	ISBN      *string   `db:"isbn"`
	URL       *string   `db:"url"`
	Page      *string   `db:"page"`
	CreatedAt time.Time `db:"created_at"`
}
