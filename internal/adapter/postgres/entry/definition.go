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

const definitionColumns = `id, entry_id, text, example, notes, popularity, is_active, created_at, updated_at`

// CreateDefinition inserts a definition under an existing entry.
func (r *Repo) CreateDefinition(ctx context.Context, d *domain.Definition) (*domain.Definition, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	row := r.q(ctx).QueryRow(ctx,
		`INSERT INTO definitions (id, entry_id, text, example, notes, popularity)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+definitionColumns,
		d.ID, d.EntryID, d.Text, d.Example, d.Notes, d.Popularity,
	)

	created, err := scanDefinition(row)
	if err != nil {
		return nil, postgres.MapError(err, "definition", d.ID)
	}
	return created, nil
}

// GetActiveDefinition returns a definition only if it and its entry are active.
func (r *Repo) GetActiveDefinition(ctx context.Context, id uuid.UUID) (*domain.Definition, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT d.id, d.entry_id, d.text, d.example, d.notes, d.popularity, d.is_active, d.created_at, d.updated_at
		   FROM definitions d
		   JOIN entries e ON e.id = d.entry_id
		  WHERE d.id = $1 AND d.is_active AND e.is_active`, id)

	d, err := scanDefinition(row)
	if err != nil {
		return nil, postgres.MapError(err, "definition", id)
	}
	return d, nil
}

// TopDefinition returns the entry's most popular active definition,
// oldest first among equals.
func (r *Repo) TopDefinition(ctx context.Context, entryID uuid.UUID) (*domain.Definition, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+definitionColumns+` FROM definitions
		  WHERE entry_id = $1 AND is_active
		  ORDER BY popularity DESC, created_at ASC
		  LIMIT 1`, entryID)

	d, err := scanDefinition(row)
	if err != nil {
		return nil, postgres.MapError(err, "definition of entry", entryID)
	}
	return d, nil
}

// ListDefinitions returns active definitions of the given entries, most popular first.
func (r *Repo) ListDefinitions(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Definition, error) {
	if len(entryIDs) == 0 {
		return []domain.Definition{}, nil
	}

	var rows []definitionRow
	err := pgxscan.Select(ctx, r.q(ctx), &rows,
		`SELECT `+definitionColumns+` FROM definitions
		  WHERE entry_id = ANY($1) AND is_active
		  ORDER BY popularity DESC, created_at ASC`, entryIDs)
	if err != nil {
		return nil, postgres.MapError(err, "definitions", uuid.Nil)
	}

	out := make([]domain.Definition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpdateDefinitionText replaces a definition's text.
func (r *Repo) UpdateDefinitionText(ctx context.Context, id uuid.UUID, text string) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE definitions SET text = $1, updated_at = now() WHERE id = $2`, text, id)
	if err != nil {
		return postgres.MapError(err, "definition", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "definition", id)
	}
	return nil
}

// AddDefinitionPopularity applies a relative delta to a definition's popularity.
func (r *Repo) AddDefinitionPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE definitions SET popularity = popularity + $1, updated_at = now() WHERE id = $2`,
		delta, id)
	if err != nil {
		return postgres.MapError(err, "definition", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "definition", id)
	}
	return nil
}

// DeactivateDefinition soft-deletes a definition.
func (r *Repo) DeactivateDefinition(ctx context.Context, id uuid.UUID) error {
	return r.deactivate(ctx, "definitions", "definition", id)
}

// DeleteDefinition removes a definition and its votes, and subtracts its
// popularity from the parent entry so the entry total stays consistent.
func (r *Repo) DeleteDefinition(ctx context.Context, id uuid.UUID) error {
	var (
		entryID    uuid.UUID
		popularity int
	)
	err := r.q(ctx).QueryRow(ctx,
		`DELETE FROM definitions WHERE id = $1 RETURNING entry_id, popularity`, id,
	).Scan(&entryID, &popularity)
	if err != nil {
		return postgres.MapError(err, "definition", id)
	}

	if popularity == 0 {
		return nil
	}
	return r.AddPopularity(ctx, entryID, -popularity)
}

type definitionRow struct {
	ID         uuid.UUID `db:"id"`
	EntryID    uuid.UUID `db:"entry_id"`
	Text       string    `db:"text"`
	Example    *string   `db:"example"`
	Notes      *string   `db:"notes"`
	Popularity int       `db:"popularity"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func scanDefinition(row pgx.Row) (*domain.Definition, error) {
	var dr definitionRow
	err := row.Scan(&dr.ID, &dr.EntryID, &dr.Text, &dr.Example, &dr.Notes,
		&dr.Popularity, &dr.IsActive, &dr.CreatedAt, &dr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d := dr.toDomain()
	return &d, nil
}

func (dr definitionRow) toDomain() domain.Definition {
	return domain.Definition{
		ID:         dr.ID,
		EntryID:    dr.EntryID,
		Text:       dr.Text,
		Example:    dr.Example,
		Notes:      dr.Notes,
		Popularity: dr.Popularity,
		IsActive:   dr.IsActive,
		CreatedAt:  dr.CreatedAt,
		UpdatedAt:  dr.UpdatedAt,
	}
}
