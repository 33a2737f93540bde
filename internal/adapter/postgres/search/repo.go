// Package search implements the dictionary lookups behind the search gateway.
// Matching is delegated to PostgreSQL (ILIKE, full-text and pg_trgm).
package search

import (
	"context"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// SimilarityThreshold is the minimum pg_trgm similarity for Similar.
const SimilarityThreshold = 0.3

const hitColumns = `e.id AS entry_id, e.headword, e.slug, e.part_of_speech, e.popularity,
	(SELECT d.text FROM definitions d
	  WHERE d.entry_id = e.id AND d.is_active
	  ORDER BY d.popularity DESC, d.created_at ASC
	  LIMIT 1) AS top_definition`

// Repo runs search queries against PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new search repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// SearchEntries matches headwords and active definitions.
func (r *Repo) SearchEntries(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	var rows []hitRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT `+hitColumns+`
		   FROM entries e
		  WHERE e.is_active
		    AND (e.normalized ILIKE $1
		         OR e.headword ILIKE $2
		         OR EXISTS (SELECT 1 FROM definitions d
		                     WHERE d.entry_id = e.id AND d.is_active
		                       AND (to_tsvector('simple', d.text) @@ plainto_tsquery('simple', $3)
		                            OR d.text ILIKE $2)))
		  ORDER BY e.popularity DESC, e.id ASC
		  LIMIT $4 OFFSET $5`,
		likePattern(q.Normalized), likePattern(q.Raw), q.Raw, q.Limit, q.Offset)
	if err != nil {
		return nil, postgres.MapError(err, "search entries", uuid.Nil)
	}
	return toDomainHits(rows), nil
}

// SearchVariants matches active variant spellings and returns their entries.
func (r *Repo) SearchVariants(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	var rows []hitRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT `+hitColumns+`
		   FROM entries e
		  WHERE e.is_active
		    AND EXISTS (SELECT 1 FROM variants v
		                 WHERE v.entry_id = e.id AND v.is_active AND v.normalized ILIKE $1)
		  ORDER BY e.popularity DESC, e.id ASC
		  LIMIT $2 OFFSET $3`,
		likePattern(q.Normalized), q.Limit, q.Offset)
	if err != nil {
		return nil, postgres.MapError(err, "search variants", uuid.Nil)
	}
	return toDomainHits(rows), nil
}

// Similar returns active entries whose normalized headword is close to the
// given entry's, excluding the entry itself.
func (r *Repo) Similar(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.SearchHit, error) {
	var rows []hitRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`SELECT `+hitColumns+`
		   FROM entries e, entries src
		  WHERE src.id = $1
		    AND e.id <> src.id
		    AND e.is_active
		    AND similarity(e.normalized, src.normalized) > $2
		  ORDER BY similarity(e.normalized, src.normalized) DESC, e.popularity DESC, e.id ASC
		  LIMIT $3`,
		entryID, SimilarityThreshold, limit)
	if err != nil {
		return nil, postgres.MapError(err, "similar entries", entryID)
	}
	return toDomainHits(rows), nil
}

// likePattern wraps s for a substring ILIKE, escaping LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type hitRow struct {
	EntryID       uuid.UUID `db:"entry_id"`
	Headword      string    `db:"headword"`
	Slug          string    `db:"slug"`
	PartOfSpeech  string    `db:"part_of_speech"`
	Popularity    int       `db:"popularity"`
	TopDefinition *string   `db:"top_definition"`
}

func toDomainHits(rows []hitRow) []domain.SearchHit {
	out := make([]domain.SearchHit, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SearchHit{
			EntryID:       row.EntryID,
			Headword:      row.Headword,
			Slug:          row.Slug,
			PartOfSpeech:  row.PartOfSpeech,
			Popularity:    row.Popularity,
			TopDefinition: row.TopDefinition,
		})
	}
	return out
}
