// Package seed implements idempotent bulk upserts of reference dictionary
// content using pgx.Batch.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// Repo writes seed data. Every method is safe to re-run.
type Repo struct {
	db postgres.Querier
}

// New creates a new seed repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Keyed upserts: existing rows are kept as they are and their ids returned.
// ---------------------------------------------------------------------------

// UpsertRegions inserts regions missing by slug and returns slug → id.
func (r *Repo) UpsertRegions(ctx context.Context, regions []domain.Region) (map[string]uuid.UUID, error) {
	batch := &pgx.Batch{}
	for _, rg := range regions {
		country := rg.Country
		if country == "" {
			country = "Ireland"
		}
		batch.Queue(
			`INSERT INTO regions (name, slug, description, country, county)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
			 RETURNING id`,
			rg.Name, rg.Slug, rg.Description, country, rg.County,
		)
	}

	ids, err := r.sendBatchIDs(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("upsert regions: %w", err)
	}
	out := make(map[string]uuid.UUID, len(regions))
	for i, rg := range regions {
		out[rg.Slug] = ids[i]
	}
	return out, nil
}

// UpsertSources inserts sources missing by title and returns title → id.
func (r *Repo) UpsertSources(ctx context.Context, sources []domain.Source) (map[string]uuid.UUID, error) {
	batch := &pgx.Batch{}
	for _, s := range sources {
		batch.Queue(
			`INSERT INTO sources (title, author, publisher, year, isbn, url)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
			 RETURNING id`,
			s.Title, s.Author, s.Publisher, s.Year, s.ISBN, s.URL,
		)
	}

	ids, err := r.sendBatchIDs(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("upsert sources: %w", err)
	}
	out := make(map[string]uuid.UUID, len(sources))
	for i, s := range sources {
		out[s.Title] = ids[i]
	}
	return out, nil
}

// UpsertEntries inserts entries missing by (headword, part_of_speech) and
// returns their ids. Normalized form and slug are derived from the headword.
func (r *Repo) UpsertEntries(ctx context.Context, entries []domain.Entry) (map[domain.EntryKey]uuid.UUID, error) {
	batch := &pgx.Batch{}
	for _, e := range entries {
		status := e.UsageStatus
		if status == "" {
			status = domain.UsageStatusCurrent
		}
		batch.Queue(
			`INSERT INTO entries (headword, normalized, slug, part_of_speech, etymology, notes, usage_status, popularity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (headword, part_of_speech) DO UPDATE SET headword = EXCLUDED.headword
			 RETURNING id`,
			e.Headword, domain.NormalizeText(e.Headword), domain.Slugify(e.Headword),
			e.PartOfSpeech, e.Etymology, e.Notes, string(status), e.Popularity,
		)
	}

	ids, err := r.sendBatchIDs(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("upsert entries: %w", err)
	}
	out := make(map[domain.EntryKey]uuid.UUID, len(entries))
	for i, e := range entries {
		out[domain.EntryKey{Headword: e.Headword, PartOfSpeech: e.PartOfSpeech}] = ids[i]
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Child rows: inserted only when absent. Return the number actually inserted.
// ---------------------------------------------------------------------------

// InsertDefinitions adds definitions whose text is not yet present on the entry.
func (r *Repo) InsertDefinitions(ctx context.Context, defs []domain.Definition) (int, error) {
	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(
			`INSERT INTO definitions (entry_id, text, example, notes, popularity)
			 SELECT $1::uuid, $2::text, $3::text, $4::text, $5::int
			  WHERE NOT EXISTS (SELECT 1 FROM definitions WHERE entry_id = $1::uuid AND text = $2::text)`,
			d.EntryID, d.Text, d.Example, d.Notes, d.Popularity,
		)
	}
	return r.sendBatchExec(ctx, batch)
}

// InsertVariants adds variants whose spelling is not yet present on the entry.
func (r *Repo) InsertVariants(ctx context.Context, variants []domain.Variant) (int, error) {
	batch := &pgx.Batch{}
	for _, v := range variants {
		batch.Queue(
			`INSERT INTO variants (entry_id, spelling, normalized, pronunciation, notes)
			 SELECT $1::uuid, $2::text, $3::text, $4::text, $5::text
			  WHERE NOT EXISTS (SELECT 1 FROM variants WHERE entry_id = $1::uuid AND spelling = $2::text)`,
			v.EntryID, v.Spelling, domain.NormalizeText(v.Spelling), v.Pronunciation, v.Notes,
		)
	}
	return r.sendBatchExec(ctx, batch)
}

// LinkRegions associates entries with regions.
func (r *Repo) LinkRegions(ctx context.Context, links []domain.EntryRegionLink) (int, error) {
	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(
			`INSERT INTO entry_regions (entry_id, region_id) VALUES ($1, $2)
			 ON CONFLICT (entry_id, region_id) DO NOTHING`,
			l.EntryID, l.RegionID,
		)
	}
	return r.sendBatchExec(ctx, batch)
}

// LinkSources cites sources on entries.
func (r *Repo) LinkSources(ctx context.Context, links []domain.EntrySourceLink) (int, error) {
	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(
			`INSERT INTO entry_sources (entry_id, source_id, page) VALUES ($1, $2, $3)
			 ON CONFLICT (entry_id, source_id) DO NOTHING`,
			l.EntryID, l.SourceID, l.Page,
		)
	}
	return r.sendBatchExec(ctx, batch)
}

// ---------------------------------------------------------------------------
// Batch helpers
// ---------------------------------------------------------------------------

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}
	results := r.q(ctx).SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "seed", uuid.Nil)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *Repo) sendBatchIDs(ctx context.Context, batch *pgx.Batch) ([]uuid.UUID, error) {
	if batch.Len() == 0 {
		return nil, nil
	}
	results := r.q(ctx).SendBatch(ctx, batch)
	defer results.Close()

	ids := make([]uuid.UUID, 0, batch.Len())
	for range batch.Len() {
		var id uuid.UUID
		if err := results.QueryRow().Scan(&id); err != nil {
			return nil, postgres.MapError(err, "seed", uuid.Nil)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
