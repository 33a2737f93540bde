// Package seeder loads reference dictionary content into the database.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// BulkRepo is the batch repository contract consumed by the pipeline.
// Implemented by seed.Repo.
type BulkRepo interface {
	UpsertRegions(ctx context.Context, regions []domain.Region) (map[string]uuid.UUID, error)
	UpsertSources(ctx context.Context, sources []domain.Source) (map[string]uuid.UUID, error)
	UpsertEntries(ctx context.Context, entries []domain.Entry) (map[domain.EntryKey]uuid.UUID, error)

	InsertDefinitions(ctx context.Context, defs []domain.Definition) (int, error)
	InsertVariants(ctx context.Context, variants []domain.Variant) (int, error)
	LinkRegions(ctx context.Context, links []domain.EntryRegionLink) (int, error)
	LinkSources(ctx context.Context, links []domain.EntrySourceLink) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Phase names in execution order.
const (
	PhaseRegions      = "regions"
	PhaseSources      = "sources"
	PhaseEntries      = "entries"
	PhaseDefinitions  = "definitions"
	PhaseVariants     = "variants"
	PhaseEntryRegions = "entry_regions"
	PhaseEntrySources = "entry_sources"
)

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Rows     int
	Inserted int
	Duration time.Duration
}

// Pipeline writes a Dataset parent-first inside one transaction.
type Pipeline struct {
	log     *slog.Logger
	repo    BulkRepo
	tx      txManager
	cfg     Config
	results map[string]PhaseResult
	order   []string
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo BulkRepo, tx txManager, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		repo:    repo,
		tx:      tx,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Phases returns the phases that ran, in order.
func (p *Pipeline) Phases() []string {
	return p.order
}

// Run loads ds. Any failure rolls the whole run back. With DryRun set
// nothing is written and only row counts are logged.
func (p *Pipeline) Run(ctx context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if p.cfg.DryRun {
		p.log.Info("dry run",
			slog.Int("regions", len(ds.Regions)),
			slog.Int("sources", len(ds.Sources)),
			slog.Int("entries", len(ds.Entries)),
		)
		return nil
	}

	start := time.Now()
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		return p.run(ctx, ds)
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	p.log.Info("seed completed",
		slog.Int("phases_run", len(p.order)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (p *Pipeline) run(ctx context.Context, ds *Dataset) error {
	var (
		regionIDs map[string]uuid.UUID
		sourceIDs map[string]uuid.UUID
		entryIDs  map[domain.EntryKey]uuid.UUID
	)

	err := p.phase(PhaseRegions, len(ds.Regions), func() (int, error) {
		var err error
		regionIDs, err = p.repo.UpsertRegions(ctx, toDomainRegions(ds.Regions))
		return len(regionIDs), err
	})
	if err != nil {
		return err
	}

	err = p.phase(PhaseSources, len(ds.Sources), func() (int, error) {
		var err error
		sourceIDs, err = p.repo.UpsertSources(ctx, toDomainSources(ds.Sources))
		return len(sourceIDs), err
	})
	if err != nil {
		return err
	}

	err = p.phase(PhaseEntries, len(ds.Entries), func() (int, error) {
		entryIDs = make(map[domain.EntryKey]uuid.UUID, len(ds.Entries))
		return batchProcess(toDomainEntries(ds.Entries), p.cfg.BatchSize, func(batch []domain.Entry) (int, error) {
			ids, err := p.repo.UpsertEntries(ctx, batch)
			for k, id := range ids {
				entryIDs[k] = id
			}
			return len(ids), err
		})
	})
	if err != nil {
		return err
	}

	children := buildChildren(ds, regionIDs, sourceIDs, entryIDs)

	steps := []struct {
		name string
		rows int
		fn   func() (int, error)
	}{
		{PhaseDefinitions, len(children.definitions), func() (int, error) {
			return batchProcess(children.definitions, p.cfg.BatchSize, func(b []domain.Definition) (int, error) {
				return p.repo.InsertDefinitions(ctx, b)
			})
		}},
		{PhaseVariants, len(children.variants), func() (int, error) {
			return batchProcess(children.variants, p.cfg.BatchSize, func(b []domain.Variant) (int, error) {
				return p.repo.InsertVariants(ctx, b)
			})
		}},
		{PhaseEntryRegions, len(children.regionLinks), func() (int, error) {
			return batchProcess(children.regionLinks, p.cfg.BatchSize, func(b []domain.EntryRegionLink) (int, error) {
				return p.repo.LinkRegions(ctx, b)
			})
		}},
		{PhaseEntrySources, len(children.sourceLinks), func() (int, error) {
			return batchProcess(children.sourceLinks, p.cfg.BatchSize, func(b []domain.EntrySourceLink) (int, error) {
				return p.repo.LinkSources(ctx, b)
			})
		}},
	}
	for _, s := range steps {
		if err := p.phase(s.name, s.rows, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) phase(name string, rows int, fn func() (int, error)) error {
	start := time.Now()
	n, err := fn()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	res := PhaseResult{Rows: rows, Inserted: n, Duration: time.Since(start)}
	p.results[name] = res
	p.order = append(p.order, name)
	p.log.Info("phase completed",
		slog.String("phase", name),
		slog.Int("rows", res.Rows),
		slog.Int("affected", res.Inserted),
		slog.Duration("duration", res.Duration),
	)
	return nil
}

type childRows struct {
	definitions []domain.Definition
	variants    []domain.Variant
	regionLinks []domain.EntryRegionLink
	sourceLinks []domain.EntrySourceLink
}

func buildChildren(ds *Dataset, regionIDs, sourceIDs map[string]uuid.UUID, entryIDs map[domain.EntryKey]uuid.UUID) childRows {
	var c childRows
	for _, e := range ds.Entries {
		entryID := entryIDs[domain.EntryKey{Headword: e.Headword, PartOfSpeech: e.PartOfSpeech}]
		for _, d := range e.Definitions {
			c.definitions = append(c.definitions, domain.Definition{
				EntryID: entryID, Text: d.Text, Example: d.Example, Notes: d.Notes, Popularity: d.Popularity,
			})
		}
		for _, v := range e.Variants {
			c.variants = append(c.variants, domain.Variant{
				EntryID: entryID, Spelling: v.Spelling, Pronunciation: v.Pronunciation, Notes: v.Notes,
			})
		}
		for _, slug := range e.Regions {
			c.regionLinks = append(c.regionLinks, domain.EntryRegionLink{EntryID: entryID, RegionID: regionIDs[slug]})
		}
		for _, ref := range e.Sources {
			c.sourceLinks = append(c.sourceLinks, domain.EntrySourceLink{EntryID: entryID, SourceID: sourceIDs[ref.Title], Page: ref.Page})
		}
	}
	return c
}

func toDomainRegions(in []RegionSeed) []domain.Region {
	out := make([]domain.Region, 0, len(in))
	for _, r := range in {
		out = append(out, domain.Region{
			Name: r.Name, Slug: r.Slug, Description: r.Description, Country: r.Country, County: r.County,
		})
	}
	return out
}

func toDomainSources(in []SourceSeed) []domain.Source {
	out := make([]domain.Source, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Source{
			Title: s.Title, Author: s.Author, Publisher: s.Publisher, Year: s.Year, ISBN: s.ISBN, URL: s.URL,
		})
	}
	return out
}

// toDomainEntries sets each entry's popularity to the sum of its seeded
// definitions so the stored totals agree.
func toDomainEntries(in []EntrySeed) []domain.Entry {
	out := make([]domain.Entry, 0, len(in))
	for _, e := range in {
		popularity := 0
		for _, d := range e.Definitions {
			popularity += d.Popularity
		}
		out = append(out, domain.Entry{
			Headword:     e.Headword,
			PartOfSpeech: e.PartOfSpeech,
			Etymology:    e.Etymology,
			Notes:        e.Notes,
			UsageStatus:  domain.UsageStatus(e.UsageStatus),
			Popularity:   popularity,
		})
	}
	return out
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
