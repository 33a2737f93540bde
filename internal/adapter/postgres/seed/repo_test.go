package seed_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/seed"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestRepo_UpsertsAreIdempotent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := seed.New(pool)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	regions := []domain.Region{{Name: "Conamara", Slug: "conamara-" + suffix, County: ptr("Galway")}}
	sources := []domain.Source{{Title: "Foclóir " + suffix, Year: ptr(1977)}}
	entries := []domain.Entry{{Headword: "sláinte " + suffix, PartOfSpeech: "noun", Popularity: 95}}

	firstRegions, err := repo.UpsertRegions(ctx, regions)
	if err != nil {
		t.Fatalf("UpsertRegions: %v", err)
	}
	firstSources, err := repo.UpsertSources(ctx, sources)
	if err != nil {
		t.Fatalf("UpsertSources: %v", err)
	}
	firstEntries, err := repo.UpsertEntries(ctx, entries)
	if err != nil {
		t.Fatalf("UpsertEntries: %v", err)
	}

	// Changed attributes must not overwrite the stored rows.
	entries[0].Popularity = 1
	secondRegions, err := repo.UpsertRegions(ctx, regions)
	if err != nil {
		t.Fatalf("UpsertRegions again: %v", err)
	}
	secondSources, err := repo.UpsertSources(ctx, sources)
	if err != nil {
		t.Fatalf("UpsertSources again: %v", err)
	}
	secondEntries, err := repo.UpsertEntries(ctx, entries)
	if err != nil {
		t.Fatalf("UpsertEntries again: %v", err)
	}

	if firstRegions[regions[0].Slug] != secondRegions[regions[0].Slug] {
		t.Error("region id changed on re-upsert")
	}
	if firstSources[sources[0].Title] != secondSources[sources[0].Title] {
		t.Error("source id changed on re-upsert")
	}
	key := domain.EntryKey{Headword: entries[0].Headword, PartOfSpeech: "noun"}
	if firstEntries[key] == uuid.Nil || firstEntries[key] != secondEntries[key] {
		t.Errorf("entry ids = %s, %s", firstEntries[key], secondEntries[key])
	}

	var popularity int
	var slug string
	if err := pool.QueryRow(ctx, `SELECT popularity, slug FROM entries WHERE id = $1`, firstEntries[key]).Scan(&popularity, &slug); err != nil {
		t.Fatalf("select entry: %v", err)
	}
	if popularity != 95 {
		t.Errorf("popularity = %d, want 95", popularity)
	}
	if slug != domain.Slugify(entries[0].Headword) {
		t.Errorf("slug = %q", slug)
	}
}

func TestRepo_ChildRowsInsertedOnce(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := seed.New(pool)
	ctx := context.Background()

	e := testhelper.SeedEntry(t, pool, "craic", 0)
	r := testhelper.SeedRegion(t, pool, "Corca Dhuibhne")
	sources, err := repo.UpsertSources(ctx, []domain.Source{{Title: "Irish-English Dictionary " + uuid.NewString()[:8]}})
	if err != nil {
		t.Fatalf("UpsertSources: %v", err)
	}
	var sourceID uuid.UUID
	for _, id := range sources {
		sourceID = id
	}

	defs := []domain.Definition{{EntryID: e.ID, Text: "fun, good times", Example: ptr("Bhí craic ann!")}}
	variants := []domain.Variant{{EntryID: e.ID, Spelling: "Craic", Pronunciation: ptr("krak")}}
	regionLinks := []domain.EntryRegionLink{{EntryID: e.ID, RegionID: r.ID}}
	sourceLinks := []domain.EntrySourceLink{{EntryID: e.ID, SourceID: sourceID, Page: ptr("12")}}

	for round, want := range []int{1, 0} {
		n, err := repo.InsertDefinitions(ctx, defs)
		if err != nil || n != want {
			t.Errorf("round %d InsertDefinitions = (%d, %v), want %d", round, n, err, want)
		}
		n, err = repo.InsertVariants(ctx, variants)
		if err != nil || n != want {
			t.Errorf("round %d InsertVariants = (%d, %v), want %d", round, n, err, want)
		}
		n, err = repo.LinkRegions(ctx, regionLinks)
		if err != nil || n != want {
			t.Errorf("round %d LinkRegions = (%d, %v), want %d", round, n, err, want)
		}
		n, err = repo.LinkSources(ctx, sourceLinks)
		if err != nil || n != want {
			t.Errorf("round %d LinkSources = (%d, %v), want %d", round, n, err, want)
		}
	}

	var normalized string
	if err := pool.QueryRow(ctx, `SELECT normalized FROM variants WHERE entry_id = $1`, e.ID).Scan(&normalized); err != nil {
		t.Fatalf("select variant: %v", err)
	}
	if normalized != "craic" {
		t.Errorf("normalized = %q, want craic", normalized)
	}
}

func TestRepo_EmptyInput(t *testing.T) {
	t.Parallel()
	repo := seed.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	if n, err := repo.InsertDefinitions(ctx, nil); err != nil || n != 0 {
		t.Errorf("InsertDefinitions(nil) = (%d, %v)", n, err)
	}
	ids, err := repo.UpsertRegions(ctx, nil)
	if err != nil || len(ids) != 0 {
		t.Errorf("UpsertRegions(nil) = (%v, %v)", ids, err)
	}
}
