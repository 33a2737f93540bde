package region_test

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/region"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

func TestRepo_CountsOnlyActiveEntries(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := region.New(pool)
	entries := entry.New(pool)
	ctx := context.Background()

	reg := testhelper.SeedRegion(t, pool, "Conamara")
	popular := testhelper.SeedEntry(t, pool, "bóthar", 9)
	quiet := testhelper.SeedEntry(t, pool, "bóithrín", 1)
	hidden := testhelper.SeedEntry(t, pool, "cosán", 5)
	for _, e := range []domain.Entry{popular, quiet, hidden} {
		if err := entries.LinkRegion(ctx, e.ID, reg.ID); err != nil {
			t.Fatalf("LinkRegion: %v", err)
		}
	}
	if err := entries.Deactivate(ctx, hidden.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	got, err := repo.GetBySlug(ctx, reg.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.EntryCount != 2 {
		t.Errorf("EntryCount = %d, want 2", got.EntryCount)
	}

	ids, err := repo.ListEntryIDs(ctx, reg.ID, 10)
	if err != nil {
		t.Fatalf("ListEntryIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != popular.ID || ids[1] != quiet.ID {
		t.Errorf("ListEntryIDs = %v, want [%s %s]", ids, popular.ID, quiet.ID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, r := range list {
		if r.ID == reg.ID {
			found = true
			if r.EntryCount != 2 {
				t.Errorf("List EntryCount = %d, want 2", r.EntryCount)
			}
		}
	}
	if !found {
		t.Error("region missing from List")
	}

	linked, err := repo.ListByEntry(ctx, popular.ID)
	if err != nil {
		t.Fatalf("ListByEntry: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != reg.ID {
		t.Errorf("ListByEntry = %+v", linked)
	}
}

func TestRepo_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)

	if _, err := region.New(pool).GetBySlug(context.Background(), "no-such-region"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
