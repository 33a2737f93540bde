package search

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"craic":  "%craic%",
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`back\s`: `%back\\s%`,
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRepo_SearchEntries_MatchesHeadwordAndDefinition(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	marker := uuid.New().String()[:8]
	byHeadword := testhelper.SeedEntry(t, pool, "fáilte"+marker, 3)
	testhelper.SeedDefinition(t, pool, byHeadword.ID, "welcome", 0)
	byDefinition := testhelper.SeedEntry(t, pool, "beannacht", 8)
	testhelper.SeedDefinition(t, pool, byDefinition.ID, "a blessing, "+marker, 0)
	inactive := testhelper.SeedEntry(t, pool, "fáilte"+marker+"x", 99)
	if _, err := pool.Exec(ctx, `UPDATE entries SET is_active = false WHERE id = $1`, inactive.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	hits, err := repo.SearchEntries(ctx, domain.SearchQuery{
		Normalized: domain.NormalizeText(marker),
		Raw:        marker,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("SearchEntries: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].EntryID != byDefinition.ID || hits[1].EntryID != byHeadword.ID {
		t.Errorf("hits not ordered by popularity: %+v", hits)
	}
	if hits[1].TopDefinition == nil || *hits[1].TopDefinition != "welcome" {
		t.Errorf("TopDefinition = %v, want welcome", hits[1].TopDefinition)
	}
}

func TestRepo_SearchVariants(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	marker := uuid.New().String()[:8]
	e := testhelper.SeedEntry(t, pool, "craic", 5)
	testhelper.SeedVariant(t, pool, e.ID, "crack"+marker)

	hits, err := repo.SearchVariants(ctx, domain.SearchQuery{Normalized: "crack" + marker, Raw: "crack" + marker, Limit: 10})
	if err != nil {
		t.Fatalf("SearchVariants: %v", err)
	}
	if len(hits) != 1 || hits[0].EntryID != e.ID {
		t.Fatalf("hits = %+v, want entry %s", hits, e.ID)
	}
}

func TestRepo_Similar_ExcludesSelf(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	src := testhelper.SeedEntry(t, pool, "sláinte mhaith", 0)

	hits, err := repo.Similar(ctx, src.ID, 10)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	for _, h := range hits {
		if h.EntryID == src.ID {
			t.Fatal("Similar returned the source entry")
		}
	}
}
