package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedEntry creates an active entry whose headword carries a unique suffix,
// so parallel tests never collide on (headword, part_of_speech).
func SeedEntry(t *testing.T, pool *pgxpool.Pool, headword string, popularity int) domain.Entry {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	word := headword + " " + uniqueSuffix()
	entry := domain.Entry{
		ID:           uuid.New(),
		Headword:     word,
		Normalized:   domain.NormalizeText(word),
		Slug:         domain.Slugify(word),
		PartOfSpeech: "noun",
		UsageStatus:  domain.UsageStatusCurrent,
		Popularity:   popularity,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO entries (id, headword, normalized, slug, part_of_speech, usage_status, popularity, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.Headword, entry.Normalized, entry.Slug, entry.PartOfSpeech,
		string(entry.UsageStatus), entry.Popularity, entry.IsActive, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}

	return entry
}

// SeedDefinition creates an active definition under entryID.
// It does not touch the entry's popularity.
func SeedDefinition(t *testing.T, pool *pgxpool.Pool, entryID uuid.UUID, text string, popularity int) domain.Definition {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	def := domain.Definition{
		ID:         uuid.New(),
		EntryID:    entryID,
		Text:       text,
		Popularity: popularity,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO definitions (id, entry_id, text, popularity, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		def.ID, def.EntryID, def.Text, def.Popularity, def.IsActive, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDefinition: %v", err)
	}

	return def
}

// SeedVariant creates an active variant spelling under entryID.
func SeedVariant(t *testing.T, pool *pgxpool.Pool, entryID uuid.UUID, spelling string) domain.Variant {
	t.Helper()

	v := domain.Variant{
		ID:         uuid.New(),
		EntryID:    entryID,
		Spelling:   spelling,
		Normalized: domain.NormalizeText(spelling),
		IsActive:   true,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO variants (id, entry_id, spelling, normalized, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.EntryID, v.Spelling, v.Normalized, v.IsActive, v.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVariant: %v", err)
	}

	return v
}

// SeedRegion creates a region with a unique slug.
func SeedRegion(t *testing.T, pool *pgxpool.Pool, name string) domain.Region {
	t.Helper()

	r := domain.Region{
		ID:        uuid.New(),
		Name:      name,
		Slug:      domain.Slugify(name) + "-" + uniqueSuffix(),
		Country:   "Ireland",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO regions (id, name, slug, country, created_at) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.Name, r.Slug, r.Country, r.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRegion: %v", err)
	}

	return r
}

// Popularity reads the stored popularity of a definition and of its entry.
func Popularity(t *testing.T, pool *pgxpool.Pool, definitionID uuid.UUID) (definition int, entry int) {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`SELECT d.popularity, e.popularity
		   FROM definitions d JOIN entries e ON e.id = d.entry_id
		  WHERE d.id = $1`, definitionID,
	).Scan(&definition, &entry)
	if err != nil {
		t.Fatalf("testhelper: Popularity: %v", err)
	}

	return definition, entry
}
