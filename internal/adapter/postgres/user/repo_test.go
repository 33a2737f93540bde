package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func TestRepo_Create_DefaultsToContributor(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := "create-" + uuid.New().String()[:8] + "@example.com"
	got, err := repo.Create(ctx, &domain.User{Email: email, Name: "Nóra"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.Role != domain.UserRoleContributor {
		t.Errorf("Role = %s, want CONTRIBUTOR", got.Role)
	}
	if got.Email != email || got.Name != "Nóra" {
		t.Errorf("unexpected user: %+v", got)
	}

	byEmail, err := repo.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != got.ID {
		t.Errorf("GetByEmail id = %s, want %s", byEmail.ID, got.ID)
	}
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	existing := testhelper.SeedUser(t, pool, domain.UserRoleContributor)
	_, err := repo.Create(context.Background(), &domain.User{Email: existing.Email})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_UpdateRole(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool, domain.UserRoleContributor)
	got, err := repo.UpdateRole(ctx, u.ID, domain.UserRoleEditor)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if got.Role != domain.UserRoleEditor {
		t.Errorf("Role = %s, want EDITOR", got.Role)
	}

	if _, err := repo.UpdateRole(ctx, u.ID, domain.UserRole("OWNER")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid role: expected ErrValidation, got %v", err)
	}
	if _, err := repo.UpdateRole(ctx, uuid.New(), domain.UserRoleAdmin); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListAndCount(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	testhelper.SeedUser(t, pool, domain.UserRoleAdmin)

	list, err := repo.List(ctx, 1000, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected at least one user")
	}

	counts, err := repo.CountByRole(ctx)
	if err != nil {
		t.Fatalf("CountByRole: %v", err)
	}
	if counts[domain.UserRoleAdmin] < 1 {
		t.Errorf("admin count = %d", counts[domain.UserRoleAdmin])
	}
}
