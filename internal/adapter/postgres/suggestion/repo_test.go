package suggestion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/suggestion"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

func TestRepo_CreateReviewCount(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := suggestion.New(pool)
	ctx := context.Background()

	submitter := testhelper.SeedUser(t, pool, domain.UserRoleContributor)
	editor := testhelper.SeedUser(t, pool, domain.UserRoleEditor)
	e := testhelper.SeedEntry(t, pool, "madra", 0)

	created, err := repo.Create(ctx, &domain.Suggestion{
		EntryID:        e.ID,
		SubmitterID:    submitter.ID,
		Type:           domain.SuggestionTypePronunciation,
		SuggestedValue: "ˈmadˠɾˠə",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.SuggestionStatusPending {
		t.Errorf("Status = %s, want PENDING", created.Status)
	}

	note := "thanks"
	if err := repo.SetStatus(ctx, created.ID, domain.SuggestionStatusImplemented, &note, editor.ID, time.Now()); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	got, err := repo.GetForUpdate(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if got.Status != domain.SuggestionStatusImplemented || got.ReviewNote == nil || *got.ReviewNote != note {
		t.Errorf("unexpected suggestion after review: %+v", got)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[domain.SuggestionStatusImplemented] < 1 {
		t.Errorf("implemented count = %d", counts[domain.SuggestionStatusImplemented])
	}
}

func TestRepo_GetForUpdate_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)

	_, err := suggestion.New(pool).GetForUpdate(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_List_FiltersByStatus(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM suggestions WHERE status = \$1 ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 0`).
		WithArgs("PENDING").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "entry_id", "submitter_id", "type", "current_value", "suggested_value", "reason",
			"status", "review_note", "reviewed_by", "reviewed_at", "created_at",
		}))

	pending := domain.SuggestionStatusPending
	list, err := suggestion.New(mock).List(context.Background(), &pending, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
