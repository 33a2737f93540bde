// Package dictionary serves the public, read-only dictionary pages: entry
// detail, top and recent entries, and regions.
package dictionary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Entry, error)
	List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Entry, error)
	ListDefinitions(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Definition, error)
	ListVariants(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Variant, error)
	ListSources(ctx context.Context, entryID uuid.UUID) ([]domain.Source, error)
}

type regionRepo interface {
	List(ctx context.Context) ([]domain.Region, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Region, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Region, error)
	ListEntryIDs(ctx context.Context, regionID uuid.UUID, limit int) ([]uuid.UUID, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements dictionary browsing.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	regions regionRepo
}

// NewService creates a new Dictionary service.
func NewService(logger *slog.Logger, entries entryRepo, regions regionRepo) *Service {
	return &Service{
		log:     logger.With("service", "dictionary"),
		entries: entries,
		regions: regions,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const (
	defaultListLimit   = 10
	maxListLimit       = 100
	regionEntriesLimit = 100
)

// clampLimit ensures limit is within [min, max], defaulting when limit is 0.
func clampLimit(limit, min, max, def int) int {
	if limit == 0 {
		return def
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
