package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// GetEntry loads an active entry by id or slug together with its active
// definitions, variants, regions and sources. Relation lookups that fail are
// logged and returned empty; a missing entry is ErrNotFound.
func (s *Service) GetEntry(ctx context.Context, slugOrID string) (*domain.EntryDetail, error) {
	entry, err := s.lookupEntry(ctx, strings.TrimSpace(slugOrID))
	if err != nil {
		return nil, err
	}

	detail := &domain.EntryDetail{
		Entry:       *entry,
		Definitions: []domain.Definition{},
		Variants:    []domain.Variant{},
		Regions:     []domain.Region{},
		Sources:     []domain.Source{},
	}
	ids := []uuid.UUID{entry.ID}

	// Each fetch degrades independently, so none of them returns an error.
	var g errgroup.Group
	g.Go(func() error {
		if defs, err := s.entries.ListDefinitions(ctx, ids); s.degrade(ctx, "list definitions", entry.ID, err) {
			detail.Definitions = defs
		}
		return nil
	})
	g.Go(func() error {
		if vars, err := s.entries.ListVariants(ctx, ids); s.degrade(ctx, "list variants", entry.ID, err) {
			detail.Variants = vars
		}
		return nil
	})
	g.Go(func() error {
		if regions, err := s.regions.ListByEntry(ctx, entry.ID); s.degrade(ctx, "list regions", entry.ID, err) {
			detail.Regions = regions
		}
		return nil
	})
	g.Go(func() error {
		if sources, err := s.entries.ListSources(ctx, entry.ID); s.degrade(ctx, "list sources", entry.ID, err) {
			detail.Sources = sources
		}
		return nil
	})
	_ = g.Wait()

	return detail, nil
}

func (s *Service) lookupEntry(ctx context.Context, slugOrID string) (*domain.Entry, error) {
	if slugOrID == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	if id, err := uuid.Parse(slugOrID); err == nil {
		e, err := s.entries.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get entry: %w", err)
		}
		if !e.IsActive {
			return nil, fmt.Errorf("get entry %s: %w", id, domain.ErrNotFound)
		}
		return e, nil
	}

	slug := domain.Slugify(slugOrID)
	if slug == "" {
		return nil, fmt.Errorf("get entry %q: %w", slugOrID, domain.ErrNotFound)
	}
	e, err := s.entries.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// TopEntries returns the most popular active entries.
func (s *Service) TopEntries(ctx context.Context, limit int) []domain.Entry {
	return s.listEntries(ctx, domain.EntrySortPopularity, limit)
}

// RecentEntries returns the newest active entries.
func (s *Service) RecentEntries(ctx context.Context, limit int) []domain.Entry {
	return s.listEntries(ctx, domain.EntrySortCreatedAt, limit)
}

func (s *Service) listEntries(ctx context.Context, sortBy string, limit int) []domain.Entry {
	entries, err := s.entries.List(ctx, domain.EntryFilter{
		SortBy: sortBy,
		Limit:  clampLimit(limit, 1, maxListLimit, defaultListLimit),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "list entries", "sort_by", sortBy, "error", err)
		return []domain.Entry{}
	}
	return entries
}

// degrade logs a failed informational read. It reports whether err is nil.
func (s *Service) degrade(ctx context.Context, op string, entryID uuid.UUID, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	s.log.ErrorContext(ctx, op, "entry_id", entryID, "error", err)
	return false
}
