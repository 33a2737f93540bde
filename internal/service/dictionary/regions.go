package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ListRegions returns all regions with their active entry counts.
func (s *Service) ListRegions(ctx context.Context) []domain.Region {
	regions, err := s.regions.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list regions", "error", err)
		return []domain.Region{}
	}
	return regions
}

// GetRegion returns a region and its active entries, most popular first.
func (s *Service) GetRegion(ctx context.Context, slug string) (*domain.RegionDetail, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	region, err := s.regions.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get region: %w", err)
	}

	detail := &domain.RegionDetail{Region: *region, Entries: []domain.Entry{}}

	ids, err := s.regions.ListEntryIDs(ctx, region.ID, regionEntriesLimit)
	if err != nil {
		s.log.ErrorContext(ctx, "list region entry ids", "region", slug, "error", err)
		return detail, nil
	}
	entries, err := s.entries.ListByIDs(ctx, ids)
	if err != nil {
		s.log.ErrorContext(ctx, "list region entries", "region", slug, "error", err)
		return detail, nil
	}
	detail.Entries = entries
	return detail, nil
}
