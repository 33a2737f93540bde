package moderation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// Stats returns queue sizes per status for submissions, reports and suggestions.
func (s *Service) Stats(ctx context.Context) (*domain.ModerationStats, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}

	var stats domain.ModerationStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := s.submissions.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count submissions: %w", err)
		}
		stats.Submissions = m
		return nil
	})
	g.Go(func() error {
		m, err := s.reports.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count reports: %w", err)
		}
		stats.Reports = m
		return nil
	})
	g.Go(func() error {
		m, err := s.suggestions.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count suggestions: %w", err)
		}
		stats.Suggestions = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
