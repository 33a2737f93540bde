// Package search implements the search gateway: query validation, two
// parallel lookups and the popularity-ranked merge of their hits.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/focloireacht-backend/internal/config"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const (
	maxQueryLen       = 200
	maxSearchLimit    = 100
	defaultSimilarMax = 5
)

type searchRepo interface {
	SearchEntries(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error)
	SearchVariants(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error)
	Similar(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.SearchHit, error)
}

// Service runs dictionary searches.
type Service struct {
	log  *slog.Logger
	repo searchRepo
	cfg  config.SearchConfig
}

// NewService creates a new search service.
func NewService(logger *slog.Logger, repo searchRepo, cfg config.SearchConfig) *Service {
	return &Service{
		log:  logger.With("service", "search"),
		repo: repo,
		cfg:  cfg,
	}
}

// Input is the raw search request. A nil Limit means the configured default.
type Input struct {
	Q      string
	Limit  *int
	Offset int
}

func (s *Service) validate(in Input) (domain.SearchQuery, error) {
	var errs []domain.FieldError

	raw := strings.TrimSpace(in.Q)
	if raw == "" {
		errs = append(errs, domain.FieldError{Field: "q", Message: "required"})
	} else if utf8.RuneCountInString(raw) > maxQueryLen {
		errs = append(errs, domain.FieldError{Field: "q", Message: "too long (max 200)"})
	}

	maxLimit := min(s.cfg.MaxLimit, maxSearchLimit)
	limit := min(s.cfg.DefaultLimit, maxLimit)
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < 1 || limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxLimit)})
	}
	if in.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if err := domain.CollectValidation(errs); err != nil {
		return domain.SearchQuery{}, err
	}
	return domain.SearchQuery{
		Normalized: domain.NormalizeText(raw),
		Raw:        raw,
		Limit:      limit,
		Offset:     in.Offset,
	}, nil
}

// Search matches entries by headword, definition and variant spelling.
// A store failure fails the whole search; no partial results are returned.
func (s *Service) Search(ctx context.Context, in Input) (*domain.SearchResult, error) {
	q, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	var byEntry, byVariant []domain.SearchHit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := s.repo.SearchEntries(gctx, q)
		if err != nil {
			return fmt.Errorf("search entries: %w", err)
		}
		byEntry = hits
		return nil
	})
	g.Go(func() error {
		hits, err := s.repo.SearchVariants(gctx, q)
		if err != nil {
			return fmt.Errorf("search variants: %w", err)
		}
		byVariant = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := mergeHits(byEntry, byVariant)
	s.log.DebugContext(ctx, "search", "q", q.Raw, "entry_hits", len(byEntry), "variant_hits", len(byVariant), "results", len(results))

	return &domain.SearchResult{Results: results, Total: len(results)}, nil
}

// Similar returns entries with a headword close to the given entry's.
// It degrades to an empty list when the store fails.
func (s *Service) Similar(ctx context.Context, entryID uuid.UUID, limit int) []domain.SearchHit {
	if limit <= 0 || limit > s.cfg.MaxLimit {
		limit = defaultSimilarMax
	}

	hits, err := s.repo.Similar(ctx, entryID, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "similar entries", "entry_id", entryID, "error", err)
		return []domain.SearchHit{}
	}
	return hits
}

// mergeHits unions hit lists by entry id, keeping the copy with the higher
// popularity (the earlier list wins ties), then orders by popularity desc.
// The sort is stable, so equal popularity keeps first-seen order.
func mergeHits(lists ...[]domain.SearchHit) []domain.SearchHit {
	index := make(map[uuid.UUID]int)
	out := make([]domain.SearchHit, 0)

	for _, list := range lists {
		for _, h := range list {
			i, seen := index[h.EntryID]
			if !seen {
				index[h.EntryID] = len(out)
				out = append(out, h)
				continue
			}
			if h.Popularity > out[i].Popularity {
				out[i] = h
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity > out[j].Popularity
	})
	return out
}
