package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// CreateSuggestion records a proposed single-field change for an existing entry.
func (s *Service) CreateSuggestion(ctx context.Context, input CreateSuggestionInput) (*domain.Suggestion, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.content.GetByID(ctx, input.EntryID); err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	created, err := s.suggestions.Create(ctx, &domain.Suggestion{
		EntryID:        input.EntryID,
		SubmitterID:    userID,
		Type:           input.Type,
		CurrentValue:   input.CurrentValue,
		SuggestedValue: input.SuggestedValue,
		Reason:         input.Reason,
		Status:         domain.SuggestionStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion created",
		"suggestion_id", created.ID, "entry_id", created.EntryID, "type", created.Type)
	return created, nil
}

// ListSuggestions returns suggestions with the given status (PENDING when nil), newest first.
func (s *Service) ListSuggestions(ctx context.Context, status *domain.SuggestionStatus, limit, offset int) ([]domain.Suggestion, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}

	st := domain.SuggestionStatusPending
	if status != nil {
		if !status.IsValid() {
			return nil, domain.NewValidationError("status", "invalid value")
		}
		st = *status
	}

	list, err := s.suggestions.List(ctx, &st, clampLimit(limit), clampOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return list, nil
}

// ReviewSuggestion decides a pending suggestion. APPROVED and IMPLEMENTED
// write the suggested value to the entry.
func (s *Service) ReviewSuggestion(ctx context.Context, input ReviewSuggestionInput) (*domain.Suggestion, error) {
	reviewerID, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var out *domain.Suggestion
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sg, err := s.suggestions.GetForUpdate(txCtx, input.SuggestionID)
		if err != nil {
			return fmt.Errorf("lock suggestion: %w", err)
		}
		if sg.Status != domain.SuggestionStatusPending {
			return fmt.Errorf("suggestion already %s: %w", sg.Status, domain.ErrConflict)
		}

		if input.Status.Applies() {
			if err := s.applySuggestion(txCtx, sg); err != nil {
				return err
			}
		}

		now := s.now()
		if err := s.suggestions.SetStatus(txCtx, sg.ID, input.Status, input.ReviewNote, reviewerID, now); err != nil {
			return fmt.Errorf("set suggestion status: %w", err)
		}

		sg.Status = input.Status
		sg.ReviewNote = input.ReviewNote
		sg.ReviewedBy = &reviewerID
		sg.ReviewedAt = &now
		out = sg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewDecided("suggestion", string(input.Status))
	s.log.InfoContext(ctx, "suggestion reviewed",
		"suggestion_id", input.SuggestionID, "status", input.Status, "reviewer_id", reviewerID)
	return out, nil
}

func (s *Service) applySuggestion(ctx context.Context, sg *domain.Suggestion) error {
	value := sg.SuggestedValue

	switch sg.Type {
	case domain.SuggestionTypeHeadword:
		return s.patchEntry(ctx, sg, domain.EntryPatch{Headword: &value})
	case domain.SuggestionTypeEtymology:
		return s.patchEntry(ctx, sg, domain.EntryPatch{Etymology: &value})
	case domain.SuggestionTypeNotes:
		return s.patchEntry(ctx, sg, domain.EntryPatch{Notes: &value})

	case domain.SuggestionTypeUsageStatus:
		us := domain.UsageStatus(strings.ToUpper(value))
		if !us.IsValid() {
			return domain.NewValidationError("suggestedValue", "not a usage status")
		}
		return s.patchEntry(ctx, sg, domain.EntryPatch{UsageStatus: &us})

	case domain.SuggestionTypePronunciation:
		if err := s.content.AppendNotes(ctx, sg.EntryID, "Pronunciation: "+value); err != nil {
			return fmt.Errorf("append pronunciation: %w", err)
		}
		return nil

	case domain.SuggestionTypeDefinition:
		top, err := s.content.TopDefinition(ctx, sg.EntryID)
		if errors.Is(err, domain.ErrNotFound) {
			if _, err := s.content.CreateDefinition(ctx, &domain.Definition{EntryID: sg.EntryID, Text: value}); err != nil {
				return fmt.Errorf("create definition: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("top definition: %w", err)
		}
		if err := s.content.UpdateDefinitionText(ctx, top.ID, value); err != nil {
			return fmt.Errorf("update definition: %w", err)
		}
		return nil

	case domain.SuggestionTypeRegion:
		region, err := s.regions.GetBySlug(ctx, strings.ToLower(value))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("suggestedValue", "unknown region")
		}
		if err != nil {
			return fmt.Errorf("get region: %w", err)
		}
		if err := s.content.LinkRegion(ctx, sg.EntryID, region.ID); err != nil {
			return fmt.Errorf("link region: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unknown suggestion type %q: %w", sg.Type, domain.ErrValidation)
}

func (s *Service) patchEntry(ctx context.Context, sg *domain.Suggestion, p domain.EntryPatch) error {
	if _, err := s.content.Patch(ctx, sg.EntryID, p); err != nil {
		return fmt.Errorf("patch entry %s: %w", sg.Type, err)
	}
	return nil
}
