package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// applier turns an approved submission payload into content changes.
// It must run inside the review transaction.
type applier struct {
	svc          *Service
	submissionID uuid.UUID

	// createdEntryID is set when a NEW_ENTRY payload created an entry.
	createdEntryID uuid.UUID
}

var _ domain.PayloadVisitor = (*applier)(nil)

func (a *applier) VisitNewEntry(ctx context.Context, p domain.NewEntryPayload) error {
	e, err := a.svc.content.Create(ctx, &domain.Entry{
		Headword:     p.Headword,
		PartOfSpeech: p.PartOfSpeech,
		Etymology:    p.Etymology,
		Notes:        p.Notes,
	})
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	a.createdEntryID = e.ID

	if p.Definition != nil {
		if _, err := a.svc.content.CreateDefinition(ctx, &domain.Definition{
			EntryID: e.ID,
			Text:    *p.Definition,
			Example: p.Example,
		}); err != nil {
			return fmt.Errorf("create definition: %w", err)
		}
	}

	if p.RegionID != nil {
		if err := a.svc.content.LinkRegion(ctx, e.ID, *p.RegionID); err != nil {
			return fmt.Errorf("link region: %w", err)
		}
	}
	return nil
}

func (a *applier) VisitNewDefinition(ctx context.Context, p domain.NewDefinitionPayload) error {
	if _, err := a.svc.content.CreateDefinition(ctx, &domain.Definition{
		EntryID: p.EntryID,
		Text:    p.Definition,
		Example: p.Example,
		Notes:   p.Notes,
	}); err != nil {
		return fmt.Errorf("create definition: %w", err)
	}
	return nil
}

func (a *applier) VisitNewVariant(ctx context.Context, p domain.NewVariantPayload) error {
	if _, err := a.svc.content.CreateVariant(ctx, &domain.Variant{
		EntryID:       p.EntryID,
		Spelling:      p.Spelling,
		Pronunciation: p.Pronunciation,
		Notes:         p.Notes,
	}); err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

func (a *applier) VisitEditEntry(ctx context.Context, p domain.EditEntryPayload) error {
	if _, err := a.svc.content.Patch(ctx, p.EntryID, p.Patch()); err != nil {
		return fmt.Errorf("patch entry: %w", err)
	}
	return nil
}

// Edits of definitions and variants, and all deletions, are recorded as
// approved but change nothing. Moderators act on them by hand.

func (a *applier) VisitEditDefinition(ctx context.Context, p domain.EditDefinitionPayload) error {
	a.skip(ctx, domain.SubmissionTypeEditDefinition, p.DefinitionID)
	return nil
}

func (a *applier) VisitEditVariant(ctx context.Context, p domain.EditVariantPayload) error {
	a.skip(ctx, domain.SubmissionTypeEditVariant, p.VariantID)
	return nil
}

func (a *applier) VisitDelete(ctx context.Context, p domain.DeletePayload) error {
	a.skip(ctx, p.Kind, p.TargetID)
	return nil
}

func (a *applier) skip(ctx context.Context, t domain.SubmissionType, target uuid.UUID) {
	a.svc.log.WarnContext(ctx, "approved submission has no automatic effect",
		"submission_id", a.submissionID, "type", t, "target_id", target)
}
