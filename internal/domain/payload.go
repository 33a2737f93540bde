package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SubmissionPayload is the proposed change carried by a submission.
// The set of implementations is closed; each maps to one SubmissionType.
type SubmissionPayload interface {
	Type() SubmissionType
	// Accept dispatches to the visitor method for the concrete payload.
	Accept(ctx context.Context, v PayloadVisitor) error
	sealed()
}

// PayloadVisitor handles every payload kind. Adding a payload kind breaks
// every visitor until it is handled.
type PayloadVisitor interface {
	VisitNewEntry(ctx context.Context, p NewEntryPayload) error
	VisitNewDefinition(ctx context.Context, p NewDefinitionPayload) error
	VisitNewVariant(ctx context.Context, p NewVariantPayload) error
	VisitEditEntry(ctx context.Context, p EditEntryPayload) error
	VisitEditDefinition(ctx context.Context, p EditDefinitionPayload) error
	VisitEditVariant(ctx context.Context, p EditVariantPayload) error
	VisitDelete(ctx context.Context, p DeletePayload) error
}

// NewEntryPayload proposes a new headword, optionally with its first
// definition and a region link.
type NewEntryPayload struct {
	Headword     string     `json:"headword"`
	PartOfSpeech string     `json:"partOfSpeech"`
	Definition   *string    `json:"definition,omitempty"`
	Example      *string    `json:"example,omitempty"`
	Etymology    *string    `json:"etymology,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	RegionID     *uuid.UUID `json:"regionId,omitempty"`
}

// NewDefinitionPayload proposes a definition under an existing entry.
type NewDefinitionPayload struct {
	EntryID    uuid.UUID `json:"existingEntryId"`
	Definition string    `json:"definition"`
	Example    *string   `json:"example,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

// NewVariantPayload proposes an alternate spelling under an existing entry.
type NewVariantPayload struct {
	EntryID       uuid.UUID `json:"existingEntryId"`
	Spelling      string    `json:"spelling"`
	Pronunciation *string   `json:"pronunciation,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// EditEntryPayload proposes new values for the present fields of an entry.
type EditEntryPayload struct {
	EntryID      uuid.UUID    `json:"existingEntryId"`
	Headword     *string      `json:"headword,omitempty"`
	PartOfSpeech *string      `json:"partOfSpeech,omitempty"`
	Etymology    *string      `json:"etymology,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	UsageStatus  *UsageStatus `json:"usageStatus,omitempty"`
}

// Patch returns the entry fields this payload overwrites.
func (p EditEntryPayload) Patch() EntryPatch {
	return EntryPatch{
		Headword:     p.Headword,
		PartOfSpeech: p.PartOfSpeech,
		Etymology:    p.Etymology,
		Notes:        p.Notes,
		UsageStatus:  p.UsageStatus,
	}
}

// EditDefinitionPayload proposes new values for a definition.
type EditDefinitionPayload struct {
	DefinitionID uuid.UUID `json:"definitionId"`
	Text         *string   `json:"definition,omitempty"`
	Example      *string   `json:"example,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// EditVariantPayload proposes new values for a variant.
type EditVariantPayload struct {
	VariantID     uuid.UUID `json:"variantId"`
	Spelling      *string   `json:"spelling,omitempty"`
	Pronunciation *string   `json:"pronunciation,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// DeletePayload proposes removing an entry, definition or variant.
type DeletePayload struct {
	Kind     SubmissionType `json:"-"`
	TargetID uuid.UUID      `json:"targetId"`
}

func (NewEntryPayload) Type() SubmissionType       { return SubmissionTypeNewEntry }
func (NewDefinitionPayload) Type() SubmissionType  { return SubmissionTypeNewDefinition }
func (NewVariantPayload) Type() SubmissionType     { return SubmissionTypeNewVariant }
func (EditEntryPayload) Type() SubmissionType      { return SubmissionTypeEditEntry }
func (EditDefinitionPayload) Type() SubmissionType { return SubmissionTypeEditDefinition }
func (EditVariantPayload) Type() SubmissionType    { return SubmissionTypeEditVariant }
func (p DeletePayload) Type() SubmissionType       { return p.Kind }

func (p NewEntryPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitNewEntry(ctx, p)
}

func (p NewDefinitionPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitNewDefinition(ctx, p)
}

func (p NewVariantPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitNewVariant(ctx, p)
}

func (p EditEntryPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitEditEntry(ctx, p)
}

func (p EditDefinitionPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitEditDefinition(ctx, p)
}

func (p EditVariantPayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitEditVariant(ctx, p)
}

func (p DeletePayload) Accept(ctx context.Context, v PayloadVisitor) error {
	return v.VisitDelete(ctx, p)
}

func (NewEntryPayload) sealed()       {}
func (NewDefinitionPayload) sealed()  {}
func (NewVariantPayload) sealed()     {}
func (EditEntryPayload) sealed()      {}
func (EditDefinitionPayload) sealed() {}
func (EditVariantPayload) sealed()    {}
func (DeletePayload) sealed()         {}

// PayloadEntryID returns the existing entry a payload refers to, if any.
func PayloadEntryID(p SubmissionPayload) *uuid.UUID {
	switch v := p.(type) {
	case NewDefinitionPayload:
		return &v.EntryID
	case NewVariantPayload:
		return &v.EntryID
	case EditEntryPayload:
		return &v.EntryID
	case DeletePayload:
		if v.Kind == SubmissionTypeDeleteEntry {
			return &v.TargetID
		}
	}
	return nil
}

// EncodePayload serializes a payload for storage. The type is stored separately.
func EncodePayload(p SubmissionPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("encode payload: nil payload")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload %s: %w", p.Type(), err)
	}
	return b, nil
}

// DecodePayload restores a payload stored under the given type.
func DecodePayload(t SubmissionType, raw []byte) (SubmissionPayload, error) {
	switch t {
	case SubmissionTypeNewEntry:
		return decodeAs[NewEntryPayload](t, raw)
	case SubmissionTypeNewDefinition:
		return decodeAs[NewDefinitionPayload](t, raw)
	case SubmissionTypeNewVariant:
		return decodeAs[NewVariantPayload](t, raw)
	case SubmissionTypeEditEntry:
		return decodeAs[EditEntryPayload](t, raw)
	case SubmissionTypeEditDefinition:
		return decodeAs[EditDefinitionPayload](t, raw)
	case SubmissionTypeEditVariant:
		return decodeAs[EditVariantPayload](t, raw)
	case SubmissionTypeDeleteEntry, SubmissionTypeDeleteDefinition, SubmissionTypeDeleteVariant:
		p, err := decodeAs[DeletePayload](t, raw)
		if err != nil {
			return nil, err
		}
		d := p.(DeletePayload)
		d.Kind = t
		return d, nil
	}
	return nil, fmt.Errorf("decode payload: unknown submission type %q", t)
}

func decodeAs[T SubmissionPayload](t SubmissionType, raw []byte) (SubmissionPayload, error) {
	var p T
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload %s: %w", t, err)
	}
	return p, nil
}
