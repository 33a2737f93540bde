package moderation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

const (
	maxHeadwordLen    = 200
	maxTextLen        = 5000
	minDescriptionLen = 10
	maxDescriptionLen = 2000
)

// CreateSubmissionInput is the flat submission form. Which fields apply
// depends on Type.
type CreateSubmissionInput struct {
	Type            domain.SubmissionType
	Headword        string
	PartOfSpeech    string
	Definition      *string
	Example         *string
	Etymology       *string
	Notes           *string
	Pronunciation   *string
	UsageStatus     *domain.UsageStatus
	ExistingEntryID *uuid.UUID
	TargetID        *uuid.UUID
	RegionID        *uuid.UUID
}

// Validate checks the fields required by Type and collects all errors.
func (i *CreateSubmissionInput) Validate() error {
	var errs []domain.FieldError
	add := func(field, msg string) { errs = append(errs, domain.FieldError{Field: field, Message: msg}) }

	if !i.Type.IsValid() {
		add("type", "invalid value")
		return domain.CollectValidation(errs)
	}

	i.Headword = strings.TrimSpace(i.Headword)
	i.PartOfSpeech = strings.TrimSpace(i.PartOfSpeech)
	if utf8.RuneCountInString(i.Headword) > maxHeadwordLen {
		add("headword", "too long (max 200)")
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"definition", i.Definition},
		{"example", i.Example},
		{"etymology", i.Etymology},
		{"notes", i.Notes},
		{"pronunciation", i.Pronunciation},
	} {
		if f.value != nil && utf8.RuneCountInString(*f.value) > maxTextLen {
			add(f.name, "too long (max 5000)")
		}
	}
	if i.UsageStatus != nil && !i.UsageStatus.IsValid() {
		add("usageStatus", "invalid value")
	}

	switch i.Type {
	case domain.SubmissionTypeNewEntry:
		if i.Headword == "" {
			add("headword", "required")
		}
		if i.PartOfSpeech == "" {
			add("partOfSpeech", "required")
		}
	case domain.SubmissionTypeNewDefinition:
		requireID(&errs, "existingEntryId", i.ExistingEntryID)
		if blank(i.Definition) {
			add("definition", "required")
		}
	case domain.SubmissionTypeNewVariant:
		requireID(&errs, "existingEntryId", i.ExistingEntryID)
		if i.Headword == "" {
			add("headword", "required")
		}
	case domain.SubmissionTypeEditEntry:
		requireID(&errs, "existingEntryId", i.ExistingEntryID)
		if i.Headword == "" && i.PartOfSpeech == "" && i.Etymology == nil && i.Notes == nil && i.UsageStatus == nil {
			add("existingEntryId", "no changes proposed")
		}
	case domain.SubmissionTypeEditDefinition, domain.SubmissionTypeEditVariant,
		domain.SubmissionTypeDeleteDefinition, domain.SubmissionTypeDeleteVariant:
		requireID(&errs, "targetId", i.TargetID)
	case domain.SubmissionTypeDeleteEntry:
		if i.TargetID == nil && i.ExistingEntryID != nil {
			i.TargetID = i.ExistingEntryID
		}
		requireID(&errs, "targetId", i.TargetID)
	}

	return domain.CollectValidation(errs)
}

// Payload builds the typed payload. Validate must have succeeded.
func (i *CreateSubmissionInput) Payload() domain.SubmissionPayload {
	switch i.Type {
	case domain.SubmissionTypeNewEntry:
		return domain.NewEntryPayload{
			Headword:     i.Headword,
			PartOfSpeech: i.PartOfSpeech,
			Definition:   nonBlank(i.Definition),
			Example:      nonBlank(i.Example),
			Etymology:    nonBlank(i.Etymology),
			Notes:        nonBlank(i.Notes),
			RegionID:     i.RegionID,
		}
	case domain.SubmissionTypeNewDefinition:
		return domain.NewDefinitionPayload{
			EntryID:    *i.ExistingEntryID,
			Definition: strings.TrimSpace(*i.Definition),
			Example:    nonBlank(i.Example),
			Notes:      nonBlank(i.Notes),
		}
	case domain.SubmissionTypeNewVariant:
		return domain.NewVariantPayload{
			EntryID:       *i.ExistingEntryID,
			Spelling:      i.Headword,
			Pronunciation: nonBlank(i.Pronunciation),
			Notes:         nonBlank(i.Notes),
		}
	case domain.SubmissionTypeEditEntry:
		return domain.EditEntryPayload{
			EntryID:      *i.ExistingEntryID,
			Headword:     optional(i.Headword),
			PartOfSpeech: optional(i.PartOfSpeech),
			Etymology:    i.Etymology,
			Notes:        i.Notes,
			UsageStatus:  i.UsageStatus,
		}
	case domain.SubmissionTypeEditDefinition:
		return domain.EditDefinitionPayload{
			DefinitionID: *i.TargetID,
			Text:         nonBlank(i.Definition),
			Example:      i.Example,
			Notes:        i.Notes,
		}
	case domain.SubmissionTypeEditVariant:
		return domain.EditVariantPayload{
			VariantID:     *i.TargetID,
			Spelling:      optional(i.Headword),
			Pronunciation: i.Pronunciation,
			Notes:         i.Notes,
		}
	default:
		return domain.DeletePayload{Kind: i.Type, TargetID: *i.TargetID}
	}
}

// ListSubmissionsInput filters the submission queue. A nil Status means PENDING.
type ListSubmissionsInput struct {
	Status *domain.SubmissionStatus
	Limit  int
	Offset int
}

// ReviewInput is a moderator's decision on a submission.
type ReviewInput struct {
	SubmissionID uuid.UUID
	Decision     domain.SubmissionStatus
	Comments     *string
}

// Validate checks all fields and collects all errors.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError
	requireID(&errs, "submissionId", &i.SubmissionID)
	if !i.Decision.IsDecision() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be APPROVED, REJECTED or NEEDS_REVISION"})
	}
	if i.Comments != nil && utf8.RuneCountInString(*i.Comments) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "comments", Message: "too long (max 5000)"})
	}
	return domain.CollectValidation(errs)
}

// CreateReportInput flags content for moderator attention.
type CreateReportInput struct {
	Reason       domain.ReportReason
	Description  string
	EntryID      *uuid.UUID
	DefinitionID *uuid.UUID
	VariantID    *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CreateReportInput) Validate() error {
	var errs []domain.FieldError

	if !i.Reason.IsValid() {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "invalid value"})
	}
	i.Description = strings.TrimSpace(i.Description)
	switch n := utf8.RuneCountInString(i.Description); {
	case n < minDescriptionLen:
		errs = append(errs, domain.FieldError{Field: "description", Message: "too short (min 10)"})
	case n > maxDescriptionLen:
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}
	if i.EntryID == nil && i.DefinitionID == nil && i.VariantID == nil {
		errs = append(errs, domain.FieldError{Field: "entryId", Message: "a target is required"})
	}

	return domain.CollectValidation(errs)
}

// ReviewReportInput resolves or dismisses a report.
type ReviewReportInput struct {
	ReportID   uuid.UUID
	Status     domain.ReportStatus
	Resolution string
}

// Validate checks all fields and collects all errors.
func (i ReviewReportInput) Validate() error {
	var errs []domain.FieldError
	requireID(&errs, "reportId", &i.ReportID)
	if i.Status != domain.ReportStatusResolved && i.Status != domain.ReportStatusDismissed {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be RESOLVED or DISMISSED"})
	}
	if utf8.RuneCountInString(i.Resolution) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "resolution", Message: "too long (max 2000)"})
	}
	return domain.CollectValidation(errs)
}

// CreateSuggestionInput proposes a single-field change to an entry.
type CreateSuggestionInput struct {
	EntryID        uuid.UUID
	Type           domain.SuggestionType
	SuggestedValue string
	CurrentValue   *string
	Reason         *string
}

// Validate checks all fields and collects all errors.
func (i *CreateSuggestionInput) Validate() error {
	var errs []domain.FieldError

	requireID(&errs, "entryId", &i.EntryID)
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	i.SuggestedValue = strings.TrimSpace(i.SuggestedValue)
	if i.SuggestedValue == "" {
		errs = append(errs, domain.FieldError{Field: "suggestedValue", Message: "required"})
	} else if utf8.RuneCountInString(i.SuggestedValue) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "suggestedValue", Message: "too long (max 5000)"})
	}
	if i.Reason != nil && utf8.RuneCountInString(*i.Reason) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long (max 2000)"})
	}

	return domain.CollectValidation(errs)
}

// ReviewSuggestionInput is a moderator's decision on a suggestion.
type ReviewSuggestionInput struct {
	SuggestionID uuid.UUID
	Status       domain.SuggestionStatus
	ReviewNote   *string
}

// Validate checks all fields and collects all errors.
func (i ReviewSuggestionInput) Validate() error {
	var errs []domain.FieldError
	requireID(&errs, "suggestionId", &i.SuggestionID)
	if i.Status == domain.SuggestionStatusPending || !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be APPROVED, REJECTED or IMPLEMENTED"})
	}
	if i.ReviewNote != nil && utf8.RuneCountInString(*i.ReviewNote) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "reviewNote", Message: "too long (max 2000)"})
	}
	return domain.CollectValidation(errs)
}

// ---------------------------------------------------------------------------
// Field helpers
// ---------------------------------------------------------------------------

func requireID(errs *[]domain.FieldError, field string, id *uuid.UUID) {
	if id == nil || *id == uuid.Nil {
		*errs = append(*errs, domain.FieldError{Field: field, Message: "required"})
	}
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// nonBlank returns the trimmed value, or nil when it is absent or blank.
func nonBlank(s *string) *string {
	if blank(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// optional returns nil for the empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
