package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a contributor's proposed change awaiting review.
type Submission struct {
	ID          uuid.UUID
	SubmitterID uuid.UUID
	Type        SubmissionType
	Status      SubmissionStatus
	Payload     SubmissionPayload
	EntryID     *uuid.UUID
	ReviewedAt  *time.Time
	ReviewedBy  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Reviews []EditReview
}

// EditReview is one reviewer's decision on a submission. Rows are never updated.
type EditReview struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	ReviewerID   uuid.UUID
	Decision     SubmissionStatus
	Comments     *string
	CreatedAt    time.Time
}

// Report flags an entry, definition or variant for moderator attention.
type Report struct {
	ID           uuid.UUID
	ReporterID   uuid.UUID
	Reason       ReportReason
	Description  string
	Status       ReportStatus
	EntryID      *uuid.UUID
	DefinitionID *uuid.UUID
	VariantID    *uuid.UUID
	Resolution   *string
	ReviewedBy   *uuid.UUID
	ReviewedAt   *time.Time
	CreatedAt    time.Time
}

// HasTarget reports whether the report points at any content.
func (r Report) HasTarget() bool {
	return r.EntryID != nil || r.DefinitionID != nil || r.VariantID != nil
}

// Suggestion proposes a single-field change to an existing entry.
type Suggestion struct {
	ID             uuid.UUID
	EntryID        uuid.UUID
	SubmitterID    uuid.UUID
	Type           SuggestionType
	CurrentValue   *string
	SuggestedValue string
	Reason         *string
	Status         SuggestionStatus
	ReviewNote     *string
	ReviewedBy     *uuid.UUID
	ReviewedAt     *time.Time
	CreatedAt      time.Time
}

// ModerationStats holds queue sizes per status.
type ModerationStats struct {
	Submissions map[SubmissionStatus]int
	Reports     map[ReportStatus]int
	Suggestions map[SuggestionStatus]int
}
