package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Dictionary content
// ---------------------------------------------------------------------------

type entryView struct {
	ID           string    `json:"id"`
	Headword     string    `json:"headword"`
	Slug         string    `json:"slug"`
	PartOfSpeech string    `json:"partOfSpeech"`
	Etymology    *string   `json:"etymology,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	UsageStatus  string    `json:"usageStatus"`
	Popularity   int       `json:"popularity"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type definitionView struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Example    *string `json:"example,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Popularity int     `json:"popularity"`
}

type variantView struct {
	ID            string  `json:"id"`
	Spelling      string  `json:"spelling"`
	Pronunciation *string `json:"pronunciation,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type regionView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Country     string  `json:"country"`
	County      *string `json:"county,omitempty"`
	EntryCount  int     `json:"entryCount"`
}

type sourceView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Author    *string `json:"author,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	Year      *int    `json:"year,omitempty"`
	URL       *string `json:"url,omitempty"`
	Page      *string `json:"page,omitempty"`
}

type entryDetailView struct {
	entryView
	Definitions []definitionView `json:"definitions"`
	Variants    []variantView    `json:"variants"`
	Regions     []regionView     `json:"regions"`
	Sources     []sourceView     `json:"sources"`
	// UserVotes maps definition id to "up" or "down" for the caller.
	UserVotes map[string]string `json:"userVotes,omitempty"`
}

type regionDetailView struct {
	regionView
	Entries []entryView `json:"entries"`
}

func toEntryView(e domain.Entry) entryView {
	return entryView{
		ID:           e.ID.String(),
		Headword:     e.Headword,
		Slug:         e.Slug,
		PartOfSpeech: e.PartOfSpeech,
		Etymology:    e.Etymology,
		Notes:        e.Notes,
		UsageStatus:  e.UsageStatus.String(),
		Popularity:   e.Popularity,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEntryViews(entries []domain.Entry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryView(e))
	}
	return out
}

func toRegionView(r domain.Region) regionView {
	return regionView{
		ID:          r.ID.String(),
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Country:     r.Country,
		County:      r.County,
		EntryCount:  r.EntryCount,
	}
}

func toRegionViews(regions []domain.Region) []regionView {
	out := make([]regionView, 0, len(regions))
	for _, r := range regions {
		out = append(out, toRegionView(r))
	}
	return out
}

func toEntryDetailView(d *domain.EntryDetail, votes map[uuid.UUID]bool) entryDetailView {
	v := entryDetailView{
		entryView:   toEntryView(d.Entry),
		Definitions: make([]definitionView, 0, len(d.Definitions)),
		Variants:    make([]variantView, 0, len(d.Variants)),
		Regions:     toRegionViews(d.Regions),
		Sources:     make([]sourceView, 0, len(d.Sources)),
	}
	for _, def := range d.Definitions {
		v.Definitions = append(v.Definitions, definitionView{
			ID:         def.ID.String(),
			Text:       def.Text,
			Example:    def.Example,
			Notes:      def.Notes,
			Popularity: def.Popularity,
		})
	}
	for _, vr := range d.Variants {
		v.Variants = append(v.Variants, variantView{
			ID:            vr.ID.String(),
			Spelling:      vr.Spelling,
			Pronunciation: vr.Pronunciation,
			Notes:         vr.Notes,
		})
	}
	for _, s := range d.Sources {
		v.Sources = append(v.Sources, sourceView{
			ID:        s.ID.String(),
			Title:     s.Title,
			Author:    s.Author,
			Publisher: s.Publisher,
			Year:      s.Year,
			URL:       s.URL,
			Page:      s.Page,
		})
	}
	if len(votes) > 0 {
		v.UserVotes = make(map[string]string, len(votes))
		for id, up := range votes {
			if up {
				v.UserVotes[id.String()] = "up"
			} else {
				v.UserVotes[id.String()] = "down"
			}
		}
	}
	return v
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

type searchHitView struct {
	ID            string  `json:"id"`
	Headword      string  `json:"headword"`
	Slug          string  `json:"slug"`
	PartOfSpeech  string  `json:"partOfSpeech"`
	Popularity    int     `json:"popularity"`
	TopDefinition *string `json:"topDefinition,omitempty"`
}

func toSearchHitViews(hits []domain.SearchHit) []searchHitView {
	out := make([]searchHitView, 0, len(hits))
	for _, h := range hits {
		out = append(out, searchHitView{
			ID:            h.EntryID.String(),
			Headword:      h.Headword,
			Slug:          h.Slug,
			PartOfSpeech:  h.PartOfSpeech,
			Popularity:    h.Popularity,
			TopDefinition: h.TopDefinition,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Moderation
// ---------------------------------------------------------------------------

type reviewView struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submissionId"`
	ReviewerID   string    `json:"reviewerId"`
	Decision     string    `json:"decision"`
	Comments     *string   `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type submissionView struct {
	ID          string                   `json:"id"`
	SubmitterID string                   `json:"submitterId"`
	Type        string                   `json:"type"`
	Status      string                   `json:"status"`
	Data        domain.SubmissionPayload `json:"data"`
	EntryID     *uuid.UUID               `json:"entryId,omitempty"`
	ReviewedAt  *time.Time               `json:"reviewedAt,omitempty"`
	ReviewedBy  *uuid.UUID               `json:"reviewedBy,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	Reviews     []reviewView             `json:"reviews"`
}

type reportView struct {
	ID           string     `json:"id"`
	ReporterID   string     `json:"reporterId"`
	Reason       string     `json:"reason"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	EntryID      *uuid.UUID `json:"entryId,omitempty"`
	DefinitionID *uuid.UUID `json:"definitionId,omitempty"`
	VariantID    *uuid.UUID `json:"variantId,omitempty"`
	Resolution   *string    `json:"resolution,omitempty"`
	ReviewedBy   *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type suggestionView struct {
	ID             string     `json:"id"`
	EntryID        string     `json:"entryId"`
	SubmitterID    string     `json:"submitterId"`
	Type           string     `json:"type"`
	CurrentValue   *string    `json:"currentValue,omitempty"`
	SuggestedValue string     `json:"suggestedValue"`
	Reason         *string    `json:"reason,omitempty"`
	Status         string     `json:"status"`
	ReviewNote     *string    `json:"reviewNote,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type statsView struct {
	Submissions map[string]int `json:"submissions"`
	Reports     map[string]int `json:"reports"`
	Suggestions map[string]int `json:"suggestions"`
}

func toReviewView(r domain.EditReview) reviewView {
	return reviewView{
		ID:           r.ID.String(),
		SubmissionID: r.SubmissionID.String(),
		ReviewerID:   r.ReviewerID.String(),
		Decision:     r.Decision.String(),
		Comments:     r.Comments,
		CreatedAt:    r.CreatedAt,
	}
}

func toSubmissionView(s domain.Submission) submissionView {
	v := submissionView{
		ID:          s.ID.String(),
		SubmitterID: s.SubmitterID.String(),
		Type:        s.Type.String(),
		Status:      s.Status.String(),
		Data:        s.Payload,
		EntryID:     s.EntryID,
		ReviewedAt:  s.ReviewedAt,
		ReviewedBy:  s.ReviewedBy,
		CreatedAt:   s.CreatedAt,
		Reviews:     make([]reviewView, 0, len(s.Reviews)),
	}
	for _, r := range s.Reviews {
		v.Reviews = append(v.Reviews, toReviewView(r))
	}
	return v
}

func toReportView(r domain.Report) reportView {
	return reportView{
		ID:           r.ID.String(),
		ReporterID:   r.ReporterID.String(),
		Reason:       r.Reason.String(),
		Description:  r.Description,
		Status:       r.Status.String(),
		EntryID:      r.EntryID,
		DefinitionID: r.DefinitionID,
		VariantID:    r.VariantID,
		Resolution:   r.Resolution,
		ReviewedBy:   r.ReviewedBy,
		ReviewedAt:   r.ReviewedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func toSuggestionView(s domain.Suggestion) suggestionView {
	return suggestionView{
		ID:             s.ID.String(),
		EntryID:        s.EntryID.String(),
		SubmitterID:    s.SubmitterID.String(),
		Type:           s.Type.String(),
		CurrentValue:   s.CurrentValue,
		SuggestedValue: s.SuggestedValue,
		Reason:         s.Reason,
		Status:         s.Status.String(),
		ReviewNote:     s.ReviewNote,
		ReviewedBy:     s.ReviewedBy,
		ReviewedAt:     s.ReviewedAt,
		CreatedAt:      s.CreatedAt,
	}
}

func toStatsView(s *domain.ModerationStats) statsView {
	v := statsView{
		Submissions: make(map[string]int, len(s.Submissions)),
		Reports:     make(map[string]int, len(s.Reports)),
		Suggestions: make(map[string]int, len(s.Suggestions)),
	}
	for k, n := range s.Submissions {
		v.Submissions[k.String()] = n
	}
	for k, n := range s.Reports {
		v.Reports[k.String()] = n
	}
	for k, n := range s.Suggestions {
		v.Suggestions[k.String()] = n
	}
	return v
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u domain.User) userView {
	return userView{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
