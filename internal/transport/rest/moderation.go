package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/internal/service/moderation"
)

type moderationService interface {
	CreateSubmission(ctx context.Context, input moderation.CreateSubmissionInput) (*domain.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListSubmissions(ctx context.Context, input moderation.ListSubmissionsInput) ([]domain.Submission, error)
	ReviewSubmission(ctx context.Context, input moderation.ReviewInput) (*domain.EditReview, error)

	CreateReport(ctx context.Context, input moderation.CreateReportInput) (*domain.Report, error)
	ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, error)
	ReviewReport(ctx context.Context, input moderation.ReviewReportInput) (*domain.Report, error)

	CreateSuggestion(ctx context.Context, input moderation.CreateSuggestionInput) (*domain.Suggestion, error)
	ListSuggestions(ctx context.Context, status *domain.SuggestionStatus, limit, offset int) ([]domain.Suggestion, error)
	ReviewSuggestion(ctx context.Context, input moderation.ReviewSuggestionInput) (*domain.Suggestion, error)

	Stats(ctx context.Context) (*domain.ModerationStats, error)
}

// ModerationHandler serves submissions, reports, suggestions and the
// moderation queue.
type ModerationHandler struct {
	svc moderationService
	log *slog.Logger
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(svc moderationService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{svc: svc, log: logger.With("handler", "moderation")}
}

// ---------------------------------------------------------------------------
// Submissions
// ---------------------------------------------------------------------------

type createSubmissionRequest struct {
	Type            string  `json:"type"`
	Headword        string  `json:"headword"`
	PartOfSpeech    string  `json:"partOfSpeech"`
	Definition      *string `json:"definition"`
	Example         *string `json:"example"`
	Etymology       *string `json:"etymology"`
	Notes           *string `json:"notes"`
	Pronunciation   *string `json:"pronunciation"`
	UsageStatus     *string `json:"usageStatus"`
	ExistingEntryID *string `json:"existingEntryId"`
	TargetID        *string `json:"targetId"`
	RegionID        *string `json:"regionId"`
}

type reviewSubmissionRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments"`
}

// CreateSubmission handles POST /submissions.
func (h *ModerationHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var errs []domain.FieldError
	input := moderation.CreateSubmissionInput{
		Type:            domain.SubmissionType(req.Type),
		Headword:        req.Headword,
		PartOfSpeech:    req.PartOfSpeech,
		Definition:      req.Definition,
		Example:         req.Example,
		Etymology:       req.Etymology,
		Notes:           req.Notes,
		Pronunciation:   req.Pronunciation,
		ExistingEntryID: parseOptionalUUID(req.ExistingEntryID, "existingEntryId", &errs),
		TargetID:        parseOptionalUUID(req.TargetID, "targetId", &errs),
		RegionID:        parseOptionalUUID(req.RegionID, "regionId", &errs),
	}
	if req.UsageStatus != nil {
		us := domain.UsageStatus(*req.UsageStatus)
		if !us.IsValid() {
			errs = append(errs, domain.FieldError{Field: "usageStatus", Message: "invalid value"})
		}
		input.UsageStatus = &us
	}
	if err := domain.CollectValidation(errs); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sub, err := h.svc.CreateSubmission(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"message":      "Submission created successfully",
		"submissionId": sub.ID.String(),
	})
}

// GetSubmission handles GET /submissions/{id}.
func (h *ModerationHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sub, err := h.svc.GetSubmission(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionView(*sub))
}

// ListSubmissions handles GET /submissions?status=&limit=&offset= and
// GET /moderation/submissions.
func (h *ModerationHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}
	input := moderation.ListSubmissionsInput{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.SubmissionStatus(s)
		input.Status = &status
	}

	subs, err := h.svc.ListSubmissions(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	views := make([]submissionView, 0, len(subs))
	for _, s := range subs {
		views = append(views, toSubmissionView(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": views})
}

// ReviewSubmission handles POST /submissions/{id}/review.
func (h *ModerationHandler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req reviewSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.svc.ReviewSubmission(r.Context(), moderation.ReviewInput{
		SubmissionID: id,
		Decision:     domain.SubmissionStatus(req.Status),
		Comments:     req.Comments,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review submitted successfully",
		"review":  toReviewView(*review),
	})
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

type createReportRequest struct {
	Reason       string  `json:"reason"`
	Description  string  `json:"description"`
	EntryID      *string `json:"entryId"`
	DefinitionID *string `json:"definitionId"`
	VariantID    *string `json:"variantId"`
}

type reviewReportRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// CreateReport handles POST /reports.
func (h *ModerationHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var errs []domain.FieldError
	input := moderation.CreateReportInput{
		Reason:       domain.ReportReason(req.Reason),
		Description:  req.Description,
		EntryID:      parseOptionalUUID(req.EntryID, "entryId", &errs),
		DefinitionID: parseOptionalUUID(req.DefinitionID, "definitionId", &errs),
		VariantID:    parseOptionalUUID(req.VariantID, "variantId", &errs),
	}
	if err := domain.CollectValidation(errs); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	report, err := h.svc.CreateReport(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "reportId": report.ID.String()})
}

// ListReports handles GET /moderation/reports?status=.
func (h *ModerationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}
	var status *domain.ReportStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.ReportStatus(s)
		status = &st
	}

	reports, err := h.svc.ListReports(r.Context(), status, limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	views := make([]reportView, 0, len(reports))
	for _, rp := range reports {
		views = append(views, toReportView(rp))
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": views})
}

// ReviewReport handles POST /moderation/reports/{id}/review.
func (h *ModerationHandler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req reviewReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.svc.ReviewReport(r.Context(), moderation.ReviewReportInput{
		ReportID:   id,
		Status:     domain.ReportStatus(req.Status),
		Resolution: req.Resolution,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "report": toReportView(*report)})
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

type createSuggestionRequest struct {
	EntryID        string  `json:"entryId"`
	Type           string  `json:"type"`
	SuggestedValue string  `json:"suggestedValue"`
	CurrentValue   *string `json:"currentValue"`
	Reason         *string `json:"reason"`
}

type reviewSuggestionRequest struct {
	Status     string  `json:"status"`
	ReviewNote *string `json:"reviewNote"`
}

// CreateSuggestion handles POST /suggestions.
func (h *ModerationHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req createSuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entryID, err := uuid.Parse(req.EntryID)
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("entryId", "must be a UUID"))
		return
	}

	sg, err := h.svc.CreateSuggestion(r.Context(), moderation.CreateSuggestionInput{
		EntryID:        entryID,
		Type:           domain.SuggestionType(req.Type),
		SuggestedValue: req.SuggestedValue,
		CurrentValue:   req.CurrentValue,
		Reason:         req.Reason,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "suggestionId": sg.ID.String()})
}

// ListSuggestions handles GET /moderation/suggestions?status=.
func (h *ModerationHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}
	var status *domain.SuggestionStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.SuggestionStatus(s)
		status = &st
	}

	suggestions, err := h.svc.ListSuggestions(r.Context(), status, limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	views := make([]suggestionView, 0, len(suggestions))
	for _, sg := range suggestions {
		views = append(views, toSuggestionView(sg))
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": views})
}

// ReviewSuggestion handles POST /moderation/suggestions/{id}/review.
func (h *ModerationHandler) ReviewSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req reviewSuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sg, err := h.svc.ReviewSuggestion(r.Context(), moderation.ReviewSuggestionInput{
		SuggestionID: id,
		Status:       domain.SuggestionStatus(req.Status),
		ReviewNote:   req.ReviewNote,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "suggestion": toSuggestionView(*sg)})
}

// Stats handles GET /moderation/stats.
func (h *ModerationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsView(stats))
}

func pageParams(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	if limit, ok = queryInt(w, r, "limit", 0); !ok {
		return 0, 0, false
	}
	if offset, ok = queryInt(w, r, "offset", 0); !ok {
		return 0, 0, false
	}
	return limit, offset, true
}
