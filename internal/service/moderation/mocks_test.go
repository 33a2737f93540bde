package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

// mockSubmissionRepo keeps submissions in memory.
type mockSubmissionRepo struct {
	CreateFunc       func(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	CountFunc        func(ctx context.Context) (map[domain.SubmissionStatus]int, error)

	items     map[uuid.UUID]*domain.Submission
	reviews   []domain.EditReview
	listCalls []listCall
}

type listCall struct {
	status        string
	limit, offset int
}

func (m *mockSubmissionRepo) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	c := *s
	c.ID = uuid.New()
	c.EntryID = domain.PayloadEntryID(s.Payload)
	m.items[c.ID] = &c
	return &c, nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m *mockSubmissionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockSubmissionRepo) List(_ context.Context, status *domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	m.listCalls = append(m.listCalls, listCall{string(*status), limit, offset})
	return []domain.Submission{}, nil
}

func (m *mockSubmissionRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewerID uuid.UUID, at time.Time) error {
	s, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	s.ReviewedBy = &reviewerID
	s.ReviewedAt = &at
	return nil
}

func (m *mockSubmissionRepo) SetEntryID(_ context.Context, id, entryID uuid.UUID) error {
	m.items[id].EntryID = &entryID
	return nil
}

func (m *mockSubmissionRepo) AppendReview(_ context.Context, rv *domain.EditReview) (*domain.EditReview, error) {
	c := *rv
	c.ID = uuid.New()
	m.reviews = append(m.reviews, c)
	return &c, nil
}

func (m *mockSubmissionRepo) CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return map[domain.SubmissionStatus]int{domain.SubmissionStatusPending: 2}, nil
}

type mockReportRepo struct {
	CreateFunc func(ctx context.Context, r *domain.Report) (*domain.Report, error)

	items    map[uuid.UUID]*domain.Report
	resolved []domain.ReportStatus
}

func (m *mockReportRepo) Create(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	c := *r
	c.ID = uuid.New()
	m.items[c.ID] = &c
	return &c, nil
}

func (m *mockReportRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Report, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (m *mockReportRepo) List(_ context.Context, _ *domain.ReportStatus, _, _ int) ([]domain.Report, error) {
	return []domain.Report{}, nil
}

func (m *mockReportRepo) Resolve(_ context.Context, id uuid.UUID, status domain.ReportStatus, resolution string, reviewerID uuid.UUID, at time.Time) error {
	r := m.items[id]
	r.Status = status
	r.Resolution = &resolution
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &at
	m.resolved = append(m.resolved, status)
	return nil
}

func (m *mockReportRepo) CountByStatus(context.Context) (map[domain.ReportStatus]int, error) {
	return map[domain.ReportStatus]int{domain.ReportStatusPending: 1, domain.ReportStatusResolved: 3}, nil
}

type mockSuggestionRepo struct {
	items map[uuid.UUID]*domain.Suggestion
}

func (m *mockSuggestionRepo) Create(_ context.Context, s *domain.Suggestion) (*domain.Suggestion, error) {
	c := *s
	c.ID = uuid.New()
	m.items[c.ID] = &c
	return &c, nil
}

func (m *mockSuggestionRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m *mockSuggestionRepo) List(_ context.Context, _ *domain.SuggestionStatus, _, _ int) ([]domain.Suggestion, error) {
	return []domain.Suggestion{}, nil
}

func (m *mockSuggestionRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.SuggestionStatus, note *string, reviewerID uuid.UUID, at time.Time) error {
	s := m.items[id]
	s.Status = status
	s.ReviewNote = note
	s.ReviewedBy = &reviewerID
	s.ReviewedAt = &at
	return nil
}

func (m *mockSuggestionRepo) CountByStatus(context.Context) (map[domain.SuggestionStatus]int, error) {
	return map[domain.SuggestionStatus]int{}, nil
}

// mockContentRepo records every content mutation as "op:id".
type mockContentRepo struct {
	CreateFunc        func(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	TopDefinitionFunc func(ctx context.Context, entryID uuid.UUID) (*domain.Definition, error)
	DeleteEntryErr    error

	calls       []string
	entries     []domain.Entry
	definitions []domain.Definition
	variants    []domain.Variant
	patches     []domain.EntryPatch
	notes       []string
	links       [][2]uuid.UUID
}

func (m *mockContentRepo) record(op string, id uuid.UUID) { m.calls = append(m.calls, op+":"+id.String()) }

func (m *mockContentRepo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	c := *e
	c.ID = uuid.New()
	m.entries = append(m.entries, c)
	m.record("create_entry", c.ID)
	return &c, nil
}

func (m *mockContentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Entry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			c := e
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockContentRepo) Patch(_ context.Context, id uuid.UUID, p domain.EntryPatch) (*domain.Entry, error) {
	m.patches = append(m.patches, p)
	m.record("patch", id)
	return &domain.Entry{ID: id}, nil
}

func (m *mockContentRepo) AppendNotes(_ context.Context, id uuid.UUID, line string) error {
	m.notes = append(m.notes, line)
	m.record("append_notes", id)
	return nil
}

func (m *mockContentRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	m.record("deactivate_entry", id)
	return nil
}

func (m *mockContentRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.record("delete_entry", id)
	return m.DeleteEntryErr
}

func (m *mockContentRepo) LinkRegion(_ context.Context, entryID, regionID uuid.UUID) error {
	m.links = append(m.links, [2]uuid.UUID{entryID, regionID})
	m.record("link_region", entryID)
	return nil
}

func (m *mockContentRepo) CreateDefinition(_ context.Context, d *domain.Definition) (*domain.Definition, error) {
	c := *d
	c.ID = uuid.New()
	m.definitions = append(m.definitions, c)
	m.record("create_definition", d.EntryID)
	return &c, nil
}

func (m *mockContentRepo) TopDefinition(ctx context.Context, entryID uuid.UUID) (*domain.Definition, error) {
	if m.TopDefinitionFunc != nil {
		return m.TopDefinitionFunc(ctx, entryID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockContentRepo) UpdateDefinitionText(_ context.Context, id uuid.UUID, _ string) error {
	m.record("update_definition", id)
	return nil
}

func (m *mockContentRepo) DeactivateDefinition(_ context.Context, id uuid.UUID) error {
	m.record("deactivate_definition", id)
	return nil
}

func (m *mockContentRepo) DeleteDefinition(_ context.Context, id uuid.UUID) error {
	m.record("delete_definition", id)
	return nil
}

func (m *mockContentRepo) CreateVariant(_ context.Context, v *domain.Variant) (*domain.Variant, error) {
	c := *v
	c.ID = uuid.New()
	m.variants = append(m.variants, c)
	m.record("create_variant", v.EntryID)
	return &c, nil
}

func (m *mockContentRepo) DeactivateVariant(_ context.Context, id uuid.UUID) error {
	m.record("deactivate_variant", id)
	return nil
}

func (m *mockContentRepo) DeleteVariant(_ context.Context, id uuid.UUID) error {
	m.record("delete_variant", id)
	return nil
}

type mockRegionRepo struct {
	regions map[string]domain.Region
}

func (m *mockRegionRepo) GetBySlug(_ context.Context, slug string) (*domain.Region, error) {
	r, ok := m.regions[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

type mockTxManager struct {
	calls int
}

// RunInTx runs fn directly. Mocks do not roll back, so tests assert on
// the returned error rather than on reverted state.
func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockMetrics struct {
	decisions []string
}

func (m *mockMetrics) ReviewDecided(kind, decision string) {
	m.decisions = append(m.decisions, kind+":"+decision)
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	submissions *mockSubmissionRepo
	reports     *mockReportRepo
	suggestions *mockSuggestionRepo
	content     *mockContentRepo
	regions     *mockRegionRepo
	tx          *mockTxManager
	metrics     *mockMetrics
}

var fixedNow = time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		submissions: &mockSubmissionRepo{items: map[uuid.UUID]*domain.Submission{}},
		reports:     &mockReportRepo{items: map[uuid.UUID]*domain.Report{}},
		suggestions: &mockSuggestionRepo{items: map[uuid.UUID]*domain.Suggestion{}},
		content:     &mockContentRepo{},
		regions:     &mockRegionRepo{regions: map[string]domain.Region{}},
		tx:          &mockTxManager{},
		metrics:     &mockMetrics{},
	}
	svc := NewService(slog.Default(), deps.submissions, deps.reports, deps.suggestions,
		deps.content, deps.regions, deps.tx, deps.metrics)
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

func userCtx(id uuid.UUID) context.Context {
	return ctxutil.WithUserRole(ctxutil.WithUserID(context.Background(), id), "CONTRIBUTOR")
}

func editorCtx(id uuid.UUID) context.Context {
	return ctxutil.WithUserRole(ctxutil.WithUserID(context.Background(), id), "EDITOR")
}

func ptr[T any](v T) *T { return &v }

// seedSubmission stores a pending submission with the given payload.
func (d *testDeps) seedSubmission(p domain.SubmissionPayload, status domain.SubmissionStatus) *domain.Submission {
	s := &domain.Submission{
		ID:          uuid.New(),
		SubmitterID: uuid.New(),
		Type:        p.Type(),
		Status:      status,
		Payload:     p,
	}
	d.submissions.items[s.ID] = s
	return s
}
