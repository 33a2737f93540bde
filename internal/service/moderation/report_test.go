package moderation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

func (d *testDeps) seedReport(reason domain.ReportReason, status domain.ReportStatus, entryID, defID, variantID *uuid.UUID) *domain.Report {
	r := &domain.Report{
		ID:           uuid.New(),
		ReporterID:   uuid.New(),
		Reason:       reason,
		Description:  "this definition is wrong",
		Status:       status,
		EntryID:      entryID,
		DefinitionID: defID,
		VariantID:    variantID,
	}
	d.reports.items[r.ID] = r
	return r
}

func TestService_CreateReport(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	reporter := uuid.New()
	defID := uuid.New()

	got, err := svc.CreateReport(userCtx(reporter), CreateReportInput{
		Reason:       domain.ReportReasonIncorrect,
		Description:  "  The meaning given here is wrong.  ",
		DefinitionID: &defID,
	})
	require.NoError(t, err)

	assert.Equal(t, reporter, got.ReporterID)
	assert.Equal(t, domain.ReportStatusPending, got.Status)
	assert.Equal(t, "The meaning given here is wrong.", got.Description)
	assert.Len(t, deps.reports.items, 1)
}

func TestService_CreateReport_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := userCtx(uuid.New())

	_, err := svc.CreateReport(ctx, CreateReportInput{Reason: domain.ReportReasonSpam, Description: "too short", EntryID: ptr(uuid.New())})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateReport(ctx, CreateReportInput{Reason: domain.ReportReasonSpam, Description: "long enough description"})
	assert.ErrorIs(t, err, domain.ErrValidation, "a report needs a target")

	_, err = svc.CreateReport(ctx, CreateReportInput{Reason: "RUDE", Description: "long enough description", EntryID: ptr(uuid.New())})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateReport(context.Background(), CreateReportInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_ReviewReport_ResolveActions(t *testing.T) {
	t.Parallel()
	entryID, defID, variantID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		reason domain.ReportReason
		want   []string
	}{
		{domain.ReportReasonInappropriate, []string{
			"deactivate_variant:" + variantID.String(),
			"deactivate_definition:" + defID.String(),
			"deactivate_entry:" + entryID.String(),
		}},
		{domain.ReportReasonSpam, []string{
			"delete_variant:" + variantID.String(),
			"delete_definition:" + defID.String(),
			"delete_entry:" + entryID.String(),
		}},
		{domain.ReportReasonDuplicate, nil},
		{domain.ReportReasonOther, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			t.Parallel()
			svc, deps := newTestService()
			r := deps.seedReport(tt.reason, domain.ReportStatusPending, &entryID, &defID, &variantID)
			reviewer := uuid.New()

			got, err := svc.ReviewReport(editorCtx(reviewer), ReviewReportInput{
				ReportID: r.ID, Status: domain.ReportStatusResolved, Resolution: "handled",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, deps.content.calls)
			assert.Equal(t, domain.ReportStatusResolved, got.Status)
			require.NotNil(t, got.ReviewedBy)
			assert.Equal(t, reviewer, *got.ReviewedBy)
			assert.Equal(t, []string{"report:RESOLVED"}, deps.metrics.decisions)
		})
	}
}

func TestService_ReviewReport_DismissChangesNothing(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	r := deps.seedReport(domain.ReportReasonSpam, domain.ReportStatusPending, ptr(uuid.New()), nil, nil)

	_, err := svc.ReviewReport(editorCtx(uuid.New()), ReviewReportInput{ReportID: r.ID, Status: domain.ReportStatusDismissed})
	require.NoError(t, err)

	assert.Empty(t, deps.content.calls)
	assert.Equal(t, []domain.ReportStatus{domain.ReportStatusDismissed}, deps.reports.resolved)
}

func TestService_ReviewReport_MissingTargetIsSkipped(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	deps.content.DeleteEntryErr = domain.ErrNotFound
	r := deps.seedReport(domain.ReportReasonSpam, domain.ReportStatusPending, ptr(uuid.New()), nil, nil)

	_, err := svc.ReviewReport(editorCtx(uuid.New()), ReviewReportInput{ReportID: r.ID, Status: domain.ReportStatusResolved})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, deps.reports.items[r.ID].Status)
}

func TestService_ReviewReport_AlreadyReviewed(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	r := deps.seedReport(domain.ReportReasonSpam, domain.ReportStatusDismissed, ptr(uuid.New()), nil, nil)

	_, err := svc.ReviewReport(editorCtx(uuid.New()), ReviewReportInput{ReportID: r.ID, Status: domain.ReportStatusResolved})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, deps.content.calls)
}

func TestService_ReviewReport_RequiresModeratorAndValidStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.ReviewReport(userCtx(uuid.New()), ReviewReportInput{ReportID: uuid.New(), Status: domain.ReportStatusResolved})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ReviewReport(editorCtx(uuid.New()), ReviewReportInput{ReportID: uuid.New(), Status: domain.ReportStatusPending})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
