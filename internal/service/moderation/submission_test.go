package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ===========================================================================
// CreateSubmission
// ===========================================================================

func TestService_CreateSubmission_NewEntry(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	userID := uuid.New()

	got, err := svc.CreateSubmission(userCtx(userID), CreateSubmissionInput{
		Type:         domain.SubmissionTypeNewEntry,
		Headword:     "  craic ",
		PartOfSpeech: "noun",
		Definition:   ptr("fun, enjoyment"),
		Example:      ptr("   "),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionStatusPending, got.Status)
	assert.Equal(t, userID, got.SubmitterID)
	p, ok := got.Payload.(domain.NewEntryPayload)
	require.True(t, ok, "payload type %T", got.Payload)
	assert.Equal(t, "craic", p.Headword)
	require.NotNil(t, p.Definition)
	assert.Equal(t, "fun, enjoyment", *p.Definition)
	assert.Nil(t, p.Example, "blank example must be dropped")
	assert.Nil(t, got.EntryID)
	assert.Len(t, deps.submissions.items, 1)
}

func TestService_CreateSubmission_NewDefinitionLinksEntry(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	entryID := uuid.New()

	got, err := svc.CreateSubmission(userCtx(uuid.New()), CreateSubmissionInput{
		Type:            domain.SubmissionTypeNewDefinition,
		ExistingEntryID: &entryID,
		Definition:      ptr("a word"),
	})
	require.NoError(t, err)
	require.NotNil(t, got.EntryID)
	assert.Equal(t, entryID, *got.EntryID)
}

func TestService_CreateSubmission_Unauthenticated(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.CreateSubmission(context.Background(), CreateSubmissionInput{Type: domain.SubmissionTypeNewEntry})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_CreateSubmission_ValidationPerType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  CreateSubmissionInput
		fields []string
	}{
		{"unknown type", CreateSubmissionInput{Type: "MERGE"}, []string{"type"}},
		{"new entry without headword", CreateSubmissionInput{Type: domain.SubmissionTypeNewEntry}, []string{"headword", "partOfSpeech"}},
		{"new definition without entry", CreateSubmissionInput{Type: domain.SubmissionTypeNewDefinition}, []string{"existingEntryId", "definition"}},
		{"new variant without spelling", CreateSubmissionInput{Type: domain.SubmissionTypeNewVariant, ExistingEntryID: ptr(uuid.New())}, []string{"headword"}},
		{"edit entry without changes", CreateSubmissionInput{Type: domain.SubmissionTypeEditEntry, ExistingEntryID: ptr(uuid.New())}, []string{"existingEntryId"}},
		{"delete without target", CreateSubmissionInput{Type: domain.SubmissionTypeDeleteDefinition}, []string{"targetId"}},
		{"bad usage status", CreateSubmissionInput{Type: domain.SubmissionTypeEditEntry, ExistingEntryID: ptr(uuid.New()), UsageStatus: ptr(domain.UsageStatus("ANCIENT"))}, []string{"usageStatus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, deps := newTestService()

			_, err := svc.CreateSubmission(userCtx(uuid.New()), tt.input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			var fields []string
			for _, fe := range ve.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Empty(t, deps.submissions.items)
		})
	}
}

func TestService_CreateSubmission_DeleteEntryFallsBackToExistingEntry(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	entryID := uuid.New()

	got, err := svc.CreateSubmission(userCtx(uuid.New()), CreateSubmissionInput{
		Type:            domain.SubmissionTypeDeleteEntry,
		ExistingEntryID: &entryID,
	})
	require.NoError(t, err)
	p := got.Payload.(domain.DeletePayload)
	assert.Equal(t, domain.SubmissionTypeDeleteEntry, p.Kind)
	assert.Equal(t, entryID, p.TargetID)
}

// ===========================================================================
// GetSubmission / ListSubmissions
// ===========================================================================

func TestService_GetSubmission_OwnerOrModerator(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	sub := deps.seedSubmission(domain.NewEntryPayload{Headword: "focal", PartOfSpeech: "noun"}, domain.SubmissionStatusPending)

	_, err := svc.GetSubmission(userCtx(sub.SubmitterID), sub.ID)
	require.NoError(t, err)

	_, err = svc.GetSubmission(editorCtx(uuid.New()), sub.ID)
	require.NoError(t, err)

	_, err = svc.GetSubmission(userCtx(uuid.New()), sub.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetSubmission(editorCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListSubmissions(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	_, err := svc.ListSubmissions(userCtx(uuid.New()), ListSubmissionsInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListSubmissions(editorCtx(uuid.New()), ListSubmissionsInput{})
	require.NoError(t, err)
	_, err = svc.ListSubmissions(editorCtx(uuid.New()), ListSubmissionsInput{
		Status: ptr(domain.SubmissionStatusApproved), Limit: 500, Offset: -3,
	})
	require.NoError(t, err)

	assert.Equal(t, []listCall{
		{"PENDING", 20, 0},
		{"APPROVED", 100, 0},
	}, deps.submissions.listCalls)

	_, err = svc.ListSubmissions(editorCtx(uuid.New()), ListSubmissionsInput{Status: ptr(domain.SubmissionStatus("LOST"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// ReviewSubmission
// ===========================================================================

func TestService_ReviewSubmission_ApproveNewEntry(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	reviewer := uuid.New()
	regionID := uuid.New()
	sub := deps.seedSubmission(domain.NewEntryPayload{
		Headword:     "craic",
		PartOfSpeech: "noun",
		Definition:   ptr("fun"),
		Example:      ptr("Bhí an-chraic againn."),
		RegionID:     &regionID,
	}, domain.SubmissionStatusPending)

	review, err := svc.ReviewSubmission(editorCtx(reviewer), ReviewInput{
		SubmissionID: sub.ID,
		Decision:     domain.SubmissionStatusApproved,
		Comments:     ptr("go raibh maith agat"),
	})
	require.NoError(t, err)

	assert.Equal(t, reviewer, review.ReviewerID)
	assert.Equal(t, domain.SubmissionStatusApproved, review.Decision)
	assert.Equal(t, 1, deps.tx.calls)

	stored := deps.submissions.items[sub.ID]
	assert.Equal(t, domain.SubmissionStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, fixedNow, *stored.ReviewedAt)

	require.Len(t, deps.content.entries, 1)
	created := deps.content.entries[0]
	assert.Equal(t, "craic", created.Headword)
	require.NotNil(t, stored.EntryID, "created entry must be linked back")
	assert.Equal(t, created.ID, *stored.EntryID)

	require.Len(t, deps.content.definitions, 1)
	assert.Equal(t, created.ID, deps.content.definitions[0].EntryID)
	assert.Equal(t, "fun", deps.content.definitions[0].Text)
	assert.Equal(t, [][2]uuid.UUID{{created.ID, regionID}}, deps.content.links)

	assert.Equal(t, []string{"submission:APPROVED"}, deps.metrics.decisions)
}

func TestService_ReviewSubmission_ApproveEachPayload(t *testing.T) {
	t.Parallel()
	entryID := uuid.New()

	tests := []struct {
		name    string
		payload domain.SubmissionPayload
		want    []string
	}{
		{"new definition", domain.NewDefinitionPayload{EntryID: entryID, Definition: "word"}, []string{"create_definition:" + entryID.String()}},
		{"new variant", domain.NewVariantPayload{EntryID: entryID, Spelling: "focail"}, []string{"create_variant:" + entryID.String()}},
		{"edit entry", domain.EditEntryPayload{EntryID: entryID, Etymology: ptr("Latin vocabulum")}, []string{"patch:" + entryID.String()}},
		{"edit definition", domain.EditDefinitionPayload{DefinitionID: uuid.New(), Text: ptr("x")}, nil},
		{"edit variant", domain.EditVariantPayload{VariantID: uuid.New()}, nil},
		{"delete entry", domain.DeletePayload{Kind: domain.SubmissionTypeDeleteEntry, TargetID: entryID}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, deps := newTestService()
			sub := deps.seedSubmission(tt.payload, domain.SubmissionStatusPending)

			_, err := svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusApproved})
			require.NoError(t, err)
			assert.Equal(t, tt.want, deps.content.calls)
			assert.Equal(t, domain.SubmissionStatusApproved, deps.submissions.items[sub.ID].Status)
		})
	}
}

func TestService_ReviewSubmission_RejectDoesNotApply(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	sub := deps.seedSubmission(domain.NewEntryPayload{Headword: "focal", PartOfSpeech: "noun"}, domain.SubmissionStatusPending)

	_, err := svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusRejected})
	require.NoError(t, err)

	assert.Empty(t, deps.content.calls)
	assert.Equal(t, domain.SubmissionStatusRejected, deps.submissions.items[sub.ID].Status)
	assert.Len(t, deps.submissions.reviews, 1)
}

func TestService_ReviewSubmission_NeedsRevisionCanBeReviewedAgain(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	sub := deps.seedSubmission(domain.NewEntryPayload{Headword: "focal", PartOfSpeech: "noun"}, domain.SubmissionStatusPending)
	ctx := editorCtx(uuid.New())

	_, err := svc.ReviewSubmission(ctx, ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusNeedsRevision})
	require.NoError(t, err)
	_, err = svc.ReviewSubmission(ctx, ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusApproved})
	require.NoError(t, err)

	assert.Len(t, deps.submissions.reviews, 2)
	assert.Len(t, deps.content.entries, 1)
}

func TestService_ReviewSubmission_TerminalIsConflict(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.SubmissionStatus{domain.SubmissionStatusApproved, domain.SubmissionStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()
			svc, deps := newTestService()
			sub := deps.seedSubmission(domain.NewEntryPayload{Headword: "focal", PartOfSpeech: "noun"}, status)

			_, err := svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusApproved})
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Empty(t, deps.submissions.reviews)
			assert.Empty(t, deps.content.calls)
			assert.Empty(t, deps.metrics.decisions)
		})
	}
}

func TestService_ReviewSubmission_ApplyFailurePropagates(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	deps.content.CreateFunc = func(context.Context, *domain.Entry) (*domain.Entry, error) {
		return nil, domain.ErrAlreadyExists
	}
	sub := deps.seedSubmission(domain.NewEntryPayload{Headword: "focal", PartOfSpeech: "noun"}, domain.SubmissionStatusPending)

	_, err := svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: sub.ID, Decision: domain.SubmissionStatusApproved})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Empty(t, deps.metrics.decisions)
}

func TestService_ReviewSubmission_AuthAndValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.ReviewSubmission(context.Background(), ReviewInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ReviewSubmission(userCtx(uuid.New()), ReviewInput{SubmissionID: uuid.New(), Decision: domain.SubmissionStatusApproved})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: uuid.New(), Decision: domain.SubmissionStatusPending})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ReviewSubmission(editorCtx(uuid.New()), ReviewInput{SubmissionID: uuid.New(), Decision: domain.SubmissionStatusApproved})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
