package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// CreateSubmission queues a contributor's proposed change as PENDING.
func (s *Service) CreateSubmission(ctx context.Context, input CreateSubmissionInput) (*domain.Submission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.submissions.Create(ctx, &domain.Submission{
		SubmitterID: userID,
		Type:        input.Type,
		Status:      domain.SubmissionStatusPending,
		Payload:     input.Payload(),
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.log.InfoContext(ctx, "submission created",
		"submission_id", created.ID, "type", created.Type, "user_id", userID)
	return created, nil
}

// GetSubmission returns a submission with its review history. Contributors
// may only read their own.
func (s *Service) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if sub.SubmitterID != userID {
		if _, err := requireModerator(ctx); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// ListSubmissions returns the moderation queue, newest first.
func (s *Service) ListSubmissions(ctx context.Context, input ListSubmissionsInput) ([]domain.Submission, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}

	status := domain.SubmissionStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.NewValidationError("status", "invalid value")
		}
		status = *input.Status
	}

	subs, err := s.submissions.List(ctx, &status, clampLimit(input.Limit), clampOffset(input.Offset))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// ReviewSubmission records a moderator's decision. APPROVED applies the
// payload to the dictionary in the same transaction, so a failed apply
// leaves the submission PENDING with no review row.
func (s *Service) ReviewSubmission(ctx context.Context, input ReviewInput) (*domain.EditReview, error) {
	reviewerID, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var review *domain.EditReview
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.submissions.GetForUpdate(txCtx, input.SubmissionID)
		if err != nil {
			return fmt.Errorf("lock submission: %w", err)
		}
		if sub.Status.IsTerminal() {
			return fmt.Errorf("submission already %s: %w", sub.Status, domain.ErrConflict)
		}

		review, err = s.submissions.AppendReview(txCtx, &domain.EditReview{
			SubmissionID: sub.ID,
			ReviewerID:   reviewerID,
			Decision:     input.Decision,
			Comments:     input.Comments,
		})
		if err != nil {
			return fmt.Errorf("append review: %w", err)
		}

		if err := s.submissions.SetStatus(txCtx, sub.ID, input.Decision, reviewerID, s.now()); err != nil {
			return fmt.Errorf("set submission status: %w", err)
		}

		if input.Decision != domain.SubmissionStatusApproved {
			return nil
		}

		a := &applier{svc: s, submissionID: sub.ID}
		if err := sub.Payload.Accept(txCtx, a); err != nil {
			return fmt.Errorf("apply %s: %w", sub.Type, err)
		}
		if a.createdEntryID != uuid.Nil {
			if err := s.submissions.SetEntryID(txCtx, sub.ID, a.createdEntryID); err != nil {
				return fmt.Errorf("link created entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewDecided("submission", string(input.Decision))
	s.log.InfoContext(ctx, "submission reviewed",
		"submission_id", input.SubmissionID, "decision", input.Decision, "reviewer_id", reviewerID)
	return review, nil
}
