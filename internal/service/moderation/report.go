package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// CreateReport flags content. Unknown targets fail with ErrNotFound.
func (s *Service) CreateReport(ctx context.Context, input CreateReportInput) (*domain.Report, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.reports.Create(ctx, &domain.Report{
		ReporterID:   userID,
		Reason:       input.Reason,
		Description:  input.Description,
		Status:       domain.ReportStatusPending,
		EntryID:      input.EntryID,
		DefinitionID: input.DefinitionID,
		VariantID:    input.VariantID,
	})
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.InfoContext(ctx, "report created",
		"report_id", created.ID, "reason", created.Reason, "user_id", userID)
	return created, nil
}

// ListReports returns reports with the given status (PENDING when nil), newest first.
func (s *Service) ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]domain.Report, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}

	st := domain.ReportStatusPending
	if status != nil {
		if !status.IsValid() {
			return nil, domain.NewValidationError("status", "invalid value")
		}
		st = *status
	}

	reports, err := s.reports.List(ctx, &st, clampLimit(limit), clampOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// ReviewReport resolves or dismisses a pending report. Resolving applies the
// content action implied by the report reason.
func (s *Service) ReviewReport(ctx context.Context, input ReviewReportInput) (*domain.Report, error) {
	reviewerID, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var report *domain.Report
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.reports.GetForUpdate(txCtx, input.ReportID)
		if err != nil {
			return fmt.Errorf("lock report: %w", err)
		}
		if r.Status != domain.ReportStatusPending {
			return fmt.Errorf("report already %s: %w", r.Status, domain.ErrConflict)
		}

		if input.Status == domain.ReportStatusResolved {
			if err := s.applyReportAction(txCtx, r); err != nil {
				return err
			}
		}

		now := s.now()
		if err := s.reports.Resolve(txCtx, r.ID, input.Status, input.Resolution, reviewerID, now); err != nil {
			return fmt.Errorf("resolve report: %w", err)
		}

		r.Status = input.Status
		r.Resolution = &input.Resolution
		r.ReviewedBy = &reviewerID
		r.ReviewedAt = &now
		report = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewDecided("report", string(input.Status))
	s.log.InfoContext(ctx, "report reviewed",
		"report_id", input.ReportID, "status", input.Status, "reviewer_id", reviewerID)
	return report, nil
}

// applyReportAction deactivates or deletes every target of r. Variants go
// first and entries last, since deleting an entry cascades to the rest.
func (s *Service) applyReportAction(ctx context.Context, r *domain.Report) error {
	action := r.Reason.Action()
	if action == domain.ReportActionNone {
		return nil
	}

	type step struct {
		kind       string
		id         *uuid.UUID
		deactivate func(context.Context, uuid.UUID) error
		remove     func(context.Context, uuid.UUID) error
	}
	steps := []step{
		{"variant", r.VariantID, s.content.DeactivateVariant, s.content.DeleteVariant},
		{"definition", r.DefinitionID, s.content.DeactivateDefinition, s.content.DeleteDefinition},
		{"entry", r.EntryID, s.content.Deactivate, s.content.Delete},
	}

	for _, st := range steps {
		if st.id == nil {
			continue
		}
		fn := st.deactivate
		if action == domain.ReportActionDelete {
			fn = st.remove
		}
		err := fn(ctx, *st.id)
		if errors.Is(err, domain.ErrNotFound) {
			// Already gone, e.g. removed by the cascade of an earlier report.
			s.log.DebugContext(ctx, "report target missing", "report_id", r.ID, "kind", st.kind, "target_id", *st.id)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", action, st.kind, err)
		}
	}
	return nil
}
